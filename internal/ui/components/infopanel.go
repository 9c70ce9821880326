package components

import (
	"fmt"
	"strings"

	"thememgr/internal/models"
	"thememgr/internal/ui"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// InfoPanel is the theme detail screen: type and size lines, the
// decoded first frame, and the manifest text in a scrollable viewport.
// It renders whatever it was fed; loading is the model's job.
type InfoPanel struct {
	viewport    viewport.Model
	highlighter *ui.Highlighter

	Theme       *models.Theme
	Info        models.ThemeInfo
	FrameView   string // half-block render, empty when no frame decoded
	DiffSummary string // manifest change summary against the active set
	HasManifest bool

	Width  int
	Height int
}

// NewInfoPanel creates a new info panel
func NewInfoPanel() *InfoPanel {
	vp := viewport.New(60, 12)
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	return &InfoPanel{
		viewport:    vp,
		highlighter: ui.NewHighlighter(),
		Width:       60,
		Height:      24,
	}
}

// SetSize updates the panel dimensions
func (p *InfoPanel) SetSize(width, height int) {
	p.Width = width
	p.Height = height

	contentWidth := width - 4
	if contentWidth < 20 {
		contentWidth = 20
	}
	p.viewport.Width = contentWidth
	p.viewport.Height = p.manifestHeight()
}

// manifestHeight is the viewport height left after the fixed sections
func (p *InfoPanel) manifestHeight() int {
	fixed := 6 // header, two info lines, manifest title, diff line, padding
	if p.FrameView != "" {
		fixed += strings.Count(p.FrameView, "\n") + 3
	}
	h := p.Height - fixed
	if h < 3 {
		h = 3
	}
	return h
}

// SetTheme swaps in a freshly loaded theme
func (p *InfoPanel) SetTheme(theme *models.Theme, info models.ThemeInfo, frameView, manifestText, diffSummary string) {
	p.Theme = theme
	p.Info = info
	p.FrameView = frameView
	p.DiffSummary = diffSummary
	p.HasManifest = manifestText != ""

	lines := strings.Split(strings.TrimSuffix(manifestText, "\n"), "\n")
	p.viewport.Height = p.manifestHeight()
	p.viewport.SetContent(strings.Join(p.highlighter.HighlightLines(lines), "\n"))
	p.viewport.GotoTop()
}

// Update handles viewport scrolling
func (p *InfoPanel) Update(msg tea.Msg) (*InfoPanel, tea.Cmd) {
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

// ScrollUp scrolls the manifest up one line
func (p *InfoPanel) ScrollUp() {
	p.viewport.LineUp(1)
}

// ScrollDown scrolls the manifest down one line
func (p *InfoPanel) ScrollDown() {
	p.viewport.LineDown(1)
}

// GoToTop jumps to the top of the manifest
func (p *InfoPanel) GoToTop() {
	p.viewport.GotoTop()
}

// GoToBottom jumps to the end of the manifest
func (p *InfoPanel) GoToBottom() {
	p.viewport.GotoBottom()
}

// View renders the info panel
func (p *InfoPanel) View() string {
	if p.Theme == nil {
		return ui.PanelStyle.Width(p.Width).Height(p.Height).
			Render(ui.MutedStyle.Render("No theme selected"))
	}

	var b strings.Builder

	header := ui.PanelTitleStyle.Render(p.Theme.Name)
	b.WriteString(header + "\n")
	b.WriteString(ui.DividerStyle.Render(strings.Repeat("─", max(1, p.Width-4))) + "\n")

	typeLine, sizeLine := p.Theme.InfoLines(p.Info)
	b.WriteString(ui.StatusTextStyle.Render(typeLine) + "\n")
	b.WriteString(ui.StatusTextStyle.Render(sizeLine) + "\n")

	if p.FrameView != "" {
		b.WriteString(ui.PreviewStyle.Render(p.FrameView) + "\n")
	} else {
		b.WriteString(ui.MutedStyle.Render("(no preview)") + "\n")
	}

	if p.HasManifest {
		b.WriteString(ui.PanelTitleStyle.Render("Manifest") + "\n")
		b.WriteString(p.viewport.View())
		if p.viewport.TotalLineCount() > p.viewport.Height {
			b.WriteString("\n" + ui.MutedStyle.Render(fmt.Sprintf("─── %.0f%% ───", p.viewport.ScrollPercent()*100)))
		}
	} else {
		b.WriteString(ui.MutedStyle.Render("(manifest synthesized at apply)"))
	}

	if p.DiffSummary != "" {
		b.WriteString("\n" + ui.MutedStyle.Render("Changes vs active: ") + ui.StatusTextStyle.Render(p.DiffSummary))
	}

	return ui.PanelStyle.Width(p.Width).Height(p.Height).Render(b.String())
}
