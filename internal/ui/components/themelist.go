package components

import (
	"fmt"
	"strings"

	"thememgr/internal/models"
	"thememgr/internal/ui"

	"github.com/charmbracelet/lipgloss"
)

// ThemeList is a scrollable list of catalog entries. When a backup slot
// exists a restore row is appended after the themes; the cursor walks
// rows, not themes, so Current returns nil on the restore row.
type ThemeList struct {
	Themes      []*models.Theme
	HasBackup   bool
	RootMissing bool
	Cursor      int
	Width       int
	Height      int
	Focused     bool
	Title       string
}

// NewThemeList creates a new theme list
func NewThemeList() *ThemeList {
	return &ThemeList{
		Cursor:  0,
		Width:   34,
		Height:  15,
		Focused: true,
		Title:   "Themes",
	}
}

// SetCatalog replaces the list contents after a scan
func (l *ThemeList) SetCatalog(themes []*models.Theme, hasBackup, rootMissing bool) {
	l.Themes = themes
	l.HasBackup = hasBackup
	l.RootMissing = rootMissing
	if l.Cursor >= l.rowCount() {
		l.Cursor = max(0, l.rowCount()-1)
	}
}

// rowCount is the number of selectable rows including the restore entry
func (l *ThemeList) rowCount() int {
	n := len(l.Themes)
	if l.HasBackup {
		n++
	}
	return n
}

// OnRestoreRow reports whether the cursor sits on the restore entry
func (l *ThemeList) OnRestoreRow() bool {
	return l.HasBackup && l.Cursor == len(l.Themes)
}

// Current returns the theme under the cursor, or nil on the restore row
// or when the list is empty
func (l *ThemeList) Current() *models.Theme {
	if l.Cursor < len(l.Themes) {
		return l.Themes[l.Cursor]
	}
	return nil
}

// MoveUp moves cursor up
func (l *ThemeList) MoveUp() {
	if l.Cursor > 0 {
		l.Cursor--
	}
}

// MoveDown moves cursor down
func (l *ThemeList) MoveDown() {
	if l.Cursor < l.rowCount()-1 {
		l.Cursor++
	}
}

// PageUp moves cursor up by a page
func (l *ThemeList) PageUp() {
	pageSize := l.Height - 3
	if pageSize < 1 {
		pageSize = 10
	}
	l.Cursor -= pageSize
	if l.Cursor < 0 {
		l.Cursor = 0
	}
}

// PageDown moves cursor down by a page
func (l *ThemeList) PageDown() {
	pageSize := l.Height - 3
	if pageSize < 1 {
		pageSize = 10
	}
	l.Cursor += pageSize
	if l.Cursor >= l.rowCount() {
		l.Cursor = max(0, l.rowCount()-1)
	}
}

// GoToFirst moves cursor to the first row
func (l *ThemeList) GoToFirst() {
	l.Cursor = 0
}

// GoToLast moves cursor to the last row
func (l *ThemeList) GoToLast() {
	if l.rowCount() > 0 {
		l.Cursor = l.rowCount() - 1
	}
}

// EmptyLabel returns the placeholder row for a catalog with no themes
func (l *ThemeList) EmptyLabel() string {
	if l.RootMissing {
		return models.EmptyRootLabel
	}
	return models.EmptyCatalogLabel
}

// View renders the theme list
func (l *ThemeList) View() string {
	var b strings.Builder

	title := l.Title
	if len(l.Themes) > 0 {
		title = fmt.Sprintf("%s (%d)", l.Title, len(l.Themes))
	}
	b.WriteString(ui.PanelTitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(ui.DividerStyle.Render(strings.Repeat("─", l.Width-2)))
	b.WriteString("\n")

	if l.rowCount() == 0 {
		b.WriteString(ui.MutedStyle.Render(l.EmptyLabel()))
		return l.wrapInPanel(b.String())
	}

	// Calculate visible range
	visibleHeight := l.Height - 3
	startIdx := 0
	if l.Cursor >= visibleHeight {
		startIdx = l.Cursor - visibleHeight + 1
	}
	endIdx := min(startIdx+visibleHeight, l.rowCount())

	if startIdx > 0 {
		b.WriteString(ui.MutedStyle.Render("  ↑ more"))
		b.WriteString("\n")
	}

	for i := startIdx; i < endIdx; i++ {
		b.WriteString(l.renderRow(i, i == l.Cursor))
		if i < endIdx-1 {
			b.WriteString("\n")
		}
	}

	if endIdx < l.rowCount() {
		b.WriteString("\n")
		b.WriteString(ui.MutedStyle.Render("  ↓ more"))
	}

	// Add position indicator when scrolling
	if l.rowCount() > visibleHeight {
		position := fmt.Sprintf(" %d/%d ", l.Cursor+1, l.rowCount())
		b.WriteString("\n")
		b.WriteString(ui.MutedStyle.Render(strings.Repeat(" ", max(0, (l.Width-len(position)-4)/2)) + position))
	}

	return l.wrapInPanel(b.String())
}

// renderRow renders a single row, theme or restore entry
func (l *ThemeList) renderRow(row int, isCursor bool) string {
	var content string
	if l.HasBackup && row == len(l.Themes) {
		content = ui.RestoreEntryStyle.Render(models.RestoreEntryLabel)
	} else {
		theme := l.Themes[row]
		content = kindStyle(theme.Kind).Render(theme.Kind.Prefix()) + truncateName(theme.Name, l.Width-10)
	}

	if isCursor && l.Focused {
		return ui.SelectedItemStyle.Width(l.Width - 4).Render(content)
	}
	return ui.ItemStyle.Render(content)
}

// kindStyle picks the prefix color for a theme kind
func kindStyle(kind models.ThemeKind) lipgloss.Style {
	switch kind {
	case models.KindPack:
		return ui.PackKindStyle
	case models.KindAnimsPack:
		return ui.AnimsKindStyle
	case models.KindSingle:
		return ui.SingleKindStyle
	default:
		return ui.MutedStyle
	}
}

// truncateName cuts a name to fit the panel, rune-aware
func truncateName(name string, maxLen int) string {
	if maxLen < 10 {
		maxLen = 10
	}
	runes := []rune(name)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return name
}

// wrapInPanel wraps content in a panel border
func (l *ThemeList) wrapInPanel(content string) string {
	style := ui.PanelStyle
	if l.Focused {
		style = ui.ActivePanelStyle
	}
	return style.Width(l.Width).Height(l.Height).Render(content)
}
