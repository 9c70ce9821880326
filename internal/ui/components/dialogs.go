package components

import (
	"strings"
	"time"

	"thememgr/internal/diff"
	"thememgr/internal/models"
	"thememgr/internal/ui"
)

// ConfirmDialog is a two-button modal. The cancel button starts active
// so a stray enter never mutates anything.
type ConfirmDialog struct {
	Header       string
	Body         []string
	Changes      *DiffExcerpt // manifest diff, apply dialog only
	CancelLabel  string
	ConfirmLabel string
	ActiveButton int // 0 = cancel, 1 = confirm
	Width        int
	Visible      bool
}

// NewConfirmDialog creates a hidden confirm dialog
func NewConfirmDialog() *ConfirmDialog {
	return &ConfirmDialog{Width: 50}
}

// ShowApply arms the dialog for applying a theme. When a manifest diff
// is available its excerpt renders below the body.
func (d *ConfirmDialog) ShowApply(theme *models.Theme, changes *diff.Result) {
	d.show(theme.Name, []string{"Apply this theme?", "Backup will be created."}, "Back", "Apply")
	if changes != nil {
		excerpt := NewDiffExcerpt()
		excerpt.Width = d.Width - 6
		excerpt.SetResult(changes)
		d.Changes = excerpt
	}
}

// ShowDelete arms the dialog for deleting a theme
func (d *ConfirmDialog) ShowDelete(theme *models.Theme) {
	d.show("Delete Theme?", []string{theme.Name, "This cannot be undone!"}, "Cancel", "Delete")
}

// ShowApplied arms the post-apply reboot decision
func (d *ConfirmDialog) ShowApplied(theme *models.Theme) {
	d.show("Theme Applied!",
		[]string{theme.Name, theme.Kind.AppliedResult() + ". Reboot now?"},
		"Later", "Reboot")
}

// ShowRestored arms the post-restore reboot decision
func (d *ConfirmDialog) ShowRestored() {
	d.show("Backup Restored!",
		[]string{"Previous theme restored.", "Reboot now?"},
		"Later", "Reboot")
}

func (d *ConfirmDialog) show(header string, body []string, cancel, confirm string) {
	d.Header = header
	d.Body = body
	d.Changes = nil
	d.CancelLabel = cancel
	d.ConfirmLabel = confirm
	d.ActiveButton = 0
	d.Visible = true
}

// Hide hides the dialog
func (d *ConfirmDialog) Hide() {
	d.Visible = false
}

// SwitchButton moves focus to the other button
func (d *ConfirmDialog) SwitchButton() {
	d.ActiveButton = 1 - d.ActiveButton
}

// FocusCancel puts focus on the cancel button
func (d *ConfirmDialog) FocusCancel() {
	d.ActiveButton = 0
}

// FocusConfirm puts focus on the confirm button
func (d *ConfirmDialog) FocusConfirm() {
	d.ActiveButton = 1
}

// Confirmed reports whether the confirm button is active
func (d *ConfirmDialog) Confirmed() bool {
	return d.ActiveButton == 1
}

// View renders the dialog
func (d *ConfirmDialog) View() string {
	if !d.Visible {
		return ""
	}

	var b strings.Builder
	b.WriteString(ui.PanelTitleStyle.Render(d.Header))
	b.WriteString("\n")
	b.WriteString(ui.DividerStyle.Render(strings.Repeat("─", d.Width-4)))
	b.WriteString("\n\n")

	for _, line := range d.Body {
		b.WriteString(ui.StatusTextStyle.Render(line))
		b.WriteString("\n")
	}

	if d.Changes != nil {
		b.WriteString("\n")
		b.WriteString(d.Changes.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	buttons := ui.RenderButton(d.CancelLabel, d.ActiveButton == 0) +
		"  " +
		ui.RenderButton(d.ConfirmLabel, d.ActiveButton == 1)
	b.WriteString(buttons)

	return ui.DialogStyle.Width(d.Width).Render(b.String())
}

// Popup is a timed notice. The model dismisses it after Duration or on
// any keypress.
type Popup struct {
	Header  string
	Body    string
	Level   string // "success", "error", "info"
	Visible bool
}

// NewPopup creates a hidden popup
func NewPopup() *Popup {
	return &Popup{}
}

// ShowSuccess shows a success notice
func (p *Popup) ShowSuccess(header, body string) {
	p.Header = header
	p.Body = body
	p.Level = "success"
	p.Visible = true
}

// ShowError shows an error notice
func (p *Popup) ShowError(header, body string) {
	p.Header = header
	p.Body = body
	p.Level = "error"
	p.Visible = true
}

// ShowInfo shows an informational notice
func (p *Popup) ShowInfo(header, body string) {
	p.Header = header
	p.Body = body
	p.Level = "info"
	p.Visible = true
}

// Hide hides the popup
func (p *Popup) Hide() {
	p.Visible = false
}

// Duration is how long the popup stays up before auto-dismissal.
// Errors linger a little longer.
func (p *Popup) Duration() time.Duration {
	if p.Level == "error" {
		return 3 * time.Second
	}
	return 2 * time.Second
}

// View renders the popup
func (p *Popup) View() string {
	if !p.Visible {
		return ""
	}
	text := p.Header
	if p.Body != "" {
		text += "\n" + p.Body
	}
	return ui.RenderNotification(p.Level, text)
}
