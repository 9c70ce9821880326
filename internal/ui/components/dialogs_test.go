package components

import (
	"strings"
	"testing"
	"time"

	"thememgr/internal/diff"
	"thememgr/internal/models"
)

func TestConfirmDialog_ShowApply(t *testing.T) {
	d := NewConfirmDialog()
	theme := &models.Theme{Name: "calm", Kind: models.KindPack}

	d.ShowApply(theme, nil)

	if !d.Visible {
		t.Fatal("Dialog should be visible after ShowApply")
	}
	if d.Header != "calm" {
		t.Errorf("Expected theme name as header, got %q", d.Header)
	}
	if d.Body[0] != "Apply this theme?" || d.Body[1] != "Backup will be created." {
		t.Errorf("Unexpected body: %v", d.Body)
	}
	if d.CancelLabel != "Back" || d.ConfirmLabel != "Apply" {
		t.Errorf("Unexpected buttons: %q / %q", d.CancelLabel, d.ConfirmLabel)
	}
	if d.Confirmed() {
		t.Error("Cancel should start active so enter cannot apply by accident")
	}
}

func TestConfirmDialog_ShowApply_WithDiff(t *testing.T) {
	d := NewConfirmDialog()
	changes := diff.ComputeText(
		"Filetype: Flipper Animation Manifest\nName: old\n",
		"Filetype: Flipper Animation Manifest\nName: new\nName: extra\n",
	)
	d.ShowApply(&models.Theme{Name: "calm"}, changes)

	if d.Changes == nil {
		t.Fatal("ShowApply with a diff should install the excerpt")
	}
	view := d.View()
	if !strings.Contains(view, "+2") || !strings.Contains(view, "-1") {
		t.Errorf("View should include the change counts, got:\n%s", view)
	}
	if !strings.Contains(view, "Name: extra") {
		t.Error("View should include the changed manifest lines")
	}
}

func TestConfirmDialog_ShowDelete(t *testing.T) {
	d := NewConfirmDialog()
	d.ShowDelete(&models.Theme{Name: "storm"})

	if d.Header != "Delete Theme?" {
		t.Errorf("Expected Delete Theme? header, got %q", d.Header)
	}
	if d.Body[0] != "storm" || d.Body[1] != "This cannot be undone!" {
		t.Errorf("Unexpected body: %v", d.Body)
	}
	if d.CancelLabel != "Cancel" || d.ConfirmLabel != "Delete" {
		t.Errorf("Unexpected buttons: %q / %q", d.CancelLabel, d.ConfirmLabel)
	}
}

func TestConfirmDialog_ShowApplied(t *testing.T) {
	d := NewConfirmDialog()
	d.ShowApplied(&models.Theme{Name: "calm", Kind: models.KindAnimsPack})

	if d.Header != "Theme Applied!" {
		t.Errorf("Expected Theme Applied! header, got %q", d.Header)
	}
	if d.Body[1] != "Anims merged. Reboot now?" {
		t.Errorf("Expected kind result in body, got %q", d.Body[1])
	}
	if d.CancelLabel != "Later" || d.ConfirmLabel != "Reboot" {
		t.Errorf("Unexpected buttons: %q / %q", d.CancelLabel, d.ConfirmLabel)
	}
}

func TestConfirmDialog_ShowRestored(t *testing.T) {
	d := NewConfirmDialog()
	d.ShowRestored()

	if d.Header != "Backup Restored!" {
		t.Errorf("Expected Backup Restored! header, got %q", d.Header)
	}
	if d.Body[0] != "Previous theme restored." {
		t.Errorf("Unexpected body: %v", d.Body)
	}
}

func TestConfirmDialog_SwitchButton(t *testing.T) {
	d := NewConfirmDialog()
	d.ShowDelete(&models.Theme{Name: "x"})

	d.SwitchButton()
	if !d.Confirmed() {
		t.Error("SwitchButton should move focus to confirm")
	}

	d.SwitchButton()
	if d.Confirmed() {
		t.Error("SwitchButton should move focus back to cancel")
	}

	d.FocusConfirm()
	if !d.Confirmed() {
		t.Error("FocusConfirm should activate the confirm button")
	}
	d.FocusCancel()
	if d.Confirmed() {
		t.Error("FocusCancel should activate the cancel button")
	}
}

func TestConfirmDialog_ShowResetsButton(t *testing.T) {
	d := NewConfirmDialog()
	d.ShowApply(&models.Theme{Name: "x"}, diff.ComputeText("a\n", "b\n"))
	d.FocusConfirm()

	// A fresh dialog must not inherit the previous focus or diff
	d.ShowDelete(&models.Theme{Name: "y"})
	if d.Confirmed() {
		t.Error("Show should reset focus to cancel")
	}
	if d.Changes != nil {
		t.Error("Show should clear a stale diff excerpt")
	}
}

func TestConfirmDialog_View_Hidden(t *testing.T) {
	d := NewConfirmDialog()
	if d.View() != "" {
		t.Error("Hidden dialog should render nothing")
	}

	d.ShowDelete(&models.Theme{Name: "x"})
	d.Hide()
	if d.View() != "" {
		t.Error("Hide should blank the view")
	}
}

func TestPopup_Levels(t *testing.T) {
	p := NewPopup()

	p.ShowSuccess("Deleted!", "Theme removed from SD")
	if !p.Visible || p.Level != "success" {
		t.Error("ShowSuccess should make a visible success popup")
	}
	if p.Duration() != 2*time.Second {
		t.Errorf("Success popups should linger 2s, got %v", p.Duration())
	}

	p.ShowError("Apply failed!", "Check SD card.")
	if p.Level != "error" {
		t.Error("ShowError should switch the level")
	}
	if p.Duration() != 3*time.Second {
		t.Errorf("Error popups should linger 3s, got %v", p.Duration())
	}
}

func TestPopup_View(t *testing.T) {
	p := NewPopup()
	if p.View() != "" {
		t.Error("Hidden popup should render nothing")
	}

	p.ShowError("No backup found!", "")
	view := p.View()
	if !strings.Contains(view, "No backup found!") {
		t.Error("View should contain the popup header")
	}

	p.Hide()
	if p.View() != "" {
		t.Error("Hide should blank the view")
	}
}
