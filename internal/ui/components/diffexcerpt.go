package components

import (
	"fmt"
	"strings"

	"thememgr/internal/diff"
	"thememgr/internal/ui"
)

// DiffExcerpt renders the manifest changes an apply would make, compact
// enough to embed in the confirm dialog.
type DiffExcerpt struct {
	Result   *diff.Result
	MaxLines int
	Width    int
}

// NewDiffExcerpt creates an empty excerpt
func NewDiffExcerpt() *DiffExcerpt {
	return &DiffExcerpt{MaxLines: 6, Width: 44}
}

// SetResult installs the diff to render
func (e *DiffExcerpt) SetResult(r *diff.Result) {
	e.Result = r
}

// Stats renders the one-line change count
func (e *DiffExcerpt) Stats() string {
	r := e.Result
	if r == nil {
		return ""
	}
	if !r.OldExists {
		return ui.MutedStyle.Render("No active manifest to compare")
	}
	if r.Identical {
		return ui.MutedStyle.Render("No manifest changes")
	}

	var parts []string
	if r.LinesAdded > 0 {
		parts = append(parts, ui.DiffAddStyle.Render(fmt.Sprintf("+%d", r.LinesAdded)))
	}
	if r.LinesRemoved > 0 {
		parts = append(parts, ui.DiffDelStyle.Render(fmt.Sprintf("-%d", r.LinesRemoved)))
	}
	return strings.Join(parts, " ")
}

// View renders the stats line plus the changed lines, capped at MaxLines
func (e *DiffExcerpt) View() string {
	r := e.Result
	if r == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(e.Stats())

	if !r.OldExists || r.Identical {
		return b.String()
	}

	shown, hidden := 0, 0
	for _, line := range r.Lines {
		if line.Type == diff.Equal {
			continue
		}
		if shown >= e.MaxLines {
			hidden++
			continue
		}
		b.WriteString("\n")
		b.WriteString(e.formatLine(line))
		shown++
	}
	if hidden > 0 {
		b.WriteString("\n")
		b.WriteString(ui.MutedStyle.Render(fmt.Sprintf("... %d more changed lines", hidden)))
	}
	return b.String()
}

func (e *DiffExcerpt) formatLine(line diff.Line) string {
	content := line.Content
	if limit := e.Width - 2; limit > 3 && len(content) > limit {
		content = content[:limit-3] + "..."
	}

	switch line.Type {
	case diff.Insert:
		return ui.DiffAddStyle.Render("+ " + content)
	case diff.Delete:
		return ui.DiffDelStyle.Render("- " + content)
	default:
		return ui.DiffCtxStyle.Render("  " + content)
	}
}
