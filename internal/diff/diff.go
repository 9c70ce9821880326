package diff

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"thememgr/internal/manifest"
	"thememgr/internal/models"
	"thememgr/internal/storage"
)

// Type classifies one diff line
type Type int

const (
	Equal Type = iota
	Insert
	Delete
)

// Line is a single line of diff output
type Line struct {
	Type    Type
	Content string
}

// Result describes how the installed manifest would change.
type Result struct {
	OldExists    bool
	NewExists    bool
	Identical    bool
	Lines        []Line
	LinesAdded   int
	LinesRemoved int
}

// ComputeText diffs two manifest texts line by line.
func ComputeText(oldText, newText string) *Result {
	r := &Result{OldExists: true, NewExists: true}
	if oldText == newText {
		r.Identical = true
		return r
	}

	dmp := diffmatchpatch.New()
	chars1, chars2, lineArray := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffMain(chars1, chars2, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)
	diffs = dmp.DiffCleanupSemantic(diffs)

	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				r.Lines = append(r.Lines, Line{Type: Insert, Content: line})
				r.LinesAdded++
			case diffmatchpatch.DiffDelete:
				r.Lines = append(r.Lines, Line{Type: Delete, Content: line})
				r.LinesRemoved++
			default:
				r.Lines = append(r.Lines, Line{Type: Equal, Content: line})
			}
		}
	}
	return r
}

// ForApply previews how the active manifest would change if the theme
// were applied now. Single themes compare against their synthesized
// manifest, since none exists on disk before the apply.
func ForApply(store *storage.Store, t *models.Theme) *Result {
	oldText, oldErr := os.ReadFile(filepath.Join(store.ActiveDir(), storage.ManifestFile))

	var newText []byte
	var newErr error
	if t.Kind == models.KindSingle {
		newText = []byte(manifest.Synthesize(t.Name))
	} else {
		newText, newErr = os.ReadFile(store.ManifestPath(t))
	}

	r := ComputeText(string(oldText), string(newText))
	r.OldExists = oldErr == nil
	r.NewExists = newErr == nil
	return r
}

// Unified renders the diff with the usual +/-/space line prefixes.
func (r *Result) Unified() string {
	var b strings.Builder
	for _, line := range r.Lines {
		switch line.Type {
		case Insert:
			b.WriteByte('+')
		case Delete:
			b.WriteByte('-')
		default:
			b.WriteByte(' ')
		}
		b.WriteString(line.Content)
		b.WriteByte('\n')
	}
	return b.String()
}

// HasChanges returns true if there are any changes
func (r *Result) HasChanges() bool {
	return !r.Identical
}

// Summary returns a brief summary of changes
func (r *Result) Summary() string {
	if r.Identical || (r.LinesAdded == 0 && r.LinesRemoved == 0) {
		return "No changes"
	}

	var parts []string
	if r.LinesAdded > 0 {
		parts = append(parts, "+"+strconv.Itoa(r.LinesAdded))
	}
	if r.LinesRemoved > 0 {
		parts = append(parts, "-"+strconv.Itoa(r.LinesRemoved))
	}
	return strings.Join(parts, " ")
}
