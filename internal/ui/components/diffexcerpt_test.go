package components

import (
	"strings"
	"testing"

	"thememgr/internal/diff"
)

func TestNewDiffExcerpt(t *testing.T) {
	e := NewDiffExcerpt()

	if e == nil {
		t.Fatal("NewDiffExcerpt should return a DiffExcerpt")
	}
	if e.MaxLines != 6 {
		t.Errorf("Expected MaxLines 6, got %d", e.MaxLines)
	}
	if e.Width != 44 {
		t.Errorf("Expected width 44, got %d", e.Width)
	}
	if e.Result != nil {
		t.Error("Result should start nil")
	}
}

func TestDiffExcerpt_SetResult(t *testing.T) {
	e := NewDiffExcerpt()
	r := diff.ComputeText("a\n", "b\n")

	e.SetResult(r)

	if e.Result != r {
		t.Error("Result should be set")
	}
}

func TestDiffExcerpt_Stats(t *testing.T) {
	e := NewDiffExcerpt()

	// Nil result
	if e.Stats() != "" {
		t.Error("Stats should be empty without a result")
	}

	// No active manifest on the device
	e.Result = &diff.Result{OldExists: false, NewExists: true}
	if !strings.Contains(e.Stats(), "No active manifest") {
		t.Errorf("Expected missing-manifest notice, got %q", e.Stats())
	}

	// Identical content
	e.Result = &diff.Result{OldExists: true, NewExists: true, Identical: true}
	if !strings.Contains(e.Stats(), "No manifest changes") {
		t.Errorf("Expected no-changes notice, got %q", e.Stats())
	}

	// Real changes
	e.Result = diff.ComputeText("keep\nold\n", "keep\nnew\nextra\n")
	stats := e.Stats()
	if !strings.Contains(stats, "+2") {
		t.Errorf("Expected +2 in stats, got %q", stats)
	}
	if !strings.Contains(stats, "-1") {
		t.Errorf("Expected -1 in stats, got %q", stats)
	}
}

func TestDiffExcerpt_View(t *testing.T) {
	e := NewDiffExcerpt()

	// Nil result
	if e.View() != "" {
		t.Error("View should be empty without a result")
	}

	e.Result = diff.ComputeText("keep\nold\n", "keep\nnew\n")
	view := e.View()
	if !strings.Contains(view, "old") {
		t.Errorf("Expected removed line in view, got %q", view)
	}
	if !strings.Contains(view, "new") {
		t.Errorf("Expected added line in view, got %q", view)
	}
}

func TestDiffExcerpt_View_SkipsEqualLines(t *testing.T) {
	e := NewDiffExcerpt()
	e.Result = diff.ComputeText("context\nold\n", "context\nnew\n")

	if strings.Contains(e.View(), "context") {
		t.Error("View should omit unchanged lines")
	}
}

func TestDiffExcerpt_View_CapsLines(t *testing.T) {
	e := NewDiffExcerpt()
	e.MaxLines = 2
	e.Result = diff.ComputeText("", "one\ntwo\nthree\nfour\n")

	view := e.View()
	if !strings.Contains(view, "more changed lines") {
		t.Errorf("Expected overflow notice, got %q", view)
	}
	if strings.Contains(view, "four") {
		t.Error("Lines past the cap should not render")
	}
}

func TestDiffExcerpt_View_Identical(t *testing.T) {
	e := NewDiffExcerpt()
	e.Result = diff.ComputeText("same\n", "same\n")

	view := e.View()
	if !strings.Contains(view, "No manifest changes") {
		t.Errorf("Expected no-changes notice, got %q", view)
	}
	if strings.Contains(view, "same") {
		t.Error("Identical content should not list lines")
	}
}

func TestDiffExcerpt_FormatLine_Truncates(t *testing.T) {
	e := NewDiffExcerpt()
	e.Width = 20

	long := strings.Repeat("a", 100)
	out := e.formatLine(diff.Line{Type: diff.Insert, Content: long})
	if !strings.Contains(out, "...") {
		t.Error("Long lines should truncate with an ellipsis")
	}

	short := e.formatLine(diff.Line{Type: diff.Delete, Content: "tiny"})
	if !strings.Contains(short, "tiny") {
		t.Errorf("Short lines should pass through, got %q", short)
	}
}
