package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// ============ Parse Tests ============

func TestParse_MissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil {
		t.Error("expected error for missing manifest")
	}
}

func TestParse_NoHeader(t *testing.T) {
	// Name entries without the header must not be counted.
	path := writeFile(t, t.TempDir(), "manifest.txt", "Name: A\nName: B\n")

	doc, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if doc.Valid {
		t.Error("manifest without header should be invalid")
	}
	if doc.Entries != 0 {
		t.Errorf("invalid manifest should report 0 entries, got %d", doc.Entries)
	}
}

func TestParse_CountsLineInitialNames(t *testing.T) {
	content := Header + "\nVersion: 1\n\nName: A\nWeight: 5\nName: B\n"
	path := writeFile(t, t.TempDir(), "manifest.txt", content)

	doc, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !doc.Valid {
		t.Error("expected valid manifest")
	}
	if doc.Entries != 2 {
		t.Errorf("Entries = %d, want 2", doc.Entries)
	}
}

func TestParse_MidLineNameDoesNotCount(t *testing.T) {
	doc := ParseBytes([]byte(Header + "\nXName: C\nFilename: frame.bm\n"))
	if doc.Entries != 0 {
		t.Errorf("mid-line Name: counted, Entries = %d", doc.Entries)
	}
}

func TestParse_NameAtBufferStart(t *testing.T) {
	// A Name: at the very start of the file counts even though no
	// newline precedes it; the header may appear later.
	doc := ParseBytes([]byte("Name: A\n" + Header + "\n"))
	if !doc.Valid {
		t.Error("expected valid manifest")
	}
	if doc.Entries != 1 {
		t.Errorf("Entries = %d, want 1", doc.Entries)
	}
}

func TestParse_CRLF(t *testing.T) {
	doc := ParseBytes([]byte(Header + "\r\nName: A\r\nName: B\r\n"))
	if doc.Entries != 2 {
		t.Errorf("CRLF manifest Entries = %d, want 2", doc.Entries)
	}
}

func TestParse_BareCRIsNotALineStart(t *testing.T) {
	// A lone carriage return does not start a new line.
	doc := ParseBytes([]byte(Header + "\nfoo\rName: A\n"))
	if doc.Entries != 0 {
		t.Errorf("Name after bare CR counted, Entries = %d", doc.Entries)
	}
}

// ============ FirstName Tests ============

func TestFirstName(t *testing.T) {
	content := Header + "\n\nName:   dolphin_idle  \nName: second\n"
	path := writeFile(t, t.TempDir(), "manifest.txt", content)

	name, ok := FirstName(path)
	if !ok {
		t.Fatal("expected a first name")
	}
	if name != "dolphin_idle" {
		t.Errorf("FirstName = %q, want %q", name, "dolphin_idle")
	}
}

func TestFirstName_CRTerminated(t *testing.T) {
	name, ok := firstName(Header + "\nName: winter\r\n")
	if !ok || name != "winter" {
		t.Errorf("FirstName = %q, %v, want %q, true", name, ok, "winter")
	}
}

func TestFirstName_LengthCap(t *testing.T) {
	long := strings.Repeat("a", 100)
	name, ok := firstName("Name: " + long + "\n")
	if !ok {
		t.Fatal("expected a name")
	}
	if len([]rune(name)) != 63 {
		t.Errorf("name length = %d runes, want 63", len([]rune(name)))
	}
}

func TestFirstName_Missing(t *testing.T) {
	if _, ok := firstName(Header + "\nVersion: 1\n"); ok {
		t.Error("expected no name")
	}
}

func TestFirstName_EmptyValue(t *testing.T) {
	// Only the first Name: line is consulted; an empty one means no name.
	if _, ok := firstName("Name:   \nName: real\n"); ok {
		t.Error("expected no name when the first entry is blank")
	}
}

func TestFirstName_UnreadableFile(t *testing.T) {
	if _, ok := FirstName(filepath.Join(t.TempDir(), "gone.txt")); ok {
		t.Error("expected no name for missing file")
	}
}

// ============ Names Tests ============

func TestNames(t *testing.T) {
	content := Header + "\nVersion: 1\n\nName: idle\nWeight: 5\nName:   level_up  \nName:\nName: sleep\r\n"
	path := writeFile(t, t.TempDir(), "manifest.txt", content)

	got := Names(path)
	want := []string{"idle", "level_up", "sleep"}
	if len(got) != len(want) {
		t.Fatalf("Names = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNames_MissingFile(t *testing.T) {
	if names := Names(filepath.Join(t.TempDir(), "gone.txt")); names != nil {
		t.Errorf("Names on missing file = %v, want nil", names)
	}
}

// ============ Synthesize Tests ============

func TestSynthesize_Exact(t *testing.T) {
	want := "Filetype: Flipper Animation Manifest\n" +
		"Version: 1\n" +
		"\n" +
		"Name: Neon\n" +
		"Min butthurt: 0\n" +
		"Max butthurt: 14\n" +
		"Min level: 1\n" +
		"Max level: 30\n" +
		"Weight: 5\n"

	if got := Synthesize("Neon"); got != want {
		t.Errorf("Synthesize mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestSynthesize_RoundTrip(t *testing.T) {
	content := Synthesize("Aurora")

	doc := ParseBytes([]byte(content))
	if !doc.Valid {
		t.Error("synthesized manifest should be valid")
	}
	if doc.Entries != 1 {
		t.Errorf("synthesized manifest Entries = %d, want 1", doc.Entries)
	}

	name, ok := firstName(content)
	if !ok || name != "Aurora" {
		t.Errorf("synthesized FirstName = %q, %v, want Aurora, true", name, ok)
	}
}
