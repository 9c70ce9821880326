package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"thememgr/internal/manifest"
	"thememgr/internal/models"
	"thememgr/internal/storage"
)

// writeFile creates a file with the given content, creating parents as needed
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// makeManifest returns manifest content naming the given animations
func makeManifest(names ...string) string {
	var b strings.Builder
	b.WriteString(manifest.Header + "\nVersion: 1\n")
	for _, n := range names {
		fmt.Fprintf(&b, "\nName: %s\n", n)
	}
	return b.String()
}

// ============ Classification Tests ============

func TestScanClassifiesByPriority(t *testing.T) {
	root := t.TempDir()
	store := storage.New(root)

	// All three markers present: root manifest wins.
	writeFile(t, filepath.Join(store.ThemePath("all"), "manifest.txt"), makeManifest("a"))
	writeFile(t, filepath.Join(store.ThemePath("all"), "Anims", "manifest.txt"), makeManifest("b"))
	writeFile(t, filepath.Join(store.ThemePath("all"), "meta.txt"), "Width: 8\nHeight: 8\n")

	// Anims manifest plus meta: Anims wins.
	writeFile(t, filepath.Join(store.ThemePath("anims"), "Anims", "manifest.txt"), makeManifest("b"))
	writeFile(t, filepath.Join(store.ThemePath("anims"), "meta.txt"), "Width: 8\nHeight: 8\n")

	// Meta only.
	writeFile(t, filepath.Join(store.ThemePath("single"), "meta.txt"), "Width: 8\nHeight: 8\n")

	cat, err := New(store, 0).Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(cat.Themes) != 3 {
		t.Fatalf("found %d themes, want 3", len(cat.Themes))
	}

	want := map[string]models.ThemeKind{
		"all":    models.KindPack,
		"anims":  models.KindAnimsPack,
		"single": models.KindSingle,
	}
	for name, kind := range want {
		theme := cat.Find(name)
		if theme == nil {
			t.Errorf("theme %q not found", name)
			continue
		}
		if theme.Kind != kind {
			t.Errorf("theme %q kind = %v, want %v", name, theme.Kind, kind)
		}
	}
}

func TestScanSkipsNonThemes(t *testing.T) {
	root := t.TempDir()
	store := storage.New(root)

	// A directory with no markers and a stray file are both ignored.
	if err := os.MkdirAll(filepath.Join(store.ThemesDir(), "empty"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(store.ThemesDir(), "readme.txt"), "not a theme")
	writeFile(t, filepath.Join(store.ThemePath("real"), "meta.txt"), "Width: 8\nHeight: 8\n")

	cat, err := New(store, 0).Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(cat.Themes) != 1 || cat.Themes[0].Name != "real" {
		t.Errorf("themes = %v, want just [real]", cat.Themes)
	}
}

func TestScanSkipsOverlongNames(t *testing.T) {
	root := t.TempDir()
	store := storage.New(root)

	long := strings.Repeat("x", models.MaxNameRunes+1)
	writeFile(t, filepath.Join(store.ThemePath(long), "meta.txt"), "Width: 8\nHeight: 8\n")
	writeFile(t, filepath.Join(store.ThemePath(strings.Repeat("y", models.MaxNameRunes)), "meta.txt"), "Width: 8\nHeight: 8\n")

	cat, err := New(store, 0).Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(cat.Themes) != 1 {
		t.Fatalf("found %d themes, want 1", len(cat.Themes))
	}
	if got := len([]rune(cat.Themes[0].Name)); got != models.MaxNameRunes {
		t.Errorf("kept name has %d runes, want %d", got, models.MaxNameRunes)
	}
}

// ============ Capacity Tests ============

func TestScanStopsAtCapacity(t *testing.T) {
	root := t.TempDir()
	store := storage.New(root)

	for i := 0; i < 5; i++ {
		dir := store.ThemePath(fmt.Sprintf("theme%02d", i))
		writeFile(t, filepath.Join(dir, "meta.txt"), "Width: 8\nHeight: 8\n")
	}

	cat, err := New(store, 3).Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(cat.Themes) != 3 {
		t.Errorf("found %d themes, want capacity 3", len(cat.Themes))
	}
}

func TestNewClampsCapacity(t *testing.T) {
	s := New(storage.New(t.TempDir()), -1)
	if s.maxThemes != models.DefaultMaxThemes {
		t.Errorf("maxThemes = %d, want default %d", s.maxThemes, models.DefaultMaxThemes)
	}
}

// ============ Missing Root Tests ============

func TestScanMissingRoot(t *testing.T) {
	store := storage.New(filepath.Join(t.TempDir(), "no-such-volume"))

	cat, err := New(store, 0).Scan()
	if err != nil {
		t.Fatalf("Scan on missing root: %v", err)
	}
	if len(cat.Themes) != 0 {
		t.Errorf("found %d themes, want 0", len(cat.Themes))
	}
	if !cat.RootMissing {
		t.Error("RootMissing = false, want true")
	}
}

func TestScanEmptyRootIsNotMissing(t *testing.T) {
	root := t.TempDir()
	store := storage.New(root)
	if err := os.MkdirAll(store.ThemesDir(), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	cat, err := New(store, 0).Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if cat.RootMissing {
		t.Error("RootMissing = true for an existing empty dir")
	}
}

// ============ Backup Detection Tests ============

func TestScanDetectsBackup(t *testing.T) {
	root := t.TempDir()
	store := storage.New(root)
	if err := os.MkdirAll(store.ThemesDir(), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	cat, err := New(store, 0).Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if cat.HasBackup {
		t.Error("HasBackup = true with no backup slot")
	}

	if err := os.MkdirAll(store.BackupDir(), 0755); err != nil {
		t.Fatalf("mkdir backup: %v", err)
	}
	cat, err = New(store, 0).Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if !cat.HasBackup {
		t.Error("HasBackup = false with backup slot present")
	}
}

// ============ Describe Tests ============

func TestDescribePack(t *testing.T) {
	root := t.TempDir()
	store := storage.New(root)

	content := makeManifest("calm", "rain", "neon")
	writeFile(t, filepath.Join(store.ThemePath("pack"), "manifest.txt"), content)
	writeFile(t, filepath.Join(store.ThemePath("pack"), "calm", "meta.txt"), "Width: 8\nHeight: 8\n")

	theme := &models.Theme{Name: "pack", Kind: models.KindPack}
	info := New(store, 0).Describe(theme)

	if info.AnimCount != 3 {
		t.Errorf("AnimCount = %d, want 3", info.AnimCount)
	}
	wantSize := uint64(len(content) + len("Width: 8\nHeight: 8\n"))
	if info.SizeBytes != wantSize {
		t.Errorf("SizeBytes = %d, want %d", info.SizeBytes, wantSize)
	}
}

func TestDescribeSingleAlwaysOneAnim(t *testing.T) {
	root := t.TempDir()
	store := storage.New(root)
	writeFile(t, filepath.Join(store.ThemePath("solo"), "meta.txt"), "Width: 8\nHeight: 8\n")

	info := New(store, 0).Describe(&models.Theme{Name: "solo", Kind: models.KindSingle})
	if info.AnimCount != 1 {
		t.Errorf("AnimCount = %d, want 1", info.AnimCount)
	}
}

func TestDescribeUnreadableManifest(t *testing.T) {
	root := t.TempDir()
	store := storage.New(root)

	// Classified as Pack earlier but the manifest vanished since.
	info := New(store, 0).Describe(&models.Theme{Name: "gone", Kind: models.KindPack})
	if info.AnimCount != 0 {
		t.Errorf("AnimCount = %d, want 0", info.AnimCount)
	}
}
