package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"thememgr/internal/manifest"
	"thememgr/internal/models"
	"thememgr/internal/storage"
)

// DebugMode enables debug logging
var DebugMode = false

// debugLog logs a message if debug mode is enabled
func debugLog(format string, args ...interface{}) {
	if DebugMode {
		fmt.Fprintf(os.Stderr, "[SCANNER] "+format+"\n", args...)
	}
}

// Catalog is the result of one scan pass over the volume.
type Catalog struct {
	Themes      []*models.Theme
	HasBackup   bool // backup slot present on the volume
	RootMissing bool // themes directory absent entirely
}

// Find returns the catalog entry with the given name, or nil.
func (c *Catalog) Find(name string) *models.Theme {
	for _, t := range c.Themes {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// Scanner enumerates theme directories and classifies their layout
type Scanner struct {
	store     *storage.Store
	maxThemes int
}

// New creates a Scanner over one storage volume. maxThemes bounds the
// catalog; values below 1 fall back to models.DefaultMaxThemes.
func New(store *storage.Store, maxThemes int) *Scanner {
	if maxThemes < 1 {
		maxThemes = models.DefaultMaxThemes
	}
	return &Scanner{store: store, maxThemes: maxThemes}
}

// Scan walks the themes directory and classifies every entry in
// directory-name order. A missing themes directory yields an empty
// catalog and no error. Collection stops silently once maxThemes
// entries are found.
func (s *Scanner) Scan() (*Catalog, error) {
	start := time.Now()
	cat := &Catalog{HasBackup: storage.Exists(s.store.BackupDir())}

	entries, err := os.ReadDir(s.store.ThemesDir())
	if err != nil {
		if os.IsNotExist(err) {
			debugLog("themes dir missing at %s", s.store.ThemesDir())
			cat.RootMissing = true
			return cat, nil
		}
		return nil, fmt.Errorf("scan themes dir: %w", err)
	}

	for _, entry := range entries {
		if len(cat.Themes) >= s.maxThemes {
			debugLog("catalog full at %d entries, stopping", s.maxThemes)
			break
		}
		if !entry.IsDir() {
			continue
		}

		name := entry.Name()
		if utf8.RuneCountInString(name) > models.MaxNameRunes {
			debugLog("skipping %q: name too long", name)
			continue
		}

		kind, ok := s.classify(name)
		if !ok {
			continue
		}
		cat.Themes = append(cat.Themes, &models.Theme{Name: name, Kind: kind})
	}

	debugLog("found %d themes (backup=%v) in %v", len(cat.Themes), cat.HasBackup, time.Since(start))
	return cat, nil
}

// classify probes one directory for layout markers in priority order:
// a root manifest wins over Anims/manifest.txt, which wins over a bare
// meta.txt. A directory with no marker is not a theme.
func (s *Scanner) classify(name string) (models.ThemeKind, bool) {
	dir := s.store.ThemePath(name)
	switch {
	case storage.Exists(filepath.Join(dir, storage.ManifestFile)):
		return models.KindPack, true
	case storage.Exists(filepath.Join(dir, storage.AnimsDirName, storage.ManifestFile)):
		return models.KindAnimsPack, true
	case storage.Exists(filepath.Join(dir, storage.MetaFile)):
		return models.KindSingle, true
	default:
		return 0, false
	}
}

// Describe computes the info screen numbers for one theme: the count of
// animations its manifest names and the size of its directory. A Single
// theme is always one animation; an unreadable manifest counts zero.
func (s *Scanner) Describe(t *models.Theme) models.ThemeInfo {
	info := models.ThemeInfo{AnimCount: 1}
	if t.Kind != models.KindSingle {
		doc, err := manifest.Parse(s.store.ManifestPath(t))
		if err != nil {
			debugLog("describe %s: %v", t.Name, err)
			info.AnimCount = 0
		} else {
			info.AnimCount = doc.Entries
		}
	}
	info.SizeBytes = storage.DirSize(s.store.ThemePath(t.Name))
	return info
}
