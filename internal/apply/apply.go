package apply

import (
	"fmt"
	"os"
	"path/filepath"

	"thememgr/internal/backup"
	"thememgr/internal/manifest"
	"thememgr/internal/models"
	"thememgr/internal/storage"
)

// DebugMode enables debug logging
var DebugMode = false

// debugLog logs a message if debug mode is enabled
func debugLog(format string, args ...interface{}) {
	if DebugMode {
		fmt.Fprintf(os.Stderr, "[APPLY] "+format+"\n", args...)
	}
}

// Applier installs themes into the active animation tree.
type Applier struct {
	store   *storage.Store
	backups *backup.Manager
}

// New creates an Applier over one storage volume.
func New(store *storage.Store, backups *backup.Manager) *Applier {
	return &Applier{store: store, backups: backups}
}

// Apply installs a theme. The current active tree is always moved into
// the backup slot first; if that move fails nothing else is attempted.
// The theme's files are then merged into a fresh active tree according
// to its layout. Single themes get a synthesized manifest naming just
// their one animation.
func (a *Applier) Apply(t *models.Theme) error {
	if err := a.backups.Backup(); err != nil {
		return fmt.Errorf("backup before apply: %w", err)
	}

	active := a.store.ActiveDir()
	if err := storage.EnsureDir(active); err != nil {
		return fmt.Errorf("create active tree: %w", err)
	}

	themeDir := a.store.ThemePath(t.Name)
	switch t.Kind {
	case models.KindPack:
		if err := storage.MergeTree(themeDir, active); err != nil {
			return fmt.Errorf("merge pack: %w", err)
		}

	case models.KindAnimsPack:
		if err := storage.MergeTree(filepath.Join(themeDir, storage.AnimsDirName), active); err != nil {
			return fmt.Errorf("merge anims: %w", err)
		}

	case models.KindSingle:
		if err := storage.MergeTree(themeDir, filepath.Join(active, t.Name)); err != nil {
			return fmt.Errorf("merge animation: %w", err)
		}
		content := manifest.Synthesize(t.Name)
		if err := os.WriteFile(filepath.Join(active, storage.ManifestFile), []byte(content), 0644); err != nil {
			return fmt.Errorf("write manifest: %w", err)
		}

	default:
		return fmt.Errorf("apply %s: unknown theme kind %d", t.Name, t.Kind)
	}

	debugLog("applied %s (%s)", t.Name, t.Kind)
	return nil
}
