package backup

import (
	"errors"
	"fmt"
	"os"

	"thememgr/internal/storage"
)

// ErrNoBackup is returned by Restore when the backup slot is empty.
var ErrNoBackup = errors.New("no backup found")

// DebugMode enables debug logging
var DebugMode = false

// debugLog logs a message if debug mode is enabled
func debugLog(format string, args ...interface{}) {
	if DebugMode {
		fmt.Fprintf(os.Stderr, "[BACKUP] "+format+"\n", args...)
	}
}

// Manager moves the active animation tree in and out of the volume's
// single backup slot. Both directions are one rename, so a crash leaves
// either the old tree or the new one, never a half copy.
type Manager struct {
	store *storage.Store
}

// New creates a Manager over one storage volume.
func New(store *storage.Store) *Manager {
	return &Manager{store: store}
}

// HasBackup reports whether the backup slot holds a previous tree.
func (m *Manager) HasBackup() bool {
	return storage.Exists(m.store.BackupDir())
}

// Backup moves the active tree into the backup slot, discarding
// whatever the slot held before. A missing active tree is a success
// with nothing to do, so a fresh volume still takes its first apply.
func (m *Manager) Backup() error {
	active := m.store.ActiveDir()
	if !storage.Exists(active) {
		debugLog("no active tree at %s, nothing to back up", active)
		return nil
	}

	slot := m.store.BackupDir()
	if storage.Exists(slot) {
		debugLog("discarding previous backup")
		if err := os.RemoveAll(slot); err != nil {
			return fmt.Errorf("discard old backup: %w", err)
		}
	}

	if err := os.Rename(active, slot); err != nil {
		return fmt.Errorf("move active tree to backup: %w", err)
	}
	debugLog("backed up %s -> %s", active, slot)
	return nil
}
