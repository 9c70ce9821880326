package backup

import (
	"fmt"
	"os"

	"thememgr/internal/storage"
)

// Restore moves the backup slot back over the active tree, consuming
// the slot. The active tree is checked for nothing: whatever is there
// is removed to make way. With no backup present nothing is touched.
func (m *Manager) Restore() error {
	slot := m.store.BackupDir()
	if !storage.Exists(slot) {
		return ErrNoBackup
	}

	active := m.store.ActiveDir()
	if storage.Exists(active) {
		if err := os.RemoveAll(active); err != nil {
			return fmt.Errorf("remove active tree: %w", err)
		}
	}

	if err := os.Rename(slot, active); err != nil {
		return fmt.Errorf("move backup into place: %w", err)
	}
	debugLog("restored %s -> %s", slot, active)
	return nil
}
