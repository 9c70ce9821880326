package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"thememgr/internal/models"
)

// On-volume layout consumed by the device firmware.
const (
	ThemesDirName = "animation_packs"
	ActiveDirName = "dolphin"
	BackupDirName = "dolphin_backup"
	ManifestFile  = "manifest.txt"
	MetaFile      = "meta.txt"
	AnimsDirName  = "Anims"
	FrameFile     = "frame_0.bm"
)

// DebugMode enables debug logging
var DebugMode = false

// debugLog logs a message if debug mode is enabled
func debugLog(format string, args ...interface{}) {
	if DebugMode {
		fmt.Fprintf(os.Stderr, "[STORAGE] "+format+"\n", args...)
	}
}

// Store resolves paths inside one storage volume and carries the tree
// primitives shared by scan, apply, backup and delete.
type Store struct {
	root string
}

// New creates a Store rooted at the volume mount point.
func New(root string) *Store {
	return &Store{root: root}
}

// Root returns the volume mount point.
func (s *Store) Root() string { return s.root }

// ThemesDir returns the directory themes are discovered under.
func (s *Store) ThemesDir() string { return filepath.Join(s.root, ThemesDirName) }

// ActiveDir returns the tree the device firmware reads.
func (s *Store) ActiveDir() string { return filepath.Join(s.root, ActiveDirName) }

// BackupDir returns the single backup slot.
func (s *Store) BackupDir() string { return filepath.Join(s.root, BackupDirName) }

// ThemePath returns the source directory of a named theme.
func (s *Store) ThemePath(name string) string { return filepath.Join(s.ThemesDir(), name) }

// ManifestPath returns the manifest consulted for a theme, or "" for
// Single themes whose manifest is synthesized at apply time.
func (s *Store) ManifestPath(t *models.Theme) string {
	switch t.Kind {
	case models.KindPack:
		return filepath.Join(s.ThemePath(t.Name), ManifestFile)
	case models.KindAnimsPack:
		return filepath.Join(s.ThemePath(t.Name), AnimsDirName, ManifestFile)
	default:
		return ""
	}
}

// AnimDir returns the directory of one animation inside a theme. Pack
// themes nest animations at the theme root, AnimsPack under Anims/, and
// a Single theme is itself the animation.
func (s *Store) AnimDir(t *models.Theme, anim string) string {
	switch t.Kind {
	case models.KindAnimsPack:
		return filepath.Join(s.ThemePath(t.Name), AnimsDirName, anim)
	case models.KindSingle:
		return s.ThemePath(t.Name)
	default:
		return filepath.Join(s.ThemePath(t.Name), anim)
	}
}

// RemoveTheme recursively removes the named theme's source directory.
// The caller must rescan on success; on failure whatever the filesystem
// left behind stays as-is.
func (s *Store) RemoveTheme(name string) error {
	if name == "" {
		return fmt.Errorf("remove theme: empty name")
	}
	debugLog("removing theme %s", name)
	return os.RemoveAll(s.ThemePath(name))
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDir creates path and any missing parents.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// DirSize returns the total size in bytes of all regular files under
// path. An unreadable directory contributes 0 instead of failing the
// whole sum.
func DirSize(path string) uint64 {
	entries, err := os.ReadDir(path)
	if err != nil {
		return 0
	}

	var total uint64
	for _, entry := range entries {
		sub := filepath.Join(path, entry.Name())
		if entry.IsDir() {
			total += DirSize(sub)
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		total += uint64(info.Size())
	}
	return total
}

// MergeTree additively copies src into dst: source files are added or
// overwritten at the destination, destination files absent from src are
// left untouched. This is tree union, never a mirrored replace.
func MergeTree(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("merge source: %w", err)
	}

	if err := os.MkdirAll(dst, srcInfo.Mode()); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := MergeTree(srcPath, dstPath); err != nil {
				return err
			}
		} else {
			if err := CopyFile(srcPath, dstPath); err != nil {
				return err
			}
		}
	}
	return nil
}

// CopyFile copies a single file, creating parent directories and
// preserving the source mode.
func CopyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcInfo.Mode())
	if err != nil {
		return err
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return err
	}
	return nil
}

// RemoveTree recursively removes path; a missing path is a no-op.
func RemoveTree(path string) error {
	return os.RemoveAll(path)
}
