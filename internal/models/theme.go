package models

import "fmt"

// MaxNameRunes is the longest theme or animation name the engine accepts.
// Longer directory names are skipped at scan time and manifest name
// captures are cut at this bound.
const MaxNameRunes = 63

// DefaultMaxThemes caps how many catalog entries one scan collects.
const DefaultMaxThemes = 64

// maxLabelRunes is the widest list label the device menu renders
const maxLabelRunes = 26

// RestoreEntryLabel is the menu row appended after the themes when the
// backup slot exists. Selecting it rolls the active set back.
const RestoreEntryLabel = ">> Restore Previous <<"

// Placeholder rows for an empty catalog. The first covers a missing
// themes directory, the second a directory with nothing usable in it.
const (
	EmptyRootLabel    = "[No SD / No folder]"
	EmptyCatalogLabel = "[No themes found]"
)

// ThemeKind classifies the on-volume layout of a theme directory
type ThemeKind int

const (
	KindPack      ThemeKind = iota // manifest.txt at the theme root
	KindAnimsPack                  // manifest.txt under Anims/
	KindSingle                     // meta.txt only; manifest synthesized at apply
)

// String returns the type label shown on the info screen
func (k ThemeKind) String() string {
	switch k {
	case KindPack:
		return "Pack"
	case KindAnimsPack:
		return "Anim Pack"
	case KindSingle:
		return "Single"
	default:
		return "Unknown"
	}
}

// Prefix returns the marker prepended to menu labels
func (k ThemeKind) Prefix() string {
	switch k {
	case KindPack:
		return "[P] "
	case KindAnimsPack:
		return "[A] "
	case KindSingle:
		return "[S] "
	default:
		return "[?] "
	}
}

// AppliedResult returns the result line shown after a successful apply
func (k ThemeKind) AppliedResult() string {
	switch k {
	case KindPack:
		return "Pack merged"
	case KindAnimsPack:
		return "Anims merged"
	case KindSingle:
		return "Anim + manifest"
	default:
		return "Applied"
	}
}

// Theme is one catalog entry discovered under animation_packs/
type Theme struct {
	Name string    // directory name on the volume
	Kind ThemeKind // first-match classification: Pack > AnimsPack > Single
}

// MenuLabel returns the list label: kind prefix plus name, truncated to
// 26 runes with a trailing ellipsis. Truncation is rune-aware so
// multi-byte names are never split mid-character.
func (t *Theme) MenuLabel() string {
	label := []rune(t.Kind.Prefix() + t.Name)
	if len(label) > maxLabelRunes {
		return string(label[:maxLabelRunes-3]) + "..."
	}
	return string(label)
}

// ThemeInfo carries the numbers the info screen shows for one theme.
type ThemeInfo struct {
	AnimCount int
	SizeBytes uint64
}

// InfoLines renders the two detail lines shown for a theme.
func (t *Theme) InfoLines(info ThemeInfo) (string, string) {
	return fmt.Sprintf("Type: %s  Anims: %d", t.Kind, info.AnimCount),
		"Size: " + FormatSize(info.SizeBytes)
}

// FormatSize renders a byte count the way the device info screen does:
// one decimal place for megabytes, whole numbers below that.
func FormatSize(size uint64) string {
	const mib = 1024 * 1024
	switch {
	case size >= mib:
		return fmt.Sprintf("%d.%d MB", size/mib, size%mib*10/mib)
	case size >= 1024:
		return fmt.Sprintf("%d KB", size/1024)
	default:
		return fmt.Sprintf("%d B", size)
	}
}
