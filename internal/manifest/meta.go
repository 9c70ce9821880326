package manifest

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Dimension bounds a meta file may declare. They match the device screen.
const (
	MaxWidth  = 128
	MaxHeight = 64
)

// Meta holds the frame dimensions declared by an animation's meta.txt.
type Meta struct {
	Width  int
	Height int
}

// RowBytes returns the packed bytes per bitmap row, 8 pixels per byte.
func (m Meta) RowBytes() int {
	return (m.Width + 7) / 8
}

// FrameSize returns the exact decoded size of one frame in bytes.
func (m Meta) FrameSize() int {
	return m.RowBytes() * m.Height
}

// ParseMeta reads the meta file at path and returns the declared frame
// dimensions. Both tokens must be present, numeric and in range or the
// parse fails as a whole; there is no partial result.
func ParseMeta(path string) (Meta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Meta{}, fmt.Errorf("read meta: %w", err)
	}
	return parseMeta(string(data))
}

func parseMeta(content string) (Meta, error) {
	width, err := intToken(content, "Width:")
	if err != nil {
		return Meta{}, err
	}
	height, err := intToken(content, "Height:")
	if err != nil {
		return Meta{}, err
	}

	if width <= 0 || width > MaxWidth {
		return Meta{}, fmt.Errorf("meta: width %d out of range (0,%d]", width, MaxWidth)
	}
	if height <= 0 || height > MaxHeight {
		return Meta{}, fmt.Errorf("meta: height %d out of range (0,%d]", height, MaxHeight)
	}

	return Meta{Width: width, Height: height}, nil
}

// intToken finds the first occurrence of token and parses the integer
// that follows it on the same line.
func intToken(content, token string) (int, error) {
	i := strings.Index(content, token)
	if i < 0 {
		return 0, fmt.Errorf("meta: missing %q", token)
	}

	rest := strings.TrimLeft(content[i+len(token):], " \t")
	j := 0
	for j < len(rest) && rest[j] >= '0' && rest[j] <= '9' {
		j++
	}
	if j == 0 {
		return 0, fmt.Errorf("meta: malformed %q value", token)
	}

	n, err := strconv.Atoi(rest[:j])
	if err != nil {
		return 0, fmt.Errorf("meta: malformed %q value: %w", token, err)
	}
	return n, nil
}
