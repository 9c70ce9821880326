package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	"thememgr/internal/bitmap"
	"thememgr/internal/manifest"
	"thememgr/internal/models"
	"thememgr/internal/storage"
)

// DebugMode enables debug logging
var DebugMode = false

// debugLog logs a message if debug mode is enabled
func debugLog(format string, args ...interface{}) {
	if DebugMode {
		fmt.Fprintf(os.Stderr, "[PREVIEW] "+format+"\n", args...)
	}
}

// Frame is one decoded animation frame. Pixels are row-packed, one bit
// each, with bit 0 of every byte being the leftmost pixel of its run.
type Frame struct {
	Width  int
	Height int
	Pix    []byte
}

// At reports whether the pixel at (x, y) is set. Set pixels are the
// dark ones on the device LCD.
func (f *Frame) At(x, y int) bool {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return false
	}
	rowBytes := (f.Width + 7) / 8
	return f.Pix[y*rowBytes+x/8]>>uint(x%8)&1 == 1
}

// Loader resolves and decodes the first frame of a theme's first
// animation. Every failure is a quiet "no preview": a theme with a
// broken or missing frame is still browsable and appliable.
type Loader struct {
	store *storage.Store
}

// New creates a Loader over one storage volume.
func New(store *storage.Store) *Loader {
	return &Loader{store: store}
}

// Load returns the first frame of the theme's first animation, or
// (nil, false) when no preview can be produced.
func (l *Loader) Load(t *models.Theme) (*Frame, bool) {
	animDir, ok := l.resolveAnimDir(t)
	if !ok {
		return nil, false
	}

	meta, err := manifest.ParseMeta(filepath.Join(animDir, storage.MetaFile))
	if err != nil {
		debugLog("%s: %v", t.Name, err)
		return nil, false
	}

	data, err := os.ReadFile(filepath.Join(animDir, storage.FrameFile))
	if err != nil {
		debugLog("%s: %v", t.Name, err)
		return nil, false
	}
	if len(data) == 0 || len(data) > bitmap.MaxFrameFile {
		debugLog("%s: frame file is %d bytes, refusing", t.Name, len(data))
		return nil, false
	}

	pix, err := bitmap.Decode(data, meta.FrameSize())
	if err != nil {
		debugLog("%s: %v", t.Name, err)
		return nil, false
	}

	return &Frame{Width: meta.Width, Height: meta.Height, Pix: pix}, true
}

// resolveAnimDir finds the directory of the theme's first animation. A
// Single theme is its own animation; the pack kinds take the first name
// their manifest lists.
func (l *Loader) resolveAnimDir(t *models.Theme) (string, bool) {
	if t.Kind == models.KindSingle {
		return l.store.AnimDir(t, t.Name), true
	}

	name, ok := manifest.FirstName(l.store.ManifestPath(t))
	if !ok {
		debugLog("%s: manifest names no animation", t.Name)
		return "", false
	}
	return l.store.AnimDir(t, name), true
}

// Render draws the frame for a terminal using half blocks, two pixel
// rows per text line.
func (f *Frame) Render() string {
	var b strings.Builder
	for y := 0; y < f.Height; y += 2 {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < f.Width; x++ {
			top := f.At(x, y)
			bottom := y+1 < f.Height && f.At(x, y+1)
			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteByte(' ')
			}
		}
	}
	return b.String()
}

// Image converts the frame to a grayscale image, set pixels black.
func (f *Frame) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			if f.At(x, y) {
				img.SetGray(x, y, color.Gray{Y: 0})
			} else {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}

// WritePNG encodes the frame as a PNG scaled up by an integer factor.
// Nearest neighbor keeps the 1-bit pixels crisp.
func (f *Frame) WritePNG(w io.Writer, scale int) error {
	if scale < 1 {
		scale = 1
	}
	src := f.Image()
	dst := image.NewGray(image.Rect(0, 0, f.Width*scale, f.Height*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return png.Encode(w, dst)
}
