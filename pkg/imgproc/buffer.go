// Package imgproc holds the shared image-buffer type and the bead-board
// photo cleanup toolkit (auto-orient, trim, levels, blur, sharpen,
// threshold, despeckle) used ahead of quantization and recognition.
//
// Grounded in the teacher's pkg/stdimg package (Fepozopo/timp), narrowed
// from a general-purpose image-editing engine to bead-board photo
// cleanup, and changed from a mutable *image.NRGBA contract to a
// read-only Buffer so the core packages (sampler, quantize, griddetect,
// cellanalyze, colorextract) can borrow pixel data without risking a
// mutation from deep in a call chain, per spec.md §3 ownership rules.
package imgproc

import (
	"image"
	"image/draw"

	"github.com/ben-ben2018/pindou/pkg/colorspace"
	"github.com/ben-ben2018/pindou/pkg/pinerr"
)

// Buffer is a read-only RGBA8 pixel buffer with row-major, top-left
// origin, per spec.md §6. Downstream packages receive it by value (it
// wraps a pointer to immutable backing storage) and can never see
// mutations made after it was constructed.
type Buffer struct {
	pix    *image.NRGBA
	width  int
	height int
}

// FromImage decodes any image.Image into a Buffer, copying pixel data so
// the caller's original image can be freely mutated afterward without
// affecting the Buffer. Returns ErrInvalidImage for a nil or
// zero-dimension source.
func FromImage(src image.Image) (Buffer, error) {
	if src == nil {
		return Buffer{}, pinerr.ErrInvalidImage
	}
	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return Buffer{}, pinerr.ErrInvalidImage
	}
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), src, b.Min, draw.Src)
	return Buffer{pix: out, width: b.Dx(), height: b.Dy()}, nil
}

// Width returns the buffer width in pixels.
func (b Buffer) Width() int { return b.width }

// Height returns the buffer height in pixels.
func (b Buffer) Height() int { return b.height }

// Valid reports whether the buffer wraps actual pixel data.
func (b Buffer) Valid() bool { return b.pix != nil && b.width > 0 && b.height > 0 }

// At returns the RGB8 pixel at (x,y), clamped to buffer bounds. Matches
// the teacher's samplePixelClamped (pkg/stdimg/imgutils.go) clamp-at-edge
// behavior, which every downstream sampler relies on for out-of-range
// kernel taps.
func (b Buffer) At(x, y int) colorspace.RGB8 {
	x = clampInt(x, 0, b.width-1)
	y = clampInt(y, 0, b.height-1)
	i := b.pix.PixOffset(x, y)
	return colorspace.RGB8{R: b.pix.Pix[i+0], G: b.pix.Pix[i+1], B: b.pix.Pix[i+2]}
}

// Image returns a defensive copy as image.Image, for handing back to
// callers (e.g. the CLI) that need to encode it.
func (b Buffer) Image() image.Image {
	out := image.NewNRGBA(b.pix.Rect)
	copy(out.Pix, b.pix.Pix)
	return out
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// nrgba is an internal escape hatch for the transforms in this package
// (trim, auto-orient, levels, blur, sharpen) that need to build a new
// *image.NRGBA directly rather than pixel-by-pixel through At.
func (b Buffer) nrgba() *image.NRGBA { return b.pix }

func bufferFromNRGBA(img *image.NRGBA) Buffer {
	r := img.Bounds()
	return Buffer{pix: img, width: r.Dx(), height: r.Dy()}
}

func newNRGBA(w, h int) *image.NRGBA {
	return image.NewNRGBA(image.Rect(0, 0, w, h))
}

func setPix(img *image.NRGBA, x, y int, c colorspace.RGB8) {
	i := img.PixOffset(x, y)
	img.Pix[i+0] = c.R
	img.Pix[i+1] = c.G
	img.Pix[i+2] = c.B
	img.Pix[i+3] = 255
}
