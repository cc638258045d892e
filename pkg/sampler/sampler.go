// Package sampler implements the Block Sampler component of spec.md
// §4.C: given a source image and a rectangular block, pick one
// representative RGB8 under a chosen sampling mode.
package sampler

import (
	"math"

	"github.com/ben-ben2018/pindou/pkg/colorspace"
	"github.com/ben-ben2018/pindou/pkg/imgproc"
)

// Mode is the closed set of block-sampling strategies. A tagged enum
// rather than an interface, per spec.md §9 design notes ("prefer
// variants over open-ended polymorphism; the set is closed").
type Mode int

const (
	// Dominant picks the pixel with the largest exact (R,G,B) count in
	// the trimmed block; ties resolve to first-seen.
	Dominant Mode = iota
	// Average is the channel-wise integer mean of the trimmed block.
	Average
	// Center samples the single pixel at the trimmed block's geometric
	// center.
	Center
	// Diagonal45 samples the trimmed block point at fractional offset
	// (4/5, 4/5).
	Diagonal45
	// Original bypasses block sampling: the caller must have already
	// resampled the source to the target grid and this mode simply
	// reads back the (col,row) pixel (see quantize.Quantize).
	Original
)

// Block is a half-open rectangle [X0,X1) x [Y0,Y1) in source image
// coordinates.
type Block struct {
	X0, X1, Y0, Y1 int
	// trimmed marks a block already produced by Trim, so a second call
	// is a no-op rather than shrinking another 15%. Zero value (false)
	// for every block built outside this package, which is exactly the
	// "not yet trimmed" state.
	trimmed bool
}

// Trim shrinks the block by 15% on each side (minimum 1px), per spec.md
// §4.C, to avoid grid-line artifacts in screenshots of printed patterns.
// Idempotent per spec.md §8: Trim(Trim(b)) == Trim(b), because the
// result is tagged as already-trimmed and a second call returns it
// unchanged instead of shrinking the shrunk block by another 15%.
func (b Block) Trim() Block {
	if b.trimmed {
		return b
	}
	w := b.X1 - b.X0
	h := b.Y1 - b.Y0
	tx := maxInt(1, int(math.Round(float64(w)*0.15)))
	ty := maxInt(1, int(math.Round(float64(h)*0.15)))
	x0 := b.X0 + tx
	x1 := b.X1 - tx
	y0 := b.Y0 + ty
	y1 := b.Y1 - ty
	if x1 <= x0 {
		x0, x1 = b.X0, b.X1
	}
	if y1 <= y0 {
		y0, y1 = b.Y0, b.Y1
	}
	return Block{X0: x0, X1: x1, Y0: y0, Y1: y1, trimmed: true}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Sample returns one representative RGB8 for the block under mode. img
// must already be the source for block-based modes; for Original mode,
// img must be the buffer pre-resampled to the target grid and (col,row)
// addresses the already-resampled pixel directly (block is ignored).
func Sample(img imgproc.Buffer, block Block, mode Mode, edgeTrim bool, col, row int) colorspace.RGB8 {
	if mode == Original {
		return img.At(col, row)
	}
	b := block
	if edgeTrim {
		b = b.Trim()
	}
	switch mode {
	case Average:
		return sampleAverage(img, b)
	case Center:
		return sampleCenter(img, b)
	case Diagonal45:
		return sampleDiagonal45(img, b)
	default:
		return sampleDominant(img, b)
	}
}

func sampleAverage(img imgproc.Buffer, b Block) colorspace.RGB8 {
	var sumR, sumG, sumB, n int
	for y := b.Y0; y < b.Y1; y++ {
		for x := b.X0; x < b.X1; x++ {
			c := img.At(x, y)
			sumR += int(c.R)
			sumG += int(c.G)
			sumB += int(c.B)
			n++
		}
	}
	if n == 0 {
		return colorspace.RGB8{}
	}
	return colorspace.RGB8{
		R: uint8(sumR / n),
		G: uint8(sumG / n),
		B: uint8(sumB / n),
	}
}

func sampleCenter(img imgproc.Buffer, b Block) colorspace.RGB8 {
	cx := (b.X0 + b.X1) / 2
	cy := (b.Y0 + b.Y1) / 2
	return img.At(cx, cy)
}

// sampleDiagonal45 follows spec.md §4.C literally: the trimmed block
// point at fractional offset (4/5, 4/5). spec.md §9 flags this as a
// possible discrepancy with an untrimmed formula elsewhere in the
// original source — this implementation does not attempt to unify the
// two and documents the point as an index into the trimmed span.
func sampleDiagonal45(img imgproc.Buffer, b Block) colorspace.RGB8 {
	w := b.X1 - b.X0 - 1
	h := b.Y1 - b.Y0 - 1
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	x := b.X0 + int(math.Round(float64(w)*4.0/5.0))
	y := b.Y0 + int(math.Round(float64(h)*4.0/5.0))
	return img.At(x, y)
}

func sampleDominant(img imgproc.Buffer, b Block) colorspace.RGB8 {
	type key struct{ r, g, bl uint8 }
	counts := make(map[key]int)
	order := make(map[key]int)
	seq := 0
	for y := b.Y0; y < b.Y1; y++ {
		for x := b.X0; x < b.X1; x++ {
			c := img.At(x, y)
			k := key{c.R, c.G, c.B}
			if _, ok := order[k]; !ok {
				order[k] = seq
				seq++
			}
			counts[k]++
		}
	}
	best := key{}
	bestCount := -1
	bestOrder := -1
	for k, cnt := range counts {
		o := order[k]
		if cnt > bestCount || (cnt == bestCount && o < bestOrder) {
			best = k
			bestCount = cnt
			bestOrder = o
		}
	}
	return colorspace.RGB8{R: best.r, G: best.g, B: best.bl}
}
