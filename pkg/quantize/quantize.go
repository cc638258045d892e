// Package quantize implements the Quantizer component of spec.md §4.D:
// projecting a source image onto a W x H grid of palette colors.
package quantize

import (
	"math"

	"github.com/ben-ben2018/pindou/pkg/colorspace"
	"github.com/ben-ben2018/pindou/pkg/imgproc"
	"github.com/ben-ben2018/pindou/pkg/palette"
	"github.com/ben-ben2018/pindou/pkg/pinerr"
	"github.com/ben-ben2018/pindou/pkg/sampler"
)

// PixelCell is either empty or bound to a palette entry, per spec.md §3.
type PixelCell struct {
	Occupied   bool
	RGB        colorspace.RGB8
	PaletteID  palette.ID
	Confidence float64
}

// Empty reports whether the cell has no bead.
func (c PixelCell) Empty() bool { return !c.Occupied }

// PixelGrid is a rows x cols dense matrix of PixelCell in row-major
// order, per spec.md §3.
type PixelGrid struct {
	Rows, Cols int
	Cells      []PixelCell // len == Rows*Cols, row-major
}

// At returns the cell at (row, col).
func (g *PixelGrid) At(row, col int) PixelCell {
	return g.Cells[row*g.Cols+col]
}

// Set assigns the cell at (row, col).
func (g *PixelGrid) Set(row, col int, c PixelCell) {
	g.Cells[row*g.Cols+col] = c
}

func newGrid(rows, cols int) *PixelGrid {
	return &PixelGrid{Rows: rows, Cols: cols, Cells: make([]PixelCell, rows*cols)}
}

// Options configures a single Quantize call.
type Options struct {
	Width, Height int
	Mode          sampler.Mode
	EdgeTrim      bool
}

// Quantize runs the Quantizer algorithm of spec.md §4.D: for Original
// mode the source is resampled once to exactly Width x Height; otherwise
// each cell's block is computed independently and sampled. Every block is
// fully contained in the image, and Quantize visits cells in row-major
// order (spec.md §5 ordering guarantee).
func Quantize(img imgproc.Buffer, p *palette.Palette, opts Options) (*PixelGrid, error) {
	if !img.Valid() {
		return nil, pinerr.ErrInvalidImage
	}
	if p.Len() == 0 {
		return nil, pinerr.ErrEmptyPalette
	}
	if opts.Width < 1 || opts.Height < 1 {
		return nil, pinerr.ErrInvalidImage
	}

	grid := newGrid(opts.Height, opts.Width)

	if opts.Mode == sampler.Original {
		resampled := img.ResampleTo(opts.Width, opts.Height)
		for row := 0; row < opts.Height; row++ {
			for col := 0; col < opts.Width; col++ {
				rgb := sampler.Sample(resampled, sampler.Block{}, sampler.Original, false, col, row)
				if err := assign(grid, row, col, rgb, p); err != nil {
					return nil, err
				}
			}
		}
		return grid, nil
	}

	iw, ih := img.Width(), img.Height()
	for row := 0; row < opts.Height; row++ {
		y0 := int(math.Round(float64(row) * float64(ih) / float64(opts.Height)))
		y1 := int(math.Round(float64(row+1) * float64(ih) / float64(opts.Height)))
		if y1-y0 < 1 {
			y1 = y0 + 1
		}
		for col := 0; col < opts.Width; col++ {
			x0 := int(math.Round(float64(col) * float64(iw) / float64(opts.Width)))
			x1 := int(math.Round(float64(col+1) * float64(iw) / float64(opts.Width)))
			if x1-x0 < 1 {
				x1 = x0 + 1
			}
			block := sampler.Block{X0: x0, X1: x1, Y0: y0, Y1: y1}
			rgb := sampler.Sample(img, block, opts.Mode, opts.EdgeTrim, col, row)
			if err := assign(grid, row, col, rgb, p); err != nil {
				return nil, err
			}
		}
	}
	return grid, nil
}

func assign(grid *PixelGrid, row, col int, rgb colorspace.RGB8, p *palette.Palette) error {
	entry, dist, err := p.NearestRGB8(rgb)
	if err != nil {
		return err
	}
	grid.Set(row, col, PixelCell{
		Occupied:   true,
		RGB:        entry.RGB,
		PaletteID:  entry.ID,
		Confidence: palette.Confidence(dist),
	})
	return nil
}
