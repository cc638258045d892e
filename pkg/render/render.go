// Package render is the external presentation layer of spec.md §6: given
// a PixelGrid and display hints, it produces an RGBA raster. It is
// outside the core pipeline and is the only package permitted to import
// a font rendering stack.
//
// Adapted from the teacher's pkg/stdimg/annotate.go: the font fallback
// chain (custom TTF via golang.org/x/image/font/opentype, falling back
// to basicfont) and the font.Drawer text-drawing idiom are kept, but
// retargeted from free-form image annotation to fixed bead-grid
// swatches, row/column labels, and a palette legend.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/ben-ben2018/pindou/pkg/colorspace"
	"github.com/ben-ben2018/pindou/pkg/palette"
	"github.com/ben-ben2018/pindou/pkg/quantize"
	"github.com/ben-ben2018/pindou/pkg/store"
)

// Options configures a single Render call.
type Options struct {
	CellSizePx int
	Hints      store.DisplayHints
	// FontPath optionally points at a TTF/OTF to use for labels and the
	// legend instead of the built-in basic font.
	FontPath string
	FontSize float64
}

const (
	labelGutter = 18
	legendRowPx = 16
)

// Render draws grid onto a fresh RGBA raster: one CellSizePx square per
// cell, an optional row/column label gutter, optional reference grid
// lines, and, when Hints.ShowText is set, a palette legend listing every
// distinct palette entry used.
func Render(grid *quantize.PixelGrid, opts Options) image.Image {
	cellPx := opts.CellSizePx
	if cellPx < 1 {
		cellPx = 20
	}
	gutter := 0
	if opts.Hints.ShowText {
		gutter = labelGutter
	}

	var legend []legendEntry
	legendHeight := 0
	if opts.Hints.ShowText {
		legend = legendEntries(grid)
		if len(legend) > 0 {
			legendHeight = (len(legend) + 1) * legendRowPx
		}
	}

	width := gutter + grid.Cols*cellPx
	height := gutter + grid.Rows*cellPx + legendHeight
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(out, out.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	for row := 0; row < grid.Rows; row++ {
		for col := 0; col < grid.Cols; col++ {
			cell := grid.At(row, col)
			x0 := gutter + col*cellPx
			y0 := gutter + row*cellPx
			drawCell(out, cell, x0, y0, cellPx)
		}
	}

	if opts.Hints.ShowReferenceLines {
		drawGridLines(out, grid.Rows, grid.Cols, gutter, cellPx)
	}

	fontSize := opts.FontSize
	if fontSize <= 0 {
		fontSize = 12
	}
	face := loadFace(opts.FontPath, fontSize)

	if opts.Hints.ShowText {
		drawLabels(out, face, grid.Rows, grid.Cols, gutter, cellPx)
	}

	if len(legend) > 0 {
		drawLegend(out, face, legend, gutter+grid.Rows*cellPx, width)
	}

	return out
}

func drawCell(out *image.RGBA, cell quantize.PixelCell, x0, y0, size int) {
	c := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	if cell.Occupied {
		c = color.NRGBA{R: cell.RGB.R, G: cell.RGB.G, B: cell.RGB.B, A: 255}
	}
	for y := y0; y < y0+size; y++ {
		for x := x0; x < x0+size; x++ {
			out.Set(x, y, c)
		}
	}
}

func drawGridLines(out *image.RGBA, rows, cols, gutter, cellPx int) {
	lineColor := color.NRGBA{R: 180, G: 180, B: 180, A: 255}
	w := gutter + cols*cellPx
	h := gutter + rows*cellPx
	for row := 0; row <= rows; row++ {
		y := gutter + row*cellPx
		if y >= h {
			y = h - 1
		}
		for x := gutter; x < w; x++ {
			out.Set(x, y, lineColor)
		}
	}
	for col := 0; col <= cols; col++ {
		x := gutter + col*cellPx
		if x >= w {
			x = w - 1
		}
		for y := gutter; y < h; y++ {
			out.Set(x, y, lineColor)
		}
	}
}

func drawLabels(out *image.RGBA, face font.Face, rows, cols, gutter, cellPx int) {
	textColor := color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	for col := 0; col < cols; col++ {
		drawString(out, face, textColor, fmt.Sprintf("%d", col), gutter+col*cellPx+cellPx/4, gutter-4)
	}
	for row := 0; row < rows; row++ {
		drawString(out, face, textColor, fmt.Sprintf("%d", row), 0, gutter+row*cellPx+cellPx/2)
	}
}

func drawLegend(out *image.RGBA, face font.Face, legend []legendEntry, top, width int) {
	textColor := color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	for i, e := range legend {
		y := top + (i+1)*legendRowPx
		swatch := color.NRGBA{R: e.rgb.R, G: e.rgb.G, B: e.rgb.B, A: 255}
		for dy := 0; dy < legendRowPx-2; dy++ {
			for dx := 0; dx < legendRowPx-2; dx++ {
				if dy < out.Bounds().Dy() && dx < width {
					out.Set(dx, y+dy, swatch)
				}
			}
		}
		drawString(out, face, textColor, e.id.String(), legendRowPx+4, y+legendRowPx-4)
	}
}

func drawString(dst draw.Image, face font.Face, col color.Color, text string, x, y int) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

type legendEntry struct {
	id  palette.ID
	rgb colorspace.RGB8
}

func legendEntries(grid *quantize.PixelGrid) []legendEntry {
	seen := make(map[palette.ID]bool)
	var out []legendEntry
	for _, c := range grid.Cells {
		if !c.Occupied || seen[c.PaletteID] {
			continue
		}
		seen[c.PaletteID] = true
		out = append(out, legendEntry{id: c.PaletteID, rgb: c.RGB})
	}
	return out
}
