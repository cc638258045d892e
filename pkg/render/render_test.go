package render

import (
	"image"
	"testing"

	"github.com/ben-ben2018/pindou/pkg/colorspace"
	"github.com/ben-ben2018/pindou/pkg/palette"
	"github.com/ben-ben2018/pindou/pkg/quantize"
	"github.com/ben-ben2018/pindou/pkg/store"
)

func sampleGrid() *quantize.PixelGrid {
	grid := &quantize.PixelGrid{Rows: 2, Cols: 2, Cells: make([]quantize.PixelCell, 4)}
	grid.Set(0, 0, quantize.PixelCell{
		Occupied: true,
		RGB:      colorspace.RGB8{R: 255, G: 0, B: 0},
		PaletteID: palette.ID{Brand: "generic", Name: "red"},
	})
	grid.Set(1, 1, quantize.PixelCell{
		Occupied: true,
		RGB:      colorspace.RGB8{R: 0, G: 0, B: 255},
		PaletteID: palette.ID{Brand: "generic", Name: "blue"},
	})
	return grid
}

func TestRenderProducesExpectedBaseDimensions(t *testing.T) {
	grid := sampleGrid()
	img := Render(grid, Options{CellSizePx: 10})
	b := img.Bounds()
	if b.Dx() != 20 || b.Dy() != 20 {
		t.Fatalf("expected a 20x20 raster with no gutter/legend, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestRenderAddsGutterForLabels(t *testing.T) {
	// An all-empty grid has no legend entries, isolating the gutter's
	// contribution to the raster size.
	grid := &quantize.PixelGrid{Rows: 2, Cols: 2, Cells: make([]quantize.PixelCell, 4)}
	img := Render(grid, Options{CellSizePx: 10, Hints: store.DisplayHints{ShowText: true}})
	b := img.Bounds()
	if b.Dx() != labelGutter+20 || b.Dy() != labelGutter+20 {
		t.Fatalf("expected gutter added to both axes, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestRenderAddsLegendHeightWhenOccupied(t *testing.T) {
	grid := sampleGrid()
	noLegend := Render(grid, Options{CellSizePx: 10})
	withLegend := Render(grid, Options{CellSizePx: 10, Hints: store.DisplayHints{ShowText: true}})
	if withLegend.Bounds().Dy() <= noLegend.Bounds().Dy() {
		t.Fatalf("expected legend + gutter to grow the raster height, got %d vs %d",
			withLegend.Bounds().Dy(), noLegend.Bounds().Dy())
	}
}

func TestRenderPaintsOccupiedCellColor(t *testing.T) {
	grid := sampleGrid()
	img := Render(grid, Options{CellSizePx: 10})
	rgbaImg, ok := img.(*image.RGBA)
	if !ok {
		t.Fatal("expected *image.RGBA output")
	}
	c := rgbaImg.RGBAAt(5, 5)
	if c.R != 255 || c.G != 0 || c.B != 0 {
		t.Fatalf("expected top-left cell to render as red, got %+v", c)
	}
}

func TestLoadFaceFallsBackOnMissingFile(t *testing.T) {
	face := loadFace("/nonexistent/font.ttf", 12)
	if face == nil {
		t.Fatal("expected a non-nil fallback face")
	}
}
