package quantize

import (
	"image"
	"image/color"
	"testing"

	"github.com/ben-ben2018/pindou/pkg/colorspace"
	"github.com/ben-ben2018/pindou/pkg/imgproc"
	"github.com/ben-ben2018/pindou/pkg/palette"
	"github.com/ben-ben2018/pindou/pkg/sampler"
)

func mustPalette(t *testing.T) *palette.Palette {
	t.Helper()
	p, err := palette.New([]palette.RawEntry{
		{Brand: "generic", Name: "white", RGB: colorspace.RGB8{R: 255, G: 255, B: 255}},
		{Brand: "generic", Name: "black", RGB: colorspace.RGB8{R: 0, G: 0, B: 0}},
		{Brand: "generic", Name: "red", RGB: colorspace.RGB8{R: 255, G: 0, B: 0}},
	})
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func mustBuffer(t *testing.T, img image.Image) imgproc.Buffer {
	t.Helper()
	b, err := imgproc.FromImage(img)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

// checkerboard builds an n x n checkerboard of white/black squares at
// `scale` pixels per square.
func checkerboard(n, scale int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, n*scale, n*scale))
	for by := 0; by < n; by++ {
		for bx := 0; bx < n; bx++ {
			c := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			if (bx+by)%2 == 1 {
				c = color.NRGBA{A: 255}
			}
			for y := by * scale; y < (by+1)*scale; y++ {
				for x := bx * scale; x < (bx+1)*scale; x++ {
					img.Set(x, y, c)
				}
			}
		}
	}
	return img
}

func TestQuantizeGridShape(t *testing.T) {
	buf := mustBuffer(t, checkerboard(8, 4))
	p := mustPalette(t)
	grid, err := Quantize(buf, p, Options{Width: 8, Height: 8, Mode: sampler.Average, EdgeTrim: true})
	if err != nil {
		t.Fatal(err)
	}
	if grid.Rows != 8 || grid.Cols != 8 || len(grid.Cells) != 64 {
		t.Fatalf("expected 8x8=64 cells, got rows=%d cols=%d len=%d", grid.Rows, grid.Cols, len(grid.Cells))
	}
	for i, c := range grid.Cells {
		if !c.Occupied {
			t.Fatalf("cell %d unexpectedly unoccupied", i)
		}
	}
}

func TestQuantizeCheckerboard(t *testing.T) {
	buf := mustBuffer(t, checkerboard(4, 10))
	p := mustPalette(t)
	grid, err := Quantize(buf, p, Options{Width: 4, Height: 4, Mode: sampler.Average, EdgeTrim: true})
	if err != nil {
		t.Fatal(err)
	}
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			c := grid.At(row, col)
			wantBlack := (row+col)%2 == 1
			isBlack := c.RGB.R == 0 && c.RGB.G == 0 && c.RGB.B == 0
			if isBlack != wantBlack {
				t.Fatalf("cell (%d,%d): expected black=%v, got RGB=%+v", row, col, wantBlack, c.RGB)
			}
		}
	}
}

func TestQuantizeAverageModeSplitImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			c := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			if x >= 5 {
				c = color.NRGBA{A: 255}
			}
			img.Set(x, y, c)
		}
	}
	buf := mustBuffer(t, img)
	p := mustPalette(t)
	grid, err := Quantize(buf, p, Options{Width: 2, Height: 1, Mode: sampler.Average, EdgeTrim: false})
	if err != nil {
		t.Fatal(err)
	}
	left := grid.At(0, 0)
	right := grid.At(0, 1)
	if left.RGB.R != 255 {
		t.Fatalf("expected left cell white, got %+v", left.RGB)
	}
	if right.RGB.R != 0 {
		t.Fatalf("expected right cell black, got %+v", right.RGB)
	}
}

func TestQuantizeTiebreakFirstInsertion(t *testing.T) {
	// Both entries have the identical color (100,100,100), so every
	// sample ties exactly; what matters is that Nearest's first-insertion
	// tiebreak is deterministic and Quantize doesn't disturb it.
	p, err := palette.New([]palette.RawEntry{
		{Brand: "a", Name: "one", RGB: colorspace.RGB8{R: 100, G: 100, B: 100}},
		{Brand: "a", Name: "two", RGB: colorspace.RGB8{R: 100, G: 100, B: 100}},
	})
	if err != nil {
		t.Fatal(err)
	}
	buf := mustBuffer(t, checkerboard(2, 4))
	grid, err := Quantize(buf, p, Options{Width: 2, Height: 2, Mode: sampler.Average, EdgeTrim: false})
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range grid.Cells {
		if c.PaletteID.Name != "one" {
			t.Fatalf("expected tie to resolve to first-inserted entry 'one', got %q", c.PaletteID.Name)
		}
	}
}

func TestQuantizeOriginalModeDeterminism(t *testing.T) {
	buf := mustBuffer(t, checkerboard(4, 10))
	p := mustPalette(t)
	g1, err := Quantize(buf, p, Options{Width: 4, Height: 4, Mode: sampler.Original})
	if err != nil {
		t.Fatal(err)
	}
	g2, err := Quantize(buf, p, Options{Width: 4, Height: 4, Mode: sampler.Original})
	if err != nil {
		t.Fatal(err)
	}
	for i := range g1.Cells {
		if g1.Cells[i] != g2.Cells[i] {
			t.Fatalf("cell %d differs between runs: %+v vs %+v", i, g1.Cells[i], g2.Cells[i])
		}
	}
}

func TestQuantizeRejectsEmptyPalette(t *testing.T) {
	buf := mustBuffer(t, checkerboard(2, 4))
	empty, _ := palette.New(nil)
	_, err := Quantize(buf, empty, Options{Width: 2, Height: 2, Mode: sampler.Average})
	if err == nil {
		t.Fatal("expected error for empty palette")
	}
}

func TestQuantizeRejectsInvalidImage(t *testing.T) {
	p := mustPalette(t)
	_, err := Quantize(imgproc.Buffer{}, p, Options{Width: 2, Height: 2, Mode: sampler.Average})
	if err == nil {
		t.Fatal("expected error for invalid image buffer")
	}
}
