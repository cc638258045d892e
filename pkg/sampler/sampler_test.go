package sampler

import (
	"image"
	"image/color"
	"testing"

	"github.com/ben-ben2018/pindou/pkg/imgproc"
)

func mustBuffer(t *testing.T, img image.Image) imgproc.Buffer {
	t.Helper()
	b, err := imgproc.FromImage(img)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestSampleAverage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 5; x++ {
			img.Set(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	buf := mustBuffer(t, img)
	c := Sample(buf, Block{X0: 0, X1: 5, Y0: 0, Y1: 10}, Average, false, 0, 0)
	if c.R != 255 || c.G != 255 || c.B != 255 {
		t.Fatalf("expected white average, got %+v", c)
	}
}

func TestSampleDominantTiesFirstSeen(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.NRGBA{R: 10, G: 10, B: 10, A: 255})
	img.Set(1, 0, color.NRGBA{R: 20, G: 20, B: 20, A: 255})
	buf := mustBuffer(t, img)
	c := Sample(buf, Block{X0: 0, X1: 2, Y0: 0, Y1: 1}, Dominant, false, 0, 0)
	if c.R != 10 {
		t.Fatalf("expected first-seen pixel (10,10,10) on tie, got %+v", c)
	}
}

func TestTrimMinimumOnePixel(t *testing.T) {
	b := Block{X0: 0, X1: 2, Y0: 0, Y1: 2}
	trimmed := b.Trim()
	if trimmed.X1-trimmed.X0 == 0 || trimmed.Y1-trimmed.Y0 == 0 {
		t.Fatal("trim must never produce a zero-area block")
	}
}

func TestTrimIsIdempotent(t *testing.T) {
	b := Block{X0: 0, X1: 20, Y0: 0, Y1: 20}
	once := b.Trim()
	twice := once.Trim()
	if once != twice {
		t.Fatalf("expected Trim(Trim(b)) == Trim(b), got once=%+v twice=%+v", once, twice)
	}
}

func TestOriginalModeBypassesBlock(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	img.Set(1, 1, color.NRGBA{R: 42, G: 43, B: 44, A: 255})
	buf := mustBuffer(t, img)
	c := Sample(buf, Block{}, Original, false, 1, 1)
	if c.R != 42 || c.G != 43 || c.B != 44 {
		t.Fatalf("expected direct pixel read in Original mode, got %+v", c)
	}
}
