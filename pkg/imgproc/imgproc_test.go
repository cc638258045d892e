package imgproc

import (
	"image"
	"image/color"
	"testing"
)

func solid(w, h int, c color.NRGBA) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestFromImageRejectsNil(t *testing.T) {
	if _, err := FromImage(nil); err == nil {
		t.Fatal("expected error for nil image")
	}
}

func TestFromImageRejectsZeroDims(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 0, 0))
	if _, err := FromImage(img); err == nil {
		t.Fatal("expected error for zero-dimension image")
	}
}

func TestAutoOrientRotate90(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(1, 0, color.NRGBA{B: 255, A: 255})
	b, err := FromImage(img)
	if err != nil {
		t.Fatal(err)
	}
	rotated := b.AutoOrient(6) // rotate 90 CW
	if rotated.Width() != 1 || rotated.Height() != 2 {
		t.Fatalf("expected 1x2 after 90deg rotate of 2x1, got %dx%d", rotated.Width(), rotated.Height())
	}
}

func TestAutoOrientIdentity(t *testing.T) {
	img := solid(3, 3, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	b, _ := FromImage(img)
	same := b.AutoOrient(1)
	if same.Width() != b.Width() || same.Height() != b.Height() {
		t.Fatal("orientation 1 should be a no-op")
	}
}

func TestTrimRemovesUniformBorder(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 5, 5))
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			img.Set(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	img.Set(2, 2, color.NRGBA{R: 0, G: 0, B: 0, A: 255})
	b, _ := FromImage(img)
	trimmed := b.Trim(10)
	if trimmed.Width() != 1 || trimmed.Height() != 1 {
		t.Fatalf("expected trim down to 1x1, got %dx%d", trimmed.Width(), trimmed.Height())
	}
}

func TestResampleToExactDimensions(t *testing.T) {
	img := solid(10, 10, color.NRGBA{R: 100, G: 150, B: 200, A: 255})
	b, _ := FromImage(img)
	r := b.ResampleTo(4, 6)
	if r.Width() != 4 || r.Height() != 6 {
		t.Fatalf("expected 4x6, got %dx%d", r.Width(), r.Height())
	}
	c := r.At(2, 3)
	if c.R != 100 || c.G != 150 || c.B != 200 {
		t.Fatalf("expected solid color to survive resample, got %+v", c)
	}
}

func TestEdgeDetectsVerticalLine(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 5, 5))
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			img.Set(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	for y := 0; y < 5; y++ {
		img.Set(2, y, color.NRGBA{A: 255})
	}
	b, _ := FromImage(img)
	edges := b.Edge()
	left := edges.At(1, 2)
	right := edges.At(3, 2)
	if left.R == 0 && right.R == 0 {
		t.Fatal("expected edge to detect the vertical line")
	}
}

func TestApplyUnknownCommand(t *testing.T) {
	img := solid(2, 2, color.NRGBA{A: 255})
	b, _ := FromImage(img)
	if _, err := Apply(b, "doesNotExist", nil); err == nil {
		t.Fatal("expected error for unknown command")
	}
}
