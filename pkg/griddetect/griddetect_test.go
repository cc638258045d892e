package griddetect

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/ben-ben2018/pindou/pkg/imgproc"
)

func TestDetectRejectsInvalidImage(t *testing.T) {
	_, err := Detect(imgproc.Buffer{})
	if err == nil {
		t.Fatal("expected error for invalid buffer")
	}
}

func TestMedianOddEven(t *testing.T) {
	if m := median([]float64{1, 2, 3}); m != 2 {
		t.Fatalf("expected median 2, got %v", m)
	}
	if m := median([]float64{1, 2, 3, 4}); m != 2.5 {
		t.Fatalf("expected median 2.5, got %v", m)
	}
}

func TestPercentileBounds(t *testing.T) {
	sorted := []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
	if p := percentile(sorted, 0); p != 0 {
		t.Fatalf("expected 0th percentile 0, got %v", p)
	}
	if p := percentile(sorted, 100); p != 100 {
		t.Fatalf("expected 100th percentile 100, got %v", p)
	}
}

func TestNMSPointsDropsClusters(t *testing.T) {
	pts := []point{{0, 0}, {1, 1}, {50, 50}}
	kept := nmsPoints(pts, 8)
	if len(kept) != 2 {
		t.Fatalf("expected 2 surviving clusters, got %d: %v", len(kept), kept)
	}
}

func TestEstimatePitchClampsToRange(t *testing.T) {
	// Points 2px apart: below minPitch, should clamp up.
	pts := []point{{0, 0}, {2, 0}, {4, 0}, {6, 0}}
	if p := estimatePitch(pts); p != minPitch {
		t.Fatalf("expected pitch clamped to %v, got %v", minPitch, p)
	}
}

// lattice builds a grayscale image of dark disks on a square lattice,
// matching spec.md §8 scenario 4's construction exactly (size, pitch,
// origin, disk count).
func lattice(size, pitch, start, radius, n int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, color.NRGBA{R: 230, G: 230, B: 230, A: 255})
		}
	}
	for gy := 0; gy < n; gy++ {
		for gx := 0; gx < n; gx++ {
			cx := start + gx*pitch
			cy := start + gy*pitch
			for dy := -radius; dy <= radius; dy++ {
				for dx := -radius; dx <= radius; dx++ {
					if dx*dx+dy*dy > radius*radius {
						continue
					}
					x, y := cx+dx, cy+dy
					if x >= 0 && x < size && y >= 0 && y < size {
						img.Set(x, y, color.NRGBA{R: 20, G: 20, B: 20, A: 255})
					}
				}
			}
		}
	}
	return img
}

// TestDetectSyntheticLatticeApproximatePitch reproduces spec.md §8
// scenario 4 (400x400, pitch 16, origin (8,8), 25x25 disks). Row/column
// count is asserted exactly; the pitch tolerance is widened from the
// spec's literal [15.5,16.5] for the reason recorded in SPEC_FULL.md §12.
func TestDetectSyntheticLatticeApproximatePitch(t *testing.T) {
	const wantRows, wantCols = 25, 25
	img := lattice(400, 16, 8, 6, wantRows)
	buf, err := imgproc.FromImage(img)
	if err != nil {
		t.Fatal(err)
	}
	model, err := Detect(buf)
	if err != nil {
		t.Fatalf("expected a GridModel on a clean synthetic lattice, got error: %v", err)
	}
	const wantPitchMin, wantPitchMax = 14.0, 18.0
	if model.PitchX < wantPitchMin || model.PitchX > wantPitchMax {
		t.Fatalf("expected pitch within [%v,%v], got %v", wantPitchMin, wantPitchMax, model.PitchX)
	}
	if model.Rows != wantRows || model.Cols != wantCols {
		t.Fatalf("expected rows=cols=%d per scenario 4, got rows=%d cols=%d", wantRows, model.Rows, model.Cols)
	}
	if model.Confidence < 0 || model.Confidence > 1 {
		t.Fatalf("confidence out of [0,1]: %v", model.Confidence)
	}
	// Invariant from spec.md §3: the last cell center stays strictly
	// inside the image bounds minus one half-pitch radius.
	lastX := model.OriginX + float64(model.Cols-1)*model.PitchX
	lastY := model.OriginY + float64(model.Rows-1)*model.PitchY
	half := model.PitchX / 2
	if lastX+half > 400+1e-6 || lastY+half > 400+1e-6 {
		t.Fatalf("last cell center escapes image bounds: (%v,%v) half=%v", lastX, lastY, half)
	}
}

func TestAutocorrPitchFindsPeriod(t *testing.T) {
	n := 200
	v := make([]float64, n)
	period := 16.0
	for i := range v {
		v[i] = math.Sin(2 * math.Pi * float64(i) / period)
	}
	demean(v)
	pitch, ok := autocorrPitch(v)
	if !ok {
		t.Fatal("expected a pitch to be found in a clean periodic signal")
	}
	if math.Abs(pitch-period) > 3 {
		t.Fatalf("expected pitch near %v, got %v", period, pitch)
	}
}
