// Package colorextract implements the Color Extractor component of
// spec.md §4.G: picking one dominant sRGB sample per occupied cell via
// K-means over an annular ring sample.
package colorextract

import (
	"math"

	"github.com/ben-ben2018/pindou/pkg/colorspace"
	"github.com/ben-ben2018/pindou/pkg/imgproc"
	"github.com/ben-ben2018/pindou/pkg/palette"
	"github.com/ben-ben2018/pindou/pkg/pinerr"
)

// Result is the outcome of extracting one cell's dominant color.
type Result struct {
	RGB        colorspace.RGB8
	Entry      palette.Entry
	Confidence float64
	Err        error // pinerr.ErrNumericFailure when the gray fallback fired; the palette lookup error when Nearest fails
}

const (
	kClusters     = 3
	maxIterations = 50
	epsilon       = 0.001
	restarts      = 3
	repeats       = 5
)

// Seed derives the deterministic per-cell K-means seed from the cell's
// row/col, per spec.md §9's numeric-reproducibility note.
func Seed(row, col int) int64 {
	return int64(row)*1_000_003 + int64(col)*97 + 1
}

// Extract samples the ring around (cx,cy) with outer radius 0.95*r and
// inner 0.4*r, falling back to the bounding square when the ring yields
// no samples, then runs K-means in linear RGB to find the dominant
// color and resolves it against the palette.
func Extract(img imgproc.Buffer, p *palette.Palette, cx, cy, r float64, seed int64) Result {
	samples := ringSamples(img, cx, cy, 0.4*r, 0.95*r)
	if len(samples) == 0 {
		samples = boundingSquareSamples(img, cx, cy, r)
	}
	if len(samples) == 0 {
		return grayFallback(p)
	}

	linear := make([][3]float64, len(samples))
	for i, s := range samples {
		linear[i] = [3]float64{
			colorspace.SRGBToLinear(s.R),
			colorspace.SRGBToLinear(s.G),
			colorspace.SRGBToLinear(s.B),
		}
	}

	center, ok := runKMeansRepeats(linear, seed)
	if !ok {
		return grayFallback(p)
	}

	rgb := colorspace.RGB8{
		R: clampToUint8(center[0]),
		G: clampToUint8(center[1]),
		B: clampToUint8(center[2]),
	}
	lab := colorspace.RGB8ToLab(rgb)
	entry, dist, err := p.Nearest(lab)
	if err != nil {
		return Result{Err: err}
	}
	return Result{RGB: rgb, Entry: entry, Confidence: palette.Confidence(dist)}
}

func grayFallback(p *palette.Palette) Result {
	entry, ok := p.NearestByName("gray")
	if !ok {
		return Result{RGB: colorspace.RGB8{R: 128, G: 128, B: 128}, Confidence: 0, Err: pinerr.ErrNumericFailure}
	}
	return Result{RGB: colorspace.RGB8{R: 128, G: 128, B: 128}, Entry: entry, Confidence: 0, Err: pinerr.ErrNumericFailure}
}

func clampToUint8(linear float64) uint8 {
	return colorspace.LinearToSRGB(linear)
}

func ringSamples(img imgproc.Buffer, cx, cy, innerR, outerR float64) []colorspace.RGB8 {
	w, h := img.Width(), img.Height()
	var out []colorspace.RGB8
	ir := int(math.Ceil(outerR))
	for dy := -ir; dy <= ir; dy++ {
		for dx := -ir; dx <= ir; dx++ {
			d := math.Hypot(float64(dx), float64(dy))
			if d < innerR || d > outerR {
				continue
			}
			x, y := int(cx)+dx, int(cy)+dy
			if x < 0 || x >= w || y < 0 || y >= h {
				continue
			}
			out = append(out, img.At(x, y))
		}
	}
	return out
}

func boundingSquareSamples(img imgproc.Buffer, cx, cy, r float64) []colorspace.RGB8 {
	w, h := img.Width(), img.Height()
	x0 := int(cx - r)
	x1 := int(cx + r)
	y0 := int(cy - r)
	y1 := int(cy + r)
	var out []colorspace.RGB8
	for y := y0; y <= y1; y++ {
		if y < 0 || y >= h {
			continue
		}
		for x := x0; x <= x1; x++ {
			if x < 0 || x >= w {
				continue
			}
			out = append(out, img.At(x, y))
		}
	}
	return out
}
