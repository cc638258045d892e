// Package cellanalyze implements the Cell Analyzer component of
// spec.md §4.F: deciding, per lattice cell, whether a bead is present
// and how confident that classification is.
package cellanalyze

import (
	"math"

	"github.com/ben-ben2018/pindou/pkg/colorspace"
	"github.com/ben-ben2018/pindou/pkg/griddetect"
	"github.com/ben-ben2018/pindou/pkg/imgproc"
)

// Cell is the per-cell record produced by Analyze, per spec.md §3.
type Cell struct {
	Row, Col             int
	CenterX, CenterY     float64
	CenterMean, RingMean float64
	Contrast, Saturation float64
	EdgeDensity          float64
	Occupied             bool
	Confidence           float64
}

// Weights lets a caller reach the "simpler" Cell Analyzer variant spec.md
// §9 names as a degenerate case of the richer one: zeroing Saturation and
// Edge disables those two features from both classification and scoring.
type Weights struct {
	Saturation float64
	Edge       float64
}

// DefaultWeights matches spec.md §4.F's richer variant exactly.
var DefaultWeights = Weights{Saturation: 1, Edge: 1}

const edgeGradientThreshold = 30.0 / 255.0

// Analyze runs the Cell Analyzer over every lattice cell whose sampling
// disk lies fully inside the image, then applies the two-pass
// morphological post-processing pass of spec.md §4.F.
func Analyze(img imgproc.Buffer, model griddetect.GridModel, w Weights) []Cell {
	plane := img.GrayscalePlane()
	iw, ih := img.Width(), img.Height()
	r := model.PitchX / 2

	cells := make([]Cell, 0, model.Rows*model.Cols)
	valid := make([]bool, 0, model.Rows*model.Cols)
	for row := 0; row < model.Rows; row++ {
		for col := 0; col < model.Cols; col++ {
			cx := model.OriginX + float64(col)*model.PitchX
			cy := model.OriginY + float64(row)*model.PitchY
			if cx-r < 0 || cy-r < 0 || cx+r >= float64(iw) || cy+r >= float64(ih) {
				valid = append(valid, false)
				cells = append(cells, Cell{Row: row, Col: col, CenterX: cx, CenterY: cy})
				continue
			}
			valid = append(valid, true)
			cells = append(cells, measureCell(img, plane, row, col, cx, cy, r))
		}
	}

	classify(cells, valid, w)
	// spec.md §4.F runs de-speckle then hole-fill twice, in order: a
	// despeckle toggle can drop a neighboring cell's occupied-neighbor
	// count below the hole-fill/despeckle thresholds, which only
	// becomes visible on the repeated pass.
	for pass := 0; pass < 2; pass++ {
		despeckle(cells, valid, model.Rows, model.Cols)
		holeFill(cells, valid, model.Rows, model.Cols)
	}
	return cells
}

func measureCell(img imgproc.Buffer, plane []float64, row, col int, cx, cy, r float64) Cell {
	centerMean := diskMean(plane, img.Width(), img.Height(), cx, cy, 0, 0.35*r)
	ringMean, ringPixels := ringMeanAndPixels(plane, img.Width(), img.Height(), cx, cy, 0.45*r, 0.9*r)
	saturation := ringSaturation(img, cx, cy, 0.45*r, 0.9*r)
	edgeDensity := ringEdgeDensity(plane, img.Width(), img.Height(), cx, cy, 0.45*r, 0.9*r, ringPixels)

	return Cell{
		Row: row, Col: col,
		CenterX: cx, CenterY: cy,
		CenterMean:  centerMean,
		RingMean:    ringMean,
		Contrast:    ringMean - centerMean,
		Saturation:  saturation,
		EdgeDensity: edgeDensity,
	}
}

func diskMean(plane []float64, w, h int, cx, cy, innerR, outerR float64) float64 {
	var sum, n float64
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
			sum += plane[y*w+x]
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / n
}

func ringMeanAndPixels(plane []float64, w, h int, cx, cy, innerR, outerR float64) (float64, int) {
	var sum, n float64
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
			sum += plane[y*w+x]
			n++
		}
	}
	if n == 0 {
		return 0, 0
	}
	return sum / n, int(n)
}

func ringSaturation(img imgproc.Buffer, cx, cy, innerR, outerR float64) float64 {
	w, h := img.Width(), img.Height()
	var sum, n float64
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
			hsv := colorspace.RGB8ToHSV(img.At(x, y))
			sum += hsv.S
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / n
}

// ringEdgeDensity counts ring pixels whose central-difference gradient
// magnitude |dx|+|dy| exceeds the threshold, per spec.md §4.F.
func ringEdgeDensity(plane []float64, w, h int, cx, cy, innerR, outerR float64, ringArea int) float64 {
	if ringArea == 0 {
		return 0
	}
	ir := int(math.Ceil(outerR))
	count := 0
	for dy := -ir; dy <= ir; dy++ {
		for dx := -ir; dx <= ir; dx++ {
			d := math.Hypot(float64(dx), float64(dy))
			if d < innerR || d > outerR {
				continue
			}
			x, y := int(cx)+dx, int(cy)+dy
			if x <= 0 || x >= w-1 || y <= 0 || y >= h-1 {
				continue
			}
			gx := plane[y*w+x+1] - plane[y*w+x-1]
			gy := plane[(y+1)*w+x] - plane[(y-1)*w+x]
			if math.Abs(gx)+math.Abs(gy) > edgeGradientThreshold {
				count++
			}
		}
	}
	return float64(count) / float64(ringArea)
}
