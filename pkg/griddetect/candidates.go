package griddetect

import (
	"math"
	"sort"

	"github.com/ben-ben2018/pindou/pkg/imgproc"
)

// houghPreset is one parameter set for the Hough-like circle detector of
// spec.md §4.E step 1.
type houghPreset struct {
	minDist   float64
	threshold float64
}

var houghPresets = []houghPreset{
	{minDist: 15, threshold: 25},
	{minDist: 12, threshold: 20},
	{minDist: 18, threshold: 30},
}

const (
	circleRadiusMin = 5
	circleRadiusMax = 25
	nmsRadius       = 8
)

// houghCircles runs a gradient-direction Hough circle accumulator: every
// edge pixel above the gradient-magnitude floor casts a vote for the
// center that would lie `r` pixels along its gradient direction, for each
// candidate radius from circleRadiusMin to circleRadiusMax in steps of 2
// (the same range for every preset). Local accumulator maxima above
// the preset threshold, pruned to the preset's minimum inter-center
// distance, become candidates. Grounded in the teacher's edge.go Sobel
// gradients (imgproc.SobelAt), reused here as the circle-edge voting
// signal instead of a generic edge-magnitude raster.
func houghCircles(plane []float64, w, h int, preset houghPreset) []point {
	acc := make([]float64, w*h)
	const gradFloor = 0.08
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gx, gy, mag := imgproc.SobelAt(plane, w, h, x, y)
			if mag < gradFloor {
				continue
			}
			nx, ny := gx/mag, gy/mag
			for r := circleRadiusMin; r <= circleRadiusMax; r += 2 {
				cx := int(math.Round(float64(x) - nx*float64(r)))
				cy := int(math.Round(float64(y) - ny*float64(r)))
				if cx < 0 || cx >= w || cy < 0 || cy >= h {
					continue
				}
				acc[cy*w+cx] += mag
			}
		}
	}

	var raw []point
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			v := acc[y*w+x]
			if v < preset.threshold {
				continue
			}
			if isLocalMax3x3(acc, w, h, x, y) {
				raw = append(raw, point{x: float64(x), y: float64(y)})
			}
		}
	}
	return nmsPoints(raw, preset.minDist)
}

func isLocalMax3x3(acc []float64, w, h, x, y int) bool {
	v := acc[y*w+x]
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if acc[(y+dy)*w+(x+dx)] > v {
				return false
			}
		}
	}
	return true
}

// ringContrastCandidates implements spec.md §4.E's ring-contrast sampler:
// a sliding 12px window (step 6) where ring_mean - center_mean on
// grayscale (inner 40%, outer 80% of the window) exceeds 15.
func ringContrastCandidates(plane []float64, w, h int) []point {
	const window = 12.0
	const step = 6
	inner := window * 0.40
	outer := window * 0.80
	var out []point
	for y := 0; y < h; y += step {
		for x := 0; x < w; x += step {
			centerMean, ringMean, ok := diskRingMeans(plane, w, h, float64(x), float64(y), inner, outer)
			if !ok {
				continue
			}
			if ringMean-centerMean > 15.0/255.0 {
				out = append(out, point{x: float64(x), y: float64(y)})
			}
		}
	}
	return out
}

func diskRingMeans(plane []float64, w, h int, cx, cy, innerR, outerR float64) (centerMean, ringMean float64, ok bool) {
	var cSum, cN, rSum, rN float64
	r := int(math.Ceil(outerR))
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			x := int(cx) + dx
			y := int(cy) + dy
			if x < 0 || x >= w || y < 0 || y >= h {
				continue
			}
			d := math.Hypot(float64(dx), float64(dy))
			v := plane[y*w+x]
			if d <= innerR {
				cSum += v
				cN++
			} else if d <= outerR {
				rSum += v
				rN++
			}
		}
	}
	if cN == 0 || rN == 0 {
		return 0, 0, false
	}
	return cSum / cN, rSum / rN, true
}

// saturationCandidates implements spec.md §4.E's saturation sampler: a
// sliding 10px window (step 8) in HSV space, emitting positions whose
// 7x7-neighborhood mean saturation exceeds 50 (on a 0-100 scale).
func saturationCandidates(satPlane []float64, w, h int) []point {
	const step = 8
	var out []point
	for y := 0; y < h; y += step {
		for x := 0; x < w; x += step {
			mean := neighborhoodMean(satPlane, w, h, x, y, 3)
			if mean*100 > 50 {
				out = append(out, point{x: float64(x), y: float64(y)})
			}
		}
	}
	return out
}

func neighborhoodMean(plane []float64, w, h, cx, cy, radius int) float64 {
	var sum float64
	var n float64
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			x := cx + dx
			y := cy + dy
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

// nmsPoints applies non-maximum suppression with the given radius,
// favoring earlier points in iteration order on ties (deterministic).
func nmsPoints(pts []point, radius float64) []point {
	kept := make([]point, 0, len(pts))
	for _, p := range pts {
		suppressed := false
		for _, k := range kept {
			if dist(p, k) < radius {
				suppressed = true
				break
			}
		}
		if !suppressed {
			kept = append(kept, p)
		}
	}
	return kept
}

func dist(a, b point) float64 {
	return math.Hypot(a.x-b.x, a.y-b.y)
}

// mergeAndSuppress unions all candidate sources and applies the final
// NMS pass at radius 8px, per spec.md §4.E step 1.
func mergeAndSuppress(sources ...[]point) []point {
	var all []point
	for _, s := range sources {
		all = append(all, s...)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].y != all[j].y {
			return all[i].y < all[j].y
		}
		return all[i].x < all[j].x
	})
	return nmsPoints(all, nmsRadius)
}
