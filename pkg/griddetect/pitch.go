package griddetect

import (
	"math"
	"sort"
)

const (
	minPitch = 10.0
	maxPitch = 40.0
)

// estimatePitch returns the median nearest-neighbor distance among pts,
// clamped to [minPitch, maxPitch], per spec.md §4.E step 2.
func estimatePitch(pts []point) float64 {
	if len(pts) < 2 {
		return minPitch
	}
	nn := make([]float64, len(pts))
	for i, p := range pts {
		best := math.Inf(1)
		for j, q := range pts {
			if i == j {
				continue
			}
			if d := dist(p, q); d < best {
				best = d
			}
		}
		nn[i] = best
	}
	sort.Float64s(nn)
	med := median(nn)
	if med < minPitch {
		return minPitch
	}
	if med > maxPitch {
		return maxPitch
	}
	return med
}

func median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// activeBounds discards candidates with fewer than 3 neighbors within
// 1.8*pitch, then computes the 3rd/97th percentile box of survivors,
// inflated by 0.3*pitch on each side, per spec.md §4.E step 3.
func activeBounds(pts []point, pitch float64) (survivors []point, minX, minY, maxX, maxY float64, ok bool) {
	neighborRadius := 1.8 * pitch
	for _, p := range pts {
		count := 0
		for _, q := range pts {
			if p == q {
				continue
			}
			if dist(p, q) <= neighborRadius {
				count++
			}
		}
		if count >= 3 {
			survivors = append(survivors, p)
		}
	}
	if len(survivors) == 0 {
		return nil, 0, 0, 0, 0, false
	}
	xs := make([]float64, len(survivors))
	ys := make([]float64, len(survivors))
	for i, p := range survivors {
		xs[i] = p.x
		ys[i] = p.y
	}
	sort.Float64s(xs)
	sort.Float64s(ys)
	inflate := 0.3 * pitch
	minX = percentile(xs, 3) - inflate
	maxX = percentile(xs, 97) + inflate
	minY = percentile(ys, 3) - inflate
	maxY = percentile(ys, 97) + inflate
	return survivors, minX, minY, maxX, maxY, true
}

// percentile returns the p-th percentile (0-100) of a sorted slice via
// linear interpolation between closest ranks.
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(n-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// pickOrigin returns the survivor closest (Manhattan distance) to the
// bounds' top-left corner, per spec.md §4.E step 4.
func pickOrigin(survivors []point, minX, minY float64) point {
	best := survivors[0]
	bestDist := math.Abs(best.x-minX) + math.Abs(best.y-minY)
	for _, p := range survivors[1:] {
		d := math.Abs(p.x-minX) + math.Abs(p.y-minY)
		if d < bestDist {
			bestDist = d
			best = p
		}
	}
	return best
}
