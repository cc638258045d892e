package griddetect

import "math"

const (
	fallbackMinPitch = 12.0
	fallbackMaxPitch = 50.0
)

// detectFallback implements spec.md §4.E.2, the projection-autocorrelation
// method used when the candidate-cloud method's step 1 yields fewer than
// 50 surviving candidates.
func detectFallback(plane []float64, w, h int) (GridModel, bool) {
	colSum := projectColumns(plane, w, h)
	rowSum := projectRows(plane, w, h)
	demean(colSum)
	demean(rowSum)

	pitchX, okX := autocorrPitch(colSum)
	pitchY, okY := autocorrPitch(rowSum)
	if !okX || !okY {
		return GridModel{}, false
	}
	pitch := (pitchX + pitchY) / 2

	originX, originY := scanOrigin(plane, w, h, pitch)

	cols := int(math.Round(float64(w) / pitch))
	rows := int(math.Round(float64(h) / pitch))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	// Shrink the dimensions until the last cell center lies strictly
	// inside the image bounds minus one half-pitch radius (GridModel
	// invariant), as detectCandidateCloud does.
	halfPitch := pitch / 2
	for cols > 1 && originX+float64(cols-1)*pitch+halfPitch >= float64(w) {
		cols--
	}
	for rows > 1 && originY+float64(rows-1)*pitch+halfPitch >= float64(h) {
		rows--
	}

	return GridModel{
		PitchX:     pitch,
		PitchY:     pitch,
		OriginX:    originX,
		OriginY:    originY,
		Rows:       rows,
		Cols:       cols,
		Confidence: 0.5,
	}, true
}

func projectColumns(plane []float64, w, h int) []float64 {
	out := make([]float64, w)
	for x := 0; x < w; x++ {
		var sum float64
		for y := 0; y < h; y++ {
			sum += plane[y*w+x]
		}
		out[x] = sum
	}
	return out
}

func projectRows(plane []float64, w, h int) []float64 {
	out := make([]float64, h)
	for y := 0; y < h; y++ {
		var sum float64
		for x := 0; x < w; x++ {
			sum += plane[y*w+x]
		}
		out[y] = sum
	}
	return out
}

func demean(v []float64) {
	if len(v) == 0 {
		return
	}
	var sum float64
	for _, x := range v {
		sum += x
	}
	mean := sum / float64(len(v))
	for i := range v {
		v[i] -= mean
	}
}

// autocorr computes the unnormalized autocorrelation of v at the given
// lag.
func autocorr(v []float64, lag int) float64 {
	var sum float64
	for i := 0; i+lag < len(v); i++ {
		sum += v[i] * v[i+lag]
	}
	return sum
}

// autocorrPitch finds the pitch per spec.md §4.E.2: the first local
// maximum of the autocorrelation whose lag lies in
// [fallbackMinPitch, fallbackMaxPitch]; if none exceeds 0.1 of the
// zero-lag value, fall back to the first lag after a trough.
func autocorrPitch(v []float64) (float64, bool) {
	maxLag := int(2 * fallbackMaxPitch)
	if maxLag >= len(v) {
		maxLag = len(v) - 1
	}
	if maxLag < 2 {
		return 0, false
	}
	ac := make([]float64, maxLag+1)
	for lag := 0; lag <= maxLag; lag++ {
		ac[lag] = autocorr(v, lag)
	}
	zero := ac[0]
	if zero == 0 {
		return 0, false
	}

	for lag := 1; lag < maxLag; lag++ {
		if float64(lag) < fallbackMinPitch || float64(lag) > fallbackMaxPitch {
			continue
		}
		if ac[lag] > ac[lag-1] && ac[lag] >= ac[lag+1] && ac[lag] > 0.1*zero {
			return float64(lag), true
		}
	}

	// No qualifying local maximum: find the first trough, then the first
	// lag after it within range.
	troughLag := -1
	for lag := 1; lag < maxLag; lag++ {
		if ac[lag] < ac[lag-1] && ac[lag] <= ac[lag+1] {
			troughLag = lag
			break
		}
	}
	if troughLag < 0 {
		return 0, false
	}
	for lag := troughLag + 1; lag <= maxLag; lag++ {
		if float64(lag) >= fallbackMinPitch && float64(lag) <= fallbackMaxPitch {
			return float64(lag), true
		}
	}
	return 0, false
}

// scanOrigin performs an exhaustive scan within one period (step 2px),
// picking the offset maximizing the sum of absolute ring-contrasts over
// all cells it would induce, per spec.md §4.E.2.
func scanOrigin(plane []float64, w, h int, pitch float64) (float64, float64) {
	best := 0.0
	bestX, bestY := 0.0, 0.0
	first := true
	inner := pitch * 0.45 * 0.40
	outer := pitch * 0.45 * 0.80
	for oy := 0.0; oy < pitch; oy += 2 {
		for ox := 0.0; ox < pitch; ox += 2 {
			var sum float64
			for cy := oy; cy < float64(h); cy += pitch {
				for cx := ox; cx < float64(w); cx += pitch {
					cMean, rMean, ok := diskRingMeans(plane, w, h, cx, cy, inner, outer)
					if ok {
						sum += math.Abs(rMean - cMean)
					}
				}
			}
			if first || sum > best {
				best = sum
				bestX, bestY = ox, oy
				first = false
			}
		}
	}
	return bestX, bestY
}
