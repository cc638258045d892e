package cellanalyze

import "math"

// otsuThreshold computes Otsu's global threshold over a population of
// scalar samples: it bins the population into a 256-bucket histogram
// scaled to the sample range and picks the bucket boundary maximizing
// between-class variance. New code, not adapted from any teacher
// threshold (see DESIGN.md): the teacher's adaptive_threshold.go is an
// integral-image local-mean threshold, a different algorithm, kept only
// as a thresholding-idiom precedent.
func otsuThreshold(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi <= lo {
		return lo
	}
	const bins = 256
	hist := make([]int, bins)
	scale := float64(bins-1) / (hi - lo)
	for _, v := range values {
		b := int((v - lo) * scale)
		if b < 0 {
			b = 0
		}
		if b >= bins {
			b = bins - 1
		}
		hist[b]++
	}

	total := len(values)
	var sumAll float64
	for i, c := range hist {
		sumAll += float64(i) * float64(c)
	}

	var sumB, wB float64
	var bestVar float64
	bestBin := 0
	for i, c := range hist {
		wB += float64(c)
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(i) * float64(c)
		mB := sumB / wB
		mF := (sumAll - sumB) / wF
		between := wB * wF * (mB - mF) * (mB - mF)
		if between > bestVar {
			bestVar = between
			bestBin = i
		}
	}
	// The boundary is the upper edge of the last background bucket.
	return lo + float64(bestBin+1)/scale
}

func meanStd(values []float64) (mean, std float64) {
	if len(values) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(len(values))
	var sq float64
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}
	std = math.Sqrt(sq / float64(len(values)))
	return
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// classify applies spec.md §4.F's classification: Otsu threshold plus
// mean+0.5*std over both the contrast and saturation populations (of
// valid cells only), then scores each valid cell for occupancy and
// confidence.
func classify(cells []Cell, valid []bool, w Weights) {
	var contrasts, saturations []float64
	for i, ok := range valid {
		if !ok {
			continue
		}
		contrasts = append(contrasts, cells[i].Contrast)
		saturations = append(saturations, cells[i].Saturation)
	}
	if len(contrasts) == 0 {
		return
	}

	tC := otsuThreshold(contrasts)
	muC, sigC := meanStd(contrasts)
	effC := math.Max(tC, muC+0.5*sigC)

	tS := otsuThreshold(saturations)
	muS, sigS := meanStd(saturations)
	effS := math.Max(tS, muS+0.5*sigS)
	if effS == 0 {
		effS = 1e-9
	}
	if effC == 0 {
		effC = 1e-9
	}

	for i, ok := range valid {
		if !ok {
			continue
		}
		c := &cells[i]
		satTerm := w.Saturation * c.Saturation
		satThresh := w.Saturation * effS

		occupied := c.Contrast > effC || (c.Contrast > 0.6*effC && satTerm > 0.8*satThresh)
		c.Occupied = occupied

		score := 0.6*clamp01(c.Contrast/(1.5*effC)) +
			0.25*w.Saturation*clamp01(c.Saturation/(1.5*effS)) +
			0.15*w.Edge*math.Min(1, 8*c.EdgeDensity)

		if occupied {
			c.Confidence = score
		} else {
			c.Confidence = math.Max(0, 1-score)
		}
	}
}
