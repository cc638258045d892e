package imgproc

// AdaptiveThreshold applies a local-mean threshold over a windowW x
// windowH window using an integral image for O(1) window sums, producing
// a bilevel buffer. Grounded directly in the teacher's AdaptiveThreshold
// (pkg/stdimg/adaptive_threshold.go); used by Apply's "threshold" command
// to produce a quick visual check of bead-versus-background contrast
// before running the full Grid Detector.
func (b Buffer) AdaptiveThreshold(windowW, windowH int, offset float64) Buffer {
	if !b.Valid() {
		return b
	}
	w, h := b.width, b.height
	if windowW <= 0 {
		windowW = 15
	}
	if windowH <= 0 {
		windowH = 15
	}
	lum := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := b.At(x, y)
			lum[y*w+x] = 0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)
		}
	}
	integ := make([]float64, (w+1)*(h+1))
	for y := 1; y <= h; y++ {
		sum := 0.0
		for x := 1; x <= w; x++ {
			sum += lum[(y-1)*w+(x-1)]
			integ[y*(w+1)+x] = integ[(y-1)*(w+1)+x] + sum
		}
	}

	out := newNRGBA(w, h)
	halfW := windowW / 2
	halfH := windowH / 2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			x0 := clampInt(x-halfW, 0, w-1)
			x1 := clampInt(x+halfW, 0, w-1)
			y0 := clampInt(y-halfH, 0, h-1)
			y1 := clampInt(y+halfH, 0, h-1)
			sx, ex, sy, ey := x0+1, x1+1, y0+1, y1+1
			area := float64((x1 - x0 + 1) * (y1 - y0 + 1))
			s := integ[ey*(w+1)+ex] - integ[(sy-1)*(w+1)+ex] - integ[ey*(w+1)+(sx-1)] + integ[(sy-1)*(w+1)+(sx-1)]
			mean := s / area
			th := mean - offset
			val := lum[y*w+x]
			v := uint8(0)
			if val > th {
				v = 255
			}
			i := out.PixOffset(x, y)
			out.Pix[i+0] = v
			out.Pix[i+1] = v
			out.Pix[i+2] = v
			out.Pix[i+3] = 255
		}
	}
	return bufferFromNRGBA(out)
}
