package imgproc

// Despeckle replaces any pixel whose 3x3 neighborhood median differs from
// it by more than threshold, reducing sensor noise in board photos before
// grid detection. Grounded in the teacher's despeckle/median filter path
// (pkg/stdimg/floodfill.go, engine.go's "despeckle" command), narrowed to
// a single fixed 3x3 window.
func (b Buffer) Despeckle(threshold float64) Buffer {
	if !b.Valid() {
		return b
	}
	out := newNRGBA(b.width, b.height)
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			med := median3x3(b, x, y)
			c := b.At(x, y)
			pick := func(v, m uint8) uint8 {
				if absDiff(v, m) > threshold {
					return m
				}
				return v
			}
			i := out.PixOffset(x, y)
			out.Pix[i+0] = pick(c.R, med.R)
			out.Pix[i+1] = pick(c.G, med.G)
			out.Pix[i+2] = pick(c.B, med.B)
			out.Pix[i+3] = 255
		}
	}
	return bufferFromNRGBA(out)
}

func absDiff(a, b uint8) float64 {
	if a > b {
		return float64(a - b)
	}
	return float64(b - a)
}

func median3x3(b Buffer, x, y int) struct{ R, G, B uint8 } {
	var rs, gs, bs [9]uint8
	n := 0
	for ky := -1; ky <= 1; ky++ {
		for kx := -1; kx <= 1; kx++ {
			c := b.At(x+kx, y+ky)
			rs[n], gs[n], bs[n] = c.R, c.G, c.B
			n++
		}
	}
	insertionSort9(&rs)
	insertionSort9(&gs)
	insertionSort9(&bs)
	return struct{ R, G, B uint8 }{rs[4], gs[4], bs[4]}
}

func insertionSort9(a *[9]uint8) {
	for i := 1; i < 9; i++ {
		v := a[i]
		j := i - 1
		for j >= 0 && a[j] > v {
			a[j+1] = a[j]
			j--
		}
		a[j+1] = v
	}
}
