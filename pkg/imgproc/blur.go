package imgproc

import "math"

// GaussianBlur applies a separable Gaussian blur with the given sigma.
// Grounded in the teacher's SeparableGaussianBlur (referenced from
// pkg/stdimg/adaptive_blur.go / engine.go's "blur" command), narrowed to
// a single fixed-sigma pass since bead-board cleanup never needs the
// teacher's adaptive per-region sigma.
func (b Buffer) GaussianBlur(sigma float64) Buffer {
	if !b.Valid() || sigma <= 0 {
		return b
	}
	kernel := gaussianKernel1D(sigma)
	radius := len(kernel) / 2

	tmp := newNRGBA(b.width, b.height)
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			var sr, sg, sbl float64
			for k := -radius; k <= radius; k++ {
				c := b.At(x+k, y)
				w := kernel[k+radius]
				sr += float64(c.R) * w
				sg += float64(c.G) * w
				sbl += float64(c.B) * w
			}
			i := tmp.PixOffset(x, y)
			tmp.Pix[i+0] = clampToUint8(sr)
			tmp.Pix[i+1] = clampToUint8(sg)
			tmp.Pix[i+2] = clampToUint8(sbl)
			tmp.Pix[i+3] = 255
		}
	}
	horiz := bufferFromNRGBA(tmp)

	out := newNRGBA(b.width, b.height)
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			var sr, sg, sbl float64
			for k := -radius; k <= radius; k++ {
				c := horiz.At(x, y+k)
				w := kernel[k+radius]
				sr += float64(c.R) * w
				sg += float64(c.G) * w
				sbl += float64(c.B) * w
			}
			i := out.PixOffset(x, y)
			out.Pix[i+0] = clampToUint8(sr)
			out.Pix[i+1] = clampToUint8(sg)
			out.Pix[i+2] = clampToUint8(sbl)
			out.Pix[i+3] = 255
		}
	}
	return bufferFromNRGBA(out)
}

func gaussianKernel1D(sigma float64) []float64 {
	radius := int(math.Ceil(sigma * 3))
	if radius < 1 {
		radius = 1
	}
	n := 2*radius + 1
	kernel := make([]float64, n)
	sum := 0.0
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		kernel[i+radius] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}
