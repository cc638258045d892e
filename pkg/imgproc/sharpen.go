package imgproc

// UnsharpMask sharpens the buffer by subtracting a Gaussian-blurred copy
// from the original and adding the scaled difference back, the same
// unsharp-mask shape as the teacher's AdaptiveSharpen
// (pkg/stdimg/adaptive_sharpen.go) without its per-edge adaptive radius —
// bead-board photos are flat and close-up enough that a fixed radius
// sharpens the bead rims evenly.
func (b Buffer) UnsharpMask(sigma, amount float64) Buffer {
	if !b.Valid() || amount <= 0 {
		return b
	}
	blurred := b.GaussianBlur(sigma)
	out := newNRGBA(b.width, b.height)
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			orig := b.At(x, y)
			soft := blurred.At(x, y)
			sharpen := func(o, s uint8) uint8 {
				diff := float64(o) - float64(s)
				return clampToUint8(float64(o) + amount*diff)
			}
			i := out.PixOffset(x, y)
			out.Pix[i+0] = sharpen(orig.R, soft.R)
			out.Pix[i+1] = sharpen(orig.G, soft.G)
			out.Pix[i+2] = sharpen(orig.B, soft.B)
			out.Pix[i+3] = 255
		}
	}
	return bufferFromNRGBA(out)
}
