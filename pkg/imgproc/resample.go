package imgproc

import (
	"image"
	"math"

	"github.com/ben-ben2018/pindou/pkg/colorspace"
)

// Bilinear samples the buffer at floating coordinates, clamping taps to
// the buffer edge. Grounded in the teacher's sampleBilinear
// (pkg/stdimg/resample.go).
func (b Buffer) Bilinear(x, y float64) colorspace.RGB8 {
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	xFrac := x - float64(x0)
	yFrac := y - float64(y0)

	c00 := b.At(x0, y0)
	c10 := b.At(x0+1, y0)
	c01 := b.At(x0, y0+1)
	c11 := b.At(x0+1, y0+1)

	lerpChan := func(c00, c10, c01, c11 uint8) uint8 {
		r0 := float64(c00)*(1-xFrac) + float64(c10)*xFrac
		r1 := float64(c01)*(1-xFrac) + float64(c11)*xFrac
		return clampToUint8(r0*(1-yFrac) + r1*yFrac)
	}
	return colorspace.RGB8{
		R: lerpChan(c00.R, c10.R, c01.R, c11.R),
		G: lerpChan(c00.G, c10.G, c01.G, c11.G),
		B: lerpChan(c00.B, c10.B, c01.B, c11.B),
	}
}

// ResampleTo resamples the buffer to exactly dstW x dstH using bilinear
// interpolation centered on each destination pixel. Used by the
// Quantizer's "original" mode (spec.md §4.D) to resample the source once
// before sampling individual grid cells.
func (b Buffer) ResampleTo(dstW, dstH int) Buffer {
	out := image.NewNRGBA(image.Rect(0, 0, dstW, dstH))
	if dstW <= 0 || dstH <= 0 || !b.Valid() {
		return bufferFromNRGBA(out)
	}
	xScale := float64(b.width) / float64(dstW)
	yScale := float64(b.height) / float64(dstH)
	for y := 0; y < dstH; y++ {
		sy := (float64(y)+0.5)*yScale - 0.5
		for x := 0; x < dstW; x++ {
			sx := (float64(x)+0.5)*xScale - 0.5
			c := b.Bilinear(sx, sy)
			i := out.PixOffset(x, y)
			out.Pix[i+0] = c.R
			out.Pix[i+1] = c.G
			out.Pix[i+2] = c.B
			out.Pix[i+3] = 255
		}
	}
	return bufferFromNRGBA(out)
}

func clampToUint8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(math.Round(v))
}
