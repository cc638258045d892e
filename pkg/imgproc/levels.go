package imgproc

import "math"

// Levels remaps channel values from [blackPoint, whitePoint] to [0,255]
// with a gamma curve applied in between, the way the teacher's "level"
// command does (pkg/stdimg/levels.go, narrowed here to the single
// black/gamma/white path the teacher's ApplyCommandStdlib "level" case
// uses — the teacher's file also implements per-channel levels and a
// sixteen-argument ImageMagick-style variant that Apply's "levels"
// command doesn't expose).
func (b Buffer) Levels(blackPoint, gamma, whitePoint float64) Buffer {
	if !b.Valid() {
		return b
	}
	if whitePoint <= blackPoint {
		whitePoint = blackPoint + 1
	}
	invGamma := 1.0
	if gamma > 0 {
		invGamma = 1.0 / gamma
	}
	lut := make([]uint8, 256)
	for i := 0; i < 256; i++ {
		v := (float64(i) - blackPoint) / (whitePoint - blackPoint)
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		v = math.Pow(v, invGamma)
		lut[i] = clampToUint8(v * 255.0)
	}
	out := newNRGBA(b.width, b.height)
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := b.At(x, y)
			i := out.PixOffset(x, y)
			out.Pix[i+0] = lut[c.R]
			out.Pix[i+1] = lut[c.G]
			out.Pix[i+2] = lut[c.B]
			out.Pix[i+3] = 255
		}
	}
	return bufferFromNRGBA(out)
}

// AutoLevel stretches each channel's observed min/max to [0,255], the
// pure-stdlib equivalent of the teacher's "autoLevel" command
// (pkg/stdimg/levels.go), reachable through Apply's "autoLevel" command.
// The recognition pipeline does not call it: the cell analyzer computes
// its contrast population on the photo as given.
func (b Buffer) AutoLevel() Buffer {
	if !b.Valid() {
		return b
	}
	minR, minG, minB := uint8(255), uint8(255), uint8(255)
	maxR, maxG, maxB := uint8(0), uint8(0), uint8(0)
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := b.At(x, y)
			if c.R < minR {
				minR = c.R
			}
			if c.G < minG {
				minG = c.G
			}
			if c.B < minB {
				minB = c.B
			}
			if c.R > maxR {
				maxR = c.R
			}
			if c.G > maxG {
				maxG = c.G
			}
			if c.B > maxB {
				maxB = c.B
			}
		}
	}
	stretch := func(v, lo, hi uint8) uint8 {
		if hi <= lo {
			return v
		}
		return clampToUint8((float64(v) - float64(lo)) / (float64(hi) - float64(lo)) * 255.0)
	}
	out := newNRGBA(b.width, b.height)
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := b.At(x, y)
			i := out.PixOffset(x, y)
			out.Pix[i+0] = stretch(c.R, minR, maxR)
			out.Pix[i+1] = stretch(c.G, minG, maxG)
			out.Pix[i+2] = stretch(c.B, minB, maxB)
			out.Pix[i+3] = 255
		}
	}
	return bufferFromNRGBA(out)
}
