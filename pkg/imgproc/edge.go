package imgproc

import "math"

// GrayscalePlane returns the row-major luma plane (BT.709) of the buffer
// in [0,1], used by both the photo-cleanup Sobel edge command here and
// (via SobelAt) by the Grid Detector's circle-edge voting.
func (b Buffer) GrayscalePlane() []float64 {
	plane := make([]float64, b.width*b.height)
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := b.At(x, y)
			r := float64(c.R) / 255.0
			g := float64(c.G) / 255.0
			bl := float64(c.B) / 255.0
			plane[y*b.width+x] = 0.2126*r + 0.7152*g + 0.0722*bl
		}
	}
	return plane
}

var sobelGx = [3][3]float64{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
var sobelGy = [3][3]float64{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}

// SobelAt computes the Sobel gradient magnitude at (x,y) over a grayscale
// plane produced by GrayscalePlane, clamping taps to the image edge.
// Grounded in the teacher's EdgeEx (pkg/stdimg/edge.go), reused both for
// Apply's "edge" command and as the Grid Detector's circle-edge
// voting signal (spec.md §4.E's Hough-like circle detector).
func SobelAt(plane []float64, w, h, x, y int) (gx, gy, mag float64) {
	for ky := -1; ky <= 1; ky++ {
		for kx := -1; kx <= 1; kx++ {
			ix := clampInt(x+kx, 0, w-1)
			iy := clampInt(y+ky, 0, h-1)
			lum := plane[iy*w+ix]
			gx += lum * sobelGx[ky+1][kx+1]
			gy += lum * sobelGy[ky+1][kx+1]
		}
	}
	mag = math.Hypot(gx, gy)
	return
}

// Edge renders a grayscale Sobel edge-magnitude image, normalized to
// [0,255], Apply's "edge" command. Grounded in the teacher's
// Edge/EdgeEx (pkg/stdimg/edge.go).
func (b Buffer) Edge() Buffer {
	if !b.Valid() {
		return b
	}
	plane := b.GrayscalePlane()
	mags := make([]float64, b.width*b.height)
	maxMag := 0.0
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			_, _, m := SobelAt(plane, b.width, b.height, x, y)
			mags[y*b.width+x] = m
			if m > maxMag {
				maxMag = m
			}
		}
	}
	norm := 1.0
	if maxMag > 0 {
		norm = 255.0 / maxMag
	}
	out := newNRGBA(b.width, b.height)
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			v := clampToUint8(mags[y*b.width+x] * norm)
			i := out.PixOffset(x, y)
			out.Pix[i+0] = v
			out.Pix[i+1] = v
			out.Pix[i+2] = v
			out.Pix[i+3] = 255
		}
	}
	return bufferFromNRGBA(out)
}
