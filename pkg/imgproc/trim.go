package imgproc

import "image"

// Trim removes uniform border regions matching the top-left pixel color
// within a fuzz tolerance (Euclidean distance on the 0..255 scale).
// Grounded in the teacher's Trim (pkg/stdimg/trim.go); used to drop a
// phone photo's background margin before grid detection.
func (b Buffer) Trim(fuzz float64) Buffer {
	if !b.Valid() {
		return b
	}
	w, h := b.width, b.height
	ref := b.At(0, 0)
	fuzzSq := fuzz * fuzz

	minX, minY := w, h
	maxX, maxY := -1, -1
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := b.At(x, y)
			dr := float64(c.R) - float64(ref.R)
			dg := float64(c.G) - float64(ref.G)
			db := float64(c.B) - float64(ref.B)
			if dr*dr+dg*dg+db*db > fuzzSq {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}
	if maxX < minX || maxY < minY {
		return b
	}
	out := newNRGBA(maxX-minX+1, maxY-minY+1)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			setPix(out, x-minX, y-minY, b.At(x, y))
		}
	}
	return bufferFromNRGBA(out)
}

// Crop returns the sub-rectangle r of the buffer, clamped to bounds.
func (b Buffer) Crop(r image.Rectangle) Buffer {
	r = r.Intersect(image.Rect(0, 0, b.width, b.height))
	if r.Empty() {
		return Buffer{}
	}
	out := newNRGBA(r.Dx(), r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			setPix(out, x-r.Min.X, y-r.Min.Y, b.At(x, y))
		}
	}
	return bufferFromNRGBA(out)
}
