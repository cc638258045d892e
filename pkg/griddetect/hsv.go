package griddetect

import (
	"github.com/ben-ben2018/pindou/pkg/colorspace"
	"github.com/ben-ben2018/pindou/pkg/imgproc"
)

// saturationPlane returns the row-major HSV saturation plane in [0,1].
func saturationPlane(b imgproc.Buffer) []float64 {
	w, h := b.Width(), b.Height()
	plane := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			hsv := colorspace.RGB8ToHSV(b.At(x, y))
			plane[y*w+x] = hsv.S
		}
	}
	return plane
}
