// Package colorspace implements the sRGB -> linear -> XYZ -> CIE Lab (D65)
// chain and the CIEDE2000 perceptual distance used throughout pindou for
// palette matching.
package colorspace

import "math"

// RGB8 is an ordered triple of integer channels in [0,255].
type RGB8 struct {
	R, G, B uint8
}

// Lab is a CIE-Lab color with the D65 white point.
type Lab struct {
	L, A, B float64
}

// HSV is a hue/saturation/value triple with H in [0,360) and S,V in [0,1].
type HSV struct {
	H, S, V float64
}

// d65White is the standard D65 reference white in XYZ.
var d65White = [3]float64{0.95047, 1.0, 1.08883}

// srgbToLinearMatrix is the standard sRGB -> XYZ (D65) matrix.
var srgbToLinearMatrix = [3][3]float64{
	{0.4124564, 0.3575761, 0.1804375},
	{0.2126729, 0.7151522, 0.0721750},
	{0.0193339, 0.1191920, 0.9503041},
}

// SRGBToLinear converts a single 8-bit sRGB channel value to a linear-light
// float in [0,1].
func SRGBToLinear(c8 uint8) float64 {
	v := float64(c8) / 255.0
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// LinearToSRGB is the inverse of SRGBToLinear, returning an 8-bit channel.
func LinearToSRGB(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	var s float64
	if v <= 0.0031308 {
		s = v * 12.92
	} else {
		s = 1.055*math.Pow(v, 1.0/2.4) - 0.055
	}
	return clampToUint8(s * 255.0)
}

// LinearRGBToXYZ matrix-multiplies linear RGB (each in [0,1]) by the
// standard D65 sRGB->XYZ matrix.
func LinearRGBToXYZ(r, g, b float64) (x, y, z float64) {
	m := srgbToLinearMatrix
	x = m[0][0]*r + m[0][1]*g + m[0][2]*b
	y = m[1][0]*r + m[1][1]*g + m[1][2]*b
	z = m[2][0]*r + m[2][1]*g + m[2][2]*b
	return
}

func labF(t float64) float64 {
	if t > 0.008856 {
		return math.Cbrt(t)
	}
	return 7.787*t + 16.0/116.0
}

func labFInv(t float64) float64 {
	t3 := t * t * t
	if t3 > 0.008856 {
		return t3
	}
	return (t - 16.0/116.0) / 7.787
}

// XYZToLab normalizes by the D65 white point and applies the piecewise
// cube-root response curve, per spec.
func XYZToLab(x, y, z float64) Lab {
	fx := labF(x / d65White[0])
	fy := labF(y / d65White[1])
	fz := labF(z / d65White[2])
	return Lab{
		L: 116.0*fy - 16.0,
		A: 500.0 * (fx - fy),
		B: 200.0 * (fy - fz),
	}
}

// LabToXYZ is the inverse of XYZToLab.
func LabToXYZ(lab Lab) (x, y, z float64) {
	fy := (lab.L + 16.0) / 116.0
	fx := fy + lab.A/500.0
	fz := fy - lab.B/200.0
	x = labFInv(fx) * d65White[0]
	y = labFInv(fy) * d65White[1]
	z = labFInv(fz) * d65White[2]
	return
}

// XYZToLinearRGB is the inverse of LinearRGBToXYZ.
func XYZToLinearRGB(x, y, z float64) (r, g, b float64) {
	// inverse of srgbToLinearMatrix
	inv := [3][3]float64{
		{3.2404542, -1.5371385, -0.4985314},
		{-0.9692660, 1.8760108, 0.0415560},
		{0.0556434, -0.2040259, 1.0572252},
	}
	r = inv[0][0]*x + inv[0][1]*y + inv[0][2]*z
	g = inv[1][0]*x + inv[1][1]*y + inv[1][2]*z
	b = inv[2][0]*x + inv[2][1]*y + inv[2][2]*z
	return
}

// RGB8ToLab converts an 8-bit sRGB triple directly to Lab.
func RGB8ToLab(c RGB8) Lab {
	r := SRGBToLinear(c.R)
	g := SRGBToLinear(c.G)
	b := SRGBToLinear(c.B)
	x, y, z := LinearRGBToXYZ(r, g, b)
	return XYZToLab(x, y, z)
}

// LabToRGB8 is the inverse of RGB8ToLab, clamping to [0,255].
func LabToRGB8(lab Lab) RGB8 {
	x, y, z := LabToXYZ(lab)
	r, g, b := XYZToLinearRGB(x, y, z)
	return RGB8{R: LinearToSRGB(r), G: LinearToSRGB(g), B: LinearToSRGB(b)}
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

// RGB8ToHSV converts an 8-bit sRGB triple to HSV with H in [0,360), S,V in
// [0,1]. Generalizes the teacher's rgbToHsl/hslToRgb pair (HSL) to HSV,
// which the grid detector's saturation sampler and the cell analyzer's
// saturation feature both need.
func RGB8ToHSV(c RGB8) HSV {
	r := float64(c.R) / 255.0
	g := float64(c.G) / 255.0
	b := float64(c.B) / 255.0
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	v := max
	d := max - min
	var s float64
	if max != 0 {
		s = d / max
	}
	if d == 0 {
		return HSV{H: 0, S: s, V: v}
	}
	var h float64
	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	case b:
		h = (r-g)/d + 4
	}
	h *= 60
	return HSV{H: h, S: s, V: v}
}

// Grayscale returns the ITU-R BT.709 luma of an 8-bit sRGB triple in [0,1].
func Grayscale(c RGB8) float64 {
	r := float64(c.R) / 255.0
	g := float64(c.G) / 255.0
	b := float64(c.B) / 255.0
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func deg2rad(d float64) float64 { return d * math.Pi / 180.0 }
func rad2deg(r float64) float64 { return r * 180.0 / math.Pi }

// DeltaE2000 computes the CIEDE2000 color difference between two Lab
// colors. The formula reproduces the canonical reference table to within
// 0.01, as required by spec.
func DeltaE2000(lab1, lab2 Lab) float64 {
	l1, a1, b1 := lab1.L, lab1.A, lab1.B
	l2, a2, b2 := lab2.L, lab2.A, lab2.B

	c1 := math.Hypot(a1, b1)
	c2 := math.Hypot(a2, b2)
	cBar := (c1 + c2) / 2.0

	c7 := math.Pow(cBar, 7)
	g := 0.5 * (1 - math.Sqrt(c7/(c7+math.Pow(25, 7))))

	a1p := a1 * (1 + g)
	a2p := a2 * (1 + g)

	c1p := math.Hypot(a1p, b1)
	c2p := math.Hypot(a2p, b2)

	h1p := hueAngle(b1, a1p)
	h2p := hueAngle(b2, a2p)

	deltaLp := l2 - l1
	deltaCp := c2p - c1p

	var deltahp float64
	if c1p*c2p == 0 {
		deltahp = 0
	} else {
		deltahp = h2p - h1p
		switch {
		case deltahp > 180:
			deltahp -= 360
		case deltahp < -180:
			deltahp += 360
		}
	}
	deltaHp := 2 * math.Sqrt(c1p*c2p) * math.Sin(deg2rad(deltahp)/2)

	lBarp := (l1 + l2) / 2.0
	cBarp := (c1p + c2p) / 2.0

	var hBarp float64
	if c1p*c2p == 0 {
		hBarp = h1p + h2p
	} else {
		hBarp = (h1p + h2p) / 2.0
		if math.Abs(h1p-h2p) > 180 {
			if hBarp < 180 {
				hBarp += 180
			} else {
				hBarp -= 180
			}
		}
	}

	t := 1 - 0.17*math.Cos(deg2rad(hBarp-30)) +
		0.24*math.Cos(deg2rad(2*hBarp)) +
		0.32*math.Cos(deg2rad(3*hBarp+6)) -
		0.20*math.Cos(deg2rad(4*hBarp-63))

	deltaTheta := 30 * math.Exp(-math.Pow((hBarp-275)/25, 2))
	rc := 2 * math.Sqrt(math.Pow(cBarp, 7)/(math.Pow(cBarp, 7)+math.Pow(25, 7)))
	sl := 1 + (0.015*math.Pow(lBarp-50, 2))/math.Sqrt(20+math.Pow(lBarp-50, 2))
	sc := 1 + 0.045*cBarp
	sh := 1 + 0.015*cBarp*t
	rt := -math.Sin(deg2rad(2*deltaTheta)) * rc

	kl, kc, kh := 1.0, 1.0, 1.0

	termL := deltaLp / (kl * sl)
	termC := deltaCp / (kc * sc)
	termH := deltaHp / (kh * sh)

	deltaE := math.Sqrt(termL*termL + termC*termC + termH*termH + rt*termC*termH)
	return deltaE
}

func hueAngle(b, a float64) float64 {
	if a == 0 && b == 0 {
		return 0
	}
	h := rad2deg(math.Atan2(b, a))
	if h < 0 {
		h += 360
	}
	return h
}
