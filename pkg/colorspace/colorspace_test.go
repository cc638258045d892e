package colorspace

import (
	"math"
	"testing"
)

func TestRoundTripRGBLab(t *testing.T) {
	samples := []RGB8{
		{R: 0, G: 0, B: 0},
		{R: 255, G: 255, B: 255},
		{R: 255, G: 0, B: 0},
		{R: 0, G: 255, B: 0},
		{R: 0, G: 0, B: 255},
		{R: 128, G: 64, B: 200},
		{R: 37, G: 201, B: 90},
	}
	for _, rgb := range samples {
		lab := RGB8ToLab(rgb)
		back := LabToRGB8(lab)
		labBack := RGB8ToLab(back)
		errDist := DeltaE2000(lab, labBack)
		if errDist >= 0.5 {
			t.Fatalf("round trip error too large for %+v: deltaE=%f", rgb, errDist)
		}
	}
}

func TestDeltaE2000Symmetry(t *testing.T) {
	a := RGB8ToLab(RGB8{R: 10, G: 200, B: 30})
	b := RGB8ToLab(RGB8{R: 240, G: 20, B: 90})
	d1 := DeltaE2000(a, b)
	d2 := DeltaE2000(b, a)
	if math.Abs(d1-d2) > 1e-6 {
		t.Fatalf("deltaE2000 not symmetric: %f vs %f", d1, d2)
	}
}

func TestDeltaE2000Identity(t *testing.T) {
	a := RGB8ToLab(RGB8{R: 77, G: 88, B: 99})
	if d := DeltaE2000(a, a); d > 1e-9 {
		t.Fatalf("expected ~0 deltaE for identical colors, got %f", d)
	}
}

// Reference values from Sharma, Wu, Dalal (2005) table 1, rows 1-4.
func TestDeltaE2000ReferenceTable(t *testing.T) {
	cases := []struct {
		l1, a1, b1 float64
		l2, a2, b2 float64
		want       float64
	}{
		{50.0000, 2.6772, -79.7751, 50.0000, 0.0000, -82.7485, 2.0425},
		{50.0000, 3.1571, -77.2803, 50.0000, 0.0000, -82.7485, 2.8615},
		{50.0000, 2.8361, -74.0200, 50.0000, 0.0000, -82.7485, 3.4412},
		{50.0000, -1.3802, -84.2814, 50.0000, 0.0000, -82.7485, 1.0000},
	}
	for i, c := range cases {
		got := DeltaE2000(Lab{L: c.l1, A: c.a1, B: c.b1}, Lab{L: c.l2, A: c.a2, B: c.b2})
		if math.Abs(got-c.want) > 0.01 {
			t.Fatalf("case %d: want %f got %f", i, c.want, got)
		}
	}
}

func TestHSVGrayscaleInvariant(t *testing.T) {
	hsv := RGB8ToHSV(RGB8{R: 128, G: 128, B: 128})
	if hsv.S != 0 {
		t.Fatalf("expected zero saturation for gray, got %f", hsv.S)
	}
}
