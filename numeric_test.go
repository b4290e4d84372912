// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.
package icc

import (
	"math"
	"testing"
)

func TestMatrix3Inverse(t *testing.T) {
	m := Matrix3{
		{0.4124564, 0.3575761, 0.1804375},
		{0.2126729, 0.7151522, 0.0721750},
		{0.0193339, 0.1191920, 0.9503041},
	}
	inv, err := m.Inverse()
	if err != nil {
		t.Fatalf("Inverse failed: %v", err)
	}
	got := m.Mul(inv)
	if !got.ApproxEqual(IdentityMatrix3) {
		t.Errorf("m * inverse(m) = %v, want identity", got)
	}
}

func TestMatrix3InverseSingular(t *testing.T) {
	m := Matrix3{}
	if _, err := m.Inverse(); err == nil {
		t.Fatal("expected an error inverting the zero matrix")
	} else if e, ok := err.(*Error); !ok || e.Code != DivisionByZero {
		t.Errorf("error = %v, want Code DivisionByZero", err)
	}
}

func TestMatrix3MulVecIdentity(t *testing.T) {
	v := Vec3{0.2, 0.4, 0.8}
	got := IdentityMatrix3.MulVec(v)
	if got != v {
		t.Errorf("identity * %v = %v, want %v", v, got, v)
	}
}

func TestXyYToXYZ(t *testing.T) {
	c := XyY{X: 0.3127, Y: 0.3290, YY: 1.0} // D65
	xyz, err := c.ToXYZ()
	if err != nil {
		t.Fatalf("ToXYZ failed: %v", err)
	}
	if math.Abs(float64(xyz.Y)-1.0) > 1e-6 {
		t.Errorf("Y = %v, want 1.0", xyz.Y)
	}
	if xyz.X <= 0 || xyz.Z <= 0 {
		t.Errorf("XYZ = %v, want positive X and Z", xyz)
	}
}

func TestXyYToXYZZeroY(t *testing.T) {
	c := XyY{X: 0.3, Y: 0, YY: 1}
	if _, err := c.ToXYZ(); err == nil {
		t.Fatal("expected DivisionByZero for y=0")
	} else if e, ok := err.(*Error); !ok || e.Code != DivisionByZero {
		t.Errorf("error = %v, want Code DivisionByZero", err)
	}
}

func TestChromaticityToXYZ(t *testing.T) {
	c := Chromaticity{X: 0.64, Y: 0.33} // Rec.709 red
	xyz, err := c.ToXYZ()
	if err != nil {
		t.Fatalf("ToXYZ failed: %v", err)
	}
	if math.Abs(float64(xyz.Y)-1.0) > 1e-6 {
		t.Errorf("Y = %v, want 1.0 (unit luminance)", xyz.Y)
	}
}

func TestQ15RoundTrip(t *testing.T) {
	tests := []float32{-1.0, -0.5, 0, 0.25, 0.5, 0.999}
	for _, x := range tests {
		q := floatToQ15(x)
		back := q15ToFloat(q)
		if math.Abs(float64(back-x)) > 1.0/32768 {
			t.Errorf("floatToQ15/q15ToFloat(%v) round-trip = %v", x, back)
		}
	}
}

func TestQ15MulIdentity(t *testing.T) {
	one := floatToQ15(1.0)
	half := floatToQ15(0.5)
	got := q15Mul(one, half)
	if math.Abs(float64(q15ToFloat(got))-0.5) > 1e-3 {
		t.Errorf("q15Mul(1.0, 0.5) = %v, want ~0.5", q15ToFloat(got))
	}
}

func TestQ15Lerp(t *testing.T) {
	a := floatToQ15(0.0)
	b := floatToQ15(1.0)
	mid := floatToQ15(0.5)
	got := q15Lerp(a, b, mid)
	if math.Abs(float64(q15ToFloat(got))-0.5) > 1e-2 {
		t.Errorf("q15Lerp(0,1,0.5) = %v, want ~0.5", q15ToFloat(got))
	}
}

func TestRoundingDivCeil(t *testing.T) {
	tests := []struct{ value, div, want int32 }{
		{10, 5, 2},
		{11, 5, 3},
		{0, 5, 0},
		{1, 5, 1},
	}
	for _, tt := range tests {
		got := roundingDivCeil(tt.value, tt.div)
		if got != tt.want {
			t.Errorf("roundingDivCeil(%d,%d) = %d, want %d", tt.value, tt.div, got, tt.want)
		}
	}
}

func TestS15Fixed16RoundTrip(t *testing.T) {
	tests := []float64{0, 1, -1, 0.5, 2.2, -3.75}
	for _, x := range tests {
		got := s15Fixed16ToFloat(floatToS15Fixed16(x))
		if math.Abs(got-x) > 1e-4 {
			t.Errorf("s15Fixed16 round-trip(%v) = %v", x, got)
		}
	}
}
