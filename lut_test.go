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
	"testing"
)

func identityLattice3(grid int) *Lattice3D {
	l := NewLattice3D(grid)
	for x := int32(0); x < int32(grid); x++ {
		for y := int32(0); y < int32(grid); y++ {
			for z := int32(0); z < int32(grid); z++ {
				fx := float32(x) / float32(grid-1)
				fy := float32(y) / float32(grid-1)
				fz := float32(z) / float32(grid-1)
				l.Set(x, y, z, Vec3{fx, fy, fz})
			}
		}
	}
	return l
}

func TestLutEvaluateClassicIdentity(t *testing.T) {
	l := &Lut{
		Shape:  shapeClassic,
		NumIn:  3,
		NumOut: 3,
		Grid:   9,
		Clut3:  identityLattice3(9),
	}
	for _, in := range [][]float64{{0, 0, 0}, {1, 1, 1}, {0.25, 0.5, 0.75}} {
		got, err := l.EvaluateClassic(in, Linear)
		if err != nil {
			t.Fatalf("EvaluateClassic(%v) failed: %v", in, err)
		}
		for c := 0; c < 3; c++ {
			if diff := float64(got[c]) - in[c]; diff > 0.02 || diff < -0.02 {
				t.Errorf("EvaluateClassic(%v)[%d] = %v, want ~%v", in, c, got[c], in[c])
			}
		}
	}
}

func TestLutEvaluateClassicWithCurves(t *testing.T) {
	half, err := NewParametricCurve(1, 0.5, 0, 0, 0, 0, 0)
	if err != nil {
		t.Fatalf("NewParametricCurve failed: %v", err)
	}
	l := &Lut{
		Shape:       shapeClassic,
		NumIn:       3,
		NumOut:      3,
		Grid:        9,
		Clut3:       identityLattice3(9),
		InputTables: []*ToneCurve{half, half, half},
	}
	got, err := l.EvaluateClassic([]float64{1, 1, 1}, Linear)
	if err != nil {
		t.Fatalf("EvaluateClassic failed: %v", err)
	}
	for c := 0; c < 3; c++ {
		if diff := float64(got[c]) - 0.5; diff > 0.02 || diff < -0.02 {
			t.Errorf("EvaluateClassic with input half-scale [%d] = %v, want ~0.5", c, got[c])
		}
	}
}

func TestLutEvaluateClassicWrongShape(t *testing.T) {
	l := &Lut{Shape: shapeMCurves}
	if _, err := l.EvaluateClassic([]float64{0, 0, 0}, Linear); err == nil {
		t.Fatal("expected an error calling EvaluateClassic on an MCurves lut")
	}
}

func TestLutEvaluateMCurvesForwardReverseConsistency(t *testing.T) {
	grid := 5
	clut := identityLattice3(grid)
	id := IdentityCurve
	bCurves := []*ToneCurve{&id, &id, &id}
	l := &Lut{
		Shape:       shapeMCurves,
		Direction:   AtoB,
		NumIn:       3,
		NumOut:      3,
		GridPerAxis: [4]int{grid, grid, grid, grid},
		Clut3:       clut,
		BCurves:     bCurves,
		MMatrix:     IdentityMatrix3,
	}
	in := []float64{0.2, 0.4, 0.6}
	out, err := l.EvaluateMCurves(in, Linear)
	if err != nil {
		t.Fatalf("forward EvaluateMCurves failed: %v", err)
	}
	for c := 0; c < 3; c++ {
		if diff := float64(out[c]) - in[c]; diff > 0.05 || diff < -0.05 {
			t.Errorf("forward identity mAB lut [%d] = %v, want ~%v", c, out[c], in[c])
		}
	}

	rev := &Lut{
		Shape:       shapeMCurves,
		Direction:   BtoA,
		NumIn:       3,
		NumOut:      3,
		GridPerAxis: [4]int{grid, grid, grid, grid},
		Clut3:       clut,
		BCurves:     bCurves,
		MMatrix:     IdentityMatrix3,
	}
	back, err := rev.EvaluateMCurves([]float64{float64(out[0]), float64(out[1]), float64(out[2])}, Linear)
	if err != nil {
		t.Fatalf("reverse EvaluateMCurves failed: %v", err)
	}
	for c := 0; c < 3; c++ {
		if diff := float64(back[c]) - in[c]; diff > 0.08 || diff < -0.08 {
			t.Errorf("reverse identity mBA lut [%d] = %v, want ~%v", c, back[c], in[c])
		}
	}
}

func TestLutEvaluateMCurvesMissingBCurvesForward(t *testing.T) {
	l := &Lut{
		Shape:       shapeMCurves,
		Direction:   AtoB,
		NumIn:       3,
		NumOut:      3,
		GridPerAxis: [4]int{2, 2, 2, 2},
		Clut3:       identityLattice3(2),
		MMatrix:     IdentityMatrix3,
	}
	if _, err := l.EvaluateMCurves([]float64{0, 0, 0}, Linear); err == nil {
		t.Fatal("expected an error: forward mAB lut without b_curves")
	}
}

func TestLutEvaluateMCurvesMissingBCurvesReverse(t *testing.T) {
	l := &Lut{
		Shape:       shapeMCurves,
		Direction:   BtoA,
		NumIn:       3,
		NumOut:      3,
		GridPerAxis: [4]int{2, 2, 2, 2},
		Clut3:       identityLattice3(2),
		MMatrix:     IdentityMatrix3,
	}
	if _, err := l.EvaluateMCurves([]float64{0, 0, 0}, Linear); err == nil {
		t.Fatal("expected an error: reverse mBA lut without b_curves")
	}
}

func TestApplyCurveSetNilIsIdentity(t *testing.T) {
	in := []float64{0.1, 0.2, 0.3}
	out := applyCurveSet(in, nil)
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("applyCurveSet(nil)[%d] = %v, want %v", i, out[i], in[i])
		}
	}
}

func TestBarycentricAtClamps(t *testing.T) {
	w := barycentricAt(-1, 10)
	if w.X != 0 || w.Xn != 1 || w.W != 0 {
		t.Errorf("barycentricAt(-1, 10) = %+v, want clamped to X=0, Xn=1, W=0", w)
	}
	w = barycentricAt(2, 10)
	if w.X != 9 || w.Xn != 9 {
		t.Errorf("barycentricAt(2, 10) = %+v, want clamped to X=Xn=9", w)
	}
}
