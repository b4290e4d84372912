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

	"github.com/stretchr/testify/assert"
)

// TestIdentityTransformIsNearLossless checks that converting a profile to
// itself reproduces the input within a few code values across the 8-bit
// and float64 backends.
func TestIdentityTransformIsNearLossless(t *testing.T) {
	p := NewSRGBProfile()

	exec8, err := CreateTransform8Bit(p, LayoutRgb, p, LayoutRgb, nil)
	if err != nil {
		t.Fatalf("CreateTransform8Bit failed: %v", err)
	}
	in8 := []uint8{0, 37, 128, 200, 255}
	out8 := make([]uint8, len(in8))
	if err := exec8.Transform(in8, out8); err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	for i := range in8 {
		if d := int(in8[i]) - int(out8[i]); d > 2 || d < -2 {
			t.Errorf("8-bit identity[%d] = %d, want ~%d", i, out8[i], in8[i])
		}
	}

	execF, err := CreateTransformF64(p, LayoutRgb, p, LayoutRgb, nil)
	if err != nil {
		t.Fatalf("CreateTransformF64 failed: %v", err)
	}
	inF := []float64{0, 0.1, 0.5, 0.9, 1.0}
	outF := make([]float64, len(inF))
	if err := execF.Transform(inF, outF); err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	for i := range inF {
		assert.InDeltaf(t, inF[i], outF[i], 1e-3, "float identity[%d]", i)
	}
}

// TestLayoutInvarianceRgbVsRgba checks that the RGB channels produced by a
// transform do not depend on whether the source carries an alpha channel.
func TestLayoutInvarianceRgbVsRgba(t *testing.T) {
	src := NewSRGBProfile()
	dst := NewDisplayP3Profile()

	execRgb, err := CreateTransform8Bit(src, LayoutRgb, dst, LayoutRgb, nil)
	if err != nil {
		t.Fatalf("CreateTransform8Bit failed: %v", err)
	}
	execRgba, err := CreateTransform8Bit(src, LayoutRgba, dst, LayoutRgba, nil)
	if err != nil {
		t.Fatalf("CreateTransform8Bit failed: %v", err)
	}

	inRgb := []uint8{30, 140, 220}
	outRgb := make([]uint8, 3)
	if err := execRgb.Transform(inRgb, outRgb); err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	inRgba := []uint8{30, 140, 220, 128}
	outRgba := make([]uint8, 4)
	if err := execRgba.Transform(inRgba, outRgba); err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if outRgb[i] != outRgba[i] {
			t.Errorf("channel %d differs between RGB (%d) and RGBA (%d) layouts", i, outRgb[i], outRgba[i])
		}
	}
	if outRgba[3] != 128 {
		t.Errorf("alpha passthrough = %d, want 128", outRgba[3])
	}
}

// TestMonotoneTRCPreservesOrdering checks that a built-in gamma TRC never
// reverses the relative order of two gray levels after a round trip.
func TestMonotoneTRCPreservesOrdering(t *testing.T) {
	gray := NewGrayProfile(2.4)
	levels := []uint8{0, 5, 40, 90, 140, 200, 255}
	exec, err := CreateTransform8Bit(gray, LayoutGray, gray, LayoutGray, nil)
	if err != nil {
		t.Fatalf("CreateTransform8Bit failed: %v", err)
	}
	prev := -1
	for _, v := range levels {
		out := make([]uint8, 1)
		if err := exec.Transform([]uint8{v}, out); err != nil {
			t.Fatalf("Transform failed: %v", err)
		}
		if int(out[0]) < prev {
			t.Errorf("monotonicity violated at input %d: got %d after previous %d", v, out[0], prev)
		}
		prev = int(out[0])
	}
}

// TestInterpolationMethodsAgreeAtGridPoints checks that every
// InterpolationMethod gives the same result for black on a Display P3 to
// sRGB matrix-shaper transform, where no geometry-dependent choice should
// matter.
func TestInterpolationMethodsAgreeAtGridPoints(t *testing.T) {
	p := NewDisplayP3Profile()
	dst := NewSRGBProfile()

	var results [][]uint8
	for _, m := range []InterpolationMethod{Tetrahedral, Pyramid, Prism, Linear} {
		opts := &TransformOptions{InterpolationMethod: m}
		exec, err := CreateTransform8Bit(p, LayoutRgb, dst, LayoutRgb, opts)
		if err != nil {
			t.Fatalf("CreateTransform8Bit(%v) failed: %v", m, err)
		}
		in := []uint8{0, 0, 0}
		out := make([]uint8, 3)
		if err := exec.Transform(in, out); err != nil {
			t.Fatalf("Transform(%v) failed: %v", m, err)
		}
		results = append(results, append([]uint8(nil), out...))
	}
	for i := 1; i < len(results); i++ {
		for c := 0; c < 3; c++ {
			if d := int(results[0][c]) - int(results[i][c]); d > 1 || d < -1 {
				t.Errorf("interpolation method %d disagrees with method 0 at black: %v vs %v", i, results[i], results[0])
			}
		}
	}
}

// TestRenderingIntentFallbackToMatrixShaper checks that a matrix/TRC-only
// profile pair can still build a plan under every RenderingIntent, since
// there is no LUT warehouse to select between.
func TestRenderingIntentFallbackToMatrixShaper(t *testing.T) {
	src := NewSRGBProfile()
	dst := NewDisplayP3Profile()
	for _, intent := range []RenderingIntent{Perceptual, RelativeColorimetric, Saturation, AbsoluteColorimetric} {
		opts := &TransformOptions{RenderingIntent: intent}
		plan, err := BuildPlan(src, LayoutRgb, dst, LayoutRgb, opts)
		if err != nil {
			t.Fatalf("BuildPlan(intent=%v) failed: %v", intent, err)
		}
		if plan == nil {
			t.Fatalf("BuildPlan(intent=%v) returned a nil plan", intent)
		}
	}
}

// TestGrayToRgbAndBackRoundTrips exercises the gray<->RGB bridge plan kinds
// end to end through the public facade.
func TestGrayToRgbAndBackRoundTrips(t *testing.T) {
	gray := NewGrayProfile(2.2)
	rgb := NewSRGBProfile()

	toRgb, err := CreateTransform8Bit(gray, LayoutGray, rgb, LayoutRgb, nil)
	if err != nil {
		t.Fatalf("CreateTransform8Bit gray->rgb failed: %v", err)
	}
	mid := []uint8{128}
	rgbOut := make([]uint8, 3)
	if err := toRgb.Transform(mid, rgbOut); err != nil {
		t.Fatalf("Transform gray->rgb failed: %v", err)
	}
	if rgbOut[0] != rgbOut[1] || rgbOut[1] != rgbOut[2] {
		t.Errorf("gray->rgb bridge should be achromatic, got %v", rgbOut)
	}

	toGray, err := CreateTransform8Bit(rgb, LayoutRgb, gray, LayoutGray, nil)
	if err != nil {
		t.Fatalf("CreateTransform8Bit rgb->gray failed: %v", err)
	}
	achromatic := []uint8{128, 128, 128}
	grayOut := make([]uint8, 1)
	if err := toGray.Transform(achromatic, grayOut); err != nil {
		t.Fatalf("Transform rgb->gray failed: %v", err)
	}
	assert.InDelta(t, 128, int(grayOut[0]), 3, "achromatic rgb->gray")
}

// TestApplyGamutClipPassesThroughInGamutColors checks the documented
// invariant that every clip method is a no-op for already-in-range colors.
func TestApplyGamutClipPassesThroughInGamutColors(t *testing.T) {
	v := Vec3{0.2, 0.5, 0.8}
	for _, m := range []GamutClipMethod{GamutClipNone, GamutClipPreserveChroma, GamutClipProjectToLCusp, GamutClipAdaptiveL0} {
		if got := ApplyGamutClip(v, m); got != v {
			t.Errorf("ApplyGamutClip(%v, method=%d) = %v, want unchanged %v", v, m, got, v)
		}
	}
}

// TestApplyGamutClipBringsOutOfRangeIntoUnitCube checks that every clip
// method maps an out-of-gamut color back into [0,1]^3.
func TestApplyGamutClipBringsOutOfRangeIntoUnitCube(t *testing.T) {
	v := Vec3{1.4, -0.2, 0.5}
	for _, m := range []GamutClipMethod{GamutClipNone, GamutClipPreserveChroma, GamutClipProjectToLCusp, GamutClipAdaptiveL0} {
		got := ApplyGamutClip(v, m)
		for i := 0; i < 3; i++ {
			if got[i] < -1e-5 || got[i] > 1+1e-5 {
				t.Errorf("ApplyGamutClip(%v, method=%d)[%d] = %v, out of [0,1]", v, m, i, got[i])
			}
		}
	}
}
