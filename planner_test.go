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

func TestBuildPlanMatrixShaperKind(t *testing.T) {
	src := NewSRGBProfile()
	dst := NewDisplayP3Profile()
	plan, err := BuildPlan(src, LayoutRgb, dst, LayoutRgb, nil)
	if err != nil {
		t.Fatalf("BuildPlan failed: %v", err)
	}
	if plan.kind != planMatrixShaper {
		t.Errorf("BuildPlan(srgb, p3) kind = %v, want planMatrixShaper", plan.kind)
	}
}

func TestBuildPlanInvalidLayout(t *testing.T) {
	src := NewSRGBProfile()
	dst := NewSRGBProfile()
	if _, err := BuildPlan(src, Layout(99), dst, LayoutRgb, nil); err == nil {
		t.Fatal("expected InvalidLayout error for unrecognized layout")
	} else if e, ok := err.(*Error); !ok || e.Code != InvalidLayout {
		t.Errorf("error = %v, want Code InvalidLayout", err)
	}
}

func TestBuildPlanInvalidRenderingIntent(t *testing.T) {
	src := NewSRGBProfile()
	dst := NewSRGBProfile()
	opts := &TransformOptions{RenderingIntent: RenderingIntent(99)}
	if _, err := BuildPlan(src, LayoutRgb, dst, LayoutRgb, opts); err == nil {
		t.Fatal("expected InvalidRenderingIntent error")
	} else if e, ok := err.(*Error); !ok || e.Code != InvalidRenderingIntent {
		t.Errorf("error = %v, want Code InvalidRenderingIntent", err)
	}
}

func TestBuildPlanGrayBridgeKinds(t *testing.T) {
	gray := NewGrayProfile(2.2)
	rgb := NewSRGBProfile()

	plan, err := BuildPlan(gray, LayoutGray, rgb, LayoutRgb, nil)
	if err != nil {
		t.Fatalf("BuildPlan(gray->rgb) failed: %v", err)
	}
	if plan.kind != planGrayBridge || plan.dstIsGray {
		t.Errorf("BuildPlan(gray->rgb) kind=%v dstIsGray=%v, want planGrayBridge, false", plan.kind, plan.dstIsGray)
	}

	gray2 := NewGrayProfile(1.8)
	plan2, err := BuildPlan(gray, LayoutGray, gray2, LayoutGray, nil)
	if err != nil {
		t.Fatalf("BuildPlan(gray->gray) failed: %v", err)
	}
	if plan2.kind != planGrayBridge || !plan2.dstIsGray {
		t.Errorf("BuildPlan(gray->gray) kind=%v dstIsGray=%v, want planGrayBridge, true", plan2.kind, plan2.dstIsGray)
	}
}

func TestBuildPlanRgbToGrayKind(t *testing.T) {
	rgb := NewSRGBProfile()
	gray := NewGrayProfile(2.2)
	plan, err := BuildPlan(rgb, LayoutRgb, gray, LayoutGray, nil)
	if err != nil {
		t.Fatalf("BuildPlan(rgb->gray) failed: %v", err)
	}
	if plan.kind != planRgbToGray {
		t.Errorf("BuildPlan(rgb->gray) kind = %v, want planRgbToGray", plan.kind)
	}
}

func TestEvaluateMatrixShaperIdentity(t *testing.T) {
	p := NewSRGBProfile()
	plan, err := BuildPlan(p, LayoutRgb, p, LayoutRgb, nil)
	if err != nil {
		t.Fatalf("BuildPlan failed: %v", err)
	}
	for _, in := range [][]float64{{0, 0, 0}, {1, 1, 1}, {0.2, 0.5, 0.8}} {
		out, err := plan.Evaluate(in)
		if err != nil {
			t.Fatalf("Evaluate(%v) failed: %v", in, err)
		}
		for c := 0; c < 3; c++ {
			if math.Abs(out[c]-in[c]) > 1e-3 {
				t.Errorf("sRGB->sRGB Evaluate(%v)[%d] = %v, want ~%v", in, c, out[c], in[c])
			}
		}
	}
}

func TestEvaluateMatrixShaperBlackWhite(t *testing.T) {
	src := NewSRGBProfile()
	dst := NewDisplayP3Profile()
	plan, err := BuildPlan(src, LayoutRgb, dst, LayoutRgb, nil)
	if err != nil {
		t.Fatalf("BuildPlan failed: %v", err)
	}
	black, err := plan.Evaluate([]float64{0, 0, 0})
	if err != nil {
		t.Fatalf("Evaluate(black) failed: %v", err)
	}
	for c := 0; c < 3; c++ {
		if math.Abs(black[c]) > 1e-3 {
			t.Errorf("sRGB->P3 black[%d] = %v, want ~0", c, black[c])
		}
	}
	white, err := plan.Evaluate([]float64{1, 1, 1})
	if err != nil {
		t.Fatalf("Evaluate(white) failed: %v", err)
	}
	for c := 0; c < 3; c++ {
		if math.Abs(white[c]-1) > 1e-3 {
			t.Errorf("sRGB->P3 white[%d] = %v, want ~1", c, white[c])
		}
	}
}

func TestEvaluateGrayBridgeIdentity(t *testing.T) {
	gray := NewGrayProfile(2.2)
	plan, err := BuildPlan(gray, LayoutGray, gray, LayoutGray, nil)
	if err != nil {
		t.Fatalf("BuildPlan failed: %v", err)
	}
	for _, x := range []float64{0, 0.25, 0.5, 0.75, 1} {
		out, err := plan.Evaluate([]float64{x})
		if err != nil {
			t.Fatalf("Evaluate(%v) failed: %v", x, err)
		}
		if math.Abs(out[0]-x) > 1e-3 {
			t.Errorf("gray->gray identity Evaluate(%v) = %v, want ~%v", x, out[0], x)
		}
	}
}

func TestEvaluateGrayBridgeToRgb(t *testing.T) {
	gray := NewGrayProfile(2.2)
	rgb := NewSRGBProfile()
	plan, err := BuildPlan(gray, LayoutGray, rgb, LayoutRgb, nil)
	if err != nil {
		t.Fatalf("BuildPlan failed: %v", err)
	}
	out, err := plan.Evaluate([]float64{0.5})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("gray->rgb Evaluate returned %d channels, want 3", len(out))
	}
	if math.Abs(out[0]-out[1]) > 1e-6 || math.Abs(out[1]-out[2]) > 1e-6 {
		t.Errorf("gray->rgb Evaluate(0.5) = %v, want equal R=G=B (achromatic)", out)
	}
}

func TestEvaluateRgbToGrayAchromatic(t *testing.T) {
	rgb := NewSRGBProfile()
	gray := NewGrayProfile(2.2)
	plan, err := BuildPlan(rgb, LayoutRgb, gray, LayoutGray, nil)
	if err != nil {
		t.Fatalf("BuildPlan failed: %v", err)
	}
	out, err := plan.Evaluate([]float64{0.5, 0.5, 0.5})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("rgb->gray Evaluate returned %d channels, want 1", len(out))
	}
	if out[0] <= 0 || out[0] >= 1 {
		t.Errorf("rgb->gray Evaluate(0.5,0.5,0.5) = %v, want a value strictly between 0 and 1", out[0])
	}
}

func TestBuildPlanUnsupportedConnection(t *testing.T) {
	// A gray profile with no matrix-shaper destination and a destination
	// colour space that also isn't gray/RGB/LUT-backed-eligible falls
	// through to UnsupportedProfileConnection. We simulate this with a
	// destination RGB profile that is missing colorants (not a full
	// matrix shaper) paired with a gray source, which is the
	// buildGrayBridgePlan failure path rather than BuildPlan's own
	// default branch; check that it surfaces as an error either way.
	gray := NewGrayProfile(2.2)
	brokenRgb := &Profile{
		Version:    Version{Major: 4, Minor: 3},
		ColorSpace: SpaceRgb,
		PCS:        SpaceXYZ,
	}
	if _, err := BuildPlan(gray, LayoutGray, brokenRgb, LayoutRgb, nil); err == nil {
		t.Fatal("expected an error building a plan into an incomplete RGB profile")
	}
}
