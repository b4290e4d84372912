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

func TestExecutorTransform8BitIdentity(t *testing.T) {
	p := NewSRGBProfile()
	plan, err := BuildPlan(p, LayoutRgb, p, LayoutRgb, nil)
	if err != nil {
		t.Fatalf("BuildPlan failed: %v", err)
	}
	exec, err := NewExecutor[uint8, uint8](plan, LayoutRgb, LayoutRgb, 8, 8, nil)
	if err != nil {
		t.Fatalf("NewExecutor failed: %v", err)
	}
	src := []uint8{0, 0, 0, 255, 255, 255, 128, 64, 32}
	dst := make([]uint8, len(src))
	if err := exec.Transform(src, dst); err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	for i := range src {
		diff := int(src[i]) - int(dst[i])
		if diff < 0 {
			diff = -diff
		}
		if diff > 2 {
			t.Errorf("sRGB->sRGB Transform[%d] = %d, want ~%d", i, dst[i], src[i])
		}
	}
}

func TestExecutorTransformRgbaAlphaPassthrough(t *testing.T) {
	p := NewSRGBProfile()
	plan, err := BuildPlan(p, LayoutRgb, p, LayoutRgb, nil)
	if err != nil {
		t.Fatalf("BuildPlan failed: %v", err)
	}
	exec, err := NewExecutor[uint8, uint8](plan, LayoutRgba, LayoutRgba, 8, 8, nil)
	if err != nil {
		t.Fatalf("NewExecutor failed: %v", err)
	}
	src := []uint8{10, 20, 30, 77}
	dst := make([]uint8, 4)
	if err := exec.Transform(src, dst); err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	if dst[3] != 77 {
		t.Errorf("alpha passthrough: dst[3] = %d, want 77", dst[3])
	}
}

func TestExecutorTransformAlphaDefaultsWhenSourceHasNone(t *testing.T) {
	p := NewSRGBProfile()
	plan, err := BuildPlan(p, LayoutRgb, p, LayoutRgb, nil)
	if err != nil {
		t.Fatalf("BuildPlan failed: %v", err)
	}
	exec, err := NewExecutor[uint8, uint8](plan, LayoutRgb, LayoutRgba, 8, 8, nil)
	if err != nil {
		t.Fatalf("NewExecutor failed: %v", err)
	}
	src := []uint8{10, 20, 30}
	dst := make([]uint8, 4)
	if err := exec.Transform(src, dst); err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	if dst[3] != 255 {
		t.Errorf("alpha default: dst[3] = %d, want 255 (opaque)", dst[3])
	}
}

func TestExecutorTransformF64RoundTrip(t *testing.T) {
	p := NewSRGBProfile()
	plan, err := BuildPlan(p, LayoutRgb, p, LayoutRgb, nil)
	if err != nil {
		t.Fatalf("BuildPlan failed: %v", err)
	}
	exec, err := NewExecutor[float64, float64](plan, LayoutRgb, LayoutRgb, 0, 0, nil)
	if err != nil {
		t.Fatalf("NewExecutor failed: %v", err)
	}
	src := []float64{0.1, 0.5, 0.9}
	dst := make([]float64, 3)
	if err := exec.Transform(src, dst); err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	for i := range src {
		diff := src[i] - dst[i]
		if diff < 0 {
			diff = -diff
		}
		if diff > 1e-3 {
			t.Errorf("f64 identity Transform[%d] = %v, want ~%v", i, dst[i], src[i])
		}
	}
}

func TestExecutorTransformLaneMultipleOfChannels(t *testing.T) {
	p := NewSRGBProfile()
	plan, err := BuildPlan(p, LayoutRgb, p, LayoutRgb, nil)
	if err != nil {
		t.Fatalf("BuildPlan failed: %v", err)
	}
	exec, err := NewExecutor[uint8, uint8](plan, LayoutRgb, LayoutRgb, 8, 8, nil)
	if err != nil {
		t.Fatalf("NewExecutor failed: %v", err)
	}
	src := []uint8{0, 0} // not a multiple of 3
	dst := make([]uint8, 3)
	if err := exec.Transform(src, dst); err == nil {
		t.Fatal("expected LaneMultipleOfChannels error")
	} else if e, ok := err.(*Error); !ok || e.Code != LaneMultipleOfChannels {
		t.Errorf("error = %v, want Code LaneMultipleOfChannels", err)
	}
}

func TestExecutorTransformLaneSizeMismatch(t *testing.T) {
	p := NewSRGBProfile()
	plan, err := BuildPlan(p, LayoutRgb, p, LayoutRgb, nil)
	if err != nil {
		t.Fatalf("BuildPlan failed: %v", err)
	}
	exec, err := NewExecutor[uint8, uint8](plan, LayoutRgb, LayoutRgb, 8, 8, nil)
	if err != nil {
		t.Fatalf("NewExecutor failed: %v", err)
	}
	src := []uint8{0, 0, 0, 1, 1, 1} // 2 pixel groups
	dst := make([]uint8, 3)          // 1 pixel group
	if err := exec.Transform(src, dst); err == nil {
		t.Fatal("expected LaneSizeMismatch error")
	} else if e, ok := err.(*Error); !ok || e.Code != LaneSizeMismatch {
		t.Errorf("error = %v, want Code LaneSizeMismatch", err)
	}
}

func TestExecutorTransformGrayLayout(t *testing.T) {
	gray := NewGrayProfile(2.2)
	plan, err := BuildPlan(gray, LayoutGray, gray, LayoutGray, nil)
	if err != nil {
		t.Fatalf("BuildPlan failed: %v", err)
	}
	exec, err := NewExecutor[uint16, uint16](plan, LayoutGray, LayoutGray, 16, 16, nil)
	if err != nil {
		t.Fatalf("NewExecutor failed: %v", err)
	}
	src := []uint16{0, 32768, 65535}
	dst := make([]uint16, 3)
	if err := exec.Transform(src, dst); err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	for i := range src {
		diff := int(src[i]) - int(dst[i])
		if diff < 0 {
			diff = -diff
		}
		if diff > 500 {
			t.Errorf("gray identity Transform[%d] = %d, want ~%d", i, dst[i], src[i])
		}
	}
}

func TestExecutorInvalidLayout(t *testing.T) {
	p := NewSRGBProfile()
	plan, err := BuildPlan(p, LayoutRgb, p, LayoutRgb, nil)
	if err != nil {
		t.Fatalf("BuildPlan failed: %v", err)
	}
	if _, err := NewExecutor[uint8, uint8](plan, Layout(99), LayoutRgb, 8, 8, nil); err == nil {
		t.Fatal("expected InvalidLayout error")
	} else if e, ok := err.(*Error); !ok || e.Code != InvalidLayout {
		t.Errorf("error = %v, want Code InvalidLayout", err)
	}
}

func TestColorChannels(t *testing.T) {
	tests := []struct {
		layout Layout
		want   int
	}{
		{LayoutRgb, 3},
		{LayoutRgba, 3},
		{LayoutGray, 1},
		{LayoutGrayAlpha, 1},
	}
	for _, tt := range tests {
		if got := colorChannels(tt.layout); got != tt.want {
			t.Errorf("colorChannels(%v) = %d, want %d", tt.layout, got, tt.want)
		}
	}
}
