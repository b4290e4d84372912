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

import "testing"

func TestNewSRGBProfile(t *testing.T) {
	p := NewSRGBProfile()
	if !p.HasFullMatrixShaper() {
		t.Error("NewSRGBProfile() should report HasFullMatrixShaper() == true")
	}
	if p.ColorSpace != SpaceRgb {
		t.Errorf("ColorSpace = %v, want SpaceRgb", p.ColorSpace)
	}
}

func TestNewDisplayP3Profile(t *testing.T) {
	p := NewDisplayP3Profile()
	if !p.HasFullMatrixShaper() {
		t.Error("NewDisplayP3Profile() should report HasFullMatrixShaper() == true")
	}
	if p.RedColorant == (Xyz{}) {
		t.Error("NewDisplayP3Profile() red colorant should be nonzero")
	}
}

func TestNewBT2020Profile(t *testing.T) {
	p := NewBT2020Profile()
	if !p.HasFullMatrixShaper() {
		t.Error("NewBT2020Profile() should report HasFullMatrixShaper() == true")
	}
	if p.RedTRC == nil {
		t.Fatal("NewBT2020Profile() should have a non-nil RedTRC")
	}
	if p.RedTRC.Evaluate(0) != 0 {
		t.Errorf("NewBT2020Profile() TRC Evaluate(0) = %v, want 0", p.RedTRC.Evaluate(0))
	}
}

func TestNewGrayProfile(t *testing.T) {
	p := NewGrayProfile(2.2)
	if p.ColorSpace != SpaceGray {
		t.Errorf("ColorSpace = %v, want SpaceGray", p.ColorSpace)
	}
	if p.GrayTRC == nil {
		t.Fatal("NewGrayProfile() should have a non-nil GrayTRC")
	}
	if p.GrayTRC.Evaluate(1) < 0.99 || p.GrayTRC.Evaluate(1) > 1.01 {
		t.Errorf("NewGrayProfile() TRC Evaluate(1) = %v, want ~1", p.GrayTRC.Evaluate(1))
	}
}

func TestNewGrayProfileDefaultsGamma(t *testing.T) {
	p := NewGrayProfile(0)
	want := NewGrayProfile(2.2)
	if p.GrayTRC.Evaluate(0.5) != want.GrayTRC.Evaluate(0.5) {
		t.Errorf("NewGrayProfile(0) should default to gamma 2.2: got %v, want %v",
			p.GrayTRC.Evaluate(0.5), want.GrayTRC.Evaluate(0.5))
	}
}
