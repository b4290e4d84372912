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

import "math"

// GamutClipMethod selects among the documented out-of-[0,1] clipping
// strategies applied after the final XyzToRgb matrix, before the gamma LUT
// lookup.
type GamutClipMethod int

const (
	// GamutClipNone just clamps each channel independently to [0,1].
	GamutClipNone GamutClipMethod = iota
	// GamutClipPreserveChroma scales the whole triplet towards mid-gray
	// until every channel is in range, preserving hue and chroma ratio.
	GamutClipPreserveChroma
	// GamutClipProjectToLCusp projects the out-of-range color towards the
	// neutral axis at the color's own approximate lightness (the mean of
	// its channels, see lCuspApprox).
	GamutClipProjectToLCusp
	// GamutClipAdaptiveL0 desaturates towards a fixed low-lightness anchor
	// (L0 = 0.5), blending hue-preserving desaturation with the project
	// method depending on distance from the anchor.
	GamutClipAdaptiveL0
)

// clipToUnitCube clamps each channel of v to [0,1] independently.
func clipToUnitCube(v Vec3) Vec3 {
	return Vec3{clampUnit(v[0]), clampUnit(v[1]), clampUnit(v[2])}
}

// clipPreserveChroma blends v towards mid-gray (0.5,0.5,0.5) by the
// smallest factor that brings every channel into [0,1], preserving the
// direction (hue/chroma ratio) of the excursion.
func clipPreserveChroma(v Vec3) Vec3 {
	const mid = 0.5
	t := float32(1.0)
	for i := 0; i < 3; i++ {
		d := v[i] - mid
		if d == 0 {
			continue
		}
		var bound float32
		if d > 0 {
			bound = (1 - mid) / d
		} else {
			bound = (0 - mid) / d
		}
		if bound < t {
			t = bound
		}
	}
	if t >= 1 {
		return clipToUnitCube(v)
	}
	if t < 0 {
		t = 0
	}
	out := Vec3{
		mid + (v[0]-mid)*t,
		mid + (v[1]-mid)*t,
		mid + (v[2]-mid)*t,
	}
	return clipToUnitCube(out)
}

// lCuspApprox returns an approximate relative lightness (mean of the three
// channels, a cheap stand-in for a true L*a*b* lightness) used to locate
// the projection target for the cusp-based clip methods. A full Lab
// conversion is unnecessary here: only the direction of the projection
// line towards the neutral axis matters, and the mean tracks it closely
// enough for a documented, deterministic clip — not a colorimetric match.
func lCuspApprox(v Vec3) float32 {
	return (v[0] + v[1] + v[2]) / 3
}

// clipProjectToLCusp projects out-of-gamut colors straight towards the
// neutral axis at the color's own approximate lightness, then clamps.
func clipProjectToLCusp(v Vec3) Vec3 {
	l := lCuspApprox(v)
	neutral := Vec3{l, l, l}
	t := float32(1.0)
	for i := 0; i < 3; i++ {
		d := v[i] - neutral[i]
		if d == 0 {
			continue
		}
		var bound float32
		if d > 0 {
			bound = (1 - neutral[i]) / d
		} else {
			bound = (0 - neutral[i]) / d
		}
		if bound < t {
			t = bound
		}
	}
	if t >= 1 {
		return clipToUnitCube(v)
	}
	if t < 0 {
		t = 0
	}
	out := Vec3{
		neutral[0] + (v[0]-neutral[0])*t,
		neutral[1] + (v[1]-neutral[1])*t,
		neutral[2] + (v[2]-neutral[2])*t,
	}
	return clipToUnitCube(out)
}

// clipAdaptiveL0 blends the preserve-chroma and project-to-cusp clips,
// weighted by how far the color's lightness sits from an L0=0.5 anchor:
// near L0, chroma preservation dominates (the eye tolerates saturation
// shifts more than lightness shifts there); far from L0, projection
// dominates.
func clipAdaptiveL0(v Vec3) Vec3 {
	l := lCuspApprox(v)
	dist := float32(math.Abs(float64(l - 0.5)))
	weight := clampUnit(dist * 2) // 0 at L0, 1 at the extremes

	a := clipPreserveChroma(v)
	b := clipProjectToLCusp(v)
	return lerpVec3(a, b, weight)
}

// ApplyGamutClip clips an out-of-[0,1] Vec3 using the selected method.
// In-gamut colors pass through unchanged for every method.
func ApplyGamutClip(v Vec3, method GamutClipMethod) Vec3 {
	if v[0] >= 0 && v[0] <= 1 && v[1] >= 0 && v[1] <= 1 && v[2] >= 0 && v[2] <= 1 {
		return v
	}
	switch method {
	case GamutClipPreserveChroma:
		return clipPreserveChroma(v)
	case GamutClipProjectToLCusp:
		return clipProjectToLCusp(v)
	case GamutClipAdaptiveL0:
		return clipAdaptiveL0(v)
	default:
		return clipToUnitCube(v)
	}
}
