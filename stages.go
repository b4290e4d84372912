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

// Stage is one step of a compiled transform pipeline: it consumes and
// produces a scratch buffer of f32 triplets, processed one group at a time
// in place.
type Stage interface {
	// Apply processes buf in place; len(buf) must be a multiple of the
	// stage's group size.
	Apply(buf []float32) error
}

// mapVec3 processes buf in chunks of 3, calling fn on each Vec3.
func mapVec3(buf []float32, fn func(Vec3) Vec3) {
	for i := 0; i+3 <= len(buf); i += 3 {
		v := Vec3{buf[i], buf[i+1], buf[i+2]}
		out := fn(v)
		buf[i], buf[i+1], buf[i+2] = out[0], out[1], out[2]
	}
}

// labToXyzStage converts CIE L*a*b* triplets (D50 white) to CIE XYZ.
type labToXyzStage struct{ white Xyz }

func newLabToXyzStage() Stage { return labToXyzStage{white: D50} }

func (s labToXyzStage) Apply(buf []float32) error {
	mapVec3(buf, func(v Vec3) Vec3 {
		xyz := labToXyz(float64(v[0]), float64(v[1]), float64(v[2]), s.white)
		return Vec3{float32(xyz.X), float32(xyz.Y), float32(xyz.Z)}
	})
	return nil
}

// xyzToLabStage converts CIE XYZ triplets to CIE L*a*b* (D50 white).
type xyzToLabStage struct{ white Xyz }

func newXyzToLabStage() Stage { return xyzToLabStage{white: D50} }

func (s xyzToLabStage) Apply(buf []float32) error {
	mapVec3(buf, func(v Vec3) Vec3 {
		l, a, b := xyzToLab(float64(v[0]), float64(v[1]), float64(v[2]), s.white)
		return Vec3{float32(l), float32(a), float32(b)}
	})
	return nil
}

const labEpsilon = 216.0 / 24389.0
const labKappa = 24389.0 / 27.0

func labF(t float64) float64 {
	if t > labEpsilon {
		return math.Cbrt(t)
	}
	return (labKappa*t + 16) / 116
}

func labFInv(t float64) float64 {
	t3 := t * t * t
	if t3 > labEpsilon {
		return t3
	}
	return (116*t - 16) / labKappa
}

func labToXyz(l, a, b float64, white Xyz) Xyz {
	fy := (l + 16) / 116
	fx := fy + a/500
	fz := fy - b/200
	return Xyz{
		X: float32(labFInv(fx) * float64(white.X)),
		Y: float32(labFInv(fy) * float64(white.Y)),
		Z: float32(labFInv(fz) * float64(white.Z)),
	}
}

func xyzToLab(x, y, z float64, white Xyz) (l, a, b float64) {
	fx := labF(x / float64(white.X))
	fy := labF(y / float64(white.Y))
	fz := labF(z / float64(white.Z))
	l = 116*fy - 16
	a = 500 * (fx - fy)
	b = 200 * (fy - fz)
	return
}

// matrixClipScaleStage multiplies each triplet by a Matrix3, clamps to
// [0,1], multiplies by scale, and adds 0.5 — the bias integer-rounding
// downstream expects.
type matrixClipScaleStage struct {
	m     Matrix3
	scale float32
}

func (s matrixClipScaleStage) Apply(buf []float32) error {
	mapVec3(buf, func(v Vec3) Vec3 {
		out := s.m.MulVec(v)
		out = clipToUnitCube(out)
		return Vec3{out[0]*s.scale + 0.5, out[1]*s.scale + 0.5, out[2]*s.scale + 0.5}
	})
	return nil
}

// matrixStage computes y = M*x with no clip and no bias.
type matrixStage struct{ m Matrix3 }

func (s matrixStage) Apply(buf []float32) error {
	mapVec3(buf, func(v Vec3) Vec3 { return s.m.MulVec(v) })
	return nil
}

// labV2V4FixupStage applies the PCS Lab v2<->v4 scaling fixup: a diagonal
// multiply by 65280/65535 or 65535/65280. The stage always applies its
// configured factor. The planner does not insert this stage: its
// LUT-backed path applies the same v2ToV4Factor/v4ToV2Factor scaling
// directly when the crossed profile's PCS is Lab and its major version is
// 2 or lower.
type labV2V4FixupStage struct{ factor float32 }

// v4ToV2Factor and v2ToV4Factor are the PCS Lab<->v2 boundary constants.
const v4ToV2Factor = float32(65280.0 / 65535.0)
const v2ToV4Factor = float32(65535.0 / 65280.0)

func (s labV2V4FixupStage) Apply(buf []float32) error {
	mapVec3(buf, func(v Vec3) Vec3 {
		return Vec3{v[0] * s.factor, v[1] * s.factor, v[2] * s.factor}
	})
	return nil
}

// rgbLinearizationStage looks up each channel in a per-channel
// linearization table built from a profile's TRC, rounding/scaling into
// the table index and producing f32 output in [0,1].
type rgbLinearizationStage struct {
	tables   [3][]float32
	bitDepth int
}

func (s rgbLinearizationStage) Apply(buf []float32) error {
	maxVal := float32((1 << s.bitDepth) - 1)
	mapVec3(buf, func(v Vec3) Vec3 {
		var out Vec3
		for c := 0; c < 3; c++ {
			idx := int(roundHalfAwayFromZero(clampUnit(v[c]) * maxVal))
			if idx >= len(s.tables[c]) {
				idx = len(s.tables[c]) - 1
			}
			if idx < 0 {
				idx = 0
			}
			out[c] = s.tables[c][idx]
		}
		return out
	})
	return nil
}

// grayLinearizationStage is the 1-channel analogue of
// rgbLinearizationStage, used by the Gray<->RGB pipeline plans.
type grayLinearizationStage struct {
	table    []float32
	bitDepth int
}

func (s grayLinearizationStage) apply1(x float32) float32 {
	maxVal := float32((1 << s.bitDepth) - 1)
	idx := int(roundHalfAwayFromZero(clampUnit(x) * maxVal))
	if idx >= len(s.table) {
		idx = len(s.table) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return s.table[idx]
}

// xyzToRgbStage applies one or more 3x3 matrices (folded into a single
// Matrix3 by the planner), then a per-channel gamma LUT lookup, with an
// optional gamut clip of out-of-[0,1] values before the LUT lookup.
type xyzToRgbStage struct {
	m          Matrix3
	gammaLuts  [3][]uint32 // indexed by round(x * (len-1))
	clipMethod GamutClipMethod
}

func (s xyzToRgbStage) Apply(buf []float32) error {
	mapVec3(buf, func(v Vec3) Vec3 {
		lin := s.m.MulVec(v)
		lin = ApplyGamutClip(lin, s.clipMethod)
		lin = clipToUnitCube(lin)
		var out Vec3
		for c := 0; c < 3; c++ {
			n := len(s.gammaLuts[c])
			idx := int(roundHalfAwayFromZero(lin[c] * float32(n-1)))
			if idx < 0 {
				idx = 0
			}
			if idx >= n {
				idx = n - 1
			}
			out[c] = float32(s.gammaLuts[c][idx])
		}
		return out
	})
	return nil
}

// grayGammaStage is the 1-channel analogue of xyzToRgbStage's gamma half:
// one baked inverse-curve table looked up by a single linear gray value.
// Used by the gray-bridge and RGB-to-gray plan kinds, which have no
// colorant matrix on the gray side.
type grayGammaStage struct {
	table []uint32 // indexed by round(x * (len-1))
}

func (s grayGammaStage) apply1(x float32) uint32 {
	n := len(s.table)
	idx := int(roundHalfAwayFromZero(clampUnit(x) * float32(n-1)))
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	return s.table[idx]
}

// broadcastGammaStage looks a single linear gray value up in three
// independent baked gamma tables, broadcasting it across all three
// destination channels — the gray-to-RGB half of a gray bridge plan.
type broadcastGammaStage struct {
	tables [3][]uint32
}

func (s broadcastGammaStage) apply1(x float32) [3]uint32 {
	var out [3]uint32
	x = clampUnit(x)
	for c := 0; c < 3; c++ {
		n := len(s.tables[c])
		idx := int(roundHalfAwayFromZero(x * float32(n-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= n {
			idx = n - 1
		}
		out[c] = s.tables[c][idx]
	}
	return out
}
