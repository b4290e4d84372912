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

// Vec3Q15 is a 3-component Q1.15 fixed-point vector, the lattice sample
// type the Q1.15 kernel interpolates over.
type Vec3Q15 [3]int16

// Lattice3DQ15 is the Q1.15 counterpart of Lattice3D: lattice samples
// scaled to int16 by round(x*32767) ahead of time, so the interpolation
// hot path never touches floating point.
type Lattice3DQ15 struct {
	Grid    int
	Samples []Vec3Q15
}

// NewLattice3DQ15FromFloat quantizes a float Lattice3D down to Q1.15.
func NewLattice3DQ15FromFloat(l *Lattice3D) *Lattice3DQ15 {
	out := &Lattice3DQ15{Grid: l.Grid, Samples: make([]Vec3Q15, len(l.Samples))}
	for i, v := range l.Samples {
		out.Samples[i] = Vec3Q15{floatToQ15(v[0]), floatToQ15(v[1]), floatToQ15(v[2])}
	}
	return out
}

// At returns the grid sample at lattice coordinate (x,y,z).
func (l *Lattice3DQ15) At(x, y, z int32) Vec3Q15 {
	g := int32(l.Grid)
	return l.Samples[(x*g+y)*g+z]
}

func lerpVec3Q15(a, b Vec3Q15, t int16) Vec3Q15 {
	return Vec3Q15{q15Lerp(a[0], b[0], t), q15Lerp(a[1], b[1], t), q15Lerp(a[2], b[2], t)}
}

// subVec3Q15 returns a-b widened to int32, since the difference of two
// Q1.15 samples can exceed the int16 range.
func subVec3Q15(a, b Vec3Q15) [3]int32 {
	return [3]int32{int32(a[0]) - int32(b[0]), int32(a[1]) - int32(b[1]), int32(a[2]) - int32(b[2])}
}

func addVec3Q15(a Vec3Q15, b [3]int32) Vec3Q15 {
	sum := [3]int32{int32(a[0]) + b[0], int32(a[1]) + b[1], int32(a[2]) + b[2]}
	return Vec3Q15{saturateQ15(sum[0]), saturateQ15(sum[1]), saturateQ15(sum[2])}
}

func scaleVec3Q15(a [3]int32, t int16) [3]int32 {
	return [3]int32{(a[0]*int32(t) + 0x4000) >> 15, (a[1]*int32(t) + 0x4000) >> 15, (a[2]*int32(t) + 0x4000) >> 15}
}

func saturateQ15(v int32) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}

// weights3Q15 bundles the three per-axis Q1.15 barycentric weights a Q1.15
// trilinear/tetrahedral call needs.
type weights3Q15 struct {
	wx, wy, wz BarycentricWeightQ15
}

// InterpolatorQ15 is implemented by every Q1.15 CLUT geometry.
type InterpolatorQ15 interface {
	Inter3Q15(l *Lattice3DQ15, w weights3Q15) Vec3Q15
}

type linearInterpQ15 struct{}

// Inter3Q15 performs trilinear interpolation entirely in Q1.15 arithmetic:
// two sub-LUTs adjacent along the last axis are combined with a single
// final lerp, matching the "two sub-LUTs... interpolated with a single
// lerp at the end" fixed-point discipline.
func (linearInterpQ15) Inter3Q15(l *Lattice3DQ15, w weights3Q15) Vec3Q15 {
	c000 := l.At(w.wx.X, w.wy.X, w.wz.X)
	c100 := l.At(w.wx.Xn, w.wy.X, w.wz.X)
	c010 := l.At(w.wx.X, w.wy.Xn, w.wz.X)
	c110 := l.At(w.wx.Xn, w.wy.Xn, w.wz.X)
	c001 := l.At(w.wx.X, w.wy.X, w.wz.Xn)
	c101 := l.At(w.wx.Xn, w.wy.X, w.wz.Xn)
	c011 := l.At(w.wx.X, w.wy.Xn, w.wz.Xn)
	c111 := l.At(w.wx.Xn, w.wy.Xn, w.wz.Xn)

	rx, ry, rz := w.wx.W, w.wy.W, w.wz.W

	c00 := lerpVec3Q15(c000, c100, rx)
	c10 := lerpVec3Q15(c010, c110, rx)
	c01 := lerpVec3Q15(c001, c101, rx)
	c11 := lerpVec3Q15(c011, c111, rx)

	c0 := lerpVec3Q15(c00, c10, ry)
	c1 := lerpVec3Q15(c01, c11, ry)

	return lerpVec3Q15(c0, c1, rz)
}

type tetrahedralInterpQ15 struct{}

func (tetrahedralInterpQ15) Inter3Q15(l *Lattice3DQ15, w weights3Q15) Vec3Q15 {
	c000 := l.At(w.wx.X, w.wy.X, w.wz.X)
	rx, ry, rz := w.wx.W, w.wy.W, w.wz.W

	var c1, c2, c3 [3]int32
	switch {
	case rx >= ry && ry >= rz:
		c1 = subVec3Q15(l.At(w.wx.Xn, w.wy.X, w.wz.X), c000)
		c2 = subVec3Q15(l.At(w.wx.Xn, w.wy.Xn, w.wz.X), l.At(w.wx.Xn, w.wy.X, w.wz.X))
		c3 = subVec3Q15(l.At(w.wx.Xn, w.wy.Xn, w.wz.Xn), l.At(w.wx.Xn, w.wy.Xn, w.wz.X))
	case rx >= rz && rz >= ry:
		c1 = subVec3Q15(l.At(w.wx.Xn, w.wy.X, w.wz.X), c000)
		c2 = subVec3Q15(l.At(w.wx.Xn, w.wy.Xn, w.wz.Xn), l.At(w.wx.Xn, w.wy.X, w.wz.Xn))
		c3 = subVec3Q15(l.At(w.wx.Xn, w.wy.X, w.wz.Xn), l.At(w.wx.Xn, w.wy.X, w.wz.X))
	case rz >= rx && rx >= ry:
		c1 = subVec3Q15(l.At(w.wx.Xn, w.wy.X, w.wz.Xn), l.At(w.wx.X, w.wy.X, w.wz.Xn))
		c2 = subVec3Q15(l.At(w.wx.Xn, w.wy.Xn, w.wz.Xn), l.At(w.wx.Xn, w.wy.X, w.wz.Xn))
		c3 = subVec3Q15(l.At(w.wx.X, w.wy.X, w.wz.Xn), c000)
	case ry >= rx && rx >= rz:
		c1 = subVec3Q15(l.At(w.wx.Xn, w.wy.Xn, w.wz.X), l.At(w.wx.X, w.wy.Xn, w.wz.X))
		c2 = subVec3Q15(l.At(w.wx.X, w.wy.Xn, w.wz.X), c000)
		c3 = subVec3Q15(l.At(w.wx.Xn, w.wy.Xn, w.wz.Xn), l.At(w.wx.Xn, w.wy.Xn, w.wz.X))
	case ry >= rz && rz >= rx:
		c1 = subVec3Q15(l.At(w.wx.Xn, w.wy.Xn, w.wz.Xn), l.At(w.wx.X, w.wy.Xn, w.wz.Xn))
		c2 = subVec3Q15(l.At(w.wx.X, w.wy.Xn, w.wz.X), c000)
		c3 = subVec3Q15(l.At(w.wx.X, w.wy.Xn, w.wz.Xn), l.At(w.wx.X, w.wy.Xn, w.wz.X))
	default:
		c1 = subVec3Q15(l.At(w.wx.Xn, w.wy.Xn, w.wz.Xn), l.At(w.wx.X, w.wy.Xn, w.wz.Xn))
		c2 = subVec3Q15(l.At(w.wx.X, w.wy.Xn, w.wz.Xn), l.At(w.wx.X, w.wy.X, w.wz.Xn))
		c3 = subVec3Q15(l.At(w.wx.X, w.wy.X, w.wz.Xn), c000)
	}

	out := c000
	out = addVec3Q15(out, scaleVec3Q15(c1, rx))
	out = addVec3Q15(out, scaleVec3Q15(c2, ry))
	out = addVec3Q15(out, scaleVec3Q15(c3, rz))
	return out
}

// interpolatorQ15ForMethod returns the Q1.15 geometry for a requested
// InterpolationMethod. Pyramid and Prism have no distinct Q1.15
// specialization in this package (see DESIGN.md); they fall back to the
// tetrahedral Q1.15 kernel, which like them is vertex-exact.
func interpolatorQ15ForMethod(m InterpolationMethod) InterpolatorQ15 {
	switch m {
	case Linear:
		return linearInterpQ15{}
	default:
		return tetrahedralInterpQ15{}
	}
}

// quantizeOutputQ15 converts a Q1.15 sample back to an integer output at
// the given bit depth: right-shift by 15-BIT_DEPTH with round-half-up and
// clamp, matching the fixed-point output discipline.
func quantizeOutputQ15(v int16, bitDepth int) uint32 {
	shift := uint(15 - bitDepth)
	if shift == 0 {
		if v < 0 {
			return 0
		}
		return uint32(v)
	}
	bias := int32(1) << (shift - 1)
	out := (int32(v) + bias) >> shift
	maxVal := int32(1)<<bitDepth - 1
	if out < 0 {
		out = 0
	}
	if out > maxVal {
		out = maxVal
	}
	return uint32(out)
}
