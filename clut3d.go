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

// lerpVec3 interpolates componentwise between a and b at fraction t.
func lerpVec3(a, b Vec3, t float32) Vec3 {
	return Vec3{lerp(a[0], b[0], t), lerp(a[1], b[1], t), lerp(a[2], b[2], t)}
}

func addVec3(a, b Vec3) Vec3 {
	return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func scaleVec3(a Vec3, s float32) Vec3 {
	return Vec3{a[0] * s, a[1] * s, a[2] * s}
}

// linearInterp implements the full 8-point (3-D) / 16-point (4-D) corner
// blend: trilinear and quadlinear respectively.
type linearInterp struct{}

// Inter3 performs trilinear interpolation over the eight corners of the
// cell containing (wx, wy, wz).
func (linearInterp) Inter3(l fetch3, w weights3) Vec3 {
	c000 := l.At(w.wx.X, w.wy.X, w.wz.X)
	c100 := l.At(w.wx.Xn, w.wy.X, w.wz.X)
	c010 := l.At(w.wx.X, w.wy.Xn, w.wz.X)
	c110 := l.At(w.wx.Xn, w.wy.Xn, w.wz.X)
	c001 := l.At(w.wx.X, w.wy.X, w.wz.Xn)
	c101 := l.At(w.wx.Xn, w.wy.X, w.wz.Xn)
	c011 := l.At(w.wx.X, w.wy.Xn, w.wz.Xn)
	c111 := l.At(w.wx.Xn, w.wy.Xn, w.wz.Xn)

	rx, ry, rz := w.wx.W, w.wy.W, w.wz.W

	c00 := lerpVec3(c000, c100, rx)
	c10 := lerpVec3(c010, c110, rx)
	c01 := lerpVec3(c001, c101, rx)
	c11 := lerpVec3(c011, c111, rx)

	c0 := lerpVec3(c00, c10, ry)
	c1 := lerpVec3(c01, c11, ry)

	return lerpVec3(c0, c1, rz)
}

// tetrahedralInterp partitions the unit cube into six tetrahedra chosen by
// the ordering of (rx, ry, rz), giving vertex-exact results with three
// lerps' worth of arithmetic instead of trilinear's seven.
type tetrahedralInterp struct{}

func (tetrahedralInterp) Inter3(l fetch3, w weights3) Vec3 {
	c000 := l.At(w.wx.X, w.wy.X, w.wz.X)
	rx, ry, rz := w.wx.W, w.wy.W, w.wz.W

	var c1, c2, c3 Vec3
	switch {
	case rx >= ry && ry >= rz:
		c1 = sub3(l.At(w.wx.Xn, w.wy.X, w.wz.X), c000)
		c2 = sub3(l.At(w.wx.Xn, w.wy.Xn, w.wz.X), l.At(w.wx.Xn, w.wy.X, w.wz.X))
		c3 = sub3(l.At(w.wx.Xn, w.wy.Xn, w.wz.Xn), l.At(w.wx.Xn, w.wy.Xn, w.wz.X))
	case rx >= rz && rz >= ry:
		c1 = sub3(l.At(w.wx.Xn, w.wy.X, w.wz.X), c000)
		c2 = sub3(l.At(w.wx.Xn, w.wy.Xn, w.wz.Xn), l.At(w.wx.Xn, w.wy.X, w.wz.Xn))
		c3 = sub3(l.At(w.wx.Xn, w.wy.X, w.wz.Xn), l.At(w.wx.Xn, w.wy.X, w.wz.X))
	case rz >= rx && rx >= ry:
		c1 = sub3(l.At(w.wx.Xn, w.wy.X, w.wz.Xn), l.At(w.wx.X, w.wy.X, w.wz.Xn))
		c2 = sub3(l.At(w.wx.Xn, w.wy.Xn, w.wz.Xn), l.At(w.wx.Xn, w.wy.X, w.wz.Xn))
		c3 = sub3(l.At(w.wx.X, w.wy.X, w.wz.Xn), c000)
	case ry >= rx && rx >= rz:
		c1 = sub3(l.At(w.wx.Xn, w.wy.Xn, w.wz.X), l.At(w.wx.X, w.wy.Xn, w.wz.X))
		c2 = sub3(l.At(w.wx.X, w.wy.Xn, w.wz.X), c000)
		c3 = sub3(l.At(w.wx.Xn, w.wy.Xn, w.wz.Xn), l.At(w.wx.Xn, w.wy.Xn, w.wz.X))
	case ry >= rz && rz >= rx:
		c1 = sub3(l.At(w.wx.Xn, w.wy.Xn, w.wz.Xn), l.At(w.wx.X, w.wy.Xn, w.wz.Xn))
		c2 = sub3(l.At(w.wx.X, w.wy.Xn, w.wz.X), c000)
		c3 = sub3(l.At(w.wx.X, w.wy.Xn, w.wz.Xn), l.At(w.wx.X, w.wy.Xn, w.wz.X))
	default: // rz >= ry && ry >= rx
		c1 = sub3(l.At(w.wx.Xn, w.wy.Xn, w.wz.Xn), l.At(w.wx.X, w.wy.Xn, w.wz.Xn))
		c2 = sub3(l.At(w.wx.X, w.wy.Xn, w.wz.Xn), l.At(w.wx.X, w.wy.X, w.wz.Xn))
		c3 = sub3(l.At(w.wx.X, w.wy.X, w.wz.Xn), c000)
	}

	out := c000
	out = addVec3(out, scaleVec3(c1, rx))
	out = addVec3(out, scaleVec3(c2, ry))
	out = addVec3(out, scaleVec3(c3, rz))
	return out
}

func sub3(a, b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// pyramidInterp splits the cube into three square pyramids, one per axis,
// selected by which of rx, ry, rz is largest. Each pyramid has c000 as its
// apex and the far face of the dominant axis as its base: a 5-vertex
// formula with one linear term per axis plus a bilinear cross term on the
// two smaller axes.
type pyramidInterp struct{}

// bilerp3 bilinearly blends the four corners of a unit square face.
func bilerp3(a, b, c, d Vec3, u, v float32) Vec3 {
	top := lerpVec3(a, b, u)
	bottom := lerpVec3(c, d, u)
	return lerpVec3(top, bottom, v)
}

func (pyramidInterp) Inter3(l fetch3, w weights3) Vec3 {
	c000 := l.At(w.wx.X, w.wy.X, w.wz.X)
	c100 := l.At(w.wx.Xn, w.wy.X, w.wz.X)
	c010 := l.At(w.wx.X, w.wy.Xn, w.wz.X)
	c110 := l.At(w.wx.Xn, w.wy.Xn, w.wz.X)
	c001 := l.At(w.wx.X, w.wy.X, w.wz.Xn)
	c101 := l.At(w.wx.Xn, w.wy.X, w.wz.Xn)
	c011 := l.At(w.wx.X, w.wy.Xn, w.wz.Xn)
	c111 := l.At(w.wx.Xn, w.wy.Xn, w.wz.Xn)

	rx, ry, rz := w.wx.W, w.wy.W, w.wz.W

	switch {
	case rx >= ry && rx >= rz:
		out := addVec3(c000, scaleVec3(sub3(c100, c000), rx))
		out = addVec3(out, scaleVec3(sub3(c110, c100), ry))
		out = addVec3(out, scaleVec3(sub3(c101, c100), rz))
		return addVec3(out, scaleVec3(sub3(sub3(c111, c110), sub3(c101, c100)), ry*rz))
	case ry >= rx && ry >= rz:
		out := addVec3(c000, scaleVec3(sub3(c010, c000), ry))
		out = addVec3(out, scaleVec3(sub3(c110, c010), rx))
		out = addVec3(out, scaleVec3(sub3(c011, c010), rz))
		return addVec3(out, scaleVec3(sub3(sub3(c111, c011), sub3(c110, c010)), rx*rz))
	default:
		out := addVec3(c000, scaleVec3(sub3(c001, c000), rz))
		out = addVec3(out, scaleVec3(sub3(c101, c001), rx))
		out = addVec3(out, scaleVec3(sub3(c011, c001), ry))
		return addVec3(out, scaleVec3(sub3(sub3(c111, c101), sub3(c011, c001)), rx*ry))
	}
}

// prismInterp splits the cube along the diagonal plane rx==rz into two
// triangular prisms extruded along the y axis, picked by comparing rz and
// rx; each half is a 6-vertex formula (a triangle in x-z, blended along y).
type prismInterp struct{}

func (prismInterp) Inter3(l fetch3, w weights3) Vec3 {
	c000 := l.At(w.wx.X, w.wy.X, w.wz.X)
	c100 := l.At(w.wx.Xn, w.wy.X, w.wz.X)
	c010 := l.At(w.wx.X, w.wy.Xn, w.wz.X)
	c110 := l.At(w.wx.Xn, w.wy.Xn, w.wz.X)
	c001 := l.At(w.wx.X, w.wy.X, w.wz.Xn)
	c101 := l.At(w.wx.Xn, w.wy.X, w.wz.Xn)
	c011 := l.At(w.wx.X, w.wy.Xn, w.wz.Xn)
	c111 := l.At(w.wx.Xn, w.wy.Xn, w.wz.Xn)

	rx, ry, rz := w.wx.W, w.wy.W, w.wz.W

	if rz >= rx {
		bottom := addVec3(addVec3(scaleVec3(c000, 1-rz), scaleVec3(c001, rz-rx)), scaleVec3(c101, rx))
		top := addVec3(addVec3(scaleVec3(c010, 1-rz), scaleVec3(c011, rz-rx)), scaleVec3(c111, rx))
		return lerpVec3(bottom, top, ry)
	}
	bottom := addVec3(addVec3(scaleVec3(c000, 1-rx), scaleVec3(c100, rx-rz)), scaleVec3(c101, rz))
	top := addVec3(addVec3(scaleVec3(c010, 1-rx), scaleVec3(c110, rx-rz)), scaleVec3(c111, rz))
	return lerpVec3(bottom, top, ry)
}
