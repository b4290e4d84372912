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

// inter4ViaSlices reduces a 4-D interpolation to two 3-D evaluations of the
// same geometry, at the floor and ceil lattice index along w, blended by
// the w fraction. Quadlinear is defined this way explicitly; the other
// three geometries have no 4-D description in the source material, so the
// same w-slicing reduction is used for all of them — see the Open
// Questions section of DESIGN.md.
func inter4ViaSlices(geom Interpolator3, l *Lattice4D, w weights4) Vec3 {
	lo := lattice4DSlice{l: l, w: w.ww.X}
	hi := lattice4DSlice{l: l, w: w.ww.Xn}
	w3 := weights3{wx: w.wx, wy: w.wy, wz: w.wz}
	loVal := geom.Inter3(lo, w3)
	hiVal := geom.Inter3(hi, w3)
	return lerpVec3(loVal, hiVal, w.ww.W)
}

// Inter4 performs quadlinear interpolation: two trilinear results combined
// with a linear weight along w.
func (linearInterp) Inter4(l *Lattice4D, w weights4) Vec3 {
	return inter4ViaSlices(linearInterp{}, l, w)
}

// Inter4 extends tetrahedral interpolation to 4 dimensions by tetrahedral
// interpolation on the two w-adjacent 3-D slices, lerped along w.
func (tetrahedralInterp) Inter4(l *Lattice4D, w weights4) Vec3 {
	return inter4ViaSlices(tetrahedralInterp{}, l, w)
}

// Inter4 extends pyramid interpolation to 4 dimensions the same way.
func (pyramidInterp) Inter4(l *Lattice4D, w weights4) Vec3 {
	return inter4ViaSlices(pyramidInterp{}, l, w)
}

// Inter4 extends prism interpolation to 4 dimensions the same way.
func (prismInterp) Inter4(l *Lattice4D, w weights4) Vec3 {
	return inter4ViaSlices(prismInterp{}, l, w)
}
