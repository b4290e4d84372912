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

// Lattice3D is a 3-input, 3-output color lookup table, stored as a flat
// grid^3 array of Vec3 samples in row-major order with the first axis
// slowest (x, then y, then z).
type Lattice3D struct {
	Grid    int
	Samples []Vec3
}

// NewLattice3D allocates a Lattice3D of the given uniform grid size.
func NewLattice3D(grid int) *Lattice3D {
	return &Lattice3D{Grid: grid, Samples: make([]Vec3, grid*grid*grid)}
}

// At returns the grid sample at lattice coordinate (x,y,z).
func (l *Lattice3D) At(x, y, z int32) Vec3 {
	g := int32(l.Grid)
	idx := (x*g+y)*g + z
	return l.Samples[idx]
}

// Set stores the grid sample at lattice coordinate (x,y,z).
func (l *Lattice3D) Set(x, y, z int32, v Vec3) {
	g := int32(l.Grid)
	idx := (x*g+y)*g + z
	l.Samples[idx] = v
}

// Lattice4D is a 4-input, 3-output color lookup table. The regular case
// uses a uniform grid size on all four axes; "mAB"/"mBA" profiles may
// specify a per-axis size via GridPerAxis instead, in which case Grid is
// left at zero.
type Lattice4D struct {
	Grid        int
	GridPerAxis [4]int
	Samples     []Vec3
}

// NewLattice4D allocates a Lattice4D of the given uniform grid size.
func NewLattice4D(grid int) *Lattice4D {
	return &Lattice4D{
		Grid:        grid,
		GridPerAxis: [4]int{grid, grid, grid, grid},
		Samples:     make([]Vec3, grid*grid*grid*grid),
	}
}

// NewLattice4DPerAxis allocates a Lattice4D with independent per-axis grid
// sizes, the shape "mAB"/"mBA" MCurves pipelines may declare.
func NewLattice4DPerAxis(axes [4]int) *Lattice4D {
	n := axes[0] * axes[1] * axes[2] * axes[3]
	return &Lattice4D{GridPerAxis: axes, Samples: make([]Vec3, n)}
}

// At returns the grid sample at lattice coordinate (x,y,z,w).
func (l *Lattice4D) At(x, y, z, w int32) Vec3 {
	a := l.GridPerAxis
	idx := ((x*int32(a[1])+y)*int32(a[2])+z)*int32(a[3]) + w
	return l.Samples[idx]
}

// Set stores the grid sample at lattice coordinate (x,y,z,w).
func (l *Lattice4D) Set(x, y, z, w int32, v Vec3) {
	a := l.GridPerAxis
	idx := ((x*int32(a[1])+y)*int32(a[2])+z)*int32(a[3]) + w
	l.Samples[idx] = v
}

// weights3 bundles the three per-axis barycentric weights an inter3 call
// needs.
type weights3 struct {
	wx, wy, wz BarycentricWeightF
}

// weights4 bundles the four per-axis barycentric weights an inter4 call
// needs.
type weights4 struct {
	wx, wy, wz, ww BarycentricWeightF
}

// fetch3 is satisfied by anything that can be indexed as a 3-D lattice of
// Vec3 samples by integer lattice coordinate — a Lattice3D directly, or a
// fixed-w slice view of a Lattice4D (see lattice4DSlice).
type fetch3 interface {
	At(x, y, z int32) Vec3
}

// Interpolator3 is the common interface every 3-D CLUT geometry
// implements.
type Interpolator3 interface {
	Inter3(l fetch3, w weights3) Vec3
}

// Interpolator4 is the common interface every 4-D CLUT geometry
// implements.
type Interpolator4 interface {
	Inter4(l *Lattice4D, w weights4) Vec3
}

// lattice4DSlice is a fetch3 view into a Lattice4D at a fixed w lattice
// coordinate, used to reduce every 4-D geometry to two 3-D evaluations (at
// the floor and ceil w index) blended by the w fraction — the same
// reduction the spec spells out explicitly for quadlinear, generalized
// here to tetrahedral/pyramid/prism as well.
type lattice4DSlice struct {
	l *Lattice4D
	w int32
}

func (s lattice4DSlice) At(x, y, z int32) Vec3 {
	return s.l.At(x, y, z, s.w)
}

// interpolatorForMethod returns the (Interpolator3, Interpolator4) pair for
// a requested InterpolationMethod. Linear maps to the full corner-blend
// (trilinear/quadlinear) geometry.
func interpolatorForMethod(m InterpolationMethod) (Interpolator3, Interpolator4) {
	switch m {
	case Tetrahedral:
		return tetrahedralInterp{}, tetrahedralInterp{}
	case Pyramid:
		return pyramidInterp{}, pyramidInterp{}
	case Prism:
		return prismInterp{}, prismInterp{}
	default:
		return linearInterp{}, linearInterp{}
	}
}
