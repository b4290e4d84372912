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

// BarycentricWeightF holds the floor/ceil lattice indices and fractional
// distance for one quantized input bin, float flavor.
type BarycentricWeightF struct {
	X  int32   // floor lattice index
	Xn int32   // ceil lattice index, min(x+1, grid-1)
	W  float32 // fractional distance in [0,1]
}

// BarycentricWeightQ15 is the Q1.15 fixed-point flavor of BarycentricWeightF.
type BarycentricWeightQ15 struct {
	X  int32
	Xn int32
	W  int16
}

// BuildBarycentricWeightsF precomputes, for each of `bins` quantized input
// values, the floor/ceil lattice coordinate in a grid of size `grid` and
// the fractional distance between them. This removes division from the
// interpolation hot path.
func BuildBarycentricWeightsF(bins, grid int) []BarycentricWeightF {
	out := make([]BarycentricWeightF, bins)
	maxIn := float64(bins - 1)
	maxGrid := int32(grid - 1)
	for i := 0; i < bins; i++ {
		v := float64(i) / maxIn * float64(maxGrid)
		x := int32(v)
		if x > maxGrid {
			x = maxGrid
		}
		xn := x + 1
		if xn > maxGrid {
			xn = maxGrid
		}
		frac := v - float64(x)
		out[i] = BarycentricWeightF{X: x, Xn: xn, W: float32(frac)}
	}
	return out
}

// BuildBarycentricWeightsQ15 is the Q1.15 analogue of
// BuildBarycentricWeightsF, using roundingDivCeil for the ceil lattice
// coordinate to stay in exact integer arithmetic.
func BuildBarycentricWeightsQ15(bins, grid int) []BarycentricWeightQ15 {
	out := make([]BarycentricWeightQ15, bins)
	maxGrid := int32(grid - 1)
	for i := 0; i < bins; i++ {
		// Scale i (in [0, bins-1]) into Q grid-lattice space without
		// floating point: numerator = i*maxGrid, denominator = bins-1.
		num := int32(i) * maxGrid
		den := int32(bins - 1)
		x := num / den
		if x > maxGrid {
			x = maxGrid
		}
		xn := roundingDivCeil(num, den)
		if xn > maxGrid {
			xn = maxGrid
		}
		rem := num - x*den
		var w int16
		if den != 0 {
			w = floatToQ15(float32(rem) / float32(den))
		}
		out[i] = BarycentricWeightQ15{X: x, Xn: xn, W: w}
	}
	return out
}

// quantizeBin maps a float sample in [0,1] to one of `bins` quantized
// indices, clamping out-of-range input per spec's "tolerated but clamped"
// boundary rule.
func quantizeBin(x float32, bins int) int {
	idx := int(roundHalfAwayFromZero(clampUnit(x) * float32(bins-1)))
	if idx < 0 {
		idx = 0
	}
	if idx > bins-1 {
		idx = bins - 1
	}
	return idx
}
