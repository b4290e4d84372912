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

// Built-in primaries matrices (RGB->XYZ, D65 white, row-major), the
// minimal stand-in for the excluded "creation of built-in profiles"
// collaborator — just enough to drive the construction paths and the
// round-trip/identity properties this package's tests exercise.
var (
	srgbMatrix = Matrix3{
		{0.4124564, 0.3575761, 0.1804375},
		{0.2126729, 0.7151522, 0.0721750},
		{0.0193339, 0.1191920, 0.9503041},
	}
	displayP3Matrix = Matrix3{
		{0.4865709, 0.2656677, 0.1982173},
		{0.2289746, 0.6917385, 0.0792869},
		{0.0000000, 0.0451134, 1.0439444},
	}
	bt2020Matrix = Matrix3{
		{0.6369580, 0.1446169, 0.1688810},
		{0.2627002, 0.6779981, 0.0593017},
		{0.0000000, 0.0280727, 1.0609851},
	}
)

func xyzFromMatrixColumn(m Matrix3, col int) Xyz {
	return Xyz{X: m[0][col], Y: m[1][col], Z: m[2][col]}
}

func srgbToneCurve() *ToneCurve {
	c, _ := CurveFromCICP(TransferSRGB)
	return c
}

func pureGammaToneCurve(gamma float64) *ToneCurve {
	c, _ := NewParametricCurve(gamma, 1, 0, 0, 0, 0, 0)
	return c
}

// newMatrixShaperProfile builds a matrix-shaper Profile from an RGB->XYZ
// primaries matrix and a shared per-channel TRC.
func newMatrixShaperProfile(m Matrix3, trc *ToneCurve) *Profile {
	return &Profile{
		Version:             Version{Major: 4, Minor: 3},
		Class:               ClassDisplay,
		ColorSpace:          SpaceRgb,
		PCS:                 SpaceXYZ,
		RedColorant:         xyzFromMatrixColumn(m, 0),
		GreenColorant:       xyzFromMatrixColumn(m, 1),
		BlueColorant:        xyzFromMatrixColumn(m, 2),
		RedTRC:              trc,
		GreenTRC:            trc,
		BlueTRC:             trc,
		ChromaticAdaptation: IdentityMatrix3,
		WhitePoint:          D65,
	}
}

// NewSRGBProfile builds a minimal matrix-shaper sRGB Profile (IEC
// 61966-2-1 primaries and TRC), for exercising the matrix-shaper pipeline
// plan without a real parsed ICC file.
func NewSRGBProfile() *Profile {
	return newMatrixShaperProfile(srgbMatrix, srgbToneCurve())
}

// NewDisplayP3Profile builds a minimal matrix-shaper Display P3 Profile
// (P3-D65 primaries, sRGB-shaped TRC).
func NewDisplayP3Profile() *Profile {
	return newMatrixShaperProfile(displayP3Matrix, srgbToneCurve())
}

// NewBT2020Profile builds a minimal matrix-shaper BT.2020 Profile
// (Rec. 2020 primaries, BT.2020 transfer function).
func NewBT2020Profile() *Profile {
	curve, _ := CurveFromCICP(TransferBT2020_10)
	return newMatrixShaperProfile(bt2020Matrix, curve)
}

// NewGrayProfile builds a minimal gray-device Profile with a pure gamma
// TRC (default gamma 2.2).
func NewGrayProfile(gamma float64) *Profile {
	if gamma <= 0 {
		gamma = 2.2
	}
	return &Profile{
		Version:             Version{Major: 4, Minor: 3},
		Class:               ClassDisplay,
		ColorSpace:          SpaceGray,
		PCS:                 SpaceXYZ,
		GrayTRC:             pureGammaToneCurve(gamma),
		ChromaticAdaptation: IdentityMatrix3,
		WhitePoint:          D65,
	}
}
