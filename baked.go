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

// Plan bakes its tone curves into the Stage tables of stages.go at a fixed
// internal resolution, independent of whatever device bit depth an
// Executor eventually reads or writes: tables are indexed at bakeBitDepth
// bits. The gamma tables resolve x only in steps of 1/(gammaBakeSamples-1),
// about 2.4e-4: one 12-bit step, and coarser than a 16-bit step.
const (
	bakeBitDepth      = 16
	bakeTableSize     = 1 << bakeBitDepth
	bakeMaxVal        = float32(bakeTableSize - 1)
	gammaBakeSamples  = 4096 // forward-table resolution BuildGammaTable bisects
)

// bakeRgbLinearization builds a 3-channel rgbLinearizationStage from a
// profile's per-channel RGB TRCs.
func bakeRgbLinearization(trc [3]*ToneCurve) (rgbLinearizationStage, error) {
	var tables [3][]float32
	for c := 0; c < 3; c++ {
		table, err := trc[c].BuildLinearizeTable(bakeTableSize, bakeBitDepth)
		if err != nil {
			return rgbLinearizationStage{}, err
		}
		tables[c] = table
	}
	return rgbLinearizationStage{tables: tables, bitDepth: bakeBitDepth}, nil
}

// bakeGrayLinearization is the 1-channel analogue of bakeRgbLinearization.
func bakeGrayLinearization(trc *ToneCurve) (grayLinearizationStage, error) {
	table, err := trc.BuildLinearizeTable(bakeTableSize, bakeBitDepth)
	if err != nil {
		return grayLinearizationStage{}, err
	}
	return grayLinearizationStage{table: table, bitDepth: bakeBitDepth}, nil
}

// bakeGammaRgb builds the three-channel gamma LUT set xyzToRgbStage needs
// from a profile's destination RGB TRCs.
func bakeGammaRgb(trc [3]*ToneCurve) [3][]uint32 {
	var luts [3][]uint32
	for c := 0; c < 3; c++ {
		luts[c] = trc[c].BuildGammaTable(bakeTableSize, gammaBakeSamples, bakeBitDepth)
	}
	return luts
}

// bakeGammaGray is the 1-channel analogue of bakeGammaRgb.
func bakeGammaGray(trc *ToneCurve) grayGammaStage {
	return grayGammaStage{table: trc.BuildGammaTable(bakeTableSize, gammaBakeSamples, bakeBitDepth)}
}

// dstTRCAllIdentity reports whether every channel of a destination RGB TRC
// triplet is the identity curve, the condition under which the matrix ->
// gamma stage can skip the gamma LUT entirely.
func dstTRCAllIdentity(trc [3]*ToneCurve) bool {
	return trc[0].IsIdentity() && trc[1].IsIdentity() && trc[2].IsIdentity()
}

// bakeDstRgbStage builds the destination half of a matrix-shaper pipeline:
// either a plain matrix + clip + scale stage when the destination RGB TRC
// is the identity and the gamut clip method is the plain per-channel clamp
// (matrixClipScaleStage's own clipping already matches GamutClipNone
// exactly), or the general matrix + gamut-clip + gamma-LUT stage
// otherwise.
func bakeDstRgbStage(dstMatrix Matrix3, dstTRC [3]*ToneCurve, clip GamutClipMethod) (gamma xyzToRgbStage, linear matrixClipScaleStage, useLinear bool) {
	if clip == GamutClipNone && dstTRCAllIdentity(dstTRC) {
		return xyzToRgbStage{}, matrixClipScaleStage{m: dstMatrix, scale: bakeMaxVal}, true
	}
	return xyzToRgbStage{m: dstMatrix, gammaLuts: bakeGammaRgb(dstTRC), clipMethod: clip}, matrixClipScaleStage{}, false
}
