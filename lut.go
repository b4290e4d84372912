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

// LutKind distinguishes the two classic ("mft1"/"mft2") raw sample widths.
type LutKind int

const (
	Lut8 LutKind = iota
	Lut16
)

// lutShape distinguishes the two ICC LUT tag shapes a Lut value can hold.
type lutShape int

const (
	shapeClassic lutShape = iota // lut8Type / lut16Type ("mft1"/"mft2")
	shapeMCurves                 // mAB / mBA multi-process-element
)

// LutDirection records whether a Lut was read from an A2Bn (device->PCS)
// or B2An (PCS->device) tag, which determines the MCurves evaluation
// order: "a_curves -> CLUT -> m_curves -> matrix+bias -> b_curves" forward
// (AtoB), reversed (BtoA).
type LutDirection int

const (
	AtoB LutDirection = iota
	BtoA
)

// Lut is the decoded content of one A2Bn/B2An tag: either a classic
// lut8Type/lut16Type table, or an mAB/mBA multi-process-element pipeline.
// A nil entry in a curve set means identity at that position; an MCurves
// Lut without b_curves fails evaluation with InvalidAtoBLut.
type Lut struct {
	Shape     lutShape
	Direction LutDirection
	NumIn     int
	NumOut    int

	// Classic (shapeClassic) fields.
	Grid         int
	InputTables  []*ToneCurve
	Clut3        *Lattice3D
	Clut4        *Lattice4D
	OutputTables []*ToneCurve
	Matrix       Matrix3
	Kind         LutKind

	// MCurves (shapeMCurves) fields.
	GridPerAxis [4]int
	ACurves     []*ToneCurve
	BCurves     []*ToneCurve
	MCurvesSet  []*ToneCurve
	MMatrix     Matrix3
	MBias       Vec3
}

// InputChannels returns the number of device-side channels the LUT expects.
func (l *Lut) InputChannels() int { return l.NumIn }

// OutputChannels returns the number of PCS-side channels the LUT produces.
func (l *Lut) OutputChannels() int { return l.NumOut }

// applyCurveSet evaluates one ToneCurve per channel of in and returns the
// results in a new slice; a nil entry in curves means identity for that
// channel.
func applyCurveSet(in []float64, curves []*ToneCurve) []float64 {
	out := make([]float64, len(in))
	for i, x := range in {
		if curves == nil || i >= len(curves) || curves[i] == nil {
			out[i] = x
			continue
		}
		out[i] = curves[i].Evaluate(x)
	}
	return out
}

// gridWeights3 builds the trilinear/tetrahedral/pyramid/prism barycentric
// weights for a 3-input classic or MCurves lattice of uniform grid size.
func gridWeights3(in []float64, grid int) weights3 {
	return weights3{
		wx: barycentricAt(in[0], grid),
		wy: barycentricAt(in[1], grid),
		wz: barycentricAt(in[2], grid),
	}
}

func gridWeights4(in []float64, axes [4]int) weights4 {
	return weights4{
		wx: barycentricAt(in[0], axes[0]),
		wy: barycentricAt(in[1], axes[1]),
		wz: barycentricAt(in[2], axes[2]),
		ww: barycentricAt(in[3], axes[3]),
	}
}

// barycentricAt computes a single floor/ceil/fraction triple on demand for
// a continuous-valued input in [0,1] against a grid of the given size.
// The precomputed BuildBarycentricWeightsF tables exist for the quantized
// hot path (256/65536 input bins); this variant supports LUT evaluation at
// arbitrary (e.g. profile-construction-time, regular-grid-sampling)
// fractional positions.
func barycentricAt(x float64, grid int) BarycentricWeightF {
	maxGrid := float64(grid - 1)
	v := clampF64(x, 0, 1) * maxGrid
	xi := int32(v)
	if xi > int32(maxGrid) {
		xi = int32(maxGrid)
	}
	xn := xi + 1
	if xn > int32(maxGrid) {
		xn = int32(maxGrid)
	}
	return BarycentricWeightF{X: xi, Xn: xn, W: float32(v - float64(xi))}
}

// EvaluateClassic evaluates a shapeClassic Lut at a device-side input,
// running input tables -> CLUT -> output tables, and returns the PCS
// output at the given interpolation geometry.
func (l *Lut) EvaluateClassic(in []float64, method InterpolationMethod) (Vec3, error) {
	if l.Shape != shapeClassic {
		return Vec3{}, newErr(InvalidAtoBLut, "EvaluateClassic called on an MCurves lut")
	}
	lin := applyCurveSet(in, l.InputTables)
	geom3, geom4 := interpolatorForMethod(method)

	var sample Vec3
	switch l.NumIn {
	case 3:
		sample = geom3.Inter3(l.Clut3, gridWeights3(lin, l.Grid))
	case 4:
		sample = geom4.Inter4(l.Clut4, gridWeights4(lin, [4]int{l.Grid, l.Grid, l.Grid, l.Grid}))
	default:
		return Vec3{}, newErr(InvalidAtoBLut, "unsupported classic lut input channel count %d", l.NumIn)
	}

	outF := applyCurveSet([]float64{float64(sample[0]), float64(sample[1]), float64(sample[2])}, l.OutputTables)
	return Vec3{float32(outF[0]), float32(outF[1]), float32(outF[2])}, nil
}

// EvaluateMCurves evaluates a shapeMCurves Lut. Forward (AtoB) order is
// a_curves -> CLUT -> m_curves -> matrix+bias -> b_curves; BtoA reverses
// it: b_curves -> matrix+bias -> m_curves -> CLUT -> a_curves. The a_curves
// and m_curves sets may be absent, meaning identity there; absent b_curves
// fail with InvalidAtoBLut in either direction.
func (l *Lut) EvaluateMCurves(in []float64, method InterpolationMethod) (Vec3, error) {
	if l.Shape != shapeMCurves {
		return Vec3{}, newErr(InvalidAtoBLut, "EvaluateMCurves called on a classic lut")
	}
	if l.Direction == AtoB {
		return l.evalMCurvesForward(in, method)
	}
	return l.evalMCurvesReverse(in, method)
}

func (l *Lut) evalMCurvesForward(in []float64, method InterpolationMethod) (Vec3, error) {
	lin := applyCurveSet(in, l.ACurves)
	geom3, geom4 := interpolatorForMethod(method)

	var sample Vec3
	switch l.NumIn {
	case 3:
		sample = geom3.Inter3(l.Clut3, gridWeights3(lin, l.GridPerAxis[0]))
	case 4:
		sample = geom4.Inter4(l.Clut4, gridWeights4(lin, l.GridPerAxis))
	default:
		return Vec3{}, newErr(InvalidAtoBLut, "unsupported mAB input channel count %d", l.NumIn)
	}

	mOut := applyCurveSet([]float64{float64(sample[0]), float64(sample[1]), float64(sample[2])}, l.MCurvesSet)
	mVec := Vec3{float32(mOut[0]), float32(mOut[1]), float32(mOut[2])}
	mVec = addVec3(l.MMatrix.MulVec(mVec), l.MBias)

	if len(l.BCurves) == 0 {
		return Vec3{}, newErr(InvalidAtoBLut, "mAB lut is missing required b_curves")
	}
	bOut := applyCurveSet([]float64{float64(mVec[0]), float64(mVec[1]), float64(mVec[2])}, l.BCurves)
	return Vec3{float32(bOut[0]), float32(bOut[1]), float32(bOut[2])}, nil
}

func (l *Lut) evalMCurvesReverse(in []float64, method InterpolationMethod) (Vec3, error) {
	if len(l.BCurves) == 0 {
		return Vec3{}, newErr(InvalidAtoBLut, "mBA lut is missing required b_curves")
	}
	bOut := applyCurveSet(in, l.BCurves)
	bVec := Vec3{float32(bOut[0]), float32(bOut[1]), float32(bOut[2])}
	bVec = addVec3(l.MMatrix.MulVec(bVec), l.MBias)

	mOut := applyCurveSet([]float64{float64(bVec[0]), float64(bVec[1]), float64(bVec[2])}, l.MCurvesSet)
	mVec := Vec3{float32(mOut[0]), float32(mOut[1]), float32(mOut[2])}

	geom3, geom4 := interpolatorForMethod(method)
	var sample Vec3
	switch l.NumOut {
	case 3:
		sample = geom3.Inter3(l.Clut3, weights3{
			wx: barycentricAt(float64(mVec[0]), l.GridPerAxis[0]),
			wy: barycentricAt(float64(mVec[1]), l.GridPerAxis[1]),
			wz: barycentricAt(float64(mVec[2]), l.GridPerAxis[2]),
		})
	default:
		return Vec3{}, newErr(InvalidAtoBLut, "unsupported mBA lattice output channel count %d", l.NumOut)
	}
	_ = geom4

	aOut := applyCurveSet([]float64{float64(sample[0]), float64(sample[1]), float64(sample[2])}, l.ACurves)
	return Vec3{float32(aOut[0]), float32(aOut[1]), float32(aOut[2])}, nil
}
