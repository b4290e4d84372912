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

import "go.uber.org/zap"

// planKind identifies which of the four pipeline shapes a Plan implements.
type planKind int

const (
	planMatrixShaper planKind = iota
	planGrayBridge
	planRgbToGray
	planLutBacked
)

// Grid sizes for materializing LUT evaluations: A-to-B (device->PCS) at
// G=17, B-to-A (PCS->device) at G=33. The LUT-backed plan does not read
// them; it evaluates its LUTs directly for each pixel group.
const (
	gridAToB = 17
	gridBToA = 33
)

// Plan is a compiled device-to-device colour transform: everything
// CreateTransform* needs to convert one pixel group at a time. It
// is built once at transform-construction time and is safe to call
// concurrently thereafter — all state is read-only.
//
// Every tone-curve dependent step of the matrix-shaper, gray-bridge and
// RGB-to-gray plans is baked at construction time into one
// or more Stage values (see stages.go/baked.go) at a fixed internal
// resolution of bakeBitDepth bits. The bake happens in BuildPlan rather
// than in an Executor because Plan has no notion of the real device bit
// depth: CreateTransformF32/F64 build a Plan without ever constructing an
// Executor with a meaningful bit depth, so the bake resolution cannot be
// deferred to executor-construction time. The LUT-backed plan evaluates
// its LUTs' curves per pixel group instead.
type Plan struct {
	kind planKind
	opts TransformOptions

	// planMatrixShaper / planRgbToGray / planGrayBridge fields.
	srcTRC    [3]*ToneCurve // channel 0 used alone for gray paths
	dstTRC    [3]*ToneCurve
	srcMatrix Matrix3 // RGB->XYZ
	dstMatrix Matrix3 // XYZ->RGB (already inverted)
	adapt     Matrix3 // src chromatic-adaptation * dst inverse-adaptation

	srcIsGray bool
	dstIsGray bool

	gamutClip GamutClipMethod

	// Baked Stage pipeline (stages.go), populated by
	// bakeMatrixShaperSourceStages/bakeDestinationRgbStage and the
	// gray/rgb-to-gray builders. stagesRgbLin/stagesGrayLin handle
	// the source TRC; stagesSrcToPCS folds the colorant matrix and
	// chromatic adaptation; the destination side is either
	// stagesDstGamma (general matrix + gamut clip + gamma LUT) or
	// stagesDstLinear (the degenerate identity-TRC/no-gamut-clip case),
	// selected by dstUsesLinear.
	stagesRgbLin       rgbLinearizationStage
	stagesGrayLin      grayLinearizationStage
	stagesSrcToPCS     matrixStage
	stagesDstGamma     xyzToRgbStage
	stagesDstLinear    matrixClipScaleStage
	dstUsesLinear      bool
	stagesDstGray      grayGammaStage
	stagesDstBroadcast broadcastGammaStage

	// planLutBacked fields.
	aToB         *Lut
	bToA         *Lut
	srcPCSIsLab  bool
	dstPCSIsLab  bool
	srcLabFixup  float32 // 0 means no-op
	dstLabFixup  float32
	fallbackPlan *Plan // matrix-shaper inverse, used when bToA is absent

	// Q1.15 fixed-point CLUT path, populated only for a 3-input classic
	// A-to-B lut when TransformOptions.PreferFixedPoint requests it.
	aToBQ15        *Lattice3DQ15
	aToBQ15Weights []BarycentricWeightQ15
	aToBQ15Bins    int
}

// BuildPlan examines (src, srcLayout, dst, dstLayout, opts) and selects
// one of the pipeline shapes spec.md describes, returning a ready-to-
// evaluate Plan or an error from the construction-time failure taxonomy.
func BuildPlan(src *Profile, srcLayout Layout, dst *Profile, dstLayout Layout, opts *TransformOptions) (*Plan, error) {
	o := normalizedOptions(opts)
	log := o.logger()

	if !srcLayout.valid() || !dstLayout.valid() {
		return nil, newErr(InvalidLayout, "unrecognized layout")
	}
	if !o.RenderingIntent.valid() {
		return nil, newErr(InvalidRenderingIntent, "rendering intent %v is not one of the four standard values", o.RenderingIntent)
	}

	needsLut := src.ColorSpace == SpaceCmyk || src.ColorSpace == SpaceColor4 ||
		src.ColorSpace == SpaceLab || src.ColorSpace == SpaceColor3 ||
		dst.ColorSpace == SpaceCmyk || dst.ColorSpace == SpaceColor4 ||
		dst.ColorSpace == SpaceLab || dst.ColorSpace == SpaceColor3

	switch {
	case needsLut:
		log.Debug("selected LUT-backed pipeline plan", zap.Stringer("src_space", src.ColorSpace), zap.Stringer("dst_space", dst.ColorSpace))
		return buildLutBackedPlan(src, dst, o)
	case src.ColorSpace == SpaceGray && dst.ColorSpace == SpaceRgb,
		src.ColorSpace == SpaceGray && dst.ColorSpace == SpaceGray:
		log.Debug("selected gray bridge pipeline plan")
		return buildGrayBridgePlan(src, dst, o)
	case src.ColorSpace == SpaceRgb && dst.ColorSpace == SpaceGray:
		log.Debug("selected RGB-to-gray pipeline plan")
		return buildRgbToGrayPlan(src, dst, o)
	case src.HasFullMatrixShaper() && dst.HasFullMatrixShaper():
		log.Debug("selected matrix-shaper pipeline plan")
		return buildMatrixShaperPlan(src, dst, o)
	default:
		return nil, newErr(UnsupportedProfileConnection, "no pipeline plan matches src=%v dst=%v", src.ColorSpace, dst.ColorSpace)
	}
}

func buildMatrixShaperPlan(src, dst *Profile, o TransformOptions) (*Plan, error) {
	dstInv, err := dst.ColorantMatrix().Inverse()
	if err != nil {
		return nil, wrapErr(UnsupportedProfileConnection, err, "destination colorant matrix is singular")
	}
	dstAdaptInv, err := dst.ChromaticAdaptation.Inverse()
	if err != nil {
		dstAdaptInv = IdentityMatrix3
	}

	p := &Plan{
		kind:      planMatrixShaper,
		opts:      o,
		srcMatrix: src.ColorantMatrix(),
		dstMatrix: dstInv,
		adapt:     dstAdaptInv.Mul(src.ChromaticAdaptation),
		gamutClip: o.GamutClipMethod,
	}
	p.srcTRC[0] = src.EffectiveTRC(0, &o)
	p.srcTRC[1] = src.EffectiveTRC(1, &o)
	p.srcTRC[2] = src.EffectiveTRC(2, &o)
	p.dstTRC[0] = dst.EffectiveTRC(0, &o)
	p.dstTRC[1] = dst.EffectiveTRC(1, &o)
	p.dstTRC[2] = dst.EffectiveTRC(2, &o)
	if p.srcTRC[0] == nil || p.srcTRC[1] == nil || p.srcTRC[2] == nil {
		return nil, newErr(BuildTransferFunction, "source profile is missing an RGB TRC")
	}
	if p.dstTRC[0] == nil || p.dstTRC[1] == nil || p.dstTRC[2] == nil {
		return nil, newErr(BuildTransferFunction, "destination profile is missing an RGB TRC")
	}
	if err := p.bakeMatrixShaperSourceStages(); err != nil {
		return nil, err
	}
	p.bakeDestinationRgbStage()
	return p, nil
}

func buildGrayBridgePlan(src, dst *Profile, o TransformOptions) (*Plan, error) {
	if src.GrayTRC == nil {
		return nil, newErr(BuildTransferFunction, "source gray profile is missing its TRC")
	}
	p := &Plan{kind: planGrayBridge, opts: o, srcIsGray: true, gamutClip: o.GamutClipMethod}
	p.srcTRC[0] = src.GrayTRC
	grayLin, err := bakeGrayLinearization(src.GrayTRC)
	if err != nil {
		return nil, err
	}
	p.stagesGrayLin = grayLin
	if dst.ColorSpace == SpaceGray {
		p.dstIsGray = true
		if dst.GrayTRC == nil {
			return nil, newErr(BuildTransferFunction, "destination gray profile is missing its TRC")
		}
		p.dstTRC[0] = dst.GrayTRC
		p.stagesDstGray = bakeGammaGray(dst.GrayTRC)
	} else {
		if !dst.HasFullMatrixShaper() {
			return nil, newErr(UnsupportedProfileConnection, "destination is not a usable RGB matrix-shaper for a gray bridge")
		}
		p.dstTRC[0] = dst.EffectiveTRC(0, &o)
		p.dstTRC[1] = dst.EffectiveTRC(1, &o)
		p.dstTRC[2] = dst.EffectiveTRC(2, &o)
		p.stagesDstBroadcast = broadcastGammaStage{tables: bakeGammaRgb(p.dstTRC)}
	}
	return p, nil
}

func buildRgbToGrayPlan(src, dst *Profile, o TransformOptions) (*Plan, error) {
	if !src.HasFullMatrixShaper() {
		return nil, newErr(UnsupportedProfileConnection, "source is not a usable RGB matrix-shaper for RGB-to-gray")
	}
	if dst.GrayTRC == nil {
		return nil, newErr(BuildTransferFunction, "destination gray profile is missing its TRC")
	}
	p := &Plan{kind: planRgbToGray, opts: o, dstIsGray: true, srcMatrix: src.ColorantMatrix()}
	p.srcTRC[0] = src.EffectiveTRC(0, &o)
	p.srcTRC[1] = src.EffectiveTRC(1, &o)
	p.srcTRC[2] = src.EffectiveTRC(2, &o)
	p.dstTRC[0] = dst.GrayTRC
	rgbLin, err := bakeRgbLinearization(p.srcTRC)
	if err != nil {
		return nil, err
	}
	p.stagesRgbLin = rgbLin
	p.stagesSrcToPCS = matrixStage{m: p.srcMatrix}
	p.stagesDstGray = bakeGammaGray(dst.GrayTRC)
	return p, nil
}

func buildLutBackedPlan(src, dst *Profile, o TransformOptions) (*Plan, error) {
	aToB, ok := src.AToB(o.RenderingIntent)
	if !ok {
		return nil, newErr(UnsupportedLutRenderingIntent, "source profile has no A-to-B lut for intent %v", o.RenderingIntent)
	}

	p := &Plan{
		kind:        planLutBacked,
		opts:        o,
		aToB:        aToB,
		srcPCSIsLab: src.PCS == SpaceLab,
		dstPCSIsLab: dst.PCS == SpaceLab,
		gamutClip:   o.GamutClipMethod,
	}
	if src.Version.Major <= 2 && src.PCS == SpaceLab {
		p.srcLabFixup = v2ToV4Factor
	}
	if dst.Version.Major <= 2 && dst.PCS == SpaceLab {
		p.dstLabFixup = v4ToV2Factor
	}

	if o.PreferFixedPoint && aToB.Shape == shapeClassic && aToB.NumIn == 3 && aToB.Clut3 != nil {
		bins := o.BarycentricWeightScale.bins()
		p.aToBQ15 = NewLattice3DQ15FromFloat(aToB.Clut3)
		p.aToBQ15Weights = BuildBarycentricWeightsQ15(bins, aToB.Grid)
		p.aToBQ15Bins = bins
	}

	if bToA, ok := dst.BToA(o.RenderingIntent); ok {
		p.bToA = bToA
		return p, nil
	}

	if dst.ColorSpace == SpaceRgb && dst.HasFullMatrixShaper() {
		fallback, err := buildMatrixShaperFromPCS(dst, o)
		if err != nil {
			return nil, err
		}
		p.fallbackPlan = fallback
		return p, nil
	}

	return nil, newErr(UnsupportedLutRenderingIntent, "destination profile has no B-to-A lut for intent %v and no matrix-shaper fallback", o.RenderingIntent)
}

// buildMatrixShaperFromPCS builds the "XYZ(PCS) -> device RGB" half of a
// matrix-shaper plan, used as the B-to-A fallback in the LUT-backed path
// per spec §4.4 case 4.
func buildMatrixShaperFromPCS(dst *Profile, o TransformOptions) (*Plan, error) {
	dstInv, err := dst.ColorantMatrix().Inverse()
	if err != nil {
		return nil, wrapErr(UnsupportedProfileConnection, err, "destination colorant matrix is singular")
	}
	p := &Plan{kind: planMatrixShaper, opts: o, dstMatrix: dstInv, adapt: IdentityMatrix3, srcMatrix: IdentityMatrix3, gamutClip: o.GamutClipMethod}
	p.dstTRC[0] = dst.EffectiveTRC(0, &o)
	p.dstTRC[1] = dst.EffectiveTRC(1, &o)
	p.dstTRC[2] = dst.EffectiveTRC(2, &o)
	p.bakeDestinationRgbStage()
	return p, nil
}

// bakeMatrixShaperSourceStages bakes the source-side TRC linearization
// table and folds the colorant matrix with the chromatic adaptation into a
// single matrixStage.
func (p *Plan) bakeMatrixShaperSourceStages() error {
	rgbLin, err := bakeRgbLinearization(p.srcTRC)
	if err != nil {
		return err
	}
	p.stagesRgbLin = rgbLin
	p.stagesSrcToPCS = matrixStage{m: p.adapt.Mul(p.srcMatrix)}
	return nil
}

// bakeDestinationRgbStage bakes the destination-side matrix + gamma (or
// matrix + clip + scale, in the degenerate identity-TRC case) stage.
func (p *Plan) bakeDestinationRgbStage() {
	gamma, linear, useLinear := bakeDstRgbStage(p.dstMatrix, p.dstTRC, p.gamutClip)
	p.stagesDstGamma = gamma
	p.stagesDstLinear = linear
	p.dstUsesLinear = useLinear
}

// outChannels returns the number of device-side output channels this
// plan's evaluators write into out.
func (p *Plan) outChannels() int {
	switch p.kind {
	case planRgbToGray:
		return 1
	case planGrayBridge:
		if p.dstIsGray {
			return 1
		}
		return 3
	default:
		return 3
	}
}

// Evaluate runs one pixel group of normalized [0,1] device-encoded input
// samples through the plan and returns the normalized [0,1] device-encoded
// output samples.
func (p *Plan) Evaluate(in []float64) ([]float64, error) {
	out := make([]float64, p.outChannels())
	if err := p.evaluateInto(in, out); err != nil {
		return nil, err
	}
	return out, nil
}

// evaluateInto is the allocation-free counterpart of Evaluate: out must
// already be sized to p.outChannels() and is overwritten in place. Callers
// that process many pixel groups back to back (Executor.Transform) reuse a
// single out slice across calls instead of paying one allocation per group.
func (p *Plan) evaluateInto(in, out []float64) error {
	switch p.kind {
	case planMatrixShaper:
		return p.evaluateMatrixShaper(in, out)
	case planGrayBridge:
		return p.evaluateGrayBridge(in, out)
	case planRgbToGray:
		return p.evaluateRgbToGray(in, out)
	case planLutBacked:
		return p.evaluateLutBacked(in, out)
	default:
		return newErr(UnsupportedProfileConnection, "plan has no evaluator for its kind")
	}
}

// hasQ15Path reports whether this plan baked a Q1.15 fixed-point CLUT
// lattice, letting Executor.Transform choose the fixed-point evaluator.
func (p *Plan) hasQ15Path() bool {
	return p.aToBQ15 != nil
}

func (p *Plan) evaluateMatrixShaper(in, out []float64) error {
	var buf [3]float32
	buf[0], buf[1], buf[2] = float32(in[0]), float32(in[1]), float32(in[2])
	if err := p.stagesRgbLin.Apply(buf[:]); err != nil {
		return err
	}
	if err := p.stagesSrcToPCS.Apply(buf[:]); err != nil {
		return err
	}
	return p.applyDestinationRgbStage(Vec3{buf[0], buf[1], buf[2]}, out)
}

// applyDestinationRgbStage runs the baked destination matrix+gamma (or
// matrix+clip+scale) stage on a linear PCS XYZ triplet and writes the
// normalized [0,1] device-encoded RGB result into out.
func (p *Plan) applyDestinationRgbStage(xyz Vec3, out []float64) error {
	buf := [3]float32{xyz[0], xyz[1], xyz[2]}
	if p.dstUsesLinear {
		if err := p.stagesDstLinear.Apply(buf[:]); err != nil {
			return err
		}
		out[0] = (float64(buf[0]) - 0.5) / float64(bakeMaxVal)
		out[1] = (float64(buf[1]) - 0.5) / float64(bakeMaxVal)
		out[2] = (float64(buf[2]) - 0.5) / float64(bakeMaxVal)
		return nil
	}
	if err := p.stagesDstGamma.Apply(buf[:]); err != nil {
		return err
	}
	out[0] = float64(buf[0]) / float64(bakeMaxVal)
	out[1] = float64(buf[1]) / float64(bakeMaxVal)
	out[2] = float64(buf[2]) / float64(bakeMaxVal)
	return nil
}

func (p *Plan) evaluateGrayBridge(in, out []float64) error {
	lin := p.stagesGrayLin.apply1(float32(in[0]))
	if p.dstIsGray {
		out[0] = float64(p.stagesDstGray.apply1(lin)) / float64(bakeMaxVal)
		return nil
	}
	raw := p.stagesDstBroadcast.apply1(lin)
	out[0] = float64(raw[0]) / float64(bakeMaxVal)
	out[1] = float64(raw[1]) / float64(bakeMaxVal)
	out[2] = float64(raw[2]) / float64(bakeMaxVal)
	return nil
}

func (p *Plan) evaluateRgbToGray(in, out []float64) error {
	var buf [3]float32
	buf[0], buf[1], buf[2] = float32(in[0]), float32(in[1]), float32(in[2])
	if err := p.stagesRgbLin.Apply(buf[:]); err != nil {
		return err
	}
	if err := p.stagesSrcToPCS.Apply(buf[:]); err != nil {
		return err
	}
	y := clampUnit(buf[1])
	out[0] = float64(p.stagesDstGray.apply1(y)) / float64(bakeMaxVal)
	return nil
}

func (p *Plan) evaluateLutBacked(in, out []float64) error {
	var pcs Vec3
	var err error
	switch p.aToB.Shape {
	case shapeClassic:
		pcs, err = p.aToB.EvaluateClassic(in, p.opts.InterpolationMethod)
	default:
		pcs, err = p.aToB.EvaluateMCurves(in, p.opts.InterpolationMethod)
	}
	if err != nil {
		return err
	}
	return p.finishFromAtoBPCS(pcs, out)
}

// evaluateLutBackedQ15 is the fixed-point counterpart of evaluateLutBacked,
// taken only when hasQ15Path() is true: the CLUT interpolation runs
// entirely in Q1.15 arithmetic instead of float64, and the PCS tail is
// shared with the float path through finishFromAtoBPCS.
func (p *Plan) evaluateLutBackedQ15(in, out []float64) error {
	lin := applyCurveSet(in, p.aToB.InputTables)
	bins := p.aToBQ15Bins
	w := weights3Q15{
		wx: p.aToBQ15Weights[quantizeBin(float32(lin[0]), bins)],
		wy: p.aToBQ15Weights[quantizeBin(float32(lin[1]), bins)],
		wz: p.aToBQ15Weights[quantizeBin(float32(lin[2]), bins)],
	}
	sample := interpolatorQ15ForMethod(p.opts.InterpolationMethod).Inter3Q15(p.aToBQ15, w)

	var sampleF [3]float64
	sampleF[0] = float64(q15ToFloat(sample[0]))
	sampleF[1] = float64(q15ToFloat(sample[1]))
	sampleF[2] = float64(q15ToFloat(sample[2]))
	outF := applyCurveSet(sampleF[:], p.aToB.OutputTables)
	pcs := Vec3{float32(outF[0]), float32(outF[1]), float32(outF[2])}
	return p.finishFromAtoBPCS(pcs, out)
}

// finishFromAtoBPCS runs the PCS-side fixups (Lab v2/v4 scaling, Lab<->XYZ
// conversion) and the B-to-A or matrix-shaper-fallback tail shared by both
// the float and Q1.15 A-to-B evaluators.
func (p *Plan) finishFromAtoBPCS(pcs Vec3, out []float64) error {
	if p.srcLabFixup != 0 {
		pcs = scaleVec3(pcs, p.srcLabFixup)
	}
	if p.srcPCSIsLab {
		xyz, err := labToXyzVec(pcs)
		if err != nil {
			return err
		}
		pcs = xyz
	}
	if p.dstPCSIsLab && !p.srcPCSIsLab {
		pcs = xyzToLabVec(pcs)
	}
	if p.dstLabFixup != 0 {
		pcs = scaleVec3(pcs, p.dstLabFixup)
	}

	if p.bToA != nil {
		var pcsF [3]float64
		pcsF[0], pcsF[1], pcsF[2] = float64(pcs[0]), float64(pcs[1]), float64(pcs[2])
		var bOut Vec3
		var err error
		switch p.bToA.Shape {
		case shapeClassic:
			bOut, err = p.bToA.EvaluateClassic(pcsF[:], p.opts.InterpolationMethod)
		default:
			bOut, err = p.bToA.EvaluateMCurves(pcsF[:], p.opts.InterpolationMethod)
		}
		if err != nil {
			return err
		}
		out[0], out[1], out[2] = float64(bOut[0]), float64(bOut[1]), float64(bOut[2])
		return nil
	}

	// Fallback matrix-shaper path expects XYZ PCS input.
	return p.fallbackPlan.applyDestinationRgbStage(pcs, out)
}

func labToXyzVec(lab Vec3) (Vec3, error) {
	xyz := labToXyz(float64(lab[0]), float64(lab[1]), float64(lab[2]), D50)
	return Vec3{xyz.X, xyz.Y, xyz.Z}, nil
}

func xyzToLabVec(xyz Vec3) Vec3 {
	l, a, b := xyzToLab(float64(xyz[0]), float64(xyz[1]), float64(xyz[2]), D50)
	return Vec3{float32(l), float32(a), float32(b)}
}
