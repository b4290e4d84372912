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

// Profile holds everything a transform needs from one side of a
// conversion: PCS, colour-space signature, RGB colorants, per-channel
// TRCs, chromatic-adaptation matrix, an optional CICP triplet, and up to
// three A-to-B and three B-to-A LUT warehouses keyed by rendering intent.
// A Profile is read-only once constructed, and may be shared across many
// concurrently-constructed transforms.
type Profile struct {
	Version     Version
	Class       ProfileClass
	ColorSpace  DataColorSpace
	PCS         DataColorSpace

	// RGB colorant columns (rXYZ/gXYZ/bXYZ), valid when ColorSpace == SpaceRgb.
	RedColorant, GreenColorant, BlueColorant Xyz

	// Per-channel TRCs. RGB profiles use Red/Green/BlueTRC; gray profiles
	// use GrayTRC.
	RedTRC, GreenTRC, BlueTRC, GrayTRC *ToneCurve

	ChromaticAdaptation Matrix3
	WhitePoint           Xyz

	CICP   *CICPTriple
	HasCICP bool

	// aToB[intent] / bToA[intent] are the per-rendering-intent LUT
	// warehouses; a nil entry means that intent has no LUT.
	aToB [4]*Lut
	bToA [4]*Lut
}

// AToB returns the A-to-B (device->PCS) LUT for the given intent, or
// (nil, false) if the profile has none for that intent.
func (p *Profile) AToB(intent RenderingIntent) (*Lut, bool) {
	l := p.aToB[intent]
	return l, l != nil
}

// BToA returns the B-to-A (PCS->device) LUT for the given intent, or
// (nil, false) if the profile has none for that intent.
func (p *Profile) BToA(intent RenderingIntent) (*Lut, bool) {
	l := p.bToA[intent]
	return l, l != nil
}

// SetAToB installs an A-to-B LUT for the given intent.
func (p *Profile) SetAToB(intent RenderingIntent, l *Lut) { p.aToB[intent] = l }

// SetBToA installs a B-to-A LUT for the given intent.
func (p *Profile) SetBToA(intent RenderingIntent, l *Lut) { p.bToA[intent] = l }

// HasFullMatrixShaper reports whether the profile has all three nonzero
// RGB colorants and all three TRCs present — the condition the planner
// uses to recognize a matrix-shaper profile (spec §4.4 case 1).
func (p *Profile) HasFullMatrixShaper() bool {
	if p.ColorSpace != SpaceRgb {
		return false
	}
	zero := Xyz{}
	if p.RedColorant == zero || p.GreenColorant == zero || p.BlueColorant == zero {
		return false
	}
	return p.RedTRC != nil && p.GreenTRC != nil && p.BlueTRC != nil
}

// ColorantMatrix assembles the 3x3 matrix whose columns are the red,
// green, and blue colorants — the RGB->XYZ matrix for a matrix-shaper
// profile.
func (p *Profile) ColorantMatrix() Matrix3 {
	return Matrix3{
		{p.RedColorant.X, p.GreenColorant.X, p.BlueColorant.X},
		{p.RedColorant.Y, p.GreenColorant.Y, p.BlueColorant.Y},
		{p.RedColorant.Z, p.GreenColorant.Z, p.BlueColorant.Z},
	}
}

// EffectiveTRC returns the forward TRC for the given RGB channel (0=R,
// 1=G, 2=B), preferring the CICP transfer function when opts requests it
// and the profile carries a usable CICP triple.
func (p *Profile) EffectiveTRC(channel int, opts *TransformOptions) *ToneCurve {
	if opts != nil && opts.AllowUseCICPTransfer && p.HasCICP {
		if c, ok := CurveFromCICP(p.CICP.Transfer); ok {
			return c
		}
	}
	switch channel {
	case 0:
		return p.RedTRC
	case 1:
		return p.GreenTRC
	case 2:
		return p.BlueTRC
	default:
		return p.GrayTRC
	}
}

// BuildProfile interprets a RawProfile's tag table into a structured
// Profile: decoding colorant XYZ tags, TRC curveType/parametricCurveType
// tags, the 'chad' chromatic adaptation matrix, an optional 'cicp' tag,
// and every A2Bn/B2An LUT tag present. Construction fails with
// InvalidProfile if a required colorant tag is missing or any decoded tag
// is malformed, and with BuildTransferFunction if a required TRC tag is
// missing.
func BuildProfile(raw *RawProfile) (*Profile, error) {
	p := &Profile{
		Version:              raw.Version,
		Class:                raw.ProfileClass,
		ColorSpace:           raw.ColorSpace,
		PCS:                  raw.PCS,
		ChromaticAdaptation:  IdentityMatrix3,
		WhitePoint:           raw.PCSIlluminant,
	}

	if data, ok := raw.Tag(TagChromaticAdaptation); ok {
		m, err := decodeS15Fixed16Matrix3(data)
		if err != nil {
			return nil, wrapErr(InvalidProfile, err, "decoding chromatic adaptation tag")
		}
		p.ChromaticAdaptation = m
	}

	if data, ok := raw.Tag(TagCicp); ok {
		triple, err := decodeCICPTag(data)
		if err != nil {
			return nil, wrapErr(InvalidProfile, err, "decoding cicp tag")
		}
		p.CICP = &triple
		p.HasCICP = true
	}

	switch raw.ColorSpace {
	case SpaceRgb:
		var err error
		p.RedColorant, err = decodeXYZTag(raw, TagRedMatrixColumn)
		if err != nil {
			return nil, err
		}
		p.GreenColorant, err = decodeXYZTag(raw, TagGreenMatrixColumn)
		if err != nil {
			return nil, err
		}
		p.BlueColorant, err = decodeXYZTag(raw, TagBlueMatrixColumn)
		if err != nil {
			return nil, err
		}
		p.RedTRC, err = decodeTRCTag(raw, TagRedTRC)
		if err != nil {
			return nil, err
		}
		p.GreenTRC, err = decodeTRCTag(raw, TagGreenTRC)
		if err != nil {
			return nil, err
		}
		p.BlueTRC, err = decodeTRCTag(raw, TagBlueTRC)
		if err != nil {
			return nil, err
		}
	case SpaceGray:
		var err error
		p.GrayTRC, err = decodeTRCTag(raw, TagGrayTRC)
		if err != nil {
			return nil, err
		}
	}

	for intent := RenderingIntent(0); intent < 4; intent++ {
		if data, ok := raw.Tag(aToBTagFor(intent)); ok {
			l, err := decodeLutTag(data, AtoB)
			if err != nil {
				return nil, wrapErr(InvalidProfile, err, "decoding %s lut", aToBTagFor(intent))
			}
			p.SetAToB(intent, l)
		}
		if data, ok := raw.Tag(bToATagFor(intent)); ok {
			l, err := decodeLutTag(data, BtoA)
			if err != nil {
				return nil, wrapErr(InvalidProfile, err, "decoding %s lut", bToATagFor(intent))
			}
			p.SetBToA(intent, l)
		}
	}

	return p, nil
}

func decodeXYZTag(raw *RawProfile, sig TagSignature) (Xyz, error) {
	data, ok := raw.Tag(sig)
	if !ok {
		return Xyz{}, newErr(InvalidProfile, "missing required tag %s", sig)
	}
	xyz, err := decodeXYZType(data)
	if err != nil {
		return Xyz{}, wrapErr(InvalidProfile, err, "decoding %s tag", sig)
	}
	return xyz, nil
}

func decodeTRCTag(raw *RawProfile, sig TagSignature) (*ToneCurve, error) {
	data, ok := raw.Tag(sig)
	if !ok {
		return nil, newErr(BuildTransferFunction, "missing required TRC tag %s", sig)
	}
	curve, err := decodeCurveType(data)
	if err != nil {
		return nil, wrapErr(InvalidProfile, err, "decoding %s tag", sig)
	}
	return curve, nil
}
