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

// TagSignature identifies an ICC tag by its four-byte signature.
type TagSignature uint32

const (
	TagProfileDescription  TagSignature = 0x64657363 // 'desc'
	TagCopyright           TagSignature = 0x63707274 // 'cprt'
	TagChromaticAdaptation TagSignature = 0x63686164 // 'chad'
	TagRedMatrixColumn     TagSignature = 0x7258595A // 'rXYZ'
	TagGreenMatrixColumn   TagSignature = 0x6758595A // 'gXYZ'
	TagBlueMatrixColumn    TagSignature = 0x6258595A // 'bXYZ'
	TagRedTRC              TagSignature = 0x72545243 // 'rTRC'
	TagGreenTRC            TagSignature = 0x67545243 // 'gTRC'
	TagBlueTRC             TagSignature = 0x62545243 // 'bTRC'
	TagGrayTRC             TagSignature = 0x6b545243 // 'kTRC'
	TagMediaWhitePoint     TagSignature = 0x77747074 // 'wtpt'
	TagCicp                TagSignature = 0x63696370 // 'cicp'
	TagAToB0               TagSignature = 0x41324230 // 'A2B0'
	TagAToB1               TagSignature = 0x41324231 // 'A2B1'
	TagAToB2               TagSignature = 0x41324232 // 'A2B2'
	TagBToA0               TagSignature = 0x42324130 // 'B2A0'
	TagBToA1               TagSignature = 0x42324131 // 'B2A1'
	TagBToA2               TagSignature = 0x42324132 // 'B2A2'
)

func (t TagSignature) String() string {
	b := []byte{byte(t >> 24), byte(t >> 16), byte(t >> 8), byte(t)}
	return string(b)
}

// aToBTagFor returns the A2Bn tag signature for a rendering intent.
func aToBTagFor(intent RenderingIntent) TagSignature {
	switch intent {
	case RelativeColorimetric:
		return TagAToB1
	case Saturation:
		return TagAToB2
	default:
		return TagAToB0
	}
}

// bToATagFor returns the B2An tag signature for a rendering intent.
func bToATagFor(intent RenderingIntent) TagSignature {
	switch intent {
	case RelativeColorimetric:
		return TagBToA1
	case Saturation:
		return TagBToA2
	default:
		return TagBToA0
	}
}
