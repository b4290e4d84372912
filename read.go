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

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

const headerSize = 128

// DecodeRawProfile parses the big-endian binary ICC header and tag table
// from data, without interpreting any tag payload beyond slicing it out.
// This is the "ICC binary file parsing" collaborator spec.md excludes from
// the transform core; BuildProfile consumes its output.
func DecodeRawProfile(data []byte) (*RawProfile, error) {
	if len(data) < headerSize {
		return nil, wrapErr(InvalidProfile, errors.New("data shorter than ICC header"), "decoding profile header")
	}

	p := &RawProfile{}
	p.Size = binary.BigEndian.Uint32(data[0:4])
	p.PreferredCMMType = binary.BigEndian.Uint32(data[4:8])
	p.Version = Version{Major: data[8], Minor: data[9] >> 4, Bugfix: data[9] & 0x0f}
	p.ProfileClass = decodeProfileClass(binary.BigEndian.Uint32(data[12:16]))
	p.ColorSpace = decodeColorSpace(binary.BigEndian.Uint32(data[16:20]))
	p.PCS = decodeColorSpace(binary.BigEndian.Uint32(data[20:24]))
	copy(p.CreationDate[:], data[24:36])
	p.Signature = binary.BigEndian.Uint32(data[36:40])
	p.Platform = binary.BigEndian.Uint32(data[40:44])
	p.Flags = binary.BigEndian.Uint32(data[44:48])
	p.DeviceManufacturer = binary.BigEndian.Uint32(data[48:52])
	p.DeviceModel = binary.BigEndian.Uint32(data[52:56])
	p.DeviceAttributes = binary.BigEndian.Uint64(data[56:64])
	p.RenderingIntent = decodeRenderingIntent(binary.BigEndian.Uint32(data[64:68]))
	p.PCSIlluminant = Xyz{
		X: float32(s15Fixed16ToFloat(int32(binary.BigEndian.Uint32(data[68:72])))),
		Y: float32(s15Fixed16ToFloat(int32(binary.BigEndian.Uint32(data[72:76])))),
		Z: float32(s15Fixed16ToFloat(int32(binary.BigEndian.Uint32(data[76:80])))),
	}
	p.Creator = binary.BigEndian.Uint32(data[80:84])
	copy(p.ProfileID[:], data[84:100])

	if p.Signature != 0x61637370 { // 'acsp'
		return nil, newErr(InvalidProfile, "missing 'acsp' signature in header")
	}

	tags, err := decodeTagTable(data)
	if err != nil {
		return nil, wrapErr(InvalidProfile, err, "decoding tag table")
	}
	p.TagTable = tags
	return p, nil
}

func decodeTagTable(data []byte) (map[TagSignature][]byte, error) {
	if len(data) < headerSize+4 {
		return nil, errors.New("data too short for tag table count")
	}
	count := binary.BigEndian.Uint32(data[headerSize : headerSize+4])
	table := make(map[TagSignature][]byte, count)
	base := headerSize + 4
	for i := uint32(0); i < count; i++ {
		entryOff := base + int(i)*12
		if entryOff+12 > len(data) {
			return nil, errors.Errorf("tag table entry %d truncated", i)
		}
		sig := TagSignature(binary.BigEndian.Uint32(data[entryOff : entryOff+4]))
		offset := binary.BigEndian.Uint32(data[entryOff+4 : entryOff+8])
		size := binary.BigEndian.Uint32(data[entryOff+8 : entryOff+12])
		if int(offset+size) > len(data) {
			return nil, errors.Errorf("tag %s data out of range", sig)
		}
		table[sig] = data[offset : offset+size]
	}
	return table, nil
}

func decodeProfileClass(v uint32) ProfileClass {
	switch v {
	case 0x73636E72: // 'scnr'
		return ClassInput
	case 0x6D6E7472: // 'mntr'
		return ClassDisplay
	case 0x70727472: // 'prtr'
		return ClassOutput
	case 0x6C696E6B: // 'link'
		return ClassLink
	case 0x73706163: // 'spac'
		return ClassColorSpace
	case 0x61627374: // 'abst'
		return ClassAbstract
	case 0x6E6D636C: // 'nmcl'
		return ClassNamedColor
	default:
		return ClassUnknown
	}
}

func decodeColorSpace(v uint32) DataColorSpace {
	switch v {
	case 0x58595A20: // 'XYZ '
		return SpaceXYZ
	case 0x4C616220: // 'Lab '
		return SpaceLab
	case 0x52474220: // 'RGB '
		return SpaceRgb
	case 0x47524159: // 'GRAY'
		return SpaceGray
	case 0x434D594B: // 'CMYK'
		return SpaceCmyk
	case 0x33434C52: // '3CLR'
		return SpaceColor3
	case 0x34434C52: // '4CLR'
		return SpaceColor4
	default:
		return SpaceUnknown
	}
}

func decodeRenderingIntent(v uint32) RenderingIntent {
	switch v {
	case 1:
		return RelativeColorimetric
	case 2:
		return Saturation
	case 3:
		return AbsoluteColorimetric
	default:
		return Perceptual
	}
}
