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
	"bytes"
	"encoding/binary"
	"sort"
)

// EncodeRawProfile serializes a RawProfile back to its ICC binary form:
// a 128-byte header, a tag table, and each tag's payload, in ascending
// signature order for a deterministic byte-identical round trip.
func (p *RawProfile) EncodeRawProfile() []byte {
	sigs := make([]TagSignature, 0, len(p.TagTable))
	for sig := range p.TagTable {
		sigs = append(sigs, sig)
	}
	sort.Slice(sigs, func(i, j int) bool { return sigs[i] < sigs[j] })

	tagTableSize := 4 + 12*len(sigs)
	headerAndTable := headerSize + tagTableSize
	dataStart := align4(headerAndTable)

	var buf bytes.Buffer
	buf.Write(make([]byte, dataStart))
	out := buf.Bytes()

	binary.BigEndian.PutUint32(out[4:8], p.PreferredCMMType)
	out[8] = p.Version.Major
	out[9] = p.Version.Minor<<4 | p.Version.Bugfix
	binary.BigEndian.PutUint32(out[12:16], encodeProfileClass(p.ProfileClass))
	binary.BigEndian.PutUint32(out[16:20], encodeColorSpace(p.ColorSpace))
	binary.BigEndian.PutUint32(out[20:24], encodeColorSpace(p.PCS))
	copy(out[24:36], p.CreationDate[:])
	binary.BigEndian.PutUint32(out[36:40], 0x61637370) // 'acsp'
	binary.BigEndian.PutUint32(out[40:44], p.Platform)
	binary.BigEndian.PutUint32(out[44:48], p.Flags)
	binary.BigEndian.PutUint32(out[48:52], p.DeviceManufacturer)
	binary.BigEndian.PutUint32(out[52:56], p.DeviceModel)
	binary.BigEndian.PutUint64(out[56:64], p.DeviceAttributes)
	binary.BigEndian.PutUint32(out[64:68], encodeRenderingIntent(p.RenderingIntent))
	binary.BigEndian.PutUint32(out[68:72], uint32(floatToS15Fixed16(float64(p.PCSIlluminant.X))))
	binary.BigEndian.PutUint32(out[72:76], uint32(floatToS15Fixed16(float64(p.PCSIlluminant.Y))))
	binary.BigEndian.PutUint32(out[76:80], uint32(floatToS15Fixed16(float64(p.PCSIlluminant.Z))))
	binary.BigEndian.PutUint32(out[80:84], p.Creator)
	copy(out[84:100], p.ProfileID[:])

	binary.BigEndian.PutUint32(out[headerSize:headerSize+4], uint32(len(sigs)))

	base := headerSize + 4
	var payload bytes.Buffer
	payload.Write(make([]byte, 0))
	offset := uint32(dataStart)
	for i, sig := range sigs {
		data := p.TagTable[sig]
		entryOff := base + i*12
		binary.BigEndian.PutUint32(out[entryOff:entryOff+4], uint32(sig))
		binary.BigEndian.PutUint32(out[entryOff+4:entryOff+8], offset)
		binary.BigEndian.PutUint32(out[entryOff+8:entryOff+12], uint32(len(data)))
		payload.Write(data)
		offset += uint32(align4(len(data)))
		for payload.Len()%4 != 0 {
			payload.WriteByte(0)
		}
	}

	out = append(out, payload.Bytes()...)
	binary.BigEndian.PutUint32(out[0:4], uint32(len(out)))
	return out
}

// align4 rounds n up to the next multiple of 4.
func align4(n int) int {
	return (n + 3) &^ 3
}

func encodeProfileClass(c ProfileClass) uint32 {
	switch c {
	case ClassInput:
		return 0x73636E72
	case ClassDisplay:
		return 0x6D6E7472
	case ClassOutput:
		return 0x70727472
	case ClassLink:
		return 0x6C696E6B
	case ClassColorSpace:
		return 0x73706163
	case ClassAbstract:
		return 0x61627374
	case ClassNamedColor:
		return 0x6E6D636C
	default:
		return 0
	}
}

func encodeColorSpace(s DataColorSpace) uint32 {
	switch s {
	case SpaceXYZ:
		return 0x58595A20
	case SpaceLab:
		return 0x4C616220
	case SpaceRgb:
		return 0x52474220
	case SpaceGray:
		return 0x47524159
	case SpaceCmyk:
		return 0x434D594B
	case SpaceColor3:
		return 0x33434C52
	case SpaceColor4:
		return 0x34434C52
	default:
		return 0
	}
}

func encodeRenderingIntent(r RenderingIntent) uint32 {
	switch r {
	case RelativeColorimetric:
		return 1
	case Saturation:
		return 2
	case AbsoluteColorimetric:
		return 3
	default:
		return 0
	}
}
