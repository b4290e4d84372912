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

import "fmt"

// Version is an ICC profile version number, encoded in the binary header
// as a single BCD-ish byte pair (major.minor.bugfix).
type Version struct {
	Major, Minor, Bugfix uint8
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Bugfix)
}

// RawProfile is the populated-but-uninterpreted result of parsing an ICC
// binary profile: tag discovery and big-endian decode, the excluded
// "ICC binary file parsing" collaborator's output. BuildProfile turns a
// RawProfile into the structured Profile this package's transforms
// actually consume.
type RawProfile struct {
	Size                uint32
	PreferredCMMType    uint32
	Version             Version
	ProfileClass        ProfileClass
	ColorSpace          DataColorSpace
	PCS                 DataColorSpace
	CreationDate        [12]byte // encoded dateTimeNumber, decoded lazily
	Signature           uint32   // always 'acsp'
	Platform            uint32
	Flags               uint32
	DeviceManufacturer  uint32
	DeviceModel         uint32
	DeviceAttributes    uint64
	RenderingIntent     RenderingIntent
	PCSIlluminant       Xyz
	Creator             uint32
	ProfileID           [16]byte

	// TagTable maps each tag's signature to its raw (type-prefixed)
	// byte payload, as found in the profile's tag table.
	TagTable map[TagSignature][]byte
}

// Tag looks up a tag's raw payload by signature.
func (p *RawProfile) Tag(sig TagSignature) ([]byte, bool) {
	if p.TagTable == nil {
		return nil, false
	}
	data, ok := p.TagTable[sig]
	return data, ok
}
