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

// LocalizedUnicode is one language/country record of a multiLocalizedUnicodeType tag.
type LocalizedUnicode struct {
	Language string
	Country  string
	Text     string
}

// MultiLocalizedUnicode is the decoded content of an ICC 'mluc' tag.
type MultiLocalizedUnicode struct {
	Records []LocalizedUnicode
}

// String returns the first record's text, or "" if there are none.
func (m MultiLocalizedUnicode) String() string {
	if len(m.Records) == 0 {
		return ""
	}
	return m.Records[0].Text
}

// checkType verifies that data begins with the expected four-byte type
// signature, returning a wrapped error identifying both the wanted and
// found signatures on mismatch.
func checkType(data []byte, want string) error {
	if len(data) < 4 {
		return errors.Errorf("tag data too short to hold a type signature")
	}
	got := string(data[:4])
	if got != want {
		return errors.Errorf("expected tag type %q, got %q", want, got)
	}
	return nil
}

// DecodeMultiLocalizedUnicode decodes a 'mluc' (multiLocalizedUnicodeType)
// tag body, such as the content of a 'cprt' or 'desc' tag.
func DecodeMultiLocalizedUnicode(data []byte) (MultiLocalizedUnicode, error) {
	return decodeMLUC(data)
}

// decodeMLUC decodes a 'mluc' (multiLocalizedUnicodeType) tag body.
func decodeMLUC(data []byte) (MultiLocalizedUnicode, error) {
	if err := checkType(data, "mluc"); err != nil {
		return MultiLocalizedUnicode{}, errors.Wrap(err, "decoding multiLocalizedUnicodeType")
	}
	if len(data) < 16 {
		return MultiLocalizedUnicode{}, errors.New("multiLocalizedUnicodeType header truncated")
	}
	count := binary.BigEndian.Uint32(data[8:12])
	recordSize := binary.BigEndian.Uint32(data[12:16])

	var out MultiLocalizedUnicode
	for i := uint32(0); i < count; i++ {
		base := 16 + i*recordSize
		if int(base+12) > len(data) {
			return MultiLocalizedUnicode{}, errors.Errorf("multiLocalizedUnicodeType record %d truncated", i)
		}
		lang := string(data[base : base+2])
		country := string(data[base+2 : base+4])
		length := binary.BigEndian.Uint32(data[base+4 : base+8])
		offset := binary.BigEndian.Uint32(data[base+8 : base+12])
		if int(offset+length) > len(data) {
			return MultiLocalizedUnicode{}, errors.Errorf("multiLocalizedUnicodeType record %d text out of range", i)
		}
		text, err := decodeUTF16BE(data[offset : offset+length])
		if err != nil {
			return MultiLocalizedUnicode{}, errors.Wrapf(err, "decoding record %d text", i)
		}
		out.Records = append(out.Records, LocalizedUnicode{Language: lang, Country: country, Text: text})
	}
	return out, nil
}

// decodeUTF16BE decodes a big-endian UTF-16 byte string with no BOM, the
// encoding 'mluc' text records use.
func decodeUTF16BE(data []byte) (string, error) {
	if len(data)%2 != 0 {
		return "", errors.New("UTF-16 text has odd byte length")
	}
	units := make([]uint16, len(data)/2)
	for i := range units {
		units[i] = binary.BigEndian.Uint16(data[2*i : 2*i+2])
	}
	runes := make([]rune, 0, len(units))
	for i := 0; i < len(units); i++ {
		r := units[i]
		if r >= 0xD800 && r <= 0xDBFF && i+1 < len(units) {
			r2 := units[i+1]
			if r2 >= 0xDC00 && r2 <= 0xDFFF {
				i++
				combined := (rune(r-0xD800)<<10 | rune(r2-0xDC00)) + 0x10000
				runes = append(runes, combined)
				continue
			}
		}
		runes = append(runes, rune(r))
	}
	return string(runes), nil
}

// decodeText decodes a plain 'text' (textType) tag body: an ASCII
// NUL-terminated string after the 8-byte type/reserved header.
func decodeText(data []byte) (string, error) {
	if err := checkType(data, "text"); err != nil {
		return "", errors.Wrap(err, "decoding textType")
	}
	if len(data) < 8 {
		return "", errors.New("textType body truncated")
	}
	body := data[8:]
	for i, b := range body {
		if b == 0 {
			return string(body[:i]), nil
		}
	}
	return string(body), nil
}
