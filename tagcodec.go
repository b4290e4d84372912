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

// decodeXYZType decodes an 'XYZ ' (XYZType) tag body holding a single XYZ
// triplet, the shape used by rXYZ/gXYZ/bXYZ/wtpt tags.
func decodeXYZType(data []byte) (Xyz, error) {
	if err := checkType(data, "XYZ "); err != nil {
		return Xyz{}, errors.Wrap(err, "decoding XYZType")
	}
	if len(data) < 8+12 {
		return Xyz{}, errors.New("XYZType body truncated")
	}
	body := data[8:]
	return Xyz{
		X: float32(s15Fixed16ToFloat(int32(binary.BigEndian.Uint32(body[0:4])))),
		Y: float32(s15Fixed16ToFloat(int32(binary.BigEndian.Uint32(body[4:8])))),
		Z: float32(s15Fixed16ToFloat(int32(binary.BigEndian.Uint32(body[8:12])))),
	}, nil
}

// decodeS15Fixed16Matrix3 decodes an 's15Fixed16ArrayType' tag holding at
// least 9 entries into a row-major Matrix3, the shape of a 'chad' tag.
func decodeS15Fixed16Matrix3(data []byte) (Matrix3, error) {
	if err := checkType(data, "sf32"); err != nil {
		return Matrix3{}, errors.Wrap(err, "decoding s15Fixed16ArrayType")
	}
	body := data[8:]
	if len(body) < 36 {
		return Matrix3{}, errors.New("s15Fixed16ArrayType too short for a 3x3 matrix")
	}
	var m Matrix3
	for i := 0; i < 9; i++ {
		v := s15Fixed16ToFloat(int32(binary.BigEndian.Uint32(body[4*i : 4*i+4])))
		m[i/3][i%3] = float32(v)
	}
	return m, nil
}

// decodeCICPTag decodes a 'cicp' tag body into a CICPTriple.
func decodeCICPTag(data []byte) (CICPTriple, error) {
	if err := checkType(data, "cicp"); err != nil {
		return CICPTriple{}, errors.Wrap(err, "decoding cicp tag")
	}
	if len(data) < 12 {
		return CICPTriple{}, errors.New("cicp tag body truncated")
	}
	body := data[8:]
	return CICPTriple{
		Primaries: ColorPrimaries(body[0]),
		Transfer:  TransferCharacteristics(body[1]),
		Matrix:    MatrixCoefficients(body[2]),
		FullRange: body[3] != 0,
	}, nil
}

// decodeCurveType decodes a 'curv' (curveType) or 'para'
// (parametricCurveType) tag body into a ToneCurve.
func decodeCurveType(data []byte) (*ToneCurve, error) {
	if len(data) < 8 {
		return nil, errors.New("curve tag body truncated")
	}
	typeSig := string(data[:4])
	switch typeSig {
	case "curv":
		count := binary.BigEndian.Uint32(data[8:12])
		if count == 0 {
			id := IdentityCurve
			return &id, nil
		}
		if count == 1 {
			if len(data) < 14 {
				return nil, errors.New("curveType gamma entry truncated")
			}
			gamma := binary.BigEndian.Uint16(data[12:14])
			return NewLutCurve([]uint16{gamma}), nil
		}
		samples := make([]uint16, count)
		off := 12
		for i := range samples {
			if off+2 > len(data) {
				return nil, errors.Errorf("curveType sample %d truncated", i)
			}
			samples[i] = binary.BigEndian.Uint16(data[off : off+2])
			off += 2
		}
		return NewLutCurve(samples), nil
	case "para":
		if len(data) < 12 {
			return nil, errors.New("parametricCurveType header truncated")
		}
		funcType := binary.BigEndian.Uint16(data[8:10])
		nParams := map[uint16]int{0: 1, 1: 3, 2: 4, 3: 5, 4: 7}[funcType]
		if nParams == 0 {
			return nil, newErr(InvalidTrcCurve, "unrecognized parametric curve function type %d", funcType)
		}
		off := 12
		params := make([]float64, nParams)
		for i := range params {
			if off+4 > len(data) {
				return nil, errors.New("parametricCurveType parameters truncated")
			}
			params[i] = s15Fixed16ToFloat(int32(binary.BigEndian.Uint32(data[off : off+4])))
			off += 4
		}
		return NewParametricCurveForm(params)
	default:
		return nil, errors.Errorf("unsupported curve tag type %q", typeSig)
	}
}

// decodeLutTag dispatches to the lut8Type/lut16Type or mAB/mBA decoder by
// the tag's own type signature.
func decodeLutTag(data []byte, dir LutDirection) (*Lut, error) {
	if len(data) < 4 {
		return nil, errors.New("lut tag body truncated")
	}
	switch string(data[:4]) {
	case "mft1":
		return decodeClassicLut(data, dir, Lut8)
	case "mft2":
		return decodeClassicLut(data, dir, Lut16)
	case "mAB ", "mBA ":
		return decodeMCurvesLut(data, dir)
	default:
		return nil, errors.Errorf("unsupported lut tag type %q", string(data[:4]))
	}
}

// decodeClassicLut decodes an 'mft1'/'mft2' (lut8Type/lut16Type) tag body.
// Layout: 8-byte header, numIn/numOut/gridSize (1 byte each) + padding,
// a 3x3 matrix of s15Fixed16, numInputTableEntries (lut16 only, u16),
// then input tables, CLUT, output tables.
func decodeClassicLut(data []byte, dir LutDirection, kind LutKind) (*Lut, error) {
	if len(data) < 48 {
		return nil, errors.New("classic lut header truncated")
	}
	numIn := int(data[8])
	numOut := int(data[9])
	grid := int(data[10])
	if numIn != 3 && numIn != 4 {
		return nil, newErr(InvalidLayout, "unsupported classic lut input channel count %d", numIn)
	}
	if numOut != 3 {
		return nil, newErr(InvalidLayout, "unsupported classic lut output channel count %d", numOut)
	}

	var m Matrix3
	off := 12
	for i := 0; i < 9; i++ {
		v := s15Fixed16ToFloat(int32(binary.BigEndian.Uint32(data[off : off+4])))
		m[i/3][i%3] = float32(v)
		off += 4
	}

	inputEntries, outputEntries := 256, 256
	if kind == Lut16 {
		inputEntries = int(binary.BigEndian.Uint16(data[off : off+2]))
		outputEntries = int(binary.BigEndian.Uint16(data[off+2 : off+4]))
		off += 4
	}

	bytesPerSample := 1
	if kind == Lut16 {
		bytesPerSample = 2
	}

	inputTables := make([]*ToneCurve, numIn)
	for c := 0; c < numIn; c++ {
		samples := make([]uint16, inputEntries)
		for i := 0; i < inputEntries; i++ {
			samples[i] = readSample(data, off, bytesPerSample)
			off += bytesPerSample
		}
		inputTables[c] = NewLutCurve(samples)
	}

	clutPoints := 1
	for i := 0; i < numIn; i++ {
		clutPoints *= grid
	}
	clutSamples := make([]Vec3, clutPoints)
	for i := 0; i < clutPoints; i++ {
		var v Vec3
		for c := 0; c < 3; c++ {
			raw := readSample(data, off, bytesPerSample)
			off += bytesPerSample
			if kind == Lut8 {
				v[c] = float32(raw) / 255
			} else {
				v[c] = float32(raw) / 65535
			}
		}
		clutSamples[i] = v
	}

	outputTables := make([]*ToneCurve, numOut)
	for c := 0; c < numOut; c++ {
		samples := make([]uint16, outputEntries)
		for i := 0; i < outputEntries; i++ {
			samples[i] = readSample(data, off, bytesPerSample)
			off += bytesPerSample
		}
		outputTables[c] = NewLutCurve(samples)
	}

	l := &Lut{
		Shape:        shapeClassic,
		Direction:    dir,
		NumIn:        numIn,
		NumOut:       numOut,
		Grid:         grid,
		InputTables:  inputTables,
		OutputTables: outputTables,
		Matrix:       m,
		Kind:         kind,
	}
	if numIn == 3 {
		l.Clut3 = &Lattice3D{Grid: grid, Samples: clutSamples}
	} else {
		l.Clut4 = &Lattice4D{Grid: grid, GridPerAxis: [4]int{grid, grid, grid, grid}, Samples: clutSamples}
	}
	return l, nil
}

func readSample(data []byte, off, width int) uint16 {
	if width == 1 {
		return uint16(data[off])
	}
	return binary.BigEndian.Uint16(data[off : off+2])
}

// decodeMCurvesLut decodes an 'mAB '/'mBA ' multi-process-element tag
// body: a chain of offsets to curve sets, a CLUT, and a matrix+bias.
func decodeMCurvesLut(data []byte, dir LutDirection) (*Lut, error) {
	if len(data) < 32 {
		return nil, errors.New("mAB/mBA header truncated")
	}
	numIn := int(data[8])
	numOut := int(data[9])

	offB := binary.BigEndian.Uint32(data[12:16])
	offMatrix := binary.BigEndian.Uint32(data[16:20])
	offM := binary.BigEndian.Uint32(data[20:24])
	offCLUT := binary.BigEndian.Uint32(data[24:28])
	offA := binary.BigEndian.Uint32(data[28:32])

	l := &Lut{Shape: shapeMCurves, Direction: dir, NumIn: numIn, NumOut: numOut}

	var err error
	if offB != 0 {
		if l.BCurves, err = decodeCurveSetAt(data, offB, numOut); err != nil {
			return nil, errors.Wrap(err, "decoding b_curves")
		}
	}
	if offA != 0 {
		if l.ACurves, err = decodeCurveSetAt(data, offA, numIn); err != nil {
			return nil, errors.Wrap(err, "decoding a_curves")
		}
	}
	if offM != 0 {
		if l.MCurvesSet, err = decodeCurveSetAt(data, offM, numOut); err != nil {
			return nil, errors.Wrap(err, "decoding m_curves")
		}
	}
	if offMatrix != 0 {
		m, bias, err := decodeMatrixAndBias(data, offMatrix)
		if err != nil {
			return nil, errors.Wrap(err, "decoding matrix+bias")
		}
		l.MMatrix, l.MBias = m, bias
	} else {
		l.MMatrix = IdentityMatrix3
	}
	if offCLUT != 0 {
		grid, samples, err := decodeCLUTAt(data, offCLUT, numIn)
		if err != nil {
			return nil, errors.Wrap(err, "decoding clut")
		}
		for i := range grid {
			l.GridPerAxis[i] = grid[i]
		}
		if numIn == 3 {
			l.Clut3 = &Lattice3D{Grid: grid[0], Samples: samples}
		} else {
			var axes [4]int
			copy(axes[:], grid)
			l.Clut4 = &Lattice4D{GridPerAxis: axes, Samples: samples}
		}
	}
	return l, nil
}

// decodeCurveSetAt decodes `count` consecutive curveType/parametricCurveType
// tags starting at byte offset off, each individually 4-byte aligned.
func decodeCurveSetAt(data []byte, off uint32, count int) ([]*ToneCurve, error) {
	curves := make([]*ToneCurve, count)
	pos := int(off)
	for i := 0; i < count; i++ {
		if pos+12 > len(data) {
			return nil, errors.Errorf("curve %d out of range", i)
		}
		size, err := curveTagSize(data[pos:])
		if err != nil {
			return nil, err
		}
		c, err := decodeCurveType(data[pos : pos+size])
		if err != nil {
			return nil, errors.Wrapf(err, "curve %d", i)
		}
		curves[i] = c
		pos += align4(size)
	}
	return curves, nil
}

// curveTagSize computes the byte length of one curveType/parametricCurveType
// record so decodeCurveSetAt can advance past it.
func curveTagSize(data []byte) (int, error) {
	switch string(data[:4]) {
	case "curv":
		count := int(binary.BigEndian.Uint32(data[8:12]))
		if count <= 1 {
			return 14, nil
		}
		return 12 + 2*count, nil
	case "para":
		funcType := binary.BigEndian.Uint16(data[8:10])
		n := map[uint16]int{0: 1, 1: 3, 2: 4, 3: 5, 4: 7}[funcType]
		return 12 + 4*n, nil
	default:
		return 0, errors.Errorf("unsupported curve tag type %q", string(data[:4]))
	}
}

// decodeMatrixAndBias decodes the 3x3 matrix + 3-vector bias block used by
// mAB/mBA tags, stored as 12 consecutive s15Fixed16 entries.
func decodeMatrixAndBias(data []byte, off uint32) (Matrix3, Vec3, error) {
	pos := int(off)
	if pos+48 > len(data) {
		return Matrix3{}, Vec3{}, errors.New("matrix+bias block truncated")
	}
	var m Matrix3
	for i := 0; i < 9; i++ {
		v := s15Fixed16ToFloat(int32(binary.BigEndian.Uint32(data[pos+4*i : pos+4*i+4])))
		m[i/3][i%3] = float32(v)
	}
	var bias Vec3
	for i := 0; i < 3; i++ {
		v := s15Fixed16ToFloat(int32(binary.BigEndian.Uint32(data[pos+36+4*i : pos+36+4*i+4])))
		bias[i] = float32(v)
	}
	return m, bias, nil
}

// decodeCLUTAt decodes the CLUT block of an mAB/mBA tag: per-axis grid
// sizes, a sample precision byte (1 or 2), then the flattened sample data.
func decodeCLUTAt(data []byte, off uint32, numIn int) ([]int, []Vec3, error) {
	pos := int(off)
	if pos+20 > len(data) {
		return nil, nil, errors.New("clut block header truncated")
	}
	grid := make([]int, numIn)
	for i := 0; i < numIn; i++ {
		grid[i] = int(data[pos+i])
	}
	precision := int(data[pos+16])
	bodyOff := pos + 20

	n := 1
	for _, g := range grid {
		n *= g
	}
	samples := make([]Vec3, n)
	width := precision
	if width != 1 && width != 2 {
		return nil, nil, errors.Errorf("unsupported clut precision %d", precision)
	}
	for i := 0; i < n; i++ {
		var v Vec3
		for c := 0; c < 3; c++ {
			raw := readSample(data, bodyOff, width)
			bodyOff += width
			if width == 1 {
				v[c] = float32(raw) / 255
			} else {
				v[c] = float32(raw) / 65535
			}
		}
		samples[i] = v
	}
	return grid, samples, nil
}
