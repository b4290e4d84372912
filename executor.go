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

// Sample is the set of numeric encodings a buffer of pixel groups can carry.
// u8/u16 buffers hold normalized integer samples (0..2^bitDepth-1); f32/f64
// buffers hold samples in [0,1] directly.
type Sample interface {
	~uint8 | ~uint16 | ~float32 | ~float64
}

// Executor converts interleaved pixel buffers from a source Layout/encoding
// to a destination Layout/encoding through a compiled Plan. One Executor is
// built per (profile pair, layout pair, bit depth, options) combination and
// is safe for concurrent use: all of its state is read-only after
// construction.
type Executor[In, Out Sample] struct {
	plan         *Plan
	srcLayout    Layout
	dstLayout    Layout
	srcBitDepth  int
	dstBitDepth  int
	srcChannels  int // color channels the plan consumes (excludes alpha)
	dstChannels  int
	useQ15       bool
	log          *zap.Logger
}

// NewExecutor builds an Executor for the given plan, layouts, and bit
// depths. srcBitDepth/dstBitDepth are ignored for float encodings.
func NewExecutor[In, Out Sample](plan *Plan, srcLayout, dstLayout Layout, srcBitDepth, dstBitDepth int, opts *TransformOptions) (*Executor[In, Out], error) {
	if !srcLayout.valid() || !dstLayout.valid() {
		return nil, newErr(InvalidLayout, "unrecognized layout")
	}
	o := normalizedOptions(opts)
	e := &Executor[In, Out]{
		plan:        plan,
		srcLayout:   srcLayout,
		dstLayout:   dstLayout,
		srcBitDepth: srcBitDepth,
		dstBitDepth: dstBitDepth,
		srcChannels: colorChannels(srcLayout),
		dstChannels: colorChannels(dstLayout),
		useQ15:      o.PreferFixedPoint && dstBitDepth > 0 && dstBitDepth < 15,
		log:         o.logger(),
	}
	e.log.Debug("built executor",
		zap.Stringer("src_layout", srcLayout),
		zap.Stringer("dst_layout", dstLayout),
		zap.Int("src_bit_depth", srcBitDepth),
		zap.Int("dst_bit_depth", dstBitDepth),
		zap.Bool("use_q15", e.useQ15),
	)
	return e, nil
}

// colorChannels returns the number of non-alpha channels a layout carries.
func colorChannels(l Layout) int {
	if l.HasAlpha() {
		return l.Channels() - 1
	}
	return l.Channels()
}

// Transform converts src into dst, both laid out according to the
// Executor's configured layouts. len(src) must be a multiple of the source
// layout's channel count, and src/dst must describe the same number of
// pixel groups; violations fail with LaneMultipleOfChannels/LaneSizeMismatch.
func (e *Executor[In, Out]) Transform(src []In, dst []Out) error {
	srcStride := e.srcLayout.Channels()
	dstStride := e.dstLayout.Channels()
	if len(src)%srcStride != 0 {
		return newErr(LaneMultipleOfChannels, "source buffer length %d is not a multiple of %d channels", len(src), srcStride)
	}
	if len(dst)%dstStride != 0 {
		return newErr(LaneMultipleOfChannels, "destination buffer length %d is not a multiple of %d channels", len(dst), dstStride)
	}
	numSrcGroups := len(src) / srcStride
	numDstGroups := len(dst) / dstStride
	if numSrcGroups != numDstGroups {
		return newErr(LaneSizeMismatch, "source has %d pixel groups but destination has %d", numSrcGroups, numDstGroups)
	}

	useQ15 := e.useQ15 && e.plan.hasQ15Path()

	in := make([]float64, e.srcChannels)
	out := make([]float64, e.plan.outChannels())
	for g := 0; g < numSrcGroups; g++ {
		so := g * srcStride
		do := g * dstStride
		for c := 0; c < e.srcChannels; c++ {
			in[c] = e.decode(src[so+c])
		}

		var err error
		if useQ15 {
			err = e.plan.evaluateLutBackedQ15(in, out)
		} else {
			err = e.plan.evaluateInto(in, out)
		}
		if err != nil {
			return err
		}

		for c := 0; c < e.dstChannels; c++ {
			dst[do+c] = e.encode(out[c])
		}
		if e.dstLayout.HasAlpha() {
			var a float64 = 1
			if e.srcLayout.HasAlpha() {
				a = e.decode(src[so+srcStride-1])
			}
			dst[do+dstStride-1] = e.encode(a)
		}
	}
	return nil
}

// decode maps one input sample to a normalized [0,1] float64, scaling
// integer encodings by their bit depth.
func (e *Executor[In, Out]) decode(v In) float64 {
	switch x := any(v).(type) {
	case uint8:
		return float64(x) / 255
	case uint16:
		maxVal := float64((uint32(1) << uint(e.srcBitDepth)) - 1)
		return float64(x) / maxVal
	case float32:
		return float64(x)
	case float64:
		return x
	default:
		return 0
	}
}

// encode maps a normalized [0,1] float64 back to the output sample type,
// rounding and scaling integer encodings by their bit depth.
func (e *Executor[In, Out]) encode(x float64) Out {
	x = clampF64(x, 0, 1)
	var zero Out
	switch any(zero).(type) {
	case uint8:
		return any(uint8(roundHalfAwayFromZero(float32(x) * 255))).(Out)
	case uint16:
		maxVal := float32((uint32(1) << uint(e.dstBitDepth)) - 1)
		return any(uint16(roundHalfAwayFromZero(float32(x) * maxVal))).(Out)
	case float32:
		return any(float32(x)).(Out)
	case float64:
		return any(x).(Out)
	default:
		return zero
	}
}
