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

// Package icc builds and executes colour transforms between ICC device
// profiles: parsing the binary tag table of a profile into a structured
// Profile, planning a pipeline between a source and destination Profile,
// and compiling that plan into a reusable Executor over a chosen pixel
// encoding.
package icc

// CreateTransform8Bit builds a Plan between src and dst and wraps it in an
// Executor over 8-bit unsigned samples.
func CreateTransform8Bit(src *Profile, srcLayout Layout, dst *Profile, dstLayout Layout, opts *TransformOptions) (*Executor[uint8, uint8], error) {
	plan, err := BuildPlan(src, srcLayout, dst, dstLayout, opts)
	if err != nil {
		return nil, err
	}
	return NewExecutor[uint8, uint8](plan, srcLayout, dstLayout, 8, 8, opts)
}

// CreateTransform16Bit builds a Plan between src and dst and wraps it in an
// Executor over samples at the given integer bit depth (typically 10, 12,
// or 16), stored one uint16 per sample.
func CreateTransform16Bit(src *Profile, srcLayout Layout, dst *Profile, dstLayout Layout, bitDepth int, opts *TransformOptions) (*Executor[uint16, uint16], error) {
	plan, err := BuildPlan(src, srcLayout, dst, dstLayout, opts)
	if err != nil {
		return nil, err
	}
	return NewExecutor[uint16, uint16](plan, srcLayout, dstLayout, bitDepth, bitDepth, opts)
}

// CreateTransformF32 builds a Plan between src and dst and wraps it in an
// Executor over normalized [0,1] float32 samples.
func CreateTransformF32(src *Profile, srcLayout Layout, dst *Profile, dstLayout Layout, opts *TransformOptions) (*Executor[float32, float32], error) {
	plan, err := BuildPlan(src, srcLayout, dst, dstLayout, opts)
	if err != nil {
		return nil, err
	}
	return NewExecutor[float32, float32](plan, srcLayout, dstLayout, 0, 0, opts)
}

// CreateTransformF64 builds a Plan between src and dst and wraps it in an
// Executor over normalized [0,1] float64 samples.
func CreateTransformF64(src *Profile, srcLayout Layout, dst *Profile, dstLayout Layout, opts *TransformOptions) (*Executor[float64, float64], error) {
	plan, err := BuildPlan(src, srcLayout, dst, dstLayout, opts)
	if err != nil {
		return nil, err
	}
	return NewExecutor[float64, float64](plan, srcLayout, dstLayout, 0, 0, opts)
}
