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

// TransformOptions configures how CreateTransform* builds a
// transform. The zero value is a usable default: Perceptual intent, no
// CICP preference, float backend, tetrahedral interpolation, 256-bin
// barycentric weights, no logging.
type TransformOptions struct {
	// RenderingIntent selects which LUT warehouse to read.
	RenderingIntent RenderingIntent

	// AllowUseCICPTransfer prefers a profile's CICP transfer function
	// over its embedded TRC, when both are present and usable.
	AllowUseCICPTransfer bool

	// PreferFixedPoint gates Q1.15 backend selection; ignored when the
	// destination bit depth is 15 or greater.
	PreferFixedPoint bool

	// InterpolationMethod selects the CLUT geometry.
	InterpolationMethod InterpolationMethod

	// BarycentricWeightScale selects 256 vs 65536 input quantization bins.
	BarycentricWeightScale BarycentricWeightScale

	// GamutClipMethod selects the out-of-gamut clipping strategy applied
	// on the final device-side matrix-to-gamma stage.
	GamutClipMethod GamutClipMethod

	// Logger receives construction-time structured diagnostics (plan
	// selection, table sizes, backend choice). Never touched on the
	// per-sample execution path. A nil Logger behaves as zap.NewNop().
	Logger *zap.Logger
}

// logger returns opts.Logger, or a no-op logger if opts is nil or
// opts.Logger is unset.
func (o *TransformOptions) logger() *zap.Logger {
	if o == nil || o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// normalizedOptions returns a copy of opts (or a zero-value TransformOptions if
// opts is nil) ready for planning.
func normalizedOptions(opts *TransformOptions) TransformOptions {
	if opts == nil {
		return TransformOptions{}
	}
	return *opts
}
