// Package icc builds and executes colour transforms between ICC device
// profiles. A Profile is a read-only, already-parsed container for a
// device's tone curves, colorant matrix, and lookup tables; a Transform
// compiles a (source, destination) pair of profiles into a reusable
// Executor that converts pixel buffers between their encodings.
//
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

// Code identifies the kind of failure behind an *Error. Construction-time
// failures (profile inspection, transform planning) and call-site failures
// (transform invocation) both use the same taxonomy so that callers can
// switch on Code regardless of which stage produced the error.
type Code int

const (
	_ Code = iota

	// Construction-time / planning errors.

	InvalidProfile             // profile data is structurally unusable
	InvalidRenderingIntent     // RenderingIntent is not one of the four standard values
	InvalidTrcCurve            // unrecognized parametric form, or a ≠ 0 form with a == 0
	BuildTransferFunction      // a profile is missing a TRC a plan requires
	UnsupportedProfileConnection // PCS mismatch, missing LUTs, unsupported colour space pairing
	UnsupportedLutRenderingIntent // the requested intent has no LUT; caller may retry with Perceptual
	InvalidLayout              // unrecognized Layout, or a LUT with an unsupported channel count
	InvalidAtoBLut             // MCurves LUT is missing its required b_curves
	CurveLutIsTooLarge         // a sampled TRC exceeds the table-size ceiling
	ParametricCurveZeroDivision // not returned by this package; a == 0 forms fail with InvalidTrcCurve
	DivisionByZero             // chromaticity conversion with zero Y

	// Call-site / runtime errors.

	LaneMultipleOfChannels // len(buf) is not a multiple of the layout's channel count
	LaneSizeMismatch       // src and dst don't carry the same number of pixel groups
)

func (c Code) String() string {
	switch c {
	case InvalidProfile:
		return "InvalidProfile"
	case InvalidRenderingIntent:
		return "InvalidRenderingIntent"
	case InvalidTrcCurve:
		return "InvalidTrcCurve"
	case BuildTransferFunction:
		return "BuildTransferFunction"
	case UnsupportedProfileConnection:
		return "UnsupportedProfileConnection"
	case UnsupportedLutRenderingIntent:
		return "UnsupportedLutRenderingIntent"
	case InvalidLayout:
		return "InvalidLayout"
	case InvalidAtoBLut:
		return "InvalidAtoBLut"
	case CurveLutIsTooLarge:
		return "CurveLutIsTooLarge"
	case ParametricCurveZeroDivision:
		return "ParametricCurveZeroDivision"
	case DivisionByZero:
		return "DivisionByZero"
	case LaneMultipleOfChannels:
		return "LaneMultipleOfChannels"
	case LaneSizeMismatch:
		return "LaneSizeMismatch"
	default:
		return fmt.Sprintf("Code(%d)", int(c))
	}
}

// Error is the error type returned by every construction-time and
// call-site failure in this package. Check its kind with errors.Is against
// the package-level Code sentinels (e.g. errors.Is(err, icc.LaneSizeMismatch)).
type Error struct {
	Code Code

	// Msg is a human-readable description of what went wrong.
	Msg string

	// Cause is the underlying error, if any (e.g. a tag-decode failure).
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("icc: %s: %s: %v", e.Code, e.Msg, e.Cause)
	}
	return fmt.Sprintf("icc: %s: %s", e.Code, e.Msg)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is lets errors.Is(err, SomeCode) work: a *Error matches a bare Code value
// when its own Code field is equal.
func (e *Error) Is(target error) bool {
	if c, ok := target.(Code); ok {
		return e.Code == c
	}
	return false
}

// newErr constructs an *Error with a formatted message and no wrapped cause.
func newErr(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// wrapErr constructs an *Error that wraps a lower-level cause (typically a
// github.com/pkg/errors-annotated tag-decode failure from read.go,
// tagcodec.go or types.go).
func wrapErr(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...), Cause: cause}
}

// Error makes Code satisfy the error interface, so a Code constant can be
// passed as the target of errors.Is; its message is the Code's name.
func (c Code) Error() string { return c.String() }
