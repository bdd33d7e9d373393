// Package fpga holds the host-observable value types the FPGA's register
// layout is built from: Phase, Intensity, PulseWidth, Drive, LoopBehavior,
// Segment and TransitionMode (§3), plus the pulse-width encoder table (§4.8).
package fpga

import "math"

// Phase quantizes one full revolution of the 40kHz carrier into 256 steps,
// with wrapping arithmetic (§3).
type Phase uint8

// PhaseZero and PhasePI are the named phase constants (§3).
const (
	PhaseZero Phase = 0
	PhasePI   Phase = 0x80
)

// FromRadian converts an angle in radians to the nearest Phase, wrapping mod
// 256 (§3: round(a/(2π)·256) mod 256).
func FromRadian(a float64) Phase {
	v := int32(math.Round(a / (2 * math.Pi) * 256))
	return Phase(uint8(v & 0xFF))
}

// FromComplex converts a complex phasor to a Phase via its argument.
func FromComplex(z complex128) Phase {
	return FromRadian(math.Atan2(imag(z), real(z)))
}

// Radian returns the phase as an angle in [0, 2π).
func (p Phase) Radian() float64 {
	return float64(p) / 256.0 * 2.0 * math.Pi
}

// Add performs wrapping addition.
func (p Phase) Add(q Phase) Phase { return Phase(uint8(p) + uint8(q)) }

// Sub performs wrapping subtraction.
func (p Phase) Sub(q Phase) Phase { return Phase(uint8(p) - uint8(q)) }

// Mul performs wrapping multiplication by a scalar.
func (p Phase) Mul(k uint8) Phase { return Phase(uint8(p) * k) }

// Div performs wrapping (truncating) division by a scalar.
func (p Phase) Div(k uint8) Phase { return Phase(uint8(p) / k) }
