package fpga

import (
	"fmt"
	"math"

	"github.com/shinolab/autd3-go/internal/driverr"
)

// PulseWidthStorage is the storage type a PulseWidth's bit width fits into:
// uint8 for an 8-bit pulse width (v10), uint16 for a 9-bit one (v11+).
type PulseWidthStorage interface {
	~uint8 | ~uint16
}

// PulseWidth[T] is a pulse width valid over [0, 2^Bits), stored as T. Bits is
// carried alongside the value rather than as a type parameter, since Go
// generics cannot parameterize over a numeric literal the way Rust's const
// generics do (§3).
type PulseWidth[T PulseWidthStorage] struct {
	Bits  uint
	value T
}

// NewPulseWidth validates pw against 2^bits and returns a PulseWidth.
func NewPulseWidth[T PulseWidthStorage](bits uint, pw T) (PulseWidth[T], error) {
	period := uint64(1) << bits
	if uint64(pw) >= period {
		return PulseWidth[T]{}, fmt.Errorf("%w: %d not in [0, %d)", driverr.ErrInvalidPulseWidth, pw, period)
	}
	return PulseWidth[T]{Bits: bits, value: pw}, nil
}

// FromDutyV11 builds a PulseWidth from a duty ratio in [0,1) (v11+ firmware,
// §3).
func FromDutyV11[T PulseWidthStorage](bits uint, duty float64) (PulseWidth[T], error) {
	if duty < 0 || duty >= 1 {
		return PulseWidth[T]{}, fmt.Errorf("%w: duty %v not in [0,1)", driverr.ErrInvalidPulseWidth, duty)
	}
	return fromDuty[T](bits, duty)
}

// FromDutyV10 builds a PulseWidth from a duty ratio in [0,1] (v10 firmware,
// which is inclusive of 1.0, §3).
func FromDutyV10[T PulseWidthStorage](bits uint, duty float64) (PulseWidth[T], error) {
	if duty < 0 || duty > 1 {
		return PulseWidth[T]{}, fmt.Errorf("%w: duty %v not in [0,1]", driverr.ErrInvalidPulseWidth, duty)
	}
	return fromDuty[T](bits, duty)
}

func fromDuty[T PulseWidthStorage](bits uint, duty float64) (PulseWidth[T], error) {
	period := uint64(1) << bits
	pw := uint64(math.Round(duty * float64(period)))
	// A duty ratio accepted at construction can still round up to an
	// out-of-range pulse width (e.g. v10's duty==1.0); that surfaces here
	// as ErrInvalidPulseWidth, distinct from a rejected duty ratio. The
	// check runs before the conversion to T, which would otherwise wrap.
	if pw >= period {
		return PulseWidth[T]{}, fmt.Errorf("%w: %d not in [0, %d)", driverr.ErrInvalidPulseWidth, pw, period)
	}
	return NewPulseWidth[T](bits, T(pw))
}

// Value returns the raw pulse-width count.
func (p PulseWidth[T]) Value() T { return p.value }

// DefaultTable computes the 256-entry intensity→pulse-width lookup:
// table[i] = round(2^bits · arcsin(i/255) / π), which linearizes acoustic
// pressure against commanded intensity (§4.8).
func DefaultTable[T PulseWidthStorage](bits uint) [256]T {
	var table [256]T
	period := float64(uint64(1) << bits)
	for i := 0; i < 256; i++ {
		v := math.Round(period * math.Asin(float64(i)/255.0) / math.Pi)
		table[i] = T(v)
	}
	return table
}
