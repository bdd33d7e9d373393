package ecat

import (
	"fmt"
	"time"

	"github.com/shinolab/autd3-go/internal/driverr"
)

// UltrasoundFreqHz and UltrasoundPeriod are the fixed carrier constants
// driving every SamplingConfig divisor (§6).
const (
	UltrasoundFreqHz = 40_000
	UltrasoundPeriod = 25 * time.Microsecond
)

// SamplingConfig is a divisor of the 40kHz base clock: freq_hz = 40000/d
// (§3). d is always nonzero by construction.
type SamplingConfig struct {
	divisor uint16
}

// FromDivisor wraps a nonzero divisor directly.
func FromDivisor(d uint16) (SamplingConfig, error) {
	if d == 0 {
		return SamplingConfig{}, fmt.Errorf("%w: divisor must be nonzero", driverr.ErrInvalidSamplingConfig)
	}
	return SamplingConfig{divisor: d}, nil
}

// FromFreqHz builds a SamplingConfig from a target frequency; freqHz must
// evenly divide 40000.
func FromFreqHz(freqHz uint32) (SamplingConfig, error) {
	if freqHz == 0 || UltrasoundFreqHz%freqHz != 0 {
		return SamplingConfig{}, fmt.Errorf("%w: %d Hz does not divide %d Hz", driverr.ErrInvalidSamplingConfig, freqHz, UltrasoundFreqHz)
	}
	d := UltrasoundFreqHz / freqHz
	if d > 0xFFFF {
		return SamplingConfig{}, fmt.Errorf("%w: divisor %d out of range", driverr.ErrInvalidSamplingConfig, d)
	}
	return SamplingConfig{divisor: uint16(d)}, nil
}

// FromPeriod builds a SamplingConfig from a sampling period; it must be a
// multiple of the base 25µs period.
func FromPeriod(period time.Duration) (SamplingConfig, error) {
	if period <= 0 || period%UltrasoundPeriod != 0 {
		return SamplingConfig{}, fmt.Errorf("%w: period %s is not a multiple of %s", driverr.ErrInvalidSamplingConfig, period, UltrasoundPeriod)
	}
	d := period / UltrasoundPeriod
	if d > 0xFFFF {
		return SamplingConfig{}, fmt.Errorf("%w: divisor %d out of range", driverr.ErrInvalidSamplingConfig, d)
	}
	return SamplingConfig{divisor: uint16(d)}, nil
}

// Divisor returns the wire-encoded divisor (§4.4: transmitted as a u16).
func (c SamplingConfig) Divisor() uint16 { return c.divisor }

// FreqHz returns the resulting sampling frequency in Hz.
func (c SamplingConfig) FreqHz() float64 {
	return float64(UltrasoundFreqHz) / float64(c.divisor)
}

// Period returns the resulting sampling period.
func (c SamplingConfig) Period() time.Duration {
	return UltrasoundPeriod * time.Duration(c.divisor)
}
