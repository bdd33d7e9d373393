// Package environment holds the propagation medium the ultrasound carrier
// travels through: just the sound speed and its derived wavelength/
// wavenumber, plus a temperature-based helper (§3).
package environment

import "math"

const (
	ultrasoundFreqHz  = 40_000
	defaultSoundSpeed = 340.0 * 1000 // mm/s, matching the firmware's internal millimetre units
)

// Environment carries the propagation medium's sound speed.
type Environment struct {
	SoundSpeed float32
}

// New returns an Environment at the default sound speed (340 m/s).
func New() Environment {
	return Environment{SoundSpeed: defaultSoundSpeed}
}

// Wavelength returns the ultrasound wavelength in the environment's units.
func (e Environment) Wavelength() float32 {
	return e.SoundSpeed / ultrasoundFreqHz
}

// Wavenumber returns 2π·f/c.
func (e Environment) Wavenumber() float32 {
	return float32(2*math.Pi*ultrasoundFreqHz) / e.SoundSpeed
}

// SetSoundSpeedFromTemp sets the sound speed from temperature t (°C) using
// the default heat capacity ratio, gas constant, and molar mass (§3).
func (e *Environment) SetSoundSpeedFromTemp(t float32) {
	e.SetSoundSpeedFromTempWith(t, 1.4, 8.3145, 0.0289647)
}

// SetSoundSpeedFromTempWith sets the sound speed from temperature t (°C),
// heat capacity ratio k, gas constant r, and molar mass m (kg/mol):
// c = sqrt(k·r·(273.15+t)/m) (§3).
func (e *Environment) SetSoundSpeedFromTempWith(t, k, r, m float32) {
	e.SoundSpeed = float32(math.Sqrt(float64(k*r*(273.15+t)/m))) * 1000
}
