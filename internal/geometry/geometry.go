// Package geometry models the device → transducer hierarchy the rest of
// the driver addresses by index. It is deliberately geometry-free: no
// transducer position or orientation is modeled here, only the index/count
// bookkeeping every operation generator needs (§3, "Geometry-free device
// model").
package geometry

import "fmt"

// Transducer is identified by (deviceIdx, trIdx); trIdx ∈ [0, 249].
type Transducer struct {
	DeviceIdx int
	TrIdx     int
}

// Device is an enabled device with a stable index and transducer count,
// created once at link-open and immutable for the lifetime of a send.
type Device struct {
	Idx            int
	NumTransducers int
}

// MaxTransducersPerDevice is the firmware's per-device transducer bound.
const MaxTransducersPerDevice = 256

// NewDevice validates numTransducers ∈ [1, 256] before returning a Device.
func NewDevice(idx, numTransducers int) (Device, error) {
	if numTransducers < 1 || numTransducers > MaxTransducersPerDevice {
		return Device{}, fmt.Errorf("autd3: device %d has %d transducers, want [1, %d]", idx, numTransducers, MaxTransducersPerDevice)
	}
	return Device{Idx: idx, NumTransducers: numTransducers}, nil
}

// Transducers yields every Transducer belonging to d, in index order.
func (d Device) Transducers() []Transducer {
	ts := make([]Transducer, d.NumTransducers)
	for i := range ts {
		ts[i] = Transducer{DeviceIdx: d.Idx, TrIdx: i}
	}
	return ts
}

// Geometry is the ordered, immutable set of devices a send addresses.
type Geometry struct {
	devices []Device
}

// New builds a Geometry from devices, created once at link-open.
func New(devices []Device) Geometry {
	cp := make([]Device, len(devices))
	copy(cp, devices)
	return Geometry{devices: cp}
}

// NumDevices returns the number of devices in the geometry.
func (g Geometry) NumDevices() int { return len(g.devices) }

// Devices returns the geometry's devices in index order.
func (g Geometry) Devices() []Device {
	return g.devices
}

// Device returns the device at idx.
func (g Geometry) Device(idx int) (Device, bool) {
	if idx < 0 || idx >= len(g.devices) {
		return Device{}, false
	}
	return g.devices[idx], true
}

// DeviceMask selects a subset of a Geometry's devices, e.g. to exclude
// devices a Datagram does not address.
type DeviceMask struct {
	enabled []bool
}

// NewDeviceMask returns a mask with every device enabled.
func NewDeviceMask(g Geometry) DeviceMask {
	enabled := make([]bool, g.NumDevices())
	for i := range enabled {
		enabled[i] = true
	}
	return DeviceMask{enabled: enabled}
}

// Disable excludes device idx from the mask.
func (m *DeviceMask) Disable(idx int) {
	if idx >= 0 && idx < len(m.enabled) {
		m.enabled[idx] = false
	}
}

// IsEnabled reports whether device idx is enabled.
func (m DeviceMask) IsEnabled(idx int) bool {
	if idx < 0 || idx >= len(m.enabled) {
		return false
	}
	return m.enabled[idx]
}

// TransducerMask selects a subset of a single device's transducers.
type TransducerMask struct {
	enabled []bool
}

// NewTransducerMask returns a mask with every transducer of d enabled.
func NewTransducerMask(d Device) TransducerMask {
	enabled := make([]bool, d.NumTransducers)
	for i := range enabled {
		enabled[i] = true
	}
	return TransducerMask{enabled: enabled}
}

// IsEnabled reports whether transducer trIdx is enabled.
func (m TransducerMask) IsEnabled(trIdx int) bool {
	if trIdx < 0 || trIdx >= len(m.enabled) {
		return false
	}
	return m.enabled[trIdx]
}
