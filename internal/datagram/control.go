package datagram

import (
	"github.com/shinolab/autd3-go/internal/environment"
	"github.com/shinolab/autd3-go/internal/fpga"
	"github.com/shinolab/autd3-go/internal/geometry"
	"github.com/shinolab/autd3-go/internal/limits"
	"github.com/shinolab/autd3-go/internal/operation"
	"github.com/shinolab/autd3-go/internal/wire"
)

// Clear resets every device's FPGA state to its power-on defaults.
type Clear struct{}

func (Clear) OperationGenerator(geometry.Geometry, environment.Environment, geometry.DeviceMask, limits.FirmwareLimits) (Generator, Option, error) {
	return perDevice(func(geometry.Device) operation.Operation {
		return newSimpleOp(wire.TagClear, nil)
	}), DefaultOption, nil
}

// Sync latches every enabled device's EtherCAT DC clock to a common epoch.
type Sync struct{}

func (Sync) OperationGenerator(geometry.Geometry, environment.Environment, geometry.DeviceMask, limits.FirmwareLimits) (Generator, Option, error) {
	return perDevice(func(geometry.Device) operation.Operation {
		return newSimpleOp(wire.TagSync, nil)
	}), DefaultOption, nil
}

// Nop packs nothing, purely to occupy a slot in a Tuple without side
// effects (e.g. pairing with a slot-1-only datagram).
type Nop struct{}

func (Nop) OperationGenerator(geometry.Geometry, environment.Environment, geometry.DeviceMask, limits.FirmwareLimits) (Generator, Option, error) {
	return perDevice(func(geometry.Device) operation.Operation {
		return operation.NullOp{}
	}), DefaultOption, nil
}

// ForceFan forces every device's cooling fan on or off, bypassing the
// firmware's thermal control loop.
type ForceFan struct {
	On bool
}

func (d ForceFan) OperationGenerator(geometry.Geometry, environment.Environment, geometry.DeviceMask, limits.FirmwareLimits) (Generator, Option, error) {
	var flag byte
	if d.On {
		flag = 1
	}
	return perDevice(func(geometry.Device) operation.Operation {
		return newSimpleOp(wire.TagForceFan, []byte{flag})
	}), DefaultOption, nil
}

// ReadsFPGAState toggles whether each device's next RxMessage.Data carries
// FPGA state bits instead of being reserved.
type ReadsFPGAState struct {
	Enabled bool
}

func (d ReadsFPGAState) OperationGenerator(geometry.Geometry, environment.Environment, geometry.DeviceMask, limits.FirmwareLimits) (Generator, Option, error) {
	var flag byte
	if d.Enabled {
		flag = 1
	}
	return perDevice(func(geometry.Device) operation.Operation {
		return newSimpleOp(wire.TagReadsFPGAState, []byte{flag})
	}), DefaultOption, nil
}

// PhaseCorrection applies a per-transducer phase offset, compensating for
// per-channel wiring/board delay.
type PhaseCorrection struct {
	// Correction maps a device index to that device's Phase offsets,
	// indexed by transducer; a device absent from the map, and any
	// transducer past the end of its slice, gets PhaseZero.
	Correction map[int][]fpga.Phase
}

func (d PhaseCorrection) OperationGenerator(geometry.Geometry, environment.Environment, geometry.DeviceMask, limits.FirmwareLimits) (Generator, Option, error) {
	return perDevice(func(dev geometry.Device) operation.Operation {
		corr := d.Correction[dev.Idx]
		body := make([]byte, dev.NumTransducers)
		for i := range body {
			if i < len(corr) {
				body[i] = byte(corr[i])
			}
		}
		return newSimpleOp(wire.TagPhaseCorrection, body)
	}), DefaultOption, nil
}

// OutputMask enables or disables individual transducers' output without
// clearing their Drive state (v12.1+, §4.11).
type OutputMask struct {
	Mask map[int]geometry.TransducerMask
}

func (d OutputMask) OperationGenerator(geometry.Geometry, environment.Environment, geometry.DeviceMask, limits.FirmwareLimits) (Generator, Option, error) {
	return perDevice(func(dev geometry.Device) operation.Operation {
		m, ok := d.Mask[dev.Idx]
		body := make([]byte, (dev.NumTransducers+7)/8)
		if ok {
			for i := 0; i < dev.NumTransducers; i++ {
				if m.IsEnabled(i) {
					body[i/8] |= 1 << uint(i%8)
				}
			}
		} else {
			for i := range body {
				body[i] = 0xFF
			}
		}
		return newSimpleOp(wire.TagOutputMask, body)
	}), DefaultOption, nil
}

// Debug uploads a GPIO-output-pin-to-debug-source mapping (also known as
// GPIOOutputs; the firmware tag is shared).
type Debug struct {
	// Sources holds one debug-source byte per GPIO output pin (4 pins).
	Sources [4]byte
}

func (d Debug) OperationGenerator(geometry.Geometry, environment.Environment, geometry.DeviceMask, limits.FirmwareLimits) (Generator, Option, error) {
	return perDevice(func(geometry.Device) operation.Operation {
		return newSimpleOp(wire.TagDebug, d.Sources[:])
	}), DefaultOption, nil
}

// EmulateGPIOIn injects a synthetic GPIO-input level for simulators/tests
// that can't wire a real signal.
type EmulateGPIOIn struct {
	Levels [4]bool
}

func (d EmulateGPIOIn) OperationGenerator(geometry.Geometry, environment.Environment, geometry.DeviceMask, limits.FirmwareLimits) (Generator, Option, error) {
	var flags byte
	for i, on := range d.Levels {
		if on {
			flags |= 1 << uint(i)
		}
	}
	return perDevice(func(geometry.Device) operation.Operation {
		return newSimpleOp(wire.TagEmulateGPIOIn, []byte{flags})
	}), DefaultOption, nil
}

// CpuGPIOOut drives the CPU-board GPIO output pins directly.
type CpuGPIOOut struct {
	Levels [4]bool
}

func (d CpuGPIOOut) OperationGenerator(geometry.Geometry, environment.Environment, geometry.DeviceMask, limits.FirmwareLimits) (Generator, Option, error) {
	var flags byte
	for i, on := range d.Levels {
		if on {
			flags |= 1 << uint(i)
		}
	}
	return perDevice(func(geometry.Device) operation.Operation {
		return newSimpleOp(wire.TagCpuGPIOOut, []byte{flags})
	}), DefaultOption, nil
}
