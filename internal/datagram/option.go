// Package datagram implements the control-plane Datagrams (§4.8–§4.10,
// §4.1's tag list minus Gain/Modulation/STM, which live in their own
// packages): Clear, Sync, Nop, ForceFan, ReadsFPGAState, the pulse-width
// encoder tables, PhaseCorrection, OutputMask, the GPIO debug/emulate/out
// datagrams, FirmwareVersion readback, Silencer, and the generic
// segment-swap datagram Gain/Modulation/STM reuse.
package datagram

import (
	"time"

	"github.com/shinolab/autd3-go/internal/environment"
	"github.com/shinolab/autd3-go/internal/geometry"
	"github.com/shinolab/autd3-go/internal/limits"
	"github.com/shinolab/autd3-go/internal/operation"
)

// Option publishes the per-send timeout and parallel-packing threshold a
// Datagram wants (§3).
type Option struct {
	Timeout           time.Duration
	ParallelThreshold int
}

// DefaultOption is used by Datagrams that have no special timing needs.
var DefaultOption = Option{Timeout: 200 * time.Millisecond, ParallelThreshold: 4}

// Generator builds the (Op1, Op2) pair a device will be sent, or reports
// that the device is excluded from this send by returning ok=false.
type Generator interface {
	Generate(dev geometry.Device) (pair operation.Pair, ok bool)
}

// GeneratorFunc adapts a function to a Generator.
type GeneratorFunc func(dev geometry.Device) (operation.Pair, bool)

func (f GeneratorFunc) Generate(dev geometry.Device) (operation.Pair, bool) { return f(dev) }

// Datagram owns a snapshot of user intent and, given the send's shared
// immutable context, yields a Generator plus its Option (§3).
type Datagram interface {
	OperationGenerator(g geometry.Geometry, env environment.Environment, mask geometry.DeviceMask, lim limits.FirmwareLimits) (Generator, Option, error)
}
