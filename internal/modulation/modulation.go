// Package modulation implements the Modulation datagram (§4.4): an
// amplitude envelope of M bytes, chunked across frames, sampled at a
// SamplingConfig divisor of the 40kHz base clock.
package modulation

import (
	"fmt"

	"github.com/shinolab/autd3-go/internal/datagram"
	"github.com/shinolab/autd3-go/internal/driverr"
	"github.com/shinolab/autd3-go/internal/ecat"
	"github.com/shinolab/autd3-go/internal/environment"
	"github.com/shinolab/autd3-go/internal/fpga"
	"github.com/shinolab/autd3-go/internal/geometry"
	"github.com/shinolab/autd3-go/internal/limits"
	"github.com/shinolab/autd3-go/internal/operation"
	"github.com/shinolab/autd3-go/internal/wire"
)

const (
	flagBegin      = 1 << 0
	flagEnd        = 1 << 1
	flagTransition = 1 << 2
	flagSegment    = 1 << 3

	headerSize = 1 + 1 + 1 + 2 + 2 + 1 + 8 // tag+flag+size+freq_div+rep+transition_mode+transition_value

	// maxChunkSize bounds every frame's payload chunk to what the wire's
	// size byte (a single u8) can represent.
	maxChunkSize = 255
)

// Modulation is a datagram.Datagram carrying an amplitude buffer of
// Buffer's length, one byte per FPGA sample tick.
type Modulation struct {
	Buffer         []byte
	SamplingConfig ecat.SamplingConfig
	Loop           fpga.LoopBehavior
	Segment        fpga.Segment
	TransitionMode fpga.TransitionMode
}

func (m Modulation) OperationGenerator(_ geometry.Geometry, _ environment.Environment, mask geometry.DeviceMask, lim limits.FirmwareLimits) (datagram.Generator, datagram.Option, error) {
	if len(m.Buffer) < 2 || uint32(len(m.Buffer)) > lim.ModBufSizeMax {
		return nil, datagram.Option{}, fmt.Errorf("%w: size %d not in [2, %d]", driverr.ErrModulationSizeOutOfRange, len(m.Buffer), lim.ModBufSizeMax)
	}

	tag := wire.TagModulationS0
	if m.Segment == fpga.SegmentS1 {
		tag = wire.TagModulationS1
	}

	return datagram.GeneratorFunc(func(dev geometry.Device) (operation.Pair, bool) {
		if !mask.IsEnabled(dev.Idx) {
			return operation.Pair{}, false
		}
		return operation.Pair{Op1: newOp(tag, m), Op2: operation.NullOp{}}, true
	}), datagram.DefaultOption, nil
}

type op struct {
	tag  wire.TypeTag
	m    Modulation
	sent int
	done bool
}

func newOp(tag wire.TypeTag, m Modulation) *op {
	return &op{tag: tag, m: m}
}

func (o *op) RequiredSize(geometry.Device) int {
	if o.done {
		return 0
	}
	remaining := len(o.m.Buffer) - o.sent
	if o.sent == 0 {
		return headerSize + min(remaining, maxChunkSize, wire.PayloadSize-headerSize)
	}
	return min(remaining, maxChunkSize, wire.PayloadSize)
}

func (o *op) Pack(_ geometry.Device, buf []byte) (int, error) {
	if o.done {
		return 0, nil
	}

	first := o.sent == 0
	remaining := len(o.m.Buffer) - o.sent

	if first {
		chunk := min(remaining, maxChunkSize, wire.PayloadSize-headerSize)
		flag := byte(flagBegin)
		if chunk == remaining {
			flag |= flagEnd
		}
		if o.m.TransitionMode != fpga.None() {
			flag |= flagTransition
		}
		if o.m.Segment == fpga.SegmentS1 {
			flag |= flagSegment
		}

		buf[0] = byte(o.tag)
		buf[1] = flag
		buf[2] = byte(chunk)
		wire.PutUint16(buf, 3, o.m.SamplingConfig.Divisor())
		wire.PutUint16(buf, 5, o.m.Loop.Rep())
		buf[7] = o.m.TransitionMode.Mode
		wire.PutUint64(buf, 8, o.m.TransitionMode.Value)
		copy(buf[headerSize:], o.m.Buffer[:chunk])

		o.sent += chunk
		if o.sent >= len(o.m.Buffer) {
			o.done = true
		}
		return headerSize + chunk, nil
	}

	chunk := min(remaining, maxChunkSize, wire.PayloadSize)
	copy(buf, o.m.Buffer[o.sent:o.sent+chunk])
	o.sent += chunk
	if o.sent >= len(o.m.Buffer) {
		o.done = true
	}
	return chunk, nil
}

func (o *op) IsDone() bool { return o.done }
