package stm

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

// GainSTMMode selects how densely a GainSTM pattern's Drive values are
// packed (§4.6).
type GainSTMMode uint8

const (
	PhaseIntensityFull GainSTMMode = iota
	PhaseFull
	PhaseHalf
)

// patternsPerFrame returns how many sub-patterns a single frame's
// SEND_BIT0/1 field can carry for this mode, once the first pattern's
// per-device size is known.
func (m GainSTMMode) patternsPerFrame() int {
	switch m {
	case PhaseFull:
		return 2
	case PhaseHalf:
		return 4
	default:
		return 1
	}
}

const (
	gsFlagBegin      = 1 << 0
	gsFlagEnd        = 1 << 1
	gsFlagTransition = 1 << 2
	gsFlagSegment    = 1 << 3

	gsHeaderSize = 1 + 1 + 2 + 2 + 1 + 1 + 1 + 8
)

// GainSTMPattern is one step's per-transducer Drive array for a single
// device, computed by the caller from a Gain-like calculator.
type GainSTMPattern []fpga.Drive

// GainSTM is a datagram.Datagram cycling a device's transducers through
// Patterns, encoded according to Mode.
type GainSTM struct {
	Patterns       func(dev geometry.Device) []GainSTMPattern
	Mode           GainSTMMode
	SamplingConfig ecat.SamplingConfig
	Loop           fpga.LoopBehavior
	Segment        fpga.Segment
	TransitionMode fpga.TransitionMode
	BufSize        int // K: number of patterns, validated against lim.GainSTMBufSizeMax
}

func (s GainSTM) OperationGenerator(_ geometry.Geometry, _ environment.Environment, mask geometry.DeviceMask, lim limits.FirmwareLimits) (datagram.Generator, datagram.Option, error) {
	if s.BufSize < 2 || uint32(s.BufSize) > lim.GainSTMBufSizeMax {
		return nil, datagram.Option{}, fmt.Errorf("%w: K=%d not in [2, %d]", driverr.ErrGainSTMBufSizeOutOfRange, s.BufSize, lim.GainSTMBufSizeMax)
	}

	return datagram.GeneratorFunc(func(dev geometry.Device) (operation.Pair, bool) {
		if !mask.IsEnabled(dev.Idx) {
			return operation.Pair{}, false
		}
		patterns := s.Patterns(dev)
		if len(patterns) != s.BufSize {
			return operation.Pair{}, false
		}
		records := make([][]byte, len(patterns))
		for i, p := range patterns {
			records[i] = encodeGainPattern(s.Mode, p)
		}
		return operation.Pair{Op1: newGainSTMOp(s, records), Op2: operation.NullOp{}}, true
	}), datagram.DefaultOption, nil
}

func encodeGainPattern(mode GainSTMMode, p GainSTMPattern) []byte {
	switch mode {
	case PhaseFull:
		body := make([]byte, (len(p)+1)/2)
		for i, d := range p {
			if i%2 == 0 {
				body[i/2] = byte(d.Phase)
			} else {
				body[i/2] |= byte(d.Phase) << 4
			}
		}
		return body
	case PhaseHalf:
		body := make([]byte, (len(p)+1)/2)
		for i, d := range p {
			nibble := byte(d.Phase) >> 4
			body[i/2] |= nibble << (uint(i%2) * 4)
		}
		return body
	default:
		body := make([]byte, 2*len(p))
		for i, d := range p {
			d.PutBytes(body[2*i:])
		}
		return body
	}
}

type gainSTMOp struct {
	s       GainSTM
	records [][]byte
	sent    int
	done    bool
}

func newGainSTMOp(s GainSTM, records [][]byte) *gainSTMOp {
	return &gainSTMOp{s: s, records: records}
}

func (o *gainSTMOp) perFrame() int { return o.s.Mode.patternsPerFrame() }

func (o *gainSTMOp) RequiredSize(geometry.Device) int {
	if o.done {
		return 0
	}
	remaining := len(o.records) - o.sent
	n := min(remaining, o.perFrame())
	size := n * len(o.records[o.sent])
	if o.sent == 0 {
		return gsHeaderSize + size
	}
	return size
}

func (o *gainSTMOp) Pack(_ geometry.Device, buf []byte) (int, error) {
	if o.done {
		return 0, nil
	}

	first := o.sent == 0
	remaining := len(o.records) - o.sent
	n := min(remaining, o.perFrame())

	off := 0
	if first {
		flag := byte(gsFlagBegin)
		if n == remaining {
			flag |= gsFlagEnd
		}
		if o.s.TransitionMode != fpga.None() {
			flag |= gsFlagTransition
		}
		if o.s.Segment == fpga.SegmentS1 {
			flag |= gsFlagSegment
		}
		// SEND_BIT0/1 encode how many sub-patterns this frame carries,
		// within [1, patternsPerFrame()], stored as n-1 so that 4 fits.
		flag |= byte((n-1)&0x3) << 6

		buf[0] = byte(wire.TagGainSTM)
		buf[1] = flag
		wire.PutUint16(buf, 2, o.s.SamplingConfig.Divisor())
		wire.PutUint16(buf, 4, o.s.Loop.Rep())
		buf[6] = byte(o.s.Mode)
		buf[7] = byte(o.s.Segment)
		buf[8] = o.s.TransitionMode.Mode
		wire.PutUint64(buf, 9, o.s.TransitionMode.Value)
		off = gsHeaderSize
	}

	for i := 0; i < n; i++ {
		copy(buf[off:], o.records[o.sent+i])
		off += len(o.records[o.sent+i])
	}

	o.sent += n
	if o.sent >= len(o.records) {
		o.done = true
	}
	return off, nil
}

func (o *gainSTMOp) IsDone() bool { return o.done }

