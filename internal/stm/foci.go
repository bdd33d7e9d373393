// Package stm implements the FociSTM and GainSTM datagrams (§4.5, §4.6):
// the fixed-point multi-focus encoder and the three GainSTM sub-pattern
// densities.
package stm

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"

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
	fociFlagBegin      = 1 << 0
	fociFlagEnd        = 1 << 1
	fociFlagTransition = 1 << 2

	fociHeaderSize = 1 + 1 + 1 + 2 + 2 + 2 + 1 + 1 + 1 + 8
)

// Pattern is one FociSTM step: up to FirmwareLimits.NumFociMax focal
// points, sharing one intensity when len(Foci) == 1 (v10/v11 wire shape),
// or one intensity/phase-offset per point when len(Foci) > 1 (v12+).
type Pattern struct {
	Foci      []r3.Vector
	Intensity fpga.Intensity
	// Offsets, when non-nil, carries one per-point phase offset per
	// focus (v12+, N > 1); ignored (and the shared Intensity used
	// instead) when N == 1, per the firmware's single-focus wire shape.
	Offsets []fpga.Phase
}

// FociSTM is a datagram.Datagram driving a device through Patterns in a
// loop, Loop-many times (or forever).
type FociSTM struct {
	Patterns       []Pattern
	SamplingConfig ecat.SamplingConfig
	Loop           fpga.LoopBehavior
	Segment        fpga.Segment
	TransitionMode fpga.TransitionMode
}

func (s FociSTM) OperationGenerator(_ geometry.Geometry, env environment.Environment, mask geometry.DeviceMask, lim limits.FirmwareLimits) (datagram.Generator, datagram.Option, error) {
	if len(s.Patterns) < 2 || uint32(len(s.Patterns)) > lim.FociSTMBufSizeMax {
		return nil, datagram.Option{}, fmt.Errorf("%w: size %d not in [2, %d]", driverr.ErrFociSTMBufSizeOutOfRange, len(s.Patterns), lim.FociSTMBufSizeMax)
	}

	records := make([][]byte, len(s.Patterns))
	numFoci := len(s.Patterns[0].Foci)
	for i, p := range s.Patterns {
		if len(p.Foci) == 0 || uint32(len(p.Foci)) > lim.NumFociMax {
			return nil, datagram.Option{}, fmt.Errorf("%w: pattern %d has %d foci, want [1, %d]", driverr.ErrFocusOutOfRange, i, len(p.Foci), lim.NumFociMax)
		}
		if len(p.Foci) != numFoci {
			return nil, datagram.Option{}, fmt.Errorf("%w: pattern %d has %d foci, pattern 0 has %d", driverr.ErrInvalidGainSTMMode, i, len(p.Foci), numFoci)
		}
		rec, err := encodePattern(p, lim)
		if err != nil {
			return nil, datagram.Option{}, err
		}
		records[i] = rec
	}

	soundSpeed := uint16(clampSoundSpeed(env.SoundSpeed))

	return datagram.GeneratorFunc(func(dev geometry.Device) (operation.Pair, bool) {
		if !mask.IsEnabled(dev.Idx) {
			return operation.Pair{}, false
		}
		return operation.Pair{Op1: newFociOp(s, records, numFoci, soundSpeed), Op2: operation.NullOp{}}, true
	}), datagram.DefaultOption, nil
}

// clampSoundSpeed rounds the environment's sound speed into the u16 the
// wire header transmits (§4.5: "the core clamps to u16").
func clampSoundSpeed(c float32) float64 {
	v := math.Round(float64(c))
	if v < 0 {
		return 0
	}
	if v > math.MaxUint16 {
		return math.MaxUint16
	}
	return v
}

// encodePattern packs one pattern's N foci into N 64-bit little-endian
// words (§4.5).
func encodePattern(p Pattern, lim limits.FirmwareLimits) ([]byte, error) {
	n := len(p.Foci)
	body := make([]byte, 8*n)

	for i, f := range p.Foci {
		x, err := clampAxis(f.X, lim.FociSTMLowerX(), lim.FociSTMUpperX(), lim.FociSTMFixedNumUnit)
		if err != nil {
			return nil, err
		}
		y, err := clampAxis(f.Y, lim.FociSTMLowerY(), lim.FociSTMUpperY(), lim.FociSTMFixedNumUnit)
		if err != nil {
			return nil, err
		}
		z, err := clampAxis(f.Z, lim.FociSTMLowerZ(), lim.FociSTMUpperZ(), lim.FociSTMFixedNumUnit)
		if err != nil {
			return nil, err
		}

		var iop uint64
		if n == 1 {
			iop = uint64(p.Intensity)
		} else if i < len(p.Offsets) {
			iop = uint64(p.Offsets[i])
		}

		word := (uint64(x) & 0x3FFFF) |
			(uint64(y)&0x3FFFF)<<18 |
			(uint64(z)&0x3FFFF)<<36 |
			(iop&0xFF)<<54

		wire.PutUint64(body, 8*i, word)
	}

	return body, nil
}

func clampAxis(v float32, lower, upper, unit float32) (int32, error) {
	if v < lower || v > upper {
		return 0, fmt.Errorf("%w: %g not in [%g, %g]", driverr.ErrFocusOutOfRange, v, lower, upper)
	}
	return int32(math.Round(float64(v / unit))), nil
}

type fociOp struct {
	s          FociSTM
	records    [][]byte
	numFoci    int
	soundSpeed uint16
	sent       int // number of patterns already packed
	done       bool
}

func newFociOp(s FociSTM, records [][]byte, numFoci int, soundSpeed uint16) *fociOp {
	return &fociOp{s: s, records: records, numFoci: numFoci, soundSpeed: soundSpeed}
}

func (o *fociOp) recordSize() int { return 8 * o.numFoci }

func (o *fociOp) RequiredSize(geometry.Device) int {
	if o.done {
		return 0
	}
	remaining := len(o.records) - o.sent
	if o.sent == 0 {
		maxFit := (wire.PayloadSize - fociHeaderSize) / o.recordSize()
		if maxFit < 1 {
			maxFit = 1
		}
		n := remaining
		if n > maxFit {
			n = maxFit
		}
		return fociHeaderSize + n*o.recordSize()
	}
	maxFit := wire.PayloadSize / o.recordSize()
	n := remaining
	if n > maxFit {
		n = maxFit
	}
	return n * o.recordSize()
}

func (o *fociOp) Pack(_ geometry.Device, buf []byte) (int, error) {
	if o.done {
		return 0, nil
	}

	first := o.sent == 0
	remaining := len(o.records) - o.sent

	if first {
		maxFit := (wire.PayloadSize - fociHeaderSize) / o.recordSize()
		if maxFit < 1 {
			maxFit = 1
		}
		n := remaining
		if n > maxFit {
			n = maxFit
		}

		flag := byte(fociFlagBegin)
		if n == remaining {
			flag |= fociFlagEnd
		}
		if o.s.TransitionMode != fpga.None() {
			flag |= fociFlagTransition
		}

		buf[0] = byte(wire.TagFociSTM)
		buf[1] = flag
		buf[2] = byte(n)
		wire.PutUint16(buf, 3, o.s.SamplingConfig.Divisor())
		wire.PutUint16(buf, 5, o.s.Loop.Rep())
		wire.PutUint16(buf, 7, o.soundSpeed)
		buf[9] = byte(o.numFoci)
		buf[10] = byte(o.s.Segment)
		buf[11] = o.s.TransitionMode.Mode
		wire.PutUint64(buf, 12, o.s.TransitionMode.Value)

		off := fociHeaderSize
		for i := 0; i < n; i++ {
			copy(buf[off:], o.records[o.sent+i])
			off += o.recordSize()
		}

		o.sent += n
		if o.sent >= len(o.records) {
			o.done = true
		}
		return off, nil
	}

	maxFit := wire.PayloadSize / o.recordSize()
	n := remaining
	if n > maxFit {
		n = maxFit
	}
	off := 0
	for i := 0; i < n; i++ {
		copy(buf[off:], o.records[o.sent+i])
		off += o.recordSize()
	}
	o.sent += n
	if o.sent >= len(o.records) {
		o.done = true
	}
	return off, nil
}

func (o *fociOp) IsDone() bool { return o.done }
