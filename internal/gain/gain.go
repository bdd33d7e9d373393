// Package gain implements the Gain datagram (§4.3): a per-transducer
// Drive calculator packed into a single frame per device.
package gain

import (
	"github.com/shinolab/autd3-go/internal/datagram"
	"github.com/shinolab/autd3-go/internal/environment"
	"github.com/shinolab/autd3-go/internal/fpga"
	"github.com/shinolab/autd3-go/internal/geometry"
	"github.com/shinolab/autd3-go/internal/limits"
	"github.com/shinolab/autd3-go/internal/operation"
	"github.com/shinolab/autd3-go/internal/wire"
)

const (
	gainFlagUpdate = 1 << 0
)

// Calculator returns the Drive a device's transducer should be set to.
type Calculator func(tr geometry.Transducer) fpga.Drive

// Generator produces a per-device Calculator, given the device, the
// propagation environment, and which of its transducers are enabled.
type Generator func(dev geometry.Device, env environment.Environment, mask geometry.TransducerMask) Calculator

// Gain is a datagram.Datagram whose per-device payload is a dense array of
// Drive values, one per transducer (§4.3).
type Gain struct {
	Generate Generator
	Segment  fpga.Segment
	// Update commits Segment immediately on completion rather than
	// waiting for a later SwapSegment/transition.
	Update bool
}

func (g Gain) OperationGenerator(geo geometry.Geometry, env environment.Environment, mask geometry.DeviceMask, _ limits.FirmwareLimits) (datagram.Generator, datagram.Option, error) {
	return datagram.GeneratorFunc(func(dev geometry.Device) (operation.Pair, bool) {
		if !mask.IsEnabled(dev.Idx) {
			return operation.Pair{}, false
		}
		trMask := geometry.NewTransducerMask(dev)
		calc := g.Generate(dev, env, trMask)
		return operation.Pair{Op1: newOp(dev, calc, g.Segment, g.Update), Op2: operation.NullOp{}}, true
	}), datagram.DefaultOption, nil
}

type op struct {
	body []byte
	done bool
}

func newOp(dev geometry.Device, calc Calculator, segment fpga.Segment, update bool) *op {
	body := make([]byte, 4+2*dev.NumTransducers)
	body[0] = byte(wire.TagGain)
	body[1] = byte(segment)
	if update {
		body[2] = gainFlagUpdate
	}
	for i, tr := range dev.Transducers() {
		d := calc(tr)
		d.PutBytes(body[4+2*i:])
	}
	return &op{body: body}
}

func (o *op) RequiredSize(geometry.Device) int {
	if o.done {
		return 0
	}
	return len(o.body)
}

func (o *op) Pack(_ geometry.Device, buf []byte) (int, error) {
	if o.done {
		return 0, nil
	}
	n := copy(buf, o.body)
	o.done = true
	return n, nil
}

func (o *op) IsDone() bool { return o.done }
