package datagram

import (
	"github.com/shinolab/autd3-go/internal/environment"
	"github.com/shinolab/autd3-go/internal/geometry"
	"github.com/shinolab/autd3-go/internal/limits"
	"github.com/shinolab/autd3-go/internal/operation"
)

// Tuple combines two Datagrams (e.g. Clear and Sync) into one send: each
// enabled device's slot-1 comes from First, slot-2 from Second. Both
// inputs must themselves generate only NullOp in their own slot-2 — a
// Tuple of two already-paired Datagrams is not supported, matching the
// two-slot OperationHandler contract (§4.2).
type Tuple struct {
	First, Second Datagram
}

func (d Tuple) OperationGenerator(g geometry.Geometry, env environment.Environment, mask geometry.DeviceMask, lim limits.FirmwareLimits) (Generator, Option, error) {
	gen1, opt1, err := d.First.OperationGenerator(g, env, mask, lim)
	if err != nil {
		return nil, Option{}, err
	}
	gen2, opt2, err := d.Second.OperationGenerator(g, env, mask, lim)
	if err != nil {
		return nil, Option{}, err
	}

	opt := opt1
	if opt2.Timeout > opt.Timeout {
		opt.Timeout = opt2.Timeout
	}
	if opt2.ParallelThreshold < opt.ParallelThreshold {
		opt.ParallelThreshold = opt2.ParallelThreshold
	}

	return GeneratorFunc(func(dev geometry.Device) (operation.Pair, bool) {
		p1, ok1 := gen1.Generate(dev)
		p2, ok2 := gen2.Generate(dev)
		if !ok1 || !ok2 {
			return operation.Pair{}, false
		}
		return operation.Pair{Op1: p1.Op1, Op2: p2.Op1}, true
	}), opt, nil
}
