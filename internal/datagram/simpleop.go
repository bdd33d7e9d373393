package datagram

import (
	"github.com/shinolab/autd3-go/internal/geometry"
	"github.com/shinolab/autd3-go/internal/operation"
	"github.com/shinolab/autd3-go/internal/wire"
)

// simpleOp packs a fixed payload (tag byte followed by body) in a single
// call; it is done forever after, making it safe to reuse for every
// control datagram whose body fits one frame (§4.1).
type simpleOp struct {
	body []byte
	done bool
}

func newSimpleOp(tag wire.TypeTag, body []byte) *simpleOp {
	buf := make([]byte, 1+len(body))
	buf[0] = byte(tag)
	copy(buf[1:], body)
	return &simpleOp{body: buf}
}

func (o *simpleOp) RequiredSize(geometry.Device) int {
	if o.done {
		return 0
	}
	return len(o.body)
}

func (o *simpleOp) Pack(_ geometry.Device, buf []byte) (int, error) {
	if o.done {
		return 0, nil
	}
	n := copy(buf, o.body)
	o.done = true
	return n, nil
}

func (o *simpleOp) IsDone() bool { return o.done }

// perDevice builds a Generator from a function computing one device's
// simpleOp pair, with a NullOp in slot 2.
func perDevice(f func(dev geometry.Device) operation.Operation) GeneratorFunc {
	return func(dev geometry.Device) (operation.Pair, bool) {
		return operation.Pair{Op1: f(dev), Op2: operation.NullOp{}}, true
	}
}
