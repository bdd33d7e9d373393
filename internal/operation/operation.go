// Package operation implements the stateful packer contract every
// datagram reduces to, and the two-slot OperationHandler that drives a
// pair of packers per device across however many frames it takes (§3, §4.2).
package operation

import (
	"errors"
	"fmt"
	"sync"

	"github.com/shinolab/autd3-go/internal/geometry"
	"github.com/shinolab/autd3-go/internal/wire"
)

// ErrNoProgress is returned by Pack when a full pass over every device
// packed zero bytes into zero slots — a stuck operation (§4.2 step 3).
var ErrNoProgress = errors.New("autd3: operation: no progress")

// Operation is a stateful packer for one device. It is invoked repeatedly
// across frames; each call to Pack advances its internal cursor by the
// amount it wrote.
type Operation interface {
	// RequiredSize returns the number of bytes Pack would need to make
	// any progress on dev, given its current internal cursor.
	RequiredSize(dev geometry.Device) int
	// Pack writes into buf (which has at least RequiredSize(dev) bytes
	// free) and returns how many bytes it wrote.
	Pack(dev geometry.Device, buf []byte) (int, error)
	// IsDone reports whether this operation has nothing left to send.
	IsDone() bool
}

// NullOp packs zero bytes and is immediately done; it stands in for a
// disabled slot-2.
type NullOp struct{}

func (NullOp) RequiredSize(geometry.Device) int         { return 0 }
func (NullOp) Pack(geometry.Device, []byte) (int, error) { return 0, nil }
func (NullOp) IsDone() bool                             { return true }

// Pair is the (Op1, Op2) pair the handler packs into one device's frame
// per round.
type Pair struct {
	Op1 Operation
	Op2 Operation
}

// Done reports whether both operations in the pair have finished.
func (p Pair) Done() bool { return p.Op1.IsDone() && p.Op2.IsDone() }

// Handler packs Pairs into TxMessages, two slots per device per frame,
// greedily, until every device's pair is done (§4.2).
type Handler struct{}

// Pack fills tx (one frame per device) from ops (one pair per device),
// stamping msgID into every header. Devices that made no progress this
// round keep their existing payload state; if literally nothing changed
// across every device, ErrNoProgress is returned. parallel selects whether
// devices are packed concurrently — safe because each worker only ever
// touches its own (Op, tx row) pair.
func (Handler) Pack(msgID uint8, ops []Pair, devices []geometry.Device, tx []wire.TxMessage, parallel bool) (done []bool, err error) {
	if len(ops) != len(devices) || len(tx) != len(devices) {
		return nil, fmt.Errorf("autd3: operation: ops/devices/tx length mismatch (%d/%d/%d)", len(ops), len(devices), len(tx))
	}

	progressed := make([]bool, len(devices))
	done = make([]bool, len(devices))

	pack := func(i int) {
		tx[i].Header.MsgID = msgID
		offset, made := packOne(ops[i], devices[i], tx[i].Payload[:])
		progressed[i] = made
		tx[i].Header.Slot2Offset = uint8(offset)
		done[i] = ops[i].Done()
	}

	if parallel {
		var wg sync.WaitGroup
		wg.Add(len(devices))
		for i := range devices {
			i := i
			go func() {
				defer wg.Done()
				pack(i)
			}()
		}
		wg.Wait()
	} else {
		for i := range devices {
			pack(i)
		}
	}

	anyProgress := false
	for i, p := range progressed {
		anyProgress = anyProgress || p || done[i]
	}
	if !anyProgress {
		return nil, ErrNoProgress
	}
	return done, nil
}

func packOne(p Pair, dev geometry.Device, payload []byte) (slot2Offset int, progressed bool) {
	offset := 0

	if !p.Op1.IsDone() {
		need := p.Op1.RequiredSize(dev)
		if need <= len(payload)-offset {
			n, err := p.Op1.Pack(dev, payload[offset:])
			if err == nil {
				offset += n
				progressed = progressed || n > 0
			}
		}
	}

	slot2Offset = offset

	if !p.Op2.IsDone() {
		need := p.Op2.RequiredSize(dev)
		if need <= len(payload)-offset {
			n, err := p.Op2.Pack(dev, payload[offset:])
			if err == nil {
				offset += n
				progressed = progressed || n > 0
			}
		}
	}

	return slot2Offset, progressed
}
