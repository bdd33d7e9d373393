// Package looplink implements an in-process Link for tests: Send hands the
// frames to a Responder function standing in for the devices, and Receive
// returns that function's replies. Open allocates a pseudo-terminal pair,
// but no frame is ever written to or read from it. Grounded on the pty-pair
// setup the teacher uses for its KISS pseudo-terminal bridge.
package looplink

import (
	"fmt"
	"io"
	"sync"

	"github.com/creack/pty"

	"github.com/shinolab/autd3-go/internal/geometry"
	"github.com/shinolab/autd3-go/internal/wire"
)

// Responder computes the RxMessages a simulated device would reply with
// for a batch of TxMessages. Tests supply one to drive deterministic ACKs.
type Responder func(tx []wire.TxMessage) []wire.RxMessage

// Link is a Link that holds a pty pair open but never writes to it. When a
// Responder is set, Send synchronously invokes it and Receive returns its
// result; without one, Receive leaves rx unchanged.
type Link struct {
	mu        sync.Mutex
	ptmx      io.ReadWriteCloser
	pts       io.ReadWriteCloser
	open      bool
	numDevice int
	responder Responder
	pending   []wire.RxMessage
}

// New returns a Link that will report numDevices devices once opened.
func New(numDevices int, responder Responder) *Link {
	return &Link{numDevice: numDevices, responder: responder}
}

func (l *Link) Open(g geometry.Geometry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	ptmx, pts, err := pty.Open()
	if err != nil {
		return fmt.Errorf("autd3: looplink: open pty: %w", err)
	}
	l.ptmx, l.pts = ptmx, pts
	l.open = true
	return nil
}

func (l *Link) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.open = false
	var err error
	if l.ptmx != nil {
		err = l.ptmx.Close()
	}
	if l.pts != nil {
		if e := l.pts.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}

func (l *Link) AllocTxBuffer() ([]wire.TxMessage, error) {
	return make([]wire.TxMessage, l.numDevice), nil
}

func (l *Link) Send(tx []wire.TxMessage) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.open {
		return fmt.Errorf("autd3: looplink: send on closed link")
	}
	if l.responder != nil {
		l.pending = l.responder(tx)
	}
	return nil
}

func (l *Link) Receive(rx []wire.RxMessage) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.open {
		return fmt.Errorf("autd3: looplink: receive on closed link")
	}
	for i := range rx {
		if i < len(l.pending) {
			rx[i] = l.pending[i]
		}
	}
	return nil
}

func (l *Link) IsOpen() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.open
}
