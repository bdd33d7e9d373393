// Package seriallink implements a Link over a UART connection, the way
// boards bridged through an FTDI/CP210x adapter are addressed. Each Send
// writes a 4-byte little-endian length followed by the frames; there is no
// KISS framing or byte escaping.
// Grounded on the teacher's serial_port.go, which wraps pkg/term the same
// way.
package seriallink

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/pkg/term"

	"github.com/shinolab/autd3-go/internal/geometry"
	"github.com/shinolab/autd3-go/internal/wire"
)

// Link is a Link over a single serial device carrying one device's frames;
// a multi-device array is addressed through daisy-chained EtherCAT in
// production, but the serial bridge used in bench setups speaks to one
// slave at a time.
type Link struct {
	mu         sync.Mutex
	devicename string
	baud       int
	t          *term.Term
	open       bool
}

// New returns a Link that will open devicename (e.g. "/dev/ttyUSB0") at
// baud once Open is called.
func New(devicename string, baud int) *Link {
	return &Link{devicename: devicename, baud: baud}
}

func (l *Link) Open(g geometry.Geometry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	t, err := term.Open(l.devicename, term.Speed(l.baud), term.RawMode)
	if err != nil {
		return fmt.Errorf("autd3: seriallink: open %s: %w", l.devicename, err)
	}
	l.t = t
	l.open = true
	return nil
}

func (l *Link) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.open = false
	if l.t == nil {
		return nil
	}
	return l.t.Close()
}

func (l *Link) AllocTxBuffer() ([]wire.TxMessage, error) {
	return make([]wire.TxMessage, 1), nil
}

func (l *Link) Send(tx []wire.TxMessage) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.open {
		return fmt.Errorf("autd3: seriallink: send on closed link")
	}

	frame := wire.AllData(tx)
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(frame)))
	if _, err := l.t.Write(lenBuf[:]); err != nil {
		return fmt.Errorf("autd3: seriallink: write length prefix: %w", err)
	}
	if _, err := l.t.Write(frame); err != nil {
		return fmt.Errorf("autd3: seriallink: write frame: %w", err)
	}
	return nil
}

func (l *Link) Receive(rx []wire.RxMessage) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.open {
		return fmt.Errorf("autd3: seriallink: receive on closed link")
	}

	buf := make([]byte, 2*len(rx))
	if _, err := ioReadFull(l.t, buf); err != nil {
		return fmt.Errorf("autd3: seriallink: read ack: %w", err)
	}
	for i := range rx {
		rx[i] = wire.RxMessage{Data: buf[2*i], Ack: buf[2*i+1]}
	}
	return nil
}

func (l *Link) IsOpen() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.open
}

// ioReadFull reads until buf is full, stopping early on a read error or a
// zero-byte read. It takes any reader, so tests can exercise it with a fake
// reader without opening a real serial device.
var ioReadFull = func(r interface{ Read([]byte) (int, error) }, buf []byte) (int, error) {
	n := 0
	for n < len(buf) {
		m, err := r.Read(buf[n:])
		n += m
		if err != nil {
			return n, err
		}
		if m == 0 {
			break
		}
	}
	return n, nil
}
