// Package mdnslink implements a Link over TCP whose endpoint is announced
// (and, on the controller side, browsed) via mDNS/DNS-SD, the same way the
// teacher's dns_sd.go announces a KISS-over-TCP service with
// github.com/brutella/dnssd — generalized here from "announce a TNC" to
// "announce an AUTD3 bridge".
package mdnslink

import (
	"context"
	"encoding/binary"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/brutella/dnssd"

	"github.com/shinolab/autd3-go/internal/geometry"
	"github.com/shinolab/autd3-go/internal/wire"
)

// ServiceType is the DNS-SD service type an AUTD3-over-TCP bridge
// advertises itself under.
const ServiceType = "_autd3-bridge._tcp"

// Link is a Link over a TCP connection to a bridge discovered (or
// explicitly addressed) via mDNS.
type Link struct {
	addr string
	dial time.Duration
	mu   sync.Mutex
	conn net.Conn
	open bool
}

// New returns a Link that will dial addr ("host:port") once Open is
// called.
func New(addr string) *Link {
	return &Link{addr: addr, dial: 5 * time.Second}
}

// Discover browses ServiceType for dur and returns the "host:port"
// addresses of every bridge found, for use with New.
func Discover(ctx context.Context, dur time.Duration) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, dur)
	defer cancel()

	var mu sync.Mutex
	var addrs []string

	add := func(e dnssd.BrowseEntry) {
		mu.Lock()
		defer mu.Unlock()
		for _, ip := range e.IPs {
			addrs = append(addrs, fmt.Sprintf("%s:%d", ip.String(), e.Port))
		}
	}
	remove := func(dnssd.BrowseEntry) {}

	if err := dnssd.LookupType(ctx, ServiceType, add, remove); err != nil && ctx.Err() == nil {
		return nil, fmt.Errorf("autd3: mdnslink: browse %s: %w", ServiceType, err)
	}
	return addrs, nil
}

func (l *Link) Open(g geometry.Geometry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	conn, err := net.DialTimeout("tcp", l.addr, l.dial)
	if err != nil {
		return fmt.Errorf("autd3: mdnslink: dial %s: %w", l.addr, err)
	}
	l.conn = conn
	l.open = true
	return nil
}

func (l *Link) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.open = false
	if l.conn == nil {
		return nil
	}
	return l.conn.Close()
}

func (l *Link) AllocTxBuffer() ([]wire.TxMessage, error) {
	return make([]wire.TxMessage, 1), nil
}

func (l *Link) Send(tx []wire.TxMessage) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.open {
		return fmt.Errorf("autd3: mdnslink: send on closed link")
	}

	frame := wire.AllData(tx)
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(frame)))
	if _, err := l.conn.Write(lenBuf[:]); err != nil {
		return fmt.Errorf("autd3: mdnslink: write length prefix: %w", err)
	}
	if _, err := l.conn.Write(frame); err != nil {
		return fmt.Errorf("autd3: mdnslink: write frame: %w", err)
	}
	return nil
}

func (l *Link) Receive(rx []wire.RxMessage) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.open {
		return fmt.Errorf("autd3: mdnslink: receive on closed link")
	}

	buf := make([]byte, 2*len(rx))
	if _, err := readFull(l.conn, buf); err != nil {
		return fmt.Errorf("autd3: mdnslink: read ack: %w", err)
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

func readFull(r net.Conn, buf []byte) (int, error) {
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
