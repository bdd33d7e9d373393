// Package link defines the transport abstraction the Sender pushes frames
// through (§4.12). The core neither timestamps nor retransmits; a Link
// implementation may.
package link

import (
	"github.com/shinolab/autd3-go/internal/geometry"
	"github.com/shinolab/autd3-go/internal/wire"
)

// Link is the transport a Sender drives. Implementations live in
// subpackages: looplink (in-process, for tests and simulators),
// seriallink (length-prefixed frames over serial, for boards bridged
// through a UART), mdnslink (mDNS-discovered TCP endpoints).
type Link interface {
	Open(g geometry.Geometry) error
	Close() error
	AllocTxBuffer() ([]wire.TxMessage, error)
	Send(tx []wire.TxMessage) error
	Receive(rx []wire.RxMessage) error
	IsOpen() bool
}
