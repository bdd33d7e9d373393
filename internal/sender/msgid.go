// Package sender drives the OperationHandler loop end to end: msg_id
// allocation, frame pacing, timeout, and retry accounting (§4.2, §5).
package sender

import "sync"

// IgnoreAck is the reserved msg_id value used for probes whose ack is not
// checked against a handshake (§3).
const IgnoreAck uint8 = 0xFF

// MsgId is a monotonic, wrapping u8 counter exclusively owned by one
// Sender (§5, "Shared-resource policy").
type MsgId struct {
	mu   sync.Mutex
	cur  uint8
	init bool
}

// Next returns the next message id, skipping IgnoreAck on wraparound. A
// fresh MsgId hands out 1 first, so an ack byte still at its zero value is
// not mistaken for the echo of the first message.
func (m *MsgId) Next() uint8 {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.init = true
	m.cur++
	if m.cur == IgnoreAck {
		m.cur++
	}
	return m.cur
}

// Current returns the last id handed out, without advancing.
func (m *MsgId) Current() uint8 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cur
}
