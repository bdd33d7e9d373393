package wire

import "encoding/binary"

// HeaderSize, PayloadSize and FrameSize are the fixed per-device frame
// dimensions from §6: 626 bytes total, a 2-byte header followed by a
// 624-byte payload holding slot-1 then slot-2.
const (
	HeaderSize  = 2
	PayloadSize = 624
	FrameSize   = HeaderSize + PayloadSize
)

// Header is the 2-byte frame header: the message id handshake token and the
// byte offset within the payload where slot-2 begins (0 if slot-2 is empty).
type Header struct {
	MsgID       uint8
	Slot2Offset uint8
}

// TxMessage is one fixed 626-byte frame addressed to a single device.
type TxMessage struct {
	Header  Header
	Payload [PayloadSize]byte
}

// Bytes renders the frame as the contiguous 626 bytes the link writes to the
// wire: header first, then the full payload buffer.
func (m *TxMessage) Bytes() []byte {
	out := make([]byte, FrameSize)
	out[0] = m.Header.MsgID
	out[1] = m.Header.Slot2Offset
	copy(out[HeaderSize:], m.Payload[:])
	return out
}

// AllData concatenates a batch of frames into one contiguous byte slice, the
// Go analogue of the original TxDatagram::all_data: link implementations
// that write a whole batch in one syscall use this instead of looping.
func AllData(msgs []TxMessage) []byte {
	out := make([]byte, len(msgs)*FrameSize)
	for i := range msgs {
		copy(out[i*FrameSize:], msgs[i].Bytes())
	}
	return out
}

// RxMessage is the 2-byte response frame from a single device: a data byte
// (op-specific, e.g. FPGA state bits or a FirmInfo readback byte) and an ack
// byte packing the message-id echo and the firmware error code (§3, §4.2).
type RxMessage struct {
	Data uint8
	Ack  uint8
}

// AckErr extracts the low nibble of the ack byte: the firmware error code.
func (m RxMessage) AckErr() uint8 {
	return m.Ack & 0x0F
}

// AckMsgID extracts the high nibble of the ack byte: the echoed message id.
func (m RxMessage) AckMsgID() uint8 {
	return m.Ack >> 4
}

// PutUint16 writes v little-endian at payload[off:off+2]. Operations use
// this instead of relying on struct layout, since Go has no #pragma pack.
func PutUint16(payload []byte, off int, v uint16) {
	binary.LittleEndian.PutUint16(payload[off:off+2], v)
}

// PutUint32 writes v little-endian at payload[off:off+4].
func PutUint32(payload []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(payload[off:off+4], v)
}

// PutUint64 writes v little-endian at payload[off:off+8].
func PutUint64(payload []byte, off int, v uint64) {
	binary.LittleEndian.PutUint64(payload[off:off+8], v)
}

// GetUint16 reads a little-endian uint16 from payload[off:off+2].
func GetUint16(payload []byte, off int) uint16 {
	return binary.LittleEndian.Uint16(payload[off : off+2])
}

// GetUint64 reads a little-endian uint64 from payload[off:off+8].
func GetUint64(payload []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(payload[off : off+8])
}
