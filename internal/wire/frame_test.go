package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestTxMessageBytesLength(t *testing.T) {
	var m TxMessage
	assert.Len(t, m.Bytes(), FrameSize)
}

func TestAckSplitsNibbles(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		msgID := rapid.Uint8Range(0, 0x0F).Draw(t, "msgID")
		errCode := rapid.Uint8Range(0, 0x0F).Draw(t, "errCode")

		m := RxMessage{Ack: msgID<<4 | errCode}

		assert.Equal(t, errCode, m.AckErr())
		assert.Equal(t, msgID, m.AckMsgID())
	})
}

func TestPutGetUint16RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := rapid.Uint16().Draw(t, "v")

		buf := make([]byte, 2)
		PutUint16(buf, 0, v)

		assert.Equal(t, v, GetUint16(buf, 0))
	})
}

func TestPutGetUint64RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := rapid.Uint64().Draw(t, "v")

		buf := make([]byte, 8)
		PutUint64(buf, 0, v)

		assert.Equal(t, v, GetUint64(buf, 0))
	})
}

func TestAllDataConcatenatesFrames(t *testing.T) {
	msgs := make([]TxMessage, 3)
	for i := range msgs {
		msgs[i].Header.MsgID = uint8(i + 1)
	}

	all := AllData(msgs)

	assert.Len(t, all, 3*FrameSize)
	for i := range msgs {
		assert.Equal(t, uint8(i+1), all[i*FrameSize])
	}
}
