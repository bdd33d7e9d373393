package looplink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinolab/autd3-go/internal/geometry"
	"github.com/shinolab/autd3-go/internal/wire"
)

func TestOpenSendReceiveClose(t *testing.T) {
	l := New(1, func(tx []wire.TxMessage) []wire.RxMessage {
		return []wire.RxMessage{{Data: 0, Ack: tx[0].Header.MsgID<<4 | 0}}
	})

	d, _ := geometry.NewDevice(0, 1)
	g := geometry.New([]geometry.Device{d})

	require.NoError(t, l.Open(g))
	assert.True(t, l.IsOpen())

	tx, err := l.AllocTxBuffer()
	require.NoError(t, err)
	require.Len(t, tx, 1)
	tx[0].Header.MsgID = 7

	require.NoError(t, l.Send(tx))

	rx := make([]wire.RxMessage, 1)
	require.NoError(t, l.Receive(rx))
	assert.Equal(t, uint8(7), rx[0].AckMsgID())

	require.NoError(t, l.Close())
	assert.False(t, l.IsOpen())
}

func TestSendOnClosedLinkErrors(t *testing.T) {
	l := New(1, nil)
	err := l.Send(make([]wire.TxMessage, 1))
	assert.Error(t, err)
}
