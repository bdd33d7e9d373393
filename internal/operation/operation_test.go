package operation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinolab/autd3-go/internal/geometry"
	"github.com/shinolab/autd3-go/internal/wire"
)

// chunkedOp packs total bytes, chunk bytes per call, tag 0x42.
type chunkedOp struct {
	total, chunk, sent int
}

func (o *chunkedOp) RequiredSize(geometry.Device) int {
	remaining := o.total - o.sent
	if remaining > o.chunk {
		return o.chunk
	}
	return remaining
}

func (o *chunkedOp) Pack(dev geometry.Device, buf []byte) (int, error) {
	n := o.RequiredSize(dev)
	for i := 0; i < n; i++ {
		buf[i] = 0x42
	}
	o.sent += n
	return n, nil
}

func (o *chunkedOp) IsDone() bool { return o.sent >= o.total }

func newDevices(n int) []geometry.Device {
	devs := make([]geometry.Device, n)
	for i := range devs {
		d, _ := geometry.NewDevice(i, 1)
		devs[i] = d
	}
	return devs
}

func TestHandlerPacksUntilDone(t *testing.T) {
	devices := newDevices(2)
	ops := []Pair{
		{Op1: &chunkedOp{total: 10, chunk: 4}, Op2: NullOp{}},
		{Op1: &chunkedOp{total: 3, chunk: 4}, Op2: NullOp{}},
	}

	h := Handler{}
	rounds := 0
	for {
		tx := make([]wire.TxMessage, len(devices))
		done, err := h.Pack(5, ops, devices, tx, false)
		require.NoError(t, err)
		rounds++
		allDone := true
		for _, d := range done {
			allDone = allDone && d
		}
		if allDone {
			break
		}
		require.Less(t, rounds, 100)
	}

	assert.True(t, ops[0].Op1.IsDone())
	assert.True(t, ops[1].Op1.IsDone())
	assert.Equal(t, 3, rounds) // 4+4+2 bytes for device 0
}

func TestHandlerStampsMsgID(t *testing.T) {
	devices := newDevices(1)
	ops := []Pair{{Op1: NullOp{}, Op2: NullOp{}}}
	tx := make([]wire.TxMessage, 1)

	h := Handler{}
	_, err := h.Pack(9, ops, devices, tx, false)
	require.NoError(t, err)
	assert.Equal(t, uint8(9), tx[0].Header.MsgID)
}

func TestHandlerNoProgressErrors(t *testing.T) {
	devices := newDevices(1)
	// required size always exceeds the payload: never packs, never done.
	ops := []Pair{{Op1: &chunkedOp{total: 100000, chunk: 100000}, Op2: NullOp{}}}
	tx := make([]wire.TxMessage, 1)

	h := Handler{}
	_, err := h.Pack(1, ops, devices, tx, false)
	assert.ErrorIs(t, err, ErrNoProgress)
}

func TestHandlerParallelMatchesSequential(t *testing.T) {
	devices := newDevices(8)
	opsSeq := make([]Pair, 8)
	opsPar := make([]Pair, 8)
	for i := range opsSeq {
		opsSeq[i] = Pair{Op1: &chunkedOp{total: 50, chunk: 16}, Op2: NullOp{}}
		opsPar[i] = Pair{Op1: &chunkedOp{total: 50, chunk: 16}, Op2: NullOp{}}
	}

	h := Handler{}
	for round := 0; round < 10; round++ {
		txSeq := make([]wire.TxMessage, 8)
		txPar := make([]wire.TxMessage, 8)
		doneSeq, errSeq := h.Pack(1, opsSeq, devices, txSeq, false)
		donePar, errPar := h.Pack(1, opsPar, devices, txPar, true)
		require.NoError(t, errSeq)
		require.NoError(t, errPar)
		assert.Equal(t, doneSeq, donePar)
		assert.Equal(t, txSeq, txPar)
	}
}
