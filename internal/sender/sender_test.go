package sender

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinolab/autd3-go/internal/datagram"
	"github.com/shinolab/autd3-go/internal/driverr"
	"github.com/shinolab/autd3-go/internal/ecat"
	"github.com/shinolab/autd3-go/internal/environment"
	"github.com/shinolab/autd3-go/internal/fpga"
	"github.com/shinolab/autd3-go/internal/geometry"
	"github.com/shinolab/autd3-go/internal/limits"
	"github.com/shinolab/autd3-go/internal/link/looplink"
	"github.com/shinolab/autd3-go/internal/modulation"
	"github.com/shinolab/autd3-go/internal/wire"
)

func testGeometry(t *testing.T, numDevices, numTransducers int) geometry.Geometry {
	t.Helper()
	devices := make([]geometry.Device, numDevices)
	for i := range devices {
		d, err := geometry.NewDevice(i, numTransducers)
		require.NoError(t, err)
		devices[i] = d
	}
	return geometry.New(devices)
}

func echoAck(code uint8) looplink.Responder {
	return func(tx []wire.TxMessage) []wire.RxMessage {
		rx := make([]wire.RxMessage, len(tx))
		for i := range tx {
			rx[i] = wire.RxMessage{Ack: tx[i].Header.MsgID<<4 | code}
		}
		return rx
	}
}

func newSender(t *testing.T, g geometry.Geometry, l *looplink.Link, opt Option) *Sender {
	t.Helper()
	require.NoError(t, l.Open(g))
	return &Sender{
		Link:     l,
		Geometry: g,
		Env:      environment.New(),
		Limits:   limits.Default(),
		MsgId:    &MsgId{},
		Opt:      opt,
	}
}

func TestSendClearSyncTupleCompletes(t *testing.T) {
	g := testGeometry(t, 2, 4)
	l := looplink.New(g.NumDevices(), echoAck(driverr.AckOK))
	s := newSender(t, g, l, DefaultOption())

	err := s.Send(context.Background(), datagram.Tuple{First: datagram.Clear{}, Second: datagram.Sync{}})
	require.NoError(t, err)
}

func TestSendStaticModulationCompletes(t *testing.T) {
	g := testGeometry(t, 1, 4)
	l := looplink.New(g.NumDevices(), echoAck(driverr.AckOK))
	s := newSender(t, g, l, DefaultOption())

	cfg, err := ecat.FromDivisor(5120)
	require.NoError(t, err)
	m := modulation.Modulation{
		Buffer:         []byte{0xFF, 0xFF},
		SamplingConfig: cfg,
		Loop:           fpga.LoopInfinite,
		Segment:        fpga.SegmentS0,
		TransitionMode: fpga.Immediate(),
	}

	err = s.Send(context.Background(), m)
	require.NoError(t, err)
}

func TestSendTimesOutWithoutAck(t *testing.T) {
	g := testGeometry(t, 1, 4)
	// No responder: Receive always returns zero-value RxMessages, so the
	// msg_id nibble never matches and Send must eventually time out.
	l := looplink.New(g.NumDevices(), nil)
	s := newSender(t, g, l, DefaultOption())
	s.Opt.SendInterval = time.Millisecond

	err := s.Send(context.Background(), datagram.Clear{})
	require.Error(t, err)
	assert.ErrorIs(t, err, driverr.ErrConfirmResponseFailed)
}

func TestSendPropagatesAckError(t *testing.T) {
	g := testGeometry(t, 1, 4)
	l := looplink.New(g.NumDevices(), echoAck(driverr.AckInvalidSilencerSettings))
	s := newSender(t, g, l, DefaultOption())

	err := s.Send(context.Background(), datagram.Clear{})
	require.Error(t, err)
	assert.ErrorIs(t, err, driverr.ErrInvalidSilencerSettings)
}

func TestSendRespectsContextCancellation(t *testing.T) {
	g := testGeometry(t, 1, 4)
	l := looplink.New(g.NumDevices(), nil)
	s := newSender(t, g, l, DefaultOption())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Send(ctx, datagram.Clear{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMsgIdNextSkipsIgnoreAck(t *testing.T) {
	m := &MsgId{cur: IgnoreAck - 1, init: true}
	first := m.Next()
	assert.NotEqual(t, IgnoreAck, first)
	second := m.Next()
	assert.NotEqual(t, IgnoreAck, second)
}
