package stm

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinolab/autd3-go/internal/ecat"
	"github.com/shinolab/autd3-go/internal/environment"
	"github.com/shinolab/autd3-go/internal/fpga"
	"github.com/shinolab/autd3-go/internal/geometry"
	"github.com/shinolab/autd3-go/internal/limits"
	"github.com/shinolab/autd3-go/internal/wire"
)

func TestFociSTMSingleFocusEncodesSharedIntensity(t *testing.T) {
	dev, _ := geometry.NewDevice(0, 1)
	g := geometry.New([]geometry.Device{dev})
	mask := geometry.NewDeviceMask(g)
	lim := limits.Default()
	cfg, _ := ecat.FromDivisor(1)

	s := FociSTM{
		Patterns: []Pattern{
			{Foci: []r3.Vector{{X: 0, Y: 0, Z: 0}}, Intensity: 0xAB},
			{Foci: []r3.Vector{{X: 10, Y: 0, Z: 0}}, Intensity: 0xCD},
		},
		SamplingConfig: cfg,
		Loop:           fpga.LoopInfinite,
		TransitionMode: fpga.Immediate(),
	}

	gen, _, err := s.OperationGenerator(g, environment.New(), mask, lim)
	require.NoError(t, err)

	pair, ok := gen.Generate(dev)
	require.True(t, ok)

	buf := make([]byte, wire.PayloadSize)
	n, err := pair.Op1.Pack(dev, buf)
	require.NoError(t, err)
	assert.Equal(t, byte(wire.TagFociSTM), buf[0])
	assert.Equal(t, byte(2), buf[2]) // both patterns fit in one frame
	assert.True(t, pair.Op1.IsDone())

	word0 := wire.GetUint64(buf, fociHeaderSize)
	assert.Equal(t, uint64(0xAB), (word0>>54)&0xFF)
	_ = n
}

func TestFociSTMRejectsOutOfRangeFocus(t *testing.T) {
	dev, _ := geometry.NewDevice(0, 1)
	g := geometry.New([]geometry.Device{dev})
	mask := geometry.NewDeviceMask(g)
	lim := limits.Default()
	cfg, _ := ecat.FromDivisor(1)

	s := FociSTM{
		Patterns: []Pattern{
			{Foci: []r3.Vector{{X: 1e9, Y: 0, Z: 0}}, Intensity: 1},
			{Foci: []r3.Vector{{X: 0, Y: 0, Z: 0}}, Intensity: 1},
		},
		SamplingConfig: cfg,
	}

	_, _, err := s.OperationGenerator(g, environment.New(), mask, lim)
	assert.Error(t, err)
}

func TestFociSTMRejectsTooFewPatterns(t *testing.T) {
	dev, _ := geometry.NewDevice(0, 1)
	g := geometry.New([]geometry.Device{dev})
	mask := geometry.NewDeviceMask(g)
	lim := limits.Default()
	cfg, _ := ecat.FromDivisor(1)

	s := FociSTM{Patterns: []Pattern{{Foci: []r3.Vector{{}}, Intensity: 1}}, SamplingConfig: cfg}
	_, _, err := s.OperationGenerator(g, environment.New(), mask, lim)
	assert.Error(t, err)
}
