package datagram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinolab/autd3-go/internal/environment"
	"github.com/shinolab/autd3-go/internal/geometry"
	"github.com/shinolab/autd3-go/internal/limits"
	"github.com/shinolab/autd3-go/internal/wire"
)

func testGeometry(n int) (geometry.Geometry, geometry.DeviceMask) {
	devs := make([]geometry.Device, n)
	for i := range devs {
		d, _ := geometry.NewDevice(i, 249)
		devs[i] = d
	}
	g := geometry.New(devs)
	return g, geometry.NewDeviceMask(g)
}

func TestClearSyncTuplePacksBothTagsInOneFrame(t *testing.T) {
	g, mask := testGeometry(1)
	env := environment.New()
	lim := limits.Default()

	tuple := Tuple{First: Clear{}, Second: Sync{}}
	gen, _, err := tuple.OperationGenerator(g, env, mask, lim)
	require.NoError(t, err)

	dev, _ := g.Device(0)
	pair, ok := gen.Generate(dev)
	require.True(t, ok)

	tx := make([]byte, wire.PayloadSize)
	n1, err := pair.Op1.Pack(dev, tx)
	require.NoError(t, err)
	n2, err := pair.Op2.Pack(dev, tx[n1:])
	require.NoError(t, err)

	assert.Equal(t, byte(wire.TagClear), tx[0])
	assert.Equal(t, byte(wire.TagSync), tx[n1])
	assert.True(t, pair.Op1.IsDone())
	assert.True(t, pair.Op2.IsDone())
	assert.Greater(t, n1+n2, 0)
}

func TestForceFanEncodesFlag(t *testing.T) {
	g, mask := testGeometry(1)
	env := environment.New()
	lim := limits.Default()

	gen, _, err := ForceFan{On: true}.OperationGenerator(g, env, mask, lim)
	require.NoError(t, err)

	dev, _ := g.Device(0)
	pair, _ := gen.Generate(dev)
	buf := make([]byte, wire.PayloadSize)
	n, err := pair.Op1.Pack(dev, buf)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	assert.Equal(t, byte(wire.TagForceFan), buf[0])
	assert.Equal(t, byte(1), buf[1])
}

func TestSilencerRejectsZeroIntensity(t *testing.T) {
	g, mask := testGeometry(1)
	env := environment.New()
	lim := limits.Default()

	_, _, err := SilencerFixedUpdateRate{Intensity: 0, Phase: 1}.OperationGenerator(g, env, mask, lim)
	assert.Error(t, err)
}

func TestFirmwareVersionOpProbesSixInfoTypes(t *testing.T) {
	g, mask := testGeometry(1)
	env := environment.New()
	lim := limits.Default()

	gen, _, err := FirmwareVersion{}.OperationGenerator(g, env, mask, lim)
	require.NoError(t, err)

	dev, _ := g.Device(0)
	pair, _ := gen.Generate(dev)
	op := pair.Op1.(*FirmwareVersionOp)

	buf := make([]byte, 2)
	for i := 0; i < numFirmInfoTypes; i++ {
		assert.False(t, op.IsDone())
		n, err := op.Pack(dev, buf)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		op.ApplyRxData(i, uint8(10+i))
	}
	assert.True(t, op.IsDone())

	got := op.Result()
	assert.Equal(t, uint8(10), got.CPUMajor)
	assert.Equal(t, uint8(14), got.FPGAFunctions)
}

func TestSwapSegmentEncodesSegmentAndTransition(t *testing.T) {
	g, mask := testGeometry(1)
	env := environment.New()
	lim := limits.Default()

	d := SwapSegment{Tag: wire.TagGainSwapSegment}
	gen, _, err := d.OperationGenerator(g, env, mask, lim)
	require.NoError(t, err)

	dev, _ := g.Device(0)
	pair, _ := gen.Generate(dev)
	buf := make([]byte, wire.PayloadSize)
	_, err = pair.Op1.Pack(dev, buf)
	require.NoError(t, err)
	assert.Equal(t, byte(wire.TagGainSwapSegment), buf[0])
}
