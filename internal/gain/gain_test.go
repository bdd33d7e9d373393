package gain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinolab/autd3-go/internal/environment"
	"github.com/shinolab/autd3-go/internal/fpga"
	"github.com/shinolab/autd3-go/internal/geometry"
	"github.com/shinolab/autd3-go/internal/limits"
	"github.com/shinolab/autd3-go/internal/wire"
)

func TestGainPacksOneFramePerDevice(t *testing.T) {
	dev, err := geometry.NewDevice(0, 3)
	require.NoError(t, err)
	g := geometry.New([]geometry.Device{dev})
	mask := geometry.NewDeviceMask(g)

	uniform := Gain{
		Generate: func(d geometry.Device, env environment.Environment, m geometry.TransducerMask) Calculator {
			return func(tr geometry.Transducer) fpga.Drive {
				return fpga.Drive{Phase: fpga.Phase(tr.TrIdx), Intensity: 0xFF}
			}
		},
	}

	gen, _, err := uniform.OperationGenerator(g, environment.New(), mask, limits.Default())
	require.NoError(t, err)

	pair, ok := gen.Generate(dev)
	require.True(t, ok)

	buf := make([]byte, wire.PayloadSize)
	n, err := pair.Op1.Pack(dev, buf)
	require.NoError(t, err)
	assert.Equal(t, 4+2*3, n)
	assert.Equal(t, byte(wire.TagGain), buf[0])
	assert.Equal(t, byte(0), buf[4])   // phase of tr 0
	assert.Equal(t, byte(0xFF), buf[5]) // intensity of tr 0
	assert.Equal(t, byte(1), buf[6])   // phase of tr 1
	assert.True(t, pair.Op1.IsDone())
}

func TestGainExcludesDisabledDevice(t *testing.T) {
	dev, _ := geometry.NewDevice(0, 1)
	g := geometry.New([]geometry.Device{dev})
	mask := geometry.NewDeviceMask(g)
	mask.Disable(0)

	gn := Gain{Generate: func(geometry.Device, environment.Environment, geometry.TransducerMask) Calculator {
		return func(geometry.Transducer) fpga.Drive { return fpga.DriveNull }
	}}

	gen, _, err := gn.OperationGenerator(g, environment.New(), mask, limits.Default())
	require.NoError(t, err)

	_, ok := gen.Generate(dev)
	assert.False(t, ok)
}
