package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNewDeviceRejectsOutOfRangeCount(t *testing.T) {
	_, err := NewDevice(0, 0)
	assert.Error(t, err)

	_, err = NewDevice(0, 257)
	assert.Error(t, err)
}

func TestDeviceTransducersIndexing(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 256).Draw(t, "n")
		d, err := NewDevice(3, n)
		require.NoError(t, err)

		trs := d.Transducers()
		require.Len(t, trs, n)
		for i, tr := range trs {
			assert.Equal(t, 3, tr.DeviceIdx)
			assert.Equal(t, i, tr.TrIdx)
		}
	})
}

func TestDeviceMaskDisable(t *testing.T) {
	d0, _ := NewDevice(0, 1)
	d1, _ := NewDevice(1, 1)
	g := New([]Device{d0, d1})

	mask := NewDeviceMask(g)
	assert.True(t, mask.IsEnabled(0))
	assert.True(t, mask.IsEnabled(1))

	mask.Disable(1)
	assert.True(t, mask.IsEnabled(0))
	assert.False(t, mask.IsEnabled(1))
}

func TestGeometryDeviceLookup(t *testing.T) {
	d0, _ := NewDevice(0, 5)
	g := New([]Device{d0})

	got, ok := g.Device(0)
	require.True(t, ok)
	assert.Equal(t, d0, got)

	_, ok = g.Device(1)
	assert.False(t, ok)
}
