package fpga

import (
	"math"
	"testing"

	"github.com/shinolab/autd3-go/internal/driverr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestPulseWidthFromDutyRoundTrip(t *testing.T) {
	const bits = 9

	rapid.Check(t, func(t *rapid.T) {
		period := float64(uint64(1) << bits)
		d := rapid.Float64Range(0, (period-1)/period).Draw(t, "duty")

		pw, err := FromDutyV11[uint16](bits, d)
		require.NoError(t, err)

		want := uint16(math.Round(d * period))
		assert.Equal(t, want, pw.Value())
	})
}

func TestPulseWidthFromDutyOutOfRange(t *testing.T) {
	_, err := FromDutyV11[uint16](9, 1.0)
	assert.Error(t, err)

	_, err = FromDutyV11[uint16](9, -0.1)
	assert.Error(t, err)
}

func TestPulseWidthV10AllowsDutyOfOneAtConstructionButOverflowsPulseWidth(t *testing.T) {
	// v10's duty-ratio constructor accepts duty == 1.0, but the resulting
	// raw pulse width (== period) is still out of the valid [0, 2^bits)
	// range, so the error surfaces as an invalid pulse width, not a
	// rejected duty ratio.
	_, err := FromDutyV10[uint8](8, 1.0)
	assert.ErrorIs(t, err, driverr.ErrInvalidPulseWidth)
}

func TestNewPulseWidthRejectsOutOfRange(t *testing.T) {
	_, err := NewPulseWidth[uint8](8, 255)
	require.NoError(t, err)

	_, err = NewPulseWidth[uint16](9, 512)
	assert.Error(t, err)
}

func TestDefaultTableMonotonic(t *testing.T) {
	table := DefaultTable[uint16](9)

	for i := 1; i < 256; i++ {
		assert.GreaterOrEqual(t, table[i], table[i-1])
	}
	assert.Equal(t, uint16(0), table[0])
}
