package limits

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFociSTMBounds(t *testing.T) {
	l := FirmwareLimits{
		FociSTMFixedNumUnit:  0.025,
		FociSTMFixedNumWidth: 18,
	}

	assert.InDelta(t, 3276.7751, l.FociSTMUpperX(), 1e-2)
	assert.InDelta(t, -3104.1, l.FociSTMLowerX(), 1e-1)
	assert.InDelta(t, 3276.7751, l.FociSTMUpperY(), 1e-2)
	assert.InDelta(t, -3144.725, l.FociSTMLowerY(), 1e-1)
	assert.InDelta(t, 3276.7751, l.FociSTMUpperZ(), 1e-2)
	assert.InDelta(t, -3276.8, l.FociSTMLowerZ(), 1e-1)
}

func TestUnusedIsZero(t *testing.T) {
	assert.Equal(t, FirmwareLimits{}, Unused())
}

func TestDriverSupports(t *testing.T) {
	assert.True(t, V10.Supports("ConfigPulseWidthEncoderV10"))
	assert.False(t, V121.Supports("ConfigPulseWidthEncoderV10"))
	assert.True(t, V121.Supports("ConfigPulseWidthEncoderV11"))
	assert.False(t, V10.Supports("ConfigPulseWidthEncoderV11"))
	assert.True(t, V121.Supports("OutputMask"))
	assert.False(t, V12.Supports("OutputMask"))
}

func TestDriverString(t *testing.T) {
	assert.Equal(t, "v12.1", V121.String())
}
