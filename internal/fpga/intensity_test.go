package fpga

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestIntensitySaturatingAdd(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.Uint8().Draw(t, "a")
		b := rapid.Uint8().Draw(t, "b")

		got := Intensity(a).Add(Intensity(b))

		want := int(a) + int(b)
		if want > 255 {
			want = 255
		}
		assert.Equal(t, Intensity(want), got)
	})
}

func TestIntensitySaturatingSub(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.Uint8().Draw(t, "a")
		b := rapid.Uint8().Draw(t, "b")

		got := Intensity(a).Sub(Intensity(b))

		want := int(a) - int(b)
		if want < 0 {
			want = 0
		}
		assert.Equal(t, Intensity(want), got)
	})
}

func TestIntensityDivScalarTruncates(t *testing.T) {
	assert.Equal(t, Intensity(0x7F), Intensity(0xFF).DivScalar(2))
}
