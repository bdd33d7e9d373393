// Package limits carries the per-firmware-version numeric bounds
// (FirmwareLimits, §3) and the Driver/version routing table (§4.11) that
// operation encoders consult to validate user input before packing.
package limits

// Transducer-array extents used to shift the FociSTM fixed-point x/y lower
// bounds; z has no such offset (§3).
const (
	TrXMax = 0x1AFC
	TrYMax = 0x14A3
)

// FirmwareLimits is the set of per-version numeric bounds a Datagram is
// validated against while it builds its OperationGenerator.
type FirmwareLimits struct {
	ModBufSizeMax        uint32
	GainSTMBufSizeMax    uint32
	FociSTMBufSizeMax    uint32
	NumFociMax           uint32
	FociSTMFixedNumUnit  float32
	FociSTMFixedNumWidth uint32
}

// Unused returns a zero-valued FirmwareLimits, for call sites (tests,
// version probes) that need a placeholder value never meant to be
// consulted.
func Unused() FirmwareLimits {
	return FirmwareLimits{}
}

// FociSTMFixedNumUpper is the shared upper bound of the fixed-point range,
// independent of axis.
func (l FirmwareLimits) FociSTMFixedNumUpper() int32 {
	return (1 << (l.FociSTMFixedNumWidth - 1)) - 1
}

// FociSTMFixedNumLower is the shared (unshifted) lower bound of the
// fixed-point range.
func (l FirmwareLimits) FociSTMFixedNumLower() int32 {
	return -(1 << (l.FociSTMFixedNumWidth - 1))
}

func (l FirmwareLimits) FociSTMFixedNumUpperX() int32 { return l.FociSTMFixedNumUpper() }
func (l FirmwareLimits) FociSTMFixedNumLowerX() int32 { return l.FociSTMFixedNumLower() + TrXMax }
func (l FirmwareLimits) FociSTMFixedNumUpperY() int32 { return l.FociSTMFixedNumUpper() }
func (l FirmwareLimits) FociSTMFixedNumLowerY() int32 { return l.FociSTMFixedNumLower() + TrYMax }
func (l FirmwareLimits) FociSTMFixedNumUpperZ() int32 { return l.FociSTMFixedNumUpper() }
func (l FirmwareLimits) FociSTMFixedNumLowerZ() int32 { return l.FociSTMFixedNumLower() }

// FociSTMUpperX, FociSTMLowerX, ... convert the fixed-point bounds into
// the millimetre-scaled float bounds a focus coordinate is clamped against.
func (l FirmwareLimits) FociSTMUpperX() float32 {
	return float32(l.FociSTMFixedNumUpperX()) * l.FociSTMFixedNumUnit
}

func (l FirmwareLimits) FociSTMLowerX() float32 {
	return float32(l.FociSTMFixedNumLowerX()) * l.FociSTMFixedNumUnit
}

func (l FirmwareLimits) FociSTMUpperY() float32 {
	return float32(l.FociSTMFixedNumUpperY()) * l.FociSTMFixedNumUnit
}

func (l FirmwareLimits) FociSTMLowerY() float32 {
	return float32(l.FociSTMFixedNumLowerY()) * l.FociSTMFixedNumUnit
}

func (l FirmwareLimits) FociSTMUpperZ() float32 {
	return float32(l.FociSTMFixedNumUpperZ()) * l.FociSTMFixedNumUnit
}

func (l FirmwareLimits) FociSTMLowerZ() float32 {
	return float32(l.FociSTMFixedNumLowerZ()) * l.FociSTMFixedNumUnit
}

// Default returns the limits of the newest supported firmware generation
// (v12.1), which all Driver versions derive their own FirmwareLimits from
// today (§4.11 — no version has yet diverged from these bounds).
func Default() FirmwareLimits {
	return FirmwareLimits{
		ModBufSizeMax:        65536,
		GainSTMBufSizeMax:    1024,
		FociSTMBufSizeMax:    65536,
		NumFociMax:           8,
		FociSTMFixedNumUnit:  0.025,
		FociSTMFixedNumWidth: 18,
	}
}
