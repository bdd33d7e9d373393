package fpga

// Drive is a single transducer's commanded phase/intensity pair, wire order
// phase then intensity (§3).
type Drive struct {
	Phase     Phase
	Intensity Intensity
}

// DriveNull is the zero drive: phase 0, intensity 0.
var DriveNull = Drive{Phase: PhaseZero, Intensity: IntensityMin}

// PutBytes writes the drive's wire representation (phase, then intensity)
// into buf[0:2].
func (d Drive) PutBytes(buf []byte) {
	buf[0] = uint8(d.Phase)
	buf[1] = uint8(d.Intensity)
}
