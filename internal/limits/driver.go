package limits

import "fmt"

// Driver names a firmware-version family an OperationGenerator must encode
// for (§4.11).
type Driver uint8

const (
	V10 Driver = iota
	V11
	V12
	V121
)

func (d Driver) String() string {
	switch d {
	case V10:
		return "v10"
	case V11:
		return "v11"
	case V12:
		return "v12"
	case V121:
		return "v12.1"
	default:
		return fmt.Sprintf("Driver(%d)", uint8(d))
	}
}

// Limits returns the FirmwareLimits in force for d. Every version shares
// the same numeric bounds. The operation packages use one encoder per
// operation whatever the Driver.
func (d Driver) Limits() FirmwareLimits {
	return Default()
}

// Supports reports whether d can run operation name at all (e.g. the v10
// pulse-width-encoder variant is not supported on v12.1 firmware). No
// datagram or the Sender consults it, so an unsupported operation is still
// packed and sent.
func (d Driver) Supports(op string) bool {
	switch op {
	case "ConfigPulseWidthEncoderV10":
		return d == V10
	case "ConfigPulseWidthEncoderV11":
		return d != V10
	case "OutputMask":
		return d == V121
	default:
		return true
	}
}
