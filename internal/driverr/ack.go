package driverr

// Firmware ack error byte values (§4.2).
const (
	AckOK                       uint8 = 0x00
	AckNotSupportedTag          uint8 = 0x01
	AckInvalidMessageID         uint8 = 0x02
	AckInvalidInfoType          uint8 = 0x03
	AckInvalidGainSTMMode       uint8 = 0x04
	AckInvalidSegmentTransition uint8 = 0x05
	AckMissTransitionTime       uint8 = 0x06
	AckInvalidSilencerSettings  uint8 = 0x07
	AckInvalidTransitionMode    uint8 = 0x08
)

// ClassifyAck turns a firmware ack error byte into a typed error, or nil for
// AckOK. Unknown codes become *UnknownFirmwareError, never a generic error.
func ClassifyAck(code uint8) error {
	switch code {
	case AckOK:
		return nil
	case AckNotSupportedTag:
		return ErrNotSupportedTag
	case AckInvalidMessageID:
		return ErrInvalidMessageID
	case AckInvalidInfoType:
		return ErrInvalidInfoType
	case AckInvalidGainSTMMode:
		return ErrInvalidGainSTMMode
	case AckInvalidSegmentTransition:
		return ErrInvalidSegmentTransition
	case AckMissTransitionTime:
		return ErrMissTransitionTime
	case AckInvalidSilencerSettings:
		return ErrInvalidSilencerSettings
	case AckInvalidTransitionMode:
		return ErrInvalidTransitionMode
	default:
		return &UnknownFirmwareError{Code: code}
	}
}
