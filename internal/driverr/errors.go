// Package driverr collects the host-side error taxonomy for the AUTD3
// firmware command protocol: validation failures raised before a frame is
// ever sent, firmware ack codes reported after one is, and link-level
// failures bubbled up unchanged from the transport.
package driverr

import (
	"errors"
	"fmt"
)

// Input validation errors, raised synchronously from a datagram's operation
// generator or from Operation.Pack before any frame reaches the wire.
var (
	ErrFocusOutOfRange          = errors.New("autd3: focus point out of representable range")
	ErrModulationSizeOutOfRange = errors.New("autd3: modulation buffer size out of range")
	ErrGainSTMBufSizeOutOfRange = errors.New("autd3: GainSTM buffer size out of range")
	ErrFociSTMBufSizeOutOfRange = errors.New("autd3: FociSTM buffer size out of range")
	ErrInvalidSamplingConfig    = errors.New("autd3: invalid sampling configuration")
	ErrInvalidPulseWidth        = errors.New("autd3: invalid pulse width")
	ErrInvalidLoopBehavior      = errors.New("autd3: invalid loop behavior")
)

// Unsupported-operation errors.
var (
	ErrUnsupportedOperation = errors.New("autd3: operation not supported by this firmware version")
	ErrUnsupportedFirmware  = errors.New("autd3: firmware version mismatch on open")
)

// Protocol/runtime errors, reported via the firmware ack byte (§4.2).
var (
	ErrInvalidMessageID         = errors.New("autd3: invalid message id")
	ErrInvalidInfoType          = errors.New("autd3: invalid info type")
	ErrInvalidGainSTMMode       = errors.New("autd3: invalid GainSTM mode")
	ErrInvalidSegmentTransition = errors.New("autd3: invalid segment transition")
	ErrMissTransitionTime       = errors.New("autd3: missed transition time")
	ErrInvalidSilencerSettings  = errors.New("autd3: invalid silencer settings")
	ErrInvalidTransitionMode    = errors.New("autd3: invalid transition mode")
	ErrNotSupportedTag          = errors.New("autd3: tag not supported")
)

// Link and sender errors.
var (
	ErrLinkClosed            = errors.New("autd3: link is closed")
	ErrSendDataFailed        = errors.New("autd3: link failed to send data")
	ErrConfirmResponseFailed = errors.New("autd3: timed out waiting for device confirmation")
	ErrNoProgress            = errors.New("autd3: no device made progress packing this frame")
)

// UnknownFirmwareError wraps an ack error byte this driver does not
// recognize (§4.2: any `ack.err` value outside the known table).
type UnknownFirmwareError struct {
	Code uint8
}

func (e *UnknownFirmwareError) Error() string {
	return fmt.Sprintf("autd3: unknown firmware error 0x%02X", e.Code)
}

// LinkError wraps an arbitrary transport-reported failure message. The core
// never constructs one of these itself; Link implementations do, and the
// sender propagates them unchanged (§7 Propagation).
type LinkError struct {
	Message string
}

func (e *LinkError) Error() string {
	return "autd3: link error: " + e.Message
}

// Other is an escape hatch for internal errors that do not fit the
// taxonomy above but still need a wrapped string.
type Other struct {
	Message string
}

func (e *Other) Error() string {
	return "autd3: " + e.Message
}
