package fpga

// Transition mode byte values (§3, §6).
const (
	transitionSyncIdx   uint8 = 0x00
	transitionSysTime   uint8 = 0x01
	transitionGPIO      uint8 = 0x02
	transitionExt       uint8 = 0xF0
	transitionNone      uint8 = 0xFE
	transitionImmediate uint8 = 0xFF
)

// TransitionMode is the policy by which the FPGA moves from the current
// segment to a destination one (§3). It is a small closed tagged union, so a
// struct + byte constants models it more directly in Go than an interface.
type TransitionMode struct {
	Mode  uint8
	Value uint64
}

// SyncIdx transitions when the sampling index in the destination segment is 0.
func SyncIdx() TransitionMode { return TransitionMode{Mode: transitionSyncIdx} }

// SysTime transitions at the given DC system time (nanoseconds since
// 2000-01-01 UTC).
func SysTime(nsSinceEpoch uint64) TransitionMode {
	return TransitionMode{Mode: transitionSysTime, Value: nsSinceEpoch}
}

// GPIOTransition transitions when the given GPIO pin (0..3) goes high.
func GPIOTransition(pin uint8) TransitionMode {
	return TransitionMode{Mode: transitionGPIO, Value: uint64(pin)}
}

// Ext transitions automatically when the current segment's data is exhausted.
func Ext() TransitionMode { return TransitionMode{Mode: transitionExt} }

// None defers the transition (set later, via a swap-segment datagram).
func None() TransitionMode { return TransitionMode{Mode: transitionNone} }

// Immediate transitions as soon as the datagram completes. It is not filled
// in by default: a zero-valued TransitionMode is SyncIdx.
func Immediate() TransitionMode { return TransitionMode{Mode: transitionImmediate} }
