// Package wire implements the little-endian frame codec every operation's
// packed bytes sit inside: the per-firmware TypeTag byte, and the fixed
// 626-byte per-device TxMessage / 2-byte RxMessage frames (§4.1, §6).
package wire

import "fmt"

// TypeTag enumerates every datagram kind the firmware recognizes. Values are
// fixed across firmware versions unless otherwise noted (§4.1).
type TypeTag uint8

const (
	TagNone                     TypeTag = 0x00
	TagClear                    TypeTag = 0x01
	TagSync                     TypeTag = 0x02
	TagFirmwareVersion          TypeTag = 0x03
	TagModulationS0             TypeTag = 0x10
	TagModulationS1             TypeTag = 0x11
	TagModulationSwapSegment    TypeTag = 0x12
	TagSilencer                 TypeTag = 0x20
	TagGain                     TypeTag = 0x30
	TagGainSwapSegment          TypeTag = 0x31
	TagFociSTM                  TypeTag = 0x40
	TagGainSTM                  TypeTag = 0x41
	TagFociSTMSwapSegment       TypeTag = 0x42
	TagGainSTMSwapSegment       TypeTag = 0x43
	TagForceFan                 TypeTag = 0x50
	TagReadsFPGAState           TypeTag = 0x51
	TagConfigPulseWidthEncoderV10 TypeTag = 0x52
	TagConfigPulseWidthEncoderV11 TypeTag = 0x53
	TagPhaseCorrection          TypeTag = 0x60
	TagOutputMask               TypeTag = 0x61
	TagDebug                    TypeTag = 0x70 // a.k.a. GPIOOutputs
	TagEmulateGPIOIn            TypeTag = 0x71
	TagCpuGPIOOut               TypeTag = 0x72
	TagNop                      TypeTag = 0xFF
)

// String names a TypeTag for logs; unrecognized tags print their hex value
// rather than panicking.
func (t TypeTag) String() string {
	switch t {
	case TagNone:
		return "None"
	case TagClear:
		return "Clear"
	case TagSync:
		return "Sync"
	case TagFirmwareVersion:
		return "FirmwareVersion"
	case TagModulationS0:
		return "Modulation(S0)"
	case TagModulationS1:
		return "Modulation(S1)"
	case TagModulationSwapSegment:
		return "ModulationSwapSegment"
	case TagSilencer:
		return "Silencer"
	case TagGain:
		return "Gain"
	case TagGainSwapSegment:
		return "GainSwapSegment"
	case TagFociSTM:
		return "FociSTM"
	case TagGainSTM:
		return "GainSTM"
	case TagFociSTMSwapSegment:
		return "FociSTMSwapSegment"
	case TagGainSTMSwapSegment:
		return "GainSTMSwapSegment"
	case TagForceFan:
		return "ForceFan"
	case TagReadsFPGAState:
		return "ReadsFPGAState"
	case TagConfigPulseWidthEncoderV10:
		return "ConfigPulseWidthEncoder(V10)"
	case TagConfigPulseWidthEncoderV11:
		return "ConfigPulseWidthEncoder(V11)"
	case TagPhaseCorrection:
		return "PhaseCorrection"
	case TagOutputMask:
		return "OutputMask"
	case TagDebug:
		return "Debug"
	case TagEmulateGPIOIn:
		return "EmulateGPIOIn"
	case TagCpuGPIOOut:
		return "CpuGPIOOut"
	case TagNop:
		return "Nop"
	default:
		return fmt.Sprintf("TypeTag(0x%02X)", uint8(t))
	}
}
