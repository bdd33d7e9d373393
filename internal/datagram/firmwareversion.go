package datagram

import (
	"github.com/shinolab/autd3-go/internal/environment"
	"github.com/shinolab/autd3-go/internal/geometry"
	"github.com/shinolab/autd3-go/internal/limits"
	"github.com/shinolab/autd3-go/internal/operation"
	"github.com/shinolab/autd3-go/internal/wire"
)

// FirmInfo is one device's firmware identification, read back over
// several RxMessage.Data probes (one info type per round): CPU major/
// minor, FPGA major/minor, and the FPGA function bitset.
type FirmInfo struct {
	CPUMajor, CPUMinor   uint8
	FPGAMajor, FPGAMinor uint8
	FPGAFunctions        uint8
}

// Firmware version info-type probe values, in the order FirmwareVersionOp
// sends them. infoClear is not a data readback: it tells the firmware to
// restore its normal rx-data path after the preceding probes, so its
// RxMessage.Data carries no FirmInfo field.
const (
	infoCPUMajor int = iota
	infoCPUMinor
	infoFPGAMajor
	infoFPGAMinor
	infoFPGAFunctions
	infoClear
)

// FirmwareVersionOp asks the firmware to report FirmInfo one info-type
// probe per frame, six probes total, accumulating the result for Result.
type FirmwareVersionOp struct {
	infoType int
	results  *FirmInfo
	done     bool
}

const numFirmInfoTypes = 6

func (o *FirmwareVersionOp) RequiredSize(geometry.Device) int {
	if o.done {
		return 0
	}
	return 2
}

func (o *FirmwareVersionOp) Pack(_ geometry.Device, buf []byte) (int, error) {
	if o.done {
		return 0, nil
	}
	buf[0] = byte(wire.TagFirmwareVersion)
	buf[1] = byte(o.infoType)
	o.infoType++
	if o.infoType >= numFirmInfoTypes {
		o.done = true
	}
	return 2, nil
}

func (o *FirmwareVersionOp) IsDone() bool { return o.done }

// ApplyRxData folds one info-type round's RxMessage.Data byte into the
// accumulated FirmInfo, in the probe order Pack emits: CPU major, CPU minor, FPGA
// major, FPGA minor, FPGA functions. The final (Clear) round carries no
// data and is ignored here.
func (o *FirmwareVersionOp) ApplyRxData(infoType int, data uint8) {
	if o.results == nil {
		o.results = &FirmInfo{}
	}
	switch infoType {
	case infoCPUMajor:
		o.results.CPUMajor = data
	case infoCPUMinor:
		o.results.CPUMinor = data
	case infoFPGAMajor:
		o.results.FPGAMajor = data
	case infoFPGAMinor:
		o.results.FPGAMinor = data
	case infoFPGAFunctions:
		o.results.FPGAFunctions = data
	case infoClear:
		// Clear restores the firmware's normal rx path; no data to store.
	}
}

// Result returns the accumulated FirmInfo once the probe is done.
func (o *FirmwareVersionOp) Result() FirmInfo {
	if o.results == nil {
		return FirmInfo{}
	}
	return *o.results
}

// FirmwareVersion reads back every enabled device's FirmInfo.
type FirmwareVersion struct{}

func (FirmwareVersion) OperationGenerator(geometry.Geometry, environment.Environment, geometry.DeviceMask, limits.FirmwareLimits) (Generator, Option, error) {
	return perDevice(func(geometry.Device) operation.Operation {
		return &FirmwareVersionOp{}
	}), DefaultOption, nil
}
