package datagram

import (
	"github.com/shinolab/autd3-go/internal/environment"
	"github.com/shinolab/autd3-go/internal/fpga"
	"github.com/shinolab/autd3-go/internal/geometry"
	"github.com/shinolab/autd3-go/internal/limits"
	"github.com/shinolab/autd3-go/internal/operation"
	"github.com/shinolab/autd3-go/internal/wire"
)

// SwapSegment tells the firmware to switch its active Gain/Modulation/STM
// buffer from one double-buffered Segment to the other, optionally gated
// behind a TransitionMode (§4.1's *SwapSegment tags). Gain/Modulation/
// FociSTM/GainSTM each use this with their own tag.
type SwapSegment struct {
	Tag            wire.TypeTag
	Segment        fpga.Segment
	TransitionMode fpga.TransitionMode
}

func (d SwapSegment) OperationGenerator(geometry.Geometry, environment.Environment, geometry.DeviceMask, limits.FirmwareLimits) (Generator, Option, error) {
	body := make([]byte, 10)
	body[0] = byte(d.Segment)
	body[1] = d.TransitionMode.Mode
	wire.PutUint64(body, 2, d.TransitionMode.Value)

	return perDevice(func(geometry.Device) operation.Operation {
		return newSimpleOp(d.Tag, body)
	}), DefaultOption, nil
}
