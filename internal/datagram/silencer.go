package datagram

import (
	"fmt"

	"github.com/shinolab/autd3-go/internal/driverr"
	"github.com/shinolab/autd3-go/internal/environment"
	"github.com/shinolab/autd3-go/internal/geometry"
	"github.com/shinolab/autd3-go/internal/limits"
	"github.com/shinolab/autd3-go/internal/operation"
	"github.com/shinolab/autd3-go/internal/wire"
)

const (
	silencerFlagFixedUpdateRate = 1 << 0
	silencerFlagStrictMode      = 1 << 1
)

// SilencerFixedUpdateRate fixes the per-step rate at which the silencer
// moves intensity/phase toward a new target, rather than the number of
// steps a transition takes (§4.7).
type SilencerFixedUpdateRate struct {
	Intensity uint16
	Phase     uint16
}

func (d SilencerFixedUpdateRate) OperationGenerator(geometry.Geometry, environment.Environment, geometry.DeviceMask, limits.FirmwareLimits) (Generator, Option, error) {
	if d.Intensity == 0 || d.Phase == 0 {
		return nil, Option{}, fmt.Errorf("%w: silencer update rate must be nonzero", driverr.ErrInvalidSilencerSettings)
	}
	body := make([]byte, 5)
	body[0] = silencerFlagFixedUpdateRate
	wire.PutUint16(body, 1, d.Intensity)
	wire.PutUint16(body, 3, d.Phase)
	return perDevice(func(geometry.Device) operation.Operation {
		return newSimpleOp(wire.TagSilencer, body)
	}), DefaultOption, nil
}

// SilencerFixedCompletionSteps bounds the number of samples spent
// completing an intensity/phase transition, instead of the rate per step.
// Strict mode makes the firmware reject any subsequent Modulation/STM
// sampling period incompatible with these step counts.
type SilencerFixedCompletionSteps struct {
	Intensity uint16
	Phase     uint16
	Strict    bool
}

func (d SilencerFixedCompletionSteps) OperationGenerator(geometry.Geometry, environment.Environment, geometry.DeviceMask, limits.FirmwareLimits) (Generator, Option, error) {
	if d.Intensity == 0 || d.Phase == 0 {
		return nil, Option{}, fmt.Errorf("%w: silencer completion steps must be nonzero", driverr.ErrInvalidSilencerSettings)
	}
	flag := byte(0)
	if d.Strict {
		flag |= silencerFlagStrictMode
	}
	body := make([]byte, 5)
	body[0] = flag
	wire.PutUint16(body, 1, d.Intensity)
	wire.PutUint16(body, 3, d.Phase)
	return perDevice(func(geometry.Device) operation.Operation {
		return newSimpleOp(wire.TagSilencer, body)
	}), DefaultOption, nil
}
