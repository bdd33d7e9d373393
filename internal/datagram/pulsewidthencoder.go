package datagram

import (
	"github.com/shinolab/autd3-go/internal/environment"
	"github.com/shinolab/autd3-go/internal/fpga"
	"github.com/shinolab/autd3-go/internal/geometry"
	"github.com/shinolab/autd3-go/internal/limits"
	"github.com/shinolab/autd3-go/internal/operation"
	"github.com/shinolab/autd3-go/internal/wire"
)

func defaultTable8() [256]uint8   { return fpga.DefaultTable[uint8](8) }
func defaultTable16() [256]uint16 { return fpga.DefaultTable[uint16](9) }

// ConfigPulseWidthEncoder uploads a 256-entry duty→pulse-width lookup
// table. V10 firmware reads an 8-bit table; V11+ reads a 9-bit table
// packed two entries per three bytes would overcomplicate the wire layout
// the firmware actually expects a 16-bit slot per entry, so both variants
// ship one uint16 per table entry and the firmware masks to its native
// width.
type ConfigPulseWidthEncoder struct {
	// Table holds exactly 256 entries; nil selects the firmware default
	// arcsine-derived table (internal/fpga.DefaultTable).
	Table []uint16
	// V10 selects the legacy 8-bit encoder tag instead of V11's.
	V10 bool
}

func (d ConfigPulseWidthEncoder) OperationGenerator(geometry.Geometry, environment.Environment, geometry.DeviceMask, limits.FirmwareLimits) (Generator, Option, error) {
	table := d.Table
	if table == nil {
		table = make([]uint16, 256)
		if d.V10 {
			def := defaultTable8()
			for i, v := range def {
				table[i] = uint16(v)
			}
		} else {
			def := defaultTable16()
			copy(table, def[:])
		}
	}

	tag := wire.TagConfigPulseWidthEncoderV11
	if d.V10 {
		tag = wire.TagConfigPulseWidthEncoderV10
	}

	body := make([]byte, 2*len(table))
	for i, v := range table {
		wire.PutUint16(body, 2*i, v)
	}

	return perDevice(func(geometry.Device) operation.Operation {
		return newSimpleOp(tag, body)
	}), DefaultOption, nil
}
