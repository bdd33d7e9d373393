// Package discover enumerates candidate serial devices for seriallink
// using github.com/jochenvg/go-udev, the Linux udev bindings the teacher
// declares but never exercises — this is its first real caller here.
package discover

import (
	"fmt"
	"sort"

	"github.com/jochenvg/go-udev"
)

// SerialDevice is a udev-reported candidate for seriallink.New.
type SerialDevice struct {
	DevNode string
	Vendor  string
	Product string
	Serial  string
}

// SerialDevices enumerates /dev/tty* nodes belonging to the "tty"
// subsystem with a USB vendor/product id (i.e. plugged-in USB-serial
// adapters, not the system consoles), sorted by device node name.
func SerialDevices() ([]SerialDevice, error) {
	u := udev.Udev{}
	enum := u.NewEnumerate()

	if err := enum.AddMatchSubsystem("tty"); err != nil {
		return nil, fmt.Errorf("autd3: discover: match subsystem: %w", err)
	}

	devices, err := enum.Devices()
	if err != nil {
		return nil, fmt.Errorf("autd3: discover: enumerate: %w", err)
	}

	var out []SerialDevice
	for _, d := range devices {
		node := d.Devnode()
		if node == "" {
			continue
		}
		parent := d.ParentWithSubsystemDevtype("usb", "usb_device")
		if parent == nil {
			continue
		}
		out = append(out, SerialDevice{
			DevNode: node,
			Vendor:  parent.PropertyValue("ID_VENDOR_ID"),
			Product: parent.PropertyValue("ID_MODEL_ID"),
			Serial:  parent.PropertyValue("ID_SERIAL_SHORT"),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].DevNode < out[j].DevNode })
	return out, nil
}
