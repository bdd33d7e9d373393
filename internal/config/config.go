// Package config loads the controller's YAML configuration file: which
// Link to open, the device geometry, the firmware driver version, and
// sender pacing. Grounded on the teacher's config.go (a typed struct
// assembled from a parsed file, returned with a wrapped error on any bad
// field) but serialized with gopkg.in/yaml.v3 rather than a hand-rolled
// line parser.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/shinolab/autd3-go/internal/geometry"
	"github.com/shinolab/autd3-go/internal/limits"
)

// LinkKind selects which Link implementation a Config's link section
// describes.
type LinkKind string

const (
	LinkLoop   LinkKind = "loop"
	LinkSerial LinkKind = "serial"
	LinkMDNS   LinkKind = "mdns"
)

// LinkConfig is the union of every Link kind's connection parameters; only
// the fields relevant to Kind need be set.
type LinkConfig struct {
	Kind       LinkKind `yaml:"kind"`
	DeviceName string   `yaml:"device_name,omitempty"` // seriallink
	Baud       int      `yaml:"baud,omitempty"`        // seriallink
	Address    string   `yaml:"address,omitempty"`     // mdnslink
}

// DeviceConfig describes one device's transducer count, in link order.
type DeviceConfig struct {
	NumTransducers int `yaml:"num_transducers"`
}

// SenderConfig controls Sender pacing.
type SenderConfig struct {
	SendIntervalMs int    `yaml:"send_interval_ms"`
	Parallel       string `yaml:"parallel"` // "auto", "on", or "off"
}

// Config is the top-level controller configuration file shape.
type Config struct {
	Link     LinkConfig     `yaml:"link"`
	Devices  []DeviceConfig `yaml:"devices"`
	Driver   string         `yaml:"driver"` // "v10", "v11", "v12", "v12.1"
	Sender   SenderConfig   `yaml:"sender"`
	LogLevel string         `yaml:"log_level,omitempty"`
}

// Load reads and validates a Config from path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("autd3: config: read %s: %w", path, err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("autd3: config: parse %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("autd3: config: %s: %w", path, err)
	}
	return c, nil
}

// Validate checks the loaded Config for internally-consistent, sendable
// values, the way the teacher's config.go rejects a malformed directive
// line before returning from its loader.
func (c Config) Validate() error {
	switch c.Link.Kind {
	case LinkLoop:
	case LinkSerial:
		if c.Link.DeviceName == "" {
			return fmt.Errorf("link.device_name is required for kind=serial")
		}
		if c.Link.Baud <= 0 {
			return fmt.Errorf("link.baud must be positive for kind=serial")
		}
	case LinkMDNS:
		if c.Link.Address == "" {
			return fmt.Errorf("link.address is required for kind=mdns")
		}
	default:
		return fmt.Errorf("link.kind %q is not one of loop/serial/mdns", c.Link.Kind)
	}

	if len(c.Devices) == 0 {
		return fmt.Errorf("devices must list at least one device")
	}
	for i, d := range c.Devices {
		if d.NumTransducers < 1 || d.NumTransducers > geometry.MaxTransducersPerDevice {
			return fmt.Errorf("devices[%d].num_transducers %d out of [1, %d]", i, d.NumTransducers, geometry.MaxTransducersPerDevice)
		}
	}

	if _, err := c.DriverVersion(); err != nil {
		return err
	}

	return nil
}

// DriverVersion parses the config's driver string into a limits.Driver.
func (c Config) DriverVersion() (limits.Driver, error) {
	switch c.Driver {
	case "", "v12.1":
		return limits.V121, nil
	case "v10":
		return limits.V10, nil
	case "v11":
		return limits.V11, nil
	case "v12":
		return limits.V12, nil
	default:
		return 0, fmt.Errorf("driver %q is not one of v10/v11/v12/v12.1", c.Driver)
	}
}

// Geometry builds the geometry.Geometry this config's device list describes.
func (c Config) Geometry() (geometry.Geometry, error) {
	devices := make([]geometry.Device, len(c.Devices))
	for i, d := range c.Devices {
		dev, err := geometry.NewDevice(i, d.NumTransducers)
		if err != nil {
			return geometry.Geometry{}, err
		}
		devices[i] = dev
	}
	return geometry.New(devices), nil
}

// SendInterval returns the configured sender pacing, defaulting to 1ms.
func (c Config) SendInterval() time.Duration {
	if c.Sender.SendIntervalMs <= 0 {
		return time.Millisecond
	}
	return time.Duration(c.Sender.SendIntervalMs) * time.Millisecond
}
