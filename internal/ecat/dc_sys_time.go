// Package ecat holds the EtherCAT Distributed Clock time representation and
// the ultrasound sampling-rate configuration derived from the 40kHz base
// clock (§3).
package ecat

import (
	"errors"
	"math"
	"time"
)

// epoch is the DC system time reference: 2000-01-01 00:00:00 UTC (§6).
var epoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// ErrInvalidDateTime is returned when a UTC time cannot be represented as a
// DcSysTime (before the epoch, or overflowing the 64-bit nanosecond range).
var ErrInvalidDateTime = errors.New("ecat: time is not representable as a DcSysTime")

// DcSysTime is nanoseconds since the DC epoch (§3).
type DcSysTime struct {
	ns uint64
}

// DcSysTimeZero is the zero point of DcSysTime (the epoch itself).
var DcSysTimeZero = DcSysTime{}

// SysTime returns the raw nanosecond count.
func (t DcSysTime) SysTime() uint64 { return t.ns }

// FromUTC converts a UTC time into a DcSysTime.
func FromUTC(utc time.Time) (DcSysTime, error) {
	d := utc.Sub(epoch)
	if d < 0 {
		return DcSysTime{}, ErrInvalidDateTime
	}
	if d == time.Duration(math.MaxInt64) {
		// time.Time.Sub saturates rather than overflowing; a saturated
		// result means utc is too far beyond the representable range.
		return DcSysTime{}, ErrInvalidDateTime
	}
	return DcSysTime{ns: uint64(d.Nanoseconds())}, nil
}

// ToUTC converts the DcSysTime back to a UTC time.
func (t DcSysTime) ToUTC() time.Time {
	return epoch.Add(time.Duration(t.ns))
}

// Now returns the current DC system time.
func Now() DcSysTime {
	t, err := FromUTC(time.Now().UTC())
	if err != nil {
		// Only possible long after this driver's useful lifetime (~292
		// years past the epoch, where time.Time.Sub saturates).
		panic(err)
	}
	return t
}

// Add returns t shifted forward by d.
func (t DcSysTime) Add(d time.Duration) DcSysTime {
	return DcSysTime{ns: t.ns + uint64(d.Nanoseconds())}
}

// Sub returns t shifted backward by d.
func (t DcSysTime) Sub(d time.Duration) DcSysTime {
	return DcSysTime{ns: t.ns - uint64(d.Nanoseconds())}
}
