//go:build unix

package sender

import (
	"context"
	"time"

	"golang.org/x/sys/unix"
)

// Sleep nanosleeps directly via unix.Nanosleep rather than time.Sleep, to
// avoid the Go runtime timer's scheduling slop for sub-millisecond
// silencer/STM pacing.
func (SpinSleep) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	req := unix.NsecToTimespec(d.Nanoseconds())
	for {
		var rem unix.Timespec
		err := unix.Nanosleep(&req, &rem)
		if err == nil {
			return nil
		}
		if err != unix.EINTR {
			return err
		}
		req = rem
	}
}
