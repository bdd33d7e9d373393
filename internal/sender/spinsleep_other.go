//go:build !unix

package sender

import (
	"context"
	"time"
)

// Sleep falls back to StdSleep's timer on platforms without a raw
// nanosleep syscall to spin on.
func (SpinSleep) Sleep(ctx context.Context, d time.Duration) error {
	return StdSleep{}.Sleep(ctx, d)
}
