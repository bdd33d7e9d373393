package sender

import (
	"context"
	"time"
)

// Sleep is a pluggable delay capability, composed into a TimerStrategy, so
// a caller can swap a spin-wait for tight timing against the platform
// std sleep or an async-style waitable without touching the strategy
// itself (§4.2).
type Sleep interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// StdSleep delegates to time.Sleep (interruptible via ctx.Done()).
type StdSleep struct{}

func (StdSleep) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SpinSleep sleeps through a raw unix.Nanosleep call on unix platforms
// (spinsleep_unix.go) and falls back to StdSleep's timer elsewhere
// (spinsleep_other.go). It does not busy-wait on any platform.
type SpinSleep struct{}

// TimerStrategy paces the inter-send interval (§4.2).
type TimerStrategy interface {
	// Next blocks (via sleeper) until send k (0-indexed, k>0) should fire,
	// given start (the time send 0 fired) and interval.
	Next(ctx context.Context, sleeper Sleep, start time.Time, interval time.Duration, k int) error
}

// FixedSchedule fires the k-th send at start + k*interval, catching up
// (no extra sleep) when the loop is already running late.
type FixedSchedule struct{}

func (FixedSchedule) Next(ctx context.Context, sleeper Sleep, start time.Time, interval time.Duration, k int) error {
	target := start.Add(time.Duration(k) * interval)
	d := time.Until(target)
	if d <= 0 {
		return nil
	}
	return sleeper.Sleep(ctx, d)
}

// FixedDelay sleeps interval between sends regardless of how long the
// previous round took.
type FixedDelay struct{}

func (FixedDelay) Next(ctx context.Context, sleeper Sleep, _ time.Time, interval time.Duration, _ int) error {
	return sleeper.Sleep(ctx, interval)
}
