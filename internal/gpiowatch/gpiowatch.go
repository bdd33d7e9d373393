// Package gpiowatch watches a real host GPIO input line and reports its
// edges, the kind of signal `TransitionMode::GPIO` (§3) keys a segment
// transition on. Its only caller is the `autd3ctl gpio-watch` demo
// subcommand, which prints each edge. Grounded on the teacher's
// dwgpsnmea.go (a background goroutine translating an external line into an
// application-level event), generalized from NMEA serial lines to a GPIO
// chardev line via warthog618/go-gpiocdev.
package gpiowatch

import (
	"context"
	"fmt"
	"sync"

	"github.com/warthog618/go-gpiocdev"
)

// Watcher observes one GPIO line and forwards both rising and falling
// edges on Events.
type Watcher struct {
	line      *gpiocdev.Line
	Events    chan Edge
	closeOnce sync.Once
	closeErr  error
}

// Edge is one observed transition on the watched line.
type Edge struct {
	Pin     int
	Rising  bool
	Seqno   uint32
	Timesec uint64
}

// Watch opens chip/offset in input mode with both-edges detection and
// starts forwarding events to the returned Watcher's Events channel until
// ctx is cancelled or Close is called.
func Watch(ctx context.Context, chip string, offset int) (*Watcher, error) {
	w := &Watcher{Events: make(chan Edge, 16)}

	line, err := gpiocdev.RequestLine(chip, offset,
		gpiocdev.AsInput,
		gpiocdev.WithBothEdges,
		gpiocdev.WithEventHandler(func(evt gpiocdev.LineEvent) {
			select {
			case w.Events <- Edge{
				Pin:     offset,
				Rising:  evt.Type == gpiocdev.LineEventRisingEdge,
				Seqno:   evt.Seqno,
				Timesec: evt.Timestamp,
			}:
			default: // drop if nobody is listening, never block the handler
			}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("autd3: gpiowatch: request %s line %d: %w", chip, offset, err)
	}
	w.line = line

	go func() {
		<-ctx.Done()
		_ = w.Close()
	}()

	return w, nil
}

// Close releases the underlying GPIO line and closes Events. Safe to call
// more than once (e.g. once from the ctx-cancellation goroutine and once
// explicitly by the caller).
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() {
		w.closeErr = w.line.Close()
		close(w.Events)
	})
	return w.closeErr
}
