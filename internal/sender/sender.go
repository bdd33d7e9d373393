package sender

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shinolab/autd3-go/internal/datagram"
	"github.com/shinolab/autd3-go/internal/driverr"
	"github.com/shinolab/autd3-go/internal/environment"
	"github.com/shinolab/autd3-go/internal/geometry"
	"github.com/shinolab/autd3-go/internal/limits"
	"github.com/shinolab/autd3-go/internal/link"
	"github.com/shinolab/autd3-go/internal/operation"
	"github.com/shinolab/autd3-go/internal/wire"
)

// ParallelMode overrides the parallel_threshold heuristic (§4.2).
type ParallelMode uint8

const (
	ParallelAuto ParallelMode = iota
	ParallelOn
	ParallelOff
)

// Option configures a Sender, independent of any one Datagram's own
// Option.
type Option struct {
	Timer        TimerStrategy
	Sleep        Sleep
	SendInterval time.Duration
	Parallel     ParallelMode
	TickInterval time.Duration // how often the send/receive loop polls while waiting for acks
}

// DefaultOption paces sends 1ms apart with a standard library sleep and
// auto parallel selection.
func DefaultOption() Option {
	return Option{
		Timer:        FixedDelay{},
		Sleep:        StdSleep{},
		SendInterval: time.Millisecond,
		Parallel:     ParallelAuto,
		TickInterval: 100 * time.Microsecond,
	}
}

// Sender drives one controller's sends: pack -> link.send -> link.receive
// -> check acks -> loop until done or timeout (§4.2).
type Sender struct {
	Link      link.Link
	Geometry  geometry.Geometry
	Env       environment.Environment
	Limits    limits.FirmwareLimits
	MsgId     *MsgId
	Opt       Option
	sendCount int
}

// Send runs one complete send of d: asks for its Generator and Option,
// packs/transmits/receives in a loop, and returns once every enabled
// device reports both operations done, or the timeout elapses.
func (s *Sender) Send(ctx context.Context, d datagram.Datagram) error {
	mask := geometry.NewDeviceMask(s.Geometry)

	gen, dOpt, err := d.OperationGenerator(s.Geometry, s.Env, mask, s.Limits)
	if err != nil {
		return err
	}

	devices := s.Geometry.Devices()
	var enabledDevices []geometry.Device
	var pairs []operation.Pair
	for _, dev := range devices {
		p, ok := gen.Generate(dev)
		if !ok {
			continue
		}
		enabledDevices = append(enabledDevices, dev)
		pairs = append(pairs, p)
	}
	if len(enabledDevices) == 0 {
		return nil
	}

	msgID := s.MsgId.Next()
	sentFlags := make([]bool, len(enabledDevices))

	timeout := dOpt.Timeout
	if timeout <= 0 {
		timeout = datagram.DefaultOption.Timeout
	}
	start := time.Now()
	deadline := start.Add(timeout)

	parallel := s.parallelFor(len(enabledDevices), dOpt.ParallelThreshold)

	handler := operation.Handler{}

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		allDone := true
		for _, done := range sentFlags {
			allDone = allDone && done
		}
		if allDone {
			break
		}
		if time.Now().After(deadline) {
			return driverr.ErrConfirmResponseFailed
		}

		tx := make([]wire.TxMessage, len(enabledDevices))
		done, err := handler.Pack(msgID, pairs, enabledDevices, tx, parallel)
		if err != nil && !errors.Is(err, operation.ErrNoProgress) {
			return err
		}

		if err := s.Link.Send(tx); err != nil {
			return fmt.Errorf("%w: %v", driverr.ErrSendDataFailed, err)
		}
		s.sendCount++

		rx := make([]wire.RxMessage, len(enabledDevices))
		if err := s.Link.Receive(rx); err != nil {
			return err
		}

		for i := range enabledDevices {
			if msgID != IgnoreAck && rx[i].AckMsgID() != msgID&0x0F {
				continue // not yet: ack hasn't caught up to this msg_id
			}
			if ackErr := driverr.ClassifyAck(rx[i].AckErr()); ackErr != nil {
				return ackErr
			}
			if done != nil {
				sentFlags[i] = sentFlags[i] || done[i]
			}
		}

		if err := s.Opt.Timer.Next(ctx, s.Opt.Sleep, start, s.Opt.SendInterval, s.sendCount); err != nil {
			return err
		}
	}

	return nil
}

func (s *Sender) parallelFor(numDevices, datagramThreshold int) bool {
	threshold := datagramThreshold
	if threshold <= 0 {
		threshold = 4
	}
	switch s.Opt.Parallel {
	case ParallelOn:
		return true
	case ParallelOff:
		return false
	default:
		return numDevices >= threshold
	}
}
