// Command autd3ctl is the operational CLI for the AUTD3 host driver:
// sending a short demo sequence to a configured array, browsing/listing
// candidate links, and watching a GPIO transition trigger line. Flags (a
// -c config file plus per-subcommand options; no flag overrides a config
// value) follow cmd/direwolf/main.go's own -c/-T style.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lestrrat-go/strftime"
	"github.com/spf13/pflag"

	"github.com/shinolab/autd3-go/internal/config"
	"github.com/shinolab/autd3-go/internal/datagram"
	"github.com/shinolab/autd3-go/internal/environment"
	"github.com/shinolab/autd3-go/internal/gpiowatch"
	"github.com/shinolab/autd3-go/internal/link"
	"github.com/shinolab/autd3-go/internal/link/discover"
	"github.com/shinolab/autd3-go/internal/link/looplink"
	"github.com/shinolab/autd3-go/internal/link/mdnslink"
	"github.com/shinolab/autd3-go/internal/link/seriallink"
	"github.com/shinolab/autd3-go/internal/logutil"
	"github.com/shinolab/autd3-go/internal/sender"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "send-demo":
		err = runSendDemo(os.Args[2:])
	case "discover":
		err = runDiscover(os.Args[2:])
	case "gpio-watch":
		err = runGPIOWatch(os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "autd3ctl: unknown subcommand %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}
	if err != nil {
		logutil.Error(err.Error())
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: autd3ctl <subcommand> [flags]

subcommands:
  send-demo    connect to a configured array and run a short Clear/Sync/Silencer demo
  discover     list candidate serial devices (udev) and mDNS-advertised bridges
  gpio-watch   watch a GPIO line and print its rising/falling edges`)
}

// configureLogging sets the debug level and, if timestampFormat is given,
// logs one strftime-formatted start marker the same way the teacher's
// xmit.go/tq.go precede a received frame with a "-T" formatted timestamp.
func configureLogging(timestampFormat string, debug bool) {
	if debug {
		logutil.SetLevel(log.DebugLevel)
	}
	if timestampFormat != "" {
		if formatted, err := strftime.Format(timestampFormat, time.Now()); err == nil {
			logutil.Info("start", "time", formatted)
		}
	}
}

func runSendDemo(args []string) error {
	fs := pflag.NewFlagSet("send-demo", pflag.ExitOnError)
	configFile := fs.StringP("config-file", "c", "autd3.yaml", "Controller configuration file.")
	timestampFormat := fs.StringP("timestamp-format", "T", "", "strftime format for log timestamps.")
	debug := fs.BoolP("debug", "d", false, "Enable debug logging.")
	if err := fs.Parse(args); err != nil {
		return err
	}
	configureLogging(*timestampFormat, *debug)

	cfg, err := config.Load(*configFile)
	if err != nil {
		return err
	}
	geom, err := cfg.Geometry()
	if err != nil {
		return err
	}
	driverVersion, err := cfg.DriverVersion()
	if err != nil {
		return err
	}

	l, err := openLink(cfg.Link)
	if err != nil {
		return err
	}
	if err := l.Open(geom); err != nil {
		return fmt.Errorf("autd3ctl: open link: %w", err)
	}
	defer func() {
		if err := l.Close(); err != nil {
			logutil.Warn("close link failed", "error", err)
		}
	}()

	s := &sender.Sender{
		Link:     l,
		Geometry: geom,
		Env:      environment.New(),
		Limits:   driverVersion.Limits(),
		MsgId:    &sender.MsgId{},
		Opt:      sender.DefaultOption(),
	}
	s.Opt.SendInterval = cfg.SendInterval()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logutil.Info("sending Clear+Sync", "devices", geom.NumDevices())
	if err := s.Send(ctx, datagram.Tuple{First: datagram.Clear{}, Second: datagram.Sync{}}); err != nil {
		return fmt.Errorf("autd3ctl: clear+sync: %w", err)
	}

	logutil.Info("sending Silencer")
	if err := s.Send(ctx, datagram.SilencerFixedUpdateRate{Intensity: 10, Phase: 10}); err != nil {
		return fmt.Errorf("autd3ctl: silencer: %w", err)
	}

	logutil.Info("demo complete")
	return nil
}

func openLink(lc config.LinkConfig) (link.Link, error) {
	switch lc.Kind {
	case config.LinkLoop:
		return looplink.New(1, nil), nil
	case config.LinkSerial:
		return seriallink.New(lc.DeviceName, lc.Baud), nil
	case config.LinkMDNS:
		return mdnslink.New(lc.Address), nil
	default:
		return nil, fmt.Errorf("autd3ctl: unsupported link kind %q", lc.Kind)
	}
}

func runDiscover(args []string) error {
	fs := pflag.NewFlagSet("discover", pflag.ExitOnError)
	mdnsWait := fs.DurationP("mdns-wait", "w", 2*time.Second, "How long to browse for mDNS-advertised bridges.")
	if err := fs.Parse(args); err != nil {
		return err
	}

	serialDevices, err := discover.SerialDevices()
	if err != nil {
		logutil.Warn("serial enumeration failed", "error", err)
	}
	for _, d := range serialDevices {
		fmt.Printf("serial\t%s\t%s %s (%s)\n", d.DevNode, d.Vendor, d.Product, d.Serial)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *mdnsWait+time.Second)
	defer cancel()
	bridges, err := mdnslink.Discover(ctx, *mdnsWait)
	if err != nil {
		logutil.Warn("mdns browse failed", "error", err)
	}
	for _, b := range bridges {
		fmt.Printf("mdns\t%s\n", b)
	}

	return nil
}

func runGPIOWatch(args []string) error {
	fs := pflag.NewFlagSet("gpio-watch", pflag.ExitOnError)
	chip := fs.String("chip", "gpiochip0", "GPIO chip device.")
	offset := fs.Int("offset", 0, "GPIO line offset to watch.")
	duration := fs.DurationP("duration", "t", 30*time.Second, "How long to watch before exiting.")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	w, err := gpiowatch.Watch(ctx, *chip, *offset)
	if err != nil {
		return err
	}
	defer w.Close()

	for edge := range w.Events {
		fmt.Printf("pin=%d rising=%v seqno=%d\n", edge.Pin, edge.Rising, edge.Seqno)
	}
	return nil
}
