// Copyright 2024 The Kempozer Screen Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// hx8357 initializes a HX8357 controller and fills the screen.
//
// Without hardware, -sim drives a simulated controller over a fake bus and
// can print the result on the terminal.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/kempozer/screen/hx8357"
	"github.com/kempozer/screen/hx8357/hx8357sim"
	"github.com/kempozer/screen/parallel"
	"github.com/kempozer/screen/parallel/paralleltest"
	"github.com/mattn/go-colorable"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

type optionFlags struct {
	sim    bool
	cs     string
	dc     string
	wr     string
	rd     string
	rst    string
	data   string
	rotate int
	fill   string
	sleep  bool
	render bool
	step   int

	debug bool
	quiet bool
}

func main() {
	options := readArguments()
	logger := createLogger(options.debug, options.quiet)
	if !options.quiet {
		printBanner()
	}
	if err := run(logger, options, colorable.NewColorableStdout()); err != nil {
		logger.Error("Running failed", log.Err(err))
		os.Exit(1)
	}
}

func readArguments() optionFlags {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	options := optionFlags{}

	flags.BoolVar(&options.sim, "sim", false, "drive a simulated controller instead of hardware")
	flags.StringVar(&options.cs, "cs", "GPIO22", "chip select pin")
	flags.StringVar(&options.dc, "dc", "GPIO23", "command/data pin")
	flags.StringVar(&options.wr, "wr", "GPIO24", "write strobe pin")
	flags.StringVar(&options.rd, "rd", "GPIO25", "read strobe pin")
	flags.StringVar(&options.rst, "rst", "GPIO27", "reset pin")
	flags.StringVar(&options.data, "data", "GPIO4,GPIO5,GPIO6,GPIO7,GPIO8,GPIO9,GPIO10,GPIO11", "comma separated D0..D7 pins")
	flags.IntVar(&options.rotate, "rotate", 0, "rotation, 0 to 3")
	flags.StringVar(&options.fill, "fill", "black", "RGB565 fill color, a name or a number like 0xF800")
	flags.BoolVar(&options.sleep, "sleep", false, "put the controller to sleep and wake it up before exiting")
	flags.BoolVar(&options.render, "render", false, "print the simulated panel, requires -sim")
	flags.IntVar(&options.step, "step", 8, "render one pixel out of step in each direction")
	flags.BoolVar(&options.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&options.quiet, "q", false, "perform operations quietly")

	if err := flags.Parse(os.Args[1:]); err != nil || flags.NArg() != 0 {
		printBanner()
		fmt.Printf("usage: hx8357 [options]\n\n")
		flags.PrintDefaults()
		os.Exit(1)
	}
	return options
}

func createLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

func printBanner() {
	fmt.Println("[-------------------------------]")
	fmt.Println("[ hx8357 - parallel TFT driver  ]")
	fmt.Printf("[-------------------------------]\n\n")
	fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
}

func run(logger *log.Logger, options optionFlags, out io.Writer) error {
	if options.render && !options.sim {
		return errors.New("-render requires -sim")
	}
	color, err := parseColor(options.fill)
	if err != nil {
		return err
	}

	var dev *hx8357.Dev
	var panel *hx8357sim.Panel
	if options.sim {
		dev, panel, err = openSim(logger)
	} else {
		dev, err = openHardware(options)
	}
	if err != nil {
		return err
	}

	if err := dev.Initialize(); err != nil {
		return err
	}
	logger.Info("Initialized", log.String("device", dev.String()))

	if err := logStatus(logger, dev); err != nil {
		return err
	}
	if err := fill(dev, options.rotate, color); err != nil {
		return err
	}
	if options.sleep {
		if err := dev.SleepOn(); err != nil {
			return fmt.Errorf("entering sleep: %w", err)
		}
		if err := dev.SleepOff(); err != nil {
			return fmt.Errorf("leaving sleep: %w", err)
		}
	}

	if options.render {
		if err := panel.Render(out, options.step); err != nil {
			return fmt.Errorf("rendering: %w", err)
		}
	}
	return dev.Halt()
}

func logStatus(logger *log.Logger, dev *hx8357.Dev) error {
	id, err := dev.ReadIdentification()
	if err != nil {
		return fmt.Errorf("reading identification: %w", err)
	}
	mode, err := dev.ReadPowerMode()
	if err != nil {
		return fmt.Errorf("reading power mode: %w", err)
	}
	logger.Info("Status",
		log.String("id", fmt.Sprintf("%02X", id[:])),
		log.String("power", mode.String()))
	return nil
}

func fill(dev *hx8357.Dev, rotation int, color uint16) error {
	if err := dev.Rotate(rotation); err != nil {
		return fmt.Errorf("rotating: %w", err)
	}
	w, h := dev.Resolution()
	if err := dev.SetAddressWindow(0, 0, w-1, h-1); err != nil {
		return fmt.Errorf("setting address window: %w", err)
	}
	if err := dev.WriteRepeatedPixel(int(w)*int(h), color); err != nil {
		return fmt.Errorf("filling: %w", err)
	}
	return nil
}

func openHardware(options optionFlags) (*hx8357.Dev, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("initializing host: %w", err)
	}
	names, err := parsePins(options.data)
	if err != nil {
		return nil, err
	}
	data := make([]gpio.PinIO, len(names))
	for i, name := range names {
		if data[i], err = lookupPin(name); err != nil {
			return nil, err
		}
	}
	port, err := parallel.DataPort(data...)
	if err != nil {
		return nil, err
	}

	var pins hx8357.Pins
	for _, p := range []struct {
		dst  *gpio.PinOut
		name string
	}{
		{&pins.CS, options.cs},
		{&pins.DC, options.dc},
		{&pins.WR, options.wr},
		{&pins.RD, options.rd},
		{&pins.RST, options.rst},
	} {
		pin, err := lookupPin(p.name)
		if err != nil {
			return nil, err
		}
		*p.dst = pin
	}
	return hx8357.New(port, parallel.Identity, pins, &hx8357.DefaultOpts)
}

func lookupPin(name string) (gpio.PinIO, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("unknown pin %q", name)
	}
	return p, nil
}

// simClock times the simulated controller.
var simClock parallel.Clock = parallel.System

func openSim(logger *log.Logger) (*hx8357.Dev, *hx8357sim.Panel, error) {
	bus := paralleltest.NewBus(parallel.Teensy41)
	opts := hx8357.DefaultOpts
	opts.Clock = simClock
	panel := hx8357sim.New(int(opts.W), int(opts.H))
	bus.Target = &tracer{Target: panel, logger: logger}
	pins := hx8357.Pins{CS: bus.CS, DC: bus.DC, WR: bus.WR, RD: bus.RD, RST: bus.RST}
	dev, err := hx8357.New(bus, parallel.Teensy41, pins, &opts)
	if err != nil {
		return nil, nil, err
	}
	return dev, panel, nil
}

// tracer logs the commands received by the simulated controller.
type tracer struct {
	paralleltest.Target
	logger *log.Logger
}

func (t *tracer) Command(c byte) {
	t.logger.Debug("Command", log.String("cmd", hx8357.Command(c).String()))
	t.Target.Command(c)
}

// parsePins splits a comma separated list of exactly 8 pin names.
func parsePins(s string) ([]string, error) {
	var names []string
	for _, n := range strings.Split(s, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	if len(names) != 8 {
		return nil, fmt.Errorf("expected 8 data pins, got %d", len(names))
	}
	return names, nil
}

var colors = map[string]uint16{
	"black":   0x0000,
	"white":   0xFFFF,
	"red":     0xF800,
	"green":   0x07E0,
	"blue":    0x001F,
	"cyan":    0x07FF,
	"magenta": 0xF81F,
	"yellow":  0xFFE0,
}

// parseColor returns the RGB565 value of a color name or number.
func parseColor(s string) (uint16, error) {
	if c, ok := colors[strings.ToLower(s)]; ok {
		return c, nil
	}
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return uint16(v), nil
}
