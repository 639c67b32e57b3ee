// Copyright 2024 The Kempozer Screen Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package parallel

import (
	"fmt"
	"strings"

	"periph.io/x/conn/v3/gpio"
)

// Direction is the mode of the data lines.
type Direction bool

const (
	// Output drives the data lines.
	Output Direction = false
	// Input releases the data lines so the controller can drive them.
	Input Direction = true
)

func (d Direction) String() string {
	if d == Input {
		return "Input"
	}
	return "Output"
}

// Port is a 32-bit hardware register carrying the data lines.
//
// Other peripherals may share the register; callers only ever change the
// bits they own.
type Port interface {
	// ReadPort returns the current register value.
	ReadPort() (uint32, error)
	// WritePort stores v in the register.
	WritePort(v uint32) error
	// SetDirection switches the lines in mask to dir.
	SetDirection(mask uint32, dir Direction) error
}

// Line is a GPIO pin carrying one bit of a PinPort.
type Line struct {
	Bit uint8
	Pin gpio.PinIO
}

// PinPort is a Port built from individual GPIO pins, for hosts where the data
// lines are not exposed as one register, like a Raspberry Pi through
// periph.io/x/host.
//
// Bits that no Line carries read as zero and are ignored on write.
type PinPort struct {
	lines  []Line
	out    uint32
	driven bool
}

// NewPinPort returns a PinPort of the given lines.
func NewPinPort(lines ...Line) (*PinPort, error) {
	var seen uint32
	for _, l := range lines {
		if l.Pin == nil || l.Pin == gpio.INVALID {
			return nil, fmt.Errorf("parallel: no pin for bit %d", l.Bit)
		}
		if l.Bit >= 32 {
			return nil, fmt.Errorf("parallel: invalid bit %d for %s", l.Bit, l.Pin)
		}
		if seen&(1<<l.Bit) != 0 {
			return nil, fmt.Errorf("parallel: bit %d is used twice", l.Bit)
		}
		seen |= 1 << l.Bit
	}
	return &PinPort{lines: lines}, nil
}

// DataPort returns a PinPort with pins[i] carrying bit i. It pairs with the
// Identity Remapper.
func DataPort(pins ...gpio.PinIO) (*PinPort, error) {
	lines := make([]Line, len(pins))
	for i, p := range pins {
		lines[i] = Line{Bit: uint8(i), Pin: p}
	}
	return NewPinPort(lines...)
}

// ReadPort implements Port.
func (p *PinPort) ReadPort() (uint32, error) {
	var v uint32
	for _, l := range p.lines {
		if l.Pin.Read() == gpio.High {
			v |= 1 << l.Bit
		}
	}
	return v, nil
}

// WritePort implements Port. Only the pins whose level changes are driven.
func (p *PinPort) WritePort(v uint32) error {
	for _, l := range p.lines {
		bit := uint32(1) << l.Bit
		if p.driven && (p.out^v)&bit == 0 {
			continue
		}
		if err := l.Pin.Out(gpio.Level(v&bit != 0)); err != nil {
			return err
		}
	}
	p.out = v
	p.driven = true
	return nil
}

// SetDirection implements Port. Switching back to Output drives the last
// written value.
func (p *PinPort) SetDirection(mask uint32, dir Direction) error {
	for _, l := range p.lines {
		bit := uint32(1) << l.Bit
		if mask&bit == 0 {
			continue
		}
		var err error
		if dir == Input {
			err = l.Pin.In(gpio.PullNoChange, gpio.NoEdge)
		} else {
			err = l.Pin.Out(gpio.Level(p.out&bit != 0))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Halt implements conn.Resource.
func (p *PinPort) Halt() error {
	for _, l := range p.lines {
		if err := l.Pin.Halt(); err != nil {
			return err
		}
	}
	return nil
}

func (p *PinPort) String() string {
	names := make([]string, len(p.lines))
	for i, l := range p.lines {
		names[i] = fmt.Sprintf("%d:%s", l.Bit, l.Pin)
	}
	return "PinPort{" + strings.Join(names, ", ") + "}"
}
