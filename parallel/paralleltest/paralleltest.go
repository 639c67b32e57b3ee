// Copyright 2024 The Kempozer Screen Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package paralleltest is meant to be used to test drivers over a
// parallel.Bus.
//
// Bus is a fake data port with its five control lines. It decodes the strobes
// a driver produces into a list of IO and can hand the traffic to a Target,
// a model of the controller at the other end.
package paralleltest

import (
	"fmt"
	"sync"
	"time"

	"github.com/kempozer/screen/parallel"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

// Target is the controller side of a Bus.
type Target interface {
	// Command is called for each byte written while DC is low.
	Command(c byte)
	// Data is called for each byte written while DC is high.
	Data(c byte)
	// Read returns the byte the controller drives on a read strobe.
	Read() byte
}

// IO is one byte transferred on the bus.
type IO struct {
	Command bool
	Read    bool
	Value   byte
}

func (io IO) String() string {
	kind := "data"
	if io.Command {
		kind = "cmd"
	}
	if io.Read {
		return fmt.Sprintf("read %s 0x%02X", kind, io.Value)
	}
	return fmt.Sprintf("%s 0x%02X", kind, io.Value)
}

// Bus implements parallel.Port and provides the control pins.
//
// Bytes are only decoded while CS is low: a write on the rising edge of WR,
// a read on the falling edge of RD.
type Bus struct {
	sync.Mutex
	Remap *parallel.Remapper
	// Target, when set, receives the traffic and provides read data.
	Target Target
	// Reads is the data served on read strobes when Target is nil. Zero is
	// read once it is exhausted.
	Reads []byte

	// Ops is the decoded traffic.
	Ops []IO
	// Directions records every SetDirection call.
	Directions []parallel.Direction
	// Register is the port register. Set bits outside Remap.Mask() to check
	// they survive.
	Register uint32

	CS, DC, WR, RD, RST *Pin
}

// NewBus returns a Bus with every control line high.
func NewBus(remap *parallel.Remapper) *Bus {
	b := &Bus{Remap: remap}
	b.CS = b.newPin("CS", 0)
	b.DC = b.newPin("DC", 1)
	b.WR = b.newPin("WR", 2)
	b.RD = b.newPin("RD", 3)
	b.RST = b.newPin("RST", 4)
	return b
}

func (b *Bus) newPin(name string, num int) *Pin {
	return &Pin{Pin: gpiotest.Pin{N: name, Num: num, L: gpio.High}, bus: b}
}

func (b *Bus) String() string {
	return "paralleltest.Bus"
}

// ReadPort implements parallel.Port.
func (b *Bus) ReadPort() (uint32, error) {
	b.Lock()
	defer b.Unlock()
	return b.Register, nil
}

// WritePort implements parallel.Port.
func (b *Bus) WritePort(v uint32) error {
	b.Lock()
	defer b.Unlock()
	b.Register = v
	return nil
}

// SetDirection implements parallel.Port.
func (b *Bus) SetDirection(mask uint32, dir parallel.Direction) error {
	b.Lock()
	defer b.Unlock()
	if mask != b.Remap.Mask() {
		return fmt.Errorf("paralleltest: direction mask %#x, want %#x", mask, b.Remap.Mask())
	}
	b.Directions = append(b.Directions, dir)
	return nil
}

// Written returns the bytes written, Command tells if DC was low.
func (b *Bus) Written() []IO {
	b.Lock()
	defer b.Unlock()
	var out []IO
	for _, op := range b.Ops {
		if !op.Read {
			out = append(out, op)
		}
	}
	return out
}

// Reset forgets the recorded traffic.
func (b *Bus) Reset() {
	b.Lock()
	defer b.Unlock()
	b.Ops = nil
	b.Directions = nil
}

func (b *Bus) edge(p *Pin, prev, l gpio.Level) {
	b.Lock()
	defer b.Unlock()
	if prev == l || b.CS.Read() == gpio.High {
		return
	}
	command := b.DC.Read() == gpio.Low
	switch {
	case p == b.WR && l == gpio.High:
		v := b.Remap.Unmap(b.Register)
		b.Ops = append(b.Ops, IO{Command: command, Value: v})
		if b.Target != nil {
			if command {
				b.Target.Command(v)
			} else {
				b.Target.Data(v)
			}
		}
	case p == b.RD && l == gpio.Low:
		var v byte
		if b.Target != nil {
			v = b.Target.Read()
		} else if len(b.Reads) != 0 {
			v = b.Reads[0]
			b.Reads = b.Reads[1:]
		}
		b.Register = b.Register&^b.Remap.Mask() | b.Remap.Map(v)
		b.Ops = append(b.Ops, IO{Command: command, Read: true, Value: v})
	}
}

// Pin is a control line of a Bus.
type Pin struct {
	gpiotest.Pin
	bus *Bus
}

// Out implements gpio.PinOut.
func (p *Pin) Out(l gpio.Level) error {
	prev := p.Pin.Read()
	if err := p.Pin.Out(l); err != nil {
		return err
	}
	p.bus.edge(p, prev, l)
	return nil
}

// Clock is a fake parallel.Clock. Time only moves on Sleep and Advance.
type Clock struct {
	sync.Mutex
	T      time.Time
	Sleeps []time.Duration
}

// NewClock returns a Clock at an arbitrary non-zero time.
func NewClock() *Clock {
	return &Clock{T: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now implements parallel.Clock.
func (c *Clock) Now() time.Time {
	c.Lock()
	defer c.Unlock()
	return c.T
}

// Sleep implements parallel.Clock.
func (c *Clock) Sleep(d time.Duration) {
	c.Lock()
	defer c.Unlock()
	c.Sleeps = append(c.Sleeps, d)
	c.T = c.T.Add(d)
}

// Advance moves time forward without recording a sleep.
func (c *Clock) Advance(d time.Duration) {
	c.Lock()
	defer c.Unlock()
	c.T = c.T.Add(d)
}

// Delays returns the recorded sleeps of at least min, in order.
func (c *Clock) Delays(min time.Duration) []time.Duration {
	c.Lock()
	defer c.Unlock()
	var out []time.Duration
	for _, d := range c.Sleeps {
		if d >= min {
			out = append(out, d)
		}
	}
	return out
}

var _ parallel.Port = &Bus{}
var _ parallel.Clock = &Clock{}
var _ gpio.PinOut = &Pin{}
