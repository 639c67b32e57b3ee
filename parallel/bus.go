// Copyright 2024 The Kempozer Screen Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package parallel

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// DefaultReadSettle is the delay between asserting the read strobe and
// sampling the data lines of a HX8357 on a 600MHz Teensy 4.1.
const DefaultReadSettle = 475 * time.Nanosecond

// Bus is an 8-bit parallel bus with active low read and write strobes.
//
// Chip select and command/data lines are left to the controller driver.
type Bus struct {
	port   Port
	remap  *Remapper
	wr     gpio.PinOut
	rd     gpio.PinOut
	clock  Clock
	settle time.Duration
}

// NewBus returns a Bus moving bytes through port.
//
// settle is the delay between asserting rd and sampling the port. A nil
// clock means System.
func NewBus(port Port, remap *Remapper, wr, rd gpio.PinOut, clock Clock, settle time.Duration) (*Bus, error) {
	if port == nil {
		return nil, errors.New("parallel: port is required")
	}
	if remap == nil {
		return nil, errors.New("parallel: remapper is required")
	}
	if wr == nil || rd == nil {
		return nil, errors.New("parallel: wr and rd pins are required")
	}
	if clock == nil {
		clock = System
	}
	return &Bus{port: port, remap: remap, wr: wr, rd: rd, clock: clock, settle: settle}, nil
}

func (b *Bus) String() string {
	return fmt.Sprintf("parallel.Bus{%v, %s, wr=%s, rd=%s}", b.port, b.remap, b.wr, b.rd)
}

// Output switches the data lines to output.
func (b *Bus) Output() error {
	return b.port.SetDirection(b.remap.Mask(), Output)
}

// WriteByte puts c on the data lines and pulses the write strobe.
//
// Register bits outside the data lines are written back unchanged.
func (b *Bus) WriteByte(c byte) error {
	v, err := b.port.ReadPort()
	if err != nil {
		return err
	}
	if err := b.port.WritePort(v&^b.remap.Mask() | b.remap.Map(c)); err != nil {
		return err
	}
	if err := b.wr.Out(gpio.Low); err != nil {
		return err
	}
	return b.wr.Out(gpio.High)
}

// Write implements io.Writer.
func (b *Bus) Write(p []byte) (int, error) {
	for i, c := range p {
		if err := b.WriteByte(c); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

// ReadByte implements io.ByteReader.
func (b *Bus) ReadByte() (byte, error) {
	var p [1]byte
	if _, err := b.Read(p[:]); err != nil {
		return 0, err
	}
	return p[0], nil
}

// Read implements io.Reader. It always fills p.
//
// The data lines are switched to input once for the whole transfer, then
// every byte is strobed in with rd.
func (b *Bus) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	mask := b.remap.Mask()
	if err := b.port.SetDirection(mask, Input); err != nil {
		return 0, err
	}
	n, err := b.strobeIn(p)
	if err2 := b.port.SetDirection(mask, Output); err == nil {
		err = err2
	}
	return n, err
}

func (b *Bus) strobeIn(p []byte) (int, error) {
	for i := range p {
		if err := b.rd.Out(gpio.Low); err != nil {
			return i, err
		}
		b.clock.Sleep(b.settle)
		v, err := b.port.ReadPort()
		if err != nil {
			return i, err
		}
		p[i] = b.remap.Unmap(v)
		if err := b.rd.Out(gpio.High); err != nil {
			return i, err
		}
	}
	return len(p), nil
}
