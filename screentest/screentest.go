// Copyright 2024 The Kempozer Screen Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package screentest is meant to be used to test drivers and code built on
// top of screen.Driver.
package screentest

import (
	"errors"
	"fmt"

	"github.com/kempozer/screen"
)

// ErrUnderrun is returned when reading more data bytes than were written.
var ErrUnderrun = errors.New("screentest: read past written data")

// Op is one byte written to a Loopback.
type Op struct {
	Command bool
	Value   byte
}

// Loopback is a screen.Driver built only from the default compositions of
// package screen. Every data byte written is queued and handed back, in
// order, by the read methods. Commands are recorded but not queued.
type Loopback struct {
	W, H uint16

	// Ops is every byte written, in order.
	Ops []Op
	// Selected and Initialized track the driver state.
	Selected    bool
	Initialized bool
	Halted      bool

	command        bool
	queue          []byte
	x1, y1, x2, y2 uint16
}

// NewLoopback returns a Loopback of the given native resolution.
func NewLoopback(w, h uint16) *Loopback {
	return &Loopback{W: w, H: h}
}

func (l *Loopback) String() string {
	return fmt.Sprintf("screentest.Loopback{%dx%d}", l.W, l.H)
}

// Halt implements conn.Resource.
func (l *Loopback) Halt() error {
	l.Halted = true
	return nil
}

// Features implements screen.Driver. Only the command/data signal is
// modeled, everything else is composed.
func (l *Loopback) Features() screen.Features {
	return screen.CommandDataSignal
}

// Initialize implements screen.Driver.
func (l *Loopback) Initialize() error {
	l.Initialized = true
	return nil
}

// Select implements screen.Driver.
func (l *Loopback) Select() error {
	l.Selected = true
	return nil
}

// Deselect implements screen.Driver.
func (l *Loopback) Deselect() error {
	l.Selected = false
	return nil
}

// AssertCommand implements screen.Driver.
func (l *Loopback) AssertCommand() error {
	l.command = true
	return nil
}

// DeassertCommand implements screen.Driver.
func (l *Loopback) DeassertCommand() error {
	l.command = false
	return nil
}

// WriteByte implements screen.Driver.
func (l *Loopback) WriteByte(c byte) error {
	l.Ops = append(l.Ops, Op{Command: l.command, Value: c})
	if !l.command {
		l.queue = append(l.queue, c)
	}
	return nil
}

// Write16 implements screen.Driver.
func (l *Loopback) Write16(v uint16) error { return screen.WriteUint16(l, v) }

// Write32 implements screen.Driver.
func (l *Loopback) Write32(v uint32) error { return screen.WriteUint32(l, v) }

// Write64 implements screen.Driver.
func (l *Loopback) Write64(v uint64) error { return screen.WriteUint64(l, v) }

// WriteBytes implements screen.Driver.
func (l *Loopback) WriteBytes(p []byte) error { return screen.WriteArray(l, p) }

// ReadByte implements screen.Driver.
func (l *Loopback) ReadByte() (byte, error) {
	if len(l.queue) == 0 {
		return 0, ErrUnderrun
	}
	c := l.queue[0]
	l.queue = l.queue[1:]
	return c, nil
}

// Read16 implements screen.Driver.
func (l *Loopback) Read16() (uint16, error) { return screen.ReadUint16(l) }

// Read32 implements screen.Driver.
func (l *Loopback) Read32() (uint32, error) { return screen.ReadUint32(l) }

// Read64 implements screen.Driver.
func (l *Loopback) Read64() (uint64, error) { return screen.ReadUint64(l) }

// ReadBytes implements screen.Driver.
func (l *Loopback) ReadBytes(p []byte) error { return screen.ReadArray(l, p) }

// WritePixel implements screen.Driver. Pixels go out high byte first.
func (l *Loopback) WritePixel(color uint16) error {
	return l.WritePixels([]uint16{color})
}

// WritePixels implements screen.Driver.
func (l *Loopback) WritePixels(colors []uint16) error {
	if len(colors) == 0 {
		return screen.ErrEmptyBuffer
	}
	for _, c := range colors {
		if err := l.writePixel(c); err != nil {
			return err
		}
	}
	return nil
}

// WriteRepeatedPixel implements screen.Driver.
func (l *Loopback) WriteRepeatedPixel(n int, color uint16) error {
	if n <= 0 {
		return screen.ErrEmptyBuffer
	}
	for range n {
		if err := l.writePixel(color); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loopback) writePixel(c uint16) error {
	if err := l.WriteByte(byte(c >> 8)); err != nil {
		return err
	}
	return l.WriteByte(byte(c))
}

// ReadPixels implements screen.Driver.
func (l *Loopback) ReadPixels(colors []uint16) error {
	if len(colors) == 0 {
		return screen.ErrEmptyBuffer
	}
	var b [2]byte
	for i := range colors {
		if err := screen.ReadArray(l, b[:]); err != nil {
			return err
		}
		colors[i] = uint16(b[0])<<8 | uint16(b[1])
	}
	return nil
}

// AddressWindow implements screen.Driver.
func (l *Loopback) AddressWindow() (x1, y1, x2, y2 uint16) {
	return l.x1, l.y1, l.x2, l.y2
}

// SetAddressWindow implements screen.Driver. The coordinates are written as
// data in x1, y1, x2, y2 order.
func (l *Loopback) SetAddressWindow(x1, y1, x2, y2 uint16) error {
	l.x1, l.y1, l.x2, l.y2 = x1, y1, x2, y2
	for _, v := range []uint16{x1, y1, x2, y2} {
		if err := l.Write16(v); err != nil {
			return err
		}
	}
	return nil
}

// Rotate implements screen.Driver. Rotation is not supported and the call is
// ignored.
func (l *Loopback) Rotate(rotation int) error {
	return nil
}

// Rotated implements screen.Driver.
func (l *Loopback) Rotated() bool {
	return false
}

// Resolution implements screen.Driver.
func (l *Loopback) Resolution() (w, h uint16) {
	return screen.Resolution(l.W, l.H, l.Rotated())
}

// Pending returns the number of data bytes that can still be read.
func (l *Loopback) Pending() int {
	return len(l.queue)
}

var _ screen.Driver = &Loopback{}
