// Copyright 2024 The Kempozer Screen Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hx8357

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/kempozer/screen"
	"github.com/kempozer/screen/parallel"
	"periph.io/x/conn/v3/gpio"
)

// Pins are the control lines of the controller. All are active low.
type Pins struct {
	CS  gpio.PinOut
	DC  gpio.PinOut
	WR  gpio.PinOut
	RD  gpio.PinOut
	RST gpio.PinOut
}

// Opts defines the options for the device.
type Opts struct {
	// W and H are the native resolution, before rotation.
	W, H uint16
	// ReadSettle is the delay between asserting RD and sampling the data
	// lines. Zero means parallel.DefaultReadSettle.
	ReadSettle time.Duration
	// Clock is used for every delay. Nil means parallel.System.
	Clock parallel.Clock
}

// DefaultOpts is the Adafruit 3.5" 320x480 breakout driven by a Teensy 4.1.
var DefaultOpts = Opts{
	W:          320,
	H:          480,
	ReadSettle: parallel.DefaultReadSettle,
}

const (
	// settleDelay is the minimum time between a reset or a sleep transition
	// and the next sleep transition.
	settleDelay = 120 * time.Millisecond
	// commandDelay is the time the controller is busy after a reset or
	// leaving sleep.
	commandDelay = 5 * time.Millisecond
	// pixelChunk is the number of pixels encoded per bus write.
	pixelChunk = 256
)

// Dev is a handle to a HX8357 controller on an 8-bit parallel bus.
type Dev struct {
	bus   *parallel.Bus
	pins  Pins
	clock parallel.Clock

	w, h           uint16
	x1, y1, x2, y2 uint16
	rotated        bool

	lastReset    time.Time
	lastSleepOn  time.Time
	lastSleepOff time.Time
}

// New returns a Dev driving the controller through port.
//
// The controller is not touched, call Initialize before use.
func New(port parallel.Port, remap *parallel.Remapper, pins Pins, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if pins.CS == nil || pins.DC == nil || pins.WR == nil || pins.RD == nil || pins.RST == nil {
		return nil, errors.New("hx8357: all control pins are required")
	}
	if opts.W == 0 || opts.H == 0 {
		return nil, fmt.Errorf("hx8357: invalid resolution %dx%d", opts.W, opts.H)
	}
	clock := opts.Clock
	if clock == nil {
		clock = parallel.System
	}
	settle := opts.ReadSettle
	if settle == 0 {
		settle = parallel.DefaultReadSettle
	}
	bus, err := parallel.NewBus(port, remap, pins.WR, pins.RD, clock, settle)
	if err != nil {
		return nil, fmt.Errorf("hx8357: %w", err)
	}
	return &Dev{bus: bus, pins: pins, clock: clock, w: opts.W, h: opts.H}, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("HX8357{%s, %dx%d}", d.bus, d.w, d.h)
}

// Halt implements conn.Resource.
//
// It turns the display off and puts the controller to sleep.
func (d *Dev) Halt() error {
	if err := d.DisplayOff(); err != nil {
		return err
	}
	return d.SleepOn()
}

// Features implements screen.Driver.
func (d *Dev) Features() screen.Features {
	return screen.Native16 | screen.Native32 | screen.Native64 | screen.NativeArray |
		screen.CommandDataSignal | screen.ReadWriteSignal | screen.Rotation
}

// Initialize implements screen.Driver.
//
// It resets the controller, configures the panel for 16 bits pixels in
// rotation 0 and turns the display on. It takes a bit more than 260ms.
func (d *Dev) Initialize() error {
	eh := errorHandler{d: d}
	eh.pinOut(d.pins.DC, gpio.High)
	eh.pinOut(d.pins.WR, gpio.High)
	eh.pinOut(d.pins.RD, gpio.High)
	eh.pinOut(d.pins.RST, gpio.High)
	eh.do(d.bus.Output)

	eh.do(d.Select)
	eh.do(d.Reset)
	eh.do(d.DisplayOff)
	initPanel(&eh)

	setPixelFormat(&eh, Bits16, Bits16)
	eh.do(func() error { return d.Rotate(0) })
	eh.do(func() error { return d.SetSync(true) })
	setSyncScanLine(&eh, 0x0002)
	eh.do(d.SleepOff)
	eh.do(d.DisplayOn)
	if eh.err != nil {
		return fmt.Errorf("hx8357: initialize: %w", eh.err)
	}
	return nil
}

// Select implements screen.Driver.
func (d *Dev) Select() error {
	return d.pins.CS.Out(gpio.Low)
}

// Deselect implements screen.Driver.
func (d *Dev) Deselect() error {
	return d.pins.CS.Out(gpio.High)
}

// AssertCommand implements screen.Driver.
func (d *Dev) AssertCommand() error {
	return d.pins.DC.Out(gpio.Low)
}

// DeassertCommand implements screen.Driver.
func (d *Dev) DeassertCommand() error {
	return d.pins.DC.Out(gpio.High)
}

// WriteByte implements screen.Driver.
func (d *Dev) WriteByte(c byte) error {
	return d.bus.WriteByte(c)
}

// Write16 implements screen.Driver. The most significant byte goes first,
// which is the parameter order of the controller.
func (d *Dev) Write16(v uint16) error {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	return d.WriteBytes(b[:])
}

// Write32 implements screen.Driver, most significant byte first.
func (d *Dev) Write32(v uint32) error {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return d.WriteBytes(b[:])
}

// Write64 implements screen.Driver, most significant byte first.
func (d *Dev) Write64(v uint64) error {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return d.WriteBytes(b[:])
}

// WriteBytes implements screen.Driver.
func (d *Dev) WriteBytes(p []byte) error {
	if len(p) == 0 {
		return screen.ErrEmptyBuffer
	}
	_, err := d.bus.Write(p)
	return err
}

// ReadByte implements screen.Driver.
func (d *Dev) ReadByte() (byte, error) {
	return d.bus.ReadByte()
}

// Read16 implements screen.Driver, most significant byte first.
func (d *Dev) Read16() (uint16, error) {
	var b [2]byte
	if err := d.ReadBytes(b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b[:]), nil
}

// Read32 implements screen.Driver, most significant byte first.
func (d *Dev) Read32() (uint32, error) {
	var b [4]byte
	if err := d.ReadBytes(b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

// Read64 implements screen.Driver, most significant byte first.
func (d *Dev) Read64() (uint64, error) {
	var b [8]byte
	if err := d.ReadBytes(b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

// ReadBytes implements screen.Driver. The data lines switch direction once
// for the whole transfer.
func (d *Dev) ReadBytes(p []byte) error {
	if len(p) == 0 {
		return screen.ErrEmptyBuffer
	}
	_, err := d.bus.Read(p)
	return err
}

// WritePixel implements screen.Driver.
func (d *Dev) WritePixel(color uint16) error {
	return d.WritePixels([]uint16{color})
}

// WritePixels implements screen.Driver.
//
// Each call starts a new memory write at the top left corner of the
// addressing window.
func (d *Dev) WritePixels(colors []uint16) error {
	if len(colors) == 0 {
		return screen.ErrEmptyBuffer
	}
	if err := d.writeCommand(MemoryWrite); err != nil {
		return err
	}
	var buf [2 * pixelChunk]byte
	for len(colors) != 0 {
		n := min(len(colors), pixelChunk)
		for i, c := range colors[:n] {
			binary.BigEndian.PutUint16(buf[2*i:], c)
		}
		if _, err := d.bus.Write(buf[:2*n]); err != nil {
			return err
		}
		colors = colors[n:]
	}
	return nil
}

// WriteRepeatedPixel implements screen.Driver.
func (d *Dev) WriteRepeatedPixel(n int, color uint16) error {
	if n <= 0 {
		return screen.ErrEmptyBuffer
	}
	if err := d.writeCommand(MemoryWrite); err != nil {
		return err
	}
	var buf [2 * pixelChunk]byte
	for i := 0; i < pixelChunk; i++ {
		binary.BigEndian.PutUint16(buf[2*i:], color)
	}
	for n != 0 {
		c := min(n, pixelChunk)
		if _, err := d.bus.Write(buf[:2*c]); err != nil {
			return err
		}
		n -= c
	}
	return nil
}

// ReadPixels implements screen.Driver.
//
// The controller sends a dummy byte first, then every pixel most significant
// byte first.
func (d *Dev) ReadPixels(colors []uint16) error {
	if len(colors) == 0 {
		return screen.ErrEmptyBuffer
	}
	if err := d.writeCommand(MemoryRead); err != nil {
		return err
	}
	buf := make([]byte, 1+2*len(colors))
	if err := d.ReadBytes(buf); err != nil {
		return err
	}
	for i := range colors {
		colors[i] = binary.BigEndian.Uint16(buf[1+2*i:])
	}
	return nil
}

// AddressWindow implements screen.Driver.
func (d *Dev) AddressWindow() (x1, y1, x2, y2 uint16) {
	return d.x1, d.y1, d.x2, d.y2
}

// SetAddressWindow implements screen.Driver.
func (d *Dev) SetAddressWindow(x1, y1, x2, y2 uint16) error {
	d.x1, d.y1, d.x2, d.y2 = x1, y1, x2, y2
	eh := errorHandler{d: d}
	setAddressWindow(&eh, x1, y1, x2, y2)
	return eh.err
}

// Rotate implements screen.Driver.
//
// 0 and 2 are portrait, 1 and any other value are landscape.
func (d *Dev) Rotate(rotation int) error {
	m := rotationFlags(rotation)
	if err := d.SetMemoryAccessControl(m); err != nil {
		return err
	}
	d.rotated = m&Rotated != 0
	return nil
}

func rotationFlags(rotation int) MemoryAccessControl {
	switch rotation {
	case 0:
		return BGRFilter | YReversed
	case 1:
		return BGRFilter | Rotated | XReversed | YReversed
	case 2:
		return BGRFilter | XReversed
	default:
		return BGRFilter | Rotated
	}
}

// Rotated implements screen.Driver.
func (d *Dev) Rotated() bool {
	return d.rotated
}

// Resolution implements screen.Driver.
func (d *Dev) Resolution() (w, h uint16) {
	return screen.Resolution(d.w, d.h, d.rotated)
}

// SetMemoryAccessControl sets the scan direction and color order. Prefer
// Rotate, which keeps Rotated in sync.
func (d *Dev) SetMemoryAccessControl(m MemoryAccessControl) error {
	eh := errorHandler{d: d}
	setMemoryAccessControl(&eh, m)
	return eh.err
}

// SetPixelFormat sets the color depth of the parallel interface (dbi) and of
// the RGB interface (dpi).
func (d *Dev) SetPixelFormat(dbi, dpi PixelFormat) error {
	eh := errorHandler{d: d}
	setPixelFormat(&eh, dbi, dpi)
	return eh.err
}

// SetFrameRate sets the refresh rate in normal and idle mode.
func (d *Dev) SetFrameRate(normal, idle FrameRate) error {
	eh := errorHandler{d: d}
	setFrameRate(&eh, normal, idle)
	return eh.err
}

func (d *Dev) writeCommand(c Command) error {
	return screen.WriteCommand(d, c)
}

var _ screen.Driver = &Dev{}
