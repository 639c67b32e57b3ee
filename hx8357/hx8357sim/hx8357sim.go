// Copyright 2024 The Kempozer Screen Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package hx8357sim models a HX8357-D controller at the other end of a
// paralleltest.Bus.
//
// It keeps enough state to check a driver end to end: the frame memory,
// addressing window, scan direction and power state. Panel timing is not
// modeled.
package hx8357sim

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"github.com/kempozer/screen/hx8357"
	"github.com/kempozer/screen/parallel/paralleltest"
	"github.com/maruel/ansi256"
)

// DefaultID is returned by ReadDisplayIdentification.
var DefaultID = [3]byte{0x00, 0x80, 0x00}

// Panel is a simulated controller and its frame memory.
type Panel struct {
	W, H int
	// RAM is the frame memory, row major.
	RAM []uint16
	// ID is returned by ReadDisplayIdentification.
	ID [3]byte
	// Palette is used by Render. Nil means ansi256.Default.
	Palette *ansi256.Palette

	MADCTL      hx8357.MemoryAccessControl
	PixelFormat byte
	Extension   bool
	Sleeping    bool
	DisplayOn   bool
	Idle        bool
	Inverted    bool
	Partial     bool
	Sync        bool
	// Registers holds the parameters of the commands not otherwise modeled.
	Registers map[hx8357.Command][]byte

	cmd    hx8357.Command
	params []byte
	// Addressing window in controller coordinates.
	colStart, colEnd   int
	pageStart, pageEnd int
	col, page          int
	hi                 bool
	pixel              uint16
	out                []byte
}

// New returns a Panel in its power-on state.
func New(w, h int) *Panel {
	p := &Panel{W: w, H: h, RAM: make([]uint16, w*h), ID: DefaultID}
	p.reset()
	return p
}

func (p *Panel) reset() {
	p.MADCTL = 0
	p.PixelFormat = 0x66
	p.Extension = false
	p.Sleeping = true
	p.DisplayOn = false
	p.Idle = false
	p.Inverted = false
	p.Partial = false
	p.Sync = false
	p.Registers = map[hx8357.Command][]byte{}
	p.colStart, p.colEnd = 0, p.W-1
	p.pageStart, p.pageEnd = 0, p.H-1
	p.out = nil
}

func (p *Panel) String() string {
	return fmt.Sprintf("hx8357sim.Panel{%dx%d}", p.W, p.H)
}

// Command implements paralleltest.Target.
func (p *Panel) Command(c byte) {
	p.cmd = hx8357.Command(c)
	p.params = p.params[:0]
	p.out = nil
	switch p.cmd {
	case hx8357.SoftReset:
		p.reset()
	case hx8357.SleepIn:
		p.Sleeping = true
	case hx8357.SleepOut:
		p.Sleeping = false
	case hx8357.PartialModeOn:
		p.Partial = true
	case hx8357.NormalModeOn:
		p.Partial = false
	case hx8357.InversionOff:
		p.Inverted = false
	case hx8357.InversionOn:
		p.Inverted = true
	case hx8357.DisplayOffCmd:
		p.DisplayOn = false
	case hx8357.DisplayOnCmd:
		p.DisplayOn = true
	case hx8357.TearingEffectOff:
		p.Sync = false
	case hx8357.TearingEffectOn:
		p.Sync = true
	case hx8357.IdleOff:
		p.Idle = false
	case hx8357.IdleOn:
		p.Idle = true
	case hx8357.MemoryWrite:
		p.col, p.page, p.hi = p.colStart, p.pageStart, true
	case hx8357.MemoryRead:
		p.col, p.page, p.hi = p.colStart, p.pageStart, true
		// Dummy byte.
		p.out = []byte{0}
	case hx8357.ReadDisplayIdentification:
		p.out = []byte{0, p.ID[0], p.ID[1], p.ID[2]}
	case hx8357.ReadDisplayPowerMode:
		p.out = []byte{0, byte(p.PowerMode())}
	case hx8357.ReadDisplayMemoryAccessControl:
		p.out = []byte{0, byte(p.MADCTL)}
	case hx8357.ReadDisplayPixelFormat:
		p.out = []byte{0, p.PixelFormat}
	}
}

// Data implements paralleltest.Target.
func (p *Panel) Data(c byte) {
	if p.cmd == hx8357.MemoryWrite || p.cmd == hx8357.MemoryWriteContinue {
		if p.hi {
			p.pixel = uint16(c) << 8
		} else {
			p.store(p.pixel | uint16(c))
		}
		p.hi = !p.hi
		return
	}
	p.params = append(p.params, c)
	switch p.cmd {
	case hx8357.ColumnAddressSet:
		if len(p.params) == 4 {
			p.colStart, p.colEnd = be16(p.params[0:]), be16(p.params[2:])
		}
	case hx8357.PageAddressSet:
		if len(p.params) == 4 {
			p.pageStart, p.pageEnd = be16(p.params[0:]), be16(p.params[2:])
		}
	case hx8357.MemoryAccessControlSet:
		p.MADCTL = hx8357.MemoryAccessControl(c)
	case hx8357.InterfacePixelFormat:
		p.PixelFormat = c
	case hx8357.SetExtensionCommand:
		p.Extension = bytes.Equal(p.params, []byte{0xFF, 0xB3, 0x57})
		p.Registers[p.cmd] = append([]byte(nil), p.params...)
	default:
		p.Registers[p.cmd] = append([]byte(nil), p.params...)
	}
}

// Read implements paralleltest.Target.
func (p *Panel) Read() byte {
	if len(p.out) != 0 {
		c := p.out[0]
		p.out = p.out[1:]
		return c
	}
	if p.cmd != hx8357.MemoryRead && p.cmd != hx8357.MemoryReadContinue {
		return 0
	}
	v := p.load()
	if p.hi {
		p.hi = false
		return byte(v >> 8)
	}
	p.hi = true
	p.advance()
	return byte(v)
}

// PowerMode returns the status as reported by ReadDisplayPowerMode.
func (p *Panel) PowerMode() hx8357.PowerMode {
	m := hx8357.PowerBooster
	if p.Idle {
		m |= hx8357.PowerIdle
	}
	if p.Partial {
		m |= hx8357.PowerPartial
	} else {
		m |= hx8357.PowerNormal
	}
	if !p.Sleeping {
		m |= hx8357.PowerAwake
	}
	if p.DisplayOn {
		m |= hx8357.PowerDisplay
	}
	return m
}

// Pixel returns the frame memory content at x, y.
func (p *Panel) Pixel(x, y int) uint16 {
	if x < 0 || y < 0 || x >= p.W || y >= p.H {
		return 0
	}
	return p.RAM[y*p.W+x]
}

// locate returns the frame memory index of the cursor.
func (p *Panel) locate() (int, bool) {
	x, y := p.col, p.page
	if p.MADCTL&hx8357.Rotated != 0 {
		x, y = y, x
	}
	if p.MADCTL&hx8357.XReversed != 0 {
		x = p.W - 1 - x
	}
	if p.MADCTL&hx8357.YReversed != 0 {
		y = p.H - 1 - y
	}
	if x < 0 || y < 0 || x >= p.W || y >= p.H {
		return 0, false
	}
	return y*p.W + x, true
}

func (p *Panel) store(v uint16) {
	if i, ok := p.locate(); ok {
		p.RAM[i] = v
	}
	p.advance()
}

func (p *Panel) load() uint16 {
	if i, ok := p.locate(); ok {
		return p.RAM[i]
	}
	return 0
}

// advance moves the cursor along the column, then to the next page. It
// wraps to the start of the window.
func (p *Panel) advance() {
	if p.col++; p.col <= p.colEnd {
		return
	}
	p.col = p.colStart
	if p.page++; p.page > p.pageEnd {
		p.page = p.pageStart
	}
}

func be16(b []byte) int {
	return int(b[0])<<8 | int(b[1])
}

// RGB565 converts a pixel to a color, expanding every channel to 8 bits.
func RGB565(v uint16) color.NRGBA {
	r := byte(v >> 11 & 0x1F)
	g := byte(v >> 5 & 0x3F)
	b := byte(v & 0x1F)
	return color.NRGBA{R: r<<3 | r>>2, G: g<<2 | g>>4, B: b<<3 | b>>2, A: 255}
}

// Render prints the panel as it appears, sampling one pixel every step in
// both directions. A blanked or sleeping panel renders black.
func (p *Panel) Render(w io.Writer, step int) error {
	if step <= 0 {
		step = 1
	}
	pal := p.Palette
	if pal == nil {
		pal = ansi256.Default
	}
	on := p.DisplayOn && !p.Sleeping
	var buf bytes.Buffer
	for y := 0; y < p.H; y += step {
		_, _ = buf.WriteString("\033[0m")
		for x := 0; x < p.W; x += step {
			c := color.NRGBA{A: 255}
			if on {
				c = RGB565(p.Pixel(x, y))
				if p.Inverted {
					c.R, c.G, c.B = ^c.R, ^c.G, ^c.B
				}
			}
			_, _ = io.WriteString(&buf, pal.Block(c))
		}
		_, _ = buf.WriteString("\033[0m\n")
	}
	_, err := buf.WriteTo(w)
	return err
}

var _ paralleltest.Target = &Panel{}
