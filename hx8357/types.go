// Copyright 2024 The Kempozer Screen Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hx8357

import (
	"fmt"
	"strings"

	"periph.io/x/conn/v3/physic"
)

// MemoryAccessControl is the parameter of MemoryAccessControlSet. It defines
// how the frame memory is scanned to and from the host.
type MemoryAccessControl uint8

// Memory access control flags.
const (
	// RightToLeft reverses the display data latch order.
	RightToLeft MemoryAccessControl = 1 << 2
	// BGRFilter swaps the red and blue channels.
	BGRFilter MemoryAccessControl = 1 << 3
	// BottomToTop reverses the refresh direction.
	BottomToTop MemoryAccessControl = 1 << 4
	// Rotated exchanges rows and columns.
	Rotated MemoryAccessControl = 1 << 5
	// XReversed mirrors the column address.
	XReversed MemoryAccessControl = 1 << 6
	// YReversed mirrors the page address.
	YReversed MemoryAccessControl = 1 << 7
)

var madctlNames = []struct {
	f    MemoryAccessControl
	name string
}{
	{RightToLeft, "RightToLeft"},
	{BGRFilter, "BGRFilter"},
	{BottomToTop, "BottomToTop"},
	{Rotated, "Rotated"},
	{XReversed, "XReversed"},
	{YReversed, "YReversed"},
}

func (m MemoryAccessControl) String() string {
	var out []string
	for _, n := range madctlNames {
		if m&n.f != 0 {
			out = append(out, n.name)
		}
	}
	if len(out) == 0 {
		return "0"
	}
	return strings.Join(out, "|")
}

// FrameRate is the refresh rate selected with SetOscillator.
type FrameRate uint8

// Supported frame rates.
const (
	FPS30 FrameRate = iota
	FPS35
	FPS40
	FPS45
	FPS50
	FPS55
	FPS60
	FPS65
	FPS70
	FPS75
	FPS80
	FPS85
	FPS90
	FPS95
	FPS100
	FPS105
)

// Frequency returns the refresh rate.
func (f FrameRate) Frequency() physic.Frequency {
	return physic.Frequency(30+5*int64(f&0x0F)) * physic.Hertz
}

func (f FrameRate) String() string {
	return f.Frequency().String()
}

// PixelFormat is the color depth of an interface.
type PixelFormat uint8

// Supported pixel formats.
const (
	Bits12 PixelFormat = 0b0011
	Bits16 PixelFormat = 0b0101
	Bits18 PixelFormat = 0b0110
	Bits24 PixelFormat = 0b0111
)

func (p PixelFormat) String() string {
	switch p {
	case Bits12:
		return "12bits"
	case Bits16:
		return "16bits"
	case Bits18:
		return "18bits"
	case Bits24:
		return "24bits"
	default:
		return fmt.Sprintf("PixelFormat(%d)", uint8(p))
	}
}

// PowerMode is the status returned by ReadPowerMode.
type PowerMode uint8

// Power mode flags.
const (
	PowerDisplay PowerMode = 1 << 2
	PowerNormal  PowerMode = 1 << 3
	// PowerAwake is set when the controller is out of sleep.
	PowerAwake   PowerMode = 1 << 4
	PowerPartial PowerMode = 1 << 5
	PowerIdle    PowerMode = 1 << 6
	PowerBooster PowerMode = 1 << 7
)

// DisplayOn reports whether the panel is showing the frame memory.
func (p PowerMode) DisplayOn() bool { return p&PowerDisplay != 0 }

// Normal reports whether the normal display mode is active.
func (p PowerMode) Normal() bool { return p&PowerNormal != 0 }

// Sleeping reports whether the controller is in sleep mode.
func (p PowerMode) Sleeping() bool { return p&PowerAwake == 0 }

// Partial reports whether the partial display mode is active.
func (p PowerMode) Partial() bool { return p&PowerPartial != 0 }

// Idle reports whether the reduced color idle mode is active.
func (p PowerMode) Idle() bool { return p&PowerIdle != 0 }

// Booster reports whether the booster voltage is up.
func (p PowerMode) Booster() bool { return p&PowerBooster != 0 }

func (p PowerMode) String() string {
	return fmt.Sprintf("PowerMode{display:%t normal:%t sleeping:%t partial:%t idle:%t booster:%t}",
		p.DisplayOn(), p.Normal(), p.Sleeping(), p.Partial(), p.Idle(), p.Booster())
}
