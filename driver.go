// Copyright 2024 The Kempozer Screen Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package screen

import (
	"errors"
	"strings"

	"periph.io/x/conn/v3"
)

// ErrEmptyBuffer is returned by array and pixel transfers that were given
// nothing to transfer.
var ErrEmptyBuffer = errors.New("screen: empty buffer")

// Driver is an open handle to a screen controller.
//
// All methods are synchronous and a Driver must not be used concurrently.
type Driver interface {
	conn.Resource

	// Features returns the static capabilities of the implementation.
	Features() Features

	// Initialize brings the controller from power-on to a usable state.
	//
	// It returns nil once the sequence was sent; most backends cannot verify
	// that the controller actually responded.
	Initialize() error

	// Select marks the driver as the active bus target. It is a no-op when
	// there is no chip select.
	Select() error
	// Deselect is the inverse of Select.
	Deselect() error
	// AssertCommand signals that the following bytes are a command. It is a
	// no-op when there is no command/data signal.
	AssertCommand() error
	// DeassertCommand signals that the following bytes are data.
	DeassertCommand() error

	// WriteByte sends a single byte. Every implementation provides it.
	WriteByte(c byte) error
	// Write16 sends a 16-bit value. See WriteUint16 for the default encoding.
	Write16(v uint16) error
	// Write32 sends a 32-bit value. See WriteUint32 for the default encoding.
	Write32(v uint32) error
	// Write64 sends a 64-bit value. See WriteUint64 for the default encoding.
	Write64(v uint64) error
	// WriteBytes sends p in order.
	WriteBytes(p []byte) error

	// ReadByte receives a single byte. Every implementation provides it.
	ReadByte() (byte, error)
	// Read16 receives a 16-bit value.
	Read16() (uint16, error)
	// Read32 receives a 32-bit value.
	Read32() (uint32, error)
	// Read64 receives a 64-bit value.
	Read64() (uint64, error)
	// ReadBytes fills p in order.
	ReadBytes(p []byte) error

	// WritePixel sends one 16-bit pixel to the current addressing window.
	WritePixel(color uint16) error
	// WritePixels sends the pixels to the current addressing window.
	WritePixels(colors []uint16) error
	// WriteRepeatedPixel sends color n times.
	WriteRepeatedPixel(n int, color uint16) error
	// ReadPixels fills colors from the current addressing window.
	ReadPixels(colors []uint16) error

	// AddressWindow returns the last window set with SetAddressWindow.
	AddressWindow() (x1, y1, x2, y2 uint16)
	// SetAddressWindow sets the controller RAM region targeted by pixel
	// transfers. Coordinates are not validated.
	SetAddressWindow(x1, y1, x2, y2 uint16) error

	// Rotate applies a driver defined rotation. Drivers that do not support
	// rotation ignore it.
	Rotate(rotation int) error
	// Rotated reports whether the current rotation swaps width and height.
	Rotated() bool
	// Resolution returns the width and height of the screen, swapped when
	// Rotated is true.
	Resolution() (w, h uint16)
}

// Features is the set of optional capabilities a Driver declares.
//
// A driver that declares a Native flag must implement the corresponding
// operation itself instead of using the default composition from this
// package. A native override may use the controller's byte order rather
// than the little-endian order of the default compositions.
type Features uint8

// Feature flags.
const (
	// Native16 means Write16 and Read16 are implemented natively.
	Native16 Features = 1 << iota
	// Native32 means Write32 and Read32 are implemented natively.
	Native32
	// Native64 means Write64 and Read64 are implemented natively.
	Native64
	// NativeArray means WriteBytes and ReadBytes are implemented natively.
	NativeArray
	// CommandDataSignal means the bus has a command/data line.
	CommandDataSignal
	// ReadWriteSignal means the bus has explicit read and write strobes.
	ReadWriteSignal
	// Rotation means Rotate is supported.
	Rotation
)

var featureNames = []string{
	"Native16",
	"Native32",
	"Native64",
	"NativeArray",
	"CommandDataSignal",
	"ReadWriteSignal",
	"Rotation",
}

// Has reports whether all the flags in x are set.
func (f Features) Has(x Features) bool {
	return f&x == x
}

func (f Features) String() string {
	if f == 0 {
		return "0"
	}
	var names []string
	for i, name := range featureNames {
		if f&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	return strings.Join(names, "|")
}

// Resolution returns w and h, swapped when rotated is true.
//
// Drivers use it to implement Driver.Resolution from their native, pre-rotation
// size.
func Resolution(w, h uint16, rotated bool) (uint16, uint16) {
	if rotated {
		return h, w
	}
	return w, h
}
