// Copyright 2024 The Kempozer Screen Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package parallel

import (
	"fmt"
)

// Remapper translates a logical byte to and from the register bits the data
// lines are wired to.
//
// Boards rarely route D0..D7 to contiguous bits of one port, so every
// transfer scatters the byte across the register on write and gathers it back
// on read.
type Remapper struct {
	bits  [8]uint8
	mask  uint32
	table [256]uint32
}

// NewRemapper returns a Remapper where logical bit i is carried by register
// bit bits[i].
func NewRemapper(bits [8]uint8) (*Remapper, error) {
	r := &Remapper{bits: bits}
	for i, b := range bits {
		if b >= 32 {
			return nil, fmt.Errorf("parallel: D%d mapped to invalid register bit %d", i, b)
		}
		if r.mask&(1<<b) != 0 {
			return nil, fmt.Errorf("parallel: register bit %d is mapped twice", b)
		}
		r.mask |= 1 << b
	}
	for v := range r.table {
		var out uint32
		for i, b := range bits {
			if v&(1<<i) != 0 {
				out |= 1 << b
			}
		}
		r.table[v] = out
	}
	return r, nil
}

// MustRemapper is like NewRemapper but panics on an invalid wiring. It is
// meant for package level wiring tables.
func MustRemapper(bits [8]uint8) *Remapper {
	r, err := NewRemapper(bits)
	if err != nil {
		panic(err)
	}
	return r
}

// Map returns the register bits for b. Bits outside Mask are never set.
func (r *Remapper) Map(b byte) uint32 {
	return r.table[b]
}

// Unmap gathers the logical byte from a register value. Bits outside Mask
// are ignored.
func (r *Remapper) Unmap(v uint32) byte {
	var out byte
	for i, b := range r.bits {
		out |= byte(v>>b&1) << i
	}
	return out
}

// Mask returns the register bits used by the data lines.
func (r *Remapper) Mask() uint32 {
	return r.mask
}

// Bits returns the register bit of each data line, D0 first.
func (r *Remapper) Bits() [8]uint8 {
	return r.bits
}

func (r *Remapper) String() string {
	return fmt.Sprintf("Remapper%v", r.bits)
}

var (
	// Identity wires D0..D7 to register bits 0..7.
	Identity = MustRemapper([8]uint8{0, 1, 2, 3, 4, 5, 6, 7})

	// Teensy41 is the wiring of the HX8357 breakout on a Teensy 4.1 using
	// pins 19, 18, 17, 16, 15, 14, 41 and 40 for D0..D7, which all live in
	// the GPIO6 data register.
	Teensy41 = MustRemapper([8]uint8{16, 17, 22, 23, 19, 18, 20, 21})
)
