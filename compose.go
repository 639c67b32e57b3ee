// Copyright 2024 The Kempozer Screen Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package screen

import (
	"encoding/binary"
	"io"
	"math"
)

// The default compositions below build every wide transfer out of single
// byte transfers. Multi-byte values go out little-endian: the low-order byte
// first. Drivers without a native implementation call them from their own
// methods, e.g.:
//
//	func (d *Dev) Write16(v uint16) error { return screen.WriteUint16(d, v) }

// WriteUint16 writes v as two bytes, low byte first.
func WriteUint16(w io.ByteWriter, v uint16) error {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	return WriteArray(w, b[:])
}

// WriteUint32 writes v as four bytes, low byte first.
func WriteUint32(w io.ByteWriter, v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return WriteArray(w, b[:])
}

// WriteUint64 writes v as eight bytes, low byte first.
func WriteUint64(w io.ByteWriter, v uint64) error {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return WriteArray(w, b[:])
}

// WriteArray writes p one byte at a time, in order.
func WriteArray(w io.ByteWriter, p []byte) error {
	if len(p) == 0 {
		return ErrEmptyBuffer
	}
	for _, c := range p {
		if err := w.WriteByte(c); err != nil {
			return err
		}
	}
	return nil
}

// ReadUint16 reads two bytes, low byte first.
func ReadUint16(r io.ByteReader) (uint16, error) {
	var b [2]byte
	if err := ReadArray(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

// ReadUint32 reads four bytes, low byte first.
func ReadUint32(r io.ByteReader) (uint32, error) {
	var b [4]byte
	if err := ReadArray(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

// ReadUint64 reads eight bytes, low byte first.
func ReadUint64(r io.ByteReader) (uint64, error) {
	var b [8]byte
	if err := ReadArray(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// ReadArray fills p one byte at a time, in order.
func ReadArray(r io.ByteReader, p []byte) error {
	if len(p) == 0 {
		return ErrEmptyBuffer
	}
	for i := range p {
		c, err := r.ReadByte()
		if err != nil {
			return err
		}
		p[i] = c
	}
	return nil
}

// Command is the set of underlying types a controller command may have.
type Command interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// WriteCommand sends cmd framed by the command signal, using the transfer
// that matches the width of C.
func WriteCommand[C Command](d Driver, cmd C) error {
	if err := d.AssertCommand(); err != nil {
		return err
	}
	var err error
	switch uint64(^C(0)) {
	case math.MaxUint8:
		err = d.WriteByte(uint8(cmd))
	case math.MaxUint16:
		err = d.Write16(uint16(cmd))
	case math.MaxUint32:
		err = d.Write32(uint32(cmd))
	default:
		err = d.Write64(uint64(cmd))
	}
	if err != nil {
		return err
	}
	return d.DeassertCommand()
}

// ReadPixel reads a single pixel from the current addressing window.
func ReadPixel(d Driver) (uint16, error) {
	var p [1]uint16
	if err := d.ReadPixels(p[:]); err != nil {
		return 0, err
	}
	return p[0], nil
}
