// Copyright 2024 The Kempozer Screen Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package screen_test

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kempozer/screen"
	"github.com/kempozer/screen/screentest"
)

func dataBytes(ops []screentest.Op) []byte {
	var out []byte
	for _, op := range ops {
		if !op.Command {
			out = append(out, op.Value)
		}
	}
	return out
}

func TestWireOrder(t *testing.T) {
	for _, tc := range []struct {
		name  string
		write func(d screen.Driver) error
		want  []byte
	}{
		{
			name:  "16",
			write: func(d screen.Driver) error { return d.Write16(0x1234) },
			want:  []byte{0x34, 0x12},
		},
		{
			name:  "32",
			write: func(d screen.Driver) error { return d.Write32(0x12345678) },
			want:  []byte{0x78, 0x56, 0x34, 0x12},
		},
		{
			name:  "64",
			write: func(d screen.Driver) error { return d.Write64(0x0102030405060708) },
			want:  []byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01},
		},
		{
			name:  "array",
			write: func(d screen.Driver) error { return d.WriteBytes([]byte{1, 2, 3}) },
			want:  []byte{1, 2, 3},
		},
		{
			name:  "pixel",
			write: func(d screen.Driver) error { return d.WritePixel(0xABCD) },
			want:  []byte{0xAB, 0xCD},
		},
		{
			name:  "repeated pixel",
			write: func(d screen.Driver) error { return d.WriteRepeatedPixel(2, 0xF800) },
			want:  []byte{0xF8, 0x00, 0xF8, 0x00},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			d := screentest.NewLoopback(320, 480)
			if err := tc.write(d); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(dataBytes(d.Ops), tc.want); diff != "" {
				t.Errorf("wire difference (-got +want):\n%s", diff)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	d := screentest.NewLoopback(320, 480)
	values16 := []uint16{0, 1, 0x00FF, 0xFF00, 0xBEEF, math.MaxUint16}
	for _, v := range values16 {
		if err := d.Write16(v); err != nil {
			t.Fatal(err)
		}
		got, err := d.Read16()
		if err != nil {
			t.Fatal(err)
		}
		if got != v {
			t.Errorf("Read16() = %#x, want %#x", got, v)
		}
	}
	values32 := []uint32{0, 1, 0xDEADBEEF, 0x01020304, math.MaxUint32}
	for _, v := range values32 {
		if err := d.Write32(v); err != nil {
			t.Fatal(err)
		}
		got, err := d.Read32()
		if err != nil {
			t.Fatal(err)
		}
		if got != v {
			t.Errorf("Read32() = %#x, want %#x", got, v)
		}
	}
	values64 := []uint64{0, 1, 0x0123456789ABCDEF, math.MaxUint64}
	for _, v := range values64 {
		if err := d.Write64(v); err != nil {
			t.Fatal(err)
		}
		got, err := d.Read64()
		if err != nil {
			t.Fatal(err)
		}
		if got != v {
			t.Errorf("Read64() = %#x, want %#x", got, v)
		}
	}
	if n := d.Pending(); n != 0 {
		t.Errorf("Pending() = %d, want 0", n)
	}
}

func TestArrayRoundTrip(t *testing.T) {
	d := screentest.NewLoopback(320, 480)
	want := []byte{9, 8, 7, 6, 5}
	if err := d.WriteBytes(want); err != nil {
		t.Fatal(err)
	}
	got := make([]byte, len(want))
	if err := d.ReadBytes(got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("ReadBytes() difference (-got +want):\n%s", diff)
	}
}

func TestPixelRoundTrip(t *testing.T) {
	d := screentest.NewLoopback(320, 480)
	want := []uint16{0xABCD, 0x001F, 0x07E0}
	if err := d.WritePixels(want); err != nil {
		t.Fatal(err)
	}
	got := make([]uint16, 2)
	if err := d.ReadPixels(got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(got, want[:2]); diff != "" {
		t.Errorf("ReadPixels() difference (-got +want):\n%s", diff)
	}
	p, err := screen.ReadPixel(d)
	if err != nil {
		t.Fatal(err)
	}
	if p != 0x07E0 {
		t.Errorf("ReadPixel() = %#x, want 0x07e0", p)
	}
}

func TestEmptyBuffers(t *testing.T) {
	d := screentest.NewLoopback(320, 480)
	for name, f := range map[string]func() error{
		"WriteBytes":         func() error { return d.WriteBytes(nil) },
		"ReadBytes":          func() error { return d.ReadBytes([]byte{}) },
		"WritePixels":        func() error { return d.WritePixels(nil) },
		"ReadPixels":         func() error { return d.ReadPixels(nil) },
		"WriteRepeatedPixel": func() error { return d.WriteRepeatedPixel(0, 0xFFFF) },
	} {
		if err := f(); !errors.Is(err, screen.ErrEmptyBuffer) {
			t.Errorf("%s() = %v, want %v", name, err, screen.ErrEmptyBuffer)
		}
	}
	if len(d.Ops) != 0 {
		t.Errorf("empty transfers wrote %d bytes", len(d.Ops))
	}
}

func TestUnderrun(t *testing.T) {
	d := screentest.NewLoopback(320, 480)
	if err := d.WriteByte(1); err != nil {
		t.Fatal(err)
	}
	if _, err := d.Read16(); !errors.Is(err, screentest.ErrUnderrun) {
		t.Errorf("Read16() = %v, want %v", err, screentest.ErrUnderrun)
	}
}

type cmd8 uint8
type cmd16 uint16
type cmd32 uint32
type cmd64 uint64

func TestWriteCommand(t *testing.T) {
	for _, tc := range []struct {
		name  string
		write func(d screen.Driver) error
		want  []screentest.Op
	}{
		{
			name:  "8",
			write: func(d screen.Driver) error { return screen.WriteCommand(d, cmd8(0x2C)) },
			want:  []screentest.Op{{Command: true, Value: 0x2C}},
		},
		{
			name:  "16",
			write: func(d screen.Driver) error { return screen.WriteCommand(d, cmd16(0x0102)) },
			want:  []screentest.Op{{Command: true, Value: 0x02}, {Command: true, Value: 0x01}},
		},
		{
			name:  "32",
			write: func(d screen.Driver) error { return screen.WriteCommand(d, cmd32(0x01020304)) },
			want: []screentest.Op{
				{Command: true, Value: 0x04}, {Command: true, Value: 0x03},
				{Command: true, Value: 0x02}, {Command: true, Value: 0x01},
			},
		},
		{
			name:  "64",
			write: func(d screen.Driver) error { return screen.WriteCommand(d, cmd64(0xFF)) },
			want: []screentest.Op{
				{Command: true, Value: 0xFF}, {Command: true}, {Command: true}, {Command: true},
				{Command: true}, {Command: true}, {Command: true}, {Command: true},
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			d := screentest.NewLoopback(320, 480)
			if err := tc.write(d); err != nil {
				t.Fatal(err)
			}
			// The command signal must be released afterward.
			if err := d.WriteByte(0x55); err != nil {
				t.Fatal(err)
			}
			want := append(tc.want, screentest.Op{Value: 0x55})
			if diff := cmp.Diff(d.Ops, want); diff != "" {
				t.Errorf("WriteCommand() difference (-got +want):\n%s", diff)
			}
		})
	}
}
