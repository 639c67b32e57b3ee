// Copyright 2024 The Kempozer Screen Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hx8357sim_test

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kempozer/screen"
	"github.com/kempozer/screen/hx8357"
	"github.com/kempozer/screen/hx8357/hx8357sim"
	"github.com/kempozer/screen/parallel"
	"github.com/kempozer/screen/parallel/paralleltest"
)

func newDev(t *testing.T) (*hx8357.Dev, *hx8357sim.Panel) {
	t.Helper()
	bus := paralleltest.NewBus(parallel.Teensy41)
	panel := hx8357sim.New(320, 480)
	bus.Target = panel
	opts := hx8357.DefaultOpts
	opts.Clock = paralleltest.NewClock()
	d, err := hx8357.New(bus, parallel.Teensy41, hx8357.Pins{CS: bus.CS, DC: bus.DC, WR: bus.WR, RD: bus.RD, RST: bus.RST}, &opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Initialize(); err != nil {
		t.Fatal(err)
	}
	return d, panel
}

func TestInitialize(t *testing.T) {
	d, panel := newDev(t)
	if !panel.Extension || !panel.DisplayOn || panel.Sleeping || !panel.Sync {
		t.Errorf("unexpected state %+v", panel)
	}
	if panel.MADCTL != hx8357.BGRFilter|hx8357.YReversed {
		t.Errorf("MADCTL = %s", panel.MADCTL)
	}
	if panel.PixelFormat != 0x55 {
		t.Errorf("PixelFormat = %#x", panel.PixelFormat)
	}
	if diff := cmp.Diff(panel.Registers[hx8357.SetPowerControl], []byte{0x00, 0x15, 0x1C, 0x1C, 0x83, 0xAA}); diff != "" {
		t.Errorf("power control difference (-got +want):\n%s", diff)
	}
	p, err := d.ReadPowerMode()
	if err != nil {
		t.Fatal(err)
	}
	if !p.DisplayOn() || p.Sleeping() || !p.Normal() || !p.Booster() {
		t.Errorf("ReadPowerMode() = %s", p)
	}
	id, err := d.ReadIdentification()
	if err != nil {
		t.Fatal(err)
	}
	if id != hx8357sim.DefaultID {
		t.Errorf("ReadIdentification() = %x", id)
	}
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if panel.DisplayOn || !panel.Sleeping {
		t.Error("Halt() did not blank and sleep")
	}
}

func TestPixelsRoundTrip(t *testing.T) {
	for _, rotation := range []int{0, 1, 2, 3} {
		d, panel := newDev(t)
		if err := d.Rotate(rotation); err != nil {
			t.Fatal(err)
		}
		want := []uint16{0xF800, 0x07E0, 0x001F, 0xFFFF, 0x1234, 0xABCD}
		if err := d.SetAddressWindow(10, 20, 12, 21); err != nil {
			t.Fatal(err)
		}
		if err := d.WritePixels(want); err != nil {
			t.Fatal(err)
		}
		got := make([]uint16, len(want))
		if err := d.ReadPixels(got); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(got, want); diff != "" {
			t.Errorf("rotation %d: ReadPixels() difference (-got +want):\n%s", rotation, diff)
		}
		c, err := screen.ReadPixel(d)
		if err != nil {
			t.Fatal(err)
		}
		if c != want[0] {
			t.Errorf("rotation %d: ReadPixel() = %#x", rotation, c)
		}
		var set int
		for _, v := range panel.RAM {
			if v != 0 {
				set++
			}
		}
		if set != len(want) {
			t.Errorf("rotation %d: %d pixels set, want %d", rotation, set, len(want))
		}
	}
}

func TestPortraitPlacement(t *testing.T) {
	d, panel := newDev(t)
	if err := d.SetAddressWindow(10, 20, 10, 20); err != nil {
		t.Fatal(err)
	}
	if err := d.WritePixel(0x1234); err != nil {
		t.Fatal(err)
	}
	// Rotation 0 mirrors the page address.
	if got := panel.Pixel(10, 480-1-20); got != 0x1234 {
		t.Errorf("Pixel() = %#x", got)
	}
}

func TestFill(t *testing.T) {
	d, panel := newDev(t)
	if err := d.Rotate(1); err != nil {
		t.Fatal(err)
	}
	w, h := d.Resolution()
	if w != 480 || h != 320 {
		t.Fatalf("Resolution() = %d, %d", w, h)
	}
	if err := d.SetAddressWindow(0, 0, w-1, h-1); err != nil {
		t.Fatal(err)
	}
	if err := d.WriteRepeatedPixel(int(w)*int(h), 0x07E0); err != nil {
		t.Fatal(err)
	}
	for i, v := range panel.RAM {
		if v != 0x07E0 {
			t.Fatalf("RAM[%d] = %#x", i, v)
		}
	}
}

func TestRGB565(t *testing.T) {
	for _, tc := range []struct {
		in   uint16
		want color.NRGBA
	}{
		{0x0000, color.NRGBA{0, 0, 0, 255}},
		{0xF800, color.NRGBA{255, 0, 0, 255}},
		{0x07E0, color.NRGBA{0, 255, 0, 255}},
		{0x001F, color.NRGBA{0, 0, 255, 255}},
		{0xFFFF, color.NRGBA{255, 255, 255, 255}},
	} {
		if got := hx8357sim.RGB565(tc.in); got != tc.want {
			t.Errorf("RGB565(%#x) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestRender(t *testing.T) {
	_, panel := newDev(t)
	var buf bytes.Buffer
	if err := panel.Render(&buf, 40); err != nil {
		t.Fatal(err)
	}
	if n := bytes.Count(buf.Bytes(), []byte("\n")); n != 12 {
		t.Errorf("got %d lines, want 12", n)
	}
}
