// Copyright 2024 The Kempozer Screen Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hx8357

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

type record struct {
	cmd   Command
	data  []byte
	delay time.Duration
}

type fakeController []record

func (r *fakeController) sendCommand(cmd Command) {
	*r = append(*r, record{
		cmd: cmd,
	})
}

func (r *fakeController) sendData(data ...byte) {
	cur := &(*r)[len(*r)-1]
	cur.data = append(cur.data, data...)
}

func (r *fakeController) delay(d time.Duration) {
	cur := &(*r)[len(*r)-1]
	cur.delay += d
}

func TestInitPanel(t *testing.T) {
	var got fakeController

	initPanel(&got)

	want := []record{
		{cmd: SetExtensionCommand, data: []byte{0xFF, 0xB3, 0x57}, delay: 250 * time.Millisecond},
		{cmd: SetRGBInterface, data: []byte{0x30, 0x00, 0x06, 0x06}},
		{cmd: SetVCOMVoltage, data: []byte{0x25}},
		{cmd: SetOscillator, data: []byte{0x00, 0x01}},
		{cmd: SetPanel, data: []byte{0x05}},
		{cmd: SetPowerControl, data: []byte{0x00, 0x15, 0x1C, 0x1C, 0x83, 0xAA}},
		{cmd: SetSTBA, data: []byte{0x50, 0x50, 0x01, 0x3C, 0x1E, 0x08}},
		{cmd: SetDisplayCycle, data: []byte{0x02, 0x40, 0x00, 0x2A, 0x2A, 0x0D, 0x78}},
	}
	if diff := cmp.Diff([]record(got), want, cmpopts.EquateEmpty(), cmp.AllowUnexported(record{})); diff != "" {
		t.Errorf("initPanel() difference (-got +want):\n%s", diff)
	}
}

func TestParameters(t *testing.T) {
	for _, tc := range []struct {
		name string
		f    func(ctrl controller)
		want []record
	}{
		{
			name: "frame rate",
			f:    func(ctrl controller) { setFrameRate(ctrl, FPS60, FPS105) },
			want: []record{{cmd: SetOscillator, data: []byte{0xF6, 0x01}}},
		},
		{
			name: "pixel format",
			f:    func(ctrl controller) { setPixelFormat(ctrl, Bits16, Bits18) },
			want: []record{{cmd: InterfacePixelFormat, data: []byte{0x65}}},
		},
		{
			name: "memory access control",
			f:    func(ctrl controller) { setMemoryAccessControl(ctrl, BGRFilter|Rotated) },
			want: []record{{cmd: MemoryAccessControlSet, data: []byte{0x28}}},
		},
		{
			name: "scan line",
			f:    func(ctrl controller) { setSyncScanLine(ctrl, 0x0102) },
			want: []record{{cmd: SetTearScanLine, data: []byte{0x01, 0x02}}},
		},
		{
			name: "address window",
			f:    func(ctrl controller) { setAddressWindow(ctrl, 10, 20, 0x13F, 0x1DF) },
			want: []record{
				{cmd: ColumnAddressSet, data: []byte{0x00, 0x0A, 0x01, 0x3F}},
				{cmd: PageAddressSet, data: []byte{0x00, 0x14, 0x01, 0xDF}},
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var got fakeController
			tc.f(&got)
			if diff := cmp.Diff([]record(got), tc.want, cmpopts.EquateEmpty(), cmp.AllowUnexported(record{})); diff != "" {
				t.Errorf("difference (-got +want):\n%s", diff)
			}
		})
	}
}

func TestFrameRateFrequency(t *testing.T) {
	if got := FPS30.Frequency().String(); got != "30Hz" {
		t.Errorf("FPS30 = %s", got)
	}
	if got := FPS105.Frequency().String(); got != "105Hz" {
		t.Errorf("FPS105 = %s", got)
	}
}
