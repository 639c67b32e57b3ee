// Copyright 2024 The Kempozer Screen Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hx8357

import (
	"time"
)

// waitSince blocks until d elapsed since t. A zero t never waits.
func (d *Dev) waitSince(t time.Time, delay time.Duration) {
	if t.IsZero() {
		return
	}
	if elapsed := d.clock.Now().Sub(t); elapsed < delay {
		d.clock.Sleep(delay - elapsed)
	}
}

// Reset sends a software reset. Every register returns to its default value
// but the frame memory is kept.
//
// It waits for 120ms to pass since the last SleepOff, and blocks 5ms
// afterward while the controller restores its defaults.
func (d *Dev) Reset() error {
	d.waitSince(d.lastSleepOff, settleDelay)
	if err := d.writeCommand(SoftReset); err != nil {
		return err
	}
	d.lastReset = d.clock.Now()
	d.clock.Sleep(commandDelay)
	return nil
}

// SleepOn enters sleep mode. The display is blanked and the oscillator is
// stopped.
//
// It waits for 120ms to pass since the last SleepOff.
func (d *Dev) SleepOn() error {
	d.waitSince(d.lastSleepOff, settleDelay)
	if err := d.writeCommand(SleepIn); err != nil {
		return err
	}
	d.lastSleepOn = d.clock.Now()
	return nil
}

// SleepOff leaves sleep mode.
//
// It waits for 120ms to pass since both the last SleepOn and the last Reset,
// and blocks 5ms afterward.
func (d *Dev) SleepOff() error {
	d.waitSince(d.lastSleepOn, settleDelay)
	d.waitSince(d.lastReset, settleDelay)
	if err := d.writeCommand(SleepOut); err != nil {
		return err
	}
	d.lastSleepOff = d.clock.Now()
	d.clock.Sleep(commandDelay)
	return nil
}

// DisplayOn shows the frame memory on the panel.
func (d *Dev) DisplayOn() error {
	return d.writeCommand(DisplayOnCmd)
}

// DisplayOff blanks the panel. The frame memory is kept and can still be
// written.
func (d *Dev) DisplayOff() error {
	return d.writeCommand(DisplayOffCmd)
}

// SetSync enables or disables the tearing effect output line.
func (d *Dev) SetSync(on bool) error {
	if on {
		return d.writeCommand(TearingEffectOn)
	}
	return d.writeCommand(TearingEffectOff)
}

// SetSyncScanLine sets the scan line on which the tearing effect output
// fires.
func (d *Dev) SetSyncScanLine(line uint16) error {
	eh := errorHandler{d: d}
	setSyncScanLine(&eh, line)
	return eh.err
}

// SetInversion inverts every pixel on the panel, without touching the frame
// memory.
func (d *Dev) SetInversion(on bool) error {
	if on {
		return d.writeCommand(InversionOn)
	}
	return d.writeCommand(InversionOff)
}

// SetIdle enables the 8 colors idle mode.
func (d *Dev) SetIdle(on bool) error {
	if on {
		return d.writeCommand(IdleOn)
	}
	return d.writeCommand(IdleOff)
}

// NormalMode leaves partial mode.
func (d *Dev) NormalMode() error {
	return d.writeCommand(NormalModeOn)
}

// ReadPowerMode returns the power status of the controller.
func (d *Dev) ReadPowerMode() (PowerMode, error) {
	if err := d.writeCommand(ReadDisplayPowerMode); err != nil {
		return 0, err
	}
	var b [2]byte
	if err := d.ReadBytes(b[:]); err != nil {
		return 0, err
	}
	return PowerMode(b[1]), nil
}

// ReadIdentification returns the manufacturer, driver version and driver
// IDs of the panel.
func (d *Dev) ReadIdentification() ([3]byte, error) {
	var id [3]byte
	if err := d.writeCommand(ReadDisplayIdentification); err != nil {
		return id, err
	}
	var b [4]byte
	if err := d.ReadBytes(b[:]); err != nil {
		return id, err
	}
	copy(id[:], b[1:])
	return id, nil
}
