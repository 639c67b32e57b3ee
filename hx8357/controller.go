// Copyright 2024 The Kempozer Screen Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hx8357

import (
	"time"
)

type controller interface {
	sendCommand(Command)
	sendData(...byte)
	delay(time.Duration)
}

// extensionKey unlocks the extension commands.
var extensionKey = []byte{0xFF, 0xB3, 0x57}

// initPanel sends the vendor configuration of the Adafruit 3.5" HX8357-D
// breakout.
func initPanel(ctrl controller) {
	ctrl.sendCommand(SetExtensionCommand)
	ctrl.sendData(extensionKey...)
	ctrl.delay(250 * time.Millisecond)

	// Internal oscillator, 6 cycle vertical and horizontal back porch.
	ctrl.sendCommand(SetRGBInterface)
	ctrl.sendData(0x30, 0x00, 0x06, 0x06)

	// VCOM -1.52V.
	ctrl.sendCommand(SetVCOMVoltage)
	ctrl.sendData(0x25)

	setFrameRate(ctrl, FPS30, FPS30)

	// BGR panel, normally white.
	ctrl.sendCommand(SetPanel)
	ctrl.sendData(0x05)

	ctrl.sendCommand(SetPowerControl)
	ctrl.sendData(0x00, 0x15, 0x1C, 0x1C, 0x83, 0xAA)

	ctrl.sendCommand(SetSTBA)
	ctrl.sendData(0x50, 0x50, 0x01, 0x3C, 0x1E, 0x08)

	// Column inversion.
	ctrl.sendCommand(SetDisplayCycle)
	ctrl.sendData(0x02, 0x40, 0x00, 0x2A, 0x2A, 0x0D, 0x78)
}

func setFrameRate(ctrl controller, normal, idle FrameRate) {
	ctrl.sendCommand(SetOscillator)
	ctrl.sendData(byte(idle&0x0F)<<4|byte(normal&0x0F), 0x01)
}

func setPixelFormat(ctrl controller, dbi, dpi PixelFormat) {
	ctrl.sendCommand(InterfacePixelFormat)
	ctrl.sendData(byte(dpi&0x0F)<<4 | byte(dbi&0x0F))
}

func setMemoryAccessControl(ctrl controller, m MemoryAccessControl) {
	ctrl.sendCommand(MemoryAccessControlSet)
	ctrl.sendData(byte(m))
}

func setSyncScanLine(ctrl controller, line uint16) {
	ctrl.sendCommand(SetTearScanLine)
	ctrl.sendData(byte(line>>8), byte(line))
}

func setAddressWindow(ctrl controller, x1, y1, x2, y2 uint16) {
	ctrl.sendCommand(ColumnAddressSet)
	ctrl.sendData(byte(x1>>8), byte(x1), byte(x2>>8), byte(x2))
	ctrl.sendCommand(PageAddressSet)
	ctrl.sendData(byte(y1>>8), byte(y1), byte(y2>>8), byte(y2))
}
