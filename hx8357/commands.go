// Copyright 2024 The Kempozer Screen Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hx8357

import "fmt"

// Command is a HX8357-D command byte.
type Command uint8

// Standard commands.
const (
	NoOp                            Command = 0x00
	SoftReset                       Command = 0x01
	ReadDisplayIdentification       Command = 0x04
	ReadNumberOfErrorsOnDSI         Command = 0x05
	ReadRedColor                    Command = 0x06
	ReadGreenColor                  Command = 0x07
	ReadBlueColor                   Command = 0x08
	ReadDisplayPowerMode            Command = 0x0A
	ReadDisplayMemoryAccessControl  Command = 0x0B
	ReadDisplayPixelFormat          Command = 0x0C
	ReadDisplayImageMode            Command = 0x0D
	ReadDisplaySignalMode           Command = 0x0E
	ReadDisplaySelfDiagnosticResult Command = 0x0F
	SleepIn                         Command = 0x10
	SleepOut                        Command = 0x11
	PartialModeOn                   Command = 0x12
	NormalModeOn                    Command = 0x13
	InversionOff                    Command = 0x20
	InversionOn                     Command = 0x21
	AllPixelsOff                    Command = 0x22
	AllPixelsOn                     Command = 0x23
	WriteGamma                      Command = 0x26
	DisplayOffCmd                   Command = 0x28
	DisplayOnCmd                    Command = 0x29
	ColumnAddressSet                Command = 0x2A
	PageAddressSet                  Command = 0x2B
	MemoryWrite                     Command = 0x2C
	MemoryRead                      Command = 0x2E
	PartialArea                     Command = 0x30
	VerticalScrollingDefinition     Command = 0x33
	TearingEffectOff                Command = 0x34
	TearingEffectOn                 Command = 0x35
	MemoryAccessControlSet          Command = 0x36
	VerticalScrollingStartAddress   Command = 0x37
	IdleOff                         Command = 0x38
	IdleOn                          Command = 0x39
	InterfacePixelFormat            Command = 0x3A
	MemoryWriteContinue             Command = 0x3C
	MemoryReadContinue              Command = 0x3E
	SetTearScanLine                 Command = 0x44
	GetScanLine                     Command = 0x45
	WriteDisplayBrightness          Command = 0x51
	ReadDisplayBrightness           Command = 0x52
	WriteCTRLDisplay                Command = 0x53
	ReadCTRLDisplay                 Command = 0x54
	WriteContentAdaptiveBrightness  Command = 0x55
	ReadContentAdaptiveBrightness   Command = 0x56
	WriteCABCMinimumBrightness      Command = 0x5E
	ReadCABCMinimumBrightness       Command = 0x5F
	ReadCABCSelfDiagnosticResult    Command = 0x68
	ReadBlackWhiteLowBits           Command = 0x70
	ReadBlackX                      Command = 0x71
	ReadBlackY                      Command = 0x72
	ReadWhiteX                      Command = 0x73
	ReadWhiteY                      Command = 0x74
	ReadRedGreenLowBits             Command = 0x75
	ReadRedX                        Command = 0x76
	ReadRedY                        Command = 0x77
	ReadGreenX                      Command = 0x78
	ReadGreenY                      Command = 0x79
	ReadBlueALowBits                Command = 0x7A
	ReadBlueX                       Command = 0x7B
	ReadBlueY                       Command = 0x7C
	ReadAX                          Command = 0x7D
	ReadAY                          Command = 0x7E
	ReadDDB                         Command = 0xA1
	ReadDDBContinue                 Command = 0xA8
	ReadChecksum                    Command = 0xAA
	ReadChecksumContinue            Command = 0xAF
	ReadICID                        Command = 0xD0
	ReadManufacturerID              Command = 0xDA
	ReadDriverVersionID             Command = 0xDB
	ReadDriverID                    Command = 0xDC
)

// Extension commands. They are ignored until SetExtensionCommand is sent with
// the FF B3 57 key.
const (
	SetOscillator       Command = 0xB0
	SetPowerControl     Command = 0xB1
	SetDisplayRegister  Command = 0xB2
	SetRGBInterface     Command = 0xB3
	SetDisplayCycle     Command = 0xB4
	SetBGP              Command = 0xB5
	SetVCOMVoltage      Command = 0xB6
	SetOTP              Command = 0xB7
	SetExtensionCommand Command = 0xB9
	SetSTBA             Command = 0xC0
	SetDGC              Command = 0xC1
	SetID               Command = 0xC3
	SetDDB              Command = 0xC4
	SetCABC             Command = 0xC9
	SetPanel            Command = 0xCC
	SetGammaCurve       Command = 0xE0
	SetImageFunction    Command = 0xE9
	SetSPICommandType   Command = 0xEA
	SetSPIColor         Command = 0xEB
	SetSPIReadIndex     Command = 0xFE
	GetSPICommandType   Command = 0xFF
)

var commandNames = map[Command]string{
	NoOp:                      "NoOp",
	SoftReset:                 "SoftReset",
	ReadDisplayIdentification: "ReadDisplayIdentification",
	ReadDisplayPowerMode:      "ReadDisplayPowerMode",
	SleepIn:                   "SleepIn",
	SleepOut:                  "SleepOut",
	NormalModeOn:              "NormalModeOn",
	InversionOff:              "InversionOff",
	InversionOn:               "InversionOn",
	DisplayOffCmd:             "DisplayOff",
	DisplayOnCmd:              "DisplayOn",
	ColumnAddressSet:          "ColumnAddressSet",
	PageAddressSet:            "PageAddressSet",
	MemoryWrite:               "MemoryWrite",
	MemoryRead:                "MemoryRead",
	TearingEffectOff:          "TearingEffectOff",
	TearingEffectOn:           "TearingEffectOn",
	MemoryAccessControlSet:    "MemoryAccessControl",
	IdleOff:                   "IdleOff",
	IdleOn:                    "IdleOn",
	InterfacePixelFormat:      "InterfacePixelFormat",
	SetTearScanLine:           "SetTearScanLine",
	SetOscillator:             "SetOscillator",
	SetPowerControl:           "SetPowerControl",
	SetRGBInterface:           "SetRGBInterface",
	SetDisplayCycle:           "SetDisplayCycle",
	SetVCOMVoltage:            "SetVCOMVoltage",
	SetExtensionCommand:       "SetExtensionCommand",
	SetSTBA:                   "SetSTBA",
	SetPanel:                  "SetPanel",
}

func (c Command) String() string {
	if s, ok := commandNames[c]; ok {
		return s
	}
	return fmt.Sprintf("Command(0x%02X)", uint8(c))
}
