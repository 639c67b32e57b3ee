// Copyright 2024 The Kempozer Screen Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hx8357

import (
	"time"

	"periph.io/x/conn/v3/gpio"
)

// errorHandler is a wrapper for error management.
//
// The first error is kept and every later step is skipped.
type errorHandler struct {
	d   *Dev
	err error
}

func (eh *errorHandler) pinOut(p gpio.PinOut, l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = p.Out(l)
}

func (eh *errorHandler) do(f func() error) {
	if eh.err != nil {
		return
	}
	eh.err = f()
}

func (eh *errorHandler) sendCommand(cmd Command) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.writeCommand(cmd)
}

func (eh *errorHandler) sendData(data ...byte) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.WriteBytes(data)
}

func (eh *errorHandler) delay(d time.Duration) {
	if eh.err != nil {
		return
	}
	eh.d.clock.Sleep(d)
}
