// Copyright 2024 The Kempozer Screen Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package parallel

import (
	"time"

	"periph.io/x/host/v3/cpu"
)

// Clock is the time source used for bus and controller timing.
type Clock interface {
	// Now returns the current time. Only differences between values are
	// used, so it must be monotonic.
	Now() time.Time
	// Sleep blocks the caller for at least d.
	Sleep(d time.Duration)
}

// SystemClock is the Clock of the host.
//
// Delays below spinThreshold are busy-waited with cpu.Nanospin; the scheduler
// cannot wake a goroutine in time for strobe settling delays.
type SystemClock struct{}

const spinThreshold = time.Millisecond

// Now implements Clock.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Sleep implements Clock.
func (SystemClock) Sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	if d >= spinThreshold {
		time.Sleep(d)
		return
	}
	cpu.Nanospin(d)
}

// System is the default Clock.
var System Clock = SystemClock{}
