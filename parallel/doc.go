// Copyright 2024 The Kempozer Screen Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package parallel implements an 8-bit parallel bus (Intel 8080 style) for
// screen controllers.
//
// The data lines are reached through a Port, a 32-bit register that may also
// carry unrelated pins. A Remapper scatters each byte over the register bits
// the board routes D0..D7 to, and gathers it back on read. Writes are
// read-modify-write so the foreign bits are preserved.
//
// The read and write strobes are plain gpio.PinOut, active low.
//
// # Timing
//
// Every delay goes through a Clock so that code built on the bus can be
// tested with a fake clock. See package paralleltest.
package parallel
