// Copyright 2024 The Kempozer Screen Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package screen defines the contract shared by TFT screen controller drivers.
//
// A Driver moves bytes, multi-byte values and 16-bit pixels to and from a
// screen controller, and exposes the addressing window and rotation state.
// Only WriteByte and ReadByte are fundamental: every wider transfer can be
// composed from them with the helpers in this package (WriteUint16,
// ReadArray, ...). Drivers that can do better implement the wider transfers
// natively and advertise it in their Features, so callers can pick the fast
// path without changing behavior.
//
// Concrete drivers live in sub-packages, e.g. hx8357.
package screen
