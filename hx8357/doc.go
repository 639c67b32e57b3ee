// Copyright 2024 The Kempozer Screen Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package hx8357 controls a HX8357-D TFT controller over an 8-bit parallel
// bus.
//
// Dev implements screen.Driver. Multi-byte parameters are sent most
// significant byte first, which is the order the controller expects, and
// pixels are 16 bits RGB565.
//
// The controller needs 120ms between a reset or a sleep transition and the
// next sleep transition. Dev tracks these and blocks as needed.
//
// # Datasheet
//
// https://cdn-shop.adafruit.com/datasheets/HX8357-D_DS_April2012.pdf
//
// # Product
//
// https://www.adafruit.com/product/2050
package hx8357
