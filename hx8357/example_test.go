// Copyright 2024 The Kempozer Screen Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hx8357_test

import (
	"log"

	"github.com/kempozer/screen/hx8357"
	"github.com/kempozer/screen/parallel"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// D0..D7 on GPIO4..GPIO11 of a Raspberry Pi.
	var data []gpio.PinIO
	for _, name := range []string{"GPIO4", "GPIO5", "GPIO6", "GPIO7", "GPIO8", "GPIO9", "GPIO10", "GPIO11"} {
		data = append(data, gpioreg.ByName(name))
	}
	port, err := parallel.DataPort(data...)
	if err != nil {
		log.Fatal(err)
	}
	pins := hx8357.Pins{
		CS:  gpioreg.ByName("GPIO22"),
		DC:  gpioreg.ByName("GPIO23"),
		WR:  gpioreg.ByName("GPIO24"),
		RD:  gpioreg.ByName("GPIO25"),
		RST: gpioreg.ByName("GPIO27"),
	}
	dev, err := hx8357.New(port, parallel.Identity, pins, &hx8357.DefaultOpts)
	if err != nil {
		log.Fatalf("Failed to initialize driver: %v", err)
	}
	if err := dev.Initialize(); err != nil {
		log.Fatalf("Failed to initialize display: %v", err)
	}
	defer dev.Halt()

	// Landscape, fill the screen in red.
	if err := dev.Rotate(1); err != nil {
		log.Fatal(err)
	}
	w, h := dev.Resolution()
	if err := dev.SetAddressWindow(0, 0, w-1, h-1); err != nil {
		log.Fatal(err)
	}
	if err := dev.WriteRepeatedPixel(int(w)*int(h), 0xF800); err != nil {
		log.Fatal(err)
	}
}
