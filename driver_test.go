// Copyright 2024 The Kempozer Screen Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package screen

import "testing"

func TestResolution(t *testing.T) {
	if w, h := Resolution(320, 480, false); w != 320 || h != 480 {
		t.Errorf("Resolution(320, 480, false) = %d, %d", w, h)
	}
	if w, h := Resolution(320, 480, true); w != 480 || h != 320 {
		t.Errorf("Resolution(320, 480, true) = %d, %d", w, h)
	}
}

func TestFeatures(t *testing.T) {
	f := Native16 | NativeArray | Rotation
	if !f.Has(Native16) || !f.Has(Native16|Rotation) {
		t.Errorf("%s: missing flags", f)
	}
	if f.Has(Native32) || f.Has(Native16|Native32) {
		t.Errorf("%s: unexpected flags", f)
	}
	if s := f.String(); s != "Native16|NativeArray|Rotation" {
		t.Errorf("String() = %q", s)
	}
	if s := Features(0).String(); s != "0" {
		t.Errorf("String() = %q", s)
	}
}
