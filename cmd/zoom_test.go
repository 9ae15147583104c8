// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import "testing"

func TestApplyZoomSpeedRange(t *testing.T) {
	// Out-of-range speeds are rejected on the int value before any
	// camera traffic, so a nil camera must never be touched. 263 would
	// narrow to the valid speed 7 in a byte.
	for _, speed := range []int{-1, 8, 263} {
		if err := applyZoom(nil, []string{"tele"}, speed); err == nil {
			t.Fatalf("speed %d accepted", speed)
		}
	}
}
