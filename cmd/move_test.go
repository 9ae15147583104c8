// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import "testing"

func TestParsePosition(t *testing.T) {
	v, err := parsePosition("4660")
	if err != nil {
		t.Fatalf("decimal failed: %v", err)
	}
	if v != 4660 {
		t.Fatalf("decimal parsed to %d", v)
	}

	v, err = parsePosition("0x1234")
	if err != nil {
		t.Fatalf("hex failed: %v", err)
	}
	if v != 0x1234 {
		t.Fatalf("hex parsed to 0x%04X", v)
	}
}

func TestParsePositionRejectsBadInput(t *testing.T) {
	for _, s := range []string{"", "-1", "65536", "0x10000", "wide"} {
		if _, err := parsePosition(s); err == nil {
			t.Fatalf("%q accepted", s)
		}
	}
}

func TestApplyMoveSpeedRange(t *testing.T) {
	// Out-of-range speeds are rejected on the int values before any
	// camera traffic, so a nil camera must never be touched. 257 and
	// 276 would narrow to valid speeds in a byte.
	tests := []struct {
		name string
		pan  int
		tilt int
	}{
		{name: "pan zero", pan: 0, tilt: 8},
		{name: "pan high", pan: 25, tilt: 8},
		{name: "pan wraps", pan: 257, tilt: 8},
		{name: "tilt zero", pan: 8, tilt: 0},
		{name: "tilt high", pan: 8, tilt: 21},
		{name: "tilt wraps", pan: 8, tilt: 276},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := applyMove(nil, []string{"up"}, tt.pan, tt.tilt); err == nil {
				t.Fatalf("pan %d tilt %d accepted", tt.pan, tt.tilt)
			}
		})
	}
}

func TestDirectionsComplete(t *testing.T) {
	names := []string{
		"up", "down", "left", "right",
		"up-left", "up-right", "down-left", "down-right",
	}
	if len(directions) != len(names) {
		t.Fatalf("Expected %d directions, got %d", len(names), len(directions))
	}
	for _, name := range names {
		if _, ok := directions[name]; !ok {
			t.Fatalf("direction %q missing", name)
		}
	}
}
