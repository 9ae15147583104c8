// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"bytes"
	"testing"
)

func TestParseHexBytes(t *testing.T) {
	frame, err := parseHexBytes([]string{"81", "09", "04", "47", "FF"})
	if err != nil {
		t.Fatalf("spaced bytes failed: %v", err)
	}
	if !bytes.Equal(frame, []byte{0x81, 0x09, 0x04, 0x47, 0xFF}) {
		t.Fatalf("spaced bytes decoded to % X", frame)
	}

	frame, err = parseHexBytes([]string{"8109", "0447ff"})
	if err != nil {
		t.Fatalf("run-together bytes failed: %v", err)
	}
	if !bytes.Equal(frame, []byte{0x81, 0x09, 0x04, 0x47, 0xFF}) {
		t.Fatalf("run-together bytes decoded to % X", frame)
	}

	frame, err = parseHexBytes(nil)
	if err != nil {
		t.Fatalf("empty args failed: %v", err)
	}
	if len(frame) != 0 {
		t.Fatalf("empty args decoded to % X", frame)
	}
}

func TestParseHexBytesRejectsBadInput(t *testing.T) {
	if _, err := parseHexBytes([]string{"81", "0"}); err == nil {
		t.Fatal("odd digit count accepted")
	}
	if _, err := parseHexBytes([]string{"hello"}); err == nil {
		t.Fatal("non-hex input accepted")
	}
}
