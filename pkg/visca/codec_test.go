// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package visca

import (
	"bytes"
	"errors"
	"testing"
)

// ============================================================
// Byte Codec Tests
// ============================================================

func TestEncodeByte_Values(t *testing.T) {
	tests := []struct {
		name     string
		value    int
		expected byte
	}{
		{name: "zero", value: 0, expected: 0x00},
		{name: "mid", value: 0x47, expected: 0x47},
		{name: "max", value: 255, expected: 0xFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EncodeByte(tt.value); got != tt.expected {
				t.Errorf("Expected 0x%02X, got 0x%02X", tt.expected, got)
			}
		})
	}
}

func TestEncodeByte_OutOfRangePanics(t *testing.T) {
	for _, v := range []int{-1, 256, 1000} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Expected panic for value %d", v)
				}
			}()
			EncodeByte(v)
		}()
	}
}

func TestDecodeByte_Value(t *testing.T) {
	// Completion reply carrying a single mode byte at offset 2
	m := Message{0x90, 0x50, 0x02, 0xFF}
	got, err := DecodeByte(m, 2)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if got != 0x02 {
		t.Errorf("Expected 0x02, got 0x%02X", got)
	}
}

func TestDecodeByte_OutOfBounds(t *testing.T) {
	m := Message{0x90, 0x50, 0xFF}
	tests := []struct {
		name   string
		offset int
	}{
		{name: "terminator position", offset: 2},
		{name: "past end", offset: 3},
		{name: "far past end", offset: 10},
		{name: "negative", offset: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeByte(m, tt.offset)
			if !errors.Is(err, ErrFraming) {
				t.Errorf("Expected ErrFraming, got %v", err)
			}
		})
	}
}

// ============================================================
// Word Codec Tests
// ============================================================

func TestDecodeWord_NibbleOrder(t *testing.T) {
	// Low nibbles A,B,C,D reassemble most-significant first
	m := Message{0x90, 0x50, 0x0A, 0x0B, 0x0C, 0x0D, 0xFF}
	got, err := DecodeWord(m, 2)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if got != 0xABCD {
		t.Errorf("Expected 0xABCD, got 0x%04X", got)
	}
}

func TestDecodeWord_HighNibblesIgnored(t *testing.T) {
	// High nibbles carry no data and must not leak into the value
	m := Message{0x90, 0x50, 0xFA, 0xFB, 0xFC, 0xFD, 0xFF}
	got, err := DecodeWord(m, 2)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if got != 0xABCD {
		t.Errorf("Expected 0xABCD, got 0x%04X", got)
	}
}

func TestDecodeWord_Values(t *testing.T) {
	tests := []struct {
		name     string
		data     Message
		offset   int
		expected uint16
	}{
		{name: "zero", data: Message{0x90, 0x50, 0x00, 0x00, 0x00, 0x00, 0xFF}, offset: 2, expected: 0x0000},
		{name: "max", data: Message{0x90, 0x50, 0x0F, 0x0F, 0x0F, 0x0F, 0xFF}, offset: 2, expected: 0xFFFF},
		{name: "zoom reply", data: Message{0x90, 0x50, 0x01, 0x02, 0x03, 0x04, 0xFF}, offset: 2, expected: 0x1234},
		{name: "tilt word", data: Message{0x90, 0x50, 0x01, 0x02, 0x03, 0x04, 0x00, 0x01, 0x00, 0x02, 0xFF}, offset: 6, expected: 0x0102},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeWord(tt.data, tt.offset)
			if err != nil {
				t.Fatalf("Decode error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected 0x%04X, got 0x%04X", tt.expected, got)
			}
		})
	}
}

func TestDecodeWord_OutOfBounds(t *testing.T) {
	// Three data bytes before the terminator cannot hold a word. Offset
	// 2 is the truncated-reply case: decoding there would fold the
	// terminator's low nibble into the value
	m := Message{0x90, 0x50, 0x01, 0x02, 0x03, 0xFF}
	for _, offset := range []int{2, 3, -1} {
		if _, err := DecodeWord(m, offset); !errors.Is(err, ErrFraming) {
			t.Errorf("Offset %d: expected ErrFraming, got %v", offset, err)
		}
	}
}

func TestEncodeWord_NibbleSplit(t *testing.T) {
	tests := []struct {
		name     string
		value    uint16
		expected []byte
	}{
		{name: "zero", value: 0x0000, expected: []byte{0x00, 0x00, 0x00, 0x00}},
		{name: "max", value: 0xFFFF, expected: []byte{0x0F, 0x0F, 0x0F, 0x0F}},
		{name: "mixed", value: 0xABCD, expected: []byte{0x0A, 0x0B, 0x0C, 0x0D}},
		{name: "asymmetric", value: 0x1234, expected: []byte{0x01, 0x02, 0x03, 0x04}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EncodeWord(tt.value)
			if !bytes.Equal(got, tt.expected) {
				t.Errorf("Expected % 02X, got % 02X", tt.expected, got)
			}
		})
	}
}

func TestEncodeWord_HighNibblesZero(t *testing.T) {
	for _, v := range []uint16{0x0000, 0x1234, 0xABCD, 0xFFFF} {
		for i, b := range EncodeWord(v) {
			if b&0xF0 != 0 {
				t.Errorf("Value 0x%04X byte %d has nonzero high nibble: 0x%02X", v, i, b)
			}
		}
	}
}

func TestWordRoundTrip_Exhaustive(t *testing.T) {
	// Every 16-bit value must survive encode then decode unchanged
	for v := 0; v <= 0xFFFF; v++ {
		m := Message(append(EncodeWord(uint16(v)), Terminator))
		got, err := DecodeWord(m, 0)
		if err != nil {
			t.Fatalf("Decode error at 0x%04X: %v", v, err)
		}
		if got != uint16(v) {
			t.Fatalf("Round trip failed: 0x%04X -> 0x%04X", v, got)
		}
	}
}

// ============================================================
// Short Codec Tests
// ============================================================

func TestDecodeShort_NibbleOrder(t *testing.T) {
	// Shutter-style reply: padded field, significant nibbles at 4..5
	m := Message{0x90, 0x50, 0x00, 0x00, 0x01, 0x0F, 0xFF}
	got, err := DecodeShort(m, 4)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if got != 0x1F {
		t.Errorf("Expected 0x1F, got 0x%02X", got)
	}
}

func TestDecodeShort_HighNibblesIgnored(t *testing.T) {
	m := Message{0x90, 0x50, 0x00, 0x00, 0xA1, 0xBF, 0xFF}
	got, err := DecodeShort(m, 4)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if got != 0x1F {
		t.Errorf("Expected 0x1F, got 0x%02X", got)
	}
}

func TestDecodeShort_OutOfBounds(t *testing.T) {
	// One data byte before the terminator cannot hold a short; offset 2
	// would need the terminator itself as payload
	m := Message{0x90, 0x50, 0x01, 0xFF}
	for _, offset := range []int{2, 3, -1} {
		if _, err := DecodeShort(m, offset); !errors.Is(err, ErrFraming) {
			t.Errorf("Offset %d: expected ErrFraming, got %v", offset, err)
		}
	}
}

func TestEncodeShort_NibbleSplit(t *testing.T) {
	tests := []struct {
		name     string
		value    int
		expected []byte
	}{
		{name: "zero", value: 0x00, expected: []byte{0x00, 0x00}},
		{name: "max", value: 0xFF, expected: []byte{0x0F, 0x0F}},
		{name: "mixed", value: 0x1F, expected: []byte{0x01, 0x0F}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EncodeShort(tt.value)
			if !bytes.Equal(got, tt.expected) {
				t.Errorf("Expected % 02X, got % 02X", tt.expected, got)
			}
		})
	}
}

func TestEncodeShort_OutOfRangePanics(t *testing.T) {
	for _, v := range []int{-1, 256} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Expected panic for value %d", v)
				}
			}()
			EncodeShort(v)
		}()
	}
}

func TestShortRoundTrip_Exhaustive(t *testing.T) {
	for v := 0; v <= 0xFF; v++ {
		m := Message(append(EncodeShort(v), Terminator))
		got, err := DecodeShort(m, 0)
		if err != nil {
			t.Fatalf("Decode error at 0x%02X: %v", v, err)
		}
		if got != uint16(v) {
			t.Fatalf("Round trip failed: 0x%02X -> 0x%02X", v, got)
		}
	}
}

// ============================================================
// Sentinel Safety Tests
// ============================================================

func TestEncodedDataNeverContainsTerminator(t *testing.T) {
	// Nibble packing guarantees no data byte can collide with 0xFF
	for _, v := range []uint16{0x0000, 0x1234, 0xFF00, 0x00FF, 0xFFFF} {
		for _, b := range EncodeWord(v) {
			if b == Terminator {
				t.Errorf("EncodeWord(0x%04X) produced a terminator byte", v)
			}
		}
	}
	for v := 0; v <= 0xFF; v++ {
		for _, b := range EncodeShort(v) {
			if b == Terminator {
				t.Errorf("EncodeShort(0x%02X) produced a terminator byte", v)
			}
		}
	}
}
