// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package visca

import "fmt"

// The wire codec. Data bytes carry payload in their low 4 bits only,
// most significant nibble first, so no data byte can ever equal the
// 0xFF terminator. A 16-bit word therefore spans 4 bytes and an 8-bit
// short spans 2. The final byte of a message is the terminator itself
// and is never decoded as payload: a reply truncated by one data byte
// is a framing defect, not a shorter value.

// EncodeByte returns v as a single raw byte.
// Values outside 0..255 are a programming error and panic.
func EncodeByte(v int) byte {
	if v < 0 || v > 0xFF {
		panic(fmt.Sprintf("visca: byte value %d out of range 0..255", v))
	}
	return byte(v)
}

// DecodeByte returns the raw byte at offset as an unsigned value.
// An offset at or past the terminator position is a framing defect.
func DecodeByte(m Message, offset int) (byte, error) {
	if offset < 0 || offset >= len(m)-1 {
		return 0, fmt.Errorf("visca: byte at offset %d exceeds the data bytes of a %d-byte message: %w", offset, len(m), ErrFraming)
	}
	return m[offset], nil
}

// EncodeWord packs a 16-bit value into 4 nibble bytes, most significant
// nibble first. High nibbles of the output are always zero.
func EncodeWord(v uint16) []byte {
	return []byte{
		byte(v >> 12 & 0x0F),
		byte(v >> 8 & 0x0F),
		byte(v >> 4 & 0x0F),
		byte(v & 0x0F),
	}
}

// DecodeWord reconstructs a 16-bit value from the 4 nibble bytes starting
// at offset. High nibbles of the data bytes are ignored.
func DecodeWord(m Message, offset int) (uint16, error) {
	if offset < 0 || offset+4 > len(m)-1 {
		return 0, fmt.Errorf("visca: word at offset %d exceeds the data bytes of a %d-byte message: %w", offset, len(m), ErrFraming)
	}
	return uint16(m[offset]&0x0F)<<12 |
		uint16(m[offset+1]&0x0F)<<8 |
		uint16(m[offset+2]&0x0F)<<4 |
		uint16(m[offset+3]&0x0F), nil
}

// EncodeShort packs an 8-bit value into 2 nibble bytes, most significant
// nibble first. Values outside 0..255 are a programming error and panic.
func EncodeShort(v int) []byte {
	if v < 0 || v > 0xFF {
		panic(fmt.Sprintf("visca: short value %d out of range 0..255", v))
	}
	return []byte{
		byte(v >> 4 & 0x0F),
		byte(v & 0x0F),
	}
}

// DecodeShort reconstructs an 8-bit value from the 2 nibble bytes starting
// at offset. Exposure-related registers (shutter, iris, gain, bright) use
// this half-width form: their replies pad the field to 4 bytes but only
// the final 2 carry nibbles.
func DecodeShort(m Message, offset int) (uint16, error) {
	if offset < 0 || offset+2 > len(m)-1 {
		return 0, fmt.Errorf("visca: short at offset %d exceeds the data bytes of a %d-byte message: %w", offset, len(m), ErrFraming)
	}
	return uint16(m[offset]&0x0F)<<4 | uint16(m[offset+1]&0x0F), nil
}
