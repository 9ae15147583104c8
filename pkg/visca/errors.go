// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package visca

import (
	"errors"
	"fmt"
)

// Protocol error kinds. Every fault the device can report maps to one of
// these sentinels; callers test with errors.Is. Transport failures are
// never translated into these kinds.
var (
	// ErrMessageLength is reported when the device received a command of
	// invalid length.
	ErrMessageLength = errors.New("visca: message length error")

	// ErrSyntax is reported for invalid command syntax or parameters.
	ErrSyntax = errors.New("visca: command syntax error")

	// ErrBufferFull is reported when the device is already executing two
	// commands and cannot accept another.
	ErrBufferFull = errors.New("visca: command buffer full")

	// ErrCancel is reported when a cancel request failed to cancel an
	// active command.
	ErrCancel = errors.New("visca: command cancel failed")

	// ErrAddress is reported when a cancel names an invalid or idle
	// socket.
	ErrAddress = errors.New("visca: invalid socket address")

	// ErrCommand is reported when the command is invalid, or valid but
	// not executable in the device's current state.
	ErrCommand = errors.New("visca: command not executable")

	// ErrUnknown covers error codes and inquiry enum values outside the
	// defined sets.
	ErrUnknown = errors.New("visca: unknown error")

	// ErrFraming marks a malformed or short message, detected before any
	// decode touches out-of-bounds bytes.
	ErrFraming = errors.New("visca: malformed message")
)

// Classify maps an error-report message to its protocol error kind. Ack
// and completion envelopes never classify; Classify returns nil for them
// regardless of trailing bytes. The code byte immediately follows the
// envelope, so a well-formed report is at least 4 bytes (address,
// envelope, code, terminator).
func Classify(m Message) error {
	if m.Ack() || m.Completion() {
		return nil
	}
	if len(m) < 4 {
		return fmt.Errorf("visca: error report %s lacks a code byte: %w", m, ErrFraming)
	}
	return classifyCode(m[2])
}

// classifyCode applies the error-code decision rules in priority order.
// The full-byte command-error match runs before the low-nibble matches;
// 0x41's low nibble would otherwise collide with the length error.
func classifyCode(code byte) error {
	if code == errCodeCommand {
		return ErrCommand
	}
	switch code & 0x0F {
	case errCodeMsgLength:
		return ErrMessageLength
	case errCodeSyntax:
		return ErrSyntax
	case errCodeBufferFull:
		return ErrBufferFull
	case errCodeCancel:
		return ErrCancel
	case errCodeNoSocket:
		return ErrAddress
	}
	return fmt.Errorf("visca: error code 0x%02X: %w", code, ErrUnknown)
}
