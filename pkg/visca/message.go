// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package visca

import (
	"fmt"
	"strings"
)

// Message is a raw VISCA message: an ordered byte sequence whose final
// byte is the 0xFF terminator. Inbound messages carry a two-byte
// envelope: byte 0 echoes the device address, byte 1's high nibble
// selects the reply class and its low nibble names the command socket
// (not interpreted here).
type Message []byte

// Ack reports whether the message is an acknowledgement envelope (0x4_).
func (m Message) Ack() bool {
	return len(m) >= 2 && m[1]&envelopeMask == AckMask
}

// Completion reports whether the message is a completion envelope (0x5_).
// Completion replies to inquiries carry the payload.
func (m Message) Completion() bool {
	return len(m) >= 2 && m[1]&envelopeMask == CompletionMask
}

// Error reports whether the message is an error report. Any envelope
// that is neither acknowledgement nor completion signals an error.
func (m Message) Error() bool {
	return len(m) >= 2 && !m.Ack() && !m.Completion()
}

// Terminated reports whether the message ends with the terminator byte.
func (m Message) Terminated() bool {
	return len(m) > 0 && m[len(m)-1] == Terminator
}

// String renders the message as space-separated uppercase hex.
func (m Message) String() string {
	if len(m) == 0 {
		return "(empty)"
	}
	var b strings.Builder
	for i, by := range m {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%02X", by)
	}
	return b.String()
}
