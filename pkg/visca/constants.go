// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package visca provides a Go implementation of the VISCA camera control
// protocol for pan-tilt-zoom cameras on a point-to-point serial link.
//
// VISCA is a binary command/inquiry protocol. Every message is a short
// byte sequence terminated by 0xFF; data bytes carry payload in their low
// nibble only, which keeps them distinguishable from the terminator. This
// package provides the wire codec, the command catalog, reply
// classification, and a blocking single-command session.
package visca

// Protocol framing bytes
const (
	HeaderByte = 0x81 // Controller to camera 1 (fixed single-device address)
	Terminator = 0xFF
)

// Message size limits
const (
	// MaxMessageSize bounds reply accumulation. The longest defined reply
	// (pan/tilt position: envelope + 8 data bytes + terminator) is 11
	// bytes; 16 leaves headroom without allowing unbounded growth when a
	// terminator never arrives.
	MaxMessageSize = 16
)

// Reply envelope classes (byte 1, high nibble)
const (
	AckMask        = 0x40
	CompletionMask = 0x50
	envelopeMask   = 0xF0
)

// Error report codes (byte following the envelope)
const (
	errCodeMsgLength  = 0x01 // low nibble match
	errCodeSyntax     = 0x02 // low nibble match
	errCodeBufferFull = 0x03 // low nibble match
	errCodeCancel     = 0x04 // low nibble match
	errCodeNoSocket   = 0x05 // low nibble match
	errCodeCommand    = 0x41 // full byte match, takes priority
)

// Focus mode values (CAM_Focus / CAM_FocusModeInq)
const (
	focusAuto   = 0x02
	focusManual = 0x03
)

// White balance mode values (CAM_WB / CAM_WBModeInq)
const (
	wbAuto    = 0x00
	wbIndoor  = 0x01
	wbOutdoor = 0x02
	wbOnePush = 0x03
	wbManual  = 0x05
)

// Auto exposure mode values (CAM_AE / CAM_AEModeInq)
const (
	aeAuto    = 0x00
	aeManual  = 0x03
	aeShutter = 0x0A
	aeIris    = 0x0B
	aeBright  = 0x0D
)

// Power values (CAM_Power / CAM_PowerInq)
const (
	powerOn      = 0x02
	powerOff     = 0x03
	powerSaveOff = 0x04 // some models report power-save as 0x04
)

// Pan/tilt drive direction nibbles
const (
	panLeft  = 0x01
	panRight = 0x02
	panStop  = 0x03
	tiltUp   = 0x01
	tiltDown = 0x02
	tiltStop = 0x03
)

// Speed limits for drive and positioning commands
const (
	PanSpeedMax  = 0x18
	TiltSpeedMax = 0x14
	ZoomSpeedMax = 0x07
)
