// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package visca

import "time"

// The command catalog. Each entry pairs a fixed outbound byte template
// with the recipe for interpreting its reply. Adding a device capability
// means adding an entry here (plus a typed accessor on Camera); nothing
// else changes.

// Settle intervals: the device needs a minimum gap after each command
// before it accepts the next one. Reset and clear need a full second.
const (
	settleInterval      = 250 * time.Millisecond
	settleIntervalReset = time.Second
)

// replyKind selects how an inquiry reply's payload is decoded.
type replyKind int

const (
	replyNone  replyKind = iota // action command, envelope only
	replyWord                   // 16-bit word, 4 nibble bytes
	replyShort                  // 8-bit short, 2 nibble bytes
	replyMode                   // enumerated mode byte
	replyPair                   // two 16-bit words (pan, tilt)
)

// Command is one catalog entry: the payload bytes between the header and
// the terminator, the settle interval the device needs afterwards, and
// for inquiries the decode recipe (kind, payload offset, mode table).
type Command struct {
	name   string
	body   []byte
	settle time.Duration
	reply  replyKind
	offset int
	modes  map[byte]string
}

// Name returns the catalog name of the command.
func (c *Command) Name() string {
	return c.name
}

// Message builds the full outbound frame: header, body, terminator.
func (c *Command) Message() Message {
	m := make(Message, 0, len(c.body)+2)
	m = append(m, HeaderByte)
	m = append(m, c.body...)
	m = append(m, Terminator)
	return m
}

// Mode value names per inquiry. Lookups that miss produce ErrUnknown,
// never a silent default.
var (
	focusModes = map[byte]string{
		focusAuto:   "auto",
		focusManual: "manual",
	}
	wbModes = map[byte]string{
		wbAuto:    "auto",
		wbIndoor:  "indoor",
		wbOutdoor: "outdoor",
		wbOnePush: "one-push",
		wbManual:  "manual",
	}
	aeModes = map[byte]string{
		aeAuto:    "auto",
		aeManual:  "manual",
		aeShutter: "shutter",
		aeIris:    "iris",
		aeBright:  "bright",
	}
	powerStates = map[byte]string{
		powerOn:      "on",
		powerOff:     "off",
		powerSaveOff: "off",
	}
)

// Action commands.
var (
	cmdReset       = &Command{name: "pan/tilt reset", body: []byte{0x01, 0x06, 0x05}, settle: settleIntervalReset}
	cmdClear       = &Command{name: "interface clear", body: []byte{0x01, 0x00, 0x01}, settle: settleIntervalReset}
	cmdHome        = &Command{name: "pan/tilt home", body: []byte{0x01, 0x06, 0x04}, settle: settleInterval}
	cmdPowerOn     = &Command{name: "power on", body: []byte{0x01, 0x04, 0x00, powerOn}, settle: settleInterval}
	cmdPowerOff    = &Command{name: "power off", body: []byte{0x01, 0x04, 0x00, powerOff}, settle: settleInterval}
	cmdFocusStop   = &Command{name: "focus stop", body: []byte{0x01, 0x04, 0x08, 0x00}, settle: settleInterval}
	cmdFocusFar    = &Command{name: "focus far", body: []byte{0x01, 0x04, 0x08, 0x02}, settle: settleInterval}
	cmdFocusNear   = &Command{name: "focus near", body: []byte{0x01, 0x04, 0x08, 0x03}, settle: settleInterval}
	cmdFocusAuto   = &Command{name: "focus mode auto", body: []byte{0x01, 0x04, 0x38, focusAuto}, settle: settleInterval}
	cmdFocusManual = &Command{name: "focus mode manual", body: []byte{0x01, 0x04, 0x38, focusManual}, settle: settleInterval}
)

// Inquiries.
var (
	inqZoomPosition    = &Command{name: "zoom position", body: []byte{0x09, 0x04, 0x47}, settle: settleInterval, reply: replyWord, offset: 2}
	inqFocusPosition   = &Command{name: "focus position", body: []byte{0x09, 0x04, 0x48}, settle: settleInterval, reply: replyWord, offset: 2}
	inqFocusMode       = &Command{name: "focus mode", body: []byte{0x09, 0x04, 0x38}, settle: settleInterval, reply: replyMode, offset: 2, modes: focusModes}
	inqWhiteBalance    = &Command{name: "white balance mode", body: []byte{0x09, 0x04, 0x35}, settle: settleInterval, reply: replyMode, offset: 2, modes: wbModes}
	inqExposureMode    = &Command{name: "auto exposure mode", body: []byte{0x09, 0x04, 0x39}, settle: settleInterval, reply: replyMode, offset: 2, modes: aeModes}
	inqPowerStatus     = &Command{name: "power status", body: []byte{0x09, 0x04, 0x00}, settle: settleInterval, reply: replyMode, offset: 2, modes: powerStates}
	inqPanTiltPosition = &Command{name: "pan/tilt position", body: []byte{0x09, 0x06, 0x12}, settle: settleInterval, reply: replyPair, offset: 2}
	inqShutterPosition = &Command{name: "shutter position", body: []byte{0x09, 0x04, 0x4A}, settle: settleInterval, reply: replyShort, offset: 4}
	inqIrisPosition    = &Command{name: "iris position", body: []byte{0x09, 0x04, 0x4B}, settle: settleInterval, reply: replyShort, offset: 4}
	inqGainPosition    = &Command{name: "gain position", body: []byte{0x09, 0x04, 0x4C}, settle: settleInterval, reply: replyShort, offset: 4}
	inqBrightPosition  = &Command{name: "bright position", body: []byte{0x09, 0x04, 0x4D}, settle: settleInterval, reply: replyShort, offset: 4}
)

// newZoomVariable builds a variable-speed zoom command. The direction
// nibble is 0x2 for tele, 0x3 for wide; speed 0..7 occupies the low
// nibble. A zero direction byte stops the zoom.
func newZoomVariable(name string, dir byte, speed byte) *Command {
	body := []byte{0x01, 0x04, 0x07, 0x00}
	if dir != 0 {
		body[3] = dir<<4 | speed&0x0F
	}
	return &Command{name: name, body: body, settle: settleInterval}
}

// newZoomDirect builds an absolute zoom positioning command.
func newZoomDirect(pos uint16) *Command {
	body := append([]byte{0x01, 0x04, 0x47}, EncodeWord(pos)...)
	return &Command{name: "zoom direct", body: body, settle: settleInterval}
}

// newFocusDirect builds an absolute focus positioning command.
func newFocusDirect(pos uint16) *Command {
	body := append([]byte{0x01, 0x04, 0x48}, EncodeWord(pos)...)
	return &Command{name: "focus direct", body: body, settle: settleInterval}
}

// newWhiteBalanceMode builds a white balance mode set command.
// The mode byte must come from the white balance value set.
func newWhiteBalanceMode(mode byte) *Command {
	return &Command{name: "white balance set", body: []byte{0x01, 0x04, 0x35, mode}, settle: settleInterval}
}

// newExposureMode builds an auto exposure mode set command.
// The mode byte must come from the auto exposure value set.
func newExposureMode(mode byte) *Command {
	return &Command{name: "auto exposure set", body: []byte{0x01, 0x04, 0x39, mode}, settle: settleInterval}
}

// newDrive builds a pan/tilt drive command. Direction nibbles select
// per-axis motion (0x1 left/up, 0x2 right/down, 0x3 stop); speeds are
// 1..0x18 for pan and 1..0x14 for tilt. Drive continues until a stop
// drive or a new drive arrives.
func newDrive(name string, panSpeed, tiltSpeed, panDir, tiltDir byte) *Command {
	body := []byte{0x01, 0x06, 0x01, panSpeed, tiltSpeed, panDir, tiltDir}
	return &Command{name: name, body: body, settle: settleInterval}
}

// newAbsolutePosition builds an absolute pan/tilt positioning command.
// Pan and tilt targets travel as 4-nibble words after the speed bytes.
func newAbsolutePosition(panSpeed, tiltSpeed byte, pan, tilt uint16) *Command {
	body := []byte{0x01, 0x06, 0x02, panSpeed, tiltSpeed}
	body = append(body, EncodeWord(pan)...)
	body = append(body, EncodeWord(tilt)...)
	return &Command{name: "pan/tilt absolute", body: body, settle: settleInterval}
}
