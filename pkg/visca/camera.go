// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package visca

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// Transport supplies raw byte send/receive to a single camera. Write
// must write the full frame; ReadByte blocks until one byte arrives or
// the transport's configured timeout expires, in which case it returns
// the transport's own timeout error. Transport errors always propagate
// to the caller unchanged in kind; they are never reinterpreted as
// protocol errors.
type Transport interface {
	io.Writer
	ReadByte() (byte, error)
	io.Closer
}

// ErrClosed is returned by session calls after Close.
var ErrClosed = errors.New("visca: session closed")

// modeUnknown is the initial value of every soft mode field.
const modeUnknown = "unknown"

// PanTilt is a decoded pan/tilt position pair.
type PanTilt struct {
	Pan  uint16
	Tilt uint16
}

// Direction selects a pan/tilt drive motion.
type Direction int

// Drive directions.
const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
	DirUpLeft
	DirUpRight
	DirDownLeft
	DirDownRight
)

// driveTable maps each direction to its catalog name and per-axis
// direction nibbles.
var driveTable = map[Direction]struct {
	name      string
	pan, tilt byte
}{
	DirUp:        {"drive up", panStop, tiltUp},
	DirDown:      {"drive down", panStop, tiltDown},
	DirLeft:      {"drive left", panLeft, tiltStop},
	DirRight:     {"drive right", panRight, tiltStop},
	DirUpLeft:    {"drive up-left", panLeft, tiltUp},
	DirUpRight:   {"drive up-right", panRight, tiltUp},
	DirDownLeft:  {"drive down-left", panLeft, tiltDown},
	DirDownRight: {"drive down-right", panRight, tiltDown},
}

// Camera is a blocking, single-command VISCA session over one Transport.
// The session owns the Transport for its lifetime. It provides no
// internal synchronization: one command is in flight at a time, and
// concurrent callers must serialize externally.
//
// The three mode fields are a soft cache of the most recently inquired
// focus, white balance, and auto exposure modes. They start as "unknown"
// and refresh only when the corresponding inquiry succeeds; the device
// is the authority.
type Camera struct {
	t      Transport
	closed bool

	focusMode string
	wbMode    string
	aeMode    string

	// sleep implements the inter-command settle gap.
	sleep func(time.Duration)
}

// sleepFn is the default settle implementation. Tests stub it out.
var sleepFn = time.Sleep

func newCamera(t Transport) *Camera {
	return &Camera{
		t:         t,
		focusMode: modeUnknown,
		wbMode:    modeUnknown,
		aeMode:    modeUnknown,
		sleep:     sleepFn,
	}
}

// Open starts a session over an already-opened Transport and issues the
// forced pan/tilt reset the device requires before accepting commands.
// On a reset fault the error is returned and the Transport stays open in
// the caller's hands.
func Open(t Transport) (*Camera, error) {
	c := newCamera(t)
	if err := c.Reset(); err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	return c, nil
}

// Close releases the Transport. Calls after the first are no-ops.
func (c *Camera) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.t.Close()
}

// readMessage accumulates bytes one at a time until the terminator,
// inclusive. Accumulation is bounded: a stream that never terminates
// within MaxMessageSize bytes is a framing fault rather than unbounded
// growth, and a silent device surfaces the Transport's timeout error.
func (c *Camera) readMessage() (Message, error) {
	m := make(Message, 0, MaxMessageSize)
	for {
		b, err := c.t.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("read: %w", err)
		}
		m = append(m, b)
		if b == Terminator {
			return m, nil
		}
		if len(m) >= MaxMessageSize {
			return nil, fmt.Errorf("no terminator within %d bytes: %w", MaxMessageSize, ErrFraming)
		}
	}
}

// exec runs one catalog command as a synchronous transaction: write the
// frame, settle, then read terminator-delimited replies until one is a
// completion or an error report. Acknowledgement envelopes only confirm
// receipt and are skipped without classification.
func (c *Camera) exec(cmd *Command) (Message, error) {
	if c.closed {
		return nil, fmt.Errorf("%s: %w", cmd.name, ErrClosed)
	}
	if _, err := c.t.Write(cmd.Message()); err != nil {
		return nil, fmt.Errorf("%s: write: %w", cmd.name, err)
	}
	c.sleep(cmd.settle)
	for {
		reply, err := c.readMessage()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cmd.name, err)
		}
		if reply.Ack() {
			continue
		}
		if err := Classify(reply); err != nil {
			return nil, fmt.Errorf("%s: %w", cmd.name, err)
		}
		return reply, nil
	}
}

// do runs an action command, discarding the completion envelope.
func (c *Camera) do(cmd *Command) error {
	_, err := c.exec(cmd)
	return err
}

// inquireWord runs an inquiry whose reply carries one 16-bit word.
func (c *Camera) inquireWord(cmd *Command) (uint16, error) {
	m, err := c.exec(cmd)
	if err != nil {
		return 0, err
	}
	v, err := DecodeWord(m, cmd.offset)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", cmd.name, err)
	}
	return v, nil
}

// inquireShort runs an inquiry whose reply carries one 8-bit short.
func (c *Camera) inquireShort(cmd *Command) (uint16, error) {
	m, err := c.exec(cmd)
	if err != nil {
		return 0, err
	}
	v, err := DecodeShort(m, cmd.offset)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", cmd.name, err)
	}
	return v, nil
}

// inquireMode runs an inquiry whose reply carries an enumerated mode
// byte. A byte outside the command's mode table is ErrUnknown, never a
// silent default.
func (c *Camera) inquireMode(cmd *Command) (string, error) {
	m, err := c.exec(cmd)
	if err != nil {
		return "", err
	}
	b, err := DecodeByte(m, cmd.offset)
	if err != nil {
		return "", fmt.Errorf("%s: %w", cmd.name, err)
	}
	mode, ok := cmd.modes[b]
	if !ok {
		return "", fmt.Errorf("%s: mode byte 0x%02X: %w", cmd.name, b, ErrUnknown)
	}
	return mode, nil
}

// modeByte reverse-maps a mode name to its wire byte.
func modeByte(modes map[byte]string, name string) (byte, bool) {
	for b, n := range modes {
		if n == name {
			return b, true
		}
	}
	return 0, false
}

func checkPanTiltSpeeds(panSpeed, tiltSpeed byte) error {
	if panSpeed < 1 || panSpeed > PanSpeedMax {
		return fmt.Errorf("visca: pan speed 0x%02X out of range 0x01..0x%02X", panSpeed, PanSpeedMax)
	}
	if tiltSpeed < 1 || tiltSpeed > TiltSpeedMax {
		return fmt.Errorf("visca: tilt speed 0x%02X out of range 0x01..0x%02X", tiltSpeed, TiltSpeedMax)
	}
	return nil
}

// Reset performs a pan/tilt reset. The device recalibrates its motors
// and needs the long settle interval before the next command.
func (c *Camera) Reset() error {
	return c.do(cmdReset)
}

// Clear flushes the device's command buffers.
func (c *Camera) Clear() error {
	return c.do(cmdClear)
}

// Home returns the pan/tilt head to its center position.
func (c *Camera) Home() error {
	return c.do(cmdHome)
}

// PowerOn wakes the camera.
func (c *Camera) PowerOn() error {
	return c.do(cmdPowerOn)
}

// PowerOff puts the camera in standby.
func (c *Camera) PowerOff() error {
	return c.do(cmdPowerOff)
}

// PowerStatus reports the camera's power state ("on" or "off").
func (c *Camera) PowerStatus() (string, error) {
	return c.inquireMode(inqPowerStatus)
}

// ZoomPosition reports the current zoom position.
func (c *Camera) ZoomPosition() (uint16, error) {
	return c.inquireWord(inqZoomPosition)
}

// FocusPosition reports the current focus position.
func (c *Camera) FocusPosition() (uint16, error) {
	return c.inquireWord(inqFocusPosition)
}

// PanTiltPosition reports the current pan and tilt positions.
func (c *Camera) PanTiltPosition() (PanTilt, error) {
	m, err := c.exec(inqPanTiltPosition)
	if err != nil {
		return PanTilt{}, err
	}
	pan, err := DecodeWord(m, inqPanTiltPosition.offset)
	if err != nil {
		return PanTilt{}, fmt.Errorf("%s: %w", inqPanTiltPosition.name, err)
	}
	tilt, err := DecodeWord(m, inqPanTiltPosition.offset+4)
	if err != nil {
		return PanTilt{}, fmt.Errorf("%s: %w", inqPanTiltPosition.name, err)
	}
	return PanTilt{Pan: pan, Tilt: tilt}, nil
}

// FocusMode reports the focus mode ("auto" or "manual") and refreshes
// the soft cache on success.
func (c *Camera) FocusMode() (string, error) {
	mode, err := c.inquireMode(inqFocusMode)
	if err != nil {
		return "", err
	}
	c.focusMode = mode
	return mode, nil
}

// WhiteBalanceMode reports the white balance mode and refreshes the
// soft cache on success.
func (c *Camera) WhiteBalanceMode() (string, error) {
	mode, err := c.inquireMode(inqWhiteBalance)
	if err != nil {
		return "", err
	}
	c.wbMode = mode
	return mode, nil
}

// ExposureMode reports the auto exposure mode and refreshes the soft
// cache on success.
func (c *Camera) ExposureMode() (string, error) {
	mode, err := c.inquireMode(inqExposureMode)
	if err != nil {
		return "", err
	}
	c.aeMode = mode
	return mode, nil
}

// ShutterPosition reports the shutter register position.
func (c *Camera) ShutterPosition() (uint16, error) {
	return c.inquireShort(inqShutterPosition)
}

// IrisPosition reports the iris register position.
func (c *Camera) IrisPosition() (uint16, error) {
	return c.inquireShort(inqIrisPosition)
}

// GainPosition reports the gain register position.
func (c *Camera) GainPosition() (uint16, error) {
	return c.inquireShort(inqGainPosition)
}

// BrightPosition reports the bright register position.
func (c *Camera) BrightPosition() (uint16, error) {
	return c.inquireShort(inqBrightPosition)
}

// LastFocusMode returns the cached focus mode from the most recent
// successful FocusMode inquiry, or "unknown".
func (c *Camera) LastFocusMode() string {
	return c.focusMode
}

// LastWhiteBalanceMode returns the cached white balance mode from the
// most recent successful WhiteBalanceMode inquiry, or "unknown".
func (c *Camera) LastWhiteBalanceMode() string {
	return c.wbMode
}

// LastExposureMode returns the cached auto exposure mode from the most
// recent successful ExposureMode inquiry, or "unknown".
func (c *Camera) LastExposureMode() string {
	return c.aeMode
}

// SetFocusMode switches between autofocus and manual focus.
// Accepted modes: "auto", "manual".
func (c *Camera) SetFocusMode(mode string) error {
	switch mode {
	case "auto":
		return c.do(cmdFocusAuto)
	case "manual":
		return c.do(cmdFocusManual)
	}
	return fmt.Errorf("visca: focus mode %q is not auto or manual", mode)
}

// SetWhiteBalanceMode selects a white balance mode by name.
// Accepted modes: "auto", "indoor", "outdoor", "one-push", "manual".
func (c *Camera) SetWhiteBalanceMode(mode string) error {
	b, ok := modeByte(wbModes, mode)
	if !ok {
		return fmt.Errorf("visca: white balance mode %q not recognized", mode)
	}
	return c.do(newWhiteBalanceMode(b))
}

// SetExposureMode selects an auto exposure mode by name.
// Accepted modes: "auto", "manual", "shutter", "iris", "bright".
func (c *Camera) SetExposureMode(mode string) error {
	b, ok := modeByte(aeModes, mode)
	if !ok {
		return fmt.Errorf("visca: auto exposure mode %q not recognized", mode)
	}
	return c.do(newExposureMode(b))
}

// ZoomTele zooms in at the given speed (0..7).
func (c *Camera) ZoomTele(speed byte) error {
	if speed > ZoomSpeedMax {
		return fmt.Errorf("visca: zoom speed %d out of range 0..%d", speed, ZoomSpeedMax)
	}
	return c.do(newZoomVariable("zoom tele", 0x2, speed))
}

// ZoomWide zooms out at the given speed (0..7).
func (c *Camera) ZoomWide(speed byte) error {
	if speed > ZoomSpeedMax {
		return fmt.Errorf("visca: zoom speed %d out of range 0..%d", speed, ZoomSpeedMax)
	}
	return c.do(newZoomVariable("zoom wide", 0x3, speed))
}

// ZoomStop halts zoom motion.
func (c *Camera) ZoomStop() error {
	return c.do(newZoomVariable("zoom stop", 0, 0))
}

// ZoomTo moves the zoom to an absolute position.
func (c *Camera) ZoomTo(pos uint16) error {
	return c.do(newZoomDirect(pos))
}

// FocusFar moves focus toward far.
func (c *Camera) FocusFar() error {
	return c.do(cmdFocusFar)
}

// FocusNear moves focus toward near.
func (c *Camera) FocusNear() error {
	return c.do(cmdFocusNear)
}

// FocusStop halts focus motion.
func (c *Camera) FocusStop() error {
	return c.do(cmdFocusStop)
}

// FocusTo moves the focus to an absolute position. The device rejects
// this outside manual focus mode.
func (c *Camera) FocusTo(pos uint16) error {
	return c.do(newFocusDirect(pos))
}

// Drive starts continuous pan/tilt motion in the given direction. Motion
// continues until Stop or another Drive. Pan speed is 1..0x18, tilt
// speed 1..0x14.
func (c *Camera) Drive(d Direction, panSpeed, tiltSpeed byte) error {
	entry, ok := driveTable[d]
	if !ok {
		return fmt.Errorf("visca: drive direction %d not defined", d)
	}
	if err := checkPanTiltSpeeds(panSpeed, tiltSpeed); err != nil {
		return err
	}
	return c.do(newDrive(entry.name, panSpeed, tiltSpeed, entry.pan, entry.tilt))
}

// Stop halts pan/tilt motion on both axes.
func (c *Camera) Stop() error {
	return c.do(newDrive("drive stop", 1, 1, panStop, tiltStop))
}

// MoveTo drives the pan/tilt head to an absolute position at the given
// speeds. Pan speed is 1..0x18, tilt speed 1..0x14.
func (c *Camera) MoveTo(pan, tilt uint16, panSpeed, tiltSpeed byte) error {
	if err := checkPanTiltSpeeds(panSpeed, tiltSpeed); err != nil {
		return err
	}
	return c.do(newAbsolutePosition(panSpeed, tiltSpeed, pan, tilt))
}
