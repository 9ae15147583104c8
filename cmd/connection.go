// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"bufio"
	"context"
	"crypto/tls"
	"encoding/base64"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/Thermoquad/obscura/pkg/visca"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"go.bug.st/serial"
	"golang.org/x/term"
)

// ErrReadTimeout is returned by a transport when no byte arrives within
// the configured timeout. The session surfaces it unchanged, so callers
// can tell a silent device from a protocol fault.
var ErrReadTimeout = errors.New("connection: read timeout")

// ErrConnectionClosed is returned when using a connection that has
// failed or been closed.
var ErrConnectionClosed = errors.New("connection: closed")

// SerialTransport drives a camera over a local serial port.
type SerialTransport struct {
	port serial.Port
}

// OpenSerialTransport opens a serial port at 8N1 with the given read
// timeout.
func OpenSerialTransport(portName string, baudRate int, timeout time.Duration) (*SerialTransport, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", portName, err)
	}
	if err := port.SetReadTimeout(timeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("failed to set read timeout on %s: %w", portName, err)
	}

	return &SerialTransport{port: port}, nil
}

func (s *SerialTransport) Write(p []byte) (int, error) {
	return s.port.Write(p)
}

// ReadByte reads one byte. The port reports an expired timeout as a
// zero-length read, which maps to ErrReadTimeout here.
func (s *SerialTransport) ReadByte() (byte, error) {
	var buf [1]byte
	n, err := s.port.Read(buf[:])
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, ErrReadTimeout
	}
	return buf[0], nil
}

func (s *SerialTransport) Close() error {
	return s.port.Close()
}

// TCPTransport drives a camera through a VISCA-over-IP bridge speaking
// the raw serial byte stream on a TCP port.
type TCPTransport struct {
	conn    net.Conn
	timeout time.Duration
}

// OpenTCPTransport dials a TCP bridge.
func OpenTCPTransport(addr string, timeout time.Duration) (*TCPTransport, error) {
	conn, err := net.DialTimeout("tcp", addr, 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	return &TCPTransport{conn: conn, timeout: timeout}, nil
}

func (t *TCPTransport) Write(p []byte) (int, error) {
	return t.conn.Write(p)
}

func (t *TCPTransport) ReadByte() (byte, error) {
	if err := t.conn.SetReadDeadline(time.Now().Add(t.timeout)); err != nil {
		return 0, err
	}
	var buf [1]byte
	for {
		n, err := t.conn.Read(buf[:])
		if err != nil {
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				return 0, ErrReadTimeout
			}
			return 0, err
		}
		if n > 0 {
			return buf[0], nil
		}
	}
}

func (t *TCPTransport) Close() error {
	return t.conn.Close()
}

// WebSocketTransport drives a camera through a serial-over-WebSocket
// bridge that relays the raw byte stream as binary messages.
type WebSocketTransport struct {
	conn      *websocket.Conn
	buf       []byte
	bufOffset int
	timeout   time.Duration
	closed    bool
}

// OpenWebSocketTransport opens a WebSocket connection with HTTP Basic
// auth.
func OpenWebSocketTransport(wsURL, username, password string, skipSSLVerify bool, timeout time.Duration) (*WebSocketTransport, error) {
	u, err := url.Parse(wsURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	switch u.Scheme {
	case "ws", "wss":
		// OK
	default:
		return nil, fmt.Errorf("unsupported URL scheme: %s (use ws:// or wss://)", u.Scheme)
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}
	if u.Scheme == "wss" {
		dialer.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: skipSSLVerify,
		}
	}

	headers := http.Header{}
	if username != "" && password != "" {
		credentials := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
		headers.Set("Authorization", "Basic "+credentials)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	conn, resp, err := dialer.DialContext(ctx, wsURL, headers)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("WebSocket connection failed (HTTP %d): %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("WebSocket connection failed: %w", err)
	}

	return &WebSocketTransport{conn: conn, timeout: timeout}, nil
}

func (w *WebSocketTransport) Write(p []byte) (int, error) {
	if w.closed {
		return 0, ErrConnectionClosed
	}
	if err := w.conn.WriteMessage(websocket.BinaryMessage, p); err != nil {
		w.closed = true
		return 0, err
	}
	return len(p), nil
}

// ReadByte drains buffered bytes from the last binary message before
// reading the next one. A read error poisons the underlying WebSocket,
// so the connection is marked closed even on timeout.
func (w *WebSocketTransport) ReadByte() (byte, error) {
	if w.closed {
		return 0, ErrConnectionClosed
	}

	for w.bufOffset >= len(w.buf) {
		if err := w.conn.SetReadDeadline(time.Now().Add(w.timeout)); err != nil {
			return 0, err
		}
		messageType, data, err := w.conn.ReadMessage()
		if err != nil {
			w.closed = true
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				return 0, ErrReadTimeout
			}
			return 0, err
		}
		if messageType != websocket.BinaryMessage {
			continue
		}
		w.buf = data
		w.bufOffset = 0
	}

	b := w.buf[w.bufOffset]
	w.bufOffset++
	return b, nil
}

func (w *WebSocketTransport) Close() error {
	w.closed = true
	return w.conn.Close()
}

// traceTransport wraps a transport and logs whole frames at debug
// level: outbound on write, inbound once the terminator arrives.
type traceTransport struct {
	inner visca.Transport
	rx    visca.Message
}

func newTraceTransport(inner visca.Transport) *traceTransport {
	return &traceTransport{inner: inner}
}

func (t *traceTransport) Write(p []byte) (int, error) {
	n, err := t.inner.Write(p)
	if err != nil {
		return n, err
	}
	log.Debug().Str("tx", visca.Message(p).String()).Msg("frame sent")
	return n, nil
}

func (t *traceTransport) ReadByte() (byte, error) {
	b, err := t.inner.ReadByte()
	if err != nil {
		t.rx = t.rx[:0]
		return 0, err
	}
	t.rx = append(t.rx, b)
	if b == visca.Terminator {
		log.Debug().Str("rx", t.rx.String()).Msg("reply received")
		t.rx = t.rx[:0]
	}
	return b, nil
}

func (t *traceTransport) Close() error {
	return t.inner.Close()
}

// GetPassword retrieves the WebSocket password from the environment or
// prompts for it without echo.
func GetPassword() (string, error) {
	if pw := os.Getenv("OBSCURA_PASSWORD"); pw != "" {
		return pw, nil
	}

	fmt.Fprint(os.Stderr, "Password: ")

	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		// Fallback to regular input if terminal functions fail
		reader := bufio.NewReader(os.Stdin)
		password, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(os.Stderr)
		return strings.TrimSpace(password), nil
	}

	fmt.Fprintln(os.Stderr)
	return string(passwordBytes), nil
}

// OpenTransport opens the transport selected by the connection flags.
// When several are set, WebSocket wins over TCP over serial. The
// returned string describes the connection for display.
func OpenTransport() (visca.Transport, string, error) {
	timeout := time.Duration(readTimeoutMS) * time.Millisecond

	if wsURL != "" {
		password := ""
		if wsUsername != "" {
			var err error
			password, err = GetPassword()
			if err != nil {
				return nil, "", err
			}
		}

		t, err := OpenWebSocketTransport(wsURL, wsUsername, password, wsNoSSLVerify, timeout)
		if err != nil {
			return nil, "", err
		}
		return newTraceTransport(t), fmt.Sprintf("WebSocket: %s", wsURL), nil
	}

	if tcpAddr != "" {
		t, err := OpenTCPTransport(tcpAddr, timeout)
		if err != nil {
			return nil, "", err
		}
		return newTraceTransport(t), fmt.Sprintf("TCP: %s", tcpAddr), nil
	}

	if portName != "" {
		t, err := OpenSerialTransport(portName, baudRate, timeout)
		if err != nil {
			return nil, "", err
		}
		return newTraceTransport(t), fmt.Sprintf("Serial: %s @ %d baud", portName, baudRate), nil
	}

	return nil, "", fmt.Errorf("one of --port, --tcp or --url must be specified")
}

// OpenCamera opens the configured transport and starts a camera session
// over it. The session's forced pan/tilt reset runs here, so a
// successful return means the camera answered.
func OpenCamera() (*visca.Camera, string, error) {
	t, info, err := OpenTransport()
	if err != nil {
		return nil, "", err
	}

	log.Debug().Str("connection", info).Msg("transport open, resetting camera")
	cam, err := visca.Open(t)
	if err != nil {
		t.Close()
		return nil, "", err
	}
	return cam, info, nil
}
