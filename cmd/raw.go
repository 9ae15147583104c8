// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/Thermoquad/obscura/pkg/visca"
	"github.com/spf13/cobra"
)

var rawListen bool

var rawCmd = &cobra.Command{
	Use:   "raw [hex bytes]",
	Short: "Send a raw frame and dump the replies",
	Long: `Send hand-built frame bytes and print everything that comes back.

Bytes are given in hex, spaced or run together. Replies print as they
arrive, one line per terminated message, until the read timeout
passes with no traffic. With --listen the dump continues until
interrupted, which also works with no frame at all for watching a
shared bus.

This talks straight to the transport: the session layer, its reply
classification and its automatic reset are all bypassed. The one
touch-up on the way out is a trailing FF terminator when the given
bytes lack one.

When listening over WebSocket, raise --timeout. The bridge connection
does not survive a quiet read window, so a short timeout ends the dump
early.

Examples:
  obscura -p /dev/ttyUSB0 raw 81 09 04 47 FF
  obscura -p /dev/ttyUSB0 raw 8101040002FF
  obscura -p /dev/ttyUSB0 raw --listen`,
	RunE: runRaw,
}

func init() {
	rootCmd.AddCommand(rawCmd)
	rawCmd.Flags().BoolVar(&rawListen, "listen", false, "Keep dumping replies until interrupted")
}

// parseHexBytes decodes arguments like "81 09 04 47 FF" or
// "81090447FF" into frame bytes.
func parseHexBytes(args []string) ([]byte, error) {
	joined := strings.Join(args, "")
	if len(joined)%2 != 0 {
		return nil, fmt.Errorf("odd number of hex digits in %q", strings.Join(args, " "))
	}
	frame, err := hex.DecodeString(joined)
	if err != nil {
		return nil, fmt.Errorf("invalid hex bytes: %w", err)
	}
	return frame, nil
}

func runRaw(cmd *cobra.Command, args []string) error {
	frame, err := parseHexBytes(args)
	if err != nil {
		return err
	}
	if len(frame) == 0 && !rawListen {
		return fmt.Errorf("no bytes to send (use --listen to only receive)")
	}
	if len(frame) > 0 && frame[len(frame)-1] != visca.Terminator {
		frame = append(frame, visca.Terminator)
	}

	t, connInfo, err := OpenTransport()
	if err != nil {
		return err
	}
	defer t.Close()

	fmt.Printf("Obscura - Raw Frame\n")
	fmt.Printf("Connection: %s\n\n", connInfo)

	if len(frame) > 0 {
		if _, err := t.Write(frame); err != nil {
			return err
		}
		fmt.Printf("tx %s\n", visca.Message(frame))
	}

	var msg visca.Message
	for {
		b, err := t.ReadByte()
		if err != nil {
			if errors.Is(err, ErrReadTimeout) {
				if rawListen {
					continue
				}
				if len(msg) > 0 {
					fmt.Printf("rx %s (incomplete)\n", msg)
				}
				return nil
			}
			if errors.Is(err, ErrConnectionClosed) {
				fmt.Println("Connection closed")
				return nil
			}
			return err
		}

		msg = append(msg, b)
		if b == visca.Terminator {
			fmt.Printf("rx %s\n", msg)
			msg = msg[:0]
		}
	}
}
