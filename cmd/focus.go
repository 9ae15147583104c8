// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"

	"github.com/Thermoquad/obscura/pkg/visca"
	"github.com/spf13/cobra"
)

var focusCmd = &cobra.Command{
	Use:   "focus <action>",
	Short: "Run the focus",
	Long: `Run the focus toward far or near, stop it, or send it to an
absolute position.

Actions:
  far             Focus farther away
  near            Focus closer
  stop            Stop a focus move in progress
  to <position>   Focus to an absolute position (decimal or 0x hex)

Most cameras reject far/near/to while in auto focus; switch first with
'set focus-mode manual'.

Examples:
  obscura -p /dev/ttyUSB0 focus near
  obscura -p /dev/ttyUSB0 focus to 0x0800`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runFocus,
}

func init() {
	rootCmd.AddCommand(focusCmd)
}

// applyFocus routes a focus action to the camera. Shared with the
// interactive shell.
func applyFocus(cam *visca.Camera, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("focus takes far, near, stop or to")
	}

	switch args[0] {
	case "far":
		return cam.FocusFar()
	case "near":
		return cam.FocusNear()
	case "stop":
		return cam.FocusStop()
	case "to":
		if len(args) != 2 {
			return fmt.Errorf("focus to takes a position")
		}
		position, err := parsePosition(args[1])
		if err != nil {
			return err
		}
		return cam.FocusTo(position)
	default:
		return fmt.Errorf("unknown focus action %q (far, near, stop, to)", args[0])
	}
}

func runFocus(cmd *cobra.Command, args []string) error {
	cam, _, err := OpenCamera()
	if err != nil {
		return err
	}
	defer cam.Close()

	if err := applyFocus(cam, args); err != nil {
		return err
	}
	fmt.Printf("focus %s ok\n", args[0])
	return nil
}
