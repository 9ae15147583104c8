// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"

	"github.com/Thermoquad/obscura/pkg/visca"
	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set <property> <value>",
	Short: "Set a camera mode",
	Long: `Set a camera mode property.

Properties and values:
  power       on, off
  focus-mode  auto, manual
  wb          auto, indoor, outdoor, one-push, manual
  ae          auto, manual, shutter, iris, bright

Examples:
  obscura -p /dev/ttyUSB0 set wb indoor
  obscura -p /dev/ttyUSB0 set focus-mode manual
  obscura -p /dev/ttyUSB0 set power off`,
	Args: cobra.ExactArgs(2),
	RunE: runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
}

// applySet routes a mode change to the camera. Shared with the
// interactive shell.
func applySet(cam *visca.Camera, property, value string) error {
	switch property {
	case "power":
		switch value {
		case "on":
			return cam.PowerOn()
		case "off":
			return cam.PowerOff()
		default:
			return fmt.Errorf("power takes on or off, got %q", value)
		}
	case "focus-mode":
		return cam.SetFocusMode(value)
	case "wb":
		return cam.SetWhiteBalanceMode(value)
	case "ae":
		return cam.SetExposureMode(value)
	default:
		return fmt.Errorf("unknown property %q (power, focus-mode, wb, ae)", property)
	}
}

func runSet(cmd *cobra.Command, args []string) error {
	cam, _, err := OpenCamera()
	if err != nil {
		return err
	}
	defer cam.Close()

	if err := applySet(cam, args[0], args[1]); err != nil {
		return err
	}
	fmt.Printf("%s set to %s\n", args[0], args[1])
	return nil
}
