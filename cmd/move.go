// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"strconv"

	"github.com/Thermoquad/obscura/pkg/visca"
	"github.com/spf13/cobra"
)

var (
	movePanSpeed  int
	moveTiltSpeed int
)

var moveCmd = &cobra.Command{
	Use:   "move <direction>",
	Short: "Drive the pan/tilt head",
	Long: `Drive the pan/tilt head in a direction, or to a position.

Directions: up, down, left, right, up-left, up-right, down-left,
down-right. The head keeps moving until 'move stop' is sent.

Other actions:
  stop              Stop a drive in progress
  home              Return to the home position
  to <pan> <tilt>   Drive to an absolute position (decimal or 0x hex)

Speeds are set with --pan-speed (1-24) and --tilt-speed (1-20).

Examples:
  obscura -p /dev/ttyUSB0 move left --pan-speed 12
  obscura -p /dev/ttyUSB0 move to 0x1000 0x0200
  obscura -p /dev/ttyUSB0 move stop`,
	Args: cobra.RangeArgs(1, 3),
	RunE: runMove,
}

func init() {
	rootCmd.AddCommand(moveCmd)
	moveCmd.Flags().IntVar(&movePanSpeed, "pan-speed", 8, "Pan speed (1-24)")
	moveCmd.Flags().IntVar(&moveTiltSpeed, "tilt-speed", 8, "Tilt speed (1-20)")
}

// directions maps command line direction names to drive directions.
var directions = map[string]visca.Direction{
	"up":         visca.DirUp,
	"down":       visca.DirDown,
	"left":       visca.DirLeft,
	"right":      visca.DirRight,
	"up-left":    visca.DirUpLeft,
	"up-right":   visca.DirUpRight,
	"down-left":  visca.DirDownLeft,
	"down-right": visca.DirDownRight,
}

// parsePosition parses a position argument in decimal or 0x hex form.
func parsePosition(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid position %q: %w", s, err)
	}
	return uint16(v), nil
}

// applyMove routes a pan/tilt action to the camera. Shared with the
// interactive shell. Speed range checks run on the int flag values;
// narrowing to a byte first would wrap out-of-range speeds into valid
// ones.
func applyMove(cam *visca.Camera, args []string, panSpeed, tiltSpeed int) error {
	if panSpeed < 1 || panSpeed > visca.PanSpeedMax {
		return fmt.Errorf("pan speed %d out of range 1-%d", panSpeed, visca.PanSpeedMax)
	}
	if tiltSpeed < 1 || tiltSpeed > visca.TiltSpeedMax {
		return fmt.Errorf("tilt speed %d out of range 1-%d", tiltSpeed, visca.TiltSpeedMax)
	}
	if len(args) == 0 {
		return fmt.Errorf("move takes a direction, stop, home or to")
	}

	switch args[0] {
	case "stop":
		return cam.Stop()
	case "home":
		return cam.Home()
	case "to":
		if len(args) != 3 {
			return fmt.Errorf("move to takes a pan and a tilt position")
		}
		pan, err := parsePosition(args[1])
		if err != nil {
			return err
		}
		tilt, err := parsePosition(args[2])
		if err != nil {
			return err
		}
		return cam.MoveTo(pan, tilt, byte(panSpeed), byte(tiltSpeed))
	default:
		dir, ok := directions[args[0]]
		if !ok {
			return fmt.Errorf("unknown direction %q", args[0])
		}
		return cam.Drive(dir, byte(panSpeed), byte(tiltSpeed))
	}
}

func runMove(cmd *cobra.Command, args []string) error {
	cam, _, err := OpenCamera()
	if err != nil {
		return err
	}
	defer cam.Close()

	if err := applyMove(cam, args, movePanSpeed, moveTiltSpeed); err != nil {
		return err
	}
	fmt.Printf("move %s ok\n", args[0])
	return nil
}
