// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"

	"github.com/Thermoquad/obscura/pkg/visca"
	"github.com/spf13/cobra"
)

var zoomSpeed int

var zoomCmd = &cobra.Command{
	Use:   "zoom <action>",
	Short: "Run the zoom",
	Long: `Run the zoom toward tele or wide, stop it, or send it to an
absolute position.

Actions:
  tele            Zoom in at --speed
  wide            Zoom out at --speed
  stop            Stop a zoom in progress
  to <position>   Zoom to an absolute position (decimal or 0x hex)

Variable zooms keep running until 'zoom stop' is sent.

Examples:
  obscura -p /dev/ttyUSB0 zoom tele --speed 7
  obscura -p /dev/ttyUSB0 zoom to 0x1234
  obscura -p /dev/ttyUSB0 zoom stop`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runZoom,
}

func init() {
	rootCmd.AddCommand(zoomCmd)
	zoomCmd.Flags().IntVar(&zoomSpeed, "speed", 4, "Zoom speed (0-7)")
}

// applyZoom routes a zoom action to the camera. Shared with the
// interactive shell. The speed range check runs on the int flag value;
// narrowing to a byte first would wrap out-of-range speeds into valid
// ones.
func applyZoom(cam *visca.Camera, args []string, speed int) error {
	if speed < 0 || speed > visca.ZoomSpeedMax {
		return fmt.Errorf("zoom speed %d out of range 0-%d", speed, visca.ZoomSpeedMax)
	}
	if len(args) == 0 {
		return fmt.Errorf("zoom takes tele, wide, stop or to")
	}

	switch args[0] {
	case "tele":
		return cam.ZoomTele(byte(speed))
	case "wide":
		return cam.ZoomWide(byte(speed))
	case "stop":
		return cam.ZoomStop()
	case "to":
		if len(args) != 2 {
			return fmt.Errorf("zoom to takes a position")
		}
		position, err := parsePosition(args[1])
		if err != nil {
			return err
		}
		return cam.ZoomTo(position)
	default:
		return fmt.Errorf("unknown zoom action %q (tele, wide, stop, to)", args[0])
	}
}

func runZoom(cmd *cobra.Command, args []string) error {
	cam, _, err := OpenCamera()
	if err != nil {
		return err
	}
	defer cam.Close()

	if err := applyZoom(cam, args, zoomSpeed); err != nil {
		return err
	}
	fmt.Printf("zoom %s ok\n", args[0])
	return nil
}
