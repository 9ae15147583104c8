// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"

	"github.com/Thermoquad/obscura/pkg/visca"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <property>",
	Short: "Inquire a camera property",
	Long: `Inquire a single camera property and print its value.

Properties:
  power       Power status (on/off)
  zoom        Zoom position
  focus       Focus position
  focus-mode  Focus mode (auto/manual)
  wb          White balance mode
  ae          Exposure mode
  pan-tilt    Pan and tilt position
  shutter     Shutter level
  iris        Iris level
  gain        Gain level
  bright      Brightness level
  all         Every property above, one per line

Positions print in decimal with the hex value in parentheses.

Examples:
  obscura -p /dev/ttyUSB0 get zoom
  obscura -p /dev/ttyUSB0 get all`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

type property struct {
	name  string
	fetch func(*visca.Camera) (string, error)
}

// properties lists every inquirable value in 'get all' display order.
var properties = []property{
	{"power", func(c *visca.Camera) (string, error) { return c.PowerStatus() }},
	{"zoom", func(c *visca.Camera) (string, error) { return formatPosition(c.ZoomPosition()) }},
	{"focus", func(c *visca.Camera) (string, error) { return formatPosition(c.FocusPosition()) }},
	{"focus-mode", func(c *visca.Camera) (string, error) { return c.FocusMode() }},
	{"wb", func(c *visca.Camera) (string, error) { return c.WhiteBalanceMode() }},
	{"ae", func(c *visca.Camera) (string, error) { return c.ExposureMode() }},
	{"pan-tilt", func(c *visca.Camera) (string, error) {
		pt, err := c.PanTiltPosition()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("pan %d (0x%04X), tilt %d (0x%04X)", pt.Pan, pt.Pan, pt.Tilt, pt.Tilt), nil
	}},
	{"shutter", func(c *visca.Camera) (string, error) { return formatLevel(c.ShutterPosition()) }},
	{"iris", func(c *visca.Camera) (string, error) { return formatLevel(c.IrisPosition()) }},
	{"gain", func(c *visca.Camera) (string, error) { return formatLevel(c.GainPosition()) }},
	{"bright", func(c *visca.Camera) (string, error) { return formatLevel(c.BrightPosition()) }},
}

// formatPosition renders a word position inquiry result.
func formatPosition(v uint16, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d (0x%04X)", v, v), nil
}

// formatLevel renders a half-width inquiry result (shutter, iris, gain
// and brightness).
func formatLevel(v uint16, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d (0x%02X)", v, v), nil
}

// inquire fetches a named property, or all of them, and prints the
// result. Shared with the interactive shell.
func inquire(cam *visca.Camera, name string) error {
	if name == "all" {
		for _, p := range properties {
			value, err := p.fetch(cam)
			if err != nil {
				fmt.Printf("%-11s error: %v\n", p.name, err)
				continue
			}
			fmt.Printf("%-11s %s\n", p.name, value)
		}
		return nil
	}

	for _, p := range properties {
		if p.name != name {
			continue
		}
		value, err := p.fetch(cam)
		if err != nil {
			return err
		}
		fmt.Println(value)
		return nil
	}
	return fmt.Errorf("unknown property %q (see 'obscura get --help')", name)
}

func runGet(cmd *cobra.Command, args []string) error {
	cam, _, err := OpenCamera()
	if err != nil {
		return err
	}
	defer cam.Close()

	return inquire(cam, args[0])
}
