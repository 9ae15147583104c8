// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the camera command buffer",
	Long: `Cancel queued and in-flight commands on the camera.

Useful when an interrupted client left the camera mid-command and it
now answers 'buffer full' to everything.`,
	Args: cobra.NoArgs,
	RunE: runClear,
}

func init() {
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, args []string) error {
	cam, _, err := OpenCamera()
	if err != nil {
		return err
	}
	defer cam.Close()

	if err := cam.Clear(); err != nil {
		return err
	}
	fmt.Println("Command buffer cleared")
	return nil
}
