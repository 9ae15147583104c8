// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the pan/tilt head",
	Long: `Re-initialize the pan/tilt head and recalibrate its limit stops.

A reset also runs automatically whenever a session opens, so this
command exists mostly to recover a head that was moved by hand or
tripped a limit switch mid-session. Resetting an already reset head
is harmless.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	cam, _, err := OpenCamera()
	if err != nil {
		return err
	}
	defer cam.Close()

	if err := cam.Reset(); err != nil {
		return err
	}
	fmt.Println("Pan/tilt reset complete")
	return nil
}
