// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var pingCount int

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Test the connection with zoom position inquiries",
	Long: `Send zoom position inquiries and report round-trip times.

A camera that acknowledges and answers inquiries is powered, addressed
and listening. Opening the session resets the pan/tilt head as always;
the inquiries themselves are read-only. Round-trip times include the
protocol's fixed settle delay, so expect at least 250ms per ping.

Exit codes:
  0 - All pings answered
  1 - One or more pings failed
  2 - Connection error

Useful for checking cabling, baud rate and bridge configuration.`,
	Args: cobra.NoArgs,
	RunE: runPing,
}

func init() {
	rootCmd.AddCommand(pingCmd)
	pingCmd.Flags().IntVar(&pingCount, "count", 3, "Number of pings to send")
}

func runPing(cmd *cobra.Command, args []string) error {
	cam, connInfo, err := OpenCamera()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}
	defer cam.Close()

	fmt.Printf("Obscura - Camera Ping\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Count: %d pings\n\n", pingCount)

	successCount := 0
	failCount := 0

	for i := 1; i <= pingCount; i++ {
		fmt.Printf("Ping %d/%d: ", i, pingCount)

		startTime := time.Now()
		position, err := cam.ZoomPosition()
		if err != nil {
			fmt.Printf("FAILED: %v\n", err)
			failCount++
			continue
		}

		rtt := time.Since(startTime)
		fmt.Printf("OK, zoom=0x%04X, rtt=%v\n", position, rtt.Round(time.Millisecond))
		successCount++

		// Small delay between pings
		if i < pingCount {
			time.Sleep(100 * time.Millisecond)
		}
	}

	// Summary
	fmt.Printf("\n--- Ping statistics ---\n")
	fmt.Printf("%d pings sent, %d answered, %.0f%% loss\n",
		pingCount, successCount, float64(failCount)/float64(pingCount)*100)

	if failCount > 0 {
		os.Exit(1)
	}
	return nil
}
