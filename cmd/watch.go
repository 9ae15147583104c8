// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/Thermoquad/obscura/pkg/visca"
	"github.com/spf13/cobra"
)

var (
	watchInterval int
	watchCount    int
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll camera position continuously",
	Long: `Poll zoom, focus and pan/tilt position at a fixed interval.

Each poll prints one line with the current positions and focus mode.
Inquiry faults are counted and shown without stopping the loop, so a
flaky link or a camera mid-reboot can be watched until it recovers.

Each poll issues four inquiries, and every inquiry carries the
protocol's settle delay, so polls take about a second regardless of
--interval.

A statistics summary prints when the loop ends, either after --count
polls or on Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().IntVar(&watchInterval, "interval", 1000, "Poll interval in milliseconds")
	watchCmd.Flags().IntVar(&watchCount, "count", 0, "Number of polls (0 = until interrupted)")
}

// pollOnce inquires the watched values and prints them as one line.
func pollOnce(cam *visca.Camera) error {
	zoom, err := cam.ZoomPosition()
	if err != nil {
		return fmt.Errorf("zoom: %w", err)
	}
	focus, err := cam.FocusPosition()
	if err != nil {
		return fmt.Errorf("focus: %w", err)
	}
	mode, err := cam.FocusMode()
	if err != nil {
		return fmt.Errorf("focus mode: %w", err)
	}
	pt, err := cam.PanTiltPosition()
	if err != nil {
		return fmt.Errorf("pan/tilt: %w", err)
	}

	timestamp := time.Now().Format("15:04:05.000")
	fmt.Printf("[%s] zoom=0x%04X focus=0x%04X (%s) pan=0x%04X tilt=0x%04X\n",
		timestamp, zoom, focus, mode, pt.Pan, pt.Tilt)
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	cam, connInfo, err := OpenCamera()
	if err != nil {
		return err
	}
	defer cam.Close()

	fmt.Printf("Obscura - Position Watch\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Interval: %d ms\n", watchInterval)
	if watchCount > 0 {
		fmt.Printf("Count: %d polls\n", watchCount)
	}
	fmt.Printf("Press Ctrl+C to exit\n\n")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(time.Duration(watchInterval) * time.Millisecond)
	defer ticker.Stop()

	polls := 0
	faults := 0
	started := time.Now()

loop:
	for {
		if err := pollOnce(cam); err != nil {
			faults++
			timestamp := time.Now().Format("15:04:05.000")
			fmt.Printf("[%s] poll failed: %v\n", timestamp, err)
		}
		polls++

		if watchCount > 0 && polls >= watchCount {
			break
		}

		select {
		case <-ctx.Done():
			fmt.Println()
			break loop
		case <-ticker.C:
		}
	}

	elapsed := time.Since(started).Round(time.Second)
	fmt.Printf("\n--- Watch statistics ---\n")
	fmt.Printf("%d polls in %v, %d faults, %.1f%% success\n",
		polls, elapsed, faults, float64(polls-faults)/float64(polls)*100)
	return nil
}
