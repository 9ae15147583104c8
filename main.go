// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad
//
// Obscura - VISCA PTZ Camera Controller
//
// A CLI tool for driving VISCA pan/tilt/zoom cameras over serial
// ports, TCP bridges and serial-over-WebSocket bridges.

package main

import (
	"os"

	"github.com/Thermoquad/obscura/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
