// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Serial connection flags
	portName string
	baudRate int

	// TCP connection flags
	tcpAddr string

	// WebSocket connection flags
	wsURL         string
	wsUsername    string
	wsNoSSLVerify bool

	// Session flags
	readTimeoutMS int

	// Config and logging flags
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "obscura",
	Short: "VISCA PTZ Camera Controller",
	Long: `Obscura - A CLI tool for controlling pan-tilt-zoom cameras over VISCA.

Drives a single camera on a point-to-point link, issuing commands and
inquiries and decoding the camera's nibble-packed binary replies.

Connection modes:
  Serial:    --port /dev/ttyUSB0 [--baud 9600]
  TCP:       --tcp 192.168.0.10:52381
  WebSocket: --url ws://host/path [--username user]

Settings may also come from a TOML config file (default
~/.config/obscura/config.toml); flags take precedence.

For WebSocket authentication, the password is read from the OBSCURA_PASSWORD
environment variable, or prompted interactively if not set. The --password
flag is intentionally not provided to avoid leaking credentials in shell
history.`,
	Version:           "1.2.0",
	PersistentPreRunE: initRun,
}

func init() {
	// Serial connection flags
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 9600, "Baud rate (serial only)")

	// TCP connection flags
	rootCmd.PersistentFlags().StringVar(&tcpAddr, "tcp", "", "TCP bridge address (host:port)")

	// WebSocket connection flags
	rootCmd.PersistentFlags().StringVarP(&wsURL, "url", "u", "", "WebSocket URL (ws:// or wss://)")
	rootCmd.PersistentFlags().StringVar(&wsUsername, "username", "", "Username for HTTP Basic auth")
	rootCmd.PersistentFlags().BoolVar(&wsNoSSLVerify, "no-ssl-verify", false, "Skip TLS certificate verification (wss:// only)")

	// Session flags
	rootCmd.PersistentFlags().IntVar(&readTimeoutMS, "timeout", 2000, "Per-byte read timeout in milliseconds")

	// Config and logging flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default ~/.config/obscura/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
}

// initRun applies config file values and sets up logging before any
// subcommand runs.
func initRun(cmd *cobra.Command, args []string) error {
	if err := applyConfig(cmd); err != nil {
		return err
	}
	return initLogger(logLevel)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
