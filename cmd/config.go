// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

// fileConfig mirrors the TOML config file. Every key is optional; only
// keys actually present in the file override anything.
type fileConfig struct {
	Port      string `toml:"port"`
	Baud      int    `toml:"baud"`
	TCP       string `toml:"tcp"`
	URL       string `toml:"url"`
	Username  string `toml:"username"`
	TimeoutMS int    `toml:"timeout_ms"`
	LogLevel  string `toml:"log_level"`
}

// defaultConfigPath returns ~/.config/obscura/config.toml (or the
// platform equivalent), or empty when no config dir exists.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "obscura", "config.toml")
}

// applyConfig folds config file values into the flag variables.
// Precedence: explicit flag > config file > flag default. A --config
// path that cannot be read is an error; a missing default file is not.
func applyConfig(cmd *cobra.Command) error {
	path := configPath
	if path == "" {
		path = defaultConfigPath()
		if path == "" {
			return nil
		}
		if _, err := os.Stat(path); err != nil {
			return nil
		}
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}

	flags := cmd.Root().PersistentFlags()

	if meta.IsDefined("port") && !flags.Changed("port") {
		portName = strings.TrimSpace(raw.Port)
	}
	if meta.IsDefined("baud") && !flags.Changed("baud") {
		if raw.Baud <= 0 {
			return fmt.Errorf("config %s: baud must be positive, got %d", path, raw.Baud)
		}
		baudRate = raw.Baud
	}
	if meta.IsDefined("tcp") && !flags.Changed("tcp") {
		tcpAddr = strings.TrimSpace(raw.TCP)
	}
	if meta.IsDefined("url") && !flags.Changed("url") {
		wsURL = strings.TrimSpace(raw.URL)
	}
	if meta.IsDefined("username") && !flags.Changed("username") {
		wsUsername = strings.TrimSpace(raw.Username)
	}
	if meta.IsDefined("timeout_ms") && !flags.Changed("timeout") {
		if raw.TimeoutMS <= 0 {
			return fmt.Errorf("config %s: timeout_ms must be positive, got %d", path, raw.TimeoutMS)
		}
		readTimeoutMS = raw.TimeoutMS
	}
	if meta.IsDefined("log_level") && !flags.Changed("log-level") {
		logLevel = strings.TrimSpace(raw.LogLevel)
	}

	return nil
}
