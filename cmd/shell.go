// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Thermoquad/obscura/pkg/visca"
	"github.com/ergochat/readline"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const shellHistoryLimit = 500

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive command shell",
	Long: `Open one session and run commands against it interactively.

The session stays open between commands, so there is no per-command
reconnect and no repeated pan/tilt reset. Commands mirror the CLI:

  get <property>          Inquire a property, or 'get all'
  set <property> <value>  Set power, focus-mode, wb or ae
  zoom <action>           tele, wide, stop, or 'to <position>'
  focus <action>          far, near, stop, or 'to <position>'
  move <direction>        Drive the head, also stop, home, 'to <pan> <tilt>'
  reset                   Reset the pan/tilt head
  clear                   Clear the camera command buffer
  help                    List commands
  quit                    Leave the shell

On a terminal the shell has line editing, Ctrl+R history search and a
persistent history at ~/.obscura_history. Piped input is read line by
line, so scripted move sequences work too.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, args []string) error {
	cam, connInfo, err := OpenCamera()
	if err != nil {
		return err
	}
	defer cam.Close()

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	if interactive {
		fmt.Printf("Obscura - Interactive Shell\n")
		fmt.Printf("Connection: %s\n", connInfo)
		fmt.Printf("Type 'help' for commands, 'quit' to leave\n\n")
		return shellReadline(cam)
	}
	return shellScanner(cam)
}

// shellReadline runs the shell loop with line editing and history.
func shellReadline(cam *visca.Camera) error {
	historyPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyPath = filepath.Join(home, ".obscura_history")
	}

	rl, err := readline.NewFromConfig(&readline.Config{
		Prompt:                 "obscura> ",
		HistoryFile:            historyPath,
		HistoryLimit:           shellHistoryLimit,
		DisableAutoSaveHistory: true,
	})
	if err != nil {
		return fmt.Errorf("readline init failed: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			// Ctrl+C and Ctrl+D both leave the shell
			if err == readline.ErrInterrupt || err == io.EOF {
				return nil
			}
			return err
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		rl.SaveToHistory(trimmed)

		if quit := dispatch(cam, trimmed); quit {
			return nil
		}
	}
}

// shellScanner runs the shell loop over piped input.
func shellScanner(cam *visca.Camera) error {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		trimmed := strings.TrimSpace(scanner.Text())
		if trimmed == "" {
			continue
		}
		if quit := dispatch(cam, trimmed); quit {
			return nil
		}
	}
	return scanner.Err()
}

// dispatch runs one shell line against the open session. It returns
// true when the user asked to leave.
func dispatch(cam *visca.Camera, line string) bool {
	fields := strings.Fields(line)
	verb, rest := fields[0], fields[1:]

	var err error
	switch verb {
	case "quit", "exit":
		return true

	case "help":
		printShellHelp()
		return false

	case "get":
		if len(rest) != 1 {
			err = fmt.Errorf("usage: get <property>")
			break
		}
		err = inquire(cam, rest[0])

	case "set":
		if len(rest) != 2 {
			err = fmt.Errorf("usage: set <property> <value>")
			break
		}
		err = applySet(cam, rest[0], rest[1])

	case "zoom":
		err = applyZoom(cam, rest, zoomSpeed)

	case "focus":
		err = applyFocus(cam, rest)

	case "move":
		err = applyMove(cam, rest, movePanSpeed, moveTiltSpeed)

	case "reset":
		err = cam.Reset()

	case "clear":
		err = cam.Clear()

	default:
		err = fmt.Errorf("unknown command %q (try 'help')", verb)
	}

	if err != nil {
		fmt.Printf("error: %v\n", err)
	} else if verb != "get" {
		fmt.Println("ok")
	}
	return false
}

func printShellHelp() {
	fmt.Print(`Commands:
  get <property>          Inquire a property, or 'get all'
  set <property> <value>  Set power, focus-mode, wb or ae
  zoom <action>           tele, wide, stop, or 'to <position>'
  focus <action>          far, near, stop, or 'to <position>'
  move <direction>        Drive the head, also stop, home, 'to <pan> <tilt>'
  reset                   Reset the pan/tilt head
  clear                   Clear the camera command buffer
  quit                    Leave the shell
`)
}
