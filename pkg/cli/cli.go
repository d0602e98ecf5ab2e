// Package cli provides the command-line interface for screenpilot.
package cli

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// Version is set at build time.
var Version = "dev"

// GlobalFlags are available to all commands.
var GlobalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "device",
		Aliases: []string{"s"},
		Usage:   "Device serial to target (default: first connected)",
		EnvVars: []string{"SCREENPILOT_DEVICE"},
	},
	&cli.StringFlag{
		Name:    "adb-path",
		Usage:   "Path to the adb binary (default: PATH lookup)",
		EnvVars: []string{"SCREENPILOT_ADB"},
	},
	&cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Directory containing config.yaml",
		EnvVars: []string{"SCREENPILOT_CONFIG"},
	},
	&cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "Enable verbose logging to stderr",
		EnvVars: []string{"SCREENPILOT_VERBOSE"},
	},
}

// Execute runs the CLI.
func Execute() {
	app := &cli.App{
		Name:    "screenpilot",
		Usage:   "Resolve natural-language element descriptions into device taps",
		Version: Version,
		Description: `Screenpilot drives a connected Android device from plain-English
element descriptions, falling through accessibility, OCR, and vision
strategies until one finds the target.

Examples:
  screenpilot tap "the subscribe button"
  screenpilot tap "the second video"
  screenpilot text
  screenpilot watch`,
		Flags: GlobalFlags,
		Commands: []*cli.Command{
			tapCommand,
			textCommand,
			dumpCommand,
			watchCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
