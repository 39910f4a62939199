// Package cli wires the thermolog commands together: discovery, the live
// dashboard, headless recording, and the stream emulator.
package cli

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/werdumagen/thermolog/internal/config"
	"github.com/werdumagen/thermolog/internal/errors"
	"github.com/werdumagen/thermolog/internal/ui"
)

// configFlag is the global --config override.
var configFlag string

var rootCmd = &cobra.Command{
	Use:   "thermolog",
	Short: "Serial temperature logger and live chart",
	Long: `Thermolog reads temperature values from a serial sensor, charts them
live in the terminal, and appends every reading to a durable CSV session log.

It finds the sensor on its own: candidate ports are probed one by one until
one of them produces parseable numbers.

Examples:
  thermolog watch
  thermolog record --metrics-addr :9090
  thermolog ports
  thermolog probe /dev/ttyUSB0
  thermolog emit /dev/ttyUSB1`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Structured errors print their suggestion
// below the message; anything else prints as-is.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func printError(err error) {
	// Structured errors render their own symbol, cause, and suggestion.
	var terr *errors.Error
	if stderrors.As(err, &terr) {
		fmt.Fprintln(os.Stderr, terr.Error())
		return
	}
	style := lipgloss.NewStyle().Foreground(ui.ColorError)
	fmt.Fprintln(os.Stderr, style.Render(ui.SymbolFail+" "+err.Error()))
}

// loadSettings resolves the effective settings for a command run.
func loadSettings() (*config.Settings, error) {
	return config.LoadOrDefault(configFlag)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to config file (default: walk up for .thermolog.yaml)")
}
