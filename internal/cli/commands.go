package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/werdumagen/thermolog/internal/errors"
)

// Command-specific flags
var (
	watchPortFlag        string
	watchLogDirFlag      string
	watchMetricsAddrFlag string

	recordPortFlag    string
	recordLogDirFlag  string
	recordMetricsAddr string
	recordDuration    string

	probeBaudFlag int

	emitPeriodFlag string
	emitCountFlag  int

	initForce bool
)

// watchCmd starts the live dashboard
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Find the sensor and chart readings live",
	Long: `Scan serial ports for the temperature sensor, then show a live chart
of incoming readings. Every accepted reading is also appended to a CSV
session log that survives crashes and power loss.

Keyboard shortcuts:
  q / Ctrl+C  Quit
  + / -       Widen or narrow the chart window
  s           Toggle spline smoothing
  r           Rescan ports when disconnected
  ?           Show help

Examples:
  thermolog watch
  thermolog watch --port /dev/ttyUSB0
  thermolog watch --log-dir ~/temperature-logs
  thermolog watch --metrics-addr :9090`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return watchCommand(watchPortFlag, watchLogDirFlag, watchMetricsAddrFlag)
	},
}

// recordCmd logs readings without the TUI
var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Log readings headless, no dashboard",
	Long: `Find the sensor and append readings to a CSV session log without
drawing anything. Meant for long unattended runs; stop it with Ctrl+C.

Examples:
  thermolog record
  thermolog record --duration 8h
  thermolog record --metrics-addr :9090`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return recordCommand(recordPortFlag, recordLogDirFlag, recordMetricsAddr, recordDuration)
	},
}

// portsCmd lists candidate serial ports
var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List serial ports the scan would try",
	Long: `List candidate serial ports in the order discovery would probe them:
host-reported ports first, then the configured brute-force range.

Examples:
  thermolog ports`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return portsCommand()
	},
}

// probeCmd tests a single port
var probeCmd = &cobra.Command{
	Use:   "probe <port>",
	Short: "Check one port for sensor data",
	Long: `Open a single serial port and report what comes back: parseable
numbers, garbage, silence, or a busy port.

Examples:
  thermolog probe /dev/ttyUSB0
  thermolog probe COM3 --baud 115200`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return probeCommand(args[0], probeBaudFlag)
	},
}

// emitCmd writes a synthetic sensor stream
var emitCmd = &cobra.Command{
	Use:   "emit <port>",
	Short: "Write a synthetic sensor stream to a port",
	Long: `Emit a synthetic temperature stream to a serial port, for exercising
the pipeline without hardware. Pair it with a virtual null-modem
(e.g. socat) and point 'thermolog watch' at the other end.

Examples:
  thermolog emit /dev/pts/3
  thermolog emit /dev/pts/3 --period 250ms --count 100`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return emitCommand(args[0], emitPeriodFlag, emitCountFlag)
	},
}

// initCmd creates a .thermolog.yaml configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .thermolog.yaml configuration",
	Long: `Write a .thermolog.yaml config file in the current directory, with
interactive prompts for the values people actually change.

Examples:
  thermolog init
  thermolog init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(initForce)
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for thermolog.

Examples:
  # Bash
  thermolog completion bash > /etc/bash_completion.d/thermolog

  # Zsh
  thermolog completion zsh > "${fpath[1]}/_thermolog"

  # Fish
  thermolog completion fish > ~/.config/fish/completions/thermolog.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(os.Stdout)
		default:
			return errors.New(errors.ErrConfig,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	// watch command flags
	watchCmd.Flags().StringVar(&watchPortFlag, "port", "", "skip discovery and use this port")
	watchCmd.Flags().StringVar(&watchLogDirFlag, "log-dir", "", "directory for CSV session logs")
	watchCmd.Flags().StringVar(&watchMetricsAddrFlag, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9090)")

	// record command flags
	recordCmd.Flags().StringVar(&recordPortFlag, "port", "", "skip discovery and use this port")
	recordCmd.Flags().StringVar(&recordLogDirFlag, "log-dir", "", "directory for CSV session logs")
	recordCmd.Flags().StringVar(&recordMetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9090)")
	recordCmd.Flags().StringVar(&recordDuration, "duration", "", "stop after this long (e.g. 8h); default runs until Ctrl+C")

	// probe command flags
	probeCmd.Flags().IntVar(&probeBaudFlag, "baud", 0, "override the configured baud rate")

	// emit command flags
	emitCmd.Flags().StringVar(&emitPeriodFlag, "period", "1s", "spacing between readings (e.g. 250ms, 1s)")
	emitCmd.Flags().IntVar(&emitCountFlag, "count", 0, "stop after this many readings; 0 runs until Ctrl+C")

	// init command flags
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")

	// Register all commands
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(portsCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(emitCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
}
