package cli

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/werdumagen/thermolog/internal/config"
)

// Version information set via ldflags at build time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// versionShort controls whether to show short or full version output
var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and environment information",
	Long: `Print the version, commit hash, and build date of thermolog, plus
which config file the other commands would pick up from here.`,
	Run: func(cmd *cobra.Command, args []string) {
		if versionShort {
			fmt.Println(version)
			return
		}
		fmt.Print(versionOutput())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print only the version number")
}

// versionOutput renders the full version report. The config line shows
// provenance: bug reports that include it tell us immediately whether a
// stray .thermolog.yaml is in play.
func versionOutput() string {
	var b strings.Builder
	fmt.Fprintf(&b, "thermolog %s\n", formatVersion(version))
	fmt.Fprintf(&b, "commit: %s\n", commit)
	fmt.Fprintf(&b, "built: %s\n", date)
	fmt.Fprintf(&b, "go: %s\n", runtime.Version())
	fmt.Fprintf(&b, "os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(&b, "config: %s\n", configProvenance(configFlag))
	return b.String()
}

// configProvenance names the config file the search order would use, or
// the stock values when there is none.
func configProvenance(explicit string) string {
	path, err := config.Find(explicit)
	if err != nil {
		return "error: " + err.Error()
	}
	if path == "" {
		d := config.Defaults()
		return fmt.Sprintf("built-in defaults (%d baud, %s*)", d.Baud, d.Probe.Prefix)
	}
	return path
}

// formatVersion ensures version has a 'v' prefix for display
func formatVersion(v string) string {
	if v == "" || v == "dev" {
		return v
	}
	if v[0] != 'v' {
		return "v" + v
	}
	return v
}

// SetVersionInfo sets the version information (called from main).
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
