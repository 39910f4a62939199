package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"gopkg.in/yaml.v3"

	"github.com/werdumagen/thermolog/internal/config"
	"github.com/werdumagen/thermolog/internal/errors"
)

// initCommand writes a .thermolog.yaml in the current directory.
func initCommand(force bool) error {
	configPath := filepath.Join(".", config.ConfigFileName)

	if _, err := os.Stat(configPath); err == nil && !force {
		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	defaults := config.Defaults()
	baudStr := strconv.Itoa(defaults.Baud)
	prefix := defaults.Probe.Prefix
	logDir := ""

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Baud rate").
				Description("Serial speed the sensor talks at").
				Value(&baudStr).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n <= 0 {
						return fmt.Errorf("baud must be a positive number")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Port prefix").
				Description("Brute-force scan base when the host reports nothing useful").
				Placeholder(config.DefaultProbePrefix()).
				Value(&prefix).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("port prefix is required")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Session log directory").
				Description("Where CSV logs go; empty means the current directory").
				Placeholder("~/temperature-logs (leave empty for cwd)").
				Value(&logDir),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility")
	}

	baud, _ := strconv.Atoi(strings.TrimSpace(baudStr))
	doc := map[string]any{
		"baud":     baud,
		"interval": defaults.Interval.String(),
		"probe": map[string]any{
			"prefix": strings.TrimSpace(prefix),
		},
	}
	if strings.TrimSpace(logDir) != "" {
		doc["log_dir"] = strings.TrimSpace(logDir)
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Failed to encode config", "")
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write %s", configPath),
			"Check directory permissions")
	}

	fmt.Println(okStyle.Render("✓ wrote " + configPath))
	return nil
}
