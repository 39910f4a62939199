package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"github.com/werdumagen/thermolog/internal/errors"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".thermolog.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/thermolog"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix is the prefix for environment variable overrides.
	EnvPrefix = "THERMOLOG"
)

// Load reads settings from the specified path.
func Load(path string) (*Settings, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'thermolog init' to create one, or specify a path with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseSettings(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .thermolog.yaml in current directory
// 3. .thermolog.yaml in parent directories (stops at git root or home)
// 4. ~/.config/thermolog/config.yaml (global defaults)
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	// 1. Explicit path takes precedence
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	// 2. Current directory
	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	localConfig := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	// 3. Walk up to parent directories
	home, _ := os.UserHomeDir()
	dir := cwd
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		if home != "" && parent == home {
			// Don't go above home directory
			break
		}
		dir = parent

		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		// Stop at git root
		gitPath := filepath.Join(dir, ".git")
		if _, err := os.Stat(gitPath); err == nil {
			break
		}
	}

	// 4. Global config
	if home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// LoadOrDefault loads settings from the found path, or returns defaults if
// no config file exists. Either way the result has been validated.
func LoadOrDefault(explicit string) (*Settings, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, err
	}

	if path == "" {
		return Defaults(), nil
	}

	return Load(path)
}

// parseSettings converts viper config to a Settings struct with defaults
// merged in, then validates the result.
func parseSettings(v *viper.Viper, path string) (*Settings, error) {
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	s := Defaults()
	if err := v.Unmarshal(s); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+path)
	}

	if err := Validate(s); err != nil {
		return nil, err
	}

	return s, nil
}

// setDefaults seeds viper so partial config files merge cleanly.
func setDefaults(v *viper.Viper) {
	d := Defaults()

	v.SetDefault("baud", d.Baud)
	v.SetDefault("probe.prefix", d.Probe.Prefix)
	v.SetDefault("probe.max_index", d.Probe.MaxIndex)
	v.SetDefault("probe.open_timeout", d.Probe.OpenTimeout)
	v.SetDefault("probe.settle_delay", d.Probe.SettleDelay)
	v.SetDefault("probe.read_attempts", d.Probe.ReadAttempts)
	v.SetDefault("probe.accept_threshold", d.Probe.AcceptThreshold)
	v.SetDefault("probe.passes", d.Probe.Passes)
	v.SetDefault("probe.pass_pause", d.Probe.PassPause)
	v.SetDefault("parse.delimiter", d.Parse.Delimiter)
	v.SetDefault("chart.window_width", d.Chart.WindowWidth)
	v.SetDefault("chart.y_min", d.Chart.YMin)
	v.SetDefault("chart.y_max", d.Chart.YMax)
	v.SetDefault("chart.smoothing", d.Chart.Smoothing)
	v.SetDefault("chart.smooth_points", d.Chart.SmoothPoints)
	v.SetDefault("interval", d.Interval)
	v.SetDefault("log_dir", d.LogDir)
}
