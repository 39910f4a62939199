package config

import (
	"runtime"
	"time"
)

// Settings represents the complete .thermolog.yaml configuration.
// One instance is owned by the running command and passed by reference to
// the discovery, ingestion, and rendering stages; it is only mutated
// through Apply, which validates the whole update before swapping it in.
type Settings struct {
	// Serial link parameters.
	Baud int `yaml:"baud" mapstructure:"baud"`

	// Probe controls sensor discovery.
	Probe ProbeSettings `yaml:"probe" mapstructure:"probe"`

	// Parse controls how incoming lines are turned into values.
	Parse ParseSettings `yaml:"parse" mapstructure:"parse"`

	// Chart controls the live view window.
	Chart ChartSettings `yaml:"chart" mapstructure:"chart"`

	// Interval is the ingestion tick period.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// LogDir is where session CSV files are created. Empty means the
	// current working directory.
	LogDir string `yaml:"log_dir" mapstructure:"log_dir"`
}

// ProbeSettings controls the port discovery heuristic.
type ProbeSettings struct {
	// Prefix is the brute-force port name prefix ("COM" on Windows,
	// "/dev/ttyUSB" elsewhere). Candidates prefix+1..prefix+MaxIndex are
	// tried after the ports the OS reports.
	Prefix string `yaml:"prefix" mapstructure:"prefix"`

	// MaxIndex is the highest brute-force suffix to try.
	MaxIndex int `yaml:"max_index" mapstructure:"max_index"`

	// OpenTimeout bounds the open and each read during probing.
	OpenTimeout time.Duration `yaml:"open_timeout" mapstructure:"open_timeout"`

	// SettleDelay is how long a freshly opened port gets to accumulate
	// data before it is judged.
	SettleDelay time.Duration `yaml:"settle_delay" mapstructure:"settle_delay"`

	// ReadAttempts is how many lines are sampled per candidate.
	ReadAttempts int `yaml:"read_attempts" mapstructure:"read_attempts"`

	// AcceptThreshold is the number of numeric tokens that must parse for
	// a candidate to be accepted. Lower values accept more ports but risk
	// latching onto noise; 2 matches the historical behavior, 1 is useful
	// for slow delimiter-tagged senders.
	AcceptThreshold int `yaml:"accept_threshold" mapstructure:"accept_threshold"`

	// Passes is how many full sweeps over the candidate list to make
	// before giving up, with PassPause between them.
	Passes    int           `yaml:"passes" mapstructure:"passes"`
	PassPause time.Duration `yaml:"pass_pause" mapstructure:"pass_pause"`
}

// ParseSettings selects the line parsing strategy.
type ParseSettings struct {
	// Delimiter, when non-empty, splits each line into multiple value
	// tokens. Empty means one value per line.
	Delimiter string `yaml:"delimiter" mapstructure:"delimiter"`
}

// ChartSettings controls the view window and smoothing.
type ChartSettings struct {
	// WindowWidth is how many of the most recent samples are shown.
	WindowWidth int `yaml:"window_width" mapstructure:"window_width"`

	// YMin/YMax fix the vertical axis. When both are zero the axis
	// follows the data (min-2 .. max+2).
	YMin float64 `yaml:"y_min" mapstructure:"y_min"`
	YMax float64 `yaml:"y_max" mapstructure:"y_max"`

	// Smoothing toggles the cubic spline densification of the window.
	Smoothing bool `yaml:"smoothing" mapstructure:"smoothing"`

	// SmoothPoints is the output density of the smoothed curve.
	SmoothPoints int `yaml:"smooth_points" mapstructure:"smooth_points"`
}

// DefaultProbePrefix returns the platform brute-force port prefix.
func DefaultProbePrefix() string {
	if runtime.GOOS == "windows" {
		return "COM"
	}
	return "/dev/ttyUSB"
}

// Defaults returns a Settings populated with the stock values.
func Defaults() *Settings {
	return &Settings{
		Baud: 9600,
		Probe: ProbeSettings{
			Prefix:          DefaultProbePrefix(),
			MaxIndex:        32,
			OpenTimeout:     1500 * time.Millisecond,
			SettleDelay:     1100 * time.Millisecond,
			ReadAttempts:    4,
			AcceptThreshold: 2,
			Passes:          2,
			PassPause:       2 * time.Second,
		},
		Parse: ParseSettings{
			Delimiter: "",
		},
		Chart: ChartSettings{
			WindowWidth:  50,
			Smoothing:    true,
			SmoothPoints: 300,
		},
		Interval: 250 * time.Millisecond,
		LogDir:   "",
	}
}

// Clone returns a deep copy of the settings.
func (s *Settings) Clone() *Settings {
	c := *s
	return &c
}
