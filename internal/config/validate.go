package config

import (
	"fmt"
	"unicode/utf8"

	"github.com/werdumagen/thermolog/internal/errors"
)

// Validate checks the settings for errors and returns structured error messages.
func Validate(s *Settings) error {
	if s.Baud <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Baud rate %d makes no sense", s.Baud),
			"Use a standard rate like 9600 or 115200")
	}

	if s.Probe.MaxIndex < 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("probe.max_index is %d", s.Probe.MaxIndex),
			"Use 0 to disable brute-force probing, or a positive bound like 32")
	}

	if s.Probe.ReadAttempts < 1 {
		return errors.New(errors.ErrConfig,
			"probe.read_attempts must be at least 1",
			"The validator needs at least one line to judge a port")
	}

	if s.Probe.AcceptThreshold < 1 {
		return errors.New(errors.ErrConfig,
			"probe.accept_threshold must be at least 1",
			"A threshold of 0 would accept every openable port")
	}

	if s.Probe.AcceptThreshold > s.Probe.ReadAttempts {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("probe.accept_threshold (%d) exceeds probe.read_attempts (%d)", s.Probe.AcceptThreshold, s.Probe.ReadAttempts),
			"No port could ever pass; raise read_attempts or lower the threshold")
	}

	if s.Probe.Passes < 1 {
		return errors.New(errors.ErrConfig,
			"probe.passes must be at least 1",
			"Discovery needs at least one sweep over the candidates")
	}

	if s.Parse.Delimiter != "" && utf8.RuneCountInString(s.Parse.Delimiter) != 1 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("parse.delimiter %q must be a single character", s.Parse.Delimiter),
			`Use something like "!" or ";"`)
	}

	if s.Chart.WindowWidth < 2 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("chart.window_width is %d, minimum is 2", s.Chart.WindowWidth),
			"A window needs at least two points to draw a line")
	}

	axisFixed := s.Chart.YMin != 0 || s.Chart.YMax != 0
	if axisFixed && s.Chart.YMin >= s.Chart.YMax {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("chart.y_min (%g) must be below chart.y_max (%g)", s.Chart.YMin, s.Chart.YMax),
			"Swap the bounds, or set both to 0 for an automatic axis")
	}

	if s.Chart.SmoothPoints < 2 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("chart.smooth_points is %d, minimum is 2", s.Chart.SmoothPoints),
			"The smoothed curve needs at least two output points")
	}

	if s.Interval <= 0 {
		return errors.New(errors.ErrConfig,
			"interval must be positive",
			"Use a duration like 250ms or 1s")
	}

	return nil
}

// Apply validates an updated copy of the settings and, only if it passes,
// copies it over the live settings. Invalid updates leave the live settings
// untouched.
func Apply(live *Settings, updated *Settings) error {
	if err := Validate(updated); err != nil {
		return err
	}
	*live = *updated
	return nil
}
