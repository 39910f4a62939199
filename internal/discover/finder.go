package discover

import (
	"errors"
	"time"

	"github.com/werdumagen/thermolog/internal/config"
	"github.com/werdumagen/thermolog/internal/logger"
	"github.com/werdumagen/thermolog/internal/serialport"
)

// ErrNotFound is returned when no candidate passes validation. Whether that
// is fatal (exit) or degraded (stay disconnected, retry later) is the
// caller's call.
var ErrNotFound = errors.New("no responsive sensor port found")

// Finder sweeps the candidate list looking for a port that produces numeric
// data. A bounded number of passes with a pause between them tolerates a
// sender that starts slightly after us.
type Finder struct {
	Opts      Options
	Prefix    string
	MaxIndex  int
	Passes    int
	PassPause time.Duration

	// List enumerates host-reported ports; defaults to the real serial
	// layer. A listing failure is not fatal, brute force still runs.
	List serialport.Lister

	// Progress, when set, receives a report for every probed candidate.
	// Advisory only.
	Progress func(Report)

	Log logger.Logger

	// sleep is a test seam for the pause between passes.
	sleep func(time.Duration)
}

// NewFinder builds a Finder from the live settings, using the real serial
// layer.
func NewFinder(s *config.Settings) *Finder {
	return &Finder{
		Opts:      OptionsFromSettings(s),
		Prefix:    s.Probe.Prefix,
		MaxIndex:  s.Probe.MaxIndex,
		Passes:    s.Probe.Passes,
		PassPause: s.Probe.PassPause,
		List:      serialport.List,
		Log:       logger.NewEnvLogger("[discover]"),
	}
}

// Find probes candidates in order and returns the first accepted port along
// with its name. The caller owns the returned port. Returns ErrNotFound
// after the configured number of passes; rejected candidates never leak
// handles (Probe closes them). Discovery is the only place this program
// sleeps, and every sleep is bounded.
func (f *Finder) Find() (serialport.Port, string, error) {
	log := f.Log
	if log == nil {
		log = logger.Noop()
	}
	list := f.List
	if list == nil {
		list = serialport.List
	}
	sleep := f.sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	passes := f.Passes
	if passes < 1 {
		passes = 1
	}

	for pass := 1; pass <= passes; pass++ {
		if pass > 1 {
			log.Info("pass %d/%d in %s", pass, passes, f.PassPause)
			sleep(f.PassPause)
		}

		hostReported, err := list()
		if err != nil {
			log.Warn("port enumeration failed: %v", err)
			hostReported = nil
		}

		candidates := Enumerate(hostReported, f.Prefix, f.MaxIndex)
		log.Info("probing %d candidate ports (%d host-reported)", len(candidates), len(hostReported))

		for _, cand := range candidates {
			port, report := Probe(cand.Name, f.Opts)
			log.Debug("%s", report)
			if f.Progress != nil {
				f.Progress(report)
			}
			if report.Outcome == OutcomeAccepted {
				log.Info("sensor found on %s", cand.Name)
				return port, cand.Name, nil
			}
		}
	}

	return nil, "", ErrNotFound
}
