package discover

import (
	"fmt"
	"time"

	"github.com/werdumagen/thermolog/internal/config"
	"github.com/werdumagen/thermolog/internal/ingest"
	"github.com/werdumagen/thermolog/internal/serialport"
)

// Outcome classifies how a candidate fared under probing.
type Outcome int

const (
	// OutcomeAccepted means the port produced enough numeric data.
	OutcomeAccepted Outcome = iota
	// OutcomeEmpty means the port opened but sent nothing during the
	// settle delay.
	OutcomeEmpty
	// OutcomeGarbage means data arrived but too little of it parsed as
	// numbers.
	OutcomeGarbage
	// OutcomeBusy means the port could not be opened at all: held by
	// another process, nonexistent, or permission denied.
	OutcomeBusy
)

// String returns a short human-readable outcome label.
func (o Outcome) String() string {
	switch o {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeEmpty:
		return "empty"
	case OutcomeGarbage:
		return "garbage"
	case OutcomeBusy:
		return "busy"
	default:
		return "unknown"
	}
}

// Report describes the probing of one candidate. The Err field carries the
// open error for OutcomeBusy; it is diagnostic, not fatal.
type Report struct {
	Name        string
	Outcome     Outcome
	ValidTokens int
	Err         error
}

func (r Report) String() string {
	if r.Outcome == OutcomeAccepted {
		return fmt.Sprintf("%s: accepted (%d numeric readings)", r.Name, r.ValidTokens)
	}
	return fmt.Sprintf("%s: %s", r.Name, r.Outcome)
}

// Options bundles the probe tunables. The accept threshold trades false
// positives against false negatives on noisy lines: 2 matches the
// historical receiver, 1 suits delimiter-tagged streams that send slowly.
type Options struct {
	Baud            int
	OpenTimeout     time.Duration
	SettleDelay     time.Duration
	ReadAttempts    int
	AcceptThreshold int
	Delimiter       string

	// Open is the port opener; defaults to the real serial layer.
	Open serialport.Opener

	// sleep is a test seam for the settle delay.
	sleep func(time.Duration)
}

// OptionsFromSettings extracts probe options from the live settings.
func OptionsFromSettings(s *config.Settings) Options {
	return Options{
		Baud:            s.Baud,
		OpenTimeout:     s.Probe.OpenTimeout,
		SettleDelay:     s.Probe.SettleDelay,
		ReadAttempts:    s.Probe.ReadAttempts,
		AcceptThreshold: s.Probe.AcceptThreshold,
		Delimiter:       s.Parse.Delimiter,
		Open:            serialport.Open,
	}
}

// Probe opens one candidate port and scores it as a sensor: flush stale
// bytes, give the sender a settle delay to accumulate fresh data, then
// sample a few lines and count how many numeric values parse. On acceptance
// the open port is returned and the caller owns it; on any rejection the
// port is closed before returning and the report says why.
func Probe(name string, opts Options) (serialport.Port, Report) {
	open := opts.Open
	if open == nil {
		open = serialport.Open
	}
	sleep := opts.sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	port, err := open(name, opts.Baud)
	if err != nil {
		return nil, Report{Name: name, Outcome: OutcomeBusy, Err: err}
	}

	if err := port.SetReadTimeout(opts.OpenTimeout); err != nil {
		port.Close()
		return nil, Report{Name: name, Outcome: OutcomeBusy, Err: err}
	}

	// Drop whatever a previous session left in the buffer, then let the
	// sender accumulate fresh data before judging.
	if err := port.ResetInputBuffer(); err != nil {
		port.Close()
		return nil, Report{Name: name, Outcome: OutcomeBusy, Err: err}
	}
	sleep(opts.SettleDelay)

	parser := ingest.NewParser(opts.Delimiter)
	reader := serialport.NewLineReader(port)

	valid := 0
	for i := 0; i < opts.ReadAttempts; i++ {
		line, ok, err := reader.ReadLine()
		if err != nil {
			break
		}
		if !ok {
			// Timed-out read. The sender may just be slow; spend the
			// remaining attempts instead of giving up on the port.
			continue
		}
		vals, _ := parser.Values(line)
		valid += len(vals)
	}

	if valid >= opts.AcceptThreshold {
		return port, Report{Name: name, Outcome: OutcomeAccepted, ValidTokens: valid}
	}

	port.Close()
	if reader.Received() == 0 {
		return nil, Report{Name: name, Outcome: OutcomeEmpty}
	}
	return nil, Report{Name: name, Outcome: OutcomeGarbage, ValidTokens: valid}
}
