// Package ingest converts the sensor's byte stream into kept history and
// durable rows. It is driven by an external tick: each tick drains every
// buffered line, parses, timestamps, and fans accepted values out to the
// history buffer and the session log.
package ingest

import (
	"time"

	"github.com/werdumagen/thermolog/internal/logger"
	"github.com/werdumagen/thermolog/internal/serialport"
)

// drainTimeout bounds the read that probes for more data during a drain.
// Short enough that an idle port cannot stall the tick.
const drainTimeout = 20 * time.Millisecond

// readErrorLimit is how many consecutive failed ticks are tolerated before
// the port is treated as dead and detached. A single error is usually a
// transient glitch; a run of them means the device is gone.
const readErrorLimit = 4

// Status describes the last ingestion outcome, for display.
type Status int

const (
	// StatusDisconnected means no port is attached.
	StatusDisconnected Status = iota
	// StatusConnected means the last tick went normally.
	StatusConnected
	// StatusGarbage means the last tick saw lines that did not parse.
	StatusGarbage
	// StatusReadError means the last tick's read failed; the port stays
	// attached and the next tick retries.
	StatusReadError
)

// String returns the display text for a status.
func (s Status) String() string {
	switch s {
	case StatusConnected:
		return "connected"
	case StatusGarbage:
		return "garbage received"
	case StatusReadError:
		return "read error"
	default:
		return "disconnected"
	}
}

// Recorder is the durable sink for accepted samples. *store.CSVLog
// satisfies it.
type Recorder interface {
	Append(ts time.Time, value float64) error
}

// TickResult summarizes one tick.
type TickResult struct {
	// Accepted is how many numeric values were ingested.
	Accepted int
	// Garbage is how many pieces failed to parse.
	Garbage int
}

// Ingestor owns the active port for the process lifetime and feeds the
// history buffer and the recorder. All methods run on the single tick
// goroutine; nothing here blocks beyond the short drain timeout.
type Ingestor struct {
	history *History
	rec     Recorder
	parser  Parser
	log     logger.Logger

	port     serialport.Port
	portName string
	reader   *serialport.LineReader
	status   Status

	// readErrors counts consecutive ticks whose read failed.
	readErrors int

	// now is a test seam for acceptance timestamps.
	now func() time.Time
}

// New creates an ingestor with no port attached. rec may be nil when no
// durable log is wanted (the ports/probe commands).
func New(history *History, rec Recorder, parser Parser, log logger.Logger) *Ingestor {
	if log == nil {
		log = logger.Noop()
	}
	return &Ingestor{
		history: history,
		rec:     rec,
		parser:  parser,
		log:     log,
		now:     time.Now,
	}
}

// Attach takes ownership of an open port. Any previously attached port is
// closed first, so the active connection is always closed exactly once.
func (i *Ingestor) Attach(port serialport.Port, name string) {
	if i.port != nil {
		i.port.Close()
	}
	if err := port.SetReadTimeout(drainTimeout); err != nil {
		i.log.Warn("cannot set drain timeout on %s: %v", name, err)
	}
	i.port = port
	i.portName = name
	i.reader = serialport.NewLineReader(port)
	i.status = StatusConnected
	i.readErrors = 0
}

// Connected reports whether a port is attached.
func (i *Ingestor) Connected() bool {
	return i.port != nil
}

// PortName returns the attached port's name, or "" when disconnected.
func (i *Ingestor) PortName() string {
	return i.portName
}

// Status returns the last ingestion outcome.
func (i *Ingestor) Status() Status {
	return i.status
}

// History returns the session history buffer.
func (i *Ingestor) History() *History {
	return i.history
}

// Tick drains all buffered lines from the port and ingests every numeric
// value found. A line that fails to parse is counted and skipped, never
// aborting the rest of the drain. Read errors are reported and the loop
// carries on next tick. The one error this returns is a recorder failure:
// losing durability is the single fault worth stopping for.
func (i *Ingestor) Tick() (TickResult, error) {
	if i.port == nil {
		i.status = StatusDisconnected
		return TickResult{}, nil
	}

	lines, readErr := i.reader.Drain()

	var res TickResult
	for _, line := range lines {
		vals, garbage := i.parser.Values(line)
		res.Garbage += garbage
		if garbage > 0 {
			i.log.Debug("unparseable data on %s: %q", i.portName, line)
		}

		for _, v := range vals {
			// Timestamp at acceptance, not at line read.
			s := Sample{Time: i.now(), Value: v, Raw: line}
			i.history.Append(s)
			if i.rec != nil {
				if err := i.rec.Append(s.Time, s.Value); err != nil {
					res.Accepted++
					i.status = StatusConnected
					return res, err
				}
			}
			res.Accepted++
		}
	}

	switch {
	case readErr != nil:
		i.log.Warn("read failed on %s: %v", i.portName, readErr)
		i.readErrors++
		if i.readErrors >= readErrorLimit {
			// The device is gone, not glitching. Detach so the caller
			// sees Disconnected and can trigger a rescan.
			i.log.Warn("%d consecutive read failures on %s, detaching", i.readErrors, i.portName)
			i.Close()
		} else {
			i.status = StatusReadError
		}
	case res.Garbage > 0 && res.Accepted == 0:
		i.readErrors = 0
		i.status = StatusGarbage
	default:
		i.readErrors = 0
		i.status = StatusConnected
	}

	return res, nil
}

// Close releases the attached port. Safe to call when disconnected and safe
// to call twice; shutdown closes the port first, then the recorder, and
// must tolerate both already being closed.
func (i *Ingestor) Close() error {
	if i.port == nil {
		return nil
	}
	err := i.port.Close()
	i.port = nil
	i.portName = ""
	i.reader = nil
	i.status = StatusDisconnected
	return err
}
