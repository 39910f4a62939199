// Package emit generates a synthetic sensor stream for testing the rest of
// the pipeline without hardware: a slow sine wave around room temperature
// with a little noise on top, one reading per second.
package emit

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/werdumagen/thermolog/internal/logger"
)

// DefaultPeriod is the spacing between emitted readings.
const DefaultPeriod = time.Second

// Waveform produces the synthetic temperature series:
// Base + Amplitude*sin(Step*n) plus uniform noise in [-Noise, Noise).
type Waveform struct {
	Base      float64
	Amplitude float64
	Step      float64
	Noise     float64

	rng *rand.Rand
	n   int
}

// NewWaveform returns the default waveform. A nil rng gets a time-seeded
// source; tests pass a fixed seed.
func NewWaveform(rng *rand.Rand) *Waveform {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Waveform{
		Base:      25,
		Amplitude: 10,
		Step:      0.1,
		Noise:     0.5,
		rng:       rng,
	}
}

// Next returns the next reading and advances the phase.
func (w *Waveform) Next() float64 {
	v := w.Base + w.Amplitude*math.Sin(w.Step*float64(w.n))
	v += (w.rng.Float64()*2 - 1) * w.Noise
	w.n++
	return v
}

// Emitter writes formatted readings to a port at a fixed period.
type Emitter struct {
	out    io.Writer
	wave   *Waveform
	period time.Duration
	log    logger.Logger
}

// New creates an emitter. A nil waveform gets NewWaveform defaults and a
// non-positive period gets DefaultPeriod.
func New(out io.Writer, wave *Waveform, period time.Duration, log logger.Logger) *Emitter {
	if wave == nil {
		wave = NewWaveform(nil)
	}
	if period <= 0 {
		period = DefaultPeriod
	}
	if log == nil {
		log = logger.Noop()
	}
	return &Emitter{out: out, wave: wave, period: period, log: log}
}

// Run emits readings until the context is cancelled. Write failures are
// logged and skipped; a reader that is not draining fast enough should not
// kill the stream.
func (e *Emitter) Run(ctx context.Context) error {
	ticker := time.NewTicker(e.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := e.emitOne(); err != nil {
				e.log.Warn("write failed: %v", err)
			}
		}
	}
}

// EmitOne writes a single reading; exposed for burst-style use.
func (e *Emitter) EmitOne() error {
	return e.emitOne()
}

func (e *Emitter) emitOne() error {
	v := e.wave.Next()
	// The device protocol is just this: one fixed-point value per line.
	_, err := fmt.Fprintf(e.out, "%.2f\n", v)
	return err
}
