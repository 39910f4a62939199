package discover

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/werdumagen/thermolog/internal/serialport"
	sptest "github.com/werdumagen/thermolog/internal/serialport/testing"
)

// probeOptions builds Options around a fake port, feeding the given lines
// during the settle delay so they arrive after the stale-buffer flush.
func probeOptions(port *sptest.FakePort, lines ...string) Options {
	return Options{
		Baud:            9600,
		OpenTimeout:     1500 * time.Millisecond,
		SettleDelay:     1100 * time.Millisecond,
		ReadAttempts:    4,
		AcceptThreshold: 2,
		Open: func(name string, baud int) (serialport.Port, error) {
			return port, nil
		},
		sleep: func(time.Duration) {
			for _, line := range lines {
				port.Feed(line + "\n")
			}
		},
	}
}

func TestProbe_AcceptsNumericStream(t *testing.T) {
	port := &sptest.FakePort{}
	opts := probeOptions(port, "21.5", "garbage", "22.1", "more-garbage")

	got, report := Probe("/dev/ttyUSB0", opts)
	require.NotNil(t, got, "accepted probe hands the open port to the caller")
	assert.Equal(t, OutcomeAccepted, report.Outcome)
	assert.Equal(t, 2, report.ValidTokens)
	assert.False(t, port.Closed(), "caller owns the accepted port")
}

func TestProbe_FlushesStaleBufferBeforeJudging(t *testing.T) {
	// Stale bytes from a previous session must not count toward acceptance.
	port := sptest.NewFakePort("98.6", "99.1")
	opts := probeOptions(port)

	got, report := Probe("/dev/ttyUSB0", opts)
	assert.Nil(t, got)
	assert.Equal(t, 1, port.Flushed)
	assert.Equal(t, OutcomeEmpty, report.Outcome)
}

func TestProbe_RejectsAllGarbage(t *testing.T) {
	port := &sptest.FakePort{}
	opts := probeOptions(port, "$GPGGA,1234", "$GPGSV,5678", "$$$$", "####")

	got, report := Probe("/dev/ttyUSB0", opts)
	assert.Nil(t, got)
	assert.Equal(t, OutcomeGarbage, report.Outcome)
	assert.True(t, port.Closed(), "rejected candidates must not leak handles")
}

func TestProbe_BelowThresholdRejects(t *testing.T) {
	port := &sptest.FakePort{}
	opts := probeOptions(port, "21.5", "junk", "junk", "junk")

	got, report := Probe("/dev/ttyUSB0", opts)
	assert.Nil(t, got)
	assert.Equal(t, OutcomeGarbage, report.Outcome)
	assert.Equal(t, 1, report.ValidTokens)
	assert.True(t, port.Closed())
}

func TestProbe_SilentPortIsEmptyNotGarbage(t *testing.T) {
	port := &sptest.FakePort{}
	opts := probeOptions(port)

	got, report := Probe("/dev/ttyUSB0", opts)
	assert.Nil(t, got)
	assert.Equal(t, OutcomeEmpty, report.Outcome)
	assert.True(t, port.Closed())
}

// slowSenderPort reports nothing for its first few reads, like a sensor
// that is mid-cycle when probed.
type slowSenderPort struct {
	*sptest.FakePort
	quiet int
}

func (p *slowSenderPort) Read(b []byte) (int, error) {
	if p.quiet > 0 {
		p.quiet--
		return 0, nil
	}
	return p.FakePort.Read(b)
}

func TestProbe_SlowSenderUsesAllReadAttempts(t *testing.T) {
	inner := &sptest.FakePort{}
	port := &slowSenderPort{FakePort: inner, quiet: 2}
	opts := Options{
		Baud:            9600,
		ReadAttempts:    4,
		AcceptThreshold: 2,
		Open: func(string, int) (serialport.Port, error) {
			return port, nil
		},
		sleep: func(time.Duration) {
			inner.Feed("21.5\n22.1\n")
		},
	}

	got, report := Probe("/dev/ttyUSB0", opts)
	require.NotNil(t, got, "a quiet first read must not reject a working sensor")
	assert.Equal(t, OutcomeAccepted, report.Outcome)
	assert.Equal(t, 2, report.ValidTokens)
}

func TestProbe_OpenFailureIsBusy(t *testing.T) {
	opts := Options{
		Baud: 9600,
		Open: func(name string, baud int) (serialport.Port, error) {
			return nil, assert.AnError
		},
		sleep: func(time.Duration) {},
	}

	got, report := Probe("/dev/ttyUSB0", opts)
	assert.Nil(t, got)
	assert.Equal(t, OutcomeBusy, report.Outcome)
	assert.ErrorIs(t, report.Err, assert.AnError)
}

func TestProbe_SetsConfiguredReadTimeout(t *testing.T) {
	port := &sptest.FakePort{}
	opts := probeOptions(port, "21.5", "22.1")

	_, _ = Probe("/dev/ttyUSB0", opts)
	assert.Equal(t, opts.OpenTimeout, port.ReadTimeout())
}

func TestProbe_DelimitedStreamCountsTokens(t *testing.T) {
	port := &sptest.FakePort{}
	opts := probeOptions(port, "!23.5!24.0!")
	opts.Delimiter = "!"
	opts.ReadAttempts = 1

	got, report := Probe("/dev/ttyUSB0", opts)
	require.NotNil(t, got)
	assert.Equal(t, OutcomeAccepted, report.Outcome)
	assert.Equal(t, 2, report.ValidTokens)
}
