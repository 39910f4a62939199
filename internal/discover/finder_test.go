package discover

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/werdumagen/thermolog/internal/config"
	"github.com/werdumagen/thermolog/internal/logger"
	"github.com/werdumagen/thermolog/internal/serialport"
	sptest "github.com/werdumagen/thermolog/internal/serialport/testing"
)

// fakeSensorAt builds probe options where only sensorName produces numbers;
// every other candidate opens fine but stays silent.
func fakeSensorAt(sensorName string, opened *[]string) Options {
	var active *sptest.FakePort
	var activeName string
	return Options{
		Baud:            9600,
		ReadAttempts:    4,
		AcceptThreshold: 2,
		Open: func(name string, baud int) (serialport.Port, error) {
			p := &sptest.FakePort{}
			active, activeName = p, name
			if opened != nil {
				*opened = append(*opened, name)
			}
			return p, nil
		},
		sleep: func(time.Duration) {
			if activeName == sensorName {
				active.Feed("21.5\n22.1\n")
			}
		},
	}
}

func TestFind_ReturnsFirstAcceptedPort(t *testing.T) {
	var opened []string
	f := &Finder{
		Opts:     fakeSensorAt("COM3", &opened),
		Prefix:   "COM",
		MaxIndex: 5,
		Passes:   1,
		List:     func() ([]string, error) { return nil, nil },
		Log:      logger.Noop(),
	}

	port, name, err := f.Find()
	require.NoError(t, err)
	require.NotNil(t, port)
	assert.Equal(t, "COM3", name)
	// The scan stops at the first hit.
	assert.Equal(t, []string{"COM1", "COM2", "COM3"}, opened)
}

func TestFind_HostReportedProbedFirst(t *testing.T) {
	var opened []string
	f := &Finder{
		Opts:     fakeSensorAt("/dev/ttyACM0", &opened),
		Prefix:   "COM",
		MaxIndex: 2,
		Passes:   1,
		List:     func() ([]string, error) { return []string{"/dev/ttyACM0"}, nil },
		Log:      logger.Noop(),
	}

	_, name, err := f.Find()
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyACM0", name)
	assert.Equal(t, []string{"/dev/ttyACM0"}, opened)
}

func TestFind_NotFoundAfterAllPasses(t *testing.T) {
	pauses := 0
	f := &Finder{
		Opts:      fakeSensorAt("nowhere", nil),
		Prefix:    "COM",
		MaxIndex:  2,
		Passes:    3,
		PassPause: 2 * time.Second,
		List:      func() ([]string, error) { return nil, nil },
		Log:       logger.Noop(),
		sleep:     func(time.Duration) { pauses++ },
	}

	port, _, err := f.Find()
	assert.Nil(t, port)
	assert.ErrorIs(t, err, ErrNotFound)
	// A pause before every pass but the first.
	assert.Equal(t, 2, pauses)
}

func TestFind_ListFailureFallsBackToBruteForce(t *testing.T) {
	var opened []string
	log := logger.NewBufferLogger()
	f := &Finder{
		Opts:     fakeSensorAt("COM2", &opened),
		Prefix:   "COM",
		MaxIndex: 3,
		Passes:   1,
		List:     func() ([]string, error) { return nil, assert.AnError },
		Log:      log,
	}

	_, name, err := f.Find()
	require.NoError(t, err)
	assert.Equal(t, "COM2", name)
	assert.True(t, log.HasLevel("warn"))
}

func TestFind_ProgressSeesEveryCandidate(t *testing.T) {
	var reports []Report
	f := &Finder{
		Opts:     fakeSensorAt("COM3", nil),
		Prefix:   "COM",
		MaxIndex: 3,
		Passes:   1,
		List:     func() ([]string, error) { return nil, nil },
		Progress: func(r Report) { reports = append(reports, r) },
		Log:      logger.Noop(),
	}

	_, _, err := f.Find()
	require.NoError(t, err)
	require.Len(t, reports, 3)
	assert.Equal(t, OutcomeEmpty, reports[0].Outcome)
	assert.Equal(t, OutcomeAccepted, reports[2].Outcome)
}

func TestNewFinder_UsesSettings(t *testing.T) {
	s := config.Defaults()
	s.Probe.Prefix = "/dev/ttyTEST"
	s.Probe.MaxIndex = 7
	s.Probe.Passes = 4

	f := NewFinder(s)
	assert.Equal(t, "/dev/ttyTEST", f.Prefix)
	assert.Equal(t, 7, f.MaxIndex)
	assert.Equal(t, 4, f.Passes)
	assert.Equal(t, s.Baud, f.Opts.Baud)
}
