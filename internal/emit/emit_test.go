package emit

import (
	"bufio"
	"context"
	"math/rand"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/werdumagen/thermolog/internal/logger"
)

func TestWaveform_StaysInEnvelope(t *testing.T) {
	w := NewWaveform(rand.New(rand.NewSource(1)))
	for i := 0; i < 1000; i++ {
		v := w.Next()
		assert.GreaterOrEqual(t, v, w.Base-w.Amplitude-w.Noise)
		assert.LessOrEqual(t, v, w.Base+w.Amplitude+w.Noise)
	}
}

func TestWaveform_Oscillates(t *testing.T) {
	w := NewWaveform(rand.New(rand.NewSource(1)))
	// A quarter period later the sine term dominates the noise.
	first := w.Next()
	var later float64
	for i := 0; i < 15; i++ {
		later = w.Next()
	}
	assert.Greater(t, later, first+5)
}

func TestEmitOne_Format(t *testing.T) {
	var sb strings.Builder
	e := New(&sb, NewWaveform(rand.New(rand.NewSource(7))), 0, logger.Noop())

	for i := 0; i < 5; i++ {
		require.NoError(t, e.EmitOne())
	}

	sc := bufio.NewScanner(strings.NewReader(sb.String()))
	lines := 0
	for sc.Scan() {
		lines++
		v, err := strconv.ParseFloat(sc.Text(), 64)
		require.NoError(t, err, "line %q", sc.Text())
		assert.InDelta(t, 25, v, 11)
		// Two decimal places exactly.
		_, frac, found := strings.Cut(sc.Text(), ".")
		require.True(t, found)
		assert.Len(t, frac, 2)
	}
	assert.Equal(t, 5, lines)
}

type flakyWriter struct {
	fails int
	wrote int
}

func (w *flakyWriter) Write(b []byte) (int, error) {
	if w.fails > 0 {
		w.fails--
		return 0, assert.AnError
	}
	w.wrote += len(b)
	return len(b), nil
}

func TestRun_SurvivesWriteFailures(t *testing.T) {
	out := &flakyWriter{fails: 2}
	log := logger.NewBufferLogger()
	e := New(out, NewWaveform(rand.New(rand.NewSource(3))), time.Millisecond, log)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := e.Run(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, log.HasLevel("warn"))
	assert.Positive(t, out.wrote, "stream should recover after failed writes")
}
