package serialport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sptest "github.com/werdumagen/thermolog/internal/serialport/testing"
)

func TestReadLine_SplitsOnNewline(t *testing.T) {
	port := sptest.NewFakePort("21.50", "21.75")
	r := NewLineReader(port)

	line, ok, err := r.ReadLine()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "21.50", line)

	line, ok, err = r.ReadLine()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "21.75", line)
}

func TestReadLine_TimeoutReturnsNotOK(t *testing.T) {
	port := sptest.NewFakePort()
	r := NewLineReader(port)

	line, ok, err := r.ReadLine()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, line)
}

func TestReadLine_CarriesPartialLineAcrossReads(t *testing.T) {
	port := &sptest.FakePort{}
	port.Feed("21.")
	r := NewLineReader(port)

	_, ok, err := r.ReadLine()
	require.NoError(t, err)
	assert.False(t, ok, "no complete line yet")

	port.Feed("50\n")
	line, ok, err := r.ReadLine()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "21.50", line)
}

func TestReadLine_StripsCarriageReturn(t *testing.T) {
	port := &sptest.FakePort{}
	port.Feed("21.50\r\n")
	r := NewLineReader(port)

	line, ok, err := r.ReadLine()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "21.50", line)
}

func TestReadLine_PropagatesReadError(t *testing.T) {
	port := &sptest.FakePort{ReadErr: assert.AnError}
	r := NewLineReader(port)

	_, ok, err := r.ReadLine()
	assert.False(t, ok)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestDrain_ReturnsAllCompleteLines(t *testing.T) {
	port := &sptest.FakePort{}
	port.Feed("1.0\n2.0\n3.0\npartial")
	r := NewLineReader(port)

	lines, err := r.Drain()
	require.NoError(t, err)
	assert.Equal(t, []string{"1.0", "2.0", "3.0"}, lines)

	// The partial completes on a later drain.
	port.Feed("-done\n")
	lines, err = r.Drain()
	require.NoError(t, err)
	assert.Equal(t, []string{"partial-done"}, lines)
}

func TestDrain_EmptyPortYieldsNothing(t *testing.T) {
	r := NewLineReader(sptest.NewFakePort())
	lines, err := r.Drain()
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestReceived_CountsBytes(t *testing.T) {
	port := &sptest.FakePort{}
	r := NewLineReader(port)

	_, _, _ = r.ReadLine()
	assert.Zero(t, r.Received())

	port.Feed("abc\n")
	_, _, _ = r.ReadLine()
	assert.Equal(t, int64(4), r.Received())
}
