package monitor

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/werdumagen/thermolog/internal/smooth"
)

func init() {
	// Deterministic output regardless of the test terminal.
	lipgloss.SetColorProfile(termenv.Ascii)
}

func linePoints(ys ...float64) []smooth.Point {
	pts := make([]smooth.Point, len(ys))
	for i, y := range ys {
		pts[i] = smooth.Point{X: float64(i), Y: y}
	}
	return pts
}

func TestRenderBrailleChart_Empty(t *testing.T) {
	assert.Empty(t, RenderBrailleChart(nil, 10, 4, 0, 1, ColorTrace))
	assert.Empty(t, RenderBrailleChart(linePoints(21.5), 10, 4, 0, 1, ColorTrace))
}

func TestRenderBrailleChart_ZeroDimensions(t *testing.T) {
	pts := linePoints(1, 2, 3)
	assert.Empty(t, RenderBrailleChart(pts, 0, 4, 0, 4, ColorTrace))
	assert.Empty(t, RenderBrailleChart(pts, 10, 0, 0, 4, ColorTrace))
}

func TestRenderBrailleChart_Dimensions(t *testing.T) {
	pts := linePoints(20, 21, 22, 23, 24)
	out := RenderBrailleChart(pts, 12, 5, 19, 25, ColorTrace)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	for _, line := range lines {
		assert.Equal(t, 12, len([]rune(line)))
	}
}

func TestRenderBrailleChart_UsesBrailleRunes(t *testing.T) {
	pts := linePoints(20, 25, 20, 25, 20)
	out := RenderBrailleChart(pts, 10, 4, 18, 27, ColorTrace)

	lit := 0
	for _, r := range out {
		if r == '\n' {
			continue
		}
		require.True(t, r >= brailleBase && r <= brailleBase+255,
			"unexpected rune %q", r)
		if r != brailleBase {
			lit++
		}
	}
	assert.Positive(t, lit)
}

func TestRenderBrailleChart_RisingTraceMovesUp(t *testing.T) {
	pts := linePoints(0, 10)
	out := RenderBrailleChart(pts, 10, 4, 0, 10, ColorTrace)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)

	firstLit := func(line string) int {
		for i, r := range []rune(line) {
			if r != brailleBase {
				return i
			}
		}
		return -1
	}
	// Top row carries the right end of the trace, bottom row the left end.
	top, bottom := firstLit(lines[0]), firstLit(lines[3])
	require.NotEqual(t, -1, top)
	require.NotEqual(t, -1, bottom)
	assert.Greater(t, top, bottom)
}

func TestRenderBrailleChart_ClampsOutOfRange(t *testing.T) {
	pts := linePoints(-100, 200)
	out := RenderBrailleChart(pts, 8, 4, 0, 10, ColorTrace)
	assert.NotEmpty(t, out)
	assert.Len(t, strings.Split(out, "\n"), 4)
}

func TestRenderBrailleChart_DegenerateBounds(t *testing.T) {
	// yMax <= yMin falls back to a one-unit pad around yMin.
	pts := linePoints(5, 5, 5)
	out := RenderBrailleChart(pts, 8, 3, 5, 5, ColorTrace)
	assert.NotEmpty(t, out)
}
