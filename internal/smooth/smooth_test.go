package smooth

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentity(t *testing.T) {
	pts := Identity([]float64{21.5, 22.0, 21.8})
	require.Len(t, pts, 3)
	assert.Equal(t, Point{X: 0, Y: 21.5}, pts[0])
	assert.Equal(t, Point{X: 2, Y: 21.8}, pts[2])

	assert.Empty(t, Identity(nil))
}

func TestResample_ShortWindowsPassThrough(t *testing.T) {
	for _, values := range [][]float64{nil, {1}, {1, 2}, {1, 2, 3}} {
		pts := Resample(values, 100)
		assert.Equal(t, Identity(values), pts, "window of %d", len(values))
	}
}

func TestResample_DegenerateTargetPassesThrough(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	assert.Equal(t, Identity(values), Resample(values, 1))
	assert.Equal(t, Identity(values), Resample(values, 0))
}

func TestResample_LengthAndDomain(t *testing.T) {
	values := []float64{20, 21, 23, 22, 24, 23}
	pts := Resample(values, 300)

	require.Len(t, pts, 300)
	assert.Equal(t, 0.0, pts[0].X)
	assert.Equal(t, 5.0, pts[299].X)

	// X strictly increasing.
	for i := 1; i < len(pts); i++ {
		assert.Greater(t, pts[i].X, pts[i-1].X)
	}
}

func TestResample_InterpolatesKnots(t *testing.T) {
	values := []float64{20, 25, 22, 27, 21}
	// target chosen so every original index lands on an evaluation point.
	pts := Resample(values, 5)

	for i, v := range values {
		assert.InDelta(t, v, pts[i].Y, 1e-6, "knot %d", i)
	}
}

func TestResample_PinsLastPointToRawValue(t *testing.T) {
	values := []float64{20, 21, 22, 23, 24.37}
	pts := Resample(values, 301)
	last := pts[len(pts)-1]
	assert.Equal(t, 4.0, last.X)
	assert.Equal(t, 24.37, last.Y)
}

func TestResample_SmoothCurveStaysNearData(t *testing.T) {
	// A sine-shaped window: the spline may overshoot a little between
	// knots but must stay in the same neighborhood as the data.
	values := make([]float64, 50)
	for i := range values {
		values[i] = 25 + 10*math.Sin(0.1*float64(i))
	}
	pts := Resample(values, 300)

	min, max := values[0], values[0]
	for _, v := range values {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	for _, p := range pts {
		assert.GreaterOrEqual(t, p.Y, min-1)
		assert.LessOrEqual(t, p.Y, max+1)
	}
}
