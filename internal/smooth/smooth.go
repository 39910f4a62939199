// Package smooth densifies a view window for rendering by fitting a cubic
// curve over the sample indices. Smoothing is a presentation nicety: any
// failure falls back to the raw polyline and is never propagated.
package smooth

import (
	"gonum.org/v1/gonum/interp"

	"github.com/werdumagen/thermolog/internal/logger"
)

// Point is one (index, value) pair of the rendered series. X runs over the
// window's index domain [0, n-1], not wall-clock time.
type Point struct {
	X float64
	Y float64
}

// Identity returns the raw window as (index, value) pairs.
func Identity(values []float64) []Point {
	pts := make([]Point, len(values))
	for i, v := range values {
		pts[i] = Point{X: float64(i), Y: v}
	}
	return pts
}

// Resample fits a natural cubic spline through the window values and
// evaluates it at target evenly spaced points across [0, n-1]. Windows of
// three or fewer points, a degenerate target, or a fit failure all yield
// the unmodified identity series instead.
func Resample(values []float64, target int) []Point {
	n := len(values)
	if n <= 3 || target < 2 {
		return Identity(values)
	}

	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}

	var spline interp.NaturalCubic
	if err := spline.Fit(xs, values); err != nil {
		logger.Default().Debug("spline fit failed, rendering raw window: %v", err)
		return Identity(values)
	}

	step := float64(n-1) / float64(target-1)
	pts := make([]Point, target)
	for i := range pts {
		x := float64(i) * step
		pts[i] = Point{X: x, Y: spline.Predict(x)}
	}
	// Guard against accumulated step error at the right edge.
	pts[target-1] = Point{X: float64(n - 1), Y: values[n-1]}
	return pts
}
