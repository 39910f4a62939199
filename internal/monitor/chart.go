package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/werdumagen/thermolog/internal/smooth"
)

// Braille character rendering for the temperature trace.
//
// Braille patterns use a 2x4 dot matrix per character. Unicode braille
// starts at U+2800 (empty) and uses bit patterns:
// bit 0 = dot 1, bit 1 = dot 2, bit 2 = dot 3, bit 3 = dot 4,
// bit 4 = dot 5, bit 5 = dot 6, bit 6 = dot 7, bit 7 = dot 8

const brailleBase = '⠀'

// brailleDots maps row/column to the bit offset for the braille pattern.
// [row][col] where row is 0-3 (top to bottom) and col is 0-1 (left to right).
var brailleDots = [4][2]uint8{
	{0, 3}, // Row 0: dots 1 and 4
	{1, 4}, // Row 1: dots 2 and 5
	{2, 5}, // Row 2: dots 3 and 6
	{6, 7}, // Row 3: dots 7 and 8
}

// RenderBrailleChart plots a smoothed series into a width x height character
// grid. Each character packs 2 horizontal by 4 vertical dots, so the trace
// gets far more resolution than block characters allow. The vertical axis
// spans [yMin, yMax]; values outside are clamped to the edge rows.
func RenderBrailleChart(pts []smooth.Point, width, height int, yMin, yMax float64, color lipgloss.Color) string {
	if len(pts) < 2 || width <= 0 || height <= 0 {
		return ""
	}
	if yMax <= yMin {
		yMin, yMax = yMin-1, yMin+1
	}

	cols := width * 2
	rows := height * 4

	xMin := pts[0].X
	xMax := pts[len(pts)-1].X
	if xMax <= xMin {
		return ""
	}

	// One cell byte per character; dots get OR-ed in.
	cells := make([]uint8, width*height)

	next := 0
	for c := 0; c < cols; c++ {
		x := xMin + (xMax-xMin)*float64(c)/float64(cols-1)
		y := valueAt(pts, x, &next)

		norm := (y - yMin) / (yMax - yMin)
		row := int((1 - norm) * float64(rows-1))
		if row < 0 {
			row = 0
		} else if row >= rows {
			row = rows - 1
		}

		cell := (row/4)*width + c/2
		cells[cell] |= 1 << brailleDots[row%4][c%2]
	}

	var sb strings.Builder
	for r := 0; r < height; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < width; c++ {
			sb.WriteRune(brailleBase + rune(cells[r*width+c]))
		}
	}

	style := lipgloss.NewStyle().Foreground(color)
	return style.Render(sb.String())
}

// valueAt linearly interpolates the series at x. The points are sorted by X
// and the caller walks x forward, so next carries the scan position across
// calls.
func valueAt(pts []smooth.Point, x float64, next *int) float64 {
	for *next < len(pts)-1 && pts[*next+1].X < x {
		*next++
	}
	i := *next
	if i >= len(pts)-1 {
		return pts[len(pts)-1].Y
	}
	a, b := pts[i], pts[i+1]
	if b.X == a.X {
		return a.Y
	}
	t := (x - a.X) / (b.X - a.X)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a.Y + t*(b.Y-a.Y)
}
