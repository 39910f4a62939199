package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/werdumagen/thermolog/internal/ingest"
	"github.com/werdumagen/thermolog/internal/smooth"
	"github.com/werdumagen/thermolog/internal/ui"
)

const (
	chartHeight = 10
	// narrowWidth is where the full chart card stops fitting and the view
	// falls back to a one-line sparkline.
	narrowWidth = 40
	// yPad widens auto-scaled axis bounds so the trace never hugs the frame.
	yPad = 2.0
)

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.helpView()
	}

	width := m.width
	if width <= 0 {
		width = 80
	}

	window := m.ing.History().View(m.settings.Chart.WindowWidth)

	var b strings.Builder
	b.WriteString(m.headerView(window))
	b.WriteString("\n")
	if width < narrowWidth {
		b.WriteString(m.sparklineView(window, width))
	} else {
		b.WriteString(m.chartView(window, width))
	}
	b.WriteString("\n")
	b.WriteString(m.footerView(width))
	return b.String()
}

func (m Model) headerView(window ingest.Window) string {
	title := HeaderStyle.Render("thermolog")

	port := m.ing.PortName()
	if port == "" {
		port = "no port"
	}

	status := m.ing.Status()
	var statusText string
	switch status {
	case ingest.StatusConnected:
		statusText = StatusConnectedStyle.Render(ui.SymbolSuccess + " " + status.String())
	case ingest.StatusGarbage:
		statusText = StatusGarbageStyle.Render(ui.SymbolProgress + " " + status.String())
	default:
		statusText = StatusOfflineStyle.Render(ui.SymbolFail + " " + status.String())
	}
	if m.statusNote != "" {
		note := m.statusNote
		if m.scanning {
			note = m.spin.View() + note
		}
		statusText += LabelStyle.Render("  " + note)
	}

	value := "--"
	if v, ok := window.Last(); ok {
		value = fmt.Sprintf("%.2f", v)
	}

	line1 := title + LabelStyle.Render("  "+port+"  ") + statusText
	line2 := ValueStyle.Render(value+" °C") +
		LabelStyle.Render(fmt.Sprintf("  %d samples", m.ing.History().Len()))
	return line1 + "\n" + line2
}

func (m Model) chartView(window ingest.Window, width int) string {
	// Border and padding eat six columns.
	innerWidth := width - 6
	if innerWidth < 2 {
		innerWidth = 2
	}

	pts := m.chartPoints(window)
	yMin, yMax := m.axisBounds(window)

	chart := RenderBrailleChart(pts, innerWidth, chartHeight, yMin, yMax, ColorTrace)
	if chart == "" {
		chart = LabelStyle.Render("waiting for data...")
	}

	axis := LabelStyle.Render(fmt.Sprintf("%.1f .. %.1f", yMin, yMax))
	return ChartStyle.Render(chart) + "\n" + axis
}

func (m Model) sparklineView(window ingest.Window, width int) string {
	if window.Len() == 0 {
		return LabelStyle.Render("waiting for data...")
	}
	return ui.RenderSparkline(window.Values, width, ui.ColorGraph)
}

// chartPoints applies the smoothing setting to the view window. Short
// windows stay raw; the spline needs more than a handful of knots to be
// worth drawing.
func (m Model) chartPoints(window ingest.Window) []smooth.Point {
	if m.settings.Chart.Smoothing && window.Len() > 3 {
		return smooth.Resample(window.Values, m.settings.Chart.SmoothPoints)
	}
	return smooth.Identity(window.Values)
}

// axisBounds returns the y-axis range: the configured fixed bounds when
// set, otherwise the window's data range padded on both sides.
func (m Model) axisBounds(window ingest.Window) (float64, float64) {
	if m.settings.Chart.YMin != 0 || m.settings.Chart.YMax != 0 {
		return m.settings.Chart.YMin, m.settings.Chart.YMax
	}
	if window.Len() == 0 {
		return 0, 1
	}
	min, max := window.Values[0], window.Values[0]
	for _, v := range window.Values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min - yPad, max + yPad
}

func (m Model) footerView(width int) string {
	keys := "q quit · +/- window · s smoothing · r rescan · ? help"
	line := keys
	if m.logPath != "" {
		line += "  |  " + m.logPath
	}
	if lipgloss.Width(line) > width && m.logPath != "" {
		line = keys
	}
	return FooterStyle.Render(line)
}

func (m Model) helpView() string {
	rows := []string{
		HeaderStyle.Render("thermolog keys"),
		"",
		"  q, ctrl+c   quit",
		"  +, =        widen the view window",
		"  -, _        narrow the view window",
		"  s           toggle spline smoothing",
		"  r           rescan ports when disconnected",
		"  ?           close this help",
		"",
		LabelStyle.Render(fmt.Sprintf("window %d points · interval %s",
			m.settings.Chart.WindowWidth, m.settings.Interval)),
	}
	return HelpStyle.Render(strings.Join(rows, "\n"))
}
