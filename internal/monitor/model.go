// Package monitor is the live TUI dashboard: a periodic tick drives the
// ingestion loop and the chart re-renders from the current view window.
// The pipeline itself lives in the ingest package; this package only
// presents it.
package monitor

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/werdumagen/thermolog/internal/config"
	"github.com/werdumagen/thermolog/internal/discover"
	"github.com/werdumagen/thermolog/internal/ingest"
	"github.com/werdumagen/thermolog/internal/logger"
	"github.com/werdumagen/thermolog/internal/metrics"
	"github.com/werdumagen/thermolog/internal/serialport"
)

// windowStep is how much one +/- keypress changes the view window width.
const windowStep = 10

// Model is the Bubble Tea model for the dashboard. All pipeline work
// happens inside Update on tick messages, so the single-thread-of-control
// model holds: tick, drain, append, log, render.
type Model struct {
	settings *config.Settings
	ing      *ingest.Ingestor
	finder   *discover.Finder
	met      *metrics.Metrics
	log      logger.Logger

	width  int
	height int

	spin spinner.Model

	showHelp   bool
	quitting   bool
	scanning   bool
	statusNote string
	logPath    string

	fatalErr error
}

// tickMsg signals one ingestion cycle.
type tickMsg time.Time

// rescanMsg carries the result of a manual port rescan.
type rescanMsg struct {
	port serialport.Port
	name string
	err  error
}

// NewModel creates the dashboard model. finder may be nil to disable the
// rescan key; met may be nil to disable counters.
func NewModel(settings *config.Settings, ing *ingest.Ingestor, finder *discover.Finder, met *metrics.Metrics, log logger.Logger) Model {
	if log == nil {
		log = logger.Noop()
	}
	return Model{
		settings: settings,
		ing:      ing,
		finder:   finder,
		met:      met,
		log:      log,
		spin: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(ColorWarning)),
		),
	}
}

// WithLogPath sets the session log path shown in the footer.
func (m Model) WithLogPath(path string) Model {
	m.logPath = path
	return m
}

// Err returns the error that forced the dashboard to quit, if any. The only
// producer is a session-log write failure, which is fatal by design.
func (m Model) Err() error {
	return m.fatalErr
}

// Init starts the ingestion tick.
func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.settings.Interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) rescanCmd() tea.Cmd {
	return func() tea.Msg {
		port, name, err := m.finder.Find()
		return rescanMsg{port: port, name: name, err: err}
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		res, err := m.ing.Tick()
		if err != nil {
			// Durable logging failed; carrying on would silently
			// defeat the recorder's purpose.
			m.fatalErr = err
			m.quitting = true
			return m, tea.Quit
		}
		m.observe(res)
		return m, m.tickCmd()

	case spinner.TickMsg:
		if !m.scanning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case rescanMsg:
		m.scanning = false
		if msg.err != nil {
			m.statusNote = "no sensor found, press r to rescan"
			return m, nil
		}
		m.ing.Attach(msg.port, msg.name)
		m.statusNote = ""
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "+", "=":
		m.adjustWindow(windowStep)
		return m, nil

	case "-", "_":
		m.adjustWindow(-windowStep)
		return m, nil

	case "s":
		updated := m.settings.Clone()
		updated.Chart.Smoothing = !updated.Chart.Smoothing
		if err := config.Apply(m.settings, updated); err != nil {
			m.log.Debug("settings update rejected: %v", err)
		}
		return m, nil

	case "r":
		if m.finder != nil && !m.scanning && !m.ing.Connected() {
			m.scanning = true
			m.statusNote = "scanning ports..."
			return m, tea.Batch(m.rescanCmd(), m.spin.Tick)
		}
		return m, nil

	case "?":
		m.showHelp = !m.showHelp
		return m, nil
	}

	return m, nil
}

// adjustWindow resizes the view window through the validated settings
// update, so it can never shrink below the two-point minimum.
func (m Model) adjustWindow(delta int) {
	updated := m.settings.Clone()
	updated.Chart.WindowWidth += delta
	if err := config.Apply(m.settings, updated); err != nil {
		m.log.Debug("settings update rejected: %v", err)
	}
}

// observe feeds the advisory counters after a tick.
func (m Model) observe(res ingest.TickResult) {
	if m.met == nil {
		return
	}
	if res.Accepted > 0 {
		m.met.SamplesIngested.Add(float64(res.Accepted))
		if v, ok := m.ing.History().View(1).Last(); ok {
			m.met.LastValue.Set(v)
		}
	}
	if res.Garbage > 0 {
		m.met.GarbageLines.Add(float64(res.Garbage))
	}
}
