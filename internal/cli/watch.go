package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/werdumagen/thermolog/internal/discover"
	"github.com/werdumagen/thermolog/internal/errors"
	"github.com/werdumagen/thermolog/internal/ingest"
	"github.com/werdumagen/thermolog/internal/logger"
	"github.com/werdumagen/thermolog/internal/metrics"
	"github.com/werdumagen/thermolog/internal/monitor"
)

// watchCommand runs discovery, then the live dashboard.
func watchCommand(portFlag, logDirFlag, metricsAddr string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrConfig,
			"watch needs an interactive terminal",
			"Use 'thermolog record' for headless logging.")
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	var met *metrics.Metrics
	if metricsAddr != "" {
		met = metrics.New()
		met.Serve(metricsAddr, logger.NewEnvLogger("[metrics]"))
	}

	progress := printProbeReport
	if met != nil {
		progress = func(r discover.Report) {
			printProbeReport(r)
			met.ObserveProbe(r)
		}
	}

	fmt.Println(dimStyle.Render("scanning for sensor..."))
	port, name, err := openSensor(settings, portFlag, progress)
	if err != nil {
		return err
	}

	log, err := openSessionLog(settings, logDirFlag)
	if err != nil {
		port.Close()
		return err
	}

	ing := ingest.New(ingest.NewHistory(), log,
		ingest.NewParser(settings.Parse.Delimiter), logger.NewEnvLogger("[ingest]"))
	ing.Attach(port, name)

	finder := discover.NewFinder(settings)
	model := monitor.NewModel(settings, ing, finder, met, logger.NewEnvLogger("[monitor]")).
		WithLogPath(log.Path())

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, runErr := p.Run()

	// Shutdown order: stop reading before sealing the log.
	ing.Close()
	closeErr := log.Close()

	if runErr != nil {
		return runErr
	}
	if m, ok := final.(monitor.Model); ok && m.Err() != nil {
		return m.Err()
	}
	if closeErr != nil {
		return closeErr
	}

	fmt.Printf("session log: %s (%d readings)\n", log.Path(), log.Rows())
	return nil
}
