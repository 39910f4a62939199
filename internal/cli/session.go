package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/werdumagen/thermolog/internal/config"
	"github.com/werdumagen/thermolog/internal/discover"
	"github.com/werdumagen/thermolog/internal/errors"
	"github.com/werdumagen/thermolog/internal/serialport"
	"github.com/werdumagen/thermolog/internal/store"
	"github.com/werdumagen/thermolog/internal/ui"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	dimStyle  = lipgloss.NewStyle().Foreground(ui.ColorMuted)
	warnStyle = lipgloss.NewStyle().Foreground(ui.ColorWarning)
)

// openSensor returns an attached sensor port: the explicit one when --port
// was given, otherwise the first discovered one. progress may be nil.
func openSensor(settings *config.Settings, explicit string, progress func(discover.Report)) (serialport.Port, string, error) {
	if explicit != "" {
		port, err := serialport.Open(explicit, settings.Baud)
		if err != nil {
			return nil, "", errors.WrapWithCode(err, errors.ErrPort,
				fmt.Sprintf("Can't open %s", explicit),
				"Check the device path and that nothing else holds the port, or drop --port to scan.")
		}
		return port, explicit, nil
	}

	finder := discover.NewFinder(settings)
	finder.Progress = progress
	port, name, err := finder.Find()
	if err != nil {
		return nil, "", errors.WrapWithCode(err, errors.ErrDiscover,
			"No sensor found on any serial port",
			"Check the cable, or name the port directly with --port.")
	}
	return port, name, nil
}

// openSessionLog creates the durable CSV log for a session starting now.
func openSessionLog(settings *config.Settings, dirFlag string) (*store.CSVLog, error) {
	dir := settings.LogDir
	if dirFlag != "" {
		dir = dirFlag
	}
	return store.Open(dir, time.Now())
}

// printProbeReport is a Finder progress callback that narrates the scan.
func printProbeReport(r discover.Report) {
	switch r.Outcome {
	case discover.OutcomeAccepted:
		fmt.Println(okStyle.Render(ui.SymbolSuccess + " " + r.String()))
	case discover.OutcomeGarbage:
		fmt.Println(warnStyle.Render(ui.SymbolProgress + " " + r.String()))
	default:
		fmt.Println(dimStyle.Render(ui.SymbolPending + " " + r.String()))
	}
}
