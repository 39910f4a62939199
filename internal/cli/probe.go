package cli

import (
	"fmt"

	"github.com/werdumagen/thermolog/internal/discover"
	"github.com/werdumagen/thermolog/internal/errors"
	"github.com/werdumagen/thermolog/internal/serialport"
)

// probeCommand probes one named port and reports the outcome.
func probeCommand(name string, baudOverride int) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	opts := discover.OptionsFromSettings(settings)
	if baudOverride > 0 {
		opts.Baud = baudOverride
	}

	fmt.Println(dimStyle.Render(fmt.Sprintf("probing %s at %d baud...", name, opts.Baud)))
	port, report := discover.Probe(name, opts)
	printProbeReport(report)

	switch report.Outcome {
	case discover.OutcomeAccepted:
		port.Close()
		return nil
	case discover.OutcomeEmpty:
		return errors.New(errors.ErrDiscover,
			fmt.Sprintf("%s opened but sent nothing", name),
			"Check that the sensor is powered and transmitting.")
	case discover.OutcomeGarbage:
		return errors.New(errors.ErrDiscover,
			fmt.Sprintf("%s is sending data that doesn't parse as numbers", name),
			"Wrong baud rate is the usual cause; try --baud or check the config.")
	default:
		switch {
		case serialport.IsNotFound(report.Err):
			return errors.WrapWithCode(report.Err, errors.ErrPort,
				fmt.Sprintf("No such port: %s", name),
				"Run 'thermolog ports' to see what the host reports.")
		case serialport.IsBusy(report.Err):
			return errors.WrapWithCode(report.Err, errors.ErrPort,
				fmt.Sprintf("%s is held by another process or not accessible", name),
				"Close the other program, or check your permissions on the device.")
		default:
			return errors.WrapWithCode(report.Err, errors.ErrPort,
				fmt.Sprintf("Can't open %s", name), "")
		}
	}
}
