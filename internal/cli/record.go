package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/werdumagen/thermolog/internal/discover"
	"github.com/werdumagen/thermolog/internal/errors"
	"github.com/werdumagen/thermolog/internal/ingest"
	"github.com/werdumagen/thermolog/internal/logger"
	"github.com/werdumagen/thermolog/internal/metrics"
)

// recordCommand logs readings headless until interrupted or the optional
// duration elapses.
func recordCommand(portFlag, logDirFlag, metricsAddr, durationFlag string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	var duration time.Duration
	if durationFlag != "" {
		duration, err = time.ParseDuration(durationFlag)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				fmt.Sprintf("'%s' doesn't look like a valid duration", durationFlag),
				"Try something like 30m, 8h, or 90s.")
		}
	}

	log := logger.NewEnvLogger("[record]")

	var met *metrics.Metrics
	if metricsAddr != "" {
		met = metrics.New()
		met.Serve(metricsAddr, log)
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

	sessionLog, err := openSessionLog(settings, logDirFlag)
	if err != nil {
		port.Close()
		return err
	}
	defer sessionLog.Close()

	ing := ingest.New(ingest.NewHistory(), sessionLog,
		ingest.NewParser(settings.Parse.Delimiter), log)
	ing.Attach(port, name)
	defer ing.Close()

	fmt.Printf("recording from %s to %s\n", name, sessionLog.Path())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, duration)
		defer cancel()
	}

	ticker := time.NewTicker(settings.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Printf("session log: %s (%d readings)\n", sessionLog.Path(), sessionLog.Rows())
			return nil
		case <-ticker.C:
			res, err := ing.Tick()
			if err != nil {
				// A failed CSV write means readings are being lost.
				return err
			}
			if met != nil {
				observeTick(met, ing, res)
			}
		}
	}
}

func observeTick(met *metrics.Metrics, ing *ingest.Ingestor, res ingest.TickResult) {
	if res.Accepted > 0 {
		met.SamplesIngested.Add(float64(res.Accepted))
		if v, ok := ing.History().View(1).Last(); ok {
			met.LastValue.Set(v)
		}
	}
	if res.Garbage > 0 {
		met.GarbageLines.Add(float64(res.Garbage))
	}
}
