package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/werdumagen/thermolog/internal/emit"
	"github.com/werdumagen/thermolog/internal/errors"
	"github.com/werdumagen/thermolog/internal/logger"
	"github.com/werdumagen/thermolog/internal/serialport"
)

// emitCommand streams synthetic readings to a port until interrupted.
func emitCommand(name, periodFlag string, count int) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	period, err := time.ParseDuration(periodFlag)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a valid period", periodFlag),
			"Try something like 250ms or 1s.")
	}

	port, err := serialport.Open(name, settings.Baud)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrPort,
			fmt.Sprintf("Can't open %s", name),
			"Check the device path; for loopback testing create a pair with socat.")
	}
	defer port.Close()

	emitter := emit.New(port, nil, period, logger.NewEnvLogger("[emit]"))

	if count > 0 {
		for i := 0; i < count; i++ {
			if i > 0 {
				time.Sleep(period)
			}
			if err := emitter.EmitOne(); err != nil {
				return errors.WrapWithCode(err, errors.ErrPort,
					fmt.Sprintf("Write to %s failed", name), "")
			}
		}
		fmt.Printf("emitted %d readings to %s\n", count, name)
		return nil
	}

	fmt.Printf("emitting to %s every %s, Ctrl+C to stop\n", name, period)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := emitter.Run(ctx); err != context.Canceled {
		return err
	}
	return nil
}
