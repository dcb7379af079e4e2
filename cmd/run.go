package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"

	"github.com/lotbump/lotbump/cmd/common"
	"github.com/lotbump/lotbump/internal/sweeper"
	"github.com/urfave/cli"
)

func run(ctx *cli.Context) error {
	sigCtx, cancel := setupShutdownHandler()
	defer cancel()

	e, err := loadEnv(ctx)
	if err != nil {
		return fatal(ctx, "load", err)
	}
	defer e.close()

	session, err := e.client.Login(sigCtx, e.headers)
	if err != nil {
		if sigCtx.Err() != nil {
			return nil
		}
		return fatal(ctx, "login", err)
	}

	sw, err := sweeper.New(e.client, session, sweeper.Options{
		Delay:    e.cfg.Delay,
		Cooldown: e.cfg.Cooldown,
		Backoff:  e.cfg.Backoff,
		Schedule: e.cfg.Schedule,
		Logger:   e.log,
	})
	if err != nil {
		return fatal(ctx, "schedule", err)
	}
	err = sw.Run(sigCtx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	e.log.Info("stopped")
	return nil
}

// fatal reports err, waits for Enter unless --no-prompt is set, and exits
// with status 1.
func fatal(ctx *cli.Context, action string, err error) error {
	common.PrintRuntimeErr(ctx, "run", action, err)
	if !boolFlag(ctx, "no-prompt") {
		fmt.Fprint(stdout, "Press Enter to exit...")
		_, _ = bufio.NewReader(stdin).ReadString('\n')
	}
	return cli.NewExitError("", 1)
}
