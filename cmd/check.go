package cmd

import (
	"errors"
	"fmt"

	"github.com/lotbump/lotbump/cmd/common"
	"github.com/lotbump/lotbump/pkg/market"
	"github.com/urfave/cli"
)

func check(ctx *cli.Context) error {
	sigCtx, cancel := setupShutdownHandler()
	defer cancel()

	e, err := loadEnv(ctx)
	if err != nil {
		common.PrintRuntimeErr(ctx, "check", "load", err)
		return cli.NewExitError("", 1)
	}
	defer e.close()

	session, err := e.client.Login(sigCtx, e.headers)
	if errors.Is(err, market.ErrAuthenticationRequired) {
		fmt.Fprintln(stdout, "Not signed in: export fresh cookies from the browser.")
		return cli.NewExitError("", 1)
	}
	if err != nil {
		common.PrintRuntimeErr(ctx, "check", "login", err)
		return cli.NewExitError("", 1)
	}
	fmt.Fprintf(stdout, "Signed in as %s\n", session.AccountID())
	return nil
}

func categories(ctx *cli.Context) error {
	sigCtx, cancel := setupShutdownHandler()
	defer cancel()

	e, err := loadEnv(ctx)
	if err != nil {
		common.PrintRuntimeErr(ctx, "categories", "load", err)
		return cli.NewExitError("", 1)
	}
	defer e.close()

	session, err := e.client.Login(sigCtx, e.headers)
	if err != nil {
		common.PrintRuntimeErr(ctx, "categories", "login", err)
		return cli.NewExitError("", 1)
	}
	urls, err := e.client.DiscoverCategories(sigCtx, session)
	if err != nil {
		common.PrintRuntimeErr(ctx, "categories", "discover", err)
		return cli.NewExitError("", 1)
	}
	if len(urls) == 0 {
		fmt.Fprintln(stdout, "No categories found.")
		return nil
	}
	for _, u := range urls {
		fmt.Fprintln(stdout, u)
	}
	return nil
}
