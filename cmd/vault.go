package cmd

import (
	"errors"
	"fmt"

	"github.com/lotbump/lotbump/cmd/common"
	"github.com/lotbump/lotbump/internal/vault"
	"github.com/spf13/afero"
	"github.com/urfave/cli"
)

func openVault() (*vault.Vault, error) {
	path, err := vaultPath()
	if err != nil {
		return nil, err
	}
	return vault.New(appFs, path, newKeySource(getenv)), nil
}

func vaultStore(ctx *cli.Context) error {
	src := ctx.Args().First()
	if src == "" {
		return common.PrintErrWithCmdHelp(ctx, errors.New("missing export file"))
	}
	v, err := openVault()
	if err != nil {
		common.PrintRuntimeErr(ctx, "vault", "open", err)
		return cli.NewExitError("", 1)
	}
	export, err := afero.ReadFile(appFs, src)
	if err != nil {
		common.PrintRuntimeErr(ctx, "vault", "read", err)
		return cli.NewExitError("", 1)
	}
	n, err := v.Store(export)
	if err != nil {
		common.PrintRuntimeErr(ctx, "vault", "store", err)
		return cli.NewExitError("", 1)
	}
	fmt.Fprintf(stdout, "Stored %d cookies in %s\n", n, v.Path())
	return nil
}

func vaultClear(ctx *cli.Context) error {
	v, err := openVault()
	if err != nil {
		common.PrintRuntimeErr(ctx, "vault", "open", err)
		return cli.NewExitError("", 1)
	}
	if err := v.Clear(); err != nil {
		common.PrintRuntimeErr(ctx, "vault", "clear", err)
		return cli.NewExitError("", 1)
	}
	fmt.Fprintln(stdout, "Vault cleared")
	return nil
}
