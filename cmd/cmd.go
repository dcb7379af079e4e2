package cmd

import (
	"fmt"
	"runtime"

	"github.com/lotbump/lotbump/cmd/common"
	"github.com/urfave/cli"
)

type BuildArgs struct {
	Version   string
	BuildType string
	Date      string
	Commit    string
}

func Execute(args []string, bArgs BuildArgs) error {
	common.Out = stdout
	app := cli.App{
		Name:                  "lotbump",
		HelpName:              "lotbump",
		Usage:                 "Keeps marketplace lots raised.",
		Version:               fmt.Sprintf("%s-%s", bArgs.Version, bArgs.BuildType),
		UsageText:             "lotbump [global options] <command> [arguments...]",
		Description:           DESCRIPTION,
		CustomAppHelpTemplate: HELP_TEMPL,
		OnUsageError:          common.UsageErrorCallback,
		Writer:                stdout,
		ErrWriter:             stderr,
		Commands: []cli.Command{
			{
				Name:               "run",
				Aliases:            []string{"r"},
				Usage:              "raise every category forever (default)",
				Action:             run,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        RunDescription,
				Flags:              runFlags,
			},
			{
				Name:               "check",
				Usage:              "verify the cookies and print the account id",
				Action:             check,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        CheckDescription,
				Flags:              sessionFlags,
			},
			{
				Name:               "categories",
				Aliases:            []string{"ls"},
				Usage:              "list the categories that would be raised",
				Action:             categories,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        CategoriesDescription,
				Flags:              sessionFlags,
			},
			{
				Name:               "vault",
				Usage:              "manage the encrypted cookie vault",
				Description:        VaultDescription,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Subcommands: []cli.Command{
					{
						Name:         "store",
						Usage:        "encrypt a JSON cookie export into the vault",
						ArgsUsage:    "<export file>",
						OnUsageError: common.UsageErrorCallback,
						Action:       vaultStore,
					},
					{
						Name:         "clear",
						Usage:        "delete the vault and its key",
						OnUsageError: common.UsageErrorCallback,
						Action:       vaultClear,
					},
				},
			},
			{
				Name:    "help",
				Aliases: []string{"h"},
				Usage:   "prints the help message",
				Action:  common.Help,
			},
			{
				Name:               "version",
				Aliases:            []string{"v"},
				Usage:              "prints installed version of lotbump",
				UsageText:          " ",
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Action:             common.GetVersion,
			},
		},
		Action:      run,
		Flags:       runFlags,
		HideHelp:    true,
		HideVersion: true,
	}
	common.VersionCmdStr = fmt.Sprintf("%s %s (%s_%s)\nBuild: %s=%s\n",
		app.Name,
		app.Version,
		runtime.GOOS,
		runtime.GOARCH,
		bArgs.Date, bArgs.Commit,
	)
	return app.Run(args)
}
