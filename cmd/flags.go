package cmd

import (
	"github.com/lotbump/lotbump/internal/config"
	"github.com/urfave/cli"
)

const defaultCookiesPath = "cookies.txt"

var sessionFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "config, c",
		Usage: "settings file (default: $" + config.PathEnv + " or " + config.DefaultPath + ")",
	},
	cli.StringFlag{
		Name:  "cookies",
		Usage: "JSON cookie export",
		Value: defaultCookiesPath,
	},
	cli.StringFlag{
		Name:  "cookies-from",
		Usage: "import cookies from a Firefox/Chrome cookie database or a Netscape cookies.txt",
	},
	cli.BoolFlag{
		Name:  "vault",
		Usage: "read cookies from the encrypted vault",
	},
	cli.StringFlag{
		Name:  "log-file, l",
		Usage: "also append log lines to this file",
	},
}

var runFlags = append([]cli.Flag{
	cli.BoolFlag{
		Name:  "no-prompt",
		Usage: "exit on fatal errors without waiting for Enter",
	},
}, sessionFlags...)

// stringFlag reads name from the command flags, falling back to the
// global ones.
func stringFlag(ctx *cli.Context, name string) string {
	if ctx.IsSet(name) {
		return ctx.String(name)
	}
	if ctx.GlobalIsSet(name) {
		return ctx.GlobalString(name)
	}
	return ctx.String(name)
}

func boolFlag(ctx *cli.Context, name string) bool {
	return ctx.Bool(name) || ctx.GlobalBool(name)
}
