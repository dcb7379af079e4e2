// Package common holds the help, version and error printing helpers shared
// by the lotbump commands.
package common

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli"
)

// VersionCmdStr is filled in by cmd.Execute with the build information.
var VersionCmdStr string

// Out receives everything the helpers print.
var Out io.Writer = os.Stdout

var (
	showAppHelpAndExit = cli.ShowAppHelpAndExit
	showCommandHelp    = cli.ShowCommandHelp
)

// Help shows the application help, or the help of the command named by the
// first argument.
func Help(ctx *cli.Context) error {
	arg := ctx.Args().First()
	if arg == "" || arg == "help" {
		fmt.Fprintf(Out, "%s %s\n", ctx.App.Name, ctx.App.Version)
		showAppHelpAndExit(ctx, 0)
		return nil
	}
	err := showCommandHelp(ctx, arg)
	if err != nil {
		return err
	}
	return PrintErrWithHelp(ctx, err)
}

// GetVersion prints VersionCmdStr.
func GetVersion(ctx *cli.Context) error {
	fmt.Fprintln(Out, VersionCmdStr)
	return nil
}

// PrintRuntimeErr prints "<app>: <cmd>[<action>]: <err>". ctx may be nil.
func PrintRuntimeErr(ctx *cli.Context, cmd, action string, err error) {
	if err == nil {
		fmt.Fprintln(Out, "err is nil", "[", cmd, "|", action, "]")
		return
	}
	var name string
	if ctx != nil && ctx.App != nil {
		name = ctx.App.HelpName
	} else {
		name = os.Args[0]
	}
	fmt.Fprintf(Out, "%s: %s[%s]: %s\n", name, cmd, action, err.Error())
}

// PrintErrWithCmdHelp prints err followed by the current command's help.
func PrintErrWithCmdHelp(ctx *cli.Context, err error) error {
	return printErrWithCallback(ctx, err, func() {
		if err := showCommandHelp(ctx, ctx.Command.Name); err != nil {
			fmt.Fprintln(Out, err.Error())
		}
	})
}

// PrintErrWithHelp prints err followed by the application help, then exits
// with status 1.
func PrintErrWithHelp(ctx *cli.Context, err error) error {
	return printErrWithCallback(ctx, err, func() {
		showAppHelpAndExit(ctx, 1)
	})
}

func printErrWithCallback(ctx *cli.Context, err error, callback func()) error {
	if err == nil {
		return nil
	}
	estr := strings.ToLower(err.Error())
	if estr == "flag: help requested" {
		return Help(ctx)
	}
	if strings.Contains(estr, "-version") {
		return GetVersion(ctx)
	}
	fmt.Fprintf(Out, "%s: %s\n\n", ctx.App.HelpName, err.Error())
	callback()
	return nil
}

// UsageErrorCallback is the OnUsageError hook for the app and its commands.
func UsageErrorCallback(ctx *cli.Context, err error, _ bool) error {
	if ctx.Command.Name != "" {
		return PrintErrWithCmdHelp(ctx, err)
	}
	return PrintErrWithHelp(ctx, err)
}
