package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/btcsuite/btclog/v2"
	"github.com/lnpbp/lnpcore/build"
	"github.com/lnpbp/lnpcore/channel"
	"github.com/lnpbp/lnpcore/chanid"
	"github.com/lnpbp/lnpcore/codec"
	"github.com/lnpbp/lnpcore/extension"
	"github.com/lnpbp/lnpcore/netaddr"
	"github.com/urfave/cli"
)

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[lnpcli] %v\n", err)
	os.Exit(1)
}

// setupLoggers registers the logger of every package with a manager writing
// to w.
func setupLoggers(w io.Writer) *build.SubLoggerManager {
	handler := btclog.NewDefaultHandler(w)
	manager := build.NewSubLoggerManager(handler)

	manager.RegisterSubLogger(codec.Subsystem, codec.UseLogger)
	manager.RegisterSubLogger(chanid.Subsystem, chanid.UseLogger)
	manager.RegisterSubLogger(netaddr.Subsystem, netaddr.UseLogger)
	manager.RegisterSubLogger(extension.Subsystem, extension.UseLogger)
	manager.RegisterSubLogger(channel.Subsystem, channel.UseLogger)

	return manager
}

// newApp builds the command line application, writing results to out and
// logs to logOut.
func newApp(out, logOut io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "lnpcli"
	app.Version = fmt.Sprintf("%s commit=%s deployment=%v",
		build.Version(), build.Commit, build.Deployment)
	app.Usage = "encode, decode and derive lightning channel identities " +
		"and node addresses"
	app.Writer = out
	app.ErrWriter = logOut
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name: "debuglevel",
			Usage: "Logging level for all subsystems {trace, debug, " +
				"info, warn, error, critical, off} -- You may also " +
				"specify <subsystem>=<level>,<subsystem2>=<level>," +
				"... to set the log level for individual subsystems.",
			Value: "off",
		},
		cli.BoolFlag{
			Name:  "table",
			Usage: "Render list results as a table instead of JSON.",
		},
	}
	app.Before = func(ctx *cli.Context) error {
		manager := setupLoggers(logOut)

		return build.ParseAndSetDebugLevels(
			ctx.GlobalString("debuglevel"), manager,
		)
	}
	app.Commands = []cli.Command{
		deriveChanIDCommand,
		tempChanIDCommand,
		packScidCommand,
		decodeScidCommand,
		encodeAddrCommand,
		decodeAddrCommand,
		decodeAddrsCommand,
		toUniformCommand,
		extensionCommand,
		colorCommand,
		lifecycleCommand,
	}

	return app
}

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

// printJSON writes resp to the application writer as indented JSON.
func printJSON(ctx *cli.Context, resp interface{}) error {
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, b, "", "\t"); err != nil {
		return err
	}
	out.WriteString("\n")

	_, err = out.WriteTo(ctx.App.Writer)

	return err
}
