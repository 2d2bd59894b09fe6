package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/honeycombio/otel-config-go/otelconfig"
	"github.com/urfave/cli/v2"

	testout "github.com/testout/testout"
	"github.com/testout/testout/export/yamldump"
	"github.com/testout/testout/flags"
)

var (
	Version   = "v0.1.0"
	GitCommit = ""
	GitDate   = ""
)

func main() {
	logger := log.New()
	plugin := testout.NewPlugin(logger)

	app := cli.NewApp()
	app.Version = fmt.Sprintf("%s-%s-%s", Version, GitCommit, GitDate)
	app.Name = "testout"
	app.Usage = "Transform collected test session dumps into structured output formats"
	app.Description = "testout replays a structured dump through the configured exporters"
	app.Flags = append(append([]cli.Flag{}, flags.Flags...), plugin.Flags()...)
	app.Action = func(cliCtx *cli.Context) error {
		return run(cliCtx, logger, plugin)
	}
	app.ExitErrHandler = func(c *cli.Context, err error) {
		if err == nil {
			return
		}
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			cli.HandleExitCoder(exitErr)
			return
		}
		cli.HandleExitCoder(cli.Exit(err.Error(), testout.ExitCodeFor(err)))
	}

	if err := app.Run(os.Args); err != nil {
		log.Error("Application failed", "err", err)
		os.Exit(testout.ExitCodeFor(err))
	}
}

func run(cliCtx *cli.Context, logger log.Logger, plugin *testout.Plugin) error {
	shutdown, err := otelconfig.ConfigureOpenTelemetry(
		otelconfig.WithServiceName(cliCtx.App.Name),
		otelconfig.WithServiceVersion(cliCtx.App.Version),
	)
	if err != nil {
		logger.Warn("Failed to set up OpenTelemetry", "err", err)
	} else {
		defer shutdown()
	}

	if err := flags.CheckRequired(cliCtx); err != nil {
		return fmt.Errorf("missing required flags: %w", err)
	}

	if err := plugin.Configure(cliCtx); err != nil {
		return err
	}

	data, err := yamldump.Load(cliCtx.String(flags.InputDump.Name), logger)
	if err != nil {
		return err
	}
	plugin.UseData(data)

	return plugin.SessionFinish(cliCtx.Context)
}
