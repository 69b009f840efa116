package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"log-analyzer/internal/app"
	"log-analyzer/internal/shared/configs"
	"log-analyzer/internal/shared/svcerrors"

	"github.com/urfave/cli/v3"
)

const (
	appName           = "log-analyzer"
	defaultConfigPath = "./configs/configs.yml"
	flagConfig        = "config"
)

// errConfig marks failures that happen before any analysis starts.
var errConfig = errors.New("invalid configuration")

func main() {
	ctx := context.Background()

	appl := &cli.Command{
		Name:  appName,
		Usage: "Build a ranked URL report from the newest nginx access log",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "Path to the YAML config file, merged over the built-in defaults",
				Value:   defaultConfigPath,
			},
		},
		Action: analyzeAction,
		Commands: []*cli.Command{
			serveCommand(),
		},
	}

	if err := appl.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(exitCode(err))
	}
}

// newApp loads the config named by --config. The default path may be absent; an explicit one may not.
func newApp(cmd *cli.Command) (*app.App, error) {
	cfg, err := configs.LoadConfig(cmd.String(flagConfig), !cmd.IsSet(flagConfig))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errConfig, err)
	}

	application, err := app.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errConfig, err)
	}
	return application, nil
}

func exitCode(err error) int {
	if err == nil {
		return svcerrors.ExitCodeOK
	}
	if errors.Is(err, errConfig) {
		return svcerrors.ExitCodeInvalidArgument
	}
	if svcErr, ok := svcerrors.AsServiceError(err); ok {
		return svcErr.ExitCode
	}
	return svcerrors.ExitCodeInternal
}
