package main

import (
	"context"
	"fmt"
	"io"

	"log-analyzer/internal/analyzers"

	"github.com/urfave/cli/v3"
)

func analyzeAction(ctx context.Context, cmd *cli.Command) error {
	application, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer application.Close()

	result, err := application.Analyze(ctx)
	if err != nil {
		return err
	}

	printResult(cmd.Root().Writer, result)
	return nil
}

func printResult(w io.Writer, result *analyzers.AnalyzeResult) {
	switch result.Status {
	case analyzers.StatusNoLog:
		fmt.Fprintln(w, "no log to analyze")
	case analyzers.StatusAlreadyReported:
		fmt.Fprintf(w, "report for %s already exists (%s)\n", result.Date, result.ReportKey)
	default:
		fmt.Fprintf(w, "report for %s written to %s: %d rows from %s (%d lines, %d malformed)\n",
			result.Date, result.ReportKey, result.Rows, result.LogFile,
			result.Stats.Lines, result.Stats.Malformed)
	}
}
