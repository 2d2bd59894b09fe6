// Package summary prints a console table of collected items and their
// outcomes at session end.
package summary

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/urfave/cli/v2"

	"github.com/testout/testout/collector"
	"github.com/testout/testout/flags"
	"github.com/testout/testout/types"
)

const EnableFlagName = "summary"

// Generator renders the console summary table.
type Generator struct {
	enabled bool
	out     io.Writer
	log     log.Logger
}

// New creates a summary generator writing to stdout.
func New(logger log.Logger) *Generator {
	if logger == nil {
		logger = log.New()
	}
	return &Generator{out: os.Stdout, log: logger}
}

func (g *Generator) Name() string {
	return "summary"
}

func (g *Generator) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    EnableFlagName,
			Value:   false,
			EnvVars: flags.PrefixEnvVar("SUMMARY"),
			Usage:   "Print a summary table of collected items and outcomes",
		},
	}
}

func (g *Generator) Configure(cliCtx *cli.Context) error {
	g.enabled = cliCtx.Bool(EnableFlagName)
	return nil
}

func (g *Generator) Generate(_ context.Context, data *collector.Collection) error {
	if !g.enabled {
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(g.out)
	t.SetTitle(fmt.Sprintf("Session %s (%s)", data.RunID(), data.Mode()))

	t.AppendHeader(table.Row{"ID", "NAME", "OUTCOME", "DURATION", "SUMMARY"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "ID", WidthMax: 80, WidthMaxEnforcer: text.WrapSoft},
		{Name: "DURATION", Align: text.AlignRight},
		{Name: "SUMMARY", WidthMax: 60, WidthMaxEnforcer: text.WrapSoft},
	})

	counts := make(map[types.Outcome]int)
	var total float64
	for _, item := range data.Items() {
		outcome := "-"
		duration := "-"
		summary := ""
		if item.Result != nil {
			outcome = string(item.Result.Outcome)
			duration = formatDuration(item.Result.Duration)
			summary = item.Result.Summary
			counts[item.Result.Outcome]++
			total += item.Result.Duration
		}
		t.AppendRow(table.Row{item.ID, item.Name, outcome, duration, summary})
	}

	t.AppendFooter(table.Row{
		fmt.Sprintf("%d items", data.Len()),
		"",
		fmt.Sprintf("%d passed, %d failed, %d skipped, %d errors",
			counts[types.OutcomePassed], counts[types.OutcomeFailed],
			counts[types.OutcomeSkipped], counts[types.OutcomeError]),
		formatDuration(total),
		"",
	})

	if counts[types.OutcomeFailed]+counts[types.OutcomeError] > 0 {
		t.SetStyle(table.StyleColoredBlackOnRedWhite)
	} else {
		t.SetStyle(table.StyleDefault)
	}

	t.Render()
	return nil
}

func formatDuration(seconds float64) string {
	return time.Duration(seconds * float64(time.Second)).Round(time.Millisecond).String()
}
