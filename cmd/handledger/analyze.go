package main

import (
	"fmt"
	"io"

	"github.com/lox/handledger/cmd/handledger/shared"
	"github.com/lox/handledger/internal/report"
)

// AnalyzeCmd reconstructs a session and writes a report.
type AnalyzeCmd struct {
	SessionFlags

	Format string `short:"f" help:"Output format (csv|json|yaml|table)"`
	Output string `short:"o" type:"path" help:"Write the report to this file instead of stdout"`
}

func (c *AnalyzeCmd) Run(g *Globals) error {
	cfg, logger, err := g.setup()
	if err != nil {
		return err
	}
	format := cfg.Output.Format
	if c.Format != "" {
		format = c.Format
	}
	if !report.ValidFormat(format) {
		return fmt.Errorf("unknown format %q, want one of %v", format, report.Formats)
	}
	out := cfg.Output.Path
	if c.Output != "" {
		out = c.Output
	}

	ctx, stop := shared.SetupSignalHandler(logger)
	defer stop()

	res, err := c.analyze(ctx, cfg, logger)
	if err != nil {
		return err
	}

	if err := writeOutput(out, func(w io.Writer) error {
		return report.Write(w, format, res)
	}); err != nil {
		return err
	}
	if out != "" {
		logger.Info().Str("path", out).Str("format", format).Int("hands", len(res.Sequence.Hands)).Msg("Wrote report")
	}
	return nil
}
