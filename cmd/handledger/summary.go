package main

import (
	"os"

	"github.com/lox/handledger/cmd/handledger/shared"
	"github.com/lox/handledger/internal/report"
	"github.com/lox/handledger/internal/statistics"
)

// SummaryCmd prints per-player session statistics.
type SummaryCmd struct {
	SessionFlags
}

func (c *SummaryCmd) Run(g *Globals) error {
	cfg, logger, err := g.setup()
	if err != nil {
		return err
	}
	ctx, stop := shared.SetupSignalHandler(logger)
	defer stop()

	res, err := c.analyze(ctx, cfg, logger)
	if err != nil {
		return err
	}

	stats := statistics.FromSequence(res.Sequence)
	if err := stats.Validate(); err != nil {
		return err
	}
	if balance := stats.Balance(); balance != 0 {
		logger.Warn().Int("balance", balance).Msg("Net results do not sum to zero; chips entered or left the table")
	}
	return report.WriteSummary(os.Stdout, stats)
}
