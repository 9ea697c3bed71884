package main

import (
	"io"

	"github.com/lox/handledger/cmd/handledger/shared"
	"github.com/lox/handledger/internal/phh"
)

// ExportPHHCmd writes reconstructed hands as a sectioned PHH file.
type ExportPHHCmd struct {
	SessionFlags

	Output string `short:"o" type:"path" help:"Write the PHH file here instead of stdout"`
}

func (c *ExportPHHCmd) Run(g *Globals) error {
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
	hands, err := phh.FromSequence(res.Sequence)
	if err != nil {
		return err
	}

	if err := writeOutput(c.Output, func(w io.Writer) error {
		return phh.WriteSections(w, hands)
	}); err != nil {
		return err
	}
	logger.Info().Int("hands", len(hands)).Str("path", c.Output).Msg("Exported PHH")
	return nil
}
