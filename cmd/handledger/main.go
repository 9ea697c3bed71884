package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version   kong.VersionFlag `short:"v" help:"Show version"`
	Analyze   AnalyzeCmd       `cmd:"" help:"Reconstruct a session and write a report"`
	Summary   SummaryCmd       `cmd:"" help:"Print per-player statistics for a session"`
	Inspect   InspectCmd       `cmd:"" help:"Show how a single document is parsed and replayed"`
	ExportPHH ExportPHHCmd     `cmd:"export-phh" help:"Export reconstructed hands as a sectioned PHH file"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("handledger"),
		kong.Description("Reconstruct per-seat chip analytics from PGN poker hand histories"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
