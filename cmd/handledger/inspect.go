package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/handledger/internal/ledger"
	"github.com/lox/handledger/internal/pgn"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#96CEB4"))
	streetStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD700"))
	flagStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFEAA7"))
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
)

// InspectCmd shows how one document is tokenized and replayed, in raw seat
// order, without sequencing it into a session.
type InspectCmd struct {
	File           string `arg:"" type:"existingfile" help:"Hand history document"`
	RaiseInference string `name:"raise-inference" help:"Target for raises without a total (double|min-raise)"`
	Blinds         string `help:"Blind seat policy (button|fixed)"`
}

func (c *InspectCmd) Run(g *Globals) error {
	cfg, _, err := g.setup()
	if err != nil {
		return err
	}
	if c.RaiseInference != "" {
		cfg.Analysis.RaiseInference = c.RaiseInference
	}
	if c.Blinds != "" {
		cfg.Blinds.Policy = c.Blinds
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	replayer, err := cfg.Replayer()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(c.File)
	if err != nil {
		return err
	}
	return renderDocument(os.Stdout, filepath.Base(c.File), string(data), replayer)
}

// renderDocument prints every hand of a document with its per-street
// ledger. Malformed hands are reported inline and do not stop the output.
func renderDocument(w io.Writer, name, text string, replayer ledger.Replayer) error {
	for pos, chunk := range pgn.SplitRecords(text) {
		if pos > 0 {
			fmt.Fprintln(w)
		}
		rec, err := pgn.ParseDocument(chunk)
		if err != nil {
			fmt.Fprintf(w, "%s\n", errorStyle.Render(fmt.Sprintf("%s hand %d: %v", name, pos, err)))
			continue
		}
		rec.Source, rec.Position = name, pos
		renderHand(w, rec, replayer.Hand(rec))
	}
	return nil
}

func renderHand(w io.Writer, rec *pgn.HandRecord, hl *ledger.HandLedger) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s hand %d", rec.Source, rec.Position)))
	fmt.Fprintf(w, "seats %d, blinds %d/%d, small blind seat %d, big blind seat %d\n",
		rec.TableSize(), rec.SmallBlind, rec.BigBlind, hl.SmallBlindSeat, hl.BigBlindSeat)
	fmt.Fprintf(w, "starting chips %v\n", rec.StartingChips)
	fmt.Fprintf(w, "winner %s", rec.Winner)
	if len(rec.Pots) > 1 {
		fmt.Fprintf(w, " (%d pots)", len(rec.Pots))
	}
	fmt.Fprintln(w)

	for _, sl := range hl.Streets {
		if rec.Street(sl.Street) == nil {
			continue
		}
		fmt.Fprintf(w, "%s %s\n", streetStyle.Render(sl.Street.String()), formatEvents(rec.Actions(sl.Street)))
		fmt.Fprintf(w, "  committed %v voluntary %v raised %v bet level %d\n",
			sl.Committed, sl.Voluntary, sl.Raised, sl.BetLevel)
	}

	pre := hl.Summarize(ledger.ScopePreflop)
	fmt.Fprintf(w, "preflop voluntary %v raised %v\n", pre.Voluntary, pre.Raised)

	flags := ledger.Flags(hl.Issues)
	if len(flags) == 0 {
		fmt.Fprintln(w, "clean")
		return
	}
	for _, is := range hl.Issues {
		fmt.Fprintln(w, flagStyle.Render(is.String()))
	}
}

func formatEvents(events []pgn.ActionEvent) string {
	if len(events) == 0 {
		return "-"
	}
	parts := make([]string, len(events))
	for i, ev := range events {
		switch {
		case ev.Kind == pgn.Unknown:
			parts[i] = "?" + ev.Raw
		case ev.HasTotal:
			parts[i] = fmt.Sprintf("%d:%s %d", ev.Seat, ev.Kind, ev.Total)
		default:
			parts[i] = fmt.Sprintf("%d:%s", ev.Seat, ev.Kind)
		}
	}
	return strings.Join(parts, " ")
}
