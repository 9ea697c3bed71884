// Package report renders reconstructed sessions as CSV, JSON, YAML or a
// terminal summary table.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/lox/handledger/internal/session"
)

// CSVHeader returns the column names for a table of n players. Per-player
// columns are grouped by metric: every start, then every net, and so on.
func CSVHeader(n int) []string {
	header := []string{"game_index", "winner"}
	for _, metric := range []string{"start", "net", "voluntary_pot", "preflop_raise"} {
		for i := 0; i < n; i++ {
			header = append(header, fmt.Sprintf("player%d_%s", i, metric))
		}
	}
	return append(header, "flags", "source")
}

// CSVRow renders one hand. An undefined net profit is an empty cell.
func CSVRow(h session.Hand, n int) []string {
	row := make([]string, 0, 4+4*n)
	row = append(row, strconv.Itoa(h.Ordinal), h.Winner.String())
	for i := 0; i < n; i++ {
		row = append(row, cellInt(h.StartingChips, i))
	}
	for i := 0; i < n; i++ {
		net, ok := h.NetProfit.Seat(i)
		if !ok {
			row = append(row, "")
			continue
		}
		row = append(row, strconv.Itoa(net))
	}
	for i := 0; i < n; i++ {
		row = append(row, cellInt(h.PreflopVoluntary, i))
	}
	for i := 0; i < n; i++ {
		raised := "0"
		if i < len(h.PreflopRaised) && h.PreflopRaised[i] {
			raised = "1"
		}
		row = append(row, raised)
	}
	return append(row, h.Status(), h.Source)
}

func cellInt(v []int, i int) string {
	if i >= len(v) {
		return ""
	}
	return strconv.Itoa(v[i])
}

// WriteCSV writes the header and one row per hand.
func WriteCSV(w io.Writer, seq *session.Sequence) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader(seq.TableSize)); err != nil {
		return err
	}
	for _, h := range seq.Hands {
		if err := cw.Write(CSVRow(h, seq.TableSize)); err != nil {
			return fmt.Errorf("hand %d: %w", h.Ordinal, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
