package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/lox/handledger/internal/statistics"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	gainStyle = cellStyle.Foreground(lipgloss.Color("#96CEB4"))
	lossStyle = cellStyle.Foreground(lipgloss.Color("#FF6B6B"))

	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
)

var summaryHeaders = []string{"Player", "Hands", "Wins", "Ties", "Net", "Mean", "Median", "StdDev", "95% CI", "VPIP", "PFR"}

const netColumn = 4

// SummaryTable renders per-player statistics as a bordered table.
func SummaryTable(s *statistics.Session) string {
	rows := Summaries(s)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(summaryHeaders...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == netColumn && row >= 0 && row < len(rows) {
				switch {
				case rows[row].NetTotal > 0:
					return gainStyle
				case rows[row].NetTotal < 0:
					return lossStyle
				}
			}
			return cellStyle
		})

	for _, p := range rows {
		t.Row(
			fmt.Sprintf("player%d", p.Player),
			strconv.Itoa(p.Hands),
			strconv.Itoa(p.Wins),
			strconv.Itoa(p.Ties),
			fmt.Sprintf("%+d", p.NetTotal),
			fmt.Sprintf("%.2f", p.NetMean),
			fmt.Sprintf("%.2f", p.NetMedian),
			fmt.Sprintf("%.2f", p.NetStdDev),
			fmt.Sprintf("[%.1f, %.1f]", p.NetCI95Low, p.NetCI95High),
			fmt.Sprintf("%.1f%%", p.VPIPPercent),
			fmt.Sprintf("%.1f%%", p.PFRPercent),
		)
	}
	return t.String()
}

// WriteSummary writes the table followed by a one-line session footer.
func WriteSummary(w io.Writer, s *statistics.Session) error {
	if _, err := fmt.Fprintln(w, SummaryTable(s)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d hands, %d clean, chip balance %+d\n", s.Hands, s.Clean, s.Balance())
	return err
}
