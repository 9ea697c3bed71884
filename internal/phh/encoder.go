package phh

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/lox/handledger/internal/pgn"
)

// Encode writes the hand history to the provided writer in PHH TOML format.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return fmt.Errorf("phh: hand history is nil")
	}

	enc := toml.NewEncoder(w)
	// Use tabs for arrays to match human expectations
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// WriteSections writes hands as a sectioned PHH file, one numbered table
// per hand starting at [1].
func WriteSections(w io.Writer, hands []*HandHistory) error {
	for i, hand := range hands {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "[%d]\n", i+1); err != nil {
			return err
		}
		if err := Encode(w, hand); err != nil {
			return fmt.Errorf("phh: section %d: %w", i+1, err)
		}
	}
	return nil
}

// FormatAction converts a parsed log action to a PHH action string.
// seatToPos maps raw seats to PHH positions; seats it does not cover keep
// their raw index. Actions PHH cannot express exactly (unknown tokens,
// raises without a total) are kept as comments so the export never invents
// amounts.
func FormatAction(ev pgn.ActionEvent, seatToPos []int) string {
	pos := ev.Seat
	if ev.Seat >= 0 && ev.Seat < len(seatToPos) {
		pos = seatToPos[ev.Seat]
	}
	player := fmt.Sprintf("p%d", pos+1)
	switch ev.Kind {
	case pgn.Fold:
		return player + " f"
	case pgn.Check, pgn.Call:
		return player + " cc"
	case pgn.Raise:
		if !ev.HasTotal {
			return fmt.Sprintf("# %s cbr ?", player)
		}
		return fmt.Sprintf("%s cbr %d", player, ev.Total)
	default:
		return "# " + ev.Raw
	}
}
