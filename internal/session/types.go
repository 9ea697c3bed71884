package session

import (
	"encoding/json"
	"fmt"

	"github.com/lox/handledger/internal/ledger"
	"github.com/lox/handledger/internal/pgn"
	"github.com/lox/handledger/internal/rotation"
)

// NetProfit is the per-seat chip change of a hand. The last hand of a
// session has no following hand to diff against and is left undefined.
type NetProfit struct {
	Chips   []int
	Defined bool
}

// Seat returns the net result of a logical seat, if defined.
func (n NetProfit) Seat(seat int) (int, bool) {
	if !n.Defined || seat < 0 || seat >= len(n.Chips) {
		return 0, false
	}
	return n.Chips[seat], true
}

// MarshalJSON encodes an undefined result as null.
func (n NetProfit) MarshalJSON() ([]byte, error) {
	if !n.Defined {
		return []byte("null"), nil
	}
	return json.Marshal(n.Chips)
}

// MarshalYAML encodes an undefined result as null.
func (n NetProfit) MarshalYAML() (any, error) {
	if !n.Defined {
		return nil, nil
	}
	return n.Chips, nil
}

// Winner results.
const (
	ResultSeat = "seat"
	ResultTie  = "tie"
	ResultNone = "none"
)

// Winner is the declared winner in logical seat space.
type Winner struct {
	Result    string `json:"result" yaml:"result"`
	Seat      int    `json:"seat" yaml:"seat"`
	CoWinners []int  `json:"co_winners,omitempty" yaml:"co_winners,omitempty"`
	RawSeats  []int  `json:"raw_seats,omitempty" yaml:"raw_seats,omitempty"`
}

func (w Winner) String() string {
	if w.Result == ResultSeat {
		return fmt.Sprint(w.Seat)
	}
	return w.Result
}

func newWinner(w pgn.Winner, m rotation.SeatMapping) Winner {
	out := Winner{Seat: -1, RawSeats: w.Seats}
	switch w.Kind {
	case pgn.WinnerSeat:
		out.Result = ResultSeat
		out.Seat = m.Seat(w.Seats[0])
	case pgn.WinnerTie:
		out.Result = ResultTie
		out.CoWinners = m.Seats(w.Seats)
	default:
		out.Result = ResultNone
	}
	return out
}

// Hand is the reconstructed analytics record of one hand. Every per-seat
// vector is indexed by logical player.
type Hand struct {
	Ordinal          int            `json:"game_index" yaml:"game_index"`
	Source           string         `json:"source" yaml:"source"`
	Position         int            `json:"position" yaml:"position"`
	RotationOffset   int            `json:"rotation_offset" yaml:"rotation_offset"`
	Winner           Winner         `json:"winner" yaml:"winner"`
	SmallBlind       int            `json:"small_blind" yaml:"small_blind"`
	BigBlind         int            `json:"big_blind" yaml:"big_blind"`
	StartingChips    []int          `json:"starting_chips" yaml:"starting_chips"`
	NetProfit        NetProfit      `json:"net_profit" yaml:"net_profit"`
	PreflopVoluntary []int          `json:"preflop_voluntary" yaml:"preflop_voluntary"`
	PreflopRaised    []bool         `json:"preflop_raised" yaml:"preflop_raised"`
	HandVoluntary    []int          `json:"hand_voluntary" yaml:"hand_voluntary"`
	HandRaised       []bool         `json:"hand_raised" yaml:"hand_raised"`
	Flags            []string       `json:"flags" yaml:"flags"`
	LowConfidence    bool           `json:"low_confidence" yaml:"low_confidence"`
	Issues           []ledger.Issue `json:"issues,omitempty" yaml:"issues,omitempty"`

	Record  *pgn.HandRecord      `json:"-" yaml:"-"`
	Ledger  *ledger.HandLedger   `json:"-" yaml:"-"`
	Mapping rotation.SeatMapping `json:"-" yaml:"-"`
}

// Clean reports whether the hand was reconstructed without any issue.
func (h Hand) Clean() bool {
	return len(h.Flags) == 0
}

// Status is "clean" or the comma-joined flag list.
func (h Hand) Status() string {
	if h.Clean() {
		return "clean"
	}
	s := h.Flags[0]
	for _, f := range h.Flags[1:] {
		s += "," + f
	}
	return s
}

// Sequence is an ordered session of reconstructed hands.
type Sequence struct {
	TableSize int    `json:"table_size" yaml:"table_size"`
	Rotation  string `json:"rotation" yaml:"rotation"`
	Hands     []Hand `json:"hands" yaml:"hands"`
}
