// Package pgn reads the sectioned hand-history documents written by the
// Texas Hold'em engine (PREHAND, PREFLOP, FLOP, TURN, RIVER, SETTLE).
package pgn

import "fmt"

// Street identifies a section of a hand record.
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Settle
)

var streetNames = [...]string{"preflop", "flop", "turn", "river", "settle"}

func (s Street) String() string {
	if s < 0 || int(s) >= len(streetNames) {
		return fmt.Sprintf("street(%d)", int(s))
	}
	return streetNames[s]
}

// MarshalText renders the street name for JSON and YAML output.
func (s Street) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// BettingStreets lists the betting rounds in replay order.
var BettingStreets = []Street{Preflop, Flop, Turn, River}

// ActionKind is the vocabulary of a single action token.
type ActionKind int

const (
	Unknown ActionKind = iota
	Check
	Call
	Raise
	Fold
)

var actionNames = [...]string{"UNKNOWN", "CHECK", "CALL", "RAISE", "FOLD"}

func (k ActionKind) String() string {
	if k < 0 || int(k) >= len(actionNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return actionNames[k]
}

// MarshalText renders the action kind the way it appears in the log.
func (k ActionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

var actionKinds = map[string]ActionKind{
	"CHECK": Check,
	"CALL":  Call,
	"RAISE": Raise,
	"FOLD":  Fold,
}

// ActionEvent is one parsed action token.
type ActionEvent struct {
	Seat     int        `json:"seat"`
	Kind     ActionKind `json:"kind"`
	Total    int        `json:"total,omitempty"`
	HasTotal bool       `json:"has_total"`
	Raw      string     `json:"raw,omitempty"`
}

// WinnerKind classifies the declared result of a hand.
type WinnerKind int

const (
	// WinnerNone covers an empty winner list.
	WinnerNone WinnerKind = iota
	WinnerSeat
	WinnerTie
)

// Winner is the declared winner of the main pot. Ties keep every co-winner.
type Winner struct {
	Kind  WinnerKind
	Seats []int
}

// Seat returns the single winning seat, if there is one.
func (w Winner) Seat() (int, bool) {
	if w.Kind != WinnerSeat || len(w.Seats) != 1 {
		return -1, false
	}
	return w.Seats[0], true
}

func (w Winner) String() string {
	switch w.Kind {
	case WinnerSeat:
		return fmt.Sprint(w.Seats[0])
	case WinnerTie:
		return "tie"
	default:
		return "none"
	}
}

func winnerFromSeats(seats []int) Winner {
	switch len(seats) {
	case 0:
		return Winner{Kind: WinnerNone}
	case 1:
		return Winner{Kind: WinnerSeat, Seats: seats}
	default:
		return Winner{Kind: WinnerTie, Seats: seats}
	}
}

// Pot is one settled pot from a SETTLE section.
type Pot struct {
	ID      int   `json:"id"`
	Amount  int   `json:"amount"`
	Rank    int   `json:"rank"`
	Winners []int `json:"winners"`
}

// StreetBlock holds the raw and parsed contents of one betting street.
type StreetBlock struct {
	Street  Street
	Board   []string
	Lines   []string
	Actions []ActionEvent
}

// HandRecord is one parsed hand. Ordinal is assigned later by the sequencer.
type HandRecord struct {
	Ordinal       int
	Source        string
	Position      int
	StartingChips []int
	SmallBlind    int
	BigBlind      int
	Button        int
	HoleCards     [][]string
	Winner        Winner
	Pots          []Pot
	Streets       []StreetBlock
}

// TableSize is the number of seats in the hand.
func (h *HandRecord) TableSize() int {
	return len(h.StartingChips)
}

// Street returns the block for s, or nil when the section is absent.
func (h *HandRecord) Street(s Street) *StreetBlock {
	for i := range h.Streets {
		if h.Streets[i].Street == s {
			return &h.Streets[i]
		}
	}
	return nil
}

// Actions returns the ordered events of s; absent streets yield nil.
func (h *HandRecord) Actions(s Street) []ActionEvent {
	if b := h.Street(s); b != nil {
		return b.Actions
	}
	return nil
}

// Board returns every community card dealt, in order.
func (h *HandRecord) Board() []string {
	var board []string
	for _, b := range h.Streets {
		board = append(board, b.Board...)
	}
	return board
}
