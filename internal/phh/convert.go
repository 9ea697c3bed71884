package phh

import (
	"errors"
	"fmt"

	"github.com/lox/handledger/internal/pgn"
	"github.com/lox/handledger/internal/session"
)

// Variant is the PHH code for no-limit Texas hold'em.
const Variant = "NT"

// ErrNoRecord is returned when a hand carries no source record to export.
var ErrNoRecord = errors.New("phh: hand has no source record")

// FromHand rebuilds a PHH hand history from a reconstructed hand. Players
// are listed in position order starting at the small blind, so pN follows
// PHH's acting order. Player names carry the logical identity so the same
// player keeps one name across rotated hands.
func FromHand(h session.Hand) (*HandHistory, error) {
	rec := h.Record
	if rec == nil || h.Ledger == nil {
		return nil, ErrNoRecord
	}
	n := rec.TableSize()
	order := positionOrder(h.Ledger.SmallBlindSeat, n)
	seatToPos := make([]int, n)
	for pos, raw := range order {
		seatToPos[raw] = pos
	}

	hist := &HandHistory{
		Variant:           Variant,
		Table:             rec.Source,
		SeatCount:         n,
		Seats:             make([]int, n),
		Antes:             make([]int, n),
		BlindsOrStraddles: make([]int, n),
		MinBet:            rec.BigBlind,
		StartingStacks:    make([]int, n),
		Actions:           make([]string, 0, n+16),
		Players:           make([]string, n),
		HandID:            fmt.Sprintf("hand-%05d", h.Ordinal),
	}

	for pos, raw := range order {
		hist.Seats[pos] = raw + 1
		hist.StartingStacks[pos] = rec.StartingChips[raw]
		if raw < len(h.Ledger.Obligations) {
			hist.BlindsOrStraddles[pos] = h.Ledger.Obligations[raw]
		}
		hist.Players[pos] = fmt.Sprintf("player%d", h.Mapping.Seat(raw))
		hist.Actions = append(hist.Actions, dealAction(pos, raw, rec.HoleCards))
	}

	for _, street := range pgn.BettingStreets {
		block := rec.Street(street)
		if block == nil {
			continue
		}
		if street != pgn.Preflop && len(block.Board) > 0 {
			hist.Actions = append(hist.Actions, "d db "+NormalizeCards(block.Board))
		}
		for _, ev := range block.Actions {
			hist.Actions = append(hist.Actions, FormatAction(ev, seatToPos))
		}
	}

	if h.NetProfit.Defined {
		hist.FinishingStacks = make([]int, n)
		for pos, raw := range order {
			net, _ := h.NetProfit.Seat(h.Mapping.Seat(raw))
			hist.FinishingStacks[pos] = rec.StartingChips[raw] + net
		}
	}
	return hist, nil
}

// positionOrder lists raw seats clockwise from the small blind. A hand
// without a small blind seat starts at seat 0.
func positionOrder(smallBlind, n int) []int {
	order := make([]int, 0, n)
	start := smallBlind
	if start < 0 || start >= n {
		start = 0
	}
	for i := 0; i < n; i++ {
		order = append(order, (start+i)%n)
	}
	return order
}

// FromSequence converts every hand of a session in order.
func FromSequence(seq *session.Sequence) ([]*HandHistory, error) {
	out := make([]*HandHistory, 0, len(seq.Hands))
	for _, h := range seq.Hands {
		hist, err := FromHand(h)
		if err != nil {
			return nil, fmt.Errorf("hand %d: %w", h.Ordinal, err)
		}
		out = append(out, hist)
	}
	return out, nil
}

func dealAction(pos, raw int, holeCards [][]string) string {
	cards := "????"
	if raw < len(holeCards) && len(holeCards[raw]) >= 2 {
		cards = NormalizeCards(holeCards[raw][:2])
	}
	return fmt.Sprintf("d dh p%d %s", pos+1, cards)
}
