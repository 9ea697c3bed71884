package ledger_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/lox/handledger/internal/ledger"
	"github.com/lox/handledger/internal/pgn"
)

// decodeEvents turns arbitrary integers into a plausible action stream for a
// three-seat table, including unknown tokens and missing totals.
func decodeEvents(codes []int) []pgn.ActionEvent {
	events := make([]pgn.ActionEvent, 0, len(codes))
	for _, c := range codes {
		ev := pgn.ActionEvent{
			Seat: c % 3,
			Kind: pgn.ActionKind((c / 3) % 5),
		}
		if (c/15)%2 == 0 && (ev.Kind == pgn.Call || ev.Kind == pgn.Raise) {
			ev.Total = (c / 30) % 40
			ev.HasTotal = true
		}
		events = append(events, ev)
	}
	return events
}

func TestReplayStreetConservesChips(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("voluntary sums to applied deltas and never goes negative", prop.ForAll(
		func(codes []int, street int) bool {
			cfg := ledger.StreetConfig{
				Street:      pgn.BettingStreets[street],
				TableSize:   3,
				Obligations: []int{0, 1, 2},
				BigBlind:    2,
				Inference:   ledger.MinRaise{},
			}
			l := ledger.ReplayStreet(decodeEvents(codes), cfg)

			sum := 0
			for seat, v := range l.Voluntary {
				if v < 0 {
					return false
				}
				start := 0
				if cfg.Street == pgn.Preflop {
					start = cfg.Obligations[seat]
				}
				if l.Committed[seat] != start+v {
					return false
				}
				sum += v
			}
			return sum == l.Applied
		},
		gen.SliceOf(gen.IntRange(0, 5000)),
		gen.IntRange(0, 3),
	))

	properties.Property("a seat that only posts a blind contributes nothing", prop.ForAll(
		func(codes []int) bool {
			events := decodeEvents(codes)
			filtered := events[:0]
			for _, ev := range events {
				if ev.Seat != 2 {
					filtered = append(filtered, ev)
				}
			}
			l := ledger.ReplayStreet(filtered, ledger.StreetConfig{
				Street:      pgn.Preflop,
				TableSize:   3,
				Obligations: []int{0, 1, 2},
				BigBlind:    2,
			})
			return l.Voluntary[2] == 0 && !l.Raised[2]
		},
		gen.SliceOf(gen.IntRange(0, 5000)),
	))

	properties.TestingRun(t)
}
