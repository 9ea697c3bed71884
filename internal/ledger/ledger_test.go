package ledger_test

import (
	"testing"

	"github.com/lox/handledger/internal/ledger"
	"github.com/lox/handledger/internal/pgn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func preflopConfig(obligations []int, bigBlind int) ledger.StreetConfig {
	return ledger.StreetConfig{
		Street:      pgn.Preflop,
		TableSize:   len(obligations),
		Obligations: obligations,
		BigBlind:    bigBlind,
		Inference:   ledger.DoubleBetLevel{},
	}
}

func TestReplayStreetRaiseCallFold(t *testing.T) {
	events := pgn.ParseActions("(0,RAISE,6);(1,CALL);(2,FOLD)", 3)
	l := ledger.ReplayStreet(events, preflopConfig([]int{0, 1, 2}, 2))

	assert.Equal(t, []int{6, 5, 0}, l.Voluntary)
	assert.Equal(t, []bool{true, false, false}, l.Raised)
	assert.Equal(t, []int{6, 6, 2}, l.Committed)
	assert.Equal(t, 6, l.BetLevel)
	assert.Equal(t, 11, l.Applied)
	assert.Empty(t, l.Issues)
}

func TestReplayStreetBlindsAreNotVoluntary(t *testing.T) {
	events := pgn.ParseActions("(0,FOLD);(1,CALL);(2,CHECK)", 3)
	l := ledger.ReplayStreet(events, preflopConfig([]int{0, 1, 2}, 2))

	assert.Equal(t, []int{0, 1, 0}, l.Voluntary)
	assert.Equal(t, []int{0, 2, 2}, l.Committed)
}

func TestReplayStreetLaterStreetsIgnoreBlinds(t *testing.T) {
	cfg := preflopConfig([]int{0, 1, 2}, 2)
	cfg.Street = pgn.Flop
	l := ledger.ReplayStreet(pgn.ParseActions("(1,RAISE,4);(2,CALL);(0,CALL,4)", 3), cfg)

	assert.Equal(t, []int{4, 4, 4}, l.Voluntary)
	assert.Equal(t, []bool{false, true, false}, l.Raised)
	assert.Equal(t, 4, l.BetLevel)
}

func TestReplayStreetCallWithTotal(t *testing.T) {
	l := ledger.ReplayStreet(pgn.ParseActions("(0,RAISE,8);(1,CALL,8)", 3), preflopConfig([]int{0, 1, 2}, 2))
	assert.Equal(t, []int{8, 7, 0}, l.Voluntary)
}

func TestReplayStreetCallAboveBetLevelRaisesLevel(t *testing.T) {
	l := ledger.ReplayStreet(pgn.ParseActions("(0,RAISE,6);(1,CALL,8);(2,CALL)", 3), preflopConfig([]int{0, 1, 2}, 2))

	assert.Equal(t, 8, l.BetLevel)
	assert.Equal(t, []int{6, 8, 8}, l.Committed)
	assert.Equal(t, []int{6, 7, 6}, l.Voluntary)
	assert.Equal(t, []bool{true, false, false}, l.Raised)
	require.Len(t, l.Issues, 1)
	assert.Equal(t, ledger.CallAboveBetLevel, l.Issues[0].Kind)
	assert.Equal(t, 1, l.Issues[0].Seat)
	assert.Equal(t, []string{"call_above_bet_level"}, ledger.Flags(l.Issues))
}

func TestReplayStreetCallWithNothingToCall(t *testing.T) {
	l := ledger.ReplayStreet(pgn.ParseActions("(2,CALL)", 3), preflopConfig([]int{0, 1, 2}, 2))
	assert.Equal(t, []int{0, 0, 0}, l.Voluntary)
	assert.Empty(t, l.Issues)
}

func TestReplayStreetNegativeDeltaClamped(t *testing.T) {
	l := ledger.ReplayStreet(pgn.ParseActions("(0,RAISE,10);(0,CALL,4)", 3), preflopConfig([]int{0, 1, 2}, 2))

	assert.Equal(t, []int{10, 0, 0}, l.Voluntary)
	assert.Equal(t, 10, l.Committed[0])
	require.Len(t, l.Issues, 1)
	assert.Equal(t, ledger.NegativeDeltaClamped, l.Issues[0].Kind)
	assert.Equal(t, 0, l.Issues[0].Seat)
}

func TestReplayStreetRaiseNotAboveBetLevel(t *testing.T) {
	l := ledger.ReplayStreet(pgn.ParseActions("(0,RAISE,6);(1,RAISE,6)", 3), preflopConfig([]int{0, 1, 2}, 2))

	assert.Equal(t, []int{6, 5, 0}, l.Voluntary)
	assert.Equal(t, []bool{true, true, false}, l.Raised)
	require.Len(t, l.Issues, 1)
	assert.Equal(t, ledger.RaiseNotAboveBetLevel, l.Issues[0].Kind)
}

func TestReplayStreetUnrecognizedAction(t *testing.T) {
	l := ledger.ReplayStreet(pgn.ParseActions("(0,ALL_IN,50);(1,CALL)", 3), preflopConfig([]int{0, 1, 2}, 2))

	assert.Equal(t, 1, l.Unrecognized)
	assert.Equal(t, []int{0, 1, 0}, l.Voluntary)
	require.Len(t, l.Issues, 1)
	assert.Equal(t, ledger.UnrecognizedAction, l.Issues[0].Kind)
	assert.Contains(t, l.Issues[0].Detail, "(0,ALL_IN,50)")
}

func TestReplayStreetOutOfRangeSeat(t *testing.T) {
	events := []pgn.ActionEvent{{Seat: 7, Kind: pgn.Call}}
	l := ledger.ReplayStreet(events, preflopConfig([]int{0, 1, 2}, 2))
	assert.Equal(t, 1, l.Unrecognized)
	assert.Equal(t, 0, l.Applied)
}

func TestReplayStreetAmbiguousRaise(t *testing.T) {
	tests := []struct {
		name      string
		inference ledger.RaiseInference
		actions   string
		want      []int
		betLevel  int
	}{
		{"double from big blind", ledger.DoubleBetLevel{}, "(0,RAISE)", []int{4, 0, 0}, 4},
		{"double after raise", ledger.DoubleBetLevel{}, "(0,RAISE,6);(1,RAISE)", []int{6, 11, 0}, 12},
		{"min raise from big blind", ledger.MinRaise{}, "(0,RAISE)", []int{4, 0, 0}, 4},
		{"min raise after raise", ledger.MinRaise{}, "(0,RAISE,6);(1,RAISE)", []int{6, 9, 0}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := preflopConfig([]int{0, 1, 2}, 2)
			cfg.Inference = tt.inference
			events := pgn.ParseActions(tt.actions, 3)

			first := ledger.ReplayStreet(events, cfg)
			second := ledger.ReplayStreet(events, cfg)
			assert.Equal(t, first, second, "inference must be deterministic")

			assert.Equal(t, tt.want, first.Voluntary)
			assert.Equal(t, tt.betLevel, first.BetLevel)
			require.NotEmpty(t, first.Issues)
			assert.Equal(t, ledger.AmbiguousRaiseInference, first.Issues[len(first.Issues)-1].Kind)
			assert.True(t, ledger.LowConfidence(first.Issues))
		})
	}
}

func TestReplayStreetEmpty(t *testing.T) {
	l := ledger.ReplayStreet(nil, preflopConfig([]int{1, 2}, 2))
	assert.Equal(t, []int{0, 0}, l.Voluntary)
	assert.Equal(t, 2, l.BetLevel)
}

func TestReplayStreetDefaultsInference(t *testing.T) {
	cfg := preflopConfig([]int{0, 1, 2}, 2)
	cfg.Inference = nil
	l := ledger.ReplayStreet(pgn.ParseActions("(0,RAISE)", 3), cfg)
	assert.Equal(t, []int{4, 0, 0}, l.Voluntary)
}

func TestReplayerHand(t *testing.T) {
	rec, err := pgn.ParseDocument(`PREHAND
Big Blind: 2
Small Blind: 1
Player Chips: 500,495,507

PREFLOP
1. (0,RAISE,6);(1,CALL);(2,FOLD)

FLOP
1. (1,CHECK);(0,RAISE,10);(1,CALL)

SETTLE
Winners: (Pot 0,20,-1,[0]);(Pot 1,6,-1,[1])
`)
	require.NoError(t, err)

	h := ledger.Replayer{Blinds: ledger.ButtonBlinds{}, Inference: ledger.DoubleBetLevel{}}.Hand(rec)
	assert.Equal(t, 1, h.SmallBlindSeat)
	assert.Equal(t, 2, h.BigBlindSeat)
	assert.Equal(t, []int{0, 1, 2}, h.Obligations)
	require.Len(t, h.Streets, 4)

	pre := h.Summarize(ledger.ScopePreflop)
	assert.Equal(t, []int{6, 5, 0}, pre.Voluntary)
	assert.Equal(t, []bool{true, false, false}, pre.Raised)

	all := h.Summarize(ledger.ScopeHand)
	assert.Equal(t, []int{16, 15, 0}, all.Voluntary)
	assert.Equal(t, []bool{true, false, false}, all.Raised)

	assert.Equal(t, []string{"multi_pot_settlement"}, ledger.Flags(h.Issues))
}

func TestReplayerFixedBlindsHeadsUp(t *testing.T) {
	rec, err := pgn.ParseDocument("Big Blind: 2\nSmall Blind: 1\nPlayer Chips: 100,100\nPREFLOP\n(0,CALL);(1,CHECK)\n")
	require.NoError(t, err)

	h := ledger.Replayer{Blinds: ledger.FixedBlinds{Small: 1, Big: 2}}.Hand(rec)
	assert.Equal(t, []int{0, 1}, h.Obligations)
	assert.Equal(t, []int{1, 0}, h.Summarize(ledger.ScopePreflop).Voluntary)

	h = ledger.Replayer{Blinds: ledger.ButtonBlinds{}}.Hand(rec)
	assert.Equal(t, []int{1, 2}, h.Obligations)
	assert.Equal(t, []int{1, 0}, h.Summarize(ledger.ScopePreflop).Voluntary)
}

func TestFlags(t *testing.T) {
	issues := []ledger.Issue{
		{Kind: ledger.NegativeDeltaClamped},
		{Kind: ledger.UnrecognizedAction},
		{Kind: ledger.NegativeDeltaClamped},
	}
	assert.Equal(t, []string{"unrecognized_action", "negative_delta_clamped"}, ledger.Flags(issues))
	assert.Empty(t, ledger.Flags(nil))
	assert.False(t, ledger.LowConfidence(issues))
}
