package pgn_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/lox/handledger/internal/pgn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocumentExtractsFields(t *testing.T) {
	rec, err := pgn.ParseDocument(threeSeatHand)
	require.NoError(t, err)

	assert.Equal(t, []int{500, 495, 507}, rec.StartingChips)
	assert.Equal(t, 3, rec.TableSize())
	assert.Equal(t, 1, rec.SmallBlind)
	assert.Equal(t, 2, rec.BigBlind)
	assert.Equal(t, -1, rec.Button)
	assert.Equal(t, [][]string{{"Ah", "Kd"}, {"7c", "2d"}, {"Qs", "Js"}}, rec.HoleCards)

	seat, ok := rec.Winner.Seat()
	require.True(t, ok)
	assert.Equal(t, 0, seat)
	require.Len(t, rec.Pots, 1)
	assert.Equal(t, pgn.Pot{ID: 0, Amount: 33, Rank: -1, Winners: []int{0}}, rec.Pots[0])

	require.Len(t, rec.Streets, 2)
	assert.Equal(t, pgn.Preflop, rec.Streets[0].Street)
	assert.Equal(t, pgn.Flop, rec.Streets[1].Street)
	assert.Equal(t, []string{"Qd", "3s", "Kd"}, rec.Board())
	assert.Empty(t, rec.Actions(pgn.Turn))
	assert.Nil(t, rec.Street(pgn.River))

	assert.Equal(t, []pgn.ActionEvent{
		{Seat: 0, Kind: pgn.Raise, Total: 6, HasTotal: true},
		{Seat: 1, Kind: pgn.Call},
		{Seat: 2, Kind: pgn.Fold},
	}, rec.Actions(pgn.Preflop))
}

func TestParseDocumentWinnerPolicy(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		kind  pgn.WinnerKind
		seats []int
		str   string
	}{
		{"empty bracket", "Winners:[]", pgn.WinnerNone, nil, "none"},
		{"single", "Winners:[2]", pgn.WinnerSeat, []int{2}, "2"},
		{"tie", "Winners:[0,2]", pgn.WinnerTie, []int{0, 2}, "tie"},
		{"tie with spaces", "Winners: [0, 1]", pgn.WinnerTie, []int{0, 1}, "tie"},
		{"settle form", "Winners: (Pot 0,20,-1,[1])", pgn.WinnerSeat, []int{1}, "1"},
		{"settle split", "Winners: (Pot 0,20,-1,[0,1])", pgn.WinnerTie, []int{0, 1}, "tie"},
		{"no bracket", "Winners:", pgn.WinnerNone, nil, "none"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := "Player Chips: 10,10,10\nPREFLOP\n(0,CHECK)\n" + tt.line + "\n"
			rec, err := pgn.ParseDocument(doc)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, rec.Winner.Kind)
			assert.Equal(t, tt.seats, rec.Winner.Seats)
			assert.Equal(t, tt.str, rec.Winner.String())
		})
	}
}

func TestParseDocumentTieIsNotFirstSeat(t *testing.T) {
	rec, err := pgn.ParseDocument("Player Chips: 10,10,10\nPREFLOP\n(0,CHECK)\nWinners:[0,2]\n")
	require.NoError(t, err)
	_, ok := rec.Winner.Seat()
	assert.False(t, ok)
}

func TestParseDocumentMultiplePots(t *testing.T) {
	doc := "Player Chips: 10,10,10\nPREFLOP\n(0,CHECK)\nSETTLE\nWinners: (Pot 0,30,-1,[0]);(Pot 1,6,-1,[2])\n"
	rec, err := pgn.ParseDocument(doc)
	require.NoError(t, err)
	require.Len(t, rec.Pots, 2)
	assert.Equal(t, []int{2}, rec.Pots[1].Winners)
	assert.Equal(t, []int{0}, rec.Winner.Seats)
}

func TestParseDocumentMalformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing chips", "PREFLOP\n(0,CHECK)\n"},
		{"missing streets", "Player Chips: 10,10\nWinners:[0]\n"},
		{"empty chips", "Player Chips: \nPREFLOP\n(0,CHECK)\n"},
		{"bad chips", "Player Chips: 10,x\nPREFLOP\n(0,CHECK)\n"},
		{"bad blind", "Player Chips: 10,10\nBig Blind: two\nPREFLOP\n(0,CHECK)\n"},
		{"winner out of range", "Player Chips: 10,10\nPREFLOP\n(0,CHECK)\nWinners:[5]\n"},
		{"bad winner", "Player Chips: 10,10\nPREFLOP\n(0,CHECK)\nWinners:[a]\n"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pgn.ParseDocument(tt.doc)
			require.Error(t, err)
			assert.True(t, errors.Is(err, pgn.ErrMalformedRecord), "got %v", err)

			var mr *pgn.MalformedRecordError
			require.True(t, errors.As(err, &mr))
			assert.NotEmpty(t, mr.Reason)
		})
	}
}

func TestParseDocumentIgnoresUnknownLabels(t *testing.T) {
	doc := "PREHAND\nTable Name: main\nPlayer Chips: 10,10\nHouse Rule: none\nPREFLOP\n(0,CHECK)\n"
	rec, err := pgn.ParseDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 10}, rec.StartingChips)
}

func TestParseDocumentFirstChipLineWins(t *testing.T) {
	doc := "Player Chips: 10,20\nPREFLOP\n(0,CHECK)\nPlayer Chips: 99,99\n"
	rec, err := pgn.ParseDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 20}, rec.StartingChips)
}

func TestParseDocumentButton(t *testing.T) {
	rec, err := pgn.ParseDocument("Button: 2\nPlayer Chips: 10,10,10\nPREFLOP\n(0,CHECK)\n")
	require.NoError(t, err)
	assert.Equal(t, 2, rec.Button)
}

func TestParseDocumentIdempotent(t *testing.T) {
	first, err := pgn.ParseDocument(threeSeatHand)
	require.NoError(t, err)
	second, err := pgn.ParseDocument(threeSeatHand)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParseDocumentHandlesCRLF(t *testing.T) {
	rec, err := pgn.ParseDocument(strings.ReplaceAll(foldedPreflop, "\n", "\r\n"))
	require.NoError(t, err)
	assert.Equal(t, []int{100, 100}, rec.StartingChips)
	assert.Equal(t, []pgn.ActionEvent{{Seat: 0, Kind: pgn.Fold}}, rec.Actions(pgn.Preflop))
}

func TestSplitRecords(t *testing.T) {
	chunks := pgn.SplitRecords(threeSeatHand + "\n" + foldedPreflop)
	require.Len(t, chunks, 2)
	assert.True(t, strings.HasPrefix(chunks[0], "PREHAND"))
	assert.Contains(t, chunks[1], "Player Chips: 100,100")

	single := pgn.SplitRecords("Player Chips: 1,1\nPREFLOP\n")
	assert.Len(t, single, 1)
}

func TestSplitRecordsKeepsPreambleWithFirstHand(t *testing.T) {
	chunks := pgn.SplitRecords("Hand history export v2\n" + threeSeatHand + "\n" + foldedPreflop)
	require.Len(t, chunks, 2)
	assert.True(t, strings.HasPrefix(chunks[0], "Hand history export v2\nPREHAND"))

	rec, err := pgn.ParseDocument(chunks[0])
	require.NoError(t, err)
	assert.Equal(t, []int{500, 495, 507}, rec.StartingChips)
}

func TestParseDocumentRepeatedStreetHeader(t *testing.T) {
	text := `PREHAND
Player Chips: 100,100,100

PREFLOP
1. (0,CALL)

FLOP
New Cards: [Qd 3s Kd]
1. (1,CHECK)

PREFLOP
2. (2,RAISE,9)
`
	rec, err := pgn.ParseDocument(text)
	require.NoError(t, err)
	require.Len(t, rec.Streets, 2)
	assert.Equal(t, []pgn.ActionEvent{
		{Seat: 0, Kind: pgn.Call},
		{Seat: 2, Kind: pgn.Raise, Total: 9, HasTotal: true},
	}, rec.Actions(pgn.Preflop))
	assert.Equal(t, []pgn.ActionEvent{{Seat: 1, Kind: pgn.Check}}, rec.Actions(pgn.Flop))
}
