package phh_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/lox/handledger/internal/ledger"
	"github.com/lox/handledger/internal/pgn"
	"github.com/lox/handledger/internal/phh"
	"github.com/lox/handledger/internal/rotation"
	"github.com/lox/handledger/internal/session"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const firstHand = `PREHAND
Big Blind: 2
Small Blind: 1
Player Chips: 500,495,507
Player Cards: [Ah Kd], [7c 2d], [Qs Js]

PREFLOP
New Cards: []
1. (0,RAISE,6);(1,CALL);(2,FOLD)

FLOP
New Cards: [Qd 3s Kd]
1. (1,CHECK);(0,RAISE,10);(1,CALL)

SETTLE
Winners: (Pot 0,33,-1,[0])
`

const secondHand = `PREHAND
Big Blind: 2
Small Blind: 1
Player Chips: 506,490,506

PREFLOP
1. (0,FOLD);(1,RAISE);(2,SHOVE)

SETTLE
Winners: [1]
`

func buildSequence(t *testing.T) *session.Sequence {
	t.Helper()
	var entries []session.Entry
	for i, doc := range []struct{ name, text string }{
		{"texas.pgn", firstHand},
		{"texas(1).pgn", secondHand},
	} {
		rec, err := pgn.ParseDocument(doc.text)
		require.NoError(t, err, "document %d", i)
		rec.Source = doc.name
		entries = append(entries, session.Entry{Record: rec})
	}
	seq, err := session.SequenceAndNormalize(entries, session.Options{
		TableSize: 3,
		Rotation:  rotation.Modulo{},
		Replayer:  ledger.Replayer{Blinds: ledger.ButtonBlinds{}},
		Logger:    zerolog.Nop(),
	})
	require.NoError(t, err)
	return seq
}

func TestNormalizeCard(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10h", "Th"},
		{"10H", "Th"},
		{"ah", "Ah"},
		{"As", "As"},
		{"td", "Td"},
		{"??", "??"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := phh.NormalizeCard(tt.in); got != tt.want {
			t.Fatalf("NormalizeCard(%q)=%q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatAction(t *testing.T) {
	tests := []struct {
		name string
		ev   pgn.ActionEvent
		want string
	}{
		{"fold", pgn.ActionEvent{Seat: 0, Kind: pgn.Fold}, "p1 f"},
		{"check", pgn.ActionEvent{Seat: 1, Kind: pgn.Check}, "p2 cc"},
		{"call", pgn.ActionEvent{Seat: 3, Kind: pgn.Call, Total: 50, HasTotal: true}, "p4 cc"},
		{"raise", pgn.ActionEvent{Seat: 0, Kind: pgn.Raise, Total: 120, HasTotal: true}, "p1 cbr 120"},
		{"raise without total", pgn.ActionEvent{Seat: 2, Kind: pgn.Raise}, "# p3 cbr ?"},
		{"unknown", pgn.ActionEvent{Seat: -1, Kind: pgn.Unknown, Raw: "(2,SHOVE)"}, "# (2,SHOVE)"},
	}

	for _, tt := range tests {
		if got := phh.FormatAction(tt.ev, nil); got != tt.want {
			t.Fatalf("%s: got %q want %q", tt.name, got, tt.want)
		}
	}
}

func TestFormatActionMapsSeatToPosition(t *testing.T) {
	seatToPos := []int{2, 0, 1}
	assert.Equal(t, "p3 cbr 6", phh.FormatAction(pgn.ActionEvent{Seat: 0, Kind: pgn.Raise, Total: 6, HasTotal: true}, seatToPos))
	assert.Equal(t, "p1 cc", phh.FormatAction(pgn.ActionEvent{Seat: 1, Kind: pgn.Call}, seatToPos))
	assert.Equal(t, "p2 f", phh.FormatAction(pgn.ActionEvent{Seat: 2, Kind: pgn.Fold}, seatToPos))
}

func TestFromHand(t *testing.T) {
	seq := buildSequence(t)

	first, err := phh.FromHand(seq.Hands[0])
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, phh.Encode(&buf, first))
	got := buf.String()

	want := "" +
		"variant = \"NT\"\n" +
		"table = \"texas.pgn\"\n" +
		"seat_count = 3\n" +
		"seats = [2, 3, 1]\n" +
		"antes = [0, 0, 0]\n" +
		"blinds_or_straddles = [1, 2, 0]\n" +
		"min_bet = 2\n" +
		"starting_stacks = [495, 507, 500]\n" +
		"finishing_stacks = [506, 490, 506]\n" +
		"actions = [\"d dh p1 7c2d\", \"d dh p2 QsJs\", \"d dh p3 AhKd\", \"p3 cbr 6\", \"p1 cc\", \"p2 f\", \"d db Qd3sKd\", \"p1 cc\", \"p3 cbr 10\", \"p1 cc\"]\n" +
		"players = [\"player1\", \"player2\", \"player0\"]\n" +
		"hand = \"hand-00000\"\n"

	if got != want {
		t.Fatalf("Encode output mismatch.\nGot:\n%s\nWant:\n%s", got, want)
	}
}

func TestFromHandTerminalAndRotated(t *testing.T) {
	seq := buildSequence(t)

	second, err := phh.FromHand(seq.Hands[1])
	require.NoError(t, err)

	assert.Nil(t, second.FinishingStacks)
	assert.Equal(t, []int{2, 3, 1}, second.Seats)
	assert.Equal(t, []int{1, 2, 0}, second.BlindsOrStraddles)
	assert.Equal(t, []string{"player2", "player0", "player1"}, second.Players)
	assert.Equal(t, []string{
		"d dh p1 ????",
		"d dh p2 ????",
		"d dh p3 ????",
		"p3 f",
		"# p1 cbr ?",
		"# (2,SHOVE)",
	}, second.Actions)
}

func TestFromHandWithoutRecord(t *testing.T) {
	_, err := phh.FromHand(session.Hand{})
	assert.ErrorIs(t, err, phh.ErrNoRecord)
}

func TestWriteSections(t *testing.T) {
	hands, err := phh.FromSequence(buildSequence(t))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, phh.WriteSections(&buf, hands))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "[1]\n"))
	assert.Contains(t, out, "\n[2]\n")

	sections := make(map[string]phh.HandHistory)
	_, err = toml.Decode(out, &sections)
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, "hand-00001", sections["2"].HandID)
	assert.Equal(t, []int{495, 507, 500}, sections["1"].StartingStacks)
}

func TestEncodeNil(t *testing.T) {
	assert.Error(t, phh.Encode(&bytes.Buffer{}, nil))
}
