// Package session orders parsed hands into a single timeline, aligns seats
// to logical players and derives net profit between consecutive hands.
package session

import (
	"path"
	"regexp"
	"sort"
	"strconv"

	"github.com/lox/handledger/internal/ledger"
	"github.com/lox/handledger/internal/pgn"
	"github.com/lox/handledger/internal/rotation"
	"github.com/rs/zerolog"
)

// documentPattern matches "texas.pgn" (index 0) and "texas(12).pgn" (index 12).
var documentPattern = regexp.MustCompile(`^[^()]*(?:\((\d+)\))?\.pgn$`)

// DocumentIndex extracts the ordering index from a document name. ok is
// false when the name does not follow the convention.
func DocumentIndex(name string) (idx int, ok bool) {
	m := documentPattern.FindStringSubmatch(path.Base(name))
	if m == nil {
		return 0, false
	}
	if m[1] == "" {
		return 0, true
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Entry is one parsed hand waiting to be sequenced. Ledger may be nil, in
// which case the hand is replayed with Options.Replayer.
type Entry struct {
	Record *pgn.HandRecord
	Ledger *ledger.HandLedger
}

// Options configures SequenceAndNormalize.
type Options struct {
	TableSize int
	Rotation  rotation.Policy
	Replayer  ledger.Replayer
	Logger    zerolog.Logger
}

type sortKey struct {
	unmatched bool
	index     int
	name      string
	position  int
}

func (a sortKey) less(b sortKey) bool {
	if a.unmatched != b.unmatched {
		return !a.unmatched
	}
	if a.index != b.index {
		return a.index < b.index
	}
	if a.name != b.name {
		return a.name < b.name
	}
	return a.position < b.position
}

// Order sorts entries by document index, then name, then position inside
// the document. Documents outside the naming convention sort last and are
// logged once each.
func Order(entries []Entry, logger zerolog.Logger) []Entry {
	keys := make(map[*pgn.HandRecord]sortKey, len(entries))
	warned := make(map[string]bool)
	for _, e := range entries {
		idx, ok := DocumentIndex(e.Record.Source)
		if !ok && !warned[e.Record.Source] {
			warned[e.Record.Source] = true
			logger.Warn().Str("source", e.Record.Source).Msg("document name has no index suffix, ordering it last")
		}
		keys[e.Record] = sortKey{
			unmatched: !ok,
			index:     idx,
			name:      e.Record.Source,
			position:  e.Record.Position,
		}
	}

	ordered := append([]Entry(nil), entries...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return keys[ordered[i].Record].less(keys[ordered[j].Record])
	})
	return ordered
}

// SequenceAndNormalize orders the entries, assigns contiguous ordinals,
// maps every seat-indexed value to logical players and computes net profit.
// It fails with ErrSequencing when there is nothing to sequence or a hand's
// table size differs from the configured one.
func SequenceAndNormalize(entries []Entry, opts Options) (*Sequence, error) {
	if len(entries) == 0 {
		return nil, sequencingError("no valid hand records")
	}
	n := opts.TableSize
	if n <= 0 {
		return nil, sequencingError("table size %d is not valid", n)
	}
	for _, e := range entries {
		if got := e.Record.TableSize(); got != n {
			return nil, sequencingError("%s hand %d has %d seats, session table size is %d",
				e.Record.Source, e.Record.Position, got, n)
		}
	}

	policy := opts.Rotation
	if policy == nil {
		policy = rotation.Modulo{}
	}

	ordered := Order(entries, opts.Logger)
	seq := &Sequence{
		TableSize: n,
		Rotation:  policy.Name(),
		Hands:     make([]Hand, 0, len(ordered)),
	}

	for ordinal, e := range ordered {
		e.Record.Ordinal = ordinal
		hl := e.Ledger
		if hl == nil {
			hl = opts.Replayer.Hand(e.Record)
		}
		hand, err := buildHand(e.Record, hl, policy)
		if err != nil {
			return nil, err
		}
		seq.Hands = append(seq.Hands, hand)
	}

	ApplyNetProfit(seq.Hands)
	return seq, nil
}

func buildHand(rec *pgn.HandRecord, hl *ledger.HandLedger, policy rotation.Policy) (Hand, error) {
	m, err := rotation.Normalize(rec.Ordinal, rec.TableSize(), policy)
	if err != nil {
		return Hand{}, sequencingError("%s: %v", rec.Source, err)
	}

	pre := hl.Summarize(ledger.ScopePreflop)
	all := hl.Summarize(ledger.ScopeHand)

	issues := make([]ledger.Issue, len(hl.Issues))
	for i, is := range hl.Issues {
		if logical := m.Seat(is.Seat); logical >= 0 {
			is.Seat = logical
		}
		issues[i] = is
	}

	return Hand{
		Ordinal:          rec.Ordinal,
		Source:           rec.Source,
		Position:         rec.Position,
		RotationOffset:   m.Offset,
		Winner:           newWinner(rec.Winner, m),
		SmallBlind:       rec.SmallBlind,
		BigBlind:         rec.BigBlind,
		StartingChips:    m.Ints(rec.StartingChips),
		PreflopVoluntary: m.Ints(pre.Voluntary),
		PreflopRaised:    m.Bools(pre.Raised),
		HandVoluntary:    m.Ints(all.Voluntary),
		HandRaised:       m.Bools(all.Raised),
		Flags:            ledger.Flags(issues),
		LowConfidence:    ledger.LowConfidence(issues),
		Issues:           issues,
		Record:           rec,
		Ledger:           hl,
		Mapping:          m,
	}, nil
}

// ApplyNetProfit diffs each hand's logical starting chips against the next
// hand's. The final hand is marked undefined rather than zero.
func ApplyNetProfit(hands []Hand) {
	for i := range hands {
		if i == len(hands)-1 {
			hands[i].NetProfit = NetProfit{}
			continue
		}
		cur, next := hands[i].StartingChips, hands[i+1].StartingChips
		net := make([]int, len(cur))
		for seat := range cur {
			if seat < len(next) {
				net[seat] = next[seat] - cur[seat]
			}
		}
		hands[i].NetProfit = NetProfit{Chips: net, Defined: true}
	}
}
