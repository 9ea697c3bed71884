// Package ledger replays parsed action streams to recover what each seat
// voluntarily put into the pot and whether it raised.
package ledger

import (
	"fmt"

	"github.com/lox/handledger/internal/pgn"
)

// StreetConfig carries the inputs of a single street replay.
type StreetConfig struct {
	Street    pgn.Street
	TableSize int
	// Obligations are forced blind amounts by seat. Only the preflop street
	// starts from them; every later street starts from zero.
	Obligations []int
	BigBlind    int
	Inference   RaiseInference
}

// StreetLedger is the running per-seat state of one street.
type StreetLedger struct {
	Street    pgn.Street `json:"street"`
	Committed []int      `json:"committed"`
	Voluntary []int      `json:"voluntary"`
	Raised    []bool     `json:"raised"`
	BetLevel  int        `json:"bet_level"`
	LastRaise int        `json:"last_raise"`
	// Applied is the sum of every positive delta credited to Voluntary.
	Applied      int     `json:"applied"`
	Unrecognized int     `json:"unrecognized"`
	Issues       []Issue `json:"issues,omitempty"`
}

func newStreetLedger(cfg StreetConfig) *StreetLedger {
	n := cfg.TableSize
	l := &StreetLedger{
		Street:    cfg.Street,
		Committed: make([]int, n),
		Voluntary: make([]int, n),
		Raised:    make([]bool, n),
		LastRaise: cfg.BigBlind,
	}
	if cfg.Street == pgn.Preflop {
		for seat := 0; seat < n && seat < len(cfg.Obligations); seat++ {
			l.Committed[seat] = cfg.Obligations[seat]
			if l.Committed[seat] > l.BetLevel {
				l.BetLevel = l.Committed[seat]
			}
		}
	}
	return l
}

// ReplayStreet applies events in order and returns the terminal ledger.
// Inconsistent input never aborts the replay; it is recorded as an Issue.
func ReplayStreet(events []pgn.ActionEvent, cfg StreetConfig) *StreetLedger {
	if cfg.Inference == nil {
		cfg.Inference = DoubleBetLevel{}
	}
	l := newStreetLedger(cfg)
	for _, ev := range events {
		l.apply(ev, cfg)
	}
	return l
}

func (l *StreetLedger) apply(ev pgn.ActionEvent, cfg StreetConfig) {
	if ev.Kind == pgn.Unknown || ev.Seat < 0 || ev.Seat >= len(l.Committed) {
		l.Unrecognized++
		raw := ev.Raw
		if raw == "" {
			raw = fmt.Sprintf("(%d,%s)", ev.Seat, ev.Kind)
		}
		l.issue(UnrecognizedAction, ev.Seat, "skipped token %s", raw)
		return
	}

	seat := ev.Seat
	switch ev.Kind {
	case pgn.Check, pgn.Fold:
		// no chips move
	case pgn.Call:
		if ev.HasTotal {
			if !l.commitTo(seat, ev.Total, "call") {
				return
			}
			if ev.Total > l.BetLevel {
				l.issue(CallAboveBetLevel, seat, "call to %d with bet level %d", ev.Total, l.BetLevel)
				l.LastRaise = ev.Total - l.BetLevel
				l.BetLevel = ev.Total
			}
			return
		}
		if delta := l.BetLevel - l.Committed[seat]; delta > 0 {
			l.credit(seat, delta)
			l.Committed[seat] = l.BetLevel
		}

	case pgn.Raise:
		l.Raised[seat] = true
		total := ev.Total
		if !ev.HasTotal {
			total = cfg.Inference.Infer(RaiseState{
				BetLevel:  l.BetLevel,
				LastRaise: l.LastRaise,
				BigBlind:  cfg.BigBlind,
			})
			l.issue(AmbiguousRaiseInference, seat,
				"raise without total, inferred %d by %s from bet level %d", total, cfg.Inference.Name(), l.BetLevel)
		} else if total <= l.BetLevel {
			l.issue(RaiseNotAboveBetLevel, seat, "raise to %d with bet level %d", total, l.BetLevel)
		}
		if !l.commitTo(seat, total, "raise") {
			return
		}
		if total > l.BetLevel {
			l.LastRaise = total - l.BetLevel
			l.BetLevel = total
		}
	}
}

// commitTo moves a seat's committed amount up to total. A total below what
// the seat already has in is clamped to a zero delta and reported.
func (l *StreetLedger) commitTo(seat, total int, verb string) bool {
	delta := total - l.Committed[seat]
	if delta < 0 {
		l.issue(NegativeDeltaClamped, seat, "%s to %d below committed %d", verb, total, l.Committed[seat])
		return false
	}
	l.credit(seat, delta)
	l.Committed[seat] = total
	return true
}

func (l *StreetLedger) credit(seat, delta int) {
	l.Voluntary[seat] += delta
	l.Applied += delta
}

func (l *StreetLedger) issue(kind IssueKind, seat int, format string, args ...any) {
	l.Issues = append(l.Issues, Issue{
		Kind:   kind,
		Street: l.Street,
		Seat:   seat,
		Detail: fmt.Sprintf(format, args...),
	})
}

// Scope selects which streets are folded into a summary.
type Scope int

const (
	ScopePreflop Scope = iota
	ScopeHand
)

func (s Scope) includes(street pgn.Street) bool {
	return s == ScopeHand || street == pgn.Preflop
}

// Totals is the per-seat summary across a scope.
type Totals struct {
	Voluntary []int  `json:"voluntary"`
	Raised    []bool `json:"raised"`
}

// Summarize sums voluntary contributions and ORs raise flags across the
// streets in scope.
func Summarize(streets []*StreetLedger, tableSize int, scope Scope) Totals {
	t := Totals{
		Voluntary: make([]int, tableSize),
		Raised:    make([]bool, tableSize),
	}
	for _, l := range streets {
		if l == nil || !scope.includes(l.Street) {
			continue
		}
		for seat := 0; seat < tableSize && seat < len(l.Voluntary); seat++ {
			t.Voluntary[seat] += l.Voluntary[seat]
			t.Raised[seat] = t.Raised[seat] || l.Raised[seat]
		}
	}
	return t
}

// Replayer replays whole hands with a fixed blind and inference policy.
type Replayer struct {
	Blinds    BlindPolicy
	Inference RaiseInference
}

// HandLedger is the replay of every betting street of one hand.
type HandLedger struct {
	SmallBlindSeat int             `json:"small_blind_seat"`
	BigBlindSeat   int             `json:"big_blind_seat"`
	Obligations    []int           `json:"obligations"`
	Streets        []*StreetLedger `json:"streets"`
	Issues         []Issue         `json:"issues,omitempty"`
}

// Summarize folds the hand's streets for the given scope.
func (h *HandLedger) Summarize(scope Scope) Totals {
	return Summarize(h.Streets, len(h.Obligations), scope)
}

// Hand replays every betting street of rec. Streets absent from the log
// replay an empty action list.
func (r Replayer) Hand(rec *pgn.HandRecord) *HandLedger {
	blinds := r.Blinds
	if blinds == nil {
		blinds = ButtonBlinds{}
	}
	n := rec.TableSize()
	small, big := blinds.Seats(n, rec.Button)
	h := &HandLedger{
		SmallBlindSeat: small,
		BigBlindSeat:   big,
		Obligations:    Obligations(blinds, n, rec.Button, rec.SmallBlind, rec.BigBlind),
	}

	for _, street := range pgn.BettingStreets {
		l := ReplayStreet(rec.Actions(street), StreetConfig{
			Street:      street,
			TableSize:   n,
			Obligations: h.Obligations,
			BigBlind:    rec.BigBlind,
			Inference:   r.Inference,
		})
		h.Streets = append(h.Streets, l)
		h.Issues = append(h.Issues, l.Issues...)
	}

	if len(rec.Pots) > 1 {
		h.Issues = append(h.Issues, Issue{
			Kind:   MultiPotSettlement,
			Street: pgn.Settle,
			Seat:   -1,
			Detail: fmt.Sprintf("%d pots settled; only the main pot winner is reported", len(rec.Pots)),
		})
	}
	return h
}
