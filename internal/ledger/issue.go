package ledger

import (
	"fmt"
	"sort"

	"github.com/lox/handledger/internal/pgn"
)

// IssueKind classifies a non-fatal reconstruction problem.
type IssueKind int

const (
	// UnrecognizedAction: a token outside the action vocabulary was skipped.
	UnrecognizedAction IssueKind = iota + 1
	// AmbiguousRaiseInference: a RAISE had no total and one was inferred.
	AmbiguousRaiseInference
	// NegativeDeltaClamped: a total below the seat's committed amount was clamped.
	NegativeDeltaClamped
	// RaiseNotAboveBetLevel: a RAISE total did not exceed the current bet level.
	RaiseNotAboveBetLevel
	// MultiPotSettlement: the hand settled more than one pot; side pots are not settled here.
	MultiPotSettlement
	// CallAboveBetLevel: a CALL total exceeded the bet level and was treated as the new level.
	CallAboveBetLevel
)

var issueNames = map[IssueKind]string{
	UnrecognizedAction:      "unrecognized_action",
	AmbiguousRaiseInference: "ambiguous_raise_inference",
	NegativeDeltaClamped:    "negative_delta_clamped",
	RaiseNotAboveBetLevel:   "raise_not_above_bet_level",
	MultiPotSettlement:      "multi_pot_settlement",
	CallAboveBetLevel:       "call_above_bet_level",
}

func (k IssueKind) String() string {
	if name, ok := issueNames[k]; ok {
		return name
	}
	return fmt.Sprintf("issue(%d)", int(k))
}

// MarshalText renders the issue name for JSON and YAML output.
func (k IssueKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Issue is one recorded problem, attributed to a street and seat (-1 when
// no seat applies).
type Issue struct {
	Kind   IssueKind  `json:"kind" yaml:"kind"`
	Street pgn.Street `json:"street" yaml:"street"`
	Seat   int        `json:"seat" yaml:"seat"`
	Detail string     `json:"detail" yaml:"detail"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s %s seat %d: %s", i.Street, i.Kind, i.Seat, i.Detail)
}

// Flags returns the distinct issue kinds in stable order. An empty result
// means the hand is clean.
func Flags(issues []Issue) []string {
	seen := make(map[IssueKind]bool, len(issues))
	kinds := make([]int, 0, len(issues))
	for _, is := range issues {
		if !seen[is.Kind] {
			seen[is.Kind] = true
			kinds = append(kinds, int(is.Kind))
		}
	}
	sort.Ints(kinds)
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = IssueKind(k).String()
	}
	return out
}

// LowConfidence reports whether any issue makes the derived voluntary or
// raise values an inference rather than a reading of the log.
func LowConfidence(issues []Issue) bool {
	for _, is := range issues {
		if is.Kind == AmbiguousRaiseInference {
			return true
		}
	}
	return false
}
