package ledger

import "fmt"

// BlindPolicy decides which seats post the small and big blind. button is
// the dealer seat recorded in the hand, or -1 when the log has none.
// Seats outside the table mean that blind is not posted.
type BlindPolicy interface {
	Seats(tableSize, button int) (small, big int)
}

// ButtonBlinds derives blind seats from the dealer button: heads-up the
// button posts the small blind, otherwise the two seats after the button
// post. Button is used when the hand does not record one.
type ButtonBlinds struct {
	Button int
}

func (p ButtonBlinds) Seats(tableSize, button int) (int, int) {
	if tableSize <= 0 {
		return -1, -1
	}
	if button < 0 {
		button = p.Button
	}
	button = normalizeSeat(button, tableSize)
	if tableSize == 1 {
		return button, -1
	}
	if tableSize == 2 {
		return button, (button + 1) % tableSize
	}
	return (button + 1) % tableSize, (button + 2) % tableSize
}

// FixedBlinds pins the blinds to fixed seats regardless of table size,
// e.g. seat 1 small and seat 2 big.
type FixedBlinds struct {
	Small int
	Big   int
}

func (p FixedBlinds) Seats(tableSize, _ int) (int, int) {
	return p.Small, p.Big
}

func normalizeSeat(seat, tableSize int) int {
	seat %= tableSize
	if seat < 0 {
		seat += tableSize
	}
	return seat
}

// Obligations returns the forced amount each seat has committed before the
// first preflop action.
func Obligations(p BlindPolicy, tableSize, button, smallBlind, bigBlind int) []int {
	out := make([]int, tableSize)
	small, big := p.Seats(tableSize, button)
	if small >= 0 && small < tableSize {
		out[small] = smallBlind
	}
	if big >= 0 && big < tableSize {
		out[big] = bigBlind
	}
	return out
}

// RaiseState is what an inference policy may look at.
type RaiseState struct {
	BetLevel  int
	LastRaise int
	BigBlind  int
}

// RaiseInference picks a target total for a RAISE that declared none.
// Implementations must be deterministic.
type RaiseInference interface {
	Infer(st RaiseState) int
	Name() string
}

// DoubleBetLevel doubles the current bet level, or the big blind when
// nothing has been bet yet.
type DoubleBetLevel struct{}

func (DoubleBetLevel) Infer(st RaiseState) int {
	if st.BetLevel > 0 {
		return st.BetLevel * 2
	}
	return st.BigBlind * 2
}

func (DoubleBetLevel) Name() string { return "double" }

// MinRaise uses the bet level plus the last raise increment, never less
// than one big blind.
type MinRaise struct{}

func (MinRaise) Infer(st RaiseState) int {
	inc := st.LastRaise
	if inc < st.BigBlind {
		inc = st.BigBlind
	}
	return st.BetLevel + inc
}

func (MinRaise) Name() string { return "min-raise" }

// InferenceByName resolves a configured policy name.
func InferenceByName(name string) (RaiseInference, error) {
	switch name {
	case "", "double":
		return DoubleBetLevel{}, nil
	case "min-raise":
		return MinRaise{}, nil
	default:
		return nil, fmt.Errorf("ledger: unknown raise inference %q", name)
	}
}
