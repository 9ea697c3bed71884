// Package rotation maps a hand's raw seat indices onto stable logical
// player identities when the engine rotates seats between hands.
package rotation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Direction says which way raw seats move onto logical seats.
type Direction int

const (
	// Right maps raw seat r to logical (r + offset) mod n.
	Right Direction = iota
	// Left maps raw seat r to logical (r - offset) mod n.
	Left
)

// Policy computes the rotation offset of a hand.
type Policy interface {
	Offset(ordinal, tableSize int) int
	Direction() Direction
	Name() string
}

// Modulo rotates by one seat per hand: offset = ordinal mod table size.
type Modulo struct{}

func (Modulo) Offset(ordinal, tableSize int) int { return ordinal % tableSize }
func (Modulo) Direction() Direction { return Right }
func (Modulo) Name() string { return "modulo" }

// ModuloLeft is Modulo applied in the opposite direction.
type ModuloLeft struct{}

func (ModuloLeft) Offset(ordinal, tableSize int) int { return ordinal % tableSize }
func (ModuloLeft) Direction() Direction { return Left }
func (ModuloLeft) Name() string { return "modulo-left" }

// Identity keeps raw seats as logical seats.
type Identity struct{}

func (Identity) Offset(int, int) int { return 0 }
func (Identity) Direction() Direction { return Right }
func (Identity) Name() string { return "none" }

// Fixed applies the same offset to every hand.
type Fixed struct {
	N int
}

func (f Fixed) Offset(_, _ int) int { return f.N }
func (Fixed) Direction() Direction { return Right }
func (f Fixed) Name() string { return fmt.Sprintf("fixed-%d", f.N) }

// ByName resolves a configured policy name: modulo, modulo-left, none or
// fixed-N.
func ByName(name string) (Policy, error) {
	switch name {
	case "", "modulo":
		return Modulo{}, nil
	case "modulo-left":
		return ModuloLeft{}, nil
	case "none", "identity":
		return Identity{}, nil
	}
	if rest, ok := strings.CutPrefix(name, "fixed-"); ok {
		n, err := strconv.Atoi(rest)
		if err == nil && n >= 0 {
			return Fixed{N: n}, nil
		}
	}
	return nil, fmt.Errorf("rotation: unknown policy %q", name)
}

// SeatMapping relates raw seats to logical seats for one hand.
type SeatMapping struct {
	Offset    int   `json:"offset"`
	ToLogical []int `json:"to_logical"`
	ToRaw     []int `json:"to_raw"`
}

// ErrTableSize is returned for a non-positive table size.
var ErrTableSize = errors.New("rotation: table size must be positive")

// Normalize computes the mapping for a hand. It depends only on its
// arguments and always yields a bijection over 0..tableSize-1.
func Normalize(ordinal, tableSize int, p Policy) (SeatMapping, error) {
	if tableSize <= 0 {
		return SeatMapping{}, ErrTableSize
	}
	if p == nil {
		p = Modulo{}
	}
	off := mod(p.Offset(ordinal, tableSize), tableSize)
	if p.Direction() == Left {
		off = mod(-off, tableSize)
	}

	m := SeatMapping{
		Offset:    off,
		ToLogical: make([]int, tableSize),
		ToRaw:     make([]int, tableSize),
	}
	for raw := 0; raw < tableSize; raw++ {
		logical := (raw + off) % tableSize
		m.ToLogical[raw] = logical
		m.ToRaw[logical] = raw
	}
	return m, nil
}

// Seat maps a raw seat to its logical seat, or -1 when out of range.
func (m SeatMapping) Seat(raw int) int {
	if raw < 0 || raw >= len(m.ToLogical) {
		return -1
	}
	return m.ToLogical[raw]
}

// Seats maps a list of raw seats, dropping any out of range.
func (m SeatMapping) Seats(raw []int) []int {
	if raw == nil {
		return nil
	}
	out := make([]int, 0, len(raw))
	for _, s := range raw {
		if l := m.Seat(s); l >= 0 {
			out = append(out, l)
		}
	}
	return out
}

// Ints reorders a raw-seat vector into logical order.
func (m SeatMapping) Ints(raw []int) []int {
	return remap(m, raw)
}

// Bools reorders a raw-seat vector into logical order.
func (m SeatMapping) Bools(raw []bool) []bool {
	return remap(m, raw)
}

func remap[T any](m SeatMapping, raw []T) []T {
	out := make([]T, len(m.ToRaw))
	for logical, r := range m.ToRaw {
		if r < len(raw) {
			out[logical] = raw[r]
		}
	}
	return out
}

func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}
