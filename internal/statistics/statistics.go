// Package statistics aggregates reconstructed hands into per-player
// session figures: chip results, win counts and preflop tendencies.
package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/handledger/internal/session"
)

// Accumulator tracks a running sample of net chip results.
type Accumulator struct {
	Count  int
	Sum    float64
	SumSq  float64   // Sum of squares for variance calculation
	Values []float64 // Kept for median/percentile calculation
}

// Add incorporates one observation.
func (a *Accumulator) Add(v float64) {
	a.Count++
	a.Sum += v
	a.SumSq += v * v
	a.Values = append(a.Values, v)
}

// Mean returns the arithmetic mean of all observations
func (a *Accumulator) Mean() float64 {
	if a.Count == 0 {
		return 0
	}
	return a.Sum / float64(a.Count)
}

// Variance returns the sample variance
func (a *Accumulator) Variance() float64 {
	if a.Count < 2 {
		return 0
	}
	mean := a.Mean()
	v := (a.SumSq - float64(a.Count)*mean*mean) / float64(a.Count-1)
	if v < 0 {
		// rounding on near-constant samples
		return 0
	}
	return v
}

// StdDev returns the sample standard deviation
func (a *Accumulator) StdDev() float64 {
	return math.Sqrt(a.Variance())
}

// StdError returns the standard error of the mean
func (a *Accumulator) StdError() float64 {
	if a.Count == 0 {
		return 0
	}
	return a.StdDev() / math.Sqrt(float64(a.Count))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (a *Accumulator) ConfidenceInterval95() (float64, float64) {
	mean := a.Mean()
	margin := 1.96 * a.StdError()
	return mean - margin, mean + margin
}

// Median returns the median observation
func (a *Accumulator) Median() float64 {
	return a.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (a *Accumulator) Percentile(p float64) float64 {
	if len(a.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(a.Values))
	copy(sorted, a.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// PlayerStats summarises one logical player over a session.
type PlayerStats struct {
	Player int `json:"player" yaml:"player"`
	Hands  int `json:"hands" yaml:"hands"`
	Wins   int `json:"wins" yaml:"wins"`
	Ties   int `json:"ties" yaml:"ties"`

	// Net covers only hands whose net profit is defined.
	Net Accumulator `json:"-" yaml:"-"`

	VPIP int `json:"vpip_hands" yaml:"vpip_hands"`
	PFR  int `json:"pfr_hands" yaml:"pfr_hands"`

	// Hands whose reconstruction needed an inferred raise total.
	LowConfidence int `json:"low_confidence_hands" yaml:"low_confidence_hands"`
}

// TotalNet is the sum of defined net results in chips.
func (p *PlayerStats) TotalNet() int {
	return int(p.Net.Sum)
}

// VPIPPercent is the share of hands with a voluntary preflop contribution.
func (p *PlayerStats) VPIPPercent() float64 {
	return percent(p.VPIP, p.Hands)
}

// PFRPercent is the share of hands with a preflop raise.
func (p *PlayerStats) PFRPercent() float64 {
	return percent(p.PFR, p.Hands)
}

func percent(n, of int) float64 {
	if of == 0 {
		return 0
	}
	return 100 * float64(n) / float64(of)
}

// Add folds one hand into the player's figures.
func (p *PlayerStats) Add(h session.Hand) {
	seat := p.Player
	p.Hands++

	switch h.Winner.Result {
	case session.ResultSeat:
		if h.Winner.Seat == seat {
			p.Wins++
		}
	case session.ResultTie:
		for _, s := range h.Winner.CoWinners {
			if s == seat {
				p.Ties++
				break
			}
		}
	}

	if net, ok := h.NetProfit.Seat(seat); ok {
		p.Net.Add(float64(net))
	}
	if seat < len(h.PreflopVoluntary) && h.PreflopVoluntary[seat] > 0 {
		p.VPIP++
	}
	if seat < len(h.PreflopRaised) && h.PreflopRaised[seat] {
		p.PFR++
	}
	if h.LowConfidence {
		p.LowConfidence++
	}
}

// Session holds the per-player statistics of one sequence.
type Session struct {
	Hands   int           `json:"hands" yaml:"hands"`
	Clean   int           `json:"clean_hands" yaml:"clean_hands"`
	Players []PlayerStats `json:"players" yaml:"players"`
}

// FromSequence computes statistics for every logical player in seq.
func FromSequence(seq *session.Sequence) *Session {
	s := &Session{Players: make([]PlayerStats, seq.TableSize)}
	for i := range s.Players {
		s.Players[i].Player = i
	}
	for _, h := range seq.Hands {
		s.Hands++
		if h.Clean() {
			s.Clean++
		}
		for i := range s.Players {
			s.Players[i].Add(h)
		}
	}
	return s
}

// Validate checks the aggregates are internally consistent.
func (s *Session) Validate() error {
	for _, p := range s.Players {
		if p.Hands != s.Hands {
			return fmt.Errorf("player %d counted %d hands, session has %d", p.Player, p.Hands, s.Hands)
		}
		if p.Wins+p.Ties > p.Hands {
			return fmt.Errorf("player %d: wins+ties (%d) exceed hands (%d)", p.Player, p.Wins+p.Ties, p.Hands)
		}
		if p.PFR > p.Hands || p.VPIP > p.Hands {
			return fmt.Errorf("player %d: preflop counts exceed hands", p.Player)
		}
		if len(p.Net.Values) != p.Net.Count {
			return fmt.Errorf("player %d: values length (%d) does not match count (%d)",
				p.Player, len(p.Net.Values), p.Net.Count)
		}
	}
	return nil
}

// Balance returns the sum of every player's total net. A non-zero balance
// means chips entered or left the table between hands.
func (s *Session) Balance() int {
	total := 0
	for i := range s.Players {
		total += s.Players[i].TotalNet()
	}
	return total
}
