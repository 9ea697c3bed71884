package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/lox/handledger/internal/analyzer"
	"github.com/lox/handledger/internal/session"
	"github.com/lox/handledger/internal/statistics"
	"gopkg.in/yaml.v3"
)

// PlayerSummary is the printable view of statistics.PlayerStats.
type PlayerSummary struct {
	Player        int     `json:"player" yaml:"player"`
	Hands         int     `json:"hands" yaml:"hands"`
	Wins          int     `json:"wins" yaml:"wins"`
	Ties          int     `json:"ties" yaml:"ties"`
	NetTotal      int     `json:"net_total" yaml:"net_total"`
	NetMean       float64 `json:"net_mean" yaml:"net_mean"`
	NetMedian     float64 `json:"net_median" yaml:"net_median"`
	NetStdDev     float64 `json:"net_stddev" yaml:"net_stddev"`
	NetCI95Low    float64 `json:"net_ci95_low" yaml:"net_ci95_low"`
	NetCI95High   float64 `json:"net_ci95_high" yaml:"net_ci95_high"`
	VPIPPercent   float64 `json:"vpip_pct" yaml:"vpip_pct"`
	PFRPercent    float64 `json:"pfr_pct" yaml:"pfr_pct"`
	LowConfidence int     `json:"low_confidence_hands" yaml:"low_confidence_hands"`
}

// Summaries flattens session statistics for output.
func Summaries(s *statistics.Session) []PlayerSummary {
	out := make([]PlayerSummary, len(s.Players))
	for i := range s.Players {
		p := &s.Players[i]
		lo, hi := p.Net.ConfidenceInterval95()
		out[i] = PlayerSummary{
			Player:        p.Player,
			Hands:         p.Hands,
			Wins:          p.Wins,
			Ties:          p.Ties,
			NetTotal:      p.TotalNet(),
			NetMean:       p.Net.Mean(),
			NetMedian:     p.Net.Median(),
			NetStdDev:     p.Net.StdDev(),
			NetCI95Low:    lo,
			NetCI95High:   hi,
			VPIPPercent:   p.VPIPPercent(),
			PFRPercent:    p.PFRPercent(),
			LowConfidence: p.LowConfidence,
		}
	}
	return out
}

// Envelope is the structured document written for JSON and YAML output.
type Envelope struct {
	RunID      string               `json:"run_id" yaml:"run_id"`
	StartedAt  time.Time            `json:"started_at" yaml:"started_at"`
	Duration   string               `json:"duration" yaml:"duration"`
	Documents  int                  `json:"documents" yaml:"documents"`
	TableSize  int                  `json:"table_size" yaml:"table_size"`
	Rotation   string               `json:"rotation" yaml:"rotation"`
	CleanHands int                  `json:"clean_hands" yaml:"clean_hands"`
	Hands      []session.Hand       `json:"hands" yaml:"hands"`
	Players    []PlayerSummary      `json:"players" yaml:"players"`
	Rejected   []analyzer.Rejection `json:"rejected,omitempty" yaml:"rejected,omitempty"`
}

// NewEnvelope assembles the output document of a run.
func NewEnvelope(res *analyzer.Result) *Envelope {
	stats := statistics.FromSequence(res.Sequence)
	return &Envelope{
		RunID:      res.RunID,
		StartedAt:  res.StartedAt.UTC(),
		Duration:   res.Duration.String(),
		Documents:  res.Documents,
		TableSize:  res.Sequence.TableSize,
		Rotation:   res.Sequence.Rotation,
		CleanHands: stats.Clean,
		Hands:      res.Sequence.Hands,
		Players:    Summaries(stats),
		Rejected:   res.Rejected,
	}
}

// WriteJSON writes the envelope as indented JSON.
func WriteJSON(w io.Writer, env *Envelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

// WriteYAML writes the envelope as YAML.
func WriteYAML(w io.Writer, env *Envelope) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(env); err != nil {
		return err
	}
	return enc.Close()
}
