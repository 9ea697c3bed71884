// Package analyzer runs the reconstruction pipeline over a set of hand
// history documents: parse and replay each document in parallel, then
// sequence and normalize the surviving hands in one pass.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"time"

	"github.com/coder/quartz"
	"github.com/lox/handledger/internal/ledger"
	"github.com/lox/handledger/internal/pgn"
	"github.com/lox/handledger/internal/rotation"
	"github.com/lox/handledger/internal/runid"
	"github.com/lox/handledger/internal/session"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultPattern selects hand history documents.
const DefaultPattern = "*.pgn"

// Config configures an Analyzer.
type Config struct {
	Pattern   string
	Workers   int
	TableSize int
	Rotation  rotation.Policy
	Replayer  ledger.Replayer
	Clock     quartz.Clock
	// RunID pins the run identifier; a fresh one is generated when empty.
	RunID string
}

// Document is one raw hand history file.
type Document struct {
	Name string
	Text string
}

// Rejection is a record dropped because it was malformed.
type Rejection struct {
	Source   string `json:"source" yaml:"source"`
	Position int    `json:"position" yaml:"position"`
	Reason   string `json:"reason" yaml:"reason"`
	Err      error  `json:"-" yaml:"-"`
}

// Result is the outcome of one run.
type Result struct {
	RunID     string            `json:"run_id" yaml:"run_id"`
	StartedAt time.Time         `json:"started_at" yaml:"started_at"`
	Duration  time.Duration     `json:"duration" yaml:"duration"`
	Documents int               `json:"documents" yaml:"documents"`
	Sequence  *session.Sequence `json:"session" yaml:"session"`
	Rejected  []Rejection       `json:"rejected,omitempty" yaml:"rejected,omitempty"`
}

// Analyzer reconstructs sessions from documents.
type Analyzer struct {
	logger zerolog.Logger
	cfg    Config
}

// New creates an Analyzer, filling unset config with defaults.
func New(logger zerolog.Logger, cfg Config) *Analyzer {
	if cfg.Pattern == "" {
		cfg.Pattern = DefaultPattern
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.Rotation == nil {
		cfg.Rotation = rotation.Modulo{}
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	return &Analyzer{
		logger: logger.With().Str("component", "analyzer").Logger(),
		cfg:    cfg,
	}
}

// Discover reads every document in fsys matching pattern, sorted by name.
func Discover(fsys fs.FS, pattern string) ([]Document, error) {
	names, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	sort.Strings(names)

	docs := make([]Document, 0, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		docs = append(docs, Document{Name: name, Text: string(data)})
	}
	return docs, nil
}

// Run discovers documents in fsys and analyzes them.
func (a *Analyzer) Run(ctx context.Context, fsys fs.FS) (*Result, error) {
	docs, err := Discover(fsys, a.cfg.Pattern)
	if err != nil {
		return nil, err
	}
	a.logger.Debug().Int("documents", len(docs)).Str("pattern", a.cfg.Pattern).Msg("Discovered documents")
	return a.Analyze(ctx, docs)
}

type documentResult struct {
	entries  []session.Entry
	rejected []Rejection
}

// Analyze parses and replays documents on a bounded worker pool, then
// sequences the valid hands. Malformed records are reported in
// Result.Rejected; a session that cannot be assembled is an error.
func (a *Analyzer) Analyze(ctx context.Context, docs []Document) (*Result, error) {
	start := a.cfg.Clock.Now()
	id, err := a.runID()
	if err != nil {
		return nil, err
	}
	logger := a.logger.With().Str("run_id", id).Logger()

	results := make([]documentResult, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Workers)
	for i, doc := range docs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = a.process(doc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{
		RunID:     id,
		StartedAt: start,
		Documents: len(docs),
	}
	var entries []session.Entry
	for _, r := range results {
		entries = append(entries, r.entries...)
		res.Rejected = append(res.Rejected, r.rejected...)
	}
	for _, rej := range res.Rejected {
		logger.Warn().
			Str("source", rej.Source).
			Int("position", rej.Position).
			Str("reason", rej.Reason).
			Msg("Skipping malformed record")
	}

	seq, err := session.SequenceAndNormalize(entries, session.Options{
		TableSize: a.cfg.TableSize,
		Rotation:  a.cfg.Rotation,
		Replayer:  a.cfg.Replayer,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}
	res.Sequence = seq
	res.Duration = a.cfg.Clock.Since(start)

	flagged := 0
	for _, h := range seq.Hands {
		if h.Clean() {
			continue
		}
		flagged++
		ev := logger.Debug()
		if h.LowConfidence {
			ev = logger.Warn()
		}
		ev.Str("source", h.Source).
			Int("position", h.Position).
			Int("ordinal", h.Ordinal).
			Strs("flags", h.Flags).
			Bool("low_confidence", h.LowConfidence).
			Msg("Hand values are inferred or incomplete")
	}
	logger.Info().
		Int("documents", res.Documents).
		Int("hands", len(seq.Hands)).
		Int("flagged", flagged).
		Int("rejected", len(res.Rejected)).
		Dur("duration", res.Duration).
		Msg("Analysis complete")
	return res, nil
}

func (a *Analyzer) runID() (string, error) {
	if a.cfg.RunID == "" {
		return runid.New()
	}
	if err := runid.Validate(a.cfg.RunID); err != nil {
		return "", fmt.Errorf("invalid run ID %q: %w", a.cfg.RunID, err)
	}
	return a.cfg.RunID, nil
}

// process tokenizes every hand in a document and replays its ledger.
func (a *Analyzer) process(doc Document) documentResult {
	var out documentResult
	for pos, chunk := range pgn.SplitRecords(doc.Text) {
		rec, err := pgn.ParseDocument(chunk)
		if err != nil {
			var me *pgn.MalformedRecordError
			if errors.As(err, &me) {
				me.Source = doc.Name
			}
			out.rejected = append(out.rejected, Rejection{
				Source:   doc.Name,
				Position: pos,
				Reason:   err.Error(),
				Err:      err,
			})
			continue
		}
		rec.Source = doc.Name
		rec.Position = pos
		out.entries = append(out.entries, session.Entry{
			Record: rec,
			Ledger: a.cfg.Replayer.Hand(rec),
		})
	}
	return out
}
