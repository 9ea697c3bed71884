package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/coder/quartz"
	"github.com/lox/handledger/cmd/handledger/shared"
	"github.com/lox/handledger/internal/analyzer"
	"github.com/lox/handledger/internal/config"
	"github.com/lox/handledger/internal/fileutil"
	"github.com/rs/zerolog"
)

// Globals are flags shared by every command.
type Globals struct {
	Config  string `help:"HCL config file (defaults apply when it does not exist)" default:"handledger.hcl" type:"path" env:"HANDLEDGER_CONFIG"`
	Debug   bool   `help:"Enable debug logging"`
	LogJSON bool   `name:"log-json" help:"Write structured JSON logs"`
}

// setup loads the config file and builds the process logger.
func (g *Globals) setup() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(g.Config)
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	level := shared.ParseLevel(cfg.Log.Level, g.Debug)
	logger := shared.SetupLogger(level)
	if g.LogJSON || cfg.Log.Structured {
		logger = shared.SetupStructuredLogger(level)
	}
	logger.Debug().Str("config", g.Config).Msg("Loaded configuration")
	return cfg, logger, nil
}

// SessionFlags select and interpret a directory of hand histories. Unset
// flags keep the config file values.
type SessionFlags struct {
	Dir            string `arg:"" optional:"" default:"." type:"existingdir" help:"Directory holding hand history documents"`
	Pattern        string `help:"Glob selecting documents inside the directory"`
	Workers        int    `help:"Documents parsed in parallel"`
	TableSize      int    `name:"table-size" help:"Seats per hand"`
	Rotation       string `help:"Seat rotation policy (modulo|modulo-left|none|fixed-N)"`
	RaiseInference string `name:"raise-inference" help:"Target for raises without a total (double|min-raise)"`
	Blinds         string `help:"Blind seat policy (button|fixed)"`
	RunID          string `name:"run-id" help:"Fixed run identifier for reproducible reports"`
}

func (f SessionFlags) apply(cfg *config.Config) error {
	if f.Pattern != "" {
		cfg.Analysis.Pattern = f.Pattern
	}
	if f.Workers != 0 {
		cfg.Analysis.Workers = f.Workers
	}
	if f.TableSize != 0 {
		cfg.Analysis.TableSize = f.TableSize
	}
	if f.Rotation != "" {
		cfg.Analysis.Rotation = f.Rotation
	}
	if f.RaiseInference != "" {
		cfg.Analysis.RaiseInference = f.RaiseInference
	}
	if f.Blinds != "" {
		cfg.Blinds.Policy = f.Blinds
	}
	return cfg.Validate()
}

// analyze runs the pipeline over the directory.
func (f SessionFlags) analyze(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*analyzer.Result, error) {
	if err := f.apply(cfg); err != nil {
		return nil, err
	}
	rot, err := cfg.RotationPolicy()
	if err != nil {
		return nil, err
	}
	replayer, err := cfg.Replayer()
	if err != nil {
		return nil, err
	}

	a := analyzer.New(logger, analyzer.Config{
		Pattern:   cfg.Analysis.Pattern,
		Workers:   cfg.Analysis.Workers,
		TableSize: cfg.Analysis.TableSize,
		Rotation:  rot,
		Replayer:  replayer,
		Clock:     quartz.NewReal(),
		RunID:     f.RunID,
	})
	logger.Info().
		Str("dir", f.Dir).
		Str("pattern", cfg.Analysis.Pattern).
		Int("table_size", cfg.Analysis.TableSize).
		Str("rotation", rot.Name()).
		Str("raise_inference", cfg.Analysis.RaiseInference).
		Msg("Analyzing hand histories")
	return a.Run(ctx, os.DirFS(f.Dir))
}

// writeOutput writes to path atomically, or to stdout when path is empty.
func writeOutput(path string, write func(io.Writer) error) error {
	if path == "" {
		return write(os.Stdout)
	}
	if err := fileutil.WriteAtomic(path, 0o644, write); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
