// Package config loads handledger settings from an HCL file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/handledger/internal/ledger"
	"github.com/lox/handledger/internal/rotation"
)

// Config is the complete analysis configuration.
type Config struct {
	Analysis Analysis
	Blinds   Blinds
	Output   Output
	Log      Log
}

// Analysis controls discovery and reconstruction.
type Analysis struct {
	Pattern        string `hcl:"pattern,optional" validate:"required"`
	Workers        int    `hcl:"workers,optional" validate:"gte=1,lte=256"`
	TableSize      int    `hcl:"table_size,optional" validate:"gte=2,lte=10"`
	Rotation       string `hcl:"rotation,optional" validate:"rotation"`
	RaiseInference string `hcl:"raise_inference,optional" validate:"oneof=double min-raise"`
}

// Blinds selects how blind seats are derived.
type Blinds struct {
	Policy string `hcl:"policy,optional" validate:"oneof=button fixed"`
	// Button is used by the button policy when a hand records none.
	Button    int  `hcl:"button,optional" validate:"gte=0"`
	SmallSeat *int `hcl:"small_seat,optional" validate:"omitempty,gte=0"`
	BigSeat   *int `hcl:"big_seat,optional" validate:"omitempty,gte=0"`
}

// Output selects the report format and destination.
type Output struct {
	Format string `hcl:"format,optional" validate:"oneof=csv json yaml table"`
	Path   string `hcl:"path,optional"`
}

// Log configures the process logger.
type Log struct {
	Level      string `hcl:"level,optional" validate:"oneof=debug info warn error"`
	Structured bool   `hcl:"structured,optional"`
}

type fileConfig struct {
	Analysis *Analysis `hcl:"analysis,block"`
	Blinds   *Blinds   `hcl:"blinds,block"`
	Output   *Output   `hcl:"output,block"`
	Log      *Log      `hcl:"log,block"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("rotation", func(fl validator.FieldLevel) bool {
		_, err := rotation.ByName(fl.Field().String())
		return err == nil
	})
}

func intPtr(v int) *int { return &v }

// DefaultConfig returns the settings used when no file is given: three
// seats rotating one seat per hand, blinds following the button.
func DefaultConfig() *Config {
	return &Config{
		Analysis: Analysis{
			Pattern:        "*.pgn",
			Workers:        4,
			TableSize:      3,
			Rotation:       "modulo",
			RaiseInference: "double",
		},
		Blinds: Blinds{
			Policy:    "button",
			SmallSeat: intPtr(1),
			BigSeat:   intPtr(2),
		},
		Output: Output{Format: "csv"},
		Log:    Log{Level: "info"},
	}
}

// LoadConfig reads filename, returning the defaults when it does not exist.
func LoadConfig(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source, fills unset values from DefaultConfig and
// validates the result.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := DefaultConfig()
	cfg.merge(fc)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// merge overlays every value set in the file onto the defaults.
func (c *Config) merge(fc fileConfig) {
	if a := fc.Analysis; a != nil {
		setString(&c.Analysis.Pattern, a.Pattern)
		setInt(&c.Analysis.Workers, a.Workers)
		setInt(&c.Analysis.TableSize, a.TableSize)
		setString(&c.Analysis.Rotation, a.Rotation)
		setString(&c.Analysis.RaiseInference, a.RaiseInference)
	}
	if b := fc.Blinds; b != nil {
		setString(&c.Blinds.Policy, b.Policy)
		setInt(&c.Blinds.Button, b.Button)
		if b.SmallSeat != nil {
			c.Blinds.SmallSeat = b.SmallSeat
		}
		if b.BigSeat != nil {
			c.Blinds.BigSeat = b.BigSeat
		}
	}
	if o := fc.Output; o != nil {
		setString(&c.Output.Format, o.Format)
		setString(&c.Output.Path, o.Path)
	}
	if l := fc.Log; l != nil {
		setString(&c.Log.Level, l.Level)
		c.Log.Structured = c.Log.Structured || l.Structured
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

// Validate checks field constraints and the seat settings against the
// table size.
func (c *Config) Validate() error {
	for _, section := range []struct {
		name string
		v    any
	}{
		{"analysis", c.Analysis},
		{"blinds", c.Blinds},
		{"output", c.Output},
		{"log", c.Log},
	} {
		if err := validate.Struct(section.v); err != nil {
			return fmt.Errorf("invalid %s config: %w", section.name, err)
		}
	}

	n := c.Analysis.TableSize
	if c.Blinds.Button >= n {
		return fmt.Errorf("invalid blinds config: button %d outside table of %d", c.Blinds.Button, n)
	}
	if c.Blinds.Policy == "fixed" {
		if c.Blinds.SmallSeat == nil || c.Blinds.BigSeat == nil {
			return fmt.Errorf("invalid blinds config: fixed policy needs small_seat and big_seat")
		}
		small, big := *c.Blinds.SmallSeat, *c.Blinds.BigSeat
		if small >= n || big >= n {
			return fmt.Errorf("invalid blinds config: seats %d/%d outside table of %d", small, big, n)
		}
		if small == big {
			return fmt.Errorf("invalid blinds config: small and big blind share seat %d", small)
		}
	}
	return nil
}

// BlindPolicy builds the configured blind policy.
func (c *Config) BlindPolicy() ledger.BlindPolicy {
	if c.Blinds.Policy == "fixed" && c.Blinds.SmallSeat != nil && c.Blinds.BigSeat != nil {
		return ledger.FixedBlinds{Small: *c.Blinds.SmallSeat, Big: *c.Blinds.BigSeat}
	}
	return ledger.ButtonBlinds{Button: c.Blinds.Button}
}

// RaiseInference builds the configured raise inference policy.
func (c *Config) RaiseInference() (ledger.RaiseInference, error) {
	return ledger.InferenceByName(c.Analysis.RaiseInference)
}

// RotationPolicy builds the configured seat rotation policy.
func (c *Config) RotationPolicy() (rotation.Policy, error) {
	return rotation.ByName(c.Analysis.Rotation)
}

// Replayer builds a hand replayer from the blind and inference settings.
func (c *Config) Replayer() (ledger.Replayer, error) {
	inf, err := c.RaiseInference()
	if err != nil {
		return ledger.Replayer{}, err
	}
	return ledger.Replayer{Blinds: c.BlindPolicy(), Inference: inf}, nil
}
