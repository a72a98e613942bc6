package gamemath

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid game config")

// Config holds the curve and session parameters for one deployment.
// All monetary values are minor units.
type Config struct {
	// HouseEdge is the house's statistical advantage, in (0, 1].
	// Survival probability times multiplier equals 1 - HouseEdge for
	// every round.
	HouseEdge float64 `yaml:"house_edge"`

	// BaseSurvival is the round-1 survival probability, in (0, 1].
	BaseSurvival float64 `yaml:"base_survival"`

	// Decay is the exponential decay constant applied per round, >= 0.
	Decay float64 `yaml:"decay"`

	// MinSurvival floors the survival probability, in (0, BaseSurvival].
	MinSurvival float64 `yaml:"min_survival"`

	MinStake int64 `yaml:"min_stake"`
	MaxStake int64 `yaml:"max_stake"`

	// MaxPotentialPayout is the absolute payout ceiling per session.
	MaxPotentialPayout int64 `yaml:"max_potential_payout"`

	// MaxRounds bounds how many rounds a session may play, >= 1.
	MaxRounds int `yaml:"max_rounds"`

	// SessionTimeoutSecs is how long a session may sit idle before
	// anyone is allowed to reap it.
	SessionTimeoutSecs int64 `yaml:"session_timeout_secs"`

	// RequireProfitableCashOut rejects cash-outs at or below the stake.
	// Product policy, not an engine invariant.
	RequireProfitableCashOut bool `yaml:"require_profitable_cash_out"`
}

// DefaultConfig returns the production curve parameters.
func DefaultConfig() Config {
	return Config{
		HouseEdge:                0.15,
		BaseSurvival:             0.95,
		Decay:                    0.05,
		MinSurvival:              0.10,
		MinStake:                 100,
		MaxStake:                 10_000_000,
		MaxPotentialPayout:       1_000_000_000,
		MaxRounds:                50,
		SessionTimeoutSecs:       3600,
		RequireProfitableCashOut: true,
	}
}

// LoadConfig reads a YAML config file. Missing keys fall back to
// DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read game config: %w", err)
	}

	err = yaml.Unmarshal(raw, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parse game config: %w", err)
	}

	err = cfg.Validate()
	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks every config invariant. A config that fails here must
// never reach a running session.
func (c Config) Validate() error {
	if c.HouseEdge <= 0 || c.HouseEdge > 1 {
		return fmt.Errorf("%w: house_edge %v not in (0, 1]", ErrInvalidConfig, c.HouseEdge)
	}
	if c.BaseSurvival <= 0 || c.BaseSurvival > 1 {
		return fmt.Errorf("%w: base_survival %v not in (0, 1]", ErrInvalidConfig, c.BaseSurvival)
	}
	if c.Decay < 0 {
		return fmt.Errorf("%w: decay %v must be >= 0", ErrInvalidConfig, c.Decay)
	}
	if c.MinSurvival <= 0 || c.MinSurvival > c.BaseSurvival {
		return fmt.Errorf("%w: min_survival %v not in (0, base_survival]", ErrInvalidConfig, c.MinSurvival)
	}
	if c.MinStake <= 0 {
		return fmt.Errorf("%w: min_stake %d must be > 0", ErrInvalidConfig, c.MinStake)
	}
	if c.MaxStake < c.MinStake {
		return fmt.Errorf("%w: max_stake %d below min_stake %d", ErrInvalidConfig, c.MaxStake, c.MinStake)
	}
	if c.MaxPotentialPayout <= 0 {
		return fmt.Errorf("%w: max_potential_payout %d must be > 0", ErrInvalidConfig, c.MaxPotentialPayout)
	}
	if c.MaxRounds < 1 {
		return fmt.Errorf("%w: max_rounds %d must be >= 1", ErrInvalidConfig, c.MaxRounds)
	}
	if c.SessionTimeoutSecs <= 0 {
		return fmt.Errorf("%w: session_timeout_secs %d must be > 0", ErrInvalidConfig, c.SessionTimeoutSecs)
	}

	return nil
}
