package gamemath

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConfig_ValidateRejections(t *testing.T) {
	t.Parallel()

	mutations := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"house_edge_zero", func(c *Config) { c.HouseEdge = 0 }},
		{"house_edge_above_one", func(c *Config) { c.HouseEdge = 1.5 }},
		{"base_survival_zero", func(c *Config) { c.BaseSurvival = 0 }},
		{"base_survival_above_one", func(c *Config) { c.BaseSurvival = 1.1 }},
		{"negative_decay", func(c *Config) { c.Decay = -0.01 }},
		{"min_survival_zero", func(c *Config) { c.MinSurvival = 0 }},
		{"min_survival_above_base", func(c *Config) { c.MinSurvival = 0.96 }},
		{"min_stake_zero", func(c *Config) { c.MinStake = 0 }},
		{"max_below_min_stake", func(c *Config) { c.MaxStake = c.MinStake - 1 }},
		{"zero_payout_cap", func(c *Config) { c.MaxPotentialPayout = 0 }},
		{"zero_max_rounds", func(c *Config) { c.MaxRounds = 0 }},
		{"zero_timeout", func(c *Config) { c.SessionTimeoutSecs = 0 }},
	}

	for _, tt := range mutations {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("want ErrInvalidConfig, got %v", err)
			}
		})
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestLoadConfig_OverridesAndDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "game.yaml")

	raw := []byte("house_edge: 0.10\nmax_rounds: 20\n")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.HouseEdge != 0.10 {
		t.Fatalf("house_edge: want 0.10, got %v", cfg.HouseEdge)
	}
	if cfg.MaxRounds != 20 {
		t.Fatalf("max_rounds: want 20, got %d", cfg.MaxRounds)
	}

	// Keys the file omits keep their defaults.
	def := DefaultConfig()
	if cfg.BaseSurvival != def.BaseSurvival || cfg.MinStake != def.MinStake {
		t.Fatalf("omitted keys changed: %+v", cfg)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatalf("want error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if werr := os.WriteFile(bad, []byte("house_edge: 2.0\n"), 0o600); werr != nil {
		t.Fatalf("write config: %v", werr)
	}

	_, err = LoadConfig(bad)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("want ErrInvalidConfig, got %v", err)
	}
}
