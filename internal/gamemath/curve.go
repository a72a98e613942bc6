package gamemath

import (
	"errors"
	"fmt"
	"math"
)

// RollRange is the size of the uniform roll sample space. Rolls are
// integers in [0, RollRange).
const RollRange = 100

var (
	ErrRoundOutOfRange = errors.New("round out of range")
	ErrInvalidRoll     = errors.New("roll out of range")
	ErrInvalidValue    = errors.New("value must be >= 0")
)

// Stats describes one round of the curve.
type Stats struct {
	// SurvivalProbability is the chance the round succeeds.
	SurvivalProbability float64
	// Multiplier is applied to the accumulated value on success.
	// SurvivalProbability * Multiplier == 1 - HouseEdge, always.
	Multiplier float64
	// Threshold is the lowest surviving roll: roll r survives iff
	// r >= Threshold.
	Threshold int
}

// StatsFor returns the survival probability, multiplier and roll
// threshold for one round. Pure; deterministic given inputs.
func StatsFor(round int, cfg Config) (Stats, error) {
	if round < 1 || round > cfg.MaxRounds {
		return Stats{}, fmt.Errorf("%w: round %d, valid rounds 1..%d", ErrRoundOutOfRange, round, cfg.MaxRounds)
	}

	p := cfg.BaseSurvival * math.Exp(-cfg.Decay*float64(round-1))
	if p < cfg.MinSurvival {
		p = cfg.MinSurvival
	}

	return Stats{
		SurvivalProbability: p,
		Multiplier:          (1 - cfg.HouseEdge) / p,
		Threshold:           int(math.Round((1 - p) * RollRange)),
	}, nil
}

// Outcome is the result of applying one roll to the curve.
type Outcome struct {
	Survived bool
	NewValue int64
}

// Play applies one externally supplied roll to the accumulated value.
// On survival the value compounds by the round multiplier, floored to
// minor units; on death it drops to zero. No side effects.
func Play(round int, currentValue int64, roll int, cfg Config) (Outcome, error) {
	if roll < 0 || roll >= RollRange {
		return Outcome{}, fmt.Errorf("%w: roll %d, valid rolls 0..%d", ErrInvalidRoll, roll, RollRange-1)
	}
	if currentValue < 0 {
		return Outcome{}, fmt.Errorf("%w: got %d", ErrInvalidValue, currentValue)
	}

	stats, err := StatsFor(round, cfg)
	if err != nil {
		return Outcome{}, err
	}

	if roll < stats.Threshold {
		return Outcome{Survived: false, NewValue: 0}, nil
	}

	return Outcome{
		Survived: true,
		NewValue: int64(math.Floor(float64(currentValue) * stats.Multiplier)),
	}, nil
}
