package gamemath

import "math"

// MaxPayout returns the worst-case payout the house must reserve when a
// session opens: the stake compounded through the multiplier of every
// round from 1 to horizon, capped at MaxPotentialPayout and floored to
// minor units.
//
// The result never drops below the stake itself; a session may cash out
// its opening value at any time, so that much is always exposed.
// Callers opening a session must pass horizon = cfg.MaxRounds, not
// however many rounds the player announced: play may legally continue
// to the full horizon.
func MaxPayout(stake int64, horizon int, cfg Config) int64 {
	if stake <= 0 {
		return 0
	}
	if horizon > cfg.MaxRounds {
		horizon = cfg.MaxRounds
	}

	value := float64(stake)
	cap := float64(cfg.MaxPotentialPayout)

	for round := 1; round <= horizon; round++ {
		stats, err := StatsFor(round, cfg)
		if err != nil {
			break
		}
		value *= stats.Multiplier
		if value >= cap {
			return cfg.MaxPotentialPayout
		}
	}

	payout := int64(math.Floor(value))
	if payout < stake {
		payout = stake
	}
	if payout > cfg.MaxPotentialPayout {
		payout = cfg.MaxPotentialPayout
	}

	return payout
}
