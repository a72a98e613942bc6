package gamemath

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// DrawRoll returns a uniform roll in [0, RollRange) using CSPRNG.
// The engine itself never draws randomness; this lives with the curve
// so the sample space and the threshold math cannot drift apart.
func DrawRoll() (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(RollRange))
	if err != nil {
		return 0, fmt.Errorf("draw roll: %w", err)
	}

	return int(v.Int64()), nil
}
