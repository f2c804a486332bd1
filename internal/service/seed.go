package service

import (
	"fmt"

	"cs2-simulator/internal/sim"
)

// resolveSeed keeps an explicit seed and draws a fresh one for zero.
func resolveSeed(seed uint64) (uint64, error) {
	if seed != 0 {
		return seed, nil
	}
	seed, err := sim.NewSeed()
	if err != nil {
		return 0, fmt.Errorf("failed to draw seed: %w", err)
	}
	return seed, nil
}
