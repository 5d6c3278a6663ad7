package ports

import (
	"context"
	"math/rand"

	"montyhall/domain/core"
)

// RNGPort provides seeded random number generation for deterministic simulations
type RNGPort interface {
	// SeededStream creates a deterministic random number generator for a named operation
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)

	// TrialStream creates a deterministic RNG stream for one trial of a run.
	// Streams derived from the same (runID, trial, baseSeed) triple are
	// identical, so trials replay bit-for-bit regardless of scheduling.
	TrialStream(ctx context.Context, runID core.RunID, trial int, baseSeed int64) (*rand.Rand, error)

	// ValidateSeed ensures the seed produces expected deterministic results
	ValidateSeed(ctx context.Context, name string, seed int64, expected []float64) error
}
