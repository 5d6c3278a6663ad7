package rng

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"montyhall/domain/core"
)

// SeededAdapter implements ports.RNGPort on math/rand with deterministic
// stream derivation
type SeededAdapter struct{}

// NewSeededAdapter creates a new seeded RNG adapter
func NewSeededAdapter() *SeededAdapter {
	return &SeededAdapter{}
}

// SeededStream creates a deterministic random number generator for a named operation
func (a *SeededAdapter) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	return rand.New(rand.NewSource(derive(seed, name, 0))), nil
}

// TrialStream creates a deterministic RNG stream for one trial of a run.
// The seed mixes the run ID, the trial ordinal, and the base seed, so the
// same triple always replays the same game regardless of which goroutine
// executes it.
func (a *SeededAdapter) TrialStream(ctx context.Context, runID core.RunID, trial int, baseSeed int64) (*rand.Rand, error) {
	return rand.New(rand.NewSource(derive(baseSeed, runID.String(), trial))), nil
}

// ValidateSeed ensures the seed produces expected deterministic results
func (a *SeededAdapter) ValidateSeed(ctx context.Context, name string, seed int64, expected []float64) error {
	stream, err := a.SeededStream(ctx, name, seed)
	if err != nil {
		return err
	}
	for i, want := range expected {
		got := stream.Float64()
		if math.Abs(got-want) > 1e-12 {
			return fmt.Errorf("%w: stream %s diverged at draw %d (got %v, want %v)",
				core.ErrSeedMismatch, name, i, got, want)
		}
	}
	return nil
}

// derive mixes the base seed with a stream name and ordinal using the djb2
// hash, matching the derivation used for every stream in the system
func derive(baseSeed int64, name string, ordinal int) int64 {
	seed := baseSeed
	if name != "" {
		seed += int64(hashString(name))
	}
	seed += int64(ordinal) * 0x9e3779b9 // golden-ratio stride keeps ordinals apart
	return seed
}

// hashString creates a simple hash for deterministic seeding
func hashString(s string) uint32 {
	var hash uint32 = 5381
	for _, c := range s {
		hash = ((hash << 5) + hash) + uint32(c) // djb2 algorithm
	}
	return hash
}
