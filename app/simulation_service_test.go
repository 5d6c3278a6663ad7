package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"montyhall/adapters/memory"
	"montyhall/adapters/rng"
	"montyhall/domain/core"
	"montyhall/domain/game"
	"montyhall/internal/testkit"
	"montyhall/ports"
)

func newService(store *memory.RunStore) *SimulationService {
	// Avoid wrapping a nil *memory.RunStore in a non-nil interface value.
	var port ports.RunStorePort
	if store != nil {
		port = store
	}
	return NewSimulationService(rng.NewSeededAdapter(), port)
}

func TestPlayGame_ReturnsPairedResults(t *testing.T) {
	sim := newService(nil)

	results, err := sim.PlayGame(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, game.Stay, results[0].Strategy)
	assert.Equal(t, game.Switch, results[1].Strategy)

	// One shared game and reveal makes the strategies complementary
	assert.NotEqual(t, results[0].Outcome, results[1].Outcome)
}

func TestRun_RecordCounts(t *testing.T) {
	sim := newService(nil)

	result, err := sim.Run(context.Background(), RunRequest{Trials: 250, Seed: 7})
	require.NoError(t, err)

	assert.Len(t, result.Aggregate.Results, 500)
	assert.Equal(t, 250, result.Aggregate.Tallies[game.Stay].Total)
	assert.Equal(t, 250, result.Aggregate.Tallies[game.Switch].Total)
	assert.Equal(t, 250, result.Trials)
}

func TestRun_ComplementaryOutcomesPerTrial(t *testing.T) {
	sim := newService(nil)

	result, err := sim.Run(context.Background(), RunRequest{Trials: 100, Seed: 11})
	require.NoError(t, err)

	byTrial := map[int]map[game.Strategy]game.Outcome{}
	for _, r := range result.Aggregate.Results {
		if byTrial[r.Trial] == nil {
			byTrial[r.Trial] = map[game.Strategy]game.Outcome{}
		}
		byTrial[r.Trial][r.Strategy] = r.Outcome
	}

	require.Len(t, byTrial, 100)
	for ordinal, outcomes := range byTrial {
		stay := outcomes[game.Stay]
		sw := outcomes[game.Switch]
		if stay == game.Win {
			assert.Equal(t, game.Lose, sw, "trial %d: both strategies won", ordinal)
		} else {
			assert.Equal(t, game.Win, sw, "trial %d: both strategies lost", ordinal)
		}
	}
}

func TestRun_DeterministicForRunIDAndSeed(t *testing.T) {
	sim := newService(nil)
	runID := core.RunID("fixed-run")

	first, err := sim.Run(context.Background(), RunRequest{Trials: 200, Seed: 3, RunID: runID})
	require.NoError(t, err)
	second, err := sim.Run(context.Background(), RunRequest{Trials: 200, Seed: 3, RunID: runID})
	require.NoError(t, err)

	assert.Equal(t, first.Fingerprint, second.Fingerprint)
	assert.Equal(t, first.Aggregate.Results, second.Aggregate.Results)
}

func TestRun_ConcurrentMatchesSequential(t *testing.T) {
	sim := newService(nil)
	runID := core.RunID("concurrency-check")

	sequential, err := sim.Run(context.Background(), RunRequest{Trials: 300, Seed: 9, Workers: 1, RunID: runID})
	require.NoError(t, err)
	concurrent, err := sim.Run(context.Background(), RunRequest{Trials: 300, Seed: 9, Workers: 8, RunID: runID})
	require.NoError(t, err)

	assert.Equal(t, sequential.Fingerprint, concurrent.Fingerprint)
	assert.Equal(t, sequential.Aggregate.Tallies, concurrent.Aggregate.Tallies)
	assert.Equal(t, sequential.Aggregate.Results, concurrent.Aggregate.Results)
}

func TestRun_RejectsZeroTrials(t *testing.T) {
	sim := newService(nil)

	_, err := sim.Run(context.Background(), RunRequest{Trials: 0, Seed: 1})
	assert.ErrorIs(t, err, core.ErrNoTrials)

	_, err = sim.Run(context.Background(), RunRequest{Trials: -5, Seed: 1})
	assert.ErrorIs(t, err, core.ErrNoTrials)
}

func TestRun_SavesToStore(t *testing.T) {
	store := memory.NewRunStore()
	sim := newService(store)

	result, err := sim.Run(context.Background(), RunRequest{Trials: 50, Seed: 21})
	require.NoError(t, err)

	stored, err := store.Get(context.Background(), result.RunID)
	require.NoError(t, err)
	assert.Equal(t, result.Fingerprint, stored.Fingerprint)
	assert.Equal(t, result.Aggregate.Tallies, stored.Aggregate.Tallies)
}

// TestRun_ConvergesToTheoreticalRates is the statistical acceptance check:
// at n=10,000 switch sits near 2/3 and stay near 1/3
func TestRun_ConvergesToTheoreticalRates(t *testing.T) {
	sim := newService(nil)

	result, err := sim.Run(context.Background(), RunRequest{Trials: 10000, Seed: 1234, Workers: 4})
	require.NoError(t, err)

	stayRate, err := result.Aggregate.WinRate(game.Stay)
	require.NoError(t, err)
	switchRate, err := result.Aggregate.WinRate(game.Switch)
	require.NoError(t, err)

	assert.InDelta(t, 1.0/3.0, stayRate, 0.05)
	assert.InDelta(t, 2.0/3.0, switchRate, 0.05)

	// Paired complements force the two rates to sum to exactly 1
	assert.InDelta(t, 1.0, stayRate+switchRate, 1e-12)
}

func TestRun_CancelledContext(t *testing.T) {
	sim := newService(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sim.Run(ctx, RunRequest{Trials: 1000, Seed: 2})
	assert.Error(t, err)

	_, err = sim.Run(ctx, RunRequest{Trials: 1000, Seed: 2, Workers: 4})
	assert.Error(t, err)
}

func TestPlayThrough_UsesSharedPosition(t *testing.T) {
	// Replaying the same stream must give identical pairs
	for seed := int64(0); seed < 20; seed++ {
		first, err := playThrough(testkit.Stream(seed), 0)
		require.NoError(t, err)
		second, err := playThrough(testkit.Stream(seed), 0)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}
