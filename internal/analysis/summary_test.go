package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"montyhall/domain/core"
	"montyhall/domain/game"
	"montyhall/domain/trial"
)

func aggregateWithTallies(stay, sw trial.Tally) *trial.Aggregate {
	agg := trial.NewAggregate()
	agg.Tallies[game.Stay] = stay
	agg.Tallies[game.Switch] = sw
	return agg
}

func TestTheoreticalRate(t *testing.T) {
	assert.InDelta(t, 1.0/3.0, TheoreticalRate(game.Stay), 1e-12)
	assert.InDelta(t, 2.0/3.0, TheoreticalRate(game.Switch), 1e-12)
}

func TestSummarize_NearTheoreticalRates(t *testing.T) {
	agg := aggregateWithTallies(
		trial.Tally{Wins: 3333, Total: 10000},
		trial.Tally{Wins: 6667, Total: 10000},
	)

	summary, err := Summarize(agg)
	require.NoError(t, err)
	require.Len(t, summary.Strategies, 2)

	stay, ok := summary.Brief(game.Stay)
	require.True(t, ok)
	assert.InDelta(t, 0.3333, stay.Proportion, 1e-9)
	assert.InDelta(t, 0.33, stay.RoundedProportion, 1e-9)
	assert.True(t, stay.Converged, "3333/10000 sits on the theoretical rate")
	assert.Less(t, stay.WilsonLow, stay.Proportion)
	assert.Greater(t, stay.WilsonHigh, stay.Proportion)

	sw, ok := summary.Brief(game.Switch)
	require.True(t, ok)
	assert.InDelta(t, 0.67, sw.RoundedProportion, 1e-9)
	assert.True(t, sw.Converged)
}

func TestSummarize_FlagsDivergentRates(t *testing.T) {
	// A coin-flip switch rate at n=10000 is dozens of standard errors from 2/3
	agg := aggregateWithTallies(
		trial.Tally{Wins: 3333, Total: 10000},
		trial.Tally{Wins: 5000, Total: 10000},
	)

	summary, err := Summarize(agg)
	require.NoError(t, err)

	sw, ok := summary.Brief(game.Switch)
	require.True(t, ok)
	assert.False(t, sw.Converged)
	assert.Less(t, sw.ZScore, -1.96)
}

func TestSummarize_RejectsEmptyTally(t *testing.T) {
	agg := trial.NewAggregate()
	_, err := Summarize(agg)
	assert.ErrorIs(t, err, core.ErrNoTrials)
}

func TestWilsonInterval_Bounds(t *testing.T) {
	low, high := wilsonInterval(50, 100, 0.95)
	assert.Greater(t, low, 0.0)
	assert.Less(t, high, 1.0)
	assert.Less(t, low, 0.5)
	assert.Greater(t, high, 0.5)

	// Edge tallies stay inside [0, 1], where the normal approximation would not
	low, high = wilsonInterval(0, 20, 0.95)
	assert.GreaterOrEqual(t, low, 0.0)
	assert.Greater(t, high, 0.0)

	low, high = wilsonInterval(20, 20, 0.95)
	assert.Less(t, low, 1.0)
	assert.LessOrEqual(t, high, 1.0)
}

func TestZScore(t *testing.T) {
	assert.InDelta(t, 0, zScore(0.5, 0.5, 100), 1e-12)
	assert.Greater(t, zScore(0.6, 0.5, 100), 0.0)
	assert.Less(t, zScore(0.4, 0.5, 100), 0.0)
	// Two points of standard error: p0=0.5, n=100 gives se=0.05
	assert.InDelta(t, 2.0, zScore(0.6, 0.5, 100), 1e-9)
}
