package analysis

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"montyhall/domain/core"
	"montyhall/domain/game"
	"montyhall/domain/trial"
)

// TheoreticalRate returns the analytic win probability for a strategy:
// staying wins only when the initial pick was the car (1/3), switching
// wins in the complementary case (2/3).
func TheoreticalRate(strategy game.Strategy) float64 {
	if strategy == game.Switch {
		return 2.0 / 3.0
	}
	return 1.0 / 3.0
}

// StrategyBrief consolidates the statistical view of one strategy's tallies
type StrategyBrief struct {
	Strategy          game.Strategy `json:"strategy"`
	Wins              int           `json:"wins"`
	Trials            int           `json:"trials"`
	Proportion        float64       `json:"proportion"`
	RoundedProportion float64       `json:"rounded_proportion"`
	WilsonLow         float64       `json:"wilson_low"`
	WilsonHigh        float64       `json:"wilson_high"`
	TheoreticalRate   float64       `json:"theoretical_rate"`
	ZScore            float64       `json:"z_score"`
	Converged         bool          `json:"converged"`
}

// RunSummary holds both strategies' briefs in evaluation order
type RunSummary struct {
	Strategies []StrategyBrief `json:"strategies"`
}

// Brief returns the brief for one strategy, if present
func (s RunSummary) Brief(strategy game.Strategy) (StrategyBrief, bool) {
	for _, b := range s.Strategies {
		if b.Strategy == strategy {
			return b, true
		}
	}
	return StrategyBrief{}, false
}

// Summarize computes per-strategy win proportions, Wilson 95% intervals,
// and z-scores against the theoretical rates. An empty tally is an error
// rather than a NaN-laden summary.
func Summarize(agg *trial.Aggregate) (RunSummary, error) {
	var summary RunSummary
	for _, strategy := range game.Strategies() {
		brief, err := summarizeStrategy(strategy, agg.Tallies[strategy])
		if err != nil {
			return RunSummary{}, err
		}
		summary.Strategies = append(summary.Strategies, brief)
	}
	return summary, nil
}

func summarizeStrategy(strategy game.Strategy, tally trial.Tally) (StrategyBrief, error) {
	if tally.Total == 0 {
		return StrategyBrief{}, fmt.Errorf("%w: no %s records to summarize", core.ErrNoTrials, strategy)
	}

	p := tally.Proportion()
	rounded, err := stats.Round(p, 2)
	if err != nil {
		return StrategyBrief{}, fmt.Errorf("rounding %s proportion: %w", strategy, err)
	}

	low, high := wilsonInterval(tally.Wins, tally.Total, 0.95)
	p0 := TheoreticalRate(strategy)
	z := zScore(p, p0, tally.Total)

	return StrategyBrief{
		Strategy:          strategy,
		Wins:              tally.Wins,
		Trials:            tally.Total,
		Proportion:        p,
		RoundedProportion: rounded,
		WilsonLow:         low,
		WilsonHigh:        high,
		TheoreticalRate:   p0,
		ZScore:            z,
		Converged:         math.Abs(z) < 1.96,
	}, nil
}

// wilsonInterval computes the Wilson score interval for wins/n at the
// given confidence level. It behaves better than the normal approximation
// near 0 and 1, which matters for small trial counts.
func wilsonInterval(wins, n int, confidence float64) (low, high float64) {
	normal := distuv.Normal{Mu: 0, Sigma: 1}
	z := normal.Quantile(1 - (1-confidence)/2)

	p := float64(wins) / float64(n)
	nf := float64(n)

	denom := 1 + z*z/nf
	center := (p + z*z/(2*nf)) / denom
	margin := z * math.Sqrt(p*(1-p)/nf+z*z/(4*nf*nf)) / denom

	return center - margin, center + margin
}

// zScore measures how far the observed proportion sits from the expected
// rate in units of the binomial standard error
func zScore(p, p0 float64, n int) float64 {
	se := math.Sqrt(p0 * (1 - p0) / float64(n))
	return (p - p0) / se
}
