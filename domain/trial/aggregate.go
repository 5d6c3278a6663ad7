package trial

import (
	"sort"

	"github.com/montanaflynn/stats"

	"montyhall/domain/core"
	"montyhall/domain/game"
)

// Aggregate is the ordered collection of all trial results for one run,
// together with per-strategy win tallies. The tally reduction is
// commutative and associative, so partial aggregates built on different
// goroutines merge into the same totals regardless of order.
type Aggregate struct {
	Results []Result                `json:"results"`
	Tallies map[game.Strategy]Tally `json:"tallies"`
}

// NewAggregate returns an empty aggregate with both strategy tallies primed
func NewAggregate() *Aggregate {
	return &Aggregate{
		Tallies: map[game.Strategy]Tally{
			game.Stay:   {},
			game.Switch: {},
		},
	}
}

// Add records one result and updates its strategy's tally
func (a *Aggregate) Add(r Result) {
	a.Results = append(a.Results, r)
	t := a.Tallies[r.Strategy]
	t.Total++
	if r.Won() {
		t.Wins++
	}
	a.Tallies[r.Strategy] = t
}

// Merge folds another aggregate into this one. Results are re-sorted by
// trial ordinal afterward so a concurrent run emits the same ordered
// collection as a sequential one with the same seed.
func (a *Aggregate) Merge(other *Aggregate) {
	a.Results = append(a.Results, other.Results...)
	for strategy, t := range other.Tallies {
		cur := a.Tallies[strategy]
		cur.Wins += t.Wins
		cur.Total += t.Total
		a.Tallies[strategy] = cur
	}
	sort.SliceStable(a.Results, func(i, j int) bool {
		if a.Results[i].Trial != a.Results[j].Trial {
			return a.Results[i].Trial < a.Results[j].Trial
		}
		// Stay sorts before Switch within one play-through
		return a.Results[i].Strategy < a.Results[j].Strategy
	})
}

// Trials returns the number of play-throughs represented here
func (a *Aggregate) Trials() int {
	return len(a.Results) / 2
}

// WinRate returns the raw win proportion for a strategy, failing on an
// empty tally rather than dividing by zero
func (a *Aggregate) WinRate(strategy game.Strategy) (float64, error) {
	t := a.Tallies[strategy]
	if t.Total == 0 {
		return 0, core.ErrNoTrials
	}
	return t.Proportion(), nil
}

// RoundedWinRate returns the win proportion rounded to two decimal places,
// the precision reported by the summary table
func (a *Aggregate) RoundedWinRate(strategy game.Strategy) (float64, error) {
	rate, err := a.WinRate(strategy)
	if err != nil {
		return 0, err
	}
	return stats.Round(rate, 2)
}
