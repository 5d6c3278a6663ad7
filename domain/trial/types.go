package trial

import (
	"montyhall/domain/game"
)

// Result records one strategy's outcome within a single play-through
type Result struct {
	Trial    int           `json:"trial"`
	Strategy game.Strategy `json:"strategy"`
	Outcome  game.Outcome  `json:"outcome"`
}

// Won reports whether the recorded outcome is a win
func (r Result) Won() bool {
	return r.Outcome == game.Win
}

// Tally holds win/total counts for one strategy
type Tally struct {
	Wins  int `json:"wins"`
	Total int `json:"total"`
}

// Proportion returns wins/total, or 0 when no trials were recorded.
// Callers that need to distinguish "no data" from "never won" must check
// Total themselves; the aggregate surfaces guard the empty case upstream.
func (t Tally) Proportion() float64 {
	if t.Total == 0 {
		return 0
	}
	return float64(t.Wins) / float64(t.Total)
}
