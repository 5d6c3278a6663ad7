package testkit

import (
	"math/rand"

	"montyhall/domain/core"
	"montyhall/domain/game"
	"montyhall/domain/trial"
	"montyhall/ports"
)

// Stream returns a deterministic RNG for tests
func Stream(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// SampleRun builds a stored run with a deterministic outcome pattern: the
// stay strategy wins every third trial, so a trial count divisible by 3
// yields exactly the 1/3 and 2/3 proportions the puzzle predicts
func SampleRun(id core.RunID, trials int) ports.StoredRun {
	agg := trial.NewAggregate()
	var outcomes []byte
	for i := 0; i < trials; i++ {
		stayOutcome, switchOutcome := game.Lose, game.Win
		if i%3 == 0 {
			stayOutcome, switchOutcome = game.Win, game.Lose
		}
		agg.Add(trial.Result{Trial: i, Strategy: game.Stay, Outcome: stayOutcome})
		agg.Add(trial.Result{Trial: i, Strategy: game.Switch, Outcome: switchOutcome})
		for _, o := range []game.Outcome{stayOutcome, switchOutcome} {
			if o == game.Win {
				outcomes = append(outcomes, 'W')
			} else {
				outcomes = append(outcomes, 'L')
			}
		}
	}
	return ports.StoredRun{
		RunID:       id,
		Seed:        42,
		Trials:      trials,
		Fingerprint: core.ComputeRunFingerprint(42, trials, outcomes),
		RuntimeMs:   3,
		Aggregate:   agg,
	}
}
