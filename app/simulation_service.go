package app

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"montyhall/domain/core"
	"montyhall/domain/game"
	"montyhall/domain/trial"
	"montyhall/internal/analysis"
	"montyhall/ports"
)

// SimulationService runs Monty Hall play-throughs and aggregates paired
// stay/switch outcomes into win-rate statistics
type SimulationService struct {
	rngPort ports.RNGPort
	store   ports.RunStorePort
}

// RunRequest defines the inputs for one deterministic simulation run
type RunRequest struct {
	Trials  int
	Seed    int64
	Workers int
	RunID   core.RunID // optional, will be generated if empty
}

// RunResult contains the complete output of a simulation run
type RunResult struct {
	RunID       core.RunID          `json:"run_id"`
	Seed        int64               `json:"seed"`
	Trials      int                 `json:"trials"`
	Fingerprint core.RunFingerprint `json:"fingerprint"`
	RuntimeMs   int64               `json:"runtime_ms"`
	Aggregate   *trial.Aggregate    `json:"aggregate"`
	Summary     analysis.RunSummary `json:"summary"`
}

// NewSimulationService creates a simulation service. The store may be nil
// for callers that only want the returned result.
func NewSimulationService(rngPort ports.RNGPort, store ports.RunStorePort) *SimulationService {
	return &SimulationService{
		rngPort: rngPort,
		store:   store,
	}
}

// PlayGame executes one full play-through on a dedicated seeded stream and
// returns the paired results, stay first
func (s *SimulationService) PlayGame(ctx context.Context, seed int64) ([]trial.Result, error) {
	stream, err := s.rngPort.SeededStream(ctx, "play-game", seed)
	if err != nil {
		return nil, fmt.Errorf("creating play-game stream: %w", err)
	}
	pair, err := playThrough(stream, 0)
	if err != nil {
		return nil, err
	}
	return pair[:], nil
}

// Run executes req.Trials play-throughs, aggregates the 2n results, and
// computes the statistical summary. With Workers > 1 trials execute under
// a weighted semaphore; every trial owns an RNG stream derived from
// (runID, ordinal, seed), so the aggregate is identical either way.
func (s *SimulationService) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	if req.Trials < 1 {
		return nil, fmt.Errorf("%w: got %d", core.ErrNoTrials, req.Trials)
	}

	runID := req.RunID
	if runID == "" {
		runID = core.NewRunID()
	}
	workers := req.Workers
	if workers < 1 {
		workers = 1
	}

	startTime := time.Now()

	var agg *trial.Aggregate
	var err error
	if workers == 1 {
		agg, err = s.runSequential(ctx, runID, req)
	} else {
		agg, err = s.runConcurrent(ctx, runID, req, workers)
	}
	if err != nil {
		return nil, err
	}

	summary, err := analysis.Summarize(agg)
	if err != nil {
		return nil, fmt.Errorf("summarizing run %s: %w", runID, err)
	}

	runtimeMs := time.Since(startTime).Milliseconds()
	result := &RunResult{
		RunID:       runID,
		Seed:        req.Seed,
		Trials:      req.Trials,
		Fingerprint: fingerprint(req.Seed, req.Trials, agg),
		RuntimeMs:   runtimeMs,
		Aggregate:   agg,
		Summary:     summary,
	}

	if s.store != nil {
		stored := ports.StoredRun{
			RunID:       result.RunID,
			Seed:        result.Seed,
			Trials:      result.Trials,
			Fingerprint: result.Fingerprint,
			RuntimeMs:   result.RuntimeMs,
			Aggregate:   result.Aggregate,
		}
		if err := s.store.Save(ctx, stored); err != nil {
			return nil, fmt.Errorf("storing run %s: %w", runID, err)
		}
	}

	log.Printf("[Simulation] run %s: %d trials, %d workers, %dms", runID, req.Trials, workers, runtimeMs)
	return result, nil
}

func (s *SimulationService) runSequential(ctx context.Context, runID core.RunID, req RunRequest) (*trial.Aggregate, error) {
	agg := trial.NewAggregate()
	for i := 0; i < req.Trials; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		stream, err := s.rngPort.TrialStream(ctx, runID, i, req.Seed)
		if err != nil {
			return nil, fmt.Errorf("creating stream for trial %d: %w", i, err)
		}
		pair, err := playThrough(stream, i)
		if err != nil {
			return nil, err
		}
		agg.Add(pair[0])
		agg.Add(pair[1])
	}
	return agg, nil
}

func (s *SimulationService) runConcurrent(ctx context.Context, runID core.RunID, req RunRequest, workers int) (*trial.Aggregate, error) {
	sem := semaphore.NewWeighted(int64(workers))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		agg      = trial.NewAggregate()
		firstErr error
	)

	for i := 0; i < req.Trials; i++ {
		if err := sem.Acquire(ctx, 1); err != nil {
			recordErr(&mu, &firstErr, err)
			break
		}

		wg.Add(1)
		go func(ordinal int) {
			defer wg.Done()
			defer sem.Release(1)

			stream, err := s.rngPort.TrialStream(ctx, runID, ordinal, req.Seed)
			if err != nil {
				recordErr(&mu, &firstErr, fmt.Errorf("creating stream for trial %d: %w", ordinal, err))
				return
			}
			pair, err := playThrough(stream, ordinal)
			if err != nil {
				recordErr(&mu, &firstErr, err)
				return
			}

			partial := trial.NewAggregate()
			partial.Add(pair[0])
			partial.Add(pair[1])

			mu.Lock()
			agg.Merge(partial)
			mu.Unlock()
		}(i)
	}

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return agg, nil
}

// playThrough composes one game: setup, contestant pick, host reveal, then
// both strategies resolved and judged against the identical position. The
// shared game/pick/reveal is what makes the stay/switch comparison a
// paired experiment.
func playThrough(stream *rand.Rand, ordinal int) ([2]trial.Result, error) {
	g := game.New(stream)
	pick := game.SelectDoor(stream)

	revealed, err := game.RevealGoatDoor(g, pick, stream)
	if err != nil {
		return [2]trial.Result{}, fmt.Errorf("trial %d reveal: %w", ordinal, err)
	}

	var pair [2]trial.Result
	for i, strategy := range game.Strategies() {
		finalPick, err := game.ResolveFinalPick(strategy, revealed, pick)
		if err != nil {
			return [2]trial.Result{}, fmt.Errorf("trial %d %s resolve: %w", ordinal, strategy, err)
		}
		outcome, err := game.Judge(finalPick, g)
		if err != nil {
			return [2]trial.Result{}, fmt.Errorf("trial %d %s judge: %w", ordinal, strategy, err)
		}
		pair[i] = trial.Result{Trial: ordinal, Strategy: strategy, Outcome: outcome}
	}
	return pair, nil
}

// fingerprint folds the ordered outcome stream into the run fingerprint
func fingerprint(seed int64, trials int, agg *trial.Aggregate) core.RunFingerprint {
	outcomes := make([]byte, 0, len(agg.Results))
	for _, r := range agg.Results {
		if r.Won() {
			outcomes = append(outcomes, 'W')
		} else {
			outcomes = append(outcomes, 'L')
		}
	}
	return core.ComputeRunFingerprint(seed, trials, outcomes)
}

func recordErr(mu *sync.Mutex, dst *error, err error) {
	mu.Lock()
	defer mu.Unlock()
	if *dst == nil {
		*dst = err
	}
}
