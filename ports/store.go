package ports

import (
	"context"

	"montyhall/domain/core"
	"montyhall/domain/trial"
)

// StoredRun is an aggregated run held by the run store
type StoredRun struct {
	RunID       core.RunID          `json:"run_id"`
	Seed        int64               `json:"seed"`
	Trials      int                 `json:"trials"`
	Fingerprint core.RunFingerprint `json:"fingerprint"`
	RuntimeMs   int64               `json:"runtime_ms"`
	Aggregate   *trial.Aggregate    `json:"aggregate"`
}

// RunStorePort keeps completed runs addressable by ID for the API surface.
// Implementations are in-memory only; runs do not outlive the process.
type RunStorePort interface {
	Save(ctx context.Context, run StoredRun) error
	Get(ctx context.Context, id core.RunID) (StoredRun, error)
	List(ctx context.Context) ([]StoredRun, error)
}
