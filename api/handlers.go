package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"montyhall/app"
	"montyhall/domain/core"
	"montyhall/domain/game"
	"montyhall/domain/trial"
	"montyhall/internal/analysis"
)

// runSimulationRequest is the POST /simulations body. Zero values fall back
// to the configured defaults; a zero seed is derived from the wall clock.
type runSimulationRequest struct {
	Trials  int   `json:"trials"`
	Seed    int64 `json:"seed"`
	Workers int   `json:"workers"`
}

// simulationResponse summarizes a completed run without the full result
// stream; GET /simulations/{runID} returns the stored run with all records
type simulationResponse struct {
	RunID       core.RunID                    `json:"run_id"`
	Seed        int64                         `json:"seed"`
	Trials      int                           `json:"trials"`
	Fingerprint core.RunFingerprint           `json:"fingerprint"`
	RuntimeMs   int64                         `json:"runtime_ms"`
	Tallies     map[game.Strategy]trial.Tally `json:"tallies"`
	Summary     analysis.RunSummary           `json:"summary"`
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) handleRunSimulation(w http.ResponseWriter, r *http.Request) {
	var req runSimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Trials == 0 {
		req.Trials = a.defaults.DefaultTrials
	}
	if req.Workers == 0 {
		req.Workers = a.defaults.DefaultWorkers
	}
	if req.Seed == 0 {
		req.Seed = a.defaults.DefaultSeed
	}
	if req.Seed == 0 {
		req.Seed = time.Now().UnixNano()
	}

	result, err := a.sim.Run(r.Context(), app.RunRequest{
		Trials:  req.Trials,
		Seed:    req.Seed,
		Workers: req.Workers,
	})
	if err != nil {
		a.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, simulationResponse{
		RunID:       result.RunID,
		Seed:        result.Seed,
		Trials:      result.Trials,
		Fingerprint: result.Fingerprint,
		RuntimeMs:   result.RuntimeMs,
		Tallies:     result.Aggregate.Tallies,
		Summary:     result.Summary,
	})
}

func (a *App) handleListSimulations(w http.ResponseWriter, r *http.Request) {
	runs, err := a.store.List(r.Context())
	if err != nil {
		a.writeDomainError(w, err)
		return
	}

	responses := make([]simulationResponse, 0, len(runs))
	for _, run := range runs {
		summary, err := analysis.Summarize(run.Aggregate)
		if err != nil {
			a.writeDomainError(w, err)
			return
		}
		responses = append(responses, simulationResponse{
			RunID:       run.RunID,
			Seed:        run.Seed,
			Trials:      run.Trials,
			Fingerprint: run.Fingerprint,
			RuntimeMs:   run.RuntimeMs,
			Tallies:     run.Aggregate.Tallies,
			Summary:     summary,
		})
	}
	writeJSON(w, http.StatusOK, responses)
}

func (a *App) handleGetSimulation(w http.ResponseWriter, r *http.Request) {
	runID := core.RunID(chi.URLParam(r, "runID"))

	run, err := a.store.Get(r.Context(), runID)
	if err != nil {
		a.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (a *App) handleSimulationReport(w http.ResponseWriter, r *http.Request) {
	runID := core.RunID(chi.URLParam(r, "runID"))

	run, err := a.store.Get(r.Context(), runID)
	if err != nil {
		a.writeDomainError(w, err)
		return
	}

	htmlBytes, err := a.markdown.RenderHTML(run)
	if err != nil {
		a.writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(htmlBytes); err != nil {
		log.Printf("writing report response: %v", err)
	}
}

func (a *App) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case core.IsNotFoundError(err):
		writeError(w, http.StatusNotFound, err.Error())
	case core.IsPreconditionError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("simulation error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
