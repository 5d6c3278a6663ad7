package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"montyhall/adapters/report"
	"montyhall/app"
	"montyhall/internal/config"
	"montyhall/ports"
)

// App represents the HTTP API application
type App struct {
	router   *chi.Mux
	sim      *app.SimulationService
	store    ports.RunStorePort
	markdown *report.MarkdownReporter
	defaults config.SimulationConfig
}

// NewApp creates the API application around a simulation service and the
// run store it saves into
func NewApp(sim *app.SimulationService, store ports.RunStorePort, defaults config.SimulationConfig) *App {
	a := &App{
		router:   chi.NewRouter(),
		sim:      sim,
		store:    store,
		markdown: report.NewMarkdownReporter(),
		defaults: defaults,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/healthz", a.handleHealth)

	a.router.Post("/simulations", a.handleRunSimulation)
	a.router.Get("/simulations", a.handleListSimulations)
	a.router.Get("/simulations/{runID}", a.handleGetSimulation)
	a.router.Get("/simulations/{runID}/report", a.handleSimulationReport)
}

// Router returns the configured chi router
func (a *App) Router() http.Handler {
	return a.router
}

// Serve starts the HTTP server on the given port
func (a *App) Serve(port string) error {
	addr := fmt.Sprintf(":%s", port)
	return http.ListenAndServe(addr, a.router)
}
