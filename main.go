package main

import (
	"log"

	"github.com/joho/godotenv"

	"montyhall/adapters/memory"
	"montyhall/adapters/rng"
	"montyhall/api"
	"montyhall/app"
	"montyhall/internal/config"
)

func main() {
	// Load .env if present; real env vars win
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	store := memory.NewRunStore()
	sim := app.NewSimulationService(rng.NewSeededAdapter(), store)
	server := api.NewApp(sim, store, cfg.Simulation)

	log.Printf("Starting simulation API on :%s", cfg.Server.Port)
	if err := server.Serve(cfg.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
