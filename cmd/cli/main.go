package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"montyhall/adapters/memory"
	"montyhall/adapters/report"
	"montyhall/adapters/rng"
	"montyhall/app"
	"montyhall/internal/config"
	"montyhall/ports"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "montyhall",
		Short: "Monty Hall simulator comparing stay and switch strategies",
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newPlayCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var trials int
	var seed int64
	var workers int
	var format string
	var excelPath string
	var reportPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run n paired play-throughs and print win-rate statistics",
		Long: `Run n play-throughs, evaluating both strategies against the same game,
pick, and reveal in each one, then print the aggregated win rates.

Example: montyhall run --trials 10000 --seed 42 --workers 4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("trials") {
				trials = cfg.Simulation.DefaultTrials
			}
			if !cmd.Flags().Changed("workers") {
				workers = cfg.Simulation.DefaultWorkers
			}
			if !cmd.Flags().Changed("seed") {
				seed = cfg.Simulation.DefaultSeed
			}
			if seed == 0 {
				seed = time.Now().UnixNano()
			}

			store := memory.NewRunStore()
			sim := app.NewSimulationService(rng.NewSeededAdapter(), store)

			result, err := sim.Run(cmd.Context(), app.RunRequest{
				Trials:  trials,
				Seed:    seed,
				Workers: workers,
			})
			if err != nil {
				return err
			}

			stored, err := store.Get(cmd.Context(), result.RunID)
			if err != nil {
				return err
			}

			if excelPath != "" {
				if err := writeReport(report.NewExcelReporter(), stored, excelPath); err != nil {
					return err
				}
				fmt.Printf("wrote workbook to %s\n", excelPath)
			}
			if reportPath != "" {
				if err := writeReport(report.NewMarkdownReporter(), stored, reportPath); err != nil {
					return err
				}
				fmt.Printf("wrote report to %s\n", reportPath)
			}

			switch format {
			case "json":
				return json.NewEncoder(os.Stdout).Encode(result)
			case "table":
				out, err := report.NewTableReporter().Report(stored)
				if err != nil {
					return err
				}
				fmt.Print(string(out))
				return nil
			default:
				return fmt.Errorf("unknown format %q (want table or json)", format)
			}
		},
	}

	cmd.Flags().IntVar(&trials, "trials", 10000, "number of play-throughs")
	cmd.Flags().Int64Var(&seed, "seed", 0, "base seed (0 derives from wall clock)")
	cmd.Flags().IntVar(&workers, "workers", 1, "concurrent trial workers")
	cmd.Flags().StringVar(&format, "format", "table", "output format: table or json")
	cmd.Flags().StringVar(&excelPath, "excel", "", "also write an xlsx workbook to this path")
	cmd.Flags().StringVar(&reportPath, "report", "", "also write a markdown report to this path")

	return cmd
}

func newPlayCmd() *cobra.Command {
	var seed int64

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a single game and show both strategies' outcomes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if seed == 0 {
				seed = time.Now().UnixNano()
			}

			sim := app.NewSimulationService(rng.NewSeededAdapter(), nil)
			results, err := sim.PlayGame(cmd.Context(), seed)
			if err != nil {
				return err
			}
			for _, r := range results {
				fmt.Printf("%s: %s\n", r.Strategy, r.Outcome)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 0, "seed for the play-through (0 derives from wall clock)")

	return cmd
}

func writeReport(reporter ports.ReporterPort, run ports.StoredRun, path string) error {
	out, err := reporter.Report(run)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}
