package main

import (
	"encoding/json"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-solver/internal/evaluate"
)

var (
	evalWorkers int
	evalRerun   bool
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Let the solver play every word and summarise the results",
	RunE:  runEvaluate,
}

func init() {
	evaluateCmd.Flags().IntVar(&evalWorkers, "workers", 0, "concurrent games (default from config)")
	evaluateCmd.Flags().BoolVar(&evalRerun, "rerun", false, "ignore a stored evaluation")
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	st, closeCache, err := openCache()
	if err != nil {
		return err
	}
	defer closeCache()

	v, err := loadVocabulary(st)
	if err != nil {
		return err
	}

	workers := cfg.Evaluate.Workers
	if cmd.Flags().Changed("workers") {
		workers = evalWorkers
	}
	report, err := evaluate.LoadOrRun(cmd.Context(), v, evaluate.Options{
		Workers:     workers,
		Cache:       st,
		Rerun:       evalRerun || rebuild,
		MaxAttempts: cfg.MaxAttempts,
		TopN:        cfg.TopN,
		Progress:    cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	perf := evaluate.Analyse(report)
	log.Info().
		Int("total", perf.TotalCount).
		Int("solved", perf.SuccessCount).
		Float64("success_rate", perf.SuccessRate).
		Msg("evaluation complete")

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(perf)
}
