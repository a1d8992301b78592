package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Let the solver guess the secret word",
	RunE:  runSolve,
}

func init() {
	addSecretFlags(solveCmd)
}

func runSolve(cmd *cobra.Command, _ []string) error {
	st, closeCache, err := openCache()
	if err != nil {
		return err
	}
	defer closeCache()

	v, err := loadVocabulary(st)
	if err != nil {
		return err
	}
	g, err := newGame(cmd, v)
	if err != nil {
		return err
	}
	s, err := solver.New(v, g, solver.Options{Cache: st, Rebuild: rebuild, TopN: cfg.TopN})
	if err != nil {
		return err
	}
	return watch(g, s, cmd.OutOrStdout())
}

// watch drives the solver one guess at a time and prints every attempt.
func watch(g *game.Game, s *solver.Solver, out io.Writer) error {
	for !g.Solved() && !g.Failed() {
		if err := s.Guess(""); err != nil {
			return err
		}
		hist := g.History()
		if len(hist) == 0 {
			return fmt.Errorf("solver made no accepted guess: %w", solver.ErrExhausted)
		}
		last := hist[len(hist)-1]
		fmt.Fprintf(out, "Attempt %d: %s %s (%d candidates left)\n",
			g.Attempts(), last.Word, last.Feedback.Pattern(), len(s.ValidWords()))
	}
	if g.Solved() {
		fmt.Fprintf(out, "Solution: %s\n", g.Secret())
		return nil
	}
	fmt.Fprintf(out, "The word was '%s'.\n", g.Secret())
	return nil
}
