package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

var helperShow int

var helperCmd = &cobra.Command{
	Use:   "helper",
	Short: "Suggest guesses for a game played elsewhere",
	Long: `Suggest guesses for a game played elsewhere.

After each suggestion, enter the word you played and the feedback you got as
digits, one per letter: 0 absent, 1 present elsewhere, 2 correct. For example
"crane" and "00210".`,
	RunE: runHelper,
}

func init() {
	helperCmd.Flags().IntVar(&helperShow, "show", 5, "suggestions to print per attempt")
}

func runHelper(cmd *cobra.Command, _ []string) error {
	st, closeCache, err := openCache()
	if err != nil {
		return err
	}
	defer closeCache()

	v, err := loadVocabulary(st)
	if err != nil {
		return err
	}
	s, err := solver.New(v, nil, solver.Options{
		Cache:       st,
		Rebuild:     rebuild,
		MaxAttempts: cfg.MaxAttempts,
		TopN:        cfg.TopN,
	})
	if err != nil {
		return err
	}
	return assist(s, cfg.MaxAttempts, helperShow, cmd.InOrStdin(), cmd.OutOrStdout())
}

// assist runs the suggestion loop until the reported feedback is all correct,
// the attempts run out or the candidates do.
func assist(s *solver.Solver, maxAttempts, show int, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	prompt := func(label string) (string, bool) {
		fmt.Fprint(out, label)
		if !sc.Scan() {
			return "", false
		}
		return strings.TrimSpace(sc.Text()), true
	}

	for s.Attempts() < maxAttempts {
		opts := s.BestOptions()
		if len(opts) == 0 {
			fmt.Fprintln(out, "No candidates left.")
			return nil
		}
		fmt.Fprintf(out, "Attempt %d/%d, %d candidates\n", s.Attempts()+1, maxAttempts, len(s.ValidWords()))
		for i, o := range opts {
			if i == show {
				break
			}
			fmt.Fprintf(out, "  %s %6.2f%%\n", o.Word, o.Coverage)
		}

		word, ok := prompt(fmt.Sprintf("Word played [%s]: ", opts[0].Word))
		if !ok {
			return sc.Err()
		}
		if word == "" {
			word = opts[0].Word
		}
		pattern, ok := prompt("Feedback: ")
		if !ok {
			return sc.Err()
		}

		fb, err := game.ParseFeedback(word, pattern)
		if err == nil {
			err = s.Record(word, fb)
		}
		switch {
		case errors.Is(err, game.ErrInvalidFeedback), errors.Is(err, solver.ErrInvalidValue):
			fmt.Fprintf(out, "Invalid feedback: %v\n", err)
			continue
		case err != nil:
			return err
		}

		if fb.Solved() {
			fmt.Fprintf(out, "Congratulations! Solution: %s\n", fb.Word())
			return nil
		}
	}
	fmt.Fprintln(out, "Out of attempts.")
	return nil
}
