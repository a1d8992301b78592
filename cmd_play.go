package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/vocab"
)

var (
	secretWord   string
	secretSeed   uint64
	secretToday  bool
	secretRandom bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Guess the secret word yourself",
	RunE:  runPlay,
}

func init() {
	addSecretFlags(playCmd)
}

// addSecretFlags registers the flags choosing the secret word.
func addSecretFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&secretWord, "word", "", "use this secret (must be in the word list)")
	cmd.Flags().Uint64Var(&secretSeed, "seed", 0, "draw the secret reproducibly from this seed")
	cmd.Flags().BoolVar(&secretToday, "today", false, "play the word of the day")
	cmd.Flags().BoolVar(&secretRandom, "random", false, "draw a random secret (default)")
	cmd.MarkFlagsMutuallyExclusive("word", "seed", "today", "random")
}

// newGame builds a game from the secret flags.
func newGame(cmd *cobra.Command, v *vocab.Vocabulary) (*game.Game, error) {
	opts := game.Options{
		Word:        secretWord,
		Today:       secretToday,
		Salt:        cfg.Server.DailySalt,
		MaxAttempts: cfg.MaxAttempts,
	}
	if cmd.Flags().Changed("seed") {
		seed := secretSeed
		opts.Seed = &seed
	}
	return game.New(v, opts)
}

func runPlay(cmd *cobra.Command, _ []string) error {
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
	return play(g, cmd.InOrStdin(), cmd.OutOrStdout())
}

// play runs an interactive game reading one guess per line from in.
func play(g *game.Game, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	for !g.Solved() && !g.Failed() {
		fmt.Fprintf(out, "Attempt %d/%d\n", g.Attempts()+1, g.MaxAttempts())
		fmt.Fprint(out, "Guess: ")
		if !sc.Scan() {
			fmt.Fprintf(out, "\nThe word was '%s'.\n", g.Secret())
			return sc.Err()
		}
		word := strings.ToLower(strings.TrimSpace(sc.Text()))
		fb := g.Guess(word)
		if len(fb) == 0 {
			fmt.Fprintf(out, "'%s' is not accepted (unknown or already guessed).\n", word)
			continue
		}
		fmt.Fprintf(out, "%s %s\n", fb.Word(), fb.Pattern())
	}
	return finish(g, out)
}

// finish prints the end-of-game message.
func finish(g *game.Game, out io.Writer) error {
	switch {
	case g.Solved():
		fmt.Fprintf(out, "Congratulations! Solution: %s (%d attempts)\n", g.Secret(), g.Attempts())
	case g.Failed():
		fmt.Fprintf(out, "The word was '%s'.\n", g.Secret())
	default:
		return errors.New("game is still in progress")
	}
	return nil
}
