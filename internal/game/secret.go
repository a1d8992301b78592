package game

import (
	crand "crypto/rand"
	"errors"
	"math/big"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/robalobadob/wordle/apps/go-solver/internal/daily"
)

// ErrEmptyVocabulary is returned by New when there is no word to pick a secret from.
var ErrEmptyVocabulary = errors.New("game: empty vocabulary")

// Options configures New.
type Options struct {
	// Word is an explicit secret. A word outside the vocabulary is replaced by a drawn one.
	Word string
	// Seed makes the draw reproducible.
	Seed *uint64
	// Today draws the word of the day for Date (now when zero), keyed by Salt.
	Today bool
	Date  time.Time
	Salt  string

	MaxAttempts int             // DefaultMaxAttempts when <= 0
	Logger      *zerolog.Logger // defaults to the global logger
}

// chooseSecret picks the secret word. Precedence: a valid explicit word, then Seed,
// then Today, then a crypto-random draw. All draws index the sorted vocabulary, so
// the same seed or date yields the same word for the same word list.
func chooseSecret(v Vocabulary, opts Options, logger zerolog.Logger) (string, error) {
	if w := strings.ToLower(strings.TrimSpace(opts.Word)); w != "" {
		if v.IsWord(w) {
			return w, nil
		}
		logger.Warn().Str("word", w).Msg("secret not in vocabulary; drawing one instead")
	}

	words := v.Words()
	n := len(words)
	if n == 0 {
		return "", ErrEmptyVocabulary
	}

	switch {
	case opts.Seed != nil:
		r := rand.New(rand.NewPCG(*opts.Seed, *opts.Seed))
		return words[r.IntN(n)], nil
	case opts.Today:
		date := opts.Date
		if date.IsZero() {
			date = time.Now()
		}
		return daily.Pick(words, date, opts.Salt), nil
	}

	i, err := crand.Int(crand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return "", err
	}
	return words[i.Int64()], nil
}
