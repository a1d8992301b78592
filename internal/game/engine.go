// internal/game/engine.go
//
// Core game engine for a single puzzle.
// Responsibilities:
//   - Create new games against a vocabulary, choosing the secret (secret.go).
//   - Reject guesses that cannot count (finished game, repeated word, unknown word)
//     without consuming an attempt.
//   - Score guesses using the classic two-pass algorithm.
//   - Track state transitions: playing → won/lost.
//
// A Game is not safe for concurrent use; callers that share one (the HTTP session
// store) serialise access themselves.
package game

import (
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DefaultMaxAttempts is the classic number of rows.
const DefaultMaxAttempts = 6

// Vocabulary is the part of vocab.Vocabulary the engine needs.
type Vocabulary interface {
	IsWord(w string) bool
	Words() []string
	WordLength() int
}

// Game holds the state of a single game.
type Game struct {
	id          string
	vocab       Vocabulary
	secret      string
	maxAttempts int
	attempts    int
	solved      bool
	failed      bool
	history     []GuessRecord
	attempted   map[string]struct{}
}

// New constructs a game. The secret is chosen as described on Options.
// It fails only when the vocabulary is empty.
func New(v Vocabulary, opts Options) (*Game, error) {
	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	secret, err := chooseSecret(v, opts, logger.With().Str("component", "game").Logger())
	if err != nil {
		return nil, err
	}
	maxAttempts := opts.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Game{
		id:          uuid.NewString(),
		vocab:       v,
		secret:      secret,
		maxAttempts: maxAttempts,
		attempted:   make(map[string]struct{}),
	}, nil
}

// Guess scores word against the secret and advances the game.
//
// The result is empty, and no attempt is consumed, when:
//   - the game is already solved or failed;
//   - word was already guessed in this game;
//   - word is not in the vocabulary.
//
// Otherwise the attempt counter increases; the game is solved when every position
// scored Correct, and failed when the attempts run out first.
func (g *Game) Guess(word string) Feedback {
	word = strings.ToLower(strings.TrimSpace(word))
	if g.solved || g.failed {
		return nil
	}
	if _, ok := g.attempted[word]; ok {
		return nil
	}
	if !g.vocab.IsWord(word) {
		return nil
	}

	fb := ScoreGuess(g.secret, word)
	g.attempted[word] = struct{}{}
	g.history = append(g.history, GuessRecord{Word: word, Feedback: fb})
	g.attempts++

	if fb.Solved() {
		g.solved = true
	} else if g.attempts >= g.maxAttempts {
		g.failed = true
	}
	return fb
}

// ScoreGuess implements the two-pass scoring algorithm.
//
// Pass 1:
//   - Mark exact matches as Correct.
//   - Count the remaining (non-matched) secret letters into an availability pool.
//
// Pass 2:
//   - For each other guess letter: if the pool still holds that letter, mark it
//     Present and take one from the pool; otherwise mark it Absent.
//
// A guessed letter is therefore never credited more often than it occurs in the
// secret. ScoreGuess returns nil when the lengths differ.
func ScoreGuess(secret, guess string) Feedback {
	s, gs := []rune(secret), []rune(guess)
	if len(s) != len(gs) {
		return nil
	}
	fb := make(Feedback, len(gs))
	pool := make(map[rune]int, len(s))

	for i, r := range gs {
		fb[i].Letter = r
		if r == s[i] {
			fb[i].Score = Correct
		} else {
			pool[s[i]]++
		}
	}

	for i, r := range gs {
		if fb[i].Score == Correct {
			continue
		}
		if pool[r] > 0 {
			fb[i].Score = Present
			pool[r]--
		} else {
			fb[i].Score = Absent
		}
	}
	return fb
}

// State reports a coarse string form of the game state.
func (g *Game) State() string {
	switch {
	case g.solved:
		return "won"
	case g.failed:
		return "lost"
	}
	return "playing"
}

// LetterPositions maps each letter of the secret to the positions it occupies.
func (g *Game) LetterPositions() map[rune][]int {
	out := make(map[rune][]int)
	for i, r := range []rune(g.secret) {
		out[r] = append(out[r], i)
	}
	return out
}

// History returns the accepted guesses in order.
func (g *Game) History() []GuessRecord {
	out := make([]GuessRecord, len(g.history))
	copy(out, g.history)
	return out
}

func (g *Game) ID() string       { return g.id }
func (g *Game) Secret() string   { return g.secret }
func (g *Game) Attempts() int    { return g.attempts }
func (g *Game) MaxAttempts() int { return g.maxAttempts }
func (g *Game) Solved() bool     { return g.solved }
func (g *Game) Failed() bool     { return g.failed }
func (g *Game) WordLength() int  { return g.vocab.WordLength() }
