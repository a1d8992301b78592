// internal/solver/solver.go
//
// Coverage-graph solver.
// Responsibilities:
//   - Keep the candidate set (ValidWordSet) and the letter graph over it.
//   - Fold each guess's feedback into KnownLetters and narrow the candidates (HandleResult).
//   - Rank candidates by coverage and pick the next guess (coverage.go, BestOptions).
//   - Drive an attached game until it is solved or failed (Guess, Solve).
//
// Notes:
//   - The candidate set only shrinks; every shrink resets the coverage memo.
//   - The initial coverage of the full vocabulary is read from, or written to, the
//     cache entry "coverage".
//   - A Solver is not safe for concurrent use.

package solver

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/cache"
	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/vocab"
)

// DefaultTopN is the number of options BestOptions ranks by coverage.
const DefaultTopN = 10

var (
	// ErrInvalidValue is returned by HandleResult for malformed feedback.
	ErrInvalidValue = errors.New("solver: invalid feedback value")

	// ErrExhausted is returned by Guess when no candidate is left. The accumulated
	// constraints contradict each other; retrying cannot help.
	ErrExhausted = errors.New("solver: no candidate words left")

	// ErrNoGame is returned by Guess and Solve when no game is attached.
	ErrNoGame = errors.New("solver: no game attached")
)

// Game is the part of the game engine the solver drives.
type Game interface {
	Guess(word string) game.Feedback
	Solved() bool
	Failed() bool
	Attempts() int
	MaxAttempts() int
}

// Options configures New.
type Options struct {
	Cache       cache.Store     // optional; initial coverage is persisted here
	Rebuild     bool            // ignore a cached coverage entry
	MaxAttempts int             // attempt budget without a game; game.DefaultMaxAttempts when <= 0
	TopN        int             // DefaultTopN when <= 0
	Logger      *zerolog.Logger // defaults to the global logger
}

// Solver narrows a vocabulary down to the secret word.
type Solver struct {
	vocab       *vocab.Vocabulary
	game        Game
	logger      zerolog.Logger
	maxAttempts int
	topN        int

	valid     map[string]struct{}
	graph     *CoverageGraph
	known     KnownLetters
	suggested map[string]struct{}
	attempts  int
	coverage  map[string]float64
}

// New builds a solver over every word of v. g may be nil for helper mode, where
// feedback arrives through Record instead of an attached game.
func New(v *vocab.Vocabulary, g Game, opts Options) (*Solver, error) {
	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	s := &Solver{
		vocab:       v,
		game:        g,
		logger:      logger.With().Str("component", "solver").Logger(),
		maxAttempts: opts.MaxAttempts,
		topN:        opts.TopN,
		valid:       make(map[string]struct{}, v.Len()),
		graph:       newCoverageGraph(v.Words()),
		known:       make(KnownLetters),
		suggested:   make(map[string]struct{}),
		coverage:    make(map[string]float64),
	}
	if s.maxAttempts <= 0 {
		s.maxAttempts = game.DefaultMaxAttempts
	}
	if s.topN <= 0 {
		s.topN = DefaultTopN
	}
	for _, w := range v.Words() {
		s.valid[w] = struct{}{}
	}

	if opts.Cache != nil {
		if err := s.loadCoverage(opts.Cache, opts.Rebuild); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// loadCoverage seeds the memo from the cache, or computes and stores it.
func (s *Solver) loadCoverage(store cache.Store, rebuild bool) error {
	if !rebuild {
		var cached map[string]float64
		ok, err := store.Load(cache.EntryCoverage, &cached)
		if err != nil {
			return err
		}
		if ok {
			for w, c := range cached {
				if _, valid := s.valid[w]; valid {
					s.coverage[w] = c
				}
			}
			return nil
		}
	}
	return store.Save(cache.EntryCoverage, s.Coverage())
}

// BestOptions returns the next guesses to try, best first.
//
// Candidates not matching the fixed letters are dropped first. When the remaining
// attempts cover every candidate, all of them are returned so the secret stays
// reachable; otherwise the TopN by coverage are. Words already suggested are never
// returned.
func (s *Solver) BestOptions() []Option {
	var filtered []string
	for _, w := range s.ValidWords() {
		if s.matchesFixed(w) {
			filtered = append(filtered, w)
		}
	}

	if s.remainingAttempts() >= len(filtered) {
		return s.rank(filtered, -1, nil, s.suggested, nil)
	}
	if opts := s.rank(filtered, s.topN, nil, s.suggested, nil); len(opts) > 0 {
		return opts
	}
	return s.rank(filtered, -1, nil, s.suggested, nil)
}

func (s *Solver) matchesFixed(w string) bool {
	rs := []rune(w)
	for l, st := range s.known {
		if f, ok := st.(Fixed); ok && !f.allows(l, rs) {
			return false
		}
	}
	return true
}

func (s *Solver) remainingAttempts() int {
	if s.game != nil {
		return s.game.MaxAttempts() - s.game.Attempts()
	}
	return s.maxAttempts - s.attempts
}

// Eliminate removes every candidate containing one of markers, and every listed
// word. The coverage memo is reset when anything was removed.
func (s *Solver) Eliminate(markers []rune, words []string) {
	drop := make(map[string]struct{}, len(words))
	for _, w := range words {
		if _, ok := s.valid[w]; ok {
			drop[w] = struct{}{}
		}
	}
	if len(markers) > 0 {
		for w := range s.valid {
			if strings.ContainsAny(w, string(markers)) {
				drop[w] = struct{}{}
			}
		}
	}
	s.remove(drop)
}

func (s *Solver) remove(drop map[string]struct{}) {
	if len(drop) == 0 {
		return
	}
	for w := range drop {
		delete(s.valid, w)
		s.graph.remove(w)
	}
	s.ResetCoverage()
}

// HandleResult folds one guess's feedback into the known letters and narrows the
// candidates. Empty feedback means no guess happened and changes nothing.
//
// Correct fixes the letter's position. Present adds the position to the letter's
// exclusions unless the letter is already fixed. Absent marks the letter as
// missing from the secret, unless it scored Present or Correct elsewhere in this
// guess or is already known; then the position is only excluded.
func (s *Solver) HandleResult(fb game.Feedback) error {
	if len(fb) == 0 {
		return nil
	}
	if len(fb) != s.vocab.WordLength() {
		return fmt.Errorf("%w: %d scores for word length %d", ErrInvalidValue, len(fb), s.vocab.WordLength())
	}
	for i, ls := range fb {
		if !ls.Score.Valid() {
			return fmt.Errorf("%w: score %d at position %d", ErrInvalidValue, int(ls.Score), i)
		}
	}

	scored := make(map[rune]struct{})
	for i, ls := range fb {
		if ls.Score == game.Correct {
			s.known[ls.Letter] = Fixed{Position: i}
			scored[ls.Letter] = struct{}{}
		}
	}
	for i, ls := range fb {
		if ls.Score != game.Present {
			continue
		}
		scored[ls.Letter] = struct{}{}
		switch st := s.known[ls.Letter].(type) {
		case Fixed:
		case ExcludedFrom:
			s.known[ls.Letter] = st.with(i)
		default:
			s.known[ls.Letter] = ExcludedFrom{}.with(i)
		}
	}

	var markers []rune
	for i, ls := range fb {
		if ls.Score != game.Absent {
			continue
		}
		_, inGuess := scored[ls.Letter]
		st, known := s.known[ls.Letter]
		if !inGuess && !known {
			markers = append(markers, ls.Letter)
			continue
		}
		if ex, ok := st.(ExcludedFrom); ok {
			s.known[ls.Letter] = ex.with(i)
		}
	}

	s.Eliminate(markers, nil)
	s.prune(fb)
	s.attempts++
	s.logger.Debug().
		Str("guess", fb.Word()).
		Str("feedback", fb.Pattern()).
		Int("candidates", len(s.valid)).
		Msg("feedback applied")
	return nil
}

// prune drops candidates inconsistent with the known letters or with any
// Correct position of fb. The second check keeps every position of a letter that
// scored Correct more than once, where the known letters only hold the last one.
func (s *Solver) prune(fb game.Feedback) {
	drop := make(map[string]struct{})
	for w := range s.valid {
		if !s.known.Allows(w) || !matchesCorrect(w, fb) {
			drop[w] = struct{}{}
		}
	}
	s.remove(drop)
}

func matchesCorrect(w string, fb game.Feedback) bool {
	rs := []rune(w)
	for i, ls := range fb {
		if ls.Score == game.Correct && (i >= len(rs) || rs[i] != ls.Letter) {
			return false
		}
	}
	return true
}

// Record applies the feedback for a played word and never offers the word again.
func (s *Solver) Record(word string, fb game.Feedback) error {
	word = strings.ToLower(strings.TrimSpace(word))
	if err := s.HandleResult(fb); err != nil {
		return err
	}
	s.suggested[word] = struct{}{}
	if !fb.Solved() {
		s.Eliminate(nil, []string{word})
	}
	return nil
}

// Guess plays option, or the best option when option is empty, on the attached game.
// It does nothing once the game is solved or failed, and fails with ErrExhausted
// when no candidate is left.
func (s *Solver) Guess(option string) error {
	if s.game == nil {
		s.logger.Error().Err(ErrNoGame).Msg("guess without a game")
		return ErrNoGame
	}
	if s.game.Solved() || s.game.Failed() {
		return nil
	}
	if len(s.valid) == 0 {
		s.logger.Error().Err(ErrExhausted).Str("option", option).Msg("no candidates left")
		return ErrExhausted
	}

	word := option
	if word == "" {
		opts := s.BestOptions()
		if len(opts) == 0 {
			return ErrExhausted
		}
		word = opts[0].Word
	}

	fb := s.game.Guess(word)
	return s.Record(word, fb)
}

// Solve guesses until the attached game is solved or failed.
func (s *Solver) Solve() error {
	if s.game == nil {
		s.logger.Error().Err(ErrNoGame).Msg("solve without a game")
		return ErrNoGame
	}
	for !s.game.Solved() && !s.game.Failed() {
		if err := s.Guess(""); err != nil {
			return err
		}
	}
	return nil
}

// ValidWords returns the current candidates in lexical order.
func (s *Solver) ValidWords() []string { return sortedKeys(s.valid) }

// Suggested returns the words already played or offered, in lexical order.
func (s *Solver) Suggested() []string { return sortedKeys(s.suggested) }

// KnownLetters returns a copy of what is known about the secret's letters.
func (s *Solver) KnownLetters() KnownLetters { return s.known.clone() }

// Attempts returns the number of feedbacks applied.
func (s *Solver) Attempts() int { return s.attempts }

// Graph returns the coverage graph. It must not be modified.
func (s *Solver) Graph() *CoverageGraph { return s.graph }

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
