// internal/evaluate/evaluate.go
//
// Self-play harness: the solver plays one game per vocabulary word.
// Responsibilities:
//   - Run every game on a bounded worker group, each with its own Game and Solver.
//   - Share the initial coverage through an in-memory cache so it is computed once.
//   - Persist the report as the "evaluation" cache entry and reuse it (LoadOrRun).
//   - Summarise a report (Analyse).

package evaluate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/go-solver/internal/cache"
	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/vocab"
)

// Outcome is the result of one game, persisted as [solved, attempts].
type Outcome struct {
	Solved   bool
	Attempts int
}

func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{o.Solved, o.Attempts})
}

func (o *Outcome) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("outcome: want [solved, attempts], got %d elements", len(raw))
	}
	if err := json.Unmarshal(raw[0], &o.Solved); err != nil {
		return err
	}
	return json.Unmarshal(raw[1], &o.Attempts)
}

// Report maps each secret word to its outcome.
type Report struct {
	ID     string             `json:"id,omitempty"`
	Status map[string]Outcome `json:"status"`
}

// Options configures Run and LoadOrRun.
type Options struct {
	Workers     int             // concurrent games; 1 when <= 0
	Cache       cache.Store     // optional; holds the coverage seed and the report
	Rerun       bool            // LoadOrRun ignores a stored report
	MaxAttempts int             // per game; game.DefaultMaxAttempts when <= 0
	TopN        int             // solver.DefaultTopN when <= 0
	Progress    io.Writer       // progress bar output; nil hides it
	Logger      *zerolog.Logger // defaults to the global logger
}

// LoadOrRun returns the stored report unless opts.Rerun is set, otherwise runs
// a fresh evaluation and stores it.
func LoadOrRun(ctx context.Context, v *vocab.Vocabulary, opts Options) (*Report, error) {
	if opts.Cache != nil && !opts.Rerun {
		var r Report
		ok, err := opts.Cache.Load(cache.EntryEvaluation, &r)
		if err != nil {
			return nil, err
		}
		if ok {
			return &r, nil
		}
	}

	r, err := Run(ctx, v, opts)
	if err != nil {
		return nil, err
	}
	if opts.Cache != nil {
		if err := opts.Cache.Save(cache.EntryEvaluation, r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Run plays a game against every word of v.
func Run(ctx context.Context, v *vocab.Vocabulary, opts Options) (*Report, error) {
	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	runID := uuid.NewString()
	logger = logger.With().Str("component", "evaluate").Str("run", runID).Logger()
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	// One solver computes (or loads) the full-vocabulary coverage; the games read it
	// back from memory instead of recomputing it each.
	seed, err := solver.New(v, nil, solver.Options{Cache: opts.Cache, Logger: &logger})
	if err != nil {
		return nil, err
	}
	shared := cache.NewMemory()
	if err := shared.Save(cache.EntryCoverage, seed.Coverage()); err != nil {
		return nil, err
	}

	words := v.Words()
	out := io.Discard
	if opts.Progress != nil {
		out = opts.Progress
	}
	bar := progressbar.NewOptions(len(words),
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription("evaluating"),
		progressbar.OptionShowCount(),
	)

	var mu sync.Mutex
	status := make(map[string]Outcome, len(words))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for _, w := range words {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			o, err := play(v, w, shared, opts, logger)
			if err != nil {
				return fmt.Errorf("evaluate %s: %w", w, err)
			}
			mu.Lock()
			status[w] = o
			mu.Unlock()
			_ = bar.Add(1)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	_ = bar.Finish()

	r := &Report{ID: runID, Status: status}
	p := Analyse(r)
	logger.Info().
		Int("games", p.TotalCount).
		Float64("success_rate", p.SuccessRate).
		Float64("average_attempts", p.AverageAttempts).
		Msg("evaluation finished")
	return r, nil
}

// play solves a single game with secret w.
func play(v *vocab.Vocabulary, w string, shared cache.Store, opts Options, logger zerolog.Logger) (Outcome, error) {
	quiet := logger.Level(zerolog.WarnLevel)
	g, err := game.New(v, game.Options{Word: w, MaxAttempts: opts.MaxAttempts, Logger: &quiet})
	if err != nil {
		return Outcome{}, err
	}
	s, err := solver.New(v, g, solver.Options{Cache: shared, TopN: opts.TopN, Logger: &quiet})
	if err != nil {
		return Outcome{}, err
	}
	if err := s.Solve(); err != nil {
		if !errors.Is(err, solver.ErrExhausted) {
			return Outcome{}, err
		}
		logger.Warn().Str("word", w).Err(err).Msg("solver ran out of candidates")
	}
	return Outcome{Solved: g.Solved(), Attempts: g.Attempts()}, nil
}

// Performance summarises a report.
type Performance struct {
	TotalCount      int     `json:"total_count"`
	SuccessCount    int     `json:"success_count"`
	FailureCount    int     `json:"failure_count"`
	SuccessRate     float64 `json:"success_rate"`
	AverageAttempts float64 `json:"average_attempts"` // NaN when nothing was solved
}

// MarshalJSON writes a NaN average as null.
func (p Performance) MarshalJSON() ([]byte, error) {
	type plain Performance
	var avg *float64
	if !math.IsNaN(p.AverageAttempts) {
		avg = &p.AverageAttempts
	}
	return json.Marshal(struct {
		plain
		AverageAttempts *float64 `json:"average_attempts"`
	}{plain(p), avg})
}

// Analyse counts successes and failures. SuccessRate is 0 for an empty report;
// AverageAttempts is the mean over solved games only.
func Analyse(r *Report) Performance {
	var p Performance
	sum := 0
	for _, o := range r.Status {
		p.TotalCount++
		if o.Solved {
			p.SuccessCount++
			sum += o.Attempts
		} else {
			p.FailureCount++
		}
	}
	if p.TotalCount > 0 {
		p.SuccessRate = float64(p.SuccessCount) / float64(p.TotalCount)
	}
	p.AverageAttempts = math.NaN()
	if p.SuccessCount > 0 {
		p.AverageAttempts = float64(sum) / float64(p.SuccessCount)
	}
	return p
}
