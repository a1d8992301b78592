// internal/httpserver/server.go
//
// HTTP server wiring for the game and solver.
// Responsibilities:
//   - Router + middleware (JSON, timeouts, panic recovery, request IDs, rate limit).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints: POST /game/new issues a game and a bearer token for it;
//     POST /game/guess, /game/hint and /game/solve require that token.
//   - Daily endpoint: POST /daily/new (routes_daily.go).
//
// Notes:
//   - Sessions live in the in-memory store; each holds a game and the solver that
//     hints for it. Handlers lock the session while using either.
//   - The full-vocabulary coverage is computed once at startup and shared with
//     every session solver through an in-memory cache.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/robalobadob/wordle/apps/go-solver/internal/cache"
	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
	"github.com/robalobadob/wordle/apps/go-solver/internal/vocab"
)

// Config tunes the server.
type Config struct {
	JWTSecret   string        // HMAC key for game tokens
	TokenTTL    time.Duration // 24h when zero
	DailySalt   string        // keys the word of the day
	MaxAttempts int           // game.DefaultMaxAttempts when <= 0
	TopN        int           // hint options; solver.DefaultTopN when <= 0
	RateLimit   rate.Limit    // requests per second; 20 when zero
	RateBurst   int           // 40 when zero
	Cache       cache.Store   // optional; source of the initial coverage
	Logger      *zerolog.Logger
}

// Server bundles router, session store and vocabulary.
type Server struct {
	r        *chi.Mux
	store    store.Store
	vocab    *vocab.Vocabulary
	cfg      Config
	coverage cache.Store
	limiter  *rate.Limiter
	logger   zerolog.Logger
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, v *vocab.Vocabulary, cfg Config) (*Server, error) {
	logger := log.Logger
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("httpserver: empty JWT secret")
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = 20
	}
	if cfg.RateBurst <= 0 {
		cfg.RateBurst = 40
	}

	s := &Server{
		r:        chi.NewRouter(),
		store:    st,
		vocab:    v,
		cfg:      cfg,
		coverage: cache.NewMemory(),
		limiter:  rate.NewLimiter(cfg.RateLimit, cfg.RateBurst),
		logger:   logger.With().Str("component", "httpserver").Logger(),
	}

	seed, err := solver.New(v, nil, solver.Options{Cache: cfg.Cache, Logger: &s.logger})
	if err != nil {
		return nil, err
	}
	if err := s.coverage.Save(cache.EntryCoverage, seed.Coverage()); err != nil {
		return nil, err
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "wordle-solver",
			"endpoints": []string{"/health", "POST /game/new", "POST /game/guess", "POST /game/hint", "POST /game/solve", "POST /daily/new"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]int{"words": v.Len(), "length": v.WordLength()})
	})

	// --- game ---
	s.r.Group(func(r chi.Router) {
		r.Use(s.rateLimit)
		r.Post("/game/new", s.handleNewGame)
		s.mountDaily(r)

		r.Group(func(r chi.Router) {
			r.Use(s.withSession)
			r.Post("/game/guess", s.handleGuess)
			r.Post("/game/hint", s.handleHint)
			r.Post("/game/solve", s.handleSolve)
		})
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s, nil
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	return srv.ListenAndServe()
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// rateLimit rejects requests beyond the server-wide token bucket.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "rate_limited")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ GAME ---------------------------------------

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Answer string  `json:"answer"` // optional fixed answer (testing)
	Seed   *uint64 `json:"seed"`   // optional reproducible draw
}
type newGameRes struct {
	GameID      string `json:"gameId"`
	Token       string `json:"token"`
	WordLength  int    `json:"wordLength"`
	MaxAttempts int    `json:"maxAttempts"`
	Date        string `json:"date,omitempty"`
	Puzzle      *int   `json:"puzzle,omitempty"`
}

// handleNewGame creates a session and returns the token that unlocks it.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json")
			return
		}
	}
	s.startSession(w, r, game.Options{Word: req.Answer, Seed: req.Seed}, false)
}

// startSession creates the game and its solver, stores them and answers with a token.
func (s *Server) startSession(w http.ResponseWriter, r *http.Request, opts game.Options, isDaily bool) {
	opts.MaxAttempts = s.cfg.MaxAttempts
	opts.Logger = &s.logger
	g, err := game.New(s.vocab, opts)
	if err != nil {
		s.logger.Error().Err(err).Msg("new game")
		writeError(w, http.StatusInternalServerError, "new_game_failed")
		return
	}
	sv, err := solver.New(s.vocab, g, solver.Options{Cache: s.coverage, TopN: s.cfg.TopN, Logger: &s.logger})
	if err != nil {
		s.logger.Error().Err(err).Msg("new solver")
		writeError(w, http.StatusInternalServerError, "new_game_failed")
		return
	}
	sess := &store.Session{Game: g, Solver: sv, Daily: isDaily}
	if err := s.store.Save(r.Context(), sess); err != nil {
		s.logger.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, err := s.issueToken(g.ID(), time.Now())
	if err != nil {
		s.logger.Error().Err(err).Msg("sign token")
		writeError(w, http.StatusInternalServerError, "token_failed")
		return
	}

	res := newGameRes{GameID: g.ID(), Token: tok, WordLength: g.WordLength(), MaxAttempts: g.MaxAttempts()}
	if isDaily {
		dailyFields(&res, opts)
	}
	s.logger.Info().Str("gameId", g.ID()).Bool("daily", isDaily).Msg("game started")
	writeJSON(w, http.StatusOK, res)
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	Guess string `json:"guess"`
}
type guessRes struct {
	Feedback game.Feedback `json:"feedback"`
	Pattern  string        `json:"pattern"`
	State    string        `json:"state"` // "playing" | "won" | "lost"
	Attempts int           `json:"attempts"`
	Answer   string        `json:"answer,omitempty"`
}

// handleGuess applies a guess to the session's game.
//   - 409 when the game is already over.
//   - 422 when the guess is not accepted (unknown or repeated word).
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	sess := sessionFrom(r)
	_ = sess.Do(func() error {
		g := sess.Game
		if g.Solved() || g.Failed() {
			writeError(w, http.StatusConflict, "game_finished")
			return nil
		}
		fb := g.Guess(req.Guess)
		if len(fb) == 0 {
			writeError(w, http.StatusUnprocessableEntity, "not_accepted")
			return nil
		}
		writeJSON(w, http.StatusOK, s.guessResult(g, fb))
		return nil
	})
}

func (s *Server) guessResult(g *game.Game, fb game.Feedback) guessRes {
	res := guessRes{Feedback: fb, Pattern: fb.Pattern(), State: g.State(), Attempts: g.Attempts()}
	if g.Failed() {
		res.Answer = g.Secret()
	}
	return res
}

// hintRes is returned by POST /game/hint.
type hintRes struct {
	Options    []solver.Option `json:"options"`
	Candidates int             `json:"candidates"`
}

// handleHint feeds the guesses played so far to the session solver and returns
// its best options.
func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	_ = sess.Do(func() error {
		if err := sess.Sync(); err != nil {
			s.logger.Error().Err(err).Str("gameId", sess.ID()).Msg("sync solver")
			writeError(w, http.StatusInternalServerError, "hint_failed")
			return nil
		}
		writeJSON(w, http.StatusOK, hintRes{
			Options:    sess.Solver.BestOptions(),
			Candidates: len(sess.Solver.ValidWords()),
		})
		return nil
	})
}

// solveRes is returned by POST /game/solve.
type solveRes struct {
	State    string             `json:"state"`
	Attempts int                `json:"attempts"`
	History  []game.GuessRecord `json:"history"`
	Answer   string             `json:"answer"`
}

// handleSolve lets the solver finish the game from its current position.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	_ = sess.Do(func() error {
		err := sess.Sync()
		if err == nil {
			err = sess.Solver.Solve()
		}
		sess.Recorded = len(sess.Game.History())
		if err != nil && !errors.Is(err, solver.ErrExhausted) {
			s.logger.Error().Err(err).Str("gameId", sess.ID()).Msg("solve")
			writeError(w, http.StatusInternalServerError, "solve_failed")
			return nil
		}
		g := sess.Game
		writeJSON(w, http.StatusOK, solveRes{
			State:    g.State(),
			Attempts: g.Attempts(),
			History:  g.History(),
			Answer:   g.Secret(),
		})
		return nil
	})
}

// ------------------------------ helpers ------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
