// internal/httpserver/routes_daily.go
//
// HTTP route for the "Daily Challenge" mode.
//   - POST /daily/new → start a game on today's word.
//
// The word is chosen deterministically from the date and the configured salt, so
// every client playing on the same day gets the same secret. A daily game is an
// ordinary session afterwards and is played through the /game routes.

package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/wordle/apps/go-solver/internal/daily"
	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
)

// mountDaily registers the /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", s.handleDailyNew)
	})
}

// handleDailyNew starts a session on the word of the day. A "date" query
// parameter (YYYY-MM-DD) replays an earlier day.
func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	date := time.Now().UTC()
	if q := r.URL.Query().Get("date"); q != "" {
		d, err := daily.ParseKey(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_date")
			return
		}
		date = d
	}
	s.startSession(w, r, game.Options{Today: true, Date: date, Salt: s.cfg.DailySalt}, true)
}

// dailyFields fills the day and puzzle number of a daily game.
func dailyFields(res *newGameRes, opts game.Options) {
	res.Date = daily.DateKey(opts.Date)
	n := daily.Number(opts.Date)
	res.Puzzle = &n
}
