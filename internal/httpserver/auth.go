// internal/httpserver/auth.go
//
// Game tokens. A token is an HS256 JWT whose subject is the game ID; holding
// it is what entitles a client to play, hint or solve that game.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
)

type ctxSessionKey struct{}

// issueToken signs a token for gameID valid from now for the configured TTL.
func (s *Server) issueToken(gameID string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   gameID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
}

// parseToken validates tok and returns the game ID it was issued for.
func (s *Server) parseToken(tok string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tok, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", errors.New("token without subject")
	}
	return claims.Subject, nil
}

// withSession requires a valid bearer token and loads its session into the context.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := bearer(r)
		if tok == "" {
			writeError(w, http.StatusUnauthorized, "missing_token")
			return
		}
		id, err := s.parseToken(tok)
		if err != nil {
			s.logger.Debug().Err(err).Msg("reject token")
			writeError(w, http.StatusUnauthorized, "invalid_token")
			return
		}
		sess, err := s.store.Get(r.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "game_not_found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "load_failed")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxSessionKey{}, sess)))
	})
}

func sessionFrom(r *http.Request) *store.Session {
	sess, _ := r.Context().Value(ctxSessionKey{}).(*store.Session)
	return sess
}

// bearer extracts the token from "Authorization: Bearer <token>".
func bearer(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
