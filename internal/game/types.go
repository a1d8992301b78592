// internal/game/types.go
//
// Core type definitions for the game engine.
// Defines:
//   - Score: per-letter result of a guess (absent/present/correct).
//   - LetterScore, Feedback: the scored guess returned to callers.
//   - GuessRecord: one entry of a game's history.

package game

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Score represents the evaluation result for a single letter in a guess.
// The numeric values are the ones players type in helper mode:
//   - 0 (Absent):  the letter has no remaining occurrence in the secret.
//   - 1 (Present): the letter occurs in the secret at another position.
//   - 2 (Correct): the letter is in the correct position.
type Score int

const (
	Absent Score = iota
	Present
	Correct
)

// Valid reports whether s is one of the three known scores.
func (s Score) Valid() bool { return s >= Absent && s <= Correct }

func (s Score) String() string {
	switch s {
	case Absent:
		return "absent"
	case Present:
		return "present"
	case Correct:
		return "correct"
	}
	return fmt.Sprintf("Score(%d)", int(s))
}

// LetterScore pairs a guessed letter with its score.
type LetterScore struct {
	Letter rune
	Score  Score
}

// MarshalJSON encodes a letter score as {"letter":"a","score":2}.
func (ls LetterScore) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Letter string `json:"letter"`
		Score  int    `json:"score"`
	}{string(ls.Letter), int(ls.Score)})
}

// Feedback is the scored guess, one entry per position.
// An empty Feedback means the guess was not accepted.
type Feedback []LetterScore

// Solved reports whether every position scored Correct.
func (f Feedback) Solved() bool {
	if len(f) == 0 {
		return false
	}
	for _, ls := range f {
		if ls.Score != Correct {
			return false
		}
	}
	return true
}

// Pattern renders the scores as digits, e.g. "01020".
func (f Feedback) Pattern() string {
	var b strings.Builder
	for _, ls := range f {
		b.WriteByte(byte('0' + ls.Score))
	}
	return b.String()
}

// Word returns the guessed letters.
func (f Feedback) Word() string {
	rs := make([]rune, len(f))
	for i, ls := range f {
		rs[i] = ls.Letter
	}
	return string(rs)
}

// GuessRecord is one accepted guess and its feedback.
type GuessRecord struct {
	Word     string   `json:"word"`
	Feedback Feedback `json:"feedback"`
}
