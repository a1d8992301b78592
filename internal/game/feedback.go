package game

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFeedback is returned by ParseFeedback for a malformed pattern.
var ErrInvalidFeedback = errors.New("game: invalid feedback")

// ParseFeedback pairs the letters of word with a digit pattern such as "00210",
// where each digit is a Score. Word and pattern must have the same length.
func ParseFeedback(word, pattern string) (Feedback, error) {
	letters := []rune(strings.ToLower(strings.TrimSpace(word)))
	digits := []rune(strings.TrimSpace(pattern))
	if len(letters) == 0 || len(letters) != len(digits) {
		return nil, fmt.Errorf("%w: %q does not match %q", ErrInvalidFeedback, pattern, word)
	}

	fb := make(Feedback, len(letters))
	for i, d := range digits {
		s := Score(d - '0')
		if !s.Valid() {
			return nil, fmt.Errorf("%w: %q at position %d", ErrInvalidFeedback, d, i)
		}
		fb[i] = LetterScore{Letter: letters[i], Score: s}
	}
	return fb, nil
}
