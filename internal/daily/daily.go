// Package daily derives the word of the day.
//
// Every day maps to one word of a sorted word list through HMAC(salt, YYYY-MM-DD),
// so all players sharing a salt and a list get the same secret on the same UTC day.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"time"
)

const keyLayout = "2006-01-02"

// Epoch is the day of puzzle number 0.
var Epoch = time.Date(2021, time.June, 19, 0, 0, 0, 0, time.UTC)

// ErrBadDate is returned by ParseKey for anything but YYYY-MM-DD.
var ErrBadDate = errors.New("daily: bad date")

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format(keyLayout)
}

// ParseKey parses a YYYY-MM-DD key as midnight UTC.
func ParseKey(key string) (time.Time, error) {
	t, err := time.Parse(keyLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, key)
	}
	return t, nil
}

// Number is the puzzle number of the UTC day containing t, counted from Epoch.
// Days before Epoch are negative.
func Number(t time.Time) int {
	day, _ := ParseKey(DateKey(t))
	return int(day.Sub(Epoch).Hours() / 24)
}

// WordIndex returns a deterministic index in [0, n) for the day of date.
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	v := binary.BigEndian.Uint64(h.Sum(nil)[:8])
	return int(v % uint64(n))
}

// Pick returns the word of the day from words, or "" when words is empty.
// words must be in a stable order (the vocabulary keeps it sorted).
func Pick(words []string, date time.Time, salt string) string {
	if len(words) == 0 {
		return ""
	}
	return words[WordIndex(date, salt, len(words))]
}
