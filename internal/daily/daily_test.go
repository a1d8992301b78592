package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateKey(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	assert.Equal(t, "2024-03-01", DateKey(time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-02-29", DateKey(time.Date(2024, 3, 1, 5, 0, 0, 0, loc)))
}

func TestWordIndex(t *testing.T) {
	day := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	later := time.Date(2024, 3, 1, 22, 30, 0, 0, time.UTC)

	assert.Equal(t, WordIndex(day, "salt", 500), WordIndex(later, "salt", 500), "same calendar day")
	assert.Zero(t, WordIndex(day, "salt", 0))
	assert.Zero(t, WordIndex(day, "salt", -3))
	assert.Zero(t, WordIndex(day, "salt", 1))

	for d := 0; d < 60; d++ {
		i := WordIndex(day.AddDate(0, 0, d), "salt", 7)
		assert.GreaterOrEqual(t, i, 0)
		assert.Less(t, i, 7)
	}
}

func TestWordIndex_VariesWithDateAndSalt(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	seen := map[int]bool{}
	for d := 0; d < 30; d++ {
		seen[WordIndex(day.AddDate(0, 0, d), "salt", 1000)] = true
	}
	assert.Greater(t, len(seen), 1)

	salts := map[int]bool{}
	for _, s := range []string{"a", "b", "c", "d", "e", "f"} {
		salts[WordIndex(day, s, 1000)] = true
	}
	assert.Greater(t, len(salts), 1)
}

func TestParseKey(t *testing.T) {
	d, err := ParseKey("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, "2024-02-29", DateKey(d))

	for _, bad := range []string{"", "yesterday", "2023-02-29", "2024/03/01"} {
		_, err := ParseKey(bad)
		assert.ErrorIs(t, err, ErrBadDate, bad)
	}
}

func TestNumber(t *testing.T) {
	assert.Equal(t, 0, Number(Epoch))
	assert.Equal(t, 0, Number(Epoch.Add(23*time.Hour)))
	assert.Equal(t, 1, Number(Epoch.AddDate(0, 0, 1)))
	assert.Equal(t, -1, Number(Epoch.Add(-time.Hour)))
	assert.Equal(t, 986, Number(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)))
}

func TestPick(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	words := []string{"apple", "baker", "cider", "delta"}

	assert.Empty(t, Pick(nil, day, "salt"))
	assert.Equal(t, words[WordIndex(day, "salt", len(words))], Pick(words, day, "salt"))
	assert.Equal(t, Pick(words, day, "salt"), Pick(words, day.Add(20*time.Hour), "salt"))
}
