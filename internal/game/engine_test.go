package game

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wordList is a sorted in-memory Vocabulary.
type wordList []string

func (l wordList) IsWord(w string) bool {
	for _, x := range l {
		if x == w {
			return true
		}
	}
	return false
}
func (l wordList) Words() []string { return l }
func (l wordList) WordLength() int { return 5 }

var fruit = wordList{"alley", "apple", "baker", "berry", "cider", "delta", "eagle", "grape"}

func newGame(t *testing.T, secret string) *Game {
	t.Helper()
	g, err := New(fruit, Options{Word: secret})
	require.NoError(t, err)
	require.Equal(t, secret, g.Secret())
	return g
}

func fb(word, pattern string) Feedback {
	f, err := ParseFeedback(word, pattern)
	if err != nil {
		panic(err)
	}
	return f
}

func TestScoreGuess(t *testing.T) {
	tests := []struct {
		secret, guess, want string
	}{
		{"apple", "apple", "22222"},
		{"apple", "berry", "01000"},
		{"apple", "alley", "21010"},
		{"apple", "baker", "01010"},
		{"apple", "papal", "11201"},
		{"berry", "apple", "00001"},
		{"eagle", "eerie", "20002"},
		{"abbey", "babes", "11220"},
		{"speed", "erase", "10011"},
	}
	for _, tt := range tests {
		t.Run(tt.secret+"/"+tt.guess, func(t *testing.T) {
			got := ScoreGuess(tt.secret, tt.guess)
			if diff := cmp.Diff(fb(tt.guess, tt.want), got); diff != "" {
				t.Errorf("ScoreGuess(%q, %q) mismatch (-want +got):\n%s", tt.secret, tt.guess, diff)
			}
		})
	}
}

func TestScoreGuess_NeverOvercountsLetters(t *testing.T) {
	words := []string{"apple", "alley", "eagle", "eerie", "abbey", "babes", "speed", "erase", "llama", "level"}
	for _, secret := range words {
		for _, guess := range words {
			got := ScoreGuess(secret, guess)
			require.Len(t, got, 5)

			inSecret := map[rune]int{}
			for _, r := range secret {
				inSecret[r]++
			}
			credited := map[rune]int{}
			for i, ls := range got {
				if ls.Score == Correct {
					assert.Equal(t, rune(secret[i]), ls.Letter, "%s/%s pos %d", secret, guess, i)
				}
				if ls.Score != Absent {
					credited[ls.Letter]++
				}
			}
			for r, n := range credited {
				assert.LessOrEqual(t, n, inSecret[r], "%s/%s letter %c", secret, guess, r)
			}
		}
	}
}

func TestScoreGuess_LengthMismatch(t *testing.T) {
	assert.Nil(t, ScoreGuess("apple", "apples"))
}

func TestGuess_Berry(t *testing.T) {
	g := newGame(t, "apple")

	got := g.Guess("berry")
	assert.Equal(t, fb("berry", "01000"), got)
	assert.Equal(t, 1, g.Attempts())
	assert.False(t, g.Solved())
	assert.False(t, g.Failed())
	assert.Equal(t, "playing", g.State())
}

func TestGuess_EndToEnd(t *testing.T) {
	g := newGame(t, "apple")

	first := g.Guess("baker")
	want := Feedback{{'b', Absent}, {'a', Present}, {'k', Absent}, {'e', Present}, {'r', Absent}}
	assert.Equal(t, want, first)

	second := g.Guess("apple")
	assert.Equal(t, "22222", second.Pattern())
	assert.True(t, g.Solved())
	assert.False(t, g.Failed())
	assert.Equal(t, 2, g.Attempts())
	assert.Equal(t, "won", g.State())

	assert.Equal(t, []GuessRecord{
		{Word: "baker", Feedback: first},
		{Word: "apple", Feedback: second},
	}, g.History())
}

func TestGuess_NoOps(t *testing.T) {
	t.Run("repeated word", func(t *testing.T) {
		g := newGame(t, "apple")
		require.NotEmpty(t, g.Guess("berry"))
		assert.Empty(t, g.Guess("berry"))
		assert.Empty(t, g.Guess(" BERRY "))
		assert.Equal(t, 1, g.Attempts())
	})

	t.Run("unknown word", func(t *testing.T) {
		g := newGame(t, "apple")
		assert.Empty(t, g.Guess("zzzzz"))
		assert.Empty(t, g.Guess("apples"))
		assert.Zero(t, g.Attempts())
		assert.Empty(t, g.History())
	})

	t.Run("after solving", func(t *testing.T) {
		g := newGame(t, "apple")
		require.True(t, g.Guess("apple").Solved())
		assert.Empty(t, g.Guess("berry"))
		assert.Equal(t, 1, g.Attempts())
	})
}

func TestGuess_FailsAfterMaxAttempts(t *testing.T) {
	g, err := New(fruit, Options{Word: "apple", MaxAttempts: 3})
	require.NoError(t, err)

	for _, w := range []string{"berry", "cider", "delta"} {
		require.NotEmpty(t, g.Guess(w))
	}
	assert.True(t, g.Failed())
	assert.False(t, g.Solved())
	assert.Equal(t, "lost", g.State())

	assert.Empty(t, g.Guess("apple"))
	assert.Equal(t, 3, g.Attempts())
	assert.False(t, g.Solved())
}

func TestGuess_SolvedOnLastAttemptIsNotFailed(t *testing.T) {
	g, err := New(fruit, Options{Word: "apple", MaxAttempts: 2})
	require.NoError(t, err)

	g.Guess("berry")
	g.Guess("apple")
	assert.True(t, g.Solved())
	assert.False(t, g.Failed())
}

func TestNew_SecretSelection(t *testing.T) {
	seed := uint64(42)

	t.Run("explicit word outside vocabulary is replaced", func(t *testing.T) {
		var buf bytes.Buffer
		logger := zerolog.New(&buf)
		g, err := New(fruit, Options{Word: "zzzzz", Seed: &seed, Logger: &logger})
		require.NoError(t, err)
		assert.True(t, fruit.IsWord(g.Secret()))
		assert.Contains(t, buf.String(), "secret not in vocabulary")
	})

	t.Run("explicit word is lower-cased", func(t *testing.T) {
		g, err := New(fruit, Options{Word: "Apple"})
		require.NoError(t, err)
		assert.Equal(t, "apple", g.Secret())
	})

	t.Run("seed is reproducible", func(t *testing.T) {
		a, err := New(fruit, Options{Seed: &seed})
		require.NoError(t, err)
		b, err := New(fruit, Options{Seed: &seed})
		require.NoError(t, err)
		assert.Equal(t, a.Secret(), b.Secret())
		assert.NotEqual(t, a.ID(), b.ID())
	})

	t.Run("today is reproducible", func(t *testing.T) {
		date := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
		a, err := New(fruit, Options{Today: true, Date: date, Salt: "s"})
		require.NoError(t, err)
		b, err := New(fruit, Options{Today: true, Date: date.Add(10 * time.Hour), Salt: "s"})
		require.NoError(t, err)
		assert.Equal(t, a.Secret(), b.Secret())
	})

	t.Run("random draw comes from the vocabulary", func(t *testing.T) {
		for i := 0; i < 20; i++ {
			g, err := New(fruit, Options{})
			require.NoError(t, err)
			assert.True(t, fruit.IsWord(g.Secret()))
			assert.Equal(t, DefaultMaxAttempts, g.MaxAttempts())
		}
	})

	t.Run("empty vocabulary", func(t *testing.T) {
		_, err := New(wordList{}, Options{})
		assert.ErrorIs(t, err, ErrEmptyVocabulary)
	})
}

func TestLetterPositions(t *testing.T) {
	g := newGame(t, "apple")
	want := map[rune][]int{'a': {0}, 'p': {1, 2}, 'l': {3}, 'e': {4}}
	if diff := cmp.Diff(want, g.LetterPositions()); diff != "" {
		t.Errorf("LetterPositions mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFeedback(t *testing.T) {
	got, err := ParseFeedback("Crane", "02100")
	require.NoError(t, err)
	assert.Equal(t, Feedback{{'c', Absent}, {'r', Correct}, {'a', Present}, {'n', Absent}, {'e', Absent}}, got)
	assert.Equal(t, "crane", got.Word())
	assert.Equal(t, "02100", got.Pattern())

	for _, tt := range []struct{ word, pattern string }{
		{"crane", "0210"},
		{"crane", "02130"},
		{"crane", "02a00"},
		{"", ""},
	} {
		_, err := ParseFeedback(tt.word, tt.pattern)
		assert.ErrorIs(t, err, ErrInvalidFeedback, "%q %q", tt.word, tt.pattern)
	}
}

func TestFeedbackJSON(t *testing.T) {
	rec := GuessRecord{Word: "ab", Feedback: Feedback{{'a', Correct}, {'b', Absent}}}
	out, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"word":"ab","feedback":[{"letter":"a","score":2},{"letter":"b","score":0}]}`, string(out))
}

func TestScoreString(t *testing.T) {
	assert.Equal(t, "absent", Absent.String())
	assert.Equal(t, "present", Present.String())
	assert.Equal(t, "correct", Correct.String())
	assert.Equal(t, "Score(7)", Score(7).String())
	assert.False(t, Score(3).Valid())
	assert.False(t, Score(-1).Valid())
}
