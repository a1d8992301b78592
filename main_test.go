package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/vocab"
)

var testWords = []string{"apple", "baker", "cider", "delta", "eagle", "grape"}

func writeWords(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(testWords, "\n")), 0o644))
	return path
}

func newVocab(t *testing.T) *vocab.Vocabulary {
	t.Helper()
	v, err := vocab.New(vocab.Options{WordLength: 5, Source: writeWords(t)})
	require.NoError(t, err)
	return v
}

func TestPlay(t *testing.T) {
	g, err := game.New(newVocab(t), game.Options{Word: "apple"})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, play(g, strings.NewReader("zzzzz\nbaker\nBAKER\napple\n"), &out))

	got := out.String()
	assert.Contains(t, got, "'zzzzz' is not accepted")
	assert.Contains(t, got, "baker 01010")
	assert.Contains(t, got, "'baker' is not accepted")
	assert.Contains(t, got, "Congratulations! Solution: apple (2 attempts)")
}

func TestPlay_InputEnds(t *testing.T) {
	g, err := game.New(newVocab(t), game.Options{Word: "apple"})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, play(g, strings.NewReader("cider\n"), &out))
	assert.Contains(t, out.String(), "The word was 'apple'.")
	assert.False(t, g.Solved())
}

func TestPlay_Lost(t *testing.T) {
	g, err := game.New(newVocab(t), game.Options{Word: "apple", MaxAttempts: 2})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, play(g, strings.NewReader("baker\ncider\ndelta\n"), &out))
	assert.True(t, g.Failed())
	assert.Contains(t, out.String(), "The word was 'apple'.")
	assert.NotContains(t, out.String(), "delta")
}

func TestWatch(t *testing.T) {
	v := newVocab(t)
	for _, secret := range testWords {
		t.Run(secret, func(t *testing.T) {
			g, err := game.New(v, game.Options{Word: secret})
			require.NoError(t, err)
			s, err := solver.New(v, g, solver.Options{})
			require.NoError(t, err)

			var out bytes.Buffer
			require.NoError(t, watch(g, s, &out))
			assert.True(t, g.Solved())
			assert.Contains(t, out.String(), "Attempt 1: ")
			assert.Contains(t, out.String(), "Solution: "+secret)
		})
	}
}

func TestWatch_RejectedGuess(t *testing.T) {
	g, err := game.New(newVocab(t), game.Options{Word: "apple"})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "other.txt")
	require.NoError(t, os.WriteFile(path, []byte("zesty\n"), 0o644))
	other, err := vocab.New(vocab.Options{WordLength: 5, Source: path})
	require.NoError(t, err)
	s, err := solver.New(other, g, solver.Options{})
	require.NoError(t, err)

	var out bytes.Buffer
	assert.ErrorIs(t, watch(g, s, &out), solver.ErrExhausted)
	assert.Zero(t, g.Attempts())
	assert.NotContains(t, out.String(), "Attempt")
}

func TestAssist(t *testing.T) {
	s, err := solver.New(newVocab(t), nil, solver.Options{})
	require.NoError(t, err)

	in := strings.NewReader("baker\n012\nbaker\n01010\napple\n22222\n")
	var out bytes.Buffer
	require.NoError(t, assist(s, 6, 3, in, &out))

	got := out.String()
	assert.Contains(t, got, "Attempt 1/6, 6 candidates")
	assert.Contains(t, got, "Invalid feedback")
	assert.Contains(t, got, "Attempt 2/6")
	assert.Contains(t, got, "Congratulations! Solution: apple")
	assert.Equal(t, 2, s.Attempts())
}

func TestAssist_DefaultsToBestOption(t *testing.T) {
	s, err := solver.New(newVocab(t), nil, solver.Options{})
	require.NoError(t, err)
	best := s.BestOptions()[0].Word

	var out bytes.Buffer
	require.NoError(t, assist(s, 6, 1, strings.NewReader("\n00000\n"), &out))
	assert.Contains(t, s.Suggested(), best)
	assert.NotContains(t, s.ValidWords(), best)
}

func TestAssist_OutOfAttempts(t *testing.T) {
	s, err := solver.New(newVocab(t), nil, solver.Options{})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, assist(s, 1, 1, strings.NewReader("baker\n01010\n"), &out))
	assert.Contains(t, out.String(), "Out of attempts.")
}

func TestSolveCommand(t *testing.T) {
	for _, k := range []string{"CACHE_BACKEND", "CACHE_DSN", "WORD_LENGTH", "ALPHABET", "WORDS_FILE", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	cacheDir := t.TempDir()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{
		"solve", "--word", "grape",
		"--words", writeWords(t),
		"--cache-dir", cacheDir,
		"--config", filepath.Join(cacheDir, "absent.yaml"),
		"--log-level", "error",
	})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Solution: grape")
	assert.FileExists(t, filepath.Join(cacheDir, "5", "vocab.json"))
}
