// internal/vocab/vocab.go
//
// Provides the word list the game and the solver share.
//
// Responsibilities:
//   - Load a word source (file, or the embedded default list) and keep only words of the
//     configured length made of alphabet characters.
//   - Build the letter and letter-position indices and their frequency tables (index.go).
//   - Persist the vocabulary and the index through a cache.Store, and reuse them on the
//     next construction unless a rebuild is requested.
//
// Cache freshness:
//   • A cached vocabulary is used as-is even when the source file changed since it was
//     written. The source fingerprint stored next to it only drives a warning; callers
//     force a rebuild with Options.Rebuild.
//   • A cache entry that cannot be decoded is returned as an error, never rebuilt over.
//
// A Vocabulary is read-only after construction (BuildVocabulary/BuildIndex excepted) and
// may be shared between goroutines.

package vocab

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/blake2b"

	"github.com/robalobadob/wordle/apps/go-solver/assets"
	"github.com/robalobadob/wordle/apps/go-solver/internal/cache"
)

// Defaults for a classic game.
const (
	DefaultAlphabet   = "abcdefghijklmnopqrstuvwxyz"
	DefaultWordLength = 5
)

var (
	// ErrNotFound is returned when the word source does not exist.
	ErrNotFound = fmt.Errorf("vocab: word source not found: %w", fs.ErrNotExist)

	// ErrInvalidConfig is returned for a non-positive word length or an empty alphabet.
	ErrInvalidConfig = errors.New("vocab: invalid configuration")
)

// Options configures New.
type Options struct {
	Alphabet   string          // allowed characters; DefaultAlphabet when empty
	WordLength int             // exact word length, must be > 0
	Source     string          // word list path; the embedded list when empty
	Cache      cache.Store     // optional; vocabulary and index are persisted here
	Rebuild    bool            // ignore cached entries and rebuild from the source
	Logger     *zerolog.Logger // defaults to the global logger
}

// Vocabulary is a filtered, indexed word list.
type Vocabulary struct {
	alphabet   string
	letters    map[rune]struct{}
	wordLength int
	source     string
	store      cache.Store
	logger     zerolog.Logger

	words  map[string]int // word -> length, the persisted shape
	sorted []string
	index  Index
	freq   Frequency
}

// vocabEntry is the persisted form of the vocabulary.
type vocabEntry struct {
	Source      string         `json:"source"`
	Fingerprint string         `json:"fingerprint"`
	Words       map[string]int `json:"words"`
}

// New builds (or loads from cache) a vocabulary.
func New(opts Options) (*Vocabulary, error) {
	if opts.Alphabet == "" {
		opts.Alphabet = DefaultAlphabet
	}
	if opts.WordLength <= 0 {
		return nil, fmt.Errorf("%w: word length %d", ErrInvalidConfig, opts.WordLength)
	}
	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	v := &Vocabulary{
		alphabet:   opts.Alphabet,
		letters:    make(map[rune]struct{}, len(opts.Alphabet)),
		wordLength: opts.WordLength,
		source:     opts.Source,
		store:      opts.Cache,
		logger:     logger.With().Str("component", "vocab").Logger(),
	}
	for _, r := range opts.Alphabet {
		v.letters[r] = struct{}{}
	}

	if err := v.BuildVocabulary(!opts.Rebuild); err != nil {
		return nil, err
	}
	if err := v.BuildIndex(!opts.Rebuild); err != nil {
		return nil, err
	}
	v.logger.Info().Int("words", len(v.words)).Int("length", v.wordLength).Msg("vocabulary ready")
	return v, nil
}

// BuildVocabulary (re)loads the word set. With useCache it prefers the cached entry;
// otherwise it reads the source and persists the result.
func (v *Vocabulary) BuildVocabulary(useCache bool) error {
	data, name, err := v.readSource()
	if err != nil {
		return err
	}
	fp := fingerprint(data)

	if useCache && v.store != nil {
		var e vocabEntry
		ok, err := v.store.Load(cache.EntryVocab, &e)
		if err != nil {
			return err
		}
		if ok {
			if e.Fingerprint != fp {
				v.logger.Warn().Str("source", name).Msg("stale cache: word source changed since the vocabulary was cached")
			}
			v.setWords(e.Words)
			return nil
		}
	}

	v.setWords(v.parse(data))
	if v.store != nil {
		if err := v.store.Save(cache.EntryVocab, vocabEntry{Source: name, Fingerprint: fp, Words: v.words}); err != nil {
			return err
		}
	}
	return nil
}

// readSource returns the raw word list and a label for it.
func (v *Vocabulary) readSource() ([]byte, string, error) {
	if v.source == "" {
		return assets.DefaultWords(), assets.DefaultWordsName, nil
	}
	data, err := os.ReadFile(v.source)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, v.source, fmt.Errorf("%w: %s", ErrNotFound, v.source)
	}
	if err != nil {
		return nil, v.source, fmt.Errorf("vocab: read %s: %w", v.source, err)
	}
	return data, v.source, nil
}

// parse reads one word per line, lowercases and trims it, and keeps accepted words.
func (v *Vocabulary) parse(data []byte) map[string]int {
	out := make(map[string]int)
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		w := strings.TrimSpace(strings.ToLower(sc.Text()))
		if v.accept(w) {
			out[w] = v.wordLength
		}
	}
	return out
}

// setWords installs a word map, dropping anything the current configuration rejects.
func (v *Vocabulary) setWords(in map[string]int) {
	words := make(map[string]int, len(in))
	for w := range in {
		if v.accept(w) {
			words[w] = v.wordLength
		}
	}
	if dropped := len(in) - len(words); dropped > 0 {
		v.logger.Warn().Int("dropped", dropped).Msg("cached words do not match length/alphabet")
	}
	sorted := make([]string, 0, len(words))
	for w := range words {
		sorted = append(sorted, w)
	}
	sort.Strings(sorted)
	v.words, v.sorted = words, sorted
}

// accept reports whether w has the configured length and only alphabet characters.
func (v *Vocabulary) accept(w string) bool {
	n := 0
	for _, r := range w {
		if _, ok := v.letters[r]; !ok {
			return false
		}
		n++
	}
	return n == v.wordLength
}

// fingerprint is a short blake2b digest of a word source.
func fingerprint(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:16])
}

// IsWord reports whether w is in the vocabulary.
func (v *Vocabulary) IsWord(w string) bool {
	_, ok := v.words[strings.ToLower(w)]
	return ok
}

// Words returns the vocabulary in lexical order. The slice must not be modified.
func (v *Vocabulary) Words() []string { return v.sorted }

// Len returns the number of words.
func (v *Vocabulary) Len() int { return len(v.words) }

// WordLength returns the configured word length.
func (v *Vocabulary) WordLength() int { return v.wordLength }

// Alphabet returns the configured character set.
func (v *Vocabulary) Alphabet() string { return v.alphabet }

// Index returns the letter and letter-position indices. They must not be modified.
func (v *Vocabulary) Index() Index { return v.index }

// Frequency returns the letter and letter-position counts.
func (v *Vocabulary) Frequency() Frequency { return v.freq }
