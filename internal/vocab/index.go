package vocab

import (
	"fmt"
	"sort"
	"strconv"
	"unicode/utf8"

	"github.com/robalobadob/wordle/apps/go-solver/internal/cache"
)

// WordSet is a set of words.
type WordSet map[string]struct{}

// Has reports whether w is in the set.
func (s WordSet) Has(w string) bool {
	_, ok := s[w]
	return ok
}

// Sorted returns the members in lexical order.
func (s WordSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for w := range s {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// LetterPosition identifies a letter at a 0-based position.
type LetterPosition struct {
	Letter rune
	Pos    int
}

// String renders the persisted key form, e.g. "a0".
func (lp LetterPosition) String() string {
	return string(lp.Letter) + strconv.Itoa(lp.Pos)
}

// parseLetterPosition is the inverse of LetterPosition.String.
func parseLetterPosition(key string) (LetterPosition, error) {
	r, size := utf8.DecodeRuneInString(key)
	if r == utf8.RuneError || size == len(key) {
		return LetterPosition{}, fmt.Errorf("bad letter position key %q", key)
	}
	pos, err := strconv.Atoi(key[size:])
	if err != nil || pos < 0 {
		return LetterPosition{}, fmt.Errorf("bad letter position key %q", key)
	}
	return LetterPosition{Letter: r, Pos: pos}, nil
}

// Index maps letters, and letters at positions, to the words containing them.
type Index struct {
	Letter   map[rune]WordSet
	Position map[LetterPosition]WordSet
}

// Frequency counts the words behind each Index entry.
type Frequency struct {
	Letter   map[rune]int
	Position map[LetterPosition]int
}

// indexEntry is the persisted form of the index.
type indexEntry struct {
	Letter         map[string][]string `json:"letter"`
	LetterPosition map[string][]string `json:"letter_position"`
}

// BuildIndex (re)builds the indices and frequency tables from the current word set.
// With useCache it prefers the cached index, restricted to words still in the vocabulary.
func (v *Vocabulary) BuildIndex(useCache bool) error {
	if useCache && v.store != nil {
		var e indexEntry
		ok, err := v.store.Load(cache.EntryIndex, &e)
		if err != nil {
			return err
		}
		if ok {
			idx, err := v.fromEntry(e)
			if err != nil {
				return fmt.Errorf("%w: %s: %w", cache.ErrDecode, cache.EntryIndex, err)
			}
			v.setIndex(idx)
			return nil
		}
	}

	v.setIndex(buildIndex(v.sorted))
	if v.store != nil {
		if err := v.store.Save(cache.EntryIndex, toEntry(v.index)); err != nil {
			return err
		}
	}
	return nil
}

// buildIndex indexes every letter and letter position of words.
func buildIndex(words []string) Index {
	idx := Index{
		Letter:   make(map[rune]WordSet),
		Position: make(map[LetterPosition]WordSet),
	}
	for _, w := range words {
		for i, r := range []rune(w) {
			add(idx.Letter, r, w)
			add(idx.Position, LetterPosition{Letter: r, Pos: i}, w)
		}
	}
	return idx
}

func add[K comparable](m map[K]WordSet, k K, w string) {
	set, ok := m[k]
	if !ok {
		set = make(WordSet)
		m[k] = set
	}
	set[w] = struct{}{}
}

func (v *Vocabulary) setIndex(idx Index) {
	freq := Frequency{
		Letter:   make(map[rune]int, len(idx.Letter)),
		Position: make(map[LetterPosition]int, len(idx.Position)),
	}
	for r, set := range idx.Letter {
		freq.Letter[r] = len(set)
	}
	for lp, set := range idx.Position {
		freq.Position[lp] = len(set)
	}
	v.index, v.freq = idx, freq
}

func toEntry(idx Index) indexEntry {
	e := indexEntry{
		Letter:         make(map[string][]string, len(idx.Letter)),
		LetterPosition: make(map[string][]string, len(idx.Position)),
	}
	for r, set := range idx.Letter {
		e.Letter[string(r)] = set.Sorted()
	}
	for lp, set := range idx.Position {
		e.LetterPosition[lp.String()] = set.Sorted()
	}
	return e
}

func (v *Vocabulary) fromEntry(e indexEntry) (Index, error) {
	idx := Index{
		Letter:   make(map[rune]WordSet, len(e.Letter)),
		Position: make(map[LetterPosition]WordSet, len(e.LetterPosition)),
	}
	for key, words := range e.Letter {
		r, size := utf8.DecodeRuneInString(key)
		if size != len(key) || r == utf8.RuneError {
			return Index{}, fmt.Errorf("bad letter key %q", key)
		}
		for _, w := range words {
			if _, ok := v.words[w]; ok {
				add(idx.Letter, r, w)
			}
		}
	}
	for key, words := range e.LetterPosition {
		lp, err := parseLetterPosition(key)
		if err != nil {
			return Index{}, err
		}
		for _, w := range words {
			if _, ok := v.words[w]; ok {
				add(idx.Position, lp, w)
			}
		}
	}
	return idx, nil
}
