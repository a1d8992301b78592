package solver

import "sort"

// LetterState is what is known about one letter of the secret. It is either
// Fixed or ExcludedFrom; a letter never holds both.
type LetterState interface {
	// allows reports whether a word's runes are consistent with this state for letter l.
	allows(l rune, word []rune) bool
}

// Fixed places the letter at Position. A letter holds a single Fixed position:
// when it scores Correct at several positions the last one is kept, so the
// fixed-position filter of BestOptions checks only that one. Candidates are still
// pruned against every Correct position when the feedback is applied.
type Fixed struct {
	Position int
}

func (f Fixed) allows(l rune, word []rune) bool {
	return f.Position < len(word) && word[f.Position] == l
}

// ExcludedFrom says the letter is in the secret but at none of Positions.
// Positions is sorted and free of duplicates.
type ExcludedFrom struct {
	Positions []int
}

// Excludes reports whether p is one of the excluded positions.
func (e ExcludedFrom) Excludes(p int) bool {
	i := sort.SearchInts(e.Positions, p)
	return i < len(e.Positions) && e.Positions[i] == p
}

// with returns a copy of e that also excludes p.
func (e ExcludedFrom) with(p int) ExcludedFrom {
	if e.Excludes(p) {
		return e
	}
	out := make([]int, 0, len(e.Positions)+1)
	out = append(out, e.Positions...)
	out = append(out, p)
	sort.Ints(out)
	return ExcludedFrom{Positions: out}
}

func (e ExcludedFrom) allows(l rune, word []rune) bool {
	found := false
	for i, r := range word {
		if r != l {
			continue
		}
		if e.Excludes(i) {
			return false
		}
		found = true
	}
	return found
}

// KnownLetters maps letters to what has been learnt about them.
type KnownLetters map[rune]LetterState

// Allows reports whether word satisfies every known letter.
func (k KnownLetters) Allows(word string) bool {
	rs := []rune(word)
	for l, st := range k {
		if !st.allows(l, rs) {
			return false
		}
	}
	return true
}

func (k KnownLetters) clone() KnownLetters {
	out := make(KnownLetters, len(k))
	for l, st := range k {
		out[l] = st
	}
	return out
}
