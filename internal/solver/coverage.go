package solver

import "sort"

// Option is a candidate guess and its coverage score.
type Option struct {
	Word     string  `json:"word"`
	Coverage float64 `json:"coverage"`
}

// CalculateCoverage scores a set of letters against the current candidates.
//
// The universe U is every letter with at least one candidate, minus the known
// letters when omitKnown is set. The score is the summed degree of the queried
// letters in U as a percentage of the summed degree of U. Repeated letters count
// once; letters outside U contribute nothing.
func (s *Solver) CalculateCoverage(letters []rune, omitKnown bool) float64 {
	if len(letters) == 0 {
		return 0
	}
	inUniverse := func(l rune) bool {
		if s.graph.Degree(l) == 0 {
			return false
		}
		if omitKnown {
			if _, known := s.known[l]; known {
				return false
			}
		}
		return true
	}

	total := 0
	for _, l := range s.graph.Letters() {
		if inUniverse(l) {
			total += s.graph.Degree(l)
		}
	}
	if total == 0 {
		return 0
	}

	covered := 0
	seen := make(map[rune]struct{}, len(letters))
	for _, l := range letters {
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		if inUniverse(l) {
			covered += s.graph.Degree(l)
		}
	}
	return 100 * float64(covered) / float64(total)
}

// wordCoverage is the memoised coverage of a candidate's unresolved letters.
func (s *Solver) wordCoverage(w string) float64 {
	if c, ok := s.coverage[w]; ok {
		return c
	}
	c := s.CalculateCoverage(distinctLetters(w), true)
	s.coverage[w] = c
	return c
}

// Coverage returns the coverage of every candidate, computing what the memo lacks.
// The memo is only cleared by ResetCoverage.
func (s *Solver) Coverage() map[string]float64 {
	out := make(map[string]float64, len(s.valid))
	for w := range s.valid {
		out[w] = s.wordCoverage(w)
	}
	return out
}

// ResetCoverage clears the coverage memo. The solver calls it whenever the
// candidate set shrinks.
func (s *Solver) ResetCoverage() {
	s.coverage = make(map[string]float64)
}

// TopCoverage returns up to n candidates with the highest coverage, skipping
// words that contain a letter of avoid and, when coverageMin is set, words scoring
// below it. Ties are broken by ascending word order.
func (s *Solver) TopCoverage(n int, avoid map[rune]struct{}, coverageMin *float64) []Option {
	if n <= 0 {
		return []Option{}
	}
	return s.rank(s.ValidWords(), n, avoid, nil, coverageMin)
}

// OptionsFromValidWords returns every candidate with its coverage, best first.
func (s *Solver) OptionsFromValidWords() []Option {
	return s.rank(s.ValidWords(), -1, nil, nil, nil)
}

// rank scores words and orders them by descending coverage then ascending word.
// Words containing a letter of avoid and words in skip are left out. A negative n
// keeps everything.
func (s *Solver) rank(words []string, n int, avoid map[rune]struct{}, skip map[string]struct{}, coverageMin *float64) []Option {
	out := make([]Option, 0, len(words))
	for _, w := range words {
		if _, ok := skip[w]; ok {
			continue
		}
		if containsAny(w, avoid) {
			continue
		}
		c := s.wordCoverage(w)
		if coverageMin != nil && c < *coverageMin {
			continue
		}
		out = append(out, Option{Word: w, Coverage: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Coverage != out[j].Coverage {
			return out[i].Coverage > out[j].Coverage
		}
		return out[i].Word < out[j].Word
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func containsAny(w string, letters map[rune]struct{}) bool {
	if len(letters) == 0 {
		return false
	}
	for _, r := range w {
		if _, ok := letters[r]; ok {
			return true
		}
	}
	return false
}
