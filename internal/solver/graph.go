package solver

import "sort"

// CoverageGraph is the bipartite graph between candidate words and the letters
// they contain. The degree of a letter is the number of candidates containing it.
type CoverageGraph struct {
	wordLetters map[string][]rune
	letterWords map[rune]map[string]struct{}
}

func newCoverageGraph(words []string) *CoverageGraph {
	g := &CoverageGraph{
		wordLetters: make(map[string][]rune, len(words)),
		letterWords: make(map[rune]map[string]struct{}),
	}
	for _, w := range words {
		letters := distinctLetters(w)
		g.wordLetters[w] = letters
		for _, l := range letters {
			ws, ok := g.letterWords[l]
			if !ok {
				ws = make(map[string]struct{})
				g.letterWords[l] = ws
			}
			ws[w] = struct{}{}
		}
	}
	return g
}

// remove drops w and its edges. Letters left without words disappear.
func (g *CoverageGraph) remove(w string) {
	for _, l := range g.wordLetters[w] {
		ws := g.letterWords[l]
		delete(ws, w)
		if len(ws) == 0 {
			delete(g.letterWords, l)
		}
	}
	delete(g.wordLetters, w)
}

// Degree returns the number of words containing l.
func (g *CoverageGraph) Degree(l rune) int { return len(g.letterWords[l]) }

// Letters returns the letters with at least one edge, in ascending order.
func (g *CoverageGraph) Letters() []rune {
	out := make([]rune, 0, len(g.letterWords))
	for l := range g.letterWords {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// LettersOf returns the distinct letters of w, or nil when w is not in the graph.
func (g *CoverageGraph) LettersOf(w string) []rune { return g.wordLetters[w] }

// Len returns the number of words in the graph.
func (g *CoverageGraph) Len() int { return len(g.wordLetters) }

// distinctLetters returns the letters of w in first-occurrence order, without repeats.
func distinctLetters(w string) []rune {
	var out []rune
	seen := make(map[rune]struct{}, len(w))
	for _, r := range w {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
