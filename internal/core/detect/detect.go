// Package detect implements keyword scoring over the report catalog.
// Scoring is a deliberately simple additive heuristic: per keyword,
// count non-overlapping case-insensitive occurrences in the text and
// sum across keywords. No stemming, no weighting, no positional bonus;
// the point is that a human can audit why a report type won
package detect

import (
	"sort"
	"strings"

	"reportsmith/internal/core/registry"
)

// Input is one detection request. Filename is an optional hint: a
// keyword absent from the markdown still scores 1 when it appears in
// the original filename
type Input struct {
	Markdown string
	Filename string
}

// Candidate is one spec's score for a detection run
type Candidate struct {
	ID              string
	DisplayName     string
	Score           int
	MatchedKeywords []string
}

// Outcome is the ranked result of one detection run.
// Candidates are ordered by descending score; equal scores keep
// registry insertion order, which fixes the order of ids in conflict
// reports
type Outcome struct {
	Candidates []Candidate
}

// Score runs keyword detection for every spec in the registry.
// Every spec yields a candidate, including zero scorers; callers
// inspect only the top segment
func Score(reg *registry.Registry, in Input) Outcome {
	text := fold(in.Markdown)
	filename := fold(in.Filename)

	specs := reg.All()
	cands := make([]Candidate, 0, len(specs))
	for _, s := range specs {
		cands = append(cands, scoreSpec(s, text, filename))
	}

	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].Score > cands[j].Score
	})
	return Outcome{Candidates: cands}
}

func scoreSpec(s registry.Spec, text, filename string) Candidate {
	c := Candidate{ID: s.ID, DisplayName: s.DisplayName}
	for _, keyword := range s.Keywords {
		kw := fold(keyword)
		if kw == "" {
			continue
		}
		n := strings.Count(text, kw)
		if n == 0 && strings.Contains(filename, kw) {
			n = 1
		}
		if n > 0 {
			c.Score += n
			c.MatchedKeywords = append(c.MatchedKeywords, keyword)
		}
	}
	return c
}

// Best returns the unique winner, or false when there is no positive
// score or the top score is shared
func (o Outcome) Best() (Candidate, bool) {
	if o.NoMatch() || o.Tied() {
		return Candidate{}, false
	}
	return o.Candidates[0], true
}

// NoMatch reports whether no spec scored above zero
func (o Outcome) NoMatch() bool {
	return len(o.Candidates) == 0 || o.Candidates[0].Score == 0
}

// Tied reports whether two or more specs share the positive top score
func (o Outcome) Tied() bool {
	if o.NoMatch() || len(o.Candidates) < 2 {
		return false
	}
	return o.Candidates[1].Score == o.Candidates[0].Score
}

// Top returns all candidates at the positive top score, in registry
// insertion order. Empty on no match
func (o Outcome) Top() []Candidate {
	if o.NoMatch() {
		return nil
	}
	top := o.Candidates[0].Score
	var out []Candidate
	for _, c := range o.Candidates {
		if c.Score != top {
			break
		}
		out = append(out, c)
	}
	return out
}
