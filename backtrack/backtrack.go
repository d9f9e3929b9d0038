// Package backtrack implements the recursive backtracking matcher that runs
// compiled pattern components against an input string.
//
// The matcher walks a component sequence with plain function recursion
// standing in for a choice-point stack. Every construct that can fail and
// retry (quantifiers, alternation) takes a private copy of the capture
// mapping, attempts one alternative together with the rest of the sequence,
// and merges the copy back into the caller's mapping only when both succeed.
// A failed alternative therefore leaves no trace in the captures.
//
// There is no memoization and no step limit: pathological patterns can
// explore an exponential number of paths.
package backtrack

import (
	"maps"
	"strings"

	"github.com/coregx/backre/syntax"
)

// Captures maps a capture group id to the text it matched.
type Captures map[int]string

// Clone returns an independent copy of c. The copy is never nil.
func (c Captures) Clone() Captures {
	if c == nil {
		return Captures{}
	}
	return maps.Clone(c)
}

// Get returns the text captured by group id.
func (c Captures) Get(id int) (string, bool) {
	s, ok := c[id]
	return s, ok
}

// commit copies every entry of branch into c.
func (c Captures) commit(branch Captures) {
	maps.Copy(c, branch)
}

// Match runs comps against input starting at pos with a fresh capture
// mapping. It returns the end offset and the captures of the winning path.
func Match(input string, pos int, comps []syntax.Component) (int, Captures, bool) {
	caps := Captures{}
	end, ok := MatchSequence(input, pos, comps, 0, caps)
	if !ok {
		return -1, nil, false
	}
	return end, caps, true
}

// MatchSequence matches comps[idx:] against input starting at pos and
// returns the offset where the match ends.
//
// On success caps holds the groups captured along the winning path. On
// failure caps is unchanged. caps must not be nil.
//
// Reaching the end of comps is a success regardless of remaining input.
// Reaching the end of input while components remain is a success only if
// every remaining component can match nothing (see optionalAtEnd).
func MatchSequence(input string, pos int, comps []syntax.Component, idx int, caps Captures) (int, bool) {
	if idx >= len(comps) {
		return pos, true
	}
	if pos >= len(input) {
		for i := idx; i < len(comps); i++ {
			if !optionalAtEnd(&comps[i], pos, caps) {
				return -1, false
			}
		}
		return pos, true
	}

	c := &comps[idx]
	switch {
	case c.Kind == syntax.Alternation && c.Quantifier == syntax.OneOrMore:
		return matchGroupRepeat(input, pos, comps, idx, caps, false)
	case c.Quantifier == syntax.OneOrMore:
		return matchOneOrMore(input, pos, comps, idx, caps)
	case c.Quantifier == syntax.ZeroOrOne:
		return matchZeroOrOne(input, pos, comps, idx, caps)
	case c.Kind == syntax.Alternation:
		return matchAlternation(input, pos, comps, idx, caps)
	}

	end, ok := step(input, pos, c, caps)
	if !ok {
		return -1, false
	}
	return MatchSequence(input, end, comps, idx+1, caps)
}

// optionalAtEnd reports whether c is satisfied with no input left.
func optionalAtEnd(c *syntax.Component, pos int, caps Captures) bool {
	if c.Quantifier == syntax.ZeroOrOne {
		return true
	}
	switch c.Kind {
	case syntax.Backreference:
		return caps[c.Group] == ""
	case syntax.EndAnchor:
		return true
	case syntax.StartAnchor:
		return pos == 0
	}
	return false
}

// step matches one repetition of a non-group component c at pos, ignoring
// its quantifier. Groups never reach step; see matchAlternation and
// matchGroupRepeat.
func step(input string, pos int, c *syntax.Component, caps Captures) (int, bool) {
	switch c.Kind {
	case syntax.StartAnchor:
		return pos, pos == 0
	case syntax.EndAnchor:
		return pos, pos == len(input)
	case syntax.Backreference:
		text := caps[c.Group]
		if text == "" {
			return pos, true
		}
		if !strings.HasPrefix(input[pos:], text) {
			return -1, false
		}
		return pos + len(text), true
	}
	if pos < len(input) && c.MatchByte(input[pos]) {
		return pos + 1, true
	}
	return -1, false
}

func record(caps Captures, c *syntax.Component, input string, start, end int) {
	if c.Group > 0 {
		caps[c.Group] = input[start:end]
	}
}

// matchAlternation tries each branch in source order. A branch wins when it
// matches and the rest of the sequence matches after it; branches are not
// compared by length.
func matchAlternation(input string, pos int, comps []syntax.Component, idx int, caps Captures) (int, bool) {
	c := &comps[idx]
	for _, branch := range c.Branches {
		try := caps.Clone()
		end, ok := MatchSequence(input, pos, branch, 0, try)
		if !ok {
			continue
		}
		record(try, c, input, pos, end)
		if rest, ok := MatchSequence(input, end, comps, idx+1, try); ok {
			caps.commit(try)
			return rest, true
		}
	}
	return -1, false
}

// matchOneOrMore handles + on single-byte components and backreferences.
// It collects the greedy run of repetitions, then tries the rest of the
// sequence after L, L-1, ..., 1 repetitions.
func matchOneOrMore(input string, pos int, comps []syntax.Component, idx int, caps Captures) (int, bool) {
	c := &comps[idx]
	end, ok := step(input, pos, c, caps)
	if !ok {
		return -1, false
	}
	ends := []int{end}
	for cur := end; cur < len(input); {
		next, ok := step(input, cur, c, caps)
		if !ok || next == cur {
			break
		}
		ends = append(ends, next)
		cur = next
	}

	for k := len(ends) - 1; k >= 0; k-- {
		try := caps.Clone()
		if rest, ok := MatchSequence(input, ends[k], comps, idx+1, try); ok {
			caps.commit(try)
			return rest, true
		}
	}
	return -1, false
}

// matchGroupRepeat handles + on alternation groups. Each repetition may pick
// a different branch, so the choices are explored depth first: one more
// repetition is tried before the rest of the sequence. A repetition that
// consumes nothing is only accepted as the first one.
func matchGroupRepeat(input string, pos int, comps []syntax.Component, idx int, caps Captures, repeated bool) (int, bool) {
	c := &comps[idx]
	for _, branch := range c.Branches {
		try := caps.Clone()
		end, ok := MatchSequence(input, pos, branch, 0, try)
		if !ok || (repeated && end == pos) {
			continue
		}
		record(try, c, input, pos, end)

		if end > pos {
			deeper := try.Clone()
			if rest, ok := matchGroupRepeat(input, end, comps, idx, deeper, true); ok {
				caps.commit(deeper)
				return rest, true
			}
		}
		if rest, ok := MatchSequence(input, end, comps, idx+1, try); ok {
			caps.commit(try)
			return rest, true
		}
	}
	return -1, false
}

// matchZeroOrOne tries zero repetitions first, then one. For groups the
// one-repetition case goes through matchAlternation so every branch is
// tried against the rest of the sequence.
func matchZeroOrOne(input string, pos int, comps []syntax.Component, idx int, caps Captures) (int, bool) {
	zero := caps.Clone()
	if rest, ok := MatchSequence(input, pos, comps, idx+1, zero); ok {
		caps.commit(zero)
		return rest, true
	}

	c := &comps[idx]
	if c.Kind == syntax.Alternation {
		return matchAlternation(input, pos, comps, idx, caps)
	}
	one := caps.Clone()
	end, ok := step(input, pos, c, one)
	if !ok {
		return -1, false
	}
	if rest, ok := MatchSequence(input, end, comps, idx+1, one); ok {
		caps.commit(one)
		return rest, true
	}
	return -1, false
}
