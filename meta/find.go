package meta

import (
	"sync/atomic"

	"github.com/coregx/backre/backtrack"
	"github.com/coregx/backre/prefilter"
)

// IsMatch reports whether the pattern matches anywhere in haystack.
func (e *Engine) IsMatch(haystack []byte) bool {
	return e.search(string(haystack), haystack, 0) != nil
}

// IsMatchString reports whether the pattern matches anywhere in s.
func (e *Engine) IsMatchString(s string) bool {
	return e.search(s, nil, 0) != nil
}

// Find returns the first match in haystack, or nil.
func (e *Engine) Find(haystack []byte) *Match {
	return e.search(string(haystack), haystack, 0)
}

// FindString returns the first match in s, or nil.
func (e *Engine) FindString(s string) *Match {
	return e.search(s, nil, 0)
}

// FindAt returns the first match starting at or after offset at, or nil.
// Positions in the returned Match are relative to the whole haystack, and
// anchors still refer to the whole haystack: a pattern starting with ^ can
// only match when at is 0.
func (e *Engine) FindAt(haystack []byte, at int) *Match {
	return e.search(string(haystack), haystack, at)
}

// FindStringAt is FindAt for a string input.
func (e *Engine) FindStringAt(s string, at int) *Match {
	return e.search(s, nil, at)
}

// search finds the first match at an offset >= at. hay is input as bytes,
// or nil if the caller only has the string; it is converted on demand for
// the prefilter.
func (e *Engine) search(input string, hay []byte, at int) *Match {
	if at < 0 || at > len(input) {
		return nil
	}
	atomic.AddUint64(&e.stats.Searches, 1)

	switch e.strategy {
	case UseEmpty:
		if e.pattern.AnchorStart && e.pattern.AnchorEnd && len(input) == 0 {
			return NewMatch(0, 0, input, nil)
		}
		return nil
	case UseAnchored:
		if at != 0 {
			return nil
		}
		return e.tryAt(input, 0)
	case UsePrefilter:
		if hay == nil {
			hay = []byte(input)
		}
		return e.searchPrefilter(input, hay, at)
	default:
		return e.scan(input, at)
	}
}

// tryAt runs the matcher at offset pos with a fresh capture mapping.
func (e *Engine) tryAt(input string, pos int) *Match {
	atomic.AddUint64(&e.stats.Attempts, 1)
	end, caps, ok := backtrack.Match(input, pos, e.pattern.Components)
	if !ok || (e.pattern.AnchorEnd && end != len(input)) {
		return nil
	}
	return NewMatch(pos, end, input, caps)
}

// scan tries every offset from at through len(input) inclusive.
func (e *Engine) scan(input string, at int) *Match {
	for pos := at; pos <= len(input); pos++ {
		if m := e.tryAt(input, pos); m != nil {
			return m
		}
	}
	return nil
}

// searchPrefilter tries only the offsets reported by the prefilter. With
// tracking enabled, a retired prefilter hands the rest of the input to scan.
func (e *Engine) searchPrefilter(input string, hay []byte, at int) *Match {
	var pf prefilter.Prefilter = e.prefilter
	var tracker *prefilter.Tracker
	if e.config.EnableTracking {
		tracker = prefilter.NewTracker(e.prefilter)
		pf = tracker
	}

	for start := at; start <= len(input); {
		if tracker != nil && !tracker.IsActive() {
			atomic.AddUint64(&e.stats.PrefilterAbandoned, 1)
			return e.scan(input, start)
		}

		pos := pf.Find(hay, start)
		if pos == -1 {
			return nil
		}
		atomic.AddUint64(&e.stats.PrefilterCandidates, 1)

		if pf.IsComplete() {
			atomic.AddUint64(&e.stats.LiteralHits, 1)
			return NewMatch(pos, pos+pf.LiteralLen(), input, nil)
		}
		if m := e.tryAt(input, pos); m != nil {
			if tracker != nil {
				tracker.ConfirmMatch()
			}
			return m
		}
		atomic.AddUint64(&e.stats.PrefilterMisses, 1)
		start = pos + 1
	}
	return nil
}
