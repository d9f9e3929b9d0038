// Package prefilter provides fast candidate filtering for pattern search
// using extracted prefix literals.
//
// A prefilter rejects offsets of the haystack where no match can begin, so
// the backtracking matcher only runs where one of the prefix literals occurs.
//
// The builder selects the prefilter from the extracted literals:
//   - Single byte → memchr (bytes.IndexByte)
//   - Single substring → memmem (bytes.Index)
//   - Several literals → Aho-Corasick automaton
//
// Example usage:
//
//	p := syntax.Parse("(hello|world)!")
//	prefixes := literal.New(literal.DefaultConfig()).ExtractPrefixes(p)
//	pf := prefilter.NewBuilder(prefixes).Build()
//
//	haystack := []byte("foo hello! bar")
//	pos := pf.Find(haystack, 0)
//	// pos == 4 (position of "hello")
package prefilter

import (
	"bytes"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/backre/literal"
)

// Prefilter finds candidate match positions before the full matcher runs.
type Prefilter interface {
	// Find returns the index of the first candidate at or after start, or -1
	// if none exists. A candidate is an offset where a prefix literal begins;
	// it does not guarantee a match unless IsComplete is true.
	//
	// Typical loop:
	//
	//	pos := pf.Find(haystack, 0)
	//	for pos != -1 {
	//	    if fullMatchAt(haystack, pos) {
	//	        return pos
	//	    }
	//	    pos = pf.Find(haystack, pos+1)
	//	}
	Find(haystack []byte, start int) int

	// IsComplete returns true if a candidate is a full match of length
	// LiteralLen. This holds only when the whole pattern is a single literal.
	IsComplete() bool

	// LiteralLen returns the length of the literal when IsComplete is true,
	// and 0 otherwise.
	LiteralLen() int

	// HeapBytes returns the heap memory held by the prefilter.
	HeapBytes() int
}

// Builder constructs the prefilter for a set of prefix literals.
type Builder struct {
	prefixes *literal.Seq
}

// NewBuilder creates a builder for the given prefix literals. prefixes may be
// nil, in which case Build returns nil.
func NewBuilder(prefixes *literal.Seq) *Builder {
	return &Builder{prefixes: prefixes}
}

// Build returns the prefilter for the builder's literals, or nil when no
// useful prefilter exists (no literals, or an empty literal that would
// match at every offset).
func (b *Builder) Build() Prefilter {
	if b.prefixes.IsEmpty() || b.prefixes.MinLen() == 0 {
		return nil
	}
	return selectPrefilter(b.prefixes.Clone())
}

// selectPrefilter picks the search primitive for a non-empty literal set.
//
// Several literals are first cut to the length of the shortest one. All
// needles then have equal length, so the leftmost occurrence of any of them
// is also the first one reported by the automaton.
func selectPrefilter(seq *literal.Seq) Prefilter {
	if seq.Len() == 1 {
		lit := seq.Get(0)
		if len(lit.Bytes) == 1 {
			return newMemchrPrefilter(lit.Bytes[0], lit.Complete)
		}
		return newMemmemPrefilter(lit.Bytes, lit.Complete)
	}

	seq.TruncateTo(seq.MinLen())
	seq.Minimize()
	if seq.Len() == 1 {
		lit := seq.Get(0)
		if len(lit.Bytes) == 1 {
			return newMemchrPrefilter(lit.Bytes[0], false)
		}
		return newMemmemPrefilter(lit.Bytes, false)
	}
	return newAhoCorasickPrefilter(seq)
}

// memchrPrefilter searches for a single byte.
type memchrPrefilter struct {
	needle   byte
	complete bool
}

func newMemchrPrefilter(needle byte, complete bool) Prefilter {
	return &memchrPrefilter{needle: needle, complete: complete}
}

func (p *memchrPrefilter) Find(haystack []byte, start int) int {
	if start >= len(haystack) {
		return -1
	}
	pos := bytes.IndexByte(haystack[start:], p.needle)
	if pos == -1 {
		return -1
	}
	return start + pos
}

func (p *memchrPrefilter) IsComplete() bool {
	return p.complete
}

func (p *memchrPrefilter) LiteralLen() int {
	if p.complete {
		return 1
	}
	return 0
}

func (p *memchrPrefilter) HeapBytes() int {
	return 0
}

// memmemPrefilter searches for a single substring.
type memmemPrefilter struct {
	needle   []byte
	complete bool
}

func newMemmemPrefilter(needle []byte, complete bool) Prefilter {
	return &memmemPrefilter{
		needle:   bytes.Clone(needle),
		complete: complete,
	}
}

func (p *memmemPrefilter) Find(haystack []byte, start int) int {
	if start+len(p.needle) > len(haystack) {
		return -1
	}
	pos := bytes.Index(haystack[start:], p.needle)
	if pos == -1 {
		return -1
	}
	return start + pos
}

func (p *memmemPrefilter) IsComplete() bool {
	return p.complete
}

func (p *memmemPrefilter) LiteralLen() int {
	if p.complete {
		return len(p.needle)
	}
	return 0
}

func (p *memmemPrefilter) HeapBytes() int {
	return len(p.needle)
}

// ahoCorasickPrefilter searches for any of several equal-length literals.
type ahoCorasickPrefilter struct {
	auto      *ahocorasick.Automaton
	needleLen int
	heap      int
}

// newAhoCorasickPrefilter builds the automaton. If construction fails the
// returned prefilter is nil and the caller scans every offset instead.
func newAhoCorasickPrefilter(seq *literal.Seq) Prefilter {
	builder := ahocorasick.NewBuilder()
	heap := 0
	for i := 0; i < seq.Len(); i++ {
		lit := seq.Get(i)
		builder.AddPattern(lit.Bytes)
		heap += len(lit.Bytes)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &ahoCorasickPrefilter{
		auto:      auto,
		needleLen: seq.MinLen(),
		heap:      heap,
	}
}

func (p *ahoCorasickPrefilter) Find(haystack []byte, start int) int {
	if start+p.needleLen > len(haystack) {
		return -1
	}
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

func (p *ahoCorasickPrefilter) IsComplete() bool {
	return false
}

func (p *ahoCorasickPrefilter) LiteralLen() int {
	return 0
}

// HeapBytes reports the bytes of the literals fed to the automaton; the
// automaton does not expose its own table sizes.
func (p *ahoCorasickPrefilter) HeapBytes() int {
	return p.heap
}
