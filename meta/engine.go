// Package meta implements the engine that drives the backtracking matcher
// over an input: it picks the offsets a match may start at and runs the
// matcher there.
//
// The engine coordinates:
//   - syntax: the compiled pattern
//   - literal + prefilter: fast candidate finding for patterns with a
//     literal prefix (optional)
//   - backtrack: the matcher that confirms or rejects each candidate
//
// The first offset, in increasing order, where the matcher succeeds wins.
// Prefilters only skip offsets where no match can start, so the chosen
// strategy never changes which match is found.
package meta

import (
	"sync/atomic"

	"github.com/coregx/backre/literal"
	"github.com/coregx/backre/prefilter"
	"github.com/coregx/backre/syntax"
)

// Engine searches an input for matches of one compiled pattern.
//
// Thread safety: an Engine is immutable after compilation apart from its
// statistics, which are updated atomically. Multiple goroutines can search
// with the same Engine concurrently. Per-search state (captures, trackers)
// is allocated per call.
//
// Example:
//
//	engine := meta.Compile(`(cat|dog) and \1`)
//	m := engine.FindString("my cat and cat")
//	if m != nil {
//	    println(m.String()) // "cat and cat"
//	}
type Engine struct {
	// stats must be first for 8-byte alignment of the atomic counters on
	// 32-bit platforms.
	stats Stats

	pattern   *syntax.Pattern
	prefilter prefilter.Prefilter
	strategy  Strategy
	config    Config
}

// Stats tracks search statistics.
type Stats struct {
	// Searches counts calls that searched an input.
	Searches uint64

	// Attempts counts matcher runs, one per tried offset.
	Attempts uint64

	// PrefilterCandidates counts offsets reported by the prefilter.
	PrefilterCandidates uint64

	// PrefilterMisses counts prefilter candidates the matcher rejected.
	PrefilterMisses uint64

	// PrefilterAbandoned counts searches whose tracker retired the prefilter.
	PrefilterAbandoned uint64

	// LiteralHits counts matches returned straight from a complete literal
	// without running the matcher.
	LiteralHits uint64
}

// Compile compiles pattern with the default configuration. It never fails:
// every pattern string has a meaning.
func Compile(pattern string) *Engine {
	e, err := NewEngine(syntax.Parse(pattern), DefaultConfig())
	if err != nil {
		// DefaultConfig always validates.
		panic(err)
	}
	return e
}

// CompileWithConfig compiles pattern with a custom configuration.
// The only possible error is an invalid configuration (*ConfigError).
func CompileWithConfig(pattern string, config Config) (*Engine, error) {
	return NewEngine(syntax.Parse(pattern), config)
}

// NewEngine builds an engine for an already parsed pattern.
func NewEngine(p *syntax.Pattern, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var pf prefilter.Prefilter
	if config.EnablePrefilter && !p.AnchorStart {
		pf = buildPrefilter(p, config)
	}

	return &Engine{
		pattern:   p,
		prefilter: pf,
		strategy:  selectStrategy(p, pf),
		config:    config,
	}, nil
}

// buildPrefilter extracts the prefix literals of p and builds a prefilter
// for them, or returns nil when the literals are too short to help.
func buildPrefilter(p *syntax.Pattern, config Config) prefilter.Prefilter {
	extractor := literal.New(literal.ExtractorConfig{
		MaxLiterals:   config.MaxLiterals,
		MaxLiteralLen: config.MaxLiteralLen,
		MaxClassSize:  literal.DefaultConfig().MaxClassSize,
	})
	prefixes := extractor.ExtractPrefixes(p)
	if prefixes.IsEmpty() || prefixes.MinLen() < config.MinLiteralLen {
		return nil
	}
	return prefilter.NewBuilder(prefixes).Build()
}

// Pattern returns the compiled pattern.
func (e *Engine) Pattern() *syntax.Pattern {
	return e.pattern
}

// Strategy returns the strategy selected for this engine.
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

// NumGroups returns the number of capture groups in the pattern.
func (e *Engine) NumGroups() int {
	return e.pattern.NumGroups
}

// IsStartAnchored returns true if the pattern starts with ^.
func (e *Engine) IsStartAnchored() bool {
	return e.pattern.AnchorStart
}

// Stats returns a snapshot of the search statistics.
func (e *Engine) Stats() Stats {
	return Stats{
		Searches:            atomic.LoadUint64(&e.stats.Searches),
		Attempts:            atomic.LoadUint64(&e.stats.Attempts),
		PrefilterCandidates: atomic.LoadUint64(&e.stats.PrefilterCandidates),
		PrefilterMisses:     atomic.LoadUint64(&e.stats.PrefilterMisses),
		PrefilterAbandoned:  atomic.LoadUint64(&e.stats.PrefilterAbandoned),
		LiteralHits:         atomic.LoadUint64(&e.stats.LiteralHits),
	}
}

// ResetStats resets the search statistics to zero.
func (e *Engine) ResetStats() {
	atomic.StoreUint64(&e.stats.Searches, 0)
	atomic.StoreUint64(&e.stats.Attempts, 0)
	atomic.StoreUint64(&e.stats.PrefilterCandidates, 0)
	atomic.StoreUint64(&e.stats.PrefilterMisses, 0)
	atomic.StoreUint64(&e.stats.PrefilterAbandoned, 0)
	atomic.StoreUint64(&e.stats.LiteralHits, 0)
}
