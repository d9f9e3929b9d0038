package meta

import (
	"github.com/coregx/backre/prefilter"
	"github.com/coregx/backre/syntax"
)

// Strategy is the way an Engine picks the offsets it runs the matcher at.
type Strategy int

const (
	// UseEmpty handles patterns with nothing between the anchors. Only
	// "^$" matches, and only the empty input; "", "^" and "$" never match.
	UseEmpty Strategy = iota

	// UseAnchored tries offset 0 only. Selected for patterns starting
	// with ^.
	UseAnchored

	// UsePrefilter tries only the offsets where a prefix literal occurs.
	// Selected for unanchored patterns with extractable prefix literals.
	UsePrefilter

	// UseScan tries every offset from the start through len(input)
	// inclusive.
	UseScan
)

// String returns a human-readable representation of the Strategy.
func (s Strategy) String() string {
	switch s {
	case UseEmpty:
		return "UseEmpty"
	case UseAnchored:
		return "UseAnchored"
	case UsePrefilter:
		return "UsePrefilter"
	case UseScan:
		return "UseScan"
	default:
		return "Unknown"
	}
}

// selectStrategy picks the strategy for p. pf is the prefilter built from
// the prefix literals of p, or nil.
func selectStrategy(p *syntax.Pattern, pf prefilter.Prefilter) Strategy {
	switch {
	case len(p.Body()) == 0:
		return UseEmpty
	case p.AnchorStart:
		return UseAnchored
	case pf != nil:
		return UsePrefilter
	default:
		return UseScan
	}
}
