package literal

import (
	"github.com/coregx/backre/syntax"
)

// ExtractorConfig configures literal extraction limits.
//
// Example:
//
//	config := literal.ExtractorConfig{
//	    MaxLiterals:   64,
//	    MaxLiteralLen: 64,
//	    MaxClassSize:  10,
//	}
//	extractor := literal.New(config)
type ExtractorConfig struct {
	// MaxLiterals limits the number of alternative literals. Patterns that
	// would need more yield no literals at all. Default: 64.
	MaxLiterals int

	// MaxLiteralLen limits the length of each literal. Longer runs are cut
	// and marked incomplete. Default: 64.
	MaxLiteralLen int

	// MaxClassSize limits the size of a bracket class or \d expanded into
	// single-byte literals. Default: 10.
	MaxClassSize int
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
		MaxClassSize:  10,
	}
}

// Extractor extracts prefix literals from compiled patterns.
//
// Example:
//
//	p := syntax.Parse("(hello|world)!")
//	prefixes := literal.New(literal.DefaultConfig()).ExtractPrefixes(p)
//	// prefixes = ["hello", "world"], both incomplete
type Extractor struct {
	config ExtractorConfig
}

// New creates a new Extractor with the given configuration.
func New(config ExtractorConfig) *Extractor {
	return &Extractor{config: config}
}

// ExtractPrefixes returns literals one of which begins every match of p.
//
// Extraction looks at the first component of the pattern body:
//   - a run of literals → that run; a literal with + ends the run
//   - a small positive class or \d → one single-byte literal per member
//   - a group (alone or with +) → the prefixes of every branch
//   - anything optional, dot, \w, negated classes, backreferences → nothing
//
// An empty Seq means no prefix requirement could be established. Patterns
// anchored at the start also yield an empty Seq since they are only tried at
// offset 0.
//
// Examples:
//
//	"hello"          → ["hello"] complete
//	"hello\d"        → ["hello"]
//	"(foo|bar)+x"    → ["foo", "bar"]
//	"a+b"            → ["a"]
//	"x?y"            → []
func (e *Extractor) ExtractPrefixes(p *syntax.Pattern) *Seq {
	if p.AnchorStart {
		return NewSeq()
	}
	lits, ok := e.prefixes(p.Components)
	if !ok || len(lits) > e.config.MaxLiterals {
		return NewSeq()
	}
	seq := NewSeq(lits...)
	seq.TruncateTo(e.config.MaxLiteralLen)
	return seq
}

// prefixes returns the prefix literals of a component sequence. ok is false
// when the sequence has no prefix requirement.
func (e *Extractor) prefixes(comps []syntax.Component) ([]Literal, bool) {
	if len(comps) == 0 {
		return nil, false
	}

	first := &comps[0]
	if first.Quantifier == syntax.ZeroOrOne {
		return nil, false
	}

	switch first.Kind {
	case syntax.Literal:
		return []Literal{literalRun(comps)}, true

	case syntax.Digit:
		if e.config.MaxClassSize < 10 {
			return nil, false
		}
		return byteLiterals("0123456789"), true

	case syntax.CharSet:
		if first.Negated || len(first.Chars) == 0 || len(first.Chars) > e.config.MaxClassSize {
			return nil, false
		}
		return byteLiterals(first.Chars), true

	case syntax.Alternation:
		var all []Literal
		for _, branch := range first.Branches {
			lits, ok := e.prefixes(branch)
			if !ok {
				return nil, false
			}
			all = append(all, lits...)
			if len(all) > e.config.MaxLiterals {
				return nil, false
			}
		}
		for i := range all {
			all[i].Complete = false
		}
		return all, true
	}
	return nil, false
}

// literalRun collects the leading literal bytes of comps. The run stops after
// a literal with + and before anything that is not a plain literal.
func literalRun(comps []syntax.Component) Literal {
	var run []byte
	for i := range comps {
		c := &comps[i]
		if c.Kind != syntax.Literal || c.Quantifier == syntax.ZeroOrOne {
			return NewLiteral(run, false)
		}
		run = append(run, c.Char)
		if c.Quantifier == syntax.OneOrMore {
			return NewLiteral(run, false)
		}
	}
	return NewLiteral(run, true)
}

// byteLiterals returns one incomplete single-byte literal per distinct byte of s.
func byteLiterals(s string) []Literal {
	var seen [256]bool
	var lits []Literal
	for i := 0; i < len(s); i++ {
		if seen[s[i]] {
			continue
		}
		seen[s[i]] = true
		lits = append(lits, NewLiteral([]byte{s[i]}, false))
	}
	return lits
}
