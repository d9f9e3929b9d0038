// Package syntax compiles pattern strings into trees of pattern components.
//
// A compiled pattern is an ordered sequence of Components. Each Component is
// one atomic unit of the pattern: a single-byte test (literal, \d, \w, dot,
// bracket class), an anchor, a parenthesized alternation group or a numbered
// backreference, optionally followed by a quantifier.
//
// Alternation groups hold their branches as nested Component sequences, so a
// compiled pattern is a tree with no back-edges. The parser builds the tree
// once and matchers only read it.
//
// The parser never fails: any construct that is not recognized as special
// syntax is compiled as literal bytes.
//
// Example:
//
//	p := syntax.Parse(`^(cat|dog)s?$`)
//	fmt.Println(len(p.Components)) // 4: ^, group, s?, $
//	fmt.Println(p.NumGroups)       // 1
package syntax

import (
	"strconv"
	"strings"
)

// Kind identifies the variant of a Component.
type Kind uint8

const (
	// Literal matches the single byte Component.Char.
	Literal Kind = iota

	// Digit matches an ASCII digit (\d).
	Digit

	// Word matches [A-Za-z0-9_] (\w).
	Word

	// Any matches any single byte (.).
	Any

	// CharSet matches a byte listed in Component.Chars, or not listed when
	// Component.Negated is set ([abc], [^abc]).
	CharSet

	// StartAnchor asserts the start of input (^).
	StartAnchor

	// EndAnchor asserts the end of input ($).
	EndAnchor

	// Alternation is a parenthesized group of branches (a|b|c).
	Alternation

	// Backreference matches the text captured by group Component.Group (\1-\9).
	Backreference
)

// String returns a short name for the kind.
func (k Kind) String() string {
	switch k {
	case Literal:
		return "Literal"
	case Digit:
		return "Digit"
	case Word:
		return "Word"
	case Any:
		return "Any"
	case CharSet:
		return "CharSet"
	case StartAnchor:
		return "StartAnchor"
	case EndAnchor:
		return "EndAnchor"
	case Alternation:
		return "Alternation"
	case Backreference:
		return "Backreference"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Quantifier is the repetition operator attached to a Component.
// A component carries at most one quantifier.
type Quantifier uint8

const (
	// QuantNone means the component must match exactly once.
	QuantNone Quantifier = iota

	// ZeroOrOne is the ? operator.
	ZeroOrOne

	// OneOrMore is the greedy + operator.
	OneOrMore
)

// String returns the operator text ("", "?" or "+").
func (q Quantifier) String() string {
	switch q {
	case ZeroOrOne:
		return "?"
	case OneOrMore:
		return "+"
	default:
		return ""
	}
}

// Component is one node of a compiled pattern.
//
// Only the fields relevant to Kind are set:
//   - Literal: Char
//   - CharSet: Chars, Negated
//   - Alternation: Branches, Group (capture id, 0 if none)
//   - Backreference: Group (referenced capture id)
type Component struct {
	Kind       Kind
	Quantifier Quantifier

	Char    byte
	Chars   string
	Negated bool

	Branches [][]Component
	Group    int
}

// IsSingleByte reports whether the component tests exactly one input byte.
func (c *Component) IsSingleByte() bool {
	switch c.Kind {
	case Literal, Digit, Word, Any, CharSet:
		return true
	}
	return false
}

// MatchByte reports whether b satisfies a single-byte component.
// It returns false for every other kind.
func (c *Component) MatchByte(b byte) bool {
	switch c.Kind {
	case Literal:
		return b == c.Char
	case Digit:
		return IsDigit(b)
	case Word:
		return IsWordByte(b)
	case Any:
		return true
	case CharSet:
		return (strings.IndexByte(c.Chars, b) >= 0) != c.Negated
	}
	return false
}

// String renders the component as pattern text. Parsing the result yields
// an equal component.
func (c *Component) String() string {
	var sb strings.Builder
	c.write(&sb)
	return sb.String()
}

func (c *Component) write(sb *strings.Builder) {
	switch c.Kind {
	case Literal:
		if strings.IndexByte(metaChars, c.Char) >= 0 {
			sb.WriteByte('\\')
		}
		sb.WriteByte(c.Char)
	case Digit:
		sb.WriteString(`\d`)
	case Word:
		sb.WriteString(`\w`)
	case Any:
		sb.WriteByte('.')
	case CharSet:
		sb.WriteByte('[')
		if c.Negated {
			sb.WriteByte('^')
		}
		sb.WriteString(c.Chars)
		sb.WriteByte(']')
	case StartAnchor:
		sb.WriteByte('^')
	case EndAnchor:
		sb.WriteByte('$')
	case Alternation:
		sb.WriteByte('(')
		for i, branch := range c.Branches {
			if i > 0 {
				sb.WriteByte('|')
			}
			writeSequence(sb, branch)
		}
		sb.WriteByte(')')
	case Backreference:
		sb.WriteByte('\\')
		sb.WriteString(strconv.Itoa(c.Group))
	}
	sb.WriteString(c.Quantifier.String())
}

func writeSequence(sb *strings.Builder, comps []Component) {
	for i := range comps {
		comps[i].write(sb)
	}
}

// metaChars are the bytes that need a backslash to be read back as literals.
const metaChars = `\.+?()|[]^$`

// IsDigit reports whether b is an ASCII digit.
func IsDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// IsWordByte reports whether b is a word character [A-Za-z0-9_].
func IsWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		IsDigit(b) ||
		b == '_'
}
