package syntax

import "strings"

// Pattern is a compiled pattern.
type Pattern struct {
	// Source is the pattern text the tree was compiled from.
	Source string

	// Components is the top-level sequence. It starts with a StartAnchor
	// when AnchorStart is set and ends with an EndAnchor when AnchorEnd is
	// set; anchors appear nowhere else in the tree.
	Components []Component

	// NumGroups is the number of capture groups. Group ids are 1..NumGroups.
	NumGroups int

	AnchorStart bool
	AnchorEnd   bool
}

// Body returns the top-level sequence without its anchors.
// The returned slice shares storage with p.Components.
func (p *Pattern) Body() []Component {
	comps := p.Components
	if p.AnchorStart {
		comps = comps[1:]
	}
	if p.AnchorEnd {
		comps = comps[:len(comps)-1]
	}
	return comps
}

// String renders the compiled pattern as pattern text.
// Parse(p.String()) produces a tree equal to p's.
func (p *Pattern) String() string {
	var sb strings.Builder
	writeSequence(&sb, p.Components)
	return sb.String()
}

// Parse compiles pattern into a component tree. It never fails.
//
// Recognized syntax:
//
//	^        start of input, only as the first byte of the pattern
//	$        end of input, only as the last byte of the pattern
//	.        any byte
//	\d \w    digit, word byte
//	\1..\9   backreference
//	\x       literal x for any other x
//	[abc]    any listed byte; [^abc] any byte not listed
//	(a|b)    capture group with alternation
//	x+ x?    one or more (greedy), zero or one
//
// Everything else, including unterminated brackets and parentheses, is a
// literal byte. Capture groups are numbered from 1 in the order of their
// opening parenthesis, outer groups before the groups nested in them.
func Parse(pattern string) *Pattern {
	p := &Pattern{Source: pattern}
	body := pattern

	if strings.HasPrefix(body, "^") {
		p.AnchorStart = true
		body = body[1:]
	}
	if strings.HasSuffix(body, "$") && !isEscaped(body, len(body)-1) {
		p.AnchorEnd = true
		body = body[:len(body)-1]
	}

	ps := newParser(body)
	comps := ps.parseSequence(0, len(body))

	if p.AnchorStart {
		p.Components = append(p.Components, Component{Kind: StartAnchor})
	}
	p.Components = append(p.Components, comps...)
	if p.AnchorEnd {
		p.Components = append(p.Components, Component{Kind: EndAnchor})
	}
	p.NumGroups = ps.groups
	return p
}

// parser holds the pattern body and the bracket and parenthesis pairs of
// every atom, computed once so nested groups are never rescanned.
type parser struct {
	src string

	// brackets[i] is the index of the ']' closing a class opened at i, or -1.
	brackets []int

	// parens[i] is the index of the ')' matching a '(' at i, or -1.
	parens []int

	// groups counts capture groups handed out so far. Ids follow the order
	// of the opening parenthesis, so an outer group precedes its children.
	groups int
}

func newParser(src string) *parser {
	p := &parser{
		src:      src,
		brackets: make([]int, len(src)),
		parens:   make([]int, len(src)),
	}

	next := -1
	for i := len(src) - 1; i >= 0; i-- {
		p.brackets[i], p.parens[i] = -1, -1
		switch src[i] {
		case '[':
			// A class needs at least one byte between the brackets.
			if next > i+1 {
				p.brackets[i] = next
			}
		case ']':
			next = i
		}
	}

	var open []int
	for i := 0; i < len(src); i = p.atomEnd(i) {
		switch src[i] {
		case '(':
			open = append(open, i)
		case ')':
			if n := len(open); n > 0 {
				p.parens[open[n-1]] = i
				open = open[:n-1]
			}
		}
	}
	return p
}

// parseSequence compiles src[lo:hi] left to right into a flat component
// sequence.
func (p *parser) parseSequence(lo, hi int) []Component {
	s := p.src
	var comps []Component
	for i := lo; i < hi; {
		var c Component
		switch s[i] {
		case '.':
			c = Component{Kind: Any}
			i++

		case '(':
			end := p.parens[i]
			if end < 0 || end >= hi {
				c = Component{Kind: Literal, Char: '('}
				i++
				break
			}
			p.groups++
			c = Component{Kind: Alternation, Group: p.groups}
			for _, br := range p.splitBranches(i+1, end) {
				c.Branches = append(c.Branches, p.parseSequence(br[0], br[1]))
			}
			i = end + 1

		case '\\':
			if i+1 >= hi {
				c = Component{Kind: Literal, Char: '\\'}
				i++
				break
			}
			c = parseEscape(s[i+1])
			i += 2

		case '[':
			end := p.brackets[i]
			if end < 0 || end >= hi {
				c = Component{Kind: Literal, Char: '['}
				i++
				break
			}
			chars := s[i+1 : end]
			c = Component{Kind: CharSet}
			if chars[0] == '^' {
				c.Negated = true
				chars = chars[1:]
			}
			c.Chars = chars
			i = end + 1

		default:
			c = Component{Kind: Literal, Char: s[i]}
			i++
		}

		if i < hi {
			switch s[i] {
			case '+':
				c.Quantifier = OneOrMore
				i++
			case '?':
				c.Quantifier = ZeroOrOne
				i++
			}
		}
		comps = append(comps, c)
	}
	return comps
}

func parseEscape(b byte) Component {
	switch {
	case b == 'd':
		return Component{Kind: Digit}
	case b == 'w':
		return Component{Kind: Word}
	case b >= '1' && b <= '9':
		return Component{Kind: Backreference, Group: int(b - '0')}
	default:
		return Component{Kind: Literal, Char: b}
	}
}

// atomEnd returns the index just past the atom starting at src[i], treating
// escapes and complete bracket classes as single atoms.
func (p *parser) atomEnd(i int) int {
	switch p.src[i] {
	case '\\':
		if i+1 < len(p.src) {
			return i + 2
		}
	case '[':
		if end := p.brackets[i]; end >= 0 {
			return end + 1
		}
	}
	return i + 1
}

// splitBranches splits the group contents src[lo:hi] on '|' outside nested
// groups and returns the [lo, hi) range of each branch. Every parenthesis
// inside a group is paired, so nested groups are skipped whole.
func (p *parser) splitBranches(lo, hi int) [][2]int {
	var branches [][2]int
	start := lo
	for i := lo; i < hi; {
		switch p.src[i] {
		case '(':
			if end := p.parens[i]; end >= 0 {
				i = end + 1
				continue
			}
		case '|':
			branches = append(branches, [2]int{start, i})
			start = i + 1
		}
		i = p.atomEnd(i)
	}
	return append(branches, [2]int{start, hi})
}

// isEscaped reports whether s[i] is preceded by an odd number of backslashes.
func isEscaped(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}
