package meta

import (
	"github.com/coregx/backre/backtrack"
)

// Match represents a successful match with its position and captures.
//
// Example:
//
//	m := engine.FindString("say cat and cat")
//	println(m.String())         // "cat and cat"
//	println(m.Start(), m.End()) // 4, 15
//	g, _ := m.Group(1)          // "cat"
type Match struct {
	start int
	end   int
	input string
	caps  backtrack.Captures
}

// NewMatch creates a Match of input[start:end] with the given captures.
// caps may be nil.
func NewMatch(start, end int, input string, caps backtrack.Captures) *Match {
	return &Match{
		start: start,
		end:   end,
		input: input,
		caps:  caps,
	}
}

// Start returns the inclusive start position of the match.
func (m *Match) Start() int {
	return m.start
}

// End returns the exclusive end position of the match.
func (m *Match) End() int {
	return m.end
}

// Len returns the length of the match in bytes.
func (m *Match) Len() int {
	return m.end - m.start
}

// IsEmpty reports whether the match is zero-width.
func (m *Match) IsEmpty() bool {
	return m.start == m.end
}

// String returns the matched text.
func (m *Match) String() string {
	return m.input[m.start:m.end]
}

// Bytes returns a copy of the matched text.
func (m *Match) Bytes() []byte {
	return []byte(m.String())
}

// Group returns the text captured by group id on the winning path. The
// boolean is false when the group did not take part in the match.
// Group 0 is the whole match.
func (m *Match) Group(id int) (string, bool) {
	if id == 0 {
		return m.String(), true
	}
	return m.caps.Get(id)
}

// Captures returns a copy of the capture mapping of the match.
func (m *Match) Captures() backtrack.Captures {
	return m.caps.Clone()
}
