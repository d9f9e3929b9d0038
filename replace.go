package backre

import (
	"strings"

	"github.com/coregx/backre/meta"
)

// ReplaceAllString returns a copy of src with every match replaced by repl.
// Inside repl, $0 is the whole match, $1 to $9 are capture groups ("" if
// unset), and $$ is a literal $. Any other $ is kept as is.
//
// Example:
//
//	re := backre.Compile(`(\w+)@(\w+)\.com`)
//	re.ReplaceAllString("bob@example.com", "$1 at $2")
//	// "bob at example"
func (r *Regex) ReplaceAllString(src, repl string) string {
	if !strings.Contains(repl, "$") {
		return r.ReplaceAllLiteralString(src, repl)
	}
	return r.replace(src, func(b *strings.Builder, m *meta.Match) {
		expand(b, repl, m)
	})
}

// ReplaceAll is ReplaceAllString for byte slices.
func (r *Regex) ReplaceAll(src, repl []byte) []byte {
	return []byte(r.ReplaceAllString(string(src), string(repl)))
}

// ReplaceAllLiteralString returns a copy of src with every match replaced
// by repl, without $ expansion.
func (r *Regex) ReplaceAllLiteralString(src, repl string) string {
	return r.replace(src, func(b *strings.Builder, _ *meta.Match) {
		b.WriteString(repl)
	})
}

// ReplaceAllLiteral is ReplaceAllLiteralString for byte slices.
func (r *Regex) ReplaceAllLiteral(src, repl []byte) []byte {
	return []byte(r.ReplaceAllLiteralString(string(src), string(repl)))
}

// ReplaceAllStringFunc returns a copy of src with every match replaced by
// the result of repl applied to the matched text.
func (r *Regex) ReplaceAllStringFunc(src string, repl func(string) string) string {
	return r.replace(src, func(b *strings.Builder, m *meta.Match) {
		b.WriteString(repl(m.String()))
	})
}

func (r *Regex) replace(src string, write func(*strings.Builder, *meta.Match)) string {
	var b strings.Builder
	last := 0
	r.each(src, -1, func(m *meta.Match) {
		b.WriteString(src[last:m.Start()])
		write(&b, m)
		last = m.End()
	})
	b.WriteString(src[last:])
	return b.String()
}

// expand writes template to b, substituting $0 to $9 and $$.
func expand(b *strings.Builder, template string, m *meta.Match) {
	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '$' || i+1 >= len(template) {
			b.WriteByte(c)
			continue
		}
		next := template[i+1]
		switch {
		case next >= '0' && next <= '9':
			text, _ := m.Group(int(next - '0'))
			b.WriteString(text)
			i++
		case next == '$':
			b.WriteByte('$')
			i++
		default:
			b.WriteByte('$')
		}
	}
}

// Split slices s into substrings separated by matches of the pattern.
// If n >= 0, it returns at most n substrings, the last one holding the
// unsplit remainder.
//
// Example:
//
//	re := backre.Compile(`,`)
//	re.Split("a,b,c", -1) // ["a", "b", "c"]
//	re.Split("a,b,c", 2)  // ["a", "b,c"]
func (r *Regex) Split(s string, n int) []string {
	if n == 0 {
		return nil
	}

	var out []string
	last := 0
	r.each(s, -1, func(m *meta.Match) {
		if n > 0 && len(out) == n-1 {
			return
		}
		if m.IsEmpty() && (m.Start() == 0 || m.Start() == len(s)) {
			return
		}
		out = append(out, s[last:m.Start()])
		last = m.End()
	})
	return append(out, s[last:])
}

// CountString returns the number of non-overlapping matches in s. If
// n >= 0, it counts at most n matches.
func (r *Regex) CountString(s string, n int) int {
	count := 0
	r.each(s, n, func(*meta.Match) {
		count++
	})
	return count
}

// Count is CountString for byte slices.
func (r *Regex) Count(b []byte, n int) int {
	return r.CountString(string(b), n)
}
