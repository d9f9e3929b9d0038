// Package backre provides a small backtracking regular expression engine
// with capture groups and backreferences.
//
// Supported syntax:
//   - literal bytes, . (any byte), \d (ASCII digit), \w (ASCII word byte)
//   - [abc] and [^abc] (listed bytes, no ranges)
//   - (a|b|c) capture groups with alternation, numbered by opening paren
//   - \1 to \9 backreferences
//   - + (greedy one or more) and ? (zero or one) after any of the above
//   - ^ as the first byte and $ as the last byte of the pattern
//
// Every pattern string compiles. Anything that is not recognized syntax
// (an unterminated [ or (, an unknown escape, | outside a group) matches
// itself literally.
//
// Basic usage:
//
//	re := backre.Compile(`(cat|dog) and \1`)
//	re.MatchString("cat and cat") // true
//	re.MatchString("cat and dog") // false
//
//	m := re.FindStringSubmatch("my dog and dog")
//	// m = ["dog and dog", "dog"]
//
// Matching uses recursive backtracking without memoization. Patterns with
// nested repetition can take exponential time on adversarial input.
package backre

import (
	"errors"
	"fmt"

	"github.com/coregx/backre/meta"
)

// ErrInvalidConfig is wrapped by the errors returned from CompileWithConfig.
// The wrapped *meta.ConfigError names the offending field.
var ErrInvalidConfig = errors.New("backre: invalid config")

// Regex represents a compiled pattern.
//
// A Regex is safe to use concurrently from multiple goroutines.
//
// Example:
//
//	re := backre.Compile(`^\d+ apples?$`)
//	if re.MatchString("3 apples") {
//	    println("matched!")
//	}
type Regex struct {
	engine  *meta.Engine
	pattern string
}

// Compile compiles a pattern with the default configuration.
// It never fails: unrecognized syntax matches literally.
//
// Example:
//
//	re := backre.Compile(`(\w+)@(\w+)\.com`)
func Compile(pattern string) *Regex {
	return &Regex{
		engine:  meta.Compile(pattern),
		pattern: pattern,
	}
}

// CompileWithConfig compiles a pattern with a custom configuration.
// The returned error wraps ErrInvalidConfig and a *meta.ConfigError.
//
// Example:
//
//	config := backre.DefaultConfig()
//	config.EnablePrefilter = false
//	re, err := backre.CompileWithConfig("abc", config)
func CompileWithConfig(pattern string, config meta.Config) (*Regex, error) {
	engine, err := meta.CompileWithConfig(pattern, config)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return &Regex{
		engine:  engine,
		pattern: pattern,
	}, nil
}

// DefaultConfig returns the default configuration for CompileWithConfig.
func DefaultConfig() meta.Config {
	return meta.DefaultConfig()
}

// MatchString reports whether s contains a match of pattern.
//
// Example:
//
//	backre.MatchString(`a+a`, "aaa") // true
func MatchString(pattern, s string) bool {
	return Compile(pattern).MatchString(s)
}

// QuoteMeta returns a string that escapes every metacharacter in s; the
// result is a pattern matching s literally.
//
// Example:
//
//	backre.QuoteMeta("1+1=2?") // `1\+1=2\?`
func QuoteMeta(s string) string {
	const special = `\.+?()|[]^$`

	n := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	buf := make([]byte, 0, len(s)+n)
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			buf = append(buf, '\\')
		}
		buf = append(buf, s[i])
	}
	return string(buf)
}

func isSpecial(c byte, special string) bool {
	for i := 0; i < len(special); i++ {
		if c == special[i] {
			return true
		}
	}
	return false
}

// String returns the source text used to compile the pattern.
func (r *Regex) String() string {
	return r.pattern
}

// NumSubexp returns the number of capture groups in the pattern.
func (r *Regex) NumSubexp() int {
	return r.engine.NumGroups()
}

// Strategy returns the candidate search strategy chosen for the pattern.
func (r *Regex) Strategy() meta.Strategy {
	return r.engine.Strategy()
}

// Stats returns the search statistics of the pattern.
func (r *Regex) Stats() meta.Stats {
	return r.engine.Stats()
}

// ResetStats resets the search statistics to zero.
func (r *Regex) ResetStats() {
	r.engine.ResetStats()
}

// Match reports whether b contains any match of the pattern.
func (r *Regex) Match(b []byte) bool {
	return r.engine.IsMatch(b)
}

// MatchString reports whether s contains any match of the pattern.
//
// Example:
//
//	re := backre.Compile(`^$`)
//	re.MatchString("")  // true
//	re.MatchString("x") // false
func (r *Regex) MatchString(s string) bool {
	return r.engine.IsMatchString(s)
}

// Find returns the text of the leftmost match in b, or nil.
func (r *Regex) Find(b []byte) []byte {
	m := r.engine.Find(b)
	if m == nil {
		return nil
	}
	return b[m.Start():m.End():m.End()]
}

// FindString returns the text of the leftmost match in s. It returns ""
// both for no match and for an empty match; use FindStringIndex to tell
// them apart.
func (r *Regex) FindString(s string) string {
	m := r.engine.FindString(s)
	if m == nil {
		return ""
	}
	return m.String()
}

// FindIndex returns the [start, end) location of the leftmost match in b,
// or nil.
func (r *Regex) FindIndex(b []byte) []int {
	m := r.engine.Find(b)
	if m == nil {
		return nil
	}
	return []int{m.Start(), m.End()}
}

// FindStringIndex returns the [start, end) location of the leftmost match
// in s, or nil.
func (r *Regex) FindStringIndex(s string) []int {
	m := r.engine.FindString(s)
	if m == nil {
		return nil
	}
	return []int{m.Start(), m.End()}
}

// FindSubmatch returns the leftmost match in b followed by the text of each
// capture group. Groups that took no part in the match are nil.
//
// Example:
//
//	re := backre.Compile(`(\w+)@(\w+)\.com`)
//	m := re.FindSubmatch([]byte("bob@example.com"))
//	// m = ["bob@example.com", "bob", "example"]
func (r *Regex) FindSubmatch(b []byte) [][]byte {
	m := r.engine.Find(b)
	if m == nil {
		return nil
	}
	out := make([][]byte, r.NumSubexp()+1)
	out[0] = b[m.Start():m.End():m.End()]
	for id := 1; id < len(out); id++ {
		if text, ok := m.Group(id); ok {
			out[id] = []byte(text)
		}
	}
	return out
}

// FindStringSubmatch returns the leftmost match in s followed by the text
// of each capture group. Groups that took no part in the match are "".
func (r *Regex) FindStringSubmatch(s string) []string {
	m := r.engine.FindString(s)
	if m == nil {
		return nil
	}
	out := make([]string, r.NumSubexp()+1)
	for id := range out {
		out[id], _ = m.Group(id)
	}
	return out
}

// FindStringCaptures returns the capture mapping of the leftmost match in
// s: group id to captured text, for the groups on the winning path only.
// The boolean is false when there is no match.
func (r *Regex) FindStringCaptures(s string) (map[int]string, bool) {
	m := r.engine.FindString(s)
	if m == nil {
		return nil, false
	}
	return m.Captures(), true
}

// FindAll returns the successive non-overlapping matches in b. If n >= 0,
// it returns at most n matches.
//
// Example:
//
//	re := backre.Compile(`\d+`)
//	re.FindAll([]byte("1 22 333"), -1) // ["1", "22", "333"]
func (r *Regex) FindAll(b []byte, n int) [][]byte {
	var out [][]byte
	r.each(string(b), n, func(m *meta.Match) {
		out = append(out, b[m.Start():m.End():m.End()])
	})
	return out
}

// FindAllString returns the successive non-overlapping matches in s. If
// n >= 0, it returns at most n matches.
func (r *Regex) FindAllString(s string, n int) []string {
	var out []string
	r.each(s, n, func(m *meta.Match) {
		out = append(out, m.String())
	})
	return out
}

// FindAllIndex returns the locations of the successive non-overlapping
// matches in b.
func (r *Regex) FindAllIndex(b []byte, n int) [][]int {
	return r.FindAllStringIndex(string(b), n)
}

// FindAllStringIndex returns the locations of the successive
// non-overlapping matches in s.
func (r *Regex) FindAllStringIndex(s string, n int) [][]int {
	var out [][]int
	r.each(s, n, func(m *meta.Match) {
		out = append(out, []int{m.Start(), m.End()})
	})
	return out
}

// FindAllStringSubmatch is the 'All' version of FindStringSubmatch.
func (r *Regex) FindAllStringSubmatch(s string, n int) [][]string {
	var out [][]string
	r.each(s, n, func(m *meta.Match) {
		groups := make([]string, r.NumSubexp()+1)
		for id := range groups {
			groups[id], _ = m.Group(id)
		}
		out = append(out, groups)
	})
	return out
}

// each calls fn for up to n successive matches in s (all if n < 0). The
// search resumes at the end of each match, or one byte later after an
// empty match. Anchors keep referring to the whole of s.
func (r *Regex) each(s string, n int, fn func(*meta.Match)) {
	for at, count := 0, 0; at <= len(s) && (n < 0 || count < n); count++ {
		m := r.engine.FindStringAt(s, at)
		if m == nil {
			return
		}
		fn(m)
		if m.End() > m.Start() {
			at = m.End()
		} else {
			at = m.End() + 1
		}
	}
}
