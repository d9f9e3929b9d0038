package backre

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/coregx/backre/meta"
)

func TestMatchString(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    bool
	}{
		// Plain characters and classes
		{"d", "dog", true},
		{"f", "dog", false},
		{`\d`, "123", true},
		{`\d`, "apple", false},
		{`\w`, "alpha-num3ric", true},
		{`\w`, "$!?", false},
		{"[abc]", "apple", true},
		{"[abc]", "dog", false},
		{"[^abc]", "cat", true},
		{"[^abc]", "cab", false},
		{`\d apple`, "1 apple", true},
		{`\d apple`, "1 orange", false},
		{`\d\d\d apples`, "sally has 124 apples", true},
		{`\w\w\ws`, "sally has 3 dogs", true},
		{`\w\w\ws`, "sally has 1 dog", false},

		// Anchors
		{"^log", "log", true},
		{"^log", "slog", false},
		{"dog$", "dog", true},
		{"dog$", "dogs", false},
		{"^abc$", "abc", true},
		{"^abc$", "abcabc", false},

		// Quantifiers
		{"ca+t", "cat", true},
		{"ca+t", "caaats", true},
		{"ca+t", "ct", false},
		{"a+b", "aaab", true},
		{"a+a", "aaa", true},
		{"^a+a$", "a", false},
		{"ca?t", "cat", true},
		{"ca?t", "act", true},
		{"ca?t", "dog", false},
		{"ca?t", "cag", false},
		{"^ab?$", "ab", true},
		{"g.+gol", "goøö0Ogol", true},
		{"g.+gol", "gol", false},

		// Alternation
		{"a (cat|dog)", "a cat", true},
		{"a (cat|dog)", "a cow", false},

		// Backreferences
		{"(cat) and \\1", "cat and cat", true},
		{"(cat) and \\1", "cat and dog", false},
		{"(\\w+) and \\1", "cat and cat", true},
		{"(\\w+) and \\1", "cat and dog", false},
		{"^(\\w+) starts and ends with \\1$", "this starts and ends with this", true},
		{"^(this) starts and ends with \\1$", "that starts and ends with this", false},
		{"(cat|dog) and \\1", "cat and cat", true},
		{"(cat|dog) and \\1", "cat and dog", false},
		{"(\\d+) (\\w+) squares and \\1 \\2 circles", "3 red squares and 3 red circles", true},
		{"(\\d+) (\\w+) squares and \\1 \\2 circles", "3 red squares and 4 red circles", false},
		{"((\\w\\w\\w\\w) (\\d\\d\\d)) is doing \\2 \\3 times, and again \\1 times", "grep 101 is doing grep 101 times, and again grep 101 times", true},
		{"((\\w\\w\\w\\w) (\\d\\d\\d)) is doing \\2 \\3 times, and again \\1 times", "grep yes is doing grep yes times, and again grep yes times", false},
		{"((c.t|d.g) and (f..h|b..d)), \\2 with \\3, \\1", "cat and fish, cat with fish, cat and fish", true},
		{"((c.t|d.g) and (f..h|b..d)), \\2 with \\3, \\1", "bat and fish, cat with fish, cat and fish", false},

		// Empty pattern shapes
		{"^$", "", true},
		{"^$", "anything", false},
		{"^", "x", false},
		{"", "x", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.input, func(t *testing.T) {
			if got := MatchString(tt.pattern, tt.input); got != tt.want {
				t.Errorf("MatchString(%q, %q) = %v, want %v", tt.pattern, tt.input, got, tt.want)
			}
			if got := Compile(tt.pattern).Match([]byte(tt.input)); got != tt.want {
				t.Errorf("Match(%q, %q) = %v, want %v", tt.pattern, tt.input, got, tt.want)
			}
		})
	}
}

// Patterns without any special syntax match exactly where they occur as a
// substring.
func TestMatchString_LiteralIsSubstring(t *testing.T) {
	inputs := []string{"", "a", "abc", "xabcx", "ababab", "cab"}
	for _, pattern := range []string{"a", "ab", "abc", "ba", "cab", "x"} {
		re := Compile(pattern)
		for _, input := range inputs {
			want := len(input) > 0 && containsAt(input, pattern) >= 0
			if got := re.MatchString(input); got != want {
				t.Errorf("MatchString(%q, %q) = %v, want %v", pattern, input, got, want)
			}
			if loc := re.FindStringIndex(input); want && loc[0] != containsAt(input, pattern) {
				t.Errorf("FindStringIndex(%q, %q) = %v, want start %d", pattern, input, loc, containsAt(input, pattern))
			}
		}
	}
}

func containsAt(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

// ^p$ matches exactly when p has a path from offset 0 that consumes the
// whole input, which is when p$ finds its leftmost match at offset 0.
func TestMatchString_AnchoredIsFullMatch(t *testing.T) {
	patterns := []string{"a+b", `\d+`, "(ab|a)+b?", `(\w)\1`, "c.t"}
	inputs := []string{"", "ab", "aab", "aabx", "123", "12a", "abab", "xx", "xy", "cat", "cats"}

	for _, p := range patterns {
		anchored := Compile("^" + p + "$")
		endOnly := Compile(p + "$")
		for _, input := range inputs {
			loc := endOnly.FindStringIndex(input)
			want := loc != nil && loc[0] == 0
			if got := anchored.MatchString(input); got != want {
				t.Errorf("^%s$ on %q = %v, want %v", p, input, got, want)
			}
		}
	}
}

func TestCompile_Idempotent(t *testing.T) {
	patterns := []string{"(cat|dog) and \\1", "^a+b?$", "[^xyz]+", "((a)(b))\\3", "a|b", "[", "\\"}
	inputs := []string{"", "a", "ab", "cat and cat", "dog and cat", "abb", "wxyz", "abb", "a|b", "[", "\\"}

	for _, p := range patterns {
		first, second := Compile(p), Compile(p)
		for _, input := range inputs {
			if first.MatchString(input) != second.MatchString(input) {
				t.Errorf("two compilations of %q disagree on %q", p, input)
			}
			if diff := cmp.Diff(first.FindStringSubmatch(input), second.FindStringSubmatch(input)); diff != "" {
				t.Errorf("two compilations of %q disagree on %q:\n%s", p, input, diff)
			}
		}
	}
}

func TestCompile_NeverFails(t *testing.T) {
	for _, p := range []string{"", "(", ")", "[", "]", "[]", "[^]", "\\", "+", "?", "|", "((", "a\\", "(a|b", "\\0"} {
		re := Compile(p)
		if re == nil {
			t.Fatalf("Compile(%q) = nil", p)
		}
		re.MatchString("some input ([|+?])\\")
	}
}

func TestCompile_LiteralFallback(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    bool
	}{
		{"[abc", "x[abcx", true},
		{"[abc", "abc", false},
		{"(ab", "(ab", true},
		{"(ab", "ab", false},
		{"a|b", "a|b", true},
		{"a|b", "a", false},
		{`a\`, `a\`, true},
		{`\.`, ".", true},
		{`\.`, "x", false},
		{"a$b", "a$b", true},
	}

	for _, tt := range tests {
		if got := MatchString(tt.pattern, tt.input); got != tt.want {
			t.Errorf("MatchString(%q, %q) = %v, want %v", tt.pattern, tt.input, got, tt.want)
		}
	}
}

func TestCompileWithConfig(t *testing.T) {
	config := DefaultConfig()
	config.EnablePrefilter = false
	re, err := CompileWithConfig("cat", config)
	if err != nil {
		t.Fatalf("CompileWithConfig: %v", err)
	}
	if re.Strategy() != meta.UseScan {
		t.Errorf("Strategy() = %v, want UseScan", re.Strategy())
	}
	if !re.MatchString("concat") {
		t.Error("cat should match concat")
	}

	config = DefaultConfig()
	config.MinLiteralLen = 0
	_, err = CompileWithConfig("cat", config)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
	var cfgErr *meta.ConfigError
	if !errors.As(err, &cfgErr) || cfgErr.Field != "MinLiteralLen" {
		t.Errorf("err = %v, want *meta.ConfigError for MinLiteralLen", err)
	}
}

func TestRegex_Find(t *testing.T) {
	re := Compile(`\d+`)
	if got := string(re.Find([]byte("age: 42 years"))); got != "42" {
		t.Errorf("Find = %q, want %q", got, "42")
	}
	if got := re.Find([]byte("none")); got != nil {
		t.Errorf("Find = %q, want nil", got)
	}
	if got := re.FindString("abc 7 8"); got != "7" {
		t.Errorf("FindString = %q, want %q", got, "7")
	}
	if diff := cmp.Diff([]int{5, 7}, re.FindIndex([]byte("age: 42"))); diff != "" {
		t.Errorf("FindIndex mismatch (-want +got):\n%s", diff)
	}
	if got := re.FindStringIndex("no digits"); got != nil {
		t.Errorf("FindStringIndex = %v, want nil", got)
	}
}

func TestRegex_FindSubmatch(t *testing.T) {
	re := Compile(`(\w+)@(\w+)\.(com|org)(x)?`)

	got := re.FindStringSubmatch("mail: bob@example.org!")
	want := []string{"bob@example.org", "bob", "example", "org", ""}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FindStringSubmatch mismatch (-want +got):\n%s", diff)
	}

	sub := re.FindSubmatch([]byte("bob@example.com"))
	if len(sub) != 5 || string(sub[1]) != "bob" || sub[4] != nil {
		t.Errorf("FindSubmatch = %q, want [... bob ... nil]", sub)
	}

	if re.FindStringSubmatch("nothing") != nil {
		t.Error("FindStringSubmatch on no match should be nil")
	}
	if re.NumSubexp() != 4 {
		t.Errorf("NumSubexp() = %d, want 4", re.NumSubexp())
	}
}

func TestRegex_FindStringCaptures(t *testing.T) {
	re := Compile("((a)(b))\\1")
	caps, ok := re.FindStringCaptures("xabab")
	if !ok {
		t.Fatal("no match")
	}
	if diff := cmp.Diff(map[int]string{1: "ab", 2: "a", 3: "b"}, caps); diff != "" {
		t.Errorf("captures mismatch (-want +got):\n%s", diff)
	}
	if _, ok := re.FindStringCaptures("abba"); ok {
		t.Error("FindStringCaptures matched abba")
	}
}

func TestRegex_FindAll(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		n       int
		want    []string
	}{
		{`\d+`, "1 22 333", -1, []string{"1", "22", "333"}},
		{`\d+`, "1 22 333", 2, []string{"1", "22"}},
		{`\d+`, "1 22 333", 0, nil},
		{"a?", "ba", -1, []string{"", "", ""}},
		{"^a", "aaa", -1, []string{"a"}},
		{"a$", "aaa", -1, []string{"a"}},
		{"(cat|dog)", "cat dog bird dog", -1, []string{"cat", "dog", "dog"}},
		{"x", "abc", -1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.input, func(t *testing.T) {
			re := Compile(tt.pattern)
			if diff := cmp.Diff(tt.want, re.FindAllString(tt.input, tt.n)); diff != "" {
				t.Errorf("FindAllString mismatch (-want +got):\n%s", diff)
			}
			var bytesGot []string
			for _, b := range re.FindAll([]byte(tt.input), tt.n) {
				bytesGot = append(bytesGot, string(b))
			}
			if diff := cmp.Diff(tt.want, bytesGot); diff != "" {
				t.Errorf("FindAll mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRegex_FindAllIndex(t *testing.T) {
	re := Compile("ab")
	want := [][]int{{0, 2}, {3, 5}}
	if diff := cmp.Diff(want, re.FindAllStringIndex("ab ab", -1)); diff != "" {
		t.Errorf("FindAllStringIndex mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, re.FindAllIndex([]byte("ab ab"), -1)); diff != "" {
		t.Errorf("FindAllIndex mismatch (-want +got):\n%s", diff)
	}

	subs := Compile(`(\w)=(\d)`).FindAllStringSubmatch("a=1 b=2", -1)
	wantSubs := [][]string{{"a=1", "a", "1"}, {"b=2", "b", "2"}}
	if diff := cmp.Diff(wantSubs, subs); diff != "" {
		t.Errorf("FindAllStringSubmatch mismatch (-want +got):\n%s", diff)
	}
}

func TestQuoteMeta(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"1+1=2?", `1\+1=2\?`},
		{"a.b", `a\.b`},
		{"(x|y)", `\(x\|y\)`},
		{"[^$]", `\[\^\$\]`},
		{`back\slash`, `back\\slash`},
		{"", ""},
	}

	for _, tt := range tests {
		got := QuoteMeta(tt.in)
		if got != tt.want {
			t.Errorf("QuoteMeta(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if tt.in != "" && Compile(got).FindString("<<"+tt.in+">>") != tt.in {
			t.Errorf("Compile(QuoteMeta(%q)) does not find the literal text", tt.in)
		}
	}
}

func TestRegex_String(t *testing.T) {
	if got := Compile(`^(a|b)+$`).String(); got != `^(a|b)+$` {
		t.Errorf("String() = %q", got)
	}
}

func TestRegex_Stats(t *testing.T) {
	re := Compile("needle")
	re.MatchString("a needle")
	if got := re.Stats().Searches; got != 1 {
		t.Errorf("Searches = %d, want 1", got)
	}
	re.ResetStats()
	if got := re.Stats().Searches; got != 0 {
		t.Errorf("Searches after reset = %d, want 0", got)
	}
}

func BenchmarkMatchString(b *testing.B) {
	benchmarks := []struct {
		name    string
		pattern string
		input   string
	}{
		{"literal", "needle", "a haystack with a needle in it"},
		{"alternation", "(cat|dog|cow)s", "the farm has many animals and cows"},
		{"backreference", `(\w+) and \1`, "this and that and this and this"},
		{"anchored", `^\d+ apples$`, "124 apples"},
	}

	for _, bm := range benchmarks {
		re := Compile(bm.pattern)
		b.Run(bm.name, func(b *testing.B) {
			b.SetBytes(int64(len(bm.input)))
			for b.Loop() {
				re.MatchString(bm.input)
			}
		})
	}
}
