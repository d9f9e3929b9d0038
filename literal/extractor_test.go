package literal

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/coregx/backre/syntax"
)

func extractPrefixes(pattern string) *Seq {
	return New(DefaultConfig()).ExtractPrefixes(syntax.Parse(pattern))
}

func TestExtractPrefixes(t *testing.T) {
	tests := []struct {
		pattern string
		want    []string
	}{
		{"hello", []string{"hello"}},
		{`hello\d`, []string{"hello"}},
		{"hello$", []string{"hello"}},
		{"ab+c", []string{"ab"}},
		{"ab?c", []string{"a"}},
		{"(foo|bar)x", []string{"foo", "bar"}},
		{"(foo|bar)+x", []string{"foo", "bar"}},
		{"(a(b|c)|d)", []string{"a", "d"}},
		{"[xyz]1", []string{"x", "y", "z"}},
		{"[aab]", []string{"a", "b"}},
		{`\d+`, []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}},

		// No prefix requirement
		{"", nil},
		{"^hello", nil},
		{"x?y", nil},
		{".abc", nil},
		{`\wabc`, nil},
		{"[^a]b", nil},
		{`\1a`, nil},
		{"(a|)b", nil},
		{"(a|b?)c", nil},
		{"(ab)?c", nil},
		{"[abcdefghijkl]", nil},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got := seqStrings(extractPrefixes(tt.pattern))
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("ExtractPrefixes(%q) mismatch (-want +got):\n%s", tt.pattern, diff)
			}
		})
	}
}

func TestExtractPrefixes_Complete(t *testing.T) {
	tests := []struct {
		pattern string
		want    bool
	}{
		{"hello", true},
		{"hello$", false},
		{"hello+", false},
		{"hello.", false},
		{"(hello)", false},
	}

	for _, tt := range tests {
		seq := extractPrefixes(tt.pattern)
		if seq.IsEmpty() {
			t.Fatalf("ExtractPrefixes(%q) is empty", tt.pattern)
		}
		if got := seq.Get(0).Complete; got != tt.want {
			t.Errorf("ExtractPrefixes(%q).Complete = %v, want %v", tt.pattern, got, tt.want)
		}
	}
}

func TestExtractPrefixes_Limits(t *testing.T) {
	config := DefaultConfig()
	config.MaxLiteralLen = 3
	seq := New(config).ExtractPrefixes(syntax.Parse("abcdef"))
	if diff := cmp.Diff([]string{"abc"}, seqStrings(seq)); diff != "" {
		t.Errorf("MaxLiteralLen mismatch (-want +got):\n%s", diff)
	}
	if seq.Get(0).Complete {
		t.Error("truncated prefix still complete")
	}

	config = DefaultConfig()
	config.MaxLiterals = 2
	if seq := New(config).ExtractPrefixes(syntax.Parse("(a|b|c)")); !seq.IsEmpty() {
		t.Errorf("MaxLiterals=2 on three branches = %v, want empty", seqStrings(seq))
	}

	config = DefaultConfig()
	config.MaxClassSize = 5
	if seq := New(config).ExtractPrefixes(syntax.Parse(`\d`)); !seq.IsEmpty() {
		t.Errorf("MaxClassSize=5 on \\d = %v, want empty", seqStrings(seq))
	}
}

func BenchmarkExtractPrefixes(b *testing.B) {
	p := syntax.Parse("(alpha|beta|gamma|delta)+ [xyz]")
	e := New(DefaultConfig())
	for b.Loop() {
		e.ExtractPrefixes(p)
	}
}
