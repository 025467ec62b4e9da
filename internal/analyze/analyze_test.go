package analyze

import (
	"strings"
	"testing"
)

func TestClassifyBlank(t *testing.T) {
	for _, line := range []string{"", "   ", "\t", " \t "} {
		if got := Classify(line); got != KindBlank {
			t.Errorf("Classify(%q) = %v, want blank", line, got)
		}
	}
}

func TestClassifyNone(t *testing.T) {
	for _, line := range []string{"hello world", "func main() {}", "some words here"} {
		if got := Classify(line); got != KindNone {
			t.Errorf("Classify(%q) = %v, want none", line, got)
		}
	}
}

func TestClassifyStrong(t *testing.T) {
	for _, line := range []string{"+---+", "| x |", "┌───┐", "│ y │", "╔══╗"} {
		if got := Classify(line); got != KindStrong {
			t.Errorf("Classify(%q) = %v, want strong", line, got)
		}
	}
}

func TestClassifyWeak(t *testing.T) {
	// One border char in a long prose line: boxy but below every strong rule.
	line := "see the | separator in this sentence"
	if got := Classify(line); got != KindWeak {
		t.Fatalf("Classify(%q) = %v, want weak", line, got)
	}
}

func TestVisualWidth(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"hello", 5},
		{"│──│", 4},
		{"+--+", 4},
		{"日本", 4}, // CJK counts double
		{"a日b", 4},
	}
	for _, tc := range cases {
		if got := VisualWidth(tc.in); got != tc.want {
			t.Errorf("VisualWidth(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestVisualWidthASCIIEqualsLen(t *testing.T) {
	s := "plain ascii text, 123"
	if got := VisualWidth(s); got != len(s) {
		t.Fatalf("ASCII width %d != len %d", got, len(s))
	}
}

func TestDetectSuffixBorder(t *testing.T) {
	b := DetectSuffixBorder("| hello |")
	if b == nil {
		t.Fatal("expected a suffix border")
	}
	if b.Char != '|' {
		t.Errorf("border char = %q, want |", b.Char)
	}
	if !b.IsClosing {
		t.Error("border should be marked closing")
	}
	if b.Column != 8 {
		t.Errorf("border column = %d, want 8", b.Column)
	}

	if got := DetectSuffixBorder("hello world"); got != nil {
		t.Fatalf("expected no border, got %+v", got)
	}
	if got := DetectSuffixBorder("   "); got != nil {
		t.Fatalf("expected no border on blank line, got %+v", got)
	}
}

func TestDetectSuffixBorderIgnoresTrailingSpaces(t *testing.T) {
	b := DetectSuffixBorder("| x |   ")
	if b == nil || b.Column != 4 {
		t.Fatalf("expected border at column 4, got %+v", b)
	}
}

func TestAnalyzeIndent(t *testing.T) {
	l := Analyze("    | box |")
	if l.Indent != 4 {
		t.Fatalf("indent = %d, want 4", l.Indent)
	}
	if l.Kind != KindStrong {
		t.Fatalf("kind = %v, want strong", l.Kind)
	}
	if l.Suffix == nil {
		t.Fatal("expected a suffix border")
	}
}

func TestAnalyzeNonBoxyHasNoSuffix(t *testing.T) {
	l := Analyze("ends with a word")
	if l.Suffix != nil {
		t.Fatalf("non-boxy line must not get a suffix border, got %+v", l.Suffix)
	}
}

func TestExpandTabs(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"\thello", "    hello"},
		{"a\tb", "a   b"},
		{"ab\tc", "ab  c"},
		{"abc\td", "abc d"},
		{"abcd\te", "abcd    e"},
		{"no tabs", "no tabs"},
	}
	for _, tc := range cases {
		if got := ExpandTabs(tc.in, 4); got != tc.want {
			t.Errorf("ExpandTabs(%q, 4) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestExpandTabsLeavesNoTabs(t *testing.T) {
	for _, in := range []string{"\t\t", "a\tb\tc", "\tx\t"} {
		if got := ExpandTabs(in, 8); strings.ContainsRune(got, '\t') {
			t.Errorf("ExpandTabs(%q, 8) = %q still contains a tab", in, got)
		}
	}
}
