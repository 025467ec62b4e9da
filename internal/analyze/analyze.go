package analyze

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"boxfix/internal/boxchar"
)

// LineKind classifies a line's "boxiness".
type LineKind uint8

const (
	// KindBlank is an empty or whitespace-only line.
	KindBlank LineKind = iota
	// KindNone has no box-drawing characters.
	KindNone
	// KindWeak has some box-drawing characters but a weak pattern.
	KindWeak
	// KindStrong has a strong box-drawing pattern (borders, corners).
	KindStrong
)

// IsBoxy reports whether the line carries meaningful box structure.
func (k LineKind) IsBoxy() bool {
	return k == KindWeak || k == KindStrong
}

func (k LineKind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindNone:
		return "none"
	case KindWeak:
		return "weak"
	case KindStrong:
		return "strong"
	default:
		return "unknown"
	}
}

// SuffixBorder describes a detected right-side border.
type SuffixBorder struct {
	// Column is the visual column of the border character.
	Column int
	// Char is the border character itself.
	Char rune
	// IsClosing distinguishes a closing border from a mid-line one.
	// Today both border classes set it true; the field is kept for
	// future mid-line border detection.
	IsClosing bool
}

// Line is the analysis of a single line of text. It is rebuilt from the
// current buffer on every correction pass and never cached across edits.
type Line struct {
	Content     string
	Kind        LineKind
	VisualWidth int
	Indent      int
	Suffix      *SuffixBorder
}

// VisualWidth returns the column count of s. ASCII and box-drawing
// characters count as 1; any other rune at or above U+1100 counts as 2.
// This is a coarse East-Asian-wide heuristic, not a full wide-character
// table.
func VisualWidth(s string) int {
	width := 0
	for _, r := range s {
		switch {
		case r < utf8.RuneSelf:
			width++
		case boxchar.IsBoxChar(r):
			width++
		case r >= 0x1100:
			width += 2
		default:
			width++
		}
	}
	return width
}

// Classify buckets a line into one of the four kinds. The decision is a
// pure function of the trimmed content.
func Classify(line string) LineKind {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return KindBlank
	}

	boxChars := 0
	totalChars := 0
	for _, r := range trimmed {
		totalChars++
		if boxchar.IsBoxChar(r) {
			boxChars++
		}
	}
	if boxChars == 0 {
		return KindNone
	}

	hasCorner := strings.ContainsFunc(trimmed, boxchar.IsCorner)
	first, _ := utf8.DecodeRuneInString(trimmed)
	last, _ := utf8.DecodeLastRuneInString(trimmed)
	startsWithBorder := boxchar.IsVerticalBorder(first) || boxchar.IsCorner(first)
	endsWithBorder := boxchar.IsVerticalBorder(last) || boxchar.IsCorner(last)

	if hasCorner || (startsWithBorder && endsWithBorder) || boxChars*3 >= totalChars {
		return KindStrong
	}
	return KindWeak
}

// DetectSuffixBorder returns the trailing border of line, or nil when the
// last non-blank character is not a vertical border or corner.
func DetectSuffixBorder(line string) *SuffixBorder {
	trimmed := strings.TrimRightFunc(line, unicode.IsSpace)
	if trimmed == "" {
		return nil
	}

	last, _ := utf8.DecodeLastRuneInString(trimmed)
	if !boxchar.IsVerticalBorder(last) && !boxchar.IsCorner(last) {
		return nil
	}
	return &SuffixBorder{
		Column:    VisualWidth(trimmed) - 1,
		Char:      last,
		IsClosing: boxchar.IsCorner(last) || boxchar.IsVerticalBorder(last),
	}
}

// Analyze derives the full per-line record used by the revision engine.
func Analyze(line string) Line {
	kind := Classify(line)

	var suffix *SuffixBorder
	if kind.IsBoxy() {
		suffix = DetectSuffixBorder(line)
	}

	return Line{
		Content:     line,
		Kind:        kind,
		VisualWidth: VisualWidth(line),
		Indent:      indentOf(line),
		Suffix:      suffix,
	}
}

// indentOf counts leading whitespace characters, in runes rather than
// visual columns.
func indentOf(line string) int {
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	return utf8.RuneCountInString(line) - utf8.RuneCountInString(trimmed)
}

// ExpandTabs replaces each tab with spaces up to the next multiple of
// tabWidth, tracking the column left to right.
func ExpandTabs(line string, tabWidth int) string {
	if !strings.ContainsRune(line, '\t') {
		return line
	}

	var b strings.Builder
	b.Grow(len(line))
	col := 0
	for _, r := range line {
		if r == '\t' {
			spaces := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", spaces))
			col += spaces
			continue
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}
