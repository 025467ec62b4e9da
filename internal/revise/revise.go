package revise

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"boxfix/internal/analyze"
	"boxfix/internal/boxchar"
)

// Kind selects the revision variant. Scoring and application dispatch on
// it exhaustively, so a new variant only needs new switch arms.
type Kind uint8

const (
	// PadBeforeSuffixBorder inserts spaces before an existing trailing
	// border to push it right.
	PadBeforeSuffixBorder Kind = iota
	// AddSuffixBorder appends a border character at the target column.
	AddSuffixBorder
)

// Revision is a proposed edit to one line of the buffer. Proposals live
// for a single correction pass: scored, filtered, applied, discarded.
type Revision struct {
	Kind Kind
	// Line indexes the full line buffer, not the block.
	Line int
	// Spaces is the pad amount (pad variant only).
	Spaces int
	// BorderChar is the character to append (add variant only).
	BorderChar rune
	// TargetColumn is the alignment goal for this pass.
	TargetColumn int
}

// Score rates the revision against the block's analysis snapshot; higher
// means more confident. blockStart is the offset of the block in the
// global buffer.
func (r Revision) Score(snapshot []analyze.Line, blockStart int) float64 {
	line := snapshot[r.Line-blockStart]

	switch r.Kind {
	case PadBeforeSuffixBorder:
		// Smaller adjustments and stronger lines score higher.
		adjustmentPenalty := min(float64(r.Spaces)/10.0, 0.5)
		strengthBonus := 0.0
		if line.Kind == analyze.KindStrong {
			strengthBonus = 0.2
		}
		return 0.8 - adjustmentPenalty + strengthBonus
	case AddSuffixBorder:
		// Inventing a border is inherently less confident than moving one.
		if line.Kind == analyze.KindStrong {
			return 0.5 + 0.2
		}
		return 0.5 + 0.1
	default:
		return 0
	}
}

// Apply mutates the buffer in place.
func (r Revision) Apply(lines []string) {
	switch r.Kind {
	case PadBeforeSuffixBorder:
		trimmed := strings.TrimRightFunc(lines[r.Line], unicode.IsSpace)
		last, size := utf8.DecodeLastRuneInString(trimmed)
		if size == 0 {
			return
		}
		// Re-checked even though proposals are only generated for lines
		// that had a border: the snapshot and the buffer could drift.
		if !boxchar.IsVerticalBorder(last) && !boxchar.IsCorner(last) {
			return
		}
		prefix := trimmed[:len(trimmed)-size]
		lines[r.Line] = prefix + strings.Repeat(" ", r.Spaces) + string(last)
	case AddSuffixBorder:
		trimmed := strings.TrimRightFunc(lines[r.Line], unicode.IsSpace)
		padding := max(r.TargetColumn-analyze.VisualWidth(trimmed), 0)
		lines[r.Line] = trimmed + strings.Repeat(" ", padding) + string(r.BorderChar)
	}
}
