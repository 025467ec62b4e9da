package boxchar

// Predicates over single runes used to recognise box-drawing structure.
// The sets cover ASCII art plus the Unicode box-drawing block
// (light/heavy/double/dashed lines, rounded corners, T-junctions).
// All predicates are total and constant time.

// IsCorner reports whether r is a corner piece.
func IsCorner(r rune) bool {
	switch r {
	case '+', '┌', '┐', '└', '┘', '╔', '╗', '╚', '╝', '╭', '╮', '╯', '╰':
		return true
	}
	return false
}

// IsHorizontalFill reports whether r is a horizontal border fill.
func IsHorizontalFill(r rune) bool {
	switch r {
	case '-', '─', '━', '═', '╌', '╍', '┄', '┅', '┈', '┉', '~', '=':
		return true
	}
	return false
}

// IsVerticalBorder reports whether r is a vertical border.
func IsVerticalBorder(r rune) bool {
	switch r {
	case '|', '│', '┃', '║', '╎', '╏', '┆', '┇', '┊', '┋':
		return true
	}
	return false
}

// IsJunction reports whether r is a T-junction or cross.
func IsJunction(r rune) bool {
	switch r {
	case '┬', '┴', '├', '┤', '┼', '╦', '╩', '╠', '╣', '╬', '╤', '╧', '╟', '╢', '╫', '╪':
		return true
	}
	return false
}

// IsBoxChar reports whether r could be part of a box drawing.
func IsBoxChar(r rune) bool {
	return IsCorner(r) || IsHorizontalFill(r) || IsVerticalBorder(r) || IsJunction(r)
}

// DetectVerticalBorder returns the most frequent vertical border rune in
// lines. Frequency ties break towards the rune seen first in scan order,
// which keeps the result stable across platforms. Falls back to the ASCII
// pipe when no vertical border occurs anywhere.
func DetectVerticalBorder(lines []string) rune {
	counts := make(map[rune]int)
	order := make([]rune, 0, 4)

	for _, line := range lines {
		for _, r := range line {
			if !IsVerticalBorder(r) {
				continue
			}
			if _, seen := counts[r]; !seen {
				order = append(order, r)
			}
			counts[r]++
		}
	}

	best := '|'
	bestCount := 0
	for _, r := range order {
		if counts[r] > bestCount {
			best = r
			bestCount = counts[r]
		}
	}
	return best
}
