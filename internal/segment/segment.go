package segment

import (
	"boxfix/internal/analyze"
)

// Block is a detected diagram: a half-open line range with a confidence
// score in [0, 1]. Ranges produced by Find are disjoint and sorted.
type Block struct {
	Start      int
	End        int
	Confidence float64
}

// Len returns the number of lines covered by the block.
func (b Block) Len() int { return b.End - b.Start }

// Span within a candidate block: at most one consecutive blank line is
// tolerated, and a non-boxy line is absorbed only when one of the next
// three lines is boxy again.
const (
	maxBlankGap   = 1
	noneLookahead = 3
)

// confidenceGate drops low-confidence blocks unless allBlocks is set.
const confidenceGate = 0.3

// Find scans lines and returns the diagram blocks. When allBlocks is
// false only blocks with confidence >= 0.3 are kept.
func Find(lines []string, allBlocks bool) []Block {
	blocks := make([]Block, 0)
	i := 0

	for i < len(lines) {
		kind := analyze.Classify(lines[i])
		if !kind.IsBoxy() {
			i++
			continue
		}

		start := i
		end := i + 1
		strongCount := 0
		weakCount := 0
		if kind == analyze.KindStrong {
			strongCount = 1
		} else {
			weakCount = 1
		}
		blankGap := 0

	extend:
		for end < len(lines) {
			switch analyze.Classify(lines[end]) {
			case analyze.KindStrong:
				strongCount++
				blankGap = 0
				end++
			case analyze.KindWeak:
				weakCount++
				blankGap = 0
				end++
			case analyze.KindBlank:
				blankGap++
				if blankGap > maxBlankGap {
					break extend
				}
				end++
			case analyze.KindNone:
				if blankGap == 0 && boxyAhead(lines, end) {
					end++
				} else {
					break extend
				}
			}
		}

		// Trailing blanks never belong to the diagram.
		for end > start && analyze.Classify(lines[end-1]) == analyze.KindBlank {
			end--
		}

		confidence := 0.0
		if total := strongCount + weakCount; total > 0 {
			strongRatio := float64(strongCount) / float64(total)
			sizeBonus := min(float64(end-start)/10.0, 0.2)
			confidence = min(strongRatio*0.8+sizeBonus, 1.0)
		}

		if allBlocks || confidence >= confidenceGate {
			blocks = append(blocks, Block{Start: start, End: end, Confidence: confidence})
		}

		i = end
	}

	return blocks
}

// boxyAhead reports whether any of the noneLookahead lines after idx is
// boxy. The line at idx itself is excluded from the window.
func boxyAhead(lines []string, idx int) bool {
	limit := min(idx+1+noneLookahead, len(lines))
	for _, line := range lines[idx+1 : limit] {
		if analyze.Classify(line).IsBoxy() {
			return true
		}
	}
	return false
}
