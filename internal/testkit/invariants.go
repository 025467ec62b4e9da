package testkit

import (
	"fmt"

	"boxfix/internal/segment"
)

// CheckBlockInvariants runs a minimal set of invariants on segmenter output:
// 1) every block range is non-empty and within the buffer bounds
// 2) blocks are sorted by start and do not overlap
// 3) every confidence is within [0, 1]
func CheckBlockInvariants(blocks []segment.Block, lineCount int) error {
	prevEnd := 0
	for i, b := range blocks {
		if b.End <= b.Start {
			return fmt.Errorf("block %d has empty range [%d, %d)", i, b.Start, b.End)
		}
		if b.Start < 0 || b.End > lineCount {
			return fmt.Errorf("block %d range [%d, %d) outside buffer of %d lines", i, b.Start, b.End, lineCount)
		}
		if b.Start < prevEnd {
			return fmt.Errorf("block %d starts at %d before previous end %d", i, b.Start, prevEnd)
		}
		if b.Confidence < 0 || b.Confidence > 1 {
			return fmt.Errorf("block %d confidence %v outside [0, 1]", i, b.Confidence)
		}
		prevEnd = b.End
	}
	return nil
}
