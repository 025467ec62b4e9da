package correct

import (
	"fmt"

	"boxfix/internal/analyze"
	"boxfix/internal/boxchar"
	"boxfix/internal/revise"
	"boxfix/internal/segment"
)

// Config holds the tunables of a correction run.
type Config struct {
	// MaxIters bounds the per-block convergence loop.
	MaxIters int
	// MinScore gates which proposed revisions are applied.
	MinScore float64
	// TabWidth drives tab expansion before analysis.
	TabWidth int
	// AllBlocks corrects every segmented block regardless of confidence.
	AllBlocks bool
	// Verbose narrates progress through the Reporter.
	Verbose bool
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{
		MaxIters: 10,
		MinScore: 0.5,
		TabWidth: 4,
	}
}

// Stats summarises one correction run. Read-only once Run returns.
type Stats struct {
	BlocksFound    int
	BlocksModified int
	TotalRevisions int
	Iterations     int
}

// Reporter receives human-readable progress text. Implementations are
// purely observational and must never influence the correction outcome.
type Reporter interface {
	Print(msg string)
}

type discard struct{}

func (discard) Print(string) {}

// Discard is a Reporter that drops every message.
var Discard Reporter = discard{}

// Run expands tabs, segments the buffer into diagram blocks, and aligns
// each block's right-hand borders. It returns the corrected lines and
// run statistics. The input slice is not modified.
func Run(lines []string, cfg Config, rep Reporter) ([]string, Stats) {
	var stats Stats
	if rep == nil {
		rep = Discard
	}

	buf := make([]string, len(lines))
	for i, l := range lines {
		buf[i] = analyze.ExpandTabs(l, cfg.TabWidth)
	}

	blocks := segment.Find(buf, cfg.AllBlocks)
	stats.BlocksFound = len(blocks)

	if cfg.Verbose {
		rep.Print(fmt.Sprintf("Found %d diagram block(s)", len(blocks)))
	}

	// Blocks are disjoint, so each one is corrected independently and
	// edits never leak into a neighbour's analysis.
	for i, block := range blocks {
		if cfg.Verbose {
			rep.Print(fmt.Sprintf("  Block %d: lines %d-%d (confidence: %.0f%%)",
				i+1, block.Start+1, block.End, block.Confidence*100))
		}

		revisions, iters := correctBlock(buf, block, cfg, rep)
		stats.Iterations += iters
		if revisions > 0 {
			stats.BlocksModified++
			stats.TotalRevisions += revisions
		}
	}

	return buf, stats
}

// correctBlock iterates one block to a fixed point or the iteration cap.
// Every pass rebuilds the analysis snapshot from the current buffer;
// proposals are derived from that snapshot only, then applied.
func correctBlock(lines []string, block segment.Block, cfg Config, rep Reporter) (revisions, iters int) {
	for iteration := 0; iteration < cfg.MaxIters; iteration++ {
		blockLines := lines[block.Start:block.End]
		snapshot := make([]analyze.Line, len(blockLines))
		for i, l := range blockLines {
			snapshot[i] = analyze.Analyze(l)
		}

		// Alignment goal: the rightmost border seen before any edit of
		// this pass.
		target := -1
		for _, a := range snapshot {
			if a.Suffix != nil && a.Suffix.Column > target {
				target = a.Suffix.Column
			}
		}
		if target < 0 {
			// No borders anywhere: nothing to align, and a border is
			// never invented from a blank slate.
			break
		}

		borderChar := boxchar.DetectVerticalBorder(blockLines)

		proposals := make([]revise.Revision, 0, len(snapshot))
		for i, a := range snapshot {
			globalIdx := block.Start + i
			switch {
			case a.Suffix != nil && a.Suffix.Column < target:
				proposals = append(proposals, revise.Revision{
					Kind:         revise.PadBeforeSuffixBorder,
					Line:         globalIdx,
					Spaces:       target - a.Suffix.Column,
					TargetColumn: target,
				})
			case a.Suffix == nil && a.Kind.IsBoxy():
				proposals = append(proposals, revise.Revision{
					Kind:         revise.AddSuffixBorder,
					Line:         globalIdx,
					BorderChar:   borderChar,
					TargetColumn: target,
				})
			}
		}

		accepted := proposals[:0]
		for _, p := range proposals {
			if p.Score(snapshot, block.Start) >= cfg.MinScore {
				accepted = append(accepted, p)
			}
		}

		if len(accepted) == 0 {
			if cfg.Verbose && iteration > 0 {
				rep.Print(fmt.Sprintf("    Converged after %d iteration(s)", iteration))
			}
			break
		}

		for _, p := range accepted {
			p.Apply(lines)
		}
		revisions += len(accepted)
		iters++

		if cfg.Verbose {
			rep.Print(fmt.Sprintf("    Iteration %d: applied %d revision(s)", iteration+1, len(accepted)))
		}
	}
	return revisions, iters
}
