package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"boxfix/internal/analyze"
	"boxfix/internal/driver"
	"boxfix/internal/segment"
)

var blocksCmd = &cobra.Command{
	Use:   "blocks [flags] [file]",
	Short: "Show detected diagram blocks without correcting them",
	Long:  "Run only the segmenter and report each detected block's line range and confidence.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBlocks,
}

func init() {
	blocksCmd.Flags().BoolP("all", "a", false, "report all diagram-like blocks, not just confident ones")
	blocksCmd.Flags().IntP("tab-width", "t", 4, "tab width for expansion")
	blocksCmd.Flags().String("format", "text", "output format (text|json)")
}

type blockReport struct {
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Lines      int     `json:"lines"`
	Confidence float64 `json:"confidence"`
}

func runBlocks(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	tabWidth, err := cmd.Flags().GetInt("tab-width")
	if err != nil {
		return err
	}
	if tabWidth < 1 {
		return fmt.Errorf("blocks: tab-width must be a positive integer, got %d", tabWidth)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}

	lines, err := readBlockInput(args)
	if err != nil {
		return fmt.Errorf("blocks: %w", err)
	}

	expanded := make([]string, len(lines))
	for i, l := range lines {
		expanded[i] = analyze.ExpandTabs(l, tabWidth)
	}
	found := segment.Find(expanded, all)

	reports := make([]blockReport, len(found))
	for i, b := range found {
		reports[i] = blockReport{
			Start:      b.Start + 1,
			End:        b.End,
			Lines:      b.Len(),
			Confidence: b.Confidence,
		}
	}

	out := cmd.OutOrStdout()
	switch format {
	case "text":
		for i, r := range reports {
			fmt.Fprintf(out, "block %d: lines %d-%d (%d lines, confidence: %.0f%%)\n",
				i+1, r.Start, r.End, r.Lines, r.Confidence*100)
		}
		if len(reports) == 0 {
			fmt.Fprintln(out, "no diagram blocks found")
		}
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	default:
		return fmt.Errorf("blocks: unsupported output format %q", format)
	}
	return nil
}

func readBlockInput(args []string) ([]string, error) {
	if len(args) == 0 {
		return driver.ReadLines(os.Stdin)
	}
	content, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", args[0], err)
	}
	return driver.SplitLines(string(content)), nil
}
