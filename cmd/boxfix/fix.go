package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"boxfix/internal/config"
	"boxfix/internal/correct"
	"boxfix/internal/driver"
	"boxfix/internal/observ"
	"boxfix/internal/ui"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] [file...]",
	Short: "Align right-hand borders in diagram blocks",
	Long: `Detect box diagrams in plain text and nudge misaligned right borders
into alignment. Reads stdin when no file is given.`,
	Args: cobra.ArbitraryArgs,
	RunE: runFix,
}

var fixUIMode uiMode

func init() {
	fixCmd.Flags().BoolP("in-place", "i", false, "edit the file(s) in place")
	fixCmd.Flags().IntP("max-iters", "m", 10, "maximum iterations for the correction loop")
	fixCmd.Flags().Float64P("min-score", "s", 0.5, "minimum score threshold for applying revisions (0.0-1.0)")
	fixCmd.Flags().IntP("tab-width", "t", 4, "tab width for expansion")
	fixCmd.Flags().BoolP("all", "a", false, "process all diagram-like blocks, not just confident ones")
	fixCmd.Flags().BoolP("verbose", "v", false, "verbose output showing correction progress")
	fixCmd.Flags().Bool("check", false, "list files that would change and exit non-zero, writing nothing")
	fixCmd.Flags().Bool("diff", false, "print a diff of the changes instead of rewriting")
	fixCmd.Flags().Bool("cache", false, "memoise clean files to skip them on later runs")
	fixCmd.Flags().Var(&fixUIMode, "ui", "progress UI for multi-file runs")
}

func runFix(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	opts, verbose, err := buildFixOptions(cmd)
	if err != nil {
		return err
	}

	check, _ := cmd.Flags().GetBool("check")
	diff, _ := cmd.Flags().GetBool("diff")
	inPlace, _ := cmd.Flags().GetBool("in-place")
	if inPlace && check {
		return fmt.Errorf("fix: --in-place cannot be used with --check")
	}
	if inPlace && diff {
		return fmt.Errorf("fix: --in-place cannot be used with --diff")
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return err
	}
	colored, err := colorEnabled(cmd)
	if err != nil {
		return err
	}
	console := ui.NewConsole(os.Stderr, colored, quiet)
	if verbose {
		opts.Reporter = console
	}

	timer := observ.NewTimer()

	if len(args) == 0 {
		return runFixStdin(cmd, opts, console, timer, showTimings)
	}
	return runFixFiles(cmd, args, opts, console, timer, showTimings, verbose)
}

// buildFixOptions merges boxfix.toml defaults with explicit flags; a
// flag set on the command line always wins over the manifest.
func buildFixOptions(cmd *cobra.Command) (driver.Options, bool, error) {
	cfg := correct.DefaultConfig()

	if path, ok, err := config.Find("."); err != nil {
		return driver.Options{}, false, fmt.Errorf("fix: %w", err)
	} else if ok {
		manifest, err := config.Load(path)
		if err != nil {
			return driver.Options{}, false, fmt.Errorf("fix: %w", err)
		}
		cfg, err = manifest.Apply(cfg)
		if err != nil {
			return driver.Options{}, false, fmt.Errorf("fix: %s: %w", path, err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("max-iters") {
		cfg.MaxIters, _ = flags.GetInt("max-iters")
	}
	if flags.Changed("min-score") {
		cfg.MinScore, _ = flags.GetFloat64("min-score")
	}
	if flags.Changed("tab-width") {
		cfg.TabWidth, _ = flags.GetInt("tab-width")
	}
	if flags.Changed("all") {
		cfg.AllBlocks, _ = flags.GetBool("all")
	}
	verbose, _ := flags.GetBool("verbose")
	cfg.Verbose = verbose

	if err := config.Validate(cfg); err != nil {
		return driver.Options{}, false, fmt.Errorf("fix: %w", err)
	}

	opts := driver.Options{Correct: cfg}
	opts.InPlace, _ = flags.GetBool("in-place")
	opts.Check, _ = flags.GetBool("check")
	opts.Diff, _ = flags.GetBool("diff")

	if useCache, _ := flags.GetBool("cache"); useCache {
		cache, err := driver.OpenCache("boxfix")
		if err != nil {
			return driver.Options{}, false, fmt.Errorf("fix: open cache: %w", err)
		}
		opts.Cache = cache
	}

	return opts, verbose, nil
}

func runFixStdin(cmd *cobra.Command, opts driver.Options, console *ui.Console, timer *observ.Timer, showTimings bool) error {
	phase := timer.Begin("correct")
	res := driver.FixReader(os.Stdin, opts)
	timer.End(phase, "")
	if res.Err != nil {
		return fmt.Errorf("fix: %w", res.Err)
	}

	if err := renderResult(cmd, res, opts, console); err != nil {
		return err
	}
	if showTimings {
		fmt.Fprint(os.Stderr, timer.Summary())
	}
	if opts.Check && res.Changed {
		return fmt.Errorf("fix: input is not aligned")
	}
	return nil
}

func runFixFiles(cmd *cobra.Command, paths []string, opts driver.Options, console *ui.Console, timer *observ.Timer, showTimings, verbose bool) error {
	var results []driver.Result
	var err error
	phase := timer.Begin("correct")
	if !verbose && fixUIMode.wantProgressUI(len(paths)) {
		results, err = runFixWithUI(cmd.Context(), "correcting diagrams", paths, opts)
	} else {
		results, err = driver.FixPaths(cmd.Context(), paths, opts)
	}
	timer.End(phase, fmt.Sprintf("%d file(s)", len(paths)))
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}

	var failed, wouldChange int
	var totalRevisions, blocksModified int
	for _, res := range results {
		if res.Err != nil {
			failed++
			console.Errorf("fix: %v", res.Err)
			continue
		}
		totalRevisions += res.Stats.TotalRevisions
		blocksModified += res.Stats.BlocksModified
		if res.Changed {
			wouldChange++
		}
		if err := renderResult(cmd, res, opts, console); err != nil {
			return err
		}
	}

	if verbose {
		if opts.InPlace {
			console.Successf("Modified %d block(s), %d revision(s) applied", blocksModified, totalRevisions)
		} else {
			console.Successf("Processed %d file(s), %d revision(s) applied", len(results), totalRevisions)
		}
	}
	if showTimings {
		fmt.Fprint(os.Stderr, timer.Summary())
	}

	if failed > 0 {
		return fmt.Errorf("fix: failed to process %d file(s)", failed)
	}
	if opts.Check && wouldChange > 0 {
		return fmt.Errorf("fix: %d file(s) would change", wouldChange)
	}
	return nil
}

// renderResult writes one result to stdout according to the output mode.
func renderResult(cmd *cobra.Command, res driver.Result, opts driver.Options, console *ui.Console) error {
	out := cmd.OutOrStdout()

	switch {
	case opts.Check:
		if res.Changed && res.Path != "" {
			if _, err := fmt.Fprintln(out, res.Path); err != nil {
				return err
			}
		}
	case opts.Diff:
		if res.Diff != "" {
			if _, err := fmt.Fprint(out, res.Diff); err != nil {
				return err
			}
		}
	case opts.InPlace:
		// The driver already rewrote the file.
	default:
		for _, line := range res.Lines {
			if _, err := fmt.Fprintln(out, line); err != nil {
				return err
			}
		}
	}
	return nil
}
