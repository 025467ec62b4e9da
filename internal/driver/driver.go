// Package driver orchestrates correction runs over files and streams:
// reading, caching, diffing, rewriting, and progress reporting. The
// correction algorithm itself lives in internal/correct.
package driver

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"boxfix/internal/correct"
)

// ErrInPlaceStdin is returned when in-place mode is requested without an
// input file.
var ErrInPlaceStdin = errors.New("in-place mode requires an input file")

// Options configures a driver run.
type Options struct {
	Correct correct.Config
	// InPlace rewrites each input file instead of printing to stdout.
	InPlace bool
	// Check reports whether files would change without writing anything.
	Check bool
	// Diff renders a line diff of the would-be changes.
	Diff bool
	// Cache, when non-nil, memoises clean results keyed by content and
	// configuration so unchanged files are skipped on later check runs.
	Cache *Cache
	// Reporter receives progress narration for verbose runs.
	Reporter correct.Reporter
	// Progress receives per-file events (used by the TUI).
	Progress ProgressSink
	// Parallelism bounds concurrent file processing; 0 means GOMAXPROCS.
	Parallelism int
}

// Result is the outcome for a single input. Path is empty for stdin.
type Result struct {
	Path    string
	Lines   []string
	Stats   correct.Stats
	Changed bool
	Skipped bool
	Diff    string
	Err     error
}

// FixPaths corrects every named file. Files are processed in parallel,
// but each buffer is owned by exactly one goroutine; results come back
// in argument order. Per-file failures are recorded on the Result, not
// returned.
func FixPaths(ctx context.Context, paths []string, opts Options) ([]Result, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("driver: no input paths")
	}

	results := make([]Result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	limit := opts.Parallelism
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(limit)

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				results[i] = Result{Path: path, Err: ctx.Err()}
				return nil
			default:
			}
			emit(opts.Progress, Event{Path: path, Status: StatusWorking})
			results[i] = fixFile(path, opts)
			st := StatusDone
			if results[i].Err != nil {
				st = StatusError
			}
			emit(opts.Progress, Event{
				Path:      path,
				Status:    st,
				Revisions: results[i].Stats.TotalRevisions,
				Err:       results[i].Err,
			})
			return nil
		})
	}

	err := g.Wait()
	return results, err
}

// FixReader corrects lines read from r (the stdin path). In-place mode
// is rejected up front.
func FixReader(r io.Reader, opts Options) Result {
	if opts.InPlace {
		return Result{Err: ErrInPlaceStdin}
	}

	lines, err := ReadLines(r)
	if err != nil {
		return Result{Err: fmt.Errorf("read stdin: %w", err)}
	}
	return runCorrection("", lines, opts)
}

func fixFile(path string, opts Options) Result {
	content, err := os.ReadFile(path)
	if err != nil {
		return Result{Path: path, Err: fmt.Errorf("read %s: %w", path, err)}
	}

	if opts.Cache != nil {
		key := cacheKey(content, opts.Correct)
		var entry Entry
		if ok, _ := opts.Cache.Get(key, &entry); ok && entry.Clean {
			return Result{Path: path, Lines: SplitLines(string(content)), Skipped: true}
		}
	}

	res := runCorrection(path, SplitLines(string(content)), opts)
	if res.Err != nil {
		return res
	}

	if opts.Cache != nil && !res.Changed {
		key := cacheKey(content, opts.Correct)
		// Best effort: a failed memo write never fails the run.
		_ = opts.Cache.Put(key, &Entry{Clean: true})
	}

	if res.Changed && opts.InPlace && !opts.Check && !opts.Diff {
		if err := writeFile(path, res.Lines); err != nil {
			res.Err = err
		}
	}
	return res
}

func runCorrection(path string, lines []string, opts Options) Result {
	rep := opts.Reporter
	if rep == nil {
		rep = correct.Discard
	}

	corrected, stats := correct.Run(lines, opts.Correct, rep)

	res := Result{
		Path:    path,
		Lines:   corrected,
		Stats:   stats,
		Changed: changed(lines, corrected),
	}
	if opts.Diff && res.Changed {
		res.Diff = renderDiff(strings.Join(lines, "\n"), strings.Join(corrected, "\n"))
	}
	return res
}

func changed(before, after []string) bool {
	if len(before) != len(after) {
		return true
	}
	for i := range before {
		if before[i] != after[i] {
			return true
		}
	}
	return false
}

func writeFile(path string, lines []string) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	output := strings.Join(lines, "\n")
	if err := os.WriteFile(path, []byte(output), mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadLines reads newline-terminated lines from r.
func ReadLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lines := make([]string, 0, 64)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

// SplitLines splits file content into newline-free lines, dropping a
// single trailing newline so files do not grow a phantom empty line.
func SplitLines(content string) []string {
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}
