package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"boxfix/internal/correct"
)

const misaligned = "+------+\n| short|\n| longer |\n+------+\n"

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return path
}

func defaultOptions() Options {
	return Options{Correct: correct.DefaultConfig()}
}

func TestFixPathsInPlace(t *testing.T) {
	path := writeInput(t, misaligned)

	opts := defaultOptions()
	opts.InPlace = true
	results, err := FixPaths(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatalf("FixPaths: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	res := results[0]
	if res.Err != nil {
		t.Fatalf("result error: %v", res.Err)
	}
	if !res.Changed {
		t.Fatal("expected the file to change")
	}

	rewritten, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(rewritten), "| short  |") {
		t.Fatalf("file not rewritten, content:\n%s", rewritten)
	}
}

func TestFixPathsCheckDoesNotWrite(t *testing.T) {
	path := writeInput(t, misaligned)

	opts := defaultOptions()
	opts.InPlace = true
	opts.Check = true
	results, err := FixPaths(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatalf("FixPaths: %v", err)
	}
	if !results[0].Changed {
		t.Fatal("check must still report the change")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(content) != misaligned {
		t.Fatalf("check mode must not modify the file, content:\n%s", content)
	}
}

func TestFixPathsDiff(t *testing.T) {
	path := writeInput(t, misaligned)

	opts := defaultOptions()
	opts.Diff = true
	results, err := FixPaths(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatalf("FixPaths: %v", err)
	}
	diff := results[0].Diff
	if diff == "" {
		t.Fatal("expected a non-empty diff")
	}
	if !strings.Contains(diff, "-| short|") || !strings.Contains(diff, "+| short  |") {
		t.Fatalf("diff missing expected lines:\n%s", diff)
	}
}

func TestFixPathsMissingFile(t *testing.T) {
	results, err := FixPaths(context.Background(), []string{"/nonexistent/nope.txt"}, defaultOptions())
	if err != nil {
		t.Fatalf("FixPaths: %v", err)
	}
	if results[0].Err == nil {
		t.Fatal("expected a per-file read error")
	}
	if !strings.Contains(results[0].Err.Error(), "nope.txt") {
		t.Fatalf("error should name the path: %v", results[0].Err)
	}
}

func TestFixPathsPreservesOrder(t *testing.T) {
	a := writeInput(t, misaligned)
	b := writeInput(t, "plain prose\n")
	c := writeInput(t, misaligned)

	results, err := FixPaths(context.Background(), []string{a, b, c}, defaultOptions())
	if err != nil {
		t.Fatalf("FixPaths: %v", err)
	}
	wantPaths := []string{a, b, c}
	for i, res := range results {
		if res.Path != wantPaths[i] {
			t.Fatalf("result %d path = %q, want %q", i, res.Path, wantPaths[i])
		}
	}
	if results[1].Changed {
		t.Fatal("prose file must not change")
	}
}

func TestFixReader(t *testing.T) {
	res := FixReader(strings.NewReader(misaligned), defaultOptions())
	if res.Err != nil {
		t.Fatalf("FixReader: %v", res.Err)
	}
	if !res.Changed {
		t.Fatal("expected stdin content to change")
	}
	if res.Lines[1] != "| short  |" {
		t.Fatalf("line 1 = %q, want %q", res.Lines[1], "| short  |")
	}
}

func TestFixReaderRejectsInPlace(t *testing.T) {
	opts := defaultOptions()
	opts.InPlace = true
	res := FixReader(strings.NewReader(misaligned), opts)
	if res.Err != ErrInPlaceStdin {
		t.Fatalf("expected ErrInPlaceStdin, got %v", res.Err)
	}
}

func TestProgressEvents(t *testing.T) {
	path := writeInput(t, misaligned)

	ch := make(chan Event, 16)
	opts := defaultOptions()
	opts.Progress = ChannelSink{Ch: ch}

	if _, err := FixPaths(context.Background(), []string{path}, opts); err != nil {
		t.Fatalf("FixPaths: %v", err)
	}
	close(ch)

	var statuses []Status
	for evt := range ch {
		statuses = append(statuses, evt.Status)
	}
	if len(statuses) != 2 || statuses[0] != StatusWorking || statuses[1] != StatusDone {
		t.Fatalf("unexpected event sequence: %v", statuses)
	}
}

func TestSplitLines(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"\n", 0},
		{"a", 1},
		{"a\n", 1},
		{"a\nb", 2},
		{"a\nb\n", 2},
		{"a\n\nb\n", 3},
	}
	for _, tc := range cases {
		if got := SplitLines(tc.in); len(got) != tc.want {
			t.Errorf("SplitLines(%q) = %d lines, want %d", tc.in, len(got), tc.want)
		}
	}
}
