package driver

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"boxfix/internal/correct"
)

func testCache(t *testing.T) *Cache {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	c, err := OpenCache("boxfix-test")
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}
	return c
}

func TestCacheRoundTrip(t *testing.T) {
	c := testCache(t)
	key := cacheKey([]byte("content"), correct.DefaultConfig())

	var missed Entry
	if ok, err := c.Get(key, &missed); err != nil || ok {
		t.Fatalf("expected a miss, got ok=%v err=%v", ok, err)
	}

	if err := c.Put(key, &Entry{Clean: true}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var got Entry
	ok, err := c.Get(key, &got)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || !got.Clean {
		t.Fatalf("expected a clean hit, got ok=%v entry=%+v", ok, got)
	}
}

func TestCacheKeyDependsOnConfig(t *testing.T) {
	content := []byte("same content")
	base := correct.DefaultConfig()
	other := base
	other.TabWidth = 8

	if cacheKey(content, base) == cacheKey(content, other) {
		t.Fatal("different configs must produce different keys")
	}
	if cacheKey(content, base) != cacheKey(content, base) {
		t.Fatal("identical inputs must produce identical keys")
	}
}

func TestCacheSchemaMismatchMisses(t *testing.T) {
	c := testCache(t)
	key := cacheKey([]byte("x"), correct.DefaultConfig())

	if err := c.Put(key, &Entry{Clean: true}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// Rewrite the entry with a stale schema.
	var stale Entry
	if ok, err := c.Get(key, &stale); err != nil || !ok {
		t.Fatalf("expected a hit before staleness, ok=%v err=%v", ok, err)
	}
	stale.Schema = cacheSchemaVersion + 1
	writeStale(t, c, key, &stale)

	var got Entry
	if ok, _ := c.Get(key, &got); ok {
		t.Fatal("stale schema must read as a miss")
	}
}

func TestNilCacheIsNoOp(t *testing.T) {
	var c *Cache
	key := cacheKey([]byte("x"), correct.DefaultConfig())
	if err := c.Put(key, &Entry{}); err != nil {
		t.Fatalf("nil Put: %v", err)
	}
	var got Entry
	if ok, err := c.Get(key, &got); ok || err != nil {
		t.Fatalf("nil Get: ok=%v err=%v", ok, err)
	}
}

func TestFixFileUsesCache(t *testing.T) {
	c := testCache(t)
	path := writeInput(t, "already aligned prose\n")

	opts := defaultOptions()
	opts.Cache = c

	results, err := FixPaths(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatalf("FixPaths: %v", err)
	}
	if results[0].Skipped {
		t.Fatal("first run must not be skipped")
	}

	again, err := FixPaths(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatalf("FixPaths second run: %v", err)
	}
	if !again[0].Skipped {
		t.Fatal("second run over clean content should hit the cache")
	}
}

// writeStale re-encodes an entry bypassing Put's schema stamping.
func writeStale(t *testing.T, c *Cache, key Key, entry *Entry) {
	t.Helper()
	var buf bytes.Buffer
	if err := msgpack.NewEncoder(&buf).Encode(entry); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := os.WriteFile(c.pathFor(key), buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}
