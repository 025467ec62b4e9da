package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"boxfix/internal/correct"
)

// Increment when the Entry format changes.
const cacheSchemaVersion uint16 = 1

// Key identifies one input content under one configuration.
type Key [sha256.Size]byte

// Entry memoises the outcome of correcting one input.
type Entry struct {
	Schema uint16
	// Clean marks content the corrector left untouched.
	Clean bool
}

// Cache stores correction memos on disk so repeated check runs can skip
// inputs that were already clean. Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// OpenCache initializes and returns a disk cache at the standard
// XDG location for the given app name.
func OpenCache(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) pathFor(key Key) string {
	return filepath.Join(c.dir, "runs", hex.EncodeToString(key[:])+".mp")
}

// Put serializes and writes an entry, replacing it atomically.
func (c *Cache) Put(key Key, entry *Entry) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	entry.Schema = cacheSchemaVersion

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(entry); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads an entry; ok is false on a miss or a schema mismatch.
func (c *Cache) Get(key Key, out *Entry) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != cacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// cacheKey digests the input content together with every configuration
// field that can change the correction outcome.
func cacheKey(content []byte, cfg correct.Config) Key {
	h := sha256.New()
	h.Write(content)

	var meta [25]byte
	binary.LittleEndian.PutUint64(meta[0:], uint64(cfg.MaxIters))
	binary.LittleEndian.PutUint64(meta[8:], math.Float64bits(cfg.MinScore))
	binary.LittleEndian.PutUint64(meta[16:], uint64(cfg.TabWidth))
	if cfg.AllBlocks {
		meta[24] = 1
	}
	h.Write(meta[:])

	var key Key
	copy(key[:], h.Sum(nil))
	return key
}
