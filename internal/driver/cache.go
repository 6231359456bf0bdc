package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"hdrscan/internal/diag"
	"hdrscan/internal/source"
)

// cacheSchemaVersion invalidates stored payloads when their layout
// changes. Bump on any CachedScan edit.
const cacheSchemaVersion uint16 = 1

// Digest is a sha256 content hash. Files with equal content share one
// cache entry no matter where they live.
type Digest [sha256.Size]byte

// ContentDigest hashes raw file content.
func ContentDigest(content []byte) Digest {
	return sha256.Sum256(content)
}

// IsZero reports an unset digest.
func (d Digest) IsZero() bool {
	var z Digest
	return d == z
}

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// CachedScan is what a scan leaves behind: the outcome summary and the
// diagnostics, but not the tree. Replaying it answers "is this file
// clean and what is in it" without re-lexing; commands that need the
// declarations themselves scan live.
type CachedScan struct {
	Schema uint16

	Path   string
	Broken bool

	Stats Stats

	Diagnostics []CachedDiagnostic
}

// CachedDiagnostic is one diagnostic flattened to plain fields. Spans
// keep byte offsets only; the file handle is supplied on replay.
type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
}

// Cache stores scan outcomes on disk keyed by content digest.
// Safe for concurrent use.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// OpenCache initializes the cache at the standard user location,
// XDG_CACHE_HOME/<app> or ~/.cache/<app>.
func OpenCache(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenCacheAt(filepath.Join(base, app))
}

// OpenCacheAt initializes the cache in an explicit directory.
func OpenCacheAt(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) pathFor(key Digest) string {
	// one level of subdirectory keeps the entries listable
	return filepath.Join(c.dir, "scans", key.String()+".mp")
}

// Put serializes and writes a payload, atomically replacing any
// previous entry for the same digest.
func (c *Cache) Put(key Digest, payload *CachedScan) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload by digest. A missing entry or a schema mismatch
// is a miss, not an error.
func (c *Cache) Get(key Digest, out *CachedScan) (bool, error) {
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
		return false, fmt.Errorf("decode cache entry %s: %w", key, err)
	}
	if out.Schema != cacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll wipes the cache directory.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

// Dir exposes the backing directory, mainly for status output.
func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// cachePayload flattens a live scan for storage.
func cachePayload(path string, res *Result) *CachedScan {
	payload := &CachedScan{
		Schema: cacheSchemaVersion,
		Path:   path,
		Broken: res.Bag.HasErrors(),
		Stats:  res.Stats,
	}
	items := res.Bag.Items()
	payload.Diagnostics = make([]CachedDiagnostic, 0, len(items))
	for _, d := range items {
		if d.Code == diag.ObsTimings {
			// timings are per run, replaying stale ones would lie
			continue
		}
		payload.Diagnostics = append(payload.Diagnostics, CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		})
	}
	return payload
}

// replayDiagnostics rebuilds a bag from a cached payload, rebinding the
// spans to the freshly loaded file.
func replayDiagnostics(payload *CachedScan, fileID source.FileID, maxDiagnostics int) *diag.Bag {
	bag := diag.NewBag(max(maxDiagnostics, len(payload.Diagnostics)))
	for _, cd := range payload.Diagnostics {
		bag.Add(diag.New(
			diag.Severity(cd.Severity),
			diag.Code(cd.Code),
			source.Span{File: fileID, Start: cd.Start, End: cd.End},
			cd.Message,
		))
	}
	return bag
}
