package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"crest/internal/hir"
	"crest/internal/symbols"
)

// Increment when the Payload format changes.
const liftCacheSchemaVersion uint16 = 1

// Digest is a fixed 256-bit key derived from module content.
type Digest [32]byte

// ModuleDigest hashes a module's printed form. The printer output is
// deterministic, so equal modules map to equal keys.
func ModuleDigest(m *hir.Module) Digest {
	return sha256.Sum256([]byte(hir.DumpString(m)))
}

// LiftCache stores per-module lift reports on disk, keyed by digest.
// Thread-safe for concurrent access.
type LiftCache struct {
	mu  sync.RWMutex
	dir string
}

// LiftedEntry is the serializable record of one lifted function.
type LiftedEntry struct {
	Name     string
	OldSym   uint32
	NewSym   uint32
	Captured []uint32
}

// Payload is the on-disk form of a module's lift report.
type Payload struct {
	Schema uint16

	Module string
	Rounds int
	Lifted []LiftedEntry

	TotalMS float64
}

func newPayload(res *ModuleResult) *Payload {
	p := &Payload{
		Schema:  liftCacheSchemaVersion,
		Module:  res.Module,
		Rounds:  res.Result.Rounds,
		TotalMS: res.Timing.TotalMS,
	}
	p.Lifted = make([]LiftedEntry, len(res.Result.Lifted))
	for i, lf := range res.Result.Lifted {
		captured := make([]uint32, len(lf.Captured))
		for j, s := range lf.Captured {
			captured[j] = uint32(s)
		}
		p.Lifted[i] = LiftedEntry{
			Name:     lf.Name,
			OldSym:   uint32(lf.OldSym),
			NewSym:   uint32(lf.NewSym),
			Captured: captured,
		}
	}
	return p
}

// CapturedSyms converts one entry's capture list back to symbol IDs.
func (e *LiftedEntry) CapturedSyms() []symbols.SymbolID {
	out := make([]symbols.SymbolID, len(e.Captured))
	for i, v := range e.Captured {
		out[i] = symbols.SymbolID(v)
	}
	return out
}

// OpenLiftCache initializes and returns a cache at the standard location.
func OpenLiftCache(app string) (*LiftCache, error) {
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
	return &LiftCache{dir: dir}, nil
}

func (c *LiftCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Subdirectory keeps the cache root listable.
	return filepath.Join(c.dir, "lift", hexKey+".mp")
}

// Put serializes and atomically writes a payload.
func (c *LiftCache) Put(key Digest, payload *Payload) error {
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
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload. A missing key or a stale schema is a miss, not an
// error.
func (c *LiftCache) Get(key Digest, out *Payload) (bool, error) {
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
	defer func() { _ = f.Close() }()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != liftCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *LiftCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}
