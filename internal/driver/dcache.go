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

	"huffls/internal/diag"
	"huffls/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// Digest is a SHA-256 content hash.
type Digest = [32]byte

// DiskCache хранит результаты check по хешу содержимого файла.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload stores the outcome of checking one file.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Path        string
	ContentHash Digest
	Macros      []string

	// Status
	Broken     bool
	ErrKind    uint8
	ErrCode    uint16
	ErrMessage string
	ErrSpans   []source.Span
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at dir, creating it if needed.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// CacheKey mixes the schema version into the content hash so a schema bump
// never reads old payloads.
func CacheKey(content Digest) Digest {
	h := sha256.New()
	_, _ = h.Write([]byte{byte(diskCacheSchemaVersion >> 8), byte(diskCacheSchemaVersion)})
	_, _ = h.Write(content[:])
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// подкаталог по первым двум символам, чтобы не держать тысячи файлов в одном каталоге
	return filepath.Join(c.dir, "check", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) (err error) {
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
	tmp := f.Name()
	defer func() {
		// после успешного Rename временного файла уже нет
		if rmErr := os.Remove(tmp); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, p)
}

// Get reads and deserializes a payload from the disk cache. Payloads written
// under another schema are reported as a miss.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
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
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// resultToPayload converts a check result into its cached form.
func resultToPayload(r *CheckResult) *DiskPayload {
	p := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Path:        r.Path,
		ContentHash: r.File.Hash,
	}
	if r.Contract != nil {
		p.Macros = make([]string, len(r.Contract.Macros))
		for i := range r.Contract.Macros {
			p.Macros[i] = r.Contract.Macros[i].Name
		}
	}
	if r.Err != nil {
		p.Broken = true
		p.ErrKind = uint8(r.Err.Kind)
		p.ErrCode = uint16(r.Err.Code)
		p.ErrMessage = r.Err.Message
		p.ErrSpans = r.Err.Spans
	}
	return p
}

// payloadError restores the structured error of a cached broken file.
func payloadError(p *DiskPayload) *diag.StructuredError {
	if p == nil || !p.Broken {
		return nil
	}
	return &diag.StructuredError{
		Kind:    diag.ErrorKind(p.ErrKind),
		Code:    diag.Code(p.ErrCode),
		Message: p.ErrMessage,
		Spans:   p.ErrSpans,
	}
}
