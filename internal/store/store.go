package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
	bolt "go.etcd.io/bbolt"

	"github.com/mmcdole/vitrine/internal/domain"
)

// Bucket names
var (
	bucketPages = []byte("pages")
)

// PageStore implements domain.PageCache using BoltDB.
// Values are zstd-compressed JSON on disk; decoded JSON is promoted to memory on read.
type PageStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte

	enc *zstd.Encoder
	dec *zstd.Decoder

	ttl time.Duration // 0 = never expires
	now func() time.Time
}

// NewPageStore opens (or creates) the page cache under baseCacheDir,
// namespaced by the API base URL. An empty baseCacheDir gives a memory-only store.
func NewPageStore(baseCacheDir, baseURL string, ttl time.Duration) (*PageStore, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}

	s := &PageStore{
		cache: make(map[string][]byte),
		enc:   enc,
		dec:   dec,
		ttl:   ttl,
		now:   time.Now,
	}

	if baseCacheDir == "" {
		// Memory-only mode (no persistence)
		return s, nil
	}

	dir := baseCacheDir
	if baseURL != "" {
		dir = filepath.Join(baseCacheDir, hashBaseURL(baseURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "vitrine.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPages)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	s.db = db
	return s, nil
}

func hashBaseURL(baseURL string) string {
	normalized := strings.TrimRight(strings.ToLower(baseURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *PageStore) Close() error {
	s.dec.Close()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func pageKey(resource string, limit, page int) string {
	return fmt.Sprintf("res:%s:limit:%d:page:%d", resource, limit, page)
}

// === Generic helpers ===

func (s *PageStore) get(key string, dest interface{}) bool {
	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var compressed []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPages)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			compressed = make([]byte, len(v))
			copy(compressed, v)
		}
		return nil
	})

	if compressed == nil {
		return false
	}

	data, err := s.dec.DecodeAll(compressed, nil)
	if err != nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *PageStore) set(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	compressed := s.enc.EncodeAll(data, nil)
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketPages).Put([]byte(key), compressed)
	})
}

// === Pages ===

// Get returns a cached page if present and younger than the TTL
func (s *PageStore) Get(resource string, limit, page int) (*domain.Page, bool) {
	var p domain.Page
	if !s.get(pageKey(resource, limit, page), &p) {
		return nil, false
	}
	if s.ttl > 0 && s.now().Sub(p.FetchedAt) > s.ttl {
		return nil, false
	}
	p.FromCache = true
	return &p, true
}

// Put stores a page under the limit and page number it was requested with
func (s *PageStore) Put(resource string, limit, page int, p *domain.Page) error {
	if p == nil {
		return nil
	}
	return s.set(pageKey(resource, limit, page), p)
}

// InvalidateAll wipes every page cached for this base URL
func (s *PageStore) InvalidateAll() error {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPages)
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			if err := c.Delete(); err != nil {
				return err
			}
		}
		return nil
	})
}
