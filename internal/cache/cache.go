// Package cache provides the in-memory vector cache: a concurrent mapping
// from document ID to that document's vectors, chunks, metadata, and
// similarity index.
package cache

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/vector"
)

// ErrShapeMismatch is returned by Set when the vector and chunk counts
// differ or the vectors do not share one dimension. A failed Set leaves any
// prior entry for the document untouched.
var ErrShapeMismatch = errors.New("vectors and chunks do not align")

// Entry is one document's cached state. Entries are immutable once
// installed: Set replaces the whole entry rather than mutating it, so a
// reader holding an Entry keeps a consistent view even across replacement.
// Vectors hold the original, un-normalized embeddings; Index searches over
// normalized copies built at Set time.
type Entry struct {
	Vectors  [][]float32
	Chunks   []models.Chunk
	Metadata models.Metadata
	Index    vector.Index
	CachedAt time.Time
}

// VectorCache maps document IDs to immutable cache entries. One instance is
// constructed at process startup and shared by all callers; every public
// method is safe under unbounded concurrency. A single coarse mutex guards
// the mapping and the initialization state; aggregate reads take one
// consistent snapshot under it. Similarity search happens on entries after
// they leave the lock, which is safe because entries never change in place.
type VectorCache struct {
	mu          sync.Mutex
	entries     map[string]*Entry
	initialized bool
	lastRefresh *time.Time

	indexType vector.IndexType
	logger    *zap.Logger
}

// Option configures a VectorCache.
type Option func(*VectorCache)

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(c *VectorCache) { c.logger = l }
}

// WithIndexType selects the similarity index implementation built on Set.
func WithIndexType(t vector.IndexType) Option {
	return func(c *VectorCache) { c.indexType = t }
}

// NewVectorCache creates an empty vector cache.
func NewVectorCache(opts ...Option) *VectorCache {
	c := &VectorCache{
		entries:   make(map[string]*Entry),
		indexType: vector.IndexTypeFlat,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Set validates, builds, and atomically installs a new entry for documentID,
// replacing any prior entry under the same key. The similarity index is
// built here, outside the lock, so concurrent readers are never blocked on
// index construction; only the final install takes the mutex. This is the
// single point where index-build cost is paid.
func (c *VectorCache) Set(documentID string, vectors [][]float32, chunks []models.Chunk, metadata models.Metadata) error {
	if len(vectors) != len(chunks) {
		return fmt.Errorf("%w: %d vectors, %d chunks", ErrShapeMismatch, len(vectors), len(chunks))
	}

	idx, err := vector.NewIndex(c.indexType, vectors)
	if err != nil {
		if errors.Is(err, vector.ErrDimensionMismatch) {
			return fmt.Errorf("%w: %v", ErrShapeMismatch, err)
		}
		return fmt.Errorf("build similarity index: %w", err)
	}

	entry := &Entry{
		Vectors:  copyVectors(vectors),
		Chunks:   append([]models.Chunk(nil), chunks...),
		Metadata: metadata.Copy(),
		Index:    idx,
		CachedAt: time.Now(),
	}

	// A replaced entry is not closed: readers that already obtained it may
	// still be searching its index.
	c.mu.Lock()
	_, replaced := c.entries[documentID]
	c.entries[documentID] = entry
	c.mu.Unlock()

	c.logger.Debug("cache entry installed",
		zap.String("document_id", documentID),
		zap.Int("vectors", len(vectors)),
		zap.Bool("replaced", replaced))
	return nil
}

// Get returns the entry for documentID. The entry is a read-only view:
// callers must not modify its slices or metadata. A missing key returns
// (nil, false), never an error.
func (c *VectorCache) Get(documentID string) (*Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[documentID]
	return entry, ok
}

// IsCached reports whether documentID has an entry.
func (c *VectorCache) IsCached(documentID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[documentID]
	return ok
}

// Remove deletes the entry for documentID and reports whether one existed.
func (c *VectorCache) Remove(documentID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[documentID]; !ok {
		return false
	}
	delete(c.entries, documentID)
	c.logger.Debug("cache entry removed", zap.String("document_id", documentID))
	return true
}

// Clear removes all entries and resets the initialization state.
func (c *VectorCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*Entry)
	c.initialized = false
	c.lastRefresh = nil
	c.logger.Debug("cache cleared")
}

// DocumentIDs returns a sorted snapshot of all cached document IDs.
func (c *VectorCache) DocumentIDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.documentIDsLocked()
}

// AllMetadata returns one record per cached document: a copy of the
// document's metadata with document_id and cached_at injected. The cache
// does not interpret metadata contents beyond this passthrough.
func (c *VectorCache) AllMetadata() []models.Metadata {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Metadata, 0, len(c.entries))
	for _, id := range c.documentIDsLocked() {
		entry := c.entries[id]
		meta := entry.Metadata.Copy()
		meta["document_id"] = id
		meta["cached_at"] = entry.CachedAt
		out = append(out, meta)
	}
	return out
}

// Stats returns a consistent snapshot of cache-wide counters and state.
// Concurrent Set/Remove calls are observed either fully or not at all.
func (c *VectorCache) Stats() models.CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	stats := models.CacheStats{
		TotalDocuments: len(c.entries),
		Initialized:    c.initialized,
		DocumentIDs:    c.documentIDsLocked(),
	}
	if c.lastRefresh != nil {
		t := *c.lastRefresh
		stats.LastRefresh = &t
	}
	for _, entry := range c.entries {
		stats.TotalChunks += len(entry.Chunks)
		stats.TotalVectors += len(entry.Vectors)
	}
	return stats
}

// MarkInitialized sets the cache-wide bootstrap flag and refresh timestamp.
// Called once after a bulk load completes; individual Set calls never touch
// this state.
func (c *VectorCache) MarkInitialized() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	c.initialized = true
	c.lastRefresh = &now
	c.logger.Debug("cache marked initialized", zap.Time("last_refresh", now))
}

// IsInitialized reports whether MarkInitialized has been called since the
// last Clear.
func (c *VectorCache) IsInitialized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialized
}

// documentIDsLocked returns sorted document IDs. Callers must hold mu.
func (c *VectorCache) documentIDsLocked() []string {
	ids := make([]string, 0, len(c.entries))
	for id := range c.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func copyVectors(vectors [][]float32) [][]float32 {
	out := make([][]float32, len(vectors))
	for i, v := range vectors {
		vec := make([]float32, len(v))
		copy(vec, v)
		out[i] = vec
	}
	return out
}
