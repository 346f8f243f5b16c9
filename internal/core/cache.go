package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCatalogCacheSize is the number of distinct catalog sources kept.
const DefaultCatalogCacheSize = 16

// CatalogCache memoizes catalog loads by the SHA-256 of their source bytes.
// Cached catalogs are shared and must be treated as read-only.
// Safe for concurrent use.
type CatalogCache struct {
	entries *lru.Cache[string, *Catalog]
}

// NewCatalogCache creates a cache holding up to size catalogs.
func NewCatalogCache(size int) (*CatalogCache, error) {
	if size <= 0 {
		size = DefaultCatalogCacheSize
	}
	c, err := lru.New[string, *Catalog](size)
	if err != nil {
		return nil, fmt.Errorf("create catalog cache: %w", err)
	}
	return &CatalogCache{entries: c}, nil
}

// SourceKey returns the content-addressed key for data.
func SourceKey(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Load returns the cached catalog for data, loading and storing it on a miss.
// Failed loads are not cached. hit reports whether the cache served the result.
func (c *CatalogCache) Load(data []byte) (cat *Catalog, hit bool, err error) {
	key := SourceKey(data)
	if cat, ok := c.entries.Get(key); ok {
		return cat, true, nil
	}

	cat, err = LoadCatalog(data)
	if err != nil {
		return nil, false, err
	}
	c.entries.Add(key, cat)
	return cat, false, nil
}

// Invalidate drops the cached catalog for data, if any.
func (c *CatalogCache) Invalidate(data []byte) bool {
	return c.entries.Remove(SourceKey(data))
}

// Purge drops every cached catalog.
func (c *CatalogCache) Purge() {
	c.entries.Purge()
}

// Len returns the number of cached catalogs.
func (c *CatalogCache) Len() int {
	return c.entries.Len()
}
