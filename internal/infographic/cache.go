package infographic

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"slidegen/internal/slide"
)

const (
	DefaultStructureCacheSize = 256
	DefaultStructureCacheTTL  = 10 * time.Minute
)

// StructureCache memoises ExtractStructure by template fingerprint.
type StructureCache struct {
	lru *expirable.LRU[string, Structure]

	hits   atomic.Uint64
	misses atomic.Uint64
}

func NewStructureCache(size int, ttl time.Duration) *StructureCache {
	if size <= 0 {
		size = DefaultStructureCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultStructureCacheTTL
	}
	return &StructureCache{lru: expirable.NewLRU[string, Structure](size, nil, ttl)}
}

// Extract returns the structure of s, computing it on a miss. A nil cache
// always computes.
func (c *StructureCache) Extract(s slide.Slide) (Structure, error) {
	if c == nil {
		return ExtractStructure(s), nil
	}
	key, err := Fingerprint(s)
	if err != nil {
		return Structure{}, err
	}
	if st, ok := c.lru.Get(key); ok {
		c.hits.Add(1)
		return st, nil
	}
	c.misses.Add(1)
	st := ExtractStructure(s.Clone())
	c.lru.Add(key, st)
	return st, nil
}

// Stats returns the hit and miss counts.
func (c *StructureCache) Stats() (hits, misses uint64) {
	if c == nil {
		return 0, 0
	}
	return c.hits.Load(), c.misses.Load()
}

// Fingerprint is the hex SHA-256 of the slide's JSON encoding.
func Fingerprint(s slide.Slide) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("infographic: fingerprint: %w", err)
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}
