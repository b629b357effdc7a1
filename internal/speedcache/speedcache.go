// Package speedcache is a tiny in-process read-through layer that absorbs
// request bursts between database round trips. It is never the system of
// record; every entry expires within seconds and can vanish at any time.
package speedcache

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/goalline/sportscache/internal/domain"
)

// Cache is a fixed-size LRU with per-entry expiry
type Cache struct {
	lru *expirable.LRU[string, json.RawMessage]
}

// New creates a speed cache holding at most size entries for at most ttl
func New(size int, ttl time.Duration) *Cache {
	return &Cache{
		lru: expirable.NewLRU[string, json.RawMessage](size, nil, ttl),
	}
}

// Key builds the cache key for a data record
func Key(subjectID int64, kind domain.DataKind, season int) string {
	return fmt.Sprintf("%s:%d:%d", kind, subjectID, season)
}

// Get returns the cached payload for a key if present and unexpired
func (c *Cache) Get(key string) (json.RawMessage, bool) {
	return c.lru.Get(key)
}

// Set stores a payload under a key
func (c *Cache) Set(key string, payload json.RawMessage) {
	c.lru.Add(key, payload)
}

// Remove drops a key
func (c *Cache) Remove(key string) {
	c.lru.Remove(key)
}

// Len returns the number of live entries
func (c *Cache) Len() int {
	return c.lru.Len()
}
