package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	// DefaultSize bounds the number of cached entries.
	DefaultSize = 1024
	// DefaultExpiry is the time-to-live applied to every entry.
	DefaultExpiry = 7 * 24 * time.Hour
)

// Cache is an in-process read cache sitting in front of the store. Entries
// expire after DefaultExpiry and the least recently used entry is evicted
// when the cache is full.
type Cache struct {
	lru *expirable.LRU[string, string]
}

// NewCache creates a new Cache instance.
func NewCache() (*Cache, error) {
	lru := expirable.NewLRU[string, string](DefaultSize, nil, DefaultExpiry)
	if lru == nil {
		return nil, errors.New("cache is not initialized")
	}
	return &Cache{lru: lru}, nil
}

// Get returns the cached value for key, or an empty string when the key is
// absent or expired.
func (c *Cache) Get(_ context.Context, key string) (string, error) {
	if c.lru == nil {
		return "", errors.New("cache is not initialized")
	}
	value, ok := c.lru.Get(key)
	if !ok {
		return "", nil // key does not exist
	}
	return value, nil
}

// Set stores a value under key. Byte slices and strings are accepted.
func (c *Cache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if c.lru == nil {
		return errors.New("cache is not initialized")
	}
	switch v := value.(type) {
	case string:
		c.lru.Add(key, v)
	case []byte:
		c.lru.Add(key, string(v))
	default:
		return errors.New("unsupported cache value type")
	}
	return nil
}

// Delete removes a single key.
func (c *Cache) Delete(_ context.Context, key string) error {
	if c.lru == nil {
		return errors.New("cache is not initialized")
	}
	c.lru.Remove(key)
	return nil
}

// DeleteAll removes every key sharing the given prefix.
func (c *Cache) DeleteAll(_ context.Context, prefix string) error {
	if c.lru == nil {
		return errors.New("cache is not initialized")
	}
	for _, key := range c.lru.Keys() {
		if strings.HasPrefix(key, prefix) {
			c.lru.Remove(key)
		}
	}
	return nil
}

// Flush empties the cache entirely. Used after a restore replaces the
// underlying store wholesale.
func (c *Cache) Flush(_ context.Context) error {
	if c.lru == nil {
		return errors.New("cache is not initialized")
	}
	c.lru.Purge()
	return nil
}

// DeleteBatch removes the given keys.
func (c *Cache) DeleteBatch(_ context.Context, keys ...string) error {
	if c.lru == nil {
		return errors.New("cache is not initialized")
	}
	for _, key := range keys {
		c.lru.Remove(key)
	}
	return nil
}
