// Package respcache is an in-memory cache for encoded API responses.
// Entries expire a fixed time after they are written and are never persisted.
package respcache

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/maypok86/otter/v2"
)

// Entry is a cached response body.
type Entry struct {
	ExpiresAt time.Time
	Data      []byte
}

// Cache maps request fingerprints to response bodies.
type Cache struct {
	cache  *otter.Cache[string, Entry]
	logger *slog.Logger
	ttl    time.Duration
}

// New creates a cache holding at most size entries for ttl each.
func New(size int, ttl time.Duration, logger *slog.Logger) *Cache {
	if size <= 0 {
		size = 10_000
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	cache := otter.Must(&otter.Options[string, Entry]{
		MaximumSize:      size,
		InitialCapacity:  min(size, 1_024),
		ExpiryCalculator: otter.ExpiryWriting[string, Entry](ttl),
	})
	return &Cache{cache: cache, ttl: ttl, logger: logger}
}

// Key fingerprints a request from its parts, e.g. method, path and canonical body.
func Key(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached body for key.
func (c *Cache) Get(key string) ([]byte, bool) {
	entry, found := c.cache.GetIfPresent(key)
	if !found {
		c.logger.Debug("cache miss", "key", short(key), "reason", "not_found")
		return nil, false
	}

	// Expiry is checked against the entry deadline as well as otter's own.
	if time.Now().After(entry.ExpiresAt) {
		c.logger.Debug("cache miss", "key", short(key), "reason", "expired", "expired_at", entry.ExpiresAt)
		c.cache.Invalidate(key)
		return nil, false
	}

	return entry.Data, true
}

// Set stores data under key.
func (c *Cache) Set(key string, data []byte) {
	entry := Entry{
		Data:      data,
		ExpiresAt: time.Now().Add(c.ttl),
	}
	c.cache.Set(key, entry)
	c.logger.Debug("cache set", "key", short(key), "expires_at", entry.ExpiresAt, "size", len(data))
}

// Len returns the approximate number of cached entries.
func (c *Cache) Len() int {
	return c.cache.EstimatedSize()
}

func short(key string) string {
	if len(key) > 12 {
		return key[:12]
	}
	return key
}
