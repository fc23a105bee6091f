// Package cache keeps raw catalog payloads so repeated runs skip the network.
// Assembled sections are never cached.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/ppiankov/bartier/internal/model"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// CacheKey generates a cache key from a catalog source
func CacheKey(source string) string {
	hash := sha256.Sum256([]byte(source))
	return "bartier:catalog:v1:" + hex.EncodeToString(hash[:])
}

// New builds the cache described by cfg: memory only, or memory backed by
// disk when a disk directory is set. It returns nil when caching is off.
func New(cfg model.CacheConfig) Cache {
	if !cfg.Enabled {
		return nil
	}
	if cfg.DiskDir == "" {
		return NewMemoryCache(cfg.MemoryTTL, 10*time.Minute)
	}
	return NewLayeredCache(cfg.MemoryTTL, cfg.DiskDir, cfg.DiskTTL)
}
