package catalog

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/ppiankov/bartier/internal/cache"
	"github.com/ppiankov/bartier/internal/fetch"
)

// Fetcher retrieves remote catalog documents
type Fetcher interface {
	FetchWithRetry(ctx context.Context, rawURL string) (*fetch.Result, error)
}

// Loader reads catalogs from files or http(s) URLs.
// Remote payloads go through the cache when one is configured.
type Loader struct {
	fetcher Fetcher
	cache   cache.Cache
	logger  *zap.Logger
}

// NewLoader creates a loader. fetcher and c may be nil: without a fetcher
// only local files can be loaded, without a cache every load hits the source.
func NewLoader(fetcher Fetcher, c cache.Cache, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		fetcher: fetcher,
		cache:   c,
		logger:  logger,
	}
}

// IsRemote reports whether src is an http(s) URL
func IsRemote(src string) bool {
	lower := strings.ToLower(src)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Load reads and decodes the catalog at src
func (l *Loader) Load(ctx context.Context, src string) (*Catalog, error) {
	data, err := l.read(ctx, src)
	if err != nil {
		return nil, err
	}

	c, err := Decode(data, FormatFromName(src))
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", src, err)
	}
	c.Source = src

	l.logger.Debug("catalog loaded", zap.String("source", src), zap.Int("bars", c.Len()))
	return c, nil
}

func (l *Loader) read(ctx context.Context, src string) ([]byte, error) {
	if !IsRemote(src) {
		data, err := os.ReadFile(src)
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		return data, nil
	}

	if l.fetcher == nil {
		return nil, fmt.Errorf("remote catalog %s: no fetcher configured", src)
	}

	key := cache.CacheKey(src)
	if l.cache != nil {
		if data, ok := l.cache.Get(key); ok {
			l.logger.Debug("catalog cache hit", zap.String("source", src))
			return data, nil
		}
	}

	result, err := l.fetcher.FetchWithRetry(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}

	if l.cache != nil {
		if err := l.cache.Set(key, result.Body, 0); err != nil {
			l.logger.Warn("catalog cache write failed", zap.String("source", src), zap.Error(err))
		}
	}

	return result.Body, nil
}
