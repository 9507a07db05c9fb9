// Package dedup remembers processed webhook update IDs so updates redelivered
// by the Bot API (after a slow 200) are handled at most once.
package dedup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/codeGROOVE-dev/sfcache"
	"github.com/codeGROOVE-dev/sfcache/pkg/store/localfs"
)

// Cache records update IDs with a TTL. Entries persist across restarts so a
// redeploy does not replay the webhook backlog.
type Cache struct {
	cache *sfcache.TieredCache[string, []byte]
	ttl   time.Duration
}

// New creates a Cache persisted under the user cache directory.
func New(ttl time.Duration) (*Cache, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}
	return NewWithPath(ttl, filepath.Join(cacheDir, "tikinfo"))
}

// NewWithPath creates a Cache persisted at the given path.
func NewWithPath(ttl time.Duration, cachePath string) (*Cache, error) {
	if err := os.MkdirAll(cachePath, 0o750); err != nil {
		return nil, fmt.Errorf("create dedup directory: %w", err)
	}

	persist, err := localfs.New[string, []byte]("tikinfo", cachePath)
	if err != nil {
		return nil, fmt.Errorf("create persistence layer: %w", err)
	}

	tc, err := sfcache.NewTiered[string, []byte](persist, sfcache.TTL(ttl))
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}

	return &Cache{cache: tc, ttl: ttl}, nil
}

// Seen records the update ID and reports whether it had been recorded before.
// On cache errors it reports false: processing a duplicate beats dropping an
// update.
func (c *Cache) Seen(ctx context.Context, updateID int) bool {
	var fresh bool
	_, err := c.cache.GetSet(ctx, strconv.Itoa(updateID), func(context.Context) ([]byte, error) {
		fresh = true
		return []byte{1}, nil
	}, c.ttl)
	if err != nil {
		return false
	}
	return !fresh
}

// Close flushes the persistence layer.
func (c *Cache) Close() error {
	return c.cache.Close()
}
