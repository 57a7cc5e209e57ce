package providers

import (
	"time"
	"unsafe"
	"warboard/internal/structures"

	"github.com/coocood/freecache"
)

// snapshotTTLTicks is how many poll ticks a cached snapshot outlives its poll.
const snapshotTTLTicks = 4

type CacheProviderInterface interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
	Del(key string)
}

type CacheProvider struct {
	cache *freecache.Cache
	ttl   int
}

func snapshotTTL(interval time.Duration) int {
	return max(int((interval*snapshotTTLTicks).Seconds()), 1) + 1
}

func NewCacheProvider(conf *structures.Config, logger Logger) CacheProviderInterface {
	if !conf.Cache.Enabled || conf.Cache.Size <= 0 {
		logger.Infof(TypeApp, "Snapshot cache disabled")
		return &noopCache{}
	}

	sizeBytes := conf.Cache.Size * 1024 * 1024
	ttl := snapshotTTL(conf.Poller.Interval)

	logger.Infof(TypeApp, "Snapshot cache initialized: %dMB, TTL=%ds, max entry %dB", conf.Cache.Size, ttl, sizeBytes/1024)

	return &CacheProvider{
		cache: freecache.NewCache(sizeBytes),
		ttl:   ttl,
	}
}

// unsafeStringToBytes converts string to []byte without allocation.
// freecache copies keys internally, so the result is never written to.
func unsafeStringToBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

func (c *CacheProvider) Get(key string) ([]byte, bool) {
	val, err := c.cache.Get(unsafeStringToBytes(key))
	if err != nil {
		return nil, false
	}
	return val, true
}

// Set fails with freecache.ErrLargeEntry for values larger than 1/1024 of
// the cache size.
func (c *CacheProvider) Set(key string, value []byte) error {
	return c.cache.Set(unsafeStringToBytes(key), value, c.ttl)
}

func (c *CacheProvider) Del(key string) {
	c.cache.Del(unsafeStringToBytes(key))
}

type noopCache struct{}

func (n *noopCache) Get(_ string) ([]byte, bool)  { return nil, false }
func (n *noopCache) Set(_ string, _ []byte) error { return nil }
func (n *noopCache) Del(_ string)                 {}
