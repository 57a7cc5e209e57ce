package providers

import (
	"testing"
	"time"
	"warboard/internal/structures"

	"github.com/coocood/freecache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// local mock logger to avoid import cycle with testutil
type cacheTestLogger struct{}

func (m *cacheTestLogger) Errorf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *cacheTestLogger) Warnf(_ TypeEnum, _ string, _ ...interface{})  {}
func (m *cacheTestLogger) Debugf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *cacheTestLogger) Infof(_ TypeEnum, _ string, _ ...interface{})  {}
func (m *cacheTestLogger) Fatalf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *cacheTestLogger) Close()                                        {}

func cacheConfig(enabled bool, size int, interval time.Duration) *structures.Config {
	return &structures.Config{
		Cache: structures.CacheConfig{
			Enabled: enabled,
			Size:    size,
		},
		Poller: structures.PollerConfig{
			Interval: interval,
		},
	}
}

func TestCacheProvider_DisabledReturnsNoop(t *testing.T) {
	c := NewCacheProvider(cacheConfig(false, 10, time.Second), &cacheTestLogger{})
	_, ok := c.Get("any")
	assert.False(t, ok)
	assert.IsType(t, &noopCache{}, c)
}

func TestCacheProvider_ZeroSizeReturnsNoop(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 0, time.Second), &cacheTestLogger{})
	assert.IsType(t, &noopCache{}, c)
}

func TestCacheProvider_SetGetDel(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 1, time.Second), &cacheTestLogger{})
	assert.IsType(t, &CacheProvider{}, c)

	require.NoError(t, c.Set("war:#2PP", []byte("snapshot")))
	val, ok := c.Get("war:#2PP")
	assert.True(t, ok)
	assert.Equal(t, []byte("snapshot"), val)

	c.Del("war:#2PP")
	_, ok = c.Get("war:#2PP")
	assert.False(t, ok)
}

func TestCacheProvider_Overwrite(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 1, time.Second), &cacheTestLogger{})

	require.NoError(t, c.Set("key1", []byte("v1")))
	require.NoError(t, c.Set("key1", []byte("v2")))

	val, ok := c.Get("key1")
	assert.True(t, ok)
	assert.Equal(t, []byte("v2"), val)
}

func TestCacheProvider_OversizedEntryRejected(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 1, time.Second), &cacheTestLogger{})

	err := c.Set("war:#X", make([]byte, 2000))
	assert.ErrorIs(t, err, freecache.ErrLargeEntry)

	_, ok := c.Get("war:#X")
	assert.False(t, ok)
}

func TestNoopCache_AlwaysMiss(t *testing.T) {
	c := &noopCache{}
	assert.NoError(t, c.Set("key1", []byte("value1")))
	c.Del("key1")

	val, ok := c.Get("key1")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestSnapshotTTL(t *testing.T) {
	assert.Equal(t, 7, snapshotTTL(1500*time.Millisecond))
	assert.Equal(t, 2, snapshotTTL(100*time.Millisecond))
	assert.Equal(t, 41, snapshotTTL(10*time.Second))
}
