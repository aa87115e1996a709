package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestContentCache_SetGet(t *testing.T) {
	c := NewContentCache(time.Minute)
	c.Set("c1/f1", "body")

	got, ok := c.Get("c1/f1")
	assert.True(t, ok)
	assert.Equal(t, "body", got)

	_, ok = c.Get("c1/missing")
	assert.False(t, ok)
}

func TestContentCache_Expiry(t *testing.T) {
	c := NewContentCache(10 * time.Millisecond)
	c.Set("k", "v")

	time.Sleep(20 * time.Millisecond)
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestContentCache_Invalidate(t *testing.T) {
	c := NewContentCache(time.Minute)
	c.Set("k", "v")
	c.Invalidate("k")

	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestContentCache_ClearDropsOnlyExpired(t *testing.T) {
	c := NewContentCache(time.Minute)
	c.Set("fresh", "v")
	c.cache["stale"] = CacheEntry{Content: "v", ExpiryTime: time.Now().Add(-time.Second)}

	c.Clear()

	_, ok := c.Get("fresh")
	assert.True(t, ok)
	_, ok = c.Get("stale")
	assert.False(t, ok)
}
