package cache_test

import (
	"testing"
	"time"

	"github.com/fwojciec/linksum/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func TestShareCache_TakeIfPresent(t *testing.T) {
	t.Parallel()

	t.Run("returns and removes a live entry", func(t *testing.T) {
		t.Parallel()

		clock := newFakeClock()
		c := cache.New(5*time.Minute, cache.WithClock(clock.Now))
		c.Put("chat-1", "<msg>share</msg>")

		entry, ok := c.TakeIfPresent("chat-1")
		require.True(t, ok)
		assert.Equal(t, "chat-1", entry.ChatID)
		assert.Equal(t, "<msg>share</msg>", entry.RawContent)

		_, ok = c.TakeIfPresent("chat-1")
		assert.False(t, ok)
	})

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()

		c := cache.New(5 * time.Minute)
		_, ok := c.TakeIfPresent("chat-1")
		assert.False(t, ok)
	})

	t.Run("expired entry is treated as absent and removed", func(t *testing.T) {
		t.Parallel()

		clock := newFakeClock()
		c := cache.New(5*time.Minute, cache.WithClock(clock.Now))
		c.Put("chat-1", "stale")

		clock.Advance(5*time.Minute + time.Second)

		_, ok := c.TakeIfPresent("chat-1")
		assert.False(t, ok)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("entry at exactly the TTL boundary is still live", func(t *testing.T) {
		t.Parallel()

		clock := newFakeClock()
		c := cache.New(5*time.Minute, cache.WithClock(clock.Now))
		c.Put("chat-1", "boundary")

		clock.Advance(5 * time.Minute)

		_, ok := c.TakeIfPresent("chat-1")
		assert.True(t, ok)
	})
}

func TestShareCache_Put(t *testing.T) {
	t.Parallel()

	t.Run("overwrite refreshes the timestamp", func(t *testing.T) {
		t.Parallel()

		clock := newFakeClock()
		c := cache.New(5*time.Minute, cache.WithClock(clock.Now))
		c.Put("chat-1", "first")

		clock.Advance(4 * time.Minute)
		c.Put("chat-1", "second")

		// The original insertion is now past the TTL; the overwrite isn't.
		clock.Advance(2 * time.Minute)

		entry, ok := c.TakeIfPresent("chat-1")
		require.True(t, ok)
		assert.Equal(t, "second", entry.RawContent)
	})
}

func TestShareCache_EvictExpired(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	c := cache.New(5*time.Minute, cache.WithClock(clock.Now))
	c.Put("old", "a")

	clock.Advance(3 * time.Minute)
	c.Put("fresh", "b")

	clock.Advance(2*time.Minute + time.Second)
	c.EvictExpired(clock.Now())

	assert.Equal(t, 1, c.Len())

	_, ok := c.TakeIfPresent("old")
	assert.False(t, ok)

	entry, ok := c.TakeIfPresent("fresh")
	require.True(t, ok)
	assert.Equal(t, "b", entry.RawContent)
}
