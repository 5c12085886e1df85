// Package cache provides the in-memory, TTL-bounded pending-share cache.
// All state is process-lifetime-scoped; nothing is persisted.
package cache

import (
	"sync"
	"time"

	"github.com/fwojciec/linksum"
)

// Ensure ShareCache implements linksum.ShareCache at compile time.
var _ linksum.ShareCache = (*ShareCache)(nil)

// ShareCache holds at most one pending share per chat key. It is safe for
// concurrent use; operations are O(map size) under a single mutex, which is
// sufficient at the expected contention level.
type ShareCache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]linksum.PendingShare
}

// Option configures a ShareCache.
type Option func(*ShareCache)

// WithClock injects the time source, making TTL behavior testable without
// real delays. Defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *ShareCache) {
		c.now = now
	}
}

// New creates a ShareCache whose entries expire ttl after insertion.
func New(ttl time.Duration, opts ...Option) *ShareCache {
	c := &ShareCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]linksum.PendingShare),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Put stores content for a chat, overwriting any existing entry with a
// fresh timestamp.
func (c *ShareCache) Put(chatID, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[chatID] = linksum.PendingShare{
		ChatID:     chatID,
		RawContent: content,
		InsertedAt: c.now(),
	}
}

// TakeIfPresent atomically removes and returns the entry for a chat.
// Expired entries are treated as absent and removed.
func (c *ShareCache) TakeIfPresent(chatID string) (linksum.PendingShare, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[chatID]
	if !ok {
		return linksum.PendingShare{}, false
	}
	delete(c.entries, chatID)

	if c.now().Sub(entry.InsertedAt) > c.ttl {
		return linksum.PendingShare{}, false
	}
	return entry, true
}

// EvictExpired removes every entry whose age exceeds the TTL as of now.
func (c *ShareCache) EvictExpired(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, entry := range c.entries {
		if now.Sub(entry.InsertedAt) > c.ttl {
			delete(c.entries, key)
		}
	}
}

// Len returns the number of cached entries.
func (c *ShareCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
