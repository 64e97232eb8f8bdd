// internal/cache/cache.go
package cache

import (
	"strings"
	"sync"
	"time"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Cache is a process-wide TTL store for serialized response bodies. It is
// created at startup, injected where needed, and stopped on shutdown, so the
// staleness window is bounded by the TTL passed to Set.
type Cache struct {
	mtx         sync.RWMutex
	entries     map[string]entry
	defaultTTL  time.Duration
	checkPeriod time.Duration
	stop        chan struct{}
	stopOnce    sync.Once
}

func New(defaultTTL, checkPeriod time.Duration) *Cache {
	c := &Cache{
		entries:     make(map[string]entry),
		defaultTTL:  defaultTTL,
		checkPeriod: checkPeriod,
		stop:        make(chan struct{}),
	}

	go c.cleanupLoop()

	return c
}

func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(c.checkPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.deleteExpired()
		case <-c.stop:
			return
		}
	}
}

func (c *Cache) deleteExpired() {
	now := time.Now()
	c.mtx.Lock()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
	c.mtx.Unlock()
}

func (c *Cache) Get(key string) ([]byte, bool) {
	c.mtx.RLock()
	e, ok := c.entries[key]
	c.mtx.RUnlock()

	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

func (c *Cache) Set(key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mtx.Lock()
	c.entries[key] = entry{value: value, expiresAt: time.Now().Add(ttl)}
	c.mtx.Unlock()
}

func (c *Cache) Delete(key string) {
	c.mtx.Lock()
	delete(c.entries, key)
	c.mtx.Unlock()
}

// InvalidatePrefix drops every key starting with prefix. Write handlers call
// this with the resource path so stale listings disappear immediately.
func (c *Cache) InvalidatePrefix(prefix string) {
	c.mtx.Lock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	c.mtx.Unlock()
}

func (c *Cache) Flush() {
	c.mtx.Lock()
	c.entries = make(map[string]entry)
	c.mtx.Unlock()
}

func (c *Cache) Len() int {
	c.mtx.RLock()
	defer c.mtx.RUnlock()
	return len(c.entries)
}

func (c *Cache) Stop() {
	c.stopOnce.Do(func() {
		close(c.stop)
	})
}
