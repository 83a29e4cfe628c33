// Package cache is a small in-process LRU with per-entry expiry.
package cache

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type item[V any] struct {
	value     V
	expiresAt time.Time
}

type TTL[V any] struct {
	lru *lru.Cache[string, item[V]]
	ttl time.Duration
	now func() time.Time
}

func NewTTL[V any](size int, ttl time.Duration) (*TTL[V], error) {
	if size < 1 {
		size = 1
	}
	l, err := lru.New[string, item[V]](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create lru cache: %w", err)
	}
	return &TTL[V]{lru: l, ttl: ttl, now: time.Now}, nil
}

func (c *TTL[V]) Set(key string, value V) {
	c.lru.Add(key, item[V]{value: value, expiresAt: c.now().Add(c.ttl)})
}

// Get returns the cached value; expired entries are evicted and reported as missing.
func (c *TTL[V]) Get(key string) (V, bool) {
	var zero V
	it, ok := c.lru.Get(key)
	if !ok {
		return zero, false
	}
	if c.now().After(it.expiresAt) {
		c.lru.Remove(key)
		return zero, false
	}
	return it.value, true
}

func (c *TTL[V]) Delete(key string) {
	c.lru.Remove(key)
}

func (c *TTL[V]) Purge() {
	c.lru.Purge()
}
