// Package cache keeps rendered card previews so the browser does not run
// glamour again for a card it has already shown.
package cache

import (
	"fmt"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSize is the number of previews kept by the browser.
const DefaultSize = 256

// PreviewCache is a fixed-size LRU of rendered previews keyed by card and
// render width. It is safe for concurrent use.
type PreviewCache struct {
	lru *lru.Cache[string, string]
}

// New returns a cache holding at most size previews.
func New(size int) (*PreviewCache, error) {
	if size <= 0 {
		return nil, fmt.Errorf("cache size must be positive, got %d", size)
	}
	c, err := lru.New[string, string](size)
	if err != nil {
		return nil, err
	}
	return &PreviewCache{lru: c}, nil
}

// Key builds the cache key for a card rendered at width. identity must be
// unique per card within a kind.
func Key(kind, identity string, width int) string {
	return kind + "\x00" + identity + "\x00" + strconv.Itoa(width)
}

func (c *PreviewCache) Get(key string) (string, bool) {
	return c.lru.Get(key)
}

func (c *PreviewCache) Put(key, rendered string) {
	c.lru.Add(key, rendered)
}

// GetOrRender returns the cached preview for key, rendering and storing it
// on a miss. Failed renders are not cached.
func (c *PreviewCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	if v, ok := c.lru.Get(key); ok {
		return v, nil
	}
	v, err := render()
	if err != nil {
		return "", err
	}
	c.lru.Add(key, v)
	return v, nil
}

func (c *PreviewCache) Len() int {
	return c.lru.Len()
}

// Purge drops every preview, used when the card collection changes.
func (c *PreviewCache) Purge() {
	c.lru.Purge()
}
