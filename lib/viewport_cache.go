package lib

import "sync"

import "github.com/golang/groupcache/lru"

// ViewportCache keeps the most recently built viewports, so that animation
// loops revisiting the same camera don't recompute its matrices.
// It is safe for concurrent use.
type ViewportCache struct {
	cache *lru.Cache
	mutex sync.Mutex
}

// NewViewportCache creates a cache of at most capacity viewports.
// Zero capacity means no limit.
func NewViewportCache(capacity int) *ViewportCache {
	return &ViewportCache{
		cache: lru.New(capacity),
	}
}

// Get returns the viewport for props, building it on a miss.
// Failed constructions are not cached. Props which differ only in values
// the viewport replaces with defaults share an entry.
func (c *ViewportCache) Get(props ViewportProps) (*WebMercatorViewport, error) {
	props = props.withDefaults()
	c.mutex.Lock()
	v, ok := c.cache.Get(props)
	c.mutex.Unlock()
	if ok {
		return v.(*WebMercatorViewport), nil
	}
	viewport, err := NewWebMercatorViewport(props)
	if err != nil {
		return nil, err
	}
	c.mutex.Lock()
	defer c.mutex.Unlock()
	// Another goroutine may have added it in the meantime.
	if v, ok := c.cache.Get(props); ok {
		return v.(*WebMercatorViewport), nil
	}
	c.cache.Add(props, viewport)
	return viewport, nil
}

func (c *ViewportCache) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.cache.Len()
}
