package playback

import (
	"sort"
	"time"
)

// SetVideoLoaded marks the entry at key as resident in (or evicted
// from) the video cache. Loading stamps LoadedAt; both directions stamp
// LastAccessedAt. The entry is created with default video state if
// absent. An empty key is a no-op.
func (c *Coordinator) SetVideoLoaded(key Key, loaded bool) {
	if key == "" {
		return
	}
	c.mu.Lock()
	now := c.clock.Now()
	e := c.entryLocked(key, KindVideo)
	e.VideoLoaded = loaded
	if loaded {
		e.LoadedAt = now
	}
	e.LastAccessedAt = now
	ls := c.listenersLocked()
	c.mu.Unlock()
	deliver(ls, Change{Op: OpVideoLoaded, Key: key})
}

// Touch stamps LastAccessedAt on an existing entry, refreshing its
// position in the eviction order. Unknown keys are a no-op.
func (c *Coordinator) Touch(key Key) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		c.mu.Unlock()
		return
	}
	e.LastAccessedAt = c.clock.Now()
	ls := c.listenersLocked()
	c.mu.Unlock()
	deliver(ls, Change{Op: OpTouch, Key: key})
}

// CleanupVideoCache evicts loaded video entries that fall outside the
// cache budget. Loaded entries are ranked by LastAccessedAt, most
// recent first (entries never stamped rank oldest); entries beyond the
// configured cap and entries idle longer than the retention window are
// evicted, except that a currently playing entry is always retained.
//
// Eviction clears VideoLoaded and LoadedAt only; progress, completion
// and the rest of the entry survive. Run it on demand, typically after
// each load or on a timer.
func (c *Coordinator) CleanupVideoCache() {
	c.mu.Lock()
	now := c.clock.Now()

	loaded := make([]*Entry, 0, len(c.entries))
	for _, e := range c.entries {
		if e.VideoLoaded {
			loaded = append(loaded, e)
		}
	}
	sort.SliceStable(loaded, func(i, j int) bool {
		return loaded[i].LastAccessedAt.After(loaded[j].LastAccessedAt)
	})

	evicted := 0
	for rank, e := range loaded {
		stale := e.LastAccessedAt.IsZero() ||
			now.Sub(e.LastAccessedAt) > c.cfg.RetentionWindow
		overCap := rank >= c.cfg.MaxCachedVideos
		if !stale && !overCap {
			continue
		}
		if e.Playing {
			// Playing entries are never evicted, stale or not.
			continue
		}
		e.VideoLoaded = false
		e.LoadedAt = time.Time{}
		evicted++
	}

	ls := c.listenersLocked()
	c.mu.Unlock()
	if evicted > 0 {
		deliver(ls, Change{Op: OpCacheCleanup})
	}
}

// CacheStatus returns the cache view of the entry at key. Unknown keys
// report the zero value.
func (c *Coordinator) CacheStatus(key Key) CacheStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return CacheStatus{}
	}
	return CacheStatus{
		Loaded:       e.VideoLoaded,
		LoadedAt:     e.LoadedAt,
		LastAccessed: e.LastAccessedAt,
	}
}

// CachedCount returns the number of entries currently marked loaded.
func (c *Coordinator) CachedCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, e := range c.entries {
		if e.VideoLoaded {
			n++
		}
	}
	return n
}
