package playback

import "time"

// Entry is the mutable playback and cache record associated with one
// [Key]. Entries are created lazily the first time a mutating operation
// references their key and live until [Coordinator.Reset]; cache
// eviction only flips the cache flags, it never removes an entry.
//
// Coordinator accessors return copies. Mutating a returned Entry has no
// effect on the coordinator.
type Entry struct {
	// Key identifies the media item this entry belongs to.
	Key Key

	// Kind is learned from the first operation that knows it
	// (PlayOrToggle, SetVideoLoaded) and stays KindUnknown until then.
	Kind Kind

	// Playing is true for at most one entry across the whole
	// coordinator at any time.
	Playing bool

	// Loading, Muted and Completed are independent per-item flags
	// reported by the external player engine.
	Loading   bool
	Muted     bool
	Completed bool

	// Err holds the most recent playback error reported for this item,
	// or "" if none. Starting playback clears it.
	Err string

	// Progress and Duration are the playback position and media length
	// as last reported by the player engine. The coordinator stores
	// them verbatim and enforces no relationship between them.
	Progress time.Duration
	Duration time.Duration

	// ShowOverlay controls the tap-to-play overlay of video items. It
	// is kept in lockstep with Playing for videos: hidden while
	// playing, shown while paused. Meaningless for audio.
	ShowOverlay bool

	// VideoLoaded marks the entry as resident in the video cache.
	// LoadedAt and LastAccessedAt are the cache bookkeeping stamps used
	// by eviction; both are zero for entries never loaded.
	VideoLoaded    bool
	LoadedAt       time.Time
	LastAccessedAt time.Time
}

// EntryChanges describes a partial update applied by
// [Coordinator.Update]. Nil fields are left untouched. The playback
// flag itself is deliberately absent: play and pause transitions go
// through [Coordinator.PlayOrToggle] and [Coordinator.Pause] so the
// single-player invariant cannot be bypassed.
type EntryChanges struct {
	Loading     *bool
	Muted       *bool
	Completed   *bool
	Err         *string
	Progress    *time.Duration
	Duration    *time.Duration
	ShowOverlay *bool
}

// CacheStatus is the read-only cache view of one entry returned by
// [Coordinator.CacheStatus]. Unknown keys report the zero value.
type CacheStatus struct {
	Loaded       bool
	LoadedAt     time.Time
	LastAccessed time.Time
}
