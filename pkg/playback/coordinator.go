package playback

import "sync"

// Coordinator is a process-wide playback state machine. It owns the
// entry map, the single "currently playing" pointer, global playback
// settings, and the bounded video cache.
//
// Create one with [New] or [NewWithOptions] at the application's
// composition root and share it by reference. All methods are safe for
// concurrent use; each mutation is applied atomically under an internal
// lock and observed in full by every subsequent read. When two call
// sites race, the last writer wins.
//
// Every operation is total: unknown keys are created with default state
// rather than rejected, out-of-range volume is clamped, and nothing
// here returns an error. Fallible work (network, decode, hardware)
// happens in the external player engine, which reports outcomes back
// through [Coordinator.SetError] and the other setters.
type Coordinator struct {
	mu    sync.Mutex
	clock Clock
	cfg   Config

	entries     map[Key]*Entry
	currentKey  Key // "" when nothing is playing
	currentKind Kind
	autoPlay    bool
	volume      float64
	visible     Key // "" when nothing is reported visible

	listeners    map[int]func(Change)
	nextListener int
}

// Options configures a [Coordinator] at construction time.
type Options struct {
	// Config supplies cache tuning and initial playback settings. The
	// zero value means [DefaultConfig]. Build custom configs by
	// overriding fields of DefaultConfig so unset fields keep their
	// documented defaults.
	Config Config

	// Clock overrides the time source used for cache bookkeeping.
	// Nil means the system clock.
	Clock Clock
}

// New creates a coordinator with [DefaultConfig] and the system clock.
func New() *Coordinator {
	return NewWithOptions(Options{})
}

// NewWithOptions creates a coordinator from explicit options.
func NewWithOptions(o Options) *Coordinator {
	cfg := o.Config
	if cfg == (Config{}) {
		cfg = DefaultConfig()
	}
	cfg = cfg.normalized()

	clock := o.Clock
	if clock == nil {
		clock = systemClock{}
	}

	return &Coordinator{
		clock:     clock,
		cfg:       cfg,
		entries:   make(map[Key]*Entry),
		autoPlay:  cfg.AutoPlay,
		volume:    cfg.GlobalVolume,
		listeners: make(map[int]func(Change)),
	}
}

// PlayOrToggle starts playback of the entry at key, or pauses it if it
// is already the one playing. Starting pauses every other entry first,
// clears the entry's error, and for video hides the tap-to-play
// overlay. After the call at most one entry is playing and it matches
// [Coordinator.Current].
//
// Unknown keys are created with default state. An empty key is a no-op.
func (c *Coordinator) PlayOrToggle(key Key, kind Kind) {
	if key == "" {
		return
	}
	c.mu.Lock()
	e := c.entryLocked(key, kind)
	var ch Change
	if e.Playing {
		c.pauseEntryLocked(e)
		if c.currentKey == key {
			c.clearCurrentLocked()
		}
		ch = Change{Op: OpPause, Key: key}
	} else {
		c.startLocked(key, kind)
		ch = Change{Op: OpPlay, Key: key}
	}
	ls := c.listenersLocked()
	c.mu.Unlock()
	deliver(ls, ch)
}

// Pause pauses the named entry if it exists and is playing; for video
// it re-shows the overlay. Unknown keys are a no-op — pausing something
// that never played does not create it.
func (c *Coordinator) Pause(key Key) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok || !e.Playing {
		c.mu.Unlock()
		return
	}
	c.pauseEntryLocked(e)
	if c.currentKey == key {
		c.clearCurrentLocked()
	}
	ls := c.listenersLocked()
	c.mu.Unlock()
	deliver(ls, Change{Op: OpPause, Key: key})
}

// PauseAll pauses every entry and clears the current pointer.
// Idempotent; calling it with nothing playing notifies no one.
func (c *Coordinator) PauseAll() {
	c.mu.Lock()
	changed := c.pauseAllLocked()
	ls := c.listenersLocked()
	c.mu.Unlock()
	if changed {
		deliver(ls, Change{Op: OpPauseAll})
	}
}

// Update merges the non-nil fields of changes into the entry at key,
// creating it with default state first if absent. This is the generic
// form behind [Coordinator.SetLoading], [Coordinator.SetError],
// [Coordinator.SetProgress], [Coordinator.SetDuration],
// [Coordinator.SetCompleted] and [Coordinator.SetOverlay].
//
// An empty key is a no-op.
func (c *Coordinator) Update(key Key, changes EntryChanges) {
	if key == "" {
		return
	}
	c.mu.Lock()
	e := c.entryLocked(key, KindUnknown)
	if changes.Loading != nil {
		e.Loading = *changes.Loading
	}
	if changes.Muted != nil {
		e.Muted = *changes.Muted
	}
	if changes.Completed != nil {
		e.Completed = *changes.Completed
	}
	if changes.Err != nil {
		e.Err = *changes.Err
	}
	if changes.Progress != nil {
		e.Progress = *changes.Progress
	}
	if changes.Duration != nil {
		e.Duration = *changes.Duration
	}
	if changes.ShowOverlay != nil {
		e.ShowOverlay = *changes.ShowOverlay
	}
	ls := c.listenersLocked()
	c.mu.Unlock()
	deliver(ls, Change{Op: OpUpdate, Key: key})
}

// ToggleMute flips the mute flag of the entry at key, creating the
// entry with default state if absent, the same as every other setter.
func (c *Coordinator) ToggleMute(key Key) {
	if key == "" {
		return
	}
	c.mu.Lock()
	e := c.entryLocked(key, KindUnknown)
	e.Muted = !e.Muted
	ls := c.listenersLocked()
	c.mu.Unlock()
	deliver(ls, Change{Op: OpToggleMute, Key: key})
}

// SetAutoPlay enables or disables visibility-driven auto-play.
// Disabling also pauses everything and forgets the visible item, so a
// feed that turns auto-play off goes silent immediately. Enabling only
// sets the flag; nothing starts playing until the next visibility
// report.
func (c *Coordinator) SetAutoPlay(enabled bool) {
	c.mu.Lock()
	changed := c.autoPlay != enabled
	c.autoPlay = enabled
	if !enabled {
		if c.pauseAllLocked() {
			changed = true
		}
		if c.visible != "" {
			c.visible = ""
			changed = true
		}
	}
	ls := c.listenersLocked()
	c.mu.Unlock()
	if changed {
		deliver(ls, Change{Op: OpAutoPlay})
	}
}

// SetGlobalVolume stores the global volume, clamped into [0, 1]. The
// coordinator does not push volume to individual items; applying it is
// the rendering layer's job.
func (c *Coordinator) SetGlobalVolume(v float64) {
	c.mu.Lock()
	c.volume = clampUnit(v)
	ls := c.listenersLocked()
	c.mu.Unlock()
	deliver(ls, Change{Op: OpVolume})
}

// HandleVisibilityChange is the entry point for a scrolling feed's
// viewport tracker. It records which item is currently on screen and
// enforces "only the visible video auto-plays": a non-empty key starts
// that item as video (pausing everything else), an empty key pauses
// everything. Audio items are never auto-started by visibility.
//
// Repeated reports of the same key are de-duplicated, and the whole
// call is a no-op while auto-play is disabled.
func (c *Coordinator) HandleVisibilityChange(key Key) {
	c.mu.Lock()
	if !c.autoPlay || key == c.visible {
		c.mu.Unlock()
		return
	}
	c.visible = key
	if key == "" {
		c.pauseAllLocked()
	} else {
		e := c.entryLocked(key, KindVideo)
		// Idempotent start: if the visible item is already playing,
		// leave it alone rather than toggling it off. Entries known to
		// be audio are never auto-started by visibility.
		if !e.Playing && e.Kind != KindAudio {
			c.startLocked(key, KindVideo)
		}
	}
	ls := c.listenersLocked()
	c.mu.Unlock()
	deliver(ls, Change{Op: OpVisibility, Key: key})
}

// Reset restores the coordinator to its initial empty state: no
// entries, nothing playing, auto-play and volume back to their
// configured defaults. Listeners survive and are notified once.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	c.entries = make(map[Key]*Entry)
	c.clearCurrentLocked()
	c.autoPlay = c.cfg.AutoPlay
	c.volume = c.cfg.GlobalVolume
	c.visible = ""
	ls := c.listenersLocked()
	c.mu.Unlock()
	deliver(ls, Change{Op: OpReset})
}

// Entry returns a copy of the entry at key, reporting whether it
// exists.
func (c *Coordinator) Entry(key Key) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Entries returns copies of all entries in unspecified order.
func (c *Coordinator) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, *e)
	}
	return out
}

// Current returns the key and kind of the playing entry, or ok=false
// when nothing is playing.
func (c *Coordinator) Current() (key Key, kind Kind, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.currentKey == "" {
		return "", KindUnknown, false
	}
	return c.currentKey, c.currentKind, true
}

// AutoPlay reports whether visibility-driven auto-play is enabled.
func (c *Coordinator) AutoPlay() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.autoPlay
}

// GlobalVolume returns the stored global volume in [0, 1].
func (c *Coordinator) GlobalVolume() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.volume
}

// Visible returns the key last reported visible, or ok=false when no
// item is visible.
func (c *Coordinator) Visible() (Key, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.visible == "" {
		return "", false
	}
	return c.visible, true
}

// entryLocked returns the entry for key, creating it with default state
// if absent. A freshly created video entry starts paused with the
// overlay shown. Entries created before their kind is known adopt the
// first concrete kind they are referenced with.
func (c *Coordinator) entryLocked(key Key, kind Kind) *Entry {
	e, ok := c.entries[key]
	if !ok {
		e = &Entry{
			Key:         key,
			Kind:        kind,
			ShowOverlay: kind == KindVideo,
		}
		c.entries[key] = e
		return e
	}
	if e.Kind == KindUnknown && kind != KindUnknown {
		e.Kind = kind
		if kind == KindVideo && !e.Playing {
			e.ShowOverlay = true
		}
	}
	return e
}

// startLocked makes key the single playing entry: every other entry is
// paused, the target starts playing with its error cleared, and for
// video the overlay is hidden.
func (c *Coordinator) startLocked(key Key, kind Kind) {
	e := c.entryLocked(key, kind)
	for k, other := range c.entries {
		if k != key {
			c.pauseEntryLocked(other)
		}
	}
	e.Playing = true
	e.Err = ""
	if e.Kind == KindVideo {
		e.ShowOverlay = false
	}
	c.currentKey = key
	c.currentKind = e.Kind
}

// pauseEntryLocked pauses a single entry, re-showing the overlay for
// video. It does not touch the current pointer.
func (c *Coordinator) pauseEntryLocked(e *Entry) {
	if !e.Playing {
		return
	}
	e.Playing = false
	if e.Kind == KindVideo {
		e.ShowOverlay = true
	}
}

// pauseAllLocked pauses every entry and clears the current pointer,
// reporting whether anything changed.
func (c *Coordinator) pauseAllLocked() bool {
	changed := false
	for _, e := range c.entries {
		if e.Playing {
			c.pauseEntryLocked(e)
			changed = true
		}
	}
	if c.currentKey != "" {
		c.clearCurrentLocked()
		changed = true
	}
	return changed
}

func (c *Coordinator) clearCurrentLocked() {
	c.currentKey = ""
	c.currentKind = KindUnknown
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
