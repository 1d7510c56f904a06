package playback

import "time"

// The named setters below are the interface the external player engine
// calls as playback advances. Each one is [Coordinator.Update] with a
// single field set; all of them create the entry with default state if
// it does not exist yet.

// SetLoading records whether the player engine is still buffering the
// item.
func (c *Coordinator) SetLoading(key Key, loading bool) {
	c.Update(key, EntryChanges{Loading: &loading})
}

// SetError records a playback error reported by the player engine.
// Pass "" to clear it; starting playback via
// [Coordinator.PlayOrToggle] also clears it.
func (c *Coordinator) SetError(key Key, msg string) {
	c.Update(key, EntryChanges{Err: &msg})
}

// SetProgress records the current playback position.
func (c *Coordinator) SetProgress(key Key, progress time.Duration) {
	c.Update(key, EntryChanges{Progress: &progress})
}

// SetDuration records the media length.
func (c *Coordinator) SetDuration(key Key, duration time.Duration) {
	c.Update(key, EntryChanges{Duration: &duration})
}

// SetCompleted records whether playback reached the end of the media.
func (c *Coordinator) SetCompleted(key Key, completed bool) {
	c.Update(key, EntryChanges{Completed: &completed})
}

// SetOverlay sets the overlay flag directly, for UI flows that show or
// hide controls outside the play/pause coupling (for example a
// temporary controls reveal on tap).
func (c *Coordinator) SetOverlay(key Key, show bool) {
	c.Update(key, EntryChanges{ShowOverlay: &show})
}
