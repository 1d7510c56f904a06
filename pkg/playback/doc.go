// Package playback coordinates media playback across an application.
//
// A [Coordinator] tracks which single media item is actively playing,
// holds per-item playback metadata, and manages a bounded in-memory
// cache of loaded video entries with time- and count-based eviction.
// It enforces one rule above all others: at most one item plays at a
// time. Starting playback of any item pauses whatever was playing
// before.
//
// The coordinator does not decode, render, or transport media. The host
// application's player engine reports progress, duration, buffering and
// errors back through the setters ([Coordinator.SetProgress],
// [Coordinator.SetError], and friends), and a scrolling feed reports
// which item is on screen through
// [Coordinator.HandleVisibilityChange] to drive visibility-based
// auto-play.
//
// Construct a Coordinator explicitly at the application's composition
// root and pass it to whatever needs it:
//
//	coord := playback.New()
//	unsubscribe := coord.AddListener(func(ch playback.Change) {
//	    // refresh the UI
//	})
//	defer unsubscribe()
//
//	coord.PlayOrToggle("video-42", playback.KindVideo)
//
// All methods are safe for concurrent use. Mutations are applied
// atomically and listeners are notified synchronously after each
// mutation, so a listener always observes the fully committed state.
package playback
