// Package testing provides test helpers for the playback library.
//
// # Deterministic Time
//
// The coordinator's cache eviction depends on wall-clock time. Inject a
// [FakeClock] to drive the retention window deterministically:
//
//	clk := playbacktest.NewFakeClock()
//	coord := playback.NewWithOptions(playback.Options{Clock: clk})
//
//	coord.SetVideoLoaded("v1", true)
//	clk.Advance(11 * time.Minute)
//	coord.CleanupVideoCache() // "v1" is now stale and evicted
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import playbacktest "github.com/go-drift/playback/pkg/testing"
package testing
