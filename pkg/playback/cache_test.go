package playback

import (
	"fmt"
	"testing"
	"time"

	playbacktest "github.com/go-drift/playback/pkg/testing"
)

func newCachedCoordinator(t *testing.T) (*Coordinator, *playbacktest.FakeClock) {
	t.Helper()
	clk := playbacktest.NewFakeClock()
	c := NewWithOptions(Options{Clock: clk})
	return c, clk
}

func TestCoordinator_SetVideoLoaded_StampsTimestamps(t *testing.T) {
	c, clk := newCachedCoordinator(t)
	loadTime := clk.Now()

	c.SetVideoLoaded("v1", true)

	st := c.CacheStatus("v1")
	if !st.Loaded {
		t.Fatal("expected entry loaded")
	}
	if !st.LoadedAt.Equal(loadTime) {
		t.Errorf("LoadedAt = %v, want %v", st.LoadedAt, loadTime)
	}
	if !st.LastAccessed.Equal(loadTime) {
		t.Errorf("LastAccessed = %v, want %v", st.LastAccessed, loadTime)
	}

	e, _ := c.Entry("v1")
	if e.Kind != KindVideo {
		t.Errorf("cache load implies video, got kind %v", e.Kind)
	}
}

func TestCoordinator_SetVideoLoaded_UnloadKeepsLoadedAt(t *testing.T) {
	c, clk := newCachedCoordinator(t)

	c.SetVideoLoaded("v1", true)
	loadTime := clk.Now()
	clk.Advance(time.Minute)
	c.SetVideoLoaded("v1", false)

	st := c.CacheStatus("v1")
	if st.Loaded {
		t.Error("expected entry unloaded")
	}
	if !st.LoadedAt.Equal(loadTime) {
		t.Errorf("LoadedAt = %v, want original %v", st.LoadedAt, loadTime)
	}
	if !st.LastAccessed.Equal(clk.Now()) {
		t.Error("expected LastAccessed re-stamped on unload")
	}
}

func TestCoordinator_Touch(t *testing.T) {
	c, clk := newCachedCoordinator(t)

	c.SetVideoLoaded("v1", true)
	clk.Advance(5 * time.Minute)
	c.Touch("v1")

	if st := c.CacheStatus("v1"); !st.LastAccessed.Equal(clk.Now()) {
		t.Errorf("LastAccessed = %v, want %v", st.LastAccessed, clk.Now())
	}
}

func TestCoordinator_Touch_UnknownKeyDoesNotCreate(t *testing.T) {
	c, _ := newCachedCoordinator(t)

	c.Touch("ghost")

	if _, ok := c.Entry("ghost"); ok {
		t.Error("Touch must not create entries")
	}
}

func TestCoordinator_CacheStatus_UnknownKey(t *testing.T) {
	c, _ := newCachedCoordinator(t)

	st := c.CacheStatus("ghost")
	if st.Loaded || !st.LoadedAt.IsZero() || !st.LastAccessed.IsZero() {
		t.Errorf("expected zero status for unknown key, got %+v", st)
	}
}

// Six loads, none playing: the oldest by access falls past the default
// cap of five and is evicted; the rest stay.
func TestCoordinator_CleanupVideoCache_EvictsBeyondCap(t *testing.T) {
	c, clk := newCachedCoordinator(t)

	for i := 1; i <= 6; i++ {
		c.SetVideoLoaded(Key(fmt.Sprintf("k%d", i)), true)
		clk.Advance(time.Second)
	}

	c.CleanupVideoCache()

	if st := c.CacheStatus("k1"); st.Loaded {
		t.Error("expected k1 (oldest) evicted")
	}
	for i := 2; i <= 6; i++ {
		key := Key(fmt.Sprintf("k%d", i))
		if st := c.CacheStatus(key); !st.Loaded {
			t.Errorf("expected %s retained", key)
		}
	}
	if n := c.CachedCount(); n != 5 {
		t.Errorf("CachedCount = %d, want 5", n)
	}
}

func TestCoordinator_CleanupVideoCache_EvictsStale(t *testing.T) {
	c, clk := newCachedCoordinator(t)

	c.SetVideoLoaded("stale", true)
	clk.Advance(11 * time.Minute)
	c.SetVideoLoaded("fresh", true)

	c.CleanupVideoCache()

	if c.CacheStatus("stale").Loaded {
		t.Error("expected stale entry evicted despite being under the cap")
	}
	if !c.CacheStatus("fresh").Loaded {
		t.Error("expected fresh entry retained")
	}
}

func TestCoordinator_CleanupVideoCache_ExactWindowBoundaryRetained(t *testing.T) {
	c, clk := newCachedCoordinator(t)

	c.SetVideoLoaded("edge", true)
	clk.Advance(DefaultRetentionWindow) // exactly at the window, not beyond

	c.CleanupVideoCache()

	if !c.CacheStatus("edge").Loaded {
		t.Error("entry exactly at the retention window must be retained")
	}
}

func TestCoordinator_CleanupVideoCache_PlayingEntryNeverEvicted(t *testing.T) {
	c, clk := newCachedCoordinator(t)

	c.SetVideoLoaded("pinned", true)
	c.PlayOrToggle("pinned", KindVideo)
	clk.Advance(time.Hour) // far beyond the retention window

	for i := 1; i <= 5; i++ {
		c.SetVideoLoaded(Key(fmt.Sprintf("k%d", i)), true)
		clk.Advance(time.Second)
	}

	c.CleanupVideoCache()

	if !c.CacheStatus("pinned").Loaded {
		t.Error("playing entry must never be evicted, stale or not")
	}
}

func TestCoordinator_CleanupVideoCache_EvictionPreservesEntryFields(t *testing.T) {
	c, clk := newCachedCoordinator(t)

	c.SetVideoLoaded("v1", true)
	c.SetProgress("v1", 42*time.Second)
	c.SetCompleted("v1", true)
	clk.Advance(11 * time.Minute)

	c.CleanupVideoCache()

	e, ok := c.Entry("v1")
	if !ok {
		t.Fatal("eviction must not delete the entry")
	}
	if e.VideoLoaded {
		t.Error("expected VideoLoaded cleared")
	}
	if !e.LoadedAt.IsZero() {
		t.Error("expected LoadedAt cleared")
	}
	if e.Progress != 42*time.Second || !e.Completed {
		t.Errorf("expected progress and completion to survive eviction, got %+v", e)
	}
}

func TestCoordinator_CleanupVideoCache_NothingToEvict(t *testing.T) {
	c, clk := newCachedCoordinator(t)

	var changes []Change
	unsub := c.AddListener(func(ch Change) { changes = append(changes, ch) })
	defer unsub()

	c.SetVideoLoaded("v1", true)
	clk.Advance(time.Minute)
	before := len(changes)

	c.CleanupVideoCache()

	if len(changes) != before {
		t.Error("cleanup with nothing to evict must not notify")
	}
	if !c.CacheStatus("v1").Loaded {
		t.Error("expected v1 retained")
	}
}

func TestCoordinator_ApplyConfig_ShrinkingCapTriggersCleanup(t *testing.T) {
	c, clk := newCachedCoordinator(t)

	for i := 1; i <= 5; i++ {
		c.SetVideoLoaded(Key(fmt.Sprintf("k%d", i)), true)
		clk.Advance(time.Second)
	}

	cfg := c.Config()
	cfg.MaxCachedVideos = 2
	c.ApplyConfig(cfg)

	if n := c.CachedCount(); n != 2 {
		t.Errorf("CachedCount = %d after shrinking cap to 2", n)
	}
	for _, key := range []Key{"k4", "k5"} {
		if !c.CacheStatus(key).Loaded {
			t.Errorf("expected most recently accessed %s retained", key)
		}
	}
}

func TestCoordinator_ApplyConfig_KeepsRuntimeSettings(t *testing.T) {
	c, _ := newCachedCoordinator(t)

	c.SetGlobalVolume(0.3)
	c.SetAutoPlay(false)

	cfg := c.Config()
	cfg.RetentionWindow = time.Minute
	c.ApplyConfig(cfg)

	if c.GlobalVolume() != 0.3 {
		t.Error("ApplyConfig must not disturb the live volume")
	}
	if c.AutoPlay() {
		t.Error("ApplyConfig must not disturb the live auto-play flag")
	}
	if c.Config().RetentionWindow != time.Minute {
		t.Error("expected new retention window installed")
	}
}
