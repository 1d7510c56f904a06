// Command showcase simulates a scrolling media feed driving a playback
// coordinator: items become visible and auto-play, the player engine
// reports progress, videos enter the bounded cache, and cleanup evicts
// the ones scrolled far off screen.
//
// Run it from this directory; an optional playback.yaml and PLAYBACK_*
// environment variables tune the cache.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-drift/playback/pkg/playback"
)

const configPath = "playback.yaml"

func main() {
	cfg, err := playback.Resolve(configPath)
	if err != nil {
		log.Fatalf("resolve config: %v", err)
	}
	coord := playback.NewWithOptions(playback.Options{Config: cfg})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := playback.Watch(ctx, configPath, coord); err != nil {
		log.Printf("config watch disabled: %v", err)
	}

	unsubscribe := coord.AddListener(func(ch playback.Change) {
		if ch.Key != "" {
			log.Printf("change: %-13s key=%s", ch.Op, ch.Key)
		} else {
			log.Printf("change: %s", ch.Op)
		}
	})
	defer unsubscribe()

	log.Printf("coordinator ready: cache cap %d, retention %s",
		cfg.MaxCachedVideos, cfg.RetentionWindow)

	// Scroll through a feed of videos. Each item that becomes visible
	// auto-plays, pausing the previous one; the engine loads it into
	// the cache and ticks progress while it is on screen.
	for i := 1; i <= 7; i++ {
		key := playback.Key(fmt.Sprintf("video-%d", i))

		coord.HandleVisibilityChange(key)
		coord.SetLoading(key, true)
		coord.SetVideoLoaded(key, true)
		coord.SetLoading(key, false)
		coord.SetDuration(key, 30*time.Second)
		for tick := 1; tick <= 3; tick++ {
			coord.SetProgress(key, time.Duration(tick)*250*time.Millisecond)
		}

		coord.CleanupVideoCache()
	}

	printCache(coord)

	// The user taps an audio item in the feed; it takes over playback
	// from the visible video.
	coord.PlayOrToggle("audio-episode-12", playback.KindAudio)
	coord.ToggleMute("audio-episode-12")
	coord.ToggleMute("audio-episode-12")
	coord.SetGlobalVolume(0.8)

	if key, kind, ok := coord.Current(); ok {
		log.Printf("now playing: %s (%s), volume %.1f", key, kind, coord.GlobalVolume())
	}

	// The engine hits a network error on the audio stream; tapping the
	// item again retries and clears the error.
	coord.SetError("audio-episode-12", "stream: connection reset")
	coord.PlayOrToggle("audio-episode-12", playback.KindAudio) // pause
	coord.PlayOrToggle("audio-episode-12", playback.KindAudio) // retry

	// Scrolling away from everything pauses the feed; turning
	// auto-play off keeps it silent until the user opts back in.
	coord.HandleVisibilityChange("")
	coord.SetAutoPlay(false)

	printCache(coord)
	coord.Reset()
	log.Printf("reset: %d entries remain", len(coord.Entries()))
}

func printCache(coord *playback.Coordinator) {
	log.Printf("cache: %d loaded", coord.CachedCount())
	for _, e := range coord.Entries() {
		if e.Kind != playback.KindVideo {
			continue
		}
		st := coord.CacheStatus(e.Key)
		log.Printf("  %-8s loaded=%-5t lastAccessed=%s",
			e.Key, st.Loaded, st.LastAccessed.Format(time.TimeOnly))
	}
}
