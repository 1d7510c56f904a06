package playback

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatch_AppliesConfigOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "playback.yaml")
	if err := os.WriteFile(path, []byte("max_cached_videos: 5\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	c := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := Watch(ctx, path, c); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	if err := os.WriteFile(path, []byte("max_cached_videos: 3\n"), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for c.Config().MaxCachedVideos != 3 {
		select {
		case <-deadline:
			t.Fatalf("config change was not applied, still %+v", c.Config())
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestWatch_MissingDirectory(t *testing.T) {
	c := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	path := filepath.Join(t.TempDir(), "no-such-dir", "playback.yaml")
	if err := Watch(ctx, path, c); err == nil {
		t.Fatal("expected error for unwatchable directory")
	}
}

func TestWatch_InvalidUpdateKeepsPreviousConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "playback.yaml")
	if err := os.WriteFile(path, []byte("max_cached_videos: 4\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Resolve(path)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	c := NewWithOptions(Options{Config: cfg})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := Watch(ctx, path, c); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	// An invalid rewrite must be rejected and the old tuning kept.
	if err := os.WriteFile(path, []byte("max_cached_videos: 0\n"), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	time.Sleep(300 * time.Millisecond)
	if got := c.Config().MaxCachedVideos; got != 4 {
		t.Errorf("MaxCachedVideos = %d, want previous value 4", got)
	}
}
