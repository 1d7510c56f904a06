package playback

import (
	"testing"

	"github.com/go-drift/playback/pkg/errors"
)

type recordingHandler struct {
	errs []*errors.Error
}

func (h *recordingHandler) HandleError(err *errors.Error) {
	h.errs = append(h.errs, err)
}

func TestCoordinator_AddListener_NotifiesSynchronously(t *testing.T) {
	c := New()

	var got []Change
	unsub := c.AddListener(func(ch Change) {
		got = append(got, ch)
		// Re-entrant reads observe the committed state.
		if ch.Op == OpPlay {
			if e, ok := c.Entry(ch.Key); !ok || !e.Playing {
				t.Errorf("listener for %v saw uncommitted state", ch.Op)
			}
		}
	})
	defer unsub()

	c.PlayOrToggle("a", KindVideo)
	c.Pause("a")
	c.SetGlobalVolume(0.5)

	want := []Op{OpPlay, OpPause, OpVolume}
	if len(got) != len(want) {
		t.Fatalf("got %d changes, want %d: %v", len(got), len(want), got)
	}
	for i, op := range want {
		if got[i].Op != op {
			t.Errorf("change %d: got op %q, want %q", i, got[i].Op, op)
		}
	}
	if got[0].Key != "a" {
		t.Errorf("change 0: got key %q, want a", got[0].Key)
	}
}

func TestCoordinator_AddListener_Unsubscribe(t *testing.T) {
	c := New()

	calls := 0
	unsub := c.AddListener(func(Change) { calls++ })

	c.PlayOrToggle("a", KindVideo)
	unsub()
	c.PlayOrToggle("b", KindVideo)

	if calls != 1 {
		t.Errorf("expected 1 call after unsubscribe, got %d", calls)
	}
}

func TestCoordinator_NoOpMutationsDoNotNotify(t *testing.T) {
	c := New()

	calls := 0
	unsub := c.AddListener(func(Change) { calls++ })
	defer unsub()

	c.Pause("ghost")             // unknown key
	c.Touch("ghost")             // unknown key
	c.PauseAll()                 // nothing playing
	c.PlayOrToggle("", 0)        // empty key
	c.CleanupVideoCache()        // nothing loaded
	c.HandleVisibilityChange("") // "" already recorded

	if calls != 0 {
		t.Errorf("expected no notifications for no-op mutations, got %d", calls)
	}
}

func TestCoordinator_ListenerPanicIsContained(t *testing.T) {
	h := &recordingHandler{}
	errors.SetHandler(h)
	defer errors.SetHandler(nil)

	c := New()

	secondCalled := false
	unsub1 := c.AddListener(func(Change) { panic("listener bug") })
	defer unsub1()
	unsub2 := c.AddListener(func(Change) { secondCalled = true })
	defer unsub2()

	c.PlayOrToggle("a", KindVideo) // must not panic through

	if !secondCalled {
		t.Error("a panicking listener must not starve the others")
	}
	if len(h.errs) == 0 {
		t.Fatal("expected the panic to be reported")
	}
	if h.errs[0].Kind != errors.KindListener {
		t.Errorf("reported kind = %v, want listener", h.errs[0].Kind)
	}

	e, _ := c.Entry("a")
	if !e.Playing {
		t.Error("mutation must commit despite the listener panic")
	}
}
