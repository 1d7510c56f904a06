package playback

import (
	"fmt"

	"github.com/go-drift/playback/pkg/errors"
)

// Op names the coordinator operation that produced a [Change].
type Op string

const (
	OpPlay         Op = "play"
	OpPause        Op = "pause"
	OpPauseAll     Op = "pause_all"
	OpUpdate       Op = "update"
	OpToggleMute   Op = "toggle_mute"
	OpAutoPlay     Op = "autoplay"
	OpVolume       Op = "volume"
	OpVisibility   Op = "visibility"
	OpVideoLoaded  Op = "video_loaded"
	OpTouch        Op = "touch"
	OpCacheCleanup Op = "cache_cleanup"
	OpConfig       Op = "config"
	OpReset        Op = "reset"
)

// Change describes one committed mutation. Key is the primary target,
// or "" for coordinator-wide operations such as [OpPauseAll] and
// [OpReset].
type Change struct {
	Op  Op
	Key Key
}

// AddListener subscribes fn to coordinator changes and returns an
// unsubscribe function. Listeners run synchronously on the mutating
// goroutine after the state is committed, so reads from inside a
// listener observe the new state. No batching or debouncing is
// performed.
//
// A panicking listener is reported through the errors package and never
// propagates to the caller of the mutating operation.
func (c *Coordinator) AddListener(fn func(Change)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextListener
	c.nextListener++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// listenersLocked snapshots the current listener set so delivery can
// happen outside the lock.
func (c *Coordinator) listenersLocked() []func(Change) {
	if len(c.listeners) == 0 {
		return nil
	}
	ls := make([]func(Change), 0, len(c.listeners))
	for _, fn := range c.listeners {
		ls = append(ls, fn)
	}
	return ls
}

// deliver invokes each listener with the change, containing panics per
// listener so one misbehaving subscriber cannot break the others or the
// mutator.
func deliver(ls []func(Change), ch Change) {
	for _, fn := range ls {
		func() {
			defer func() {
				if r := recover(); r != nil {
					errors.Report(&errors.Error{
						Op:         "playback.listener",
						Kind:       errors.KindListener,
						Key:        string(ch.Key),
						Err:        fmt.Errorf("listener panic on %s: %v", ch.Op, r),
						StackTrace: errors.CaptureStack(),
					})
				}
			}()
			fn(ch)
		}()
	}
}
