package playback

import "time"

// Clock supplies the current time to the coordinator's cache
// bookkeeping. Production code uses the system clock; tests inject a
// fake to drive the retention window deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
