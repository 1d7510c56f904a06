// Package errors provides structured error reporting for the playback
// library. The coordinator's own operations never fail; this package
// carries the failures around it — config loading, config watching, and
// panicking subscribers — to a swappable global handler.
package errors

import (
	"fmt"
	"time"
)

// Kind identifies the category of an error.
type Kind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown Kind = iota
	// KindConfig indicates a configuration load or parse failure.
	KindConfig
	// KindWatch indicates a config file watcher failure.
	KindWatch
	// KindListener indicates a recovered panic in a change listener.
	KindListener
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindWatch:
		return "watch"
	case KindListener:
		return "listener"
	default:
		return "unknown"
	}
}

// Error represents a structured error in the playback library.
type Error struct {
	// Op is the operation that failed (e.g., "playback.Watch").
	Op string
	// Kind categorizes the error.
	Kind Kind
	// Err is the underlying error.
	Err error
	// Key is the media key involved, if applicable.
	Key string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *Error) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s [%s] key=%s: %v", e.Op, e.Kind, e.Key, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Handler receives errors reported by the playback library.
type Handler interface {
	// HandleError is called when an error occurs.
	HandleError(err *Error)
}
