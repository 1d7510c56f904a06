package playback

// Key is an opaque, stable identifier for one playable media item,
// typically derived from the item's content URL. Keys must be non-empty;
// operations called with an empty key are no-ops.
type Key string

// Kind distinguishes video from audio items. The overlay flag and the
// video cache are only meaningful for [KindVideo]; visibility-driven
// auto-play never starts [KindAudio] items.
type Kind int

const (
	// KindUnknown indicates the kind has not been learned yet. Entries
	// created by metadata setters before the first play start here.
	KindUnknown Kind = iota

	// KindVideo indicates a video item with a visual surface.
	KindVideo

	// KindAudio indicates an audio-only item.
	KindAudio
)

// String returns a human-readable label for the kind.
func (k Kind) String() string {
	switch k {
	case KindVideo:
		return "video"
	case KindAudio:
		return "audio"
	default:
		return "unknown"
	}
}
