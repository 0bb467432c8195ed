package catalog

import (
	"time"

	"github.com/google/uuid"
)

// MillisPerDay is the number of milliseconds in one day, used by the
// staleness filter and anything else reasoning in day units.
const MillisPerDay int64 = 86_400_000

// Outfit is one catalog entry: a normalized JPEG plus its metadata.
//
// Timestamps are epoch milliseconds. LastWornAt == 0 means "never worn".
// Image is immutable after creation; there is no in-place image editing.
type Outfit struct {
	ID         string
	Name       string
	Rating     int
	Favorite   bool
	Tags       []string
	Notes      string
	CreatedAt  int64
	WearCount  int
	LastWornAt int64
	Image      []byte
}

// Clone returns a deep copy of the outfit. Tags and Image are copied so
// callers can hold snapshots (undo slots) without aliasing store state.
func (o Outfit) Clone() Outfit {
	c := o
	if o.Tags != nil {
		c.Tags = append([]string(nil), o.Tags...)
	}
	if o.Image != nil {
		c.Image = append([]byte(nil), o.Image...)
	}
	return c
}

// NeverWorn reports whether the outfit has no recorded wear.
func (o Outfit) NeverWorn() bool {
	return o.LastWornAt == 0
}

// NewID generates a unique record id.
// Uses UUIDv7 so ids are time-sortable as a side benefit; nothing relies on that.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Millis converts a time to epoch milliseconds.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}
