package records

import (
	"fmt"

	"github.com/oy3o/recsplit"
)

const (
	// BeatAccent marks the first beat of a bar.
	BeatAccent uint16 = 1 << iota
	// BeatMuted marks a slice whose audio is silenced.
	BeatMuted
)

// BeatPayload is the wire layout of a tempo event for one slice of the
// rotating music timeline.
type BeatPayload struct {
	Slice    uint16
	Flags    uint16
	Tempo    float32 // beats per minute
	AtMillis uint64  // session clock
}

// Beat is the record kind for BeatPayload. Its size comes from the layout.
type Beat = recsplit.Fixed[BeatPayload]

func NewBeat(slice uint16, tempo float32, atMillis uint64, flags uint16) Beat {
	return Beat{Payload: BeatPayload{Slice: slice, Flags: flags, Tempo: tempo, AtMillis: atMillis}}
}

func (b BeatPayload) String() string {
	return fmt.Sprintf("slice=%d tempo=%g at=%dms flags=%#04x", b.Slice, b.Tempo, b.AtMillis, b.Flags)
}
