package domain

import (
	"time"

	"github.com/google/uuid"
)

// Marker is a quake ready to draw: its record, circle style, and popup HTML.
type Marker struct {
	Quake Quake       `json:"quake"`
	Style MarkerStyle `json:"style"`
	Popup string      `json:"popup"`
}

// BuildMarker applies the depth colour, magnitude radius, and popup rules.
func BuildMarker(q Quake) Marker {
	return Marker{
		Quake: q,
		Style: StyleFor(q),
		Popup: PopupText(q),
	}
}

// Snapshot is the set of markers built from one successful feed fetch.
type Snapshot struct {
	ID        string       `json:"id"`
	Metadata  FeedMetadata `json:"metadata"`
	Markers   []Marker     `json:"markers"`
	Skipped   int          `json:"skipped"`
	FetchedAt time.Time    `json:"fetched_at"`
}

// NewSnapshot stamps a fresh snapshot ID and the current time.
func NewSnapshot(meta FeedMetadata, markers []Marker, skipped int) *Snapshot {
	return &Snapshot{
		ID:        uuid.NewString(),
		Metadata:  meta,
		Markers:   markers,
		Skipped:   skipped,
		FetchedAt: clock.Now().UTC(),
	}
}
