package domain

import "time"

// Place sources recorded on a Quake after enrichment.
const (
	PlaceSourceFeed    = "feed"
	PlaceSourceReverse = "reverse"
	PlaceSourceFailed  = "failed"
	PlaceSourceNone    = "none"
)

// Geo holds a WGS-84 coordinate with depth in kilometers.
type Geo struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Depth float64 `json:"depth"`
}

// Quake is a single earthquake record decoded from the feed.
type Quake struct {
	ID        string    `json:"id"`
	Magnitude *float64  `json:"mag"` // nil when the feed publishes "mag": null
	MagType   string    `json:"mag_type,omitempty"`
	Place     string    `json:"place,omitempty"`
	EventType string    `json:"type,omitempty"` // "earthquake", "quarry blast", "explosion", ...
	URL       string    `json:"url,omitempty"`
	Time      time.Time `json:"time"`
	Updated   time.Time `json:"updated"`
	Geo       Geo       `json:"geo"`

	PlaceSource string `json:"place_source,omitempty"`
}

// MagnitudeOrZero returns the magnitude, treating a missing value as zero.
func (q Quake) MagnitudeOrZero() float64 {
	if q.Magnitude == nil {
		return 0
	}
	return *q.Magnitude
}

// FeedMetadata mirrors the "metadata" object of a USGS summary feed.
type FeedMetadata struct {
	Title     string    `json:"title"`
	URL       string    `json:"url,omitempty"`
	Generated time.Time `json:"generated"`
	Count     int       `json:"count"`
}

// Feed is a decoded feed document. Skipped counts features that could not be
// turned into a Quake (missing or non-point geometry).
type Feed struct {
	Metadata FeedMetadata
	Quakes   []Quake
	Skipped  int
}
