package usgs

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/couchcryptid/quake-map-service/internal/domain"
)

// feedEnvelope holds the collection type, the raw features, and the USGS
// "metadata" member, which the GeoJSON FeatureCollection decoder does not
// retain. Features stay raw so one malformed entry cannot fail the feed.
type feedEnvelope struct {
	Type     string `json:"type"`
	Metadata struct {
		Generated int64  `json:"generated"` // ms since epoch
		URL       string `json:"url"`
		Title     string `json:"title"`
		Count     int    `json:"count"`
	} `json:"metadata"`
	Features []json.RawMessage `json:"features"`
}

// ParseFeed decodes a USGS GeoJSON summary feed. Features that do not decode,
// or lack a point geometry, are skipped and counted rather than failing the
// whole feed.
func ParseFeed(data []byte) (domain.Feed, error) {
	var env feedEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return domain.Feed{}, fmt.Errorf("parse feed: %w", err)
	}
	if env.Type != "FeatureCollection" {
		return domain.Feed{}, fmt.Errorf("parse feed: unexpected GeoJSON type %q", env.Type)
	}

	feed := domain.Feed{
		Metadata: domain.FeedMetadata{
			Title: env.Metadata.Title,
			URL:   env.Metadata.URL,
			Count: env.Metadata.Count,
		},
		Quakes: make([]domain.Quake, 0, len(env.Features)),
	}
	if env.Metadata.Generated > 0 {
		feed.Metadata.Generated = time.UnixMilli(env.Metadata.Generated).UTC()
	}

	for _, raw := range env.Features {
		var f geojson.Feature
		if err := json.Unmarshal(raw, &f); err != nil {
			feed.Skipped++
			continue
		}
		q, ok := quakeFromFeature(&f)
		if !ok {
			feed.Skipped++
			continue
		}
		feed.Quakes = append(feed.Quakes, q)
	}
	return feed, nil
}

// quakeFromFeature maps one feed feature. Returns false when the geometry is
// missing, not a point, or empty.
func quakeFromFeature(f *geojson.Feature) (domain.Quake, bool) {
	if f == nil {
		return domain.Quake{}, false
	}
	p, ok := f.Geometry.(*geom.Point)
	if !ok || p == nil || p.Empty() {
		return domain.Quake{}, false
	}

	props := f.Properties
	return domain.Quake{
		ID:        f.ID,
		Magnitude: floatProp(props, "mag"),
		MagType:   stringProp(props, "magType"),
		Place:     strings.TrimSpace(stringProp(props, "place")),
		EventType: stringProp(props, "type"),
		URL:       stringProp(props, "url"),
		Time:      millisProp(props, "time"),
		Updated:   millisProp(props, "updated"),
		Geo: domain.Geo{
			Lon:   p.X(),
			Lat:   p.Y(),
			Depth: p.Z(),
		},
	}, true
}

// floatProp returns nil for absent, null, or non-numeric properties.
func floatProp(props map[string]any, key string) *float64 {
	v, ok := props[key].(float64)
	if !ok {
		return nil
	}
	return &v
}

func stringProp(props map[string]any, key string) string {
	s, _ := props[key].(string)
	return s
}

func millisProp(props map[string]any, key string) time.Time {
	v, ok := props[key].(float64)
	if !ok || v <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(int64(v)).UTC()
}
