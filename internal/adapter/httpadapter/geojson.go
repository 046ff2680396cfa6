package httpadapter

import (
	"encoding/json"
	"fmt"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/couchcryptid/quake-map-service/internal/domain"
)

// encodeSnapshot renders the snapshot as a GeoJSON FeatureCollection of
// [lon, lat, depth] points. Each feature's properties carry the Leaflet path
// options under "style" and the popup HTML under "popup".
func encodeSnapshot(snap *domain.Snapshot) ([]byte, error) {
	fc := geojson.FeatureCollection{
		Features: make([]*geojson.Feature, 0, len(snap.Markers)),
	}
	for _, m := range snap.Markers {
		fc.Features = append(fc.Features, markerFeature(m))
	}

	data, err := json.Marshal(&fc)
	if err != nil {
		return nil, fmt.Errorf("marshal feature collection: %w", err)
	}
	return data, nil
}

func markerFeature(m domain.Marker) *geojson.Feature {
	q := m.Quake
	props := map[string]any{
		"mag":    q.Magnitude,
		"place":  q.Place,
		"depth":  q.Geo.Depth,
		"type":   q.EventType,
		"url":    q.URL,
		"style":  m.Style,
		"popup":  m.Popup,
		"source": q.PlaceSource,
	}
	if !q.Time.IsZero() {
		props["time"] = q.Time.UnixMilli()
	}

	return &geojson.Feature{
		ID:         q.ID,
		Geometry:   geom.NewPointFlat(geom.XYZ, []float64{q.Geo.Lon, q.Geo.Lat, q.Geo.Depth}),
		Properties: props,
	}
}
