package domain

import (
	"context"
	"log/slog"
	"strings"
)

// EnrichPlace fills in a missing place name by reverse geocoding the quake's
// epicentre. Quakes that already carry a place are marked as feed-sourced and
// returned untouched. With a nil geocoder, or when the lookup fails or finds
// nothing, the place stays empty and the popup falls back to "Unknown location".
func EnrichPlace(ctx context.Context, q Quake, geocoder Geocoder, logger *slog.Logger) Quake {
	if strings.TrimSpace(q.Place) != "" {
		q.PlaceSource = PlaceSourceFeed
		return q
	}
	if geocoder == nil {
		q.PlaceSource = PlaceSourceNone
		return q
	}

	result, err := geocoder.ReverseGeocode(ctx, q.Geo.Lat, q.Geo.Lon)
	if err != nil {
		logger.Warn("reverse geocoding failed",
			"quake_id", q.ID,
			"lat", q.Geo.Lat,
			"lon", q.Geo.Lon,
			"error", err,
		)
		q.PlaceSource = PlaceSourceFailed
		return q
	}
	if result.FormattedAddress == "" {
		q.PlaceSource = PlaceSourceNone
		return q
	}

	q.Place = result.FormattedAddress
	q.PlaceSource = PlaceSourceReverse
	return q
}
