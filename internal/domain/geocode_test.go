package domain

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

// --- mock geocoder ---

type mockGeocoder struct {
	result GeocodingResult
	err    error
	calls  int
}

func (m *mockGeocoder) ReverseGeocode(_ context.Context, _, _ float64) (GeocodingResult, error) {
	m.calls++
	return m.result, m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- tests ---

func TestEnrichPlace_FeedPlaceKept(t *testing.T) {
	geo := &mockGeocoder{result: GeocodingResult{FormattedAddress: "somewhere else"}}
	q := Quake{ID: "ci40000001", Place: "10 km SSW of Idyllwild, CA"}

	result := EnrichPlace(context.Background(), q, geo, discardLogger())

	assert.Equal(t, "10 km SSW of Idyllwild, CA", result.Place)
	assert.Equal(t, PlaceSourceFeed, result.PlaceSource)
	assert.Equal(t, 0, geo.calls)
}

func TestEnrichPlace_NilGeocoder(t *testing.T) {
	q := Quake{ID: "ci40000001"}

	result := EnrichPlace(context.Background(), q, nil, discardLogger())

	assert.Empty(t, result.Place)
	assert.Equal(t, PlaceSourceNone, result.PlaceSource)
}

func TestEnrichPlace_ReverseGeocode(t *testing.T) {
	geo := &mockGeocoder{result: GeocodingResult{
		FormattedAddress: "Ridgecrest, California, United States",
		PlaceName:        "Ridgecrest",
		Confidence:       0.9,
	}}
	q := Quake{ID: "ci40000002", Geo: Geo{Lat: 35.62, Lon: -117.67, Depth: 8}}

	result := EnrichPlace(context.Background(), q, geo, discardLogger())

	assert.Equal(t, "Ridgecrest, California, United States", result.Place)
	assert.Equal(t, PlaceSourceReverse, result.PlaceSource)
	assert.Equal(t, 1, geo.calls)
}

func TestEnrichPlace_WhitespacePlaceTriggersLookup(t *testing.T) {
	geo := &mockGeocoder{result: GeocodingResult{FormattedAddress: "Anchorage, Alaska"}}
	q := Quake{ID: "ak0001", Place: "   "}

	result := EnrichPlace(context.Background(), q, geo, discardLogger())

	assert.Equal(t, "Anchorage, Alaska", result.Place)
	assert.Equal(t, 1, geo.calls)
}

func TestEnrichPlace_GeocoderError(t *testing.T) {
	geo := &mockGeocoder{err: errors.New("timeout")}
	q := Quake{ID: "ci40000003", Geo: Geo{Lat: 35.62, Lon: -117.67}}

	result := EnrichPlace(context.Background(), q, geo, discardLogger())

	assert.Empty(t, result.Place)
	assert.Equal(t, PlaceSourceFailed, result.PlaceSource)
}

func TestEnrichPlace_EmptyResult(t *testing.T) {
	geo := &mockGeocoder{}
	q := Quake{ID: "us70000004", Geo: Geo{Lat: -55.1, Lon: -28.3}}

	result := EnrichPlace(context.Background(), q, geo, discardLogger())

	assert.Empty(t, result.Place)
	assert.Equal(t, PlaceSourceNone, result.PlaceSource)
	assert.Contains(t, PopupText(result), "Location: Unknown location")
}
