package httpadapter_test

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/quake-map-service/internal/adapter/httpadapter"
	"github.com/couchcryptid/quake-map-service/internal/domain"
)

type stubSource struct {
	snap *domain.Snapshot
}

func (s *stubSource) Current() *domain.Snapshot { return s.snap }

func (s *stubSource) CheckReadiness(_ context.Context) error {
	if s.snap == nil {
		return errors.New("no earthquake snapshot loaded yet")
	}
	return nil
}

var testView = httpadapter.MapView{
	Title:           "Earthquakes, Past Week",
	CenterLat:       40.7,
	CenterLon:       -94.5,
	Zoom:            3,
	TileURL:         "https://{s}.tile.opentopomap.org/{z}/{x}/{y}.png",
	TileAttribution: "OpenTopoMap",
}

func newTestServer(snap *domain.Snapshot) *httpadapter.Server {
	src := &stubSource{snap: snap}
	return httpadapter.NewServer(":0", testView, src, src, slog.Default())
}

func serve(srv *httpadapter.Server, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func testSnapshot() *domain.Snapshot {
	mag := 4.5
	return &domain.Snapshot{
		ID:        "snap-1",
		FetchedAt: time.Date(2026, time.March, 3, 12, 0, 0, 0, time.UTC),
		Markers: []domain.Marker{
			domain.BuildMarker(domain.Quake{
				ID:        "ci40000001",
				Magnitude: &mag,
				Place:     "10 km SSW of Idyllwild, CA",
				EventType: "earthquake",
				Time:      time.UnixMilli(1772535600000).UTC(),
				Geo:       domain.Geo{Lat: 33.6608, Lon: -116.7776, Depth: 10.23},
			}),
			domain.BuildMarker(domain.Quake{
				ID:  "us7000zzzz",
				Geo: domain.Geo{Lat: -55.1, Lon: -28.3, Depth: 95},
			}),
		},
	}
}

func TestHealthzReturns200(t *testing.T) {
	rec := serve(newTestServer(nil), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyz(t *testing.T) {
	assert.Equal(t, http.StatusServiceUnavailable, serve(newTestServer(nil), "/readyz").Code)
	assert.Equal(t, http.StatusOK, serve(newTestServer(testSnapshot()), "/readyz").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	rec := serve(newTestServer(nil), "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestQuakesNotReady(t *testing.T) {
	rec := serve(newTestServer(nil), "/api/quakes")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
}

type featureCollection struct {
	Type     string `json:"type"`
	Features []struct {
		ID       string `json:"id"`
		Type     string `json:"type"`
		Geometry struct {
			Type        string    `json:"type"`
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Mag   *float64           `json:"mag"`
			Place string             `json:"place"`
			Depth float64            `json:"depth"`
			Time  int64              `json:"time"`
			Popup string             `json:"popup"`
			Style domain.MarkerStyle `json:"style"`
		} `json:"properties"`
	} `json:"features"`
}

func TestQuakesGeoJSON(t *testing.T) {
	rec := serve(newTestServer(testSnapshot()), "/api/quakes")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/geo+json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "snap-1", rec.Header().Get("X-Snapshot-Id"))
	assert.Equal(t, "Tue, 03 Mar 2026 12:00:00 GMT", rec.Header().Get("Last-Modified"))

	var fc featureCollection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 2)

	first := fc.Features[0]
	assert.Equal(t, "ci40000001", first.ID)
	assert.Equal(t, "Point", first.Geometry.Type)
	assert.Equal(t, []float64{-116.7776, 33.6608, 10.23}, first.Geometry.Coordinates)
	require.NotNil(t, first.Properties.Mag)
	assert.Equal(t, 4.5, *first.Properties.Mag)
	assert.Equal(t, int64(1772535600000), first.Properties.Time)
	assert.Equal(t, "Magnitude: 4.5<br>Depth: 10.23<br>Location: 10 km SSW of Idyllwild, CA", first.Properties.Popup)
	assert.Equal(t, domain.MarkerStyle{
		Radius: 18, FillColor: domain.ColorLightGreen, Color: domain.StrokeColor,
		Weight: 0.5, Opacity: 0.8, FillOpacity: 0.6, Stroke: true,
	}, first.Properties.Style)

	second := fc.Features[1]
	assert.Nil(t, second.Properties.Mag)
	assert.Equal(t, domain.ColorRed, second.Properties.Style.FillColor)
	assert.Equal(t, 1.0, second.Properties.Style.Radius)
	assert.Contains(t, second.Properties.Popup, "Magnitude: unknown")
}

func TestLegendEndpoint(t *testing.T) {
	rec := serve(newTestServer(nil), "/api/legend")

	require.Equal(t, http.StatusOK, rec.Code)
	var entries []domain.LegendEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 6)
	assert.Equal(t, "-10–10", entries[0].Label)
	assert.Equal(t, domain.ColorGreen, entries[0].Color)
	assert.Equal(t, "90+", entries[5].Label)
	assert.Nil(t, entries[5].Ceil)
}

func TestMapPage(t *testing.T) {
	rec := serve(newTestServer(nil), "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	body := rec.Body.String()
	assert.Contains(t, body, "<title>Earthquakes, Past Week</title>")
	assert.Contains(t, body, "40.7")
	assert.Contains(t, body, "-94.5")
	assert.Contains(t, body, "tile.opentopomap.org")
	assert.Contains(t, body, `position: "bottomright"`)
	assert.Contains(t, body, "L.circleMarker(latlng, feature.properties.style)")
	for _, e := range domain.Legend() {
		assert.Contains(t, body, `<span class="legend-label">`+htmlText(t, e.Label)+`</span>`)
		assert.Contains(t, body, e.Color)
	}
	// html/template escapes '+' in text nodes; browsers still show "90+".
	assert.Contains(t, body, `<span class="legend-label">90&#43;</span>`)
}

// htmlText renders s the way html/template writes it into a text node.
func htmlText(t *testing.T, s string) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, template.Must(template.New("text").Parse("{{.}}")).Execute(&b, s))
	return b.String()
}

func TestUnknownPathIs404(t *testing.T) {
	rec := serve(newTestServer(nil), "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
