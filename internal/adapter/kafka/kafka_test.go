package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/quake-map-service/internal/config"
	"github.com/couchcryptid/quake-map-service/internal/domain"
)

func TestSerializeToMessage(t *testing.T) {
	fetched := time.Date(2026, time.March, 3, 12, 0, 0, 0, time.UTC)
	mag := 4.5
	snap := &domain.Snapshot{ID: "snap-1", FetchedAt: fetched}
	marker := domain.BuildMarker(domain.Quake{
		ID:        "ci40000001",
		Magnitude: &mag,
		Place:     "10 km SSW of Idyllwild, CA",
		Geo:       domain.Geo{Lat: 33.66, Lon: -116.78, Depth: 10.23},
	})

	msg, err := serializeToMessage(snap, marker)
	require.NoError(t, err)

	assert.Equal(t, []byte("ci40000001"), msg.Key)
	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "snapshot_id", msg.Headers[0].Key)
	assert.Equal(t, []byte("snap-1"), msg.Headers[0].Value)
	assert.Equal(t, "fill_color", msg.Headers[1].Key)
	assert.Equal(t, []byte(domain.ColorLightGreen), msg.Headers[1].Value)
	assert.Equal(t, "fetched_at", msg.Headers[2].Key)
	assert.Equal(t, []byte(fetched.Format(time.RFC3339)), msg.Headers[2].Value)

	var decoded domain.Marker
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, marker.Popup, decoded.Popup)
	assert.Equal(t, marker.Style, decoded.Style)
	assert.Contains(t, string(msg.Value), `"fillColor":"#90EE90"`)
	assert.Contains(t, string(msg.Value), `"radius":18`)
}

func TestWriter_PublishEmptySnapshotIsNoop(t *testing.T) {
	w := NewWriter(&config.Config{KafkaBrokers: []string{"localhost:1"}, KafkaTopic: "unused"}, slog.Default())
	defer w.Close()

	require.NoError(t, w.Publish(context.Background(), nil))
	require.NoError(t, w.Publish(context.Background(), &domain.Snapshot{ID: "empty"}))
}
