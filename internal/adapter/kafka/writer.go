package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/quake-map-service/internal/config"
	"github.com/couchcryptid/quake-map-service/internal/domain"
)

// Writer publishes styled markers to a Kafka topic.
// It implements pipeline.SnapshotPublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured marker topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes every marker of the snapshot and writes them in a
// single WriteMessages call. Keys are quake IDs so updates to one event land
// on the same partition.
func (w *Writer) Publish(ctx context.Context, snap *domain.Snapshot) error {
	if snap == nil || len(snap.Markers) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(snap.Markers))
	for i := range snap.Markers {
		msg, err := serializeToMessage(snap, snap.Markers[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write markers: %w", err)
	}
	w.logger.Debug("snapshot published", "snapshot_id", snap.ID, "markers", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a Marker into a Kafka message.
func serializeToMessage(snap *domain.Snapshot, m domain.Marker) (kafkago.Message, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize marker: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(m.Quake.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "snapshot_id", Value: []byte(snap.ID)},
			{Key: "fill_color", Value: []byte(m.Style.FillColor)},
			{Key: "fetched_at", Value: []byte(snap.FetchedAt.Format(time.RFC3339))},
		},
	}, nil
}
