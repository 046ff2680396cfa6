package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/couchcryptid/quake-map-service/internal/domain"
	"github.com/couchcryptid/quake-map-service/internal/observability"
)

// FeedFetcher downloads and decodes the earthquake feed.
type FeedFetcher interface {
	Fetch(ctx context.Context) (domain.Feed, error)
}

// MarkerBuilder turns a quake into a styled marker.
type MarkerBuilder interface {
	Build(ctx context.Context, q domain.Quake) domain.Marker
}

// SnapshotPublisher forwards a freshly built snapshot downstream.
type SnapshotPublisher interface {
	Publish(ctx context.Context, snap *domain.Snapshot) error
}

// Refresher fetches the feed on a fixed interval and keeps the latest
// snapshot of styled markers in memory.
type Refresher struct {
	fetcher   FeedFetcher
	builder   MarkerBuilder
	publisher SnapshotPublisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	interval  time.Duration
	current   atomic.Pointer[domain.Snapshot]
}

// New creates a Refresher. publisher may be nil.
func New(f FeedFetcher, b MarkerBuilder, p SnapshotPublisher, logger *slog.Logger, metrics *observability.Metrics, interval time.Duration) *Refresher {
	return &Refresher{
		fetcher:   f,
		builder:   b,
		publisher: p,
		logger:    logger,
		metrics:   metrics,
		interval:  interval,
	}
}

// Current returns the latest snapshot, or nil before the first successful refresh.
func (r *Refresher) Current() *domain.Snapshot {
	return r.current.Load()
}

// CheckReadiness returns nil once a snapshot has been loaded, or an error
// describing why the service is not yet ready.
func (r *Refresher) CheckReadiness(_ context.Context) error {
	if r.current.Load() == nil {
		return errors.New("no earthquake snapshot loaded yet")
	}
	return nil
}

// Run refreshes immediately and then every interval until the context is
// cancelled. A failed refresh keeps the previous snapshot; the next attempt
// is the next scheduled run.
func (r *Refresher) Run(ctx context.Context) error {
	s, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(r.interval),
		gocron.NewTask(func() {
			if err := r.Refresh(ctx); err != nil && ctx.Err() == nil {
				r.logger.Error("feed refresh failed", "error", err)
			}
		}),
		gocron.WithName("feed-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = s.Shutdown()
		return fmt.Errorf("schedule feed refresh: %w", err)
	}

	r.logger.Info("refresher started", "interval", r.interval)
	r.metrics.RefreshRunning.Set(1)
	defer r.metrics.RefreshRunning.Set(0)

	s.Start()
	<-ctx.Done()
	r.logger.Info("refresher stopping", "reason", ctx.Err())

	if err := s.Shutdown(); err != nil {
		return fmt.Errorf("shutdown scheduler: %w", err)
	}
	return nil
}

// Refresh runs one fetch-style-swap cycle.
func (r *Refresher) Refresh(ctx context.Context) error {
	start := time.Now()

	feed, err := r.fetcher.Fetch(ctx)
	r.metrics.FeedFetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		r.metrics.FeedFetches.WithLabelValues("error").Inc()
		return fmt.Errorf("fetch feed: %w", err)
	}
	r.metrics.FeedFetches.WithLabelValues("success").Inc()

	markers := make([]domain.Marker, 0, len(feed.Quakes))
	for _, q := range feed.Quakes {
		markers = append(markers, r.builder.Build(ctx, q))
	}

	snap := domain.NewSnapshot(feed.Metadata, markers, feed.Skipped)
	r.current.Store(snap)
	r.recordSnapshot(snap)

	r.logger.Info("snapshot refreshed",
		"snapshot_id", snap.ID,
		"markers", len(snap.Markers),
		"skipped", snap.Skipped,
		"feed_generated", snap.Metadata.Generated,
		"duration", time.Since(start),
	)

	r.publish(ctx, snap)
	return nil
}

func (r *Refresher) recordSnapshot(snap *domain.Snapshot) {
	r.metrics.SnapshotMarkers.Set(float64(len(snap.Markers)))
	r.metrics.LastSnapshotTime.Set(float64(snap.FetchedAt.Unix()))
	r.metrics.SkippedFeatures.Add(float64(snap.Skipped))

	counts := make(map[string]int, len(domain.DepthBands()))
	for _, band := range domain.DepthBands() {
		counts[band.Color] = 0
	}
	for _, m := range snap.Markers {
		counts[m.Style.FillColor]++
	}
	for color, n := range counts {
		r.metrics.MarkersByColor.WithLabelValues(color).Set(float64(n))
	}
}

// publish forwards the snapshot when a publisher is configured. Failures are
// logged and counted; the in-memory snapshot is already live.
func (r *Refresher) publish(ctx context.Context, snap *domain.Snapshot) {
	if r.publisher == nil || len(snap.Markers) == 0 {
		return
	}
	if err := r.publisher.Publish(ctx, snap); err != nil {
		r.metrics.PublishErrors.Inc()
		r.logger.Error("publish snapshot failed",
			"snapshot_id", snap.ID,
			"markers", len(snap.Markers),
			"error", err,
		)
		return
	}
	r.metrics.MarkersPublished.Add(float64(len(snap.Markers)))
}
