package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/quake-map-service/internal/domain"
)

// QuakeStyler implements MarkerBuilder using the domain style rules with
// optional place enrichment.
type QuakeStyler struct {
	geocoder domain.Geocoder
	logger   *slog.Logger
}

// NewStyler creates a QuakeStyler. Pass a nil geocoder to disable place
// enrichment.
func NewStyler(geocoder domain.Geocoder, logger *slog.Logger) *QuakeStyler {
	return &QuakeStyler{
		geocoder: geocoder,
		logger:   logger,
	}
}

func (s *QuakeStyler) Build(ctx context.Context, q domain.Quake) domain.Marker {
	q = domain.EnrichPlace(ctx, q, s.geocoder, s.logger)
	return domain.BuildMarker(q)
}
