package httpadapter

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/quake-map-service/internal/domain"
)

const quakesPath = "/api/quakes"

//go:embed templates/*.tmpl
var templateFS embed.FS

var mapTemplate = template.Must(template.ParseFS(templateFS, "templates/map.html.tmpl"))

// SnapshotSource provides the latest marker snapshot, nil until loaded.
type SnapshotSource interface {
	Current() *domain.Snapshot
}

// MapView configures the initial map viewport and basemap.
type MapView struct {
	Title           string
	CenterLat       float64
	CenterLon       float64
	Zoom            int
	TileURL         string
	TileAttribution string
}

// Server exposes the map page, marker and legend APIs, and health,
// readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	view       MapView
	source     SnapshotSource
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /, /api/quakes, /api/legend,
// /healthz, /readyz, and /metrics routes.
func NewServer(addr string, view MapView, source SnapshotSource, ready sharedobs.ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	if view.Title == "" {
		view.Title = "Earthquakes"
	}

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		view:   view,
		source: source,
		logger: logger,
	}

	mux.HandleFunc("GET /{$}", s.handleMap)
	mux.HandleFunc("GET "+quakesPath, s.handleQuakes)
	mux.HandleFunc("GET /api/legend", s.handleLegend)
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

type mapPage struct {
	MapView
	Legend     []domain.LegendEntry
	QuakesPath string
}

func (s *Server) handleMap(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	page := mapPage{MapView: s.view, Legend: domain.Legend(), QuakesPath: quakesPath}
	if err := mapTemplate.Execute(w, page); err != nil {
		s.logger.Error("render map page failed", "error", err)
	}
}

func (s *Server) handleQuakes(w http.ResponseWriter, _ *http.Request) {
	snap := s.source.Current()
	if snap == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  "no earthquake snapshot loaded yet",
		})
		return
	}

	data, err := encodeSnapshot(snap)
	if err != nil {
		s.logger.Error("encode snapshot failed", "snapshot_id", snap.ID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "encode snapshot"})
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.Header().Set("X-Snapshot-Id", snap.ID)
	w.Header().Set("Last-Modified", snap.FetchedAt.UTC().Format(http.TimeFormat))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleLegend(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, domain.Legend())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
