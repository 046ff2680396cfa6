// Command validate checks a styled marker snapshot against the marker rules:
// every fill colour must match the depth band table, every radius the
// magnitude rule, every popup the popup format, and the legend must agree
// with the colour table. It accepts either a snapshot fixture produced by
// cmd/genmock or the GeoJSON FeatureCollection served by a running
// service's /api/quakes. An input with no markers fails.
//
// Usage:
//
//	go run ./cmd/validate -markers data/mock/all_week_markers.json
//	curl -o quakes.geojson http://localhost:8080/api/quakes
//	go run ./cmd/validate -markers quakes.geojson
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/couchcryptid/quake-map-service/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	markersPath := flag.String("markers", "", "path to a styled marker snapshot JSON")
	flag.Parse()

	if *markersPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	os.Exit(run(*markersPath))
}

func run(markersPath string) int {
	fmt.Println("=== Earthquake Marker Validation ===")
	fmt.Println()

	snap, err := loadSnapshot(markersPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load snapshot: %v\n", err)
		return 1
	}

	phases := validateAll(snap)

	color := useColor(os.Stdout)
	allPassed := true
	for _, p := range phases {
		status := paint(color, "32", "PASS")
		if !p.passed() {
			status = paint(color, "31", fmt.Sprintf("FAIL (%d errors)", len(p.errors)))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Markers: %d (feed count %d, skipped %d)\n", len(snap.Markers), snap.Metadata.Count, snap.Skipped)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// useColor reports whether w is a terminal that should get ANSI colours.
func useColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func paint(color bool, code, text string) string {
	if !color {
		return text
	}
	return "\033[" + code + "m" + text + "\033[0m"
}

// loadSnapshot reads either a snapshot fixture or an /api/quakes
// FeatureCollection.
func loadSnapshot(path string) (*domain.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	if head.Type == "FeatureCollection" {
		return snapshotFromGeoJSON(data)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// snapshotFromGeoJSON rebuilds markers from the properties the service
// writes on each /api/quakes feature. The collection carries no feed
// metadata, so the count check only looks for duplicates.
func snapshotFromGeoJSON(data []byte) (*domain.Snapshot, error) {
	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("decode feature collection: %w", err)
	}

	snap := &domain.Snapshot{Markers: make([]domain.Marker, 0, len(fc.Features))}
	for i, f := range fc.Features {
		m, err := markerFromFeature(f)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}
		snap.Markers = append(snap.Markers, m)
	}
	return snap, nil
}

func markerFromFeature(f *geojson.Feature) (domain.Marker, error) {
	p, ok := f.Geometry.(*geom.Point)
	if !ok || p == nil || p.Empty() {
		return domain.Marker{}, fmt.Errorf("%s: geometry is not a point", f.ID)
	}

	props := f.Properties
	q := domain.Quake{
		ID:          f.ID,
		Place:       stringProp(props, "place"),
		EventType:   stringProp(props, "type"),
		URL:         stringProp(props, "url"),
		PlaceSource: stringProp(props, "source"),
		Geo:         domain.Geo{Lon: p.X(), Lat: p.Y(), Depth: p.Z()},
	}
	if mag, ok := props["mag"].(float64); ok {
		q.Magnitude = &mag
	}

	var style domain.MarkerStyle
	raw, err := json.Marshal(props["style"])
	if err != nil {
		return domain.Marker{}, fmt.Errorf("%s: style: %w", f.ID, err)
	}
	if err := json.Unmarshal(raw, &style); err != nil {
		return domain.Marker{}, fmt.Errorf("%s: style: %w", f.ID, err)
	}

	return domain.Marker{Quake: q, Style: style, Popup: stringProp(props, "popup")}, nil
}

func stringProp(props map[string]any, key string) string {
	s, _ := props[key].(string)
	return s
}

func validateAll(snap *domain.Snapshot) []*phase {
	return []*phase{
		validateColors(snap.Markers),
		validateRadii(snap.Markers),
		validateFixedStyle(snap.Markers),
		validatePopups(snap.Markers),
		validateLegend(),
		validateCounts(snap),
	}
}

// ── Phase 1: Depth colours ──

func validateColors(markers []domain.Marker) *phase {
	p := &phase{name: "Phase 1: Fill colour vs depth band"}
	for _, m := range markers {
		want := domain.DepthColor(m.Quake.Geo.Depth)
		if m.Style.FillColor != want {
			p.errorf("%s: depth %g has fillColor %s, want %s", m.Quake.ID, m.Quake.Geo.Depth, m.Style.FillColor, want)
		}
	}
	return p
}

// ── Phase 2: Magnitude radii ──

func validateRadii(markers []domain.Marker) *phase {
	p := &phase{name: "Phase 2: Radius vs magnitude"}
	for _, m := range markers {
		want := domain.MarkerRadius(m.Quake.MagnitudeOrZero())
		if math.Abs(m.Style.Radius-want) > 1e-9 {
			p.errorf("%s: magnitude %v has radius %g, want %g", m.Quake.ID, magString(m.Quake), m.Style.Radius, want)
		}
		if m.Style.Radius <= 0 {
			p.errorf("%s: radius %g is not drawable", m.Quake.ID, m.Style.Radius)
		}
	}
	return p
}

// ── Phase 3: Fixed path options ──

func validateFixedStyle(markers []domain.Marker) *phase {
	p := &phase{name: "Phase 3: Fixed marker attributes"}
	for _, m := range markers {
		want := domain.StyleFor(m.Quake)
		got := m.Style
		got.Radius, got.FillColor = want.Radius, want.FillColor
		if got != want {
			p.errorf("%s: style %+v, want %+v", m.Quake.ID, m.Style, want)
		}
	}
	return p
}

// ── Phase 4: Popup text ──

func validatePopups(markers []domain.Marker) *phase {
	p := &phase{name: "Phase 4: Popup text"}
	for _, m := range markers {
		if want := domain.PopupText(m.Quake); m.Popup != want {
			p.errorf("%s: popup %q, want %q", m.Quake.ID, m.Popup, want)
		}
	}
	return p
}

// ── Phase 5: Legend ──

func validateLegend() *phase {
	p := &phase{name: "Phase 5: Legend vs colour table"}
	entries := domain.Legend()
	for i, e := range entries {
		depth := e.Floor + 1
		if e.Ceil != nil {
			depth = (e.Floor + *e.Ceil) / 2
			if i+1 < len(entries) && *e.Ceil != entries[i+1].Floor {
				p.errorf("band %s: ceil %g does not meet next floor %g", e.Label, *e.Ceil, entries[i+1].Floor)
			}
		}
		if got := domain.DepthColor(depth); got != e.Color {
			p.errorf("band %s: legend colour %s, marker colour at depth %g is %s", e.Label, e.Color, depth, got)
		}
	}
	return p
}

// ── Phase 6: Counts ──

func validateCounts(snap *domain.Snapshot) *phase {
	p := &phase{name: "Phase 6: Marker count vs feed metadata"}
	if len(snap.Markers) == 0 {
		p.errorf("no markers to validate")
	}
	if snap.Metadata.Count > 0 && len(snap.Markers)+snap.Skipped != snap.Metadata.Count {
		p.errorf("markers %d + skipped %d != feed count %d", len(snap.Markers), snap.Skipped, snap.Metadata.Count)
	}
	seen := make(map[string]bool, len(snap.Markers))
	for _, m := range snap.Markers {
		if m.Quake.ID == "" {
			continue
		}
		if seen[m.Quake.ID] {
			p.errorf("duplicate quake id %s", m.Quake.ID)
		}
		seen[m.Quake.ID] = true
	}
	return p
}

func magString(q domain.Quake) string {
	if q.Magnitude == nil {
		return "null"
	}
	return fmt.Sprintf("%g", *q.Magnitude)
}
