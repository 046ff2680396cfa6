// Command genmock reads a saved USGS GeoJSON summary feed and writes the
// styled marker snapshot the service would build from it. The snapshot is
// the fixture consumed by cmd/validate and by browser-side checks of the map
// page.
//
// Usage:
//
//	curl -o data/mock/all_week.geojson \
//	  https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_week.geojson
//	go run ./cmd/genmock \
//	  -feed data/mock/all_week.geojson \
//	  -out data/mock/all_week_markers.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/quake-map-service/internal/adapter/usgs"
	"github.com/couchcryptid/quake-map-service/internal/domain"
)

// fixtureTime pins FetchedAt so regenerated fixtures diff cleanly.
var fixtureTime = time.Date(2026, time.March, 3, 12, 0, 0, 0, time.UTC)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	feedPath := flag.String("feed", "", "path to a saved USGS GeoJSON summary feed")
	out := flag.String("out", "", "output path for the styled marker snapshot")
	flag.Parse()

	if *feedPath == "" || *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -feed, -out")
	}

	domain.SetClock(clockwork.NewFakeClockAt(fixtureTime))
	defer domain.SetClock(nil)

	data, err := os.ReadFile(*feedPath)
	if err != nil {
		return fmt.Errorf("reading feed: %w", err)
	}

	feed, err := usgs.ParseFeed(data)
	if err != nil {
		return err
	}
	log.Printf("%s: %d quakes, %d skipped", feed.Metadata.Title, len(feed.Quakes), feed.Skipped)

	markers := make([]domain.Marker, 0, len(feed.Quakes))
	for _, q := range feed.Quakes {
		// No geocoder: the fixture reflects the feed's own place names.
		q.PlaceSource = domain.PlaceSourceFeed
		if q.Place == "" {
			q.PlaceSource = domain.PlaceSourceNone
		}
		markers = append(markers, domain.BuildMarker(q))
	}

	snap := domain.NewSnapshot(feed.Metadata, markers, feed.Skipped)
	snap.ID = "fixture"

	if err := writeJSON(*out, snap); err != nil {
		return fmt.Errorf("writing marker fixture: %w", err)
	}
	log.Printf("wrote marker fixture: %s", *out)

	printStats(snap.Markers)
	return nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

// printStats reports how the snapshot spreads over the legend bands.
func printStats(markers []domain.Marker) {
	byColor := make(map[string]int)
	var unknownMag, unknownPlace int
	maxRadius := 0.0
	for _, m := range markers {
		byColor[m.Style.FillColor]++
		if m.Quake.Magnitude == nil {
			unknownMag++
		}
		if m.Quake.Place == "" {
			unknownPlace++
		}
		if m.Style.Radius > maxRadius {
			maxRadius = m.Style.Radius
		}
	}

	fmt.Println()
	fmt.Println("Markers per depth band:")
	for _, e := range domain.Legend() {
		fmt.Printf("  %-8s %s  %5d\n", e.Label, e.Color, byColor[e.Color])
	}

	colors := make([]string, 0, len(byColor))
	for c := range byColor {
		colors = append(colors, c)
	}
	sort.Strings(colors)

	fmt.Println()
	fmt.Printf("Total markers:      %d\n", len(markers))
	fmt.Printf("Distinct colours:   %d %v\n", len(colors), colors)
	fmt.Printf("Unknown magnitude:  %d\n", unknownMag)
	fmt.Printf("Unknown place:      %d\n", unknownPlace)
	fmt.Printf("Largest radius:     %g px\n", maxRadius)
}
