package domain

import "math"

// Depth band colours, shallow to deep.
const (
	ColorGreen      = "#00FF00"
	ColorLightGreen = "#90EE90"
	ColorYellow     = "#FFFF00"
	ColorOrange     = "#FFA500"
	ColorOrangeRed  = "#FF4500"
	ColorRed        = "#FF0000"

	// StrokeColor outlines every marker.
	StrokeColor = "#000000"
)

const (
	radiusPerMagnitude = 4
	minRadius          = 1

	markerOpacity     = 0.8
	markerFillOpacity = 0.6
	markerWeight      = 0.5
)

// DepthBand is one row of the depth colour table. Floor is the legend's lower
// grade; a depth belongs to the band when it is strictly greater than Floor
// (the first band also catches everything at or below its own floor).
type DepthBand struct {
	Floor float64
	Color string
}

// depthBands is ordered shallow to deep and shared by DepthColor and Legend.
var depthBands = []DepthBand{
	{Floor: -10, Color: ColorGreen},
	{Floor: 10, Color: ColorLightGreen},
	{Floor: 30, Color: ColorYellow},
	{Floor: 50, Color: ColorOrange},
	{Floor: 70, Color: ColorOrangeRed},
	{Floor: 90, Color: ColorRed},
}

// DepthBands returns a copy of the depth colour table, shallow to deep.
func DepthBands() []DepthBand {
	out := make([]DepthBand, len(depthBands))
	copy(out, depthBands)
	return out
}

// DepthColor maps a depth in kilometers to a marker fill colour:
//   - > 90 red, > 70 orange red, > 50 orange, > 30 yellow, > 10 light green
//   - anything else (including NaN) green
func DepthColor(depth float64) string {
	for i := len(depthBands) - 1; i > 0; i-- {
		if depth > depthBands[i].Floor {
			return depthBands[i].Color
		}
	}
	return depthBands[0].Color
}

// MarkerRadius maps a magnitude to a circle radius in pixels: four pixels per
// unit of magnitude, and one pixel for zero. Negative and NaN inputs (and a
// null magnitude, which callers pass as zero) are clamped to one pixel instead
// of following the plain linear rule, which would give a negative or zero
// radius that Leaflet cannot draw.
func MarkerRadius(magnitude float64) float64 {
	if magnitude <= 0 || math.IsNaN(magnitude) {
		return minRadius
	}
	return magnitude * radiusPerMagnitude
}

// MarkerStyle carries the circle marker path options. JSON names match the
// Leaflet path option keys so the browser can pass the object straight through.
type MarkerStyle struct {
	Radius      float64 `json:"radius"`
	FillColor   string  `json:"fillColor"`
	Color       string  `json:"color"`
	Weight      float64 `json:"weight"`
	Opacity     float64 `json:"opacity"`
	FillOpacity float64 `json:"fillOpacity"`
	Stroke      bool    `json:"stroke"`
}

// StyleFor computes the marker style of a quake from its depth and magnitude.
func StyleFor(q Quake) MarkerStyle {
	return MarkerStyle{
		Radius:      MarkerRadius(q.MagnitudeOrZero()),
		FillColor:   DepthColor(q.Geo.Depth),
		Color:       StrokeColor,
		Weight:      markerWeight,
		Opacity:     markerOpacity,
		FillOpacity: markerFillOpacity,
		Stroke:      true,
	}
}
