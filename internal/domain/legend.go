package domain

import "strconv"

// LegendEntry is one coloured row of the depth legend.
type LegendEntry struct {
	Floor float64  `json:"floor"`
	Ceil  *float64 `json:"ceil,omitempty"` // nil for the open-ended deepest band
	Color string   `json:"color"`
	Label string   `json:"label"`
}

// Legend returns the depth legend rows, shallow to deep. Labels read
// "<floor>–<ceil>" with an en dash, and "<floor>+" for the last band.
func Legend() []LegendEntry {
	entries := make([]LegendEntry, len(depthBands))
	for i, band := range depthBands {
		e := LegendEntry{Floor: band.Floor, Color: band.Color}
		if i+1 < len(depthBands) {
			ceil := depthBands[i+1].Floor
			e.Ceil = &ceil
			e.Label = formatNumber(band.Floor) + "–" + formatNumber(ceil)
		} else {
			e.Label = formatNumber(band.Floor) + "+"
		}
		entries[i] = e
	}
	return entries
}

// formatNumber renders the shortest decimal form of v: 4.5, 10.23, 0, -10.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
