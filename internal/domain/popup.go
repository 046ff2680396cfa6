package domain

import (
	"html"
	"strings"
)

const (
	unknownMagnitude = "unknown"
	unknownPlace     = "Unknown location"
)

// PopupText builds the marker popup HTML:
//
//	Magnitude: 4.5<br>Depth: 10.23<br>Location: 10 km SSW of Idyllwild, CA
//
// The place is HTML-escaped since it is feed-controlled text.
func PopupText(q Quake) string {
	mag := unknownMagnitude
	if q.Magnitude != nil {
		mag = formatNumber(*q.Magnitude)
	}

	place := strings.TrimSpace(q.Place)
	if place == "" {
		place = unknownPlace
	}

	var b strings.Builder
	b.WriteString("Magnitude: ")
	b.WriteString(mag)
	b.WriteString("<br>Depth: ")
	b.WriteString(formatNumber(q.Geo.Depth))
	b.WriteString("<br>Location: ")
	b.WriteString(html.EscapeString(place))
	return b.String()
}
