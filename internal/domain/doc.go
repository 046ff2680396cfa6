// Package domain models USGS earthquake feed data and the rules that turn
// each event into a styled map marker.
//
// # Data Source
//
// Events come from the USGS Earthquake Hazards Program real-time GeoJSON
// summary feeds, by default the "all earthquakes, past week" feed at
// https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_week.geojson.
// The feed is regenerated by USGS every minute; the service polls it on a
// fixed interval and keeps only the latest snapshot in memory.
//
// # Feed Conventions
//
// Geometry:
//
//	Point with three coordinates: [longitude, latitude, depth].
//	Depth is in kilometers below the surface. Shallow events near the
//	surface can be reported with small negative depths (e.g. -1.2).
//
// Magnitude ("mag" property):
//
//	Decimal on the reported magnitude type ("ml", "md", "mb", "mww", ...).
//	Small local events may carry negative magnitudes (e.g. -0.4).
//	Events still under review can publish "mag": null.
//
// Time ("time" and "updated" properties):
//
//	Milliseconds since the Unix epoch, UTC.
//
// Place ("place" property):
//
//	Human-readable location, e.g. "10 km SSW of Idyllwild, CA". May be
//	null or empty for some automatic solutions.
//
// # Marker Styling
//
// Fill colour is chosen from depth using a fixed band table (see
// [DepthColor]); bands use strict "greater than" lower bounds so a depth
// sitting exactly on a boundary falls into the shallower band:
//
//	> 90 km  #FF0000 red
//	> 70 km  #FF4500 orange red
//	> 50 km  #FFA500 orange
//	> 30 km  #FFFF00 yellow
//	> 10 km  #90EE90 light green
//	else     #00FF00 green
//
// Radius is linear in magnitude, four pixels per unit, with zero (and
// anything below zero or missing) drawn at one pixel so every event stays
// visible (see [MarkerRadius]).
//
// The legend ([Legend]) is derived from the same band table, so the legend
// colour of a band always equals the marker colour of depths inside it.
package domain
