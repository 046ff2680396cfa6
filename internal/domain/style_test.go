package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDepthColor(t *testing.T) {
	tests := []struct {
		name     string
		depth    float64
		expected string
	}{
		{"very deep", 650.2, ColorRed},
		{"just above 90", 90.01, ColorRed},
		{"exactly 90", 90, ColorOrangeRed},
		{"between 70 and 90", 75, ColorOrangeRed},
		{"exactly 70", 70, ColorOrange},
		{"between 50 and 70", 55.5, ColorOrange},
		{"exactly 50", 50, ColorYellow},
		{"between 30 and 50", 33, ColorYellow},
		{"exactly 30", 30, ColorLightGreen},
		{"between 10 and 30", 10.5, ColorLightGreen},
		{"exactly 10", 10, ColorGreen},
		{"shallow", 2.3, ColorGreen},
		{"zero", 0, ColorGreen},
		{"above sea level", -1.8, ColorGreen},
		{"below legend floor", -15, ColorGreen},
		{"NaN", math.NaN(), ColorGreen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DepthColor(tt.depth))
		})
	}
}

func TestMarkerRadius(t *testing.T) {
	tests := []struct {
		name      string
		magnitude float64
		expected  float64
	}{
		{"zero special case", 0, 1},
		{"small", 0.1, 0.4},
		{"one", 1, 4},
		{"moderate", 4.5, 18},
		{"large", 7.8, 31.2},
		{"negative local magnitude", -0.4, 1},
		{"NaN", math.NaN(), 1},
		{"negative beyond one unit", -2.5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, MarkerRadius(tt.magnitude), 1e-9)
		})
	}
}

func TestMarkerRadius_LinearAboveZero(t *testing.T) {
	for m := 0.1; m < 10; m += 0.7 {
		assert.InDelta(t, m*4, MarkerRadius(m), 1e-9, "magnitude %v", m)
	}
}

func TestStyleFor(t *testing.T) {
	mag := 5.2
	style := StyleFor(Quake{Magnitude: &mag, Geo: Geo{Depth: 42}})

	assert.Equal(t, MarkerStyle{
		Radius:      20.8,
		FillColor:   ColorYellow,
		Color:       StrokeColor,
		Weight:      0.5,
		Opacity:     0.8,
		FillOpacity: 0.6,
		Stroke:      true,
	}, roundRadius(style))
}

func TestStyleFor_MissingMagnitude(t *testing.T) {
	style := StyleFor(Quake{Geo: Geo{Depth: 120}})

	assert.Equal(t, 1.0, style.Radius)
	assert.Equal(t, ColorRed, style.FillColor)
}

func TestDepthBands_ReturnsCopy(t *testing.T) {
	bands := DepthBands()
	bands[0].Color = "#123456"

	assert.Equal(t, ColorGreen, DepthBands()[0].Color)
}

func roundRadius(s MarkerStyle) MarkerStyle {
	s.Radius = math.Round(s.Radius*1e6) / 1e6
	return s
}
