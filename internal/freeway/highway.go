package freeway

import (
	"strings"

	"github.com/paulmach/orb"
)

// Highway is one of the three freeways forming the loop
type Highway string

const (
	I10     Highway = "I-10"
	US101   Highway = "US-101"
	I110    Highway = "I-110"
	Unknown Highway = "Unknown"
)

// Highways lists the loop freeways in legend order
var Highways = []Highway{I10, US101, I110}

// Coordinate is a (longitude, latitude) pair
type Coordinate = orb.Point

// Color returns the map colour used for a highway
func (h Highway) Color() string {
	switch h {
	case I10:
		return "#FF0000"
	case US101:
		return "#0066FF"
	case I110:
		return "#00AA00"
	default:
		return "#999999"
	}
}

// LongName returns the freeway's common name
func (h Highway) LongName() string {
	switch h {
	case I10:
		return "I-10 Santa Monica Fwy"
	case US101:
		return "US-101 Hollywood Fwy"
	case I110:
		return "I-110 Harbor Fwy"
	default:
		return "Unknown"
	}
}

// Style describes how a road line is drawn
type Style struct {
	Color string `json:"color"`
	Width int    `json:"width"`
}

// RoadStyle picks a line style from a road's free-text ref tag.
// Checks run in a fixed order: "101" is tested before "110".
func RoadStyle(ref string) Style {
	switch {
	case strings.Contains(ref, "I 10"), strings.Contains(ref, "I-10"):
		return Style{Color: I10.Color(), Width: 8}
	case strings.Contains(ref, "US 101"), strings.Contains(ref, "101"):
		return Style{Color: US101.Color(), Width: 8}
	case strings.Contains(ref, "I 110"), strings.Contains(ref, "110"), strings.Contains(ref, "SR 110"):
		return Style{Color: I110.Color(), Width: 8}
	default:
		return Style{Color: Unknown.Color(), Width: 6}
	}
}
