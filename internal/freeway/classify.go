package freeway

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/paulmach/orb"
)

// NoRef is the placeholder ref for junctions without a signed or unsigned ref
const NoRef = "No Ref"

// markerI110 in a ref always means the Harbor Freeway, whatever the exit number
const markerI110 = "110"

type numberRange struct {
	lo, hi int
}

func (r numberRange) contains(n int) bool {
	return n >= r.lo && n <= r.hi
}

var (
	i110Ranges  = []numberRange{{12, 24}, {40, 45}}
	i10Ranges   = []numberRange{{130, 140}}
	us101Ranges = []numberRange{{1, 11}, {25, 30}}
)

// band is a half-open [Min, Max) rectangle assigned to a highway
type band struct {
	name    string
	bound   orb.Bound
	highway Highway
}

func (b band) contains(p orb.Point) bool {
	return p.Lon() >= b.bound.Min.Lon() && p.Lon() < b.bound.Max.Lon() &&
		p.Lat() >= b.bound.Min.Lat() && p.Lat() < b.bound.Max.Lat()
}

// bands are tested in order; the first match wins
var bands = []band{
	{name: "south", highway: I10, bound: orb.Bound{Min: orb.Point{-118.265, 34.015}, Max: orb.Point{-118.200, 34.035}}},
	{name: "east", highway: US101, bound: orb.Bound{Min: orb.Point{-118.235, 34.035}, Max: orb.Point{-118.200, 34.090}}},
	{name: "north", highway: US101, bound: orb.Bound{Min: orb.Point{-118.290, 34.062}, Max: orb.Point{-118.235, 34.090}}},
	{name: "west", highway: I110, bound: orb.Bound{Min: orb.Point{-118.295, 34.020}, Max: orb.Point{-118.255, 34.062}}},
}

// Classify assigns a junction or exit to a loop highway. The ref is tried
// first; an empty ref, the NoRef sentinel or a ref outside every known range
// falls back to the coordinate bands.
func Classify(ref string, coord Coordinate) Highway {
	if h, ok := ClassifyRef(ref); ok {
		return h
	}
	return ClassifyCoordinate(coord)
}

// ClassifyRef matches a ref against the marker token and exit number ranges
func ClassifyRef(ref string) (Highway, bool) {
	if ref == "" || ref == NoRef {
		return Unknown, false
	}

	n, numErr := refNumber(ref)
	hasNumber := numErr == nil

	if strings.Contains(ref, markerI110) || (hasNumber && inAny(i110Ranges, n)) {
		return I110, true
	}
	if !hasNumber {
		return Unknown, false
	}
	if inAny(i10Ranges, n) {
		return I10, true
	}
	if inAny(us101Ranges, n) {
		return US101, true
	}
	return Unknown, false
}

// ClassifyCoordinate returns the highway of the first band containing the point
func ClassifyCoordinate(coord Coordinate) Highway {
	for _, b := range bands {
		if b.contains(coord) {
			return b.highway
		}
	}
	return Unknown
}

// refNumber strips letters from a ref and parses what remains
func refNumber(ref string) (int, error) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return -1
		}
		return r
	}, ref)
	return strconv.Atoi(strings.TrimSpace(digits))
}

func inAny(ranges []numberRange, n int) bool {
	for _, r := range ranges {
		if r.contains(n) {
			return true
		}
	}
	return false
}
