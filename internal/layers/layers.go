// Package layers tracks which map overlays are shown and derives the legend from that state
package layers

import (
	"errors"
	"fmt"
)

// Layer names an overlay group
type Layer string

const (
	Freeways  Layer = "freeways"
	Exits     Layer = "exits"
	Junctions Layer = "junctions"
	Links     Layer = "links"
	Incident  Layer = "incident"
)

// All lists layers in legend priority order
var All = []Layer{Freeways, Exits, Junctions, Links, Incident}

// ErrUnknownLayer is returned for names outside All
var ErrUnknownLayer = errors.New("unknown layer")

// Parse converts a layer name to a Layer
func Parse(name string) (Layer, error) {
	for _, l := range All {
		if string(l) == name {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLayer, name)
}

// Coloring selects how junction markers are coloured
type Coloring string

const (
	// ColorUniform paints every junction the same colour
	ColorUniform Coloring = "uniform"
	// ColorPerHighway paints each junction with its classified highway's colour
	ColorPerHighway Coloring = "per-highway"
)

// ParseColoring validates a colouring mode name
func ParseColoring(s string) (Coloring, error) {
	switch Coloring(s) {
	case ColorUniform, ColorPerHighway:
		return Coloring(s), nil
	default:
		return "", fmt.Errorf("unknown coloring mode %q (want %q or %q)", s, ColorUniform, ColorPerHighway)
	}
}

// JunctionColor is the colour of every junction in uniform mode
const JunctionColor = "#FF6600"

// JunctionLabel stands in for a highway name on junction popups in uniform mode
const JunctionLabel = "All Junctions"

var defaults = map[Layer]bool{
	Freeways:  true,
	Exits:     true,
	Junctions: true,
	Links:     false,
	Incident:  true,
}

// Controller holds per-layer visibility. It is not safe for concurrent use.
type Controller struct {
	coloring Coloring
	visible  map[Layer]bool
}

// NewController returns a controller with the default visibility
func NewController(coloring Coloring) *Controller {
	c := &Controller{
		coloring: coloring,
		visible:  make(map[Layer]bool, len(All)),
	}
	for l, v := range defaults {
		c.visible[l] = v
	}
	return c
}

// Coloring returns the junction colouring mode
func (c *Controller) Coloring() Coloring {
	return c.coloring
}

// SetVisible shows or hides a layer
func (c *Controller) SetVisible(l Layer, visible bool) error {
	if _, ok := c.visible[l]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLayer, l)
	}
	c.visible[l] = visible
	return nil
}

// Visible reports whether a layer is shown
func (c *Controller) Visible(l Layer) bool {
	return c.visible[l]
}

// State returns a copy of the visibility map
func (c *Controller) State() map[Layer]bool {
	out := make(map[Layer]bool, len(c.visible))
	for l, v := range c.visible {
		out[l] = v
	}
	return out
}

// Legend returns the rows for every visible layer in priority order, or the
// placeholder row when nothing is visible.
func (c *Controller) Legend() []Entry {
	var entries []Entry
	for _, l := range All {
		if c.visible[l] {
			entries = append(entries, Rows(l, c.coloring)...)
		}
	}
	if len(entries) == 0 {
		return []Entry{Placeholder}
	}
	return entries
}
