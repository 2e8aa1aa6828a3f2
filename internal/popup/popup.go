// Package popup builds the content shown when a map feature is clicked.
//
// Descriptors are plain data: a title, label/value rows and actions. The page
// template turns them into HTML.
package popup

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"

	"github.com/Zachdehooge/loop-map/internal/dataset"
	"github.com/Zachdehooge/loop-map/internal/freeway"
	"github.com/Zachdehooge/loop-map/internal/layers"
)

// Kind identifies which feature a popup describes
type Kind string

const (
	KindExit     Kind = "exit"
	KindJunction Kind = "junction"
	KindLink     Kind = "link"
	KindIncident Kind = "incident"
)

// ZoomLevel is the map zoom used by the zoom action
const ZoomLevel = 17

// Row is one label/value line in a popup body
type Row struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Icon  string `json:"icon,omitempty"`
}

// ActionType is what a popup button does
type ActionType string

const (
	ActionZoom  ActionType = "zoom"
	ActionClose ActionType = "close"
)

// Action is a popup button. Lon, Lat and Zoom are set only for ActionZoom.
type Action struct {
	Type  ActionType `json:"type"`
	Label string     `json:"label"`
	Lon   float64    `json:"lon,omitempty"`
	Lat   float64    `json:"lat,omitempty"`
	Zoom  int        `json:"zoom,omitempty"`
}

// Descriptor is everything needed to draw one popup
type Descriptor struct {
	Kind     Kind     `json:"kind"`
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle,omitempty"`
	Badge    string   `json:"badge,omitempty"`
	Accent   string   `json:"accent"`
	Rows     []Row    `json:"rows"`
	Actions  []Action `json:"actions"`
}

// Selection is a clicked feature. The set of implementations is closed.
type Selection interface {
	selection()
}

// ExitSelection is a click on a curated exit marker
type ExitSelection struct{ Exit freeway.Exit }

// JunctionSelection is a click on a dataset junction
type JunctionSelection struct {
	Junction dataset.Junction
	Coloring layers.Coloring
}

// LinkSelection is a click on a ramp
type LinkSelection struct{ Link dataset.Link }

// IncidentSelection is a click on the incident marker
type IncidentSelection struct{ Incident freeway.Incident }

func (ExitSelection) selection()     {}
func (JunctionSelection) selection() {}
func (LinkSelection) selection()     {}
func (IncidentSelection) selection() {}

// For builds the descriptor for a selection
func For(s Selection) Descriptor {
	switch s := s.(type) {
	case ExitSelection:
		return forExit(s.Exit)
	case JunctionSelection:
		return forJunction(s.Junction, s.Coloring)
	case LinkSelection:
		return forLink(s.Link)
	case IncidentSelection:
		return forIncident(s.Incident)
	default:
		panic(fmt.Sprintf("popup: unhandled selection %T", s))
	}
}

func forExit(e freeway.Exit) Descriptor {
	rows := []Row{{Label: "Location", Value: FormatCoord(e.Coord, 6), Icon: "map-marker"}}
	if e.Ref != "" {
		rows = append(rows, Row{Label: "Exit Reference", Value: e.Ref, Icon: "sign"})
	}
	rows = append(rows, Row{Label: "Freeway", Value: string(e.Highway), Icon: "road"})

	return Descriptor{
		Kind:     KindExit,
		Title:    fmt.Sprintf("Exit %d", e.Number),
		Subtitle: e.Name,
		Badge:    e.Label(),
		Accent:   e.Highway.Color(),
		Rows:     rows,
		Actions:  actions("Zoom to Exit", e.Coord),
	}
}

func forJunction(j dataset.Junction, coloring layers.Coloring) Descriptor {
	freewayLabel, accent := layers.JunctionLabel, layers.JunctionColor
	if coloring == layers.ColorPerHighway {
		freewayLabel, accent = string(j.Highway), j.Highway.Color()
	}

	return Descriptor{
		Kind:   KindJunction,
		Title:  "Junction " + j.Ref,
		Accent: accent,
		Rows: []Row{
			{Label: "Reference", Value: j.Ref, Icon: "sign"},
			{Label: "Freeway", Value: freewayLabel, Icon: "road"},
			{Label: "Location", Value: FormatCoord(j.Coord, 6), Icon: "map-marker"},
		},
		Actions: actions("Zoom to Junction", j.Coord),
	}
}

func forLink(l dataset.Link) Descriptor {
	var rows []Row
	if l.Destination != "" {
		rows = append(rows, Row{Label: "Destination", Value: l.Destination, Icon: "directions"})
	}
	if l.DestinationRef != "" {
		rows = append(rows, Row{Label: "Destination Ref", Value: l.DestinationRef, Icon: "sign"})
	}
	if l.Lanes != "" {
		rows = append(rows, Row{Label: "Lanes", Value: l.Lanes, Icon: "grip-lines"})
	}
	if l.OneWay {
		rows = append(rows, Row{Label: "One-way", Value: "Yes", Icon: "arrow-right"})
	}

	var start orb.Point
	if len(l.Line) > 0 {
		start = l.Line[0]
		rows = append(rows, Row{Label: "Location", Value: FormatCoord(start, 6), Icon: "map-marker"})
	}

	title := "Ramp"
	if l.Destination != "" {
		title = "Ramp to " + l.Destination
	}
	return Descriptor{
		Kind:    KindLink,
		Title:   title,
		Accent:  "#8A2BE2",
		Rows:    rows,
		Actions: actions("Zoom to Ramp", start),
	}
}

func forIncident(i freeway.Incident) Descriptor {
	return Descriptor{
		Kind:     KindIncident,
		Title:    i.Title,
		Subtitle: i.Date + " Incident",
		Accent:   "#FF00FF",
		Rows: []Row{
			{Label: "Date", Value: i.Date, Icon: "calendar-day"},
			{Label: "Coordinates", Value: FormatCoord(i.Coord, 5), Icon: "map-pin"},
			{Label: "Address", Value: i.Address, Icon: "map-marked"},
		},
		Actions: actions("Zoom to Incident", i.Coord),
	}
}

func actions(zoomLabel string, p orb.Point) []Action {
	return []Action{
		{Type: ActionZoom, Label: zoomLabel, Lon: p.Lon(), Lat: p.Lat(), Zoom: ZoomLevel},
		{Type: ActionClose, Label: "Close"},
	}
}

// FormatCoord renders a point as "34.059887°N, 118.251852°W"
func FormatCoord(p orb.Point, decimals int) string {
	ns, ew := "N", "E"
	if p.Lat() < 0 {
		ns = "S"
	}
	if p.Lon() < 0 {
		ew = "W"
	}
	return fmt.Sprintf("%.*f°%s, %.*f°%s", decimals, math.Abs(p.Lat()), ns, decimals, math.Abs(p.Lon()), ew)
}
