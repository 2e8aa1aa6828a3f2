package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/natefinch/atomic"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/Zachdehooge/loop-map/internal/app"
	"github.com/Zachdehooge/loop-map/internal/freeway"
	"github.com/Zachdehooge/loop-map/internal/layers"
	"github.com/Zachdehooge/loop-map/internal/popup"
)

// DefaultZoom is the initial zoom of the page
const DefaultZoom = 13

// Marker is a point feature with its popup
type Marker struct {
	Coord freeway.Coordinate `json:"coords"`
	Label string             `json:"label,omitempty"`
	Color string             `json:"color"`
	Popup popup.Descriptor   `json:"popup"`
}

// LayerJSON describes one overlay checkbox
type LayerJSON struct {
	Name    layers.Layer `json:"name"`
	Title   string       `json:"title"`
	Visible bool         `json:"visible"`
}

// PagePayload is everything the page script needs, embedded as JSON
type PagePayload struct {
	Center      freeway.Coordinate              `json:"center"`
	Zoom        int                             `json:"zoom"`
	Coloring    layers.Coloring                 `json:"coloring"`
	Roads       *geojson.FeatureCollection      `json:"roads"`
	Links       *geojson.FeatureCollection      `json:"links"`
	Exits       []Marker                        `json:"exits"`
	Junctions   []Marker                        `json:"junctions"`
	Incident    Marker                          `json:"incident"`
	Layers      []LayerJSON                     `json:"layers"`
	LegendRows  map[layers.Layer][]layers.Entry `json:"legendRows"`
	Placeholder layers.Entry                    `json:"placeholder"`
	Legend      []layers.Entry                  `json:"legend"`
	LastUpdated string                          `json:"lastUpdated"`
}

var layerTitles = map[layers.Layer]string{
	layers.Freeways:  "Freeways",
	layers.Exits:     "Exits",
	layers.Junctions: "Junctions",
	layers.Links:     "Ramps / Links",
	layers.Incident:  "Incident",
}

// BuildPayload collects the session's data into the page payload
func BuildPayload(s *app.Session) PagePayload {
	coloring := s.Coloring()
	visible := s.Visibility()

	layerList := make([]LayerJSON, 0, len(layers.All))
	for _, l := range layers.All {
		layerList = append(layerList, LayerJSON{Name: l, Title: layerTitles[l], Visible: visible[l]})
	}

	return PagePayload{
		Center:      freeway.TheIncident.Coord,
		Zoom:        DefaultZoom,
		Coloring:    coloring,
		Roads:       roadsCollection(s),
		Links:       linksCollection(s),
		Exits:       exitMarkers(s),
		Junctions:   junctionMarkers(s),
		Incident:    Marker{Coord: freeway.TheIncident.Coord, Label: "★", Color: "#FF00FF", Popup: s.IncidentPopup()},
		Layers:      layerList,
		LegendRows:  layers.RowsByLayer(coloring),
		Placeholder: layers.Placeholder,
		Legend:      s.Legend(),
		LastUpdated: time.Now().UTC().Format("Jan 2, 2006 at 03:04:05 UTC"),
	}
}

func roadsCollection(s *app.Session) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, r := range s.Data.Roads {
		f := geojson.NewFeature(orb.MultiLineString(r.Paths))
		f.Properties["ref"] = r.Ref
		f.Properties["color"] = r.Style.Color
		f.Properties["width"] = r.Style.Width
		fc.Append(f)
	}
	return fc
}

func linksCollection(s *app.Session) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	popups := s.LinkPopups()
	for i, l := range s.Data.Links {
		f := geojson.NewFeature(l.Line)
		f.Properties["popup"] = popups[i]
		fc.Append(f)
	}
	return fc
}

func exitMarkers(s *app.Session) []Marker {
	exits := freeway.Exits()
	popups := s.ExitPopups()
	markers := make([]Marker, len(exits))
	for i, e := range exits {
		markers[i] = Marker{Coord: e.Coord, Label: e.Label(), Color: "#FFD700", Popup: popups[i]}
	}
	return markers
}

func junctionMarkers(s *app.Session) []Marker {
	popups := s.JunctionPopups()
	markers := make([]Marker, len(s.Data.Junctions))
	for i, j := range s.Data.Junctions {
		color := layers.JunctionColor
		if s.Coloring() == layers.ColorPerHighway {
			color = j.Highway.Color()
		}
		markers[i] = Marker{Coord: j.Coord, Color: color, Popup: popups[i]}
	}
	return markers
}

// WritePayload writes the payload as JSON next to the page. The write is
// atomic so a browser polling the file never reads a partial document.
func WritePayload(s *app.Session, outputPath string) error {
	data, err := json.Marshal(BuildPayload(s))
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}
	if err := atomic.WriteFile(outputPath, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write failed: %w", err)
	}
	log.Printf("[generator] payload written to %s", outputPath)
	return nil
}
