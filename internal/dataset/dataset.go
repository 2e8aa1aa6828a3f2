// Package dataset loads the road, junction and link GeoJSON the map draws
package dataset

import (
	"context"
	"log"
	"strings"

	"github.com/paulmach/orb"

	"github.com/Zachdehooge/loop-map/internal/freeway"
)

// Road is a drawn freeway segment
type Road struct {
	Ref   string
	Paths []orb.LineString
	Style freeway.Style
}

// Junction is a motorway junction point from the dataset
type Junction struct {
	Ref     string
	Coord   orb.Point
	Highway freeway.Highway
}

// Link is a ramp connecting two roadways
type Link struct {
	Destination    string
	DestinationRef string
	Lanes          string
	OneWay         bool
	Line           orb.LineString
}

// Data holds everything loaded at startup. It is read-only afterwards.
type Data struct {
	Roads     []Road
	Junctions []Junction
	Links     []Link
}

// Sources names where each dataset comes from
type Sources struct {
	Roads     string
	Junctions string
	Links     string
}

// LoadRoads keeps LineString and MultiLineString features and styles them by ref
func (l *Loader) LoadRoads(ctx context.Context, src string) ([]Road, error) {
	fc, err := l.fetch(ctx, src)
	if err != nil {
		return nil, err
	}

	roads := make([]Road, 0, len(fc.Features))
	for _, f := range fc.Features {
		var paths []orb.LineString
		switch g := f.Geometry.(type) {
		case orb.LineString:
			paths = []orb.LineString{g}
		case orb.MultiLineString:
			paths = []orb.LineString(g)
		default:
			continue
		}
		ref := propString(f.Properties, "ref")
		roads = append(roads, Road{
			Ref:   ref,
			Paths: paths,
			Style: freeway.RoadStyle(ref),
		})
	}
	return roads, nil
}

// LoadJunctions keeps Point features and classifies each one
func (l *Loader) LoadJunctions(ctx context.Context, src string) ([]Junction, error) {
	fc, err := l.fetch(ctx, src)
	if err != nil {
		return nil, err
	}

	junctions := make([]Junction, 0, len(fc.Features))
	for _, f := range fc.Features {
		pt, ok := f.Geometry.(orb.Point)
		if !ok {
			continue
		}
		ref := propString(f.Properties, "ref")
		if ref == "" {
			ref = propString(f.Properties, "unsigned_ref")
		}
		if ref == "" {
			ref = freeway.NoRef
		}
		junctions = append(junctions, Junction{
			Ref:     ref,
			Coord:   pt,
			Highway: freeway.Classify(ref, pt),
		})
	}
	return junctions, nil
}

// LoadLinks keeps LineString features with their destination and lane tags
func (l *Loader) LoadLinks(ctx context.Context, src string) ([]Link, error) {
	fc, err := l.fetch(ctx, src)
	if err != nil {
		return nil, err
	}

	links := make([]Link, 0, len(fc.Features))
	for _, f := range fc.Features {
		line, ok := f.Geometry.(orb.LineString)
		if !ok {
			continue
		}
		links = append(links, Link{
			Destination:    propString(f.Properties, "destination"),
			DestinationRef: propString(f.Properties, "destination:ref"),
			Lanes:          propString(f.Properties, "lanes"),
			OneWay:         isYes(propString(f.Properties, "oneway")),
			Line:           line,
		})
	}
	return links, nil
}

// LoadAll loads every configured dataset. A dataset that fails is logged and
// left empty; LoadAll itself never fails.
func (l *Loader) LoadAll(ctx context.Context, src Sources) *Data {
	data := &Data{}
	var err error

	if data.Roads, err = l.LoadRoads(ctx, src.Roads); err != nil {
		log.Printf("[dataset] roads unavailable, layer will be empty: %v", err)
	}
	if data.Junctions, err = l.LoadJunctions(ctx, src.Junctions); err != nil {
		log.Printf("[dataset] junctions unavailable, layer will be empty: %v", err)
	}
	if data.Links, err = l.LoadLinks(ctx, src.Links); err != nil {
		log.Printf("[dataset] links unavailable, layer will be empty: %v", err)
	}

	log.Printf("[dataset] loaded %d roads, %d junctions, %d links", len(data.Roads), len(data.Junctions), len(data.Links))
	return data
}

func isYes(v string) bool {
	switch strings.ToLower(v) {
	case "yes", "true", "1":
		return true
	default:
		return false
	}
}
