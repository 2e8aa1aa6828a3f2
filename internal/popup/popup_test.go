package popup

import (
	"testing"

	"github.com/paulmach/orb"

	"github.com/Zachdehooge/loop-map/internal/dataset"
	"github.com/Zachdehooge/loop-map/internal/freeway"
	"github.com/Zachdehooge/loop-map/internal/layers"
)

func labels(d Descriptor) []string {
	out := make([]string, len(d.Rows))
	for i, r := range d.Rows {
		out[i] = r.Label
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func checkActions(t *testing.T, d Descriptor, lon, lat float64) {
	t.Helper()
	if len(d.Actions) != 2 {
		t.Fatalf("expected zoom and close actions, got %+v", d.Actions)
	}
	zoom, closeAction := d.Actions[0], d.Actions[1]
	if zoom.Type != ActionZoom || zoom.Lon != lon || zoom.Lat != lat || zoom.Zoom != ZoomLevel {
		t.Errorf("zoom action = %+v, want (%f, %f)", zoom, lon, lat)
	}
	if closeAction.Type != ActionClose || closeAction.Lon != 0 || closeAction.Lat != 0 {
		t.Errorf("close action should carry no coordinates, got %+v", closeAction)
	}
}

func TestExitPopup(t *testing.T) {
	exit, _ := freeway.ExitByNumber(1)
	d := For(ExitSelection{Exit: exit})

	if d.Kind != KindExit || d.Title != "Exit 1" || d.Subtitle != exit.Name {
		t.Errorf("unexpected header: %+v", d)
	}
	if d.Accent != freeway.I110.Color() {
		t.Errorf("accent = %s, want I-110 colour", d.Accent)
	}
	if got := labels(d); !equal(got, []string{"Location", "Exit Reference", "Freeway"}) {
		t.Errorf("rows = %v", got)
	}
	if d.Rows[0].Value != "34.059887°N, 118.251852°W" {
		t.Errorf("location = %q", d.Rows[0].Value)
	}
	checkActions(t, d, exit.Coord.Lon(), exit.Coord.Lat())
}

func TestExitPopupWithoutRef(t *testing.T) {
	exit := freeway.Exit{Number: 99, Name: "Test", Highway: freeway.I10, Coord: orb.Point{-118.2, 34.0}}
	if got := labels(For(ExitSelection{Exit: exit})); !equal(got, []string{"Location", "Freeway"}) {
		t.Errorf("rows = %v, want no Exit Reference row", got)
	}
}

func TestJunctionPopupColoring(t *testing.T) {
	j := dataset.Junction{Ref: "135B", Coord: orb.Point{-118.214553, 34.047287}, Highway: freeway.I10}

	uniform := For(JunctionSelection{Junction: j, Coloring: layers.ColorUniform})
	if uniform.Rows[1].Value != layers.JunctionLabel || uniform.Accent != layers.JunctionColor {
		t.Errorf("uniform junction popup = %+v", uniform)
	}

	perHighway := For(JunctionSelection{Junction: j, Coloring: layers.ColorPerHighway})
	if perHighway.Rows[1].Value != "I-10" || perHighway.Accent != freeway.I10.Color() {
		t.Errorf("per-highway junction popup = %+v", perHighway)
	}
	checkActions(t, perHighway, j.Coord.Lon(), j.Coord.Lat())
}

func TestLinkPopupOmitsMissingTags(t *testing.T) {
	full := dataset.Link{
		Destination:    "Downtown",
		DestinationRef: "I 110",
		Lanes:          "2",
		OneWay:         true,
		Line:           orb.LineString{{-118.25, 34.05}, {-118.251, 34.052}},
	}
	d := For(LinkSelection{Link: full})
	if d.Title != "Ramp to Downtown" {
		t.Errorf("title = %q", d.Title)
	}
	if got := labels(d); !equal(got, []string{"Destination", "Destination Ref", "Lanes", "One-way", "Location"}) {
		t.Errorf("rows = %v", got)
	}
	checkActions(t, d, -118.25, 34.05)

	bare := For(LinkSelection{Link: dataset.Link{Line: orb.LineString{{-118.2, 34.0}}}})
	if bare.Title != "Ramp" {
		t.Errorf("title = %q", bare.Title)
	}
	if got := labels(bare); !equal(got, []string{"Location"}) {
		t.Errorf("rows = %v", got)
	}
}

func TestIncidentPopup(t *testing.T) {
	d := For(IncidentSelection{Incident: freeway.TheIncident})

	if d.Kind != KindIncident || d.Title != "Incident Location" {
		t.Errorf("unexpected header: %+v", d)
	}
	want := map[string]string{
		"Date":        "August 12",
		"Coordinates": "34.04353°N, 118.24728°W",
		"Address":     "Los Angeles, CA 90014",
	}
	for _, r := range d.Rows {
		if want[r.Label] != r.Value {
			t.Errorf("%s = %q, want %q", r.Label, r.Value, want[r.Label])
		}
	}
	checkActions(t, d, freeway.TheIncident.Coord.Lon(), freeway.TheIncident.Coord.Lat())
}

func TestFormatCoordHemispheres(t *testing.T) {
	if got := FormatCoord(orb.Point{151.2, -33.8}, 1); got != "33.8°S, 151.2°E" {
		t.Errorf("FormatCoord = %q", got)
	}
}
