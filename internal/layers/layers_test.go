package layers

import (
	"errors"
	"reflect"
	"testing"
)

func hideAll(t *testing.T, c *Controller) {
	t.Helper()
	for _, l := range All {
		if err := c.SetVisible(l, false); err != nil {
			t.Fatalf("SetVisible(%s): %v", l, err)
		}
	}
}

func TestDefaults(t *testing.T) {
	c := NewController(ColorUniform)
	want := map[Layer]bool{Freeways: true, Exits: true, Junctions: true, Links: false, Incident: true}
	if got := c.State(); !reflect.DeepEqual(got, want) {
		t.Errorf("default state = %v, want %v", got, want)
	}
}

func TestLegendAllHidden(t *testing.T) {
	c := NewController(ColorUniform)
	hideAll(t, c)

	got := c.Legend()
	if len(got) != 1 || got[0] != Placeholder {
		t.Errorf("Legend() = %v, want only the placeholder", got)
	}
}

func TestLegendFreewaysOnly(t *testing.T) {
	c := NewController(ColorUniform)
	hideAll(t, c)
	if err := c.SetVisible(Freeways, true); err != nil {
		t.Fatal(err)
	}

	got := c.Legend()
	wantColors := []string{"#FF0000", "#0066FF", "#00AA00"}
	if len(got) != len(wantColors) {
		t.Fatalf("expected %d rows, got %d: %v", len(wantColors), len(got), got)
	}
	for i, e := range got {
		if e.Color != wantColors[i] {
			t.Errorf("row %d colour = %s, want %s", i, e.Color, wantColors[i])
		}
		if e.Layer != Freeways || e.Symbol != SymbolLine {
			t.Errorf("row %d = %+v, want a freeway line row", i, e)
		}
	}
}

func TestLegendOrderFollowsLayerPriority(t *testing.T) {
	c := NewController(ColorUniform)
	for _, l := range All {
		if err := c.SetVisible(l, true); err != nil {
			t.Fatal(err)
		}
	}

	var order []Layer
	for _, e := range c.Legend() {
		if len(order) == 0 || order[len(order)-1] != e.Layer {
			order = append(order, e.Layer)
		}
	}
	if !reflect.DeepEqual(order, All) {
		t.Errorf("legend layer order = %v, want %v", order, All)
	}
}

func TestLegendJunctionColoring(t *testing.T) {
	tests := []struct {
		coloring Coloring
		rows     int
	}{
		{ColorUniform, 1},
		{ColorPerHighway, 3},
	}

	for _, tt := range tests {
		t.Run(string(tt.coloring), func(t *testing.T) {
			c := NewController(tt.coloring)
			hideAll(t, c)
			_ = c.SetVisible(Junctions, true)
			if got := c.Legend(); len(got) != tt.rows {
				t.Errorf("expected %d junction rows, got %d", tt.rows, len(got))
			}
		})
	}
}

func TestSetVisibleIdempotent(t *testing.T) {
	once := NewController(ColorUniform)
	twice := NewController(ColorUniform)

	_ = once.SetVisible(Links, true)
	_ = twice.SetVisible(Links, true)
	_ = twice.SetVisible(Links, true)

	if !reflect.DeepEqual(once.State(), twice.State()) {
		t.Errorf("state differs: %v vs %v", once.State(), twice.State())
	}
	if !reflect.DeepEqual(once.Legend(), twice.Legend()) {
		t.Errorf("legend differs: %v vs %v", once.Legend(), twice.Legend())
	}
}

func TestSetVisibleUnknownLayer(t *testing.T) {
	c := NewController(ColorUniform)
	before := c.State()

	err := c.SetVisible("radar", true)
	if !errors.Is(err, ErrUnknownLayer) {
		t.Fatalf("expected ErrUnknownLayer, got %v", err)
	}
	if !reflect.DeepEqual(before, c.State()) {
		t.Error("unknown layer must not change state")
	}
}

func TestParse(t *testing.T) {
	if l, err := Parse("links"); err != nil || l != Links {
		t.Errorf("Parse(links) = %q, %v", l, err)
	}
	if _, err := Parse("Links"); !errors.Is(err, ErrUnknownLayer) {
		t.Errorf("Parse is case sensitive, got %v", err)
	}
	if _, err := ParseColoring("rainbow"); err == nil {
		t.Error("ParseColoring should reject unknown modes")
	}
}
