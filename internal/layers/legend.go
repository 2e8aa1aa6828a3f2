package layers

import "github.com/Zachdehooge/loop-map/internal/freeway"

// Symbol is the swatch shape drawn next to a legend row
type Symbol string

const (
	SymbolLine   Symbol = "line"
	SymbolCircle Symbol = "circle"
	SymbolDash   Symbol = "dash"
	SymbolStar   Symbol = "star"
	SymbolNone   Symbol = "none"
)

// Entry is one legend row
type Entry struct {
	Layer  Layer  `json:"layer,omitempty"`
	Label  string `json:"label"`
	Color  string `json:"color,omitempty"`
	Symbol Symbol `json:"symbol"`
}

// Placeholder is the only row shown when every layer is hidden
var Placeholder = Entry{Label: "No layers visible", Symbol: SymbolNone}

// Rows returns a layer's fixed legend rows
func Rows(l Layer, coloring Coloring) []Entry {
	switch l {
	case Freeways:
		rows := make([]Entry, 0, len(freeway.Highways))
		for _, h := range freeway.Highways {
			rows = append(rows, Entry{Layer: Freeways, Label: h.LongName(), Color: h.Color(), Symbol: SymbolLine})
		}
		return rows
	case Exits:
		return []Entry{{Layer: Exits, Label: "Freeway Exit", Color: "#FFD700", Symbol: SymbolCircle}}
	case Junctions:
		if coloring == ColorPerHighway {
			rows := make([]Entry, 0, len(freeway.Highways))
			for _, h := range freeway.Highways {
				rows = append(rows, Entry{Layer: Junctions, Label: string(h) + " Junction", Color: h.Color(), Symbol: SymbolCircle})
			}
			return rows
		}
		return []Entry{{Layer: Junctions, Label: JunctionLabel, Color: JunctionColor, Symbol: SymbolCircle}}
	case Links:
		return []Entry{{Layer: Links, Label: "Ramp / Link", Color: "#8A2BE2", Symbol: SymbolDash}}
	case Incident:
		return []Entry{{Layer: Incident, Label: "Incident Location", Color: "#FF00FF", Symbol: SymbolStar}}
	default:
		return nil
	}
}

// RowsByLayer returns every layer's rows keyed by name, for the page to
// rebuild the legend without a round trip.
func RowsByLayer(coloring Coloring) map[Layer][]Entry {
	out := make(map[Layer][]Entry, len(All))
	for _, l := range All {
		out[l] = Rows(l, coloring)
	}
	return out
}
