package freeway

import "fmt"

// Exit is a numbered access point on the loop
type Exit struct {
	Number  int        `json:"num"`
	Name    string     `json:"name"`
	Highway Highway    `json:"freeway"`
	Coord   Coordinate `json:"coords"`
	Ref     string     `json:"ref,omitempty"`
}

// Label is the text drawn on the exit marker
func (e Exit) Label() string {
	return fmt.Sprintf("%d", e.Number)
}

// Incident is the fixed point the map is centred on
type Incident struct {
	Title   string     `json:"title"`
	Date    string     `json:"date"`
	Address string     `json:"address"`
	Coord   Coordinate `json:"coords"`
}

// TheIncident is the session's incident; it never changes
var TheIncident = Incident{
	Title:   "Incident Location",
	Date:    "August 12",
	Address: "Los Angeles, CA 90014",
	Coord:   Coordinate{-118.24727530262695, 34.04353275097726},
}

// exits run clockwise around the loop starting from the Four Level Interchange
var exits = []Exit{
	// I-110, west edge, north to south
	{1, "US-101 (Four Level Interchange)", I110, Coordinate{-118.2518519, 34.0598866}, "24A"},
	{2, "Hill St / Civic Center", I110, Coordinate{-118.241274, 34.0662594}, "24B"},
	{3, "6th St / 9th St", I110, Coordinate{-118.2666035, 34.0344255}, "13"},
	{4, "Adams Blvd", I110, Coordinate{-118.28685, 34.0368014}, "13A"},
	{5, "Exposition Blvd", I110, Coordinate{-118.2572282, 34.030077}, "14B"},
	{6, "I-10 (Santa Monica Fwy)", I110, Coordinate{-118.2436, 34.0237846}, "15A"},

	// I-10, south edge, west to east
	{7, "I-110 / Harbor Fwy", I10, Coordinate{-118.237005, 34.0254978}, "16A"},
	{8, "Grand Ave / Olive St", I10, Coordinate{-118.2225479, 34.049988}, "1D"},
	{9, "Los Angeles St", I10, Coordinate{-118.214553, 34.047287}, "135B"},
	{10, "Alameda St", I10, Coordinate{-118.2139046, 34.0511029}, "135C"},
	{11, "US-101 / I-5 (East LA Interchange)", I10, Coordinate{-118.2189695, 34.0405274}, "East LA"},

	// US-101, east and north edges
	{12, "Alameda St / Mission Rd", US101, Coordinate{-118.2193243, 34.0848833}, "26A"},
	{13, "Spring St / Main St", US101, Coordinate{-118.2250356, 34.0810016}, "26B"},
	{14, "Broadway / Hill St", US101, Coordinate{-118.2311816, 34.0764317}, "25"},
	{15, "Temple St", US101, Coordinate{-118.2581893, 34.0687318}, "4A"},
	{16, "Grand Ave", US101, Coordinate{-118.2441147, 34.0579715}, "2C"},
	{17, "Hill St", US101, Coordinate{-118.244475, 34.0584076}, "3"},
	{18, "SR-110 (Four Level - completes loop)", US101, Coordinate{-118.2782446, 34.0763978}, "5B"},
}

// Exits returns a copy of the curated exit list
func Exits() []Exit {
	out := make([]Exit, len(exits))
	copy(out, exits)
	return out
}

// ExitByNumber looks up an exit by its marker number
func ExitByNumber(n int) (Exit, bool) {
	for _, e := range exits {
		if e.Number == n {
			return e, true
		}
	}
	return Exit{}, false
}
