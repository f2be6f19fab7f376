package booking

import "sort"

// Venue describes one bookable campus resource. The set is fixed: venues are
// physical spaces, not user-managed records.
type Venue struct {
	ID       string
	Name     string
	Capacity int
	// MultiDay venues are booked as {check-in, check-out} date spans instead
	// of single-day time slots.
	MultiDay bool
}

// MaxGuestsPerRoom bounds delegate residence occupancy.
const MaxGuestsPerRoom = 2

var venues = map[string]Venue{
	"alumni":     {ID: "alumni", Name: "Alumni Hall", Capacity: 60},
	"assembly":   {ID: "assembly", Name: "Assembly Hall", Capacity: 300},
	"auditorium": {ID: "auditorium", Name: "Auditorium", Capacity: 500},
	"library":    {ID: "library", Name: "Library Seminar Hall", Capacity: 50},
	"techpark":   {ID: "techpark", Name: "Tech Park", Capacity: 100},
	"delegate":   {ID: "delegate", Name: "Delegate Residence", MultiDay: true},
}

// VenueByID looks up a venue by its identifier.
func VenueByID(id string) (Venue, bool) {
	v, ok := venues[id]
	return v, ok
}

// Venues returns the full catalog ordered by id, for listing endpoints.
func Venues() []Venue {
	out := make([]Venue, 0, len(venues))
	for _, v := range venues {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
