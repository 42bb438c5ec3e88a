package domain

import "fmt"

// Settlement is a validated gazetteer record.
//
// Ancient names are not unique (two distinct "Naxos" records exist), so a
// Settlement is identified by Identity, never by name alone.
// Values are immutable once a gazetteer has been built from them.
type Settlement struct {
	AncientName string
	ModernName  string
	Latitude    float64
	Longitude   float64
	Type        string
}

// Identity is the composite key of a Settlement.
type Identity struct {
	AncientName string
	Latitude    float64
	Longitude   float64
}

func (s Settlement) ID() Identity {
	return Identity{AncientName: s.AncientName, Latitude: s.Latitude, Longitude: s.Longitude}
}

func (s Settlement) Coordinates() Coordinates {
	return Coordinates{Lon: s.Longitude, Lat: s.Latitude}
}

// Candidate returns the settlement as loader input, so a validated set can be
// fed back into a new gazetteer unchanged.
func (s Settlement) Candidate() Candidate {
	return Candidate{
		AncientName: s.AncientName,
		ModernName:  s.ModernName,
		Latitude:    s.Latitude,
		Longitude:   s.Longitude,
		Type:        s.Type,
	}
}

func (id Identity) String() string {
	return fmt.Sprintf("%s@%g,%g", id.AncientName, id.Latitude, id.Longitude)
}

// Candidates converts a slice of settlements back to loader input.
func Candidates(settlements []Settlement) []Candidate {
	out := make([]Candidate, 0, len(settlements))
	for _, s := range settlements {
		out = append(out, s.Candidate())
	}
	return out
}
