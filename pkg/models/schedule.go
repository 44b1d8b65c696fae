package models

// Pairing is one slot in a week: either a matchup or a bye.
// Team references are indices into League.Teams.
type Pairing struct {
	Home int   `json:"home"`
	Away int   `json:"away"`
	Bye  []int `json:"bye,omitempty"`
}

// IsBye reports whether this pairing is a bye slot
func (p Pairing) IsBye() bool {
	return len(p.Bye) > 0
}

// Week is the ordered set of pairings for one schedule slot
type Week struct {
	Pairings []Pairing `json:"pairings"`
}

// Schedule is the season's fixed week sequence.
// Week numbers are 1-based externally; Weeks is indexed week-1.
type Schedule struct {
	Weeks []Week `json:"weeks"`
}

// Length is the number of regular-season weeks
func (s Schedule) Length() int {
	return len(s.Weeks)
}

// WeekAt returns the pairings for a 1-based week number
func (s Schedule) WeekAt(week int) (Week, bool) {
	if week < 1 || week > len(s.Weeks) {
		return Week{}, false
	}
	return s.Weeks[week-1], true
}
