package models

// TeamBox maps player ID -> that player's stat line for one game
type TeamBox map[string]StatLine

// BoxScore is the per-player snapshot for both sides of one game.
// Captured from stats.game before season accumulation; immutable afterwards.
type BoxScore struct {
	Home TeamBox `json:"home"`
	Away TeamBox `json:"away"`
}

// GameResult is the persisted outcome of one simulated game (or a bye placeholder)
type GameResult struct {
	ID        string `json:"id"`
	Week      int    `json:"week"`
	Year      int    `json:"year"`
	HomeID    int    `json:"home_id"`
	AwayID    int    `json:"away_id"`
	HomeName  string `json:"home_name,omitempty"`
	AwayName  string `json:"away_name,omitempty"`
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
	HomeWin   bool   `json:"home_win"`

	// Bye is set (and the score fields zero) for bye placeholders
	Bye []int `json:"bye,omitempty"`

	// Overridden marks results injected by replay tooling instead of simulation
	Overridden bool `json:"overridden,omitempty"`

	Box *BoxScore `json:"box_score,omitempty"`
}

// IsBye reports whether this result is a bye placeholder
func (r GameResult) IsBye() bool {
	return len(r.Bye) > 0
}
