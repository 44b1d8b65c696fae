package models

// Coach is a staff member whose development rating feeds weekly training
type Coach struct {
	Name        string `json:"name"`
	Development int    `json:"development"` // 0-99
}

// Staff is a team's coaching staff
type Staff struct {
	HeadCoach      Coach `json:"head_coach"`
	OffCoordinator Coach `json:"off_coordinator"`
	DefCoordinator Coach `json:"def_coordinator"`
}

// AverageDevelopment is the staff-wide development rating
func (s Staff) AverageDevelopment() float64 {
	return float64(s.HeadCoach.Development+s.OffCoordinator.Development+s.DefCoordinator.Development) / 3.0
}

// Record is a team's season win/loss ledger
type Record struct {
	Wins          int `json:"wins"`
	Losses        int `json:"losses"`
	Ties          int `json:"ties"`
	PointsFor     int `json:"points_for"`
	PointsAgainst int `json:"points_against"`
}

// GamesPlayed counts non-bye games recorded this season
func (r Record) GamesPlayed() int {
	return r.Wins + r.Losses + r.Ties
}

// GamePlan is the weekly play-calling selection; reset after every week
type GamePlan struct {
	Offense string `json:"offense"` // "balanced", "air_raid", "ground_and_pound"
	Defense string `json:"defense"` // "balanced", "blitz_heavy", "coverage"
	Risk    string `json:"risk"`    // "conservative", "normal", "aggressive"
}

// DefaultGamePlan is what every team falls back to at the start of a week
func DefaultGamePlan() GamePlan {
	return GamePlan{Offense: "balanced", Defense: "balanced", Risk: "normal"}
}

// Team is a franchise
type Team struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Abbr   string `json:"abbr"`
	Roster []*Player `json:"roster"`

	Record   Record   `json:"record"`
	Staff    Staff    `json:"staff"`
	GamePlan GamePlan `json:"game_plan"`

	// CapRoom is salary-cap headroom in whole dollars; the cap-rollover hook
	// carries unused room into the next season.
	CapRoom int64 `json:"cap_room"`
}

// PlayersAt returns all roster members at a position, in roster order
func (t *Team) PlayersAt(pos Position) []*Player {
	var out []*Player
	for _, p := range t.Roster {
		if p.Position == pos {
			out = append(out, p)
		}
	}
	return out
}
