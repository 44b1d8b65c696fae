package models

// Position identifies a player's roster slot
type Position string

const (
	QB Position = "QB"
	RB Position = "RB"
	WR Position = "WR"
	TE Position = "TE"
	OL Position = "OL"
	DL Position = "DL"
	LB Position = "LB"
	CB Position = "CB"
	S  Position = "S"
	K  Position = "K"
	P  Position = "P"
)

// DefensivePositions are the groups that feed team defensive strength
var DefensivePositions = []Position{DL, LB, CB, S}

// OffensivePositions are the groups affected by an offense-focused training week
var OffensivePositions = []Position{QB, RB, WR, TE, OL}

// DevStatus tags a player's current development arc
type DevStatus string

const (
	DevNormal     DevStatus = "NORMAL"
	DevBreakout   DevStatus = "BREAKOUT"
	DevLeap       DevStatus = "LEAP"
	DevSecondWind DevStatus = "SECOND_WIND"
	DevStagnated  DevStatus = "STAGNATED"
	DevDeclining  DevStatus = "DECLINING"
)

// Injury is one active or healing injury on a player.
// Impact is the fractional performance discount while WeeksOut > 0.
type Injury struct {
	Name     string  `json:"name"`
	WeeksOut int     `json:"weeks_out"`
	Impact   float64 `json:"impact"`
}

// StatLine is a sparse stat-name -> total mapping ("passYds", "tackles", ...)
type StatLine map[string]int

// Clone returns an independent copy of the stat line
func (s StatLine) Clone() StatLine {
	out := make(StatLine, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Add folds another stat line into this one
func (s StatLine) Add(other StatLine) {
	for k, v := range other {
		s[k] += v
	}
}

// PlayerStats holds the three accumulation buckets.
// Game is replaced every simulated game, Season resets each year,
// Career only ever grows.
type PlayerStats struct {
	Game   StatLine `json:"game"`
	Season StatLine `json:"season"`
	Career StatLine `json:"career"`
}

// Player is a roster member
type Player struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Position  Position       `json:"position"`
	Age       int            `json:"age"`
	Overall   int            `json:"overall"`
	Potential int            `json:"potential"`
	Ratings   map[string]int `json:"ratings"`

	DevStatus DevStatus `json:"dev_status"`
	XP        int       `json:"xp"`

	Stats    PlayerStats `json:"stats"`
	Injuries []Injury    `json:"injuries,omitempty"`

	// WeeksWithTeam feeds the tenure term of the performance model (17 weeks = 1 year)
	WeeksWithTeam      int `json:"weeks_with_team"`
	SeasonStartOverall int `json:"season_start_overall"`

	Retired bool       `json:"retired,omitempty"`
	News    []NewsItem `json:"news,omitempty"`
}

// Rating returns a sub-rating, defaulting to 60 when the attribute is absent
func (p *Player) Rating(name string) int {
	if v, ok := p.Ratings[name]; ok {
		return v
	}
	return 60
}

// TenureYears converts weeks with team into seasons
func (p *Player) TenureYears() float64 {
	return float64(p.WeeksWithTeam) / 17.0
}

// ResetSeasonStats clears the per-game and per-season buckets.
// Career totals are never touched here.
func (p *Player) ResetSeasonStats() {
	p.Stats.Game = StatLine{}
	p.Stats.Season = StatLine{}
}
