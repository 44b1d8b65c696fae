package models

// TrainingIntensity is the league-wide weekly training setting
type TrainingIntensity string

const (
	IntensityLow    TrainingIntensity = "low"
	IntensityNormal TrainingIntensity = "normal"
	IntensityHeavy  TrainingIntensity = "heavy"
)

// TrainingFocus biases weekly experience toward one side of the ball
type TrainingFocus string

const (
	FocusBalanced TrainingFocus = "balanced"
	FocusOffense  TrainingFocus = "offense"
	FocusDefense  TrainingFocus = "defense"
)

// TrainingSettings is the global weekly development configuration
type TrainingSettings struct {
	Intensity TrainingIntensity `json:"intensity"`
	Focus     TrainingFocus     `json:"focus"`
}

// League is the full mutable state for one franchise save
type League struct {
	ID   string `json:"id"`
	Year int    `json:"year"`

	// Week is the 1-based current week counter
	Week      int  `json:"week"`
	Offseason bool `json:"offseason"`

	Teams    []*Team  `json:"teams"`
	Schedule Schedule `json:"schedule"`

	// ResultsByWeek is append-only: one entry set per 0-based week index
	ResultsByWeek map[int][]GameResult `json:"results_by_week"`

	// PlayoffWinner is the champion team ID once the external playoff
	// subsystem records one; -1 means no winner yet.
	PlayoffWinner int `json:"playoff_winner"`

	Training TrainingSettings `json:"training"`
	News     []NewsItem       `json:"news,omitempty"`

	// Seed drives deterministic simulation for replays
	Seed int64 `json:"seed"`
}

// NewLeague normalizes a league payload into a simulatable state
func NewLeague(id string, year int, teams []*Team, schedule Schedule, seed int64) *League {
	for _, t := range teams {
		for _, p := range t.Roster {
			if p.DevStatus == "" {
				p.DevStatus = DevNormal
			}
		}
	}
	return &League{
		ID:            id,
		Year:          year,
		Week:          1,
		Teams:         teams,
		Schedule:      schedule,
		ResultsByWeek: make(map[int][]GameResult),
		PlayoffWinner: -1,
		Training:      TrainingSettings{Intensity: IntensityNormal, Focus: FocusBalanced},
		Seed:          seed,
	}
}

// TeamByID resolves a team index, returning nil when out of range
func (lg *League) TeamByID(id int) *Team {
	if id < 0 || id >= len(lg.Teams) {
		return nil
	}
	return lg.Teams[id]
}

// HasPlayoffWinner reports whether the playoff subsystem has recorded a champion
func (lg *League) HasPlayoffWinner() bool {
	return lg.PlayoffWinner >= 0
}
