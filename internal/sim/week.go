package sim

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"

	"github.com/XavierBriggs/gridiron/internal/development"
	"github.com/XavierBriggs/gridiron/pkg/contracts"
	"github.com/XavierBriggs/gridiron/pkg/models"
	"github.com/google/uuid"
)

var (
	// ErrOffseason means the league must start a new season before simulating
	ErrOffseason = errors.New("sim: league is in the offseason")

	// ErrSeasonComplete means the playoffs have a winner and the offseason
	// has not started yet
	ErrSeasonComplete = errors.New("sim: regular season and playoffs complete")

	// ErrWeekAlreadySimulated guards the append-only results store
	ErrWeekAlreadySimulated = errors.New("sim: results already recorded for this week")
)

// OverrideResult bypasses simulation for one matchup; used by external
// replay and testing tooling
type OverrideResult struct {
	HomeScore int `json:"home_score"`
	AwayScore int `json:"away_score"`
}

// OverrideKey builds the home-away index key the override lookup uses
func OverrideKey(home, away int) string {
	return fmt.Sprintf("%d-%d", home, away)
}

// WeekOptions tunes one SimulateWeek call
type WeekOptions struct {
	Overrides map[string]OverrideResult `json:"overrides,omitempty"`
}

// WeekSummary is what one advance call produced
type WeekSummary struct {
	GamesSimulated  int                 `json:"games_simulated"`
	Results         []models.GameResult `json:"results"`
	PlayoffsStarted bool                `json:"playoffs_started,omitempty"`
}

// Engine drives the batch week loop: simulate every pairing, merge results
// deterministically, update records, then run development once per team.
type Engine struct {
	collab contracts.Collaborators
	game   *GameSimulator
	dev    *development.Engine
}

// NewEngine builds a week engine with collaborator defaults filled
func NewEngine(c contracts.Collaborators) *Engine {
	c = c.WithDefaults()
	return &Engine{
		collab: c,
		game:   NewGameSimulator(c),
		dev:    development.NewEngine(c),
	}
}

// SimulateWeek advances the league by one week. Games within the week have
// no data dependency (a team appears in at most one pairing), so each runs
// on its own goroutine with its own seeded RNG; results merge in pairing
// order so a fixed seed reproduces identical output.
func (e *Engine) SimulateWeek(ctx context.Context, lg *models.League, opts WeekOptions) (*WeekSummary, error) {
	if lg == nil || len(lg.Teams) == 0 {
		return nil, fmt.Errorf("sim: league has no teams")
	}
	if lg.Offseason {
		return nil, ErrOffseason
	}

	week := lg.Week
	if week > lg.Schedule.Length() {
		return e.afterRegularSeason(lg)
	}
	if _, done := lg.ResultsByWeek[week-1]; done {
		return nil, ErrWeekAlreadySimulated
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pairings := lg.Schedule.Weeks[week-1].Pairings
	results := make([]*models.GameResult, len(pairings))

	var wg sync.WaitGroup
	for i, pairing := range pairings {
		if pairing.IsBye() {
			results[i] = &models.GameResult{
				ID:   uuid.NewString(),
				Week: week,
				Year: lg.Year,
				Bye:  append([]int(nil), pairing.Bye...),
			}
			continue
		}

		home := lg.TeamByID(pairing.Home)
		away := lg.TeamByID(pairing.Away)
		if home == nil || away == nil {
			log.Printf("[sim] week %d: pairing %d references unknown team (%d vs %d), skipping",
				week, i, pairing.Home, pairing.Away)
			continue
		}

		if ov, ok := opts.Overrides[OverrideKey(pairing.Home, pairing.Away)]; ok {
			results[i] = &models.GameResult{
				ID:         uuid.NewString(),
				Week:       week,
				Year:       lg.Year,
				HomeID:     home.ID,
				AwayID:     away.ID,
				HomeName:   home.Name,
				AwayName:   away.Name,
				HomeScore:  ov.HomeScore,
				AwayScore:  ov.AwayScore,
				HomeWin:    ov.HomeScore > ov.AwayScore,
				Overridden: true,
			}
			continue
		}

		wg.Add(1)
		go func(idx int, home, away *models.Team) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(gameSeed(lg, week, idx)))
			hs, as, err := e.game.SimulateGame(home, away, rng)
			if err != nil {
				log.Printf("[sim] week %d: %s at %s failed: %v, skipping game",
					week, away.Abbr, home.Abbr, err)
				return
			}
			// snapshot before anything touches season totals
			box := &models.BoxScore{
				Home: CaptureSnapshot(home),
				Away: CaptureSnapshot(away),
			}
			results[idx] = &models.GameResult{
				ID:        uuid.NewString(),
				Week:      week,
				Year:      lg.Year,
				HomeID:    home.ID,
				AwayID:    away.ID,
				HomeName:  home.Name,
				AwayName:  away.Name,
				HomeScore: hs,
				AwayScore: as,
				HomeWin:   hs > as,
				Box:       box,
			}
		}(i, home, away)
	}
	wg.Wait()

	// merge in pairing order: accumulate season stats, then apply records
	summary := &WeekSummary{}
	stored := make([]models.GameResult, 0, len(results))
	for _, res := range results {
		if res == nil {
			continue // skipped game: warning already logged
		}
		if res.IsBye() {
			stored = append(stored, *res)
			continue
		}
		home := lg.TeamByID(res.HomeID)
		away := lg.TeamByID(res.AwayID)
		if !res.Overridden {
			AccumulateSeasonStats(home)
			AccumulateSeasonStats(away)
		}
		applyRecord(home, away, res)
		summary.GamesSimulated++
		stored = append(stored, *res)
	}

	lg.ResultsByWeek[week-1] = stored
	lg.Week++ // exactly once per call

	devRNG := rand.New(rand.NewSource(gameSeed(lg, week, 0x5eed)))
	e.dev.RunWeeklyDevelopment(lg, devRNG)

	for _, t := range lg.Teams {
		e.collab.Hooks.UpdateDepthChart(t)
		e.collab.Hooks.UpdateChemistry(t)
		t.GamePlan = models.DefaultGamePlan()
		tickInjuries(t)
		for _, p := range t.Roster {
			p.WeeksWithTeam++
		}
	}

	summary.Results = stored
	return summary, nil
}

// afterRegularSeason handles advance calls past the schedule: the first one
// kicks off the external playoff subsystem, later ones report the season as
// complete.
func (e *Engine) afterRegularSeason(lg *models.League) (*WeekSummary, error) {
	if lg.HasPlayoffWinner() {
		return nil, ErrSeasonComplete
	}
	log.Printf("[sim] league %s: regular season over, handing off to playoffs", lg.ID)
	e.collab.News.AddNewsItem(lg,
		fmt.Sprintf("The %d playoffs are set", lg.Year),
		"The regular season is in the books. Playoff seeding is locked.",
		models.NewsPlayoffs)
	return &WeekSummary{PlayoffsStarted: true}, nil
}

func applyRecord(home, away *models.Team, res *models.GameResult) {
	home.Record.PointsFor += res.HomeScore
	home.Record.PointsAgainst += res.AwayScore
	away.Record.PointsFor += res.AwayScore
	away.Record.PointsAgainst += res.HomeScore

	switch {
	case res.HomeScore > res.AwayScore:
		home.Record.Wins++
		away.Record.Losses++
	case res.HomeScore < res.AwayScore:
		away.Record.Wins++
		home.Record.Losses++
	default:
		home.Record.Ties++
		away.Record.Ties++
	}
}

// tickInjuries burns one week off every active injury
func tickInjuries(t *models.Team) {
	for _, p := range t.Roster {
		for i := range p.Injuries {
			if p.Injuries[i].WeeksOut > 0 {
				p.Injuries[i].WeeksOut--
			}
		}
	}
}

// gameSeed derives a deterministic per-game seed from the league seed,
// season, week, and pairing index
func gameSeed(lg *models.League, week, idx int) int64 {
	return lg.Seed ^ (int64(lg.Year) << 20) ^ (int64(week) << 10) ^ int64(idx)
}
