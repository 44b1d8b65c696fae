// Package season owns the phase state machine (regular season, playoff
// handoff, offseason, next-season reset) and the once-per-year rollover
// bookkeeping. Transition guards here are what keep a double-clicked
// advance from corrupting save state.
package season

import (
	"context"
	"fmt"
	"log"

	"github.com/XavierBriggs/gridiron/internal/sim"
	"github.com/XavierBriggs/gridiron/pkg/contracts"
	"github.com/XavierBriggs/gridiron/pkg/models"
)

// Phase is where a league sits in its yearly cycle
type Phase string

const (
	PhaseRegularSeason   Phase = "REGULAR_SEASON"
	PhasePlayoffsPending Phase = "PLAYOFFS_PENDING"
	PhaseOffseason       Phase = "OFFSEASON"
	PhaseNewSeasonReady  Phase = "NEW_SEASON_READY"
)

// Controller advances a league through its season phases
type Controller struct {
	collab contracts.Collaborators
	engine *sim.Engine
}

// NewController builds a phase controller sharing the week engine's collaborators
func NewController(c contracts.Collaborators, engine *sim.Engine) *Controller {
	return &Controller{collab: c.WithDefaults(), engine: engine}
}

// CurrentPhase derives the phase from league state
func CurrentPhase(lg *models.League) Phase {
	switch {
	case lg.Offseason:
		return PhaseOffseason
	case lg.Week > lg.Schedule.Length():
		return PhasePlayoffsPending
	default:
		return PhaseRegularSeason
	}
}

// AdvanceWeek runs the batch week simulator for the current week
func (c *Controller) AdvanceWeek(ctx context.Context, lg *models.League, opts sim.WeekOptions) (*sim.WeekSummary, error) {
	return c.engine.SimulateWeek(ctx, lg, opts)
}

// StartOffseason moves PLAYOFFS_PENDING -> OFFSEASON and runs rollover
// exactly once. A second call while the offseason flag is already set is a
// silent no-op: double advances are expected under user double-clicks, not
// errors. Returns whether this call performed the transition.
func (c *Controller) StartOffseason(lg *models.League) (bool, error) {
	if lg.Offseason {
		log.Printf("[season] league %s: offseason already started, ignoring", lg.ID)
		return false, nil
	}
	if lg.Week <= lg.Schedule.Length() {
		return false, fmt.Errorf("season: %d regular-season weeks remain", lg.Schedule.Length()-lg.Week+1)
	}
	if !lg.HasPlayoffWinner() {
		return false, fmt.Errorf("season: playoffs have not produced a winner")
	}

	// commit the transition before running hooks: a half-applied rollover is
	// less harmful than a stuck season
	lg.Offseason = true
	c.runRollover(lg)
	return true, nil
}

// StartNewSeason moves OFFSEASON -> NEW_SEASON_READY: week back to 1, game
// and season stats cleared (career untouched), records zeroed, year
// incremented, schedule regenerated. No-op when the league is not in the
// offseason. Returns whether this call performed the transition.
func (c *Controller) StartNewSeason(lg *models.League) (bool, error) {
	if !lg.Offseason {
		log.Printf("[season] league %s: not in offseason, ignoring new-season request", lg.ID)
		return false, nil
	}

	for _, t := range lg.Teams {
		t.Record = models.Record{}
		t.GamePlan = models.DefaultGamePlan()
		for _, p := range t.Roster {
			p.ResetSeasonStats()
			p.SeasonStartOverall = p.Overall
			p.Age++
		}
	}

	lg.Year++
	lg.Week = 1
	lg.Offseason = false
	lg.PlayoffWinner = -1
	lg.ResultsByWeek = make(map[int][]models.GameResult)

	if c.collab.Scheduler != nil {
		schedule, err := c.collab.Scheduler.GenerateSchedule(lg.Teams)
		if err != nil {
			log.Printf("[season] league %s: schedule regeneration failed, keeping previous schedule: %v", lg.ID, err)
		} else {
			lg.Schedule = schedule
		}
	} else {
		log.Printf("[season] league %s: no scheduler configured, reusing previous schedule", lg.ID)
	}

	c.collab.News.AddNewsItem(lg,
		fmt.Sprintf("The %d season is here", lg.Year),
		fmt.Sprintf("Training camps open across the league as the %d season kicks off.", lg.Year),
		models.NewsSeason)

	return true, nil
}
