package sim_test

import (
	"context"
	"errors"
	"testing"

	"github.com/XavierBriggs/gridiron/internal/sim"
	"github.com/XavierBriggs/gridiron/pkg/contracts"
	"github.com/XavierBriggs/gridiron/pkg/models"
)

// qbOnlyLeague is the minimal two-team scenario: one QB per roster,
// schedule [{home:0, away:1}]
func qbOnlyLeague() *models.League {
	mkTeam := func(id int, name, abbr, qbID string) *models.Team {
		return &models.Team{
			ID:   id,
			Name: name,
			Abbr: abbr,
			Roster: []*models.Player{{
				ID:        qbID,
				Name:      name + " QB",
				Position:  models.QB,
				Age:       25,
				Overall:   80,
				Potential: 85,
				Ratings:   map[string]int{"throwPower": 80, "throwAccuracy": 80, "awareness": 80},
				DevStatus: models.DevNormal,
			}},
			GamePlan: models.DefaultGamePlan(),
		}
	}

	schedule := models.Schedule{Weeks: []models.Week{
		{Pairings: []models.Pairing{{Home: 0, Away: 1}}},
	}}
	return models.NewLeague("test", 2026, []*models.Team{
		mkTeam(0, "Hawks", "HWK", "qb-home"),
		mkTeam(1, "Bears", "BRS", "qb-away"),
	}, schedule, 99)
}

func TestSimulateWeekTwoTeamScenario(t *testing.T) {
	lg := qbOnlyLeague()
	engine := sim.NewEngine(contracts.Collaborators{})

	summary, err := engine.SimulateWeek(context.Background(), lg, sim.WeekOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.GamesSimulated != 1 {
		t.Errorf("GamesSimulated = %d, want 1", summary.GamesSimulated)
	}
	if len(summary.Results) != 1 {
		t.Fatalf("got %d results, want 1", len(summary.Results))
	}
	res := summary.Results[0]
	if res.IsBye() {
		t.Error("result should not be a bye")
	}
	if res.HomeScore < 0 || res.AwayScore < 0 {
		t.Errorf("negative score %d-%d", res.HomeScore, res.AwayScore)
	}
	if lg.Week != 2 {
		t.Errorf("league week = %d, want 2", lg.Week)
	}
	if res.HomeWin != (res.HomeScore > res.AwayScore) {
		t.Error("home-win flag disagrees with scores")
	}
}

func TestSimulateWeekByeContributesNothing(t *testing.T) {
	lg := qbOnlyLeague()
	lg.Schedule.Weeks[0].Pairings = append(lg.Schedule.Weeks[0].Pairings, models.Pairing{Bye: []int{3}})
	engine := sim.NewEngine(contracts.Collaborators{})

	summary, err := engine.SimulateWeek(context.Background(), lg, sim.WeekOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.GamesSimulated != 1 {
		t.Errorf("bye should not count, GamesSimulated = %d", summary.GamesSimulated)
	}
	if len(summary.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(summary.Results))
	}
	bye := summary.Results[1]
	if !bye.IsBye() || bye.Bye[0] != 3 {
		t.Errorf("second result should be the bye placeholder, got %+v", bye)
	}
}

func TestSimulateWeekSnapshotMatchesSeasonTotals(t *testing.T) {
	lg := qbOnlyLeague()
	engine := sim.NewEngine(contracts.Collaborators{})

	summary, err := engine.SimulateWeek(context.Background(), lg, sim.WeekOptions{})
	if err != nil {
		t.Fatal(err)
	}

	res := summary.Results[0]
	if res.Box == nil {
		t.Fatal("simulated game should carry a box score")
	}

	// week 1: season totals must equal exactly what the snapshot captured
	for _, side := range []struct {
		box  models.TeamBox
		team *models.Team
	}{
		{res.Box.Home, lg.Teams[0]},
		{res.Box.Away, lg.Teams[1]},
	} {
		for _, p := range side.team.Roster {
			line, ok := side.box[p.ID]
			if !ok {
				if len(p.Stats.Season) != 0 {
					t.Errorf("player %s has season stats but no box entry", p.ID)
				}
				continue
			}
			for stat, v := range line {
				if p.Stats.Season[stat] != v {
					t.Errorf("player %s %s: season %d != box %d", p.ID, stat, p.Stats.Season[stat], v)
				}
			}
		}
	}
}

func TestSimulateWeekRecordsAddUp(t *testing.T) {
	lg := qbOnlyLeague()
	engine := sim.NewEngine(contracts.Collaborators{})

	summary, err := engine.SimulateWeek(context.Background(), lg, sim.WeekOptions{})
	if err != nil {
		t.Fatal(err)
	}

	homeOutcomes := 0
	for _, res := range summary.Results {
		if res.IsBye() {
			continue
		}
		home := lg.Teams[res.HomeID]
		homeOutcomes += home.Record.GamesPlayed()
	}
	if homeOutcomes != summary.GamesSimulated {
		t.Errorf("home outcomes %d != games simulated %d", homeOutcomes, summary.GamesSimulated)
	}

	for _, team := range lg.Teams {
		if gp := team.Record.GamesPlayed(); gp > 1 {
			t.Errorf("team %d played %d games in one week", team.ID, gp)
		}
	}
}

func TestSimulateWeekOverrideBypassesSimulation(t *testing.T) {
	lg := qbOnlyLeague()
	engine := sim.NewEngine(contracts.Collaborators{})

	opts := sim.WeekOptions{Overrides: map[string]sim.OverrideResult{
		sim.OverrideKey(0, 1): {HomeScore: 24, AwayScore: 10},
	}}
	summary, err := engine.SimulateWeek(context.Background(), lg, opts)
	if err != nil {
		t.Fatal(err)
	}

	res := summary.Results[0]
	if !res.Overridden {
		t.Error("result should be marked overridden")
	}
	if res.HomeScore != 24 || res.AwayScore != 10 {
		t.Errorf("scores %d-%d, want 24-10", res.HomeScore, res.AwayScore)
	}
	if res.Box != nil {
		t.Error("override results carry no box score")
	}
	if lg.Teams[0].Record.Wins != 1 || lg.Teams[1].Record.Losses != 1 {
		t.Error("override should still update records")
	}
	// no simulation means no stats accumulated
	if len(lg.Teams[0].Roster[0].Stats.Season) != 0 {
		t.Error("override should not accumulate season stats")
	}
}

func TestSimulateWeekRefusesDoubleSimulation(t *testing.T) {
	lg := qbOnlyLeague()
	engine := sim.NewEngine(contracts.Collaborators{})

	if _, err := engine.SimulateWeek(context.Background(), lg, sim.WeekOptions{}); err != nil {
		t.Fatal(err)
	}

	// simulate a stuck week counter: results exist but week never advanced
	lg.Week = 1
	_, err := engine.SimulateWeek(context.Background(), lg, sim.WeekOptions{})
	if !errors.Is(err, sim.ErrWeekAlreadySimulated) {
		t.Errorf("expected ErrWeekAlreadySimulated, got %v", err)
	}
}

func TestSimulateWeekTriggersPlayoffs(t *testing.T) {
	lg := qbOnlyLeague()
	lg.Week = 2 // past the one-week schedule, no playoff winner yet
	engine := sim.NewEngine(contracts.Collaborators{})

	summary, err := engine.SimulateWeek(context.Background(), lg, sim.WeekOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !summary.PlayoffsStarted {
		t.Error("expected playoff-start side effect")
	}
	if summary.GamesSimulated != 0 {
		t.Errorf("no games should be simulated past the schedule, got %d", summary.GamesSimulated)
	}
	if lg.Week != 2 {
		t.Errorf("playoff handoff must not advance the week, week = %d", lg.Week)
	}

	// once a winner exists the season is complete
	lg.PlayoffWinner = 0
	if _, err := engine.SimulateWeek(context.Background(), lg, sim.WeekOptions{}); !errors.Is(err, sim.ErrSeasonComplete) {
		t.Errorf("expected ErrSeasonComplete, got %v", err)
	}
}

func TestSimulateWeekOffseasonRefused(t *testing.T) {
	lg := qbOnlyLeague()
	lg.Offseason = true
	engine := sim.NewEngine(contracts.Collaborators{})

	if _, err := engine.SimulateWeek(context.Background(), lg, sim.WeekOptions{}); !errors.Is(err, sim.ErrOffseason) {
		t.Errorf("expected ErrOffseason, got %v", err)
	}
}

func TestSimulateWeekDeterministicAcrossRuns(t *testing.T) {
	run := func() []models.GameResult {
		lg := qbOnlyLeague()
		engine := sim.NewEngine(contracts.Collaborators{})
		summary, err := engine.SimulateWeek(context.Background(), lg, sim.WeekOptions{})
		if err != nil {
			t.Fatal(err)
		}
		return summary.Results
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("result counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].HomeScore != b[i].HomeScore || a[i].AwayScore != b[i].AwayScore {
			t.Errorf("game %d differs across identical runs: %d-%d vs %d-%d",
				i, a[i].HomeScore, a[i].AwayScore, b[i].HomeScore, b[i].AwayScore)
		}
	}
}

func TestCaptureSnapshotIsIndependentCopy(t *testing.T) {
	team := &models.Team{
		ID: 0,
		Roster: []*models.Player{{
			ID:    "p1",
			Stats: models.PlayerStats{Game: models.StatLine{"rushYds": 120}},
		}},
	}

	box := sim.CaptureSnapshot(team)
	sim.AccumulateSeasonStats(team)
	team.Roster[0].Stats.Game["rushYds"] = 0

	if box["p1"]["rushYds"] != 120 {
		t.Errorf("snapshot mutated: got %d, want 120", box["p1"]["rushYds"])
	}
	if team.Roster[0].Stats.Season["rushYds"] != 120 {
		t.Errorf("season total %d, want 120", team.Roster[0].Stats.Season["rushYds"])
	}
}
