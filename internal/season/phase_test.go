package season_test

import (
	"strings"
	"testing"

	"github.com/XavierBriggs/gridiron/internal/scheduler"
	"github.com/XavierBriggs/gridiron/internal/season"
	"github.com/XavierBriggs/gridiron/internal/sim"
	"github.com/XavierBriggs/gridiron/pkg/contracts"
	"github.com/XavierBriggs/gridiron/pkg/models"
)

// finishedLeague is a league whose one-week regular season is over and whose
// playoffs have produced a winner
func finishedLeague() *models.League {
	mkTeam := func(id int, name string) *models.Team {
		return &models.Team{
			ID:     id,
			Name:   name,
			Record: models.Record{Wins: 1},
			Roster: []*models.Player{{
				ID:        name + "-qb",
				Name:      name + " QB",
				Position:  models.QB,
				Age:       27,
				Overall:   80,
				Potential: 84,
				Ratings:   map[string]int{"throwPower": 80, "throwAccuracy": 80, "awareness": 80},
				Stats:     models.PlayerStats{Season: models.StatLine{"passYds": 4100, "passTD": 30}},
			}},
			GamePlan: models.GamePlan{Offense: "air_raid", Defense: "blitz_heavy", Risk: "aggressive"},
		}
	}
	schedule := models.Schedule{Weeks: []models.Week{
		{Pairings: []models.Pairing{{Home: 0, Away: 1}}},
	}}
	lg := models.NewLeague("finished", 2026, []*models.Team{mkTeam(0, "Hawks"), mkTeam(1, "Bears")}, schedule, 11)
	lg.Week = 2
	lg.PlayoffWinner = 0
	return lg
}

func newController(c contracts.Collaborators) *season.Controller {
	return season.NewController(c, sim.NewEngine(c))
}

func TestCurrentPhase(t *testing.T) {
	lg := finishedLeague()

	tests := []struct {
		name  string
		mut   func()
		want  season.Phase
	}{
		{"playoffs pending", func() {}, season.PhasePlayoffsPending},
		{"regular season", func() { lg.Week = 1 }, season.PhaseRegularSeason},
		{"offseason", func() { lg.Offseason = true }, season.PhaseOffseason},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mut()
			if got := season.CurrentPhase(lg); got != tt.want {
				t.Errorf("CurrentPhase = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestStartOffseasonRunsRolloverOnce(t *testing.T) {
	lg := finishedLeague()
	c := newController(contracts.Collaborators{})

	done, err := c.StartOffseason(lg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !done {
		t.Fatal("first call should perform the transition")
	}
	if !lg.Offseason {
		t.Error("offseason flag should be set")
	}

	qb := lg.Teams[0].Roster[0]
	if qb.Stats.Career["passYds"] != 4100 {
		t.Errorf("career passYds = %d, want 4100", qb.Stats.Career["passYds"])
	}

	// a double-clicked advance must not run the rollover again
	done, err = c.StartOffseason(lg)
	if err != nil {
		t.Fatalf("second call errored: %v", err)
	}
	if done {
		t.Error("second call should be a no-op")
	}
	if qb.Stats.Career["passYds"] != 4100 {
		t.Errorf("career passYds accumulated twice: %d", qb.Stats.Career["passYds"])
	}
}

func TestStartOffseasonGuards(t *testing.T) {
	c := newController(contracts.Collaborators{})

	lg := finishedLeague()
	lg.Week = 1
	if _, err := c.StartOffseason(lg); err == nil {
		t.Error("expected error while regular-season weeks remain")
	}

	lg = finishedLeague()
	lg.PlayoffWinner = -1
	if _, err := c.StartOffseason(lg); err == nil {
		t.Error("expected error without a playoff winner")
	}
}

func TestStartNewSeasonResets(t *testing.T) {
	lg := finishedLeague()
	c := newController(contracts.Collaborators{Scheduler: scheduler.RoundRobin{}})

	if _, err := c.StartOffseason(lg); err != nil {
		t.Fatal(err)
	}

	qb := lg.Teams[0].Roster[0]
	ageBefore := qb.Age
	yearBefore := lg.Year

	done, err := c.StartNewSeason(lg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !done {
		t.Fatal("expected the transition to happen")
	}

	if lg.Year != yearBefore+1 {
		t.Errorf("year = %d, want %d", lg.Year, yearBefore+1)
	}
	if lg.Week != 1 || lg.Offseason || lg.HasPlayoffWinner() {
		t.Errorf("league not reset: week=%d offseason=%v winner=%d", lg.Week, lg.Offseason, lg.PlayoffWinner)
	}
	if len(lg.ResultsByWeek) != 0 {
		t.Error("results should be cleared for the new season")
	}
	if lg.Schedule.Length() == 0 {
		t.Error("schedule should be regenerated")
	}

	if qb.Age != ageBefore+1 {
		t.Errorf("age = %d, want %d", qb.Age, ageBefore+1)
	}
	if len(qb.Stats.Season) != 0 {
		t.Error("season stats should be cleared")
	}
	if qb.Stats.Career["passYds"] != 4100 {
		t.Errorf("career stats must survive the reset, got %d", qb.Stats.Career["passYds"])
	}
	if qb.SeasonStartOverall != qb.Overall {
		t.Error("season-start overall should be rebased")
	}
	for _, team := range lg.Teams {
		if team.Record.GamesPlayed() != 0 {
			t.Errorf("team %d record not zeroed", team.ID)
		}
		if team.GamePlan != models.DefaultGamePlan() {
			t.Errorf("team %d game plan not reset", team.ID)
		}
	}

	// not in offseason anymore: a repeat call is ignored
	done, err = c.StartNewSeason(lg)
	if err != nil || done {
		t.Errorf("repeat call should no-op, got done=%v err=%v", done, err)
	}
}

type panickyAwards struct{}

func (panickyAwards) CalculateAllAwards(lg *models.League) error { panic("awards exploded") }

type retireEveryone struct{}

func (retireEveryone) ProcessRetirements(lg *models.League, year int) (contracts.RetirementReport, error) {
	var report contracts.RetirementReport
	for _, t := range lg.Teams {
		for _, p := range t.Roster {
			report.Retired = append(report.Retired, p)
			report.Announcements = append(report.Announcements, p.Name+" retires.")
		}
	}
	return report, nil
}

func TestRolloverSurvivesFailingHook(t *testing.T) {
	lg := finishedLeague()
	c := newController(contracts.Collaborators{
		Awards:     panickyAwards{},
		Retirement: retireEveryone{},
	})

	done, err := c.StartOffseason(lg)
	if err != nil || !done {
		t.Fatalf("transition failed: done=%v err=%v", done, err)
	}

	// the panicking awards hook must not block the retirement hook behind it
	for _, team := range lg.Teams {
		if len(team.Roster) != 0 {
			t.Errorf("team %d still has %d players, retirements never ran", team.ID, len(team.Roster))
		}
	}
	found := false
	for _, item := range lg.News {
		if item.Type == models.NewsRetirement {
			found = true
		}
	}
	if !found {
		t.Error("retirements should produce news items")
	}
}

func TestRetirementChanceWall(t *testing.T) {
	lg := finishedLeague()
	qb := lg.Teams[0].Roster[0]
	qb.Age = 45
	qb.Stats.Career = models.StatLine{"passYds": 70500}

	report, err := season.Retirements{}.ProcessRetirements(lg, lg.Year)
	if err != nil {
		t.Fatal(err)
	}

	var line string
	for i, p := range report.Retired {
		if p.ID == qb.ID {
			line = report.Announcements[i]
		}
	}
	if line == "" {
		t.Fatal("a 45-year-old must always retire")
	}
	if !strings.Contains(line, "70500") {
		t.Errorf("announcement should cite the career passing yards, got %q", line)
	}
}

func TestRetirementLeavesYoungStarsAlone(t *testing.T) {
	lg := finishedLeague()
	for _, t2 := range lg.Teams {
		for _, p := range t2.Roster {
			p.Age = 24
		}
	}

	report, err := season.Retirements{}.ProcessRetirements(lg, lg.Year)
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Retired) != 0 {
		t.Errorf("no one under 30 should retire, got %d retirees", len(report.Retired))
	}
}
