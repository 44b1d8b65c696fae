// Package sim turns roster state into game outcomes: final scores, full
// per-player box scores, and the batch week loop that drives them.
package sim

import (
	"errors"
	"math"
	"math/rand"

	"github.com/XavierBriggs/gridiron/internal/rating"
	"github.com/XavierBriggs/gridiron/pkg/contracts"
	"github.com/XavierBriggs/gridiron/pkg/models"
)

const (
	// homeAdvantage in strength points, applied to the score shift
	homeAdvantage = 2.0

	// base score range before strength shift and variance
	baseScoreMin = 10
	baseScoreMax = 30

	// varianceMax is the independent uniform draw added to each side
	varianceMax = 7
)

// ErrInvalidRoster is returned when a side has no available players; the
// caller logs and skips the game rather than aborting the week.
var ErrInvalidRoster = errors.New("sim: invalid or empty roster")

// GameSimulator produces one game's score and box score from two rosters
type GameSimulator struct {
	collab contracts.Collaborators
}

// NewGameSimulator builds a simulator with collaborator defaults filled
func NewGameSimulator(c contracts.Collaborators) *GameSimulator {
	return &GameSimulator{collab: c.WithDefaults()}
}

// depthChart groups a team's available players by position, starter first
type depthChart map[models.Position][]*models.Player

// buildDepthChart filters to players that can play and sorts each group by
// effective rating descending
func buildDepthChart(t *models.Team) depthChart {
	chart := depthChart{}
	for _, p := range t.Roster {
		if !rating.CanPlay(p) {
			continue
		}
		chart[p.Position] = append(chart[p.Position], p)
	}
	for _, group := range chart {
		sortByEffectiveRating(group)
	}
	return chart
}

func sortByEffectiveRating(group []*models.Player) {
	// insertion sort: groups are tiny and order must be stable
	for i := 1; i < len(group); i++ {
		for j := i; j > 0 && rating.EffectiveRating(group[j]) > rating.EffectiveRating(group[j-1]); j-- {
			group[j], group[j-1] = group[j-1], group[j]
		}
	}
}

func (chart depthChart) activeCount() int {
	n := 0
	for _, g := range chart {
		n += len(g)
	}
	return n
}

// offensiveStrength is the roster-average coaching-adjusted performance of
// every available player
func (g *GameSimulator) offensiveStrength(chart depthChart) float64 {
	total, n := 0.0, 0
	for _, group := range chart {
		for _, p := range group {
			total += g.collab.Performance.EffectivePerformance(rating.EffectiveRating(p), p.TenureYears())
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

// defensiveStrength averages effective rating across the defensive groups
func defensiveStrength(chart depthChart) float64 {
	total, n := 0.0, 0
	for _, pos := range models.DefensivePositions {
		for _, p := range chart[pos] {
			total += float64(rating.EffectiveRating(p))
			n++
		}
	}
	if n == 0 {
		return 60 // no defense dressed; treat as replacement level
	}
	return total / float64(n)
}

// SimulateGame runs one game and writes every player's stats.game bucket.
// Season accumulation is the week simulator's job, never this function's.
func (g *GameSimulator) SimulateGame(home, away *models.Team, rng *rand.Rand) (homeScore, awayScore int, err error) {
	if home == nil || away == nil || len(home.Roster) == 0 || len(away.Roster) == 0 {
		return 0, 0, ErrInvalidRoster
	}

	homeChart := buildDepthChart(home)
	awayChart := buildDepthChart(away)
	if homeChart.activeCount() == 0 || awayChart.activeCount() == 0 {
		return 0, 0, ErrInvalidRoster
	}

	homeStrength := g.offensiveStrength(homeChart)
	awayStrength := g.offensiveStrength(awayChart)
	homeDef := defensiveStrength(homeChart)
	awayDef := defensiveStrength(awayChart)

	strengthDiff := (homeStrength - awayStrength) + homeAdvantage
	shift := int(math.Round(strengthDiff / 5))

	homeScore = randBetween(rng, baseScoreMin, baseScoreMax) + shift + randBetween(rng, 0, varianceMax)
	awayScore = randBetween(rng, baseScoreMin, baseScoreMax) - shift + randBetween(rng, 0, varianceMax)
	if homeScore < 0 {
		homeScore = 0
	}
	if awayScore < 0 {
		awayScore = 0
	}

	clearGameStats(home)
	clearGameStats(away)
	generateTeamStats(rng, homeChart, home.GamePlan, homeScore, awayDef, awayStrength)
	generateTeamStats(rng, awayChart, away.GamePlan, awayScore, homeDef, homeStrength)

	return homeScore, awayScore, nil
}

// clearGameStats replaces every roster member's game bucket, including
// inactive players, so stale lines never leak into a new box score
func clearGameStats(t *models.Team) {
	for _, p := range t.Roster {
		p.Stats.Game = models.StatLine{}
	}
}

func randBetween(rng *rand.Rand, min, max int) int {
	return min + rng.Intn(max-min+1)
}
