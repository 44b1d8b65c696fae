package contracts

import (
	"fmt"

	"github.com/XavierBriggs/gridiron/pkg/models"
	"github.com/google/uuid"
)

// PerformanceModel converts an effective rating plus tenure into the
// game-performance scalar used for team strength. Owned by the coaching system.
type PerformanceModel interface {
	EffectivePerformance(effectiveRating int, tenureYears float64) float64
}

// RatingGrowth owns the overall-rating growth curve. The simulation core only
// ever hands it non-negative experience amounts.
type RatingGrowth interface {
	AddXP(p *models.Player, amount int)
}

// OverallCalculator recomputes overall from sub-ratings after a mutation.
// Optional: when absent the development engine nudges overall directly.
type OverallCalculator interface {
	RecalcOverall(pos models.Position, ratings map[string]int) int
}

// ScheduleGenerator builds next season's schedule at rollover
type ScheduleGenerator interface {
	GenerateSchedule(teams []*models.Team) (models.Schedule, error)
}

// RetirementReport is what the retirement hook hands back to the rollover
type RetirementReport struct {
	Retired       []*models.Player
	Announcements []string
}

// RetirementProcessor decides who hangs it up during the offseason
type RetirementProcessor interface {
	ProcessRetirements(lg *models.League, year int) (RetirementReport, error)
}

// AwardsCalculator computes season awards from accumulated stats
type AwardsCalculator interface {
	CalculateAllAwards(lg *models.League) error
}

// RecordsKeeper checks season totals against franchise/league record books
type RecordsKeeper interface {
	UpdateAllRecords(lg *models.League) error
}

// CapManager carries unused cap room into the next season
type CapManager interface {
	ProcessCapRollover(lg *models.League) error
}

// InjuryModel generates training injuries under heavy-intensity weeks.
// Optional: nil model means heavy training carries no injury risk.
type InjuryModel interface {
	GenerateInjury(p *models.Player) *models.Injury
}

// NewsSink consumes narrative headlines emitted by the core
type NewsSink interface {
	AddNewsItem(lg *models.League, headline, story string, newsType models.NewsType)
}

// TeamHooks are per-team post-week maintenance hooks (depth chart, chemistry)
type TeamHooks interface {
	UpdateDepthChart(t *models.Team)
	UpdateChemistry(t *models.Team)
}

// Collaborators bundles every external capability the simulation core consumes.
// Any nil field is replaced by a default (or no-op) implementation, so a
// missing capability degrades gracefully instead of panicking.
type Collaborators struct {
	Performance PerformanceModel
	Growth      RatingGrowth
	Overall     OverallCalculator
	Scheduler   ScheduleGenerator
	Retirement  RetirementProcessor
	Awards      AwardsCalculator
	Records     RecordsKeeper
	Cap         CapManager
	Injuries    InjuryModel
	News        NewsSink
	Hooks       TeamHooks
}

// WithDefaults fills every nil capability
func (c Collaborators) WithDefaults() Collaborators {
	if c.Performance == nil {
		c.Performance = defaultPerformance{}
	}
	if c.Growth == nil {
		c.Growth = defaultGrowth{}
	}
	if c.Awards == nil {
		c.Awards = noopLeagueHook{}
	}
	if c.Records == nil {
		c.Records = noopLeagueHook{}
	}
	if c.Cap == nil {
		c.Cap = defaultCap{}
	}
	if c.News == nil {
		c.News = defaultNews{}
	}
	if c.Hooks == nil {
		c.Hooks = noopTeamHooks{}
	}
	// Overall, Scheduler, Retirement, Injuries stay nil-able: callers check
	// for them and skip the step, per the degrade-gracefully contract.
	return c
}

// defaultPerformance scales rating by a small tenure bonus (up to +5% at 5 years)
type defaultPerformance struct{}

func (defaultPerformance) EffectivePerformance(effectiveRating int, tenureYears float64) float64 {
	bonus := tenureYears * 0.01
	if bonus > 0.05 {
		bonus = 0.05
	}
	return float64(effectiveRating) * (1 + bonus)
}

// defaultGrowth banks XP and converts it into overall points, with the cost
// of a point rising as the player approaches elite territory. Overall never
// exceeds potential.
type defaultGrowth struct{}

func (defaultGrowth) AddXP(p *models.Player, amount int) {
	if amount <= 0 {
		return
	}
	p.XP += amount
	for p.Overall < p.Potential {
		cost := 100 + (p.Overall-60)*10
		if cost < 100 {
			cost = 100
		}
		if p.XP < cost {
			break
		}
		p.XP -= cost
		p.Overall++
	}
}

type noopLeagueHook struct{}

func (noopLeagueHook) CalculateAllAwards(*models.League) error { return nil }
func (noopLeagueHook) UpdateAllRecords(*models.League) error   { return nil }

// defaultCap carries 100% of unused cap room forward
type defaultCap struct{}

func (defaultCap) ProcessCapRollover(lg *models.League) error {
	for _, t := range lg.Teams {
		if t.CapRoom < 0 {
			return fmt.Errorf("team %d over the cap by %d", t.ID, -t.CapRoom)
		}
	}
	return nil
}

// defaultNews appends to the league log and, when the item names a player,
// to that player's personal log
type defaultNews struct{}

func (defaultNews) AddNewsItem(lg *models.League, headline, story string, newsType models.NewsType) {
	item := models.NewsItem{
		ID:       uuid.NewString(),
		Headline: headline,
		Story:    story,
		Type:     newsType,
		Week:     lg.Week,
		Year:     lg.Year,
	}
	lg.News = append(lg.News, item)
}

type noopTeamHooks struct{}

func (noopTeamHooks) UpdateDepthChart(*models.Team) {}
func (noopTeamHooks) UpdateChemistry(*models.Team)  {}
