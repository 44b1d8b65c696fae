// Package development runs weekly player progression: experience accrual
// scaled by coaching, age, and potential; rating regression past a player's
// peak; and the rare discrete development events that permanently alter a
// career arc.
package development

import (
	"log"
	"math"
	"math/rand"

	"github.com/XavierBriggs/gridiron/pkg/contracts"
	"github.com/XavierBriggs/gridiron/pkg/models"
)

const (
	// baseWeeklyXP is the experience every player starts from before modifiers
	baseWeeklyXP = 20.0

	// maxPerformanceBonus caps experience earned from a big stat line
	maxPerformanceBonus = 25.0

	// heavyTrainingInjuryChance is the per-player weekly injury roll under
	// heavy intensity
	heavyTrainingInjuryChance = 0.02
)

// Engine applies weekly development to every player in the league
type Engine struct {
	collab contracts.Collaborators
}

// NewEngine builds a development engine with defaults filled in
func NewEngine(c contracts.Collaborators) *Engine {
	return &Engine{collab: c.WithDefaults()}
}

// RunWeeklyDevelopment processes one week of training for every team.
// Invoked once per week after game simulation, so performance bonuses read
// the stat lines of the game just played.
func (e *Engine) RunWeeklyDevelopment(lg *models.League, rng *rand.Rand) {
	for _, team := range lg.Teams {
		e.runTeam(lg, team, rng)
	}
}

func (e *Engine) runTeam(lg *models.League, team *models.Team, rng *rand.Rand) {
	// staff development averages ~50; scale to roughly +/-25 experience
	coachBonus := (team.Staff.AverageDevelopment() - 50) / 2

	for _, p := range team.Roster {
		if p.Retired {
			continue
		}
		e.trainPlayer(lg, team, p, coachBonus, rng)
	}
}

func (e *Engine) trainPlayer(lg *models.League, team *models.Team, p *models.Player, coachBonus float64, rng *rand.Rand) {
	perfBonus := performanceBonus(p)

	intensityMod := intensityModifier(lg.Training.Intensity)
	focusMod := focusModifier(lg.Training.Focus, p.Position)
	ageF := AgeFactor(p.Position, p.Age)
	potF := potentialFactor(p)

	xp := int(math.Round(math.Max(0, (baseWeeklyXP+coachBonus+perfBonus)*intensityMod*focusMod*ageF*potF)))
	if xp > 0 {
		e.collab.Growth.AddXP(p, xp)
	}

	if lg.Training.Intensity == models.IntensityHeavy && e.collab.Injuries != nil {
		if rng.Float64() < heavyTrainingInjuryChance {
			if inj := e.collab.Injuries.GenerateInjury(p); inj != nil {
				p.Injuries = append(p.Injuries, *inj)
				e.publish(lg, p,
					p.Name+" injured in practice",
					p.Name+" suffered a "+inj.Name+" during a heavy training session.",
					models.NewsInjury)
			}
		}
	}

	e.regress(p, rng)
	e.rollEvents(lg, p, rng)
	e.decayStatus(p, rng)
}

// potentialFactor rewards headroom: a wide potential gap trains faster,
// a capped-out player barely moves.
func potentialFactor(p *models.Player) float64 {
	gap := p.Potential - p.Overall
	if gap <= 0 {
		return 0.3
	}
	f := 1.0 + 0.05*float64(gap)
	if f > 1.4 {
		f = 1.4
	}
	return f
}

func intensityModifier(i models.TrainingIntensity) float64 {
	switch i {
	case models.IntensityLow:
		return 0.6
	case models.IntensityHeavy:
		return 1.4
	default:
		return 1.0
	}
}

func focusModifier(focus models.TrainingFocus, pos models.Position) float64 {
	if focus == models.FocusBalanced {
		return 1.0
	}
	offensive := false
	for _, op := range models.OffensivePositions {
		if pos == op {
			offensive = true
			break
		}
	}
	if (focus == models.FocusOffense) == offensive {
		return 1.25
	}
	return 0.8
}

// performanceBonus converts last game's stat line into bounded extra experience
func performanceBonus(p *models.Player) float64 {
	g := p.Stats.Game
	if len(g) == 0 {
		return 0
	}
	bonus := 0.0
	if g["passYds"] >= 300 {
		bonus += 10
	}
	if g["passTD"] >= 3 {
		bonus += 8
	}
	if g["rushYds"] >= 100 {
		bonus += 10
	}
	if g["rushTD"] >= 2 {
		bonus += 6
	}
	if g["recYds"] >= 100 {
		bonus += 10
	}
	if g["rec"] >= 8 {
		bonus += 5
	}
	if g["sacks"] >= 2 {
		bonus += 10
	}
	if g["defInt"] >= 1 {
		bonus += 8
	}
	if g["tackles"] >= 10 {
		bonus += 6
	}
	if g["fgMade"] >= 3 {
		bonus += 6
	}
	if bonus > maxPerformanceBonus {
		bonus = maxPerformanceBonus
	}
	return bonus
}

// regress degrades sub-ratings for players past their positional peak.
// Physical attributes erode first; mental attributes only past the cliff.
func (e *Engine) regress(p *models.Player, rng *rand.Rand) {
	c := CurveFor(p.Position)
	if p.Age <= c.PeakEnd {
		return
	}
	yearsOver := p.Age - c.PeakEnd

	chance := 0.05 * float64(yearsOver)
	if p.Age > c.CliffAge {
		chance += 0.15 * float64(p.Age-c.CliffAge)
	}
	if chance > 0.9 {
		chance = 0.9
	}

	changed := false
	if rng.Float64() < chance {
		n := 1 + rng.Intn(2)
		for i := 0; i < n; i++ {
			if degradeOne(p, physicalRatings, 1+rng.Intn(3), 35, rng) {
				changed = true
			}
		}
	}
	if p.Age > c.CliffAge && rng.Float64() < 0.1*float64(p.Age-c.CliffAge) {
		if degradeOne(p, mentalRatings, 1+rng.Intn(2), 45, rng) {
			changed = true
		}
	}

	if changed {
		e.recalcOverall(p)
	}
}

// degradeOne lowers one randomly chosen rating from the candidate set,
// respecting the floor. Returns false when nothing could be degraded.
func degradeOne(p *models.Player, candidates []string, amount, floor int, rng *rand.Rand) bool {
	var present []string
	for _, name := range candidates {
		if v, ok := p.Ratings[name]; ok && v > floor {
			present = append(present, name)
		}
	}
	if len(present) == 0 {
		return false
	}
	name := present[rng.Intn(len(present))]
	v := p.Ratings[name] - amount
	if v < floor {
		v = floor
	}
	p.Ratings[name] = v
	return true
}

// recalcOverall recomputes overall after a rating mutation. A missing
// calculator is tolerated: fall back to nudging overall directly.
func (e *Engine) recalcOverall(p *models.Player) {
	if e.collab.Overall != nil {
		p.Overall = e.collab.Overall.RecalcOverall(p.Position, p.Ratings)
	} else {
		if p.Overall > 40 {
			p.Overall--
		}
	}
	if p.Potential < p.Overall {
		p.Potential = p.Overall
	}
}

// publish appends the item to the player's personal log and hands the
// league-wide copy to the news sink.
func (e *Engine) publish(lg *models.League, p *models.Player, headline, story string, t models.NewsType) {
	p.News = append(p.News, models.NewsItem{
		Headline: headline,
		Story:    story,
		Type:     t,
		Week:     lg.Week,
		Year:     lg.Year,
		PlayerID: p.ID,
	})
	e.collab.News.AddNewsItem(lg, headline, story, t)
	log.Printf("[development] %s", headline)
}
