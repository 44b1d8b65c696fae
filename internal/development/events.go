package development

import (
	"fmt"
	"math/rand"

	"github.com/XavierBriggs/gridiron/pkg/models"
)

// Weekly entry odds for each development event. Events are near-exclusive:
// the first roll that hits wins the week, and the status tag blocks
// re-triggering until it decays back to NORMAL.
const (
	breakoutChance   = 0.015
	leapChance       = 0.012
	secondWindChance = 0.008
	stagnationChance = 0.010

	// DECLINE probability grows per year past peak, steeper past the cliff
	declinePerYearOverPeak  = 0.04
	declinePerYearOverCliff = 0.12

	// statusDecayChance returns a tagged player to NORMAL (DECLINING is sticky)
	statusDecayChance = 0.20
)

func (e *Engine) rollEvents(lg *models.League, p *models.Player, rng *rand.Rand) {
	if e.tryBreakout(lg, p, rng) {
		return
	}
	if e.tryLeap(lg, p, rng) {
		return
	}
	if e.trySecondWind(lg, p, rng) {
		return
	}
	if e.tryStagnation(lg, p, rng) {
		return
	}
	e.tryDecline(lg, p, rng)
}

// tryBreakout gives young, under-potential players a one-time surge
func (e *Engine) tryBreakout(lg *models.League, p *models.Player, rng *rand.Rand) bool {
	if p.DevStatus != models.DevNormal || p.Age >= 25 || p.Potential-p.Overall < 8 {
		return false
	}
	if rng.Float64() >= breakoutChance {
		return false
	}

	e.collab.Growth.AddXP(p, 150)
	target, boost := boostTarget(p, rng, 3, 7)
	e.recalcAfterBoost(p)
	p.DevStatus = models.DevBreakout

	e.publish(lg, p,
		fmt.Sprintf("%s is breaking out", p.Name),
		fmt.Sprintf("%s %s has taken a massive step forward in practice, gaining +%d %s.", p.Position, p.Name, boost, target),
		models.NewsDevelopment)
	return true
}

// tryLeap is the smaller in-prime version of a breakout
func (e *Engine) tryLeap(lg *models.League, p *models.Player, rng *rand.Rand) bool {
	c := CurveFor(p.Position)
	if p.DevStatus != models.DevNormal || p.Age < c.PeakStart || p.Age > c.PeakEnd {
		return false
	}
	if rng.Float64() >= leapChance {
		return false
	}

	boostTarget(p, rng, 2, 4)
	boostTarget(p, rng, 2, 4)
	bumpRating(p, "awareness", 2)
	e.collab.Growth.AddXP(p, 80)
	e.recalcAfterBoost(p)
	p.DevStatus = models.DevLeap

	e.publish(lg, p,
		fmt.Sprintf("%s has taken a leap", p.Name),
		fmt.Sprintf("Veteran coaches say %s is playing the best ball of his career.", p.Name),
		models.NewsDevelopment)
	return true
}

// trySecondWind is the rare aging-curve defier for veterans past 30
func (e *Engine) trySecondWind(lg *models.League, p *models.Player, rng *rand.Rand) bool {
	if p.DevStatus != models.DevNormal || p.Age <= 30 {
		return false
	}
	if rng.Float64() >= secondWindChance {
		return false
	}

	bumpRating(p, "awareness", 3+rng.Intn(4))
	bumpRating(p, "intelligence", 2+rng.Intn(3))
	e.recalcAfterBoost(p)
	p.DevStatus = models.DevSecondWind

	e.publish(lg, p,
		fmt.Sprintf("%s finds a second wind", p.Name),
		fmt.Sprintf("At %d, %s is defying the aging curve with a sharper mental game.", p.Age, p.Name),
		models.NewsDevelopment)
	return true
}

// tryStagnation ratchets down the ceiling of a young player who isn't
// closing the gap. This is the one path that can lower potential, and it
// never drops it below the current overall.
func (e *Engine) tryStagnation(lg *models.League, p *models.Player, rng *rand.Rand) bool {
	if p.DevStatus != models.DevNormal || p.Age > 25 || p.Potential < 80 || p.Potential-p.Overall < 10 {
		return false
	}
	if rng.Float64() >= stagnationChance {
		return false
	}

	drop := 2 + rng.Intn(4)
	p.Potential -= drop
	if p.Potential < p.Overall {
		p.Potential = p.Overall
	}
	p.DevStatus = models.DevStagnated

	e.publish(lg, p,
		fmt.Sprintf("%s's development has stalled", p.Name),
		fmt.Sprintf("Scouts are quietly lowering expectations for %s.", p.Name),
		models.NewsDevelopment)
	return true
}

// tryDecline tags players drifting past their peak. The tag is a marker for
// downstream systems (contracts, trade value); the actual rating erosion is
// handled by weekly regression.
func (e *Engine) tryDecline(lg *models.League, p *models.Player, rng *rand.Rand) {
	c := CurveFor(p.Position)
	if p.DevStatus == models.DevDeclining || p.Age <= c.PeakEnd {
		return
	}

	chance := declinePerYearOverPeak * float64(p.Age-c.PeakEnd)
	if p.Age > c.CliffAge {
		chance += declinePerYearOverCliff * float64(p.Age-c.CliffAge)
	}
	if rng.Float64() >= chance {
		return
	}

	p.DevStatus = models.DevDeclining
	e.publish(lg, p,
		fmt.Sprintf("%s is slowing down", p.Name),
		fmt.Sprintf("%s %s, age %d, no longer looks like the player he once was.", p.Position, p.Name, p.Age),
		models.NewsDevelopment)
}

// decayStatus lets a tagged player return to NORMAL so events can re-trigger
// in later seasons. DECLINING is permanent.
func (e *Engine) decayStatus(p *models.Player, rng *rand.Rand) {
	switch p.DevStatus {
	case models.DevNormal, models.DevDeclining:
		return
	}
	if rng.Float64() < statusDecayChance {
		p.DevStatus = models.DevNormal
	}
}

// boostTarget raises one position-relevant sub-rating by amount in [min,max]
func boostTarget(p *models.Player, rng *rand.Rand, min, max int) (string, int) {
	targets := breakoutTargets[p.Position]
	if len(targets) == 0 {
		targets = []string{"awareness"}
	}
	name := targets[rng.Intn(len(targets))]
	boost := min + rng.Intn(max-min+1)
	bumpRating(p, name, boost)
	return name, boost
}

func bumpRating(p *models.Player, name string, amount int) {
	if p.Ratings == nil {
		p.Ratings = map[string]int{}
	}
	v := p.Rating(name) + amount
	if v > 99 {
		v = 99
	}
	p.Ratings[name] = v
}

// recalcAfterBoost recomputes overall when a calculator is available.
// Without one the boost still lives in the sub-ratings and overall catches
// up through the growth curve.
func (e *Engine) recalcAfterBoost(p *models.Player) {
	if e.collab.Overall == nil {
		return
	}
	ovr := e.collab.Overall.RecalcOverall(p.Position, p.Ratings)
	if ovr > p.Overall {
		p.Overall = ovr
	}
	if p.Potential < p.Overall {
		p.Potential = p.Overall
	}
}
