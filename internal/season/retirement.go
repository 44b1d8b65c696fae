package season

import (
	"fmt"
	"math/rand"

	"github.com/XavierBriggs/gridiron/pkg/contracts"
	"github.com/XavierBriggs/gridiron/pkg/models"
)

// Retirements is the default retirement processor: age-driven odds with a
// hard wall at 40, plus a small push for players whose rating has cratered.
type Retirements struct{}

var _ contracts.RetirementProcessor = Retirements{}

// ProcessRetirements flags retirees across the league and builds their
// announcement strings, including career milestones.
func (Retirements) ProcessRetirements(lg *models.League, year int) (contracts.RetirementReport, error) {
	rng := rand.New(rand.NewSource(lg.Seed ^ int64(year)))

	var report contracts.RetirementReport
	for _, t := range lg.Teams {
		for _, p := range t.Roster {
			if rng.Float64() >= retirementChance(p) {
				continue
			}
			report.Retired = append(report.Retired, p)
			report.Announcements = append(report.Announcements, announcement(p, year))
		}
	}
	return report, nil
}

func retirementChance(p *models.Player) float64 {
	chance := 0.0
	switch {
	case p.Age >= 40:
		chance = 1.0
	case p.Age >= 35:
		chance = 0.10 + 0.15*float64(p.Age-35)
	case p.Age >= 30:
		chance = 0.01 * float64(p.Age-29)
	}
	if p.Overall < 60 && p.Age >= 30 {
		chance += 0.15
	}
	if chance > 1.0 {
		chance = 1.0
	}
	return chance
}

func announcement(p *models.Player, year int) string {
	seasons := int(p.TenureYears())
	if seasons < 1 {
		seasons = 1
	}
	s := fmt.Sprintf("%s %s is calling it a career at age %d after %d seasons.", p.Position, p.Name, p.Age, seasons)

	career := p.Stats.Career
	switch {
	case career["passYds"] >= 70000:
		s += fmt.Sprintf(" He retires with %d career passing yards, among the most ever.", career["passYds"])
	case career["passYds"] >= 40000:
		s += fmt.Sprintf(" He finishes with %d career passing yards.", career["passYds"])
	case career["rushYds"] >= 10000:
		s += fmt.Sprintf(" He finishes with %d career rushing yards.", career["rushYds"])
	case career["recYds"] >= 10000:
		s += fmt.Sprintf(" He finishes with %d career receiving yards.", career["recYds"])
	case career["sacks"] >= 100:
		s += fmt.Sprintf(" He finishes with %d career sacks.", career["sacks"])
	}
	return s
}
