// Package rating resolves a player's effective overall rating, folding the
// performance discount of active injuries into the raw overall. Pure
// functions of player state; no side effects.
package rating

import (
	"math"

	"github.com/XavierBriggs/gridiron/pkg/models"
)

const (
	// maxInjuryImpact caps the combined discount from stacked injuries
	maxInjuryImpact = 0.85

	// ratingFloor is the lowest effective rating an injured player can carry
	ratingFloor = 40
)

// EffectiveRating returns the player's overall after injury discount.
// Healthy players pass through unchanged.
func EffectiveRating(p *models.Player) int {
	impact := 0.0
	for _, inj := range p.Injuries {
		if inj.WeeksOut > 0 {
			impact += inj.Impact
		}
	}
	if impact == 0 {
		return p.Overall
	}
	if impact > maxInjuryImpact {
		impact = maxInjuryImpact
	}
	eff := int(math.Round(float64(p.Overall) * (1 - impact)))
	if eff < ratingFloor {
		eff = ratingFloor
	}
	return eff
}

// CanPlay reports whether the player is available this week
func CanPlay(p *models.Player) bool {
	for _, inj := range p.Injuries {
		if inj.WeeksOut > 0 {
			return false
		}
	}
	return true
}
