package sim

import "github.com/XavierBriggs/gridiron/pkg/models"

// The box-score snapshot MUST be captured before season accumulation runs:
// accumulation reads the same stats.game maps the snapshot preserves, and a
// later capture would not change, but an earlier accumulation followed by a
// game-bucket reset would lose the box score. Keeping these as two named
// steps makes the ordering a visible contract.

// CaptureSnapshot deep-copies every non-empty stats.game line on a roster
// into a box-score side, keyed by player ID.
func CaptureSnapshot(t *models.Team) models.TeamBox {
	box := models.TeamBox{}
	for _, p := range t.Roster {
		if len(p.Stats.Game) == 0 {
			continue
		}
		box[p.ID] = p.Stats.Game.Clone()
	}
	return box
}

// AccumulateSeasonStats folds every player's game line into their season
// totals. Call only after CaptureSnapshot.
func AccumulateSeasonStats(t *models.Team) {
	for _, p := range t.Roster {
		if len(p.Stats.Game) == 0 {
			continue
		}
		if p.Stats.Season == nil {
			p.Stats.Season = models.StatLine{}
		}
		p.Stats.Season.Add(p.Stats.Game)
	}
}
