package league

import (
	"context"
	"log"

	"github.com/XavierBriggs/gridiron/internal/sim"
	"github.com/XavierBriggs/gridiron/pkg/models"
)

// PauseSignal reports whether a pending interactive event should pause the
// season loop at the next week boundary
type PauseSignal func() bool

// RunSeason simulates week-by-week until the regular season ends, the
// context is cancelled, or the pause signal fires. It only ever stops
// between weeks, so a resumed call picks up cleanly from the paused week.
func RunSeason(ctx context.Context, engine *sim.Engine, lg *models.League, pause PauseSignal) ([]sim.WeekSummary, error) {
	var summaries []sim.WeekSummary

	for lg.Week <= lg.Schedule.Length() {
		if err := ctx.Err(); err != nil {
			return summaries, err
		}
		if pause != nil && pause() {
			log.Printf("[league] %s: pausing season loop at week %d for pending event", lg.ID, lg.Week)
			return summaries, nil
		}

		summary, err := engine.SimulateWeek(ctx, lg, sim.WeekOptions{})
		if err != nil {
			return summaries, err
		}
		summaries = append(summaries, *summary)
	}
	return summaries, nil
}
