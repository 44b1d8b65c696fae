package season

import (
	"fmt"
	"log"

	"github.com/XavierBriggs/gridiron/pkg/models"
)

// runRollover performs the offseason bookkeeping: career-stat accumulation,
// then the optional award/record/retirement/cap hooks. Every hook runs
// individually fault-tolerant; a failing collaborator is logged and the
// rollover keeps going, since the offseason transition is already committed.
func (c *Controller) runRollover(lg *models.League) {
	accumulateCareerStats(lg)

	c.runHook(lg, "awards", func() error {
		return c.collab.Awards.CalculateAllAwards(lg)
	})
	c.runHook(lg, "records", func() error {
		return c.collab.Records.UpdateAllRecords(lg)
	})
	c.runHook(lg, "retirements", func() error {
		return c.processRetirements(lg)
	})
	c.runHook(lg, "cap", func() error {
		return c.collab.Cap.ProcessCapRollover(lg)
	})

	log.Printf("[season] league %s: %d rollover complete", lg.ID, lg.Year)
}

// runHook isolates one optional collaborator: errors and panics are caught
// and logged without aborting the surrounding phase transition
func (c *Controller) runHook(lg *models.League, name string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[season] league %s: %s hook panicked: %v", lg.ID, name, r)
		}
	}()
	if err := fn(); err != nil {
		log.Printf("[season] league %s: %s hook failed: %v", lg.ID, name, err)
	}
}

// accumulateCareerStats folds season totals into career totals. Career
// buckets only ever grow.
func accumulateCareerStats(lg *models.League) {
	for _, t := range lg.Teams {
		for _, p := range t.Roster {
			if len(p.Stats.Season) == 0 {
				continue
			}
			if p.Stats.Career == nil {
				p.Stats.Career = models.StatLine{}
			}
			p.Stats.Career.Add(p.Stats.Season)
		}
	}
}

// processRetirements invokes the retirement collaborator and removes
// retirees from their rosters. A nil processor means nobody retires.
func (c *Controller) processRetirements(lg *models.League) error {
	if c.collab.Retirement == nil {
		return nil
	}

	report, err := c.collab.Retirement.ProcessRetirements(lg, lg.Year)
	if err != nil {
		return err
	}

	retired := make(map[string]bool, len(report.Retired))
	for _, p := range report.Retired {
		p.Retired = true
		retired[p.ID] = true
	}
	for _, t := range lg.Teams {
		kept := t.Roster[:0]
		for _, p := range t.Roster {
			if !retired[p.ID] {
				kept = append(kept, p)
			}
		}
		t.Roster = kept
	}

	for i, announcement := range report.Announcements {
		headline := announcement
		if i < len(report.Retired) {
			headline = fmt.Sprintf("%s announces retirement", report.Retired[i].Name)
		}
		c.collab.News.AddNewsItem(lg, headline, announcement, models.NewsRetirement)
	}
	return nil
}
