// Package scheduler is the default schedule generator: a single round-robin
// built with the circle method, with a rotating bye slot when the league has
// an odd team count.
package scheduler

import (
	"fmt"

	"github.com/XavierBriggs/gridiron/pkg/contracts"
	"github.com/XavierBriggs/gridiron/pkg/models"
)

// RoundRobin implements contracts.ScheduleGenerator
type RoundRobin struct{}

var _ contracts.ScheduleGenerator = RoundRobin{}

// GenerateSchedule builds one full round-robin over the team list
func (RoundRobin) GenerateSchedule(teams []*models.Team) (models.Schedule, error) {
	n := len(teams)
	if n < 2 {
		return models.Schedule{}, fmt.Errorf("scheduler: need at least 2 teams, have %d", n)
	}

	// circle method: fix slot 0, rotate the rest; -1 is the ghost opponent
	// whose pairing becomes a bye
	ids := make([]int, 0, n+1)
	for i := 0; i < n; i++ {
		ids = append(ids, i)
	}
	if n%2 == 1 {
		ids = append(ids, -1)
	}
	size := len(ids)
	rounds := size - 1

	var schedule models.Schedule
	for round := 0; round < rounds; round++ {
		var week models.Week
		for i := 0; i < size/2; i++ {
			a, b := ids[i], ids[size-1-i]
			switch {
			case a == -1:
				week.Pairings = append(week.Pairings, models.Pairing{Bye: []int{b}})
			case b == -1:
				week.Pairings = append(week.Pairings, models.Pairing{Bye: []int{a}})
			case round%2 == 0:
				week.Pairings = append(week.Pairings, models.Pairing{Home: a, Away: b})
			default:
				week.Pairings = append(week.Pairings, models.Pairing{Home: b, Away: a})
			}
		}
		schedule.Weeks = append(schedule.Weeks, week)

		// rotate everything but the first slot
		last := ids[size-1]
		copy(ids[2:], ids[1:size-1])
		ids[1] = last
	}
	return schedule, nil
}
