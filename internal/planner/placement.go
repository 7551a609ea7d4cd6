package planner

// Placement is the result of one greedy pass.
type Placement struct {
	Schedule Schedule `json:"schedule"`
	Unplaced []Token  `json:"unplaced"`
}

// Place walks days then periods and fills each slot with the first pool token
// whose teacher is still under the daily cap. A slot with no eligible token
// stays absent; nothing is revisited.
func Place(pool []Token, c Constraints, seed int64, cat Catalog) Placement {
	remaining := make([]Token, len(pool))
	copy(remaining, pool)

	periods := max(c.PeriodsPerDay, 0)
	days := cat.ActiveDays(c.DaysPerWeek)
	schedule := make(Schedule, 0, len(days))

	for _, day := range days {
		loads := make(map[string]int)
		slots := make([]Slot, periods)
		for period := 0; period < periods; period++ {
			idx := firstEligible(remaining, loads, c.MaxTeacherPeriodsPerDay)
			if idx < 0 {
				slots[period] = Absent()
				continue
			}
			token := remaining[idx]
			remaining = append(remaining[:idx], remaining[idx+1:]...)
			loads[token.Teacher]++
			slots[period] = Filled(Cell{
				Subject: token.Subject,
				Code:    token.Code,
				Teacher: token.Teacher,
				Room:    cat.Room(seed, period),
				Color:   cat.ColorFor(token.Subject, seed),
			})
		}
		schedule = append(schedule, DaySchedule{Day: day, Slots: slots})
	}

	return Placement{Schedule: schedule, Unplaced: remaining}
}

func firstEligible(pool []Token, loads map[string]int, limit int) int {
	for i, token := range pool {
		if loads[token.Teacher] < limit {
			return i
		}
	}
	return -1
}
