package planner

import "fmt"

// Violation kinds reported by Audit.
const (
	ViolationTeacherCap    = "teacher_cap"
	ViolationUnknownClass  = "unknown_assignment"
	ViolationPeriodCount   = "period_count"
	ViolationCreditOverrun = "credit_overrun"
	ViolationDayCount      = "day_count"
)

// Violation describes one broken structural rule in a schedule.
type Violation struct {
	Kind        string `json:"kind"`
	Day         string `json:"day,omitempty"`
	Period      int    `json:"period"`
	Description string `json:"description"`
}

// Error implements error.
func (v Violation) Error() string {
	if v.Day == "" {
		return fmt.Sprintf("%s: %s", v.Kind, v.Description)
	}
	return fmt.Sprintf("%s on %s period %d: %s", v.Kind, v.Day, v.Period+1, v.Description)
}

// Audit re-checks a schedule against the constraints it was generated from.
// It returns nil for a schedule the generator could have produced.
func Audit(schedule Schedule, c Constraints) []Violation {
	var violations []Violation

	if len(schedule) > max(c.DaysPerWeek, 0) {
		violations = append(violations, Violation{
			Kind:        ViolationDayCount,
			Period:      -1,
			Description: fmt.Sprintf("schedule has %d days, expected at most %d", len(schedule), c.DaysPerWeek),
		})
	}

	type pair struct{ subject, teacher string }
	known := make(map[pair]int, len(c.Subjects))
	for _, s := range c.Subjects {
		known[pair{s.Name, s.Teacher}] += max(s.Credits, 0)
	}
	placed := make(map[pair]int)

	for _, day := range schedule {
		if len(day.Slots) != max(c.PeriodsPerDay, 0) {
			violations = append(violations, Violation{
				Kind:        ViolationPeriodCount,
				Day:         day.Day,
				Period:      -1,
				Description: fmt.Sprintf("day has %d periods, expected %d", len(day.Slots), c.PeriodsPerDay),
			})
		}

		loads := make(map[string]int)
		for idx, slot := range day.Slots {
			cell, ok := slot.Cell()
			if !ok {
				continue
			}
			key := pair{cell.Subject, cell.Teacher}
			if _, exists := known[key]; !exists {
				violations = append(violations, Violation{
					Kind:        ViolationUnknownClass,
					Day:         day.Day,
					Period:      idx,
					Description: fmt.Sprintf("%s taught by %s is not in the subject list", cell.Subject, cell.Teacher),
				})
			}
			placed[key]++
			loads[cell.Teacher]++
			if loads[cell.Teacher] == c.MaxTeacherPeriodsPerDay+1 {
				violations = append(violations, Violation{
					Kind:        ViolationTeacherCap,
					Day:         day.Day,
					Period:      idx,
					Description: fmt.Sprintf("%s exceeds %d periods per day", cell.Teacher, c.MaxTeacherPeriodsPerDay),
				})
			}
		}
	}

	for _, s := range c.Subjects {
		key := pair{s.Name, s.Teacher}
		if credits, ok := known[key]; ok && placed[key] > credits {
			violations = append(violations, Violation{
				Kind:        ViolationCreditOverrun,
				Period:      -1,
				Description: fmt.Sprintf("%s placed %d times for %d credits", s.Name, placed[key], credits),
			})
			delete(known, key)
		}
	}

	return violations
}
