package planner

import "math"

const (
	maxNoConflicts       = 30
	maxWorkload          = 20
	maxRoomEfficiency    = 15
	maxConstraintRespect = 15

	violationPenalty    = 5
	favouredBonus       = 2
	disfavouredPenalty  = 3
	heavyMorningPenalty = 2
	lastPeriodPenalty   = 1
	jitterAmplitude     = 3.0

	excellentThreshold = 85
	goodThreshold      = 70
)

// Score rates a schedule out of 100. Heavy subjects are recognised by the
// supplied keywords.
func Score(schedule Schedule, c Constraints, seed int64, optionType OptionType, heavyKeywords []string) ScoreResult {
	constraintPoints := maxConstraintRespect
	var diag Diagnostics

	for _, day := range schedule {
		loads := make(map[string]int)
		filled := 0
		last := len(day.Slots) - 1
		for idx, slot := range day.Slots {
			diag.TotalSlots++
			cell, ok := slot.Cell()
			if !ok {
				continue
			}
			filled++
			loads[cell.Teacher]++
			if c.Preferences.AvoidMorning && idx == 0 && isHeavy(cell.Subject, heavyKeywords) {
				constraintPoints -= heavyMorningPenalty
			}
			if c.Preferences.AvoidLastPeriod && idx == last {
				constraintPoints -= lastPeriodPenalty
			}
		}
		diag.UsedSlots += filled

		for _, load := range loads {
			if load > c.MaxTeacherPeriodsPerDay {
				diag.TeacherViolations++
			}
		}
		if filled > c.MaxStudentPeriodsPerDay {
			diag.StudentViolations++
		}
	}

	teacher := clamp(maxWorkload-violationPenalty*diag.TeacherViolations, 0, maxWorkload)
	student := clamp(maxWorkload-violationPenalty*diag.StudentViolations, 0, maxWorkload)
	switch optionType {
	case OptionTeacher:
		teacher = min(maxWorkload, teacher+favouredBonus)
		student = max(0, student-disfavouredPenalty)
	case OptionStudent:
		student = min(maxWorkload, student+favouredBonus)
		teacher = max(0, teacher-disfavouredPenalty)
	}

	room := 0
	if diag.TotalSlots > 0 {
		room = roundHalfUp(float64(diag.UsedSlots) / float64(diag.TotalSlots) * maxRoomEfficiency)
	}

	breakdown := Breakdown{
		NoConflicts:       maxNoConflicts,
		TeacherWorkload:   teacher,
		StudentWorkload:   student,
		RoomEfficiency:    room,
		ConstraintRespect: max(0, constraintPoints),
	}
	diag.Jitter = Jitter(seed)

	sum := float64(breakdown.NoConflicts+breakdown.TeacherWorkload+breakdown.StudentWorkload+breakdown.RoomEfficiency+breakdown.ConstraintRespect) + diag.Jitter

	return ScoreResult{
		Total:       clamp(roundHalfUp(sum), 0, 100),
		Breakdown:   breakdown,
		Diagnostics: diag,
	}
}

// Jitter is the seed-derived offset that keeps the three variants' totals apart.
func Jitter(seed int64) float64 {
	return math.Sin(float64(seed)) * jitterAmplitude
}

// ClassifyLevel maps a total to its band.
func ClassifyLevel(total int) Level {
	switch {
	case total >= excellentThreshold:
		return LevelExcellent
	case total >= goodThreshold:
		return LevelGood
	default:
		return LevelModerate
	}
}

// roundHalfUp rounds .5 towards +Inf.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
