package planner

import "fmt"

const (
	roomDisplayFactor = 6
	reviewThreshold   = 80
)

// Rationale is the human-readable explanation attached to an option.
type Rationale struct {
	Pros        []string
	Cons        []string
	Suggestions []string
}

func explain(v Variant, result ScoreResult, unplaced int) Rationale {
	pros := []string{
		v.Highlight,
		"Respects all baseline constraints",
		fmt.Sprintf("Room utilisation %d%%", result.Breakdown.RoomEfficiency*roomDisplayFactor),
	}

	cons := []string{"No serious limitations"}
	if result.Total < reviewThreshold {
		cons[0] = "Some constraints could still be improved"
	}
	if v.Type == OptionStudent {
		cons = append(cons, "Some teachers may have too many free periods")
	}

	suggestions := []string{
		"Ready to adopt for the academic year",
		"Double-check classroom availability",
	}
	if unplaced > 0 {
		suggestions = append(suggestions, fmt.Sprintf("%d period(s) could not be placed; raise the teacher daily cap or add periods", unplaced))
	}

	return Rationale{Pros: pros, Cons: cons, Suggestions: suggestions}
}
