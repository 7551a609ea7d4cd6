package planner

import (
	"bytes"
	"encoding/json"
)

// Subject is a course that owes Credits periods per week, taught by one teacher.
type Subject struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Code    string `json:"code"`
	Credits int    `json:"credits"`
	Teacher string `json:"teacher"`
}

// Preferences holds the soft rules a planner can toggle. Only AvoidMorning and
// AvoidLastPeriod influence scoring; the others are carried through untouched.
type Preferences struct {
	AvoidMorning                 bool `json:"avoidMorning"`
	AvoidLastPeriod              bool `json:"avoidLastPeriod"`
	NoHeavySubjectsConsecutive   bool `json:"noHeavySubjectsConsecutive"`
	MaxTeacherConsecutivePeriods bool `json:"maxTeacherConsecutivePeriods"`
	OptimizeRoomUsage            bool `json:"optimizeRoomUsage"`
}

// Constraints is the immutable input of one generation run.
type Constraints struct {
	Classrooms              int         `json:"classrooms"`
	Teachers                int         `json:"teachers"`
	Subjects                []Subject   `json:"subjects"`
	PeriodsPerDay           int         `json:"periodsPerDay"`
	DaysPerWeek             int         `json:"daysPerWeek"`
	MaxTeacherPeriodsPerDay int         `json:"maxTeacherPeriodsPerDay"`
	MaxStudentPeriodsPerDay int         `json:"maxStudentPeriodsPerDay"`
	Preferences             Preferences `json:"preferences"`
}

// TotalCredits sums the weekly periods owed by every subject.
func (c Constraints) TotalCredits() int {
	total := 0
	for _, s := range c.Subjects {
		if s.Credits > 0 {
			total += s.Credits
		}
	}
	return total
}

// Token is one weekly period a subject still needs.
type Token struct {
	Subject string `json:"subject"`
	Code    string `json:"code"`
	Teacher string `json:"teacher"`
}

// Cell is a placed class.
type Cell struct {
	Subject string `json:"subject"`
	Code    string `json:"code"`
	Teacher string `json:"teacher"`
	Room    string `json:"room"`
	Color   string `json:"color"`
}

// Slot is either a filled Cell or absent. The zero value is absent.
type Slot struct {
	cell   Cell
	filled bool
}

// Absent returns an empty slot.
func Absent() Slot { return Slot{} }

// Filled returns a slot holding c.
func Filled(c Cell) Slot { return Slot{cell: c, filled: true} }

// Cell returns the placed class and whether the slot is filled.
func (s Slot) Cell() (Cell, bool) { return s.cell, s.filled }

// IsAbsent reports whether no class is placed in the slot.
func (s Slot) IsAbsent() bool { return !s.filled }

// MarshalJSON encodes an absent slot as null.
func (s Slot) MarshalJSON() ([]byte, error) {
	if !s.filled {
		return []byte("null"), nil
	}
	return json.Marshal(s.cell)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (s *Slot) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = Absent()
		return nil
	}
	var c Cell
	if err := json.Unmarshal(data, &c); err != nil {
		return err
	}
	*s = Filled(c)
	return nil
}

// DaySchedule is the ordered list of periods for one day.
type DaySchedule struct {
	Day   string `json:"day"`
	Slots []Slot `json:"slots"`
}

// Filled counts the non-absent slots of the day.
func (d DaySchedule) Filled() int {
	n := 0
	for _, slot := range d.Slots {
		if !slot.IsAbsent() {
			n++
		}
	}
	return n
}

// Schedule lists populated days in canonical order.
type Schedule []DaySchedule

// Day looks a day up by name.
func (s Schedule) Day(name string) (DaySchedule, bool) {
	for _, d := range s {
		if d.Day == name {
			return d, true
		}
	}
	return DaySchedule{}, false
}

// Filled counts every non-absent slot in the week.
func (s Schedule) Filled() int {
	n := 0
	for _, d := range s {
		n += d.Filled()
	}
	return n
}

// OptionType selects the workload weighting applied when scoring.
type OptionType string

const (
	OptionBalanced OptionType = "balanced"
	OptionTeacher  OptionType = "teacher"
	OptionStudent  OptionType = "student"
)

// Level is the qualitative band of a total score.
type Level string

const (
	LevelExcellent Level = "excellent"
	LevelGood      Level = "good"
	LevelModerate  Level = "moderate"
)

// Breakdown holds the five score factors.
type Breakdown struct {
	NoConflicts       int `json:"noConflicts"`
	TeacherWorkload   int `json:"teacherWorkload"`
	StudentWorkload   int `json:"studentWorkload"`
	RoomEfficiency    int `json:"roomEfficiency"`
	ConstraintRespect int `json:"constraintRespect"`
}

// Factor is one named breakdown entry with its ceiling.
type Factor struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Score int    `json:"score"`
	Max   int    `json:"max"`
}

// Factors lists the breakdown in display order.
func (b Breakdown) Factors() []Factor {
	return []Factor{
		{Key: "noConflicts", Label: "No conflicts", Score: b.NoConflicts, Max: maxNoConflicts},
		{Key: "teacherWorkload", Label: "Teacher workload", Score: b.TeacherWorkload, Max: maxWorkload},
		{Key: "studentWorkload", Label: "Student workload", Score: b.StudentWorkload, Max: maxWorkload},
		{Key: "roomEfficiency", Label: "Room efficiency", Score: b.RoomEfficiency, Max: maxRoomEfficiency},
		{Key: "constraintRespect", Label: "Constraint respect", Score: b.ConstraintRespect, Max: maxConstraintRespect},
	}
}

// Diagnostics exposes the raw counts behind a score.
type Diagnostics struct {
	TeacherViolations int     `json:"teacherViolations"`
	StudentViolations int     `json:"studentViolations"`
	UsedSlots         int     `json:"usedSlots"`
	TotalSlots        int     `json:"totalSlots"`
	Jitter            float64 `json:"jitter"`
}

// ScoreResult is the output of Score.
type ScoreResult struct {
	Total       int         `json:"total"`
	Breakdown   Breakdown   `json:"breakdown"`
	Diagnostics Diagnostics `json:"diagnostics"`
}

// Option is one ranked candidate timetable.
type Option struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Type        OptionType  `json:"type"`
	Seed        int64       `json:"seed"`
	Score       int         `json:"score"`
	Level       Level       `json:"level"`
	Schedule    Schedule    `json:"schedule"`
	Pros        []string    `json:"pros"`
	Cons        []string    `json:"cons"`
	Suggestions []string    `json:"suggestions"`
	Breakdown   Breakdown   `json:"breakdown"`
	Diagnostics Diagnostics `json:"diagnostics"`
	Unplaced    []Token     `json:"unplaced"`
}
