package planner

// DefaultConstraints is the sample weekly load shown to a new planner.
func DefaultConstraints() Constraints {
	return Constraints{
		Classrooms: 10,
		Teachers:   15,
		Subjects: []Subject{
			{ID: "1", Name: "Mathematics", Code: "MA101", Credits: 3, Teacher: "T. Somchai"},
			{ID: "2", Name: "Science", Code: "SC101", Credits: 3, Teacher: "T. Somying"},
			{ID: "3", Name: "English", Code: "EN101", Credits: 2, Teacher: "T. Wichai"},
			{ID: "4", Name: "Thai Language", Code: "TH101", Credits: 2, Teacher: "T. Pim"},
			{ID: "5", Name: "Social Studies", Code: "SO101", Credits: 2, Teacher: "T. Prayut"},
			{ID: "6", Name: "Physical Education", Code: "PE101", Credits: 1, Teacher: "T. Suda"},
			{ID: "7", Name: "Art", Code: "AR101", Credits: 1, Teacher: "T. Mana"},
			{ID: "8", Name: "Computing", Code: "CO101", Credits: 2, Teacher: "T. Rattana"},
		},
		PeriodsPerDay:           7,
		DaysPerWeek:             5,
		MaxTeacherPeriodsPerDay: 4,
		MaxStudentPeriodsPerDay: 6,
		Preferences: Preferences{
			NoHeavySubjectsConsecutive:   true,
			MaxTeacherConsecutivePeriods: true,
			OptimizeRoomUsage:            true,
		},
	}
}
