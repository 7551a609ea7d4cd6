package dto

import (
	"time"

	"github.com/noah-isme/sma-timetable-dss/internal/planner"
)

// SubjectRequest describes one subject and its weekly load.
type SubjectRequest struct {
	ID      string `json:"id" yaml:"id" mapstructure:"id"`
	Name    string `json:"name" yaml:"name" mapstructure:"name" validate:"required,max=120"`
	Code    string `json:"code" yaml:"code" mapstructure:"code" validate:"required,max=32"`
	Credits int    `json:"credits" yaml:"credits" mapstructure:"credits" validate:"min=0,max=40"`
	Teacher string `json:"teacher" yaml:"teacher" mapstructure:"teacher" validate:"required,max=120"`
}

// PreferencesRequest toggles the soft scheduling rules.
type PreferencesRequest struct {
	AvoidMorning                 bool `json:"avoidMorning" yaml:"avoidMorning" mapstructure:"avoidMorning"`
	AvoidLastPeriod              bool `json:"avoidLastPeriod" yaml:"avoidLastPeriod" mapstructure:"avoidLastPeriod"`
	NoHeavySubjectsConsecutive   bool `json:"noHeavySubjectsConsecutive" yaml:"noHeavySubjectsConsecutive" mapstructure:"noHeavySubjectsConsecutive"`
	MaxTeacherConsecutivePeriods bool `json:"maxTeacherConsecutivePeriods" yaml:"maxTeacherConsecutivePeriods" mapstructure:"maxTeacherConsecutivePeriods"`
	OptimizeRoomUsage            bool `json:"optimizeRoomUsage" yaml:"optimizeRoomUsage" mapstructure:"optimizeRoomUsage"`
}

// GenerateOptionsRequest is the constraints form submitted by planners.
type GenerateOptionsRequest struct {
	Classrooms              int                `json:"classrooms" yaml:"classrooms" mapstructure:"classrooms" validate:"min=0"`
	Teachers                int                `json:"teachers" yaml:"teachers" mapstructure:"teachers" validate:"min=0"`
	Subjects                []SubjectRequest   `json:"subjects" yaml:"subjects" mapstructure:"subjects" validate:"required,min=1,dive"`
	PeriodsPerDay           int                `json:"periodsPerDay" yaml:"periodsPerDay" mapstructure:"periodsPerDay" validate:"required,min=1,max=16"`
	DaysPerWeek             int                `json:"daysPerWeek" yaml:"daysPerWeek" mapstructure:"daysPerWeek" validate:"required,min=1,max=7"`
	MaxTeacherPeriodsPerDay int                `json:"maxTeacherPeriodsPerDay" yaml:"maxTeacherPeriodsPerDay" mapstructure:"maxTeacherPeriodsPerDay" validate:"required,min=1"`
	MaxStudentPeriodsPerDay int                `json:"maxStudentPeriodsPerDay" yaml:"maxStudentPeriodsPerDay" mapstructure:"maxStudentPeriodsPerDay" validate:"required,min=1"`
	Preferences             PreferencesRequest `json:"preferences" yaml:"preferences" mapstructure:"preferences"`
}

// ToConstraints converts the request into engine input.
func (r GenerateOptionsRequest) ToConstraints() planner.Constraints {
	subjects := make([]planner.Subject, 0, len(r.Subjects))
	for _, s := range r.Subjects {
		subjects = append(subjects, planner.Subject{
			ID:      s.ID,
			Name:    s.Name,
			Code:    s.Code,
			Credits: s.Credits,
			Teacher: s.Teacher,
		})
	}
	return planner.Constraints{
		Classrooms:              r.Classrooms,
		Teachers:                r.Teachers,
		Subjects:                subjects,
		PeriodsPerDay:           r.PeriodsPerDay,
		DaysPerWeek:             r.DaysPerWeek,
		MaxTeacherPeriodsPerDay: r.MaxTeacherPeriodsPerDay,
		MaxStudentPeriodsPerDay: r.MaxStudentPeriodsPerDay,
		Preferences: planner.Preferences{
			AvoidMorning:                 r.Preferences.AvoidMorning,
			AvoidLastPeriod:              r.Preferences.AvoidLastPeriod,
			NoHeavySubjectsConsecutive:   r.Preferences.NoHeavySubjectsConsecutive,
			MaxTeacherConsecutivePeriods: r.Preferences.MaxTeacherConsecutivePeriods,
			OptimizeRoomUsage:            r.Preferences.OptimizeRoomUsage,
		},
	}
}

// FromConstraints builds a request mirroring c.
func FromConstraints(c planner.Constraints) GenerateOptionsRequest {
	subjects := make([]SubjectRequest, 0, len(c.Subjects))
	for _, s := range c.Subjects {
		subjects = append(subjects, SubjectRequest{ID: s.ID, Name: s.Name, Code: s.Code, Credits: s.Credits, Teacher: s.Teacher})
	}
	return GenerateOptionsRequest{
		Classrooms:              c.Classrooms,
		Teachers:                c.Teachers,
		Subjects:                subjects,
		PeriodsPerDay:           c.PeriodsPerDay,
		DaysPerWeek:             c.DaysPerWeek,
		MaxTeacherPeriodsPerDay: c.MaxTeacherPeriodsPerDay,
		MaxStudentPeriodsPerDay: c.MaxStudentPeriodsPerDay,
		Preferences: PreferencesRequest{
			AvoidMorning:                 c.Preferences.AvoidMorning,
			AvoidLastPeriod:              c.Preferences.AvoidLastPeriod,
			NoHeavySubjectsConsecutive:   c.Preferences.NoHeavySubjectsConsecutive,
			MaxTeacherConsecutivePeriods: c.Preferences.MaxTeacherConsecutivePeriods,
			OptimizeRoomUsage:            c.Preferences.OptimizeRoomUsage,
		},
	}
}

// GenerateOptionsResponse returns the ranked options of one run.
type GenerateOptionsResponse struct {
	ProposalID  string           `json:"proposalId"`
	Options     []planner.Option `json:"options"`
	GeneratedAt time.Time        `json:"generatedAt"`
	ExpiresAt   time.Time        `json:"expiresAt"`
	Cached      bool             `json:"cached"`
}

// ProposalResponse is a stored run together with the constraints it answered.
type ProposalResponse struct {
	ProposalID  string              `json:"proposalId"`
	Constraints planner.Constraints `json:"constraints"`
	Options     []planner.Option    `json:"options"`
	GeneratedAt time.Time           `json:"generatedAt"`
	ExpiresAt   time.Time           `json:"expiresAt"`
}

// OptionDetailResponse backs the per-option evaluation view.
type OptionDetailResponse struct {
	ProposalID   string              `json:"proposalId"`
	Option       planner.Option      `json:"option"`
	Factors      []planner.Factor    `json:"factors"`
	Days         []string            `json:"days"`
	PeriodLabels []string            `json:"periodLabels"`
	Findings     []planner.Violation `json:"findings"`
	Constraints  planner.Constraints `json:"constraints"`
}

// ExportOptionRequest selects the export file format.
type ExportOptionRequest struct {
	ProposalID string `json:"proposalId" validate:"required"`
	OptionID   string `json:"optionId" validate:"required,oneof=A B C"`
	Format     string `json:"format" form:"format" validate:"required,oneof=csv pdf"`
}

// ExportResponse points at a stored export.
type ExportResponse struct {
	Filename  string    `json:"filename"`
	Format    string    `json:"format"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// DefaultsResponse carries the sample constraints and reference catalog.
type DefaultsResponse struct {
	Constraints GenerateOptionsRequest `json:"constraints"`
	Catalog     planner.Catalog        `json:"catalog"`
}
