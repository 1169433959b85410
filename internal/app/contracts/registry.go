package contracts

import (
	"context"

	"facultyload-service/internal/app/models"
)

// ValidationOutcome is the registry's answer to one availability check.
type ValidationOutcome struct {
	IsValid bool   `json:"isValid"`
	Message string `json:"message"`
}

// ValidateProgramOverlapInput checks the cohort timetable: no other row of
// the same program + year level may overlap the candidate slot. Times are
// backend-formatted HH:MM:SS.
type ValidateProgramOverlapInput struct {
	ScheduleID int64  `json:"scheduleId"`
	ProgramID  int64  `json:"programId"`
	YearLevel  int    `json:"yearLevel"`
	Day        string `json:"day"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
}

type ValidateFacultyAvailabilityInput struct {
	ScheduleID int64  `json:"scheduleId"`
	FacultyID  int64  `json:"facultyId"`
	Day        string `json:"day"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	ProgramID  int64  `json:"programId"`
	YearLevel  int    `json:"yearLevel"`
	SectionID  int64  `json:"sectionId"`
}

type ValidateRoomAvailabilityInput struct {
	ScheduleID int64  `json:"scheduleId"`
	RoomID     int64  `json:"roomId"`
	Day        string `json:"day"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	ProgramID  int64  `json:"programId"`
	YearLevel  int    `json:"yearLevel"`
	SectionID  int64  `json:"sectionId"`
}

// AssignScheduleInput is the final authoritative save. Nil pointers clear the
// corresponding column.
type AssignScheduleInput struct {
	ScheduleID int64   `json:"scheduleId"`
	FacultyID  *int64  `json:"facultyId"`
	RoomID     *int64  `json:"roomId"`
	Day        *string `json:"day"`
	StartTime  *string `json:"startTime"`
	EndTime    *string `json:"endTime"`
	ProgramID  int64   `json:"programId"`
	YearLevel  int     `json:"yearLevel"`
	SectionID  int64   `json:"sectionId"`
}

// ScheduleRegistryClient talks to the registry backend, the single authority
// over the persisted timetable. Client-side checks are advisory; the registry
// re-validates on assignment because two administrators can race on a slot.
type ScheduleRegistryClient interface {
	ValidateProgramOverlap(ctx context.Context, input ValidateProgramOverlapInput) (*ValidationOutcome, error)
	ValidateFacultyAvailability(ctx context.Context, input ValidateFacultyAvailabilityInput) (*ValidationOutcome, error)
	ValidateRoomAvailability(ctx context.Context, input ValidateRoomAvailabilityInput) (*ValidationOutcome, error)
	AssignSchedule(ctx context.Context, input AssignScheduleInput) (*models.Schedule, error)
}

// ReferenceDataClient serves the read-only option lists the dialog filters
// against. Implementations may cache; callers treat results as snapshots.
type ReferenceDataClient interface {
	ListFaculty(ctx context.Context) ([]models.Faculty, error)
	ListRooms(ctx context.Context) ([]models.Room, error)
	ListSuggestedFaculty(ctx context.Context, programID int64, yearLevel int, sectionID int64) ([]models.SuggestedFaculty, error)
}
