package contracts

import (
	"context"

	"facultyload-service/internal/app/models"
)

// OpenDialogInput seeds a dialog session from the timetable cell the
// administrator clicked.
type OpenDialogInput struct {
	ScheduleID int64
	ProgramID  int64
	YearLevel  int
	SectionID  int64
	Day        string
	StartTime  string
	EndTime    string
	FacultyID  *int64
	RoomID     *int64
}

// UpdateDraftInput carries one edit burst. Nil means "field untouched";
// pointing at an empty string clears the field.
type UpdateDraftInput struct {
	Day       *string
	StartTime *string
	EndTime   *string
	Professor *string
	Room      *string
}

// DialogSnapshot is the draft plus everything the front end renders: current
// state, the single surfaced conflict (if any) and the narrowed end-time
// options.
type DialogSnapshot struct {
	SessionID      string                 `json:"session_id"`
	State          models.DraftState      `json:"state"`
	Draft          models.ScheduleDraft   `json:"draft"`
	Conflict       *models.ConflictResult `json:"conflict,omitempty"`
	EndTimeOptions []string               `json:"end_time_options"`
	Revision       uint64                 `json:"revision"`
}

// SchedulingUsecase is the dialog workflow: open, edit with debounced
// conflict checking, suggestion paging, assign, clear, cancel.
type SchedulingUsecase interface {
	OpenDialog(ctx context.Context, input OpenDialogInput) (*DialogSnapshot, error)
	Snapshot(ctx context.Context, sessionID string) (*DialogSnapshot, error)
	UpdateDraft(ctx context.Context, sessionID string, input UpdateDraftInput) (*DialogSnapshot, error)
	Validate(ctx context.Context, sessionID string) (*DialogSnapshot, error)
	ApplyPreference(ctx context.Context, sessionID string, suggestionIndex, prefIndex int) (*DialogSnapshot, error)
	Assign(ctx context.Context, sessionID string) (*models.Schedule, *DialogSnapshot, error)
	ClearAll(ctx context.Context, sessionID string) (*DialogSnapshot, error)
	Cancel(ctx context.Context, sessionID string) error
}
