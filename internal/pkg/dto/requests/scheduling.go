package requests

// OpenDialog seeds a dialog session from an existing timetable cell. Day and
// times may be empty when the cell has never been assigned.
type OpenDialog struct {
	ScheduleID int64  `json:"scheduleId" validate:"required"`
	ProgramID  int64  `json:"programId" validate:"required"`
	YearLevel  int    `json:"yearLevel" validate:"required,min=1,max=6"`
	SectionID  int64  `json:"sectionId" validate:"required"`
	Day        string `json:"day,omitempty" validate:"weekday"`
	StartTime  string `json:"startTime,omitempty" validate:"display_time"`
	EndTime    string `json:"endTime,omitempty" validate:"display_time"`
	FacultyID  *int64 `json:"facultyId,omitempty"`
	RoomID     *int64 `json:"roomId,omitempty"`
}

// UpdateDraft carries one edit burst from the dialog. Omitted fields stay
// untouched; an explicit empty string clears the field.
type UpdateDraft struct {
	Day       *string `json:"day,omitempty"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	Professor *string `json:"professor,omitempty"`
	Room      *string `json:"room,omitempty"`
}

// ApplyPreference picks one entry of the suggested-faculty list.
type ApplyPreference struct {
	SuggestionIndex int `json:"suggestionIndex" validate:"min=0"`
	PrefIndex       int `json:"prefIndex" validate:"min=0"`
}
