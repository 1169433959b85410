package models

// Faculty is a reference entity owned by the faculty-management subsystem.
// This service only looks names up against it.
type Faculty struct {
	ID   int64  `json:"faculty_id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type Room struct {
	ID   int64  `json:"room_id"`
	Code string `json:"room_code"`
}

// FacultyPreference is one (day, time range) entry of a suggested faculty
// member's ranked preference list, in display form ("10:00 AM - 11:00 AM").
type FacultyPreference struct {
	Day  string `json:"day"`
	Time string `json:"time"`
}

// SuggestedFaculty is a precomputed suggestion the administrator can page
// through; applying one seeds the draft in a single update.
type SuggestedFaculty struct {
	ID          int64               `json:"faculty_id"`
	Name        string              `json:"name"`
	Type        string              `json:"type"`
	Preferences []FacultyPreference `json:"preferences"`
	PrefIndex   int                 `json:"pref_index"`
}

// ScheduleDraft is the in-memory candidate being edited in one dialog
// session. Display strings are what the administrator typed or picked;
// resolved IDs and parsed times are derived at the boundary and are the only
// values that ever reach the registry.
type ScheduleDraft struct {
	ScheduleID int64 `json:"schedule_id"`
	ProgramID  int64 `json:"program_id"`
	YearLevel  int   `json:"year_level"`
	SectionID  int64 `json:"section_id"`

	Day       *Weekday   `json:"day,omitempty"`
	StartTime *ClockTime `json:"start_time,omitempty"`
	EndTime   *ClockTime `json:"end_time,omitempty"`
	FacultyID *int64     `json:"faculty_id,omitempty"`
	RoomID    *int64     `json:"room_id,omitempty"`

	// Raw picker values, kept so an unrecognized free-typed professor/room
	// can be rejected at assign time instead of being silently dropped.
	ProfessorName string `json:"professor_name,omitempty"`
	RoomCode      string `json:"room_code,omitempty"`
}

// Slot assembles the candidate TimeSlot, or ok=false while any of day/start/
// end is still unset.
func (d *ScheduleDraft) Slot() (TimeSlot, bool) {
	if d.Day == nil || d.StartTime == nil || d.EndTime == nil {
		return TimeSlot{}, false
	}
	return TimeSlot{Day: *d.Day, Start: *d.StartTime, End: *d.EndTime}, true
}

// Schedule is the persisted row returned by the registry after a successful
// assignment.
type Schedule struct {
	ScheduleID int64   `json:"schedule_id"`
	ProgramID  int64   `json:"program_id"`
	YearLevel  int     `json:"year_level"`
	SectionID  int64   `json:"section_id"`
	FacultyID  *int64  `json:"faculty_id"`
	RoomID     *int64  `json:"room_id"`
	Day        *string `json:"day"`
	StartTime  *string `json:"start_time"`
	EndTime    *string `json:"end_time"`
}
