package scheduling

import (
	"fmt"
	"strings"

	"facultyload-service/internal/app/models"
)

// findFacultyByName resolves a picker display value against the faculty
// option list. Free-typed values that match nothing resolve to nil; the
// assign step rejects them, never the registry.
func findFacultyByName(faculty []models.Faculty, name string) *int64 {
	trimmed := strings.TrimSpace(name)
	for _, f := range faculty {
		if strings.EqualFold(f.Name, trimmed) {
			id := f.ID
			return &id
		}
	}
	return nil
}

func findRoomByCode(rooms []models.Room, code string) *int64 {
	trimmed := strings.TrimSpace(code)
	for _, r := range rooms {
		if strings.EqualFold(r.Code, trimmed) {
			id := r.ID
			return &id
		}
	}
	return nil
}

// parsePreferenceRange splits a suggestion's "10:00 AM - 11:00 AM" range into
// its two clock times.
func parsePreferenceRange(timeRange string) (models.ClockTime, models.ClockTime, error) {
	parts := strings.Split(timeRange, "-")
	if len(parts) != 2 {
		return models.ClockTime{}, models.ClockTime{}, fmt.Errorf("invalid preference time range '%s'", timeRange)
	}
	start, err := models.ParseDisplayTime(strings.TrimSpace(parts[0]))
	if err != nil {
		return models.ClockTime{}, models.ClockTime{}, err
	}
	end, err := models.ParseDisplayTime(strings.TrimSpace(parts[1]))
	if err != nil {
		return models.ClockTime{}, models.ClockTime{}, err
	}
	if !start.Before(end) {
		return models.ClockTime{}, models.ClockTime{}, fmt.Errorf("preference range '%s' is not ascending", timeRange)
	}
	return start, end, nil
}

// draftIsEmpty reports whether every editable field has been cleared.
func draftIsEmpty(draft models.ScheduleDraft) bool {
	return draft.Day == nil &&
		draft.StartTime == nil &&
		draft.EndTime == nil &&
		draft.FacultyID == nil &&
		draft.RoomID == nil &&
		draft.ProfessorName == "" &&
		draft.RoomCode == ""
}
