package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Weekday is the day-of-week vocabulary used by the registry timetable.
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

var weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Weekdays returns the day option list in display order.
func Weekdays() []Weekday {
	out := make([]Weekday, len(weekdays))
	copy(out, weekdays)
	return out
}

func ParseWeekday(s string) (Weekday, error) {
	for _, d := range weekdays {
		if strings.EqualFold(strings.TrimSpace(s), string(d)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown weekday '%s'", s)
}

// ClockTime holds a local wall time (hour and minute). Schedule slots have no
// date component; the timetable repeats weekly.
type ClockTime struct {
	Hour   int
	Minute int
}

func (c ClockTime) minutes() int { return c.Hour*60 + c.Minute }

// Before reports whether c is strictly earlier in the day than other.
func (c ClockTime) Before(other ClockTime) bool { return c.minutes() < other.minutes() }

// Compare orders by minutes-since-midnight: -1, 0 or +1.
func (c ClockTime) Compare(other ClockTime) int {
	switch {
	case c.minutes() < other.minutes():
		return -1
	case c.minutes() > other.minutes():
		return 1
	default:
		return 0
	}
}

// Backend renders the canonical HH:MM:SS form the registry expects.
func (c ClockTime) Backend() string {
	return fmt.Sprintf("%02d:%02d:00", c.Hour, c.Minute)
}

// Display renders the 12-hour form shown in the dialog, e.g. "02:30 PM".
func (c ClockTime) Display() string {
	meridiem := "AM"
	hour := c.Hour
	switch {
	case hour == 0:
		hour = 12
	case hour == 12:
		meridiem = "PM"
	case hour > 12:
		hour -= 12
		meridiem = "PM"
	}
	return fmt.Sprintf("%02d:%02d %s", hour, c.Minute, meridiem)
}

// ParseDisplayTime parses the fixed "hh:mm AM/PM" vocabulary. It fails fast
// on anything outside that shape so a malformed value never reaches a
// validator call.
func ParseDisplayTime(s string) (ClockTime, error) {
	parts := strings.Fields(strings.TrimSpace(s))
	if len(parts) != 2 {
		return ClockTime{}, fmt.Errorf("invalid time '%s': want 'hh:mm AM/PM'", s)
	}
	meridiem := strings.ToUpper(parts[1])
	if meridiem != "AM" && meridiem != "PM" {
		return ClockTime{}, fmt.Errorf("invalid time '%s': meridiem must be AM or PM", s)
	}
	hm := strings.Split(parts[0], ":")
	if len(hm) != 2 {
		return ClockTime{}, fmt.Errorf("invalid time '%s': want 'hh:mm AM/PM'", s)
	}
	hour, err := strconv.Atoi(hm[0])
	if err != nil || hour < 1 || hour > 12 {
		return ClockTime{}, fmt.Errorf("invalid time '%s': bad hour", s)
	}
	minute, err := strconv.Atoi(hm[1])
	if err != nil || minute < 0 || minute > 59 {
		return ClockTime{}, fmt.Errorf("invalid time '%s': bad minute", s)
	}
	if meridiem == "PM" && hour != 12 {
		hour += 12
	}
	if meridiem == "AM" && hour == 12 {
		hour = 0
	}
	return ClockTime{Hour: hour, Minute: minute}, nil
}

// ParseBackendTime parses the registry's HH:MM:SS form. Seconds are carried
// on the wire but the timetable grid is minute-granular, so they must be zero.
func ParseBackendTime(s string) (ClockTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return ClockTime{}, fmt.Errorf("invalid backend time '%s': want HH:MM:SS", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return ClockTime{}, fmt.Errorf("invalid backend time '%s': bad hour", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return ClockTime{}, fmt.Errorf("invalid backend time '%s': bad minute", s)
	}
	if parts[2] != "00" {
		return ClockTime{}, fmt.Errorf("invalid backend time '%s': seconds must be 00", s)
	}
	return ClockTime{Hour: hour, Minute: minute}, nil
}

// TimeSlot is one weekly class meeting: a day plus a half-open [Start, End)
// wall-clock window.
type TimeSlot struct {
	Day   Weekday
	Start ClockTime
	End   ClockTime
}

// Overlaps reports whether two slots collide. Touching endpoints do not
// overlap: a class ending 10:00 and one starting 10:00 can share a room.
func (s TimeSlot) Overlaps(other TimeSlot) bool {
	if s.Day != other.Day {
		return false
	}
	return s.Start.Before(other.End) && other.Start.Before(s.End)
}

// The dialog's time pickers offer 30-minute steps between 07:00 and 21:00.
const (
	gridStartHour = 7
	gridEndHour   = 21
	gridStepMin   = 30
)

// TimeOptions returns the full start/end picker vocabulary in display form.
func TimeOptions() []string {
	var out []string
	for m := gridStartHour * 60; m <= gridEndHour*60; m += gridStepMin {
		out = append(out, ClockTime{Hour: m / 60, Minute: m % 60}.Display())
	}
	return out
}

// EndTimeOptionsAfter narrows the grid to times strictly later than start.
func EndTimeOptionsAfter(start ClockTime) []string {
	var out []string
	for m := gridStartHour * 60; m <= gridEndHour*60; m += gridStepMin {
		candidate := ClockTime{Hour: m / 60, Minute: m % 60}
		if start.Before(candidate) {
			out = append(out, candidate.Display())
		}
	}
	return out
}
