package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"facultyload-service/internal/app/config"
	"facultyload-service/internal/app/contracts"
	"facultyload-service/internal/app/models"
	"facultyload-service/internal/pkg/constvars"
	"facultyload-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func strPtr(v string) *string {
	return &v
}

func defaultReferenceData() *fakeReferenceData {
	return &fakeReferenceData{
		faculty: []models.Faculty{
			{ID: 21, Name: "Alice Reyes", Type: "full_time"},
			{ID: 22, Name: "Ben Cruz", Type: "part_time"},
		},
		rooms: []models.Room{
			{ID: 5, Code: "RM-301"},
			{ID: 6, Code: "RM-302"},
		},
		suggestions: []models.SuggestedFaculty{
			{
				ID:   22,
				Name: "Ben Cruz",
				Type: "part_time",
				Preferences: []models.FacultyPreference{
					{Day: "Monday", Time: "10:00 AM - 11:00 AM"},
					{Day: "Wednesday", Time: "01:00 PM - 02:30 PM"},
				},
			},
		},
	}
}

func newTestUsecase(registry *fakeRegistry, options *fakeReferenceData, debounce time.Duration) (*SchedulingUsecase, *fakeRedis) {
	cache := newFakeRedis()
	internalConfig := &config.InternalConfig{
		Registry: config.Registry{BaseUrl: "http://registry.test", Timeout: 2 * time.Second},
		Scheduling: config.Scheduling{
			DebounceWindow: debounce,
			SessionTTL:     time.Minute,
			OptionCacheTTL: time.Minute,
		},
	}
	return NewSchedulingUsecase(registry, options, cache, internalConfig, zap.NewNop()), cache
}

func openFullSlotDialog(t *testing.T, usecase *SchedulingUsecase) string {
	t.Helper()
	snapshot, err := usecase.OpenDialog(context.Background(), contracts.OpenDialogInput{
		ScheduleID: 11,
		ProgramID:  3,
		YearLevel:  2,
		SectionID:  7,
		Day:        "Monday",
		StartTime:  "09:00 AM",
		EndTime:    "10:30 AM",
	})
	assert.NoError(t, err)
	return snapshot.SessionID
}

func TestOpenDialogSeedsDraft(t *testing.T) {
	usecase, _ := newTestUsecase(newFakeRegistry(), defaultReferenceData(), 50*time.Millisecond)

	snapshot, err := usecase.OpenDialog(context.Background(), contracts.OpenDialogInput{
		ScheduleID: 11,
		ProgramID:  3,
		YearLevel:  2,
		SectionID:  7,
		Day:        "Monday",
		StartTime:  "09:00 AM",
		EndTime:    "10:30 AM",
		FacultyID:  int64Ptr(21),
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, snapshot.SessionID)
	assert.Equal(t, models.DraftStateEditing, snapshot.State)
	assert.Equal(t, "Alice Reyes", snapshot.Draft.ProfessorName, "seeded faculty id resolves to its display name")
	assert.Equal(t, "09:30 AM", snapshot.EndTimeOptions[0], "end options narrow to slots after the seeded start")
}

func TestOpenDialogRejectsInvertedRange(t *testing.T) {
	registry := newFakeRegistry()
	usecase, _ := newTestUsecase(registry, defaultReferenceData(), 40*time.Millisecond)

	tests := []struct {
		name      string
		startTime string
		endTime   string
	}{
		{name: "end before start", startTime: "10:00 AM", endTime: "09:00 AM"},
		{name: "end equals start", startTime: "10:00 AM", endTime: "10:00 AM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := usecase.OpenDialog(context.Background(), contracts.OpenDialogInput{
				ScheduleID: 11,
				ProgramID:  3,
				YearLevel:  2,
				SectionID:  7,
				Day:        "Monday",
				StartTime:  tt.startTime,
				EndTime:    tt.endTime,
			})
			assert.Error(t, err)

			var customErr *exceptions.CustomError
			assert.True(t, errors.As(err, &customErr))
			assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
			assert.Equal(t, constvars.ErrClientEndBeforeStart, customErr.ClientMessage)
		})
	}

	program, _, _, _ := registry.counts()
	assert.Zero(t, program, "an inverted range never reaches the registry")
}

func TestOpenDialogEmptyStartsEmpty(t *testing.T) {
	usecase, _ := newTestUsecase(newFakeRegistry(), defaultReferenceData(), 50*time.Millisecond)

	snapshot, err := usecase.OpenDialog(context.Background(), contracts.OpenDialogInput{
		ScheduleID: 11,
		ProgramID:  3,
		YearLevel:  2,
		SectionID:  7,
	})

	assert.NoError(t, err)
	assert.Equal(t, models.DraftStateEmpty, snapshot.State)
	assert.Len(t, snapshot.EndTimeOptions, len(models.TimeOptions()))
}

func TestUpdateDraftDebouncesEditBurst(t *testing.T) {
	registry := newFakeRegistry()
	usecase, _ := newTestUsecase(registry, defaultReferenceData(), 60*time.Millisecond)

	snapshot, err := usecase.OpenDialog(context.Background(), contracts.OpenDialogInput{
		ScheduleID: 11, ProgramID: 3, YearLevel: 2, SectionID: 7,
	})
	assert.NoError(t, err)
	sessionID := snapshot.SessionID

	_, err = usecase.UpdateDraft(context.Background(), sessionID, contracts.UpdateDraftInput{Day: strPtr("Monday")})
	assert.NoError(t, err)
	_, err = usecase.UpdateDraft(context.Background(), sessionID, contracts.UpdateDraftInput{StartTime: strPtr("09:00 AM")})
	assert.NoError(t, err)
	_, err = usecase.UpdateDraft(context.Background(), sessionID, contracts.UpdateDraftInput{EndTime: strPtr("10:30 AM")})
	assert.NoError(t, err)

	time.Sleep(400 * time.Millisecond)

	program, _, _, _ := registry.counts()
	assert.Equal(t, 1, program, "a burst of edits collapses into one validation round")
	assert.Equal(t, "Monday", registry.lastProgram().Day)
	assert.Equal(t, "09:00:00", registry.lastProgram().StartTime)
	assert.Equal(t, "10:30:00", registry.lastProgram().EndTime)

	snapshot, err = usecase.Snapshot(context.Background(), sessionID)
	assert.NoError(t, err)
	assert.Equal(t, models.DraftStateValid, snapshot.State)
	assert.Nil(t, snapshot.Conflict)
}

func TestUpdateDraftRepickingSameValueSkipsRound(t *testing.T) {
	registry := newFakeRegistry()
	usecase, _ := newTestUsecase(registry, defaultReferenceData(), 40*time.Millisecond)
	sessionID := openFullSlotDialog(t, usecase)

	_, err := usecase.Validate(context.Background(), sessionID)
	assert.NoError(t, err)
	program, _, _, _ := registry.counts()
	assert.Equal(t, 1, program)

	_, err = usecase.UpdateDraft(context.Background(), sessionID, contracts.UpdateDraftInput{Day: strPtr("Monday")})
	assert.NoError(t, err)
	time.Sleep(300 * time.Millisecond)

	program, _, _, _ = registry.counts()
	assert.Equal(t, 1, program, "re-picking the identical value must not hit the registry again")
}

func TestUpdateDraftStartChangeClearsOutOfRangeEnd(t *testing.T) {
	usecase, _ := newTestUsecase(newFakeRegistry(), defaultReferenceData(), 40*time.Millisecond)
	sessionID := openFullSlotDialog(t, usecase)

	snapshot, err := usecase.UpdateDraft(context.Background(), sessionID, contracts.UpdateDraftInput{StartTime: strPtr("10:30 AM")})
	assert.NoError(t, err)
	assert.Nil(t, snapshot.Draft.EndTime, "the 10:30 end is no longer after the new start")
	assert.Equal(t, "11:00 AM", snapshot.EndTimeOptions[0])
}

func TestUpdateDraftRejectsEndBeforeStart(t *testing.T) {
	usecase, _ := newTestUsecase(newFakeRegistry(), defaultReferenceData(), 40*time.Millisecond)
	sessionID := openFullSlotDialog(t, usecase)

	_, err := usecase.UpdateDraft(context.Background(), sessionID, contracts.UpdateDraftInput{EndTime: strPtr("08:00 AM")})
	assert.Error(t, err)

	var customErr *exceptions.CustomError
	assert.True(t, errors.As(err, &customErr))
	assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
	assert.Equal(t, constvars.ErrClientEndBeforeStart, customErr.ClientMessage)

	snapshot, err := usecase.Snapshot(context.Background(), sessionID)
	assert.NoError(t, err)
	if assert.NotNil(t, snapshot.Draft.EndTime) {
		assert.Equal(t, "10:30 AM", snapshot.Draft.EndTime.Display(), "the rejected edit leaves the draft untouched")
	}
}

func TestUpdateDraftResolvesProfessorAndRoom(t *testing.T) {
	usecase, _ := newTestUsecase(newFakeRegistry(), defaultReferenceData(), 40*time.Millisecond)
	sessionID := openFullSlotDialog(t, usecase)

	snapshot, err := usecase.UpdateDraft(context.Background(), sessionID, contracts.UpdateDraftInput{
		Professor: strPtr("alice reyes"),
		Room:      strPtr("rm-301"),
	})
	assert.NoError(t, err)
	if assert.NotNil(t, snapshot.Draft.FacultyID) {
		assert.Equal(t, int64(21), *snapshot.Draft.FacultyID, "name matching ignores case")
	}
	if assert.NotNil(t, snapshot.Draft.RoomID) {
		assert.Equal(t, int64(5), *snapshot.Draft.RoomID)
	}

	snapshot, err = usecase.UpdateDraft(context.Background(), sessionID, contracts.UpdateDraftInput{
		Professor: strPtr("Dr. Nobody"),
	})
	assert.NoError(t, err)
	assert.Nil(t, snapshot.Draft.FacultyID, "a free-typed unknown professor stays unresolved")
	assert.Equal(t, "Dr. Nobody", snapshot.Draft.ProfessorName)
}

func TestValidateSurfacesConflictImmediately(t *testing.T) {
	registry := newFakeRegistry()
	registry.programOutcome = contracts.ValidationOutcome{IsValid: false, Message: "Year level already has a class in this slot"}
	usecase, _ := newTestUsecase(registry, defaultReferenceData(), time.Hour)
	sessionID := openFullSlotDialog(t, usecase)

	snapshot, err := usecase.Validate(context.Background(), sessionID)
	assert.NoError(t, err)

	program, _, _, _ := registry.counts()
	assert.Equal(t, 1, program, "an explicit validate skips the debounce window")
	assert.Equal(t, models.DraftStateConflict, snapshot.State)
	if assert.NotNil(t, snapshot.Conflict) {
		assert.Equal(t, models.ConflictTypeProgram, snapshot.Conflict.Type)
		assert.Equal(t, "Year level already has a class in this slot", snapshot.Conflict.Message)
	}
}

func TestApplyPreferenceSeedsDraftAtomically(t *testing.T) {
	registry := newFakeRegistry()
	usecase, _ := newTestUsecase(registry, defaultReferenceData(), time.Hour)
	sessionID := openFullSlotDialog(t, usecase)

	snapshot, err := usecase.ApplyPreference(context.Background(), sessionID, 0, 1)
	assert.NoError(t, err)

	if assert.NotNil(t, snapshot.Draft.Day) {
		assert.Equal(t, models.Wednesday, *snapshot.Draft.Day)
	}
	if assert.NotNil(t, snapshot.Draft.StartTime) {
		assert.Equal(t, "01:00 PM", snapshot.Draft.StartTime.Display())
	}
	if assert.NotNil(t, snapshot.Draft.EndTime) {
		assert.Equal(t, "02:30 PM", snapshot.Draft.EndTime.Display())
	}
	if assert.NotNil(t, snapshot.Draft.FacultyID) {
		assert.Equal(t, int64(22), *snapshot.Draft.FacultyID)
	}
	assert.Equal(t, "Ben Cruz", snapshot.Draft.ProfessorName)

	program, faculty, _, _ := registry.counts()
	assert.Equal(t, 1, program, "applying a preference validates right away")
	assert.Equal(t, 1, faculty)
	assert.Equal(t, models.DraftStateValid, snapshot.State)
}

func TestApplyPreferenceOutOfRange(t *testing.T) {
	usecase, _ := newTestUsecase(newFakeRegistry(), defaultReferenceData(), time.Hour)
	sessionID := openFullSlotDialog(t, usecase)

	_, err := usecase.ApplyPreference(context.Background(), sessionID, 3, 0)
	assert.Error(t, err)

	_, err = usecase.ApplyPreference(context.Background(), sessionID, 0, 9)
	assert.Error(t, err)

	snapshot, err := usecase.Snapshot(context.Background(), sessionID)
	assert.NoError(t, err)
	assert.Nil(t, snapshot.Draft.FacultyID, "a rejected preference never touches the draft")
}

func TestAssignBlockedByConflictStaysLocal(t *testing.T) {
	registry := newFakeRegistry()
	registry.programOutcome = contracts.ValidationOutcome{IsValid: false, Message: "Year level already has a class in this slot"}
	usecase, _ := newTestUsecase(registry, defaultReferenceData(), time.Hour)
	sessionID := openFullSlotDialog(t, usecase)

	_, err := usecase.Validate(context.Background(), sessionID)
	assert.NoError(t, err)

	_, _, err = usecase.Assign(context.Background(), sessionID)
	assert.Error(t, err)

	var customErr *exceptions.CustomError
	assert.True(t, errors.As(err, &customErr))
	assert.Equal(t, constvars.ErrClientAssignBlockedByConflict, customErr.ClientMessage)

	_, _, _, assign := registry.counts()
	assert.Zero(t, assign, "a flagged conflict blocks the commit before any network call")
}

func TestAssignRequiresStartAndEnd(t *testing.T) {
	registry := newFakeRegistry()
	usecase, _ := newTestUsecase(registry, defaultReferenceData(), time.Hour)

	snapshot, err := usecase.OpenDialog(context.Background(), contracts.OpenDialogInput{
		ScheduleID: 11, ProgramID: 3, YearLevel: 2, SectionID: 7, Day: "Monday",
	})
	assert.NoError(t, err)

	_, _, err = usecase.Assign(context.Background(), snapshot.SessionID)
	assert.Error(t, err)

	_, _, _, assign := registry.counts()
	assert.Zero(t, assign)
}

func TestAssignRejectsUnresolvedProfessor(t *testing.T) {
	registry := newFakeRegistry()
	usecase, _ := newTestUsecase(registry, defaultReferenceData(), time.Hour)
	sessionID := openFullSlotDialog(t, usecase)

	_, err := usecase.UpdateDraft(context.Background(), sessionID, contracts.UpdateDraftInput{Professor: strPtr("Dr. Nobody")})
	assert.NoError(t, err)

	_, _, err = usecase.Assign(context.Background(), sessionID)
	assert.Error(t, err)

	var customErr *exceptions.CustomError
	assert.True(t, errors.As(err, &customErr))
	assert.Equal(t, constvars.ErrClientUnknownFaculty, customErr.ClientMessage)

	_, _, _, assign := registry.counts()
	assert.Zero(t, assign)
}

func TestAssignCommitsAndClosesSession(t *testing.T) {
	registry := newFakeRegistry()
	usecase, _ := newTestUsecase(registry, defaultReferenceData(), time.Hour)
	sessionID := openFullSlotDialog(t, usecase)

	_, err := usecase.UpdateDraft(context.Background(), sessionID, contracts.UpdateDraftInput{
		Professor: strPtr("Alice Reyes"),
		Room:      strPtr("RM-301"),
	})
	assert.NoError(t, err)
	_, err = usecase.Validate(context.Background(), sessionID)
	assert.NoError(t, err)

	schedule, snapshot, err := usecase.Assign(context.Background(), sessionID)
	assert.NoError(t, err)
	assert.NotNil(t, schedule)
	assert.Equal(t, models.DraftStateCommitted, snapshot.State)

	_, _, _, assign := registry.counts()
	assert.Equal(t, 1, assign)
	input := registry.lastAssign()
	if assert.NotNil(t, input.Day) {
		assert.Equal(t, "Monday", *input.Day)
	}
	if assert.NotNil(t, input.StartTime) {
		assert.Equal(t, "09:00:00", *input.StartTime, "the registry receives backend-formatted times")
	}
	if assert.NotNil(t, input.EndTime) {
		assert.Equal(t, "10:30:00", *input.EndTime)
	}
	if assert.NotNil(t, input.FacultyID) {
		assert.Equal(t, int64(21), *input.FacultyID)
	}
	if assert.NotNil(t, input.RoomID) {
		assert.Equal(t, int64(5), *input.RoomID)
	}

	_, err = usecase.Snapshot(context.Background(), sessionID)
	assert.Error(t, err, "a committed session is gone")
}

func TestAssignDiscardsInFlightValidationRound(t *testing.T) {
	registry := newFakeRegistry()
	registry.programDelay = 300 * time.Millisecond
	usecase, _ := newTestUsecase(registry, defaultReferenceData(), 50*time.Millisecond)

	snapshot, err := usecase.OpenDialog(context.Background(), contracts.OpenDialogInput{
		ScheduleID: 11, ProgramID: 3, YearLevel: 2, SectionID: 7,
	})
	assert.NoError(t, err)
	sessionID := snapshot.SessionID

	_, err = usecase.UpdateDraft(context.Background(), sessionID, contracts.UpdateDraftInput{
		Day:       strPtr("Monday"),
		StartTime: strPtr("09:00 AM"),
		EndTime:   strPtr("10:30 AM"),
	})
	assert.NoError(t, err)

	// The debounced round is now inside the slow program check; commit while
	// it is in flight.
	time.Sleep(120 * time.Millisecond)
	schedule, _, err := usecase.Assign(context.Background(), sessionID)
	assert.NoError(t, err)
	assert.NotNil(t, schedule)

	// When the slow round finally completes it must not write the closed
	// session back into the store.
	time.Sleep(500 * time.Millisecond)
	_, err = usecase.Snapshot(context.Background(), sessionID)
	assert.Error(t, err, "a committed session must stay gone")
}

func TestAssignFailureKeepsSessionAndSurfacesMessage(t *testing.T) {
	registry := newFakeRegistry()
	registry.assignErr = exceptions.BuildNewCustomError(
		errors.New("conflict"),
		constvars.StatusConflict,
		"Slot was taken by another administrator",
		"registry rejected assignment",
	)
	usecase, _ := newTestUsecase(registry, defaultReferenceData(), time.Hour)
	sessionID := openFullSlotDialog(t, usecase)

	_, err := usecase.Validate(context.Background(), sessionID)
	assert.NoError(t, err)

	_, snapshot, err := usecase.Assign(context.Background(), sessionID)
	assert.Error(t, err)
	assert.Equal(t, models.DraftStateCommitFailed, snapshot.State)
	if assert.NotNil(t, snapshot.Conflict) {
		assert.Equal(t, "Slot was taken by another administrator", snapshot.Conflict.Message)
	}

	snapshot, err = usecase.Snapshot(context.Background(), sessionID)
	assert.NoError(t, err, "a failed commit keeps the dialog open for another attempt")
	assert.Equal(t, models.DraftStateCommitFailed, snapshot.State)
}

func TestStaleValidationRoundIsDiscarded(t *testing.T) {
	registry := newFakeRegistry()
	registry.programOutcome = contracts.ValidationOutcome{IsValid: false, Message: "stale conflict"}
	registry.programDelay = 200 * time.Millisecond
	usecase, _ := newTestUsecase(registry, defaultReferenceData(), 50*time.Millisecond)

	snapshot, err := usecase.OpenDialog(context.Background(), contracts.OpenDialogInput{
		ScheduleID: 11, ProgramID: 3, YearLevel: 2, SectionID: 7,
	})
	assert.NoError(t, err)
	sessionID := snapshot.SessionID

	// First edit triggers the slow round that will come back with a conflict.
	_, err = usecase.UpdateDraft(context.Background(), sessionID, contracts.UpdateDraftInput{
		Day:       strPtr("Monday"),
		StartTime: strPtr("09:00 AM"),
		EndTime:   strPtr("10:30 AM"),
	})
	assert.NoError(t, err)
	time.Sleep(80 * time.Millisecond)

	// The draft moves on while the slow round is in flight; the fast second
	// round comes back clean first.
	registry.setProgramOutcome(contracts.ValidationOutcome{IsValid: true})
	_, err = usecase.UpdateDraft(context.Background(), sessionID, contracts.UpdateDraftInput{Day: strPtr("Tuesday")})
	assert.NoError(t, err)

	time.Sleep(500 * time.Millisecond)

	snapshot, err = usecase.Snapshot(context.Background(), sessionID)
	assert.NoError(t, err)
	assert.Equal(t, models.DraftStateValid, snapshot.State, "the slow stale round must not overwrite the newer result")
	assert.Nil(t, snapshot.Conflict)
	assert.Equal(t, "Tuesday", registry.lastProgram().Day)
}

func TestClearAllResetsDialog(t *testing.T) {
	usecase, _ := newTestUsecase(newFakeRegistry(), defaultReferenceData(), time.Hour)
	sessionID := openFullSlotDialog(t, usecase)

	snapshot, err := usecase.ClearAll(context.Background(), sessionID)
	assert.NoError(t, err)
	assert.Equal(t, models.DraftStateEmpty, snapshot.State)
	assert.Nil(t, snapshot.Draft.Day)
	assert.Nil(t, snapshot.Draft.StartTime)
	assert.Nil(t, snapshot.Draft.EndTime)
	assert.Empty(t, snapshot.Draft.ProfessorName)
	assert.Len(t, snapshot.EndTimeOptions, len(models.TimeOptions()))
	assert.Equal(t, int64(11), snapshot.Draft.ScheduleID, "clearing keeps the dialog bound to its timetable cell")
}

func TestCancelDiscardsSession(t *testing.T) {
	usecase, _ := newTestUsecase(newFakeRegistry(), defaultReferenceData(), time.Hour)
	sessionID := openFullSlotDialog(t, usecase)

	err := usecase.Cancel(context.Background(), sessionID)
	assert.NoError(t, err)

	_, err = usecase.Snapshot(context.Background(), sessionID)
	assert.Error(t, err)

	var customErr *exceptions.CustomError
	assert.True(t, errors.As(err, &customErr))
	assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
}

func TestSessionRehydratesFromCache(t *testing.T) {
	registry := newFakeRegistry()
	options := defaultReferenceData()
	usecase, cache := newTestUsecase(registry, options, time.Hour)
	sessionID := openFullSlotDialog(t, usecase)

	// A second worker sharing the same redis picks the session up cold.
	internalConfig := &config.InternalConfig{
		Registry: config.Registry{BaseUrl: "http://registry.test", Timeout: 2 * time.Second},
		Scheduling: config.Scheduling{
			DebounceWindow: time.Hour,
			SessionTTL:     time.Minute,
			OptionCacheTTL: time.Minute,
		},
	}
	other := NewSchedulingUsecase(registry, options, cache, internalConfig, zap.NewNop())

	snapshot, err := other.Snapshot(context.Background(), sessionID)
	assert.NoError(t, err)
	assert.Equal(t, sessionID, snapshot.SessionID)
	if assert.NotNil(t, snapshot.Draft.StartTime) {
		assert.Equal(t, "09:00 AM", snapshot.Draft.StartTime.Display())
	}
}
