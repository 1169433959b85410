package scheduling

import (
	"context"
	"errors"
	"sync"
	"time"

	"facultyload-service/internal/app/config"
	"facultyload-service/internal/app/contracts"
	"facultyload-service/internal/app/models"
	"facultyload-service/internal/pkg/constvars"
	"facultyload-service/internal/pkg/exceptions"
	"facultyload-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// SchedulingUsecase drives the assignment dialog: it owns the drafts, runs
// debounced conflict validation against the registry and performs the final
// commit. One instance serves all sessions; each session serializes its own
// mutations.
type SchedulingUsecase struct {
	aggregator *ConflictAggregator
	registry   contracts.ScheduleRegistryClient
	options    contracts.ReferenceDataClient
	store      *sessionStore
	config     *config.InternalConfig
	logger     *zap.Logger

	mu       sync.Mutex
	sessions map[string]*dialogSession
}

func NewSchedulingUsecase(
	registry contracts.ScheduleRegistryClient,
	options contracts.ReferenceDataClient,
	cache contracts.RedisRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) *SchedulingUsecase {
	return &SchedulingUsecase{
		aggregator: NewConflictAggregator(registry, logger),
		registry:   registry,
		options:    options,
		store:      newSessionStore(cache, internalConfig.Scheduling.SessionTTL),
		config:     internalConfig,
		logger:     logger,
		sessions:   make(map[string]*dialogSession),
	}
}

var _ contracts.SchedulingUsecase = (*SchedulingUsecase)(nil)

func (u *SchedulingUsecase) OpenDialog(ctx context.Context, input contracts.OpenDialogInput) (*contracts.DialogSnapshot, error) {
	draft := models.ScheduleDraft{
		ScheduleID: input.ScheduleID,
		ProgramID:  input.ProgramID,
		YearLevel:  input.YearLevel,
		SectionID:  input.SectionID,
		FacultyID:  input.FacultyID,
		RoomID:     input.RoomID,
	}

	if input.Day != "" {
		day, err := models.ParseWeekday(input.Day)
		if err != nil {
			return nil, exceptions.BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientInvalidDay, constvars.ErrDevCannotParseTime)
		}
		draft.Day = &day
	}
	if input.StartTime != "" {
		start, err := models.ParseDisplayTime(input.StartTime)
		if err != nil {
			return nil, exceptions.ErrCannotParseTime(err)
		}
		draft.StartTime = &start
	}
	if input.EndTime != "" {
		end, err := models.ParseDisplayTime(input.EndTime)
		if err != nil {
			return nil, exceptions.ErrCannotParseTime(err)
		}
		draft.EndTime = &end
	}
	if draft.StartTime != nil && draft.EndTime != nil && !draft.StartTime.Before(*draft.EndTime) {
		return nil, exceptions.BuildNewCustomError(nil, constvars.StatusBadRequest, constvars.ErrClientEndBeforeStart, constvars.ErrDevCannotParseTime)
	}

	u.fillDisplayNames(ctx, &draft)

	session := &dialogSession{
		id:             utils.GenerateSessionID(),
		draft:          draft,
		state:          models.DraftStateEmpty,
		endTimeOptions: models.TimeOptions(),
	}
	if draft.StartTime != nil {
		session.endTimeOptions = models.EndTimeOptionsAfter(*draft.StartTime)
	}
	if !draftIsEmpty(draft) {
		session.state = models.DraftStateEditing
	}

	u.mu.Lock()
	u.sessions[session.id] = session
	u.mu.Unlock()
	u.persist(ctx, session)

	u.logger.Info("scheduling dialog opened",
		zap.String(constvars.LoggingSessionIDKey, session.id),
		zap.Int64(constvars.LoggingScheduleIDKey, draft.ScheduleID),
	)
	return u.snapshot(session), nil
}

func (u *SchedulingUsecase) Snapshot(ctx context.Context, sessionID string) (*contracts.DialogSnapshot, error) {
	session, err := u.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return u.snapshot(session), nil
}

func (u *SchedulingUsecase) UpdateDraft(ctx context.Context, sessionID string, input contracts.UpdateDraftInput) (*contracts.DialogSnapshot, error) {
	session, err := u.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	if err := u.applyFieldUpdates(ctx, session, input); err != nil {
		session.mu.Unlock()
		return nil, err
	}

	session.revision++
	if draftIsEmpty(session.draft) {
		session.state = models.DraftStateEmpty
		session.conflict = nil
	} else {
		session.state = models.DraftStateEditing
	}
	generation := session.revision
	u.armDebounce(session, generation)
	session.mu.Unlock()

	u.persist(ctx, session)
	return u.snapshot(session), nil
}

// Validate forces an immediate round, bypassing the debounce window and the
// identical-snapshot dedup.
func (u *SchedulingUsecase) Validate(ctx context.Context, sessionID string) (*contracts.DialogSnapshot, error) {
	session, err := u.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	session.stopDebounce()
	session.lastValidated = nil
	generation := session.revision
	session.mu.Unlock()

	u.runValidationRound(ctx, session, generation)
	return u.snapshot(session), nil
}

// ApplyPreference seeds day, start, end and professor from one entry of the
// suggested-faculty list in a single atomic update, then validates
// immediately so the conflict banner reflects the suggestion right away.
func (u *SchedulingUsecase) ApplyPreference(ctx context.Context, sessionID string, suggestionIndex, prefIndex int) (*contracts.DialogSnapshot, error) {
	session, err := u.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	programID := session.draft.ProgramID
	yearLevel := session.draft.YearLevel
	sectionID := session.draft.SectionID
	session.mu.Unlock()

	suggestions, err := u.options.ListSuggestedFaculty(ctx, programID, yearLevel, sectionID)
	if err != nil {
		return nil, err
	}
	if suggestionIndex < 0 || suggestionIndex >= len(suggestions) {
		return nil, exceptions.ErrPreferenceOutOfRange(suggestionIndex, len(suggestions))
	}
	suggested := suggestions[suggestionIndex]
	if prefIndex < 0 || prefIndex >= len(suggested.Preferences) {
		return nil, exceptions.ErrPreferenceOutOfRange(prefIndex, len(suggested.Preferences))
	}
	preference := suggested.Preferences[prefIndex]

	day, err := models.ParseWeekday(preference.Day)
	if err != nil {
		return nil, exceptions.BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientInvalidDay, constvars.ErrDevCannotParseTime)
	}
	start, end, err := parsePreferenceRange(preference.Time)
	if err != nil {
		return nil, exceptions.ErrCannotParseTime(err)
	}

	session.mu.Lock()
	facultyID := suggested.ID
	session.draft.Day = &day
	session.draft.StartTime = &start
	session.draft.EndTime = &end
	session.draft.FacultyID = &facultyID
	session.draft.ProfessorName = suggested.Name
	session.endTimeOptions = models.EndTimeOptionsAfter(start)
	session.revision++
	session.state = models.DraftStateEditing
	session.stopDebounce()
	session.lastValidated = nil
	generation := session.revision
	session.mu.Unlock()

	u.runValidationRound(ctx, session, generation)
	return u.snapshot(session), nil
}

// Assign performs the final commit. It refuses locally, without touching the
// network, when required fields are missing, when a typed professor/room did
// not resolve against the option lists, or when a conflict is still flagged.
func (u *SchedulingUsecase) Assign(ctx context.Context, sessionID string) (*models.Schedule, *contracts.DialogSnapshot, error) {
	session, err := u.getSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	session.mu.Lock()
	draft := session.draft
	if draft.StartTime == nil || draft.EndTime == nil {
		session.mu.Unlock()
		return nil, u.snapshot(session), exceptions.ErrAssignMissingFields(constvars.ErrClientStartEndRequired)
	}
	if draft.ProfessorName != "" && draft.FacultyID == nil {
		session.mu.Unlock()
		return nil, u.snapshot(session), exceptions.ErrAssignMissingFields(constvars.ErrClientUnknownFaculty)
	}
	if draft.RoomCode != "" && draft.RoomID == nil {
		session.mu.Unlock()
		return nil, u.snapshot(session), exceptions.ErrAssignMissingFields(constvars.ErrClientUnknownRoom)
	}
	if session.conflict != nil {
		session.mu.Unlock()
		return nil, u.snapshot(session), exceptions.ErrAssignBlockedByConflict()
	}
	session.stopDebounce()
	session.state = models.DraftStateCommitting
	input := assignInputOf(draft)
	session.mu.Unlock()

	schedule, err := u.registry.AssignSchedule(ctx, input)
	if err != nil {
		clientMessage := constvars.ErrClientValidationUnavailable
		var customErr *exceptions.CustomError
		if errors.As(err, &customErr) {
			clientMessage = customErr.ClientMessage
		}

		session.mu.Lock()
		session.state = models.DraftStateCommitFailed
		session.conflict = &models.ConflictResult{
			Type:    models.ConflictTypeTransport,
			IsValid: false,
			Message: clientMessage,
		}
		session.mu.Unlock()
		u.persist(ctx, session)

		u.logger.Warn("schedule assignment rejected",
			zap.String(constvars.LoggingSessionIDKey, session.id),
			zap.Int64(constvars.LoggingScheduleIDKey, draft.ScheduleID),
			zap.Error(err),
		)
		return nil, u.snapshot(session), err
	}

	session.mu.Lock()
	session.state = models.DraftStateCommitted
	session.conflict = nil
	session.revision++ // invalidates rounds already in flight
	session.mu.Unlock()
	snapshot := u.snapshot(session)

	u.closeSession(ctx, session.id)
	u.logger.Info("schedule assigned",
		zap.String(constvars.LoggingSessionIDKey, session.id),
		zap.Int64(constvars.LoggingScheduleIDKey, schedule.ScheduleID),
	)
	return schedule, snapshot, nil
}

func (u *SchedulingUsecase) ClearAll(ctx context.Context, sessionID string) (*contracts.DialogSnapshot, error) {
	session, err := u.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	session.stopDebounce()
	session.draft.Day = nil
	session.draft.StartTime = nil
	session.draft.EndTime = nil
	session.draft.FacultyID = nil
	session.draft.RoomID = nil
	session.draft.ProfessorName = ""
	session.draft.RoomCode = ""
	session.endTimeOptions = models.TimeOptions()
	session.conflict = nil
	session.state = models.DraftStateEmpty
	session.revision++
	session.lastValidated = nil
	session.mu.Unlock()

	u.persist(ctx, session)
	return u.snapshot(session), nil
}

// Cancel discards the draft and stops any in-flight work for the session.
func (u *SchedulingUsecase) Cancel(ctx context.Context, sessionID string) error {
	session, err := u.getSession(ctx, sessionID)
	if err != nil {
		return err
	}

	session.mu.Lock()
	session.stopDebounce()
	session.revision++ // invalidates rounds already in flight
	session.mu.Unlock()

	u.closeSession(ctx, sessionID)
	u.logger.Info("scheduling dialog canceled", zap.String(constvars.LoggingSessionIDKey, sessionID))
	return nil
}

func (u *SchedulingUsecase) applyFieldUpdates(ctx context.Context, session *dialogSession, input contracts.UpdateDraftInput) error {
	draft := &session.draft

	if input.Day != nil {
		if *input.Day == "" {
			draft.Day = nil
		} else {
			day, err := models.ParseWeekday(*input.Day)
			if err != nil {
				return exceptions.BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientInvalidDay, constvars.ErrDevCannotParseTime)
			}
			draft.Day = &day
		}
	}

	if input.StartTime != nil {
		if *input.StartTime == "" {
			draft.StartTime = nil
			session.endTimeOptions = models.TimeOptions()
		} else {
			start, err := models.ParseDisplayTime(*input.StartTime)
			if err != nil {
				return exceptions.ErrCannotParseTime(err)
			}
			draft.StartTime = &start
			session.endTimeOptions = models.EndTimeOptionsAfter(start)
			// A previously chosen end that fell out of range is cleared,
			// not silently kept.
			if draft.EndTime != nil && !start.Before(*draft.EndTime) {
				draft.EndTime = nil
			}
		}
	}

	if input.EndTime != nil {
		if *input.EndTime == "" {
			draft.EndTime = nil
		} else {
			end, err := models.ParseDisplayTime(*input.EndTime)
			if err != nil {
				return exceptions.ErrCannotParseTime(err)
			}
			if draft.StartTime != nil && !draft.StartTime.Before(end) {
				return exceptions.BuildNewCustomError(nil, constvars.StatusBadRequest, constvars.ErrClientEndBeforeStart, constvars.ErrDevCannotParseTime)
			}
			draft.EndTime = &end
		}
	}

	if input.Professor != nil {
		draft.ProfessorName = *input.Professor
		draft.FacultyID = nil
		if *input.Professor != "" {
			faculty, err := u.options.ListFaculty(ctx)
			if err != nil {
				u.logger.Warn("faculty lookup failed, professor left unresolved", zap.Error(err))
			} else {
				draft.FacultyID = findFacultyByName(faculty, *input.Professor)
			}
		}
	}

	if input.Room != nil {
		draft.RoomCode = *input.Room
		draft.RoomID = nil
		if *input.Room != "" {
			rooms, err := u.options.ListRooms(ctx)
			if err != nil {
				u.logger.Warn("room lookup failed, room left unresolved", zap.Error(err))
			} else {
				draft.RoomID = findRoomByCode(rooms, *input.Room)
			}
		}
	}

	return nil
}

// armDebounce (re)schedules the validation round for the given generation.
// Each edit pushes the round back; only the generation current when the
// window elapses actually runs.
func (u *SchedulingUsecase) armDebounce(session *dialogSession, generation uint64) {
	session.stopDebounce()
	session.debounce = time.AfterFunc(u.config.Scheduling.DebounceWindow, func() {
		ctx, cancel := context.WithTimeout(context.Background(), u.config.Registry.Timeout)
		defer cancel()
		u.runValidationRound(ctx, session, generation)
	})
}

func (s *dialogSession) stopDebounce() {
	if s.debounce != nil {
		s.debounce.Stop()
		s.debounce = nil
	}
}

// runValidationRound executes one aggregation round for the draft as of the
// given generation. Rounds for superseded generations are dropped on both
// entry and completion, so only the latest round can publish its result.
func (u *SchedulingUsecase) runValidationRound(ctx context.Context, session *dialogSession, generation uint64) {
	session.mu.Lock()
	if session.revision != generation {
		session.mu.Unlock()
		return
	}
	snapshot := snapshotOf(session.draft)
	if session.lastValidated != nil && *session.lastValidated == snapshot {
		session.mu.Unlock()
		return
	}
	draft := session.draft

	if _, checkable := draft.Slot(); !checkable {
		// Not enough fields yet: clear any stale conflict, skip the network.
		session.conflict = nil
		if draftIsEmpty(draft) {
			session.state = models.DraftStateEmpty
		} else {
			session.state = models.DraftStateEditing
		}
		session.lastValidated = &snapshot
		session.validatedRev = generation
		session.mu.Unlock()
		u.persist(ctx, session)
		return
	}

	session.state = models.DraftStateChecking
	session.mu.Unlock()

	conflict, _ := u.aggregator.Run(ctx, draft)

	session.mu.Lock()
	if session.revision != generation {
		// The draft changed while this round was in flight; a newer round
		// owns the result now.
		session.mu.Unlock()
		return
	}
	session.conflict = conflict
	if conflict == nil {
		session.state = models.DraftStateValid
	} else {
		session.state = models.DraftStateConflict
	}
	session.lastValidated = &snapshot
	session.validatedRev = generation
	session.mu.Unlock()
	u.persist(ctx, session)
}

func (u *SchedulingUsecase) getSession(ctx context.Context, sessionID string) (*dialogSession, error) {
	u.mu.Lock()
	session, ok := u.sessions[sessionID]
	u.mu.Unlock()
	if ok {
		return session, nil
	}

	// Another worker (or a previous process) may own the session in redis.
	persisted, err := u.store.load(ctx, sessionID)
	if err != nil {
		u.logger.Warn("session rehydration failed", zap.String(constvars.LoggingSessionIDKey, sessionID), zap.Error(err))
	}
	if persisted == nil {
		return nil, exceptions.ErrDialogSessionNotFound(sessionID)
	}

	session = fromPersisted(*persisted)
	u.mu.Lock()
	if existing, ok := u.sessions[sessionID]; ok {
		session = existing
	} else {
		u.sessions[sessionID] = session
	}
	u.mu.Unlock()
	return session, nil
}

func (u *SchedulingUsecase) closeSession(ctx context.Context, sessionID string) {
	u.mu.Lock()
	delete(u.sessions, sessionID)
	u.mu.Unlock()
	if err := u.store.delete(ctx, sessionID); err != nil {
		u.logger.Warn("session cleanup failed", zap.String(constvars.LoggingSessionIDKey, sessionID), zap.Error(err))
	}
}

func (u *SchedulingUsecase) persist(ctx context.Context, session *dialogSession) {
	session.mu.Lock()
	persisted := session.toPersisted()
	session.mu.Unlock()
	if err := u.store.save(ctx, persisted); err != nil {
		u.logger.Warn("session persist failed", zap.String(constvars.LoggingSessionIDKey, persisted.ID), zap.Error(err))
	}
}

func (u *SchedulingUsecase) snapshot(session *dialogSession) *contracts.DialogSnapshot {
	session.mu.Lock()
	defer session.mu.Unlock()

	options := make([]string, len(session.endTimeOptions))
	copy(options, session.endTimeOptions)

	return &contracts.DialogSnapshot{
		SessionID:      session.id,
		State:          session.state,
		Draft:          session.draft,
		Conflict:       session.conflict,
		EndTimeOptions: options,
		Revision:       session.revision,
	}
}

// fillDisplayNames resolves seeded IDs back to their display values so the
// dialog opens with readable professor/room fields. Lookup failures leave
// the names blank; they are cosmetic at this point.
func (u *SchedulingUsecase) fillDisplayNames(ctx context.Context, draft *models.ScheduleDraft) {
	if draft.FacultyID != nil {
		if faculty, err := u.options.ListFaculty(ctx); err == nil {
			for _, f := range faculty {
				if f.ID == *draft.FacultyID {
					draft.ProfessorName = f.Name
					break
				}
			}
		}
	}
	if draft.RoomID != nil {
		if rooms, err := u.options.ListRooms(ctx); err == nil {
			for _, r := range rooms {
				if r.ID == *draft.RoomID {
					draft.RoomCode = r.Code
					break
				}
			}
		}
	}
}

func assignInputOf(draft models.ScheduleDraft) contracts.AssignScheduleInput {
	input := contracts.AssignScheduleInput{
		ScheduleID: draft.ScheduleID,
		ProgramID:  draft.ProgramID,
		YearLevel:  draft.YearLevel,
		SectionID:  draft.SectionID,
		FacultyID:  draft.FacultyID,
		RoomID:     draft.RoomID,
	}
	if draft.Day != nil {
		day := string(*draft.Day)
		input.Day = &day
	}
	if draft.StartTime != nil {
		start := draft.StartTime.Backend()
		input.StartTime = &start
	}
	if draft.EndTime != nil {
		end := draft.EndTime.Backend()
		input.EndTime = &end
	}
	return input
}
