package scheduling

import (
	"sync"
	"time"

	"facultyload-service/internal/app/models"
)

// dialogSession is one administrator's open scheduling dialog. The session
// owns its draft exclusively; all access goes through mu.
type dialogSession struct {
	mu sync.Mutex

	id             string
	draft          models.ScheduleDraft
	state          models.DraftState
	conflict       *models.ConflictResult
	endTimeOptions []string

	// revision bumps on every draft mutation. A validation round records the
	// revision it was started for and is discarded if the draft moved on
	// while the round was in flight, so the slower, older round can never
	// overwrite a newer result (latest-wins).
	revision     uint64
	validatedRev uint64

	// lastValidated dedupes consecutive identical snapshots: re-picking the
	// same value must not trigger a new network round.
	lastValidated *draftSnapshot

	debounce *time.Timer
}

// draftSnapshot is a comparable projection of the validation-relevant draft
// fields.
type draftSnapshot struct {
	day       string
	start     string
	end       string
	facultyID int64
	roomID    int64
}

func snapshotOf(draft models.ScheduleDraft) draftSnapshot {
	snap := draftSnapshot{facultyID: -1, roomID: -1}
	if draft.Day != nil {
		snap.day = string(*draft.Day)
	}
	if draft.StartTime != nil {
		snap.start = draft.StartTime.Backend()
	}
	if draft.EndTime != nil {
		snap.end = draft.EndTime.Backend()
	}
	if draft.FacultyID != nil {
		snap.facultyID = *draft.FacultyID
	}
	if draft.RoomID != nil {
		snap.roomID = *draft.RoomID
	}
	return snap
}

// persistedSession is the redis representation of a dialog session, so an
// open dialog survives a worker restart or a load-balanced hop. Debounce
// timers are per-process and are simply re-armed on the next edit.
type persistedSession struct {
	ID             string                 `json:"id"`
	Draft          models.ScheduleDraft   `json:"draft"`
	State          models.DraftState      `json:"state"`
	Conflict       *models.ConflictResult `json:"conflict,omitempty"`
	EndTimeOptions []string               `json:"end_time_options"`
	Revision       uint64                 `json:"revision"`
}

func (s *dialogSession) toPersisted() persistedSession {
	return persistedSession{
		ID:             s.id,
		Draft:          s.draft,
		State:          s.state,
		Conflict:       s.conflict,
		EndTimeOptions: s.endTimeOptions,
		Revision:       s.revision,
	}
}

func fromPersisted(p persistedSession) *dialogSession {
	return &dialogSession{
		id:             p.ID,
		draft:          p.Draft,
		state:          p.State,
		conflict:       p.Conflict,
		endTimeOptions: p.EndTimeOptions,
		revision:       p.Revision,
		validatedRev:   p.Revision,
	}
}
