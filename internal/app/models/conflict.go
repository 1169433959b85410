package models

// ConflictType identifies which constraint domain flagged a conflict. The
// declaration order is the resolution priority: when several checks fail in
// the same round, only the lowest-valued type's message is surfaced. A
// program/cohort clash is the most fundamental impossibility and must never
// be masked by a room clash; transport failures rank last.
type ConflictType int

const (
	ConflictTypeProgram ConflictType = iota
	ConflictTypeFaculty
	ConflictTypeRoom
	ConflictTypeTransport
)

func (t ConflictType) String() string {
	switch t {
	case ConflictTypeProgram:
		return "program"
	case ConflictTypeFaculty:
		return "faculty"
	case ConflictTypeRoom:
		return "room"
	case ConflictTypeTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// ConflictResult is one validator's verdict for one validation round. Results
// are ephemeral: the next round replaces them wholesale.
type ConflictResult struct {
	Type    ConflictType `json:"type"`
	IsValid bool         `json:"is_valid"`
	Message string       `json:"message"`
}

// DraftState is the dialog state machine's position.
type DraftState string

const (
	DraftStateEmpty        DraftState = "empty"
	DraftStateEditing      DraftState = "editing"
	DraftStateChecking     DraftState = "checking"
	DraftStateValid        DraftState = "valid"
	DraftStateConflict     DraftState = "conflict"
	DraftStateCommitting   DraftState = "committing"
	DraftStateCommitted    DraftState = "committed"
	DraftStateCommitFailed DraftState = "commit_failed"
)
