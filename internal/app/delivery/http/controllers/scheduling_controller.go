package controllers

import (
	"net/http"

	"facultyload-service/internal/app/contracts"
	"facultyload-service/internal/pkg/constvars"
	"facultyload-service/internal/pkg/dto/requests"
	"facultyload-service/internal/pkg/exceptions"
	"facultyload-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type SchedulingController struct {
	Usecase contracts.SchedulingUsecase
	Log     *zap.Logger
}

func NewSchedulingController(usecase contracts.SchedulingUsecase, log *zap.Logger) *SchedulingController {
	return &SchedulingController{
		Usecase: usecase,
		Log:     log,
	}
}

// OpenDialog creates a dialog session for the timetable cell the
// administrator clicked.
func (c *SchedulingController) OpenDialog(w http.ResponseWriter, r *http.Request) {
	var req requests.OpenDialog
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	snapshot, err := c.Usecase.OpenDialog(r.Context(), contracts.OpenDialogInput{
		ScheduleID: req.ScheduleID,
		ProgramID:  req.ProgramID,
		YearLevel:  req.YearLevel,
		SectionID:  req.SectionID,
		Day:        req.Day,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		FacultyID:  req.FacultyID,
		RoomID:     req.RoomID,
	})
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusCreated, "Dialog opened", snapshot)
}

func (c *SchedulingController) Snapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := c.Usecase.Snapshot(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, "OK", snapshot)
}

// UpdateDraft applies one edit burst and arms the debounced revalidation.
// The returned snapshot reflects the edit immediately; the conflict verdict
// arrives on a later Snapshot/Validate call once the round completes.
func (c *SchedulingController) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	var req requests.UpdateDraft
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	snapshot, err := c.Usecase.UpdateDraft(r.Context(), chi.URLParam(r, "sessionID"), contracts.UpdateDraftInput{
		Day:       req.Day,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Professor: req.Professor,
		Room:      req.Room,
	})
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, "Draft updated", snapshot)
}

func (c *SchedulingController) Validate(w http.ResponseWriter, r *http.Request) {
	snapshot, err := c.Usecase.Validate(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, "Validated", snapshot)
}

func (c *SchedulingController) ApplyPreference(w http.ResponseWriter, r *http.Request) {
	var req requests.ApplyPreference
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	snapshot, err := c.Usecase.ApplyPreference(r.Context(), chi.URLParam(r, "sessionID"), req.SuggestionIndex, req.PrefIndex)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, "Preference applied", snapshot)
}

// Assign commits the draft. A locally flagged conflict or unresolved field
// short-circuits before any registry call.
func (c *SchedulingController) Assign(w http.ResponseWriter, r *http.Request) {
	schedule, snapshot, err := c.Usecase.Assign(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}

	payload := map[string]interface{}{
		"schedule": schedule,
		"dialog":   snapshot,
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, "Schedule assigned", payload)
}

func (c *SchedulingController) ClearAll(w http.ResponseWriter, r *http.Request) {
	snapshot, err := c.Usecase.ClearAll(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, "Draft cleared", snapshot)
}

func (c *SchedulingController) Cancel(w http.ResponseWriter, r *http.Request) {
	if err := c.Usecase.Cancel(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, "Dialog closed", nil)
}
