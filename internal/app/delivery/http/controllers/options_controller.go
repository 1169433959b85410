package controllers

import (
	"net/http"
	"strconv"

	"facultyload-service/internal/app/contracts"
	"facultyload-service/internal/app/models"
	"facultyload-service/internal/pkg/constvars"
	"facultyload-service/internal/pkg/dto/responses"
	"facultyload-service/internal/pkg/exceptions"
	"facultyload-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// OptionsController serves the read-only vocabularies the dialog renders:
// weekday and time grids are fixed locally, faculty/room/suggestion lists
// come from the registry through the cached reference-data client.
type OptionsController struct {
	ReferenceData contracts.ReferenceDataClient
	Log           *zap.Logger
}

func NewOptionsController(referenceData contracts.ReferenceDataClient, log *zap.Logger) *OptionsController {
	return &OptionsController{
		ReferenceData: referenceData,
		Log:           log,
	}
}

func (c *OptionsController) Days(w http.ResponseWriter, r *http.Request) {
	days := make([]string, 0, 7)
	for _, d := range models.Weekdays() {
		days = append(days, string(d))
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, "OK", responses.OptionLists{Days: days})
}

func (c *OptionsController) Times(w http.ResponseWriter, r *http.Request) {
	utils.BuildSuccessResponse(w, constvars.StatusOK, "OK", responses.OptionLists{Times: models.TimeOptions()})
}

func (c *OptionsController) Faculty(w http.ResponseWriter, r *http.Request) {
	faculty, err := c.ReferenceData.ListFaculty(r.Context())
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, "OK", faculty)
}

func (c *OptionsController) Rooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := c.ReferenceData.ListRooms(r.Context())
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, "OK", rooms)
}

func (c *OptionsController) Suggestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	programID, err := strconv.ParseInt(query.Get("programId"), 10, 64)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, "invalid programId"))
		return
	}
	yearLevel, err := strconv.Atoi(query.Get("yearLevel"))
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, "invalid yearLevel"))
		return
	}
	sectionID, err := strconv.ParseInt(query.Get("sectionId"), 10, 64)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, "invalid sectionId"))
		return
	}

	suggestions, err := c.ReferenceData.ListSuggestedFaculty(r.Context(), programID, yearLevel, sectionID)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, "OK", suggestions)
}
