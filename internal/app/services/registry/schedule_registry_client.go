package registry

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"facultyload-service/internal/app/contracts"
	"facultyload-service/internal/app/models"
	"facultyload-service/internal/pkg/constvars"
	"facultyload-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
)

type scheduleRegistryClient struct {
	BaseUrl    string
	httpClient *http.Client
}

// NewScheduleRegistryClient builds the client for the registry's schedule
// endpoints. The timeout bounds every validation and assignment call so a
// hung registry degrades into a fail-closed transport error instead of a
// dialog stuck in "checking".
func NewScheduleRegistryClient(baseUrl string, timeout time.Duration) contracts.ScheduleRegistryClient {
	return &scheduleRegistryClient{
		BaseUrl:    baseUrl + "/schedules",
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *scheduleRegistryClient) ValidateProgramOverlap(ctx context.Context, input contracts.ValidateProgramOverlapInput) (*contracts.ValidationOutcome, error) {
	return c.postValidation(ctx, "validate-program-overlap", input)
}

func (c *scheduleRegistryClient) ValidateFacultyAvailability(ctx context.Context, input contracts.ValidateFacultyAvailabilityInput) (*contracts.ValidationOutcome, error) {
	return c.postValidation(ctx, "validate-faculty-availability", input)
}

func (c *scheduleRegistryClient) ValidateRoomAvailability(ctx context.Context, input contracts.ValidateRoomAvailabilityInput) (*contracts.ValidationOutcome, error) {
	return c.postValidation(ctx, "validate-room-availability", input)
}

func (c *scheduleRegistryClient) postValidation(ctx context.Context, operation string, payload interface{}) (*contracts.ValidationOutcome, error) {
	resp, err := c.post(ctx, operation, payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		return nil, exceptions.ErrRegistryOperation(readRegistryError(resp), operation)
	}

	outcome := new(contracts.ValidationOutcome)
	if err := json.NewDecoder(resp.Body).Decode(outcome); err != nil {
		return nil, exceptions.ErrDecodeResponse(err, operation)
	}
	return outcome, nil
}

// AssignSchedule is the final authoritative save. The registry re-runs all
// three availability checks inside its own transaction, so a rejection here
// usually means another administrator won a race; the server's message is
// surfaced to the user verbatim.
func (c *scheduleRegistryClient) AssignSchedule(ctx context.Context, input contracts.AssignScheduleInput) (*models.Schedule, error) {
	resp, err := c.post(ctx, "assign", input)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		registryErr := readRegistryError(resp)
		statusCode := constvars.StatusBadGateway
		clientMessage := constvars.ErrClientValidationUnavailable
		if resp.StatusCode == constvars.StatusConflict || resp.StatusCode == constvars.StatusUnprocessableEntity {
			statusCode = resp.StatusCode
			clientMessage = registryErr.Error()
		}
		return nil, exceptions.BuildNewCustomError(registryErr, statusCode, clientMessage, fmt.Sprintf(constvars.ErrDevRegistryOperationFailed, "assign"))
	}

	schedule := new(models.Schedule)
	if err := json.NewDecoder(resp.Body).Decode(schedule); err != nil {
		return nil, exceptions.ErrDecodeResponse(err, "assign")
	}
	return schedule, nil
}

func (c *scheduleRegistryClient) post(ctx context.Context, operation string, payload interface{}) (*http.Response, error) {
	requestJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, fmt.Sprintf("%s/%s", c.BaseUrl, operation), bytes.NewBuffer(requestJSON))
	if err != nil {
		return nil, exceptions.ErrBuildRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, exceptions.ErrSendRequest(err)
	}
	return resp, nil
}

// readRegistryError extracts the registry's error message from a non-2xx
// body, falling back to the HTTP status when the body is unusable.
func readRegistryError(resp *http.Response) error {
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("registry returned status %d", resp.StatusCode)
	}

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(bodyBytes, &payload); err != nil || payload.Message == "" {
		return fmt.Errorf("registry returned status %d", resp.StatusCode)
	}
	return errors.New(payload.Message)
}
