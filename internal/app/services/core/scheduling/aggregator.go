package scheduling

import (
	"context"
	"sort"

	"facultyload-service/internal/app/contracts"
	"facultyload-service/internal/app/models"
	"facultyload-service/internal/pkg/constvars"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ConflictAggregator fans one draft out to the applicable registry checks and
// reduces the failures to the single message the dialog shows.
type ConflictAggregator struct {
	registry contracts.ScheduleRegistryClient
	logger   *zap.Logger
}

func NewConflictAggregator(registry contracts.ScheduleRegistryClient, logger *zap.Logger) *ConflictAggregator {
	return &ConflictAggregator{registry: registry, logger: logger}
}

type check struct {
	conflictType models.ConflictType
	run          func(ctx context.Context) (*contracts.ValidationOutcome, error)
}

// Run validates the draft against the registry. It returns the surfaced
// conflict (nil when the slot is free) and whether any check was applicable
// at all. A check is applicable only when every input it needs is set; a
// half-filled form is "not yet checkable", never a pass.
//
// All applicable checks run concurrently and every goroutine is joined
// before returning. A transport failure on any check is mapped to a failing
// result so the aggregator fails closed: an unconfirmable slot is treated as
// conflicted.
func (a *ConflictAggregator) Run(ctx context.Context, draft models.ScheduleDraft) (*models.ConflictResult, bool) {
	slot, ok := draft.Slot()
	if !ok {
		return nil, false
	}

	day := string(slot.Day)
	start := slot.Start.Backend()
	end := slot.End.Backend()

	checks := []check{
		{
			conflictType: models.ConflictTypeProgram,
			run: func(ctx context.Context) (*contracts.ValidationOutcome, error) {
				return a.registry.ValidateProgramOverlap(ctx, contracts.ValidateProgramOverlapInput{
					ScheduleID: draft.ScheduleID,
					ProgramID:  draft.ProgramID,
					YearLevel:  draft.YearLevel,
					Day:        day,
					StartTime:  start,
					EndTime:    end,
				})
			},
		},
	}

	if draft.FacultyID != nil {
		facultyID := *draft.FacultyID
		checks = append(checks, check{
			conflictType: models.ConflictTypeFaculty,
			run: func(ctx context.Context) (*contracts.ValidationOutcome, error) {
				return a.registry.ValidateFacultyAvailability(ctx, contracts.ValidateFacultyAvailabilityInput{
					ScheduleID: draft.ScheduleID,
					FacultyID:  facultyID,
					Day:        day,
					StartTime:  start,
					EndTime:    end,
					ProgramID:  draft.ProgramID,
					YearLevel:  draft.YearLevel,
					SectionID:  draft.SectionID,
				})
			},
		})
	}

	if draft.RoomID != nil {
		roomID := *draft.RoomID
		checks = append(checks, check{
			conflictType: models.ConflictTypeRoom,
			run: func(ctx context.Context) (*contracts.ValidationOutcome, error) {
				return a.registry.ValidateRoomAvailability(ctx, contracts.ValidateRoomAvailabilityInput{
					ScheduleID: draft.ScheduleID,
					RoomID:     roomID,
					Day:        day,
					StartTime:  start,
					EndTime:    end,
					ProgramID:  draft.ProgramID,
					YearLevel:  draft.YearLevel,
					SectionID:  draft.SectionID,
				})
			},
		})
	}

	results := make([]models.ConflictResult, len(checks))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, c := range checks {
		i, c := i, c
		group.Go(func() error {
			outcome, err := c.run(groupCtx)
			if err != nil {
				a.logger.Warn("availability check failed",
					zap.String("check", c.conflictType.String()),
					zap.Error(err),
				)
				results[i] = models.ConflictResult{
					Type:    models.ConflictTypeTransport,
					IsValid: false,
					Message: constvars.ErrClientValidationUnavailable,
				}
				return nil
			}
			results[i] = models.ConflictResult{
				Type:    c.conflictType,
				IsValid: outcome.IsValid,
				Message: outcome.Message,
			}
			return nil
		})
	}
	group.Wait()

	var failures []models.ConflictResult
	for _, result := range results {
		if !result.IsValid {
			failures = append(failures, result)
		}
	}
	if len(failures) == 0 {
		return nil, true
	}

	sort.SliceStable(failures, func(i, j int) bool {
		return failures[i].Type < failures[j].Type
	})
	surfaced := failures[0]
	return &surfaced, true
}
