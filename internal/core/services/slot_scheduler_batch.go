package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/petify/reservation-slots-service/internal/core/domain"
	"github.com/petify/reservation-slots-service/internal/core/ports/out"
	"github.com/petify/reservation-slots-service/internal/utils"
)

// CreateBatchSlots expands {target pets} x {dates} x {time windows} into
// candidate slots and persists them as one unit. The whole request is
// validated before anything is written; candidates whose key already
// exists are skipped, which makes the operation idempotent.
func (s *SlotSchedulerService) CreateBatchSlots(ctx context.Context, req domain.BatchSlotRequest) ([]domain.ReservationSlot, error) {
	if err := validateBatchRequest(req); err != nil {
		return nil, err
	}

	petIDs, err := s.resolveTargetPetIDs(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(petIDs) == 0 {
		return nil, domain.NewError(domain.ErrInvalidTimeRange, "no valid pet ids found for slot creation")
	}

	var candidates []domain.ReservationSlot
	seen := make(map[domain.SlotKey]struct{})

	lastDay := utils.StartCurrentDay(req.EndDate)
	for day := utils.StartCurrentDay(req.StartDate); !day.After(lastDay); day = utils.StartNextDay(day) {
		for _, window := range req.TimeWindows {
			start := day.Add(window.Start)
			end := day.Add(window.End)

			for _, petID := range petIDs {
				slot := domain.ReservationSlot{
					ID:        uuid.New(),
					PetID:     petID,
					StartTime: start,
					EndTime:   end,
					Status:    domain.SlotStatusAvailable,
				}

				// Repeated pet ids in the request produce the same key.
				if _, dup := seen[slot.Key()]; dup {
					continue
				}
				seen[slot.Key()] = struct{}{}

				candidates = append(candidates, slot)
			}
		}
	}

	created, err := s.slotStore.InsertBatch(ctx, candidates)
	if err != nil {
		s.logger.Error("slots.create_batch.failed", out.LogFields{
			"candidates": len(candidates),
			"error":      err.Error(),
		})
		return nil, err
	}

	s.logger.Info("slots.create_batch.success", out.LogFields{
		"createdCount": len(created),
		"skippedCount": len(candidates) - len(created),
		"petCount":     len(petIDs),
	})
	return created, nil
}

func validateBatchRequest(req domain.BatchSlotRequest) error {
	if req.StartDate.After(req.EndDate) {
		return domain.NewError(domain.ErrInvalidTimeRange, "start date must be before or equal to end date")
	}

	if len(req.TimeWindows) == 0 {
		return domain.NewError(domain.ErrInvalidTimeRange, "at least one time window is required")
	}
	for _, window := range req.TimeWindows {
		if window.Start >= window.End {
			return domain.NewError(domain.ErrInvalidTimeRange, "time window start must be before end time")
		}
	}

	if !req.AllPets && len(req.PetIDs) == 0 {
		return domain.NewError(domain.ErrInvalidTimeRange, "pet ids must be provided when allPets is false")
	}

	return nil
}

func (s *SlotSchedulerService) resolveTargetPetIDs(ctx context.Context, req domain.BatchSlotRequest) ([]int64, error) {
	if !req.AllPets {
		for _, petID := range req.PetIDs {
			if err := s.ensurePetExists(ctx, petID); err != nil {
				return nil, err
			}
		}
		return req.PetIDs, nil
	}

	if s.petCache != nil {
		if petIDs, ok := s.petCache.GetAllPetIDs(ctx); ok {
			s.logger.Debug("pets.all_ids.cache.hit", out.LogFields{
				"petCount": len(petIDs),
			})
			return petIDs, nil
		}
	}

	petIDs, err := s.petRegistry.GetAllPetIDs(ctx)
	if err != nil {
		s.logger.Error("pets.all_ids.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, domain.NewError(domain.ErrPetServiceUnavailable, "unable to fetch pet information, please try again later")
	}

	if s.petCache != nil {
		s.petCache.StoreAllPetIDs(ctx, petIDs)
	}

	return petIDs, nil
}
