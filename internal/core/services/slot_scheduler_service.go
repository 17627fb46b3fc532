package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/petify/reservation-slots-service/internal/core/domain"
	"github.com/petify/reservation-slots-service/internal/core/ports/out"
)

type SlotSchedulerService struct {
	slotStore   out.SlotStorePort
	petRegistry out.PetRegistryPort
	petCache    out.PetCachePort
	logger      out.LoggerPort
}

func NewSlotSchedulerService(
	slotStore out.SlotStorePort,
	petRegistry out.PetRegistryPort,
	petCache out.PetCachePort,
	logger out.LoggerPort,
) *SlotSchedulerService {
	return &SlotSchedulerService{
		slotStore:   slotStore,
		petRegistry: petRegistry,
		petCache:    petCache,
		logger:      logger.WithModule("SlotSchedulerService"),
	}
}

func (s *SlotSchedulerService) CreateSlot(ctx context.Context, petID int64, startTime, endTime time.Time) (*domain.ReservationSlot, error) {
	if !startTime.Before(endTime) {
		return nil, domain.NewError(domain.ErrInvalidTimeRange, "start time must be before end time")
	}

	if err := s.ensurePetExists(ctx, petID); err != nil {
		return nil, err
	}

	slot := domain.ReservationSlot{
		ID:        uuid.New(),
		PetID:     petID,
		StartTime: startTime,
		EndTime:   endTime,
		Status:    domain.SlotStatusAvailable,
	}

	if err := s.slotStore.Insert(ctx, slot); err != nil {
		s.logger.Warn("slots.create.failed", out.LogFields{
			"petId": petID,
			"error": err.Error(),
		})
		return nil, err
	}

	s.logger.Info("slots.create.success", out.LogFields{
		"slotId":    slot.ID,
		"petId":     petID,
		"startTime": startTime,
		"endTime":   endTime,
	})
	return &slot, nil
}

func (s *SlotSchedulerService) DeleteSlot(ctx context.Context, slotID uuid.UUID) error {
	if err := s.slotStore.Delete(ctx, slotID); err != nil {
		return err
	}

	s.logger.Info("slots.delete.success", out.LogFields{
		"slotId": slotID,
	})
	return nil
}

func (s *SlotSchedulerService) DeleteAllSlots(ctx context.Context) error {
	count, err := s.slotStore.DeleteAll(ctx)
	if err != nil {
		return err
	}

	s.logger.Info("slots.delete_all.success", out.LogFields{
		"deletedCount": count,
	})
	return nil
}

func (s *SlotSchedulerService) ReserveSlot(ctx context.Context, slotID uuid.UUID, actor domain.Actor) (*domain.ReservationSlot, error) {
	slot, err := s.slotStore.Reserve(ctx, slotID, actor.Username)
	if err != nil {
		s.logger.Warn("slots.reserve.rejected", out.LogFields{
			"slotId":   slotID,
			"username": actor.Username,
			"error":    err.Error(),
		})
		return nil, err
	}

	s.logger.Info("slots.reserve.success", out.LogFields{
		"slotId":   slotID,
		"username": actor.Username,
	})
	return slot, nil
}

func (s *SlotSchedulerService) CancelReservation(ctx context.Context, slotID uuid.UUID, actor domain.Actor) (*domain.ReservationSlot, error) {
	// Privileged actors may cancel any reservation; everyone else only
	// their own. The ownership check rides inside the store's
	// compare-and-set together with the status check, so a concurrent
	// cancel/reactivate/reserve cycle cannot outdate the authorization.
	var allowedOwner *string
	if !actor.IsPrivileged() {
		allowedOwner = &actor.Username
	}

	cancelled, err := s.slotStore.Cancel(ctx, slotID, allowedOwner)
	if err != nil {
		s.logger.Warn("slots.cancel.rejected", out.LogFields{
			"slotId":   slotID,
			"username": actor.Username,
			"error":    err.Error(),
		})
		return nil, err
	}

	s.logger.Info("slots.cancel.success", out.LogFields{
		"slotId":      slotID,
		"cancelledBy": actor.Username,
	})
	return cancelled, nil
}

func (s *SlotSchedulerService) ReactivateCancelledSlot(ctx context.Context, slotID uuid.UUID, actor domain.Actor) (*domain.ReservationSlot, error) {
	if !actor.IsPrivileged() {
		s.logger.Warn("slots.reactivate.unauthorized", out.LogFields{
			"slotId":   slotID,
			"username": actor.Username,
		})
		return nil, domain.NewError(domain.ErrUnauthorizedOperation, "only shelter or admin roles may reactivate a slot")
	}

	slot, err := s.slotStore.Reactivate(ctx, slotID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("slots.reactivate.success", out.LogFields{
		"slotId":        slotID,
		"reactivatedBy": actor.Username,
	})
	return slot, nil
}

// ensurePetExists resolves pet existence through the cache when present,
// falling back to the registry. Registry failures surface as
// domain.ErrPetServiceUnavailable so callers can retry.
func (s *SlotSchedulerService) ensurePetExists(ctx context.Context, petID int64) error {
	if s.petCache != nil {
		if exists, ok := s.petCache.GetPetExists(ctx, petID); ok {
			if !exists {
				return domain.NewError(domain.ErrPetNotFound, "pet with id %d not found", petID)
			}
			return nil
		}
	}

	exists, err := s.petRegistry.PetExists(ctx, petID)
	if err != nil {
		s.logger.Error("pets.exists.fetch_failed", out.LogFields{
			"petId": petID,
			"error": err.Error(),
		})
		return domain.NewError(domain.ErrPetServiceUnavailable, "unable to fetch pet information, please try again later")
	}

	if s.petCache != nil {
		s.petCache.StorePetExists(ctx, petID, exists)
	}

	if !exists {
		return domain.NewError(domain.ErrPetNotFound, "pet with id %d not found", petID)
	}
	return nil
}
