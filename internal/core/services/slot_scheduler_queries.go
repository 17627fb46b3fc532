package services

import (
	"context"

	"github.com/petify/reservation-slots-service/internal/core/domain"
)

func (s *SlotSchedulerService) GetAllSlots(ctx context.Context) ([]domain.ReservationSlot, error) {
	return s.slotStore.List(ctx)
}

func (s *SlotSchedulerService) GetAvailableSlots(ctx context.Context) ([]domain.ReservationSlot, error) {
	return s.slotStore.ListByStatus(ctx, domain.SlotStatusAvailable)
}

func (s *SlotSchedulerService) GetSlotsByPetID(ctx context.Context, petID int64) ([]domain.ReservationSlot, error) {
	return s.slotStore.ListByPetID(ctx, petID)
}

func (s *SlotSchedulerService) GetSlotsByUser(ctx context.Context, username string) ([]domain.ReservationSlot, error) {
	return s.slotStore.ListByReservedBy(ctx, username)
}
