package in

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/petify/reservation-slots-service/internal/core/domain"
)

type SlotSchedulerUseCase interface {
	// Slot creation
	CreateSlot(ctx context.Context, petID int64, startTime, endTime time.Time) (*domain.ReservationSlot, error)
	CreateBatchSlots(ctx context.Context, req domain.BatchSlotRequest) ([]domain.ReservationSlot, error)

	// Slot removal
	DeleteSlot(ctx context.Context, slotID uuid.UUID) error
	DeleteAllSlots(ctx context.Context) error

	// Read-only projections, sorted by start time
	GetAllSlots(ctx context.Context) ([]domain.ReservationSlot, error)
	GetAvailableSlots(ctx context.Context) ([]domain.ReservationSlot, error)
	GetSlotsByPetID(ctx context.Context, petID int64) ([]domain.ReservationSlot, error)
	GetSlotsByUser(ctx context.Context, username string) ([]domain.ReservationSlot, error)

	// Slot lifecycle
	ReserveSlot(ctx context.Context, slotID uuid.UUID, actor domain.Actor) (*domain.ReservationSlot, error)
	CancelReservation(ctx context.Context, slotID uuid.UUID, actor domain.Actor) (*domain.ReservationSlot, error)
	ReactivateCancelledSlot(ctx context.Context, slotID uuid.UUID, actor domain.Actor) (*domain.ReservationSlot, error)
}
