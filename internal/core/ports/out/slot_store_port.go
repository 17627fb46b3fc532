package out

import (
	"context"

	"github.com/google/uuid"
	"github.com/petify/reservation-slots-service/internal/core/domain"
)

type SlotStorePort interface {
	// Insert fails with domain.ErrSlotAlreadyExists when a slot with the
	// same (petId, startTime, endTime) key already exists.
	Insert(ctx context.Context, slot domain.ReservationSlot) error

	// InsertBatch persists the candidates as one unit, silently skipping
	// duplicate keys, and returns only the slots that were actually created.
	InsertBatch(ctx context.Context, slots []domain.ReservationSlot) ([]domain.ReservationSlot, error)

	GetByID(ctx context.Context, slotID uuid.UUID) (*domain.ReservationSlot, error)

	List(ctx context.Context) ([]domain.ReservationSlot, error)
	ListByStatus(ctx context.Context, status domain.SlotStatus) ([]domain.ReservationSlot, error)
	ListByPetID(ctx context.Context, petID int64) ([]domain.ReservationSlot, error)
	ListByReservedBy(ctx context.Context, username string) ([]domain.ReservationSlot, error)

	Delete(ctx context.Context, slotID uuid.UUID) error
	DeleteAll(ctx context.Context) (int64, error)

	// Atomic state transitions. Each one is a compare-and-set that succeeds
	// only from the expected status; concurrent losers get
	// domain.ErrSlotNotAvailable, an unknown id domain.ErrSlotNotFound.
	// Cancel additionally requires reserved_by to match allowedOwner when it
	// is non-nil (nil means the caller is privileged); a mismatch yields
	// domain.ErrUnauthorizedOperation. The ownership check is part of the
	// same atomic predicate as the status check.
	Reserve(ctx context.Context, slotID uuid.UUID, username string) (*domain.ReservationSlot, error)
	Cancel(ctx context.Context, slotID uuid.UUID, allowedOwner *string) (*domain.ReservationSlot, error)
	Reactivate(ctx context.Context, slotID uuid.UUID) (*domain.ReservationSlot, error)
}
