package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/petify/reservation-slots-service/internal/core/domain"
)

// SlotStoreAdapter is an in-memory SlotStorePort used in tests and for
// local runs without Postgres. A single mutex stands in for the row-level
// atomicity the Postgres adapter gets from single-statement updates.
type SlotStoreAdapter struct {
	mu    sync.Mutex
	slots map[uuid.UUID]domain.ReservationSlot
	keys  map[domain.SlotKey]uuid.UUID
}

func NewSlotStoreAdapter() *SlotStoreAdapter {
	return &SlotStoreAdapter{
		slots: make(map[uuid.UUID]domain.ReservationSlot),
		keys:  make(map[domain.SlotKey]uuid.UUID),
	}
}

func (a *SlotStoreAdapter) Insert(ctx context.Context, slot domain.ReservationSlot) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.keys[slot.Key()]; exists {
		return domain.NewError(domain.ErrSlotAlreadyExists,
			"slot already exists for pet %d at %s - %s",
			slot.PetID,
			slot.StartTime.Format(time.RFC3339),
			slot.EndTime.Format(time.RFC3339))
	}

	a.slots[slot.ID] = slot
	a.keys[slot.Key()] = slot.ID
	return nil
}

func (a *SlotStoreAdapter) InsertBatch(ctx context.Context, slots []domain.ReservationSlot) ([]domain.ReservationSlot, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	created := make([]domain.ReservationSlot, 0, len(slots))
	for _, slot := range slots {
		if _, exists := a.keys[slot.Key()]; exists {
			continue
		}
		a.slots[slot.ID] = slot
		a.keys[slot.Key()] = slot.ID
		created = append(created, slot)
	}

	return created, nil
}

func (a *SlotStoreAdapter) GetByID(ctx context.Context, slotID uuid.UUID) (*domain.ReservationSlot, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	slot, exists := a.slots[slotID]
	if !exists {
		return nil, domain.NewError(domain.ErrSlotNotFound, "slot with id %s not found", slotID)
	}
	return &slot, nil
}

func (a *SlotStoreAdapter) List(ctx context.Context) ([]domain.ReservationSlot, error) {
	return a.listWhere(func(domain.ReservationSlot) bool { return true }), nil
}

func (a *SlotStoreAdapter) ListByStatus(ctx context.Context, status domain.SlotStatus) ([]domain.ReservationSlot, error) {
	return a.listWhere(func(s domain.ReservationSlot) bool { return s.Status == status }), nil
}

func (a *SlotStoreAdapter) ListByPetID(ctx context.Context, petID int64) ([]domain.ReservationSlot, error) {
	return a.listWhere(func(s domain.ReservationSlot) bool { return s.PetID == petID }), nil
}

func (a *SlotStoreAdapter) ListByReservedBy(ctx context.Context, username string) ([]domain.ReservationSlot, error) {
	return a.listWhere(func(s domain.ReservationSlot) bool {
		return s.ReservedBy != nil && *s.ReservedBy == username
	}), nil
}

func (a *SlotStoreAdapter) listWhere(match func(domain.ReservationSlot) bool) []domain.ReservationSlot {
	a.mu.Lock()
	defer a.mu.Unlock()

	result := make([]domain.ReservationSlot, 0)
	for _, slot := range a.slots {
		if match(slot) {
			result = append(result, slot)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].StartTime.Equal(result[j].StartTime) {
			return result[i].StartTime.Before(result[j].StartTime)
		}
		return result[i].PetID < result[j].PetID
	})
	return result
}

func (a *SlotStoreAdapter) Delete(ctx context.Context, slotID uuid.UUID) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	slot, exists := a.slots[slotID]
	if !exists {
		return domain.NewError(domain.ErrSlotNotFound, "slot with id %s not found", slotID)
	}

	delete(a.slots, slotID)
	delete(a.keys, slot.Key())
	return nil
}

func (a *SlotStoreAdapter) DeleteAll(ctx context.Context) (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	count := int64(len(a.slots))
	a.slots = make(map[uuid.UUID]domain.ReservationSlot)
	a.keys = make(map[domain.SlotKey]uuid.UUID)
	return count, nil
}

func (a *SlotStoreAdapter) Reserve(ctx context.Context, slotID uuid.UUID, username string) (*domain.ReservationSlot, error) {
	return a.compareAndSet(ctx, slotID, domain.SlotStatusAvailable,
		"slot is not available for reservation",
		func(slot *domain.ReservationSlot) {
			slot.Status = domain.SlotStatusReserved
			slot.ReservedBy = &username
		})
}

// Cancel checks ownership under the same lock as the status so the
// authorization cannot be outdated by a concurrent transition.
func (a *SlotStoreAdapter) Cancel(ctx context.Context, slotID uuid.UUID, allowedOwner *string) (*domain.ReservationSlot, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	slot, exists := a.slots[slotID]
	if !exists {
		return nil, domain.NewError(domain.ErrSlotNotFound, "slot with id %s not found", slotID)
	}
	if slot.Status != domain.SlotStatusReserved {
		return nil, domain.NewError(domain.ErrSlotNotAvailable, "slot is not currently reserved")
	}
	if allowedOwner != nil && (slot.ReservedBy == nil || *slot.ReservedBy != *allowedOwner) {
		return nil, domain.NewError(domain.ErrUnauthorizedOperation,
			"you are not authorized to cancel this reservation")
	}

	slot.Status = domain.SlotStatusCancelled
	a.slots[slotID] = slot
	return &slot, nil
}

func (a *SlotStoreAdapter) Reactivate(ctx context.Context, slotID uuid.UUID) (*domain.ReservationSlot, error) {
	return a.compareAndSet(ctx, slotID, domain.SlotStatusCancelled,
		"slot is not cancelled",
		func(slot *domain.ReservationSlot) {
			slot.Status = domain.SlotStatusAvailable
			slot.ReservedBy = nil
		})
}

func (a *SlotStoreAdapter) compareAndSet(_ context.Context, slotID uuid.UUID, expected domain.SlotStatus, notAvailableMsg string, apply func(*domain.ReservationSlot)) (*domain.ReservationSlot, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	slot, exists := a.slots[slotID]
	if !exists {
		return nil, domain.NewError(domain.ErrSlotNotFound, "slot with id %s not found", slotID)
	}
	if slot.Status != expected {
		return nil, domain.NewError(domain.ErrSlotNotAvailable, "%s", notAvailableMsg)
	}

	apply(&slot)
	a.slots[slotID] = slot
	return &slot, nil
}
