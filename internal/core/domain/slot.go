package domain

import (
	"time"

	"github.com/google/uuid"
)

type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "AVAILABLE"
	SlotStatusReserved  SlotStatus = "RESERVED"
	SlotStatusCancelled SlotStatus = "CANCELLED"
)

type ReservationSlot struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	PetID     int64      `json:"petId" db:"pet_id"`
	StartTime time.Time  `json:"startTime" db:"start_time"`
	EndTime   time.Time  `json:"endTime" db:"end_time"`
	Status    SlotStatus `json:"status" db:"status"`
	// ReservedBy is kept after cancellation so the cancelled reservation
	// can still be attributed; reactivation clears it.
	ReservedBy *string `json:"reservedBy" db:"reserved_by"`
}

// SlotKey is the de-duplication key: two slots for the same pet with the
// exact same time bounds are the same slot. Overlapping but non-identical
// ranges are allowed.
type SlotKey struct {
	PetID     int64
	StartUnix int64
	EndUnix   int64
}

func (s ReservationSlot) Key() SlotKey {
	return SlotKey{
		PetID:     s.PetID,
		StartUnix: s.StartTime.UnixNano(),
		EndUnix:   s.EndTime.UnixNano(),
	}
}

// TimeWindow is a time-of-day interval, expressed as offsets from midnight.
type TimeWindow struct {
	Start time.Duration
	End   time.Duration
}

type BatchSlotRequest struct {
	PetIDs      []int64
	AllPets     bool
	StartDate   time.Time
	EndDate     time.Time
	TimeWindows []TimeWindow
}
