package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/petify/reservation-slots-service/internal/core/domain"
)

var (
	batchStart = time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	batchEnd   = time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC)

	morningWindow = domain.TimeWindow{Start: 9 * time.Hour, End: 10 * time.Hour}
	eveningWindow = domain.TimeWindow{Start: 17 * time.Hour, End: 18 * time.Hour}
)

func TestCreateBatchSlots(t *testing.T) {
	svc, _, _ := newTestService(1, 2)

	created, err := svc.CreateBatchSlots(context.Background(), domain.BatchSlotRequest{
		PetIDs:      []int64{1, 2},
		StartDate:   batchStart,
		EndDate:     batchEnd,
		TimeWindows: []domain.TimeWindow{morningWindow, eveningWindow},
	})
	if err != nil {
		t.Fatalf("CreateBatchSlots() error = %v", err)
	}

	// 2 pets x 2 days x 2 windows.
	if len(created) != 8 {
		t.Fatalf("created = %d slots, want 8", len(created))
	}

	for _, slot := range created {
		if slot.Status != domain.SlotStatusAvailable {
			t.Errorf("slot %s status = %v, want AVAILABLE", slot.ID, slot.Status)
		}
		if slot.EndTime.Sub(slot.StartTime) != time.Hour {
			t.Errorf("slot %s duration = %v, want 1h", slot.ID, slot.EndTime.Sub(slot.StartTime))
		}
	}
}

func TestCreateBatchSlotsIdempotent(t *testing.T) {
	svc, _, _ := newTestService(1)
	ctx := context.Background()

	req := domain.BatchSlotRequest{
		PetIDs:      []int64{1},
		StartDate:   batchStart,
		EndDate:     batchStart,
		TimeWindows: []domain.TimeWindow{morningWindow},
	}

	first, err := svc.CreateBatchSlots(ctx, req)
	if err != nil {
		t.Fatalf("first CreateBatchSlots() error = %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("first created = %d slots, want 1", len(first))
	}

	second, err := svc.CreateBatchSlots(ctx, req)
	if err != nil {
		t.Fatalf("second CreateBatchSlots() error = %v", err)
	}
	if len(second) != 0 {
		t.Errorf("second created = %d slots, want 0 (all duplicates skipped)", len(second))
	}

	all, err := svc.GetAllSlots(ctx)
	if err != nil {
		t.Fatalf("GetAllSlots() error = %v", err)
	}
	if len(all) != 1 {
		t.Errorf("total slots = %d, want 1", len(all))
	}
}

func TestCreateBatchSlotsDeduplicatesRepeatedPetIDs(t *testing.T) {
	svc, _, _ := newTestService(1)

	created, err := svc.CreateBatchSlots(context.Background(), domain.BatchSlotRequest{
		PetIDs:      []int64{1, 1, 1},
		StartDate:   batchStart,
		EndDate:     batchStart,
		TimeWindows: []domain.TimeWindow{morningWindow},
	})
	if err != nil {
		t.Fatalf("CreateBatchSlots() error = %v", err)
	}
	if len(created) != 1 {
		t.Errorf("created = %d slots, want 1", len(created))
	}
}

func TestCreateBatchSlotsValidation(t *testing.T) {
	tests := []struct {
		name string
		req  domain.BatchSlotRequest
	}{
		{
			name: "end date before start date",
			req: domain.BatchSlotRequest{
				PetIDs:      []int64{1},
				StartDate:   batchEnd,
				EndDate:     batchStart,
				TimeWindows: []domain.TimeWindow{morningWindow},
			},
		},
		{
			name: "no time windows",
			req: domain.BatchSlotRequest{
				PetIDs:    []int64{1},
				StartDate: batchStart,
				EndDate:   batchEnd,
			},
		},
		{
			name: "inverted time window",
			req: domain.BatchSlotRequest{
				PetIDs:    []int64{1},
				StartDate: batchStart,
				EndDate:   batchEnd,
				TimeWindows: []domain.TimeWindow{
					{Start: 10 * time.Hour, End: 9 * time.Hour},
				},
			},
		},
		{
			name: "zero-length time window",
			req: domain.BatchSlotRequest{
				PetIDs:    []int64{1},
				StartDate: batchStart,
				EndDate:   batchEnd,
				TimeWindows: []domain.TimeWindow{
					{Start: 9 * time.Hour, End: 9 * time.Hour},
				},
			},
		},
		{
			name: "no pets without allPets",
			req: domain.BatchSlotRequest{
				StartDate:   batchStart,
				EndDate:     batchEnd,
				TimeWindows: []domain.TimeWindow{morningWindow},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestService(1)

			_, err := svc.CreateBatchSlots(context.Background(), tt.req)
			if !errors.Is(err, domain.ErrInvalidTimeRange) {
				t.Errorf("CreateBatchSlots() error = %v, want ErrInvalidTimeRange", err)
			}

			// Validation failures must write nothing.
			all, listErr := svc.GetAllSlots(context.Background())
			if listErr != nil {
				t.Fatalf("GetAllSlots() error = %v", listErr)
			}
			if len(all) != 0 {
				t.Errorf("slots written despite validation failure: %d", len(all))
			}
		})
	}
}

func TestCreateBatchSlotsAllPets(t *testing.T) {
	svc, _, _ := newTestService(1, 2, 3)

	created, err := svc.CreateBatchSlots(context.Background(), domain.BatchSlotRequest{
		AllPets:     true,
		StartDate:   batchStart,
		EndDate:     batchStart,
		TimeWindows: []domain.TimeWindow{morningWindow},
	})
	if err != nil {
		t.Fatalf("CreateBatchSlots() error = %v", err)
	}
	if len(created) != 3 {
		t.Errorf("created = %d slots, want 3 (one per registered pet)", len(created))
	}
}

func TestCreateBatchSlotsUnknownPet(t *testing.T) {
	svc, _, _ := newTestService(1)

	_, err := svc.CreateBatchSlots(context.Background(), domain.BatchSlotRequest{
		PetIDs:      []int64{1, 99},
		StartDate:   batchStart,
		EndDate:     batchStart,
		TimeWindows: []domain.TimeWindow{morningWindow},
	})
	if !errors.Is(err, domain.ErrPetNotFound) {
		t.Errorf("CreateBatchSlots() error = %v, want ErrPetNotFound", err)
	}
}

func TestCreateBatchSlotsRegistryDown(t *testing.T) {
	svc, _, registry := newTestService(1)
	registry.failing = true

	_, err := svc.CreateBatchSlots(context.Background(), domain.BatchSlotRequest{
		AllPets:     true,
		StartDate:   batchStart,
		EndDate:     batchStart,
		TimeWindows: []domain.TimeWindow{morningWindow},
	})
	if !errors.Is(err, domain.ErrPetServiceUnavailable) {
		t.Errorf("CreateBatchSlots() error = %v, want ErrPetServiceUnavailable", err)
	}
}

func TestCreateBatchSlotsNoPetsRegistered(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CreateBatchSlots(context.Background(), domain.BatchSlotRequest{
		AllPets:     true,
		StartDate:   batchStart,
		EndDate:     batchStart,
		TimeWindows: []domain.TimeWindow{morningWindow},
	})
	if !errors.Is(err, domain.ErrInvalidTimeRange) {
		t.Errorf("CreateBatchSlots() error = %v, want ErrInvalidTimeRange", err)
	}
}
