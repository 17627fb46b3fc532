package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/petify/reservation-slots-service/internal/core/domain"
)

// Many actors race for the same slot; exactly one reservation must win and
// the stored slot must carry the winner's name.
func TestConcurrentReserveSingleWinner(t *testing.T) {
	svc, store, _ := newTestService(42)
	ctx := context.Background()

	slot, err := svc.CreateSlot(ctx, 42, testStart, testEnd)
	if err != nil {
		t.Fatalf("CreateSlot() error = %v", err)
	}

	const racers = 32

	var wg sync.WaitGroup
	var wins int32
	winners := make(chan string, racers)

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			actor := domain.Actor{
				Username: fmt.Sprintf("visitor-%d", i),
				Roles:    []string{domain.RoleUser},
			}

			_, err := svc.ReserveSlot(ctx, slot.ID, actor)
			if err == nil {
				atomic.AddInt32(&wins, 1)
				winners <- actor.Username
				return
			}
			if !errors.Is(err, domain.ErrSlotNotAvailable) {
				t.Errorf("ReserveSlot(%s) error = %v, want ErrSlotNotAvailable", actor.Username, err)
			}
		}(i)
	}

	wg.Wait()
	close(winners)

	if wins != 1 {
		t.Fatalf("wins = %d, want exactly 1", wins)
	}
	winner := <-winners

	stored, err := store.GetByID(ctx, slot.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if stored.Status != domain.SlotStatusReserved {
		t.Errorf("Status = %v, want RESERVED", stored.Status)
	}
	if stored.ReservedBy == nil || *stored.ReservedBy != winner {
		t.Errorf("ReservedBy = %v, want %s", stored.ReservedBy, winner)
	}
}

// Concurrent single-slot creates for the same pet and window must yield one
// row; losers get the duplicate error.
func TestConcurrentCreateSameWindow(t *testing.T) {
	svc, _, _ := newTestService(42)
	ctx := context.Background()

	const writers = 16

	var wg sync.WaitGroup
	var created int32

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := svc.CreateSlot(ctx, 42, testStart, testEnd)
			if err == nil {
				atomic.AddInt32(&created, 1)
				return
			}
			if !errors.Is(err, domain.ErrSlotAlreadyExists) {
				t.Errorf("CreateSlot() error = %v, want ErrSlotAlreadyExists", err)
			}
		}()
	}
	wg.Wait()

	if created != 1 {
		t.Errorf("created = %d, want exactly 1", created)
	}

	all, err := svc.GetAllSlots(ctx)
	if err != nil {
		t.Fatalf("GetAllSlots() error = %v", err)
	}
	if len(all) != 1 {
		t.Errorf("stored slots = %d, want 1", len(all))
	}
}
