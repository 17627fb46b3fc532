package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestErrorMatchesByCode(t *testing.T) {
	err := NewError(ErrSlotNotFound, "slot with id %s not found", "abc")

	if !errors.Is(err, ErrSlotNotFound) {
		t.Error("errors.Is() = false for same code, want true")
	}
	if errors.Is(err, ErrSlotNotAvailable) {
		t.Error("errors.Is() = true for different code, want false")
	}

	// Matching survives wrapping.
	wrapped := fmt.Errorf("reserve failed: %w", err)
	if !errors.Is(wrapped, ErrSlotNotFound) {
		t.Error("errors.Is() = false for wrapped error, want true")
	}
}

func TestActorRoles(t *testing.T) {
	tests := []struct {
		name       string
		roles      []string
		privileged bool
	}{
		{name: "admin", roles: []string{RoleAdmin}, privileged: true},
		{name: "shelter", roles: []string{RoleShelter}, privileged: true},
		{name: "plain user", roles: []string{RoleUser}, privileged: false},
		{name: "no roles", roles: nil, privileged: false},
		{name: "user and shelter", roles: []string{RoleUser, RoleShelter}, privileged: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actor := Actor{Username: "someone", Roles: tt.roles}
			if got := actor.IsPrivileged(); got != tt.privileged {
				t.Errorf("IsPrivileged() = %v, want %v", got, tt.privileged)
			}
		})
	}

	actor := Actor{Username: "alice", Roles: []string{RoleUser}}
	if !actor.HasAnyRole(RoleAdmin, RoleUser) {
		t.Error("HasAnyRole() = false when one role matches, want true")
	}
	if actor.HasAnyRole(RoleAdmin, RoleShelter) {
		t.Error("HasAnyRole() = true with no matching role, want false")
	}
}

func TestSlotKeyIdentity(t *testing.T) {
	start := time.Date(2025, time.January, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	a := ReservationSlot{PetID: 42, StartTime: start, EndTime: end}
	b := ReservationSlot{PetID: 42, StartTime: start, EndTime: end}
	if a.Key() != b.Key() {
		t.Error("identical pet and bounds produced different keys")
	}

	c := ReservationSlot{PetID: 42, StartTime: start, EndTime: end.Add(time.Minute)}
	if a.Key() == c.Key() {
		t.Error("different bounds produced the same key")
	}

	// Identical instants in different zones are the same key.
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("LoadLocation() error = %v", err)
	}
	d := ReservationSlot{PetID: 42, StartTime: start.In(loc), EndTime: end.In(loc)}
	if a.Key() != d.Key() {
		t.Error("same instants in different zones produced different keys")
	}
}
