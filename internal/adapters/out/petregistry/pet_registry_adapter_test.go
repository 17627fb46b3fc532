package petregistry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/petify/reservation-slots-service/internal/adapters/out/logger"
	"github.com/petify/reservation-slots-service/internal/config"
)

func newTestAdapter(serverURL string) *PetRegistryAdapter {
	cfg := &config.Config{}
	cfg.PetService.URL = serverURL
	cfg.PetService.Username = "reservations"
	cfg.PetService.Password = "secret"
	return NewPetRegistryAdapter(cfg, logger.Nop())
}

func TestPetExists(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "reservations" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		switch r.URL.Path {
		case "/pets/42":
			w.WriteHeader(http.StatusOK)
		case "/pets/99":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	adapter := newTestAdapter(server.URL)
	ctx := context.Background()

	exists, err := adapter.PetExists(ctx, 42)
	if err != nil {
		t.Fatalf("PetExists(42) error = %v", err)
	}
	if !exists {
		t.Error("PetExists(42) = false, want true")
	}

	exists, err = adapter.PetExists(ctx, 99)
	if err != nil {
		t.Fatalf("PetExists(99) error = %v", err)
	}
	if exists {
		t.Error("PetExists(99) = true, want false")
	}

	// Anything other than 200 or 404 is a transport failure.
	if _, err := adapter.PetExists(ctx, 7); err == nil {
		t.Error("PetExists(7) succeeded, want error on 500")
	}
}

func TestPetExistsServerUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	adapter := newTestAdapter(server.URL)
	if _, err := adapter.PetExists(context.Background(), 42); err == nil {
		t.Error("PetExists() succeeded against a closed server, want error")
	}
}

func TestGetAllPetIDs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pets/ids" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[1, 2, 3]`))
	}))
	defer server.Close()

	adapter := newTestAdapter(server.URL)

	petIDs, err := adapter.GetAllPetIDs(context.Background())
	if err != nil {
		t.Fatalf("GetAllPetIDs() error = %v", err)
	}
	if len(petIDs) != 3 || petIDs[0] != 1 || petIDs[2] != 3 {
		t.Errorf("GetAllPetIDs() = %v, want [1 2 3]", petIDs)
	}
}

func TestGetAllPetIDsBadResponse(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"not": "a list"}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			adapter := newTestAdapter(server.URL)
			if _, err := adapter.GetAllPetIDs(context.Background()); err == nil {
				t.Error("GetAllPetIDs() succeeded, want error")
			}
		})
	}
}
