package petregistry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/petify/reservation-slots-service/internal/config"
	"github.com/petify/reservation-slots-service/internal/core/ports/out"
)

// PetRegistryAdapter talks to the shelter service over HTTP. A 404 on a
// pet lookup means "pet does not exist"; anything else that goes wrong is
// a transport failure the caller should treat as transient.
type PetRegistryAdapter struct {
	client   *http.Client
	baseURL  string
	username string
	password string
	logger   out.LoggerPort
}

func NewPetRegistryAdapter(cfg *config.Config, logger out.LoggerPort) *PetRegistryAdapter {
	return &PetRegistryAdapter{
		client:   &http.Client{Timeout: 10 * time.Second},
		baseURL:  cfg.PetService.URL,
		username: cfg.PetService.Username,
		password: cfg.PetService.Password,
		logger:   logger,
	}
}

func (a *PetRegistryAdapter) PetExists(ctx context.Context, petID int64) (bool, error) {
	url := fmt.Sprintf("%s/pets/%d", a.baseURL, petID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}

	req.SetBasicAuth(a.username, a.password)

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error("petregistry.pet.fetch_failed", out.LogFields{
			"petId": petID,
			"error": err.Error(),
		})
		return false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		a.logger.Debug("petregistry.pet.not_found", out.LogFields{
			"petId": petID,
		})
		return false, nil
	default:
		a.logger.Error("petregistry.pet.fetch_failed", out.LogFields{
			"petId":  petID,
			"status": resp.StatusCode,
		})
		return false, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
}

func (a *PetRegistryAdapter) GetAllPetIDs(ctx context.Context) ([]int64, error) {
	url := fmt.Sprintf("%s/pets/ids", a.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.SetBasicAuth(a.username, a.password)

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error("petregistry.pet_ids.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		a.logger.Error("petregistry.pet_ids.fetch_failed", out.LogFields{
			"status": resp.StatusCode,
		})
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var petIDs []int64
	if err := json.NewDecoder(resp.Body).Decode(&petIDs); err != nil {
		a.logger.Error("petregistry.pet_ids.decode_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	a.logger.Debug("petregistry.pet_ids.fetch_success", out.LogFields{
		"count": len(petIDs),
	})

	return petIDs, nil
}
