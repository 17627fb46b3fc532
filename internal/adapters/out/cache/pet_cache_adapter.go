package cache

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/petify/reservation-slots-service/internal/config"
	"github.com/petify/reservation-slots-service/internal/core/ports/out"
)

// PetCacheAdapter keeps pet-existence answers and the full pet-id listing
// in memory so batch creation does not hammer the shelter service. The
// RabbitMQ pet-event listener invalidates entries when pets change.
type PetCacheAdapter struct {
	cache  *lru.Cache[int64, bool]
	mu     sync.RWMutex
	allIDs []int64
	hasAll bool
	logger out.LoggerPort
}

func NewPetCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*PetCacheAdapter, error) {
	if !cfg.Cache.Enabled {
		logger.Info("cache.disabled", out.LogFields{
			"message": "Pet cache is disabled",
		})
		return nil, nil
	}

	c, err := lru.New[int64, bool](cfg.Cache.Size)
	if err != nil {
		logger.Error("cache.init.failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.Size,
		})
		return nil, err
	}

	return &PetCacheAdapter{
		cache:  c,
		logger: logger.WithModule("PetCacheAdapter"),
	}, nil
}

func (c *PetCacheAdapter) GetPetExists(ctx context.Context, petID int64) (bool, bool) {
	exists, ok := c.cache.Get(petID)
	if !ok {
		c.logger.Debug("cache.pet.miss", out.LogFields{
			"petId": petID,
		})
		return false, false
	}

	return exists, true
}

func (c *PetCacheAdapter) StorePetExists(ctx context.Context, petID int64, exists bool) {
	c.cache.Add(petID, exists)
}

func (c *PetCacheAdapter) GetAllPetIDs(ctx context.Context) ([]int64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.hasAll {
		return nil, false
	}

	petIDs := make([]int64, len(c.allIDs))
	copy(petIDs, c.allIDs)
	return petIDs, true
}

func (c *PetCacheAdapter) StoreAllPetIDs(ctx context.Context, petIDs []int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.allIDs = make([]int64, len(petIDs))
	copy(c.allIDs, petIDs)
	c.hasAll = true
}

func (c *PetCacheAdapter) InvalidatePet(ctx context.Context, petID int64) {
	c.cache.Remove(petID)

	c.logger.Debug("cache.pet.invalidated", out.LogFields{
		"petId": petID,
	})
}

func (c *PetCacheAdapter) InvalidateAll(ctx context.Context) {
	c.mu.Lock()
	c.allIDs = nil
	c.hasAll = false
	c.mu.Unlock()

	c.cache.Purge()

	c.logger.Debug("cache.invalidated_all", out.LogFields{})
}
