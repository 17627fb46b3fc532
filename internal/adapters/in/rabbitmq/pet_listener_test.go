package rabbitmq

import (
	"context"
	"testing"

	"github.com/petify/reservation-slots-service/internal/adapters/out/logger"
	amqp "github.com/rabbitmq/amqp091-go"
)

type recordingCache struct {
	invalidatedPets []int64
	invalidatedAll  bool
}

func (c *recordingCache) GetPetExists(ctx context.Context, petID int64) (bool, bool) {
	return false, false
}

func (c *recordingCache) StorePetExists(ctx context.Context, petID int64, exists bool) {}

func (c *recordingCache) GetAllPetIDs(ctx context.Context) ([]int64, bool) {
	return nil, false
}

func (c *recordingCache) StoreAllPetIDs(ctx context.Context, petIDs []int64) {}

func (c *recordingCache) InvalidatePet(ctx context.Context, petID int64) {
	c.invalidatedPets = append(c.invalidatedPets, petID)
}

func (c *recordingCache) InvalidateAll(ctx context.Context) {
	c.invalidatedAll = true
}

func TestHandleMessageInvalidatesCache(t *testing.T) {
	cache := &recordingCache{}
	listener := &PetListener{petCache: cache, logger: logger.Nop()}

	listener.handleMessage(context.Background(), amqp.Delivery{
		Body: []byte(`{"petId": 42, "event": "updated"}`),
	})

	if len(cache.invalidatedPets) != 1 || cache.invalidatedPets[0] != 42 {
		t.Errorf("invalidated pets = %v, want [42]", cache.invalidatedPets)
	}
	if !cache.invalidatedAll {
		t.Error("full id listing was not invalidated")
	}
}

// The listener can run without a cache: RabbitMQ may be enabled while the
// cache is switched off, and events must then be absorbed, not crash the
// consume goroutine.
func TestHandleMessageWithoutCache(t *testing.T) {
	listener := &PetListener{petCache: nil, logger: logger.Nop()}

	listener.handleMessage(context.Background(), amqp.Delivery{
		Body: []byte(`{"petId": 42, "event": "deleted"}`),
	})
}

func TestHandleMessageMalformedPayload(t *testing.T) {
	cache := &recordingCache{}
	listener := &PetListener{petCache: cache, logger: logger.Nop()}

	listener.handleMessage(context.Background(), amqp.Delivery{
		Body: []byte(`not json`),
	})

	if len(cache.invalidatedPets) != 0 || cache.invalidatedAll {
		t.Errorf("cache touched on malformed payload: pets=%v all=%v",
			cache.invalidatedPets, cache.invalidatedAll)
	}
}
