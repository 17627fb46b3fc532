package out

import "context"

type PetCachePort interface {
	// Pet existence lookups
	GetPetExists(ctx context.Context, petID int64) (exists bool, ok bool)
	StorePetExists(ctx context.Context, petID int64, exists bool)

	// Full pet-id listing
	GetAllPetIDs(ctx context.Context) ([]int64, bool)
	StoreAllPetIDs(ctx context.Context, petIDs []int64)

	InvalidatePet(ctx context.Context, petID int64)
	InvalidateAll(ctx context.Context)
}
