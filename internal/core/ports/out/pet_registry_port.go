package out

import "context"

// PetRegistryPort answers pet-existence questions against the remote pet
// registry. A transport or server failure is returned as an error and is
// distinct from a pet that simply does not exist.
type PetRegistryPort interface {
	PetExists(ctx context.Context, petID int64) (bool, error)
	GetAllPetIDs(ctx context.Context) ([]int64, error)
}
