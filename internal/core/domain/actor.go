package domain

const (
	RoleAdmin   = "ROLE_ADMIN"
	RoleShelter = "ROLE_SHELTER"
	RoleUser    = "ROLE_USER"
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	Username string
	Roles    []string
}

func (a Actor) HasAnyRole(roles ...string) bool {
	for _, want := range roles {
		for _, have := range a.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// IsPrivileged reports whether the actor may perform shelter-level
// operations such as cancelling someone else's reservation.
func (a Actor) IsPrivileged() bool {
	return a.HasAnyRole(RoleAdmin, RoleShelter)
}
