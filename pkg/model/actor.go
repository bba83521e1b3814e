package model

// Actor roles.
const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleAdmin      = "ADMIN"
	RoleCustomer   = "CUSTOMER"
)

// Actor is the authenticated identity attached to every request. Role
// checks go through the capability methods below so that handlers and
// services never compare raw role strings.
type Actor struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department,omitempty"`
	Role       string `json:"role"`
}

// CanManageBookings reports whether the actor may allocate rooms directly
// and drive the booking lifecycle (approve, reject, check-in, check-out,
// cancel).
func (a *Actor) CanManageBookings() bool {
	return a.Role == RoleAdmin || a.Role == RoleSuperAdmin
}

// CanManageInventory reports whether the actor may create or modify rooms
// and guest houses.
func (a *Actor) CanManageInventory() bool {
	return a.Role == RoleAdmin || a.Role == RoleSuperAdmin
}

// CanDeleteInventory reports whether the actor may soft-delete rooms and
// guest houses.
func (a *Actor) CanDeleteInventory() bool {
	return a.Role == RoleSuperAdmin
}

// ViewsOwnBookingsOnly reports whether booking reads must be restricted to
// the actor's own records.
func (a *Actor) ViewsOwnBookingsOnly() bool {
	return a.Role == RoleCustomer
}

// ValidRole reports whether role is one of the known actor roles.
func ValidRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleAdmin, RoleCustomer:
		return true
	}
	return false
}
