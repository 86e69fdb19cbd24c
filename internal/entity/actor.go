package entity

import "github.com/google/uuid"

// Actor is the authenticated identity performing an operation.
type Actor struct {
	ID   uuid.UUID
	Role AccountRole
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Owns reports whether the actor owns the resource identified by ownerID.
// Every mutation is gated on this predicate (or IsAdmin) before the data
// store is touched.
func (a Actor) Owns(ownerID uuid.UUID) bool {
	return a.ID == ownerID
}

// CanModify is the authorization predicate for owner-or-admin mutations.
func (a Actor) CanModify(ownerID uuid.UUID) bool {
	return a.IsAdmin() || a.Owns(ownerID)
}
