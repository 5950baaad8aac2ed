package auth

import "github.com/google/uuid"

// Principal is the resolved caller for one request. It is constructed once
// by the auth middleware after the token is verified and the identity record
// is resolved, and is never mutated afterwards.
type Principal struct {
	// UserID is the internal identifier assigned by the identity store.
	UserID uint
	// ExternalID is the identity provider's subject for this caller. Resource
	// ownership is expressed in terms of this value.
	ExternalID uuid.UUID
	Email      string
}
