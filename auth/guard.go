package auth

import "github.com/google/uuid"

// Authorize decides whether p may act on a resource owned by resourceOwner.
// A zero owner means the resource was created without the path that stamps
// ownership; that is a data bug, reported as an integrity anomaly rather
// than a cross-tenant attempt, and still denied.
//
// List queries do not go through Authorize: they are pre-filtered on the
// owner column in the storage layer. This check is the backstop for
// direct-by-identifier access.
func Authorize(p Principal, resourceOwner uuid.UUID) error {
	if resourceOwner == uuid.Nil {
		return newError(ClassIntegrityAnomaly, nil)
	}
	if p.ExternalID != resourceOwner {
		return newError(ClassOwnershipMismatch, nil)
	}
	return nil
}
