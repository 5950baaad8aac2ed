package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the internal principal record for an authenticated caller. Rows
// are created on first contact with a previously-unseen external identity
// and are never deleted by this service.
type User struct {
	gorm.Model
	// ExternalID is the identity provider's subject claim. Immutable once
	// created; the unique index is what makes first-contact creation safe
	// under concurrency.
	ExternalID uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	// Email is best-effort synced from the most recent token.
	Email  string
	Active bool `gorm:"default:true"`
}
