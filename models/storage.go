package models

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrIdentityStore marks failures talking to the identity store. The
// middleware maps it to a retryable 503; it is never a credential failure.
var ErrIdentityStore = errors.New("identity store unavailable")

func (db *Database) GetUserByExternalID(externalID uuid.UUID) (*User, error) {
	user := &User{}
	result := db.GormDB.Take(user, "external_id = ?", externalID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			slog.Debug("user not found", "externalId", externalID)
			return nil, nil
		}
		slog.Error("error fetching user",
			"externalId", externalID,
			"error", result.Error)
		return nil, fmt.Errorf("%w: %v", ErrIdentityStore, result.Error)
	}
	return user, nil
}

// GetOrCreateUser resolves an external identity to its internal user record,
// creating one on first contact. Creation is a single insert guarded by the
// unique index on external_id, not a read-then-write: two concurrent first
// requests for the same subject both succeed and resolve to one row.
func (db *Database) GetOrCreateUser(externalID uuid.UUID, email string) (*User, error) {
	user := &User{
		ExternalID: externalID,
		Email:      email,
		Active:     true,
	}
	result := db.GormDB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "external_id"}},
		DoNothing: true,
	}).Create(user)
	if result.Error != nil {
		slog.Error("failed to upsert user",
			"externalId", externalID,
			"error", result.Error)
		return nil, fmt.Errorf("%w: %v", ErrIdentityStore, result.Error)
	}

	if result.RowsAffected > 0 {
		slog.Info("user created on first contact",
			"userId", user.ID,
			"externalId", externalID)
		return user, nil
	}

	// The row already existed; the insert was a no-op.
	existing := &User{}
	if err := db.GormDB.Take(existing, "external_id = ?", externalID).Error; err != nil {
		slog.Error("error fetching user after upsert",
			"externalId", externalID,
			"error", err)
		return nil, fmt.Errorf("%w: %v", ErrIdentityStore, err)
	}

	// Email sync is best-effort: a failure here never fails the request.
	if email != "" && existing.Email != email {
		if err := db.GormDB.Model(existing).Update("email", email).Error; err != nil {
			slog.Warn("failed to sync user email",
				"userId", existing.ID,
				"error", err)
		} else {
			existing.Email = email
		}
	}

	return existing, nil
}
