// Package seed bootstraps the fixed local-development account so the
// API is usable without a webhook round trip to the identity provider.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	identitydomain "github.com/ledgique/ledgique/internal/identity/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultAccountExternalID = "local-dev"
	defaultAccountEmail      = "dev@ledgique.local"
	defaultAccountName       = "Local Development"
)

// EnsureDefaultAccount creates the development account under the given
// fixed ID when it does not exist yet.
func EnsureDefaultAccount(db *gorm.DB, id int64) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}
	if id == 0 {
		return errors.New("seed account id is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&identitydomain.Account{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		now := time.Now().UTC()
		account := identitydomain.Account{
			ID:         snowflake.ID(id),
			ExternalID: defaultAccountExternalID,
			Email:      defaultAccountEmail,
			Name:       defaultAccountName,
			Currency:   "USD",
			Metadata:   datatypes.JSONMap{},
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		return tx.Create(&account).Error
	})
}
