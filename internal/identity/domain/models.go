// Package domain contains the local account profile mirrored from the
// external identity provider. The account ID doubles as the tenant ID for
// every other entity.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Account struct {
	ID         snowflake.ID      `gorm:"primaryKey" json:"id"`
	ExternalID string            `gorm:"not null;uniqueIndex" json:"external_id"`
	Email      string            `gorm:"not null" json:"email"`
	Name       string            `json:"name"`
	Currency   string            `gorm:"not null;default:'USD'" json:"currency"`
	Metadata   datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt  time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Account) TableName() string { return "accounts" }
