package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, account *Account) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Account, error)
	FindByExternalID(ctx context.Context, db *gorm.DB, externalID string) (*Account, error)
	Update(ctx context.Context, db *gorm.DB, account *Account) error
	DeleteByExternalID(ctx context.Context, db *gorm.DB, externalID string) error
}
