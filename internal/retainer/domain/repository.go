package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/ledgique/ledgique/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListRetainerFilter struct {
	ClientID *snowflake.ID
	Status   RetainerStatus
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, retainer *Retainer) error
	FindByID(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) (*Retainer, error)
	List(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, filter ListRetainerFilter, page pagination.Params) ([]Retainer, int64, error)
	Update(ctx context.Context, db *gorm.DB, retainer *Retainer) error
	Delete(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) error
	InsertUsage(ctx context.Context, db *gorm.DB, usage *RetainerUsage) error
	ListUsage(ctx context.Context, db *gorm.DB, retainerID snowflake.ID) ([]RetainerUsage, error)
	ClientExists(ctx context.Context, db *gorm.DB, tenantID, clientID snowflake.ID) (bool, error)
}
