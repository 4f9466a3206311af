package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/ledgique/ledgique/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListProjectFilter struct {
	ClientID *snowflake.ID
	Status   ProjectStatus
	Priority ProjectPriority
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, project *Project) error
	FindByID(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) (*Project, error)
	List(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, filter ListProjectFilter, page pagination.Params) ([]Project, int64, error)
	Update(ctx context.Context, db *gorm.DB, project *Project) error
	Delete(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) error
	ClientExists(ctx context.Context, db *gorm.DB, tenantID, clientID snowflake.ID) (bool, error)
}
