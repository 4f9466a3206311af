package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/ledgique/ledgique/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListClientFilter struct {
	Status   ClientStatus
	SourceID *snowflake.ID
	Search   string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, client *Client) error
	FindByID(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) (*Client, error)
	List(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, filter ListClientFilter, page pagination.Params) ([]Client, int64, error)
	Update(ctx context.Context, db *gorm.DB, client *Client) error
	Delete(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) error
	CountProjects(ctx context.Context, db *gorm.DB, tenantID, clientID snowflake.ID) (int64, error)

	InsertSource(ctx context.Context, db *gorm.DB, source *ClientSource) error
	FindSourceByID(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) (*ClientSource, error)
	ListSources(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) ([]ClientSource, error)
	DeleteSource(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) error
}
