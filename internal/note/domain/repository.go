package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/ledgique/ledgique/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListNoteFilter struct {
	ClientID  *snowflake.ID
	ProjectID *snowflake.ID
	Type      NoteType
	Status    NoteStatus
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, note *Note) error
	FindByID(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) (*Note, error)
	List(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, filter ListNoteFilter, page pagination.Params) ([]Note, int64, error)
	Update(ctx context.Context, db *gorm.DB, note *Note) error
	Delete(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) error
	ClientExists(ctx context.Context, db *gorm.DB, tenantID, clientID snowflake.ID) (bool, error)
	ProjectClientID(ctx context.Context, db *gorm.DB, tenantID, projectID snowflake.ID) (*snowflake.ID, error)
}
