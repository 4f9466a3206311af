package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/ledgique/ledgique/pkg/db/pagination"
)

type CreateNoteRequest struct {
	ClientID  *snowflake.ID
	ProjectID *snowflake.ID
	Title     string
	Content   string
	Type      NoteType
	Priority  NotePriority
	Status    NoteStatus
	Tags      []string
	DueDate   *time.Time
}

type UpdateNoteRequest struct {
	Title    *string
	Content  *string
	Type     *NoteType
	Priority *NotePriority
	Status   *NoteStatus
	Tags     []string
	DueDate  *time.Time
}

type ListNoteRequest struct {
	pagination.Params
	ClientID  *snowflake.ID
	ProjectID *snowflake.ID
	Type      NoteType
	Status    NoteStatus
}

type Service interface {
	Create(ctx context.Context, tenantID snowflake.ID, req CreateNoteRequest) (Note, error)
	List(ctx context.Context, tenantID snowflake.ID, req ListNoteRequest) (pagination.Page[Note], error)
	GetByID(ctx context.Context, tenantID snowflake.ID, id string) (Note, error)
	Update(ctx context.Context, tenantID snowflake.ID, id string, req UpdateNoteRequest) (Note, error)
	Delete(ctx context.Context, tenantID snowflake.ID, id string) error
}

var (
	ErrInvalidTitle    = errors.New("invalid_title")
	ErrInvalidType     = errors.New("invalid_type")
	ErrInvalidPriority = errors.New("invalid_priority")
	ErrInvalidStatus   = errors.New("invalid_status")
	ErrInvalidClient   = errors.New("invalid_client")
	ErrInvalidProject  = errors.New("invalid_project")
	ErrProjectMismatch = errors.New("project_client_mismatch")
	ErrInvalidID       = errors.New("invalid_id")
	ErrNotFound        = errors.New("not_found")
)
