package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/ledgique/ledgique/pkg/db/pagination"
)

type CreateClientRequest struct {
	Name     string
	Company  string
	Emails   []string
	Phones   []string
	Status   ClientStatus
	SourceID *snowflake.ID
}

type UpdateClientRequest struct {
	Name     *string
	Company  *string
	Emails   []string
	Phones   []string
	Status   *ClientStatus
	SourceID *snowflake.ID
}

type ListClientRequest struct {
	pagination.Params
	Status   ClientStatus
	SourceID *snowflake.ID
	Search   string
}

type CreateSourceRequest struct {
	Name string
}

// Service owns client and client-source records. Every operation takes the
// tenant explicitly; nothing is recovered from ambient context.
type Service interface {
	Create(ctx context.Context, tenantID snowflake.ID, req CreateClientRequest) (Client, error)
	List(ctx context.Context, tenantID snowflake.ID, req ListClientRequest) (pagination.Page[Client], error)
	GetByID(ctx context.Context, tenantID snowflake.ID, id string) (Client, error)
	Update(ctx context.Context, tenantID snowflake.ID, id string, req UpdateClientRequest) (Client, error)
	Delete(ctx context.Context, tenantID snowflake.ID, id string) error

	CreateSource(ctx context.Context, tenantID snowflake.ID, req CreateSourceRequest) (ClientSource, error)
	ListSources(ctx context.Context, tenantID snowflake.ID) ([]ClientSource, error)
	DeleteSource(ctx context.Context, tenantID snowflake.ID, id string) error
}

var (
	ErrInvalidName   = errors.New("invalid_name")
	ErrInvalidStatus = errors.New("invalid_status")
	ErrInvalidID     = errors.New("invalid_id")
	ErrInvalidSource = errors.New("invalid_source")
	ErrSourceExists  = errors.New("source_exists")
	ErrNotFound      = errors.New("not_found")
	ErrHasProjects   = errors.New("client_has_projects")
)
