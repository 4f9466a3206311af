package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/ledgique/ledgique/pkg/db/pagination"
)

type CreateProjectRequest struct {
	ClientID     string
	Name         string
	Description  string
	Status       ProjectStatus
	Priority     ProjectPriority
	Budget       *float64
	StartDate    *time.Time
	EndDate      *time.Time
	Tags         []string
	Deliverables []string
}

type UpdateProjectRequest struct {
	Name         *string
	Description  *string
	Status       *ProjectStatus
	Priority     *ProjectPriority
	Budget       *float64
	StartDate    *time.Time
	EndDate      *time.Time
	Tags         []string
	Deliverables []string
}

type ListProjectRequest struct {
	pagination.Params
	ClientID *snowflake.ID
	Status   ProjectStatus
	Priority ProjectPriority
}

type Service interface {
	Create(ctx context.Context, tenantID snowflake.ID, req CreateProjectRequest) (Project, error)
	List(ctx context.Context, tenantID snowflake.ID, req ListProjectRequest) (pagination.Page[Project], error)
	GetByID(ctx context.Context, tenantID snowflake.ID, id string) (Project, error)
	Update(ctx context.Context, tenantID snowflake.ID, id string, req UpdateProjectRequest) (Project, error)
	Delete(ctx context.Context, tenantID snowflake.ID, id string) error
}

var (
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidClient   = errors.New("invalid_client")
	ErrInvalidStatus   = errors.New("invalid_status")
	ErrInvalidPriority = errors.New("invalid_priority")
	ErrInvalidID       = errors.New("invalid_id")
	ErrNotFound        = errors.New("not_found")
)
