package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/ledgique/ledgique/pkg/db/pagination"
)

type CreateRetainerRequest struct {
	ClientID   string
	ProjectID  *snowflake.ID
	Name       string
	Amount     float64
	HourlyRate *float64
	StartDate  *time.Time
	EndDate    *time.Time
}

type UpdateRetainerRequest struct {
	Name    *string
	Status  *RetainerStatus
	EndDate *time.Time
}

type RecordUsageRequest struct {
	Amount      float64
	Description string
}

type ListRetainerRequest struct {
	pagination.Params
	ClientID *snowflake.ID
	Status   RetainerStatus
}

type Service interface {
	Create(ctx context.Context, tenantID snowflake.ID, req CreateRetainerRequest) (Retainer, error)
	List(ctx context.Context, tenantID snowflake.ID, req ListRetainerRequest) (pagination.Page[Retainer], error)
	GetByID(ctx context.Context, tenantID snowflake.ID, id string) (Retainer, error)
	Update(ctx context.Context, tenantID snowflake.ID, id string, req UpdateRetainerRequest) (Retainer, error)
	Delete(ctx context.Context, tenantID snowflake.ID, id string) error
	RecordUsage(ctx context.Context, tenantID snowflake.ID, id string, req RecordUsageRequest) (Retainer, error)
	ListUsage(ctx context.Context, tenantID snowflake.ID, id string) ([]RetainerUsage, error)
}

var (
	ErrInvalidClient     = errors.New("invalid_client")
	ErrInvalidName       = errors.New("invalid_name")
	ErrInvalidAmount     = errors.New("invalid_amount")
	ErrInvalidStatus     = errors.New("invalid_status")
	ErrInvalidID         = errors.New("invalid_id")
	ErrNotFound          = errors.New("not_found")
	ErrNotActive         = errors.New("not_active")
	ErrInsufficientFunds = errors.New("insufficient_funds")
)
