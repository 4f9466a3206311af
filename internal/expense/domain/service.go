package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/ledgique/ledgique/pkg/db/pagination"
)

type CreateExpenseRequest struct {
	ClientID    *snowflake.ID
	ProjectID   *snowflake.ID
	Description string
	Amount      float64
	Category    ExpenseCategory
	Date        *time.Time
	HasReceipt  bool
}

type UpdateExpenseRequest struct {
	Description *string
	Amount      *float64
	Category    *ExpenseCategory
	Date        *time.Time
}

type ListExpenseRequest struct {
	pagination.Params
	ClientID  *snowflake.ID
	ProjectID *snowflake.ID
	Category  ExpenseCategory
	From      *time.Time
	To        *time.Time
}

type Service interface {
	Create(ctx context.Context, tenantID snowflake.ID, req CreateExpenseRequest) (Expense, error)
	List(ctx context.Context, tenantID snowflake.ID, req ListExpenseRequest) (pagination.Page[Expense], error)
	GetByID(ctx context.Context, tenantID snowflake.ID, id string) (Expense, error)
	Update(ctx context.Context, tenantID snowflake.ID, id string, req UpdateExpenseRequest) (Expense, error)
	Delete(ctx context.Context, tenantID snowflake.ID, id string) error
}

var (
	ErrInvalidDescription = errors.New("invalid_description")
	ErrInvalidAmount      = errors.New("invalid_amount")
	ErrInvalidCategory    = errors.New("invalid_category")
	ErrInvalidClient      = errors.New("invalid_client")
	ErrInvalidProject     = errors.New("invalid_project")
	ErrInvalidID          = errors.New("invalid_id")
	ErrNotFound           = errors.New("not_found")
)
