package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/ledgique/ledgique/pkg/db/pagination"
)

type CreatePaymentRequest struct {
	ClientID    string
	ProjectID   *snowflake.ID
	InvoiceID   *snowflake.ID
	Amount      float64
	Method      PaymentMethod
	Status      PaymentStatus
	Type        PaymentType
	Date        *time.Time
	Description string
}

type UpdatePaymentRequest struct {
	Amount      *float64
	Method      *PaymentMethod
	Status      *PaymentStatus
	Type        *PaymentType
	Date        *time.Time
	Description *string
}

type ListPaymentRequest struct {
	pagination.Params
	ClientID  *snowflake.ID
	ProjectID *snowflake.ID
	Status    PaymentStatus
	Method    PaymentMethod
	From      *time.Time
	To        *time.Time
}

type Service interface {
	Create(ctx context.Context, tenantID snowflake.ID, req CreatePaymentRequest) (Payment, error)
	List(ctx context.Context, tenantID snowflake.ID, req ListPaymentRequest) (pagination.Page[Payment], error)
	GetByID(ctx context.Context, tenantID snowflake.ID, id string) (Payment, error)
	Update(ctx context.Context, tenantID snowflake.ID, id string, req UpdatePaymentRequest) (Payment, error)
	Delete(ctx context.Context, tenantID snowflake.ID, id string) error
}

var (
	ErrInvalidClient  = errors.New("invalid_client")
	ErrInvalidProject = errors.New("invalid_project")
	ErrInvalidAmount  = errors.New("invalid_amount")
	ErrInvalidMethod  = errors.New("invalid_method")
	ErrInvalidStatus  = errors.New("invalid_status")
	ErrInvalidType    = errors.New("invalid_type")
	ErrInvalidID      = errors.New("invalid_id")
	ErrNotFound       = errors.New("not_found")
)
