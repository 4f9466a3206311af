package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/ledgique/ledgique/pkg/db/pagination"
)

type InvoiceItemRequest struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type CreateInvoiceRequest struct {
	ClientID  string
	ProjectID *snowflake.ID
	IssueDate *time.Time
	DueDate   *time.Time
	TaxRate   float64
	Discount  float64
	Notes     string
	Items     []InvoiceItemRequest
}

type UpdateInvoiceRequest struct {
	Status   *InvoiceStatus
	DueDate  *time.Time
	TaxRate  *float64
	Discount *float64
	Notes    *string
	Items    []InvoiceItemRequest
}

type ListInvoiceRequest struct {
	pagination.Params
	ClientID  *snowflake.ID
	ProjectID *snowflake.ID
	Status    InvoiceStatus
}

type Service interface {
	Create(ctx context.Context, tenantID snowflake.ID, req CreateInvoiceRequest) (Invoice, error)
	List(ctx context.Context, tenantID snowflake.ID, req ListInvoiceRequest) (pagination.Page[Invoice], error)
	GetByID(ctx context.Context, tenantID snowflake.ID, id string) (Invoice, error)
	Update(ctx context.Context, tenantID snowflake.ID, id string, req UpdateInvoiceRequest) (Invoice, error)
	Delete(ctx context.Context, tenantID snowflake.ID, id string) error
	MarkPaid(ctx context.Context, tenantID snowflake.ID, id string) (Invoice, error)
}

var (
	ErrInvalidClient   = errors.New("invalid_client")
	ErrInvalidProject  = errors.New("invalid_project")
	ErrInvalidStatus   = errors.New("invalid_status")
	ErrInvalidItems    = errors.New("invalid_items")
	ErrInvalidTaxRate  = errors.New("invalid_tax_rate")
	ErrInvalidDiscount = errors.New("invalid_discount")
	ErrInvalidID       = errors.New("invalid_id")
	ErrNotFound        = errors.New("not_found")
	ErrAlreadyPaid     = errors.New("already_paid")
	ErrNotEditable     = errors.New("not_editable")
)
