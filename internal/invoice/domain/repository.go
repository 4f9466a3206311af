package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/ledgique/ledgique/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListInvoiceFilter struct {
	ClientID  *snowflake.ID
	ProjectID *snowflake.ID
	Status    InvoiceStatus
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	FindByID(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) (*Invoice, error)
	List(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, filter ListInvoiceFilter, page pagination.Params) ([]Invoice, int64, error)
	Update(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	ReplaceItems(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID, items []InvoiceItem) error
	Delete(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) error
	NextInvoiceNumber(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, year int) (int, error)
	ClientExists(ctx context.Context, db *gorm.DB, tenantID, clientID snowflake.ID) (bool, error)
	ProjectExists(ctx context.Context, db *gorm.DB, tenantID, projectID snowflake.ID) (bool, error)
}
