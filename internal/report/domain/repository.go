package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/ledgique/ledgique/internal/client/domain"
	expensedomain "github.com/ledgique/ledgique/internal/expense/domain"
	invoicedomain "github.com/ledgique/ledgique/internal/invoice/domain"
	paymentdomain "github.com/ledgique/ledgique/internal/payment/domain"
	projectdomain "github.com/ledgique/ledgique/internal/project/domain"
	"gorm.io/gorm"
)

// Repository fetches tenant-scoped collections for the composers. Date
// ranges are half-open [from, to).
type Repository interface {
	Clients(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) ([]clientdomain.Client, error)
	Projects(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) ([]projectdomain.Project, error)
	Payments(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, from, to time.Time) ([]paymentdomain.Payment, error)
	Expenses(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, from, to time.Time) ([]expensedomain.Expense, error)
	CountOverdueInvoices(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, asOf time.Time) (int64, error)
	CountInvoicesByStatus(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, status invoicedomain.InvoiceStatus) (int64, error)
}
