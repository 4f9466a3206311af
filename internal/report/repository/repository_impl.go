package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/ledgique/ledgique/internal/client/domain"
	expensedomain "github.com/ledgique/ledgique/internal/expense/domain"
	invoicedomain "github.com/ledgique/ledgique/internal/invoice/domain"
	paymentdomain "github.com/ledgique/ledgique/internal/payment/domain"
	projectdomain "github.com/ledgique/ledgique/internal/project/domain"
	"github.com/ledgique/ledgique/internal/report/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Clients(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) ([]clientdomain.Client, error) {
	var clients []clientdomain.Client
	err := db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Find(&clients).Error
	return clients, err
}

func (r *repo) Projects(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) ([]projectdomain.Project, error) {
	var projects []projectdomain.Project
	err := db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Find(&projects).Error
	return projects, err
}

func (r *repo) Payments(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, from, to time.Time) ([]paymentdomain.Payment, error) {
	var payments []paymentdomain.Payment
	err := db.WithContext(ctx).
		Where("tenant_id = ? AND date >= ? AND date < ?", tenantID, from, to).
		Find(&payments).Error
	return payments, err
}

func (r *repo) Expenses(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, from, to time.Time) ([]expensedomain.Expense, error) {
	var expenses []expensedomain.Expense
	err := db.WithContext(ctx).
		Where("tenant_id = ? AND date >= ? AND date < ?", tenantID, from, to).
		Find(&expenses).Error
	return expenses, err
}

func (r *repo) CountOverdueInvoices(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, asOf time.Time) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&invoicedomain.Invoice{}).
		Where("tenant_id = ? AND status IN ? AND due_date < ?",
			tenantID,
			[]invoicedomain.InvoiceStatus{invoicedomain.InvoiceStatusSent, invoicedomain.InvoiceStatusOverdue},
			asOf,
		).
		Count(&count).Error
	return count, err
}

func (r *repo) CountInvoicesByStatus(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, status invoicedomain.InvoiceStatus) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&invoicedomain.Invoice{}).
		Where("tenant_id = ? AND status = ?", tenantID, status).
		Count(&count).Error
	return count, err
}
