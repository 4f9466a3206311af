package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/ledgique/ledgique/internal/invoice/domain"
	"github.com/ledgique/ledgique/pkg/db/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	return db.WithContext(ctx).Create(invoice).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, filter domain.ListInvoiceFilter, page pagination.Params) ([]domain.Invoice, int64, error) {
	query := db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("tenant_id = ?", tenantID)

	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var invoices []domain.Invoice
	err := query.
		Preload("Items").
		Order("issue_date desc, id desc").
		Scopes(page.Scope()).
		Find(&invoices).Error
	if err != nil {
		return nil, 0, err
	}
	return invoices, total, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	return db.WithContext(ctx).Omit("Items").Save(invoice).Error
}

// ReplaceItems swaps the full line item set of an invoice.
func (r *repo) ReplaceItems(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID, items []domain.InvoiceItem) error {
	if err := db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Delete(&domain.InvoiceItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&items).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) error {
	if err := db.WithContext(ctx).
		Where("invoice_id = ?", id).
		Delete(&domain.InvoiceItem{}).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&domain.Invoice{}).Error
}

// NextInvoiceNumber bumps the per tenant per year counter and returns
// the new value. Callers run this inside the issuing transaction so a
// failed insert rolls the counter back.
func (r *repo) NextInvoiceNumber(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, year int) (int, error) {
	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "tenant_id"}, {Name: "year"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"counter": gorm.Expr("invoice_counters.counter + 1"),
			}),
		}).
		Create(&domain.InvoiceCounter{TenantID: tenantID, Year: year, Counter: 1}).Error
	if err != nil {
		return 0, err
	}

	var counter domain.InvoiceCounter
	err = db.WithContext(ctx).
		Where("tenant_id = ? AND year = ?", tenantID, year).
		First(&counter).Error
	if err != nil {
		return 0, err
	}
	return counter.Counter, nil
}

func (r *repo) ClientExists(ctx context.Context, db *gorm.DB, tenantID, clientID snowflake.ID) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Table("clients").
		Where("tenant_id = ? AND id = ?", tenantID, clientID).
		Count(&count).Error
	return count > 0, err
}

func (r *repo) ProjectExists(ctx context.Context, db *gorm.DB, tenantID, projectID snowflake.ID) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Table("projects").
		Where("tenant_id = ? AND id = ?", tenantID, projectID).
		Count(&count).Error
	return count > 0, err
}
