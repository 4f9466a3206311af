package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/ledgique/ledgique/internal/expense/domain"
	"github.com/ledgique/ledgique/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, expense *domain.Expense) error {
	return db.WithContext(ctx).Create(expense).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) (*domain.Expense, error) {
	var expense domain.Expense
	err := db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&expense).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &expense, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, filter domain.ListExpenseFilter, page pagination.Params) ([]domain.Expense, int64, error) {
	query := db.WithContext(ctx).
		Model(&domain.Expense{}).
		Where("tenant_id = ?", tenantID)

	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date < ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var expenses []domain.Expense
	err := query.
		Order("date desc, id desc").
		Scopes(page.Scope()).
		Find(&expenses).Error
	if err != nil {
		return nil, 0, err
	}
	return expenses, total, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, expense *domain.Expense) error {
	return db.WithContext(ctx).Save(expense).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&domain.Expense{}).Error
}

func (r *repo) ProjectExists(ctx context.Context, db *gorm.DB, tenantID, projectID snowflake.ID) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Table("projects").
		Where("tenant_id = ? AND id = ?", tenantID, projectID).
		Count(&count).Error
	return count > 0, err
}

func (r *repo) ClientExists(ctx context.Context, db *gorm.DB, tenantID, clientID snowflake.ID) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Table("clients").
		Where("tenant_id = ? AND id = ?", tenantID, clientID).
		Count(&count).Error
	return count > 0, err
}
