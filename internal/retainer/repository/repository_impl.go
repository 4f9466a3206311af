package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/ledgique/ledgique/internal/retainer/domain"
	"github.com/ledgique/ledgique/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, retainer *domain.Retainer) error {
	return db.WithContext(ctx).Create(retainer).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) (*domain.Retainer, error) {
	var retainer domain.Retainer
	err := db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&retainer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &retainer, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, filter domain.ListRetainerFilter, page pagination.Params) ([]domain.Retainer, int64, error) {
	query := db.WithContext(ctx).
		Model(&domain.Retainer{}).
		Where("tenant_id = ?", tenantID)

	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var retainers []domain.Retainer
	err := query.
		Order("created_at desc, id desc").
		Scopes(page.Scope()).
		Find(&retainers).Error
	if err != nil {
		return nil, 0, err
	}
	return retainers, total, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, retainer *domain.Retainer) error {
	return db.WithContext(ctx).Save(retainer).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) error {
	if err := db.WithContext(ctx).
		Where("retainer_id = ?", id).
		Delete(&domain.RetainerUsage{}).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&domain.Retainer{}).Error
}

func (r *repo) InsertUsage(ctx context.Context, db *gorm.DB, usage *domain.RetainerUsage) error {
	return db.WithContext(ctx).Create(usage).Error
}

func (r *repo) ListUsage(ctx context.Context, db *gorm.DB, retainerID snowflake.ID) ([]domain.RetainerUsage, error) {
	var usages []domain.RetainerUsage
	err := db.WithContext(ctx).
		Where("retainer_id = ?", retainerID).
		Order("used_at desc, id desc").
		Find(&usages).Error
	return usages, err
}

func (r *repo) ClientExists(ctx context.Context, db *gorm.DB, tenantID, clientID snowflake.ID) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Table("clients").
		Where("tenant_id = ? AND id = ?", tenantID, clientID).
		Count(&count).Error
	return count > 0, err
}
