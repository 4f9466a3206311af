package repository

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/ledgique/ledgique/internal/client/domain"
	"github.com/ledgique/ledgique/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, client *domain.Client) error {
	return db.WithContext(ctx).Create(client).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) (*domain.Client, error) {
	var client domain.Client
	err := db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&client).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, filter domain.ListClientFilter, page pagination.Params) ([]domain.Client, int64, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.Client{}).
		Where("tenant_id = ?", tenantID)
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if filter.SourceID != nil {
		stmt = stmt.Where("source_id = ?", *filter.SourceID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		stmt = stmt.Where("LOWER(name) LIKE ? OR LOWER(company) LIKE ?", like, like)
	}

	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var clients []domain.Client
	err := stmt.
		Scopes(page.Scope()).
		Order("created_at desc, id desc").
		Find(&clients).Error
	if err != nil {
		return nil, 0, err
	}
	return clients, total, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, client *domain.Client) error {
	return db.WithContext(ctx).Save(client).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&domain.Client{}).Error
}

func (r *repo) CountProjects(ctx context.Context, db *gorm.DB, tenantID, clientID snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Table("projects").
		Where("tenant_id = ? AND client_id = ?", tenantID, clientID).
		Count(&count).Error
	return count, err
}

func (r *repo) InsertSource(ctx context.Context, db *gorm.DB, source *domain.ClientSource) error {
	return db.WithContext(ctx).Create(source).Error
}

func (r *repo) FindSourceByID(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) (*domain.ClientSource, error) {
	var source domain.ClientSource
	err := db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&source).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &source, nil
}

func (r *repo) ListSources(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) ([]domain.ClientSource, error) {
	var sources []domain.ClientSource
	err := db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("name asc").
		Find(&sources).Error
	if err != nil {
		return nil, err
	}
	return sources, nil
}

func (r *repo) DeleteSource(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&domain.ClientSource{}).Error
}
