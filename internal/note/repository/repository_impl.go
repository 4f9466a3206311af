package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/ledgique/ledgique/internal/note/domain"
	"github.com/ledgique/ledgique/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, note *domain.Note) error {
	return db.WithContext(ctx).Create(note).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) (*domain.Note, error) {
	var note domain.Note
	err := db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&note).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &note, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, filter domain.ListNoteFilter, page pagination.Params) ([]domain.Note, int64, error) {
	query := db.WithContext(ctx).
		Model(&domain.Note{}).
		Where("tenant_id = ?", tenantID)

	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notes []domain.Note
	err := query.
		Order("created_at desc, id desc").
		Scopes(page.Scope()).
		Find(&notes).Error
	if err != nil {
		return nil, 0, err
	}
	return notes, total, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, note *domain.Note) error {
	return db.WithContext(ctx).Save(note).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&domain.Note{}).Error
}

func (r *repo) ClientExists(ctx context.Context, db *gorm.DB, tenantID, clientID snowflake.ID) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Table("clients").
		Where("tenant_id = ? AND id = ?", tenantID, clientID).
		Count(&count).Error
	return count > 0, err
}

// ProjectClientID returns the owning client of a project, nil when
// the project does not exist in the tenant.
func (r *repo) ProjectClientID(ctx context.Context, db *gorm.DB, tenantID, projectID snowflake.ID) (*snowflake.ID, error) {
	var clientIDs []snowflake.ID
	err := db.WithContext(ctx).
		Table("projects").
		Where("tenant_id = ? AND id = ?", tenantID, projectID).
		Limit(1).
		Pluck("client_id", &clientIDs).Error
	if err != nil {
		return nil, err
	}
	if len(clientIDs) == 0 {
		return nil, nil
	}
	return &clientIDs[0], nil
}
