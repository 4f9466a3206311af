package repository

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/ledgique/ledgique/internal/identity/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, account *domain.Account) error {
	return db.WithContext(ctx).Create(account).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Account, error) {
	var account domain.Account
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&account).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *repo) FindByExternalID(ctx context.Context, db *gorm.DB, externalID string) (*domain.Account, error) {
	var account domain.Account
	err := db.WithContext(ctx).
		Where("external_id = ?", strings.TrimSpace(externalID)).
		First(&account).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, account *domain.Account) error {
	return db.WithContext(ctx).Save(account).Error
}

func (r *repo) DeleteByExternalID(ctx context.Context, db *gorm.DB, externalID string) error {
	return db.WithContext(ctx).
		Where("external_id = ?", strings.TrimSpace(externalID)).
		Delete(&domain.Account{}).Error
}
