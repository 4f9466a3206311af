package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/ledgique/ledgique/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListPaymentFilter struct {
	ClientID  *snowflake.ID
	ProjectID *snowflake.ID
	Status    PaymentStatus
	Method    PaymentMethod
	From      *time.Time
	To        *time.Time
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, payment *Payment) error
	FindByID(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) (*Payment, error)
	List(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, filter ListPaymentFilter, page pagination.Params) ([]Payment, int64, error)
	Update(ctx context.Context, db *gorm.DB, payment *Payment) error
	Delete(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) error
	ClientExists(ctx context.Context, db *gorm.DB, tenantID, clientID snowflake.ID) (bool, error)
	ProjectExists(ctx context.Context, db *gorm.DB, tenantID, projectID snowflake.ID) (bool, error)
}
