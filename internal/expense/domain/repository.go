package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/ledgique/ledgique/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListExpenseFilter struct {
	ClientID  *snowflake.ID
	ProjectID *snowflake.ID
	Category  ExpenseCategory
	From      *time.Time
	To        *time.Time
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, expense *Expense) error
	FindByID(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) (*Expense, error)
	List(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, filter ListExpenseFilter, page pagination.Params) ([]Expense, int64, error)
	Update(ctx context.Context, db *gorm.DB, expense *Expense) error
	Delete(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) error
	ProjectExists(ctx context.Context, db *gorm.DB, tenantID, projectID snowflake.ID) (bool, error)
	ClientExists(ctx context.Context, db *gorm.DB, tenantID, clientID snowflake.ID) (bool, error)
}
