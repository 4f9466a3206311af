// Package domain contains persistence models for business expenses.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type ExpenseCategory string

const (
	ExpenseCategorySoftware    ExpenseCategory = "SOFTWARE"
	ExpenseCategoryHardware    ExpenseCategory = "HARDWARE"
	ExpenseCategoryTravel      ExpenseCategory = "TRAVEL"
	ExpenseCategoryMarketing   ExpenseCategory = "MARKETING"
	ExpenseCategoryOffice      ExpenseCategory = "OFFICE"
	ExpenseCategoryContractors ExpenseCategory = "CONTRACTORS"
	ExpenseCategoryEducation   ExpenseCategory = "EDUCATION"
	ExpenseCategoryOther       ExpenseCategory = "OTHER"
)

// Expense records money spent, optionally attributed to a client or project.
type Expense struct {
	ID          snowflake.ID    `gorm:"primaryKey" json:"id"`
	TenantID    snowflake.ID    `gorm:"not null;index" json:"tenant_id"`
	ClientID    *snowflake.ID   `gorm:"index" json:"client_id,omitempty"`
	ProjectID   *snowflake.ID   `gorm:"index" json:"project_id,omitempty"`
	Description string          `gorm:"not null" json:"description"`
	Amount      float64         `gorm:"not null" json:"amount"`
	Category    ExpenseCategory `gorm:"type:text;not null" json:"category"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	ReceiptRef  string          `gorm:"index" json:"receipt_ref,omitempty"`
	CreatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Expense) TableName() string { return "expenses" }

func ValidCategory(category ExpenseCategory) bool {
	switch category {
	case ExpenseCategorySoftware, ExpenseCategoryHardware, ExpenseCategoryTravel,
		ExpenseCategoryMarketing, ExpenseCategoryOffice, ExpenseCategoryContractors,
		ExpenseCategoryEducation, ExpenseCategoryOther:
		return true
	default:
		return false
	}
}
