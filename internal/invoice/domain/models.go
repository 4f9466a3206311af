// Package domain contains persistence models for invoicing.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "DRAFT"
	InvoiceStatusSent      InvoiceStatus = "SENT"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusOverdue   InvoiceStatus = "OVERDUE"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

// Invoice is a bill issued to a client. Monetary totals are derived
// from the line items plus tax and discount and are never accepted
// from the caller directly.
type Invoice struct {
	ID            snowflake.ID  `gorm:"primaryKey" json:"id"`
	TenantID      snowflake.ID  `gorm:"not null;index;uniqueIndex:idx_invoice_number_tenant" json:"tenant_id"`
	ClientID      snowflake.ID  `gorm:"not null;index" json:"client_id"`
	ProjectID     *snowflake.ID `gorm:"index" json:"project_id,omitempty"`
	InvoiceNumber string        `gorm:"not null;uniqueIndex:idx_invoice_number_tenant" json:"invoice_number"`
	Status        InvoiceStatus `gorm:"type:text;not null;default:'DRAFT'" json:"status"`
	IssueDate     time.Time     `gorm:"not null" json:"issue_date"`
	DueDate       time.Time     `gorm:"not null;index" json:"due_date"`
	Subtotal      float64       `gorm:"not null" json:"subtotal"`
	TaxRate       float64       `gorm:"not null" json:"tax_rate"`
	TaxAmount     float64       `gorm:"not null" json:"tax_amount"`
	Discount      float64       `gorm:"not null" json:"discount"`
	Total         float64       `gorm:"not null" json:"total"`
	Notes         string        `json:"notes,omitempty"`
	Items         []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items"`
	PaidAt        *time.Time    `json:"paid_at,omitempty"`
	CreatedAt     time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Invoice) TableName() string { return "invoices" }

// InvoiceItem is a single billable line on an invoice.
type InvoiceItem struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	InvoiceID   snowflake.ID `gorm:"not null;index" json:"invoice_id"`
	Description string       `gorm:"not null" json:"description"`
	Quantity    float64      `gorm:"not null" json:"quantity"`
	UnitPrice   float64      `gorm:"not null" json:"unit_price"`
	Amount      float64      `gorm:"not null" json:"amount"`
}

func (InvoiceItem) TableName() string { return "invoice_items" }

// InvoiceCounter backs sequential invoice numbering. One row per
// tenant per calendar year, bumped inside the issuing transaction.
type InvoiceCounter struct {
	TenantID snowflake.ID `gorm:"primaryKey" json:"tenant_id"`
	Year     int          `gorm:"primaryKey" json:"year"`
	Counter  int          `gorm:"not null;default:0" json:"counter"`
}

func (InvoiceCounter) TableName() string { return "invoice_counters" }

func ValidStatus(status InvoiceStatus) bool {
	switch status {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid,
		InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	default:
		return false
	}
}
