// Package domain contains persistence models for incoming payments.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCreditCard   PaymentMethod = "CREDIT_CARD"
	PaymentMethodPaypal       PaymentMethod = "PAYPAL"
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodCheck        PaymentMethod = "CHECK"
	PaymentMethodOther        PaymentMethod = "OTHER"
)

type PaymentStatus string

const (
	PaymentStatusPending       PaymentStatus = "PENDING"
	PaymentStatusCompleted     PaymentStatus = "COMPLETED"
	PaymentStatusPartiallyPaid PaymentStatus = "PARTIALLY_PAID"
	PaymentStatusFailed        PaymentStatus = "FAILED"
)

type PaymentType string

const (
	PaymentTypeFull      PaymentType = "FULL"
	PaymentTypePartial   PaymentType = "PARTIAL"
	PaymentTypeAdvance   PaymentType = "ADVANCE"
	PaymentTypeMilestone PaymentType = "MILESTONE"
)

// Payment records money received from a client, optionally settling an
// invoice.
type Payment struct {
	ID          snowflake.ID  `gorm:"primaryKey" json:"id"`
	TenantID    snowflake.ID  `gorm:"not null;index" json:"tenant_id"`
	ClientID    snowflake.ID  `gorm:"not null;index" json:"client_id"`
	ProjectID   *snowflake.ID `gorm:"index" json:"project_id,omitempty"`
	InvoiceID   *snowflake.ID `gorm:"index" json:"invoice_id,omitempty"`
	Amount      float64       `gorm:"not null" json:"amount"`
	Method      PaymentMethod `gorm:"type:text;not null" json:"method"`
	Status      PaymentStatus `gorm:"type:text;not null;default:'PENDING'" json:"status"`
	Type        PaymentType   `gorm:"type:text;not null;default:'FULL'" json:"type"`
	Date        time.Time     `gorm:"not null;index" json:"date"`
	Description string        `json:"description,omitempty"`
	CreatedAt   time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Payment) TableName() string { return "payments" }

func ValidMethod(method PaymentMethod) bool {
	switch method {
	case PaymentMethodBankTransfer, PaymentMethodCreditCard, PaymentMethodPaypal,
		PaymentMethodCash, PaymentMethodCheck, PaymentMethodOther:
		return true
	default:
		return false
	}
}

func ValidStatus(status PaymentStatus) bool {
	switch status {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusPartiallyPaid, PaymentStatusFailed:
		return true
	default:
		return false
	}
}

func ValidType(paymentType PaymentType) bool {
	switch paymentType {
	case PaymentTypeFull, PaymentTypePartial, PaymentTypeAdvance, PaymentTypeMilestone:
		return true
	default:
		return false
	}
}
