// Package domain contains persistence models for client retainers.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type RetainerStatus string

const (
	RetainerStatusActive    RetainerStatus = "ACTIVE"
	RetainerStatusExhausted RetainerStatus = "EXHAUSTED"
	RetainerStatusExpired   RetainerStatus = "EXPIRED"
	RetainerStatusCancelled RetainerStatus = "CANCELLED"
)

// Retainer is a prepaid budget a client draws down over time.
type Retainer struct {
	ID              snowflake.ID   `gorm:"primaryKey" json:"id"`
	TenantID        snowflake.ID   `gorm:"not null;index" json:"tenant_id"`
	ClientID        snowflake.ID   `gorm:"not null;index" json:"client_id"`
	ProjectID       *snowflake.ID  `gorm:"index" json:"project_id,omitempty"`
	Name            string         `gorm:"not null" json:"name"`
	Amount          float64        `gorm:"not null" json:"amount"`
	RemainingAmount float64        `gorm:"not null" json:"remaining_amount"`
	HourlyRate      *float64       `json:"hourly_rate,omitempty"`
	Status          RetainerStatus `gorm:"type:text;not null;default:'ACTIVE'" json:"status"`
	StartDate       time.Time      `gorm:"not null" json:"start_date"`
	EndDate         *time.Time     `json:"end_date,omitempty"`
	CreatedAt       time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Retainer) TableName() string { return "retainers" }

// RetainerUsage is a single draw against a retainer.
type RetainerUsage struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	RetainerID  snowflake.ID `gorm:"not null;index" json:"retainer_id"`
	Amount      float64      `gorm:"not null" json:"amount"`
	Description string       `json:"description,omitempty"`
	UsedAt      time.Time    `gorm:"not null" json:"used_at"`
}

func (RetainerUsage) TableName() string { return "retainer_usages" }

func ValidStatus(status RetainerStatus) bool {
	switch status {
	case RetainerStatusActive, RetainerStatusExhausted, RetainerStatusExpired, RetainerStatusCancelled:
		return true
	default:
		return false
	}
}
