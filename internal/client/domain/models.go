// Package domain contains persistence models for client relationship tracking.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// ClientStatus represents client lifecycle states.
type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "ACTIVE"
	ClientStatusInactive ClientStatus = "INACTIVE"
	ClientStatusArchived ClientStatus = "ARCHIVED"
)

// Client is a tracked customer relationship.
type Client struct {
	ID        snowflake.ID                `gorm:"primaryKey" json:"id"`
	TenantID  snowflake.ID                `gorm:"not null;index" json:"tenant_id"`
	Name      string                      `gorm:"not null" json:"name"`
	Company   string                      `json:"company,omitempty"`
	Emails    datatypes.JSONSlice[string] `gorm:"not null;default:'[]'" json:"emails"`
	Phones    datatypes.JSONSlice[string] `gorm:"not null;default:'[]'" json:"phones"`
	Status    ClientStatus                `gorm:"type:text;not null;default:'ACTIVE'" json:"status"`
	SourceID  *snowflake.ID               `gorm:"index" json:"source_id,omitempty"`
	CreatedAt time.Time                   `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time                   `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Client) TableName() string { return "clients" }

// ClientSource is a per-tenant acquisition source taxonomy entry.
// Slugs are unique within a tenant.
type ClientSource struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	TenantID  snowflake.ID `gorm:"not null;index;uniqueIndex:idx_client_sources_tenant_slug" json:"tenant_id"`
	Name      string       `gorm:"not null" json:"name"`
	Slug      string       `gorm:"not null;uniqueIndex:idx_client_sources_tenant_slug" json:"slug"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (ClientSource) TableName() string { return "client_sources" }

// ValidStatus reports whether the value is a known client status.
func ValidStatus(status ClientStatus) bool {
	switch status {
	case ClientStatusActive, ClientStatusInactive, ClientStatusArchived:
		return true
	default:
		return false
	}
}
