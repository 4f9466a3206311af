// Package domain contains persistence models for project management.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// ProjectStatus represents project lifecycle states.
type ProjectStatus string

const (
	ProjectStatusPending    ProjectStatus = "PENDING"
	ProjectStatusInProgress ProjectStatus = "IN_PROGRESS"
	ProjectStatusCompleted  ProjectStatus = "COMPLETED"
	ProjectStatusOnHold     ProjectStatus = "ON_HOLD"
	ProjectStatusCancelled  ProjectStatus = "CANCELLED"
)

// ProjectPriority orders projects by urgency.
type ProjectPriority string

const (
	ProjectPriorityLow    ProjectPriority = "LOW"
	ProjectPriorityMedium ProjectPriority = "MEDIUM"
	ProjectPriorityHigh   ProjectPriority = "HIGH"
)

// Project is a unit of client work owning payments and expenses.
type Project struct {
	ID           snowflake.ID                `gorm:"primaryKey" json:"id"`
	TenantID     snowflake.ID                `gorm:"not null;index" json:"tenant_id"`
	ClientID     snowflake.ID                `gorm:"not null;index" json:"client_id"`
	Name         string                      `gorm:"not null" json:"name"`
	Description  string                      `json:"description,omitempty"`
	Status       ProjectStatus               `gorm:"type:text;not null;default:'PENDING'" json:"status"`
	Priority     ProjectPriority             `gorm:"type:text;not null;default:'MEDIUM'" json:"priority"`
	Budget       *float64                    `json:"budget,omitempty"`
	StartDate    *time.Time                  `json:"start_date,omitempty"`
	EndDate      *time.Time                  `json:"end_date,omitempty"`
	Tags         datatypes.JSONSlice[string] `gorm:"not null;default:'[]'" json:"tags"`
	Deliverables datatypes.JSONSlice[string] `gorm:"not null;default:'[]'" json:"deliverables"`
	CreatedAt    time.Time                   `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time                   `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Project) TableName() string { return "projects" }

// ValidStatus reports whether the value is a known project status.
func ValidStatus(status ProjectStatus) bool {
	switch status {
	case ProjectStatusPending, ProjectStatusInProgress, ProjectStatusCompleted,
		ProjectStatusOnHold, ProjectStatusCancelled:
		return true
	default:
		return false
	}
}

// ValidPriority reports whether the value is a known project priority.
func ValidPriority(priority ProjectPriority) bool {
	switch priority {
	case ProjectPriorityLow, ProjectPriorityMedium, ProjectPriorityHigh:
		return true
	default:
		return false
	}
}
