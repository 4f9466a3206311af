// Package domain contains persistence models for notes and tasks.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type NoteType string

const (
	NoteTypeGeneral  NoteType = "GENERAL"
	NoteTypeMeeting  NoteType = "MEETING"
	NoteTypeCall     NoteType = "CALL"
	NoteTypeTask     NoteType = "TASK"
	NoteTypeReminder NoteType = "REMINDER"
)

type NotePriority string

const (
	NotePriorityLow    NotePriority = "LOW"
	NotePriorityMedium NotePriority = "MEDIUM"
	NotePriorityHigh   NotePriority = "HIGH"
)

type NoteStatus string

const (
	NoteStatusActive    NoteStatus = "ACTIVE"
	NoteStatusCompleted NoteStatus = "COMPLETED"
	NoteStatusArchived  NoteStatus = "ARCHIVED"
)

// Note is a free-form note, task, or reminder, optionally attached to
// a client or project.
type Note struct {
	ID          snowflake.ID                `gorm:"primaryKey" json:"id"`
	TenantID    snowflake.ID                `gorm:"not null;index" json:"tenant_id"`
	ClientID    *snowflake.ID               `gorm:"index" json:"client_id,omitempty"`
	ProjectID   *snowflake.ID               `gorm:"index" json:"project_id,omitempty"`
	Title       string                      `gorm:"not null" json:"title"`
	Content     string                      `json:"content,omitempty"`
	Type        NoteType                    `gorm:"type:text;not null;default:'GENERAL'" json:"type"`
	Priority    NotePriority                `gorm:"type:text;not null;default:'MEDIUM'" json:"priority"`
	Status      NoteStatus                  `gorm:"type:text;not null;default:'ACTIVE'" json:"status"`
	Tags        datatypes.JSONSlice[string] `gorm:"not null;default:'[]'" json:"tags"`
	DueDate     *time.Time                  `json:"due_date,omitempty"`
	CompletedAt *time.Time                  `json:"completed_at,omitempty"`
	CreatedAt   time.Time                   `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time                   `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Note) TableName() string { return "notes" }

func ValidType(noteType NoteType) bool {
	switch noteType {
	case NoteTypeGeneral, NoteTypeMeeting, NoteTypeCall, NoteTypeTask, NoteTypeReminder:
		return true
	default:
		return false
	}
}

func ValidPriority(priority NotePriority) bool {
	switch priority {
	case NotePriorityLow, NotePriorityMedium, NotePriorityHigh:
		return true
	default:
		return false
	}
}

func ValidStatus(status NoteStatus) bool {
	switch status {
	case NoteStatusActive, NoteStatusCompleted, NoteStatusArchived:
		return true
	default:
		return false
	}
}
