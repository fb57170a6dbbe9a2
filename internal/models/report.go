package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ReportStatusPending  = "pending"
	ReportStatusResolved = "resolved"
	ReportStatusRejected = "rejected"
)

const (
	ReportReasonInappropriate = "inappropriate_content"
	ReportReasonSpam          = "spam"
	ReportReasonHarassment    = "harassment"
	ReportReasonOther         = "other"
)

func ValidReportStatus(s string) bool {
	switch s {
	case ReportStatusPending, ReportStatusResolved, ReportStatusRejected:
		return true
	}
	return false
}

func ValidReportReason(s string) bool {
	switch s {
	case ReportReasonInappropriate, ReportReasonSpam, ReportReasonHarassment, ReportReasonOther:
		return true
	}
	return false
}

// Report references exactly one of RecipeID/CommentID.
type Report struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	ReporterID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"reporter_id"`
	RecipeID       *uint      `gorm:"index" json:"recipe_id,omitempty"`
	CommentID      *uint      `gorm:"index" json:"comment_id,omitempty"`
	Reason         string     `gorm:"not null;size:50" json:"reason"`
	Description    string     `gorm:"type:text;not null" json:"description"`
	Status         string     `gorm:"not null;default:'pending';size:20;index" json:"status"`
	ResolvedBy     *uuid.UUID `gorm:"type:uuid" json:"resolved_by,omitempty"`
	ResolutionNote string     `gorm:"type:text" json:"resolution_note,omitempty"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	Reporter       User       `gorm:"foreignKey:ReporterID" json:"-"`
}
