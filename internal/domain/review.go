package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// ReviewStatus represents the moderation state of a pending review.
// Approved and rejected are terminal.
type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

// Terminal reports whether s admits no further transitions.
func (s ReviewStatus) Terminal() bool {
	return s == ReviewStatusApproved || s == ReviewStatusRejected
}

// ReviewType represents the kind of content held in a pending review.
type ReviewType string

const (
	ReviewTypeVideo ReviewType = "video"
	ReviewTypeTool  ReviewType = "tool"
)

// Review sources.
const (
	ReviewSourceManual    = "manual"
	ReviewSourceDiscovery = "discovery"
)

// ReviewPayload stores an AnalysisBundle as JSON in a text column.
type ReviewPayload struct {
	AnalysisBundle
}

// Value implements the driver.Valuer interface for database serialization.
func (p ReviewPayload) Value() (driver.Value, error) {
	b, err := json.Marshal(p.AnalysisBundle)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for database deserialization.
func (p *ReviewPayload) Scan(value interface{}) error {
	if value == nil {
		*p = ReviewPayload{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("failed to scan ReviewPayload")
		}
		bytes = []byte(str)
	}
	return json.Unmarshal(bytes, &p.AnalysisBundle)
}

// PendingReview is a staged content bundle awaiting human moderation.
// RawData is replaced wholesale by edits while pending; on approval it is
// overwritten with the payload that was actually persisted.
type PendingReview struct {
	ID         string        `gorm:"type:text;primaryKey" json:"id"`
	Type       ReviewType    `gorm:"type:text;not null;index:idx_pending_reviews_type" json:"type"`
	Status     ReviewStatus  `gorm:"type:text;index:idx_pending_reviews_status;default:pending" json:"status"`
	Source     string        `gorm:"type:text;default:manual" json:"source"`
	RawData    ReviewPayload `gorm:"column:raw_data;type:text" json:"raw_data"`
	AdminNotes string        `gorm:"type:text" json:"admin_notes,omitempty"`
	ReviewedBy string        `gorm:"type:text" json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time    `json:"reviewed_at,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// TableName returns the database table name for PendingReview.
func (PendingReview) TableName() string {
	return "pending_reviews"
}
