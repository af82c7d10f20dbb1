package submission

import (
	"time"

	"gorm.io/datatypes"
)

type SubmissionStatus string

const (
	StatusPending  SubmissionStatus = "pending"
	StatusApproved SubmissionStatus = "approved"
	StatusRejected SubmissionStatus = "rejected"
)

// Submission is one completed form fill. Status transitions exactly once,
// pending -> approved or pending -> rejected, and exactly one of ApprovedBy
// and RejectedBy is ever set. Rows are never deleted; they are the audit
// trail of consumed cycles.
type Submission struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	Reference   string           `json:"reference" gorm:"size:36;uniqueIndex"`
	FormID      uint             `json:"form_id" gorm:"index"`
	AgentID     uint             `json:"agent_id" gorm:"index"`
	CycleLogID  uint             `json:"cycle_log_id" gorm:"index"`
	CycleNumber int              `json:"cycle_number"`
	Payload     datatypes.JSON   `json:"payload"`
	SubmittedBy uint             `json:"submitted_by"`
	Latitude    *float64         `json:"latitude"`
	Longitude   *float64         `json:"longitude"`
	Status      SubmissionStatus `json:"status" gorm:"default:'pending';index"`

	ApprovedBy      *uint      `json:"approved_by"`
	RejectedBy      *uint      `json:"rejected_by"`
	ReviewedAt      *time.Time `json:"reviewed_at"`
	ReviewNotes     string     `json:"review_notes"`
	RejectionReason string     `json:"rejection_reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
