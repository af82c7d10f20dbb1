package audit

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog records every state transition the engine performs (submissions,
// reviews, freezes) plus admin edits. Writes are fire-and-forget: a failed
// audit insert never rolls back the transition it describes.
type AuditLog struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	UserID       uint           `json:"user_id" gorm:"index"`
	Action       string         `json:"action" gorm:"index"`
	ResourceType string         `json:"resource_type" gorm:"index"`
	ResourceID   string         `json:"resource_id"`
	OldData      datatypes.JSON `json:"old_data"`
	NewData      datatypes.JSON `json:"new_data"`
	IPAddress    string         `json:"ip_address"`
	UserAgent    string         `json:"user_agent"`
	Description  string         `json:"description"`
	CreatedAt    time.Time      `json:"created_at"`
}
