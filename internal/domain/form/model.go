package form

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Form is the definition of a recurring form. The field schema is opaque to
// the submission engine; only the cycle/freeze settings drive behavior.
type Form struct {
	gorm.Model
	TenantID               uint           `json:"tenant_id" gorm:"index"`
	Title                  string         `json:"title"`
	Description            string         `json:"description"`
	Department             string         `json:"department"`
	Schema                 datatypes.JSON `json:"schema"`
	AttachToSpecificAgents bool           `json:"attach_to_specific_agents"`
	CyclesPerMonth         int            `json:"cycles_per_month" gorm:"default:1"`
	FreezeEnabled          bool           `json:"freeze_enabled"`
	// Set if and only if FreezeEnabled is true.
	FreezeDurationSeconds *int64 `json:"freeze_duration_seconds"`
	Active                bool   `json:"active" gorm:"default:true"`

	Attachments []FormAttachment `json:"attachments,omitempty" gorm:"foreignKey:FormID"`
}

// FreezeDuration returns the cooldown window, zero when freezing is off.
func (f *Form) FreezeDuration() time.Duration {
	if !f.FreezeEnabled || f.FreezeDurationSeconds == nil {
		return 0
	}
	return time.Duration(*f.FreezeDurationSeconds) * time.Second
}

// FormAttachment restricts a form to a specific agent, optionally gated by
// visibility criteria. At most one row per (form, agent).
type FormAttachment struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	FormID    uint           `json:"form_id" gorm:"not null;uniqueIndex:idx_form_attachments_form_agent"`
	AgentID   uint           `json:"agent_id" gorm:"not null;uniqueIndex:idx_form_attachments_form_agent"`
	Criteria  datatypes.JSON `json:"criteria"`
	Active    bool           `json:"active" gorm:"default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
