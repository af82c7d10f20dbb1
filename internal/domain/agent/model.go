package agent

import "gorm.io/gorm"

type AgentStatus string

const (
	AgentStatusActive   AgentStatus = "active"
	AgentStatusInactive AgentStatus = "inactive"
)

// Agent is a field worker who fills recurring forms.
type Agent struct {
	gorm.Model
	TenantID     uint        `json:"tenant_id" gorm:"index"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Phone        string      `json:"phone"`
	Status       AgentStatus `json:"status" gorm:"default:'active'"`
	ExternalCode string      `json:"external_code"`
}

// ProfileFieldNames is the closed set of fields attachment criteria may
// reference. Single-valued strings only; multi-valued fields (tags etc.) are
// intentionally unsupported.
var ProfileFieldNames = []string{"name", "email", "phone", "status", "external_code"}

// Profile flattens the agent into the field table the criteria evaluator
// reads.
func (a *Agent) Profile() map[string]string {
	return map[string]string{
		"name":          a.Name,
		"email":         a.Email,
		"phone":         a.Phone,
		"status":        string(a.Status),
		"external_code": a.ExternalCode,
	}
}
