package form

import (
	"gorm.io/datatypes"

	"github.com/fieldopskit/fieldops-go/pkg/criteria"
)

type CreateFormDTO struct {
	TenantID               uint           `json:"tenant_id"`
	Title                  string         `json:"title" binding:"required"`
	Description            string         `json:"description"`
	Department             string         `json:"department"`
	Schema                 datatypes.JSON `json:"schema"`
	AttachToSpecificAgents bool           `json:"attach_to_specific_agents"`
	CyclesPerMonth         int            `json:"cycles_per_month" binding:"required"`
	FreezeEnabled          bool           `json:"freeze_enabled"`
	FreezeDurationSeconds  *int64         `json:"freeze_duration_seconds"`
}

type UpdateFormDTO struct {
	Title                  *string         `json:"title"`
	Description            *string         `json:"description"`
	Department             *string         `json:"department"`
	Schema                 *datatypes.JSON `json:"schema"`
	AttachToSpecificAgents *bool           `json:"attach_to_specific_agents"`
	CyclesPerMonth         *int            `json:"cycles_per_month"`
	FreezeEnabled          *bool           `json:"freeze_enabled"`
	FreezeDurationSeconds  *int64          `json:"freeze_duration_seconds"`
	Active                 *bool           `json:"active"`
}

type AttachAgentDTO struct {
	AgentID  uint            `json:"agent_id" binding:"required"`
	Criteria []criteria.Rule `json:"criteria"`
}
