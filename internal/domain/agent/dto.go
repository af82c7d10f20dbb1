package agent

type CreateAgentDTO struct {
	TenantID     uint   `json:"tenant_id"`
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"omitempty,email"`
	Phone        string `json:"phone"`
	Status       string `json:"status" binding:"omitempty,oneof=active inactive"`
	ExternalCode string `json:"external_code"`
}

type UpdateAgentDTO struct {
	Name         *string `json:"name"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Phone        *string `json:"phone"`
	Status       *string `json:"status" binding:"omitempty,oneof=active inactive"`
	ExternalCode *string `json:"external_code"`
}
