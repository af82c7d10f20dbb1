package submission

import "gorm.io/datatypes"

type CreateSubmissionDTO struct {
	AgentID   uint           `json:"agent_id" binding:"required"`
	Payload   datatypes.JSON `json:"payload" binding:"required"`
	Latitude  *float64       `json:"latitude"`
	Longitude *float64       `json:"longitude"`
}

type ApproveSubmissionDTO struct {
	Notes string `json:"notes"`
}

type RejectSubmissionDTO struct {
	Reason string `json:"reason" binding:"required"`
}
