package user

type CreateUserInput struct {
	Username string  `form:"username" json:"username" binding:"required,min=3,max=50" example:"jdoe"`
	Password string  `form:"password" json:"password" binding:"required,min=6" example:"password123"`
	Email    *string `form:"email" json:"email" binding:"omitempty,email" example:"user@example.com"`
	FullName *string `form:"full_name" json:"full_name" example:"Jane Doe"`
	Role     *string `form:"role" json:"role" binding:"omitempty,oneof=admin reviewer" example:"reviewer"`
	AgentID  *uint   `form:"agent_id" json:"agent_id"`
}

type UpdateUserInput struct {
	OldPassword *string `form:"old_password" json:"old_password"`
	Password    *string `form:"password" json:"password" binding:"omitempty,min=6"`
	Email       *string `form:"email" json:"email" binding:"omitempty,email"`
	FullName    *string `form:"full_name" json:"full_name"`
	Role        *string `form:"role" json:"role" binding:"omitempty,oneof=admin reviewer"`
	AgentID     *uint   `form:"agent_id" json:"agent_id"`
}
