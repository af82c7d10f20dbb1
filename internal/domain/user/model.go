package user

import "gorm.io/gorm"

// User is a platform account (admin or reviewer). Field agents are modeled
// separately; a user may be linked to an agent record when the same person
// both submits and logs in.
type User struct {
	gorm.Model
	Username string `json:"username" gorm:"uniqueIndex;not null"`
	Password string `json:"-"`
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
	Role     string  `json:"role" gorm:"default:'reviewer'"` // admin | reviewer
	AgentID  *uint   `json:"agent_id"`
}

func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}
