package dto

type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ListUsersQuery struct {
	Role   string `form:"role" binding:"omitempty,oneof=student tutor institution donor admin"`
	Status string `form:"status" binding:"omitempty,oneof=pending active rejected suspended"`
}
