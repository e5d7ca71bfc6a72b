package dto

import authdomain "taskboard-backend/internal/auth/domain"

type LoginRequest struct {
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

type LoginResponse struct {
	Token                  string           `json:"token"`
	User                   *authdomain.User `json:"user"`
	PasswordChangeRequired bool             `json:"password_change_required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

type ResetPasswordRequest struct {
	TargetUserID string `json:"target_user_id" binding:"required"`
	NewPassword  string `json:"new_password"`
	ForceReset   *bool  `json:"force_reset"`
}

type ResetPasswordResponse struct {
	TemporaryPassword string `json:"temporary_password"`
}

type CreateGroupRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

type AddGroupMemberRequest struct {
	UserID string `json:"user_id" binding:"required"`
}
