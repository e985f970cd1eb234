package dto

import "time"

// ==================== 注册 / 登录 ====================

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=64"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8,max=100"`
	FirstName string `json:"first_name" binding:"max=64"`
	LastName  string `json:"last_name" binding:"max=64"`
	Phone     string `json:"phone" binding:"max=32"`
}

// LoginRequest 登录请求，Login 可为用户名或邮箱
type LoginRequest struct {
	Login    string `json:"login" binding:"required,min=3,max=128"`
	Password string `json:"password" binding:"required,min=3,max=100"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         *UserInfo `json:"user"`
}

// RefreshTokenRequest 刷新 Token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ==================== 用户信息 ====================

// UserInfo 用户信息
type UserInfo struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Phone       string     `json:"phone"`
	Role        string     `json:"role"`
	Status      int        `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// UpdateProfileRequest 修改个人资料
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,max=64"`
	LastName  *string `json:"last_name" binding:"omitempty,max=64"`
	Phone     *string `json:"phone" binding:"omitempty,max=32"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=100"`
}

// DeviceTokenRequest 推送设备令牌
type DeviceTokenRequest struct {
	Token string `json:"token" binding:"max=255"`
}

// ==================== 用户管理（superadmin） ====================

// CreateUserRequest 创建用户请求
type CreateUserRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=64"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8,max=100"`
	FirstName string `json:"first_name" binding:"max=64"`
	LastName  string `json:"last_name" binding:"max=64"`
	Phone     string `json:"phone" binding:"max=32"`
	Role      string `json:"role" binding:"required,oneof=superadmin staff customer"`
}

// UpdateUserRequest 更新用户请求
type UpdateUserRequest struct {
	Email     string  `json:"email" binding:"omitempty,email"`
	FirstName *string `json:"first_name" binding:"omitempty,max=64"`
	LastName  *string `json:"last_name" binding:"omitempty,max=64"`
	Phone     *string `json:"phone" binding:"omitempty,max=32"`
	Role      string  `json:"role" binding:"omitempty,oneof=superadmin staff customer"`
	Status    *int    `json:"status" binding:"omitempty,oneof=0 1"`
}

// ResetPasswordRequest 重置密码请求
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8,max=100"`
}

// UserListRequest 用户列表请求
type UserListRequest struct {
	Keyword string `form:"keyword"`
	Role    string `form:"role"`
	Status  *int   `form:"status"`
	PageQuery
}
