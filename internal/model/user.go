package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// 系统级角色
// 注意区分：这是系统的角色，PharmacyMember 里的是药房内的角色
const (
	RoleSuperAdmin = "superadmin"
	RoleStaff      = "staff"
	RoleCustomer   = "customer"
)

// 账号状态
const (
	UserStatusDisabled = 0
	UserStatusActive   = 1
)

// User 系统用户（员工或网店顾客）
type User struct {
	BaseModel
	Username    string     `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email       string     `gorm:"size:128;uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"size:255;not null" json:"-"`
	FirstName   string     `gorm:"size:64" json:"first_name"`
	LastName    string     `gorm:"size:64" json:"last_name"`
	Phone       string     `gorm:"size:32" json:"phone"`
	Role        string     `gorm:"size:20;not null;default:'staff'" json:"role"`
	Status      int        `gorm:"not null;default:1" json:"status"`
	LastLoginAt *time.Time `json:"last_login_at"`
	DeviceToken string     `gorm:"size:255" json:"-"`

	Memberships []PharmacyMember `gorm:"foreignKey:UserID" json:"memberships,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// BeforeSave 规范化用户名与邮箱
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.Username = strings.ToLower(strings.TrimSpace(u.Username))
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return nil
}

// FullName 姓名
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsActive 账号是否可用
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
