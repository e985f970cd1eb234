package model

import (
	"gorm.io/gorm"
)

// 药房状态
const (
	PharmacyStatusInactive = 0
	PharmacyStatusActive   = 1
)

// 药房内角色
const (
	MemberOwner      = "owner"
	MemberManager    = "manager"
	MemberPharmacist = "pharmacist"
	MemberTechnician = "technician"
	MemberCashier    = "cashier"
	MemberStockist   = "stockist"
	MemberViewer     = "viewer"
)

// 常用角色组合
var (
	ManagerRoles  = []string{MemberOwner, MemberManager}
	StockRoles    = []string{MemberOwner, MemberManager, MemberPharmacist, MemberStockist}
	SalesRoles    = []string{MemberOwner, MemberManager, MemberPharmacist, MemberTechnician, MemberCashier}
	ClinicalRoles = []string{MemberOwner, MemberManager, MemberPharmacist, MemberTechnician}
	FinanceRoles  = []string{MemberOwner, MemberManager}
)

// ValidMemberRole 是否为合法的药房内角色
func ValidMemberRole(role string) bool {
	switch role {
	case MemberOwner, MemberManager, MemberPharmacist, MemberTechnician, MemberCashier, MemberStockist, MemberViewer:
		return true
	}
	return false
}

// RoleIn 角色是否在给定集合中
func RoleIn(role string, roles ...string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// Pharmacy 药房（租户）
type Pharmacy struct {
	BaseModel
	AuditMixin
	Code              string `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Name              string `gorm:"size:128;not null" json:"name"`
	LegalName         string `gorm:"size:255" json:"legal_name"`
	LicenseNumber     string `gorm:"size:64;uniqueIndex;not null" json:"license_number"`
	Address           string `gorm:"size:255" json:"address"`
	City              string `gorm:"size:64;index" json:"city"`
	PostalCode        string `gorm:"size:16" json:"postal_code"`
	Phone             string `gorm:"size:32" json:"phone"`
	Email             string `gorm:"size:128" json:"email"`
	Currency          string `gorm:"size:3;not null;default:'EUR'" json:"currency"`
	Status            int    `gorm:"not null;default:1" json:"status"`
	StorefrontEnabled bool   `gorm:"not null;default:false" json:"storefront_enabled"`

	Memberships []PharmacyMember `gorm:"foreignKey:PharmacyID" json:"-"`
}

func (Pharmacy) TableName() string {
	return "pharmacies"
}

// BeforeCreate 分配药房编码 PH-0001
func (p *Pharmacy) BeforeCreate(tx *gorm.DB) error {
	if p.Code != "" {
		return nil
	}
	code, err := nextCode(tx, 0, PrefixPharmacy, "", 4)
	if err != nil {
		return err
	}
	p.Code = code
	return nil
}

// PharmacyMember 用户与药房的成员关系
type PharmacyMember struct {
	BaseModel
	AuditMixin
	PharmacyID int64  `gorm:"uniqueIndex:idx_member_pharmacy_user;not null" json:"pharmacy_id"`
	UserID     int64  `gorm:"uniqueIndex:idx_member_pharmacy_user;index;not null" json:"user_id"`
	Role       string `gorm:"size:20;not null;default:'viewer'" json:"role"`
	Active     bool   `gorm:"not null;default:true" json:"active"`

	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Pharmacy *Pharmacy `gorm:"foreignKey:PharmacyID" json:"pharmacy,omitempty"`
}

func (PharmacyMember) TableName() string {
	return "pharmacy_members"
}
