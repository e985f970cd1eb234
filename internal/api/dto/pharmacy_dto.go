package dto

// CreatePharmacyRequest 创建药房
type CreatePharmacyRequest struct {
	Name              string `json:"name" binding:"required,max=128"`
	LegalName         string `json:"legal_name" binding:"max=255"`
	LicenseNumber     string `json:"license_number" binding:"required,max=64"`
	Address           string `json:"address" binding:"max=255"`
	City              string `json:"city" binding:"max=64"`
	PostalCode        string `json:"postal_code" binding:"max=16"`
	Phone             string `json:"phone" binding:"max=32"`
	Email             string `json:"email" binding:"omitempty,email"`
	Currency          string `json:"currency" binding:"omitempty,len=3"`
	StorefrontEnabled bool   `json:"storefront_enabled"`
}

// UpdatePharmacyRequest 修改药房，字段为空表示不修改
type UpdatePharmacyRequest struct {
	Name              *string `json:"name" binding:"omitempty,max=128"`
	LegalName         *string `json:"legal_name" binding:"omitempty,max=255"`
	LicenseNumber     *string `json:"license_number" binding:"omitempty,max=64"`
	Address           *string `json:"address" binding:"omitempty,max=255"`
	City              *string `json:"city" binding:"omitempty,max=64"`
	PostalCode        *string `json:"postal_code" binding:"omitempty,max=16"`
	Phone             *string `json:"phone" binding:"omitempty,max=32"`
	Email             *string `json:"email" binding:"omitempty,email"`
	Currency          *string `json:"currency" binding:"omitempty,len=3"`
	Status            *int    `json:"status" binding:"omitempty,oneof=0 1"`
	StorefrontEnabled *bool   `json:"storefront_enabled"`
}

// PharmacyListRequest 药房列表
type PharmacyListRequest struct {
	Keyword string `form:"keyword"`
	City    string `form:"city"`
	Status  *int   `form:"status"`
	PageQuery
}

// AddMemberRequest 添加成员
type AddMemberRequest struct {
	UserID int64  `json:"user_id" binding:"required,min=1"`
	Role   string `json:"role" binding:"required,oneof=owner manager pharmacist technician cashier stockist viewer"`
}

// UpdateMemberRequest 修改成员角色或启用状态
type UpdateMemberRequest struct {
	Role   string `json:"role" binding:"omitempty,oneof=owner manager pharmacist technician cashier stockist viewer"`
	Active *bool  `json:"active"`
}
