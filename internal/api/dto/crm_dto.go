package dto

import "time"

// CustomerRequest 创建/修改顾客
type CustomerRequest struct {
	UserID            *int64     `json:"user_id"`
	FirstName         string     `json:"first_name" binding:"required,max=64"`
	LastName          string     `json:"last_name" binding:"required,max=64"`
	BirthDate         *time.Time `json:"birth_date"`
	Gender            string     `json:"gender" binding:"omitempty,oneof=f m x"`
	Phone             string     `json:"phone" binding:"max=32"`
	Email             string     `json:"email" binding:"omitempty,email"`
	Address           string     `json:"address" binding:"max=255"`
	InsuranceNumber   string     `json:"insurance_number" binding:"max=32"`
	Allergies         []string   `json:"allergies"`
	ChronicConditions []string   `json:"chronic_conditions"`
	Notes             string     `json:"notes"`
}

// CustomerListRequest 顾客搜索
type CustomerListRequest struct {
	Keyword string `form:"keyword"`
	PageQuery
}

// CustomerHistory 顾客就诊与消费记录
type CustomerHistory struct {
	Sales         interface{} `json:"sales"`
	Prescriptions interface{} `json:"prescriptions"`
	Appointments  interface{} `json:"appointments"`
	Loyalty       interface{} `json:"loyalty"`
}

// PrescriptionRequest 创建/修改处方
type PrescriptionRequest struct {
	CustomerID     int64              `json:"customer_id" binding:"required,min=1"`
	PrescriberName string             `json:"prescriber_name" binding:"required,max=128"`
	PrescriberRPPS string             `json:"prescriber_rpps" binding:"max=32"`
	IssuedAt       time.Time          `json:"issued_at" binding:"required"`
	ValidityDays   int                `json:"validity_days" binding:"min=0,max=365"`
	Items          []PrescriptionItem `json:"items" binding:"dive"`
	Notes          string             `json:"notes" binding:"max=500"`
}

// PrescriptionItem 处方药品
type PrescriptionItem struct {
	ProductID *int64 `json:"product_id,omitempty"`
	Name      string `json:"name" binding:"required"`
	Posology  string `json:"posology"`
	Quantity  int    `json:"quantity"`
}

// PrescriptionListRequest 处方列表
type PrescriptionListRequest struct {
	CustomerID int64  `form:"customer_id"`
	Status     string `form:"status"`
	PageQuery
}

// AppointmentRequest 创建/修改预约
type AppointmentRequest struct {
	CustomerID      int64     `json:"customer_id" binding:"required,min=1"`
	StaffUserID     *int64    `json:"staff_user_id"`
	Type            string    `json:"type" binding:"required,oneof=vaccination consultation followup test"`
	ScheduledAt     time.Time `json:"scheduled_at" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"min=0,max=480"`
	Notes           string    `json:"notes" binding:"max=500"`
}

// AppointmentStatusRequest 完成/取消/爽约
type AppointmentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=completed cancelled no_show"`
	Notes  string `json:"notes" binding:"max=500"`
}

// AppointmentListRequest 预约列表
type AppointmentListRequest struct {
	CustomerID  int64  `form:"customer_id"`
	StaffUserID int64  `form:"staff_user_id"`
	Status      string `form:"status"`
	Type        string `form:"type"`
	Upcoming    bool   `form:"upcoming"`
	PeriodQuery
	PageQuery
}

// MedicalNoteRequest 随访记录
type MedicalNoteRequest struct {
	Title string `json:"title" binding:"max=255"`
	Body  string `json:"body" binding:"required"`
}

// LoyaltyAdjustRequest 手工调整积分，Points 带符号
type LoyaltyAdjustRequest struct {
	Points int64  `json:"points" binding:"required,ne=0"`
	Note   string `json:"note" binding:"required,max=255"`
}
