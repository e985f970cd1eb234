package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// 处方状态
const (
	PrescriptionPending   = "pending"
	PrescriptionDispensed = "dispensed"
	PrescriptionExpired   = "expired"

	DefaultPrescriptionValidityDays = 90
)

// 预约类型与状态
const (
	AppointmentVaccination  = "vaccination"
	AppointmentConsultation = "consultation"
	AppointmentFollowup     = "followup"
	AppointmentTest         = "test"

	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
	AppointmentNoShow    = "no_show"
)

// Customer 顾客/患者档案
type Customer struct {
	BaseModel
	AuditMixin
	PharmacyID        int64          `gorm:"uniqueIndex:idx_customer_code;not null" json:"pharmacy_id"`
	Code              string         `gorm:"uniqueIndex:idx_customer_code;size:20;not null" json:"code"`
	UserID            *int64         `gorm:"index" json:"user_id"`
	FirstName         string         `gorm:"size:64;not null" json:"first_name"`
	LastName          string         `gorm:"size:64;not null;index" json:"last_name"`
	BirthDate         *time.Time     `json:"birth_date"`
	Gender            string         `gorm:"size:8" json:"gender"`
	Phone             string         `gorm:"size:32;index" json:"phone"`
	Email             string         `gorm:"size:128" json:"email"`
	Address           string         `gorm:"size:255" json:"address"`
	InsuranceNumber   string         `gorm:"size:32;comment:医保号" json:"insurance_number"`
	Allergies         datatypes.JSON `json:"allergies"`
	ChronicConditions datatypes.JSON `json:"chronic_conditions"`
	Notes             string         `gorm:"type:text" json:"notes"`

	LoyaltyAccount *LoyaltyAccount `gorm:"foreignKey:CustomerID" json:"loyalty_account,omitempty"`
}

func (Customer) TableName() string {
	return "customers"
}

// BeforeCreate 分配顾客编号 CL-000001
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.Code != "" {
		return nil
	}
	code, err := nextCode(tx, c.PharmacyID, PrefixCustomer, "", 6)
	if err != nil {
		return err
	}
	c.Code = code
	return nil
}

// AfterCreate 开通积分账户
func (c *Customer) AfterCreate(tx *gorm.DB) error {
	if c.LoyaltyAccount != nil {
		return nil
	}
	acc := &LoyaltyAccount{PharmacyID: c.PharmacyID, CustomerID: c.ID, Tier: TierBronze}
	if err := tx.Session(&gorm.Session{NewDB: true}).Create(acc).Error; err != nil {
		return err
	}
	c.LoyaltyAccount = acc
	return nil
}

// FullName 姓名
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Prescription 处方
type Prescription struct {
	BaseModel
	AuditMixin
	PharmacyID     int64          `gorm:"index;not null" json:"pharmacy_id"`
	CustomerID     int64          `gorm:"index;not null" json:"customer_id"`
	PrescriberName string         `gorm:"size:128;not null" json:"prescriber_name"`
	PrescriberRPPS string         `gorm:"size:32" json:"prescriber_rpps"`
	IssuedAt       time.Time      `json:"issued_at"`
	ValidityDays   int            `gorm:"not null;default:90" json:"validity_days"`
	ExpiresAt      time.Time      `gorm:"index" json:"expires_at"`
	Status         string         `gorm:"size:16;index;not null;default:'pending'" json:"status"`
	ScanURL        string         `gorm:"size:500" json:"scan_url"`
	ScanKey        string         `gorm:"size:255" json:"-"`
	Items          datatypes.JSON `json:"items"`
	DispensedAt    *time.Time     `json:"dispensed_at"`
	SaleID         *int64         `json:"sale_id"`
	Notes          string         `gorm:"size:500" json:"notes"`

	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}

// BeforeSave 计算有效期；待配药且已过期的处方标记为过期
func (p *Prescription) BeforeSave(tx *gorm.DB) error {
	if p.ValidityDays <= 0 {
		p.ValidityDays = DefaultPrescriptionValidityDays
	}
	if p.IssuedAt.IsZero() {
		p.IssuedAt = time.Now()
	}
	p.ExpiresAt = startOfDay(p.IssuedAt).AddDate(0, 0, p.ValidityDays)
	if p.Status == "" {
		p.Status = PrescriptionPending
	}
	if p.Status == PrescriptionPending && p.IsExpired(time.Now()) {
		p.Status = PrescriptionExpired
	}
	return nil
}

// IsExpired at 时刻是否已过有效期
func (p *Prescription) IsExpired(at time.Time) bool {
	return !p.ExpiresAt.IsZero() && !at.Before(p.ExpiresAt)
}

// Appointment 预约（疫苗、咨询、复诊、检测）
type Appointment struct {
	BaseModel
	AuditMixin
	PharmacyID      int64     `gorm:"index:idx_appointment_schedule,priority:1;not null" json:"pharmacy_id"`
	CustomerID      int64     `gorm:"index;not null" json:"customer_id"`
	StaffUserID     *int64    `gorm:"index" json:"staff_user_id"`
	Type            string    `gorm:"size:16;not null" json:"type"`
	ScheduledAt     time.Time `gorm:"index:idx_appointment_schedule,priority:2" json:"scheduled_at"`
	DurationMinutes int       `gorm:"not null;default:15" json:"duration_minutes"`
	Status          string    `gorm:"size:16;index;not null;default:'scheduled'" json:"status"`
	Notes           string    `gorm:"size:500" json:"notes"`
	ReminderSent    bool      `gorm:"not null;default:false" json:"reminder_sent"`

	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// ValidAppointmentType 预约类型是否合法
func ValidAppointmentType(t string) bool {
	switch t {
	case AppointmentVaccination, AppointmentConsultation, AppointmentFollowup, AppointmentTest:
		return true
	}
	return false
}

// BeforeSave 默认时长与状态
func (a *Appointment) BeforeSave(tx *gorm.DB) error {
	if a.DurationMinutes <= 0 {
		a.DurationMinutes = 15
	}
	if a.Status == "" {
		a.Status = AppointmentScheduled
	}
	return nil
}

// AfterCreate 通知被指派的员工
func (a *Appointment) AfterCreate(tx *gorm.DB) error {
	if a.StaffUserID == nil {
		return nil
	}
	return Notify(tx, *a.StaffUserID, NotificationInput{
		PharmacyID: a.PharmacyID,
		Topic:      TopicAppointmentAssigned,
		Title:      "新的预约",
		Body:       a.Type + " " + a.ScheduledAt.Format("2006-01-02 15:04"),
		Payload:    map[string]interface{}{"appointment_id": a.ID, "customer_id": a.CustomerID},
	})
}

// EndsAt 预约结束时间
func (a *Appointment) EndsAt() time.Time {
	return a.ScheduledAt.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// MedicalNote 药事随访记录
type MedicalNote struct {
	BaseModel
	PharmacyID int64  `gorm:"index;not null" json:"pharmacy_id"`
	CustomerID int64  `gorm:"index;not null" json:"customer_id"`
	AuthorID   int64  `gorm:"not null" json:"author_id"`
	Title      string `gorm:"size:255" json:"title"`
	Body       string `gorm:"type:text;not null" json:"body"`
}

func (MedicalNote) TableName() string {
	return "medical_notes"
}
