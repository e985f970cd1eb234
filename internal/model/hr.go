package model

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// 合同类型
const (
	ContractCDI     = "cdi"
	ContractCDD     = "cdd"
	ContractInterim = "interim"
	ContractIntern  = "intern"
)

// 请假类型与状态
const (
	LeavePaid   = "paid"
	LeaveSick   = "sick"
	LeaveUnpaid = "unpaid"
	LeaveOther  = "other"

	LeaveStatusPending   = "pending"
	LeaveStatusApproved  = "approved"
	LeaveStatusRejected  = "rejected"
	LeaveStatusCancelled = "cancelled"
)

// 工资单状态
const (
	PayslipDraft     = "draft"
	PayslipValidated = "validated"
)

// Employee 员工档案
type Employee struct {
	BaseModel
	AuditMixin
	PharmacyID    int64      `gorm:"uniqueIndex:idx_employee_matricule;not null" json:"pharmacy_id"`
	Matricule     string     `gorm:"uniqueIndex:idx_employee_matricule;size:20;not null" json:"matricule"`
	UserID        *int64     `gorm:"index" json:"user_id"`
	FirstName     string     `gorm:"size:64;not null" json:"first_name"`
	LastName      string     `gorm:"size:64;not null" json:"last_name"`
	Email         string     `gorm:"size:128" json:"email"`
	Phone         string     `gorm:"size:32" json:"phone"`
	Position      string     `gorm:"size:64" json:"position"`
	ContractType  string     `gorm:"size:16;not null;default:'cdi'" json:"contract_type"`
	HireDate      time.Time  `json:"hire_date"`
	EndDate       *time.Time `json:"end_date"`
	MonthlySalary int64      `gorm:"not null;default:0;comment:月薪(分)" json:"monthly_salary"`
	HourlyRate    int64      `gorm:"not null;default:0;comment:时薪(分)" json:"hourly_rate"`
	Active        bool       `gorm:"not null;default:true" json:"active"`
}

func (Employee) TableName() string {
	return "employees"
}

// BeforeCreate 分配工号 EMP-00001（按药房）
func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.Matricule != "" {
		return nil
	}
	code, err := nextCode(tx, e.PharmacyID, PrefixEmployee, "", 5)
	if err != nil {
		return err
	}
	e.Matricule = code
	return nil
}

// FullName 姓名
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// Attendance 考勤记录，ClockOut 为空表示尚未下班
type Attendance struct {
	BaseModel
	PharmacyID    int64      `gorm:"index;not null" json:"pharmacy_id"`
	EmployeeID    int64      `gorm:"index;not null" json:"employee_id"`
	ClockIn       time.Time  `gorm:"index;not null" json:"clock_in"`
	ClockOut      *time.Time `json:"clock_out"`
	WorkedMinutes int        `gorm:"not null;default:0" json:"worked_minutes"`
	Note          string     `gorm:"size:255" json:"note"`
}

func (Attendance) TableName() string {
	return "attendances"
}

// BeforeSave 计算工时
func (a *Attendance) BeforeSave(tx *gorm.DB) error {
	if a.ClockOut == nil {
		a.WorkedMinutes = 0
		return nil
	}
	if a.ClockOut.Before(a.ClockIn) {
		return ErrInvalidPeriod
	}
	a.WorkedMinutes = int(a.ClockOut.Sub(a.ClockIn).Minutes())
	return nil
}

// LeaveRequest 请假申请
type LeaveRequest struct {
	BaseModel
	AuditMixin
	PharmacyID    int64      `gorm:"index;not null" json:"pharmacy_id"`
	EmployeeID    int64      `gorm:"index;not null" json:"employee_id"`
	Type          string     `gorm:"size:16;not null" json:"type"`
	StartDate     time.Time  `json:"start_date"`
	EndDate       time.Time  `json:"end_date"`
	Days          int        `gorm:"not null;default:0" json:"days"`
	Reason        string     `gorm:"size:500" json:"reason"`
	Status        string     `gorm:"size:16;index;not null;default:'pending'" json:"status"`
	ReviewerID    *int64     `json:"reviewer_id"`
	ReviewComment string     `gorm:"size:500" json:"review_comment"`
	ReviewedAt    *time.Time `json:"reviewed_at"`

	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`

	loadedStatus string
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

func (l *LeaveRequest) AfterFind(tx *gorm.DB) error {
	l.loadedStatus = l.Status
	return nil
}

// BeforeSave 校验日期并计算天数（含首尾）
func (l *LeaveRequest) BeforeSave(tx *gorm.DB) error {
	span := calendarDays(l.StartDate, l.EndDate)
	if span < 0 {
		return ErrInvalidPeriod
	}
	l.Days = span + 1
	if l.Status == "" {
		l.Status = LeaveStatusPending
	}
	return nil
}

// AfterCreate 通知店长审批
func (l *LeaveRequest) AfterCreate(tx *gorm.DB) error {
	l.loadedStatus = l.Status
	name := l.employeeName(tx)
	return NotifyPharmacyRoles(tx, l.PharmacyID, ManagerRoles, NotificationInput{
		Topic: TopicLeaveRequested,
		Title: "新的请假申请",
		Body: fmt.Sprintf("%s 申请 %s 至 %s 共 %d 天", name,
			l.StartDate.Format("2006-01-02"), l.EndDate.Format("2006-01-02"), l.Days),
		Payload:   map[string]interface{}{"leave_request_id": l.ID, "employee_id": l.EmployeeID},
		DedupeKey: fmt.Sprintf("leave:%d:requested", l.ID),
	})
}

// AfterUpdate 审批结果通知员工本人账号
func (l *LeaveRequest) AfterUpdate(tx *gorm.DB) error {
	changed := l.Status != l.loadedStatus
	l.loadedStatus = l.Status
	if !changed || (l.Status != LeaveStatusApproved && l.Status != LeaveStatusRejected) {
		return nil
	}

	var emp Employee
	if err := tx.Session(&gorm.Session{NewDB: true}).Select("id", "user_id").First(&emp, l.EmployeeID).Error; err != nil {
		return err
	}
	if emp.UserID == nil {
		return nil
	}
	title := "请假已批准"
	if l.Status == LeaveStatusRejected {
		title = "请假被驳回"
	}
	return Notify(tx, *emp.UserID, NotificationInput{
		PharmacyID: l.PharmacyID,
		Topic:      TopicLeaveReviewed,
		Title:      title,
		Body:       l.ReviewComment,
		Payload:    map[string]interface{}{"leave_request_id": l.ID, "status": l.Status},
		DedupeKey:  fmt.Sprintf("leave:%d:%s", l.ID, l.Status),
	})
}

func (l *LeaveRequest) employeeName(tx *gorm.DB) string {
	if l.Employee != nil {
		return l.Employee.FullName()
	}
	var emp Employee
	if err := tx.Session(&gorm.Session{NewDB: true}).Select("first_name", "last_name").First(&emp, l.EmployeeID).Error; err != nil {
		return fmt.Sprintf("员工 #%d", l.EmployeeID)
	}
	return emp.FullName()
}

// Payslip 工资单
type Payslip struct {
	BaseModel
	AuditMixin
	PharmacyID  int64  `gorm:"uniqueIndex:idx_payslip_number;not null" json:"pharmacy_id"`
	Number      string `gorm:"uniqueIndex:idx_payslip_number;size:32;not null" json:"number"`
	EmployeeID  int64  `gorm:"uniqueIndex:idx_payslip_period;not null" json:"employee_id"`
	Period      string `gorm:"uniqueIndex:idx_payslip_period;size:7;not null;comment:YYYY-MM" json:"period"`
	HoursWorked int    `gorm:"not null;default:0" json:"hours_worked"`
	Gross       int64  `gorm:"not null;default:0" json:"gross"`
	Bonus       int64  `gorm:"not null;default:0" json:"bonus"`
	Deductions  int64  `gorm:"not null;default:0" json:"deductions"`
	Net         int64  `gorm:"not null;default:0" json:"net"`
	Status      string `gorm:"size:16;not null;default:'draft'" json:"status"`

	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}

func (Payslip) TableName() string {
	return "payslips"
}

// BeforeCreate 分配工资单号 PAY-YYYYMM-0001
func (p *Payslip) BeforeCreate(tx *gorm.DB) error {
	if p.Number != "" {
		return nil
	}
	month, err := time.Parse("2006-01", p.Period)
	if err != nil {
		return fmt.Errorf("工资周期格式错误: %q", p.Period)
	}
	code, err := nextCode(tx, p.PharmacyID, PrefixPayslip, month.Format("200601"), 4)
	if err != nil {
		return err
	}
	p.Number = code
	return nil
}

// BeforeSave 实发 = 应发 + 奖金 - 扣款，不为负
func (p *Payslip) BeforeSave(tx *gorm.DB) error {
	p.Net = p.Gross + p.Bonus - p.Deductions
	if p.Net < 0 {
		p.Net = 0
	}
	return nil
}
