package dto

import "time"

// ==================== 员工 ====================

// EmployeeRequest 创建/修改员工
type EmployeeRequest struct {
	UserID        *int64     `json:"user_id"`
	FirstName     string     `json:"first_name" binding:"required,max=64"`
	LastName      string     `json:"last_name" binding:"required,max=64"`
	Email         string     `json:"email" binding:"omitempty,email"`
	Phone         string     `json:"phone" binding:"max=32"`
	Position      string     `json:"position" binding:"max=64"`
	ContractType  string     `json:"contract_type" binding:"required,oneof=cdi cdd interim intern"`
	HireDate      time.Time  `json:"hire_date" binding:"required"`
	EndDate       *time.Time `json:"end_date"`
	MonthlySalary int64      `json:"monthly_salary" binding:"min=0"`
	HourlyRate    int64      `json:"hourly_rate" binding:"min=0"`
	Active        *bool      `json:"active"`
}

// EmployeeListRequest 员工列表
type EmployeeListRequest struct {
	Keyword      string `form:"keyword"`
	ContractType string `form:"contract_type"`
	Active       *bool  `form:"active"`
	PageQuery
}

// ==================== 考勤 ====================

// ClockRequest 上下班打卡，At 为空取当前时间
type ClockRequest struct {
	EmployeeID int64      `json:"employee_id" binding:"required,min=1"`
	At         *time.Time `json:"at"`
	Note       string     `json:"note" binding:"max=255"`
}

// AttendanceListRequest 考勤列表
type AttendanceListRequest struct {
	EmployeeID int64 `form:"employee_id"`
	PeriodQuery
	PageQuery
}

// ==================== 请假 ====================

// LeaveRequestCreate 提交请假
type LeaveRequestCreate struct {
	EmployeeID int64     `json:"employee_id" binding:"required,min=1"`
	Type       string    `json:"type" binding:"required,oneof=paid sick unpaid other"`
	StartDate  time.Time `json:"start_date" binding:"required"`
	EndDate    time.Time `json:"end_date" binding:"required"`
	Reason     string    `json:"reason" binding:"max=500"`
}

// LeaveReviewRequest 审批请假
type LeaveReviewRequest struct {
	Approve bool   `json:"approve"`
	Comment string `json:"comment" binding:"max=500"`
}

// LeaveListRequest 请假列表
type LeaveListRequest struct {
	EmployeeID int64  `form:"employee_id"`
	Status     string `form:"status"`
	PageQuery
}

// ==================== 工资 ====================

// GeneratePayslipsRequest 生成某月工资单，EmployeeIDs 为空表示全部在职员工
type GeneratePayslipsRequest struct {
	Period      string  `json:"period" binding:"required,datetime=2006-01"`
	EmployeeIDs []int64 `json:"employee_ids"`
}

// UpdatePayslipRequest 草稿工资单调整奖金与扣款
type UpdatePayslipRequest struct {
	Bonus      *int64 `json:"bonus" binding:"omitempty,min=0"`
	Deductions *int64 `json:"deductions" binding:"omitempty,min=0"`
}

// PayslipListRequest 工资单列表
type PayslipListRequest struct {
	EmployeeID int64  `form:"employee_id"`
	Period     string `form:"period"`
	PageQuery
}
