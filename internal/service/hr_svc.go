package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"pharmacy_erp/internal/api/dto"
	"pharmacy_erp/internal/model"
	"pharmacy_erp/internal/repository"
	"pharmacy_erp/pkg/logger"
)

// HRService 员工、考勤、请假、工资
type HRService struct {
	store *repository.Store
	log   *zap.Logger
}

// NewHRService 创建人事服务
func NewHRService(store *repository.Store) *HRService {
	return &HRService{store: store, log: logger.Named("hr")}
}

// ==================== 员工 ====================

// CreateEmployee 新增员工，工号由钩子分配
func (s *HRService) CreateEmployee(ctx context.Context, pharmacyID int64, req *dto.EmployeeRequest) (*model.Employee, error) {
	if err := s.checkUserLink(ctx, pharmacyID, req.UserID, 0); err != nil {
		return nil, err
	}
	emp := &model.Employee{PharmacyID: pharmacyID, Active: true}
	applyEmployee(emp, req)

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Employees.Create(ctx, emp); err != nil {
			return err
		}
		// bool 零值在 Create 时会被数据库默认值覆盖
		if !emp.Active {
			return tx.Employees.Update(ctx, emp)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return emp, nil
}

// GetEmployee 员工详情
func (s *HRService) GetEmployee(ctx context.Context, pharmacyID, id int64) (*model.Employee, error) {
	emp, err := s.store.Employees.GetByID(ctx, pharmacyID, id)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, ErrEmployeeNotFound
	}
	return emp, nil
}

// UpdateEmployee 修改员工
func (s *HRService) UpdateEmployee(ctx context.Context, pharmacyID, id int64, req *dto.EmployeeRequest) (*model.Employee, error) {
	emp, err := s.GetEmployee(ctx, pharmacyID, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkUserLink(ctx, pharmacyID, req.UserID, id); err != nil {
		return nil, err
	}
	applyEmployee(emp, req)
	if err := s.store.Employees.Update(ctx, emp); err != nil {
		return nil, err
	}
	return emp, nil
}

// DeleteEmployee 删除员工
func (s *HRService) DeleteEmployee(ctx context.Context, pharmacyID, id int64) error {
	if _, err := s.GetEmployee(ctx, pharmacyID, id); err != nil {
		return err
	}
	return s.store.Employees.Delete(ctx, pharmacyID, id)
}

// ListEmployees 员工列表
func (s *HRService) ListEmployees(ctx context.Context, pharmacyID int64, req *dto.EmployeeListRequest) (*dto.PageResult[model.Employee], error) {
	list, total, err := s.store.Employees.List(ctx, repository.EmployeeFilter{
		PharmacyID:   pharmacyID,
		Keyword:      req.Keyword,
		ContractType: req.ContractType,
		Active:       req.Active,
		Pagination:   toPagination(req.PageQuery),
	})
	if err != nil {
		return nil, err
	}
	return dto.NewPageResult(list, total), nil
}

func applyEmployee(emp *model.Employee, req *dto.EmployeeRequest) {
	emp.UserID = req.UserID
	emp.FirstName = req.FirstName
	emp.LastName = req.LastName
	emp.Email = req.Email
	emp.Phone = req.Phone
	emp.Position = req.Position
	emp.ContractType = req.ContractType
	emp.HireDate = req.HireDate
	emp.EndDate = req.EndDate
	emp.MonthlySalary = req.MonthlySalary
	emp.HourlyRate = req.HourlyRate
	if req.Active != nil {
		emp.Active = *req.Active
	}
}

// checkUserLink 关联账号必须存在，且不能同时关联该药房的其他员工
func (s *HRService) checkUserLink(ctx context.Context, pharmacyID int64, userID *int64, selfID int64) error {
	if userID == nil {
		return nil
	}
	user, err := s.store.Users.GetByID(ctx, *userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	other, err := s.store.Employees.GetByUser(ctx, pharmacyID, *userID)
	if err != nil {
		return err
	}
	if other != nil && other.ID != selfID {
		return ErrUserAlreadyLinked
	}
	return nil
}

// ==================== 考勤 ====================

// Clocker 打卡操作人，店长可代任意员工打卡，其他成员只能为本人关联的员工档案打卡
type Clocker struct {
	UserID     int64
	MemberRole string
}

func (by Clocker) allowed(emp *model.Employee) bool {
	if model.RoleIn(by.MemberRole, model.ManagerRoles...) {
		return true
	}
	return emp.UserID != nil && *emp.UserID == by.UserID
}

// ClockIn 上班打卡，同一员工只能有一条未下班记录
func (s *HRService) ClockIn(ctx context.Context, pharmacyID int64, by Clocker, req *dto.ClockRequest) (*model.Attendance, error) {
	at := time.Now()
	if req.At != nil {
		at = *req.At
	}

	var att *model.Attendance
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		emp, err := tx.Employees.GetByID(ctx, pharmacyID, req.EmployeeID)
		if err != nil {
			return err
		}
		if emp == nil {
			return ErrEmployeeNotFound
		}
		if !by.allowed(emp) {
			return ErrClockOthers
		}
		if !emp.Active {
			return ErrEmployeeInactive
		}
		open, err := tx.Attendances.GetOpen(ctx, emp.ID)
		if err != nil {
			return err
		}
		if open != nil {
			return ErrAlreadyClockedIn
		}
		att = &model.Attendance{PharmacyID: pharmacyID, EmployeeID: emp.ID, ClockIn: at, Note: req.Note}
		return tx.Attendances.Create(ctx, att)
	})
	if err != nil {
		return nil, err
	}
	return att, nil
}

// ClockOut 下班打卡，工时由钩子计算
func (s *HRService) ClockOut(ctx context.Context, pharmacyID int64, by Clocker, req *dto.ClockRequest) (*model.Attendance, error) {
	at := time.Now()
	if req.At != nil {
		at = *req.At
	}

	var att *model.Attendance
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		emp, err := tx.Employees.GetByID(ctx, pharmacyID, req.EmployeeID)
		if err != nil {
			return err
		}
		if emp == nil {
			return ErrEmployeeNotFound
		}
		if !by.allowed(emp) {
			return ErrClockOthers
		}
		open, err := tx.Attendances.GetOpen(ctx, emp.ID)
		if err != nil {
			return err
		}
		if open == nil {
			return ErrNotClockedIn
		}
		open.ClockOut = &at
		if req.Note != "" {
			open.Note = req.Note
		}
		if err := tx.Attendances.Update(ctx, open); err != nil {
			return err
		}
		att = open
		return nil
	})
	if err != nil {
		return nil, err
	}
	return att, nil
}

// ListAttendance 考勤列表
func (s *HRService) ListAttendance(ctx context.Context, pharmacyID int64, req *dto.AttendanceListRequest) (*dto.PageResult[model.Attendance], error) {
	list, total, err := s.store.Attendances.List(ctx, repository.AttendanceFilter{
		PharmacyID: pharmacyID,
		EmployeeID: req.EmployeeID,
		DateRange:  toDateRange(req.PeriodQuery),
		Pagination: toPagination(req.PageQuery),
	})
	if err != nil {
		return nil, err
	}
	return dto.NewPageResult(list, total), nil
}

// ==================== 请假 ====================

// CreateLeave 提交请假，与待审批或已批准的请假重叠时拒绝
func (s *HRService) CreateLeave(ctx context.Context, pharmacyID int64, req *dto.LeaveRequestCreate) (*model.LeaveRequest, error) {
	if req.EndDate.Before(req.StartDate) {
		return nil, model.ErrInvalidPeriod
	}
	emp, err := s.GetEmployee(ctx, pharmacyID, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	overlap, err := s.store.Leaves.HasOverlap(ctx, emp.ID, req.StartDate, req.EndDate, 0)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, ErrLeaveOverlap
	}

	leave := &model.LeaveRequest{
		PharmacyID: pharmacyID,
		EmployeeID: emp.ID,
		Type:       req.Type,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Reason:     req.Reason,
		Status:     model.LeaveStatusPending,
		Employee:   emp,
	}
	if err := s.store.Leaves.Create(ctx, leave); err != nil {
		return nil, err
	}
	return leave, nil
}

// ReviewLeave 审批请假，仅待审批可审
func (s *HRService) ReviewLeave(ctx context.Context, pharmacyID, reviewerID, id int64, req *dto.LeaveReviewRequest) (*model.LeaveRequest, error) {
	leave, err := s.getLeave(ctx, pharmacyID, id)
	if err != nil {
		return nil, err
	}
	if leave.Status != model.LeaveStatusPending {
		return nil, ErrLeaveNotPending
	}

	now := time.Now()
	leave.Status = model.LeaveStatusRejected
	if req.Approve {
		leave.Status = model.LeaveStatusApproved
	}
	leave.ReviewerID = &reviewerID
	leave.ReviewComment = req.Comment
	leave.ReviewedAt = &now
	if err := s.store.Leaves.Update(ctx, leave); err != nil {
		return nil, err
	}
	return leave, nil
}

// CancelLeave 撤销待审批的请假
func (s *HRService) CancelLeave(ctx context.Context, pharmacyID, id int64) (*model.LeaveRequest, error) {
	leave, err := s.getLeave(ctx, pharmacyID, id)
	if err != nil {
		return nil, err
	}
	if leave.Status != model.LeaveStatusPending {
		return nil, ErrLeaveNotPending
	}
	leave.Status = model.LeaveStatusCancelled
	if err := s.store.Leaves.Update(ctx, leave); err != nil {
		return nil, err
	}
	return leave, nil
}

// ListLeaves 请假列表
func (s *HRService) ListLeaves(ctx context.Context, pharmacyID int64, req *dto.LeaveListRequest) (*dto.PageResult[model.LeaveRequest], error) {
	list, total, err := s.store.Leaves.List(ctx, repository.LeaveFilter{
		PharmacyID: pharmacyID,
		EmployeeID: req.EmployeeID,
		Status:     req.Status,
		Pagination: toPagination(req.PageQuery),
	})
	if err != nil {
		return nil, err
	}
	return dto.NewPageResult(list, total), nil
}

func (s *HRService) getLeave(ctx context.Context, pharmacyID, id int64) (*model.LeaveRequest, error) {
	leave, err := s.store.Leaves.GetByID(ctx, pharmacyID, id)
	if err != nil {
		return nil, err
	}
	if leave == nil {
		return nil, ErrLeaveNotFound
	}
	return leave, nil
}

// ==================== 工资 ====================

// GeneratePayslips 生成某月工资单，已有工资单的员工跳过
// 月薪为 0 时按当月已完成考勤工时 × 时薪计算
func (s *HRService) GeneratePayslips(ctx context.Context, pharmacyID int64, req *dto.GeneratePayslipsRequest) ([]model.Payslip, error) {
	month, err := time.ParseInLocation("2006-01", req.Period, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: period %q", ErrInvalidInput, req.Period)
	}
	from, to := month, month.AddDate(0, 1, 0)

	created := make([]model.Payslip, 0)
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		employees, err := s.payrollEmployees(ctx, tx, pharmacyID, req.EmployeeIDs)
		if err != nil {
			return err
		}
		for i := range employees {
			emp := &employees[i]
			exists, err := tx.Payslips.ExistsForPeriod(ctx, emp.ID, req.Period)
			if err != nil {
				return err
			}
			if exists {
				continue
			}

			minutes, err := tx.Attendances.SumMinutes(ctx, emp.ID, from, to)
			if err != nil {
				return err
			}
			gross := emp.MonthlySalary
			if gross == 0 {
				gross = minutes * emp.HourlyRate / 60
			}

			slip := model.Payslip{
				PharmacyID:  pharmacyID,
				EmployeeID:  emp.ID,
				Period:      req.Period,
				HoursWorked: int(minutes / 60),
				Gross:       gross,
				Status:      model.PayslipDraft,
			}
			if err := tx.Payslips.Create(ctx, &slip); err != nil {
				return err
			}
			created = append(created, slip)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("工资单已生成", zap.Int64("pharmacy_id", pharmacyID), zap.String("period", req.Period), zap.Int("count", len(created)))
	return created, nil
}

func (s *HRService) payrollEmployees(ctx context.Context, tx *repository.Store, pharmacyID int64, ids []int64) ([]model.Employee, error) {
	if len(ids) == 0 {
		return tx.Employees.ListActive(ctx, pharmacyID)
	}
	list := make([]model.Employee, 0, len(ids))
	for _, id := range ids {
		emp, err := tx.Employees.GetByID(ctx, pharmacyID, id)
		if err != nil {
			return nil, err
		}
		if emp == nil {
			return nil, fmt.Errorf("%w: #%d", ErrEmployeeNotFound, id)
		}
		list = append(list, *emp)
	}
	return list, nil
}

// GetPayslip 工资单详情
func (s *HRService) GetPayslip(ctx context.Context, pharmacyID, id int64) (*model.Payslip, error) {
	slip, err := s.store.Payslips.GetByID(ctx, pharmacyID, id)
	if err != nil {
		return nil, err
	}
	if slip == nil {
		return nil, ErrPayslipNotFound
	}
	return slip, nil
}

// UpdatePayslip 调整草稿工资单的奖金与扣款，实发由钩子重算
func (s *HRService) UpdatePayslip(ctx context.Context, pharmacyID, id int64, req *dto.UpdatePayslipRequest) (*model.Payslip, error) {
	slip, err := s.GetPayslip(ctx, pharmacyID, id)
	if err != nil {
		return nil, err
	}
	if slip.Status != model.PayslipDraft {
		return nil, ErrPayslipValidated
	}
	if req.Bonus != nil {
		slip.Bonus = *req.Bonus
	}
	if req.Deductions != nil {
		slip.Deductions = *req.Deductions
	}
	if err := s.store.Payslips.Update(ctx, slip); err != nil {
		return nil, err
	}
	return slip, nil
}

// ValidatePayslip 确认工资单，确认后不可修改
func (s *HRService) ValidatePayslip(ctx context.Context, pharmacyID, id int64) (*model.Payslip, error) {
	slip, err := s.GetPayslip(ctx, pharmacyID, id)
	if err != nil {
		return nil, err
	}
	if slip.Status != model.PayslipDraft {
		return nil, ErrPayslipValidated
	}
	slip.Status = model.PayslipValidated
	if err := s.store.Payslips.Update(ctx, slip); err != nil {
		return nil, err
	}
	return slip, nil
}

// ListPayslips 工资单列表
func (s *HRService) ListPayslips(ctx context.Context, pharmacyID int64, req *dto.PayslipListRequest) (*dto.PageResult[model.Payslip], error) {
	list, total, err := s.store.Payslips.List(ctx, repository.PayslipFilter{
		PharmacyID: pharmacyID,
		EmployeeID: req.EmployeeID,
		Period:     req.Period,
		Pagination: toPagination(req.PageQuery),
	})
	if err != nil {
		return nil, err
	}
	return dto.NewPageResult(list, total), nil
}

// ==================== 错误定义 ====================

var (
	ErrEmployeeNotFound  = fmt.Errorf("员工%w", ErrNotFound)
	ErrEmployeeInactive  = fmt.Errorf("%w: 员工已离职", ErrInvalidState)
	ErrUserAlreadyLinked = fmt.Errorf("该账号已关联其他员工: %w", ErrConflict)
	ErrAlreadyClockedIn  = fmt.Errorf("%w: 已有未下班的打卡记录", ErrInvalidState)
	ErrNotClockedIn      = fmt.Errorf("%w: 没有未下班的打卡记录", ErrInvalidState)
	ErrClockOthers       = fmt.Errorf("%w: 只能为本人打卡", ErrForbidden)
	ErrLeaveNotFound     = fmt.Errorf("请假申请%w", ErrNotFound)
	ErrLeaveNotPending   = fmt.Errorf("%w: 仅待审批的请假可操作", ErrInvalidState)
	ErrLeaveOverlap      = fmt.Errorf("请假日期与已有申请重叠: %w", ErrConflict)
	ErrPayslipNotFound   = fmt.Errorf("工资单%w", ErrNotFound)
	ErrPayslipValidated  = fmt.Errorf("%w: 工资单已确认", ErrInvalidState)
)
