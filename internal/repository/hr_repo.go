package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pharmacy_erp/internal/model"
)

// ==================== EmployeeRepository 员工仓库 ====================

type EmployeeRepository interface {
	Create(ctx context.Context, emp *model.Employee) error
	GetByID(ctx context.Context, pharmacyID, id int64) (*model.Employee, error)
	GetByUser(ctx context.Context, pharmacyID, userID int64) (*model.Employee, error)
	Update(ctx context.Context, emp *model.Employee) error
	Delete(ctx context.Context, pharmacyID, id int64) error
	List(ctx context.Context, filter EmployeeFilter) ([]model.Employee, int64, error)
	ListActive(ctx context.Context, pharmacyID int64) ([]model.Employee, error)
}

// EmployeeFilter 员工筛选条件
type EmployeeFilter struct {
	PharmacyID   int64
	Keyword      string
	ContractType string
	Active       *bool
	Pagination
}

type employeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, emp *model.Employee) error {
	return r.db.WithContext(ctx).Create(emp).Error
}

func (r *employeeRepository) GetByID(ctx context.Context, pharmacyID, id int64) (*model.Employee, error) {
	var emp model.Employee
	err := r.db.WithContext(ctx).Where("pharmacy_id = ?", pharmacyID).First(&emp, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &emp, err
}

func (r *employeeRepository) GetByUser(ctx context.Context, pharmacyID, userID int64) (*model.Employee, error) {
	var emp model.Employee
	err := r.db.WithContext(ctx).
		Where("pharmacy_id = ? AND user_id = ?", pharmacyID, userID).
		First(&emp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &emp, err
}

func (r *employeeRepository) Update(ctx context.Context, emp *model.Employee) error {
	return r.db.WithContext(ctx).Save(emp).Error
}

func (r *employeeRepository) Delete(ctx context.Context, pharmacyID, id int64) error {
	return r.db.WithContext(ctx).
		Where("pharmacy_id = ? AND id = ?", pharmacyID, id).
		Delete(&model.Employee{}).Error
}

func (r *employeeRepository) List(ctx context.Context, filter EmployeeFilter) ([]model.Employee, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Employee{}).Where("pharmacy_id = ?", filter.PharmacyID)

	if filter.Keyword != "" {
		kw := likePattern(filter.Keyword)
		query = query.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(matricule) LIKE ?", kw, kw, kw)
	}
	if filter.ContractType != "" {
		query = query.Where("contract_type = ?", filter.ContractType)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}

	var list []model.Employee
	total, err := paginate(query, filter.Pagination, "id DESC", &list)
	return list, total, err
}

func (r *employeeRepository) ListActive(ctx context.Context, pharmacyID int64) ([]model.Employee, error) {
	var list []model.Employee
	err := r.db.WithContext(ctx).
		Where("pharmacy_id = ? AND active = ?", pharmacyID, true).
		Order("id ASC").
		Find(&list).Error
	return list, err
}

// ==================== AttendanceRepository 考勤仓库 ====================

type AttendanceRepository interface {
	Create(ctx context.Context, a *model.Attendance) error
	Update(ctx context.Context, a *model.Attendance) error
	GetByID(ctx context.Context, pharmacyID, id int64) (*model.Attendance, error)
	GetOpen(ctx context.Context, employeeID int64) (*model.Attendance, error)
	List(ctx context.Context, filter AttendanceFilter) ([]model.Attendance, int64, error)
	SumMinutes(ctx context.Context, employeeID int64, from, to time.Time) (int64, error)
}

// AttendanceFilter 考勤筛选条件
type AttendanceFilter struct {
	PharmacyID int64
	EmployeeID int64
	DateRange
	Pagination
}

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Create(ctx context.Context, a *model.Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *attendanceRepository) Update(ctx context.Context, a *model.Attendance) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *attendanceRepository) GetByID(ctx context.Context, pharmacyID, id int64) (*model.Attendance, error) {
	var a model.Attendance
	err := r.db.WithContext(ctx).Where("pharmacy_id = ?", pharmacyID).First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &a, err
}

// GetOpen 尚未下班打卡的记录（加锁）
func (r *attendanceRepository) GetOpen(ctx context.Context, employeeID int64) (*model.Attendance, error) {
	var a model.Attendance
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("employee_id = ? AND clock_out IS NULL", employeeID).
		Order("clock_in DESC").
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &a, err
}

func (r *attendanceRepository) List(ctx context.Context, filter AttendanceFilter) ([]model.Attendance, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Attendance{}).Where("pharmacy_id = ?", filter.PharmacyID)
	if filter.EmployeeID > 0 {
		query = query.Where("employee_id = ?", filter.EmployeeID)
	}
	query = filter.DateRange.apply(query, "clock_in")

	var list []model.Attendance
	total, err := paginate(query, filter.Pagination, "clock_in DESC", &list)
	return list, total, err
}

// SumMinutes 区间内已完成考勤的总工时（分钟）
func (r *attendanceRepository) SumMinutes(ctx context.Context, employeeID int64, from, to time.Time) (int64, error) {
	var minutes int64
	err := r.db.WithContext(ctx).
		Model(&model.Attendance{}).
		Select("COALESCE(SUM(worked_minutes), 0)").
		Where("employee_id = ? AND clock_in >= ? AND clock_in < ? AND clock_out IS NOT NULL", employeeID, from, to).
		Scan(&minutes).Error
	return minutes, err
}

// ==================== LeaveRepository 请假仓库 ====================

type LeaveRepository interface {
	Create(ctx context.Context, l *model.LeaveRequest) error
	GetByID(ctx context.Context, pharmacyID, id int64) (*model.LeaveRequest, error)
	Update(ctx context.Context, l *model.LeaveRequest) error
	List(ctx context.Context, filter LeaveFilter) ([]model.LeaveRequest, int64, error)
	HasOverlap(ctx context.Context, employeeID int64, start, end time.Time, excludeID int64) (bool, error)
}

// LeaveFilter 请假筛选条件
type LeaveFilter struct {
	PharmacyID int64
	EmployeeID int64
	Status     string
	Pagination
}

type leaveRepository struct {
	db *gorm.DB
}

func NewLeaveRepository(db *gorm.DB) LeaveRepository {
	return &leaveRepository{db: db}
}

func (r *leaveRepository) Create(ctx context.Context, l *model.LeaveRequest) error {
	return r.db.WithContext(ctx).Omit("Employee").Create(l).Error
}

func (r *leaveRepository) GetByID(ctx context.Context, pharmacyID, id int64) (*model.LeaveRequest, error) {
	var l model.LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("pharmacy_id = ?", pharmacyID).
		First(&l, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &l, err
}

func (r *leaveRepository) Update(ctx context.Context, l *model.LeaveRequest) error {
	return r.db.WithContext(ctx).Omit("Employee").Save(l).Error
}

func (r *leaveRepository) List(ctx context.Context, filter LeaveFilter) ([]model.LeaveRequest, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.LeaveRequest{}).Where("pharmacy_id = ?", filter.PharmacyID)
	if filter.EmployeeID > 0 {
		query = query.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var list []model.LeaveRequest
	total, err := paginate(query, filter.Pagination, "id DESC", &list, "Employee")
	return list, total, err
}

// HasOverlap 同一员工待审或已批的请假是否与区间重叠
func (r *leaveRepository) HasOverlap(ctx context.Context, employeeID int64, start, end time.Time, excludeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.LeaveRequest{}).
		Where("employee_id = ? AND id <> ?", employeeID, excludeID).
		Where("status IN ?", []string{model.LeaveStatusPending, model.LeaveStatusApproved}).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Count(&count).Error
	return count > 0, err
}

// ==================== PayslipRepository 工资单仓库 ====================

type PayslipRepository interface {
	Create(ctx context.Context, p *model.Payslip) error
	GetByID(ctx context.Context, pharmacyID, id int64) (*model.Payslip, error)
	Update(ctx context.Context, p *model.Payslip) error
	List(ctx context.Context, filter PayslipFilter) ([]model.Payslip, int64, error)
	ExistsForPeriod(ctx context.Context, employeeID int64, period string) (bool, error)
}

// PayslipFilter 工资单筛选条件
type PayslipFilter struct {
	PharmacyID int64
	EmployeeID int64
	Period     string
	Pagination
}

type payslipRepository struct {
	db *gorm.DB
}

func NewPayslipRepository(db *gorm.DB) PayslipRepository {
	return &payslipRepository{db: db}
}

func (r *payslipRepository) Create(ctx context.Context, p *model.Payslip) error {
	return r.db.WithContext(ctx).Omit("Employee").Create(p).Error
}

func (r *payslipRepository) GetByID(ctx context.Context, pharmacyID, id int64) (*model.Payslip, error) {
	var p model.Payslip
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("pharmacy_id = ?", pharmacyID).
		First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *payslipRepository) Update(ctx context.Context, p *model.Payslip) error {
	return r.db.WithContext(ctx).Omit("Employee").Save(p).Error
}

func (r *payslipRepository) List(ctx context.Context, filter PayslipFilter) ([]model.Payslip, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Payslip{}).Where("pharmacy_id = ?", filter.PharmacyID)
	if filter.EmployeeID > 0 {
		query = query.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Period != "" {
		query = query.Where("period = ?", filter.Period)
	}

	var list []model.Payslip
	total, err := paginate(query, filter.Pagination, "period DESC, id DESC", &list, "Employee")
	return list, total, err
}

func (r *payslipRepository) ExistsForPeriod(ctx context.Context, employeeID int64, period string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Payslip{}).
		Where("employee_id = ? AND period = ?", employeeID, period).
		Count(&count).Error
	return count > 0, err
}
