package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"pharmacy_erp/internal/model"
)

// ==================== CustomerRepository 顾客仓库 ====================

type CustomerRepository interface {
	Create(ctx context.Context, c *model.Customer) error
	GetByID(ctx context.Context, pharmacyID, id int64) (*model.Customer, error)
	GetByUser(ctx context.Context, pharmacyID, userID int64) (*model.Customer, error)
	Update(ctx context.Context, c *model.Customer) error
	Delete(ctx context.Context, pharmacyID, id int64) error
	List(ctx context.Context, filter CustomerFilter) ([]model.Customer, int64, error)
	Count(ctx context.Context, pharmacyID int64) (int64, error)
}

// CustomerFilter 顾客筛选条件
type CustomerFilter struct {
	PharmacyID int64
	Keyword    string
	Pagination
}

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

// Create 钩子同时开通积分账户
func (r *customerRepository) Create(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Omit("LoyaltyAccount").Create(c).Error
}

func (r *customerRepository) GetByID(ctx context.Context, pharmacyID, id int64) (*model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).
		Preload("LoyaltyAccount").
		Where("pharmacy_id = ?", pharmacyID).
		First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

func (r *customerRepository) GetByUser(ctx context.Context, pharmacyID, userID int64) (*model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).
		Where("pharmacy_id = ? AND user_id = ?", pharmacyID, userID).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

func (r *customerRepository) Update(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Omit("LoyaltyAccount").Save(c).Error
}

func (r *customerRepository) Delete(ctx context.Context, pharmacyID, id int64) error {
	return r.db.WithContext(ctx).
		Where("pharmacy_id = ? AND id = ?", pharmacyID, id).
		Delete(&model.Customer{}).Error
}

func (r *customerRepository) List(ctx context.Context, filter CustomerFilter) ([]model.Customer, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Customer{}).Where("pharmacy_id = ?", filter.PharmacyID)
	if filter.Keyword != "" {
		kw := likePattern(filter.Keyword)
		query = query.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(code) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			kw, kw, kw, kw, kw)
	}

	var list []model.Customer
	total, err := paginate(query, filter.Pagination, "id DESC", &list, "LoyaltyAccount")
	return list, total, err
}

func (r *customerRepository) Count(ctx context.Context, pharmacyID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Customer{}).Where("pharmacy_id = ?", pharmacyID).Count(&count).Error
	return count, err
}

// ==================== PrescriptionRepository 处方仓库 ====================

type PrescriptionRepository interface {
	Create(ctx context.Context, p *model.Prescription) error
	GetByID(ctx context.Context, pharmacyID, id int64) (*model.Prescription, error)
	Update(ctx context.Context, p *model.Prescription) error
	List(ctx context.Context, filter PrescriptionFilter) ([]model.Prescription, int64, error)
	ExpirePending(ctx context.Context, at time.Time) (int64, error)
}

// PrescriptionFilter 处方筛选条件
type PrescriptionFilter struct {
	PharmacyID int64
	CustomerID int64
	Status     string
	Pagination
}

type prescriptionRepository struct {
	db *gorm.DB
}

func NewPrescriptionRepository(db *gorm.DB) PrescriptionRepository {
	return &prescriptionRepository{db: db}
}

func (r *prescriptionRepository) Create(ctx context.Context, p *model.Prescription) error {
	return r.db.WithContext(ctx).Omit("Customer").Create(p).Error
}

func (r *prescriptionRepository) GetByID(ctx context.Context, pharmacyID, id int64) (*model.Prescription, error) {
	var p model.Prescription
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Where("pharmacy_id = ?", pharmacyID).
		First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *prescriptionRepository) Update(ctx context.Context, p *model.Prescription) error {
	return r.db.WithContext(ctx).Omit("Customer").Save(p).Error
}

func (r *prescriptionRepository) List(ctx context.Context, filter PrescriptionFilter) ([]model.Prescription, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Prescription{}).Where("pharmacy_id = ?", filter.PharmacyID)
	if filter.CustomerID > 0 {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var list []model.Prescription
	total, err := paginate(query, filter.Pagination, "issued_at DESC, id DESC", &list)
	return list, total, err
}

// ExpirePending 批量将过期的待配药处方标记为过期
func (r *prescriptionRepository) ExpirePending(ctx context.Context, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Prescription{}).
		Where("status = ? AND expires_at <= ?", model.PrescriptionPending, at).
		UpdateColumn("status", model.PrescriptionExpired)
	return res.RowsAffected, res.Error
}

// ==================== AppointmentRepository 预约仓库 ====================

type AppointmentRepository interface {
	Create(ctx context.Context, a *model.Appointment) error
	GetByID(ctx context.Context, pharmacyID, id int64) (*model.Appointment, error)
	Update(ctx context.Context, a *model.Appointment) error
	List(ctx context.Context, filter AppointmentFilter) ([]model.Appointment, int64, error)
	HasConflict(ctx context.Context, staffUserID int64, start, end time.Time, excludeID int64) (bool, error)
	ListDueForReminder(ctx context.Context, from, to time.Time) ([]model.Appointment, error)
	MarkReminded(ctx context.Context, id int64) (bool, error)
	CountInRange(ctx context.Context, pharmacyID int64, from, to time.Time) (int64, error)
}

// AppointmentFilter 预约筛选条件
type AppointmentFilter struct {
	PharmacyID  int64
	CustomerID  int64
	StaffUserID int64
	Status      string
	Type        string
	DateRange
	Pagination
}

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, a *model.Appointment) error {
	return r.db.WithContext(ctx).Omit("Customer").Create(a).Error
}

func (r *appointmentRepository) GetByID(ctx context.Context, pharmacyID, id int64) (*model.Appointment, error) {
	var a model.Appointment
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Where("pharmacy_id = ?", pharmacyID).
		First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &a, err
}

func (r *appointmentRepository) Update(ctx context.Context, a *model.Appointment) error {
	return r.db.WithContext(ctx).Omit("Customer").Save(a).Error
}

func (r *appointmentRepository) List(ctx context.Context, filter AppointmentFilter) ([]model.Appointment, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Appointment{}).Where("pharmacy_id = ?", filter.PharmacyID)
	if filter.CustomerID > 0 {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.StaffUserID > 0 {
		query = query.Where("staff_user_id = ?", filter.StaffUserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	query = filter.DateRange.apply(query, "scheduled_at")

	var list []model.Appointment
	total, err := paginate(query, filter.Pagination, "scheduled_at ASC, id ASC", &list, "Customer")
	return list, total, err
}

// HasConflict 同一员工已排期预约的时间段是否重叠
func (r *appointmentRepository) HasConflict(ctx context.Context, staffUserID int64, start, end time.Time, excludeID int64) (bool, error) {
	var list []model.Appointment
	err := r.db.WithContext(ctx).
		Select("id", "scheduled_at", "duration_minutes").
		Where("staff_user_id = ? AND status = ? AND id <> ?", staffUserID, model.AppointmentScheduled, excludeID).
		Where("scheduled_at < ? AND scheduled_at > ?", end, start.Add(-24*time.Hour)).
		Find(&list).Error
	if err != nil {
		return false, err
	}
	for _, a := range list {
		if a.ScheduledAt.Before(end) && a.EndsAt().After(start) {
			return true, nil
		}
	}
	return false, nil
}

// ListDueForReminder 区间内尚未提醒的排期预约（跨药房）
func (r *appointmentRepository) ListDueForReminder(ctx context.Context, from, to time.Time) ([]model.Appointment, error) {
	var list []model.Appointment
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Where("status = ? AND reminder_sent = ? AND scheduled_at >= ? AND scheduled_at < ?",
			model.AppointmentScheduled, false, from, to).
		Order("scheduled_at ASC").
		Find(&list).Error
	return list, err
}

// MarkReminded 条件更新，并发执行时只有一个成功
func (r *appointmentRepository) MarkReminded(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Appointment{}).
		Where("id = ? AND reminder_sent = ?", id, false).
		UpdateColumn("reminder_sent", true)
	return res.RowsAffected > 0, res.Error
}

func (r *appointmentRepository) CountInRange(ctx context.Context, pharmacyID int64, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Appointment{}).
		Where("pharmacy_id = ? AND status = ? AND scheduled_at >= ? AND scheduled_at < ?",
			pharmacyID, model.AppointmentScheduled, from, to).
		Count(&count).Error
	return count, err
}

// ==================== MedicalNoteRepository 随访记录仓库 ====================

type MedicalNoteRepository interface {
	Create(ctx context.Context, n *model.MedicalNote) error
	ListByCustomer(ctx context.Context, pharmacyID, customerID int64, p Pagination) ([]model.MedicalNote, int64, error)
}

type medicalNoteRepository struct {
	db *gorm.DB
}

func NewMedicalNoteRepository(db *gorm.DB) MedicalNoteRepository {
	return &medicalNoteRepository{db: db}
}

func (r *medicalNoteRepository) Create(ctx context.Context, n *model.MedicalNote) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *medicalNoteRepository) ListByCustomer(ctx context.Context, pharmacyID, customerID int64, p Pagination) ([]model.MedicalNote, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&model.MedicalNote{}).
		Where("pharmacy_id = ? AND customer_id = ?", pharmacyID, customerID)

	var list []model.MedicalNote
	total, err := paginate(query, p, "id DESC", &list)
	return list, total, err
}

// ==================== LoyaltyRepository 积分仓库 ====================

type LoyaltyRepository interface {
	GetAccountByCustomer(ctx context.Context, customerID int64) (*model.LoyaltyAccount, error)
	CreateTransaction(ctx context.Context, t *model.LoyaltyTransaction) error
	ListTransactions(ctx context.Context, accountID int64, p Pagination) ([]model.LoyaltyTransaction, int64, error)
}

type loyaltyRepository struct {
	db *gorm.DB
}

func NewLoyaltyRepository(db *gorm.DB) LoyaltyRepository {
	return &loyaltyRepository{db: db}
}

func (r *loyaltyRepository) GetAccountByCustomer(ctx context.Context, customerID int64) (*model.LoyaltyAccount, error) {
	var acc model.LoyaltyAccount
	err := r.db.WithContext(ctx).Where("customer_id = ?", customerID).First(&acc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &acc, err
}

// CreateTransaction 钩子更新账户余额与等级
func (r *loyaltyRepository) CreateTransaction(ctx context.Context, t *model.LoyaltyTransaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *loyaltyRepository) ListTransactions(ctx context.Context, accountID int64, p Pagination) ([]model.LoyaltyTransaction, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.LoyaltyTransaction{}).Where("account_id = ?", accountID)

	var list []model.LoyaltyTransaction
	total, err := paginate(query, p, "id DESC", &list)
	return list, total, err
}
