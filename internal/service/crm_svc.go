package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"pharmacy_erp/internal/api/dto"
	"pharmacy_erp/internal/model"
	"pharmacy_erp/internal/repository"
	"pharmacy_erp/pkg/logger"
)

// ScanURLExpiry 处方扫描件签名地址有效期
const ScanURLExpiry = 15 * time.Minute

// CRMService 顾客、处方、预约、随访与积分
type CRMService struct {
	store   *repository.Store
	storage *StorageService
	log     *zap.Logger
}

// NewCRMService storage 可为 nil，此时不支持处方扫描件
func NewCRMService(store *repository.Store, storage *StorageService) *CRMService {
	return &CRMService{store: store, storage: storage, log: logger.Named("crm")}
}

// ==================== 顾客 ====================

// CreateCustomer 新建顾客，钩子分配编号并开通积分账户
func (s *CRMService) CreateCustomer(ctx context.Context, pharmacyID int64, req *dto.CustomerRequest) (*model.Customer, error) {
	c := &model.Customer{PharmacyID: pharmacyID}
	if err := s.applyCustomer(ctx, c, req); err != nil {
		return nil, err
	}
	if err := s.store.Customers.Create(ctx, c); err != nil {
		return nil, err
	}
	return s.GetCustomer(ctx, pharmacyID, c.ID)
}

// UpdateCustomer 修改顾客档案
func (s *CRMService) UpdateCustomer(ctx context.Context, pharmacyID, id int64, req *dto.CustomerRequest) (*model.Customer, error) {
	c, err := s.GetCustomer(ctx, pharmacyID, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyCustomer(ctx, c, req); err != nil {
		return nil, err
	}
	if err := s.store.Customers.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CRMService) applyCustomer(ctx context.Context, c *model.Customer, req *dto.CustomerRequest) error {
	if req.UserID != nil && (c.UserID == nil || *c.UserID != *req.UserID) {
		user, err := s.store.Users.GetByID(ctx, *req.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}
		other, err := s.store.Customers.GetByUser(ctx, c.PharmacyID, *req.UserID)
		if err != nil {
			return err
		}
		if other != nil && other.ID != c.ID {
			return ErrUserAlreadyLinked
		}
	}

	allergies, err := jsonList(req.Allergies)
	if err != nil {
		return err
	}
	chronic, err := jsonList(req.ChronicConditions)
	if err != nil {
		return err
	}

	c.UserID = req.UserID
	c.FirstName = req.FirstName
	c.LastName = req.LastName
	c.BirthDate = req.BirthDate
	c.Gender = req.Gender
	c.Phone = req.Phone
	c.Email = req.Email
	c.Address = req.Address
	c.InsuranceNumber = req.InsuranceNumber
	c.Allergies = allergies
	c.ChronicConditions = chronic
	c.Notes = req.Notes
	return nil
}

func jsonList[T any](items []T) (datatypes.JSON, error) {
	if items == nil {
		items = []T{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

// GetCustomer 顾客详情（含积分账户）
func (s *CRMService) GetCustomer(ctx context.Context, pharmacyID, id int64) (*model.Customer, error) {
	c, err := s.store.Customers.GetByID(ctx, pharmacyID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCustomerNotFound
	}
	return c, nil
}

// DeleteCustomer 删除顾客（软删除，历史单据保留）
func (s *CRMService) DeleteCustomer(ctx context.Context, pharmacyID, id int64) error {
	if _, err := s.GetCustomer(ctx, pharmacyID, id); err != nil {
		return err
	}
	return s.store.Customers.Delete(ctx, pharmacyID, id)
}

// ListCustomers 顾客搜索
func (s *CRMService) ListCustomers(ctx context.Context, pharmacyID int64, req *dto.CustomerListRequest) (*dto.PageResult[model.Customer], error) {
	list, total, err := s.store.Customers.List(ctx, repository.CustomerFilter{
		PharmacyID: pharmacyID,
		Keyword:    req.Keyword,
		Pagination: toPagination(req.PageQuery),
	})
	if err != nil {
		return nil, err
	}
	return dto.NewPageResult(list, total), nil
}

// CustomerHistory 最近的消费、处方、预约与积分
func (s *CRMService) CustomerHistory(ctx context.Context, pharmacyID, id int64) (*dto.CustomerHistory, error) {
	c, err := s.GetCustomer(ctx, pharmacyID, id)
	if err != nil {
		return nil, err
	}
	recent := repository.Pagination{Page: 1, PageSize: 20}

	sales, _, err := s.store.Sales.List(ctx, repository.SaleFilter{PharmacyID: pharmacyID, CustomerID: id, Pagination: recent})
	if err != nil {
		return nil, err
	}
	rx, _, err := s.store.Prescriptions.List(ctx, repository.PrescriptionFilter{PharmacyID: pharmacyID, CustomerID: id, Pagination: recent})
	if err != nil {
		return nil, err
	}
	appts, _, err := s.store.Appointments.List(ctx, repository.AppointmentFilter{PharmacyID: pharmacyID, CustomerID: id, Pagination: recent})
	if err != nil {
		return nil, err
	}
	return &dto.CustomerHistory{
		Sales:         nonNil(sales),
		Prescriptions: nonNil(rx),
		Appointments:  nonNil(appts),
		Loyalty:       c.LoyaltyAccount,
	}, nil
}

func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}

// ==================== 处方 ====================

// CreatePrescription 登记处方，有效期由钩子计算
func (s *CRMService) CreatePrescription(ctx context.Context, pharmacyID int64, req *dto.PrescriptionRequest) (*model.Prescription, error) {
	p := &model.Prescription{PharmacyID: pharmacyID}
	if err := s.applyPrescription(ctx, p, req); err != nil {
		return nil, err
	}
	if err := s.store.Prescriptions.Create(ctx, p); err != nil {
		return nil, err
	}
	return s.GetPrescription(ctx, pharmacyID, p.ID)
}

// UpdatePrescription 仅待配药处方可修改
func (s *CRMService) UpdatePrescription(ctx context.Context, pharmacyID, id int64, req *dto.PrescriptionRequest) (*model.Prescription, error) {
	p, err := s.getPrescription(ctx, pharmacyID, id)
	if err != nil {
		return nil, err
	}
	if p.Status != model.PrescriptionPending {
		return nil, ErrPrescriptionNotUsable
	}
	if err := s.applyPrescription(ctx, p, req); err != nil {
		return nil, err
	}
	p.Customer = nil
	if err := s.store.Prescriptions.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.GetPrescription(ctx, pharmacyID, id)
}

func (s *CRMService) applyPrescription(ctx context.Context, p *model.Prescription, req *dto.PrescriptionRequest) error {
	if _, err := s.GetCustomer(ctx, p.PharmacyID, req.CustomerID); err != nil {
		return err
	}
	items, err := jsonList(req.Items)
	if err != nil {
		return err
	}
	p.CustomerID = req.CustomerID
	p.PrescriberName = req.PrescriberName
	p.PrescriberRPPS = req.PrescriberRPPS
	p.IssuedAt = req.IssuedAt
	p.ValidityDays = req.ValidityDays
	p.Items = items
	p.Notes = req.Notes
	return nil
}

func (s *CRMService) getPrescription(ctx context.Context, pharmacyID, id int64) (*model.Prescription, error) {
	p, err := s.store.Prescriptions.GetByID(ctx, pharmacyID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPrescriptionNotFound
	}
	return p, nil
}

// GetPrescription 处方详情，扫描件返回限时签名地址
func (s *CRMService) GetPrescription(ctx context.Context, pharmacyID, id int64) (*model.Prescription, error) {
	p, err := s.getPrescription(ctx, pharmacyID, id)
	if err != nil {
		return nil, err
	}
	if p.ScanKey != "" && s.storage != nil {
		signed, err := s.storage.GetSignedURL(ctx, p.ScanKey, ScanURLExpiry)
		if err != nil {
			s.log.Warn("处方扫描件签名失败", zap.Int64("prescription_id", p.ID), zap.Error(err))
		} else {
			p.ScanURL = signed
		}
	}
	return p, nil
}

// ListPrescriptions 处方列表
func (s *CRMService) ListPrescriptions(ctx context.Context, pharmacyID int64, req *dto.PrescriptionListRequest) (*dto.PageResult[model.Prescription], error) {
	list, total, err := s.store.Prescriptions.List(ctx, repository.PrescriptionFilter{
		PharmacyID: pharmacyID,
		CustomerID: req.CustomerID,
		Status:     req.Status,
		Pagination: toPagination(req.PageQuery),
	})
	if err != nil {
		return nil, err
	}
	return dto.NewPageResult(list, total), nil
}

// UploadPrescriptionScan 上传处方扫描件（图片或 PDF），替换旧文件
func (s *CRMService) UploadPrescriptionScan(ctx context.Context, pharmacyID, id int64, data []byte, filename string) (*model.Prescription, error) {
	if s.storage == nil {
		return nil, ErrStorageDisabled
	}
	p, err := s.getPrescription(ctx, pharmacyID, id)
	if err != nil {
		return nil, err
	}
	obj, err := s.storage.UploadDocument(ctx, data, FolderPrescriptions, filename)
	if err != nil {
		return nil, err
	}

	oldKey := p.ScanKey
	p.ScanKey = obj.Key
	p.ScanURL = obj.URL
	p.Customer = nil
	if err := s.store.Prescriptions.Update(ctx, p); err != nil {
		_ = s.storage.Delete(ctx, obj.Key)
		return nil, err
	}
	if oldKey != "" {
		if err := s.storage.Delete(ctx, oldKey); err != nil {
			s.log.Warn("删除旧扫描件失败", zap.String("key", oldKey), zap.Error(err))
		}
	}
	return s.GetPrescription(ctx, pharmacyID, id)
}

// ExpirePrescriptions 将过期未配药的处方标记为过期（全部药房）
func (s *CRMService) ExpirePrescriptions(ctx context.Context) (int64, error) {
	n, err := s.store.Prescriptions.ExpirePending(ctx, time.Now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.Info("处方已过期", zap.Int64("count", n))
	}
	return n, nil
}

// ==================== 预约 ====================

// CreateAppointment 新建预约，同一员工时间段不能重叠
func (s *CRMService) CreateAppointment(ctx context.Context, pharmacyID int64, req *dto.AppointmentRequest) (*model.Appointment, error) {
	a := &model.Appointment{PharmacyID: pharmacyID, Status: model.AppointmentScheduled}
	if err := s.applyAppointment(ctx, a, req); err != nil {
		return nil, err
	}
	if err := s.store.Appointments.Create(ctx, a); err != nil {
		return nil, err
	}
	return s.GetAppointment(ctx, pharmacyID, a.ID)
}

// UpdateAppointment 改期或改派，仅已排期的预约
func (s *CRMService) UpdateAppointment(ctx context.Context, pharmacyID, id int64, req *dto.AppointmentRequest) (*model.Appointment, error) {
	a, err := s.GetAppointment(ctx, pharmacyID, id)
	if err != nil {
		return nil, err
	}
	if a.Status != model.AppointmentScheduled {
		return nil, ErrAppointmentClosed
	}
	rescheduled := !a.ScheduledAt.Equal(req.ScheduledAt)
	if err := s.applyAppointment(ctx, a, req); err != nil {
		return nil, err
	}
	if rescheduled {
		a.ReminderSent = false
	}
	a.Customer = nil
	if err := s.store.Appointments.Update(ctx, a); err != nil {
		return nil, err
	}
	return s.GetAppointment(ctx, pharmacyID, id)
}

func (s *CRMService) applyAppointment(ctx context.Context, a *model.Appointment, req *dto.AppointmentRequest) error {
	if !model.ValidAppointmentType(req.Type) {
		return fmt.Errorf("%w: 预约类型 %s", ErrInvalidInput, req.Type)
	}
	if _, err := s.GetCustomer(ctx, a.PharmacyID, req.CustomerID); err != nil {
		return err
	}

	a.CustomerID = req.CustomerID
	a.StaffUserID = req.StaffUserID
	a.Type = req.Type
	a.ScheduledAt = req.ScheduledAt
	a.DurationMinutes = req.DurationMinutes
	if a.DurationMinutes <= 0 {
		a.DurationMinutes = 15
	}
	a.Notes = req.Notes

	if a.StaffUserID == nil {
		return nil
	}
	member, err := s.store.Members.GetActiveMember(ctx, a.PharmacyID, *a.StaffUserID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrMemberNotFound
	}
	conflict, err := s.store.Appointments.HasConflict(ctx, *a.StaffUserID, a.ScheduledAt, a.EndsAt(), a.ID)
	if err != nil {
		return err
	}
	if conflict {
		return ErrAppointmentConflict
	}
	return nil
}

// SetAppointmentStatus 完成、取消或标记爽约
func (s *CRMService) SetAppointmentStatus(ctx context.Context, pharmacyID, id int64, req *dto.AppointmentStatusRequest) (*model.Appointment, error) {
	a, err := s.GetAppointment(ctx, pharmacyID, id)
	if err != nil {
		return nil, err
	}
	if a.Status != model.AppointmentScheduled {
		return nil, ErrAppointmentClosed
	}
	a.Status = req.Status
	if req.Notes != "" {
		a.Notes = req.Notes
	}
	a.Customer = nil
	if err := s.store.Appointments.Update(ctx, a); err != nil {
		return nil, err
	}
	return s.GetAppointment(ctx, pharmacyID, id)
}

// GetAppointment 预约详情
func (s *CRMService) GetAppointment(ctx context.Context, pharmacyID, id int64) (*model.Appointment, error) {
	a, err := s.store.Appointments.GetByID(ctx, pharmacyID, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrAppointmentNotFound
	}
	return a, nil
}

// ListAppointments 预约列表；Upcoming 只看现在之后的已排期预约
func (s *CRMService) ListAppointments(ctx context.Context, pharmacyID int64, req *dto.AppointmentListRequest) (*dto.PageResult[model.Appointment], error) {
	filter := repository.AppointmentFilter{
		PharmacyID:  pharmacyID,
		CustomerID:  req.CustomerID,
		StaffUserID: req.StaffUserID,
		Status:      req.Status,
		Type:        req.Type,
		DateRange:   toDateRange(req.PeriodQuery),
		Pagination:  toPagination(req.PageQuery),
	}
	if req.Upcoming {
		filter.Status = model.AppointmentScheduled
		if filter.From == nil || filter.From.Before(time.Now()) {
			filter.From = ptr(time.Now())
		}
	}
	list, total, err := s.store.Appointments.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.NewPageResult(list, total), nil
}

// SendReminders 提醒 within 时间内开始的预约：有账号的顾客收到通知，否则通知负责员工
func (s *CRMService) SendReminders(ctx context.Context, within time.Duration) (int, error) {
	now := time.Now()
	list, err := s.store.Appointments.ListDueForReminder(ctx, now, now.Add(within))
	if err != nil {
		return 0, err
	}

	sent := 0
	db := s.store.DB().WithContext(ctx)
	for i := range list {
		a := &list[i]
		ok, err := s.store.Appointments.MarkReminded(ctx, a.ID)
		if err != nil {
			return sent, err
		}
		if !ok {
			continue
		}

		var recipient int64
		switch {
		case a.Customer != nil && a.Customer.UserID != nil:
			recipient = *a.Customer.UserID
		case a.StaffUserID != nil:
			recipient = *a.StaffUserID
		default:
			continue
		}
		err = model.Notify(db, recipient, model.NotificationInput{
			PharmacyID: a.PharmacyID,
			Topic:      model.TopicAppointmentReminder,
			Title:      "预约提醒",
			Body:       fmt.Sprintf("%s %s", a.Type, a.ScheduledAt.Format("2006-01-02 15:04")),
			Payload:    map[string]interface{}{"appointment_id": a.ID},
			DedupeKey:  fmt.Sprintf("appointment:%d:reminder:%d", a.ID, a.ScheduledAt.Unix()),
		})
		if err != nil {
			return sent, err
		}
		sent++
	}
	return sent, nil
}

// ==================== 随访记录 ====================

// AddNote 记录药事随访
func (s *CRMService) AddNote(ctx context.Context, pharmacyID, customerID, authorID int64, req *dto.MedicalNoteRequest) (*model.MedicalNote, error) {
	if _, err := s.GetCustomer(ctx, pharmacyID, customerID); err != nil {
		return nil, err
	}
	n := &model.MedicalNote{PharmacyID: pharmacyID, CustomerID: customerID, AuthorID: authorID, Title: req.Title, Body: req.Body}
	if err := s.store.Notes.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// ListNotes 顾客随访记录
func (s *CRMService) ListNotes(ctx context.Context, pharmacyID, customerID int64, page dto.PageQuery) (*dto.PageResult[model.MedicalNote], error) {
	if _, err := s.GetCustomer(ctx, pharmacyID, customerID); err != nil {
		return nil, err
	}
	list, total, err := s.store.Notes.ListByCustomer(ctx, pharmacyID, customerID, toPagination(page))
	if err != nil {
		return nil, err
	}
	return dto.NewPageResult(list, total), nil
}

// ==================== 积分 ====================

// GetLoyalty 积分账户
func (s *CRMService) GetLoyalty(ctx context.Context, pharmacyID, customerID int64) (*model.LoyaltyAccount, error) {
	if _, err := s.GetCustomer(ctx, pharmacyID, customerID); err != nil {
		return nil, err
	}
	acc, err := s.store.Loyalty.GetAccountByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, model.ErrLoyaltyAccountMissing)
	}
	return acc, nil
}

// AdjustLoyalty 手工调整积分，余额与等级由流水钩子更新
func (s *CRMService) AdjustLoyalty(ctx context.Context, pharmacyID, customerID, userID int64, req *dto.LoyaltyAdjustRequest) (*model.LoyaltyAccount, error) {
	acc, err := s.GetLoyalty(ctx, pharmacyID, customerID)
	if err != nil {
		return nil, err
	}
	err = s.store.Loyalty.CreateTransaction(ctx, &model.LoyaltyTransaction{
		AccountID: acc.ID,
		Type:      model.LoyaltyAdjust,
		Points:    req.Points,
		Note:      req.Note,
		CreatedBy: userID,
	})
	if err != nil {
		return nil, err
	}
	return s.store.Loyalty.GetAccountByCustomer(ctx, customerID)
}

// ListLoyaltyTransactions 积分流水
func (s *CRMService) ListLoyaltyTransactions(ctx context.Context, pharmacyID, customerID int64, page dto.PageQuery) (*dto.PageResult[model.LoyaltyTransaction], error) {
	acc, err := s.GetLoyalty(ctx, pharmacyID, customerID)
	if err != nil {
		return nil, err
	}
	list, total, err := s.store.Loyalty.ListTransactions(ctx, acc.ID, toPagination(page))
	if err != nil {
		return nil, err
	}
	return dto.NewPageResult(list, total), nil
}

// ==================== 错误定义 ====================

var (
	ErrCustomerNotFound     = fmt.Errorf("顾客%w", ErrNotFound)
	ErrPrescriptionNotFound = fmt.Errorf("处方%w", ErrNotFound)
	ErrAppointmentNotFound  = fmt.Errorf("预约%w", ErrNotFound)
	ErrAppointmentConflict  = fmt.Errorf("%w: 该员工此时段已有预约", ErrConflict)
	ErrAppointmentClosed    = fmt.Errorf("%w: 预约已结束", ErrInvalidState)
)
