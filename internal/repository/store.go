package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store 全部仓库的集合，Transaction 内的仓库共享同一事务
type Store struct {
	db *gorm.DB

	Users         UserRepository
	Pharmacies    PharmacyRepository
	Members       MemberRepository
	Employees     EmployeeRepository
	Attendances   AttendanceRepository
	Leaves        LeaveRepository
	Payslips      PayslipRepository
	Categories    CategoryRepository
	Products      ProductRepository
	Suppliers     SupplierRepository
	Batches       BatchRepository
	Movements     MovementRepository
	Purchases     PurchaseOrderRepository
	Sales         SaleRepository
	Invoices      InvoiceRepository
	Expenses      ExpenseRepository
	Customers     CustomerRepository
	Prescriptions PrescriptionRepository
	Appointments  AppointmentRepository
	Notes         MedicalNoteRepository
	Loyalty       LoyaltyRepository
	Conversations ConversationRepository
	Messages      MessageRepository
	Notifications NotificationRepository
	Activity      ActivityLogRepository
	Carts         CartRepository
	Orders        OnlineOrderRepository
	AICalls       AICallLogRepository
}

// NewStore 创建仓库集合
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:            db,
		Users:         NewUserRepository(db),
		Pharmacies:    NewPharmacyRepository(db),
		Members:       NewMemberRepository(db),
		Employees:     NewEmployeeRepository(db),
		Attendances:   NewAttendanceRepository(db),
		Leaves:        NewLeaveRepository(db),
		Payslips:      NewPayslipRepository(db),
		Categories:    NewCategoryRepository(db),
		Products:      NewProductRepository(db),
		Suppliers:     NewSupplierRepository(db),
		Batches:       NewBatchRepository(db),
		Movements:     NewMovementRepository(db),
		Purchases:     NewPurchaseOrderRepository(db),
		Sales:         NewSaleRepository(db),
		Invoices:      NewInvoiceRepository(db),
		Expenses:      NewExpenseRepository(db),
		Customers:     NewCustomerRepository(db),
		Prescriptions: NewPrescriptionRepository(db),
		Appointments:  NewAppointmentRepository(db),
		Notes:         NewMedicalNoteRepository(db),
		Loyalty:       NewLoyaltyRepository(db),
		Conversations: NewConversationRepository(db),
		Messages:      NewMessageRepository(db),
		Notifications: NewNotificationRepository(db),
		Activity:      NewActivityLogRepository(db),
		Carts:         NewCartRepository(db),
		Orders:        NewOnlineOrderRepository(db),
		AICalls:       NewAICallLogRepository(db),
	}
}

// DB 底层连接
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction 执行事务，fn 返回错误时回滚
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
