package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pharmacy_erp/internal/model"
)

// ==================== InvoiceRepository 发票仓库 ====================

type InvoiceRepository interface {
	Create(ctx context.Context, inv *model.Invoice) error
	GetByID(ctx context.Context, pharmacyID, id int64) (*model.Invoice, error)
	GetForUpdate(ctx context.Context, pharmacyID, id int64) (*model.Invoice, error)
	Update(ctx context.Context, inv *model.Invoice) error
	ReplaceLines(ctx context.Context, inv *model.Invoice, lines []model.InvoiceLine) error
	AddPayment(ctx context.Context, p *model.InvoicePayment) error
	List(ctx context.Context, filter InvoiceFilter) ([]model.Invoice, int64, error)
	ListInRange(ctx context.Context, pharmacyID int64, from, to time.Time) ([]model.Invoice, error)
	ExistsForSale(ctx context.Context, saleID int64) (bool, error)
	Outstanding(ctx context.Context, pharmacyID int64) (int64, int64, error)
	CollectedInRange(ctx context.Context, pharmacyID int64, from, to time.Time) (int64, error)
}

// InvoiceFilter 发票筛选条件
type InvoiceFilter struct {
	PharmacyID int64
	CustomerID int64
	Status     string
	Overdue    bool
	DateRange
	Pagination
}

type invoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, inv *model.Invoice) error {
	return r.db.WithContext(ctx).Omit("Payments").Create(inv).Error
}

func (r *invoiceRepository) GetByID(ctx context.Context, pharmacyID, id int64) (*model.Invoice, error) {
	var inv model.Invoice
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("paid_at ASC") }).
		Where("pharmacy_id = ?", pharmacyID).
		First(&inv, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &inv, err
}

func (r *invoiceRepository) GetForUpdate(ctx context.Context, pharmacyID, id int64) (*model.Invoice, error) {
	var inv model.Invoice
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("pharmacy_id = ?", pharmacyID).
		First(&inv, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &inv, err
}

func (r *invoiceRepository) Update(ctx context.Context, inv *model.Invoice) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(inv).Error
}

// ReplaceLines 草稿发票重写明细并重算合计
func (r *invoiceRepository) ReplaceLines(ctx context.Context, inv *model.Invoice, lines []model.InvoiceLine) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("invoice_id = ?", inv.ID).Delete(&model.InvoiceLine{}).Error; err != nil {
		return err
	}
	for i := range lines {
		lines[i].ID = 0
		lines[i].InvoiceID = inv.ID
	}
	if len(lines) > 0 {
		if err := db.Create(&lines).Error; err != nil {
			return err
		}
	}
	inv.Lines = lines
	if len(lines) == 0 {
		inv.TotalHT, inv.TotalVAT, inv.TotalTTC = 0, 0, 0
	}
	return db.Omit(clause.Associations).Save(inv).Error
}

// AddPayment 写入收款，钩子级联发票余额与状态
func (r *invoiceRepository) AddPayment(ctx context.Context, p *model.InvoicePayment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *invoiceRepository) List(ctx context.Context, filter InvoiceFilter) ([]model.Invoice, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Invoice{}).Where("pharmacy_id = ?", filter.PharmacyID)
	if filter.CustomerID > 0 {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Overdue {
		query = query.Where("status IN ? AND due_date IS NOT NULL AND due_date < ?",
			[]string{model.InvoiceIssued, model.InvoicePartial}, time.Now())
	}
	query = filter.DateRange.apply(query, "issue_date")

	var list []model.Invoice
	total, err := paginate(query, filter.Pagination, "id DESC", &list)
	return list, total, err
}

func (r *invoiceRepository) ListInRange(ctx context.Context, pharmacyID int64, from, to time.Time) ([]model.Invoice, error) {
	var list []model.Invoice
	err := r.db.WithContext(ctx).
		Where("pharmacy_id = ? AND issue_date >= ? AND issue_date < ? AND status <> ?", pharmacyID, from, to, model.InvoiceDraft).
		Order("issue_date ASC, id ASC").
		Find(&list).Error
	return list, err
}

func (r *invoiceRepository) ExistsForSale(ctx context.Context, saleID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Invoice{}).
		Where("sale_id = ? AND status <> ?", saleID, model.InvoiceCancelled).
		Count(&count).Error
	return count > 0, err
}

// Outstanding 未结清发票数量与余额
func (r *invoiceRepository) Outstanding(ctx context.Context, pharmacyID int64) (int64, int64, error) {
	var row struct {
		Count   int64
		Balance int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Invoice{}).
		Select("COUNT(*) AS count, COALESCE(SUM(balance), 0) AS balance").
		Where("pharmacy_id = ? AND status IN ?", pharmacyID, []string{model.InvoiceIssued, model.InvoicePartial}).
		Scan(&row).Error
	return row.Count, row.Balance, err
}

// CollectedInRange 区间内发票收款合计
func (r *invoiceRepository) CollectedInRange(ctx context.Context, pharmacyID int64, from, to time.Time) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).
		Table("invoice_payments").
		Select("COALESCE(SUM(invoice_payments.amount), 0)").
		Joins("JOIN invoices ON invoices.id = invoice_payments.invoice_id").
		Where("invoices.pharmacy_id = ? AND invoice_payments.paid_at >= ? AND invoice_payments.paid_at < ?", pharmacyID, from, to).
		Where("invoice_payments.deleted_at IS NULL").
		Scan(&sum).Error
	return sum, err
}

// ==================== ExpenseRepository 费用仓库 ====================

type ExpenseRepository interface {
	Create(ctx context.Context, e *model.Expense) error
	GetByID(ctx context.Context, pharmacyID, id int64) (*model.Expense, error)
	Update(ctx context.Context, e *model.Expense) error
	Delete(ctx context.Context, pharmacyID, id int64) error
	List(ctx context.Context, filter ExpenseFilter) ([]model.Expense, int64, error)
	SumByCategory(ctx context.Context, pharmacyID int64, from, to time.Time) (map[string]int64, error)
}

// ExpenseFilter 费用筛选条件
type ExpenseFilter struct {
	PharmacyID int64
	Category   string
	DateRange
	Pagination
}

type expenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, e *model.Expense) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *expenseRepository) GetByID(ctx context.Context, pharmacyID, id int64) (*model.Expense, error) {
	var e model.Expense
	err := r.db.WithContext(ctx).Where("pharmacy_id = ?", pharmacyID).First(&e, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &e, err
}

func (r *expenseRepository) Update(ctx context.Context, e *model.Expense) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *expenseRepository) Delete(ctx context.Context, pharmacyID, id int64) error {
	return r.db.WithContext(ctx).
		Where("pharmacy_id = ? AND id = ?", pharmacyID, id).
		Delete(&model.Expense{}).Error
}

func (r *expenseRepository) List(ctx context.Context, filter ExpenseFilter) ([]model.Expense, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Expense{}).Where("pharmacy_id = ?", filter.PharmacyID)
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	query = filter.DateRange.apply(query, "spent_on")

	var list []model.Expense
	total, err := paginate(query, filter.Pagination, "spent_on DESC, id DESC", &list)
	return list, total, err
}

func (r *expenseRepository) SumByCategory(ctx context.Context, pharmacyID int64, from, to time.Time) (map[string]int64, error) {
	var rows []struct {
		Category string
		Amount   int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Expense{}).
		Select("category, COALESCE(SUM(amount), 0) AS amount").
		Where("pharmacy_id = ? AND spent_on >= ? AND spent_on < ?", pharmacyID, from, to).
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Category] = row.Amount
	}
	return out, nil
}
