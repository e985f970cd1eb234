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

// FinanceService 发票、费用与财务汇总
type FinanceService struct {
	store   *repository.Store
	storage *StorageService
	log     *zap.Logger
}

// NewFinanceService storage 可为 nil，此时不支持上传费用票据
func NewFinanceService(store *repository.Store, storage *StorageService) *FinanceService {
	return &FinanceService{store: store, storage: storage, log: logger.Named("finance")}
}

// ==================== 发票 ====================

// CreateFromSale 由已完成销售开票；Issue 为 true 时直接开具并登记柜台收款
func (s *FinanceService) CreateFromSale(ctx context.Context, pharmacyID, userID int64, req *dto.InvoiceFromSaleRequest) (*model.Invoice, error) {
	var inv *model.Invoice
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		sale, err := tx.Sales.GetByID(ctx, pharmacyID, req.SaleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return ErrSaleNotFound
		}
		if sale.Status != model.SaleCompleted {
			return fmt.Errorf("%w: 作废的销售不能开票", ErrInvalidState)
		}
		exists, err := tx.Invoices.ExistsForSale(ctx, sale.ID)
		if err != nil {
			return err
		}
		if exists {
			return ErrSaleInvoiced
		}

		billTo := req.BillTo
		if billTo == "" && sale.CustomerID != nil {
			c, err := tx.Customers.GetByID(ctx, pharmacyID, *sale.CustomerID)
			if err != nil {
				return err
			}
			if c != nil {
				billTo = c.FullName()
			}
		}

		inv = &model.Invoice{
			PharmacyID: pharmacyID,
			CustomerID: sale.CustomerID,
			SaleID:     &sale.ID,
			BillTo:     billTo,
			DueDate:    req.DueDate,
			Status:     model.InvoiceDraft,
			Notes:      sale.Number,
			Lines:      invoiceLinesFromSale(sale),
		}
		if req.Issue {
			inv.Status = model.InvoiceIssued
			inv.IssuedBy = userID
		}
		if err := tx.Invoices.Create(ctx, inv); err != nil {
			return err
		}
		if !req.Issue {
			return nil
		}
		for _, p := range counterPayments(sale) {
			p.InvoiceID = inv.ID
			p.PaidAt = sale.SoldAt
			if err := tx.Invoices.AddPayment(ctx, &p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetInvoice(ctx, pharmacyID, inv.ID)
}

// invoiceLinesFromSale 单价不能整除时按一行合计开票
func invoiceLinesFromSale(sale *model.Sale) []model.InvoiceLine {
	lines := make([]model.InvoiceLine, 0, len(sale.Lines))
	for _, l := range sale.Lines {
		productID := l.ProductID
		line := model.InvoiceLine{
			ProductID: &productID,
			Label:     l.ProductName,
			Quantity:  l.Quantity,
			UnitPrice: l.TotalTTC / int64(l.Quantity),
			VATRate:   l.VATRate,
		}
		if l.TotalTTC%int64(l.Quantity) != 0 {
			line.Label = fmt.Sprintf("%s x%d", l.ProductName, l.Quantity)
			line.Quantity = 1
			line.UnitPrice = l.TotalTTC
		}
		lines = append(lines, line)
	}
	return lines
}

// counterPayments 柜台收款换算为发票收款，找零先从现金扣除，不足部分从末笔收款往前扣
func counterPayments(sale *model.Sale) []model.InvoicePayment {
	amounts := make([]int64, len(sale.Payments))
	change := sale.ChangeAmount
	for i, p := range sale.Payments {
		amounts[i] = p.Amount
		if p.Method == model.PayCash && change > 0 {
			d := min(change, amounts[i])
			amounts[i] -= d
			change -= d
		}
	}
	for i := len(amounts) - 1; i >= 0 && change > 0; i-- {
		d := min(change, amounts[i])
		amounts[i] -= d
		change -= d
	}

	out := make([]model.InvoicePayment, 0, len(sale.Payments))
	for i, p := range sale.Payments {
		if amounts[i] <= 0 {
			continue
		}
		out = append(out, model.InvoicePayment{Method: p.Method, Amount: amounts[i], Reference: p.Reference})
	}
	return out
}

// CreateInvoice 手工发票（草稿）
func (s *FinanceService) CreateInvoice(ctx context.Context, pharmacyID int64, req *dto.InvoiceRequest) (*model.Invoice, error) {
	if err := s.checkCustomer(ctx, pharmacyID, req.CustomerID); err != nil {
		return nil, err
	}
	inv := &model.Invoice{
		PharmacyID: pharmacyID,
		CustomerID: req.CustomerID,
		BillTo:     req.BillTo,
		DueDate:    req.DueDate,
		Status:     model.InvoiceDraft,
		Notes:      req.Notes,
		Lines:      invoiceLines(req.Lines),
	}
	if err := s.store.Invoices.Create(ctx, inv); err != nil {
		return nil, err
	}
	return s.GetInvoice(ctx, pharmacyID, inv.ID)
}

// UpdateInvoice 修改草稿发票
func (s *FinanceService) UpdateInvoice(ctx context.Context, pharmacyID, id int64, req *dto.InvoiceRequest) (*model.Invoice, error) {
	if err := s.checkCustomer(ctx, pharmacyID, req.CustomerID); err != nil {
		return nil, err
	}
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		inv, err := tx.Invoices.GetForUpdate(ctx, pharmacyID, id)
		if err != nil {
			return err
		}
		if inv == nil {
			return ErrInvoiceNotFound
		}
		if inv.Status != model.InvoiceDraft {
			return ErrInvoiceNotDraft
		}
		inv.CustomerID = req.CustomerID
		inv.BillTo = req.BillTo
		inv.DueDate = req.DueDate
		inv.Notes = req.Notes
		return tx.Invoices.ReplaceLines(ctx, inv, invoiceLines(req.Lines))
	})
	if err != nil {
		return nil, err
	}
	return s.GetInvoice(ctx, pharmacyID, id)
}

func invoiceLines(req []dto.InvoiceLineRequest) []model.InvoiceLine {
	lines := make([]model.InvoiceLine, 0, len(req))
	for _, l := range req {
		lines = append(lines, model.InvoiceLine{
			ProductID: l.ProductID,
			Label:     l.Label,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			VATRate:   l.VATRate,
		})
	}
	return lines
}

func (s *FinanceService) checkCustomer(ctx context.Context, pharmacyID int64, customerID *int64) error {
	if customerID == nil {
		return nil
	}
	c, err := s.store.Customers.GetByID(ctx, pharmacyID, *customerID)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrCustomerNotFound
	}
	return nil
}

// IssueInvoice 开具草稿发票
func (s *FinanceService) IssueInvoice(ctx context.Context, pharmacyID, userID, id int64) (*model.Invoice, error) {
	return s.transitionInvoice(ctx, pharmacyID, id, func(inv *model.Invoice) error {
		if inv.Status != model.InvoiceDraft {
			return ErrInvoiceNotDraft
		}
		if inv.TotalTTC <= 0 {
			return fmt.Errorf("%w: 发票金额为 0", ErrInvalidInput)
		}
		inv.Status = model.InvoiceIssued
		inv.IssueDate = time.Now()
		inv.IssuedBy = userID
		return nil
	})
}

// CancelInvoice 作废发票，已有收款的不可作废
func (s *FinanceService) CancelInvoice(ctx context.Context, pharmacyID, id int64) (*model.Invoice, error) {
	return s.transitionInvoice(ctx, pharmacyID, id, func(inv *model.Invoice) error {
		if inv.Status == model.InvoiceCancelled || inv.Status == model.InvoicePaid {
			return fmt.Errorf("%w: 发票状态 %s", ErrInvalidState, inv.Status)
		}
		if inv.AmountPaid > 0 {
			return ErrInvoiceHasPayments
		}
		inv.Status = model.InvoiceCancelled
		return nil
	})
}

func (s *FinanceService) transitionInvoice(ctx context.Context, pharmacyID, id int64, apply func(inv *model.Invoice) error) (*model.Invoice, error) {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		inv, err := tx.Invoices.GetForUpdate(ctx, pharmacyID, id)
		if err != nil {
			return err
		}
		if inv == nil {
			return ErrInvoiceNotFound
		}
		if err := apply(inv); err != nil {
			return err
		}
		return tx.Invoices.Update(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	return s.GetInvoice(ctx, pharmacyID, id)
}

// AddPayment 发票收款，余额与状态由钩子级联
func (s *FinanceService) AddPayment(ctx context.Context, pharmacyID, id int64, req *dto.InvoicePaymentRequest) (*model.Invoice, error) {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		inv, err := tx.Invoices.GetForUpdate(ctx, pharmacyID, id)
		if err != nil {
			return err
		}
		if inv == nil {
			return ErrInvoiceNotFound
		}
		if !inv.Payable() {
			return fmt.Errorf("%w: %s", model.ErrInvoiceNotPayable, inv.Status)
		}
		p := &model.InvoicePayment{InvoiceID: inv.ID, Method: req.Method, Amount: req.Amount, Reference: req.Reference}
		if req.PaidAt != nil {
			p.PaidAt = *req.PaidAt
		}
		return tx.Invoices.AddPayment(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("发票收款", zap.Int64("invoice_id", id), zap.Int64("amount", req.Amount), zap.String("method", req.Method))
	return s.GetInvoice(ctx, pharmacyID, id)
}

// GetInvoice 发票详情
func (s *FinanceService) GetInvoice(ctx context.Context, pharmacyID, id int64) (*model.Invoice, error) {
	inv, err := s.store.Invoices.GetByID(ctx, pharmacyID, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, ErrInvoiceNotFound
	}
	return inv, nil
}

// ListInvoices 发票列表
func (s *FinanceService) ListInvoices(ctx context.Context, pharmacyID int64, req *dto.InvoiceListRequest) (*dto.PageResult[model.Invoice], error) {
	list, total, err := s.store.Invoices.List(ctx, repository.InvoiceFilter{
		PharmacyID: pharmacyID,
		CustomerID: req.CustomerID,
		Status:     req.Status,
		Overdue:    req.Overdue,
		DateRange:  toDateRange(req.PeriodQuery),
		Pagination: toPagination(req.PageQuery),
	})
	if err != nil {
		return nil, err
	}
	return dto.NewPageResult(list, total), nil
}

// ==================== 费用 ====================

// CreateExpense 登记费用
func (s *FinanceService) CreateExpense(ctx context.Context, pharmacyID int64, req *dto.ExpenseRequest) (*model.Expense, error) {
	e := &model.Expense{PharmacyID: pharmacyID}
	if err := s.applyExpense(ctx, e, req); err != nil {
		return nil, err
	}
	if err := s.store.Expenses.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// UpdateExpense 修改费用
func (s *FinanceService) UpdateExpense(ctx context.Context, pharmacyID, id int64, req *dto.ExpenseRequest) (*model.Expense, error) {
	e, err := s.GetExpense(ctx, pharmacyID, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyExpense(ctx, e, req); err != nil {
		return nil, err
	}
	if err := s.store.Expenses.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *FinanceService) applyExpense(ctx context.Context, e *model.Expense, req *dto.ExpenseRequest) error {
	if req.SupplierID != nil {
		sup, err := s.store.Suppliers.GetByID(ctx, e.PharmacyID, *req.SupplierID)
		if err != nil {
			return err
		}
		if sup == nil {
			return ErrSupplierNotFound
		}
	}
	e.Category = req.Category
	e.Label = req.Label
	e.Amount = req.Amount
	e.SupplierID = req.SupplierID
	if req.ReceiptURL != "" {
		e.ReceiptURL = req.ReceiptURL
	}
	if req.SpentOn != nil {
		e.SpentOn = *req.SpentOn
	}
	return nil
}

// UploadExpenseReceipt 上传费用票据（图片或 PDF）
func (s *FinanceService) UploadExpenseReceipt(ctx context.Context, pharmacyID, id int64, data []byte, filename string) (*model.Expense, error) {
	if s.storage == nil {
		return nil, ErrStorageDisabled
	}
	e, err := s.GetExpense(ctx, pharmacyID, id)
	if err != nil {
		return nil, err
	}
	obj, err := s.storage.UploadDocument(ctx, data, FolderReceipts, filename)
	if err != nil {
		return nil, err
	}
	e.ReceiptURL = obj.URL
	if err := s.store.Expenses.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// GetExpense 费用详情
func (s *FinanceService) GetExpense(ctx context.Context, pharmacyID, id int64) (*model.Expense, error) {
	e, err := s.store.Expenses.GetByID(ctx, pharmacyID, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrExpenseNotFound
	}
	return e, nil
}

// DeleteExpense 删除费用
func (s *FinanceService) DeleteExpense(ctx context.Context, pharmacyID, id int64) error {
	if _, err := s.GetExpense(ctx, pharmacyID, id); err != nil {
		return err
	}
	return s.store.Expenses.Delete(ctx, pharmacyID, id)
}

// ListExpenses 费用列表
func (s *FinanceService) ListExpenses(ctx context.Context, pharmacyID int64, req *dto.ExpenseListRequest) (*dto.PageResult[model.Expense], error) {
	list, total, err := s.store.Expenses.List(ctx, repository.ExpenseFilter{
		PharmacyID: pharmacyID,
		Category:   req.Category,
		DateRange:  toDateRange(req.PeriodQuery),
		Pagination: toPagination(req.PageQuery),
	})
	if err != nil {
		return nil, err
	}
	return dto.NewPageResult(list, total), nil
}

// ==================== 汇总 ====================

// Summary 区间财务汇总，缺省为当月
func (s *FinanceService) Summary(ctx context.Context, pharmacyID int64, q dto.PeriodQuery) (*dto.FinancialSummary, error) {
	r := toDateRange(q)
	from := monthStart(time.Now())
	to := from.AddDate(0, 1, 0)
	if r.From != nil {
		from = *r.From
	}
	if r.To != nil {
		to = *r.To
	}
	if !to.After(from) {
		return nil, model.ErrInvalidPeriod
	}

	sales, err := s.store.Sales.Summary(ctx, pharmacyID, from, to)
	if err != nil {
		return nil, err
	}
	buckets, err := s.store.Sales.VATBreakdown(ctx, pharmacyID, from, to)
	if err != nil {
		return nil, err
	}
	byCategory, err := s.store.Expenses.SumByCategory(ctx, pharmacyID, from, to)
	if err != nil {
		return nil, err
	}
	collected, err := s.store.Invoices.CollectedInRange(ctx, pharmacyID, from, to)
	if err != nil {
		return nil, err
	}
	count, balance, err := s.store.Invoices.Outstanding(ctx, pharmacyID)
	if err != nil {
		return nil, err
	}

	out := &dto.FinancialSummary{
		From:              from,
		To:                to,
		Revenue:           sales.TotalTTC,
		RevenueHT:         sales.TotalHT,
		VATCollected:      sales.TotalVAT,
		CostOfGoods:       sales.CostAmount,
		GrossMargin:       sales.TotalHT - sales.CostAmount,
		ExpensesBy:        byCategory,
		InvoiceCollected:  collected,
		OutstandingCount:  count,
		OutstandingAmount: balance,
		VATBreakdown:      make([]dto.VATLine, 0, len(buckets)),
	}
	for _, amount := range byCategory {
		out.Expenses += amount
	}
	out.NetResult = out.GrossMargin - out.Expenses
	for _, b := range buckets {
		out.VATBreakdown = append(out.VATBreakdown, dto.VATLine(b))
	}
	return out, nil
}

// ==================== 错误定义 ====================

var (
	ErrInvoiceNotFound    = fmt.Errorf("发票%w", ErrNotFound)
	ErrInvoiceNotDraft    = fmt.Errorf("%w: 仅草稿发票可修改或开具", ErrInvalidState)
	ErrInvoiceHasPayments = fmt.Errorf("%w: 发票已有收款", ErrInvalidState)
	ErrExpenseNotFound    = fmt.Errorf("费用%w", ErrNotFound)
)
