package model

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 发票状态
const (
	InvoiceDraft     = "draft"
	InvoiceIssued    = "issued"
	InvoicePartial   = "partial"
	InvoicePaid      = "paid"
	InvoiceCancelled = "cancelled"
)

// Invoice 发票，金额为含税
type Invoice struct {
	BaseModel
	AuditMixin
	PharmacyID int64      `gorm:"uniqueIndex:idx_invoice_number;not null" json:"pharmacy_id"`
	Number     string     `gorm:"uniqueIndex:idx_invoice_number;size:32;not null" json:"number"`
	CustomerID *int64     `gorm:"index" json:"customer_id"`
	SaleID     *int64     `gorm:"index" json:"sale_id"`
	BillTo     string     `gorm:"size:255" json:"bill_to"`
	IssueDate  time.Time  `gorm:"index" json:"issue_date"`
	DueDate    *time.Time `json:"due_date"`
	Status     string     `gorm:"size:16;index;not null;default:'draft'" json:"status"`
	TotalHT    int64      `gorm:"not null;default:0" json:"total_ht"`
	TotalVAT   int64      `gorm:"not null;default:0" json:"total_vat"`
	TotalTTC   int64      `gorm:"not null;default:0" json:"total_ttc"`
	AmountPaid int64      `gorm:"not null;default:0" json:"amount_paid"`
	Balance    int64      `gorm:"not null;default:0" json:"balance"`
	IssuedBy   int64      `gorm:"not null;default:0" json:"issued_by"`
	Notes      string     `gorm:"size:500" json:"notes"`

	Lines    []InvoiceLine    `gorm:"foreignKey:InvoiceID" json:"lines,omitempty"`
	Payments []InvoicePayment `gorm:"foreignKey:InvoiceID" json:"payments,omitempty"`

	loadedStatus string
}

func (Invoice) TableName() string {
	return "invoices"
}

func (inv *Invoice) AfterFind(tx *gorm.DB) error {
	inv.loadedStatus = inv.Status
	return nil
}

// BeforeCreate 分配发票号 FA-YYYY-000001
func (inv *Invoice) BeforeCreate(tx *gorm.DB) error {
	if inv.IssueDate.IsZero() {
		inv.IssueDate = time.Now()
	}
	if inv.Status == "" {
		inv.Status = InvoiceDraft
	}
	if inv.Number != "" {
		return nil
	}
	code, err := nextCode(tx, inv.PharmacyID, PrefixInvoice, strconv.Itoa(inv.IssueDate.Year()), 6)
	if err != nil {
		return err
	}
	inv.Number = code
	return nil
}

// BeforeSave 明细合计、余额与收款状态
func (inv *Invoice) BeforeSave(tx *gorm.DB) error {
	if len(inv.Lines) > 0 {
		inv.TotalHT, inv.TotalVAT, inv.TotalTTC = 0, 0, 0
		for i := range inv.Lines {
			if err := inv.Lines[i].derive(); err != nil {
				return err
			}
			inv.TotalHT += inv.Lines[i].TotalHT
			inv.TotalVAT += inv.Lines[i].TotalVAT
			inv.TotalTTC += inv.Lines[i].TotalTTC
		}
	}
	if inv.AmountPaid > inv.TotalTTC {
		return ErrOverpayment
	}
	inv.Balance = inv.TotalTTC - inv.AmountPaid

	switch inv.Status {
	case InvoiceIssued, InvoicePartial, InvoicePaid:
		switch {
		case inv.AmountPaid == 0:
			inv.Status = InvoiceIssued
		case inv.Balance > 0:
			inv.Status = InvoicePartial
		default:
			inv.Status = InvoicePaid
		}
	}
	return nil
}

// AfterUpdate 结清时通知开票人
func (inv *Invoice) AfterUpdate(tx *gorm.DB) error {
	paid := inv.Status == InvoicePaid && inv.loadedStatus != InvoicePaid
	inv.loadedStatus = inv.Status
	if !paid || inv.IssuedBy == 0 {
		return nil
	}
	return Notify(tx, inv.IssuedBy, NotificationInput{
		PharmacyID: inv.PharmacyID,
		Topic:      TopicInvoicePaid,
		Title:      "发票已结清",
		Body:       fmt.Sprintf("%s 已全额收款 %.2f", inv.Number, CentsToFloat(inv.TotalTTC)),
		Payload:    map[string]interface{}{"invoice_id": inv.ID},
		DedupeKey:  fmt.Sprintf("invoice:%d:paid", inv.ID),
	})
}

// Payable 是否可收款
func (inv *Invoice) Payable() bool {
	return inv.Status == InvoiceIssued || inv.Status == InvoicePartial
}

// InvoiceLine 发票明细，单价含税
type InvoiceLine struct {
	BaseModel
	InvoiceID int64  `gorm:"index;not null" json:"invoice_id"`
	ProductID *int64 `json:"product_id"`
	Label     string `gorm:"size:255;not null" json:"label"`
	Quantity  int    `gorm:"not null" json:"quantity"`
	UnitPrice int64  `gorm:"not null" json:"unit_price"`
	VATRate   int    `gorm:"not null;default:0" json:"vat_rate"`
	TotalHT   int64  `gorm:"not null;default:0" json:"total_ht"`
	TotalVAT  int64  `gorm:"not null;default:0" json:"total_vat"`
	TotalTTC  int64  `gorm:"not null;default:0" json:"total_ttc"`
}

func (InvoiceLine) TableName() string {
	return "invoice_lines"
}

func (l *InvoiceLine) derive() error {
	if l.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	l.TotalTTC = int64(l.Quantity) * l.UnitPrice
	l.TotalHT, l.TotalVAT = SplitVAT(l.TotalTTC, l.VATRate)
	return nil
}

func (l *InvoiceLine) BeforeSave(tx *gorm.DB) error {
	return l.derive()
}

// InvoicePayment 发票收款
type InvoicePayment struct {
	BaseModel
	AuditMixin
	InvoiceID int64     `gorm:"index;not null" json:"invoice_id"`
	Method    string    `gorm:"size:16;not null" json:"method"`
	Amount    int64     `gorm:"not null" json:"amount"`
	PaidAt    time.Time `json:"paid_at"`
	Reference string    `gorm:"size:128" json:"reference"`
}

func (InvoicePayment) TableName() string {
	return "invoice_payments"
}

func (p *InvoicePayment) BeforeCreate(tx *gorm.DB) error {
	if p.Amount <= 0 {
		return ErrInvalidAmount
	}
	if !ValidPaymentMethod(p.Method) {
		return fmt.Errorf("%w: %s", ErrInvalidPaymentMethod, p.Method)
	}
	if p.PaidAt.IsZero() {
		p.PaidAt = time.Now()
	}
	return nil
}

// AfterCreate 累加已收金额，级联发票余额与状态；超额收款回滚
func (p *InvoicePayment) AfterCreate(tx *gorm.DB) error {
	db := tx.Session(&gorm.Session{NewDB: true})

	var inv Invoice
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&inv, p.InvoiceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: #%d", ErrInvoiceNotPayable, p.InvoiceID)
	}
	if err != nil {
		return err
	}
	if !inv.Payable() {
		return fmt.Errorf("%w: %s", ErrInvoiceNotPayable, inv.Status)
	}
	if inv.AmountPaid+p.Amount > inv.TotalTTC {
		return fmt.Errorf("%w: 余额 %d", ErrOverpayment, inv.Balance)
	}

	inv.AmountPaid += p.Amount
	return db.Omit(clause.Associations).Save(&inv).Error
}

// ExpenseCategory 费用类别
const (
	ExpenseRent      = "rent"
	ExpenseUtilities = "utilities"
	ExpenseSalaries  = "salaries"
	ExpensePurchases = "purchases"
	ExpenseOther     = "other"
)

// Expense 费用支出
type Expense struct {
	BaseModel
	AuditMixin
	PharmacyID int64     `gorm:"index:idx_expense_period,priority:1;not null" json:"pharmacy_id"`
	Category   string    `gorm:"size:32;not null" json:"category"`
	Label      string    `gorm:"size:255;not null" json:"label"`
	Amount     int64     `gorm:"not null" json:"amount"`
	SpentOn    time.Time `gorm:"index:idx_expense_period,priority:2" json:"spent_on"`
	SupplierID *int64    `json:"supplier_id"`
	ReceiptURL string    `gorm:"size:500" json:"receipt_url"`
}

func (Expense) TableName() string {
	return "expenses"
}

func (e *Expense) BeforeSave(tx *gorm.DB) error {
	if e.Amount <= 0 {
		return ErrInvalidAmount
	}
	if e.SpentOn.IsZero() {
		e.SpentOn = time.Now()
	}
	return nil
}
