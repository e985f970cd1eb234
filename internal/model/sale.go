package model

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// 销售状态与渠道
const (
	SaleCompleted = "completed"
	SaleCancelled = "cancelled"

	ChannelCounter = "counter"
	ChannelOnline  = "online"
)

// 支付方式
const (
	PayCash      = "cash"
	PayCard      = "card"
	PayCheque    = "cheque"
	PayInsurance = "insurance"
	PayMobile    = "mobile"
	PayLoyalty   = "loyalty"
)

// ValidPaymentMethod 支付方式是否合法
func ValidPaymentMethod(m string) bool {
	switch m {
	case PayCash, PayCard, PayCheque, PayInsurance, PayMobile, PayLoyalty:
		return true
	}
	return false
}

// Sale 销售单（收银小票），金额均为含税
type Sale struct {
	BaseModel
	AuditMixin
	PharmacyID        int64      `gorm:"uniqueIndex:idx_sale_number;index:idx_sale_period,priority:1;not null" json:"pharmacy_id"`
	Number            string     `gorm:"uniqueIndex:idx_sale_number;size:32;not null" json:"number"`
	CashierID         int64      `gorm:"index;not null" json:"cashier_id"`
	CustomerID        *int64     `gorm:"index" json:"customer_id"`
	PrescriptionID    *int64     `gorm:"index" json:"prescription_id"`
	OnlineOrderID     *int64     `gorm:"index" json:"online_order_id"`
	Channel           string     `gorm:"size:16;not null;default:'counter'" json:"channel"`
	Status            string     `gorm:"size:16;index;not null;default:'completed'" json:"status"`
	SoldAt            time.Time  `gorm:"index:idx_sale_period,priority:2" json:"sold_at"`
	Subtotal          int64      `gorm:"not null;default:0;comment:折前合计" json:"subtotal"`
	DiscountTotal     int64      `gorm:"not null;default:0" json:"discount_total"`
	TotalHT           int64      `gorm:"not null;default:0" json:"total_ht"`
	TotalVAT          int64      `gorm:"not null;default:0" json:"total_vat"`
	TotalTTC          int64      `gorm:"not null;default:0" json:"total_ttc"`
	LoyaltyPointsUsed int64      `gorm:"not null;default:0" json:"loyalty_points_used"`
	PointsEarned      int64      `gorm:"not null;default:0" json:"points_earned"`
	PaidAmount        int64      `gorm:"not null;default:0" json:"paid_amount"`
	ChangeAmount      int64      `gorm:"not null;default:0" json:"change_amount"`
	DueAmount         int64      `gorm:"not null;default:0" json:"due_amount"`
	CancelledAt       *time.Time `json:"cancelled_at"`
	CancelReason      string     `gorm:"size:255" json:"cancel_reason"`

	Lines    []SaleLine `gorm:"foreignKey:SaleID" json:"lines,omitempty"`
	Payments []Payment  `gorm:"foreignKey:SaleID" json:"payments,omitempty"`

	loadedStatus string
}

func (Sale) TableName() string {
	return "sales"
}

func (s *Sale) AfterFind(tx *gorm.DB) error {
	s.loadedStatus = s.Status
	return nil
}

// BeforeCreate 编号、补全明细、汇总金额、结算找零
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.SoldAt.IsZero() {
		s.SoldAt = time.Now()
	}
	if s.Status == "" {
		s.Status = SaleCompleted
	}
	if s.Channel == "" {
		s.Channel = ChannelCounter
	}
	if len(s.Lines) == 0 {
		return ErrInvalidQuantity
	}

	s.Subtotal, s.DiscountTotal, s.TotalHT, s.TotalVAT, s.TotalTTC = 0, 0, 0, 0, 0
	for i := range s.Lines {
		line := &s.Lines[i]
		line.PharmacyID = s.PharmacyID
		if err := line.hydrate(tx); err != nil {
			return err
		}
		if err := line.derive(); err != nil {
			return err
		}
		if line.RequiresPrescription && s.PrescriptionID == nil {
			return fmt.Errorf("%w: %s", ErrPrescriptionRequired, line.ProductName)
		}
		s.Subtotal += line.TotalTTC + line.DiscountAmount
		s.DiscountTotal += line.DiscountAmount
		s.TotalHT += line.TotalHT
		s.TotalVAT += line.TotalVAT
		s.TotalTTC += line.TotalTTC
	}

	if s.LoyaltyPointsUsed > 0 {
		if s.CustomerID == nil {
			return ErrLoyaltyAccountMissing
		}
		amount := s.LoyaltyPointsUsed * CurrentLoyaltyPolicy().PointValueCents
		if amount > s.TotalTTC {
			return fmt.Errorf("%w: 积分抵扣超过应付金额", ErrInvalidAmount)
		}
		s.Payments = append(s.Payments, Payment{Method: PayLoyalty, Amount: amount})
	}
	if err := s.settle(); err != nil {
		return err
	}

	if s.Number == "" {
		code, err := nextCode(tx, s.PharmacyID, PrefixSale, s.SoldAt.Format("20060102"), 4)
		if err != nil {
			return err
		}
		s.Number = code
	}
	return nil
}

// settle 实收 >= 应付则找零，否则记欠款
func (s *Sale) settle() error {
	var paid int64
	for _, p := range s.Payments {
		if p.Amount <= 0 {
			return ErrInvalidAmount
		}
		if !ValidPaymentMethod(p.Method) {
			return fmt.Errorf("%w: %s", ErrInvalidPaymentMethod, p.Method)
		}
		paid += p.Amount
	}
	s.PaidAmount = paid
	s.ChangeAmount, s.DueAmount = 0, 0
	if paid >= s.TotalTTC {
		s.ChangeAmount = paid - s.TotalTTC
	} else {
		s.DueAmount = s.TotalTTC - paid
	}
	return nil
}

// loyaltyPaid 积分抵扣的金额
func (s *Sale) loyaltyPaid() int64 {
	var amount int64
	for _, p := range s.Payments {
		if p.Method == PayLoyalty {
			amount += p.Amount
		}
	}
	return amount
}

// AfterCreate 会员积分：扣减已用积分，按实付金额累积新积分
func (s *Sale) AfterCreate(tx *gorm.DB) error {
	s.loadedStatus = s.Status
	if s.CustomerID == nil || s.Status != SaleCompleted {
		return nil
	}
	db := tx.Session(&gorm.Session{NewDB: true})

	var account LoyaltyAccount
	if err := db.Where("customer_id = ?", *s.CustomerID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if s.LoyaltyPointsUsed > 0 {
				return ErrLoyaltyAccountMissing
			}
			return nil
		}
		return err
	}

	if s.LoyaltyPointsUsed > 0 {
		if err := db.Create(&LoyaltyTransaction{
			AccountID: account.ID, Type: LoyaltyRedeem, Points: -s.LoyaltyPointsUsed, SaleID: &s.ID,
			Note: s.Number,
		}).Error; err != nil {
			return err
		}
	}

	earned := CurrentLoyaltyPolicy().PointsFor(s.TotalTTC - s.loyaltyPaid())
	if earned <= 0 {
		return nil
	}
	if err := db.Create(&LoyaltyTransaction{
		AccountID: account.ID, Type: LoyaltyEarn, Points: earned, SaleID: &s.ID, Note: s.Number,
	}).Error; err != nil {
		return err
	}
	s.PointsEarned = earned
	return db.Model(&Sale{}).Where("id = ?", s.ID).UpdateColumn("points_earned", earned).Error
}

// AfterUpdate 作废：分配批次回库，冲回积分
func (s *Sale) AfterUpdate(tx *gorm.DB) error {
	cancelled := s.loadedStatus == SaleCompleted && s.Status == SaleCancelled
	s.loadedStatus = s.Status
	if !cancelled {
		return nil
	}
	db := tx.Session(&gorm.Session{NewDB: true})

	var allocs []SaleLineAllocation
	if err := db.Joins("JOIN sale_lines ON sale_lines.id = sale_line_allocations.sale_line_id").
		Where("sale_lines.sale_id = ?", s.ID).
		Find(&allocs).Error; err != nil {
		return err
	}
	for _, a := range allocs {
		var batch StockBatch
		if err := db.Unscoped().First(&batch, a.BatchID).Error; err != nil {
			return err
		}
		if err := AdjustBatch(tx, &batch, a.Quantity, MovementReturn, RefSale, s.ID, "sale cancelled "+s.Number); err != nil {
			return err
		}
	}

	var net int64
	if err := db.Model(&LoyaltyTransaction{}).
		Where("sale_id = ? AND type IN ?", s.ID, []string{LoyaltyEarn, LoyaltyRedeem}).
		Select("COALESCE(SUM(points), 0)").Scan(&net).Error; err != nil {
		return err
	}
	if net == 0 {
		return nil
	}
	var first LoyaltyTransaction
	if err := db.Where("sale_id = ?", s.ID).First(&first).Error; err != nil {
		return err
	}
	return db.Create(&LoyaltyTransaction{
		AccountID: first.AccountID, Type: LoyaltyReverse, Points: -net, SaleID: &s.ID, Note: "cancel " + s.Number,
	}).Error
}

// SaleLine 销售明细
type SaleLine struct {
	BaseModel
	SaleID               int64  `gorm:"index;not null" json:"sale_id"`
	PharmacyID           int64  `gorm:"not null" json:"pharmacy_id"`
	ProductID            int64  `gorm:"index;not null" json:"product_id"`
	ProductName          string `gorm:"size:255" json:"product_name"`
	Quantity             int    `gorm:"not null" json:"quantity"`
	UnitPrice            int64  `gorm:"not null;default:0" json:"unit_price"`
	DiscountPercent      int    `gorm:"not null;default:0" json:"discount_percent"`
	DiscountAmount       int64  `gorm:"not null;default:0" json:"discount_amount"`
	VATRate              int    `gorm:"not null;default:0" json:"vat_rate"`
	RequiresPrescription bool   `gorm:"not null;default:false" json:"requires_prescription"`
	TotalHT              int64  `gorm:"not null;default:0" json:"total_ht"`
	TotalVAT             int64  `gorm:"not null;default:0" json:"total_vat"`
	TotalTTC             int64  `gorm:"not null;default:0" json:"total_ttc"`
	CostAmount           int64  `gorm:"not null;default:0;comment:批次成本合计" json:"cost_amount"`

	Allocations []SaleLineAllocation `gorm:"foreignKey:SaleLineID" json:"allocations,omitempty"`
}

func (SaleLine) TableName() string {
	return "sale_lines"
}

// hydrate 从商品补全名称、单价、税率、处方标记
func (l *SaleLine) hydrate(tx *gorm.DB) error {
	var p Product
	err := tx.Session(&gorm.Session{NewDB: true}).
		Where("id = ? AND pharmacy_id = ? AND active = ?", l.ProductID, l.PharmacyID, true).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: #%d", ErrProductUnavailable, l.ProductID)
	}
	if err != nil {
		return err
	}
	l.ProductName = p.Name
	l.VATRate = p.VATRate
	l.RequiresPrescription = p.RequiresPrescription
	if l.UnitPrice <= 0 {
		l.UnitPrice = p.SalePrice
	}
	return nil
}

// derive 行金额：折扣按百分比，税额从含税价倒算
func (l *SaleLine) derive() error {
	if l.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if l.DiscountPercent < 0 || l.DiscountPercent > 100 {
		return fmt.Errorf("%w: 折扣 %d%%", ErrInvalidAmount, l.DiscountPercent)
	}
	gross := int64(l.Quantity) * l.UnitPrice
	l.DiscountAmount = PercentOf(gross, l.DiscountPercent)
	l.TotalTTC = gross - l.DiscountAmount
	l.TotalHT, l.TotalVAT = SplitVAT(l.TotalTTC, l.VATRate)
	return nil
}

func (l *SaleLine) BeforeCreate(tx *gorm.DB) error {
	return l.derive()
}

// AfterCreate 按 FEFO 扣减库存并记录批次分配与成本
func (l *SaleLine) AfterCreate(tx *gorm.DB) error {
	allocs, err := DeductFEFO(tx, l.PharmacyID, l.ProductID, l.Quantity, RefSale, l.SaleID)
	if err != nil {
		return err
	}

	db := tx.Session(&gorm.Session{NewDB: true})
	rows := make([]SaleLineAllocation, 0, len(allocs))
	var cost int64
	for _, a := range allocs {
		rows = append(rows, SaleLineAllocation{SaleLineID: l.ID, BatchID: a.BatchID, Quantity: a.Quantity, UnitCost: a.UnitCost})
		cost += int64(a.Quantity) * a.UnitCost
	}
	if err := db.Create(&rows).Error; err != nil {
		return err
	}
	l.Allocations = rows
	l.CostAmount = cost
	return db.Model(&SaleLine{}).Where("id = ?", l.ID).UpdateColumn("cost_amount", cost).Error
}

// SaleLineAllocation 明细在批次上的出库分配
type SaleLineAllocation struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	SaleLineID int64     `gorm:"index;not null" json:"sale_line_id"`
	BatchID    int64     `gorm:"index;not null" json:"batch_id"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	UnitCost   int64     `gorm:"not null;default:0" json:"unit_cost"`
	CreatedAt  time.Time `json:"created_at"`
}

func (SaleLineAllocation) TableName() string {
	return "sale_line_allocations"
}

// Payment 销售收款
type Payment struct {
	BaseModel
	SaleID    int64  `gorm:"index;not null" json:"sale_id"`
	Method    string `gorm:"size:16;not null" json:"method"`
	Amount    int64  `gorm:"not null" json:"amount"`
	Reference string `gorm:"size:128" json:"reference"`
}

func (Payment) TableName() string {
	return "payments"
}
