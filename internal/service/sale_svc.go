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

// SaleService 收银与销售报表
type SaleService struct {
	store *repository.Store
	log   *zap.Logger
}

// NewSaleService 创建销售服务
func NewSaleService(store *repository.Store) *SaleService {
	return &SaleService{store: store, log: logger.Named("sale")}
}

// Checkout 收银结账
// 金额、FEFO 出库、积分均在模型钩子中完成，任一失败整单回滚
func (s *SaleService) Checkout(ctx context.Context, pharmacyID, cashierID int64, req *dto.CheckoutRequest) (*model.Sale, error) {
	sale := &model.Sale{
		PharmacyID:        pharmacyID,
		CashierID:         cashierID,
		CustomerID:        req.CustomerID,
		PrescriptionID:    req.PrescriptionID,
		Channel:           model.ChannelCounter,
		LoyaltyPointsUsed: req.LoyaltyPointsUsed,
	}
	for _, l := range req.Lines {
		line := model.SaleLine{ProductID: l.ProductID, Quantity: l.Quantity, DiscountPercent: l.DiscountPercent}
		if l.UnitPrice != nil {
			line.UnitPrice = *l.UnitPrice
		}
		sale.Lines = append(sale.Lines, line)
	}
	for _, p := range req.Payments {
		sale.Payments = append(sale.Payments, model.Payment{Method: p.Method, Amount: p.Amount, Reference: p.Reference})
	}

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := s.checkCustomer(ctx, tx, pharmacyID, sale.CustomerID); err != nil {
			return err
		}

		var rx *model.Prescription
		if sale.PrescriptionID != nil {
			p, err := tx.Prescriptions.GetByID(ctx, pharmacyID, *sale.PrescriptionID)
			if err != nil {
				return err
			}
			if p == nil {
				return ErrPrescriptionNotFound
			}
			if p.Status != model.PrescriptionPending || p.IsExpired(time.Now()) {
				return fmt.Errorf("%w: 处方状态 %s", ErrPrescriptionNotUsable, p.Status)
			}
			if sale.CustomerID == nil {
				sale.CustomerID = &p.CustomerID
			} else if *sale.CustomerID != p.CustomerID {
				return fmt.Errorf("%w: 处方不属于该顾客", ErrInvalidInput)
			}
			rx = p
		}

		if err := tx.Sales.Create(ctx, sale); err != nil {
			return err
		}

		if rx != nil {
			now := time.Now()
			rx.Status = model.PrescriptionDispensed
			rx.DispensedAt = &now
			rx.SaleID = &sale.ID
			rx.Customer = nil
			if err := tx.Prescriptions.Update(ctx, rx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("销售完成",
		zap.Int64("pharmacy_id", pharmacyID),
		zap.String("number", sale.Number),
		zap.Int64("total_ttc", sale.TotalTTC),
	)
	return s.Get(ctx, pharmacyID, sale.ID)
}

func (s *SaleService) checkCustomer(ctx context.Context, tx *repository.Store, pharmacyID int64, customerID *int64) error {
	if customerID == nil {
		return nil
	}
	c, err := tx.Customers.GetByID(ctx, pharmacyID, *customerID)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrCustomerNotFound
	}
	return nil
}

// Cancel 作废销售：批次回库与积分冲回由钩子完成，已配药处方恢复为待配药
func (s *SaleService) Cancel(ctx context.Context, pharmacyID, id int64, reason string) (*model.Sale, error) {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		return cancelSale(ctx, tx, pharmacyID, id, reason)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("销售作废", zap.Int64("pharmacy_id", pharmacyID), zap.Int64("sale_id", id), zap.String("reason", reason))
	return s.Get(ctx, pharmacyID, id)
}

// cancelSale 在事务内作废销售，线上订单取消时复用
func cancelSale(ctx context.Context, tx *repository.Store, pharmacyID, id int64, reason string) error {
	sale, err := tx.Sales.GetForUpdate(ctx, pharmacyID, id)
	if err != nil {
		return err
	}
	if sale == nil {
		return ErrSaleNotFound
	}
	if sale.Status != model.SaleCompleted {
		return ErrSaleNotCompleted
	}
	invoiced, err := tx.Invoices.ExistsForSale(ctx, sale.ID)
	if err != nil {
		return err
	}
	if invoiced {
		return ErrSaleInvoiced
	}

	now := time.Now()
	sale.Status = model.SaleCancelled
	sale.CancelledAt = &now
	sale.CancelReason = reason
	if err := tx.Sales.Update(ctx, sale); err != nil {
		return err
	}

	if sale.PrescriptionID == nil {
		return nil
	}
	rx, err := tx.Prescriptions.GetByID(ctx, pharmacyID, *sale.PrescriptionID)
	if err != nil || rx == nil {
		return err
	}
	if rx.SaleID != nil && *rx.SaleID == sale.ID {
		rx.Status = model.PrescriptionPending
		rx.SaleID = nil
		rx.DispensedAt = nil
		rx.Customer = nil
		return tx.Prescriptions.Update(ctx, rx)
	}
	return nil
}

// Get 销售详情
func (s *SaleService) Get(ctx context.Context, pharmacyID, id int64) (*model.Sale, error) {
	sale, err := s.store.Sales.GetByID(ctx, pharmacyID, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, ErrSaleNotFound
	}
	return sale, nil
}

// List 销售列表
func (s *SaleService) List(ctx context.Context, pharmacyID int64, req *dto.SaleListRequest) (*dto.PageResult[model.Sale], error) {
	list, total, err := s.store.Sales.List(ctx, repository.SaleFilter{
		PharmacyID: pharmacyID,
		CashierID:  req.CashierID,
		CustomerID: req.CustomerID,
		Status:     req.Status,
		Channel:    req.Channel,
		Number:     req.Number,
		DateRange:  toDateRange(req.PeriodQuery),
		Pagination: toPagination(req.PageQuery),
	})
	if err != nil {
		return nil, err
	}
	return dto.NewPageResult(list, total), nil
}

// ==================== 报表 ====================

// DailySummary 日报，date 为空取今天
func (s *SaleService) DailySummary(ctx context.Context, pharmacyID int64, date *time.Time) (*dto.SalesSummary, error) {
	day := time.Now()
	if date != nil {
		day = *date
	}
	from := dayStart(day)
	return s.summarize(ctx, pharmacyID, from, from.AddDate(0, 0, 1), false)
}

// MonthlySummary 月报（含每日合计），month 格式 2006-01，为空取当月
func (s *SaleService) MonthlySummary(ctx context.Context, pharmacyID int64, month string) (*dto.SalesSummary, error) {
	from := monthStart(time.Now())
	if month != "" {
		t, err := time.ParseInLocation("2006-01", month, time.Local)
		if err != nil {
			return nil, fmt.Errorf("%w: 月份格式应为 YYYY-MM", ErrInvalidInput)
		}
		from = t
	}
	return s.summarize(ctx, pharmacyID, from, from.AddDate(0, 1, 0), true)
}

func (s *SaleService) summarize(ctx context.Context, pharmacyID int64, from, to time.Time, withDays bool) (*dto.SalesSummary, error) {
	sum, err := s.store.Sales.Summary(ctx, pharmacyID, from, to)
	if err != nil {
		return nil, err
	}
	sales, err := s.store.Sales.ListInRange(ctx, pharmacyID, from, to)
	if err != nil {
		return nil, err
	}

	out := &dto.SalesSummary{
		From:          from,
		To:            to,
		Count:         sum.Count,
		TotalHT:       sum.TotalHT,
		TotalVAT:      sum.TotalVAT,
		TotalTTC:      sum.TotalTTC,
		DiscountTotal: sum.DiscountTotal,
		CostAmount:    sum.CostAmount,
		GrossMargin:   sum.TotalHT - sum.CostAmount,
		ByMethod:      map[string]int64{},
	}

	days := map[string]*dto.DayTotal{}
	for i := range sales {
		sale := &sales[i]
		if sale.Status != model.SaleCompleted {
			continue
		}
		// 找零从现金中扣除
		change := sale.ChangeAmount
		for _, p := range sale.Payments {
			amount := p.Amount
			if p.Method == model.PayCash && change > 0 {
				d := min(change, amount)
				amount -= d
				change -= d
			}
			out.ByMethod[p.Method] += amount
		}
		if withDays {
			key := sale.SoldAt.In(from.Location()).Format("2006-01-02")
			d, ok := days[key]
			if !ok {
				d = &dto.DayTotal{Date: key}
				days[key] = d
			}
			d.Count++
			d.TotalTTC += sale.TotalTTC
		}
	}
	if withDays {
		for day := from; day.Before(to); day = day.AddDate(0, 0, 1) {
			key := day.Format("2006-01-02")
			if d, ok := days[key]; ok {
				out.Days = append(out.Days, *d)
			} else {
				out.Days = append(out.Days, dto.DayTotal{Date: key})
			}
		}
	}
	return out, nil
}

// TopProducts 区间畅销商品，未指定区间取最近 30 天
func (s *SaleService) TopProducts(ctx context.Context, pharmacyID int64, req *dto.TopProductsRequest) ([]repository.TopProduct, error) {
	from, to := periodOrDefault(req.PeriodQuery, 30)
	list, err := s.store.Sales.TopProducts(ctx, pharmacyID, from, to, req.Limit)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []repository.TopProduct{}
	}
	return list, nil
}

// periodOrDefault 缺省区间为截至今天的最近 days 天，返回 [from, to)
func periodOrDefault(q dto.PeriodQuery, days int) (time.Time, time.Time) {
	r := toDateRange(q)
	to := dayStart(time.Now()).AddDate(0, 0, 1)
	if r.To != nil {
		to = *r.To
	}
	from := to.AddDate(0, 0, -days)
	if r.From != nil {
		from = *r.From
	}
	return from, to
}

// ==================== 错误定义 ====================

var (
	ErrSaleNotFound          = fmt.Errorf("销售单%w", ErrNotFound)
	ErrSaleNotCompleted      = fmt.Errorf("%w: 仅已完成的销售可作废", ErrInvalidState)
	ErrSaleInvoiced          = fmt.Errorf("%w: 销售已开票，请先作废发票", ErrInvalidState)
	ErrPrescriptionNotUsable = fmt.Errorf("%w: 处方已配药或已过期", ErrInvalidState)
)
