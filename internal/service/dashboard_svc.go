package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"pharmacy_erp/internal/api/dto"
	"pharmacy_erp/internal/model"
	"pharmacy_erp/internal/repository"
)

// DashboardService 药房看板与审计日志
type DashboardService struct {
	store      *repository.Store
	expiryDays int
}

// NewDashboardService expiryDays 为临期预警天数
func NewDashboardService(store *repository.Store, expiryDays int) *DashboardService {
	if expiryDays <= 0 {
		expiryDays = 30
	}
	return &DashboardService{store: store, expiryDays: expiryDays}
}

// Dashboard 各项指标并发查询
func (s *DashboardService) Dashboard(ctx context.Context, pharmacyID, userID int64) (*dto.Dashboard, error) {
	now := time.Now()
	today := dayStart(now)
	tomorrow := today.AddDate(0, 0, 1)
	out := &dto.Dashboard{Date: today}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sum, err := s.store.Sales.Summary(gctx, pharmacyID, today, tomorrow)
		if err != nil {
			return err
		}
		out.TodayRevenue, out.TodaySalesCount = sum.TotalTTC, sum.Count
		return nil
	})
	g.Go(func() error {
		sum, err := s.store.Sales.Summary(gctx, pharmacyID, monthStart(now), tomorrow)
		if err != nil {
			return err
		}
		out.MonthRevenue = sum.TotalTTC
		return nil
	})
	g.Go(func() (err error) {
		out.LowStockCount, err = s.store.Products.CountLowStock(gctx, pharmacyID)
		return
	})
	g.Go(func() (err error) {
		out.ExpiringSoonCount, err = s.store.Batches.CountExpiring(gctx, pharmacyID, today.AddDate(0, 0, s.expiryDays))
		return
	})
	g.Go(func() (err error) {
		out.PendingOrders, err = s.store.Orders.CountByStatus(gctx, pharmacyID, model.OrderPending)
		return
	})
	g.Go(func() (err error) {
		out.UnpaidInvoices, out.UnpaidAmount, err = s.store.Invoices.Outstanding(gctx, pharmacyID)
		return
	})
	g.Go(func() (err error) {
		out.TodayAppointments, err = s.store.Appointments.CountInRange(gctx, pharmacyID, today, tomorrow)
		return
	})
	g.Go(func() (err error) {
		out.CustomerCount, err = s.store.Customers.Count(gctx, pharmacyID)
		return
	})
	g.Go(func() (err error) {
		out.UnreadNotification, err = s.store.Notifications.CountUnread(gctx, userID)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListActivity 审计日志
func (s *DashboardService) ListActivity(ctx context.Context, pharmacyID int64, req *dto.ActivityListRequest) (*dto.PageResult[model.ActivityLog], error) {
	list, total, err := s.store.Activity.List(ctx, repository.ActivityLogFilter{
		PharmacyID: pharmacyID,
		UserID:     req.UserID,
		Entity:     req.Entity,
		RecordID:   req.RecordID,
		DateRange:  toDateRange(req.PeriodQuery),
		Pagination: toPagination(req.PageQuery),
	})
	if err != nil {
		return nil, err
	}
	return dto.NewPageResult(list, total), nil
}
