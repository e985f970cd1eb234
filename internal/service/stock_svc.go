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

// StockService 批次、库存流水与库存报表
type StockService struct {
	store *repository.Store
	log   *zap.Logger
}

// NewStockService 创建库存服务
func NewStockService(store *repository.Store) *StockService {
	return &StockService{store: store, log: logger.Named("stock")}
}

// ==================== 入库 / 调整 ====================

// Receive 直接入库，新建批次；入库流水与库存缓存由批次钩子完成
func (s *StockService) Receive(ctx context.Context, pharmacyID int64, req *dto.ReceiveStockRequest) (*model.StockBatch, error) {
	product, err := s.store.Products.GetByID(ctx, pharmacyID, req.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if req.SupplierID != nil {
		sup, err := s.store.Suppliers.GetByID(ctx, pharmacyID, *req.SupplierID)
		if err != nil {
			return nil, err
		}
		if sup == nil {
			return nil, ErrSupplierNotFound
		}
	}

	cost := req.UnitCost
	if cost == 0 {
		cost = product.PurchasePrice
	}
	batch := &model.StockBatch{
		PharmacyID:       pharmacyID,
		ProductID:        product.ID,
		SupplierID:       req.SupplierID,
		LotNumber:        req.LotNumber,
		ExpiryDate:       req.ExpiryDate,
		QuantityReceived: req.Quantity,
		UnitCost:         cost,
	}
	if err := s.store.Batches.Create(ctx, batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// Adjust 批次库存调整（盘点差异、破损等）
func (s *StockService) Adjust(ctx context.Context, pharmacyID, batchID int64, req *dto.AdjustStockRequest) (*model.StockBatch, error) {
	var batch *model.StockBatch
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		b, err := tx.Batches.GetForUpdate(ctx, pharmacyID, batchID)
		if err != nil {
			return err
		}
		if b == nil {
			return ErrBatchNotFound
		}
		if err := model.AdjustBatch(tx.DB(), b, req.Delta, model.MovementAdjustment, model.RefAdjustment, b.ID, req.Note); err != nil {
			return err
		}
		batch = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}

// ExpireBatches 已过期且仍有余量的批次全部出库（expired 流水），pharmacyID 为 0 时处理全部药房
func (s *StockService) ExpireBatches(ctx context.Context, pharmacyID int64) (*dto.ExpireResult, error) {
	now := time.Now()
	batches, err := s.store.Batches.ListExpiredWithStock(ctx, pharmacyID, now)
	if err != nil {
		return nil, err
	}

	result := &dto.ExpireResult{}
	for i := range batches {
		b := &batches[i]
		err := s.store.Transaction(ctx, func(tx *repository.Store) error {
			locked, err := tx.Batches.GetForUpdate(ctx, b.PharmacyID, b.ID)
			if err != nil {
				return err
			}
			if locked == nil || locked.QuantityRemaining <= 0 {
				return nil
			}
			qty := locked.QuantityRemaining
			if err := model.AdjustBatch(tx.DB(), locked, -qty, model.MovementExpired, model.RefBatch, locked.ID, "expired"); err != nil {
				return err
			}

			name := fmt.Sprintf("#%d", locked.ProductID)
			if b.Product != nil {
				name = b.Product.Name
			}
			if err := model.NotifyPharmacyRoles(tx.DB(), locked.PharmacyID, model.StockAlertRoles, model.NotificationInput{
				Topic:     model.TopicBatchExpired,
				Title:     "批次已过期出库",
				Body:      fmt.Sprintf("%s 批号 %s 过期出库 %d", name, locked.LotNumber, qty),
				Payload:   map[string]interface{}{"batch_id": locked.ID, "product_id": locked.ProductID, "quantity": qty},
				DedupeKey: fmt.Sprintf("batch:%d:expired", locked.ID),
			}); err != nil {
				return err
			}

			result.Batches++
			result.Quantity += qty
			return nil
		})
		if err != nil {
			s.log.Error("过期批次出库失败", zap.Int64("batch_id", b.ID), zap.Error(err))
			return result, err
		}
	}
	if result.Batches > 0 {
		s.log.Info("过期批次已出库", zap.Int64("pharmacy_id", pharmacyID), zap.Int("batches", result.Batches), zap.Int("quantity", result.Quantity))
	}
	return result, nil
}

// AlertExpiring 对 days 天内到期的批次通知药房管理人员，同一批次每天最多一条
func (s *StockService) AlertExpiring(ctx context.Context, days int) (int, error) {
	now := time.Now()
	before := dayStart(now).AddDate(0, 0, days+1)
	batches, err := s.store.Batches.ListExpiring(ctx, 0, before)
	if err != nil {
		return 0, err
	}

	sent := 0
	today := now.Format("20060102")
	db := s.store.DB().WithContext(ctx)
	for i := range batches {
		b := &batches[i]
		if b.IsExpired(now) {
			continue
		}
		name := fmt.Sprintf("#%d", b.ProductID)
		if b.Product != nil {
			name = b.Product.Name
		}
		err := model.NotifyPharmacyRoles(db, b.PharmacyID, model.StockAlertRoles, model.NotificationInput{
			Topic:     model.TopicBatchExpiring,
			Title:     "批次即将过期",
			Body:      fmt.Sprintf("%s 批号 %s 于 %s 到期，剩余 %d", name, b.LotNumber, b.ExpiryDate.Format("2006-01-02"), b.QuantityRemaining),
			Payload:   map[string]interface{}{"batch_id": b.ID, "product_id": b.ProductID, "expiry_date": b.ExpiryDate.Format("2006-01-02")},
			DedupeKey: fmt.Sprintf("batch:%d:expiring:%s", b.ID, today),
		})
		if err != nil {
			return sent, err
		}
		sent++
	}
	return sent, nil
}

// ==================== 查询 / 报表 ====================

// GetBatch 批次详情
func (s *StockService) GetBatch(ctx context.Context, pharmacyID, id int64) (*model.StockBatch, error) {
	b, err := s.store.Batches.GetByID(ctx, pharmacyID, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBatchNotFound
	}
	return b, nil
}

// ListBatches 批次列表（按近效期排序）
func (s *StockService) ListBatches(ctx context.Context, pharmacyID int64, req *dto.BatchListRequest) (*dto.PageResult[model.StockBatch], error) {
	list, total, err := s.store.Batches.List(ctx, repository.BatchFilter{
		PharmacyID:    pharmacyID,
		ProductID:     req.ProductID,
		OnlyAvailable: req.OnlyAvailable,
		Pagination:    toPagination(req.PageQuery),
	})
	if err != nil {
		return nil, err
	}
	return dto.NewPageResult(list, total), nil
}

// ListMovements 库存流水
func (s *StockService) ListMovements(ctx context.Context, pharmacyID int64, req *dto.MovementListRequest) (*dto.PageResult[model.StockMovement], error) {
	list, total, err := s.store.Movements.List(ctx, repository.MovementFilter{
		PharmacyID: pharmacyID,
		ProductID:  req.ProductID,
		BatchID:    req.BatchID,
		Type:       req.Type,
		DateRange:  toDateRange(req.PeriodQuery),
		Pagination: toPagination(req.PageQuery),
	})
	if err != nil {
		return nil, err
	}
	return dto.NewPageResult(list, total), nil
}

// Expiring 未来 days 天内到期（含已过期未出库）的批次
func (s *StockService) Expiring(ctx context.Context, pharmacyID int64, days int) ([]model.StockBatch, error) {
	before := dayStart(time.Now()).AddDate(0, 0, days+1)
	list, err := s.store.Batches.ListExpiring(ctx, pharmacyID, before)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []model.StockBatch{}
	}
	return list, nil
}

// LowStock 低于补货线的商品
func (s *StockService) LowStock(ctx context.Context, pharmacyID int64, page dto.PageQuery) (*dto.PageResult[model.Product], error) {
	list, total, err := s.store.Products.List(ctx, repository.ProductFilter{
		PharmacyID: pharmacyID,
		LowStock:   true,
		Active:     ptr(true),
		Pagination: toPagination(page),
	})
	if err != nil {
		return nil, err
	}
	return dto.NewPageResult(list, total), nil
}

// Valuation 库存估值：成本按批次进价，售价按当前售价
func (s *StockService) Valuation(ctx context.Context, pharmacyID int64) (*dto.ValuationReport, error) {
	rows, err := s.store.Products.Valuation(ctx, pharmacyID)
	if err != nil {
		return nil, err
	}
	report := &dto.ValuationReport{Items: make([]dto.ValuationItem, 0, len(rows))}
	for _, r := range rows {
		item := dto.ValuationItem{
			ProductID:     r.ProductID,
			SKU:           r.SKU,
			Name:          r.Name,
			StockQuantity: r.StockQuantity,
			CostValue:     r.CostValue,
			SaleValue:     int64(r.StockQuantity) * r.SalePrice,
		}
		report.Items = append(report.Items, item)
		report.TotalCost += item.CostValue
		report.TotalSaleValue += item.SaleValue
	}
	return report, nil
}

// ==================== 错误定义 ====================

var (
	ErrBatchNotFound = fmt.Errorf("批次%w", ErrNotFound)
)
