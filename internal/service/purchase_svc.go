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

// PurchaseService 采购单
type PurchaseService struct {
	store *repository.Store
	log   *zap.Logger
}

// NewPurchaseService 创建采购服务
func NewPurchaseService(store *repository.Store) *PurchaseService {
	return &PurchaseService{store: store, log: logger.Named("purchase")}
}

// Create 新建草稿采购单，合计由钩子计算
func (s *PurchaseService) Create(ctx context.Context, pharmacyID int64, req *dto.PurchaseOrderRequest) (*model.PurchaseOrder, error) {
	lines, err := s.buildLines(ctx, pharmacyID, req)
	if err != nil {
		return nil, err
	}
	po := &model.PurchaseOrder{
		PharmacyID:   pharmacyID,
		SupplierID:   req.SupplierID,
		Status:       model.POStatusDraft,
		ExpectedDate: req.ExpectedDate,
		Notes:        req.Notes,
		Lines:        lines,
	}
	if err := s.store.Purchases.Create(ctx, po); err != nil {
		return nil, err
	}
	return s.Get(ctx, pharmacyID, po.ID)
}

// Update 修改草稿采购单并整体替换明细
func (s *PurchaseService) Update(ctx context.Context, pharmacyID, id int64, req *dto.PurchaseOrderRequest) (*model.PurchaseOrder, error) {
	lines, err := s.buildLines(ctx, pharmacyID, req)
	if err != nil {
		return nil, err
	}
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		po, err := tx.Purchases.GetForUpdate(ctx, pharmacyID, id)
		if err != nil {
			return err
		}
		if po == nil {
			return ErrPurchaseOrderNotFound
		}
		if !po.Editable() {
			return ErrPurchaseOrderNotDraft
		}
		po.SupplierID = req.SupplierID
		po.ExpectedDate = req.ExpectedDate
		po.Notes = req.Notes
		return tx.Purchases.ReplaceLines(ctx, po, lines)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, pharmacyID, id)
}

// Get 采购单详情
func (s *PurchaseService) Get(ctx context.Context, pharmacyID, id int64) (*model.PurchaseOrder, error) {
	po, err := s.store.Purchases.GetByID(ctx, pharmacyID, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, ErrPurchaseOrderNotFound
	}
	return po, nil
}

// List 采购单列表
func (s *PurchaseService) List(ctx context.Context, pharmacyID int64, req *dto.PurchaseOrderListRequest) (*dto.PageResult[model.PurchaseOrder], error) {
	list, total, err := s.store.Purchases.List(ctx, repository.PurchaseOrderFilter{
		PharmacyID: pharmacyID,
		SupplierID: req.SupplierID,
		Status:     req.Status,
		DateRange:  toDateRange(req.PeriodQuery),
		Pagination: toPagination(req.PageQuery),
	})
	if err != nil {
		return nil, err
	}
	return dto.NewPageResult(list, total), nil
}

// Send 草稿发出给供应商
func (s *PurchaseService) Send(ctx context.Context, pharmacyID, id int64) (*model.PurchaseOrder, error) {
	return s.transition(ctx, pharmacyID, id, func(po *model.PurchaseOrder) error {
		if !po.Editable() {
			return ErrPurchaseOrderNotDraft
		}
		if len(po.Lines) == 0 {
			return fmt.Errorf("%w: 采购单没有明细", ErrInvalidInput)
		}
		now := time.Now()
		po.Status = model.POStatusSent
		po.SentAt = &now
		return nil
	})
}

// Cancel 取消采购单，已有到货的不可取消
func (s *PurchaseService) Cancel(ctx context.Context, pharmacyID, id int64) (*model.PurchaseOrder, error) {
	return s.transition(ctx, pharmacyID, id, func(po *model.PurchaseOrder) error {
		if po.Status != model.POStatusDraft && po.Status != model.POStatusSent {
			return fmt.Errorf("%w: 采购单状态 %s", ErrInvalidState, po.Status)
		}
		po.Status = model.POStatusCancelled
		return nil
	})
}

func (s *PurchaseService) transition(ctx context.Context, pharmacyID, id int64, apply func(po *model.PurchaseOrder) error) (*model.PurchaseOrder, error) {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		po, err := tx.Purchases.GetForUpdate(ctx, pharmacyID, id)
		if err != nil {
			return err
		}
		if po == nil {
			return ErrPurchaseOrderNotFound
		}
		if err := apply(po); err != nil {
			return err
		}
		return tx.Purchases.Update(ctx, po)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, pharmacyID, id)
}

// Receive 收货（可部分），每行生成一个批次；采购单状态由明细钩子重算
func (s *PurchaseService) Receive(ctx context.Context, pharmacyID, id int64, req *dto.ReceiveLinesRequest) (*model.PurchaseOrder, error) {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		po, err := tx.Purchases.GetForUpdate(ctx, pharmacyID, id)
		if err != nil {
			return err
		}
		if po == nil {
			return ErrPurchaseOrderNotFound
		}
		if !po.Receivable() {
			return fmt.Errorf("%w: 采购单状态 %s", ErrInvalidState, po.Status)
		}

		lines := make(map[int64]*model.PurchaseOrderLine, len(po.Lines))
		for i := range po.Lines {
			lines[po.Lines[i].ID] = &po.Lines[i]
		}
		for _, r := range req.Lines {
			line, ok := lines[r.LineID]
			if !ok {
				return fmt.Errorf("%w: 明细 #%d 不属于该采购单", ErrInvalidInput, r.LineID)
			}
			if r.Quantity > line.Outstanding() {
				return fmt.Errorf("%w: 明细 #%d 未到货 %d", model.ErrOverReceipt, line.ID, line.Outstanding())
			}

			batch := &model.StockBatch{
				PharmacyID:          pharmacyID,
				ProductID:           line.ProductID,
				SupplierID:          &po.SupplierID,
				PurchaseOrderID:     &po.ID,
				PurchaseOrderLineID: &line.ID,
				LotNumber:           r.LotNumber,
				ExpiryDate:          r.ExpiryDate,
				QuantityReceived:    r.Quantity,
				UnitCost:            line.UnitCost,
			}
			if err := tx.Batches.Create(ctx, batch); err != nil {
				return err
			}
			line.QuantityReceived += r.Quantity
			if err := tx.Purchases.UpdateLine(ctx, line); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("采购收货", zap.Int64("pharmacy_id", pharmacyID), zap.Int64("po_id", id), zap.Int("lines", len(req.Lines)))
	return s.Get(ctx, pharmacyID, id)
}

// buildLines 校验供应商与商品，进价默认取商品进价，税率取商品税率
func (s *PurchaseService) buildLines(ctx context.Context, pharmacyID int64, req *dto.PurchaseOrderRequest) ([]model.PurchaseOrderLine, error) {
	sup, err := s.store.Suppliers.GetByID(ctx, pharmacyID, req.SupplierID)
	if err != nil {
		return nil, err
	}
	if sup == nil {
		return nil, ErrSupplierNotFound
	}

	ids := make([]int64, 0, len(req.Lines))
	for _, l := range req.Lines {
		ids = append(ids, l.ProductID)
	}
	products, err := s.store.Products.GetByIDs(ctx, pharmacyID, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*model.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	lines := make([]model.PurchaseOrderLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		p, ok := byID[l.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: #%d", ErrProductNotFound, l.ProductID)
		}
		cost := p.PurchasePrice
		if l.UnitCost != nil {
			cost = *l.UnitCost
		}
		lines = append(lines, model.PurchaseOrderLine{
			ProductID:       p.ID,
			QuantityOrdered: l.Quantity,
			UnitCost:        cost,
			VATRate:         p.VATRate,
		})
	}
	return lines, nil
}

// ==================== 错误定义 ====================

var (
	ErrPurchaseOrderNotFound = fmt.Errorf("采购单%w", ErrNotFound)
	ErrPurchaseOrderNotDraft = fmt.Errorf("%w: 仅草稿采购单可修改或发出", ErrInvalidState)
)
