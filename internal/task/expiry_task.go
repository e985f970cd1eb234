package task

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"pharmacy_erp/internal/api/dto"
)

// ExpiryStock 批次效期处理
type ExpiryStock interface {
	AlertExpiring(ctx context.Context, days int) (int, error)
	ExpireBatches(ctx context.Context, pharmacyID int64) (*dto.ExpireResult, error)
}

// PrescriptionExpirer 处方过期
type PrescriptionExpirer interface {
	ExpirePrescriptions(ctx context.Context) (int64, error)
}

// ExpiryTask 每日效期任务：
// 1. 即将过期批次通知库存负责人（每批次每天一次）
// 2. 已过期仍有余量的批次以 expired 流水出库
// 3. 超过有效期的处方置为 expired
type ExpiryTask struct {
	stock         ExpiryStock
	prescriptions PrescriptionExpirer
	days          int
	log           *zap.Logger
}

func NewExpiryTask(stock ExpiryStock, prescriptions PrescriptionExpirer, days int, log *zap.Logger) *ExpiryTask {
	if days <= 0 {
		days = 30
	}
	return &ExpiryTask{stock: stock, prescriptions: prescriptions, days: days, log: log}
}

func (t *ExpiryTask) Name() string { return "expiry" }

// Run 三步互不阻断，错误合并返回
func (t *ExpiryTask) Run(ctx context.Context) error {
	var errs []error

	alerts, err := t.stock.AlertExpiring(ctx, t.days)
	if err != nil {
		errs = append(errs, err)
	}

	// 0 表示所有药房
	expired, err := t.stock.ExpireBatches(ctx, 0)
	if err != nil {
		errs = append(errs, err)
		expired = &dto.ExpireResult{}
	}

	var rx int64
	if t.prescriptions != nil {
		rx, err = t.prescriptions.ExpirePrescriptions(ctx)
		if err != nil {
			errs = append(errs, err)
		}
	}

	t.log.Info("效期任务完成",
		zap.Int("alerts", alerts),
		zap.Int("expired_batches", expired.Batches),
		zap.Int("expired_quantity", expired.Quantity),
		zap.Int64("expired_prescriptions", rx),
	)
	return errors.Join(errs...)
}
