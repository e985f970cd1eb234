package task

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// ==================== 分区维护 ====================

// PartitionMaintainer 按月分区维护（仅 PostgreSQL）
type PartitionMaintainer interface {
	EnsureFuturePartitions(ctx context.Context, monthsAhead int) error
	DropExpiredPartitions(ctx context.Context) (int, error)
}

// NotificationCleaner 清理已读旧通知
type NotificationCleaner interface {
	Cleanup(ctx context.Context, before time.Time) (int64, error)
}

// MaintenanceTask 每日维护：预建分区、删除超期分区、清理旧通知
type MaintenanceTask struct {
	partitions    PartitionMaintainer
	notifications NotificationCleaner
	futureMonths  int
	retention     time.Duration
	log           *zap.Logger
	now           func() time.Time
}

func NewMaintenanceTask(partitions PartitionMaintainer, notifications NotificationCleaner, futureMonths int, log *zap.Logger) *MaintenanceTask {
	if futureMonths <= 0 {
		futureMonths = 3
	}
	return &MaintenanceTask{
		partitions:    partitions,
		notifications: notifications,
		futureMonths:  futureMonths,
		retention:     90 * 24 * time.Hour,
		log:           log,
		now:           time.Now,
	}
}

func (t *MaintenanceTask) Name() string { return "maintenance" }

func (t *MaintenanceTask) Run(ctx context.Context) error {
	var errs []error

	if t.partitions != nil {
		if err := t.partitions.EnsureFuturePartitions(ctx, t.futureMonths); err != nil {
			errs = append(errs, err)
		}
		dropped, err := t.partitions.DropExpiredPartitions(ctx)
		if err != nil {
			errs = append(errs, err)
		} else if dropped > 0 {
			t.log.Info("已删除超期分区", zap.Int("count", dropped))
		}
	}

	if t.notifications != nil {
		n, err := t.notifications.Cleanup(ctx, t.now().Add(-t.retention))
		if err != nil {
			errs = append(errs, err)
		} else if n > 0 {
			t.log.Info("已清理旧通知", zap.Int64("count", n))
		}
	}
	return errors.Join(errs...)
}

// ==================== 购物车清理 ====================

// CartCleaner 过期购物车
type CartCleaner interface {
	CleanupCarts(ctx context.Context) (int64, error)
}

// CartCleanupTask 删除过期购物车
type CartCleanupTask struct {
	storefront CartCleaner
	log        *zap.Logger
}

func NewCartCleanupTask(storefront CartCleaner, log *zap.Logger) *CartCleanupTask {
	return &CartCleanupTask{storefront: storefront, log: log}
}

func (t *CartCleanupTask) Name() string { return "cart_cleanup" }

func (t *CartCleanupTask) Run(ctx context.Context) error {
	n, err := t.storefront.CleanupCarts(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		t.log.Info("已删除过期购物车", zap.Int64("count", n))
	}
	return nil
}
