package database

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrateOptions 迁移参数
type MigrateOptions struct {
	// Models 普通表
	Models []interface{}
	// PartitionedModels 分区表对应的模型，非 PostgreSQL 时走 AutoMigrate
	PartitionedModels []interface{}
	// FutureMonths 预建分区月数（默认 3）
	FutureMonths int
}

// Migrate 建表：PostgreSQL 下分区表由嵌入 SQL 创建，其余表 AutoMigrate
// 返回的 PartitionManager 在非 PostgreSQL 时为 nil
func Migrate(ctx context.Context, db *gorm.DB, log *zap.Logger, opts MigrateOptions) (*PartitionManager, error) {
	start := time.Now()
	if opts.FutureMonths <= 0 {
		opts.FutureMonths = 3
	}

	var manager *PartitionManager
	if IsPostgres(db) {
		cfg, err := LoadPartitionConfig(PartitionSQL, "partitions")
		if err != nil {
			return nil, err
		}
		manager = NewPartitionManager(db, cfg, log)
		if err := manager.CreateParentTables(ctx); err != nil {
			return nil, err
		}
		if err := manager.EnsureFuturePartitions(ctx, opts.FutureMonths); err != nil {
			return nil, err
		}
	} else {
		opts.Models = append(opts.Models, opts.PartitionedModels...)
	}

	if err := db.WithContext(ctx).AutoMigrate(opts.Models...); err != nil {
		return nil, fmt.Errorf("AutoMigrate 失败: %w", err)
	}

	log.Info("数据库迁移完成", zap.Int("tables", len(opts.Models)), zap.Duration("elapsed", time.Since(start)))
	return manager, nil
}
