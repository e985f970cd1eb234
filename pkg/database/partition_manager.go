package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PartitionManager 维护按月范围分区（仅 PostgreSQL）
type PartitionManager struct {
	db     *gorm.DB
	config *PartitionConfig
	log    *zap.Logger
	now    func() time.Time
}

// NewPartitionManager 创建分区管理器
func NewPartitionManager(db *gorm.DB, config *PartitionConfig, log *zap.Logger) *PartitionManager {
	return &PartitionManager{db: db, config: config, log: log.Named("partition"), now: time.Now}
}

// PartitionName 分区命名: <表名>_y2026m03
func PartitionName(table string, month time.Time) string {
	return fmt.Sprintf("%s_y%dm%02d", table, month.Year(), month.Month())
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// ==================== 建表 ====================

// CreateParentTables 创建分区主表（已存在则跳过）
func (m *PartitionManager) CreateParentTables(ctx context.Context) error {
	for _, table := range m.config.Tables {
		exists, err := m.relationExists(ctx, table.Name)
		if err != nil {
			return fmt.Errorf("检查表 %s 失败: %w", table.Name, err)
		}
		if exists {
			continue
		}
		if err := m.db.WithContext(ctx).Exec(table.DDL).Error; err != nil {
			return fmt.Errorf("创建分区主表 %s 失败: %w", table.Name, err)
		}
		m.log.Info("分区主表已创建", zap.String("table", table.Name))
	}
	return nil
}

// EnsureFuturePartitions 确保当前月及未来 N 个月的分区存在
func (m *PartitionManager) EnsureFuturePartitions(ctx context.Context, monthsAhead int) error {
	base := monthStart(m.now())
	var firstErr error
	for i := 0; i <= monthsAhead; i++ {
		month := base.AddDate(0, i, 0)
		for _, table := range m.config.Tables {
			if err := m.createPartition(ctx, table.Name, month); err != nil {
				m.log.Warn("创建分区失败", zap.String("table", table.Name), zap.Error(err))
				if firstErr == nil {
					firstErr = err
				}
			}
		}
	}
	return firstErr
}

func (m *PartitionManager) createPartition(ctx context.Context, table string, month time.Time) error {
	name := PartitionName(table, month)
	exists, err := m.relationExists(ctx, name)
	if err != nil || exists {
		return err
	}

	stmt := fmt.Sprintf(`CREATE TABLE %s PARTITION OF %s FOR VALUES FROM ('%s') TO ('%s')`,
		name, table, month.Format("2006-01-02"), month.AddDate(0, 1, 0).Format("2006-01-02"))
	if err := m.db.WithContext(ctx).Exec(stmt).Error; err != nil {
		if strings.Contains(err.Error(), "already exists") {
			return nil
		}
		return err
	}
	m.log.Info("分区已创建", zap.String("partition", name))
	return nil
}

func (m *PartitionManager) relationExists(ctx context.Context, name string) (bool, error) {
	var count int64
	err := m.db.WithContext(ctx).
		Raw(`SELECT COUNT(*) FROM pg_tables WHERE schemaname = current_schema() AND tablename = ?`, name).
		Scan(&count).Error
	return count > 0, err
}

// ==================== 清理 ====================

// DropExpiredPartitions 按保留月数删除过期分区，返回删除数量
func (m *PartitionManager) DropExpiredPartitions(ctx context.Context) (int, error) {
	dropped := 0
	for _, table := range m.config.Tables {
		if table.RetentionMonths == 0 {
			continue
		}
		cutoff := monthStart(m.now()).AddDate(0, -table.RetentionMonths, 0)

		parts, err := m.ListPartitions(ctx, table.Name)
		if err != nil {
			return dropped, err
		}
		for _, p := range parts {
			month, ok := parsePartitionMonth(p.Name, table.Name)
			if !ok || !month.Before(cutoff) {
				continue
			}
			if err := m.db.WithContext(ctx).Exec("DROP TABLE IF EXISTS " + p.Name).Error; err != nil {
				m.log.Warn("删除过期分区失败", zap.String("partition", p.Name), zap.Error(err))
				continue
			}
			m.log.Info("过期分区已删除", zap.String("partition", p.Name))
			dropped++
		}
	}
	return dropped, nil
}

func parsePartitionMonth(partition, table string) (time.Time, bool) {
	suffix := strings.TrimPrefix(partition, table+"_y")
	if suffix == partition {
		return time.Time{}, false
	}
	var year, month int
	if _, err := fmt.Sscanf(suffix, "%dm%d", &year, &month); err != nil || month < 1 || month > 12 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC), true
}

// ==================== 查询 ====================

// PartitionInfo 分区信息
type PartitionInfo struct {
	Name      string `gorm:"column:partition_name"`
	SizeBytes int64  `gorm:"column:size_bytes"`
}

// ListPartitions 列出表的所有分区
func (m *PartitionManager) ListPartitions(ctx context.Context, table string) ([]PartitionInfo, error) {
	var parts []PartitionInfo
	err := m.db.WithContext(ctx).Raw(`
		SELECT child.relname AS partition_name,
		       pg_total_relation_size(child.oid) AS size_bytes
		FROM pg_inherits
		JOIN pg_class parent ON pg_inherits.inhparent = parent.oid
		JOIN pg_class child ON pg_inherits.inhrelid = child.oid
		WHERE parent.relname = ?
		ORDER BY child.relname`, table).Scan(&parts).Error
	return parts, err
}

// HealthCheck 当前月与下月分区必须存在
func (m *PartitionManager) HealthCheck(ctx context.Context) error {
	current := monthStart(m.now())
	var missing []string
	for _, table := range m.config.Tables {
		for _, month := range []time.Time{current, current.AddDate(0, 1, 0)} {
			name := PartitionName(table.Name, month)
			if ok, _ := m.relationExists(ctx, name); !ok {
				missing = append(missing, name)
			}
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("缺失分区: %s", strings.Join(missing, ", "))
	}
	return nil
}
