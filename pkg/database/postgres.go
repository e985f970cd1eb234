package database

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pharmacy_erp/pkg/logger"
)

// Options 数据库连接参数
type Options struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogLevel        string
}

// Open 建立数据库连接并设置连接池
// DSN 以 file: 开头或为 :memory: 时使用 SQLite（本地运行），否则为 PostgreSQL
func Open(opts Options, log *zap.Logger) (*gorm.DB, error) {
	dialector := postgres.Open(opts.DSN)
	if isSQLiteDSN(opts.DSN) {
		dialector = sqlite.Open(opts.DSN)
		// SQLite 单写者
		opts.MaxOpenConns = 1
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.NewGormLogger(log, opts.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("数据库连接失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层 SQL DB 失败: %w", err)
	}

	if opts.MaxIdleConns <= 0 {
		opts.MaxIdleConns = 10
	}
	if opts.MaxOpenConns <= 0 {
		opts.MaxOpenConns = 100
	}
	if opts.ConnMaxLifetime <= 0 {
		opts.ConnMaxLifetime = time.Hour
	}
	sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)

	log.Info("数据库连接成功",
		zap.Int("max_idle", opts.MaxIdleConns),
		zap.Int("max_open", opts.MaxOpenConns))
	return db, nil
}

func isSQLiteDSN(dsn string) bool {
	return dsn == ":memory:" || strings.HasPrefix(dsn, "file:")
}

// IsPostgres 判断当前连接是否为 PostgreSQL
func IsPostgres(db *gorm.DB) bool {
	return db.Dialector.Name() == "postgres"
}
