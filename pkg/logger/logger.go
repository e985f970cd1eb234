package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	global *zap.Logger
	once   sync.Once
)

// Init 初始化全局 Logger
// mode: release 使用 JSON 输出，其余使用开发模式
func Init(mode string, level string) *zap.Logger {
	var cfg zap.Config
	if mode == "release" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if lvl, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	l, err := cfg.Build()
	if err != nil {
		l = zap.NewExample()
	}
	global = l
	zap.ReplaceGlobals(l)
	return l
}

// L 获取全局 Logger，未初始化时返回 Nop
func L() *zap.Logger {
	if global == nil {
		once.Do(func() {
			if global == nil {
				global = zap.NewNop()
			}
		})
	}
	return global
}

// Named 获取带模块名的 Logger
func Named(name string) *zap.Logger {
	return L().Named(name)
}

// Sync 刷新缓冲
func Sync() {
	if global != nil {
		_ = global.Sync()
	}
}
