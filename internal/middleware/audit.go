package middleware

import (
	"context"
	"encoding/json"
	"reflect"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"pharmacy_erp/internal/model"
)

// ==================== 审计上下文 ====================

type auditContextKey struct{}

// AuditInfo 审计信息
type AuditInfo struct {
	UserID     int64
	Username   string
	PharmacyID int64
	IP         string
}

// WithAuditInfo 注入审计信息到 context
func WithAuditInfo(ctx context.Context, info *AuditInfo) context.Context {
	return context.WithValue(ctx, auditContextKey{}, info)
}

// GetAuditInfo 从 context 获取审计信息
func GetAuditInfo(ctx context.Context) *AuditInfo {
	if ctx == nil {
		return nil
	}
	if info, ok := ctx.Value(auditContextKey{}).(*AuditInfo); ok {
		return info
	}
	return nil
}

// AuditContext 将 JWT 用户注入 request context，供 GORM 回调使用
func AuditContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := GetUserID(c); userID > 0 {
			ctx := WithAuditInfo(c.Request.Context(), &AuditInfo{
				UserID:   userID,
				Username: GetUsername(c),
				IP:       c.ClientIP(),
			})
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

// ==================== GORM 回调 ====================

// 不写审计日志的表（本身即日志或纯技术表）
var auditSkipTables = map[string]bool{
	"activity_logs":             true,
	"number_sequences":          true,
	"notifications":             true,
	"stock_movements":           true,
	"loyalty_transactions":      true,
	"sale_line_allocations":     true,
	"carts":                     true,
	"cart_items":                true,
	"conversation_participants": true,
}

// RegisterAuditCallbacks 注册审计回调
// Create/Update 前填充 CreatedBy/UpdatedBy；Create/Update/Delete 后写 activity_logs
func RegisterAuditCallbacks(db *gorm.DB) error {
	cb := db.Callback()
	if err := cb.Create().Before("gorm:create").Register("audit:stamp_create", func(tx *gorm.DB) {
		if info := GetAuditInfo(tx.Statement.Context); info != nil {
			setAuditField(tx, "CreatedBy", info.UserID)
			setAuditField(tx, "UpdatedBy", info.UserID)
		}
	}); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("audit:stamp_update", func(tx *gorm.DB) {
		if info := GetAuditInfo(tx.Statement.Context); info != nil {
			if dest, ok := tx.Statement.Dest.(map[string]interface{}); ok {
				if tx.Statement.Schema != nil && tx.Statement.Schema.LookUpField("UpdatedBy") != nil {
					dest["updated_by"] = info.UserID
				}
				return
			}
			setAuditField(tx, "UpdatedBy", info.UserID)
		}
	}); err != nil {
		return err
	}

	if err := cb.Create().After("gorm:create").Register("audit:log_create", activityLogger("create")); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("audit:log_update", activityLogger("update")); err != nil {
		return err
	}
	return cb.Delete().After("gorm:delete").Register("audit:log_delete", activityLogger("delete"))
}

func activityLogger(action string) func(*gorm.DB) {
	return func(tx *gorm.DB) {
		// UpdateColumn 等跳过钩子的写入属于内部级联，不单独记录
		if tx.Error != nil || tx.RowsAffected == 0 || tx.Statement.Schema == nil || tx.Statement.SkipHooks {
			return
		}
		info := GetAuditInfo(tx.Statement.Context)
		if info == nil || auditSkipTables[tx.Statement.Table] {
			return
		}

		var changes datatypes.JSON
		if dest, ok := tx.Statement.Dest.(map[string]interface{}); ok && action == "update" {
			if raw, err := json.Marshal(dest); err == nil {
				changes = raw
			}
		}

		var logs []model.ActivityLog
		eachRecord(tx, func(rv reflect.Value) {
			entry := model.ActivityLog{
				PharmacyID: info.PharmacyID,
				UserID:     info.UserID,
				Action:     action,
				Entity:     tx.Statement.Table,
				Changes:    changes,
				IP:         info.IP,
			}
			if pk := tx.Statement.Schema.PrioritizedPrimaryField; pk != nil {
				if v, zero := pk.ValueOf(tx.Statement.Context, rv); !zero {
					entry.RecordID, _ = v.(int64)
				}
			}
			if f := tx.Statement.Schema.LookUpField("PharmacyID"); f != nil {
				if v, zero := f.ValueOf(tx.Statement.Context, rv); !zero {
					entry.PharmacyID, _ = v.(int64)
				}
			}
			logs = append(logs, entry)
		})
		if len(logs) == 0 {
			return
		}

		if err := tx.Session(&gorm.Session{NewDB: true, SkipHooks: true}).Create(&logs).Error; err != nil {
			_ = tx.AddError(err)
		}
	}
}

func eachRecord(tx *gorm.DB, fn func(reflect.Value)) {
	rv := reflect.Indirect(tx.Statement.ReflectValue)
	switch rv.Kind() {
	case reflect.Struct:
		fn(rv)
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			fn(reflect.Indirect(rv.Index(i)))
		}
	}
}

// setAuditField 零值时填充审计字段
func setAuditField(tx *gorm.DB, fieldName string, value int64) {
	if tx.Statement.Schema == nil {
		return
	}
	field := tx.Statement.Schema.LookUpField(fieldName)
	if field == nil {
		return
	}
	eachRecord(tx, func(rv reflect.Value) {
		if _, isZero := field.ValueOf(tx.Statement.Context, rv); isZero || fieldName == "UpdatedBy" {
			_ = field.Set(tx.Statement.Context, rv, value)
		}
	})
}
