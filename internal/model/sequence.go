package model

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// NumberSequence 业务单号计数器，(pharmacy_id, seq_key) 唯一
// seq_key 带周期后缀，如 sale:20261019、invoice:2026
type NumberSequence struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	PharmacyID int64     `gorm:"uniqueIndex:idx_seq_pharmacy_key;not null;default:0"`
	SeqKey     string    `gorm:"uniqueIndex:idx_seq_pharmacy_key;size:64;not null"`
	LastValue  int64     `gorm:"not null;default:0"`
	UpdatedAt  time.Time
}

func (NumberSequence) TableName() string {
	return "number_sequences"
}

// NextNumber 在当前事务内取下一个序号
// 先原子自增，行不存在时插入；并发插入冲突由唯一索引兜底并导致事务失败
func NextNumber(tx *gorm.DB, pharmacyID int64, key string) (int64, error) {
	db := tx.Session(&gorm.Session{NewDB: true, SkipHooks: true})

	res := db.Model(&NumberSequence{}).
		Where("pharmacy_id = ? AND seq_key = ?", pharmacyID, key).
		UpdateColumn("last_value", gorm.Expr("last_value + 1"))
	if res.Error != nil {
		return 0, fmt.Errorf("更新序号 %s 失败: %w", key, res.Error)
	}

	if res.RowsAffected == 0 {
		seq := NumberSequence{PharmacyID: pharmacyID, SeqKey: key, LastValue: 1}
		if err := db.Create(&seq).Error; err != nil {
			return 0, fmt.Errorf("初始化序号 %s 失败: %w", key, err)
		}
		return 1, nil
	}

	var seq NumberSequence
	if err := db.Where("pharmacy_id = ? AND seq_key = ?", pharmacyID, key).First(&seq).Error; err != nil {
		return 0, err
	}
	return seq.LastValue, nil
}

// ==================== 单号格式 ====================

// 单号前缀
const (
	PrefixPharmacy      = "PH"
	PrefixEmployee      = "EMP"
	PrefixPayslip       = "PAY"
	PrefixPurchaseOrder = "PO"
	PrefixSale          = "VT"
	PrefixInvoice       = "FA"
	PrefixCustomer      = "CL"
	PrefixOnlineOrder   = "CMD"
)

// nextCode 生成 PREFIX[-PERIOD]-000N 格式单号
func nextCode(tx *gorm.DB, pharmacyID int64, prefix, period string, width int) (string, error) {
	key := prefix
	if period != "" {
		key = prefix + ":" + period
	}
	n, err := NextNumber(tx, pharmacyID, key)
	if err != nil {
		return "", err
	}
	if period == "" {
		return fmt.Sprintf("%s-%0*d", prefix, width, n), nil
	}
	return fmt.Sprintf("%s-%s-%0*d", prefix, period, width, n), nil
}
