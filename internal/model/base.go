package model

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type BaseModel struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// AuditMixin 审计字段，由 middleware.RegisterAuditCallbacks 自动填充
type AuditMixin struct {
	CreatedBy int64 `gorm:"index;comment:创建人ID" json:"created_by"`
	UpdatedBy int64 `gorm:"comment:更新人ID" json:"updated_by"`
}

// 钩子中抛出的业务错误，事务会随之回滚
var (
	ErrInsufficientStock     = errors.New("库存不足")
	ErrInvalidQuantity       = errors.New("数量必须大于 0")
	ErrInvalidPeriod         = errors.New("结束时间不能早于开始时间")
	ErrOverpayment           = errors.New("付款金额超过未结余额")
	ErrInvoiceNotPayable     = errors.New("发票当前状态不可收款")
	ErrInsufficientPoints    = errors.New("积分余额不足")
	ErrInvalidAmount         = errors.New("金额必须大于 0")
	ErrOverReceipt           = errors.New("入库数量超过采购数量")
	ErrLoyaltyAccountMissing = errors.New("积分账户不存在")
	ErrPrescriptionRequired  = errors.New("处方药需要关联处方")
	ErrProductUnavailable    = errors.New("商品不存在或已停售")
	ErrInvalidPaymentMethod  = errors.New("不支持的支付方式")
)

// IsBusinessRule 是否为钩子抛出的业务规则错误
func IsBusinessRule(err error) bool {
	for _, target := range []error{
		ErrInsufficientStock, ErrInvalidQuantity, ErrInvalidPeriod, ErrOverpayment,
		ErrInvoiceNotPayable, ErrInsufficientPoints, ErrInvalidAmount, ErrOverReceipt,
		ErrLoyaltyAccountMissing, ErrPrescriptionRequired, ErrProductUnavailable, ErrInvalidPaymentMethod,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// startOfDay 当天 0 点（本地时区）
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// calendarDays 两个日期之间相差的自然日，按各自时区的日历日期计算，不受夏令时影响
func calendarDays(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
