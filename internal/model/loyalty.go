package model

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 会员等级
const (
	TierBronze = "bronze"
	TierSilver = "silver"
	TierGold   = "gold"
)

// 积分流水类型
const (
	LoyaltyEarn    = "earn"
	LoyaltyRedeem  = "redeem"
	LoyaltyAdjust  = "adjust"
	LoyaltyReverse = "reverse"
)

// LoyaltyPolicy 积分规则
type LoyaltyPolicy struct {
	CentsPerPoint   int64 // 每消费多少分得 1 积分
	PointValueCents int64 // 1 积分抵扣多少分
	SilverThreshold int64 // 累计积分达到即升银卡
	GoldThreshold   int64 // 累计积分达到即升金卡
}

var (
	loyaltyMu     sync.RWMutex
	loyaltyPolicy = LoyaltyPolicy{CentsPerPoint: 100, PointValueCents: 5, SilverThreshold: 500, GoldThreshold: 2000}
)

// SetLoyaltyPolicy 启动时由配置设置
func SetLoyaltyPolicy(p LoyaltyPolicy) {
	if p.CentsPerPoint <= 0 || p.PointValueCents <= 0 {
		return
	}
	loyaltyMu.Lock()
	loyaltyPolicy = p
	loyaltyMu.Unlock()
}

// CurrentLoyaltyPolicy 当前积分规则
func CurrentLoyaltyPolicy() LoyaltyPolicy {
	loyaltyMu.RLock()
	defer loyaltyMu.RUnlock()
	return loyaltyPolicy
}

// PointsFor 消费金额可得积分（向下取整）
func (p LoyaltyPolicy) PointsFor(amount int64) int64 {
	if amount <= 0 || p.CentsPerPoint <= 0 {
		return 0
	}
	return amount / p.CentsPerPoint
}

// TierFor 按累计积分定级
func (p LoyaltyPolicy) TierFor(lifetime int64) string {
	switch {
	case p.GoldThreshold > 0 && lifetime >= p.GoldThreshold:
		return TierGold
	case p.SilverThreshold > 0 && lifetime >= p.SilverThreshold:
		return TierSilver
	default:
		return TierBronze
	}
}

// LoyaltyAccount 会员积分账户，每个顾客一个
type LoyaltyAccount struct {
	BaseModel
	PharmacyID     int64  `gorm:"index;not null" json:"pharmacy_id"`
	CustomerID     int64  `gorm:"uniqueIndex;not null" json:"customer_id"`
	PointsBalance  int64  `gorm:"not null;default:0" json:"points_balance"`
	LifetimePoints int64  `gorm:"not null;default:0" json:"lifetime_points"`
	Tier           string `gorm:"size:16;not null;default:'bronze'" json:"tier"`
}

func (LoyaltyAccount) TableName() string {
	return "loyalty_accounts"
}

// LoyaltyTransaction 积分流水，Points 带符号
type LoyaltyTransaction struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PharmacyID   int64     `gorm:"index;not null" json:"pharmacy_id"`
	AccountID    int64     `gorm:"index;not null" json:"account_id"`
	Type         string    `gorm:"size:16;not null" json:"type"`
	Points       int64     `gorm:"not null" json:"points"`
	BalanceAfter int64     `gorm:"not null;default:0" json:"balance_after"`
	SaleID       *int64    `gorm:"index" json:"sale_id"`
	Note         string    `gorm:"size:255" json:"note"`
	CreatedBy    int64     `gorm:"not null;default:0" json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
}

func (LoyaltyTransaction) TableName() string {
	return "loyalty_transactions"
}

// BeforeCreate 更新账户余额、累计积分与等级
// 兑换超出余额拒绝；冲回超出余额时截断到 0
func (t *LoyaltyTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.Points == 0 {
		return ErrInvalidQuantity
	}
	db := tx.Session(&gorm.Session{NewDB: true})

	var acc LoyaltyAccount
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&acc, t.AccountID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: #%d", ErrLoyaltyAccountMissing, t.AccountID)
	}
	if err != nil {
		return err
	}

	balance := acc.PointsBalance + t.Points
	if balance < 0 {
		if t.Type != LoyaltyReverse {
			return fmt.Errorf("%w: 余额 %d", ErrInsufficientPoints, acc.PointsBalance)
		}
		t.Points = -acc.PointsBalance
		balance = 0
	}

	lifetime := acc.LifetimePoints
	switch {
	case t.Points > 0 && (t.Type == LoyaltyEarn || t.Type == LoyaltyAdjust):
		lifetime += t.Points
	case t.Points < 0 && t.Type == LoyaltyReverse:
		lifetime = max(lifetime+t.Points, 0)
	}

	t.PharmacyID = acc.PharmacyID
	t.BalanceAfter = balance
	return db.Model(&LoyaltyAccount{}).Where("id = ?", acc.ID).UpdateColumns(map[string]interface{}{
		"points_balance":  balance,
		"lifetime_points": lifetime,
		"tier":            CurrentLoyaltyPolicy().TierFor(lifetime),
		"updated_at":      time.Now(),
	}).Error
}
