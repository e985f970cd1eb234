package model

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 网店订单状态
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderReady     = "ready"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"

	DeliveryPickup = "pickup"
	DeliveryHome   = "delivery"

	CartTTL = 7 * 24 * time.Hour
)

// orderTransitions 允许的状态流转
var orderTransitions = map[string][]string{
	OrderPending:   {OrderConfirmed, OrderCancelled},
	OrderConfirmed: {OrderReady, OrderCancelled},
	OrderReady:     {OrderShipped, OrderDelivered, OrderCancelled},
	OrderShipped:   {OrderDelivered},
}

// CanTransition 订单状态是否允许从 from 变为 to
func CanTransition(from, to string) bool {
	return RoleIn(to, orderTransitions[from]...)
}

// Cart 匿名或登录顾客的购物车，以 Token 识别
type Cart struct {
	BaseModel
	Token      string    `gorm:"size:36;uniqueIndex;not null" json:"token"`
	PharmacyID int64     `gorm:"index;not null" json:"pharmacy_id"`
	UserID     *int64    `gorm:"index" json:"user_id"`
	ExpiresAt  time.Time `gorm:"index" json:"expires_at"`

	Items []CartItem `gorm:"foreignKey:CartID" json:"items"`
}

func (Cart) TableName() string {
	return "carts"
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.Token == "" {
		c.Token = uuid.NewString()
	}
	if c.ExpiresAt.IsZero() {
		c.ExpiresAt = time.Now().Add(CartTTL)
	}
	return nil
}

// CartItem 购物车条目
type CartItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID    int64     `gorm:"uniqueIndex:idx_cart_product;not null" json:"cart_id"`
	ProductID int64     `gorm:"uniqueIndex:idx_cart_product;not null" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

func (i *CartItem) BeforeSave(tx *gorm.DB) error {
	if i.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// OnlineOrder 网店订单，确认后转为线上销售单
type OnlineOrder struct {
	BaseModel
	PharmacyID      int64      `gorm:"uniqueIndex:idx_order_number;not null" json:"pharmacy_id"`
	Number          string     `gorm:"uniqueIndex:idx_order_number;size:32;not null" json:"number"`
	UserID          int64      `gorm:"index;not null" json:"user_id"`
	CustomerID      *int64     `gorm:"index" json:"customer_id"`
	PrescriptionID  *int64     `json:"prescription_id"`
	DeliveryMode    string     `gorm:"size:16;not null;default:'pickup'" json:"delivery_mode"`
	DeliveryAddress string     `gorm:"size:255" json:"delivery_address"`
	Phone           string     `gorm:"size:32" json:"phone"`
	Status          string     `gorm:"size:16;index;not null;default:'pending'" json:"status"`
	ItemCount       int        `gorm:"not null;default:0" json:"item_count"`
	TotalTTC        int64      `gorm:"not null;default:0" json:"total_ttc"`
	SaleID          *int64     `json:"sale_id"`
	Notes           string     `gorm:"size:500" json:"notes"`
	ConfirmedAt     *time.Time `json:"confirmed_at"`
	CancelledAt     *time.Time `json:"cancelled_at"`

	Items []OnlineOrderItem `gorm:"foreignKey:OnlineOrderID" json:"items,omitempty"`

	loadedStatus string
}

func (OnlineOrder) TableName() string {
	return "online_orders"
}

func (o *OnlineOrder) AfterFind(tx *gorm.DB) error {
	o.loadedStatus = o.Status
	return nil
}

// BeforeCreate 分配订单号 CMD-YYYY-000001
func (o *OnlineOrder) BeforeCreate(tx *gorm.DB) error {
	if o.Status == "" {
		o.Status = OrderPending
	}
	if o.DeliveryMode == "" {
		o.DeliveryMode = DeliveryPickup
	}
	if o.Number != "" {
		return nil
	}
	code, err := nextCode(tx, o.PharmacyID, PrefixOnlineOrder, strconv.Itoa(time.Now().Year()), 6)
	if err != nil {
		return err
	}
	o.Number = code
	return nil
}

// BeforeSave 明细已加载时重算合计
func (o *OnlineOrder) BeforeSave(tx *gorm.DB) error {
	if len(o.Items) == 0 {
		return nil
	}
	o.ItemCount, o.TotalTTC = 0, 0
	for i := range o.Items {
		if err := o.Items[i].derive(); err != nil {
			return err
		}
		o.ItemCount += o.Items[i].Quantity
		o.TotalTTC += o.Items[i].LineTotal
	}
	return nil
}

// AfterCreate 通知药房有新订单
func (o *OnlineOrder) AfterCreate(tx *gorm.DB) error {
	o.loadedStatus = o.Status
	return NotifyPharmacyRoles(tx, o.PharmacyID, SalesRoles, NotificationInput{
		Topic:     TopicOrderPlaced,
		Title:     "新的网店订单",
		Body:      fmt.Sprintf("%s 共 %d 件，%.2f", o.Number, o.ItemCount, CentsToFloat(o.TotalTTC)),
		Payload:   map[string]interface{}{"order_id": o.ID},
		DedupeKey: fmt.Sprintf("order:%d:placed", o.ID),
	})
}

// AfterUpdate 状态变化通知下单顾客
func (o *OnlineOrder) AfterUpdate(tx *gorm.DB) error {
	changed := o.Status != o.loadedStatus
	o.loadedStatus = o.Status
	if !changed {
		return nil
	}
	return Notify(tx, o.UserID, NotificationInput{
		PharmacyID: o.PharmacyID,
		Topic:      TopicOrderStatus,
		Title:      "订单状态更新",
		Body:       fmt.Sprintf("订单 %s 状态: %s", o.Number, o.Status),
		Payload:    map[string]interface{}{"order_id": o.ID, "status": o.Status},
		DedupeKey:  fmt.Sprintf("order:%d:%s", o.ID, o.Status),
	})
}

// OnlineOrderItem 订单明细，下单时锁定价格
type OnlineOrderItem struct {
	ID            int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	OnlineOrderID int64  `gorm:"index;not null" json:"online_order_id"`
	ProductID     int64  `gorm:"not null" json:"product_id"`
	Name          string `gorm:"size:255" json:"name"`
	Quantity      int    `gorm:"not null" json:"quantity"`
	UnitPrice     int64  `gorm:"not null" json:"unit_price"`
	LineTotal     int64  `gorm:"not null" json:"line_total"`
}

func (OnlineOrderItem) TableName() string {
	return "online_order_items"
}

func (i *OnlineOrderItem) derive() error {
	if i.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	i.LineTotal = int64(i.Quantity) * i.UnitPrice
	return nil
}

func (i *OnlineOrderItem) BeforeSave(tx *gorm.DB) error {
	return i.derive()
}
